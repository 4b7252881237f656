package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stylistapi/models"
)

type WardrobeController struct {
}

// uploads a user can hold at once before resetting
const maxCustomItems = 20

func itemOut(item models.ClothingItem) models.ClothingItemOut {
	return models.ClothingItemOut{
		ItemID:      item.ItemID,
		Name:        item.Name,
		Category:    item.Category,
		Image:       item.Image,
		Description: item.Description,
		IsCustom:    item.IsCustom,
	}
}

func (m *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.GET("/list", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		var catalog []models.ClothingItem
		r := db.Where("is_custom = false").Order("id asc").Find(&catalog)
		if r.Error != nil {
			fmt.Println("Error fetching catalog", r.Error)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		var custom []models.ClothingItem
		r = db.Where("is_custom = true and owner_id = ?", user.ID).Order("id asc").Find(&custom)
		if r.Error != nil {
			fmt.Println("Error fetching custom items", r.Error)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		out := models.WardrobeListOut{
			Catalog: []models.ClothingItemOut{},
			Custom:  []models.ClothingItemOut{},
		}
		for _, item := range catalog {
			out.Catalog = append(out.Catalog, itemOut(item))
		}
		for _, item := range custom {
			out.Custom = append(out.Custom, itemOut(item))
		}
		return c.JSON(http.StatusOK, out)
	})

	g.POST("/custom", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		in := new(models.CustomItemIn)
		if err := c.Bind(in); err != nil {
			return err
		}
		if err := c.Validate(in); err != nil {
			return err
		}
		if !strings.HasPrefix(in.Image, "data:image/") {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Image must be a base64 data URI"})
		}

		var count int64
		db.Model(&models.ClothingItem{}).Where("is_custom = true and owner_id = ?", user.ID).Count(&count)
		if count >= maxCustomItems {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Custom item limit reached"})
		}

		name := strings.TrimSpace(in.Name)
		if name == "" {
			name = "自定义服装"
		}

		item := models.ClothingItem{
			ItemID:      "custom-" + RandomItemSuffix(8),
			Name:        name,
			Category:    models.CategoryCustom,
			Image:       in.Image,
			Description: in.Description,
			IsCustom:    true,
			OwnerID:     &user.ID,
		}
		if err := db.Create(&item).Error; err != nil {
			fmt.Println("Error creating custom item", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusCreated, itemOut(item))
	})

	g.DELETE("/custom/:itemId", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		itemID := c.Param("itemId")
		var item models.ClothingItem
		r := db.Where("item_id = ? and is_custom = true and owner_id = ?", itemID, user.ID).Limit(1).Find(&item)
		if r.Error != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		if r.RowsAffected == 0 {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
		}
		db.Delete(&item)
		return c.NoContent(http.StatusNoContent)
	})
}
