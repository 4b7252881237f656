package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stylistapi/models"
	"stylistapi/services"
)

func analysisFromSession(session *models.StylingSession) services.AnalysisData {
	if !session.Analyzed {
		return services.InitialAnalysis()
	}
	suggested := []string{}
	if session.SuggestedItemIDs != nil {
		suggested = session.SuggestedItemIDs
	}
	return services.AnalysisData{
		BodyType:              session.BodyType,
		SkinTone:              session.SkinTone,
		StyleAdvice:           session.StyleAdvice,
		CurrentOutfitCritique: session.CurrentOutfitCritique,
		TrendingNow:           session.TrendingNow,
		SuggestedItemIds:      suggested,
	}
}

func (m *StudioController) AnalysisRoutes(g *echo.Group) {
	// synchronous: the model call happens in-request. Any failure degrades to
	// the fixed fallback record, never an error response.
	g.POST("/analyze", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		session, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		personImage, err := services.ResolvePersonImage(
			c.Request().Context(), m.AWSService, services.GetEnv("R2_BUCKET_NAME", "stylist-media"),
			session.PhotoDataURI, session.PhotoKey,
		)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Upload a photo first"})
		}

		var catalog []models.ClothingItem
		if err := db.Where("is_custom = false").Order("id asc").Find(&catalog).Error; err != nil {
			fmt.Println("Error fetching catalog for analysis", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		inventoryContext := services.BuildInventoryContext(catalog)

		data, usage := services.AnalyzeWithFallback(m.Stylist, personImage, inventoryContext, services.Flash25)
		if usage != nil {
			fmt.Printf("[Session: %v] Analysis tokens used: %v\n", session.ID, usage.TotalTokenCount)
		}

		session.Analyzed = true
		session.BodyType = data.BodyType
		session.SkinTone = data.SkinTone
		session.StyleAdvice = data.StyleAdvice
		session.CurrentOutfitCritique = data.CurrentOutfitCritique
		session.TrendingNow = data.TrendingNow
		session.SuggestedItemIDs = data.SuggestedItemIds
		if err := db.Save(session).Error; err != nil {
			fmt.Println("Error saving analysis", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		return c.JSON(http.StatusOK, data)
	})

	g.GET("/analysis", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		session, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, analysisFromSession(session))
	})
}
