package controllers

import (
	"fmt"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stylistapi/models"
	"stylistapi/services"
)

type StudioController struct {
	Stylist     services.LLMStylist
	AWSService  services.AWSServiceProvider
	FirebaseApp *firebase.App
	URLCache    services.URLCacheServiceProvider
}

type SetPhotoUploadFileRequest struct {
	FileName *string `json:"file_name" validate:"required,max=1000"`
}

type SessionOut struct {
	SelectedItemID  *string `json:"selected_item_id"`
	SelectedSceneID *string `json:"selected_scene_id"`
	Pose            string  `json:"pose"`
	Expression      string  `json:"expression"`
	PhotoSet        bool    `json:"photo_set"`
	PhotoURL        *string `json:"photo_url"`
	TryOnPreviewURL *string `json:"try_on_preview_url"`
	Analyzed        bool    `json:"analyzed"`
	TryOnSeq        uint    `json:"try_on_seq"`
}

func (m *StudioController) sessionOut(c echo.Context, session *models.StylingSession) SessionOut {
	out := SessionOut{
		SelectedItemID:  session.SelectedItemID,
		SelectedSceneID: session.SelectedSceneID,
		Pose:            session.Pose,
		Expression:      session.Expression,
		PhotoSet:        session.PhotoDataURI != nil || session.PhotoKey != nil,
		Analyzed:        session.Analyzed,
		TryOnSeq:        session.TryOnSeq,
	}
	if session.PhotoKey != nil {
		url, err := m.URLCache.GetReadURL(c.Request().Context(), *session.PhotoKey)
		if err == nil && url != "" {
			out.PhotoURL = &url
		}
	}
	if session.TryOnPreviewKey != nil {
		url, err := m.URLCache.GetReadURL(c.Request().Context(), *session.TryOnPreviewKey)
		if err == nil && url != "" {
			out.TryOnPreviewURL = &url
		}
	}
	return out
}

func (m *StudioController) StudioRoutes(g *echo.Group) {
	g.GET("/scenes", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		var scenes []models.Scene
		if err := db.Order("id asc").Find(&scenes).Error; err != nil {
			fmt.Println("Error fetching scenes", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, scenes)
	})

	g.GET("/session", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)
		session, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, m.sessionOut(c, session))
	})

	// inline photo upload: small clients send the full-body photo as data URI
	g.POST("/photo", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		in := new(models.SessionPhotoIn)
		if err := c.Bind(in); err != nil {
			return err
		}
		if err := c.Validate(in); err != nil {
			return err
		}
		if !strings.HasPrefix(in.Image, "data:image/") {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Image must be a base64 data URI"})
		}

		session, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		session.PhotoDataURI = &in.Image
		session.PhotoKey = nil
		if err := db.Save(session).Error; err != nil {
			fmt.Println("Error saving session photo", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, m.sessionOut(c, session))
	})

	// large uploads go straight to R2 through a presigned put
	g.POST("/photo/presign", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		in := new(SetPhotoUploadFileRequest)
		if err := c.Bind(in); err != nil {
			return err
		}
		if err := c.Validate(in); err != nil {
			return err
		}

		key := fmt.Sprintf("photos/%v/%s", user.ID, *in.FileName)
		url, err := m.AWSService.PresignLink(c.Request().Context(), services.GetEnv("R2_BUCKET_NAME", "stylist-media"), key)
		if err != nil {
			fmt.Println("Error presigning photo upload", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		session, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		session.PhotoKey = &key
		session.PhotoDataURI = nil
		if err := db.Save(session).Error; err != nil {
			fmt.Println("Error saving session photo key", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		return c.JSON(http.StatusOK, map[string]string{"upload_url": url, "key": key})
	})

	g.POST("/select", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		in := new(models.SessionSelectIn)
		if err := c.Bind(in); err != nil {
			return err
		}

		session, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		if in.ItemID != nil {
			item, err := findWearableItem(db, *in.ItemID, user.ID)
			if err != nil {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
			}
			session.SelectedItemID = &item.ItemID
		}
		if in.SceneID != nil {
			var scene models.Scene
			r := db.Where("scene_id = ?", *in.SceneID).Limit(1).Find(&scene)
			if r.Error != nil || r.RowsAffected == 0 {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Scene not found"})
			}
			session.SelectedSceneID = &scene.SceneID
		}
		if err := db.Save(session).Error; err != nil {
			fmt.Println("Error saving session selection", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, m.sessionOut(c, session))
	})

	g.POST("/config", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		in := new(models.SessionConfigIn)
		if err := c.Bind(in); err != nil {
			return err
		}

		session, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		session.Pose = strings.TrimSpace(in.Pose)
		if session.Pose == "" {
			session.Pose = services.DefaultPose
		}
		session.Expression = strings.TrimSpace(in.Expression)
		if session.Expression == "" {
			session.Expression = services.DefaultExpression
		}
		if err := db.Save(session).Error; err != nil {
			fmt.Println("Error saving session config", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, m.sessionOut(c, session))
	})

	// reset reinitializes the whole workspace in one transaction: transcript,
	// custom uploads, photo, selection, analysis and preview all go at once.
	// The generation counter survives so stragglers from before the reset can
	// never apply their preview.
	g.POST("/reset", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		session, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("session_id = ?", session.ID).Delete(&models.ChatMessage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("is_custom = true and owner_id = ?", user.ID).Delete(&models.ClothingItem{}).Error; err != nil {
				return err
			}
			return tx.Model(session).Select(
				"photo_data_uri", "photo_key", "selected_item_id", "selected_scene_id",
				"pose", "expression", "analyzed", "body_type", "skin_tone",
				"style_advice", "current_outfit_critique", "trending_now",
				"suggested_item_ids", "try_on_preview_key",
			).Updates(map[string]interface{}{
				"photo_data_uri":          nil,
				"photo_key":               nil,
				"selected_item_id":        nil,
				"selected_scene_id":       nil,
				"pose":                    services.DefaultPose,
				"expression":              services.DefaultExpression,
				"analyzed":                false,
				"body_type":               "",
				"skin_tone":               "",
				"style_advice":            "",
				"current_outfit_critique": "",
				"trending_now":            "",
				"suggested_item_ids":      nil,
				"try_on_preview_key":      nil,
			}).Error
		})
		if err != nil {
			fmt.Println("Error resetting session", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		fresh, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusOK, m.sessionOut(c, fresh))
	})
}

// findWearableItem resolves an item id against the catalog plus the caller's
// own uploads. Other users' customs look like missing items.
func findWearableItem(db *gorm.DB, itemID string, userID uint) (*models.ClothingItem, error) {
	var item models.ClothingItem
	r := db.Where("item_id = ? and (is_custom = false or owner_id = ?)", itemID, userID).Limit(1).Find(&item)
	if r.Error != nil {
		return nil, r.Error
	}
	if r.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}
