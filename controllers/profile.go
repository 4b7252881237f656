package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stylistapi/models"
	"stylistapi/services"
)

type ProfileController struct {
	URLCache services.URLCacheServiceProvider
}

func dailyTryOnLimit() int32 {
	limit, err := strconv.Atoi(services.GetEnv("DAILY_TRYON_LIMIT", "20"))
	if err != nil {
		return 20
	}
	return int32(limit)
}

func todayTryOnCount(db *gorm.DB, userID uint) int64 {
	var count int64
	startOfDay := time.Now().Truncate(24 * time.Hour)
	db.Model(&models.TryOnGeneration{}).Where(
		"user_account_id = ? and created_at >= ?", userID, startOfDay,
	).Count(&count)
	return count
}

func (m *ProfileController) ProfileRoutes(g *echo.Group) {
	g.GET("/me", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		session, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			fmt.Println("Error fetching session", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		var photoURL *string
		photoSet := session.PhotoDataURI != nil
		if session.PhotoKey != nil {
			photoSet = true
			url, err := m.URLCache.GetReadURL(c.Request().Context(), *session.PhotoKey)
			if err != nil {
				fmt.Println("Error presigning photo url", err)
			} else {
				photoURL = &url
			}
		}

		return c.JSON(http.StatusOK, models.UserMeInfoOut{
			Id:                   UIntToStr(user.ID),
			Name:                 user.Name,
			Email:                user.Email,
			AvatarURL:            user.AvatarURL,
			ReceiveNotifications: user.ReceiveNotifications,
			PhotoSet:             photoSet,
			PhotoURL:             photoURL,
			DailyTryOnLimit:      dailyTryOnLimit(),
			TodayTryOnCount:      todayTryOnCount(db, user.ID),
		})
	})

	g.POST("/push-token", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		in := new(models.UserPushTokenIn)
		if err := c.Bind(in); err != nil {
			return err
		}
		if err := c.Validate(in); err != nil {
			return err
		}

		var existing models.UserPushToken
		r := db.Where("user_account_id = ? and token = ?", user.ID, in.Token).Limit(1).Find(&existing)
		if r.Error != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		if r.RowsAffected > 0 {
			existing.Active = true
			existing.Platform = models.ScanPlatform(in.Platform)
			db.Save(&existing)
			return c.JSON(http.StatusOK, existing)
		}

		token := models.UserPushToken{
			UserAccountID: user.ID,
			Token:         in.Token,
			Platform:      models.ScanPlatform(in.Platform),
			Active:        true,
		}
		if err := db.Create(&token).Error; err != nil {
			fmt.Println("Error saving push token", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return c.JSON(http.StatusCreated, token)
	})
}
