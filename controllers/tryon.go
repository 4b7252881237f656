package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stylistapi/models"
	"stylistapi/services"
	"stylistapi/tasks"
)

type TryOnOut struct {
	Id                     uint    `json:"id"`
	Seq                    uint    `json:"seq"`
	Status                 string  `json:"status"`
	ItemID                 string  `json:"item_id"`
	SceneID                string  `json:"scene_id"`
	Pose                   string  `json:"pose"`
	Expression             string  `json:"expression"`
	ResultImageURL         *string `json:"result_image_url"`
	GenerationErrorMessage *string `json:"generation_error_message"`
}

func (m *StudioController) TryOnRoutes(g *echo.Group) {
	g.POST("/tryon", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)
		asynqClient, ok := c.Get("__asynqclient").(services.TaskEnqueuer)
		if !ok {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Service is not available, please try again a bit later"})
		}

		in := new(models.TryOnIn)
		if err := c.Bind(in); err != nil {
			return err
		}
		if err := c.Validate(in); err != nil {
			return err
		}

		if todayTryOnCount(db, user.ID) >= int64(dailyTryOnLimit()) {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Daily try-on limit reached"})
		}

		session, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		if session.PhotoDataURI == nil && session.PhotoKey == nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Upload a photo first"})
		}

		item, err := findWearableItem(db, in.ItemID, user.ID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
		}
		var scene models.Scene
		r := db.Where("scene_id = ?", in.SceneID).Limit(1).Find(&scene)
		if r.Error != nil || r.RowsAffected == 0 {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Scene not found"})
		}

		pose := session.Pose
		if in.Pose != nil && *in.Pose != "" {
			pose = *in.Pose
		}
		expression := session.Expression
		if in.Expression != nil && *in.Expression != "" {
			expression = *in.Expression
		}

		// a new request supersedes every in-flight one: bump the counter first,
		// then snapshot it into the generation row
		session.SelectedItemID = &item.ItemID
		session.SelectedSceneID = &scene.SceneID
		session.Pose = pose
		session.Expression = expression
		session.TryOnSeq = session.TryOnSeq + 1
		if err := db.Save(session).Error; err != nil {
			fmt.Println("Error bumping try-on seq", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		gen := models.TryOnGeneration{
			SessionID:     session.ID,
			UserAccountID: user.ID,
			Seq:           session.TryOnSeq,
			ItemID:        item.ItemID,
			SceneID:       scene.SceneID,
			Pose:          pose,
			Expression:    expression,
			Status:        models.TryOnStatusPending,
		}
		if err := db.Create(&gen).Error; err != nil {
			fmt.Println("Error creating try-on generation", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		task, err := tasks.NewTryOnGenerationTask(gen.ID)
		if err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		// single attempt: a failed generation is surfaced, the user retries
		_, err = asynqClient.Enqueue(task, asynq.Queue("generate"), asynq.MaxRetry(0), asynq.Timeout(10*time.Minute))
		if err != nil {
			fmt.Printf("[TryOn: %v] Error enqueueing generation: %v\n", gen.ID, err)
			sentry.CaptureException(err)
			db.Model(&gen).Updates(map[string]interface{}{
				"status":                   models.TryOnStatusFailed,
				"generation_error_message": "could not schedule generation",
			})
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		fmt.Printf("[TryOn: %v] Enqueued generation seq %v for user %v\n", gen.ID, gen.Seq, user.ID)

		return c.JSON(http.StatusCreated, m.tryOnOut(c, &gen))
	})

	g.GET("/tryon/:id", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		var genID uint
		if err := echo.PathParamsBinder(c).Uint("id", &genID).BindError(); err != nil {
			return echo.ErrBadRequest
		}

		var gen models.TryOnGeneration
		r := db.Where("id = ? and user_account_id = ?", genID, user.ID).Limit(1).Find(&gen)
		if r.Error != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		if r.RowsAffected == 0 {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Generation not found"})
		}
		return c.JSON(http.StatusOK, m.tryOnOut(c, &gen))
	})
}

func (m *StudioController) tryOnOut(c echo.Context, gen *models.TryOnGeneration) TryOnOut {
	out := TryOnOut{
		Id:                     gen.ID,
		Seq:                    gen.Seq,
		Status:                 gen.Status,
		ItemID:                 gen.ItemID,
		SceneID:                gen.SceneID,
		Pose:                   gen.Pose,
		Expression:             gen.Expression,
		GenerationErrorMessage: gen.GenerationErrorMessage,
	}
	if gen.ResultImageKey != nil {
		url, err := m.URLCache.GetReadURL(c.Request().Context(), *gen.ResultImageKey)
		if err != nil {
			fmt.Println("Error presigning result image url", err)
		} else if url != "" {
			out.ResultImageURL = &url
		}
	}
	return out
}
