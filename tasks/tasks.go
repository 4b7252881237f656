package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"stylistapi/models"
	"stylistapi/services"
)

type TryOnGenerationPayload struct {
	TryOnID uint `json:"try_on_id"`
}

type SessionCleanupPayload struct{}

func NewTryOnGenerationTask(tryOnID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(TryOnGenerationPayload{TryOnID: tryOnID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask("generate:tryon", payload), nil
}

func NewSessionCleanupTask() (*asynq.Task, error) {
	payload, err := json.Marshal(SessionCleanupPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask("maintenance:session_cleanup", payload), nil
}

func saveTryOnFail(db *gorm.DB, gen *models.TryOnGeneration, message string) {
	fmt.Printf("[TryOn: %v] Generation failed: %s\n", gen.ID, message)
	result := db.Model(gen).Updates(map[string]interface{}{
		"status":                   models.TryOnStatusFailed,
		"generation_error_message": message,
	})
	if result.Error != nil {
		fmt.Printf("[TryOn: %v] Error saving failed state: %v\n", gen.ID, result.Error)
		sentry.CaptureException(result.Error)
	}
}

// resolveGarmentImage preprocesses a custom garment photo for the two-image
// variant: background whitened with a feathered threshold so the model reads
// the garment, not the clutter behind it. Any preprocessing failure falls back
// to the original upload.
func resolveGarmentImage(gen *models.TryOnGeneration, item models.ClothingItem) string {
	if !services.UsesGarmentImage(item) {
		return ""
	}
	raw, err := services.DecodeImagePayload(item.Image)
	if err != nil {
		fmt.Printf("[TryOn: %v] Error decoding garment image: %v\n", gen.ID, err)
		return item.Image
	}
	cleaned, err := services.WhitenGarmentBackground(raw, 190, 245, 0.6)
	if err != nil {
		fmt.Printf("[TryOn: %v] Garment background whitening failed: %v\n", gen.ID, err)
		return item.Image
	}
	return services.EncodePNGDataURI(cleaned)
}

func HandleTryOnGenerationTask(
	ctx context.Context,
	t *asynq.Task,
	db *gorm.DB,
	stylist services.LLMStylist,
	awsService services.AWSServiceProvider,
	fbApp *firebase.App,
) error {
	var payload TryOnGenerationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v", err)
	}

	var gen models.TryOnGeneration
	result := db.Limit(1).Find(&gen, payload.TryOnID)
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		fmt.Printf("[TryOn: %v] Generation row not found, skipping\n", payload.TryOnID)
		return nil
	}
	if gen.Status != models.TryOnStatusPending {
		fmt.Printf("[TryOn: %v] Already %s, skipping\n", gen.ID, gen.Status)
		return nil
	}

	var session models.StylingSession
	result = db.Limit(1).Find(&session, gen.SessionID)
	if result.Error != nil || result.RowsAffected == 0 {
		saveTryOnFail(db, &gen, "session not found")
		return fmt.Errorf("[TryOn: %v] session %v not found", gen.ID, gen.SessionID)
	}

	bucketName := os.Getenv("R2_BUCKET_NAME")
	personImage, err := services.ResolvePersonImage(ctx, awsService, bucketName, session.PhotoDataURI, session.PhotoKey)
	if err != nil {
		saveTryOnFail(db, &gen, "could not load the uploaded photo")
		sentry.CaptureException(fmt.Errorf("[TryOn: %v] %v", gen.ID, err))
		return err
	}

	var item models.ClothingItem
	result = db.Where("item_id = ?", gen.ItemID).Limit(1).Find(&item)
	if result.Error != nil || result.RowsAffected == 0 {
		saveTryOnFail(db, &gen, "clothing item not found")
		return fmt.Errorf("[TryOn: %v] item %s not found", gen.ID, gen.ItemID)
	}
	var scene models.Scene
	result = db.Where("scene_id = ?", gen.SceneID).Limit(1).Find(&scene)
	if result.Error != nil || result.RowsAffected == 0 {
		saveTryOnFail(db, &gen, "scene not found")
		return fmt.Errorf("[TryOn: %v] scene %s not found", gen.ID, gen.SceneID)
	}

	req := services.TryOnRequest{
		PersonImage:  personImage,
		Item:         item,
		GarmentImage: resolveGarmentImage(&gen, item),
		ScenePrompt:  scene.Prompt,
		Pose:         gen.Pose,
		Expression:   gen.Expression,
	}

	modelName := services.Flash25Image
	fmt.Printf("[TryOn: %v] Generating with %s, seq %v, item %s, scene %s\n", gen.ID, modelName.String(), gen.Seq, gen.ItemID, gen.SceneID)
	startTime := time.Now()
	llmResponse, err := stylist.GenerateTryOn(req, modelName)
	duration := time.Since(startTime).Seconds()
	if err != nil {
		saveTryOnFail(db, &gen, err.Error())
		sentry.CaptureException(fmt.Errorf("[TryOn: %v] generation error: %v", gen.ID, err))
		notifyTryOn(fbApp, db, gen.UserAccountID, "试衣失败", "生成失败了，请再试一次。", gen.ID)
		return err
	}

	resultDataURI, err := services.FirstTryOnImage(llmResponse)
	if err != nil {
		// model answered but produced no image part
		saveTryOnFail(db, &gen, err.Error())
		sentry.CaptureException(fmt.Errorf("[TryOn: %v] %v, model said: %s", gen.ID, err, llmResponse.Response))
		notifyTryOn(fbApp, db, gen.UserAccountID, "试衣失败", "生成失败了，请再试一次。", gen.ID)
		return err
	}

	resultBytes, err := services.DecodeImagePayload(resultDataURI)
	if err != nil {
		saveTryOnFail(db, &gen, "invalid generated image")
		sentry.CaptureException(fmt.Errorf("[TryOn: %v] invalid generated image: %v", gen.ID, err))
		return err
	}

	resultKey := fmt.Sprintf("tryons/%v/tryon-%v.jpg", gen.UserAccountID, gen.ID)
	uploadURL, err := awsService.PresignLink(ctx, bucketName, resultKey)
	if err != nil {
		saveTryOnFail(db, &gen, "could not store the generated image")
		sentry.CaptureException(fmt.Errorf("[TryOn: %v] presign error: %v", gen.ID, err))
		return err
	}
	_, statusCode, err := awsService.UploadToPresignedURL(ctx, bucketName, uploadURL, resultBytes)
	if err != nil || statusCode >= 300 {
		saveTryOnFail(db, &gen, "could not store the generated image")
		sentry.CaptureException(fmt.Errorf("[TryOn: %v] upload error status %v: %v", gen.ID, statusCode, err))
		return fmt.Errorf("[TryOn: %v] upload failed with status %v: %v", gen.ID, statusCode, err)
	}

	modelString := modelName.String()
	result = db.Model(&gen).Updates(map[string]interface{}{
		"status":                   models.TryOnStatusCompleted,
		"result_image_key":         resultKey,
		"duration":                 duration,
		"llm_model":                modelString,
		"llm_input_token_count":    llmResponse.InputTokenCount,
		"llm_output_token_count":   llmResponse.OutputTokenCount,
		"llm_total_token_count":    llmResponse.TotalTokenCount,
		"llm_thoughts_token_count": llmResponse.ThoughtsTokenCount,
	})
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return result.Error
	}

	// apply the preview only while this generation is still the latest
	// requested one. A superseded result keeps its row but never touches the
	// session preview.
	var freshSession models.StylingSession
	result = db.Limit(1).Find(&freshSession, gen.SessionID)
	if result.Error == nil && result.RowsAffected > 0 {
		if freshSession.TryOnSeq == gen.Seq {
			updateResult := db.Model(&freshSession).Where("try_on_seq = ?", gen.Seq).Update("try_on_preview_key", resultKey)
			if updateResult.Error != nil {
				sentry.CaptureException(updateResult.Error)
			}
		} else {
			fmt.Printf("[TryOn: %v] Stale result: seq %v, session already at %v\n", gen.ID, gen.Seq, freshSession.TryOnSeq)
		}
	}

	fmt.Printf("[TryOn: %v] Completed in %.2fs, %v tokens\n", gen.ID, duration, llmResponse.TotalTokenCount)
	notifyTryOn(fbApp, db, gen.UserAccountID, "试衣完成", "你的新造型已经准备好了！", gen.ID)
	return nil
}

func notifyTryOn(fbApp *firebase.App, db *gorm.DB, userID uint, title string, body string, genID uint) {
	if fbApp == nil {
		return
	}
	services.SendNotification(fbApp, db, userID, title, body, map[string]string{
		"type":      "tryon",
		"try_on_id": fmt.Sprint(genID),
	})
}

// Sessions idle past this window lose their ephemeral state: transcript,
// custom uploads and generation rows. The session row itself stays.
const sessionIdleWindow = 72 * time.Hour

func HandleSessionCleanupTask(ctx context.Context, t *asynq.Task, db *gorm.DB) error {
	cutoff := time.Now().Add(-sessionIdleWindow)

	var staleSessions []models.StylingSession
	result := db.Where("updated_at < ?", cutoff).Find(&staleSessions)
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return result.Error
	}

	for _, session := range staleSessions {
		fmt.Printf("[Session: %v] Reaping idle session state\n", session.ID)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("session_id = ?", session.ID).Delete(&models.ChatMessage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("is_custom = true and owner_id = ?", session.UserAccountID).Delete(&models.ClothingItem{}).Error; err != nil {
				return err
			}
			return tx.Where("session_id = ? and created_at < ?", session.ID, cutoff).Delete(&models.TryOnGeneration{}).Error
		})
		if err != nil {
			fmt.Printf("[Session: %v] Error reaping session: %v\n", session.ID, err)
			sentry.CaptureException(err)
		}
	}
	fmt.Printf("Session cleanup finished, %v idle sessions visited\n", len(staleSessions))
	return nil
}
