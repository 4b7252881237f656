package models

import "github.com/lib/pq"

// StylingSession is the single mutable workspace a user has. There is no
// history: reset reinitializes the row, and the cleanup job reaps idle ones.
type StylingSession struct {
	JsonModel
	UserAccount   UserAccount `json:"-"`
	UserAccountID uint        `gorm:"uniqueIndex" json:"-"`

	// original full-body photo, exactly one of the two set
	PhotoDataURI *string `gorm:"type:text" json:"-"`
	PhotoKey     *string `json:"photo_key"`

	SelectedItemID  *string `json:"selected_item_id"`
	SelectedSceneID *string `json:"selected_scene_id"`
	Pose            string  `json:"pose"`
	Expression      string  `json:"expression"`

	// latest analysis, replaced as a whole on every run
	Analyzed              bool           `gorm:"default:false" json:"analyzed"`
	BodyType              string         `json:"body_type"`
	SkinTone              string         `json:"skin_tone"`
	StyleAdvice           string         `gorm:"type:text" json:"style_advice"`
	CurrentOutfitCritique string         `gorm:"type:text" json:"current_outfit_critique"`
	TrendingNow           string         `gorm:"type:text" json:"trending_now"`
	SuggestedItemIDs      pq.StringArray `gorm:"type:text[]" json:"suggested_item_ids"`

	// preview of the most recent completed generation
	TryOnPreviewKey *string `json:"try_on_preview_key"`
	// generation counter: a finished try-on applies its preview only while its
	// seq still equals this value
	TryOnSeq uint `gorm:"default:0" json:"try_on_seq"`
}

type ChatMessage struct {
	JsonModel
	Session   StylingSession `json:"-"`
	SessionID uint           `json:"-"`
	Role      string         `json:"role"` // user, model
	Text      string         `gorm:"type:text" json:"text"`
}

type TryOnGeneration struct {
	JsonModel
	Session       StylingSession `json:"-"`
	SessionID     uint           `json:"-"`
	UserAccount   UserAccount    `json:"-"`
	UserAccountID uint           `json:"-"`

	// inputs snapshotted at enqueue time
	Seq        uint   `json:"seq"`
	ItemID     string `json:"item_id"`
	SceneID    string `json:"scene_id"`
	Pose       string `json:"pose"`
	Expression string `json:"expression"`

	Status         string  `json:"status"` // pending, completed, failed
	ResultImageKey *string `json:"-"`

	Duration               *float64 `json:"duration"` // in seconds
	LLMModel               *string  `json:"llm_model"`
	LLMInputTokenCount     *int32   `json:"llm_input_token_count"`
	LLMOutputTokenCount    *int32   `json:"llm_output_token_count"`
	LLMTotalTokenCount     *int32   `json:"llm_total_token_count"`
	LLMThoughtsTokenCount  *int32   `json:"llm_thoughts_token_count"`
	GenerationErrorMessage *string  `json:"generation_error_message"`
}

const (
	TryOnStatusPending   = "pending"
	TryOnStatusCompleted = "completed"
	TryOnStatusFailed    = "failed"
)

type SessionPhotoIn struct {
	Image string `json:"image" validate:"required"`
}

type SessionSelectIn struct {
	ItemID  *string `json:"item_id"`
	SceneID *string `json:"scene_id"`
}

type SessionConfigIn struct {
	Pose       string `json:"pose"`
	Expression string `json:"expression"`
}

type TryOnIn struct {
	ItemID     string  `json:"item_id" validate:"required"`
	SceneID    string  `json:"scene_id" validate:"required"`
	Pose       *string `json:"pose"`
	Expression *string `json:"expression"`
}

type ChatIn struct {
	Message string `json:"message" validate:"required,max=2000"`
}
