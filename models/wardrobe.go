package models

// Style tags of the curated catalog. CategoryCustom marks user uploads and
// never appears in the model-visible inventory.
const (
	CategoryCasual         = "休闲"
	CategoryFormal         = "正式"
	CategorySports         = "运动"
	CategoryEvening        = "晚礼服"
	CategoryStreetwear     = "街头"
	CategoryBusinessCasual = "商务休闲"
	CategoryMinimalist     = "极简主义"
	CategoryVintage        = "复古风"
	CategoryBohemian       = "波西米亚"
	CategoryCustom         = "自定义上传"
)

type ClothingItem struct {
	JsonModel
	// stable catalog handle ("c1", "f2", ...); uploads get "custom-XXXXXXXX"
	ItemID   string `gorm:"uniqueIndex" json:"item_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	// remote URL for catalog rows, data URI for uploads
	Image       string       `gorm:"type:text" json:"image"`
	Description string       `gorm:"type:text" json:"description"`
	IsCustom    bool         `gorm:"default:false" json:"is_custom"`
	Owner       *UserAccount `json:"-"`
	OwnerID     *uint        `json:"-"`
}

type Scene struct {
	JsonModel
	SceneID string `gorm:"uniqueIndex" json:"scene_id"`
	Name    string `json:"name"`
	// background directive spliced into the try-on instruction
	Prompt string `gorm:"type:text" json:"prompt"`
	Image  string `json:"image"`
}

type CustomItemIn struct {
	Name        string `json:"name"`
	Image       string `json:"image" validate:"required"`
	Description string `json:"description"`
}

type ClothingItemOut struct {
	ItemID      string `json:"item_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Description string `json:"description"`
	IsCustom    bool   `json:"is_custom"`
}

type WardrobeListOut struct {
	Catalog []ClothingItemOut `json:"catalog"`
	Custom  []ClothingItemOut `json:"custom"`
}
