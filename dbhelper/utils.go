package dbhelper

import (
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stylistapi/models"
)

func SetupCleaner(db *gorm.DB) func() {

	return func() {

		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.TryOnGeneration{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ChatMessage{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.StylingSession{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Where("is_custom = true").Delete(&models.ClothingItem{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.UserPushToken{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.UserAccount{})

	}
}

func Migrate(db *gorm.DB, model interface{}) {
	err := db.AutoMigrate(model)
	if err != nil {
		log.Printf("Error while migrating %s", model)
		log.Fatal(err)
	}
}

// SeedWardrobe upserts the curated catalog and scene tables. Runs on every
// startup, keyed by the stable item/scene ids, so edits to the curated data
// propagate without touching user uploads.
func SeedWardrobe(db *gorm.DB) {
	for _, item := range models.CatalogItems {
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "category", "image", "description"}),
		}).Create(&models.ClothingItem{
			ItemID:      item.ItemID,
			Name:        item.Name,
			Category:    item.Category,
			Image:       item.Image,
			Description: item.Description,
		})
		if result.Error != nil {
			fmt.Println("Error seeding catalog item", item.ItemID, result.Error)
		}
	}
	for _, scene := range models.CatalogScenes {
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scene_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "prompt", "image"}),
		}).Create(&models.Scene{
			SceneID: scene.SceneID,
			Name:    scene.Name,
			Prompt:  scene.Prompt,
			Image:   scene.Image,
		})
		if result.Error != nil {
			fmt.Println("Error seeding scene", scene.SceneID, result.Error)
		}
	}
}
