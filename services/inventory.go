package services

import (
	"fmt"
	"strings"

	"stylistapi/models"
)

// BuildInventoryContext serializes the catalog into the grounding block shared
// by the analysis and chat prompts. One line per item, catalog order. Custom
// uploads are user-private and never reach the model-visible inventory.
func BuildInventoryContext(items []models.ClothingItem) string {
	var lines []string
	for _, item := range items {
		if item.IsCustom {
			continue
		}
		lines = append(lines, fmt.Sprintf("- ID: %s, 名称: %s, 风格: %s, 描述: %s",
			item.ItemID, item.Name, item.Category, item.Description))
	}
	return strings.Join(lines, "\n")
}
