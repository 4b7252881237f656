package controllers

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stylistapi/models"
	"stylistapi/services"
)

type AdvisorController struct {
	Stylist services.LLMStylist
}

type ChatMessageOut struct {
	Role     string                    `json:"role"`
	Text     string                    `json:"text"`
	Segments []services.MessageSegment `json:"segments,omitempty"`
}

type ChatOut struct {
	Reply    string                    `json:"reply"`
	Segments []services.MessageSegment `json:"segments"`
}

func (m *AdvisorController) AdvisorRoutes(g *echo.Group) {
	g.POST("/chat", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		in := new(models.ChatIn)
		if err := c.Bind(in); err != nil {
			return err
		}
		if err := c.Validate(in); err != nil {
			return err
		}

		session, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		var transcript []models.ChatMessage
		if err := db.Where("session_id = ?", session.ID).Order("id asc").Find(&transcript).Error; err != nil {
			fmt.Println("Error fetching transcript", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		history := make([]services.ChatTurn, 0, len(transcript))
		for _, msg := range transcript {
			history = append(history, services.ChatTurn{Role: msg.Role, Text: msg.Text})
		}

		// full catalog: the system instruction only carries the curated
		// inventory, but reference resolution may hit custom uploads too
		var allItems []models.ClothingItem
		if err := db.Where("is_custom = false or owner_id = ?", user.ID).Order("id asc").Find(&allItems).Error; err != nil {
			fmt.Println("Error fetching items for chat", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		inventoryContext := services.BuildInventoryContext(allItems)

		reply, err := m.Stylist.ChatReply(history, in.Message, inventoryContext, services.Flash25)
		if err != nil {
			// the advisor never errors out loud, it apologizes
			fmt.Printf("[Session: %v] Chat failed: %v\n", session.ID, err)
			sentry.CaptureException(fmt.Errorf("chat failed for session %v: %v", session.ID, err))
			reply = services.ChatFallbackReply
		}

		userMsg := models.ChatMessage{SessionID: session.ID, Role: "user", Text: in.Message}
		modelMsg := models.ChatMessage{SessionID: session.ID, Role: "model", Text: reply}
		if err := db.Create(&userMsg).Error; err != nil {
			fmt.Println("Error saving user message", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		if err := db.Create(&modelMsg).Error; err != nil {
			fmt.Println("Error saving model message", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		return c.JSON(http.StatusOK, ChatOut{
			Reply:    reply,
			Segments: services.ResolveReferences(reply, allItems),
		})
	})

	g.GET("/history", func(c echo.Context) error {
		db := c.Get("__db").(*gorm.DB)
		user := c.Get("currentUser").(models.UserAccount)

		session, err := GetOrCreateSession(db, user.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		var transcript []models.ChatMessage
		if err := db.Where("session_id = ?", session.ID).Order("id asc").Find(&transcript).Error; err != nil {
			fmt.Println("Error fetching transcript", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		var allItems []models.ClothingItem
		if err := db.Where("is_custom = false or owner_id = ?", user.ID).Order("id asc").Find(&allItems).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}

		out := make([]ChatMessageOut, 0, len(transcript))
		for _, msg := range transcript {
			entry := ChatMessageOut{Role: msg.Role, Text: msg.Text}
			if msg.Role == "model" {
				entry.Segments = services.ResolveReferences(msg.Text, allItems)
			}
			out = append(out, entry)
		}
		return c.JSON(http.StatusOK, out)
	})
}
