package telegram

import (
	"fmt"
	"log"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"stylistapi/languageutil"
	"stylistapi/models"
	"stylistapi/services"
)

const maxTranscriptTurns = 20

func EscapeMessage(message string) string {
	r := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return r.Replace(message)
}

func greeting(languageCode string) string {
	if languageutil.IsEnglish(languageutil.Normalize(languageCode)) {
		return "Hi! I am A-Mao A-Chun, your fashion advisor. Ask me anything about styling."
	}
	return "你好！我是阿猫阿春，你的专属造型师。有任何穿搭问题都可以问我。"
}

// renderSegments flattens a resolved reply for a plain text chat surface:
// item references become a name plus description line instead of a card.
func renderSegments(segments []services.MessageSegment) string {
	b := strings.Builder{}
	for _, segment := range segments {
		if segment.Kind == services.SegmentItem && segment.Item != nil {
			b.WriteString(fmt.Sprintf("\n👗 %s - %s\n", segment.Item.Name, segment.Item.Description))
			continue
		}
		b.WriteString(segment.Text)
	}
	return b.String()
}

// RunAdvisorBot serves the styling chat over Telegram. Transcripts are held
// in memory per chat, capped, and never persisted.
func RunAdvisorBot(db *gorm.DB, stylist services.LLMStylist) {

	bot, err := tgbotapi.NewBotAPI(os.Getenv("TG_TOKEN"))
	if err != nil {
		println("Error tg bot init")
		log.Panic(err)
	}
	bot.Debug = true

	log.Printf("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)

	transcripts := map[int64][]services.ChatTurn{}

	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		chatID := update.Message.Chat.ID
		log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)

		if update.Message.Command() == "start" {
			transcripts[chatID] = nil
			msg := tgbotapi.NewMessage(chatID, greeting(update.Message.From.LanguageCode))
			bot.Send(msg)
			continue
		}

		var catalog []models.ClothingItem
		if err := db.Where("is_custom = false").Order("id asc").Find(&catalog).Error; err != nil {
			fmt.Println("Error fetching catalog for tg chat", err)
			continue
		}
		inventoryContext := services.BuildInventoryContext(catalog)

		history := transcripts[chatID]
		reply, err := stylist.ChatReply(history, update.Message.Text, inventoryContext, services.Flash25)
		if err != nil {
			fmt.Printf("[Chat: %v] Tg chat failed: %v\n", chatID, err)
			reply = services.ChatFallbackReply
		}

		history = append(history,
			services.ChatTurn{Role: "user", Text: update.Message.Text},
			services.ChatTurn{Role: "model", Text: reply},
		)
		if len(history) > maxTranscriptTurns {
			history = history[len(history)-maxTranscriptTurns:]
		}
		transcripts[chatID] = history

		rendered := renderSegments(services.ResolveReferences(reply, catalog))
		msg := tgbotapi.NewMessage(chatID, rendered)
		bot.Send(msg)
	}
}
