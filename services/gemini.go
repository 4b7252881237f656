package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"

	"stylistapi/models"
)

// LLMModelName is the Gemini model a call runs against.
type LLMModelName int32

const (
	Pro25 LLMModelName = iota
	Flash25
	FlashLite25
	Flash25Image
)

func (t LLMModelName) String() string {
	switch t {
	case Pro25:
		return "gemini-2.5-pro"
	case Flash25:
		return "gemini-2.5-flash"
	case FlashLite25:
		return "gemini-2.5-flash-lite"
	case Flash25Image:
		return "gemini-2.5-flash-image"
	default:
		return "gemini-2.5-flash"
	}
}

func floatPointer(f float32) *float32 {
	return &f
}

func Int32Pointer(i int32) *int32 {
	return &i
}

type LLMResponse struct {
	Response           string   `json:"response"`
	Images             [][]byte `json:"images,omitempty"`
	InputTokenCount    int32    `json:"input_token_count"`
	ThoughtsTokenCount int32    `json:"thoughts_token_count"`
	OutputTokenCount   int32    `json:"output_token_count"`
	TotalTokenCount    int32    `json:"total_token_count"`
}

// AnalysisData is the schema-constrained result of a photo analysis.
type AnalysisData struct {
	BodyType              string   `json:"bodyType"`
	SkinTone              string   `json:"skinTone"`
	StyleAdvice           string   `json:"styleAdvice"`
	CurrentOutfitCritique string   `json:"currentOutfitCritique"`
	TrendingNow           string   `json:"trendingNow"`
	SuggestedItemIds      []string `json:"suggestedItemIds"`
}

// InitialAnalysis is what clients see before the first analysis run.
func InitialAnalysis() AnalysisData {
	return AnalysisData{
		BodyType:              "等待分析...",
		SkinTone:              "等待分析...",
		StyleAdvice:           "上传照片以获取个性化建议。",
		CurrentOutfitCritique: "暂无。",
		TrendingNow:           "正在加载趋势...",
		SuggestedItemIds:      []string{},
	}
}

// FallbackAnalysis replaces any failed analysis. The caller never sees an
// error, only this record.
func FallbackAnalysis() AnalysisData {
	return AnalysisData{
		BodyType:              "未知",
		SkinTone:              "未知",
		StyleAdvice:           "无法分析图片，请尝试上传更清晰的照片。",
		CurrentOutfitCritique: "暂无",
		TrendingNow:           "暂无",
		SuggestedItemIds:      []string{},
	}
}

// ChatFallbackReply is appended as the model turn whenever a chat call fails.
const ChatFallbackReply = "抱歉，我现在无法连接到时尚网络。"

type ChatTurn struct {
	Role string `json:"role"` // user, model
	Text string `json:"text"`
}

type TryOnRequest struct {
	// person photo as data URI or bare base64
	PersonImage string
	Item        models.ClothingItem
	// overrides Item.Image when the garment was preprocessed (background
	// whitening); empty means use Item.Image
	GarmentImage string
	ScenePrompt  string
	Pose         string
	Expression   string
}

type LLMStylist interface {
	AnalyzeUserPhoto(personImage string, inventoryContext string, modelName LLMModelName) (*AnalysisData, *LLMResponse, error)
	GenerateTryOn(req TryOnRequest, modelName LLMModelName) (*LLMResponse, error)
	ChatReply(history []ChatTurn, newMessage string, inventoryContext string, modelName LLMModelName) (string, error)
}

type GoogleLLMStylist struct{}

func newGeminiClient(ctx context.Context) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GOOGLE_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
}

func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: "object",
		Properties: map[string]*genai.Schema{
			"bodyType":              {Type: "string", Description: "Estimated body type"},
			"skinTone":              {Type: "string", Description: "Estimated skin tone"},
			"styleAdvice":           {Type: "string", Description: "General clothing advice"},
			"currentOutfitCritique": {Type: "string", Description: "Critique of current outfit"},
			"trendingNow":           {Type: "string", Description: "Fashion trends tip"},
			"suggestedItemIds": {
				Type:        "array",
				Items:       &genai.Schema{Type: "string"},
				Description: "List of exactly 3 Clothing IDs from the provided inventory that would suit the user best.",
			},
		},
		Required: []string{"bodyType", "skinTone", "styleAdvice", "currentOutfitCritique", "trendingNow", "suggestedItemIds"},
	}
}

func GetAllInlineImages(result *genai.GenerateContentResponse) ([][]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("empty response")
	}

	var allImageData [][]byte
	for _, cand := range result.Candidates {
		for _, rating := range cand.SafetyRatings {
			if rating.Blocked {
				return nil, fmt.Errorf("content blocked by safety setting: %s", rating.Category)
			}
		}
		if cand.Content == nil || len(cand.Content.Parts) == 0 {
			continue
		}
		for _, part := range cand.Content.Parts {
			inlineData := part.InlineData
			if inlineData == nil {
				continue
			}
			if strings.HasPrefix(inlineData.MIMEType, "image/") && len(inlineData.Data) > 0 {
				allImageData = append(allImageData, inlineData.Data)
			}
		}
	}
	if len(allImageData) == 0 {
		return nil, nil
	}
	return allImageData, nil
}

func getFirstCandidateText(result *genai.GenerateContentResponse) (string, error) {
	for _, c := range result.Candidates {
		fmt.Println("Finish reason: ", c.FinishReason, " Finish message: ", c.FinishMessage)
		for _, rating := range c.SafetyRatings {
			if rating.Blocked {
				return "", fmt.Errorf("content violation: response blocked, because it contains %s", rating.Category)
			}
		}
	}
	return result.Text(), nil
}

func usageFromResult(result *genai.GenerateContentResponse) (int32, int32, int32, int32) {
	if result.UsageMetadata == nil {
		fmt.Println("UsageMetadata is nil!")
		return 0, 0, 0, 0
	}
	inputTokenCount := result.UsageMetadata.PromptTokenCount
	thoughtsTokenCount := result.UsageMetadata.ThoughtsTokenCount
	outputTokenCount := result.UsageMetadata.CandidatesTokenCount
	totalTokenCount := result.UsageMetadata.TotalTokenCount
	fmt.Println("Input token count:", inputTokenCount)
	fmt.Println("Output token count:", outputTokenCount)
	fmt.Println("Thoughts token count:", thoughtsTokenCount)
	fmt.Println("Total token count:", totalTokenCount)
	return inputTokenCount, thoughtsTokenCount, outputTokenCount, totalTokenCount
}

func (GoogleLLMStylist) AnalyzeUserPhoto(personImage string, inventoryContext string, modelName LLMModelName) (*AnalysisData, *LLMResponse, error) {
	ctx := context.Background()
	client, err := newGeminiClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating genai client: %v", err)
	}

	photoBytes, err := DecodeImagePayload(personImage)
	if err != nil {
		return nil, nil, err
	}

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: photoBytes}},
		{Text: BuildAnalysisInstruction(inventoryContext)},
	}

	result, err := client.Models.GenerateContent(ctx, modelName.String(), []*genai.Content{{Parts: parts}}, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema(),
		CandidateCount:   1,
		MaxOutputTokens:  8000,
		Temperature:      floatPointer(0.8),
	})
	if err != nil {
		fmt.Println("Error in GenerateContent:", err)
		return nil, nil, fmt.Errorf("%v", err)
	}

	inputTokenCount, thoughtsTokenCount, outputTokenCount, totalTokenCount := usageFromResult(result)
	if result.PromptFeedback != nil {
		fmt.Println(result.PromptFeedback.BlockReason)
		fmt.Println(result.PromptFeedback.BlockReasonMessage)
		return nil, nil, fmt.Errorf("content violation: %s", result.PromptFeedback.BlockReasonMessage)
	}

	text, err := getFirstCandidateText(result)
	if err != nil {
		return nil, nil, err
	}
	if text == "" {
		return nil, nil, fmt.Errorf("no analysis generated")
	}

	var data AnalysisData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		fmt.Println("Error parsing analysis JSON:", err, text)
		return nil, nil, fmt.Errorf("error parsing analysis response: %v", err)
	}

	return &data, &LLMResponse{
		Response:           text,
		InputTokenCount:    inputTokenCount,
		ThoughtsTokenCount: thoughtsTokenCount,
		OutputTokenCount:   outputTokenCount,
		TotalTokenCount:    totalTokenCount,
	}, nil
}

// AnalyzeWithFallback never fails: any analysis error degrades to the fixed
// placeholder record so the caller always has something to render.
func AnalyzeWithFallback(stylist LLMStylist, personImage string, inventoryContext string, modelName LLMModelName) (AnalysisData, *LLMResponse) {
	data, usage, err := stylist.AnalyzeUserPhoto(personImage, inventoryContext, modelName)
	if err != nil || data == nil {
		fmt.Println("Analysis failed:", err)
		sentry.CaptureException(fmt.Errorf("analysis failed: %v", err))
		return FallbackAnalysis(), usage
	}
	if data.SuggestedItemIds == nil {
		data.SuggestedItemIds = []string{}
	}
	return *data, usage
}

func (GoogleLLMStylist) GenerateTryOn(req TryOnRequest, modelName LLMModelName) (*LLMResponse, error) {
	ctx := context.Background()
	client, err := newGeminiClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating genai client: %v", err)
	}

	personBytes, err := DecodeImagePayload(req.PersonImage)
	if err != nil {
		return nil, fmt.Errorf("error decoding person image: %v", err)
	}

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: personBytes}},
	}
	if UsesGarmentImage(req.Item) {
		garmentImage := req.GarmentImage
		if garmentImage == "" {
			garmentImage = req.Item.Image
		}
		garmentBytes, err := DecodeImagePayload(garmentImage)
		if err != nil {
			return nil, fmt.Errorf("error decoding garment image: %v", err)
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: garmentBytes}})
	}
	parts = append(parts, &genai.Part{Text: BuildTryOnInstruction(req.Item, req.ScenePrompt, req.Pose, req.Expression)})

	result, err := client.Models.GenerateContent(ctx, modelName.String(), []*genai.Content{{Parts: parts}}, &genai.GenerateContentConfig{
		CandidateCount:  1,
		MaxOutputTokens: 50000,
		Temperature:     floatPointer(1),
	})
	if err != nil {
		fmt.Println("Error in GenerateContent:", err)
		return nil, fmt.Errorf("%v", err)
	}

	inputTokenCount, thoughtsTokenCount, outputTokenCount, totalTokenCount := usageFromResult(result)
	if result.PromptFeedback != nil {
		fmt.Println(result.PromptFeedback.BlockReason)
		fmt.Println(result.PromptFeedback.BlockReasonMessage)
		fmt.Println(result.PromptFeedback.SafetyRatings)
		return nil, fmt.Errorf("content violation: %s", result.PromptFeedback.BlockReasonMessage)
	}

	fmt.Println("Number of candidates received:", len(result.Candidates))
	llmResponseImagesBytes, err := GetAllInlineImages(result)
	if err != nil {
		fmt.Println("Error getting candidate images: ", err)
		return nil, fmt.Errorf("error getting candidate images: %v", err)
	}
	fmt.Println("Number of images extracted:", len(llmResponseImagesBytes))

	text, err := getFirstCandidateText(result)
	if err != nil {
		return nil, err
	}

	return &LLMResponse{
		Response:           text,
		Images:             llmResponseImagesBytes,
		InputTokenCount:    inputTokenCount,
		ThoughtsTokenCount: thoughtsTokenCount,
		OutputTokenCount:   outputTokenCount,
		TotalTokenCount:    totalTokenCount,
	}, nil
}

// FirstTryOnImage returns the first generated image rewrapped as a data URI.
// There is no placeholder result: absence of an image part is an error and the
// generation is surfaced as failed.
func FirstTryOnImage(resp *LLMResponse) (string, error) {
	if resp == nil || len(resp.Images) == 0 {
		return "", fmt.Errorf("no image generated")
	}
	return EncodeJPEGDataURI(resp.Images[0]), nil
}

func (GoogleLLMStylist) ChatReply(history []ChatTurn, newMessage string, inventoryContext string, modelName LLMModelName) (string, error) {
	ctx := context.Background()
	client, err := newGeminiClient(ctx)
	if err != nil {
		return "", fmt.Errorf("error creating genai client: %v", err)
	}

	var contents []*genai.Content
	for _, turn := range history {
		contents = append(contents, &genai.Content{
			Role:  turn.Role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: newMessage}},
	})

	result, err := client.Models.GenerateContent(ctx, modelName.String(), contents, &genai.GenerateContentConfig{
		CandidateCount:  1,
		MaxOutputTokens: 8000,
		Temperature:     floatPointer(1),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: BuildChatSystemInstruction(inventoryContext)}},
		},
	})
	if err != nil {
		fmt.Println("Error in GenerateContent:", err)
		return "", fmt.Errorf("%v", err)
	}
	if result.PromptFeedback != nil {
		fmt.Println(result.PromptFeedback.BlockReason)
		fmt.Println(result.PromptFeedback.BlockReasonMessage)
		return "", fmt.Errorf("content violation: %s", result.PromptFeedback.BlockReasonMessage)
	}

	text, err := getFirstCandidateText(result)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("no reply generated")
	}
	return text, nil
}
