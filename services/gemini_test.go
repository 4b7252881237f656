package services

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStylist struct{}

func (brokenStylist) AnalyzeUserPhoto(personImage string, inventoryContext string, modelName LLMModelName) (*AnalysisData, *LLMResponse, error) {
	return nil, nil, fmt.Errorf("model unavailable")
}

func (brokenStylist) GenerateTryOn(req TryOnRequest, modelName LLMModelName) (*LLMResponse, error) {
	return nil, fmt.Errorf("model unavailable")
}

func (brokenStylist) ChatReply(history []ChatTurn, newMessage string, inventoryContext string, modelName LLMModelName) (string, error) {
	return "", fmt.Errorf("model unavailable")
}

type cannedStylist struct {
	data AnalysisData
}

func (s cannedStylist) AnalyzeUserPhoto(personImage string, inventoryContext string, modelName LLMModelName) (*AnalysisData, *LLMResponse, error) {
	data := s.data
	return &data, &LLMResponse{TotalTokenCount: 42}, nil
}

func (cannedStylist) GenerateTryOn(req TryOnRequest, modelName LLMModelName) (*LLMResponse, error) {
	return &LLMResponse{}, nil
}

func (cannedStylist) ChatReply(history []ChatTurn, newMessage string, inventoryContext string, modelName LLMModelName) (string, error) {
	return "ok", nil
}

func TestLLMModelNames(t *testing.T) {
	assert.Equal(t, "gemini-2.5-pro", Pro25.String())
	assert.Equal(t, "gemini-2.5-flash", Flash25.String())
	assert.Equal(t, "gemini-2.5-flash-lite", FlashLite25.String())
	assert.Equal(t, "gemini-2.5-flash-image", Flash25Image.String())
}

func TestFirstTryOnImage(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03}
	resp := &LLMResponse{Images: [][]byte{raw}}
	uri, err := FirstTryOnImage(resp)
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(raw), uri)
}

func TestFirstTryOnImageNoImage(t *testing.T) {
	_, err := FirstTryOnImage(&LLMResponse{Response: "some refusal text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image generated")

	_, err = FirstTryOnImage(nil)
	assert.Error(t, err)
}

func TestAnalyzeWithFallbackSuccess(t *testing.T) {
	canned := cannedStylist{data: AnalysisData{
		BodyType:         "沙漏型",
		SkinTone:         "暖色调",
		SuggestedItemIds: []string{"c1", "f2", "bc1"},
	}}
	data, usage := AnalyzeWithFallback(canned, "aGVsbG8=", "", Flash25)
	assert.Equal(t, "沙漏型", data.BodyType)
	require.NotNil(t, usage)
	assert.Equal(t, int32(42), usage.TotalTokenCount)
}

func TestAnalyzeWithFallbackError(t *testing.T) {
	data, _ := AnalyzeWithFallback(brokenStylist{}, "aGVsbG8=", "", Flash25)
	assert.Equal(t, FallbackAnalysis(), data)
	assert.Equal(t, "未知", data.BodyType)
	assert.Equal(t, "无法分析图片，请尝试上传更清晰的照片。", data.StyleAdvice)
	assert.Equal(t, []string{}, data.SuggestedItemIds)
}

func TestAnalyzeWithFallbackNilSuggestions(t *testing.T) {
	data, _ := AnalyzeWithFallback(cannedStylist{data: AnalysisData{BodyType: "梨型"}}, "aGVsbG8=", "", Flash25)
	assert.NotNil(t, data.SuggestedItemIds)
	assert.Empty(t, data.SuggestedItemIds)
}

func TestInitialAnalysisPlaceholders(t *testing.T) {
	data := InitialAnalysis()
	assert.Equal(t, "等待分析...", data.BodyType)
	assert.Equal(t, "等待分析...", data.SkinTone)
	assert.Equal(t, "上传照片以获取个性化建议。", data.StyleAdvice)
	assert.Equal(t, "暂无。", data.CurrentOutfitCritique)
	assert.Equal(t, "正在加载趋势...", data.TrendingNow)
	assert.Empty(t, data.SuggestedItemIds)
}
