package test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/hibiken/asynq"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"stylistapi/models"
	"stylistapi/services"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing user token for %s. Error %s ", userPk, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func NewJSONAuthRequestRaw(method string, target string, userPk string, json string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(json))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func NewRefString(data string) *string {
	return &data
}

func Contains(items []string, lookFor string) bool {

	for i := 0; i < len(items); i++ {

		if items[i] == lookFor {
			return true
		}
	}
	return false
}

func FakeUser(db *gorm.DB) *models.UserAccount {
	user := &models.UserAccount{
		Name:     "OurName",
		Email:    "email@example.com",
		GoogleID: "12232",
		Platform: models.PlatformIOS,
		LastIp:   "123.122.122.122",
		Status:   "FINISHED_AUTH",
	}
	db.Create(&user)

	tokenDb := models.UserPushToken{
		UserAccountID: user.ID,
		Platform:      "android",
		Token:         "cX-UZ3zwQEiPt-2GJkG2gA:APA91bGqRflaGrJrnynhRwZ442HdgUjVcO7mWMFnx6IwAdJ9RRKopvSP4QU7hbvTmk1XAp8XGvtHZLvo5JmOPTVKBbGqqvhfbZWKlXA9csEjx1hgpNvrWepU-rqG1sxS8_WCF5cGZchf",
		Active:        true,
	}
	db.Save(&tokenDb)
	return user
}

func FakeUserV2(db *gorm.DB, userName string, email string) *models.UserAccount {

	if email == "" {
		email = "email@example.com"
	}
	user := &models.UserAccount{
		Name:     userName,
		Email:    email,
		GoogleID: "12232",
		Platform: models.PlatformIOS,
		LastIp:   "123.122.122.122",
		Status:   "FINISHED_AUTH",
	}
	db.Create(&user)
	return user
}

// TinyImageDataURI is a syntactically valid jpeg data URI used wherever a
// handler only needs the payload to decode.
const TinyImageDataURI = "data:image/jpeg;base64,/9j/4AAQSkZJRg=="

type GoogleServiceMock struct{}

func (gsm GoogleServiceMock) ValidateIdToken(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error) {

	return &idtoken.Payload{Issuer: "Issue", Audience: "AAA", Expires: 119919191919, IssuedAt: 12312321321, Subject: "fake@example.com", Claims: map[string]interface{}{
		"email":   "fake@example.com",
		"picture": "pictureurl",
		"sub":     "123googleid",
	}}, nil

}

type AWSProviderMock struct {
	MockUrl string
}

func (awsService AWSProviderMock) InitPresignClient(ctx context.Context) error {
	return nil
}

func (awsService AWSProviderMock) PresignLink(ctx context.Context, bucketName string, fileName string) (string, error) {

	return fmt.Sprintf("https://fakebucketurl.com/%s", fileName), nil
}

func (awsService AWSProviderMock) GetPresignedR2FileReadURL(ctx context.Context, bucketName, fileKey string) (string, error) {
	return awsService.MockUrl, nil
}

func (awsService AWSProviderMock) UploadToPresignedURL(ctx context.Context, bucketName, url string, fileContent []byte) (string, int, error) {
	// Simulate a successful upload
	return url, 204, nil
}

// AsynqClientMock records enqueued tasks instead of touching a broker.
type AsynqClientMock struct {
	Enqueued []*asynq.Task
	Fail     bool
}

func (m *AsynqClientMock) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.Fail {
		return nil, fmt.Errorf("broker unavailable")
	}
	m.Enqueued = append(m.Enqueued, task)
	return &asynq.TaskInfo{ID: fmt.Sprintf("fake-task-%v", len(m.Enqueued))}, nil
}

type URLCacheMock struct {
	MockUrl string
}

func (m URLCacheMock) GetReadURL(ctx context.Context, fileKey string) (string, error) {
	if m.MockUrl != "" {
		return m.MockUrl, nil
	}
	return fmt.Sprintf("https://fakecdn.com/%s", fileKey), nil
}

// MockStylist answers every call with fixed content: a full analysis record,
// one generated image and a chat reply carrying an inventory reference.
type MockStylist struct{}

func mockUsage() services.LLMResponse {
	return services.LLMResponse{
		InputTokenCount:    10,
		TotalTokenCount:    11,
		ThoughtsTokenCount: 12,
		OutputTokenCount:   13,
	}
}

func (m MockStylist) AnalyzeUserPhoto(personImage string, inventoryContext string, modelName services.LLMModelName) (*services.AnalysisData, *services.LLMResponse, error) {
	data := services.AnalysisData{
		BodyType:              "沙漏型",
		SkinTone:              "暖色调",
		StyleAdvice:           "建议尝试收腰剪裁。",
		CurrentOutfitCritique: "整体不错，可以加一条腰带。",
		TrendingNow:           "千禧风正在回归。",
		SuggestedItemIds:      []string{"c1", "f2", "bc1"},
	}
	usage := mockUsage()
	usage.Response = JsonString(data)
	return &data, &usage, nil
}

func (m MockStylist) GenerateTryOn(req services.TryOnRequest, modelName services.LLMModelName) (*services.LLMResponse, error) {
	usage := mockUsage()
	usage.Response = "Here is your look."
	usage.Images = [][]byte{{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}}
	return &usage, nil
}

func (m MockStylist) ChatReply(history []services.ChatTurn, newMessage string, inventoryContext string, modelName services.LLMModelName) (string, error) {
	return "这件 [[c1]] 很适合你！", nil
}

// FailingStylist errors on every call, for fallback paths.
type FailingStylist struct{}

func (m FailingStylist) AnalyzeUserPhoto(personImage string, inventoryContext string, modelName services.LLMModelName) (*services.AnalysisData, *services.LLMResponse, error) {
	return nil, nil, fmt.Errorf("model unavailable")
}

func (m FailingStylist) GenerateTryOn(req services.TryOnRequest, modelName services.LLMModelName) (*services.LLMResponse, error) {
	return nil, fmt.Errorf("model unavailable")
}

func (m FailingStylist) ChatReply(history []services.ChatTurn, newMessage string, inventoryContext string, modelName services.LLMModelName) (string, error) {
	return "", fmt.Errorf("model unavailable")
}

// NoImageStylist succeeds but returns text only, no image parts.
type NoImageStylist struct {
	MockStylist
}

func (m NoImageStylist) GenerateTryOn(req services.TryOnRequest, modelName services.LLMModelName) (*services.LLMResponse, error) {
	usage := mockUsage()
	usage.Response = "抱歉，我无法生成这张图片。"
	return &usage, nil
}
