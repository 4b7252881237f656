package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylistapi/dbhelper"
	"stylistapi/models"
	"stylistapi/services"
	"stylistapi/test"
)

func TestGetSessionCreatesDefaults(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.MockStylist{}, &test.AWSProviderMock{}, nil, &test.AsynqClientMock{}, nil, &test.URLCacheMock{})
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/studio/session", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response SessionOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, services.DefaultPose, response.Pose)
	assert.Equal(t, services.DefaultExpression, response.Expression)
	assert.False(t, response.PhotoSet)
	assert.False(t, response.Analyzed)
	assert.Nil(t, response.SelectedItemID)
	assert.Equal(t, uint(0), response.TryOnSeq)

	// second fetch reuses the same row
	var count int64
	db.Model(&models.StylingSession{}).Where("user_account_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListScenes(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.MockStylist{}, &test.AWSProviderMock{}, nil, &test.AsynqClientMock{}, nil, &test.URLCacheMock{})
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/studio/scenes", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var scenes []models.Scene
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scenes))
	assert.Len(t, scenes, len(models.CatalogScenes))
	assert.Equal(t, "sc1", scenes[0].SceneID)
}

func TestSetPhotoDataURI(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.MockStylist{}, &test.AWSProviderMock{}, nil, &test.AsynqClientMock{}, nil, &test.URLCacheMock{})
	user := test.FakeUser(db)

	reqBody := models.SessionPhotoIn{Image: test.TinyImageDataURI}
	req := test.NewJSONAuthRequest("POST", "/studio/photo", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response SessionOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.PhotoSet)

	var session models.StylingSession
	db.Where("user_account_id = ?", user.ID).First(&session)
	require.NotNil(t, session.PhotoDataURI)
	assert.Equal(t, test.TinyImageDataURI, *session.PhotoDataURI)
	assert.Nil(t, session.PhotoKey)
}

func TestSetPhotoRejectsBareBase64(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.MockStylist{}, &test.AWSProviderMock{}, nil, &test.AsynqClientMock{}, nil, &test.URLCacheMock{})
	user := test.FakeUser(db)

	reqBody := models.SessionPhotoIn{Image: "aGVsbG8="}
	req := test.NewJSONAuthRequest("POST", "/studio/photo", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPresignPhotoUpload(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.MockStylist{}, &test.AWSProviderMock{}, nil, &test.AsynqClientMock{}, nil, &test.URLCacheMock{})
	user := test.FakeUser(db)

	reqBody := SetPhotoUploadFileRequest{FileName: StrPointer("me.jpg")}
	req := test.NewJSONAuthRequest("POST", "/studio/photo/presign", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Contains(t, response["upload_url"], response["key"])

	// switching to a presigned photo clears any inline one
	var session models.StylingSession
	db.Where("user_account_id = ?", user.ID).First(&session)
	require.NotNil(t, session.PhotoKey)
	assert.Nil(t, session.PhotoDataURI)
}

func TestSelectItemAndScene(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.MockStylist{}, &test.AWSProviderMock{}, nil, &test.AsynqClientMock{}, nil, &test.URLCacheMock{})
	user := test.FakeUser(db)

	reqBody := models.SessionSelectIn{ItemID: StrPointer("c1"), SceneID: StrPointer("sc2")}
	req := test.NewJSONAuthRequest("POST", "/studio/select", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response SessionOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.SelectedItemID)
	assert.Equal(t, "c1", *response.SelectedItemID)
	require.NotNil(t, response.SelectedSceneID)
	assert.Equal(t, "sc2", *response.SelectedSceneID)
}

func TestSelectUnknownItem(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.MockStylist{}, &test.AWSProviderMock{}, nil, &test.AsynqClientMock{}, nil, &test.URLCacheMock{})
	user := test.FakeUser(db)

	reqBody := models.SessionSelectIn{ItemID: StrPointer("nope")}
	req := test.NewJSONAuthRequest("POST", "/studio/select", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSelectOtherUsersCustomItem(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.MockStylist{}, &test.AWSProviderMock{}, nil, &test.AsynqClientMock{}, nil, &test.URLCacheMock{})
	user := test.FakeUser(db)
	other := test.FakeUserV2(db, "Other", "other@example.com")

	db.Create(&models.ClothingItem{ItemID: "custom-their001", Name: "别人的", Category: models.CategoryCustom, Image: test.TinyImageDataURI, IsCustom: true, OwnerID: &other.ID})

	reqBody := models.SessionSelectIn{ItemID: StrPointer("custom-their001")}
	req := test.NewJSONAuthRequest("POST", "/studio/select", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfigPoseExpression(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.MockStylist{}, &test.AWSProviderMock{}, nil, &test.AsynqClientMock{}, nil, &test.URLCacheMock{})
	user := test.FakeUser(db)

	reqBody := models.SessionConfigIn{Pose: "双手插兜", Expression: "开心大笑"}
	req := test.NewJSONAuthRequest("POST", "/studio/config", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response SessionOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "双手插兜", response.Pose)
	assert.Equal(t, "开心大笑", response.Expression)

	// blank values fall back to the defaults
	reqBody = models.SessionConfigIn{Pose: "  ", Expression: ""}
	req = test.NewJSONAuthRequest("POST", "/studio/config", UIntToStr(user.ID), reqBody)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, services.DefaultPose, response.Pose)
	assert.Equal(t, services.DefaultExpression, response.Expression)
}

func TestResetSession(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.MockStylist{}, &test.AWSProviderMock{}, nil, &test.AsynqClientMock{}, nil, &test.URLCacheMock{})
	user := test.FakeUser(db)

	session, err := GetOrCreateSession(db, user.ID)
	require.NoError(t, err)
	session.PhotoDataURI = StrPointer(test.TinyImageDataURI)
	session.SelectedItemID = StrPointer("c1")
	session.SelectedSceneID = StrPointer("sc1")
	session.Pose = "双手插兜"
	session.Expression = "开心大笑"
	session.Analyzed = true
	session.BodyType = "沙漏型"
	session.SuggestedItemIDs = []string{"c1", "f2"}
	session.TryOnPreviewKey = StrPointer("tryons/1/tryon-1.jpg")
	session.TryOnSeq = 5
	require.NoError(t, db.Save(session).Error)

	db.Create(&models.ChatMessage{SessionID: session.ID, Role: "user", Text: "hi"})
	db.Create(&models.ClothingItem{ItemID: "custom-mine0001", Name: "我的", Category: models.CategoryCustom, Image: test.TinyImageDataURI, IsCustom: true, OwnerID: &user.ID})

	req := test.NewJSONAuthRequest("POST", "/studio/reset", UIntToStr(user.ID), nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response SessionOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.PhotoSet)
	assert.False(t, response.Analyzed)
	assert.Nil(t, response.SelectedItemID)
	assert.Nil(t, response.TryOnPreviewURL)
	assert.Equal(t, services.DefaultPose, response.Pose)
	// the generation counter survives the reset
	assert.Equal(t, uint(5), response.TryOnSeq)

	var chatCount, customCount int64
	db.Model(&models.ChatMessage{}).Where("session_id = ?", session.ID).Count(&chatCount)
	assert.Equal(t, int64(0), chatCount)
	db.Model(&models.ClothingItem{}).Where("is_custom = true and owner_id = ?", user.ID).Count(&customCount)
	assert.Equal(t, int64(0), customCount)

	var fresh models.StylingSession
	db.Where("user_account_id = ?", user.ID).First(&fresh)
	assert.Nil(t, fresh.PhotoDataURI)
	assert.Nil(t, fresh.TryOnPreviewKey)
	assert.Equal(t, "", fresh.BodyType)
	assert.Equal(t, session.ID, fresh.ID)
}
