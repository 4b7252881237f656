package tasks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylistapi/dbhelper"
	"stylistapi/models"
	"stylistapi/test"
)

func stringPtr(s string) *string {
	return &s
}

func TestTryOnGenerationTaskCompletes(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	session := models.StylingSession{
		UserAccountID: user.ID,
		PhotoDataURI:  stringPtr(test.TinyImageDataURI),
		TryOnSeq:      1,
	}
	db.Create(&session)

	gen := models.TryOnGeneration{
		SessionID: session.ID, UserAccountID: user.ID, Seq: 1,
		ItemID: "c1", SceneID: "sc1", Pose: "自然站立", Expression: "自然微笑",
		Status: models.TryOnStatusPending,
	}
	db.Create(&gen)

	fakeTask, err := NewTryOnGenerationTask(gen.ID)
	require.NoError(t, err)

	err = HandleTryOnGenerationTask(context.Background(), fakeTask, db, test.MockStylist{}, &test.AWSProviderMock{}, nil)
	require.NoError(t, err)

	var saved models.TryOnGeneration
	db.First(&saved, gen.ID)
	assert.Equal(t, models.TryOnStatusCompleted, saved.Status)
	require.NotNil(t, saved.ResultImageKey)
	assert.Contains(t, *saved.ResultImageKey, "tryons/")
	require.NotNil(t, saved.Duration)
	require.NotNil(t, saved.LLMModel)
	assert.Equal(t, "gemini-2.5-flash-image", *saved.LLMModel)
	require.NotNil(t, saved.LLMTotalTokenCount)
	assert.Equal(t, int32(11), *saved.LLMTotalTokenCount)

	// latest generation applies its preview to the session
	var freshSession models.StylingSession
	db.First(&freshSession, session.ID)
	require.NotNil(t, freshSession.TryOnPreviewKey)
	assert.Equal(t, *saved.ResultImageKey, *freshSession.TryOnPreviewKey)
}

func TestTryOnGenerationTaskStaleSeqKeepsPreview(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	// the session already moved on to seq 3
	session := models.StylingSession{
		UserAccountID:   user.ID,
		PhotoDataURI:    stringPtr(test.TinyImageDataURI),
		TryOnSeq:        3,
		TryOnPreviewKey: stringPtr("tryons/old-preview.jpg"),
	}
	db.Create(&session)

	gen := models.TryOnGeneration{
		SessionID: session.ID, UserAccountID: user.ID, Seq: 2,
		ItemID: "c1", SceneID: "sc1", Status: models.TryOnStatusPending,
	}
	db.Create(&gen)

	fakeTask, err := NewTryOnGenerationTask(gen.ID)
	require.NoError(t, err)

	err = HandleTryOnGenerationTask(context.Background(), fakeTask, db, test.MockStylist{}, &test.AWSProviderMock{}, nil)
	require.NoError(t, err)

	// the row itself completes, the session preview stays put
	var saved models.TryOnGeneration
	db.First(&saved, gen.ID)
	assert.Equal(t, models.TryOnStatusCompleted, saved.Status)

	var freshSession models.StylingSession
	db.First(&freshSession, session.ID)
	require.NotNil(t, freshSession.TryOnPreviewKey)
	assert.Equal(t, "tryons/old-preview.jpg", *freshSession.TryOnPreviewKey)
}

func TestTryOnGenerationTaskNoImage(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	session := models.StylingSession{
		UserAccountID: user.ID,
		PhotoDataURI:  stringPtr(test.TinyImageDataURI),
		TryOnSeq:      1,
	}
	db.Create(&session)

	gen := models.TryOnGeneration{
		SessionID: session.ID, UserAccountID: user.ID, Seq: 1,
		ItemID: "c1", SceneID: "sc1", Status: models.TryOnStatusPending,
	}
	db.Create(&gen)

	fakeTask, err := NewTryOnGenerationTask(gen.ID)
	require.NoError(t, err)

	err = HandleTryOnGenerationTask(context.Background(), fakeTask, db, test.NoImageStylist{}, &test.AWSProviderMock{}, nil)
	assert.Error(t, err)

	var saved models.TryOnGeneration
	db.First(&saved, gen.ID)
	assert.Equal(t, models.TryOnStatusFailed, saved.Status)
	require.NotNil(t, saved.GenerationErrorMessage)
	assert.Contains(t, *saved.GenerationErrorMessage, "no image generated")

	var freshSession models.StylingSession
	db.First(&freshSession, session.ID)
	assert.Nil(t, freshSession.TryOnPreviewKey)
}

func TestTryOnGenerationTaskModelError(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	session := models.StylingSession{
		UserAccountID: user.ID,
		PhotoDataURI:  stringPtr(test.TinyImageDataURI),
		TryOnSeq:      1,
	}
	db.Create(&session)

	gen := models.TryOnGeneration{
		SessionID: session.ID, UserAccountID: user.ID, Seq: 1,
		ItemID: "c1", SceneID: "sc1", Status: models.TryOnStatusPending,
	}
	db.Create(&gen)

	fakeTask, err := NewTryOnGenerationTask(gen.ID)
	require.NoError(t, err)

	err = HandleTryOnGenerationTask(context.Background(), fakeTask, db, test.FailingStylist{}, &test.AWSProviderMock{}, nil)
	assert.Error(t, err)

	var saved models.TryOnGeneration
	db.First(&saved, gen.ID)
	assert.Equal(t, models.TryOnStatusFailed, saved.Status)
}

func TestTryOnGenerationTaskSkipsNonPending(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	session := models.StylingSession{
		UserAccountID: user.ID,
		PhotoDataURI:  stringPtr(test.TinyImageDataURI),
		TryOnSeq:      1,
	}
	db.Create(&session)

	gen := models.TryOnGeneration{
		SessionID: session.ID, UserAccountID: user.ID, Seq: 1,
		ItemID: "c1", SceneID: "sc1", Status: models.TryOnStatusCompleted,
		ResultImageKey: stringPtr("tryons/done.jpg"),
	}
	db.Create(&gen)

	fakeTask, err := NewTryOnGenerationTask(gen.ID)
	require.NoError(t, err)

	// a redelivered task for a finished row is a no-op
	err = HandleTryOnGenerationTask(context.Background(), fakeTask, db, test.FailingStylist{}, &test.AWSProviderMock{}, nil)
	assert.NoError(t, err)

	var saved models.TryOnGeneration
	db.First(&saved, gen.ID)
	assert.Equal(t, models.TryOnStatusCompleted, saved.Status)
}

func TestTryOnGenerationTaskMissingPhoto(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	session := models.StylingSession{UserAccountID: user.ID, TryOnSeq: 1}
	db.Create(&session)

	gen := models.TryOnGeneration{
		SessionID: session.ID, UserAccountID: user.ID, Seq: 1,
		ItemID: "c1", SceneID: "sc1", Status: models.TryOnStatusPending,
	}
	db.Create(&gen)

	fakeTask, err := NewTryOnGenerationTask(gen.ID)
	require.NoError(t, err)

	err = HandleTryOnGenerationTask(context.Background(), fakeTask, db, test.MockStylist{}, &test.AWSProviderMock{}, nil)
	assert.Error(t, err)

	var saved models.TryOnGeneration
	db.First(&saved, gen.ID)
	assert.Equal(t, models.TryOnStatusFailed, saved.Status)
	require.NotNil(t, saved.GenerationErrorMessage)
	assert.Equal(t, "could not load the uploaded photo", *saved.GenerationErrorMessage)
}
