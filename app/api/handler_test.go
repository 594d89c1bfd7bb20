package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sahayak/qa"
	"sahayak/store"
	"sahayak/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore satisfies store.DBStorer for handler tests.
type stubStore struct {
	progress         *types.OnboardingProgress
	onboardingFields map[string]any
	downloads        []types.DownloadItem
}

var _ store.DBStorer = (*stubStore)(nil)

func (s *stubStore) UpsertProfile(context.Context, types.UserProfile) error { return nil }

func (s *stubStore) GetProfile(context.Context, uuid.UUID) (*types.UserProfile, error) {
	return nil, fiber.ErrNotFound
}

func (s *stubStore) UpsertOnboarding(_ context.Context, _ uuid.UUID, fields map[string]any) error {
	s.onboardingFields = fields
	return nil
}

func (s *stubStore) GetOnboarding(context.Context, uuid.UUID) (*types.OnboardingProgress, error) {
	if s.progress == nil {
		return nil, fiber.ErrNotFound
	}
	return s.progress, nil
}

func (s *stubStore) UpsertDownload(context.Context, types.DownloadItem) error { return nil }

func (s *stubStore) ListDownloads(context.Context) ([]types.DownloadItem, error) {
	return s.downloads, nil
}

func testRegistry() qa.Registry {
	pack := &qa.Pack{Chapters: []qa.ChapterNode{
		{Concepts: []qa.ConceptNode{{
			Topic:    "Inertia",
			Keywords: []string{"inertia"},
			Payload:  &qa.ConceptPayload{ExplanationText: "Objects resist changes to their motion."},
		}}},
	}}
	return qa.Registry{"8th/subjects/science.json": func() (*qa.Pack, error) { return pack, nil }}
}

func newAskApp(db store.DBStorer) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	handler := NewAskHandler(testRegistry(), qa.NewCache(), db)
	app.Post("/ask", handler.HandleAsk)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestHandleAskAnswersFromPack(t *testing.T) {
	app := newAskApp(&stubStore{})

	resp := postJSON(t, app, "/ask", types.AskParams{
		ClassID:   "8",
		SubjectID: "science",
		Question:  "what is inertia",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body AskResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.IsReady)
	require.NotNil(t, body.Result)
	assert.True(t, body.Result.Found)
	assert.Equal(t, "Inertia", body.Result.Topic)
}

func TestHandleAskValidation(t *testing.T) {
	app := newAskApp(&stubStore{})

	resp := postJSON(t, app, "/ask", map[string]string{"subject_id": "science"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandleAskUsesSavedClassPreference(t *testing.T) {
	userID := uuid.New()
	db := &stubStore{progress: &types.OnboardingProgress{UserID: userID, ClassID: "8"}}
	app := newAskApp(db)

	resp := postJSON(t, app, "/ask", types.AskParams{
		UserID:    userID.String(),
		SubjectID: "science",
		Question:  "inertia",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body AskResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.IsReady)
}

func TestHandleAskUnknownSubject(t *testing.T) {
	app := newAskApp(&stubStore{})

	resp := postJSON(t, app, "/ask", types.AskParams{
		ClassID:   "8",
		SubjectID: "geography",
		Question:  "monsoon",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body AskResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.IsReady)
	assert.Equal(t, qa.StatusPackNotDownloaded, body.Status)
	assert.Nil(t, body.Result)
}

func TestHandleUpsertOnboardingSparseFields(t *testing.T) {
	db := &stubStore{}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	handler := NewProfileHandler(db)
	app.Put("/onboarding", handler.HandleUpsertOnboarding)

	step := 2
	classID := "9"
	payload, err := json.Marshal(types.OnboardingParams{
		UserID:      uuid.NewString(),
		ClassID:     &classID,
		CurrentStep: &step,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/onboarding", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Only the provided columns reach the store.
	assert.Equal(t, map[string]any{"class_id": "9", "current_step": 2}, db.onboardingFields)
}

func TestHandleUpsertOnboardingNoFields(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	handler := NewProfileHandler(&stubStore{})
	app.Put("/onboarding", handler.HandleUpsertOnboarding)

	payload, _ := json.Marshal(types.OnboardingParams{UserID: uuid.NewString()})
	req := httptest.NewRequest(http.MethodPut, "/onboarding", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
