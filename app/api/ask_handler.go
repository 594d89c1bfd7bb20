package api

import (
	"context"
	"log"

	"sahayak/qa"
	"sahayak/store"
	"sahayak/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const defaultClassID = "8"

// AskHandler answers questions from the bundled offline packs. Matcher
// conditions (missing pack, load failure, no match) are part of the response
// body, never HTTP errors.
type AskHandler struct {
	registry      qa.Registry
	cache         *qa.Cache
	progressStore store.DBStorer
}

func NewAskHandler(registry qa.Registry, cache *qa.Cache, progressStore store.DBStorer) *AskHandler {
	if cache == nil {
		cache = qa.NewCache()
	}
	return &AskHandler{
		registry:      registry,
		cache:         cache,
		progressStore: progressStore,
	}
}

type AskResponse struct {
	IsReady   bool       `json:"is_ready"`
	IsLoading bool       `json:"is_loading"`
	Status    string     `json:"status,omitempty"`
	Result    *qa.Result `json:"result,omitempty"`
}

func (h *AskHandler) HandleAsk(c *fiber.Ctx) error {
	var params types.AskParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return types.NewValidationError(errors)
	}

	classID := params.ClassID
	if classID == "" {
		classID = h.loadClassPreference(context.Background(), params.UserID)
	}

	matcher := qa.NewMatcher(h.registry, h.cache)
	matcher.Use(classID, params.SubjectID)

	resp := &AskResponse{
		IsReady:   matcher.IsReady(),
		IsLoading: matcher.IsLoading(),
		Status:    matcher.Status(),
	}
	resp.Result = matcher.FindAnswer(params.Question)

	return c.JSON(resp)
}

// loadClassPreference falls back to the class saved during onboarding, then
// to class 8.
func (h *AskHandler) loadClassPreference(ctx context.Context, userID string) string {
	if h.progressStore == nil || userID == "" {
		return defaultClassID
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return defaultClassID
	}

	progress, err := h.progressStore.GetOnboarding(ctx, id)
	if err != nil || progress.ClassID == "" {
		log.Printf("[QA] no saved class for user %s, using class %s", userID, defaultClassID)
		return defaultClassID
	}
	return progress.ClassID
}
