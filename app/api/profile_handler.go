package api

import (
	"context"
	"reflect"
	"strings"

	"sahayak/store"
	"sahayak/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileStore store.DBStorer
}

func NewProfileHandler(profileStore store.DBStorer) *ProfileHandler {
	return &ProfileHandler{
		profileStore: profileStore,
	}
}

func (h *ProfileHandler) HandleUpsertProfile(c *fiber.Ctx) error {
	var params types.ProfileParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return types.NewValidationError(errors)
	}

	userID, err := uuid.Parse(params.UserID)
	if err != nil {
		return ErrInvalidID()
	}

	profile := types.UserProfile{
		ID:       userID,
		FullName: params.FullName,
		Email:    params.Email,
	}
	if err := h.profileStore.UpsertProfile(context.Background(), profile); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"id": userID})
}

// HandleUpsertOnboarding collects the provided fields into a sparse column
// set keyed by the db tags, so omitted fields never touch stored progress.
func (h *ProfileHandler) HandleUpsertOnboarding(c *fiber.Ctx) error {
	var params types.OnboardingParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return types.NewValidationError(errors)
	}

	userID, err := uuid.Parse(params.UserID)
	if err != nil {
		return ErrInvalidID()
	}

	v := reflect.ValueOf(params)
	t := reflect.TypeOf(params)
	querySet := make(map[string]any)
	for i := 0; i < v.NumField(); i++ {
		dbTag := t.Field(i).Tag.Get("db")
		if dbTag == "" {
			continue
		}

		key := strings.Split(dbTag, ",")[0]
		field := v.Field(i)
		if field.Kind() == reflect.Pointer && !field.IsNil() {
			querySet[key] = field.Elem().Interface()
		}
	}
	if len(querySet) == 0 {
		return ErrBadRequest()
	}

	if err := h.profileStore.UpsertOnboarding(context.Background(), userID, querySet); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"user_id": userID, "updated": len(querySet)})
}

func (h *ProfileHandler) HandleGetOnboarding(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userID"))
	if err != nil {
		return ErrInvalidID()
	}

	progress, err := h.profileStore.GetOnboarding(context.Background(), userID)
	if err != nil {
		return ErrNotFound(userID, "onboarding progress")
	}

	return c.JSON(progress)
}
