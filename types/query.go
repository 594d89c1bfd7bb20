package types

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type Validater interface {
	Validate() map[string]string
}

// AskParams is the offline-mode question. ClassID may be omitted: the handler
// falls back to the saved onboarding class, then to class 8.
type AskParams struct {
	UserID    string `json:"user_id"`
	ClassID   string `json:"class_id"`
	SubjectID string `json:"subject_id" validate:"required"`
	Question  string `json:"question" validate:"required"`
}

// ChatParams is the online-mode prompt forwarded to the remote assistant.
type ChatParams struct {
	Prompt             string `json:"prompt" validate:"required"`
	IncludeYouTube     bool   `json:"include_youtube"`
	IncludeImageSearch bool   `json:"include_image_search"`
}

type ProfileParams struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// OnboardingParams carries a sparse update: pointer fields that stay nil are
// left out of the upsert payload entirely. The db tags name the target columns.
type OnboardingParams struct {
	UserID       string    `json:"user_id" validate:"required,uuid"`
	ClassID      *string   `db:"class_id" json:"class_id"`
	Subjects     *[]string `db:"subjects" json:"subjects"`
	CurrentStep  *int      `db:"current_step" json:"current_step"`
	MotherTongue *string   `db:"mother_tongue" json:"mother_tongue"`
	SchoolType   *string   `db:"school_type" json:"school_type"`
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

func validateStruct(s any) map[string]string {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}

func (params *AskParams) Validate() map[string]string {
	return validateStruct(params)
}

func (params *ChatParams) Validate() map[string]string {
	return validateStruct(params)
}

func (params *ProfileParams) Validate() map[string]string {
	return validateStruct(params)
}

func (params *OnboardingParams) Validate() map[string]string {
	return validateStruct(params)
}

func NewValidationError(errors map[string]string) ValidationError {
	return ValidationError{
		Status: http.StatusUnprocessableEntity,
		Errors: errors,
	}
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}
