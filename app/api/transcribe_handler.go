package api

import (
	"context"

	"sahayak/model"

	"github.com/gofiber/fiber/v2"
)

type TranscribeHandler struct {
	transcriber *model.TranscribeClient
}

func NewTranscribeHandler(transcriber *model.TranscribeClient) *TranscribeHandler {
	return &TranscribeHandler{
		transcriber: transcriber,
	}
}

// HandleTranscribe forwards the raw audio body to the speech-to-text service.
// One attempt only; an empty transcript means no speech was detected.
func (h *TranscribeHandler) HandleTranscribe(c *fiber.Ctx) error {
	audio := c.Body()
	if len(audio) == 0 {
		return NewError(fiber.StatusBadRequest, "no recording data found")
	}

	transcript, err := h.transcriber.Transcribe(context.Background(), audio)
	if err != nil {
		return ErrUpstream(err.Error())
	}

	if transcript == "" {
		return ErrUnprocessable("No speech detected. Try again.")
	}

	return c.JSON(fiber.Map{"transcript": transcript})
}
