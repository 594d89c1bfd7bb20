package api

import (
	"context"

	"sahayak/model"
	"sahayak/types"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler proxies prompts to the remote assistant and returns the
// aggregated streamed answer as one message.
type ChatHandler struct {
	stream *model.StreamClient
}

func NewChatHandler(stream *model.StreamClient) *ChatHandler {
	return &ChatHandler{
		stream: stream,
	}
}

func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var params types.ChatParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return types.NewValidationError(errors)
	}

	message, err := h.stream.Ask(context.Background(), params.Prompt, model.ChatOptions{
		IncludeYouTube:     params.IncludeYouTube,
		IncludeImageSearch: params.IncludeImageSearch,
	})
	if err != nil {
		return ErrUpstream(err.Error())
	}

	return c.JSON(message)
}
