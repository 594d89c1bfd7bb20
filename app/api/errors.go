package api

import (
	"fmt"
	"log"

	"sahayak/types"

	"github.com/gofiber/fiber/v2"
)

func ErrorHandler(c *fiber.Ctx, err error) error {
	if apiError, ok := err.(Error); ok {
		return c.Status(apiError.Code).JSON(apiError)
	}
	if valError, ok := err.(types.ValidationError); ok {
		return c.Status(valError.Status).JSON(valError)
	}

	code := fiber.StatusInternalServerError
	if fiberError, ok := err.(*fiber.Error); ok {
		code = fiberError.Code
	}
	apiError := NewError(code, err.Error())
	log.Printf("[API] request failed with code %d and message: %s", apiError.Code, apiError.Message)
	return c.Status(apiError.Code).JSON(apiError)
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e Error) Error() string {
	return e.Message
}

func NewError(code int, err string) Error {
	return Error{
		Code:    code,
		Message: err,
	}
}

func ErrBadRequest() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid JSON request",
	}
}

func ErrInvalidID() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid id given",
	}
}

func ErrUpstream(msg string) Error {
	return Error{
		Code:    fiber.StatusBadGateway,
		Message: msg,
	}
}

func ErrNotFound[T any](arg T, resource string) Error {
	return Error{
		Code:    fiber.StatusNotFound,
		Message: fmt.Sprintf("%s with %v not found", resource, arg),
	}
}

func ErrUnprocessable(msg string) Error {
	return Error{
		Code:    fiber.StatusUnprocessableEntity,
		Message: msg,
	}
}
