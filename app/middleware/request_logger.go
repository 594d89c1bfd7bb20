package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs method, path, status and latency for every API call.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		log.Printf("[HTTP] %s %s -> %d (%v)", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
