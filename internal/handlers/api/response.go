package api

import (
	"github.com/gofiber/fiber/v3"
)

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// jsonMessage returns a 200 response carrying a human-readable message.
func jsonMessage(c fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"message": message,
	})
}
