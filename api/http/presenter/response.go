// Package presenter keeps the JSON response shapes in one place so every
// handler fails the same way.
package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the uniform error body for all non-2xx replies.
type ErrorResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

// Error writes an ErrorResponse. Messages stay generic; anything useful
// for account enumeration belongs in the server log, not the body.
func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}
