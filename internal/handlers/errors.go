package handlers

import (
	"errors"
	"log"

	"intranet/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondServiceError maps a service error to its HTTP status and a short
// stable message. Unexpected errors are logged with context and surfaced as
// a generic 500 without internals.
func respondServiceError(c *fiber.Ctx, err error, context string) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or invalid fields"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrNotAuthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, services.ErrDuplicateUsername):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username already exists"})
	case errors.Is(err, services.ErrAdminUndeletable):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot delete admin users"})
	case errors.Is(err, services.ErrPayloadTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "File too large"})
	default:
		log.Printf("Error %s: %v", context, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

// respondValidationErrors formats validator.ValidationErrors per-field, the
// shape every request-body validation failure uses.
func respondValidationErrors(c *fiber.Ctx, errs map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"fields": errs,
	})
}
