package middleware

import (
	"log"

	"intranet/internal/models"
	"intranet/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "intranet_sid"

const localsSessionKey = "session"

// SessionAuth resolves the session cookie and attaches the session to the
// request context. It never rejects: anonymous requests simply carry no
// session, and route-level guards decide what that means.
func SessionAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		if token != "" {
			session, err := authService.Resolve(token)
			if err != nil {
				log.Printf("Session resolution failed: %v", err)
			} else if session != nil {
				c.Locals(localsSessionKey, session)
			}
		}
		return c.Next()
	}
}

// SessionRequired rejects requests that carry no valid session.
func SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if SessionFromCtx(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}
		return c.Next()
	}
}

// AdminRequired rejects requests whose session is missing or not ADMIN.
// Authentication is checked before anything else so anonymous callers learn
// nothing beyond "not authenticated".
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := SessionFromCtx(c)
		if session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}
		if !session.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied",
			})
		}
		return c.Next()
	}
}

// SessionFromCtx returns the session attached by SessionAuth, or nil.
func SessionFromCtx(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals(localsSessionKey).(*models.Session)
	return session
}
