package handlers

import (
	"fmt"
	"log"
	"time"

	"intranet/internal/middleware"
	"intranet/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService  *services.AuthService
	validate     *validator.Validate
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler. cookieSecure should be true
// whenever the API is served over TLS.
func NewAuthHandler(authService *services.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		validate:     validator.New(),
		cookieSecure: cookieSecure,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Get("/me", h.HandleMe)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates the user and sets the session cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, validationErrorMap(err))
	}

	user, session, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err, fmt.Sprintf("logging in user %s", req.Username))
	}

	h.setSessionCookie(c, session.Token)
	return c.JSON(user.Public())
}

// HandleLogout destroys the session and clears the cookie. Idempotent.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookieName)
	if err := h.authService.Logout(token); err != nil {
		return respondServiceError(c, err, "logging out")
	}
	h.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

// HandleRegister creates a new user and logs them in immediately.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, validationErrorMap(err))
	}

	user, session, err := h.authService.Register(req.Username, req.Password, req.FirstName, req.LastName, req.Role)
	if err != nil {
		return respondServiceError(c, err, fmt.Sprintf("registering user %s", req.Username))
	}

	h.setSessionCookie(c, session.Token)
	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

// HandleMe returns the current user for the session cookie.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookieName)
	user, err := h.authService.Me(token)
	if err != nil {
		return respondServiceError(c, err, "loading current user")
	}
	return c.JSON(user.Public())
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	ttl := h.authService.SessionTTL()
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// validationErrorMap flattens validator errors into a field → message map.
func validationErrorMap(err error) map[string]string {
	messages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return messages
}
