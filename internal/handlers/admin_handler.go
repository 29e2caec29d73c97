package handlers

import (
	"fmt"
	"log"

	"intranet/internal/middleware"
	"intranet/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the privileged user-management surface.
type AdminHandler struct {
	adminService *services.AdminService
	validate     *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the admin routes. The whole group is gated on an
// ADMIN session; the services enforce the same rule again so no path relies
// on routing alone.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users", middleware.AdminRequired())
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/next-personnel-number", h.HandleNextPersonnelNumber)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleListUsers returns all users' public fields.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	actor := middleware.SessionFromCtx(c)
	users, err := h.adminService.ListUsers(actor)
	if err != nil {
		return respondServiceError(c, err, "listing users")
	}
	return c.JSON(users)
}

// CreateUserRequest represents the request body for an admin-created user.
type CreateUserRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=100"`
	Password       string `json:"password" validate:"required,min=6"`
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Role           string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
	Personalnummer string `json:"personalnummer"`
	Abteilung      string `json:"abteilung"`
	Phone          string `json:"phone"`
}

// HandleCreateUser creates a user.
func (h *AdminHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, validationErrorMap(err))
	}

	actor := middleware.SessionFromCtx(c)
	user, err := h.adminService.CreateUser(actor, services.CreateUserInput{
		Username:       req.Username,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           req.Role,
		Personalnummer: req.Personalnummer,
		Abteilung:      req.Abteilung,
		Phone:          req.Phone,
	})
	if err != nil {
		return respondServiceError(c, err, fmt.Sprintf("creating user %s", req.Username))
	}
	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

// UpdateUserRequest represents a partial user update. Omitted fields stay
// untouched; an explicit empty phone clears the stored phone.
type UpdateUserRequest struct {
	Username       *string `json:"username"`
	Password       *string `json:"password"`
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Role           *string `json:"role"`
	Personalnummer *string `json:"personalnummer"`
	Abteilung      *string `json:"abteilung"`
	Phone          *string `json:"phone"`
}

// HandleUpdateUser applies a partial update to a user.
func (h *AdminHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.SessionFromCtx(c)
	user, err := h.adminService.UpdateUser(actor, id, services.UserUpdate{
		Username:       req.Username,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           req.Role,
		Personalnummer: req.Personalnummer,
		Abteilung:      req.Abteilung,
		Phone:          req.Phone,
	})
	if err != nil {
		return respondServiceError(c, err, fmt.Sprintf("updating user %s", id))
	}
	return c.JSON(user.Public())
}

// HandleDeleteUser deletes a user. ADMIN targets are refused with 400.
func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	actor := middleware.SessionFromCtx(c)
	if err := h.adminService.DeleteUser(actor, id); err != nil {
		return respondServiceError(c, err, fmt.Sprintf("deleting user %s", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleNextPersonnelNumber returns the next free E### employee number.
func (h *AdminHandler) HandleNextPersonnelNumber(c *fiber.Ctx) error {
	actor := middleware.SessionFromCtx(c)
	next, err := h.adminService.NextPersonnelNumber(actor)
	if err != nil {
		return respondServiceError(c, err, "allocating personnel number")
	}
	return c.JSON(fiber.Map{"nextPersonnelNumber": next})
}
