package handlers

import (
	"intranet/internal/middleware"
	"intranet/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DirectoryHandler handles the read-only employee directory.
type DirectoryHandler struct {
	directoryService *services.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directoryService *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		directoryService: directoryService,
	}
}

// RegisterRoutes registers the directory routes. The directory is intranet
// data, so a session is required.
func (h *DirectoryHandler) RegisterRoutes(router fiber.Router) {
	employeeRoutes := router.Group("/employees", middleware.SessionRequired())
	employeeRoutes.Get("/", h.HandleListEmployees)
	employeeRoutes.Get("/search", h.HandleSearchEmployees)
}

// HandleListEmployees returns every user as a directory entry.
func (h *DirectoryHandler) HandleListEmployees(c *fiber.Ctx) error {
	employees, err := h.directoryService.ListEmployees()
	if err != nil {
		return respondServiceError(c, err, "listing employees")
	}
	return c.JSON(employees)
}

// HandleSearchEmployees filters the directory by name, department and
// personnel number query parameters. Absent filters match everything.
func (h *DirectoryHandler) HandleSearchEmployees(c *fiber.Ctx) error {
	employees, err := h.directoryService.SearchEmployees(
		c.Query("name"),
		c.Query("department"),
		c.Query("personalnummer"),
	)
	if err != nil {
		return respondServiceError(c, err, "searching employees")
	}
	return c.JSON(employees)
}
