package handlers

import (
	"encoding/json"
	"fmt"
	"log"

	"intranet/internal/middleware"
	"intranet/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FileHandler handles HTTP requests for file upload, listing, download and
// deletion. The whole surface requires a session; unlike the blog, file
// listings are not anonymous.
type FileHandler struct {
	fileService *services.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// RegisterRoutes registers the file routes with the Fiber app.
func (h *FileHandler) RegisterRoutes(router fiber.Router) {
	fileRoutes := router.Group("/files", middleware.SessionRequired())
	fileRoutes.Post("/upload", h.HandleUpload)
	fileRoutes.Get("/", h.HandleList)
	fileRoutes.Get("/:id/download", h.HandleDownload)
	fileRoutes.Delete("/:id", h.HandleDelete)
}

// HandleUpload stores the multipart "file" part and its optional JSON
// "metadata" part as a new file record owned by the session's user.
func (h *FileHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	var meta services.UploadMeta
	if raw := c.FormValue("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			log.Printf("Error parsing upload metadata: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid metadata",
			})
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		return respondServiceError(c, err, "opening uploaded file")
	}
	defer src.Close()

	actor := middleware.SessionFromCtx(c)
	file, err := h.fileService.Upload(actor, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, src, meta)
	if err != nil {
		return respondServiceError(c, err, fmt.Sprintf("uploading file %s", fileHeader.Filename))
	}
	return c.Status(fiber.StatusCreated).JSON(file)
}

// HandleList returns all file records, newest first.
func (h *FileHandler) HandleList(c *fiber.Ctx) error {
	actor := middleware.SessionFromCtx(c)
	files, err := h.fileService.List(actor)
	if err != nil {
		return respondServiceError(c, err, "listing files")
	}
	return c.JSON(files)
}

// HandleDownload streams the blob through the store with the original
// filename as the suggested download name.
func (h *FileHandler) HandleDownload(c *fiber.Ctx) error {
	fileID := c.Params("id")
	actor := middleware.SessionFromCtx(c)
	file, err := h.fileService.Download(actor, fileID)
	if err != nil {
		return respondServiceError(c, err, fmt.Sprintf("downloading file %s", fileID))
	}

	blob, err := h.fileService.Open(file)
	if err != nil {
		return respondServiceError(c, err, fmt.Sprintf("opening blob for file %s", fileID))
	}
	if file.MimeType != "" {
		c.Set(fiber.HeaderContentType, file.MimeType)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return c.SendStream(blob, int(file.Size))
}

// HandleDelete removes a file record and, best effort, its blob.
func (h *FileHandler) HandleDelete(c *fiber.Ctx) error {
	fileID := c.Params("id")
	actor := middleware.SessionFromCtx(c)
	if err := h.fileService.Delete(actor, fileID); err != nil {
		return respondServiceError(c, err, fmt.Sprintf("deleting file %s", fileID))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
