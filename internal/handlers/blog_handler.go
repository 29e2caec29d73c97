package handlers

import (
	"fmt"
	"log"

	"intranet/internal/middleware"
	"intranet/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BlogHandler handles HTTP requests for blog posts and comments.
type BlogHandler struct {
	blogService *services.BlogService
	validate    *validator.Validate
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the blog routes. Reads are anonymous-readable;
// mutations require a session.
func (h *BlogHandler) RegisterRoutes(router fiber.Router) {
	blogRoutes := router.Group("/blog")
	blogRoutes.Get("/posts", h.HandleListPosts)
	blogRoutes.Get("/posts/:id", h.HandleGetPost)
	blogRoutes.Post("/posts", middleware.SessionRequired(), h.HandleCreatePost)
	blogRoutes.Put("/posts/:id", middleware.SessionRequired(), h.HandleUpdatePost)
	blogRoutes.Delete("/posts/:id", middleware.SessionRequired(), h.HandleDeletePost)
	blogRoutes.Post("/posts/:id/comments", middleware.SessionRequired(), h.HandleCreateComment)
	blogRoutes.Delete("/comments/:id", middleware.SessionRequired(), h.HandleDeleteComment)
}

// HandleListPosts returns all posts, newest first.
func (h *BlogHandler) HandleListPosts(c *fiber.Ctx) error {
	posts, err := h.blogService.ListPosts()
	if err != nil {
		return respondServiceError(c, err, "listing posts")
	}
	return c.JSON(posts)
}

// HandleGetPost returns a single post with its comments.
func (h *BlogHandler) HandleGetPost(c *fiber.Ctx) error {
	postID := c.Params("id")
	post, err := h.blogService.GetPost(postID)
	if err != nil {
		return respondServiceError(c, err, fmt.Sprintf("getting post %s", postID))
	}
	return c.JSON(post)
}

// CreatePostRequest represents the request body for creating a post.
type CreatePostRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

// HandleCreatePost creates a post owned by the session's user.
func (h *BlogHandler) HandleCreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, validationErrorMap(err))
	}

	actor := middleware.SessionFromCtx(c)
	post, err := h.blogService.CreatePost(actor, req.Title, req.Content, req.Tags, req.Category)
	if err != nil {
		return respondServiceError(c, err, "creating post")
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePostRequest represents a partial post update. Omitted fields stay
// untouched.
type UpdatePostRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	Category *string   `json:"category"`
}

// HandleUpdatePost applies a partial update. Author-only.
func (h *BlogHandler) HandleUpdatePost(c *fiber.Ctx) error {
	postID := c.Params("id")
	var req UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	actor := middleware.SessionFromCtx(c)
	post, err := h.blogService.UpdatePost(actor, postID, services.PostUpdate{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Category: req.Category,
	})
	if err != nil {
		return respondServiceError(c, err, fmt.Sprintf("updating post %s", postID))
	}
	return c.JSON(post)
}

// HandleDeletePost deletes a post and its comments. Author or admin.
func (h *BlogHandler) HandleDeletePost(c *fiber.Ctx) error {
	postID := c.Params("id")
	actor := middleware.SessionFromCtx(c)
	if err := h.blogService.DeletePost(actor, postID); err != nil {
		return respondServiceError(c, err, fmt.Sprintf("deleting post %s", postID))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateCommentRequest represents the request body for creating a comment.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// HandleCreateComment attaches a comment to a post.
func (h *BlogHandler) HandleCreateComment(c *fiber.Ctx) error {
	postID := c.Params("id")
	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create comment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, validationErrorMap(err))
	}

	actor := middleware.SessionFromCtx(c)
	comment, err := h.blogService.CreateComment(actor, postID, req.Content)
	if err != nil {
		return respondServiceError(c, err, fmt.Sprintf("commenting on post %s", postID))
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleDeleteComment deletes a comment. Comment author or admin.
func (h *BlogHandler) HandleDeleteComment(c *fiber.Ctx) error {
	commentID := c.Params("id")
	actor := middleware.SessionFromCtx(c)
	if err := h.blogService.DeleteComment(actor, commentID); err != nil {
		return respondServiceError(c, err, fmt.Sprintf("deleting comment %s", commentID))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
