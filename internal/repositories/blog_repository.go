package repositories

import "intranet/internal/models"

// BlogRepository defines the interface for blog post and comment access.
type BlogRepository interface {
	GetAllPosts() ([]models.BlogPost, error)
	GetPostByID(id string) (*models.BlogPost, error)
	CreatePost(post *models.BlogPost) error
	UpdatePost(post *models.BlogPost) error
	// DeletePostCascade removes a post and all of its comments inside a
	// single transaction.
	DeletePostCascade(id string) error
	CreateComment(comment *models.Comment) error
	GetCommentByID(id string) (*models.Comment, error)
	DeleteComment(id string) error
	GetCommentsByPostID(postID string) ([]models.Comment, error)
}
