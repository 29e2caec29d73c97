package repositories

import (
	"fmt"

	"intranet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBlogRepository is a GORM implementation of BlogRepository.
type GORMBlogRepository struct {
	db *gorm.DB
}

// NewGORMBlogRepository creates a new instance of GORMBlogRepository.
func NewGORMBlogRepository(db *gorm.DB) *GORMBlogRepository {
	return &GORMBlogRepository{
		db: db,
	}
}

// withAssociations preloads the author and the newest-first comments (with
// their authors) onto a post query.
func (r *GORMBlogRepository) withAssociations() *gorm.DB {
	return r.db.
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.Author")
}

// GetAllPosts retrieves all posts, newest first, with authors and comments.
func (r *GORMBlogRepository) GetAllPosts() ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := r.withAssociations().Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to get all posts: %w", err)
	}
	return posts, nil
}

// GetPostByID retrieves a single post with its author and comments.
func (r *GORMBlogRepository) GetPostByID(id string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.withAssociations().First(&post, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("post with ID %s not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get post by ID %s: %w", id, err)
	}
	return &post, nil
}

// CreatePost creates a new post in the database.
func (r *GORMBlogRepository) CreatePost(post *models.BlogPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// UpdatePost persists the full post row.
func (r *GORMBlogRepository) UpdatePost(post *models.BlogPost) error {
	res := r.db.Omit("Author", "Comments").Save(post)
	if res.Error != nil {
		return fmt.Errorf("failed to update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %s not found for update: %w", post.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// DeletePostCascade removes the post's comments and the post row inside one
// transaction. A concurrent delete of the same post surfaces as not-found
// via the RowsAffected check, never as a partial cascade.
func (r *GORMBlogRepository) DeletePostCascade(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, "post_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete comments for post %s: %w", id, err)
		}
		res := tx.Delete(&models.BlogPost{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete post %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("post with ID %s not found for deletion: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}

// CreateComment creates a new comment in the database.
func (r *GORMBlogRepository) CreateComment(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetCommentByID retrieves a comment by its ID.
func (r *GORMBlogRepository) GetCommentByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("Author").First(&comment, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("comment with ID %s not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get comment by ID %s: %w", id, err)
	}
	return &comment, nil
}

// DeleteComment deletes a comment by its ID.
func (r *GORMBlogRepository) DeleteComment(id string) error {
	res := r.db.Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment with ID %s not found for deletion: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// GetCommentsByPostID retrieves all comments of a post, newest first.
func (r *GORMBlogRepository) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get comments for post %s: %w", postID, err)
	}
	return comments, nil
}
