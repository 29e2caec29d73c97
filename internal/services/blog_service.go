package services

import (
	"errors"
	"fmt"
	"log"

	"intranet/internal/models"
	"intranet/internal/repositories"
	"intranet/pkg/events"

	"gorm.io/gorm"
)

// BlogService handles business logic for blog posts and comments.
type BlogService struct {
	blogRepo repositories.BlogRepository
	mqClient *events.Client
}

// NewBlogService creates a new BlogService.
func NewBlogService(blogRepo repositories.BlogRepository, mqClient *events.Client) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		mqClient: mqClient,
	}
}

// PostUpdate carries a partial post update. Nil fields stay untouched.
type PostUpdate struct {
	Title    *string
	Content  *string
	Tags     *[]string
	Category *string
}

// ListPosts returns all posts, newest first, with authors and comments.
// Anonymous-readable, so no actor is required.
func (s *BlogService) ListPosts() ([]models.BlogPost, error) {
	return s.blogRepo.GetAllPosts()
}

// GetPost returns a single post with its author and comments.
func (s *BlogService) GetPost(postID string) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// CreatePost creates a post owned by the actor.
func (s *BlogService) CreatePost(actor *models.Session, title, content string, tags []string, category string) (*models.BlogPost, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if title == "" || content == "" {
		return nil, ErrValidation
	}
	if tags == nil {
		tags = []string{}
	}

	post := &models.BlogPost{
		Title:    title,
		Content:  content,
		Tags:     tags,
		Category: category,
		AuthorID: actor.UserID,
	}
	if err := s.blogRepo.CreatePost(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if s.mqClient != nil {
		if err := s.mqClient.PublishPostCreated(post.ID, post.AuthorID, post.Title); err != nil {
			log.Printf("Warning: failed to publish post created event for post %s: %v", post.ID, err)
		}
	}

	return s.GetPost(post.ID)
}

// UpdatePost applies a partial update to a post. Editing is author-only:
// admins get no override here.
func (s *BlogService) UpdatePost(actor *models.Session, postID string, upd PostUpdate) (*models.BlogPost, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	post, err := s.blogRepo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanMutateOwned(actor, post.AuthorID) {
		return nil, ErrForbidden
	}

	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, ErrValidation
		}
		post.Title = *upd.Title
	}
	if upd.Content != nil {
		if *upd.Content == "" {
			return nil, ErrValidation
		}
		post.Content = *upd.Content
	}
	if upd.Tags != nil {
		post.Tags = *upd.Tags
	}
	if upd.Category != nil {
		post.Category = *upd.Category
	}

	if err := s.blogRepo.UpdatePost(post); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.GetPost(postID)
}

// DeletePost removes a post and its comments. Allowed for the author or any
// admin; the cascade runs inside one transaction in the repository.
func (s *BlogService) DeletePost(actor *models.Session, postID string) error {
	if actor == nil {
		return ErrNotAuthenticated
	}

	post, err := s.blogRepo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !CanMutateOwnedOrAdmin(actor, post.AuthorID) {
		return ErrForbidden
	}

	if err := s.blogRepo.DeletePostCascade(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Deleted concurrently between the ownership check and the
			// cascade; the outcome the caller sees is the same.
			return ErrNotFound
		}
		return err
	}
	return nil
}

// CreateComment attaches a comment to an existing post, owned by the actor.
func (s *BlogService) CreateComment(actor *models.Session, postID, content string) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if content == "" {
		return nil, ErrValidation
	}

	if _, err := s.blogRepo.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		Content:  content,
		AuthorID: actor.UserID,
		PostID:   postID,
	}
	if err := s.blogRepo.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	created, err := s.blogRepo.GetCommentByID(comment.ID)
	if err != nil {
		return comment, nil
	}
	return created, nil
}

// DeleteComment removes a comment. Allowed for the comment author or any admin.
func (s *BlogService) DeleteComment(actor *models.Session, commentID string) error {
	if actor == nil {
		return ErrNotAuthenticated
	}

	comment, err := s.blogRepo.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !CanMutateOwnedOrAdmin(actor, comment.AuthorID) {
		return ErrForbidden
	}

	if err := s.blogRepo.DeleteComment(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
