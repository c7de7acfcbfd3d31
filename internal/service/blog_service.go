package service

import (
	"context"
	"fmt"
	"strings"

	"plaza/internal/models"
	"plaza/internal/moderation"
	"plaza/internal/observability"
	"plaza/internal/repository"
)

const (
	maxBlogTitleLength   = 200
	maxBlogContentLength = 50000
)

// BlogService owns blog posts and the user<->blog favorite edge.
type BlogService struct {
	blogs repository.BlogRepository
	users repository.UserRepository
}

// NewBlogService returns a new BlogService.
func NewBlogService(blogs repository.BlogRepository, users repository.UserRepository) *BlogService {
	return &BlogService{blogs: blogs, users: users}
}

func validateBlog(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("blog title cannot be empty")
	}
	if len([]rune(title)) > maxBlogTitleLength {
		return models.NewValidationError(fmt.Sprintf("blog title cannot exceed %d characters", maxBlogTitleLength))
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("blog content cannot be empty")
	}
	if len([]rune(content)) > maxBlogContentLength {
		return models.NewValidationError(fmt.Sprintf("blog content cannot exceed %d characters", maxBlogContentLength))
	}
	if result := moderation.Check(title, true); !result.IsValid {
		observability.ModerationRejections.WithLabelValues("blog_title").Inc()
		return models.NewModerationError("blog title contains prohibited words")
	}
	// Body text gets the lenient list only; quoting a strict term in long
	// form posts is fine, slurs are not.
	if result := moderation.Check(content, false); !result.IsValid {
		observability.ModerationRejections.WithLabelValues("blog_content").Inc()
		return models.NewModerationError("blog content contains prohibited words")
	}
	return nil
}

// Create publishes a new blog post by userID.
func (s *BlogService) Create(ctx context.Context, userID uint, title, content string) (*models.Blog, error) {
	if err := validateBlog(title, content); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	blog := &models.Blog{Title: title, Content: content, UserID: userID}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Get returns one blog and counts the view. The returned record reflects the
// incremented view count.
func (s *BlogService) Get(ctx context.Context, id uint) (*models.Blog, error) {
	if err := s.blogs.IncrementViewCount(ctx, id); err != nil {
		return nil, err
	}
	return s.blogs.GetByID(ctx, id)
}

// List returns blogs newest first.
func (s *BlogService) List(ctx context.Context, limit, offset int) ([]models.Blog, error) {
	return s.blogs.List(ctx, limit, offset)
}

// ListByUser returns one user's blogs newest first.
func (s *BlogService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Blog, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.blogs.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a blog. Only the owner or an admin may delete.
func (s *BlogService) Delete(ctx context.Context, actorID, blogID uint) error {
	blog, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		return err
	}
	if blog.UserID != actorID {
		actor, err := s.users.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() {
			return models.NewForbiddenError("you can only delete your own blogs")
		}
	}
	return s.blogs.Delete(ctx, blogID)
}

// Favorite adds blogID to userID's favorites.
func (s *BlogService) Favorite(ctx context.Context, userID, blogID uint) error {
	if _, err := s.blogs.GetByID(ctx, blogID); err != nil {
		return err
	}
	return s.blogs.Favorite(ctx, userID, blogID)
}

// Unfavorite removes blogID from userID's favorites.
func (s *BlogService) Unfavorite(ctx context.Context, userID, blogID uint) error {
	return s.blogs.Unfavorite(ctx, userID, blogID)
}

// IsFavorited reports whether userID has favorited blogID.
func (s *BlogService) IsFavorited(ctx context.Context, userID, blogID uint) (bool, error) {
	return s.blogs.IsFavorited(ctx, userID, blogID)
}
