package server

import (
	"github.com/gofiber/fiber/v2"

	"plaza/internal/models"
)

type createBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateBlog publishes a new blog post by the authenticated user.
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	var req createBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.Create(c.UserContext(), currentUserID(c), req.Title, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusCreated, blog)
}

// GetBlog returns one blog, counts the view and annotates the viewer's
// favorite state.
func (s *Server) GetBlog(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blog, err := s.blogService.Get(c.UserContext(), blogID)
	if err != nil {
		return fail(c, err)
	}

	isFavorited := false
	if viewer := viewerID(c); viewer != 0 {
		isFavorited, _ = s.blogService.IsFavorited(c.UserContext(), viewer, blogID)
	}

	return respondData(c, fiber.StatusOK, fiber.Map{
		"blog":         blog,
		"is_favorited": isFavorited,
	})
}

// GetBlogs returns blogs newest first.
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	blogs, err := s.blogService.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, blogs)
}

// GetUserBlogs returns one user's blogs newest first.
func (s *Server) GetUserBlogs(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 20)
	blogs, err := s.blogService.ListByUser(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, blogs)
}

// DeleteBlog removes a blog (owner or admin only).
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.Delete(c.UserContext(), currentUserID(c), blogID); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "blog deleted")
}

// FavoriteBlog adds the blog to the authenticated user's favorites.
func (s *Server) FavoriteBlog(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.Favorite(c.UserContext(), currentUserID(c), blogID); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, fiber.StatusCreated, "blog favorited")
}

// UnfavoriteBlog removes the blog from the authenticated user's favorites.
func (s *Server) UnfavoriteBlog(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.Unfavorite(c.UserContext(), currentUserID(c), blogID); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "blog unfavorited")
}
