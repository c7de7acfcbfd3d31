package server

import (
	"github.com/gofiber/fiber/v2"

	"plaza/internal/models"
)

type createCommentRequest struct {
	Content string `json:"content"`
}

type createReplyRequest struct {
	Content       string `json:"content"`
	ReplyToUserID *uint  `json:"reply_to_user_id"`
}

// CreateComment posts a top-level comment on a blog.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req createCommentRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// A block in either direction between commenter and blog owner closes the
	// comment section for that pair.
	if blog, blogErr := s.blogRepo.GetByID(ctx, blogID); blogErr == nil && blog.UserID != userID {
		blocked, blockErr := s.relationshipService.HasBlockRelation(ctx, userID, blog.UserID)
		if blockErr != nil {
			return fail(c, blockErr)
		}
		if blocked {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("you cannot comment on this blog"))
		}
	}

	comment, err := s.commentService.CreateComment(ctx, userID, blogID, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusCreated, comment)
}

// CreateReply posts a reply under an existing comment.
func (s *Server) CreateReply(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req createReplyRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if parent, parentErr := s.commentRepo.GetByID(ctx, commentID); parentErr == nil && parent.UserID != userID {
		blocked, blockErr := s.relationshipService.HasBlockRelation(ctx, userID, parent.UserID)
		if blockErr != nil {
			return fail(c, blockErr)
		}
		if blocked {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("you cannot reply to this comment"))
		}
	}

	reply, err := s.commentService.CreateReply(ctx, userID, commentID, req.Content, req.ReplyToUserID)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusCreated, reply)
}

// GetComments returns a blog's comment threads, annotated with the viewer's
// like state when authenticated.
func (s *Server) GetComments(c *fiber.Ctx) error {
	blogID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	threads, err := s.commentService.ListComments(c.UserContext(), blogID, viewerID(c))
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, threads)
}

// ToggleCommentLike flips the authenticated user's like on a comment.
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.commentService.ToggleLike(c.UserContext(), currentUserID(c), commentID)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, result)
}

// DeleteComment removes a comment and, for top-level comments, its replies.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	removed, err := s.commentService.DeleteComment(c.UserContext(), currentUserID(c), commentID)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"removed": removed})
}
