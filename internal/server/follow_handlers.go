package server

import (
	"github.com/gofiber/fiber/v2"

	"plaza/internal/models"
)

type followRequest struct {
	UserID uint `json:"user_id"`
}

// FollowUser makes the authenticated user follow the requested user.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	var req followRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	if err := s.relationshipService.Follow(c.UserContext(), currentUserID(c), req.UserID); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "followed")
}

// UnfollowUser removes the authenticated user's follow edge to the requested user.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	var req followRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	if err := s.relationshipService.Unfollow(c.UserContext(), currentUserID(c), req.UserID); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "unfollowed")
}

// GetFollowInfo returns a user's follow counts plus following/followers
// lists, annotated with the viewer's own follow state when authenticated.
// Defaults to the viewer's own info when user_id is omitted.
func (s *Server) GetFollowInfo(c *fiber.Ctx) error {
	viewer := viewerID(c)

	userID := uint(c.QueryInt("user_id", 0))
	if userID == 0 {
		if viewer == 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("user_id is required"))
		}
		userID = viewer
	}

	info, err := s.relationshipService.GetRelationshipInfo(c.UserContext(), userID, viewer)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, info)
}
