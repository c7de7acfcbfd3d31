package server

import (
	"github.com/gofiber/fiber/v2"
)

type blockRequest struct {
	Reason string `json:"reason"`
}

// BlockUser puts the requested user on the authenticated user's block list.
func (s *Server) BlockUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req blockRequest
	_ = c.BodyParser(&req)

	if err := s.relationshipService.Block(c.UserContext(), currentUserID(c), targetID, req.Reason); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, fiber.StatusCreated, "user blocked")
}

// UnblockUser removes the requested user from the authenticated user's block list.
func (s *Server) UnblockUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.relationshipService.Unblock(c.UserContext(), currentUserID(c), targetID); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "user unblocked")
}

// GetBlocks returns the authenticated user's block list.
func (s *Server) GetBlocks(c *fiber.Ctx) error {
	blocks, err := s.relationshipService.ListBlocks(c.UserContext(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, blocks)
}

// CheckBlocked reports whether the authenticated user has blocked the
// requested user.
func (s *Server) CheckBlocked(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blocked, err := s.relationshipService.IsBlocked(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"blocked": blocked})
}
