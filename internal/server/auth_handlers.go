package server

import (
	"github.com/gofiber/fiber/v2"

	"plaza/internal/models"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Signup registers a new account and returns it with a token pair.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, tokens, err := s.authService.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return respondData(c, fiber.StatusCreated, fiber.Map{
		"user":   user,
		"tokens": tokens,
	})
}

// Login verifies credentials and returns the account with a token pair.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, tokens, err := s.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return respondData(c, fiber.StatusOK, fiber.Map{
		"user":   user,
		"tokens": tokens,
	})
}

// Refresh rotates a refresh token into a fresh token pair.
func (s *Server) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("refresh_token is required"))
	}

	tokens, err := s.authService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, tokens)
}

// Logout revokes the presented refresh token.
func (s *Server) Logout(c *fiber.Ctx) error {
	var req refreshRequest
	_ = c.BodyParser(&req)

	if err := s.authService.Logout(c.UserContext(), req.RefreshToken); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "logged out")
}

// GetMyProfile returns the authenticated user's account.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.authService.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, user)
}

type updateProfileRequest struct {
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// UpdateMyProfile changes the authenticated user's bio and avatar.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.UpdateProfile(c.UserContext(), currentUserID(c), req.Bio, req.Avatar)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, fiber.StatusOK, user)
}

// DeactivateMyAccount soft-disables the authenticated user's account.
func (s *Server) DeactivateMyAccount(c *fiber.Ctx) error {
	if err := s.authService.Deactivate(c.UserContext(), currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "account deactivated")
}

// GetUserProfile returns a public user profile annotated with the viewer's
// follow state.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.authService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}

	isFollowing := false
	if viewer := viewerID(c); viewer != 0 && viewer != userID {
		isFollowing, _ = s.relationshipService.IsFollowing(c.UserContext(), viewer, userID)
	}

	return respondData(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"is_following": isFollowing,
	})
}
