package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"plaza/internal/config"
	"plaza/internal/middleware"
	"plaza/internal/models"
	"plaza/internal/moderation"
	"plaza/internal/observability"
	"plaza/internal/repository"
)

const refreshKeyPrefix = "refresh:"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService owns accounts and the token lifecycle: bcrypt credentials,
// short-lived JWT access tokens and Redis-backed rotating refresh tokens.
type AuthService struct {
	users repository.UserRepository
	rdb   *redis.Client
	cfg   *config.Config
	rng   *rand.Rand
}

// NewAuthService returns a new AuthService. rng feeds default avatar
// selection only.
func NewAuthService(users repository.UserRepository, rdb *redis.Client, cfg *config.Config, rng *rand.Rand) *AuthService {
	return &AuthService{users: users, rdb: rdb, cfg: cfg, rng: rng}
}

// TokenPair is one issued access/refresh token set.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates a new account and returns it with a token pair.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, *TokenPair, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if n := len([]rune(username)); n < 3 || n > 40 {
		return nil, nil, models.NewValidationError("username must be between 3 and 40 characters")
	}
	if result := moderation.Check(username, true); !result.IsValid {
		observability.ModerationRejections.WithLabelValues("username").Inc()
		return nil, nil, models.NewModerationError("username contains prohibited words")
	}
	if !emailPattern.MatchString(email) {
		return nil, nil, models.NewValidationError("invalid email address")
	}
	if len(password) < 8 {
		return nil, nil, models.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
		IsActive: true,
		Avatar:   AvatarURL(username, s.rng),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Login verifies credentials and returns the account with a token pair.
// Unknown email and bad password report the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, models.NewUnauthorizedError("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, models.NewUnauthorizedError("invalid email or password")
	}
	if !user.IsActive {
		return nil, nil, models.NewForbiddenError("account is deactivated")
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a
// fresh pair is issued. A replayed token fails here.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if s.rdb == nil {
		return nil, models.NewInternalError(errors.New("token store unavailable"))
	}

	key := refreshKeyPrefix + refreshToken
	raw, err := s.rdb.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return nil, models.NewUnauthorizedError("invalid or expired refresh token")
	}
	if err != nil {
		observability.RedisErrorRate.WithLabelValues("refresh_token").Inc()
		return nil, models.NewInternalError(err)
	}

	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, models.NewUnauthorizedError("invalid or expired refresh token")
	}
	user, err := s.users.GetByID(ctx, uint(userID))
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, models.NewForbiddenError("account is deactivated")
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes one refresh token. Access tokens expire on their own.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if s.rdb == nil || refreshToken == "" {
		return nil
	}
	return s.rdb.Del(ctx, refreshKeyPrefix+refreshToken).Err()
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := middleware.GenerateToken(user, time.Duration(s.cfg.AccessTokenTTLMin)*time.Minute)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	refresh := uuid.NewString()
	if s.rdb != nil {
		ttl := time.Duration(s.cfg.RefreshTokenTTLHrs) * time.Hour
		value := fmt.Sprintf("%d", user.ID)
		if err := s.rdb.Set(ctx, refreshKeyPrefix+refresh, value, ttl).Err(); err != nil {
			observability.RedisErrorRate.WithLabelValues("refresh_token").Inc()
			return nil, models.NewInternalError(err)
		}
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// GetProfile returns a user with follow state annotated for the viewer.
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile changes the caller's bio and avatar.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, bio, avatar string) (*models.User, error) {
	if len([]rune(bio)) > 500 {
		return nil, models.NewValidationError("bio cannot exceed 500 characters")
	}
	if result := moderation.Check(bio, false); !result.IsValid {
		observability.ModerationRejections.WithLabelValues("bio").Inc()
		return nil, models.NewModerationError("bio contains prohibited words")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Bio = bio
	if avatar != "" {
		user.Avatar = avatar
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate soft-disables the caller's account.
func (s *AuthService) Deactivate(ctx context.Context, userID uint) error {
	return s.users.Deactivate(ctx, userID)
}
