package service

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"plaza/internal/config"
	"plaza/internal/middleware"
	"plaza/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T, users *userRepoStub) (*AuthService, *miniredis.Miniredis) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:          "test-secret-key-for-auth-service-tests",
		AccessTokenTTLMin:  60,
		RefreshTokenTTLHrs: 24,
	}
	middleware.InitMiddleware(cfg)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewAuthService(users, rdb, cfg, rand.New(rand.NewSource(1))), mr
}

func TestAuthService_Register(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		svc, _ := newAuthService(t, noopUserRepo())

		cases := []struct {
			name     string
			username string
			email    string
			password string
			code     string
		}{
			{"short username", "ab", "a@b.com", "password1", models.CodeValidation},
			{"long username", strings.Repeat("a", 41), "a@b.com", "password1", models.CodeValidation},
			{"moderated username", "小小诈骗犯", "a@b.com", "password1", models.CodeModeration},
			{"bad email", "alice", "not-an-email", "password1", models.CodeValidation},
			{"short password", "alice", "a@b.com", "short", models.CodeValidation},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, _, err := svc.Register(context.Background(), tc.username, tc.email, tc.password)
				appErr := &models.AppError{}
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tc.code, appErr.Code)
			})
		}
	})

	t.Run("success hashes the password and issues tokens", func(t *testing.T) {
		var created *models.User
		users := noopUserRepo()
		users.createFn = func(_ context.Context, u *models.User) error {
			created = u
			u.ID = 42
			return nil
		}
		svc, mr := newAuthService(t, users)

		user, tokens, err := svc.Register(context.Background(), "alice", "Alice@Example.com", "password1")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "alice@example.com", created.Email)
		assert.NotEqual(t, "password1", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password1")))
		assert.Contains(t, user.Avatar, "seed=alice")
		assert.True(t, user.IsActive)

		require.NotNil(t, tokens)
		assert.NotEmpty(t, tokens.AccessToken)
		stored, err := mr.Get("refresh:" + tokens.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, "42", stored)
	})

	t.Run("duplicate account", func(t *testing.T) {
		users := noopUserRepo()
		users.createFn = func(context.Context, *models.User) error {
			return models.NewAlreadyExistsError("username or email already taken")
		}
		svc, _ := newAuthService(t, users)

		_, _, err := svc.Register(context.Background(), "alice", "a@b.com", "password1")
		appErr := &models.AppError{}
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeAlreadyExists, appErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)

	accountRepo := func(active bool) *userRepoStub {
		users := noopUserRepo()
		users.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
			if email != "a@b.com" {
				return nil, nil
			}
			u := &models.User{Username: "alice", Email: email, Password: string(hash), IsActive: active}
			u.ID = 1
			return u, nil
		}
		return users
	}

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		svc, _ := newAuthService(t, accountRepo(true))

		_, _, errUnknown := svc.Login(context.Background(), "nobody@b.com", "password1")
		_, _, errWrong := svc.Login(context.Background(), "a@b.com", "nope")
		require.Error(t, errUnknown)
		require.Error(t, errWrong)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("deactivated account is forbidden", func(t *testing.T) {
		svc, _ := newAuthService(t, accountRepo(false))

		_, _, err := svc.Login(context.Background(), "a@b.com", "password1")
		appErr := &models.AppError{}
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeForbidden, appErr.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc, _ := newAuthService(t, accountRepo(true))

		user, tokens, err := svc.Login(context.Background(), "a@b.com", "password1")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("rotates the token", func(t *testing.T) {
		svc, mr := newAuthService(t, noopUserRepo())
		require.NoError(t, mr.Set("refresh:old-token", "7"))

		tokens, err := svc.Refresh(context.Background(), "old-token")
		require.NoError(t, err)
		assert.NotEqual(t, "old-token", tokens.RefreshToken)

		// The consumed token cannot be replayed.
		_, err = svc.Refresh(context.Background(), "old-token")
		appErr := &models.AppError{}
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, _ := newAuthService(t, noopUserRepo())

		_, err := svc.Refresh(context.Background(), "never-issued")
		appErr := &models.AppError{}
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	svc, mr := newAuthService(t, noopUserRepo())
	require.NoError(t, mr.Set("refresh:tok", "7"))

	require.NoError(t, svc.Logout(context.Background(), "tok"))
	assert.False(t, mr.Exists("refresh:tok"))
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Run("moderated bio rejected", func(t *testing.T) {
		svc, _ := newAuthService(t, noopUserRepo())

		_, err := svc.UpdateProfile(context.Background(), 1, "本人专营赌博", "")
		appErr := &models.AppError{}
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeModeration, appErr.Code)
	})

	t.Run("updates bio and keeps avatar when blank", func(t *testing.T) {
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			u := &models.User{Username: "alice", Avatar: "existing.png"}
			u.ID = id
			return u, nil
		}
		var updated *models.User
		users.updateFn = func(_ context.Context, u *models.User) error {
			updated = u
			return nil
		}
		svc, _ := newAuthService(t, users)

		_, err := svc.UpdateProfile(context.Background(), 1, "hello there", "")
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "hello there", updated.Bio)
		assert.Equal(t, "existing.png", updated.Avatar)
	})
}
