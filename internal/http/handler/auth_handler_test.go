package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/scribeflow/scribeflow-api/internal/auth"
	"github.com/scribeflow/scribeflow-api/internal/config"
	"github.com/scribeflow/scribeflow-api/internal/domain"
	"github.com/scribeflow/scribeflow-api/internal/http/handler"
	"github.com/scribeflow/scribeflow-api/internal/repository"
	"github.com/scribeflow/scribeflow-api/internal/service"
	"github.com/scribeflow/scribeflow-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func createAuthHandler(t *testing.T, db *gorm.DB) (*handler.AuthHandler, *service.UserService) {
	t.Helper()
	logger := zap.NewNop()

	cfg := &config.AuthConfig{
		Secret:     "test-secret-key-with-enough-bytes!!",
		Issuer:     "scribeflow-api",
		TokenTTL:   3600,
		BcryptCost: bcrypt.MinCost,
	}
	tokens, err := auth.NewTokenManager(cfg)
	require.NoError(t, err)

	userService := service.NewUserService(repository.NewUserRepository(db), tokens, cfg, logger)
	return handler.NewAuthHandler(userService, logger), userService
}

func TestAuthHandler_Register(t *testing.T) {
	db := testutil.NewTestDB(t)
	h, _ := createAuthHandler(t, db)

	register := func(body any) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(raw))
		rr := httptest.NewRecorder()
		h.Register(rr, req)
		return rr
	}

	t.Run("register successfully", func(t *testing.T) {
		rr := register(domain.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "supersecret1",
			FullName: "Alice Writer",
		})

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp domain.AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice", resp.User.Username)
	})

	t.Run("duplicate username", func(t *testing.T) {
		rr := register(domain.RegisterRequest{
			Username: "alice",
			Email:    "alice2@example.com",
			Password: "supersecret1",
		})

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		rr := register(domain.RegisterRequest{
			Username: "bob",
			Email:    "bob@example.com",
			Password: "short",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "password")
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		rr := register(domain.RegisterRequest{
			Username: "carol",
			Email:    "not-an-email",
			Password: "supersecret1",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("username with symbols rejected", func(t *testing.T) {
		rr := register(domain.RegisterRequest{
			Username: "not valid!",
			Email:    "dave@example.com",
			Password: "supersecret1",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte("{")))
		rr := httptest.NewRecorder()
		h.Register(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	db := testutil.NewTestDB(t)
	h, userService := createAuthHandler(t, db)

	_, err := userService.Register(context.Background(), &domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	login := func(body any) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(raw))
		rr := httptest.NewRecorder()
		h.Login(rr, req)
		return rr
	}

	t.Run("login successfully", func(t *testing.T) {
		rr := login(domain.LoginRequest{Username: "alice", Password: "supersecret1"})

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp domain.AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.ExpiresAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := login(domain.LoginRequest{Username: "alice", Password: "wrong-password"})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown username", func(t *testing.T) {
		rr := login(domain.LoginRequest{Username: "mallory", Password: "supersecret1"})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := login(domain.LoginRequest{Username: "alice"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	db := testutil.NewTestDB(t)
	h, userService := createAuthHandler(t, db)

	resp, err := userService.Register(context.Background(), &domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret1",
		FullName: "Alice Writer",
	})
	require.NoError(t, err)

	userID, err := uuid.Parse(resp.User.ID)
	require.NoError(t, err)

	t.Run("get current user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req = req.WithContext(createContentTestContext(userID))

		rr := httptest.NewRecorder()
		h.Me(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var dto domain.UserDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.Equal(t, "alice", dto.Username)
		assert.Equal(t, "Alice Writer", dto.FullName)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)

		rr := httptest.NewRecorder()
		h.Me(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("user deleted after token issued", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req = req.WithContext(createContentTestContext(uuid.New()))

		rr := httptest.NewRecorder()
		h.Me(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
