package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/scribeflow/scribeflow-api/internal/auth"
	"github.com/scribeflow/scribeflow-api/internal/config"
	"github.com/scribeflow/scribeflow-api/internal/domain"
	"github.com/scribeflow/scribeflow-api/internal/http/handler"
	"github.com/scribeflow/scribeflow-api/internal/repository"
	"github.com/scribeflow/scribeflow-api/internal/service"
	"github.com/scribeflow/scribeflow-api/internal/storage"
	"github.com/scribeflow/scribeflow-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func createProfileHandler(t *testing.T, db *gorm.DB) (*handler.ProfileHandler, *service.UserService, storage.Storage) {
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

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	return handler.NewProfileHandler(userService, store, 5, logger), userService, store
}

func registerProfileTestUser(t *testing.T, userService *service.UserService) context.Context {
	t.Helper()

	resp, err := userService.Register(context.Background(), &domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	userID, err := uuid.Parse(resp.User.ID)
	require.NoError(t, err)
	return createContentTestContext(userID)
}

func imageUploadRequest(t *testing.T, ctx context.Context, fieldName, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/profile/image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req.WithContext(ctx)
}

func TestProfileHandler_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	h, userService, _ := createProfileHandler(t, db)
	ctx := registerProfileTestUser(t, userService)

	update := func(ctx context.Context, body any) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPatch, "/profile", bytes.NewReader(raw))
		req = req.WithContext(ctx)

		rr := httptest.NewRecorder()
		h.Update(rr, req)
		return rr
	}

	t.Run("update full name and theme", func(t *testing.T) {
		rr := update(ctx, map[string]any{
			"fullName": "Alice Writer",
			"theme":    "dark",
		})

		assert.Equal(t, http.StatusOK, rr.Code)

		var dto domain.UserDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.Equal(t, "Alice Writer", dto.FullName)
		assert.Equal(t, domain.ThemeDark, dto.Theme)
	})

	t.Run("unchanged fields are preserved", func(t *testing.T) {
		rr := update(ctx, map[string]any{"theme": "light"})

		assert.Equal(t, http.StatusOK, rr.Code)

		var dto domain.UserDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.Equal(t, "Alice Writer", dto.FullName)
		assert.Equal(t, domain.ThemeLight, dto.Theme)
	})

	t.Run("update username", func(t *testing.T) {
		rr := update(ctx, map[string]any{"username": "alicewrites"})

		assert.Equal(t, http.StatusOK, rr.Code)

		var dto domain.UserDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.Equal(t, "alicewrites", dto.Username)
	})

	t.Run("username taken by another user", func(t *testing.T) {
		_, err := userService.Register(context.Background(), &domain.RegisterRequest{
			Username: "carol",
			Email:    "carol@example.com",
			Password: "supersecret1",
		})
		require.NoError(t, err)

		rr := update(ctx, map[string]any{"username": "carol"})

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("invalid theme", func(t *testing.T) {
		rr := update(ctx, map[string]any{"theme": "neon"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "light, dark, system")
	})

	t.Run("invalid email", func(t *testing.T) {
		rr := update(ctx, map[string]any{"email": "not-an-email"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		_, err := userService.Register(context.Background(), &domain.RegisterRequest{
			Username: "bob",
			Email:    "bob@example.com",
			Password: "supersecret1",
		})
		require.NoError(t, err)

		rr := update(ctx, map[string]any{"email": "bob@example.com"})

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rr := update(context.Background(), map[string]any{"theme": "dark"})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestProfileHandler_UploadImage(t *testing.T) {
	db := testutil.NewTestDB(t)
	h, userService, store := createProfileHandler(t, db)
	ctx := registerProfileTestUser(t, userService)

	// Starts with the PNG signature so content sniffing sees a real image
	imageData := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, bytes.Repeat([]byte{0x00}, 64)...)

	t.Run("upload image", func(t *testing.T) {
		req := imageUploadRequest(t, ctx, "image", "avatar.png", "image/png", imageData)

		rr := httptest.NewRecorder()
		h.UploadImage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp domain.ProfileImageResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ImageURL)
		assert.Equal(t, "alice", resp.User.Username)
		assert.Equal(t, resp.ImageURL, resp.User.ProfileImage)

		// The stored reference is persisted on the user
		dto, err := userService.GetCurrent(ctx)
		require.NoError(t, err)
		assert.Equal(t, resp.ImageURL, dto.ProfileImage)

		// And the file is retrievable
		reader, err := store.Download(context.Background(), resp.ImageURL)
		require.NoError(t, err)
		reader.Close()
	})

	t.Run("replacing image removes the previous file", func(t *testing.T) {
		dto, err := userService.GetCurrent(ctx)
		require.NoError(t, err)
		previous := dto.ProfileImage
		require.NotEmpty(t, previous)

		req := imageUploadRequest(t, ctx, "image", "avatar2.jpg", "image/jpeg", imageData)

		rr := httptest.NewRecorder()
		h.UploadImage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp domain.ProfileImageResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEqual(t, previous, resp.ImageURL)

		_, err = store.Download(context.Background(), previous)
		assert.Error(t, err)
	})

	t.Run("non-image content type rejected", func(t *testing.T) {
		req := imageUploadRequest(t, ctx, "image", "notes.txt", "text/plain", []byte("hello"))

		rr := httptest.NewRecorder()
		h.UploadImage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "only image uploads are allowed")
	})

	t.Run("declared image type with non-image bytes rejected", func(t *testing.T) {
		req := imageUploadRequest(t, ctx, "image", "avatar.png", "image/png", []byte("plain text pretending to be a png"))

		rr := httptest.NewRecorder()
		h.UploadImage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "not an image")
	})

	t.Run("missing form field", func(t *testing.T) {
		req := imageUploadRequest(t, ctx, "file", "avatar.png", "image/png", imageData)

		rr := httptest.NewRecorder()
		h.UploadImage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed multipart body rejected as bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/profile/image", bytes.NewReader([]byte("not a multipart body")))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=deadbeef")
		req = req.WithContext(ctx)

		rr := httptest.NewRecorder()
		h.UploadImage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("oversized upload rejected", func(t *testing.T) {
		big := make([]byte, 6<<20)
		req := imageUploadRequest(t, ctx, "image", "huge.png", "image/png", big)

		rr := httptest.NewRecorder()
		h.UploadImage(rr, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := imageUploadRequest(t, context.Background(), "image", "avatar.png", "image/png", imageData)

		rr := httptest.NewRecorder()
		h.UploadImage(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
