package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/scribeflow/scribeflow-api/internal/domain"
	"github.com/scribeflow/scribeflow-api/internal/service"
	"github.com/scribeflow/scribeflow-api/internal/storage"
	"go.uber.org/zap"
)

// ProfileHandler handles profile updates and image uploads
type ProfileHandler struct {
	userService     *service.UserService
	storage         storage.Storage
	maxUploadSizeMB int64
	logger          *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(
	userService *service.UserService,
	store storage.Storage,
	maxUploadSizeMB int64,
	logger *zap.Logger,
) *ProfileHandler {
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = 5
	}

	return &ProfileHandler{
		userService:     userService,
		storage:         store,
		maxUploadSizeMB: maxUploadSizeMB,
		logger:          logger,
	}
}

// Update godoc
// @Summary Update profile
// @Description Apply partial changes to the authenticated user's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body domain.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} domain.UserDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /profile [patch]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.userService.UpdateProfile(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserContextRequired):
			respondJSON(w, http.StatusUnauthorized, domain.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Authentication required",
				Code:    http.StatusUnauthorized,
			})
		case errors.Is(err, service.ErrInvalidTheme):
			respondWithError(w, http.StatusBadRequest,
				"invalid theme: must be one of light, dark, system")
		case errors.Is(err, service.ErrUsernameTaken):
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: "Username is already taken",
				Code:    http.StatusConflict,
			})
		case errors.Is(err, service.ErrEmailTaken):
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: "Email is already registered",
				Code:    http.StatusConflict,
			})
		default:
			h.logger.Error("failed to update profile", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to update profile",
				Code:    http.StatusInternalServerError,
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// UploadImage godoc
// @Summary Upload profile image
// @Description Upload a profile image (multipart field "image", image/* only, max 5MB)
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} domain.ProfileImageResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 413 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /profile/image [post]
func (h *ProfileHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.maxUploadSizeMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondJSON(w, http.StatusRequestEntityTooLarge, domain.ErrorResponse{
				Error:   "Request Entity Too Large",
				Message: "Image exceeds the maximum allowed size",
				Code:    http.StatusRequestEntityTooLarge,
			})
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing image file in form field 'image'")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	sniffBuf := make([]byte, 512)
	n, err := io.ReadFull(file, sniffBuf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "Unable to read uploaded file")
		return
	}
	if err := validateImageType(contentType, sniffBuf[:n]); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.logger.Error("failed to rewind uploaded file", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to upload image",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	// Remember the previous image so it can be removed after a successful swap
	current, err := h.userService.GetCurrent(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrUserContextRequired) {
			respondJSON(w, http.StatusUnauthorized, domain.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Authentication required",
				Code:    http.StatusUnauthorized,
			})
			return
		}
		h.logger.Error("failed to load current user for image upload", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to upload image",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	storagePath, size, err := h.storage.Upload(r.Context(), header.Filename, contentType, file)
	if err != nil {
		h.logger.Error("failed to store image", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to store image",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	updated, err := h.userService.SetProfileImage(r.Context(), storagePath)
	if err != nil {
		// Roll back the stored file so it doesn't leak
		_ = h.storage.Delete(r.Context(), storagePath)
		h.logger.Error("failed to set profile image", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update profile image",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if current.ProfileImage != "" && current.ProfileImage != storagePath {
		if err := h.storage.Delete(r.Context(), current.ProfileImage); err != nil {
			h.logger.Warn("failed to delete previous profile image",
				zap.String("path", current.ProfileImage),
				zap.Error(err),
			)
		}
	}

	h.logger.Info("profile image uploaded",
		zap.String("path", storagePath),
		zap.Int64("size", size),
		zap.String("contentType", contentType),
	)

	respondJSON(w, http.StatusOK, domain.ProfileImageResponse{
		ImageURL: storagePath,
		User:     *updated,
	})
}

// validateImageType checks the declared content type and the sniffed file
// bytes. The declared type is client-controlled, so both must look like an
// image before the upload is accepted.
func validateImageType(declared string, head []byte) error {
	if !strings.HasPrefix(declared, "image/") {
		return fmt.Errorf("%w: only image uploads are allowed", service.ErrUnsupportedImageType)
	}
	if !strings.HasPrefix(http.DetectContentType(head), "image/") {
		return fmt.Errorf("%w: uploaded file is not an image", service.ErrUnsupportedImageType)
	}
	return nil
}
