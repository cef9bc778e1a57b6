package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/scribeflow/scribeflow-api/internal/domain"
	"github.com/scribeflow/scribeflow-api/internal/service"
	"go.uber.org/zap"
)

// ContentHandler handles HTTP requests for the saved content history
type ContentHandler struct {
	contentService *service.ContentService
	logger         *zap.Logger
}

// NewContentHandler creates a new ContentHandler instance
func NewContentHandler(contentService *service.ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		logger:         logger,
	}
}

// Create godoc
// @Summary Save content
// @Description Save a transformation result to the current user's history
// @Tags Contents
// @Accept json
// @Produce json
// @Param request body domain.CreateContentRequest true "Content payload"
// @Success 201 {object} domain.ContentDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /contents [post]
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.contentService.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserContextRequired):
			respondJSON(w, http.StatusUnauthorized, domain.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Authentication required",
				Code:    http.StatusUnauthorized,
			})
		case errors.Is(err, service.ErrInvalidContentType):
			respondWithError(w, http.StatusBadRequest,
				"invalid content type: must be one of expand, summarize, similar, template")
		case errors.Is(err, service.ErrInvalidMetadata):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to save content", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to save content",
				Code:    http.StatusInternalServerError,
			})
		}
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// List godoc
// @Summary List contents
// @Description Get the current user's saved contents, newest first
// @Tags Contents
// @Produce json
// @Param type query string false "Filter by content type" Enums(expand, summarize, similar, template)
// @Success 200 {array} domain.ContentDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /contents [get]
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	var contentType *domain.ContentType
	if raw := r.URL.Query().Get("type"); raw != "" {
		ct := domain.ContentType(raw)
		if !ct.IsValid() {
			respondWithError(w, http.StatusBadRequest,
				"invalid content type: must be one of expand, summarize, similar, template")
			return
		}
		contentType = &ct
	}

	result, err := h.contentService.ListForCurrentUser(r.Context(), contentType)
	if err != nil {
		if errors.Is(err, service.ErrUserContextRequired) {
			respondJSON(w, http.StatusUnauthorized, domain.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Authentication required",
				Code:    http.StatusUnauthorized,
			})
			return
		}
		h.logger.Error("failed to list contents", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list contents",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ListRecent godoc
// @Summary List recent contents
// @Description Get the current user's most recent contents
// @Tags Contents
// @Produce json
// @Param limit query int false "Maximum entries to return (1-100)" default(10)
// @Success 200 {array} domain.ContentDTO
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /contents/recent [get]
func (h *ContentHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.contentService.ListRecentForCurrentUser(r.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrUserContextRequired) {
			respondJSON(w, http.StatusUnauthorized, domain.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Authentication required",
				Code:    http.StatusUnauthorized,
			})
			return
		}
		h.logger.Error("failed to list recent contents", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list recent contents",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get content by ID
// @Description Get a single saved content entry by its ID
// @Tags Contents
// @Produce json
// @Param id path string true "Content ID" format(uuid)
// @Success 200 {object} domain.ContentDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /contents/{id} [get]
func (h *ContentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid content ID")
		return
	}

	result, err := h.contentService.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserContextRequired):
			respondJSON(w, http.StatusUnauthorized, domain.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Authentication required",
				Code:    http.StatusUnauthorized,
			})
		case errors.Is(err, service.ErrContentNotFound):
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Content not found",
				Code:    http.StatusNotFound,
			})
		case errors.Is(err, service.ErrContentNotOwned):
			respondJSON(w, http.StatusForbidden, domain.ErrorResponse{
				Error:   "Forbidden",
				Message: "Content belongs to another user",
				Code:    http.StatusForbidden,
			})
		default:
			h.logger.Error("failed to get content", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to get content",
				Code:    http.StatusInternalServerError,
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}
