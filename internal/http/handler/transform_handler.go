package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/scribeflow/scribeflow-api/internal/domain"
	"github.com/scribeflow/scribeflow-api/internal/service"
	"go.uber.org/zap"
)

// TransformHandler handles text transformation requests
type TransformHandler struct {
	transformService *service.TransformService
	logger           *zap.Logger
}

// NewTransformHandler creates a new TransformHandler instance
func NewTransformHandler(transformService *service.TransformService, logger *zap.Logger) *TransformHandler {
	return &TransformHandler{
		transformService: transformService,
		logger:           logger,
	}
}

// Transform godoc
// @Summary Transform text
// @Description Generate a transformed variant of the submitted text. The result is not saved; use POST /contents to keep it.
// @Tags Transform
// @Accept json
// @Produce json
// @Param request body domain.TransformRequest true "Transformation payload"
// @Success 200 {object} domain.TransformResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /transform [post]
func (h *TransformHandler) Transform(w http.ResponseWriter, r *http.Request) {
	var req domain.TransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.transformService.Transform(r.Context(), &req)
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
		case errors.Is(err, service.ErrInvalidParameters):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrGenerationFailed):
			h.logger.Error("generation failed", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Content generation failed, please try again",
				Code:    http.StatusInternalServerError,
			})
		default:
			h.logger.Error("failed to transform content", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to transform content",
				Code:    http.StatusInternalServerError,
			})
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}
