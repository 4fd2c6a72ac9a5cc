package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bqtran/translation-service/internal/api/dto"
	"github.com/bqtran/translation-service/internal/domain"
	"github.com/gin-gonic/gin"
)

// CreateTranslation handles POST /translations
// Accepts a translation request for asynchronous processing.
func (h *TranslationHandler) CreateTranslation(c *gin.Context) {
	var req dto.CreateTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "text and targetLanguage are required",
		})
		return
	}

	job, err := h.service.Submit(c.Request.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "text and targetLanguage are required",
			})
			return
		}

		h.logger.Error("Failed to submit translation request", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusAccepted, dto.CreateTranslationResponse{
		Message:   "Translation request queued",
		RequestID: job.RequestID,
		Status:    job.Status,
	})
}

// GetTranslation handles GET /translations/:requestId
// Returns the lifecycle record for a translation request.
func (h *TranslationHandler) GetTranslation(c *gin.Context) {
	requestID := c.Param("requestId")

	job, err := h.service.Get(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Translation request not found",
			})
			return
		}

		h.logger.Error("Failed to get translation request",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, dto.TranslationResponse{
		RequestID:      job.RequestID,
		Status:         job.Status,
		OriginalText:   job.OriginalText,
		TranslatedText: job.TranslatedText,
		TargetLanguage: job.TargetLanguage,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	})
}
