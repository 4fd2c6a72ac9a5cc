package handler

import (
	"context"
	"log/slog"

	"github.com/bqtran/translation-service/internal/domain"
)

// TranslationService is the submission-side surface the HTTP layer depends on.
type TranslationService interface {
	Submit(ctx context.Context, text, targetLanguage string) (*domain.TranslationJob, error)
	Get(ctx context.Context, requestID string) (*domain.TranslationJob, error)
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger  *slog.Logger
	Service TranslationService
}

// TranslationHandler handles translation HTTP requests
type TranslationHandler struct {
	logger  *slog.Logger
	service TranslationService
}

// NewTranslationHandler creates a new TranslationHandler instance
func NewTranslationHandler(deps *Dependencies) *TranslationHandler {
	return &TranslationHandler{
		logger:  deps.Logger,
		service: deps.Service,
	}
}
