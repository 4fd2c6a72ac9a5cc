package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bqtran/translation-service/internal/domain"
	"github.com/bqtran/translation-service/internal/metrics"
	"github.com/google/uuid"
)

// JobStore is the slice of the status store the submission path needs.
type JobStore interface {
	Create(ctx context.Context, job *domain.TranslationJob) error
	GetByRequestID(ctx context.Context, requestID string) (*domain.TranslationJob, error)
}

// Publisher publishes a job message to the durable queue.
type Publisher interface {
	Publish(ctx context.Context, body []byte, contentType string) error
}

// Submission validates translation requests, records them in the status
// store and publishes the job message. Record creation and publish are not
// atomic: a publish failure after a successful create leaves the record
// permanently queued (an orphan), which is surfaced to the caller as an
// error and never silently repaired.
type Submission struct {
	logger    *slog.Logger
	store     JobStore
	publisher Publisher
}

// NewSubmission creates a new Submission service
func NewSubmission(logger *slog.Logger, store JobStore, publisher Publisher) *Submission {
	return &Submission{
		logger:    logger,
		store:     store,
		publisher: publisher,
	}
}

// Submit accepts a translation request. On success exactly one queued record
// and one persistent queue message exist for the returned request ID.
func (s *Submission) Submit(ctx context.Context, text, targetLanguage string) (*domain.TranslationJob, error) {
	if text == "" || targetLanguage == "" {
		return nil, domain.ErrInvalidInput
	}

	job := &domain.TranslationJob{
		RequestID:      uuid.New().String(),
		Status:         domain.StatusQueued,
		OriginalText:   text,
		TargetLanguage: targetLanguage,
	}

	if err := s.store.Create(ctx, job); err != nil {
		s.logger.Error("Failed to create translation request",
			slog.String("request_id", job.RequestID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create translation request: %w", err)
	}

	body, err := json.Marshal(domain.JobMessage{
		RequestID:      job.RequestID,
		Text:           text,
		TargetLanguage: targetLanguage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job message: %w", err)
	}

	if err := s.publisher.Publish(ctx, body, "application/json"); err != nil {
		// The record already exists and stays queued with no message behind
		// it. The caller gets the error; the orphan is left in place.
		s.logger.Error("Failed to publish job message, record orphaned in queued",
			slog.String("request_id", job.RequestID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to publish job message: %w", err)
	}

	metrics.JobsSubmitted.Inc()

	s.logger.Info("Translation request submitted",
		slog.String("request_id", job.RequestID),
		slog.String("target_language", targetLanguage),
	)

	return job, nil
}

// Get returns the lifecycle record for a request ID.
func (s *Submission) Get(ctx context.Context, requestID string) (*domain.TranslationJob, error) {
	return s.store.GetByRequestID(ctx, requestID)
}
