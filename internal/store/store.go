package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bqtran/translation-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pq error code for unique constraint violations
const uniqueViolation = "23505"

// Store handles all database operations on translation requests.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store instance
func NewStore(db *sqlx.DB, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new translation request record.
// Returns domain.ErrDuplicateRequestID if the request ID already exists.
func (s *Store) Create(ctx context.Context, job *domain.TranslationJob) error {
	query := `
		INSERT INTO translation_requests (
			request_id, status, original_text, translated_text,
			target_language, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, NOW(), NOW()
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.RequestID,
		job.Status,
		job.OriginalText,
		job.TranslatedText,
		job.TargetLanguage,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateRequestID
		}
		return fmt.Errorf("failed to create translation request: %w", err)
	}

	return nil
}

// GetByRequestID retrieves a translation request by its ID.
// Returns domain.ErrNotFound if no record exists; absence is a normal outcome.
func (s *Store) GetByRequestID(ctx context.Context, requestID string) (*domain.TranslationJob, error) {
	query := `
		SELECT request_id, status, original_text, translated_text,
		       target_language, created_at, updated_at
		FROM translation_requests
		WHERE request_id = $1
	`

	var job domain.TranslationJob
	err := s.db.GetContext(ctx, &job, query, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get translation request: %w", err)
	}

	return &job, nil
}

// MarkProcessing transitions a request from queued to processing using a
// conditional update. A redelivered message whose record already left
// queued matches no row and gets domain.ErrNotClaimable, so duplicate
// deliveries become no-ops instead of re-running translation.
func (s *Store) MarkProcessing(ctx context.Context, requestID string) error {
	query := `
		UPDATE translation_requests
		SET status = $1,
		    updated_at = NOW()
		WHERE request_id = $2
		  AND status = $3
	`

	result, err := s.db.ExecContext(ctx, query, domain.StatusProcessing, requestID, domain.StatusQueued)
	if err != nil {
		return fmt.Errorf("failed to mark request processing: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Warn("Request not claimable - not found or already left queued",
			slog.String("request_id", requestID),
		)
		return domain.ErrNotClaimable
	}

	return nil
}

// MarkCompleted sets the translated text and transitions the request to
// completed. The status condition keeps the write idempotent: a terminal
// record is never overwritten.
func (s *Store) MarkCompleted(ctx context.Context, requestID, translatedText string) error {
	query := `
		UPDATE translation_requests
		SET status = $1,
		    translated_text = $2,
		    updated_at = NOW()
		WHERE request_id = $3
		  AND status = $4
	`

	result, err := s.db.ExecContext(ctx, query, domain.StatusCompleted, translatedText, requestID, domain.StatusProcessing)
	if err != nil {
		return fmt.Errorf("failed to mark request completed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("Translation request completed",
		slog.String("request_id", requestID),
	)

	return nil
}

// MarkFailed transitions a request to failed. Only non-terminal records are
// touched so a late failure write can never revert a completed request.
func (s *Store) MarkFailed(ctx context.Context, requestID string) error {
	query := `
		UPDATE translation_requests
		SET status = $1,
		    updated_at = NOW()
		WHERE request_id = $2
		  AND status IN ($3, $4)
	`

	result, err := s.db.ExecContext(ctx, query, domain.StatusFailed, requestID, domain.StatusQueued, domain.StatusProcessing)
	if err != nil {
		return fmt.Errorf("failed to mark request failed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("Translation request marked failed",
		slog.String("request_id", requestID),
	)

	return nil
}
