package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/bqtran/translation-service/internal/domain"
	"github.com/bqtran/translation-service/internal/metrics"
	amqp "github.com/rabbitmq/amqp091-go"
)

// handleDelivery drives one message through the state machine:
// queued -> processing -> completed|failed. All paths end in an ack; a
// message is never nacked or requeued, because redelivering a job whose
// failure is already recorded would loop forever.
func (w *Worker) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	var msg domain.JobMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		w.logger.Error("Malformed queue message, dropping",
			slog.String("error", err.Error()),
			slog.String("body", string(delivery.Body)),
		)
		metrics.MessagesDropped.WithLabelValues(metrics.DropReasonMalformed).Inc()
		w.ack(delivery)
		return
	}

	logger := w.logger.With(slog.String("request_id", msg.RequestID))

	job, err := w.store.GetByRequestID(ctx, msg.RequestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The record is authoritative; without it there is nothing to
			// process and redelivery would not help.
			logger.Error("No record for queued message, dropping")
			metrics.MessagesDropped.WithLabelValues(metrics.DropReasonNotFound).Inc()
			w.ack(delivery)
			return
		}

		logger.Error("Failed to look up translation request",
			slog.String("error", err.Error()),
		)
		w.failJob(ctx, logger, msg.RequestID)
		w.ack(delivery)
		return
	}

	if job.Status != domain.StatusQueued {
		// Redelivery of a job already in processing or a terminal state is
		// a no-op re-entry point.
		logger.Info("Request already left queued, dropping redelivery",
			slog.String("status", job.Status),
		)
		metrics.MessagesDropped.WithLabelValues(metrics.DropReasonDuplicate).Inc()
		w.ack(delivery)
		return
	}

	if err := w.store.MarkProcessing(ctx, job.RequestID); err != nil {
		if errors.Is(err, domain.ErrNotClaimable) {
			// Lost the conditional update to a concurrent delivery.
			logger.Info("Request claimed by a concurrent delivery, dropping")
			metrics.MessagesDropped.WithLabelValues(metrics.DropReasonDuplicate).Inc()
			w.ack(delivery)
			return
		}

		logger.Error("Failed to mark request processing",
			slog.String("error", err.Error()),
		)
		w.failJob(ctx, logger, job.RequestID)
		w.ack(delivery)
		return
	}

	logger.Info("Processing translation request",
		slog.String("target_language", job.TargetLanguage),
	)

	translated, err := w.translator.Translate(ctx, job.OriginalText, job.TargetLanguage)
	if err != nil {
		logger.Error("Translation failed",
			slog.String("error", err.Error()),
		)
		w.failJob(ctx, logger, job.RequestID)
		w.ack(delivery)
		return
	}

	if err := w.store.MarkCompleted(ctx, job.RequestID, translated); err != nil {
		logger.Error("Failed to mark request completed",
			slog.String("error", err.Error()),
		)
		w.failJob(ctx, logger, job.RequestID)
		w.ack(delivery)
		return
	}

	metrics.JobsCompleted.Inc()
	logger.Info("Translation request processed")
	w.ack(delivery)
}

// failJob records the failure in the status store. Best effort: if the store
// is unreachable the job may stay in processing, but the message is still
// acknowledged by the caller.
func (w *Worker) failJob(ctx context.Context, logger *slog.Logger, requestID string) {
	metrics.JobsFailed.Inc()

	if err := w.store.MarkFailed(ctx, requestID); err != nil {
		logger.Error("Failed to mark request failed",
			slog.String("error", err.Error()),
		)
	}
}

func (w *Worker) ack(delivery amqp.Delivery) {
	if err := delivery.Ack(false); err != nil {
		w.logger.Error("Failed to ACK message",
			slog.Uint64("delivery_tag", delivery.DeliveryTag),
			slog.String("error", err.Error()),
		)
	}
}
