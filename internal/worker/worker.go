package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bqtran/translation-service/internal/domain"
	"github.com/bqtran/translation-service/internal/translator"
	"github.com/bqtran/translation-service/shared/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
)

// JobStore is the slice of the status store the worker needs to drive the
// state machine.
type JobStore interface {
	GetByRequestID(ctx context.Context, requestID string) (*domain.TranslationJob, error)
	MarkProcessing(ctx context.Context, requestID string) error
	MarkCompleted(ctx context.Context, requestID, translatedText string) error
	MarkFailed(ctx context.Context, requestID string) error
}

// Consumer registers a consumer on the job queue.
type Consumer interface {
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
}

// Config holds worker configuration
type Config struct {
	Logger            *slog.Logger
	Store             JobStore
	Translator        translator.Translator
	Consumer          Consumer
	ConsumerTag       string
	ReconnectInterval time.Duration
}

// Worker consumes translation job messages one at a time (the queue channel
// is opened with prefetch 1) and transitions each record to a terminal
// state. Every delivery is acknowledged whatever the outcome; failures are
// recorded in the status store, never requeued.
type Worker struct {
	logger            *slog.Logger
	store             JobStore
	translator        translator.Translator
	consumer          Consumer
	consumerTag       string
	reconnectInterval time.Duration
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	interval := cfg.ReconnectInterval
	if interval <= 0 {
		interval = rabbitmq.DefaultReconnectInterval
	}

	return &Worker{
		logger:            cfg.Logger,
		store:             cfg.Store,
		translator:        cfg.Translator,
		consumer:          cfg.Consumer,
		consumerTag:       cfg.ConsumerTag,
		reconnectInterval: interval,
	}
}

// Start consumes until the context is canceled. When the broker connection
// drops the delivery channel closes and consumption restarts after the
// fixed reconnect interval; while disconnected no messages are processed.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("consumer_tag", w.consumerTag),
	)

	for {
		if ctx.Err() != nil {
			return nil
		}

		deliveries, err := w.consumer.Consume(w.consumerTag)
		if err != nil {
			if !errors.Is(err, rabbitmq.ErrNotConnected) {
				w.logger.Error("Failed to start consuming",
					slog.String("error", err.Error()),
				)
			}

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.reconnectInterval):
				continue
			}
		}

		w.consumeLoop(ctx, deliveries)

		if ctx.Err() != nil {
			return nil
		}

		w.logger.Warn("Delivery channel closed, re-registering consumer",
			slog.Duration("retry_in", w.reconnectInterval),
		)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(w.reconnectInterval):
		}
	}
}

// consumeLoop drains deliveries until the channel closes or the context is
// canceled. Deliveries are handled one at a time.
func (w *Worker) consumeLoop(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Worker stopping - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			w.handleDelivery(ctx, delivery)
		}
	}
}
