package rabbitmq

import (
	"context"
	"log/slog"
	"time"
)

// DefaultReconnectInterval is used when no reconnect interval is configured.
const DefaultReconnectInterval = 5 * time.Second

// Start launches the reconnection supervisor. It dials the broker and, on
// any failure or connection loss, waits a fixed interval and retries
// indefinitely until the context is canceled. No backoff, no retry cap: the
// broker is assumed eventually available.
func (c *Client) Start(ctx context.Context) {
	go c.supervise(ctx)
}

func (c *Client) supervise(ctx context.Context) {
	interval := c.config.ReconnectInterval
	if interval <= 0 {
		interval = DefaultReconnectInterval
	}

	for {
		closeChan, err := c.connect()
		if err != nil {
			c.logger.Error("Failed to connect to RabbitMQ, retrying",
				slog.Any("error", err),
				slog.Duration("retry_in", interval),
			)

			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
				continue
			}
		}

		select {
		case <-ctx.Done():
			c.Close()
			return
		case amqpErr := <-closeChan:
			c.markDisconnected()
			c.logger.Warn("RabbitMQ connection lost, reconnecting",
				slog.Any("error", amqpErr),
				slog.Duration("retry_in", interval),
			)

			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}
		}
	}
}
