package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrNotConnected is returned by Publish and Consume while the broker
// connection is down. Callers surface it as an internal failure; the
// supervisor keeps retrying the connection in the background.
var ErrNotConnected = errors.New("not connected to RabbitMQ")

// Config holds RabbitMQ connection and queue configuration
type Config struct {
	Host              string
	Port              int
	User              string
	Password          string
	VHost             string
	QueueName         string
	QueueDurable      bool
	PrefetchCount     int
	Heartbeat         time.Duration
	ReconnectInterval time.Duration
}

// Client represents a RabbitMQ client. The connection and channel are owned
// by the client and guarded by the mutex; there is no shared module-level
// channel. The reconnection supervisor replaces them in place after a
// connection loss.
type Client struct {
	config *Config
	logger *slog.Logger

	mu        sync.RWMutex
	conn      *amqp.Connection
	channel   *amqp.Channel
	connected bool
}

// NewClient creates a new RabbitMQ client. No connection is made until
// Start is called.
func NewClient(config *Config, logger *slog.Logger) *Client {
	return &Client{
		config: config,
		logger: logger,
	}
}

// connect dials the broker, opens a channel, declares the durable queue and
// applies the consumer prefetch limit. It returns the connection's close
// notification channel for the supervisor to watch.
func (c *Client) connect() (chan *amqp.Error, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d%s",
		c.config.User,
		c.config.Password,
		c.config.Host,
		c.config.Port,
		c.config.VHost,
	)

	conn, err := amqp.DialConfig(dsn, amqp.Config{
		Heartbeat: c.config.Heartbeat,
		Locale:    "en_US",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	// Declare the queue so publisher and consumer can start in any order.
	_, err = channel.QueueDeclare(
		c.config.QueueName,    // name
		c.config.QueueDurable, // durable
		false,                 // auto-delete
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// Bound the number of unacknowledged deliveries per consumer. The worker
	// runs with prefetch 1 so one message is fully processed before the next
	// arrives.
	if c.config.PrefetchCount > 0 {
		if err := channel.Qos(c.config.PrefetchCount, 0, false); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	closeChan := make(chan *amqp.Error, 1)
	conn.NotifyClose(closeChan)

	c.mu.Lock()
	c.conn = conn
	c.channel = channel
	c.connected = true
	c.mu.Unlock()

	c.logger.Info("RabbitMQ client initialized",
		slog.String("queue", c.config.QueueName),
		slog.Int("prefetch_count", c.config.PrefetchCount),
	)

	return closeChan, nil
}

// Publish publishes a persistent message to the queue via the default
// exchange. Returns ErrNotConnected while the broker is unreachable.
func (c *Client) Publish(ctx context.Context, body []byte, contentType string) error {
	c.mu.RLock()
	channel, connected := c.channel, c.connected
	c.mu.RUnlock()

	if !connected {
		return ErrNotConnected
	}

	err := channel.PublishWithContext(
		ctx,
		"",                 // default exchange
		c.config.QueueName, // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  contentType,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)

	if err != nil {
		c.logger.Error("Failed to publish message to RabbitMQ",
			slog.Any("error", err),
		)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Debug("Message published to RabbitMQ",
		slog.String("queue", c.config.QueueName),
		slog.Int("body_size", len(body)),
	)

	return nil
}

// Consume starts consuming messages from the queue with manual
// acknowledgment. The returned channel closes when the connection is lost;
// callers re-invoke Consume after the supervisor reconnects.
func (c *Client) Consume(consumerTag string) (<-chan amqp.Delivery, error) {
	c.mu.RLock()
	channel, connected := c.channel, c.connected
	c.mu.RUnlock()

	if !connected {
		return nil, ErrNotConnected
	}

	deliveries, err := channel.Consume(
		c.config.QueueName, // queue
		consumerTag,        // consumer tag
		false,              // auto-ack
		false,              // exclusive
		false,              // no-local
		false,              // no-wait
		nil,                // args
	)
	if err != nil {
		return nil, fmt.Errorf("failed to consume messages: %w", err)
	}

	c.logger.Info("Started consuming messages from RabbitMQ",
		slog.String("queue", c.config.QueueName),
		slog.String("consumer_tag", consumerTag),
	)

	return deliveries, nil
}

// IsConnected returns the connection status
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected && c.conn != nil && !c.conn.IsClosed()
}

// markDisconnected flips the client into the disconnected state so Publish
// and Consume fail fast until the supervisor re-establishes the connection.
func (c *Client) markDisconnected() {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
}

// Close closes the RabbitMQ connection
func (c *Client) Close() error {
	c.logger.Info("Closing RabbitMQ connection")

	c.mu.Lock()
	defer c.mu.Unlock()

	c.connected = false

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("Failed to close RabbitMQ channel",
				slog.Any("error", err),
			)
		}
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("Failed to close RabbitMQ connection",
				slog.Any("error", err),
			)
			return err
		}
	}

	return nil
}
