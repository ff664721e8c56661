package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Invalidator drops cached archive pages.
type Invalidator interface {
	Invalidate(ctx context.Context) (int, error)
}

type Config struct {
	URL        string
	Exchange   string
	Queue      string
	RoutingKey string
	// ConsumerTag identifies this service on the broker.
	ConsumerTag string
}

// ListingChanged is published by the CMS when a listing is created, edited or
// removed.
type ListingChanged struct {
	ListingID int    `json:"listing_id"`
	Action    string `json:"action"`
}

// Consumer invalidates the page cache whenever the CMS reports a change.
type Consumer struct {
	cfg    Config
	inv    Invalidator
	logger *slog.Logger
}

func NewConsumer(cfg Config, inv Invalidator, logger *slog.Logger) *Consumer {
	if cfg.RoutingKey == "" {
		cfg.RoutingKey = "listings.#"
	}
	if cfg.ConsumerTag == "" {
		cfg.ConsumerTag = "listing-search-cache"
	}
	return &Consumer{cfg: cfg, inv: inv, logger: logger.With("component", "amqp_consumer")}
}

// Run consumes until ctx is cancelled or the broker closes the channel.
func (c *Consumer) Run(ctx context.Context) error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open a channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", c.cfg.Exchange, err)
	}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", c.cfg.Queue, err)
	}
	if err := ch.QueueBind(q.Name, c.cfg.RoutingKey, c.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", q.Name, err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := ch.Consume(q.Name, c.cfg.ConsumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	c.logger.Info("consuming listing change events", "queue", q.Name, "routing_key", c.cfg.RoutingKey)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed by broker")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var evt ListingChanged
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		c.logger.Warn("undecodable listing event, invalidating anyway", "error", err)
	}

	n, err := c.inv.Invalidate(ctx)
	if err != nil {
		c.logger.Error("cache invalidation failed", "error", err, "listing_id", evt.ListingID)
		if nackErr := d.Nack(false, false); nackErr != nil {
			c.logger.Error("failed to nack delivery", "error", nackErr)
		}
		return
	}

	c.logger.Debug("cache invalidated", "listing_id", evt.ListingID, "action", evt.Action, "pages", n)
	if err := d.Ack(false); err != nil {
		c.logger.Error("failed to ack delivery", "error", err)
	}
}
