package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/omer-demir/CeviriDukkaniTS/internal/config"
	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// Publisher hands event envelopes to the broker. A successful Dispatch
// means "accepted by the transport", not "processed by a consumer".
type Publisher struct {
	ch       *amqp.Channel
	exchange string
	timeout  time.Duration
	log      *slog.Logger
}

// NewPublisher opens a dedicated channel on the connection for publishing.
func NewPublisher(conn *amqp.Connection, cfg config.RabbitConfig, logger *slog.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open publish channel: %w", err)
	}

	return &Publisher{
		ch:       ch,
		exchange: cfg.ExchangeName,
		timeout:  cfg.PublishTimeout,
		log:      logger.With("component", "rabbit_publisher"),
	}, nil
}

// Dispatch publishes each envelope as a persistent message. Publishing
// stops at the first failure; the error wraps domain.ErrUpstream so
// callers can classify it.
func (p *Publisher) Dispatch(ctx context.Context, events []domain.EventMessage) error {
	for _, evt := range events {
		body, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.ID, err)
		}

		pubCtx, cancel := context.WithTimeout(ctx, p.timeout)
		err = p.ch.PublishWithContext(pubCtx, p.exchange, evt.Type, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    evt.ID.String(),
			Type:         evt.Type,
			Timestamp:    evt.CreatedAt,
			Body:         body,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("publish event %s (%s): %w", evt.ID, evt.Type, errUpstream(err))
		}

		p.log.DebugContext(ctx, "event published",
			slog.String("event_id", evt.ID.String()),
			slog.String("event_type", evt.Type),
		)
	}

	return nil
}

// Close releases the publishing channel.
func (p *Publisher) Close() error {
	return p.ch.Close()
}

func errUpstream(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
}
