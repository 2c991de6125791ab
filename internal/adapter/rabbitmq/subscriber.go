package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/omer-demir/CeviriDukkaniTS/internal/config"
	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// Handler processes one decoded event envelope. Returning an error leaves
// the message unacknowledged for redelivery, so handlers must be
// idempotent on the envelope ID.
type Handler func(ctx context.Context, msg domain.EventMessage) error

// Subscriber consumes the shared fanout exchange through an app-named
// durable queue and routes envelopes to handlers by event type. Envelope
// types without a registered handler are acknowledged and dropped.
type Subscriber struct {
	ch       *amqp.Channel
	queue    string
	handlers map[string]Handler
	log      *slog.Logger
}

// NewSubscriber opens a consuming channel and binds the app queue to the
// exchange.
func NewSubscriber(conn *amqp.Connection, cfg config.RabbitConfig, logger *slog.Logger) (*Subscriber, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open consume channel: %w", err)
	}

	queue := cfg.AppName + ".events"
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	if err := ch.QueueBind(queue, "", cfg.ExchangeName, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("bind queue %s: %w", queue, err)
	}

	return &Subscriber{
		ch:       ch,
		queue:    queue,
		handlers: make(map[string]Handler),
		log:      logger.With("component", "rabbit_subscriber"),
	}, nil
}

// On registers a handler for an event type. Must be called before Run.
func (s *Subscriber) On(eventType string, h Handler) *Subscriber {
	s.handlers[eventType] = h
	return s
}

// Run consumes deliveries until the context is canceled or the channel
// closes.
func (s *Subscriber) Run(ctx context.Context) error {
	deliveries, err := s.ch.Consume(s.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", s.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return s.ch.Close()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed: %w", domain.ErrUpstream)
			}
			s.handle(ctx, d)
		}
	}
}

func (s *Subscriber) handle(ctx context.Context, d amqp.Delivery) {
	var msg domain.EventMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		s.log.WarnContext(ctx, "dropping undecodable message",
			slog.String("message_id", d.MessageId),
			slog.String("error", err.Error()),
		)
		_ = d.Ack(false)
		return
	}

	h, ok := s.handlers[msg.Type]
	if !ok {
		_ = d.Ack(false)
		return
	}

	if err := h(ctx, msg); err != nil {
		s.log.ErrorContext(ctx, "event handler failed",
			slog.String("event_id", msg.ID.String()),
			slog.String("event_type", msg.Type),
			slog.String("error", err.Error()),
		)
		_ = d.Nack(false, true)
		return
	}

	_ = d.Ack(false)
}
