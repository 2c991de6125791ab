// Package rabbitmq implements the event transport over an AMQP fanout
// exchange. Delivery is at-least-once; consumers deduplicate on the
// envelope ID.
package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/omer-demir/CeviriDukkaniTS/internal/config"
)

// Connect dials the broker and declares the shared fanout exchange.
func Connect(cfg config.RabbitConfig) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("dial rabbit: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(cfg.ExchangeName, "fanout", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.ExchangeName, err)
	}

	return conn, nil
}
