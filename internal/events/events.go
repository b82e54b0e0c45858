// Package events publishes record changes to a RabbitMQ topic exchange.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/mmynk/messledger/internal/ledger"
)

// Message is the JSON body of a change event.
type Message struct {
	Action    string    `json:"action"`
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage converts a ledger change.
func NewMessage(c ledger.Change) Message {
	return Message{
		Action:    string(c.Action),
		Kind:      string(c.Kind),
		ID:        c.ID,
		Timestamp: c.At,
	}
}

// RoutingKey is "records.<kind>.<action>", e.g. records.bill.created.
func (m Message) RoutingKey() string {
	return fmt.Sprintf("records.%s.%s", m.Kind, m.Action)
}

// MessageFromJSON decodes a change event body.
func MessageFromJSON(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// channel is the subset of *amqp091.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends change events. It implements ledger.Observer.
type Publisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
}

var _ ledger.Observer = (*Publisher)(nil)

// Dial connects to url and declares a durable topic exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends one message.
func (p *Publisher) Publish(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,       // exchange
		msg.RoutingKey(), // routing key
		false,            // mandatory
		false,            // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// RecordChanged publishes c. Failures are logged; the change is already committed.
func (p *Publisher) RecordChanged(ctx context.Context, c ledger.Change) {
	msg := NewMessage(c)
	if err := p.Publish(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"routing_key", msg.RoutingKey(),
			"id", msg.ID,
			"error", err,
		)
		return
	}
	slog.DebugContext(ctx, "Published change event",
		"exchange", p.exchange,
		"routing_key", msg.RoutingKey(),
		"id", msg.ID,
	)
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
