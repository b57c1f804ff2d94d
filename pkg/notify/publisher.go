// Package notify publishes ledger changes to an AMQP exchange.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hearth-ledger/backend/pkg/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// RoutingKey is used for all ledger change messages.
const RoutingKey = "ledger.changed"

const publishTimeout = 5 * time.Second

// Channel is the part of an AMQP channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	conn     *amqp.Connection
	channel  Channel
	exchange string
}

// Dial connects to the broker and declares the exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p := NewPublisher(ch, exchange)
	p.conn = conn
	return p, nil
}

// NewPublisher creates a publisher on an already opened channel.
func NewPublisher(ch Channel, exchange string) *Publisher {
	return &Publisher{channel: ch, exchange: exchange}
}

// Publish sends the message to the exchange.
func (p *Publisher) Publish(ctx context.Context, msg LedgerChanged) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, p.exchange, RoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    msg.Timestamp,
		MessageId:    uuid.NewString(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Debug().Str("household", msg.HouseholdID.String()).Str("exchange", p.exchange).Msg("published ledger change")
	return nil
}

// Listener publishes a message for every change. It has the signature of
// store.Listener so it can be registered with Ledger.OnChange.
func (p *Publisher) Listener(householdID uuid.UUID, snapshot []models.Transaction) {
	err := p.Publish(context.Background(), NewLedgerChanged(householdID, len(snapshot)))
	if err != nil {
		log.Error().Err(err).Str("household", householdID.String()).Msg("failed to publish ledger change")
	}
}

func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}

	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
