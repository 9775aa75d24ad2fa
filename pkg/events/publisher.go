// Package events publishes reservation lifecycle events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ReservationPaid is published after a reservation transitions to paid.
type ReservationPaid struct {
	ReservationID string `json:"reservation_id"`
	Activity      string `json:"activity"`
	Date          string `json:"date"`
	TimeSlot      string `json:"time_slot"`
	PartySize     int    `json:"party_size"`
	AmountCents   int64  `json:"amount_cents"`
	PaidAt        string `json:"paid_at"`
}

// Publisher keeps one connection and channel. amqp channels are not safe
// for concurrent use, so publishing is serialized.
type Publisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *zap.Logger
}

func NewPublisher(url, queue string, log *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return &Publisher{
		conn:  conn,
		ch:    ch,
		queue: queue,
		log:   log.With(zap.String("component", "events")),
	}, nil
}

func (p *Publisher) PublishReservationPaid(ctx context.Context, event ReservationPaid) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ReservationID,
		Timestamp:    time.Now().UTC(),
		Type:         "reservation.paid",
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish reservation.paid for %s: %w", event.ReservationID, err)
	}

	p.log.Debug("Event published",
		zap.String("queue", p.queue),
		zap.String("reservation_id", event.ReservationID),
	)
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
