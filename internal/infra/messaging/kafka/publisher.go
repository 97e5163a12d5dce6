package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	domcheckout "example.com/storefront/internal/domain/checkout"
)

const EventOrderPlaced = "order.placed"

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer  messageWriter
	timeout time.Duration
}

func NewPublisher(topic string, brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}
	return newPublisher(w)
}

func newPublisher(w messageWriter) *Publisher {
	return &Publisher{writer: w, timeout: 5 * time.Second}
}

// PublishOrderPlaced keys messages by order id so every event of one order
// lands on the same partition.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, e domcheckout.OrderPlaced) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal order placed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(e.OrderID),
		Value: payload,
		Time:  e.PlacedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventOrderPlaced)},
			{Key: "payment_method", Value: []byte(e.PaymentMethod)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s: %w", EventOrderPlaced, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
