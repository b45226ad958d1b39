package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Publisher fans analytics events out to interested consumers (reporting,
// dashboards). Delivery is fire-and-forget from the webhook's point of view.
type Publisher interface {
	Publish(ctx context.Context, key string, evt Event) error
	Close() error
}

type Event struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id"`
	Type           string         `json:"type"`
	Payload        map[string]any `json:"payload,omitempty"`
	OccurredAt     time.Time      `json:"occurred_at"`
}

type rmqPublisher struct {
	conn     *amqp091.Connection
	exchange string
}

// NewRabbitPublisher connects to RabbitMQ and declares a durable topic
// exchange for analytics events.
func NewRabbitPublisher(url, exchange string) (Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := ch.ExchangeDeclare(
		exchange, "topic", true, false, false, false, nil,
	); err != nil {
		conn.Close()
		return nil, err
	}

	return &rmqPublisher{
		conn:     conn,
		exchange: exchange,
	}, nil
}

func (r *rmqPublisher) Publish(ctx context.Context, key string, evt Event) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now()
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(
		ctx, r.exchange, key, false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    evt.ID,
			Timestamp:    evt.OccurredAt,
			Body:         body,
		},
	)
	if err == nil {
		log.Debug().Str("key", key).Str("exchange", r.exchange).Msg("published analytics event")
	}
	return err
}

func (r *rmqPublisher) Close() error {
	return r.conn.Close()
}
