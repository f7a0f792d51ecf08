package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const TicketExchange = "tickets"

// Publisher sends JSON notifications to the tickets topic exchange.
type Publisher struct {
	*session
}

func NewPublisher(url string) (*Publisher, error) {
	s, err := openSession(url, TicketExchange)
	if err != nil {
		return nil, err
	}
	return &Publisher{session: s}, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	if err := p.channel.PublishWithContext(ctx,
		TicketExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Printf("[RabbitMQ] published to %s/%s: %s", TicketExchange, routingKey, string(body))
	return nil
}
