package rabbitmq

import (
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// CatalogExchange carries events announced by the upstream event catalog.
	CatalogExchange = "events"
	QueueName       = "ticketing-service.events"
	BindingKey      = "event.provisioned"
)

// Consumer reads event.provisioned messages from a durable queue bound to the
// catalog exchange.
type Consumer struct {
	*session
}

func NewConsumer(url string) (*Consumer, error) {
	s, err := openSession(url, CatalogExchange)
	if err != nil {
		return nil, err
	}

	if err := bindQueue(s.channel, QueueName, CatalogExchange, BindingKey); err != nil {
		s.Close()
		return nil, err
	}
	return &Consumer{session: s}, nil
}

func bindQueue(ch *amqp.Channel, queue, exchange, key string) error {
	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq queue declare %s: %w", queue, err)
	}
	if err := ch.QueueBind(q.Name, key, exchange, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue bind %s -> %s: %w", key, queue, err)
	}
	return nil
}

// Consume starts delivery with manual acknowledgement.
func (c *Consumer) Consume() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}

	log.Printf("[RabbitMQ] consuming from queue: %s", QueueName)
	return msgs, nil
}
