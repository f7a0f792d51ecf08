package consumer

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Eursukkul/ticketing-service/internal/service"
	"github.com/Eursukkul/ticketing-service/internal/validator"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventProvisioned is announced by the event catalog when an event opens for sale.
// It is held to the same bounds as a POST /events body.
type EventProvisioned struct {
	Name        string `json:"name" validate:"required"`
	TicketCount int    `json:"ticket_count" validate:"gte=0,lte=10000"`
}

type EventConsumer struct {
	svc      service.EventService
	validate *validator.RequestValidator
	timeout  time.Duration
}

func NewEventConsumer(svc service.EventService) *EventConsumer {
	return &EventConsumer{svc: svc, validate: validator.New(), timeout: 10 * time.Second}
}

// Start creates an event with its tickets for every provisioned message.
func (ec *EventConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			ec.handleMessage(msg)
		}
		log.Println("[EventConsumer] channel closed, stopping consumer")
	}()
}

func (ec *EventConsumer) handleMessage(msg amqp.Delivery) {
	var payload EventProvisioned
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		log.Printf("[EventConsumer] rejecting malformed message: %s", string(msg.Body))
		msg.Nack(false, false)
		return
	}
	if err := ec.validate.Validate(&payload); err != nil {
		log.Printf("[EventConsumer] rejecting invalid message %s: %v", string(msg.Body), err)
		msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ec.timeout)
	defer cancel()

	event, err := ec.svc.CreateEvent(ctx, payload.Name, payload.TicketCount)
	if err != nil {
		log.Printf("[EventConsumer] failed to create event %q: %v", payload.Name, err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[EventConsumer] created event %d: %s with %d tickets", event.ID, event.Name, len(event.Tickets))
	msg.Ack(false)
}
