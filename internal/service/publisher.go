package service

import (
	"context"
	"log"
)

const (
	RoutingTicketCreated = "ticket.created"
	RoutingTicketUpdated = "ticket.updated"
	RoutingTicketDeleted = "ticket.deleted"
	RoutingEventCreated  = "event.created"
)

// Publisher delivers domain notifications after a transaction commits.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type TicketMessage struct {
	TicketID uint   `json:"ticket_id"`
	Show     string `json:"show,omitempty"`
}

type EventMessage struct {
	EventID     uint   `json:"event_id"`
	Name        string `json:"name"`
	TicketCount int    `json:"ticket_count"`
}

// notify publishes best-effort; a nil publisher disables notifications.
func notify(ctx context.Context, p Publisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		log.Printf("[service] publish %s failed: %v", routingKey, err)
	}
}
