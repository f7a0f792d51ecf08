package dto

import (
	"time"

	"github.com/Eursukkul/ticketing-service/internal/models"
)

type TicketResponse struct {
	ID      uint                   `json:"id"`
	Price   *float64               `json:"price"`
	Show    string                 `json:"show"`
	User    *string                `json:"user"`
	Details *TicketDetailsResponse `json:"details,omitempty"`
}

type TicketDetailsResponse struct {
	Seat       *string `json:"seat"`
	TicketType *string `json:"ticket_type"`
}

type CreateTicketResponse struct {
	TicketID uint `json:"ticket_id"`
}

type EventResponse struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Tickets   []TicketResponse `json:"tickets"`
	CreatedAt time.Time        `json:"created_at"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

func ToTicketResponse(t *models.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:   t.ID,
		Show: t.Show,
		User: t.User,
	}
	if t.Price.Valid {
		f := t.Price.Decimal.InexactFloat64()
		resp.Price = &f
	}
	if t.Details != nil {
		resp.Details = &TicketDetailsResponse{
			Seat:       t.Details.Seat,
			TicketType: t.Details.TicketType,
		}
	}
	return resp
}

func ToTicketResponses(tickets []models.Ticket) []TicketResponse {
	resp := make([]TicketResponse, len(tickets))
	for i := range tickets {
		resp[i] = ToTicketResponse(&tickets[i])
	}
	return resp
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Name:      e.Name,
		Tickets:   ToTicketResponses(e.Tickets),
		CreatedAt: e.CreatedAt,
	}
}
