package dto

import (
	"github.com/Eursukkul/ticketing-service/internal/patch"
	"github.com/shopspring/decimal"
)

type CreateTicketRequest struct {
	Price decimal.NullDecimal `json:"price"`
	Show  string              `json:"show" validate:"required"`
	User  *string             `json:"user"`
}

type CreateEventRequest struct {
	Name        string `json:"name" validate:"required"`
	TicketCount int    `json:"ticket_count" validate:"gte=0,lte=10000"`
}

// TicketPatch is a partial update of a ticket. Absent fields are left
// untouched; null fields are cleared.
type TicketPatch struct {
	Price   patch.Field[decimal.Decimal]    `json:"price"`
	Details patch.Field[TicketDetailsPatch] `json:"details"`
}

type TicketDetailsPatch struct {
	Seat       patch.Field[string] `json:"seat"`
	TicketType patch.Field[string] `json:"ticket_type"`
}

// Columns maps the supplied ticket fields to column assignments.
func (p TicketPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Price.Present() {
		v, ok := p.Price.Get()
		cols["price"] = decimal.NullDecimal{Decimal: v, Valid: ok}
	}
	return cols
}

// DetailsChange returns the nested details patch and whether there is one to
// apply. A null details object carries no column changes.
func (p TicketPatch) DetailsChange() (TicketDetailsPatch, bool) {
	return p.Details.Get()
}

func (p TicketDetailsPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Seat.Present() {
		cols["seat"] = p.Seat.Ptr()
	}
	if p.TicketType.Present() {
		cols["ticket_type"] = p.TicketType.Ptr()
	}
	return cols
}
