package models

import "github.com/shopspring/decimal"

// Ticket references its show by name only; Show is not required to match an Event name.
type Ticket struct {
	ID      uint                `gorm:"primaryKey" json:"id"`
	Price   decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"price"`
	Show    string              `gorm:"not null" json:"show"`
	User    *string             `gorm:"column:user" json:"user"`
	EventID *uint               `json:"event_id,omitempty"`

	Details *TicketDetails `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

// TicketDetails is the one-to-one extension of a Ticket.
type TicketDetails struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	TicketID   uint    `gorm:"not null;uniqueIndex" json:"ticket_id"`
	Seat       *string `json:"seat"`
	TicketType *string `json:"ticket_type"`
}

func (TicketDetails) TableName() string {
	return "ticket_details"
}
