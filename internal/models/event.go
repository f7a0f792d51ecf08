package models

import "time"

type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Tickets []Ticket `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"tickets,omitempty"`
}
