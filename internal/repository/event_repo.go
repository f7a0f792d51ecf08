package repository

import (
	"context"

	"github.com/Eursukkul/ticketing-service/internal/models"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, tx *gorm.DB, event *models.Event) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
}

type eventRepository struct{}

func NewEventRepository() EventRepository {
	return &eventRepository{}
}

// Create inserts the event and any tickets (with their details) attached to it.
func (r *eventRepository) Create(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return tx.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	if err := tx.WithContext(ctx).
		Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("tickets.id ASC")
		}).
		First(&event, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &event, nil
}
