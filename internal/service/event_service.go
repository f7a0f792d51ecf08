package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/ticketing-service/internal/metrics"
	"github.com/Eursukkul/ticketing-service/internal/models"
	"github.com/Eursukkul/ticketing-service/internal/repository"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type EventService interface {
	CreateEvent(ctx context.Context, name string, ticketCount int) (*models.Event, error)
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
}

type eventService struct {
	tx        repository.Transactor
	repo      repository.EventRepository
	publisher Publisher
}

func NewEventService(tx repository.Transactor, repo repository.EventRepository, publisher Publisher) EventService {
	return &eventService{tx: tx, repo: repo, publisher: publisher}
}

// CreateEvent inserts the event and, when ticketCount > 0, that many tickets
// for a show named after the event, all in one transaction.
func (s *eventService) CreateEvent(ctx context.Context, name string, ticketCount int) (*models.Event, error) {
	event := &models.Event{Name: name}
	if ticketCount > 0 {
		event.Tickets = make([]models.Ticket, ticketCount)
		for i := range event.Tickets {
			event.Tickets[i] = models.Ticket{
				Show:    name,
				Details: &models.TicketDetails{},
			}
		}
	}

	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, event)
	})
	if err != nil {
		metrics.ObserveOperation("create_event", metrics.OutcomeError)
		return nil, fmt.Errorf("create event: %w", err)
	}
	metrics.ObserveOperation("create_event", metrics.OutcomeOK)

	notify(ctx, s.publisher, RoutingEventCreated, EventMessage{
		EventID:     event.ID,
		Name:        event.Name,
		TicketCount: len(event.Tickets),
	})
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	var event *models.Event
	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		e, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		event = e
		return nil
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrEventNotFound
	case err != nil:
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return event, nil
}
