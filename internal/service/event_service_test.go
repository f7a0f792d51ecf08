package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Eursukkul/ticketing-service/internal/models"
	"github.com/Eursukkul/ticketing-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEvent_WithoutTickets(t *testing.T) {
	var created *models.Event
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			event.ID = 1
			created = event
			return nil
		},
	}

	svc := NewEventService(&mockTransactor{}, repo, nil)
	event, err := svc.CreateEvent(context.Background(), "Event 1", 0)

	require.NoError(t, err)
	assert.Equal(t, uint(1), event.ID)
	assert.Equal(t, "Event 1", created.Name)
	assert.Empty(t, created.Tickets)
}

func TestCreateEvent_WithTenTickets(t *testing.T) {
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			event.ID = 2
			for i := range event.Tickets {
				event.Tickets[i].ID = uint(i + 1)
			}
			return nil
		},
	}
	pub := &mockPublisher{}

	svc := NewEventService(&mockTransactor{}, repo, pub)
	event, err := svc.CreateEvent(context.Background(), "Event 2", 10)

	require.NoError(t, err)
	require.Len(t, event.Tickets, 10)
	for i, ticket := range event.Tickets {
		assert.Equal(t, "Event 2", ticket.Show)
		assert.Equal(t, uint(i+1), ticket.ID)
		assert.NotNil(t, ticket.Details)
	}

	require.Len(t, pub.messages, 1)
	assert.Equal(t, RoutingEventCreated, pub.messages[0].routingKey)
	assert.Equal(t, EventMessage{EventID: 2, Name: "Event 2", TicketCount: 10}, pub.messages[0].payload)
}

func TestCreateEvent_NegativeCountCreatesNoTickets(t *testing.T) {
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			assert.Empty(t, event.Tickets)
			return nil
		},
	}

	svc := NewEventService(&mockTransactor{}, repo, nil)
	_, err := svc.CreateEvent(context.Background(), "Event 3", -1)

	assert.NoError(t, err)
}

func TestCreateEvent_RepoError(t *testing.T) {
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			return errors.New("db connection failed")
		},
	}

	svc := NewEventService(&mockTransactor{}, repo, nil)
	event, err := svc.CreateEvent(context.Background(), "Event", 3)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db connection failed")
	assert.Nil(t, event)
}

func TestGetEvent_NotFound(t *testing.T) {
	repo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return nil, repository.ErrNotFound
		},
	}

	svc := NewEventService(&mockTransactor{}, repo, nil)
	event, err := svc.GetEvent(context.Background(), 999)

	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Nil(t, event)
}

func TestGetEvent_Success(t *testing.T) {
	repo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return &models.Event{ID: id, Name: "Event A", Tickets: []models.Ticket{{ID: 1, Show: "Event A"}}}, nil
		},
	}

	svc := NewEventService(&mockTransactor{}, repo, nil)
	event, err := svc.GetEvent(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Event A", event.Name)
	assert.Len(t, event.Tickets, 1)
}
