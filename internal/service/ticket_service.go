package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/ticketing-service/internal/dto"
	"github.com/Eursukkul/ticketing-service/internal/metrics"
	"github.com/Eursukkul/ticketing-service/internal/models"
	"github.com/Eursukkul/ticketing-service/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrTicketNotFound = errors.New("ticket not found")

type TicketService interface {
	CreateTicket(ctx context.Context, show string, user *string, price decimal.NullDecimal) (uint, error)
	GetTicket(ctx context.Context, id uint, opts ...ReadOption) (*models.Ticket, error)
	ListTicketsForShow(ctx context.Context, show string) ([]models.Ticket, error)
	UpdateTicket(ctx context.Context, id uint, p dto.TicketPatch) (bool, error)
	DeleteTicket(ctx context.Context, id uint) (bool, error)
}

type ReadOption func(*readOptions)

type readOptions struct {
	withDetails bool
}

// WithDetails loads the ticket's details in the same query.
func WithDetails() ReadOption {
	return func(o *readOptions) { o.withDetails = true }
}

func ApplyReadOptions(opts []ReadOption) (withDetails bool) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o.withDetails
}

type ticketService struct {
	tx        repository.Transactor
	repo      repository.TicketRepository
	publisher Publisher
}

func NewTicketService(tx repository.Transactor, repo repository.TicketRepository, publisher Publisher) TicketService {
	return &ticketService{tx: tx, repo: repo, publisher: publisher}
}

func (s *ticketService) CreateTicket(ctx context.Context, show string, user *string, price decimal.NullDecimal) (uint, error) {
	ticket := &models.Ticket{
		Show:    show,
		User:    user,
		Price:   price,
		Details: &models.TicketDetails{},
	}

	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, ticket)
	})
	if err != nil {
		metrics.ObserveOperation("create_ticket", metrics.OutcomeError)
		return 0, fmt.Errorf("create ticket: %w", err)
	}
	metrics.ObserveOperation("create_ticket", metrics.OutcomeOK)

	notify(ctx, s.publisher, RoutingTicketCreated, TicketMessage{TicketID: ticket.ID, Show: ticket.Show})
	return ticket.ID, nil
}

func (s *ticketService) GetTicket(ctx context.Context, id uint, opts ...ReadOption) (*models.Ticket, error) {
	withDetails := ApplyReadOptions(opts)

	var ticket *models.Ticket
	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		t, err := s.repo.FindByID(ctx, tx, id, withDetails)
		if err != nil {
			return err
		}
		ticket = t
		return nil
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		metrics.ObserveOperation("get_ticket", metrics.OutcomeNotFound)
		return nil, ErrTicketNotFound
	case err != nil:
		metrics.ObserveOperation("get_ticket", metrics.OutcomeError)
		return nil, fmt.Errorf("get ticket %d: %w", id, err)
	}
	metrics.ObserveOperation("get_ticket", metrics.OutcomeOK)
	return ticket, nil
}

func (s *ticketService) ListTicketsForShow(ctx context.Context, show string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		found, err := s.repo.FindByShow(ctx, tx, show)
		if err != nil {
			return err
		}
		tickets = found
		return nil
	})
	if err != nil {
		metrics.ObserveOperation("list_tickets_for_show", metrics.OutcomeError)
		return nil, fmt.Errorf("list tickets for show %q: %w", show, err)
	}
	metrics.ObserveOperation("list_tickets_for_show", metrics.OutcomeOK)

	if tickets == nil {
		tickets = []models.Ticket{}
	}
	return tickets, nil
}

// UpdateTicket applies only the fields present in p. It returns false when the
// ticket does not exist. A details change on a ticket without a details row
// creates that row.
func (s *ticketService) UpdateTicket(ctx context.Context, id uint, p dto.TicketPatch) (bool, error) {
	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.FindByIDForUpdate(ctx, tx, id); err != nil {
			return err
		}

		if err := s.repo.UpdateColumns(ctx, tx, id, p.Columns()); err != nil {
			return err
		}

		details, ok := p.DetailsChange()
		if !ok {
			return nil
		}
		return s.applyDetails(ctx, tx, id, details)
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		metrics.ObserveOperation("update_ticket", metrics.OutcomeNotFound)
		return false, nil
	case err != nil:
		metrics.ObserveOperation("update_ticket", metrics.OutcomeError)
		return false, fmt.Errorf("update ticket %d: %w", id, err)
	}
	metrics.ObserveOperation("update_ticket", metrics.OutcomeOK)

	notify(ctx, s.publisher, RoutingTicketUpdated, TicketMessage{TicketID: id})
	return true, nil
}

func (s *ticketService) applyDetails(ctx context.Context, tx *gorm.DB, ticketID uint, p dto.TicketDetailsPatch) error {
	_, err := s.repo.FindDetails(ctx, tx, ticketID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.repo.CreateDetails(ctx, tx, &models.TicketDetails{
			TicketID:   ticketID,
			Seat:       p.Seat.Ptr(),
			TicketType: p.TicketType.Ptr(),
		})
	}
	if err != nil {
		return err
	}
	return s.repo.UpdateDetailsColumns(ctx, tx, ticketID, p.Columns())
}

func (s *ticketService) DeleteTicket(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := s.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.repo.Delete(ctx, tx, id)
		deleted = ok
		return err
	})
	if err != nil {
		metrics.ObserveOperation("delete_ticket", metrics.OutcomeError)
		return false, fmt.Errorf("delete ticket %d: %w", id, err)
	}
	if !deleted {
		metrics.ObserveOperation("delete_ticket", metrics.OutcomeNotFound)
		return false, nil
	}
	metrics.ObserveOperation("delete_ticket", metrics.OutcomeOK)

	notify(ctx, s.publisher, RoutingTicketDeleted, TicketMessage{TicketID: id})
	return true, nil
}
