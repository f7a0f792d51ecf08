package service

import (
	"context"

	"github.com/Eursukkul/ticketing-service/internal/models"
	"gorm.io/gorm"
)

// --- Mock Transactor ---

type mockTransactor struct {
	calls int
}

func (m *mockTransactor) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	m.calls++
	return fn(nil)
}

// --- Mock TicketRepository ---

type mockTicketRepo struct {
	createFn        func(ctx context.Context, ticket *models.Ticket) error
	findByIDFn      func(ctx context.Context, id uint, withDetails bool) (*models.Ticket, error)
	findForUpdateFn func(ctx context.Context, id uint) (*models.Ticket, error)
	findByShowFn    func(ctx context.Context, show string) ([]models.Ticket, error)
	updateColumnsFn func(ctx context.Context, id uint, cols map[string]any) error
	deleteFn        func(ctx context.Context, id uint) (bool, error)
	findDetailsFn   func(ctx context.Context, ticketID uint) (*models.TicketDetails, error)
	createDetailsFn func(ctx context.Context, details *models.TicketDetails) error
	updateDetailsFn func(ctx context.Context, ticketID uint, cols map[string]any) error
}

func (m *mockTicketRepo) Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error {
	return m.createFn(ctx, ticket)
}
func (m *mockTicketRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint, withDetails bool) (*models.Ticket, error) {
	return m.findByIDFn(ctx, id, withDetails)
}
func (m *mockTicketRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Ticket, error) {
	return m.findForUpdateFn(ctx, id)
}
func (m *mockTicketRepo) FindByShow(ctx context.Context, tx *gorm.DB, show string) ([]models.Ticket, error) {
	return m.findByShowFn(ctx, show)
}
func (m *mockTicketRepo) UpdateColumns(ctx context.Context, tx *gorm.DB, id uint, cols map[string]any) error {
	if m.updateColumnsFn == nil {
		return nil
	}
	return m.updateColumnsFn(ctx, id, cols)
}
func (m *mockTicketRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	return m.deleteFn(ctx, id)
}
func (m *mockTicketRepo) FindDetails(ctx context.Context, tx *gorm.DB, ticketID uint) (*models.TicketDetails, error) {
	return m.findDetailsFn(ctx, ticketID)
}
func (m *mockTicketRepo) CreateDetails(ctx context.Context, tx *gorm.DB, details *models.TicketDetails) error {
	return m.createDetailsFn(ctx, details)
}
func (m *mockTicketRepo) UpdateDetailsColumns(ctx context.Context, tx *gorm.DB, ticketID uint, cols map[string]any) error {
	return m.updateDetailsFn(ctx, ticketID, cols)
}

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn   func(ctx context.Context, event *models.Event) error
	findByIDFn func(ctx context.Context, id uint) (*models.Event, error)
}

func (m *mockEventRepo) Create(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}

// --- Mock Publisher ---

type published struct {
	routingKey string
	payload    any
}

type mockPublisher struct {
	messages []published
	err      error
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	m.messages = append(m.messages, published{routingKey: routingKey, payload: payload})
	return m.err
}
