package repository

import (
	"context"

	"github.com/Eursukkul/ticketing-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TicketRepository interface {
	Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint, withDetails bool) (*models.Ticket, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Ticket, error)
	FindByShow(ctx context.Context, tx *gorm.DB, show string) ([]models.Ticket, error)
	UpdateColumns(ctx context.Context, tx *gorm.DB, id uint, cols map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)

	FindDetails(ctx context.Context, tx *gorm.DB, ticketID uint) (*models.TicketDetails, error)
	CreateDetails(ctx context.Context, tx *gorm.DB, details *models.TicketDetails) error
	UpdateDetailsColumns(ctx context.Context, tx *gorm.DB, ticketID uint, cols map[string]any) error
}

type ticketRepository struct{}

func NewTicketRepository() TicketRepository {
	return &ticketRepository{}
}

// Create inserts the ticket together with its Details, when set.
func (r *ticketRepository) Create(ctx context.Context, tx *gorm.DB, ticket *models.Ticket) error {
	return tx.WithContext(ctx).Create(ticket).Error
}

// FindByID loads a ticket; withDetails joins ticket_details into the same query.
func (r *ticketRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint, withDetails bool) (*models.Ticket, error) {
	q := tx.WithContext(ctx)
	if withDetails {
		q = q.Joins("Details")
	}

	var ticket models.Ticket
	if err := q.First(&ticket, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ticket, nil
}

// FindByIDForUpdate acquires a row-level lock on the ticket within the given transaction.
func (r *ticketRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ticket, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByShow(ctx context.Context, tx *gorm.DB, show string) ([]models.Ticket, error) {
	tickets := []models.Ticket{}
	if err := tx.WithContext(ctx).
		Where("show = ?", show).
		Order("id ASC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) UpdateColumns(ctx context.Context, tx *gorm.DB, id uint, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", id).
		Updates(cols).Error
}

// Delete removes the ticket's details and then the ticket itself.
func (r *ticketRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	db := tx.WithContext(ctx)
	if err := db.Where("ticket_id = ?", id).Delete(&models.TicketDetails{}).Error; err != nil {
		return false, err
	}

	res := db.Delete(&models.Ticket{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ticketRepository) FindDetails(ctx context.Context, tx *gorm.DB, ticketID uint) (*models.TicketDetails, error) {
	var details models.TicketDetails
	if err := tx.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		First(&details).Error; err != nil {
		return nil, notFound(err)
	}
	return &details, nil
}

func (r *ticketRepository) CreateDetails(ctx context.Context, tx *gorm.DB, details *models.TicketDetails) error {
	if err := tx.WithContext(ctx).Create(details).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateDetails
		}
		return err
	}
	return nil
}

func (r *ticketRepository) UpdateDetailsColumns(ctx context.Context, tx *gorm.DB, ticketID uint, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Model(&models.TicketDetails{}).
		Where("ticket_id = ?", ticketID).
		Updates(cols).Error
}
