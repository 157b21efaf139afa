package repository

import (
	"context"

	"pinboard/internal/models"

	"gorm.io/gorm"
)

// TicketRepository defines the interface for ticket data operations
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	GetByUserID(ctx context.Context, userID string) ([]*models.Ticket, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	ResolveAll(ctx context.Context, ids []string, userID string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) GetByUserID(ctx context.Context, userID string) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_date DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// UpdateFields applies a column-keyed partial update to one ticket.
// Callers are responsible for projecting the field set beforehand.
func (r *ticketRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ResolveAll flips the requested tickets to resolved in a single
// statement. Tickets that are already resolved or belong to another
// user are skipped by the predicate, not reported as errors.
func (r *ticketRepository) ResolveAll(ctx context.Context, ids []string, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id IN ?", ids).
		Where("resolved = ?", false).
		Where("user_id = ?", userID).
		Update("resolved", true)
	return result.RowsAffected, result.Error
}

func (r *ticketRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.Ticket{})
	return result.RowsAffected, result.Error
}
