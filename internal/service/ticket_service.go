// Package service contains the business logic sitting between HTTP
// handlers and the repositories.
package service

import (
	"context"
	"errors"
	"time"

	"pinboard/internal/models"
	"pinboard/internal/repository"

	"gorm.io/gorm"
)

type TicketService struct {
	ticketRepo repository.TicketRepository
	userRepo   repository.UserRepository
	now        func() time.Time
}

type CreateTicketInput struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	UserID      string                `json:"userId"`
	Category    string                `json:"category"`
	Priority    models.TicketPriority `json:"priority"`
}

func NewTicketService(ticketRepo repository.TicketRepository, userRepo repository.UserRepository) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

func (s *TicketService) resolveUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user", userID)
		}
		return nil, models.NewServerError(err)
	}
	return user, nil
}

// CreateTicket persists a new unresolved ticket for an existing user.
// The expected resolution date is always derived server-side: creation
// time plus three days, whatever the client sent. The user's photo is
// copied from the resolved account, not taken from the request.
func (s *TicketService) CreateTicket(ctx context.Context, in CreateTicketInput) (*models.Ticket, error) {
	if in.Title == "" {
		return nil, models.NewInvalidRequestError("title is required")
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return nil, models.NewInvalidValueError("priority must be one of LOW, MEDIUM, HIGH")
	}
	user, err := s.resolveUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ticket := &models.Ticket{
		Title:                  in.Title,
		Description:            in.Description,
		UserID:                 user.ID,
		CreatedDate:            now,
		ExpectedResolutionDate: now.AddDate(0, 0, 3),
		UserPhoto:              user.PhotoURL,
		Category:               in.Category,
		Priority:               in.Priority,
		Resolved:               false,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, models.NewServerError(err)
	}
	return ticket, nil
}

// ListForUser returns the user's tickets, newest first.
func (s *TicketService) ListForUser(ctx context.Context, userID string) ([]*models.Ticket, error) {
	if _, err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	tickets, err := s.ticketRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return tickets, nil
}

// PatchTicket applies a partial update on behalf of actorID. Only
// fields on the ticket schema pass through; unknown keys are dropped
// without complaint. A resolved ticket never goes back to unresolved.
func (s *TicketService) PatchTicket(ctx context.Context, actorID, ticketID string, patch map[string]interface{}) error {
	if ticketID == "" {
		return models.NewInvalidRequestError("ticket id is required")
	}
	if _, err := s.resolveUser(ctx, actorID); err != nil {
		return err
	}

	current, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("ticket", ticketID)
		}
		return models.NewServerError(err)
	}

	fields := make(map[string]interface{}, len(patch))
	for key, value := range patch {
		column, ok := models.TicketPatchFields[key]
		if !ok {
			continue
		}
		switch key {
		case "priority":
			str, ok := value.(string)
			if !ok || !models.TicketPriority(str).Valid() {
				return models.NewInvalidValueError("priority must be one of LOW, MEDIUM, HIGH")
			}
		case "resolved":
			b, ok := value.(bool)
			if !ok {
				return models.NewInvalidValueError("resolved must be a boolean")
			}
			// Resolution is monotonic: ignore attempts to reopen.
			if current.Resolved && !b {
				continue
			}
		case "createdDate", "expectedResolutionDate":
			str, ok := value.(string)
			if !ok {
				return models.NewInvalidValueError(key + " must be an RFC 3339 timestamp")
			}
			t, parseErr := time.Parse(time.RFC3339, str)
			if parseErr != nil {
				return models.NewInvalidValueError(key + " must be an RFC 3339 timestamp")
			}
			value = t
		}
		fields[column] = value
	}

	if err := s.ticketRepo.UpdateFields(ctx, ticketID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("ticket", ticketID)
		}
		return models.NewServerError(err)
	}
	return nil
}

// BulkResolve marks the actor's unresolved tickets among ids as
// resolved and returns how many rows actually changed. Ids that are
// missing, foreign, or already resolved simply do not count.
func (s *TicketService) BulkResolve(ctx context.Context, actorID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, models.NewInvalidRequestError("ticketIds must not be empty")
	}
	if _, err := s.resolveUser(ctx, actorID); err != nil {
		return 0, err
	}
	resolved, err := s.ticketRepo.ResolveAll(ctx, ids, actorID)
	if err != nil {
		return 0, models.NewServerError(err)
	}
	return resolved, nil
}

// DeleteAllTickets wipes the ticket table. Exposed only behind the
// maintenance routes flag.
func (s *TicketService) DeleteAllTickets(ctx context.Context) (int64, error) {
	deleted, err := s.ticketRepo.DeleteAll(ctx)
	if err != nil {
		return 0, models.NewServerError(err)
	}
	return deleted, nil
}
