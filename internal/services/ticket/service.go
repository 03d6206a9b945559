// Package ticket handles the customer support workflow: users open tickets,
// support staff pick them up, update their status and record resolution notes.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vaultbank/internal/models"
	"vaultbank/internal/repositories"
)

// UpdateRequest carries the staff-side changes to a ticket. Nil fields are
// left untouched.
type UpdateRequest struct {
	Status          *string `json:"status,omitempty"`
	AssignedTo      *uint   `json:"assigned_to,omitempty"`
	ResolutionNotes *string `json:"resolution_notes,omitempty"`
}

type Service interface {
	Open(ctx context.Context, userID uint, subject, message string) (*models.SupportTicket, error)
	Get(ctx context.Context, id uint) (*models.SupportTicket, error)
	GetDetail(ctx context.Context, id uint) (*models.TicketDetail, error)
	ListForUser(ctx context.Context, userID uint) ([]models.SupportTicket, error)
	List(ctx context.Context, status string, offset, limit int) ([]models.SupportTicket, int64, error)
	Update(ctx context.Context, id uint, req *UpdateRequest) (*models.SupportTicket, error)
}

type service struct {
	tickets repositories.TicketRepository
}

// NewService creates a new ticket service
func NewService(tickets repositories.TicketRepository) Service {
	if tickets == nil {
		panic("ticket repository is required")
	}
	return &service{tickets: tickets}
}

func (s *service) Open(ctx context.Context, userID uint, subject, message string) (*models.SupportTicket, error) {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" {
		return nil, ErrEmptySubject
	}
	if message == "" {
		return nil, ErrEmptyMessage
	}

	ticket := &models.SupportTicket{
		UserID:  userID,
		Subject: subject,
		Message: message,
		Status:  models.TicketStatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create support ticket: %w", err)
	}
	return ticket, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.SupportTicket, error) {
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTicketNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (s *service) GetDetail(ctx context.Context, id uint) (*models.TicketDetail, error) {
	detail, err := s.tickets.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTicketNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return detail, nil
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]models.SupportTicket, error) {
	return s.tickets.FindByUser(ctx, userID)
}

func (s *service) List(ctx context.Context, status string, offset, limit int) ([]models.SupportTicket, int64, error) {
	return s.tickets.List(ctx, status, offset, limit)
}

// Update applies staff changes. Moving a ticket to resolved or closed stamps
// the resolution time.
func (s *service) Update(ctx context.Context, id uint, req *UpdateRequest) (*models.SupportTicket, error) {
	ticket, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		switch *req.Status {
		case models.TicketStatusOpen, models.TicketStatusInProgress,
			models.TicketStatusResolved, models.TicketStatusClosed:
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		ticket.Status = *req.Status
		if *req.Status == models.TicketStatusResolved || *req.Status == models.TicketStatusClosed {
			now := time.Now()
			ticket.ResolvedAt = &now
		}
	}
	if req.AssignedTo != nil {
		ticket.AssignedTo = req.AssignedTo
	}
	if req.ResolutionNotes != nil {
		ticket.ResolutionNotes = *req.ResolutionNotes
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to update support ticket: %w", err)
	}
	return ticket, nil
}
