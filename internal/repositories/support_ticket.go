package repositories

import (
	"context"
	"errors"

	"vaultbank/internal/models"

	"gorm.io/gorm"
)

var ErrTicketNotFound = errors.New("support ticket not found")

// TicketRepository persists customer support tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.SupportTicket) error
	FindByID(ctx context.Context, id uint) (*models.SupportTicket, error)
	FindDetailByID(ctx context.Context, id uint) (*models.TicketDetail, error)
	FindByUser(ctx context.Context, userID uint) ([]models.SupportTicket, error)
	List(ctx context.Context, status string, offset, limit int) ([]models.SupportTicket, int64, error)
	Update(ctx context.Context, ticket *models.SupportTicket) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new instance of TicketRepository
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.SupportTicket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) FindByID(ctx context.Context, id uint) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	if err := r.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// FindDetailByID joins the reporter's and assignee's names for the admin view.
func (r *ticketRepository) FindDetailByID(ctx context.Context, id uint) (*models.TicketDetail, error) {
	var detail models.TicketDetail
	err := r.db.WithContext(ctx).Model(&models.SupportTicket{}).
		Select("support_tickets.*, u.name AS user_name, u.email AS user_email, s.name AS staff_name").
		Joins("LEFT JOIN users u ON support_tickets.user_id = u.id").
		Joins("LEFT JOIN users s ON support_tickets.assigned_to = s.id").
		Where("support_tickets.id = ?", id).
		Scan(&detail).Error
	if err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		return nil, ErrTicketNotFound
	}
	return &detail, nil
}

func (r *ticketRepository) FindByUser(ctx context.Context, userID uint) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) List(ctx context.Context, status string, offset, limit int) ([]models.SupportTicket, int64, error) {
	var tickets []models.SupportTicket
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SupportTicket{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tickets).Error
	return tickets, total, err
}

func (r *ticketRepository) Update(ctx context.Context, ticket *models.SupportTicket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *ticketRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.SupportTicket{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}
