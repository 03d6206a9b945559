package repositories

import (
	"context"
	"errors"

	"vaultbank/internal/models"

	"gorm.io/gorm"
)

var ErrAlertNotFound = errors.New("fraud alert not found")

// AlertRepository persists fraud alerts raised by the risk engine.
type AlertRepository interface {
	Create(ctx context.Context, alert *models.FraudAlert) error
	FindByID(ctx context.Context, id uint) (*models.FraudAlert, error)
	FindOpenByUser(ctx context.Context, userID uint) ([]models.FraudAlert, error)
	List(ctx context.Context, status string, offset, limit int) ([]models.FraudAlert, int64, error)
	Update(ctx context.Context, alert *models.FraudAlert) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new instance of AlertRepository
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *models.FraudAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) FindByID(ctx context.Context, id uint) (*models.FraudAlert, error) {
	var alert models.FraudAlert
	if err := r.db.WithContext(ctx).First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) FindOpenByUser(ctx context.Context, userID uint) ([]models.FraudAlert, error) {
	var alerts []models.FraudAlert
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.AlertStatusNew).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

func (r *alertRepository) List(ctx context.Context, status string, offset, limit int) ([]models.FraudAlert, int64, error) {
	var alerts []models.FraudAlert
	var total int64

	query := r.db.WithContext(ctx).Model(&models.FraudAlert{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&alerts).Error
	return alerts, total, err
}

func (r *alertRepository) Update(ctx context.Context, alert *models.FraudAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

func (r *alertRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.FraudAlert{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}
