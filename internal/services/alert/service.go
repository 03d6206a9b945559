// Package alert manages the fraud-alert review workflow: alerts are raised
// when a transaction scores above the review threshold and stay open until an
// admin resolves or dismisses them.
package alert

import (
	"context"
	"fmt"
	"time"

	"vaultbank/internal/models"
	"vaultbank/internal/repositories"
)

type Service interface {
	Create(ctx context.Context, userID, transactionID uint, description string, riskScore int) (*models.FraudAlert, error)
	Get(ctx context.Context, id uint) (*models.FraudAlert, error)
	ListForUser(ctx context.Context, userID uint) ([]models.FraudAlert, error)
	List(ctx context.Context, status string, offset, limit int) ([]models.FraudAlert, int64, error)
	Resolve(ctx context.Context, id uint, status, resolution string) (*models.FraudAlert, error)
}

type service struct {
	alerts       repositories.AlertRepository
	transactions repositories.TransactionRepository
}

// NewService creates a new alert service
func NewService(alerts repositories.AlertRepository, transactions repositories.TransactionRepository) Service {
	if alerts == nil {
		panic("alert repository is required")
	}
	if transactions == nil {
		panic("transaction repository is required")
	}
	return &service{alerts: alerts, transactions: transactions}
}

func (s *service) Create(ctx context.Context, userID, transactionID uint, description string, riskScore int) (*models.FraudAlert, error) {
	if userID == 0 || transactionID == 0 {
		return nil, ErrMissingReference
	}

	alert := &models.FraudAlert{
		UserID:        userID,
		TransactionID: transactionID,
		Description:   description,
		Status:        models.AlertStatusNew,
		RiskScore:     riskScore,
	}

	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to create fraud alert: %w", err)
	}
	return alert, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.FraudAlert, error) {
	return s.alerts.FindByID(ctx, id)
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]models.FraudAlert, error) {
	return s.alerts.FindOpenByUser(ctx, userID)
}

func (s *service) List(ctx context.Context, status string, offset, limit int) ([]models.FraudAlert, int64, error) {
	return s.alerts.List(ctx, status, offset, limit)
}

// Resolve moves an alert to reviewing, resolved or dismissed. Resolving also
// releases the held transaction by marking it completed.
func (s *service) Resolve(ctx context.Context, id uint, status, resolution string) (*models.FraudAlert, error) {
	switch status {
	case models.AlertStatusReviewing, models.AlertStatusResolved, models.AlertStatusDismissed:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	alert, err := s.alerts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Status == models.AlertStatusResolved {
		return nil, ErrAlreadyResolved
	}

	alert.Status = status
	alert.Resolution = resolution
	if status == models.AlertStatusResolved {
		now := time.Now()
		alert.ResolvedAt = &now
	}

	if err := s.alerts.Update(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to update fraud alert: %w", err)
	}

	if status == models.AlertStatusResolved {
		if err := s.transactions.UpdateStatus(ctx, alert.TransactionID, models.TransactionStatusCompleted); err != nil {
			return nil, fmt.Errorf("failed to release held transaction: %w", err)
		}
	}

	return alert, nil
}
