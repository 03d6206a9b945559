// Package transaction creates and lists transactions. Every proposed
// transaction is scored by the risk engine before it is persisted; scores at
// or above PendingReviewThreshold hold the transaction for review and raise a
// fraud alert.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vaultbank/internal/models"
	"vaultbank/internal/repositories"
	"vaultbank/internal/services/alert"
	"vaultbank/internal/services/risk"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, userID uint, req *CreateRequest) (*models.Transaction, error)
	Get(ctx context.Context, userID, id uint) (*models.Transaction, error)
	ListForUser(ctx context.Context, userID uint, offset, limit int) ([]models.Transaction, int64, error)
	List(ctx context.Context, filter repositories.TransactionFilter, offset, limit int) ([]models.Transaction, int64, error)
}

type service struct {
	transactions repositories.TransactionRepository
	users        repositories.UserRepository
	risk         risk.Service
	alerts       alert.Service
	validate     *validator.Validate
	now          func() time.Time
}

// NewService creates a new transaction service
func NewService(
	transactions repositories.TransactionRepository,
	users repositories.UserRepository,
	riskService risk.Service,
	alerts alert.Service,
) Service {
	if transactions == nil {
		panic("transaction repository is required")
	}
	if users == nil {
		panic("user repository is required")
	}
	if riskService == nil {
		panic("risk service is required")
	}
	if alerts == nil {
		panic("alert service is required")
	}
	return &service{
		transactions: transactions,
		users:        users,
		risk:         riskService,
		alerts:       alerts,
		validate:     validator.New(),
		now:          time.Now,
	}
}

// Create validates the request, scores it, persists it with the matching
// balance movement and raises a fraud alert when the score crosses the review
// threshold. A failed alert write never fails the transaction itself.
func (s *service) Create(ctx context.Context, userID uint, req *CreateRequest) (*models.Transaction, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.RecipientID != nil && req.CustomRecipient != "" {
		return nil, ErrAmbiguousRecipient
	}
	if req.Type == models.TransactionTypeTransfer {
		if req.RecipientID == nil && req.CustomRecipient == "" {
			return nil, ErrRecipientRequired
		}
		if req.RecipientID != nil && *req.RecipientID == userID {
			return nil, ErrSelfTransfer
		}
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	txn := &models.Transaction{
		Reference:       uuid.New().String(),
		UserID:          userID,
		Type:            req.Type,
		Amount:          req.Amount,
		RecipientID:     req.RecipientID,
		CustomRecipient: req.CustomRecipient,
		Description:     req.Description,
		DeviceInfo:      req.DeviceInfo,
		IPAddress:       req.IPAddress,
		Location:        req.Location,
		Metadata:        models.JSON(req.Metadata),
	}

	actor := risk.Actor{ID: user.ID, CreatedAt: user.CreatedAt, Role: user.Role}
	score, err := s.risk.Score(ctx, txn, actor, s.now())
	if err != nil {
		return nil, fmt.Errorf("risk scoring failed: %w", err)
	}

	txn.RiskScore = score
	if score >= PendingReviewThreshold {
		txn.Status = models.TransactionStatusPending
	} else {
		txn.Status = models.TransactionStatusCompleted
	}

	if err := s.transactions.CreateWithBalances(ctx, txn); err != nil {
		return nil, err
	}

	if score >= PendingReviewThreshold {
		description := fmt.Sprintf("High risk transaction detected (Type: %s, Score: %d)", txn.Type, score)
		if _, err := s.alerts.Create(ctx, userID, txn.ID, description, score); err != nil {
			log.Printf("Failed to create fraud alert for transaction %d: %v", txn.ID, err)
		}
	}

	return txn, nil
}

// Get returns a transaction the user is involved in, either as sender or
// recipient.
func (s *service) Get(ctx context.Context, userID, id uint) (*models.Transaction, error) {
	txn, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	if txn.UserID != userID && (txn.RecipientID == nil || *txn.RecipientID != userID) {
		return nil, ErrNotInvolved
	}
	return txn, nil
}

func (s *service) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]models.Transaction, int64, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return s.transactions.ListForUser(ctx, userID, offset, limit)
}

func (s *service) List(ctx context.Context, filter repositories.TransactionFilter, offset, limit int) ([]models.Transaction, int64, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return s.transactions.List(ctx, filter, offset, limit)
}
