package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vaultbank/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
)

// TransactionFilter narrows admin transaction listings.
type TransactionFilter struct {
	UserID *uint
	Type   string
	Status string
}

// TransactionRepository defines transaction persistence and the read-only
// history queries the risk engine depends on. The history queries only see
// rows already committed, never the in-flight transaction being scored.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	CreateWithBalances(ctx context.Context, tx *models.Transaction) error
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	ListForUser(ctx context.Context, userID uint, offset, limit int) ([]models.Transaction, int64, error)
	List(ctx context.Context, filter TransactionFilter, offset, limit int) ([]models.Transaction, int64, error)
	Count(ctx context.Context) (int64, error)

	// History lookups for risk scoring
	CountRecent(ctx context.Context, userID uint, window time.Duration) (int64, error)
	CountToRecipient(ctx context.Context, userID, recipientID uint) (int64, error)
	CountWithDevice(ctx context.Context, userID uint, deviceInfo string) (int64, error)
	CountFromIP(ctx context.Context, userID uint, ipAddress string) (int64, error)
	AverageAmount(ctx context.Context, userID uint) (float64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new instance of TransactionRepository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// CreateWithBalances persists the transaction and applies the matching
// balance movement in one database transaction. Review holds delay release,
// not funds: a pending transaction still moves money immediately.
func (r *transactionRepository) CreateWithBalances(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch txn.Type {
		case models.TransactionTypeTransfer, models.TransactionTypeWithdrawal, models.TransactionTypePayment:
			var sender models.User
			if err := tx.First(&sender, txn.UserID).Error; err != nil {
				return fmt.Errorf("failed to fetch sender: %w", err)
			}
			if sender.Balance < txn.Amount {
				return fmt.Errorf("%w: available %.2f, requested %.2f",
					ErrInsufficientFunds, sender.Balance, txn.Amount)
			}
			if err := tx.Model(&sender).
				Update("balance", gorm.Expr("balance - ?", txn.Amount)).Error; err != nil {
				return fmt.Errorf("failed to debit sender: %w", err)
			}
		case models.TransactionTypeDeposit:
			if err := tx.Model(&models.User{}).Where("id = ?", txn.UserID).
				Update("balance", gorm.Expr("balance + ?", txn.Amount)).Error; err != nil {
				return fmt.Errorf("failed to credit account: %w", err)
			}
		}

		if txn.Type == models.TransactionTypeTransfer && txn.RecipientID != nil {
			if err := tx.Model(&models.User{}).Where("id = ?", *txn.RecipientID).
				Update("balance", gorm.Expr("balance + ?", txn.Amount)).Error; err != nil {
				return fmt.Errorf("failed to credit recipient: %w", err)
			}
		}

		return tx.Create(txn).Error
	})
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).First(&tx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ? OR recipient_id = ?", userID, userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&transactions).Error
	return transactions, total, err
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter, offset, limit int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&transactions).Error
	return transactions, total, err
}

func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).Count(&total).Error
	return total, err
}

func (r *transactionRepository) CountRecent(ctx context.Context, userID uint, window time.Duration) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ? AND created_at > ?", userID, time.Now().Add(-window)).
		Count(&count).Error
	return count, err
}

func (r *transactionRepository) CountToRecipient(ctx context.Context, userID, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ? AND recipient_id = ?", userID, recipientID).
		Count(&count).Error
	return count, err
}

func (r *transactionRepository) CountWithDevice(ctx context.Context, userID uint, deviceInfo string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ? AND device_info = ?", userID, deviceInfo).
		Count(&count).Error
	return count, err
}

func (r *transactionRepository) CountFromIP(ctx context.Context, userID uint, ipAddress string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ? AND ip_address = ?", userID, ipAddress).
		Count(&count).Error
	return count, err
}

func (r *transactionRepository) AverageAmount(ctx context.Context, userID uint) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("AVG(amount)").
		Where("user_id = ?", userID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		// No history yet
		return 0, nil
	}
	return *avg, nil
}
