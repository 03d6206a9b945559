package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"vaultbank/internal/models"
	"vaultbank/internal/repositories"
	"vaultbank/internal/services/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepo) CreateWithBalances(ctx context.Context, tx *models.Transaction) error {
	args := m.Called(ctx, tx)
	if args.Error(0) == nil {
		tx.ID = 42
	}
	return args.Error(0)
}

func (m *MockTransactionRepo) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTransactionRepo) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepo) List(ctx context.Context, filter repositories.TransactionFilter, offset, limit int) ([]models.Transaction, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	return args.Get(0).([]models.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepo) CountRecent(ctx context.Context, userID uint, window time.Duration) (int64, error) {
	args := m.Called(ctx, userID, window)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepo) CountToRecipient(ctx context.Context, userID, recipientID uint) (int64, error) {
	args := m.Called(ctx, userID, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepo) CountWithDevice(ctx context.Context, userID uint, deviceInfo string) (int64, error) {
	args := m.Called(ctx, userID, deviceInfo)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepo) CountFromIP(ctx context.Context, userID uint, ipAddress string) (int64, error) {
	args := m.Called(ctx, userID, ipAddress)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepo) AverageAmount(ctx context.Context, userID uint) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepo) List(offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepo) ListRecipients(excludeUserID uint) ([]models.Recipient, error) {
	args := m.Called(excludeUserID)
	return args.Get(0).([]models.Recipient), args.Error(1)
}

func (m *MockUserRepo) RecentUsers(limit int) ([]*models.User, error) {
	args := m.Called(limit)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepo) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type MockRiskService struct {
	mock.Mock
}

func (m *MockRiskService) Score(ctx context.Context, tx *models.Transaction, actor risk.Actor, now time.Time) (int, error) {
	args := m.Called(ctx, tx, actor, now)
	return args.Int(0), args.Error(1)
}

type MockAlertService struct {
	mock.Mock
}

func (m *MockAlertService) Create(ctx context.Context, userID, transactionID uint, description string, riskScore int) (*models.FraudAlert, error) {
	args := m.Called(ctx, userID, transactionID, description, riskScore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FraudAlert), args.Error(1)
}

func (m *MockAlertService) Get(ctx context.Context, id uint) (*models.FraudAlert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FraudAlert), args.Error(1)
}

func (m *MockAlertService) ListForUser(ctx context.Context, userID uint) ([]models.FraudAlert, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.FraudAlert), args.Error(1)
}

func (m *MockAlertService) List(ctx context.Context, status string, offset, limit int) ([]models.FraudAlert, int64, error) {
	args := m.Called(ctx, status, offset, limit)
	return args.Get(0).([]models.FraudAlert), args.Get(1).(int64), args.Error(2)
}

func (m *MockAlertService) Resolve(ctx context.Context, id uint, status, resolution string) (*models.FraudAlert, error) {
	args := m.Called(ctx, id, status, resolution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FraudAlert), args.Error(1)
}

type serviceMocks struct {
	transactions *MockTransactionRepo
	users        *MockUserRepo
	risk         *MockRiskService
	alerts       *MockAlertService
}

func newTestService(t *testing.T) (Service, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		transactions: new(MockTransactionRepo),
		users:        new(MockUserRepo),
		risk:         new(MockRiskService),
		alerts:       new(MockAlertService),
	}
	return NewService(m.transactions, m.users, m.risk, m.alerts), m
}

func testUser() *models.User {
	user := &models.User{
		Email:   "sender@example.com",
		Name:    "Sender",
		Role:    "user",
		Balance: 10000,
	}
	user.ID = 1
	user.CreatedAt = time.Now().Add(-90 * 24 * time.Hour)
	return user
}

func uintPtr(v uint) *uint { return &v }

func TestService_Create(t *testing.T) {
	t.Run("low score completes immediately", func(t *testing.T) {
		svc, m := newTestService(t)
		m.users.On("GetByID", uint(1)).Return(testUser(), nil)
		m.risk.On("Score", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(20, nil)
		m.transactions.On("CreateWithBalances", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Status == models.TransactionStatusCompleted && tx.RiskScore == 20 && tx.Reference != ""
		})).Return(nil)

		txn, err := svc.Create(context.Background(), 1, &CreateRequest{
			Type:        models.TransactionTypeTransfer,
			Amount:      100,
			RecipientID: uintPtr(2),
		})
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
		assert.Equal(t, 20, txn.RiskScore)

		m.alerts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.transactions.AssertExpectations(t)
	})

	t.Run("score at the threshold holds for review and raises an alert", func(t *testing.T) {
		svc, m := newTestService(t)
		m.users.On("GetByID", uint(1)).Return(testUser(), nil)
		m.risk.On("Score", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(PendingReviewThreshold, nil)
		m.transactions.On("CreateWithBalances", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Status == models.TransactionStatusPending
		})).Return(nil)
		m.alerts.On("Create", mock.Anything, uint(1), uint(42),
			"High risk transaction detected (Type: transfer, Score: 65)", PendingReviewThreshold).
			Return(&models.FraudAlert{}, nil)

		txn, err := svc.Create(context.Background(), 1, &CreateRequest{
			Type:        models.TransactionTypeTransfer,
			Amount:      60000,
			RecipientID: uintPtr(2),
		})
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusPending, txn.Status)

		m.alerts.AssertExpectations(t)
	})

	t.Run("alert failure does not fail the transaction", func(t *testing.T) {
		svc, m := newTestService(t)
		m.users.On("GetByID", uint(1)).Return(testUser(), nil)
		m.risk.On("Score", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(90, nil)
		m.transactions.On("CreateWithBalances", mock.Anything, mock.Anything).Return(nil)
		m.alerts.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("alert store down"))

		txn, err := svc.Create(context.Background(), 1, &CreateRequest{
			Type:   models.TransactionTypeWithdrawal,
			Amount: 60000,
		})
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusPending, txn.Status)
	})

	t.Run("risk scoring failure blocks the transaction", func(t *testing.T) {
		svc, m := newTestService(t)
		m.users.On("GetByID", uint(1)).Return(testUser(), nil)
		m.risk.On("Score", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(0, risk.ErrHistoryUnavailable)

		_, err := svc.Create(context.Background(), 1, &CreateRequest{
			Type:   models.TransactionTypeDeposit,
			Amount: 100,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, risk.ErrHistoryUnavailable)

		m.transactions.AssertNotCalled(t, "CreateWithBalances", mock.Anything, mock.Anything)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			req     *CreateRequest
			wantErr error
		}{
			{"nil request", nil, ErrInvalidRequest},
			{"zero amount", &CreateRequest{Type: models.TransactionTypeDeposit, Amount: 0}, ErrInvalidRequest},
			{"negative amount", &CreateRequest{Type: models.TransactionTypeDeposit, Amount: -5}, ErrInvalidRequest},
			{"unknown type", &CreateRequest{Type: "wire", Amount: 100}, ErrInvalidRequest},
			{"transfer without recipient", &CreateRequest{Type: models.TransactionTypeTransfer, Amount: 100}, ErrRecipientRequired},
			{"transfer to self", &CreateRequest{Type: models.TransactionTypeTransfer, Amount: 100, RecipientID: uintPtr(1)}, ErrSelfTransfer},
			{"both recipient kinds", &CreateRequest{Type: models.TransactionTypeTransfer, Amount: 100, RecipientID: uintPtr(2), CustomRecipient: "ACME Utilities"}, ErrAmbiguousRecipient},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, _ := newTestService(t)
				_, err := svc.Create(context.Background(), 1, tt.req)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})

	t.Run("insufficient funds surfaces from the repository", func(t *testing.T) {
		svc, m := newTestService(t)
		m.users.On("GetByID", uint(1)).Return(testUser(), nil)
		m.risk.On("Score", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(10, nil)
		m.transactions.On("CreateWithBalances", mock.Anything, mock.Anything).
			Return(repositories.ErrInsufficientFunds)

		_, err := svc.Create(context.Background(), 1, &CreateRequest{
			Type:   models.TransactionTypeWithdrawal,
			Amount: 999999,
		})
		assert.ErrorIs(t, err, repositories.ErrInsufficientFunds)
	})
}

func TestService_Get(t *testing.T) {
	t.Run("sender can read their transaction", func(t *testing.T) {
		svc, m := newTestService(t)
		m.transactions.On("FindByID", mock.Anything, uint(42)).Return(&models.Transaction{
			ID:     42,
			UserID: 1,
		}, nil)

		txn, err := svc.Get(context.Background(), 1, 42)
		require.NoError(t, err)
		assert.Equal(t, uint(42), txn.ID)
	})

	t.Run("recipient can read their transaction", func(t *testing.T) {
		svc, m := newTestService(t)
		m.transactions.On("FindByID", mock.Anything, uint(42)).Return(&models.Transaction{
			ID:          42,
			UserID:      1,
			RecipientID: uintPtr(7),
		}, nil)

		_, err := svc.Get(context.Background(), 7, 42)
		assert.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		svc, m := newTestService(t)
		m.transactions.On("FindByID", mock.Anything, uint(42)).Return(&models.Transaction{
			ID:     42,
			UserID: 1,
		}, nil)

		_, err := svc.Get(context.Background(), 9, 42)
		assert.ErrorIs(t, err, ErrNotInvolved)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newTestService(t)
		m.transactions.On("FindByID", mock.Anything, uint(99)).Return(nil, repositories.ErrTransactionNotFound)

		_, err := svc.Get(context.Background(), 1, 99)
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})
}

func TestService_ListForUser(t *testing.T) {
	t.Run("clamps the page limit", func(t *testing.T) {
		svc, m := newTestService(t)
		m.transactions.On("ListForUser", mock.Anything, uint(1), 0, MaxPageLimit).
			Return([]models.Transaction{}, int64(0), nil)

		_, _, err := svc.ListForUser(context.Background(), 1, 0, 500)
		require.NoError(t, err)
		m.transactions.AssertExpectations(t)
	})

	t.Run("defaults the page limit", func(t *testing.T) {
		svc, m := newTestService(t)
		m.transactions.On("ListForUser", mock.Anything, uint(1), 0, DefaultPageLimit).
			Return([]models.Transaction{}, int64(0), nil)

		_, _, err := svc.ListForUser(context.Background(), 1, 0, 0)
		require.NoError(t, err)
		m.transactions.AssertExpectations(t)
	})
}
