package ticket

import (
	"context"
	"testing"

	"vaultbank/internal/models"
	"vaultbank/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTicketRepo struct {
	mock.Mock
}

func (m *MockTicketRepo) Create(ctx context.Context, ticket *models.SupportTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepo) FindByID(ctx context.Context, id uint) (*models.SupportTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupportTicket), args.Error(1)
}

func (m *MockTicketRepo) FindDetailByID(ctx context.Context, id uint) (*models.TicketDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketDetail), args.Error(1)
}

func (m *MockTicketRepo) FindByUser(ctx context.Context, userID uint) ([]models.SupportTicket, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.SupportTicket), args.Error(1)
}

func (m *MockTicketRepo) List(ctx context.Context, status string, offset, limit int) ([]models.SupportTicket, int64, error) {
	args := m.Called(ctx, status, offset, limit)
	return args.Get(0).([]models.SupportTicket), args.Get(1).(int64), args.Error(2)
}

func (m *MockTicketRepo) Update(ctx context.Context, ticket *models.SupportTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func stringPtr(s string) *string { return &s }
func uintPtr(v uint) *uint       { return &v }

func TestService_Open(t *testing.T) {
	t.Run("opens with status open", func(t *testing.T) {
		repo := new(MockTicketRepo)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(tk *models.SupportTicket) bool {
			return tk.UserID == 1 && tk.Status == models.TicketStatusOpen &&
				tk.Subject == "Card declined" && tk.Message == "My card was declined at checkout."
		})).Return(nil)

		svc := NewService(repo)
		ticket, err := svc.Open(context.Background(), 1, "  Card declined ", "My card was declined at checkout.")
		require.NoError(t, err)
		assert.Equal(t, models.TicketStatusOpen, ticket.Status)

		repo.AssertExpectations(t)
	})

	t.Run("rejects blank subject", func(t *testing.T) {
		svc := NewService(new(MockTicketRepo))
		_, err := svc.Open(context.Background(), 1, "   ", "message")
		assert.ErrorIs(t, err, ErrEmptySubject)
	})

	t.Run("rejects blank message", func(t *testing.T) {
		svc := NewService(new(MockTicketRepo))
		_, err := svc.Open(context.Background(), 1, "subject", "")
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("resolving stamps the resolution time", func(t *testing.T) {
		repo := new(MockTicketRepo)
		repo.On("FindByID", mock.Anything, uint(3)).Return(&models.SupportTicket{
			UserID:  1,
			Subject: "Card declined",
			Status:  models.TicketStatusInProgress,
		}, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(tk *models.SupportTicket) bool {
			return tk.Status == models.TicketStatusResolved && tk.ResolvedAt != nil &&
				tk.ResolutionNotes == "reissued the card"
		})).Return(nil)

		svc := NewService(repo)
		ticket, err := svc.Update(context.Background(), 3, &UpdateRequest{
			Status:          stringPtr(models.TicketStatusResolved),
			ResolutionNotes: stringPtr("reissued the card"),
		})
		require.NoError(t, err)
		assert.NotNil(t, ticket.ResolvedAt)

		repo.AssertExpectations(t)
	})

	t.Run("assignment only", func(t *testing.T) {
		repo := new(MockTicketRepo)
		repo.On("FindByID", mock.Anything, uint(3)).Return(&models.SupportTicket{
			Status: models.TicketStatusOpen,
		}, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(tk *models.SupportTicket) bool {
			return tk.AssignedTo != nil && *tk.AssignedTo == 7 &&
				tk.Status == models.TicketStatusOpen && tk.ResolvedAt == nil
		})).Return(nil)

		svc := NewService(repo)
		_, err := svc.Update(context.Background(), 3, &UpdateRequest{AssignedTo: uintPtr(7)})
		require.NoError(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		repo := new(MockTicketRepo)
		repo.On("FindByID", mock.Anything, uint(3)).Return(&models.SupportTicket{
			Status: models.TicketStatusOpen,
		}, nil)

		svc := NewService(repo)
		_, err := svc.Update(context.Background(), 3, &UpdateRequest{Status: stringPtr("archived")})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockTicketRepo)
		repo.On("FindByID", mock.Anything, uint(99)).Return(nil, repositories.ErrTicketNotFound)

		svc := NewService(repo)
		_, err := svc.Update(context.Background(), 99, &UpdateRequest{})
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})
}
