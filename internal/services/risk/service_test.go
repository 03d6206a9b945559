package risk

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"vaultbank/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	// 14:00 on a weekday, well inside business hours.
	daytime = time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	// 03:00, outside business hours.
	nighttime = time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC)
)

func seasonedActor(now time.Time) Actor {
	return Actor{ID: 1, CreatedAt: now.AddDate(-1, 0, 0), Role: "user"}
}

func uintPtr(v uint) *uint { return &v }

func TestEvaluate_InvalidInput(t *testing.T) {
	actor := seasonedActor(daytime)

	tests := []struct {
		name  string
		tx    *models.Transaction
		actor Actor
	}{
		{"nil transaction", nil, actor},
		{"zero amount", &models.Transaction{Amount: 0}, actor},
		{"negative amount", &models.Transaction{Amount: -50}, actor},
		{"NaN amount", &models.Transaction{Amount: math.NaN()}, actor},
		{"positive infinity", &models.Transaction{Amount: math.Inf(1)}, actor},
		{"missing actor creation time", &models.Transaction{Amount: 100}, Actor{ID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.tx, tt.actor, Snapshot{}, daytime)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestEvaluate_ScoreBounds(t *testing.T) {
	// Everything suspicious at once sums past 100 and must clamp.
	tx := &models.Transaction{
		Type:            models.TransactionTypeTransfer,
		Amount:          60000,
		CustomRecipient: "offshore holdings ltd",
		DeviceInfo:      "device-abc",
		IPAddress:       "203.0.113.9",
	}
	actor := Actor{ID: 1, CreatedAt: nighttime, Role: "user"}

	score, err := Evaluate(tx, actor, Snapshot{}, nighttime)
	require.NoError(t, err)
	assert.Equal(t, MaxScore, score)
}

func TestEvaluate_QuietProfileScoresZero(t *testing.T) {
	// Modest amount, year-old account, familiar device, IP and recipient,
	// mid-afternoon: nothing should fire.
	tx := &models.Transaction{
		Type:        models.TransactionTypeTransfer,
		Amount:      100,
		RecipientID: uintPtr(7),
		DeviceInfo:  "device-abc",
		IPAddress:   "203.0.113.9",
	}
	hist := Snapshot{
		RecentCount:    1,
		RecipientCount: 1,
		DeviceCount:    12,
		IPCount:        12,
		AverageAmount:  100,
	}

	score, err := Evaluate(tx, seasonedActor(daytime), hist, daytime)
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestEvaluate_AmountTiers(t *testing.T) {
	hist := Snapshot{AverageAmount: 1_000_000, DeviceCount: 1, IPCount: 1}
	actor := seasonedActor(daytime)

	tests := []struct {
		name   string
		amount float64
		want   int
	}{
		{"below all tiers", 5000, 0},
		{"low tier", 5001, 5},
		{"medium tier", 10001, 15},
		{"high tier", 50001, 30},
	}

	var prev int
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &models.Transaction{Amount: tt.amount}
			score, err := Evaluate(tx, actor, hist, daytime)
			require.NoError(t, err)
			assert.Equal(t, tt.want, score)
			// Crossing a tier boundary never decreases the factor.
			assert.GreaterOrEqual(t, score, prev)
			prev = score
		})
	}
}

func TestEvaluate_FrequencyFactors(t *testing.T) {
	actor := seasonedActor(daytime)
	base := Snapshot{AverageAmount: 100, DeviceCount: 1, IPCount: 1}

	t.Run("24h frequency", func(t *testing.T) {
		tx := &models.Transaction{Amount: 100}

		hist := base
		hist.RecentCount = 6
		score, err := Evaluate(tx, actor, hist, daytime)
		require.NoError(t, err)
		assert.Equal(t, 10, score)

		hist.RecentCount = 11
		score, err = Evaluate(tx, actor, hist, daytime)
		require.NoError(t, err)
		assert.Equal(t, 25, score)
	})

	t.Run("recipient frequency", func(t *testing.T) {
		tx := &models.Transaction{Amount: 100, RecipientID: uintPtr(9)}

		hist := base
		hist.RecipientCount = 3
		score, err := Evaluate(tx, actor, hist, daytime)
		require.NoError(t, err)
		assert.Equal(t, 10, score)

		hist.RecipientCount = 5
		score, err = Evaluate(tx, actor, hist, daytime)
		require.NoError(t, err)
		assert.Equal(t, 20, score)
	})

	t.Run("recipient frequency needs a named recipient", func(t *testing.T) {
		tx := &models.Transaction{Amount: 100}
		hist := base
		hist.RecipientCount = 5
		score, err := Evaluate(tx, actor, hist, daytime)
		require.NoError(t, err)
		assert.Equal(t, 0, score)
	})
}

func TestEvaluate_PatternFactor(t *testing.T) {
	actor := seasonedActor(daytime)
	hist := Snapshot{AverageAmount: 100, DeviceCount: 1, IPCount: 1}

	tests := []struct {
		name   string
		amount float64
		want   int
	}{
		{"within usual range", 150, 0},
		{"double the average", 201, 10},
		{"triple the average", 301, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Evaluate(&models.Transaction{Amount: tt.amount}, actor, hist, daytime)
			require.NoError(t, err)
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestEvaluate_AccountAgeFactor(t *testing.T) {
	hist := Snapshot{AverageAmount: 100, DeviceCount: 1, IPCount: 1}
	tx := &models.Transaction{Amount: 100}

	tests := []struct {
		name    string
		created time.Time
		want    int
	}{
		{"brand new account", daytime.Add(-24 * time.Hour), 15},
		{"two week old account", daytime.AddDate(0, 0, -14), 5},
		{"established account", daytime.AddDate(-1, 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Evaluate(tx, Actor{ID: 1, CreatedAt: tt.created}, hist, daytime)
			require.NoError(t, err)
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestEvaluate_NoveltyFactors(t *testing.T) {
	actor := seasonedActor(daytime)
	base := Snapshot{AverageAmount: 100, RecipientCount: 1, DeviceCount: 1, IPCount: 1}

	t.Run("new recipient", func(t *testing.T) {
		hist := base
		hist.RecipientCount = 0
		tx := &models.Transaction{Amount: 100, RecipientID: uintPtr(3)}
		score, err := Evaluate(tx, actor, hist, daytime)
		require.NoError(t, err)
		assert.Equal(t, 10, score)
	})

	t.Run("new device", func(t *testing.T) {
		hist := base
		hist.DeviceCount = 0
		tx := &models.Transaction{Amount: 100, DeviceInfo: "device-new"}
		score, err := Evaluate(tx, actor, hist, daytime)
		require.NoError(t, err)
		assert.Equal(t, 10, score)
	})

	t.Run("new IP", func(t *testing.T) {
		hist := base
		hist.IPCount = 0
		tx := &models.Transaction{Amount: 100, IPAddress: "198.51.100.7"}
		score, err := Evaluate(tx, actor, hist, daytime)
		require.NoError(t, err)
		assert.Equal(t, 15, score)
	})

	t.Run("absent identifiers add nothing", func(t *testing.T) {
		hist := Snapshot{AverageAmount: 100}
		tx := &models.Transaction{Amount: 100}
		score, err := Evaluate(tx, actor, hist, daytime)
		require.NoError(t, err)
		assert.Equal(t, 0, score)
	})
}

func TestEvaluate_TimeOfDayFactor(t *testing.T) {
	actor := seasonedActor(daytime)
	hist := Snapshot{AverageAmount: 100}
	tx := &models.Transaction{Amount: 100}

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"early morning", time.Date(2025, 6, 10, 5, 59, 0, 0, time.UTC), 15},
		{"business hours start", time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC), 0},
		{"late evening boundary", time.Date(2025, 6, 10, 22, 30, 0, 0, time.UTC), 0},
		{"night", time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := Evaluate(tx, actor, hist, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	tx := &models.Transaction{
		Amount:      12000,
		RecipientID: uintPtr(4),
		DeviceInfo:  "device-abc",
		IPAddress:   "203.0.113.9",
	}
	actor := Actor{ID: 1, CreatedAt: daytime.AddDate(0, 0, -10)}
	hist := Snapshot{RecentCount: 7, RecipientCount: 2, AverageAmount: 900}

	first, err := Evaluate(tx, actor, hist, daytime)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Evaluate(tx, actor, hist, daytime)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEvaluate_ZeroHistoryScoresHigher(t *testing.T) {
	tx := &models.Transaction{
		Amount:      1000,
		RecipientID: uintPtr(4),
		DeviceInfo:  "device-abc",
		IPAddress:   "203.0.113.9",
	}

	fresh := Actor{ID: 1, CreatedAt: daytime}
	established := seasonedActor(daytime)
	seen := Snapshot{RecentCount: 1, RecipientCount: 2, DeviceCount: 5, IPCount: 5, AverageAmount: 1000}

	freshScore, err := Evaluate(tx, fresh, Snapshot{}, daytime)
	require.NoError(t, err)

	establishedScore, err := Evaluate(tx, established, seen, daytime)
	require.NoError(t, err)

	assert.Greater(t, freshScore, establishedScore)
}

type MockHistoryReader struct {
	mock.Mock
}

func (m *MockHistoryReader) Snapshot(ctx context.Context, tx *models.Transaction, actorID uint) (*Snapshot, error) {
	args := m.Called(ctx, tx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Snapshot), args.Error(1)
}

func TestService_Score(t *testing.T) {
	t.Run("scores with snapshot from history reader", func(t *testing.T) {
		history := new(MockHistoryReader)
		tx := &models.Transaction{Amount: 100}
		history.On("Snapshot", mock.Anything, tx, uint(1)).
			Return(&Snapshot{AverageAmount: 100}, nil)

		svc := NewService(history)
		score, err := svc.Score(context.Background(), tx, seasonedActor(daytime), daytime)
		require.NoError(t, err)
		assert.Equal(t, 0, score)

		history.AssertExpectations(t)
	})

	t.Run("history failure propagates", func(t *testing.T) {
		history := new(MockHistoryReader)
		tx := &models.Transaction{Amount: 100}
		history.On("Snapshot", mock.Anything, tx, uint(1)).
			Return(nil, errors.New("connection refused"))

		svc := NewService(history)
		_, err := svc.Score(context.Background(), tx, seasonedActor(daytime), daytime)
		assert.ErrorIs(t, err, ErrHistoryUnavailable)
	})
}
