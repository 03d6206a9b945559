// Package risk scores proposed transactions for fraud likelihood.
//
// The evaluator is a pure function over the proposed transaction, the acting
// user and a snapshot of their transaction history: given the same inputs it
// always produces the same score. All history facts are supplied by the
// HistoryReader collaborator before evaluation, so the evaluator itself never
// touches storage.
package risk

import (
	"context"
	"fmt"
	"math"
	"time"

	"vaultbank/internal/models"
)

// Actor is the authenticated user submitting the transaction.
type Actor struct {
	ID        uint
	CreatedAt time.Time
	Role      string
}

// Service routes every caller through the single canonical scoring recipe.
type Service interface {
	Score(ctx context.Context, tx *models.Transaction, actor Actor, now time.Time) (int, error)
}

type service struct {
	history HistoryReader
}

// NewService creates a new risk scoring service
func NewService(history HistoryReader) Service {
	if history == nil {
		panic("history reader is required")
	}
	return &service{history: history}
}

func (s *service) Score(ctx context.Context, tx *models.Transaction, actor Actor, now time.Time) (int, error) {
	snapshot, err := s.history.Snapshot(ctx, tx, actor.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrHistoryUnavailable, err)
	}
	return Evaluate(tx, actor, *snapshot, now)
}

// Evaluate computes the risk score in [0, MaxScore] for a proposed,
// not-yet-persisted transaction. now is the evaluation wall-clock time,
// passed in by the caller so scores stay reproducible.
func Evaluate(tx *models.Transaction, actor Actor, hist Snapshot, now time.Time) (int, error) {
	if tx == nil {
		return 0, fmt.Errorf("%w: nil transaction", ErrInvalidInput)
	}
	if tx.Amount <= 0 || math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return 0, fmt.Errorf("%w: amount must be positive and finite", ErrInvalidInput)
	}
	if actor.CreatedAt.IsZero() {
		return 0, fmt.Errorf("%w: actor creation time missing", ErrInvalidInput)
	}

	var f Factors

	// Higher amounts carry higher risk.
	switch {
	case tx.Amount > amountTierHigh:
		f.Amount = 30
	case tx.Amount > amountTierMedium:
		f.Amount = 15
	case tx.Amount > amountTierLow:
		f.Amount = 5
	}

	// Many transactions in a short time.
	switch {
	case hist.RecentCount > 10:
		f.Frequency = 25
	case hist.RecentCount > 5:
		f.Frequency = 10
	}

	if tx.RecipientID != nil {
		// Repeated sends to the same recipient.
		switch {
		case hist.RecipientCount >= 5:
			f.RecipientFrequency = 20
		case hist.RecipientCount >= 3:
			f.RecipientFrequency = 10
		}
		// First-ever send to this recipient.
		if hist.RecipientCount == 0 {
			f.RecipientNovelty = 10
		}
	}

	// Deviation from the actor's historical average. A zero-history actor
	// has average 0, so any positive amount registers as a deviation.
	switch {
	case tx.Amount > hist.AverageAmount*3:
		f.Pattern = 20
	case tx.Amount > hist.AverageAmount*2:
		f.Pattern = 10
	}

	// New accounts are higher risk.
	age := now.Sub(actor.CreatedAt)
	switch {
	case age < 7*24*time.Hour:
		f.AccountAge = 15
	case age < 30*24*time.Hour:
		f.AccountAge = 5
	}

	if tx.DeviceInfo != "" && hist.DeviceCount == 0 {
		f.DeviceNovelty = 10
	}
	if tx.IPAddress != "" && hist.IPCount == 0 {
		f.IPNovelty = 15
	}

	// Outside business hours.
	if hour := now.Hour(); hour < 6 || hour > 22 {
		f.TimeOfDay = 15
	}

	// Free-text payees bypass the recipient catalogue.
	if tx.CustomRecipient != "" {
		f.CustomRecipient = 20
	}

	return f.Total(), nil
}
