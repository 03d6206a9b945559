package risk

import (
	"context"
	"time"

	"vaultbank/internal/models"
	"vaultbank/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// HistoryWindow is the trailing window for the frequency factor.
const HistoryWindow = 24 * time.Hour

// Snapshot bundles the history facts the evaluator needs. It reflects only
// transactions committed before the one being scored.
type Snapshot struct {
	RecentCount    int64   // actor's transactions in the trailing 24 hours
	RecipientCount int64   // prior transactions to the named recipient
	DeviceCount    int64   // prior transactions from the same device fingerprint
	IPCount        int64   // prior transactions from the same IP address
	AverageAmount  float64 // historical average amount, 0 with no history
}

// HistoryReader answers the read-only questions the evaluator asks about an
// actor's past transactions.
type HistoryReader interface {
	Snapshot(ctx context.Context, tx *models.Transaction, actorID uint) (*Snapshot, error)
}

type historyReader struct {
	transactions repositories.TransactionRepository
}

// NewHistoryReader creates a HistoryReader backed by the transaction store.
func NewHistoryReader(transactions repositories.TransactionRepository) HistoryReader {
	if transactions == nil {
		panic("transaction repository is required")
	}
	return &historyReader{transactions: transactions}
}

// Snapshot runs the independent history queries concurrently and joins them
// before returning. Any storage failure fails the whole snapshot: scoring on
// partial history would systematically under-count risk.
func (h *historyReader) Snapshot(ctx context.Context, tx *models.Transaction, actorID uint) (*Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := h.transactions.CountRecent(ctx, actorID, HistoryWindow)
		snap.RecentCount = count
		return err
	})

	g.Go(func() error {
		avg, err := h.transactions.AverageAmount(ctx, actorID)
		snap.AverageAmount = avg
		return err
	})

	if tx.RecipientID != nil {
		recipientID := *tx.RecipientID
		g.Go(func() error {
			count, err := h.transactions.CountToRecipient(ctx, actorID, recipientID)
			snap.RecipientCount = count
			return err
		})
	}

	if tx.DeviceInfo != "" {
		g.Go(func() error {
			count, err := h.transactions.CountWithDevice(ctx, actorID, tx.DeviceInfo)
			snap.DeviceCount = count
			return err
		})
	}

	if tx.IPAddress != "" {
		g.Go(func() error {
			count, err := h.transactions.CountFromIP(ctx, actorID, tx.IPAddress)
			snap.IPCount = count
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
