// Package admin aggregates the figures shown on the admin console.
package admin

import (
	"context"

	"vaultbank/internal/models"
	"vaultbank/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// Summary is the admin console overview.
type Summary struct {
	TotalUsers        int64          `json:"total_users"`
	TotalTransactions int64          `json:"total_transactions"`
	NewAlerts         int64          `json:"new_alerts"`
	OpenTickets       int64          `json:"open_tickets"`
	RecentUsers       []*models.User `json:"recent_users"`
}

const recentUserCount = 5

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	users        repositories.UserRepository
	transactions repositories.TransactionRepository
	alerts       repositories.AlertRepository
	tickets      repositories.TicketRepository
}

// NewService creates a new admin service
func NewService(
	users repositories.UserRepository,
	transactions repositories.TransactionRepository,
	alerts repositories.AlertRepository,
	tickets repositories.TicketRepository,
) Service {
	if users == nil {
		panic("user repository is required")
	}
	if transactions == nil {
		panic("transaction repository is required")
	}
	if alerts == nil {
		panic("alert repository is required")
	}
	if tickets == nil {
		panic("ticket repository is required")
	}
	return &service{
		users:        users,
		transactions: transactions,
		alerts:       alerts,
		tickets:      tickets,
	}
}

// Summary gathers the console counters concurrently. Any failing query fails
// the whole summary; the console has no use for partial numbers.
func (s *service) Summary(ctx context.Context) (*Summary, error) {
	var summary Summary

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.users.Count()
		summary.TotalUsers = total
		return err
	})
	g.Go(func() error {
		total, err := s.transactions.Count(gctx)
		summary.TotalTransactions = total
		return err
	})
	g.Go(func() error {
		total, err := s.alerts.CountByStatus(gctx, models.AlertStatusNew)
		summary.NewAlerts = total
		return err
	})
	g.Go(func() error {
		total, err := s.tickets.CountByStatus(gctx, models.TicketStatusOpen)
		summary.OpenTickets = total
		return err
	})
	g.Go(func() error {
		users, err := s.users.RecentUsers(recentUserCount)
		summary.RecentUsers = users
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}
