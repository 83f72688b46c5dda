package transaction

import (
	"context"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
}

// Service exposes read access to the sales ledger. Transactions are only
// ever written by the checkout unit of work.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListFilter bounds are inclusive. Results are ordered newest first.
type ListFilter struct {
	CustomerID string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
}

// Matches reports whether t satisfies every set field of the filter except Limit.
func (f ListFilter) Matches(t *Transaction) bool {
	if f.CustomerID != "" && t.CustomerID != f.CustomerID {
		return false
	}

	if f.StartDate != nil && t.CreatedAt.Before(*f.StartDate) {
		return false
	}

	if f.EndDate != nil && t.CreatedAt.After(*f.EndDate) {
		return false
	}

	return true
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// History returns every sale made to the given customer, newest first.
func (s *Service) History(ctx context.Context, customerID string) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, ListFilter{CustomerID: customerID})
}
