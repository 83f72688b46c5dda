package checkout

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/settings"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=checkout
type Repository interface {
	GetProduct(ctx context.Context, id string) (*product.Product, error)
	GetCustomer(ctx context.Context, id string) (*customer.Customer, error)
	GetSettings(ctx context.Context) (*settings.Settings, error)
	BeginSale(ctx context.Context) (SaleTx, error)
}

// SaleTx stages every write a sale makes. Nothing is visible to other
// readers until Commit succeeds. Rollback after Commit is a no-op.
type SaleTx interface {
	GetProduct(ctx context.Context, id string) (*product.Product, error)
	// DecrementStock removes qty units, flooring at zero, and returns the new stock.
	DecrementStock(ctx context.Context, id string, qty int) (int, error)
	RecordPurchase(ctx context.Context, customerID string, amount float64, at time.Time) error
	AppendTransaction(ctx context.Context, tx *transaction.Transaction) error
	Commit() error
	Rollback() error
}
