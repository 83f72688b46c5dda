package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/pharmacare/internal/checkout"
	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

// saleTx holds the store lock from BeginSale until Commit or Rollback, so
// concurrent sales in one process run one after another.
type saleTx struct {
	ctx   context.Context
	store *Store

	products     *collection[*product.Product]
	customers    *collection[*customer.Customer]
	transactions *collection[*transaction.Transaction]

	done bool
}

// BeginSale stages the product, customer and transaction collections.
func (s *Store) BeginSale(ctx context.Context) (checkout.SaleTx, error) {
	s.mu.Lock()

	tx := &saleTx{ctx: ctx, store: s}

	var err error

	if tx.products, err = load(ctx, s, products); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if tx.customers, err = load(ctx, s, customers); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if tx.transactions, err = load(ctx, s, transactions); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	return tx, nil
}

func (tx *saleTx) GetProduct(_ context.Context, id string) (*product.Product, error) {
	p, ok := tx.products.get(id)
	if !ok {
		return nil, product.ErrNotFound
	}

	cp := *p

	return &cp, nil
}

func (tx *saleTx) DecrementStock(_ context.Context, id string, qty int) (int, error) {
	p, ok := tx.products.get(id)
	if !ok {
		return 0, product.ErrNotFound
	}

	p.Stock = max(0, p.Stock-qty)
	p.UpdatedAt = tx.store.now()

	return p.Stock, nil
}

func (tx *saleTx) RecordPurchase(_ context.Context, customerID string, amount float64, at time.Time) error {
	c, ok := tx.customers.get(customerID)
	if !ok {
		return customer.ErrNotFound
	}

	c.TotalPurchases += amount
	c.LastVisit = &at

	return nil
}

func (tx *saleTx) AppendTransaction(_ context.Context, t *transaction.Transaction) error {
	if t.ID == "" {
		t.ID = tx.store.newID()
	}

	if _, exists := tx.transactions.get(t.ID); exists {
		return fmt.Errorf("transaction %s already recorded", t.ID)
	}

	tx.transactions.put(t)

	return nil
}

// Commit writes the three staged collections in one backend call.
func (tx *saleTx) Commit() error {
	if tx.done {
		return nil
	}

	defer tx.finish()

	docs := make(map[string][]byte, 3)

	for key, c := range map[string]interface{ encode() ([]byte, error) }{
		KeyProducts:     tx.products,
		KeyCustomers:    tx.customers,
		KeyTransactions: tx.transactions,
	} {
		data, err := c.encode()
		if err != nil {
			return fmt.Errorf("encoding %s: %w", key, err)
		}

		docs[key] = data
	}

	if err := tx.store.backend.PutMulti(tx.ctx, docs); err != nil {
		return fmt.Errorf("writing sale: %w", err)
	}

	return nil
}

func (tx *saleTx) Rollback() error {
	if tx.done {
		return nil
	}

	tx.finish()

	return nil
}

func (tx *saleTx) finish() {
	tx.done = true
	tx.store.mu.Unlock()
}
