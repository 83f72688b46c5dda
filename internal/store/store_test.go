package store_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pharmacare/internal/backup"
	"github.com/MrJamesThe3rd/pharmacare/internal/checkout"
	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/prescription"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/settings"
	"github.com/MrJamesThe3rd/pharmacare/internal/storage"
	"github.com/MrJamesThe3rd/pharmacare/internal/storage/memory"
	"github.com/MrJamesThe3rd/pharmacare/internal/store"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// flakyBackend fails PutMulti on demand.
type flakyBackend struct {
	storage.Backend
	failMulti bool
}

func (b *flakyBackend) PutMulti(ctx context.Context, docs map[string][]byte) error {
	if b.failMulti {
		return errors.New("disk full")
	}

	return b.Backend.PutMulti(ctx, docs)
}

func newStore(t *testing.T, backend storage.Backend) *store.Store {
	t.Helper()

	seq := 0

	return store.New(backend,
		store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		store.WithClock(func() time.Time { return fixedNow }),
		store.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("gen-%d", seq)
		}),
	)
}

func TestStore_SeedsDefaultsOnFirstRead(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	s := newStore(t, backend)

	ps, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.Equal(t, "Ibuprofen 200mg", ps[0].Name)

	raw, err := backend.Get(ctx, store.KeyProducts)
	require.NoError(t, err, "seed must be persisted")

	again, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, ps, again)

	stored, err := backend.Get(ctx, store.KeyProducts)
	require.NoError(t, err)
	assert.Equal(t, raw, stored, "reads must not rewrite the document")

	st, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), *st)
}

func TestStore_UnreadableDocumentFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	require.NoError(t, backend.Put(ctx, store.KeyCustomers, []byte("{not json")))
	require.NoError(t, backend.Put(ctx, store.KeySettings, []byte("[]")))

	s := newStore(t, backend)

	cs, err := s.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, cs, 2)

	st, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", st.Currency)
}

func TestStore_EmptyCollectionIsNotReseeded(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	require.NoError(t, backend.Put(ctx, store.KeyProducts, []byte("[]")))

	ps, err := newStore(t, backend).ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, ps)
}

func TestStore_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, memory.New())

	p := &product.Product{Name: "Cetirizine 10mg", Category: product.CategoryOTC, Price: 4.5, Stock: 12}
	require.NoError(t, s.CreateProduct(ctx, p))
	assert.Equal(t, "gen-1", p.ID)
	assert.Equal(t, fixedNow, p.CreatedAt)

	got, err := s.GetProduct(ctx, "gen-1")
	require.NoError(t, err)
	assert.Equal(t, "Cetirizine 10mg", got.Name)

	got.Stock = 3
	require.NoError(t, s.UpdateProduct(ctx, got))

	got, err = s.GetProduct(ctx, "gen-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)

	require.NoError(t, s.DeleteProduct(ctx, "gen-1"))

	_, err = s.GetProduct(ctx, "gen-1")
	assert.ErrorIs(t, err, product.ErrNotFound)

	assert.ErrorIs(t, s.DeleteProduct(ctx, "gen-1"), product.ErrNotFound)
	assert.ErrorIs(t, s.UpdateProduct(ctx, &product.Product{ID: "nope"}), product.ErrNotFound)
}

func TestStore_CustomerNotFound(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, memory.New())

	_, err := s.GetCustomer(ctx, "nope")
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func completeSale(t *testing.T, s *store.Store, productID string, qty int, params checkout.SaleParams) (*transaction.Transaction, *checkout.Cart, error) {
	t.Helper()

	ctx := context.Background()
	svc := checkout.NewService(s, checkout.Config{}, checkout.WithClock(func() time.Time { return fixedNow }))

	cart, err := svc.BuildCart(ctx, []checkout.CartItem{{ProductID: productID, Quantity: qty}}, 0)
	require.NoError(t, err)

	txn, err := svc.CompleteSale(ctx, cart, params)

	return txn, cart, err
}

func TestStore_SaleCommitsEveryCollection(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, memory.New())

	before, err := s.GetCustomer(ctx, "1")
	require.NoError(t, err)

	txn, cart, err := completeSale(t, s, "3", 2, checkout.SaleParams{CustomerID: "1", PaymentMethod: transaction.PaymentCard})
	require.NoError(t, err)
	assert.Zero(t, cart.Len())

	p, err := s.GetProduct(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, 73, p.Stock)

	c, err := s.GetCustomer(ctx, "1")
	require.NoError(t, err)
	assert.InDelta(t, before.TotalPurchases+txn.Total, c.TotalPurchases, 1e-9)
	require.NotNil(t, c.LastVisit)
	assert.True(t, fixedNow.Equal(*c.LastVisit))

	stored, err := s.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.InDelta(t, txn.Total, stored.Total, 1e-9)
	assert.Equal(t, "John Smith", stored.CustomerName)
}

func TestStore_FailedCommitLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{Backend: memory.New()}
	s := newStore(t, backend)

	// Force seeding so the before-snapshot is comparable.
	_, err := s.ListTransactions(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	_, err = s.ListCustomers(ctx)
	require.NoError(t, err)
	_, err = s.ListProducts(ctx)
	require.NoError(t, err)

	keys := []string{store.KeyProducts, store.KeyCustomers, store.KeyTransactions}
	before := make(map[string][]byte, len(keys))

	for _, k := range keys {
		before[k], err = backend.Get(ctx, k)
		require.NoError(t, err)
	}

	backend.failMulti = true

	_, cart, err := completeSale(t, s, "1", 5, checkout.SaleParams{CustomerID: "1", PaymentMethod: transaction.PaymentCash})
	require.Error(t, err)
	assert.Equal(t, 1, cart.Len())

	for _, k := range keys {
		after, err := backend.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, before[k], after, k)
	}

	// The lock must have been released.
	_, err = s.ListProducts(ctx)
	require.NoError(t, err)
}

func TestStore_SaleRejectsStockChangedAfterCart(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, memory.New())
	svc := checkout.NewService(s, checkout.Config{})

	cart, err := svc.BuildCart(ctx, []checkout.CartItem{{ProductID: "2", Quantity: 8}}, 0)
	require.NoError(t, err)

	p, err := s.GetProduct(ctx, "2")
	require.NoError(t, err)
	p.Stock = 1
	require.NoError(t, s.UpdateProduct(ctx, p))

	_, err = svc.CompleteSale(ctx, cart, checkout.SaleParams{PaymentMethod: transaction.PaymentCash})
	assert.ErrorIs(t, err, checkout.ErrInsufficientStock)

	p, err = s.GetProduct(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)
}

func TestStore_Restore(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, memory.New())

	st := settings.Defaults()
	st.TaxRate = 0.2

	err := s.Restore(ctx, &backup.Snapshot{
		Products:  []*product.Product{{ID: "p9", Name: "Imported", Category: product.CategoryOTC, Price: 1, Stock: 1}},
		Customers: []*customer.Customer{},
		Settings:  &st,
	})
	require.NoError(t, err)

	ps, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "p9", ps[0].ID)

	cs, err := s.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Empty(t, cs)

	rxs, err := s.ListPrescriptions(ctx)
	require.NoError(t, err)
	assert.Len(t, rxs, 2, "absent collection keeps its contents")

	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, got.TaxRate, 1e-9)
}

func TestStore_ClearReseedsDefaults(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	s := newStore(t, backend)

	require.NoError(t, s.DeleteProduct(ctx, "1"))

	st := settings.Defaults()
	st.PIN = "4321"
	require.NoError(t, s.SaveSettings(ctx, &st))

	require.NoError(t, s.Clear(ctx))

	for _, key := range []string{store.KeyProducts, store.KeySettings} {
		_, err := backend.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrNotFound, key)
	}

	ps, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, ps, 3)

	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), *got)
}

func TestStore_CreatePrescriptionNumbering(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, memory.New())

	first := &prescription.Prescription{CustomerID: "1", Status: prescription.StatusPending}
	require.NoError(t, s.CreatePrescription(ctx, first))
	assert.Equal(t, "RX001236", first.PrescriptionNumber)

	second := &prescription.Prescription{CustomerID: "1", Status: prescription.StatusPending}
	require.NoError(t, s.CreatePrescription(ctx, second))
	assert.Equal(t, "RX001237", second.PrescriptionNumber)

	dup := &prescription.Prescription{PrescriptionNumber: "RX001234", CustomerID: "2"}
	assert.ErrorIs(t, s.CreatePrescription(ctx, dup), prescription.ErrDuplicateNumber)

	rxs, err := s.ListPrescriptions(ctx)
	require.NoError(t, err)
	assert.Len(t, rxs, 4)
}
