package checkout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pharmacare/internal/checkout"
	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/settings"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func testSettings() *settings.Settings {
	s := settings.Defaults()
	return &s
}

func cartWith(t *testing.T, p *product.Product, qty int) *checkout.Cart {
	t.Helper()

	cart := checkout.NewCart()
	require.NoError(t, cart.Add(p))
	require.NoError(t, cart.SetQuantity(p.ID, qty))

	return cart
}

func TestService_CompleteSale(t *testing.T) {
	type testCase struct {
		name      string
		cfg       checkout.Config
		params    checkout.SaleParams
		setupMock func(repo *checkout.MockRepository, stx *checkout.MockSaleTx)
		wantErr   error
		wantField string
		check     func(t *testing.T, txn *transaction.Transaction)
	}

	productA := &product.Product{ID: "a", Name: "Paracetamol 500mg", Price: 10, Stock: 5}

	tests := []testCase{
		{
			name:   "WalkInSale",
			params: checkout.SaleParams{PaymentMethod: transaction.PaymentCash},
			setupMock: func(repo *checkout.MockRepository, stx *checkout.MockSaleTx) {
				repo.EXPECT().GetSettings(gomock.Any()).Return(testSettings(), nil)
				repo.EXPECT().BeginSale(gomock.Any()).Return(stx, nil)
				stx.EXPECT().GetProduct(gomock.Any(), "a").Return(productA, nil)
				stx.EXPECT().DecrementStock(gomock.Any(), "a", 2).Return(3, nil)
				stx.EXPECT().AppendTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, txn *transaction.Transaction) error {
						txn.ID = "t1"
						return nil
					})
				stx.EXPECT().Commit().Return(nil)
				stx.EXPECT().Rollback().Return(nil)
			},
			check: func(t *testing.T, txn *transaction.Transaction) {
				assert.Equal(t, "t1", txn.ID)
				assert.True(t, txn.IsWalkIn())
				assert.Equal(t, transaction.WalkInCustomerName, txn.CustomerName)
				assert.InDelta(t, 20, txn.Subtotal, 1e-9)
				assert.InDelta(t, 1.6, txn.Tax, 1e-9)
				assert.InDelta(t, 21.6, txn.Total, 1e-9)
				assert.InDelta(t, 0.08, txn.TaxRate, 1e-9)
				assert.Equal(t, fixedNow, txn.CreatedAt)
				require.Len(t, txn.Items, 1)
				assert.Equal(t, "Paracetamol 500mg", txn.Items[0].ProductName)
				assert.InDelta(t, 20, txn.Items[0].Total, 1e-9)
			},
		},
		{
			name:   "CustomerSaleRecordsPurchase",
			params: checkout.SaleParams{CustomerID: "c1", PaymentMethod: transaction.PaymentCard},
			setupMock: func(repo *checkout.MockRepository, stx *checkout.MockSaleTx) {
				repo.EXPECT().GetCustomer(gomock.Any(), "c1").Return(&customer.Customer{ID: "c1", Name: "John Smith"}, nil)
				repo.EXPECT().GetSettings(gomock.Any()).Return(testSettings(), nil)
				repo.EXPECT().BeginSale(gomock.Any()).Return(stx, nil)
				stx.EXPECT().GetProduct(gomock.Any(), "a").Return(productA, nil)
				stx.EXPECT().DecrementStock(gomock.Any(), "a", 2).Return(3, nil)
				stx.EXPECT().RecordPurchase(gomock.Any(), "c1", 21.6, fixedNow).Return(nil)
				stx.EXPECT().AppendTransaction(gomock.Any(), gomock.Any()).Return(nil)
				stx.EXPECT().Commit().Return(nil)
				stx.EXPECT().Rollback().Return(nil)
			},
			check: func(t *testing.T, txn *transaction.Transaction) {
				assert.Equal(t, "John Smith", txn.CustomerName)
				assert.Equal(t, transaction.PaymentCard, txn.PaymentMethod)
			},
		},
		{
			name:    "CustomerRequired",
			cfg:     checkout.Config{RequireCustomer: true},
			params:  checkout.SaleParams{PaymentMethod: transaction.PaymentCash},
			wantErr: checkout.ErrCustomerRequired,
		},
		{
			name:   "UnknownCustomer",
			params: checkout.SaleParams{CustomerID: "ghost", PaymentMethod: transaction.PaymentCash},
			setupMock: func(repo *checkout.MockRepository, _ *checkout.MockSaleTx) {
				repo.EXPECT().GetCustomer(gomock.Any(), "ghost").Return(nil, customer.ErrNotFound)
			},
			wantErr: customer.ErrNotFound,
		},
		{
			name:      "BadPaymentMethod",
			params:    checkout.SaleParams{PaymentMethod: "bitcoin"},
			wantField: "paymentMethod",
		},
		{
			name:   "StockSoldElsewhere",
			params: checkout.SaleParams{PaymentMethod: transaction.PaymentCash},
			setupMock: func(repo *checkout.MockRepository, stx *checkout.MockSaleTx) {
				repo.EXPECT().GetSettings(gomock.Any()).Return(testSettings(), nil)
				repo.EXPECT().BeginSale(gomock.Any()).Return(stx, nil)
				stx.EXPECT().GetProduct(gomock.Any(), "a").Return(&product.Product{ID: "a", Name: "Paracetamol 500mg", Stock: 1}, nil)
				stx.EXPECT().Rollback().Return(nil)
			},
			wantErr: checkout.ErrInsufficientStock,
		},
		{
			name:   "AppendFailureRollsBack",
			params: checkout.SaleParams{PaymentMethod: transaction.PaymentCash},
			setupMock: func(repo *checkout.MockRepository, stx *checkout.MockSaleTx) {
				repo.EXPECT().GetSettings(gomock.Any()).Return(testSettings(), nil)
				repo.EXPECT().BeginSale(gomock.Any()).Return(stx, nil)
				stx.EXPECT().GetProduct(gomock.Any(), "a").Return(productA, nil)
				stx.EXPECT().DecrementStock(gomock.Any(), "a", 2).Return(3, nil)
				stx.EXPECT().AppendTransaction(gomock.Any(), gomock.Any()).Return(errBoom)
				stx.EXPECT().Rollback().Return(nil)
			},
			wantErr: errBoom,
		},
		{
			name:   "CommitFailure",
			params: checkout.SaleParams{PaymentMethod: transaction.PaymentCash},
			setupMock: func(repo *checkout.MockRepository, stx *checkout.MockSaleTx) {
				repo.EXPECT().GetSettings(gomock.Any()).Return(testSettings(), nil)
				repo.EXPECT().BeginSale(gomock.Any()).Return(stx, nil)
				stx.EXPECT().GetProduct(gomock.Any(), "a").Return(productA, nil)
				stx.EXPECT().DecrementStock(gomock.Any(), "a", 2).Return(3, nil)
				stx.EXPECT().AppendTransaction(gomock.Any(), gomock.Any()).Return(nil)
				stx.EXPECT().Commit().Return(errBoom)
				stx.EXPECT().Rollback().Return(nil)
			},
			wantErr: errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := checkout.NewMockRepository(ctrl)
			stx := checkout.NewMockSaleTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, stx)
			}

			svc := checkout.NewService(repo, tt.cfg, checkout.WithClock(func() time.Time { return fixedNow }))
			cart := cartWith(t, productA, 2)

			txn, err := svc.CompleteSale(context.Background(), cart, tt.params)

			if tt.wantField != "" {
				var verr validate.Errors
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr[0].Field)
				assert.Equal(t, 1, cart.Len())

				return
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 1, cart.Len(), "failed sale must leave the cart intact")

				return
			}

			require.NoError(t, err)
			assert.Zero(t, cart.Len())
			tt.check(t, txn)
		})
	}
}

var errBoom = errors.New("boom")

func TestService_CompleteSale_EmptyCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := checkout.NewService(checkout.NewMockRepository(ctrl), checkout.Config{})

	_, err := svc.CompleteSale(context.Background(), checkout.NewCart(), checkout.SaleParams{PaymentMethod: transaction.PaymentCash})
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
}

func TestService_Quote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := checkout.NewMockRepository(ctrl)
	repo.EXPECT().GetSettings(gomock.Any()).Return(testSettings(), nil)

	cart := cartWith(t, &product.Product{ID: "a", Name: "A", Price: 10, Stock: 5}, 2)
	require.NoError(t, cart.SetDiscount(10))

	q, err := checkout.NewService(repo, checkout.Config{}).Quote(context.Background(), cart)
	require.NoError(t, err)

	assert.InDelta(t, 0.08, q.TaxRate, 1e-9)
	assert.InDelta(t, 10, q.DiscountPercent, 1e-9)
	assert.InDelta(t, 2, q.Discount, 1e-9)
	assert.InDelta(t, 19.44, q.Total, 1e-9)
}

func TestService_BuildCart(t *testing.T) {
	a := &product.Product{ID: "a", Name: "A", Price: 10, Stock: 5}
	b := &product.Product{ID: "b", Name: "B", Price: 4, Stock: 0}

	tests := []struct {
		name      string
		items     []checkout.CartItem
		discount  float64
		setupMock func(repo *checkout.MockRepository)
		wantErr   error
		wantQty   int
		wantValid bool
	}{
		{
			name:  "MergesRepeatedProduct",
			items: []checkout.CartItem{{ProductID: "a", Quantity: 2}, {ProductID: "a", Quantity: 1}},
			setupMock: func(repo *checkout.MockRepository) {
				repo.EXPECT().GetProduct(gomock.Any(), "a").Return(a, nil).Times(2)
			},
			wantQty: 3,
		},
		{
			name:  "OverStock",
			items: []checkout.CartItem{{ProductID: "a", Quantity: 6}},
			setupMock: func(repo *checkout.MockRepository) {
				repo.EXPECT().GetProduct(gomock.Any(), "a").Return(a, nil)
			},
			wantErr: checkout.ErrInsufficientStock,
		},
		{
			name:  "OutOfStock",
			items: []checkout.CartItem{{ProductID: "b", Quantity: 1}},
			setupMock: func(repo *checkout.MockRepository) {
				repo.EXPECT().GetProduct(gomock.Any(), "b").Return(b, nil)
			},
			wantErr: checkout.ErrOutOfStock,
		},
		{
			name:  "UnknownProduct",
			items: []checkout.CartItem{{ProductID: "zz", Quantity: 1}},
			setupMock: func(repo *checkout.MockRepository) {
				repo.EXPECT().GetProduct(gomock.Any(), "zz").Return(nil, product.ErrNotFound)
			},
			wantErr: product.ErrNotFound,
		},
		{
			name:      "ZeroQuantity",
			items:     []checkout.CartItem{{ProductID: "a", Quantity: 0}},
			wantValid: true,
		},
		{
			name:      "BadDiscount",
			discount:  120,
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := checkout.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			cart, err := checkout.NewService(repo, checkout.Config{}).BuildCart(context.Background(), tt.items, tt.discount)

			switch {
			case tt.wantValid:
				assert.True(t, validate.IsValidation(err))
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				require.Equal(t, 1, cart.Len())
				assert.Equal(t, tt.wantQty, cart.Lines()[0].Quantity)
			}
		})
	}
}
