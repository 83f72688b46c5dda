package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

type Config struct {
	// RequireCustomer rejects walk-in sales.
	RequireCustomer bool
}

type Service struct {
	repo Repository
	cfg  Config
	now  func() time.Time
	log  *slog.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(repo Repository, cfg Config, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
		log:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type Quote struct {
	Totals
	TaxRate         float64 `json:"taxRate"`
	DiscountPercent float64 `json:"discountPercent"`
}

// Quote prices the cart with the current tax rate without touching the store.
func (s *Service) Quote(ctx context.Context, cart *Cart) (*Quote, error) {
	st, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return &Quote{
		Totals:          cart.Totals(st.TaxRate),
		TaxRate:         st.TaxRate,
		DiscountPercent: cart.DiscountPercent(),
	}, nil
}

type CartItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// BuildCart loads each product and fills a cart with the requested
// quantities, applying the same stock checks as interactive edits.
func (s *Service) BuildCart(ctx context.Context, items []CartItem, discountPercent float64) (*Cart, error) {
	cart := NewCart()

	if err := cart.SetDiscount(discountPercent); err != nil {
		return nil, err
	}

	for i, it := range items {
		if err := validate.Struct(it); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}

		p, err := s.repo.GetProduct(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("loading product %s: %w", it.ProductID, err)
		}

		existing := 0

		for _, l := range cart.Lines() {
			if l.Product.ID == p.ID {
				existing = l.Quantity
			}
		}

		if existing == 0 {
			if err := cart.Add(p); err != nil {
				return nil, err
			}

			existing = 1
		}

		if err := cart.SetQuantity(p.ID, existing-1+it.Quantity); err != nil {
			return nil, err
		}
	}

	return cart, nil
}

type SaleParams struct {
	CustomerID     string                    `json:"customerId,omitempty"`
	PaymentMethod  transaction.PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash card insurance"`
	PrescriptionID string                    `json:"prescriptionId,omitempty"`
}

// CompleteSale turns the cart into a transaction. Stock decrements, the
// customer aggregate and the transaction record are committed together; on
// any failure nothing is written and the cart is left as it was. On success
// the cart is cleared.
func (s *Service) CompleteSale(ctx context.Context, cart *Cart, params SaleParams) (*transaction.Transaction, error) {
	if cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	customerName := transaction.WalkInCustomerName

	if params.CustomerID == "" {
		if s.cfg.RequireCustomer {
			return nil, ErrCustomerRequired
		}
	} else {
		c, err := s.repo.GetCustomer(ctx, params.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("looking up customer: %w", err)
		}

		customerName = c.Name
	}

	st, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	stx, err := s.repo.BeginSale(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin sale: %w", err)
	}
	defer stx.Rollback()

	lines := cart.Lines()

	for _, l := range lines {
		live, err := stx.GetProduct(ctx, l.Product.ID)
		if err != nil {
			return nil, fmt.Errorf("loading product %s: %w", l.Product.ID, err)
		}

		if l.Quantity > live.Stock {
			return nil, &InsufficientStockError{
				ProductID:   live.ID,
				ProductName: live.Name,
				Available:   live.Stock,
				Requested:   l.Quantity,
			}
		}
	}

	items := make([]transaction.Item, 0, len(lines))

	for _, l := range lines {
		if _, err := stx.DecrementStock(ctx, l.Product.ID, l.Quantity); err != nil {
			return nil, fmt.Errorf("decrementing stock for %s: %w", l.Product.ID, err)
		}

		items = append(items, transaction.Item{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.Product.Price,
			Total:       l.Total(),
		})
	}

	totals := cart.Totals(st.TaxRate)
	now := s.now()

	if params.CustomerID != "" {
		if err := stx.RecordPurchase(ctx, params.CustomerID, totals.Total, now); err != nil {
			return nil, fmt.Errorf("recording purchase: %w", err)
		}
	}

	txn := &transaction.Transaction{
		CustomerID:     params.CustomerID,
		CustomerName:   customerName,
		Items:          items,
		Subtotal:       totals.Subtotal,
		Discount:       totals.Discount,
		TaxRate:        st.TaxRate,
		Tax:            totals.Tax,
		Total:          totals.Total,
		PaymentMethod:  params.PaymentMethod,
		PrescriptionID: params.PrescriptionID,
		CreatedAt:      now,
		CompletedAt:    now,
	}

	if err := stx.AppendTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("appending transaction: %w", err)
	}

	if err := stx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sale: %w", err)
	}

	cart.Clear()

	s.log.Info("sale completed",
		"transaction_id", txn.ID,
		"customer", customerName,
		"items", len(items),
		"total", txn.Total,
	)

	return txn, nil
}
