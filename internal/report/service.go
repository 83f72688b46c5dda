package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/pharmacare/internal/prescription"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	ListProducts(ctx context.Context) ([]*product.Product, error)
	ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
	ListPrescriptions(ctx context.Context) ([]*prescription.Prescription, error)
}

const (
	DefaultTopN          = 10
	DefaultExpiryHorizon = 30
	recentSalesCount     = 5
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type SalesReport struct {
	Start        string                     `json:"start"`
	End          string                     `json:"end"`
	Summary      Summary                    `json:"summary"`
	Daily        []DaySales                 `json:"daily"`
	TopProducts  []ProductSales             `json:"topProducts"`
	TopCustomers []CustomerSpend            `json:"topCustomers"`
	Transactions []*transaction.Transaction `json:"transactions"`
}

// Sales builds the sales report for the calendar days from start to end.
func (s *Service) Sales(ctx context.Context, start, end time.Time, topN int) (*SalesReport, error) {
	all, err := s.repo.ListTransactions(ctx, transaction.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	if topN <= 0 {
		topN = DefaultTopN
	}

	txs := FilterByDateRange(all, start, end)

	return &SalesReport{
		Start:        start.Format(time.DateOnly),
		End:          end.In(start.Location()).Format(time.DateOnly),
		Summary:      Summarize(txs),
		Daily:        SalesByDay(txs, start.Location()),
		TopProducts:  TopProductsByRevenue(txs, topN),
		TopCustomers: TopCustomersBySpend(txs, topN),
		Transactions: txs,
	}, nil
}

func (s *Service) LowStock(ctx context.Context) ([]*product.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	return LowStock(products), nil
}

func (s *Service) ExpiringSoon(ctx context.Context, now time.Time, horizonDays int) ([]*product.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	return ExpiringSoon(products, now, horizonDays), nil
}

type Dashboard struct {
	TodaySales           float64                    `json:"todaySales"`
	TodayTransactions    int                        `json:"todayTransactions"`
	MonthSales           float64                    `json:"monthSales"`
	MonthTransactions    int                        `json:"monthTransactions"`
	InventoryValue       float64                    `json:"inventoryValue"`
	ProductCount         int                        `json:"productCount"`
	LowStock             []*product.Product         `json:"lowStock"`
	PendingPrescriptions int                        `json:"pendingPrescriptions"`
	ReadyPrescriptions   int                        `json:"readyPrescriptions"`
	RecentSales          []*transaction.Transaction `json:"recentSales"`
}

// Dashboard summarises the current day and month as seen from now's location.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	txs, err := s.repo.ListTransactions(ctx, transaction.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	rxs, err := s.repo.ListPrescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing prescriptions: %w", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	today := Summarize(FilterByDateRange(txs, now, now))
	month := Summarize(FilterByDateRange(txs, monthStart, monthEnd))

	d := &Dashboard{
		TodaySales:        today.TotalRevenue,
		TodayTransactions: today.TransactionCount,
		MonthSales:        month.TotalRevenue,
		MonthTransactions: month.TransactionCount,
		InventoryValue:    InventoryValue(products),
		ProductCount:      len(products),
		LowStock:          LowStock(products),
		RecentSales:       recent(txs, recentSalesCount),
	}

	for _, rx := range rxs {
		switch rx.Status {
		case prescription.StatusPending:
			d.PendingPrescriptions++
		case prescription.StatusReady:
			d.ReadyPrescriptions++
		}
	}

	return d, nil
}

func recent(txs []*transaction.Transaction, n int) []*transaction.Transaction {
	out := slices.Clone(txs)
	slices.SortStableFunc(out, func(a, b *transaction.Transaction) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	return truncate(out, n)
}
