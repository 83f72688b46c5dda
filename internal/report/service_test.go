package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pharmacare/internal/prescription"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/report"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

func TestService_Sales(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactions(gomock.Any(), transaction.ListFilter{}).Return([]*transaction.Transaction{
		txn("1", "c1", at("2024-03-02", 10), 21.6, item("a", 2, 20)),
		txn("2", "", at("2024-03-20", 10), 10.8, item("b", 1, 10)),
		txn("3", "", at("2024-04-02", 10), 99, item("a", 9, 90)),
	}, nil)

	got, err := report.NewService(repo).Sales(context.Background(), at("2024-03-01", 0), at("2024-03-31", 0), 0)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", got.Start)
	assert.Equal(t, "2024-03-31", got.End)
	assert.Equal(t, 2, got.Summary.TransactionCount)
	assert.InDelta(t, 32.4, got.Summary.TotalRevenue, 1e-9)
	assert.Len(t, got.Daily, 2)
	require.Len(t, got.TopProducts, 2)
	assert.Equal(t, "a", got.TopProducts[0].ProductID)
	assert.Len(t, got.Transactions, 2)
}

func TestService_Sales_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("boom")

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := report.NewService(repo).Sales(context.Background(), time.Now(), time.Now(), 5)
	assert.ErrorIs(t, err, boom)
}

func TestService_Dashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := at("2024-03-15", 15)

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().ListProducts(gomock.Any()).Return([]*product.Product{
		{ID: "a", Price: 10, Stock: 3, LowStockThreshold: 5},
		{ID: "b", Price: 2, Stock: 50, LowStockThreshold: 5},
	}, nil)
	repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{
		txn("old", "", at("2024-02-28", 9), 100),
		txn("month", "", at("2024-03-01", 9), 20),
		txn("today1", "", at("2024-03-15", 9), 5),
		txn("today2", "", at("2024-03-15", 14), 7),
	}, nil)
	repo.EXPECT().ListPrescriptions(gomock.Any()).Return([]*prescription.Prescription{
		{Status: prescription.StatusPending},
		{Status: prescription.StatusReady},
		{Status: prescription.StatusReady},
		{Status: prescription.StatusCompleted},
	}, nil)

	got, err := report.NewService(repo).Dashboard(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, got.TodayTransactions)
	assert.InDelta(t, 12.0, got.TodaySales, 1e-9)
	assert.Equal(t, 3, got.MonthTransactions)
	assert.InDelta(t, 32.0, got.MonthSales, 1e-9)
	assert.InDelta(t, 130.0, got.InventoryValue, 1e-9)
	assert.Equal(t, 2, got.ProductCount)
	require.Len(t, got.LowStock, 1)
	assert.Equal(t, "a", got.LowStock[0].ID)
	assert.Equal(t, 1, got.PendingPrescriptions)
	assert.Equal(t, 2, got.ReadyPrescriptions)

	require.Len(t, got.RecentSales, 4)
	assert.Equal(t, "today2", got.RecentSales[0].ID)
	assert.Equal(t, "old", got.RecentSales[3].ID)
}
