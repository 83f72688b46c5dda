package backup_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/pharmacare/internal/app"
	"github.com/MrJamesThe3rd/pharmacare/internal/backup"
	"github.com/MrJamesThe3rd/pharmacare/internal/config"
	"github.com/MrJamesThe3rd/pharmacare/internal/importer"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/storage/memory"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

var productFilterAll = product.ListFilter{}

func newApp(t *testing.T) *app.App {
	t.Helper()

	return app.NewWithBackend(&config.Config{}, memory.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newApp(t)

	// The first export seeds; the second reads back what was stored.
	_, err := src.Backup.Export(ctx)
	require.NoError(t, err)

	snap, err := src.Backup.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Products, 3)
	assert.Len(t, snap.Customers, 2)
	assert.False(t, snap.ExportDate.IsZero())

	var buf bytes.Buffer
	require.NoError(t, backup.WriteJSON(&buf, snap))

	decoded, err := backup.ReadJSON(&buf)
	require.NoError(t, err)

	dst := newApp(t)
	require.NoError(t, dst.Products.Delete(ctx, "1"))
	require.NoError(t, dst.Backup.Import(ctx, decoded))

	again, err := dst.Backup.Export(ctx)
	require.NoError(t, err)

	assert.Equal(t, snap.Products, again.Products)
	assert.Equal(t, snap.Customers, again.Customers)
	assert.Equal(t, snap.Prescriptions, again.Prescriptions)
	assert.Equal(t, snap.Transactions, again.Transactions)
	assert.Equal(t, snap.Settings, again.Settings)
}

func TestImport_PartialSnapshotKeepsOtherCollections(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)

	snap, err := backup.ReadJSON(bytes.NewBufferString(`{"transactions": []}`))
	require.NoError(t, err)
	require.NoError(t, a.Backup.Import(ctx, snap))

	txs, err := a.Transactions.List(ctx, transaction.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, txs)

	ps, err := a.Products.List(ctx, productFilterAll)
	require.NoError(t, err)
	assert.Len(t, ps, 3)
}

func TestImport_RejectsInvalidSettings(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)

	snap, err := backup.ReadJSON(bytes.NewBufferString(`{"products": [], "settings": {"name": "", "taxRate": 3}}`))
	require.NoError(t, err)

	err = a.Backup.Import(ctx, snap)
	require.Error(t, err)

	ps, err := a.Products.List(ctx, productFilterAll)
	require.NoError(t, err)
	assert.Len(t, ps, 3, "nothing is written when validation fails")
}

func TestImport_RejectsInvalidRecords(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		wantFields []string
	}

	tests := []testCase{
		{
			name: "ProductRules",
			body: `{"products": [
				{"name": "Aspirin", "sku": "ASP", "category": "otc", "price": 1, "stock": -5},
				{"id": "9", "name": "Gauze", "sku": "GZ", "category": "bogus", "price": -2, "stock": 1}
			]}`,
			wantFields: []string{"products[0].id", "products[0].stock", "products[1].category", "products[1].price"},
		},
		{
			name: "DuplicateIDs",
			body: `{"customers": [
				{"id": "1", "name": "Ann"},
				{"id": "1", "name": "Bob"}
			]}`,
			wantFields: []string{"customers[1].id"},
		},
		{
			name:       "NullEntry",
			body:       `{"prescriptions": [null]}`,
			wantFields: []string{"prescriptions[0]"},
		},
		{
			name: "TransactionItems",
			body: `{"transactions": [
				{"id": "1", "items": [{"productId": "1", "quantity": 0}], "paymentMethod": "barter"}
			]}`,
			wantFields: []string{"transactions[0].items[0].quantity", "transactions[0].paymentMethod"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			a := newApp(t)

			snap, err := backup.ReadJSON(bytes.NewBufferString(tt.body))
			require.NoError(t, err)

			err = a.Backup.Import(ctx, snap)
			require.Error(t, err)

			var fields validate.Errors
			require.ErrorAs(t, err, &fields)

			got := make([]string, 0, len(fields))
			for _, fe := range fields {
				got = append(got, fe.Field)
			}

			assert.ElementsMatch(t, tt.wantFields, got)

			ps, err := a.Products.List(ctx, productFilterAll)
			require.NoError(t, err)
			assert.Len(t, ps, 3)

			cs, err := a.Customers.List(ctx, "")
			require.NoError(t, err)
			assert.Len(t, cs, 2)
		})
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	_, err := backup.ReadJSON(bytes.NewBufferString(`{"products": [`))
	assert.Error(t, err)
}

func TestWriteWorkbook(t *testing.T) {
	ctx := context.Background()

	snap, err := newApp(t).Backup.Export(ctx)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, backup.WriteWorkbook(&buf, snap))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		backup.SheetProducts,
		backup.SheetCustomers,
		backup.SheetPrescriptions,
		backup.SheetTransactions,
		backup.SheetSettings,
	}, f.GetSheetList())

	rows, err := f.GetRows(backup.SheetProducts)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Ibuprofen 200mg", rows[1][1])

	rows, err = f.GetRows(backup.SheetSettings)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "HealthCare Pharmacy"}, rows[1])
}

func TestProductsCSV_RoundTripThroughImporter(t *testing.T) {
	ctx := context.Background()
	src := newApp(t)

	products, err := src.Products.List(ctx, productFilterAll)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, backup.WriteProductsCSV(&buf, products))

	params, err := importer.NewService().Import(&buf)
	require.NoError(t, err)
	require.Len(t, params, len(products))

	for i, p := range products {
		assert.Equal(t, p.Name, params[i].Name)
		assert.Equal(t, p.SKU, params[i].SKU)
		assert.Equal(t, p.Category, params[i].Category)
		assert.InDelta(t, p.Price, params[i].Price, 1e-9)
		assert.Equal(t, p.Stock, params[i].Stock)
		assert.Equal(t, p.ExpiryDate, params[i].ExpiryDate)
	}
}

func TestImportProductsCSV_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	a := newApp(t)

	csv := "name,sku,category,price,stock\n" +
		"Loratadine 10mg,LOR10,otc,5.25,30\n" +
		"Broken,BRK,otc,-1,1\n"

	_, err := a.Backup.ImportProductsCSV(ctx, bytes.NewBufferString(csv))
	require.Error(t, err)

	ps, err := a.Products.List(ctx, productFilterAll)
	require.NoError(t, err)
	assert.Len(t, ps, 3)

	created, err := a.Backup.ImportProductsCSV(ctx, bytes.NewBufferString("name,sku,category,price,stock\nLoratadine 10mg,LOR10,otc,5.25,30\n"))
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.NotEmpty(t, created[0].ID)
}
