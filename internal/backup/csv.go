package backup

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/report"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

// ProductsCSVHeader is the column layout written by WriteProductsCSV. The
// product importer reads the same layout back.
var ProductsCSVHeader = []string{
	"name", "sku", "category", "price", "stock", "lowStockThreshold",
	"manufacturer", "batchNumber", "expiryDate", "requiresPrescription", "description",
}

func WriteProductsCSV(w io.Writer, products []*product.Product) error {
	rows := make([][]string, 0, len(products))

	for _, p := range products {
		rows = append(rows, []string{
			p.Name,
			p.SKU,
			string(p.Category),
			formatFloat(p.Price),
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.LowStockThreshold),
			p.Manufacturer,
			p.BatchNumber,
			p.ExpiryDate,
			strconv.FormatBool(p.RequiresPrescription),
			p.Description,
		})
	}

	return writeCSV(w, ProductsCSVHeader, rows)
}

// WriteSalesCSV writes one row per transaction.
func WriteSalesCSV(w io.Writer, txs []*transaction.Transaction) error {
	header := []string{"transactionId", "date", "customer", "items", "subtotal", "discount", "tax", "total", "paymentMethod"}
	rows := make([][]string, 0, len(txs))

	for _, t := range txs {
		rows = append(rows, []string{
			t.ID,
			t.CreatedAt.Format(time.DateTime),
			t.CustomerName,
			strconv.Itoa(t.ItemCount()),
			formatFloat(t.Subtotal),
			formatFloat(t.Discount),
			formatFloat(t.Tax),
			formatFloat(t.Total),
			string(t.PaymentMethod),
		})
	}

	return writeCSV(w, header, rows)
}

func WriteProductSalesCSV(w io.Writer, sales []report.ProductSales) error {
	header := []string{"productId", "productName", "quantitySold", "revenue"}
	rows := make([][]string, 0, len(sales))

	for _, s := range sales {
		rows = append(rows, []string{s.ProductID, s.ProductName, strconv.Itoa(s.QuantitySold), formatFloat(s.Revenue)})
	}

	return writeCSV(w, header, rows)
}

func WriteCustomerSpendCSV(w io.Writer, spend []report.CustomerSpend) error {
	header := []string{"customerId", "customerName", "orders", "spent"}
	rows := make([][]string, 0, len(spend))

	for _, s := range spend {
		rows = append(rows, []string{s.CustomerID, s.CustomerName, strconv.Itoa(s.Orders), formatFloat(s.Spent)})
	}

	return writeCSV(w, header, rows)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}

	return cw.Error()
}
