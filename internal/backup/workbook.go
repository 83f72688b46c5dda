package backup

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	SheetProducts      = "Products"
	SheetCustomers     = "Customers"
	SheetPrescriptions = "Prescriptions"
	SheetTransactions  = "Transactions"
	SheetSettings      = "Settings"
)

type sheet struct {
	name   string
	header []string
	rows   [][]any
}

// WriteWorkbook renders the snapshot as an xlsx workbook with one sheet per collection.
func WriteWorkbook(w io.Writer, snap *Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, sh := range workbookSheets(snap) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return fmt.Errorf("renaming first sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sh.name, err)
		}

		if err := writeSheet(f, sh, bold); err != nil {
			return fmt.Errorf("writing sheet %s: %w", sh.name, err)
		}
	}

	f.SetActiveSheet(0)

	return f.Write(w)
}

func writeSheet(f *excelize.File, sh sheet, headerStyle int) error {
	header := make([]any, len(sh.header))
	for i, h := range sh.header {
		header[i] = h
	}

	if err := f.SetSheetRow(sh.name, "A1", &header); err != nil {
		return err
	}

	if err := f.SetRowStyle(sh.name, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

func workbookSheets(snap *Snapshot) []sheet {
	products := sheet{
		name:   SheetProducts,
		header: []string{"ID", "Name", "SKU", "Category", "Price", "Stock", "Low Stock Threshold", "Manufacturer", "Batch Number", "Expiry Date", "Requires Prescription"},
	}
	for _, p := range snap.Products {
		products.rows = append(products.rows, []any{
			p.ID, p.Name, p.SKU, string(p.Category), p.Price, p.Stock, p.LowStockThreshold,
			p.Manufacturer, p.BatchNumber, p.ExpiryDate, p.RequiresPrescription,
		})
	}

	customers := sheet{
		name:   SheetCustomers,
		header: []string{"ID", "Name", "Email", "Phone", "Address", "Date of Birth", "Allergies", "Insurance Provider", "Policy Number", "VIP", "Total Purchases", "Last Visit", "Registered"},
	}
	for _, c := range snap.Customers {
		var provider, policy string
		if c.InsuranceInfo != nil {
			provider, policy = c.InsuranceInfo.Provider, c.InsuranceInfo.PolicyNumber
		}

		customers.rows = append(customers.rows, []any{
			c.ID, c.Name, c.Email, c.Phone, c.Address, c.DateOfBirth, strings.Join(c.Allergies, ", "),
			provider, policy, c.IsVIP, c.TotalPurchases, formatTimePtr(c.LastVisit), formatTime(c.RegistrationDate),
		})
	}

	prescriptions := sheet{
		name:   SheetPrescriptions,
		header: []string{"ID", "Number", "Customer", "Doctor", "Medication", "Dosage", "Quantity", "Refills", "Status", "Created", "Filled"},
	}
	for _, p := range snap.Prescriptions {
		prescriptions.rows = append(prescriptions.rows, []any{
			p.ID, p.PrescriptionNumber, p.CustomerName, p.DoctorName, p.Medication, p.Dosage,
			p.Quantity, p.RefillsRemaining, string(p.Status), formatTime(p.CreatedAt), formatTimePtr(p.FilledAt),
		})
	}

	transactions := sheet{
		name:   SheetTransactions,
		header: []string{"ID", "Date", "Customer", "Items", "Subtotal", "Discount", "Tax Rate", "Tax", "Total", "Payment Method"},
	}
	for _, t := range snap.Transactions {
		transactions.rows = append(transactions.rows, []any{
			t.ID, formatTime(t.CreatedAt), t.CustomerName, t.ItemCount(), t.Subtotal, t.Discount,
			t.TaxRate, t.Tax, t.Total, string(t.PaymentMethod),
		})
	}

	settings := sheet{name: SheetSettings, header: []string{"Setting", "Value"}}
	if st := snap.Settings; st != nil {
		settings.rows = [][]any{
			{"Name", st.Name},
			{"Pharmacist", st.PharmacistName},
			{"Address", st.Address},
			{"Phone", st.Phone},
			{"Email", st.Email},
			{"License Number", st.LicenseNumber},
			{"Tax Rate", st.TaxRate},
			{"Default Discount", st.DefaultDiscount},
			{"Currency", st.Currency},
		}
	}

	return []sheet{products, customers, prescriptions, transactions, settings}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.DateTime)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}

	return formatTime(*t)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
