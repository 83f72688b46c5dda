// Package report aggregates sales and inventory figures. The functions in
// this file are pure: they never touch the store and return the same result
// for the same input.
package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

type Summary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TransactionCount  int     `json:"transactionCount"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	TotalDiscount     float64 `json:"totalDiscount"`
	TotalTax          float64 `json:"totalTax"`
}

type DaySales struct {
	Day          string  `json:"day"` // YYYY-MM-DD
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
}

type ProductSales struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	QuantitySold int     `json:"quantitySold"`
	Revenue      float64 `json:"revenue"`
}

type CustomerSpend struct {
	CustomerID   string  `json:"customerId,omitempty"`
	CustomerName string  `json:"customerName"`
	Orders       int     `json:"orders"`
	Spent        float64 `json:"spent"`
}

// FilterByDateRange keeps transactions whose calendar day, in start's
// location, falls within [start, end]. Time of day is ignored on both bounds.
func FilterByDateRange(txs []*transaction.Transaction, start, end time.Time) []*transaction.Transaction {
	loc := start.Location()
	from := start.Format(time.DateOnly)
	to := end.In(loc).Format(time.DateOnly)

	out := make([]*transaction.Transaction, 0, len(txs))

	for _, t := range txs {
		day := t.CreatedAt.In(loc).Format(time.DateOnly)
		if day >= from && day <= to {
			out = append(out, t)
		}
	}

	return out
}

// Summarize totals revenue, discount and tax. The average is zero for no sales.
func Summarize(txs []*transaction.Transaction) Summary {
	revenue, discount, tax := decimal.Zero, decimal.Zero, decimal.Zero

	for _, t := range txs {
		revenue = revenue.Add(decimal.NewFromFloat(t.Total))
		discount = discount.Add(decimal.NewFromFloat(t.Discount))
		tax = tax.Add(decimal.NewFromFloat(t.Tax))
	}

	s := Summary{
		TotalRevenue:     revenue.InexactFloat64(),
		TransactionCount: len(txs),
		TotalDiscount:    discount.InexactFloat64(),
		TotalTax:         tax.InexactFloat64(),
	}

	if len(txs) > 0 {
		s.AverageOrderValue = revenue.Div(decimal.NewFromInt(int64(len(txs)))).InexactFloat64()
	}

	return s
}

// SalesByDay groups revenue by calendar day in loc, oldest day first.
func SalesByDay(txs []*transaction.Transaction, loc *time.Location) []DaySales {
	type acc struct {
		revenue decimal.Decimal
		count   int
	}

	byDay := make(map[string]*acc)

	for _, t := range txs {
		day := t.CreatedAt.In(loc).Format(time.DateOnly)

		a, ok := byDay[day]
		if !ok {
			a = &acc{}
			byDay[day] = a
		}

		a.revenue = a.revenue.Add(decimal.NewFromFloat(t.Total))
		a.count++
	}

	out := make([]DaySales, 0, len(byDay))
	for day, a := range byDay {
		out = append(out, DaySales{Day: day, Revenue: a.revenue.InexactFloat64(), Transactions: a.count})
	}

	slices.SortFunc(out, func(a, b DaySales) int { return cmp.Compare(a.Day, b.Day) })

	return out
}

// TopProductsByRevenue groups line items by product and returns the n best
// sellers by revenue. Ties keep the order in which products first appear.
// n <= 0 returns every product.
func TopProductsByRevenue(txs []*transaction.Transaction, n int) []ProductSales {
	var order []string

	revenue := make(map[string]decimal.Decimal)
	rows := make(map[string]*ProductSales)

	for _, t := range txs {
		for _, it := range t.Items {
			row, ok := rows[it.ProductID]
			if !ok {
				row = &ProductSales{ProductID: it.ProductID, ProductName: it.ProductName}
				rows[it.ProductID] = row
				order = append(order, it.ProductID)
			}

			row.QuantitySold += it.Quantity
			revenue[it.ProductID] = revenue[it.ProductID].Add(decimal.NewFromFloat(it.Total))
		}
	}

	out := make([]ProductSales, 0, len(order))

	for _, id := range order {
		row := rows[id]
		row.Revenue = revenue[id].InexactFloat64()
		out = append(out, *row)
	}

	slices.SortStableFunc(out, func(a, b ProductSales) int { return cmp.Compare(b.Revenue, a.Revenue) })

	return truncate(out, n)
}

// TopCustomersBySpend groups sales by customer; walk-in sales form one group.
// Ties keep first-appearance order. n <= 0 returns every customer.
func TopCustomersBySpend(txs []*transaction.Transaction, n int) []CustomerSpend {
	var order []string

	spent := make(map[string]decimal.Decimal)
	rows := make(map[string]*CustomerSpend)

	for _, t := range txs {
		row, ok := rows[t.CustomerID]
		if !ok {
			name := t.CustomerName
			if t.IsWalkIn() {
				name = transaction.WalkInCustomerName
			}

			row = &CustomerSpend{CustomerID: t.CustomerID, CustomerName: name}
			rows[t.CustomerID] = row
			order = append(order, t.CustomerID)
		}

		row.Orders++
		spent[t.CustomerID] = spent[t.CustomerID].Add(decimal.NewFromFloat(t.Total))
	}

	out := make([]CustomerSpend, 0, len(order))

	for _, id := range order {
		row := rows[id]
		row.Spent = spent[id].InexactFloat64()
		out = append(out, *row)
	}

	slices.SortStableFunc(out, func(a, b CustomerSpend) int { return cmp.Compare(b.Spent, a.Spent) })

	return truncate(out, n)
}

// LowStock returns products at or below their reorder threshold.
func LowStock(products []*product.Product) []*product.Product {
	out := make([]*product.Product, 0)

	for _, p := range products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}

	return out
}

// ExpiringSoon returns products whose expiry date is on or before
// now + horizonDays. Already-expired products are included; products without
// a parseable expiry date are not.
func ExpiringSoon(products []*product.Product, now time.Time, horizonDays int) []*product.Product {
	limit := now.AddDate(0, 0, horizonDays).Format(time.DateOnly)

	out := make([]*product.Product, 0)

	for _, p := range products {
		expiry, ok := p.Expiry()
		if !ok {
			continue
		}

		if expiry.Format(time.DateOnly) <= limit {
			out = append(out, p)
		}
	}

	return out
}

// InventoryValue is the retail value of everything on the shelves.
func InventoryValue(products []*product.Product) float64 {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Stock))))
	}

	return total.InexactFloat64()
}

func truncate[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}

	return s
}
