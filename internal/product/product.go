package product

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("product not found")

// Category groups products on the shelves and in reports.
type Category string

const (
	CategoryPrescription    Category = "prescription"
	CategoryOTC             Category = "otc"
	CategoryMedicalSupplies Category = "medical-supplies"
	CategoryVitamins        Category = "vitamins"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryPrescription,
	CategoryOTC,
	CategoryMedicalSupplies,
	CategoryVitamins,
}

const DefaultLowStockThreshold = 10

// Product is an item held in inventory and sold at the counter. The validate
// tags are checked when a backup is restored.
type Product struct {
	ID                   string    `json:"id" validate:"required"`
	Name                 string    `json:"name" validate:"required"`
	SKU                  string    `json:"sku" validate:"required"`
	Category             Category  `json:"category" validate:"required,oneof=prescription otc medical-supplies vitamins"`
	Price                float64   `json:"price" validate:"gte=0"`
	Stock                int       `json:"stock" validate:"gte=0"`
	LowStockThreshold    int       `json:"lowStockThreshold" validate:"gte=0"`
	Description          string    `json:"description,omitempty"`
	Manufacturer         string    `json:"manufacturer,omitempty"`
	BatchNumber          string    `json:"batchNumber,omitempty"`
	ExpiryDate           string    `json:"expiryDate,omitempty"` // YYYY-MM-DD
	RequiresPrescription bool      `json:"requiresPrescription"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// IsLowStock reports whether the product is at or below its reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

// Expiry parses ExpiryDate. ok is false when the date is missing or malformed.
func (p *Product) Expiry() (t time.Time, ok bool) {
	if p.ExpiryDate == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(time.DateOnly, p.ExpiryDate)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
