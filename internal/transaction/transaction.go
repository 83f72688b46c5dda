package transaction

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("transaction not found")

// WalkInCustomerName labels sales completed without a registered customer.
const WalkInCustomerName = "Walk-in Customer"

// PaymentMethod is how the customer settled the sale.
type PaymentMethod string

const (
	PaymentCash      PaymentMethod = "cash"
	PaymentCard      PaymentMethod = "card"
	PaymentInsurance PaymentMethod = "insurance"
)

// Item is a single sold line. UnitPrice is frozen at sale time.
type Item struct {
	ProductID   string  `json:"productId" validate:"required"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
	Total       float64 `json:"total" validate:"gte=0"`
}

// Transaction is an immutable record of a completed sale.
type Transaction struct {
	ID             string        `json:"id" validate:"required"`
	CustomerID     string        `json:"customerId,omitempty"`
	CustomerName   string        `json:"customerName"`
	Items          []Item        `json:"items" validate:"dive"`
	Subtotal       float64       `json:"subtotal" validate:"gte=0"`
	Discount       float64       `json:"discount" validate:"gte=0"`
	TaxRate        float64       `json:"taxRate" validate:"gte=0,lte=1"`
	Tax            float64       `json:"tax" validate:"gte=0"`
	Total          float64       `json:"total" validate:"gte=0"`
	PaymentMethod  PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash card insurance"`
	PrescriptionID string        `json:"prescriptionId,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	CompletedAt    time.Time     `json:"completedAt"`
}

// IsWalkIn reports whether the sale was made without a registered customer.
func (t *Transaction) IsWalkIn() bool {
	return t.CustomerID == ""
}

// ItemCount is the number of units sold across all lines.
func (t *Transaction) ItemCount() int {
	n := 0
	for _, it := range t.Items {
		n += it.Quantity
	}

	return n
}
