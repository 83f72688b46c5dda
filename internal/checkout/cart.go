package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

// Line is one product in the cart. Product is a copy taken when the line was
// added; its price is the price charged.
type Line struct {
	Product  product.Product
	Quantity int
}

func (l Line) Total() float64 {
	return decimal.NewFromFloat(l.Product.Price).Mul(decimal.NewFromInt(int64(l.Quantity))).InexactFloat64()
}

// Totals are derived from the cart lines, the discount percent and a tax rate.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Cart is a transient, session-local basket. It is not safe for concurrent use.
type Cart struct {
	lines           []*Line
	discountPercent float64
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts one unit of p in the cart, or one more unit when it is already there.
func (c *Cart) Add(p *product.Product) error {
	if p.Stock <= 0 {
		return fmt.Errorf("%s: %w", p.Name, ErrOutOfStock)
	}

	if l := c.find(p.ID); l != nil {
		if l.Quantity+1 > p.Stock {
			return &InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   p.Stock,
				Requested:   l.Quantity + 1,
			}
		}

		l.Product = *p
		l.Quantity++

		return nil
	}

	c.lines = append(c.lines, &Line{Product: *p, Quantity: 1})

	return nil
}

// SetQuantity changes a line's quantity. Zero or less removes the line; more
// than the known stock fails and keeps the previous quantity.
func (c *Cart) SetQuantity(productID string, qty int) error {
	l := c.find(productID)
	if l == nil {
		return ErrLineNotFound
	}

	if qty <= 0 {
		c.Remove(productID)
		return nil
	}

	if qty > l.Product.Stock {
		return &InsufficientStockError{
			ProductID:   productID,
			ProductName: l.Product.Name,
			Available:   l.Product.Stock,
			Requested:   qty,
		}
	}

	l.Quantity = qty

	return nil
}

func (c *Cart) Remove(productID string) {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart and resets the discount.
func (c *Cart) Clear() {
	c.lines = nil
	c.discountPercent = 0
}

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() *Cart {
	out := &Cart{
		lines:           make([]*Line, 0, len(c.lines)),
		discountPercent: c.discountPercent,
	}

	for _, l := range c.lines {
		line := *l
		out.lines = append(out.lines, &line)
	}

	return out
}

// SetDiscount sets the discount as a percentage of the subtotal.
func (c *Cart) SetDiscount(percent float64) error {
	if percent < 0 || percent > 100 {
		return validate.Field("discountPercent", "must be between 0 and 100")
	}

	c.discountPercent = percent

	return nil
}

func (c *Cart) DiscountPercent() float64 {
	return c.discountPercent
}

// Lines returns a copy of the cart lines in the order they were added.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, *l)
	}

	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Totals computes subtotal, discount, tax and total:
//
//	discount = subtotal * percent / 100
//	tax      = (subtotal - discount) * taxRate
//	total    = subtotal - discount + tax
func (c *Cart) Totals(taxRate float64) Totals {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(decimal.NewFromFloat(l.Product.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	discount := subtotal.Mul(decimal.NewFromFloat(c.discountPercent)).Div(decimal.NewFromInt(100))
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(decimal.NewFromFloat(taxRate))

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Discount: discount.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    taxable.Add(tax).InexactFloat64(),
	}
}

func (c *Cart) find(productID string) *Line {
	for _, l := range c.lines {
		if l.Product.ID == productID {
			return l
		}
	}

	return nil
}
