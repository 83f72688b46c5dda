package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	CreateProducts(ctx context.Context, ps []*Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name                 string   `json:"name" validate:"required"`
	SKU                  string   `json:"sku" validate:"required"`
	Category             Category `json:"category" validate:"required,oneof=prescription otc medical-supplies vitamins"`
	Price                float64  `json:"price" validate:"gte=0"`
	Stock                int      `json:"stock" validate:"gte=0"`
	LowStockThreshold    *int     `json:"lowStockThreshold,omitempty" validate:"omitempty,gte=0"`
	Description          string   `json:"description,omitempty"`
	Manufacturer         string   `json:"manufacturer,omitempty"`
	BatchNumber          string   `json:"batchNumber,omitempty"`
	ExpiryDate           string   `json:"expiryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RequiresPrescription bool     `json:"requiresPrescription"`
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	Name                 *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	SKU                  *string   `json:"sku,omitempty" validate:"omitempty,min=1"`
	Category             *Category `json:"category,omitempty" validate:"omitempty,oneof=prescription otc medical-supplies vitamins"`
	Price                *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock                *int      `json:"stock,omitempty" validate:"omitempty,gte=0"`
	LowStockThreshold    *int      `json:"lowStockThreshold,omitempty" validate:"omitempty,gte=0"`
	Description          *string   `json:"description,omitempty"`
	Manufacturer         *string   `json:"manufacturer,omitempty"`
	BatchNumber          *string   `json:"batchNumber,omitempty"`
	ExpiryDate           *string   `json:"expiryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RequiresPrescription *bool     `json:"requiresPrescription,omitempty"`
}

// trimmed strips surrounding space from Name and SKU before validation.
func (p CreateParams) trimmed() CreateParams {
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)

	return p
}

func (p UpdateParams) trimmed() UpdateParams {
	p.Name = trimPtr(p.Name)
	p.SKU = trimPtr(p.SKU)

	return p
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}

	return new(strings.TrimSpace(*s))
}

type ListFilter struct {
	Search       string
	Category     *Category
	LowStockOnly bool
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]*Product, 0, len(products))

	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}

		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}

		if filter.LowStockOnly && !p.IsLowStock() {
			continue
		}

		out = append(out, p)
	}

	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	params = params.trimmed()
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	p := fromParams(params)
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// CreateBatch validates every entry before writing any of them.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Product, error) {
	if len(params) == 0 {
		return nil, nil
	}

	products := make([]*Product, 0, len(params))

	for i, p := range params {
		p = p.trimmed()
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("product %d: %w", i+1, err)
		}

		products = append(products, fromParams(p))
	}

	if err := s.repo.CreateProducts(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Product, error) {
	params = params.trimmed()
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(p, params)

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// AdjustStock adds delta (negative to remove) to the product stock, flooring at zero.
func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Stock = max(0, p.Stock+delta)

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func fromParams(params CreateParams) *Product {
	threshold := DefaultLowStockThreshold
	if params.LowStockThreshold != nil {
		threshold = *params.LowStockThreshold
	}

	return &Product{
		Name:                 params.Name,
		SKU:                  params.SKU,
		Category:             params.Category,
		Price:                params.Price,
		Stock:                params.Stock,
		LowStockThreshold:    threshold,
		Description:          params.Description,
		Manufacturer:         params.Manufacturer,
		BatchNumber:          params.BatchNumber,
		ExpiryDate:           params.ExpiryDate,
		RequiresPrescription: params.RequiresPrescription,
	}
}

func applyUpdate(p *Product, params UpdateParams) {
	if params.Name != nil {
		p.Name = *params.Name
	}

	if params.SKU != nil {
		p.SKU = *params.SKU
	}

	if params.Category != nil {
		p.Category = *params.Category
	}

	if params.Price != nil {
		p.Price = *params.Price
	}

	if params.Stock != nil {
		p.Stock = *params.Stock
	}

	if params.LowStockThreshold != nil {
		p.LowStockThreshold = *params.LowStockThreshold
	}

	if params.Description != nil {
		p.Description = *params.Description
	}

	if params.Manufacturer != nil {
		p.Manufacturer = *params.Manufacturer
	}

	if params.BatchNumber != nil {
		p.BatchNumber = *params.BatchNumber
	}

	if params.ExpiryDate != nil {
		p.ExpiryDate = *params.ExpiryDate
	}

	if params.RequiresPrescription != nil {
		p.RequiresPrescription = *params.RequiresPrescription
	}
}
