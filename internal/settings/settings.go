package settings

import (
	"context"

	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

// Settings is the single store-wide configuration record.
type Settings struct {
	Name            string  `json:"name" validate:"required"`
	PharmacistName  string  `json:"pharmacistName,omitempty"`
	Address         string  `json:"address,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	Email           string  `json:"email,omitempty" validate:"omitempty,email"`
	LicenseNumber   string  `json:"licenseNumber,omitempty"`
	TaxRate         float64 `json:"taxRate" validate:"gte=0,lte=1"`
	PIN             string  `json:"pin" validate:"len=4,number"`
	DefaultDiscount float64 `json:"defaultDiscount" validate:"gte=0,lte=100"`
	Currency        string  `json:"currency" validate:"required,len=3"`
}

// Defaults is the record seeded on first access.
func Defaults() Settings {
	return Settings{
		Name:            "HealthCare Pharmacy",
		PharmacistName:  "Dr. Alex Thompson",
		Address:         "789 Medical Center Dr, Health City, HC 54321",
		Phone:           "(555) PHARMA",
		Email:           "info@healthcarepharmacy.com",
		LicenseNumber:   "PH123456789",
		TaxRate:         0.08,
		PIN:             "0000",
		DefaultDiscount: 0,
		Currency:        "USD",
	}
}

//go:generate mockgen -source=settings.go -destination=repository_mock.go -package=settings
type Repository interface {
	GetSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, s *Settings) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type UpdateParams struct {
	Name            *string  `json:"name,omitempty"`
	PharmacistName  *string  `json:"pharmacistName,omitempty"`
	Address         *string  `json:"address,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	Email           *string  `json:"email,omitempty"`
	LicenseNumber   *string  `json:"licenseNumber,omitempty"`
	TaxRate         *float64 `json:"taxRate,omitempty"`
	PIN             *string  `json:"pin,omitempty"`
	DefaultDiscount *float64 `json:"defaultDiscount,omitempty"`
	Currency        *string  `json:"currency,omitempty"`
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.repo.GetSettings(ctx)
}

// Update merges params into the stored record and validates the result as a whole.
func (s *Service) Update(ctx context.Context, params UpdateParams) (*Settings, error) {
	cur, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	next := *cur
	set(&next.Name, params.Name)
	set(&next.PharmacistName, params.PharmacistName)
	set(&next.Address, params.Address)
	set(&next.Phone, params.Phone)
	set(&next.Email, params.Email)
	set(&next.LicenseNumber, params.LicenseNumber)
	set(&next.TaxRate, params.TaxRate)
	set(&next.PIN, params.PIN)
	set(&next.DefaultDiscount, params.DefaultDiscount)
	set(&next.Currency, params.Currency)

	if err := validate.Struct(next); err != nil {
		return nil, err
	}

	if err := s.repo.SaveSettings(ctx, &next); err != nil {
		return nil, err
	}

	return &next, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
