package customer

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	ListCustomers(ctx context.Context) ([]*Customer, error)
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	CreateCustomer(ctx context.Context, c *Customer) error
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name          string     `json:"name" validate:"required"`
	Email         string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string     `json:"phone" validate:"required"`
	Address       string     `json:"address,omitempty"`
	DateOfBirth   string     `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Allergies     []string   `json:"allergies,omitempty"`
	InsuranceInfo *Insurance `json:"insuranceInfo,omitempty" validate:"omitempty"`
	Notes         string     `json:"notes,omitempty"`
	IsVIP         bool       `json:"isVIP"`
}

type UpdateParams struct {
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	Email         *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string    `json:"phone,omitempty" validate:"omitempty,min=1"`
	Address       *string    `json:"address,omitempty"`
	DateOfBirth   *string    `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Allergies     []string   `json:"allergies,omitempty"`
	InsuranceInfo *Insurance `json:"insuranceInfo,omitempty" validate:"omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	IsVIP         *bool      `json:"isVIP,omitempty"`
}

// List returns customers whose name, phone or email contains search.
func (s *Service) List(ctx context.Context, search string) ([]*Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return customers, nil
	}

	out := make([]*Customer, 0, len(customers))

	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), search) ||
			strings.Contains(c.Phone, search) ||
			strings.Contains(strings.ToLower(c.Email), search) {
			out = append(out, c)
		}
	}

	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Customer, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Phone = strings.TrimSpace(params.Phone)

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	c := &Customer{
		Name:          params.Name,
		Email:         params.Email,
		Phone:         params.Phone,
		Address:       params.Address,
		DateOfBirth:   params.DateOfBirth,
		Allergies:     params.Allergies,
		InsuranceInfo: params.InsuranceInfo,
		Notes:         params.Notes,
		IsVIP:         params.IsVIP,
	}

	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Customer, error) {
	params.Name = trimPtr(params.Name)
	params.Phone = trimPtr(params.Phone)

	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	c, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		c.Name = *params.Name
	}

	if params.Email != nil {
		c.Email = *params.Email
	}

	if params.Phone != nil {
		c.Phone = *params.Phone
	}

	if params.Address != nil {
		c.Address = *params.Address
	}

	if params.DateOfBirth != nil {
		c.DateOfBirth = *params.DateOfBirth
	}

	if params.Allergies != nil {
		c.Allergies = params.Allergies
	}

	if params.InsuranceInfo != nil {
		c.InsuranceInfo = params.InsuranceInfo
	}

	if params.Notes != nil {
		c.Notes = *params.Notes
	}

	if params.IsVIP != nil {
		c.IsVIP = *params.IsVIP
	}

	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteCustomer(ctx, id)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}

	return new(strings.TrimSpace(*s))
}
