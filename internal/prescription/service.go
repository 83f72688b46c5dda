package prescription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=prescription
type Repository interface {
	ListPrescriptions(ctx context.Context) ([]*Prescription, error)
	GetPrescription(ctx context.Context, id string) (*Prescription, error)
	CreatePrescription(ctx context.Context, p *Prescription) error
	UpdatePrescription(ctx context.Context, p *Prescription) error
	DeletePrescription(ctx context.Context, id string) error
	GetCustomer(ctx context.Context, id string) (*customer.Customer, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	PrescriptionNumber string `json:"prescriptionNumber,omitempty"`
	CustomerID         string `json:"customerId" validate:"required"`
	DoctorName         string `json:"doctorName" validate:"required"`
	Medication         string `json:"medication" validate:"required"`
	Dosage             string `json:"dosage" validate:"required"`
	Quantity           int    `json:"quantity" validate:"gt=0"`
	Instructions       string `json:"instructions,omitempty"`
	RefillsRemaining   int    `json:"refillsRemaining" validate:"gte=0"`
	Status             Status `json:"status,omitempty" validate:"omitempty,oneof=pending in-progress ready completed cancelled"`
	Notes              string `json:"notes,omitempty"`
}

type UpdateParams struct {
	DoctorName       *string `json:"doctorName,omitempty" validate:"omitempty,min=1"`
	Medication       *string `json:"medication,omitempty" validate:"omitempty,min=1"`
	Dosage           *string `json:"dosage,omitempty" validate:"omitempty,min=1"`
	Quantity         *int    `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Instructions     *string `json:"instructions,omitempty"`
	RefillsRemaining *int    `json:"refillsRemaining,omitempty" validate:"omitempty,gte=0"`
	Notes            *string `json:"notes,omitempty"`
}

type ListFilter struct {
	Status     *Status
	CustomerID string
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Prescription, error) {
	all, err := s.repo.ListPrescriptions(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*Prescription, 0, len(all))

	for _, p := range all {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}

		if filter.CustomerID != "" && p.CustomerID != filter.CustomerID {
			continue
		}

		out = append(out, p)
	}

	return out, nil
}

// CountByStatus tallies prescriptions per status.
func (s *Service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	all, err := s.repo.ListPrescriptions(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int, len(Statuses))
	for _, p := range all {
		counts[p.Status]++
	}

	return counts, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Prescription, error) {
	return s.repo.GetPrescription(ctx, id)
}

// Create records a new prescription for an existing customer. When no number
// is supplied the repository assigns the next RX number in sequence. A number
// already in use fails with ErrDuplicateNumber.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Prescription, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	c, err := s.repo.GetCustomer(ctx, params.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("looking up customer: %w", err)
	}

	status := params.Status
	if status == "" {
		status = StatusPending
	}

	p := &Prescription{
		PrescriptionNumber: strings.TrimSpace(params.PrescriptionNumber),
		CustomerID:         c.ID,
		CustomerName:       c.Name,
		DoctorName:         params.DoctorName,
		Medication:         params.Medication,
		Dosage:             params.Dosage,
		Quantity:           params.Quantity,
		Instructions:       params.Instructions,
		RefillsRemaining:   params.RefillsRemaining,
		Status:             status,
		Notes:              params.Notes,
	}

	if status == StatusCompleted {
		p.FilledAt = new(s.now())
	}

	if err := s.repo.CreatePrescription(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Prescription, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	p, err := s.repo.GetPrescription(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.DoctorName != nil {
		p.DoctorName = *params.DoctorName
	}

	if params.Medication != nil {
		p.Medication = *params.Medication
	}

	if params.Dosage != nil {
		p.Dosage = *params.Dosage
	}

	if params.Quantity != nil {
		p.Quantity = *params.Quantity
	}

	if params.Instructions != nil {
		p.Instructions = *params.Instructions
	}

	if params.RefillsRemaining != nil {
		p.RefillsRemaining = *params.RefillsRemaining
	}

	if params.Notes != nil {
		p.Notes = *params.Notes
	}

	if err := s.repo.UpdatePrescription(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// SetStatus moves a prescription to status. Entering completed stamps FilledAt.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (*Prescription, error) {
	if !status.Valid() {
		return nil, validate.Field("status", "must be one of: pending in-progress ready completed cancelled")
	}

	p, err := s.repo.GetPrescription(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == StatusCompleted && p.Status != StatusCompleted {
		p.FilledAt = new(s.now())
	}

	p.Status = status

	if err := s.repo.UpdatePrescription(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeletePrescription(ctx, id)
}
