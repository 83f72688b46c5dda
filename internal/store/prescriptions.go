package store

import (
	"context"

	"github.com/MrJamesThe3rd/pharmacare/internal/prescription"
)

var prescriptions = collectionDef[*prescription.Prescription]{
	key:      KeyPrescriptions,
	id:       func(p *prescription.Prescription) string { return p.ID },
	defaults: defaultPrescriptions,
}

func (s *Store) ListPrescriptions(ctx context.Context) ([]*prescription.Prescription, error) {
	c, err := read(ctx, s, prescriptions)
	if err != nil {
		return nil, err
	}

	return c.values(), nil
}

func (s *Store) GetPrescription(ctx context.Context, id string) (*prescription.Prescription, error) {
	c, err := read(ctx, s, prescriptions)
	if err != nil {
		return nil, err
	}

	p, ok := c.get(id)
	if !ok {
		return nil, prescription.ErrNotFound
	}

	return p, nil
}

// CreatePrescription assigns the next RX number when p has none. Numbering
// and the uniqueness check run under the store lock.
func (s *Store) CreatePrescription(ctx context.Context, p *prescription.Prescription) error {
	return mutate(ctx, s, prescriptions, func(c *collection[*prescription.Prescription]) error {
		existing := c.values()

		if p.PrescriptionNumber == "" {
			p.PrescriptionNumber = prescription.NextNumber(existing)
		}

		for _, other := range existing {
			if other.PrescriptionNumber == p.PrescriptionNumber {
				return prescription.ErrDuplicateNumber
			}
		}

		now := s.now()

		p.ID = s.newID()
		p.CreatedAt = now
		p.UpdatedAt = now
		c.put(p)

		return nil
	})
}

func (s *Store) UpdatePrescription(ctx context.Context, p *prescription.Prescription) error {
	return mutate(ctx, s, prescriptions, func(c *collection[*prescription.Prescription]) error {
		existing, ok := c.get(p.ID)
		if !ok {
			return prescription.ErrNotFound
		}

		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = s.now()
		c.put(p)

		return nil
	})
}

func (s *Store) DeletePrescription(ctx context.Context, id string) error {
	return mutate(ctx, s, prescriptions, func(c *collection[*prescription.Prescription]) error {
		if !c.remove(id) {
			return prescription.ErrNotFound
		}

		return nil
	})
}
