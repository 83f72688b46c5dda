package store

import (
	"context"

	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
)

var customers = collectionDef[*customer.Customer]{
	key:      KeyCustomers,
	id:       func(c *customer.Customer) string { return c.ID },
	defaults: defaultCustomers,
}

func (s *Store) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	c, err := read(ctx, s, customers)
	if err != nil {
		return nil, err
	}

	return c.values(), nil
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := read(ctx, s, customers)
	if err != nil {
		return nil, err
	}

	cust, ok := c.get(id)
	if !ok {
		return nil, customer.ErrNotFound
	}

	return cust, nil
}

// CreateCustomer assigns the id and registration date. Purchase aggregates start at zero.
func (s *Store) CreateCustomer(ctx context.Context, cust *customer.Customer) error {
	return mutate(ctx, s, customers, func(c *collection[*customer.Customer]) error {
		cust.ID = s.newID()
		cust.RegistrationDate = s.now()
		cust.TotalPurchases = 0
		cust.LastVisit = nil
		c.put(cust)

		return nil
	})
}

// UpdateCustomer keeps the stored purchase aggregates; only checkout moves them.
func (s *Store) UpdateCustomer(ctx context.Context, cust *customer.Customer) error {
	return mutate(ctx, s, customers, func(c *collection[*customer.Customer]) error {
		existing, ok := c.get(cust.ID)
		if !ok {
			return customer.ErrNotFound
		}

		cust.RegistrationDate = existing.RegistrationDate
		cust.TotalPurchases = existing.TotalPurchases
		cust.LastVisit = existing.LastVisit
		c.put(cust)

		return nil
	})
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	return mutate(ctx, s, customers, func(c *collection[*customer.Customer]) error {
		if !c.remove(id) {
			return customer.ErrNotFound
		}

		return nil
	})
}
