package store

import (
	"context"

	"github.com/MrJamesThe3rd/pharmacare/internal/product"
)

var products = collectionDef[*product.Product]{
	key:      KeyProducts,
	id:       func(p *product.Product) string { return p.ID },
	defaults: defaultProducts,
}

func (s *Store) ListProducts(ctx context.Context) ([]*product.Product, error) {
	c, err := read(ctx, s, products)
	if err != nil {
		return nil, err
	}

	return c.values(), nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	c, err := read(ctx, s, products)
	if err != nil {
		return nil, err
	}

	p, ok := c.get(id)
	if !ok {
		return nil, product.ErrNotFound
	}

	return p, nil
}

// CreateProduct assigns the id and timestamps.
func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	return s.CreateProducts(ctx, []*product.Product{p})
}

// CreateProducts adds every product in a single write.
func (s *Store) CreateProducts(ctx context.Context, ps []*product.Product) error {
	return mutate(ctx, s, products, func(c *collection[*product.Product]) error {
		now := s.now()

		for _, p := range ps {
			p.ID = s.newID()
			p.CreatedAt = now
			p.UpdatedAt = now
			c.put(p)
		}

		return nil
	})
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	return mutate(ctx, s, products, func(c *collection[*product.Product]) error {
		existing, ok := c.get(p.ID)
		if !ok {
			return product.ErrNotFound
		}

		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = s.now()
		c.put(p)

		return nil
	})
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return mutate(ctx, s, products, func(c *collection[*product.Product]) error {
		if !c.remove(id) {
			return product.ErrNotFound
		}

		return nil
	})
}
