package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

var transactions = collectionDef[*transaction.Transaction]{
	key:      KeyTransactions,
	id:       func(t *transaction.Transaction) string { return t.ID },
	defaults: defaultTransactions,
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*transaction.Transaction, error) {
	c, err := read(ctx, s, transactions)
	if err != nil {
		return nil, err
	}

	t, ok := c.get(id)
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return t, nil
}

// ListTransactions returns matching transactions newest first. Sales recorded
// at the same instant keep their insertion order.
func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	c, err := read(ctx, s, transactions)
	if err != nil {
		return nil, err
	}

	out := make([]*transaction.Transaction, 0, c.size())

	for _, t := range c.values() {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}

	slices.SortStableFunc(out, func(a, b *transaction.Transaction) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}
