package store

import "encoding/json"

// collection is an insertion-ordered map keyed by entity id.
type collection[T any] struct {
	order []string
	items map[string]T
	id    func(T) string
}

func newCollection[T any](items []T, id func(T) string) *collection[T] {
	c := &collection[T]{
		order: make([]string, 0, len(items)),
		items: make(map[string]T, len(items)),
		id:    id,
	}

	for _, it := range items {
		c.put(it)
	}

	return c
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

// put replaces an existing entry in place or appends a new one.
func (c *collection[T]) put(v T) {
	id := c.id(v)
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}

	c.items[id] = v
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}

	delete(c.items, id)

	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	return true
}

func (c *collection[T]) size() int {
	return len(c.order)
}

func (c *collection[T]) values() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}

	return out
}

func (c *collection[T]) encode() ([]byte, error) {
	return json.Marshal(c.values())
}
