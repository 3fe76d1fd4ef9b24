package database

import (
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryCollection is a mutex guarded slice standing in for a mongo
// collection in tests. Documents are returned by value.
type MemoryCollection[T any] struct {
	mu    sync.Mutex
	items []T
	id    func(*T) primitive.ObjectID
}

func NewMemoryCollection[T any](id func(*T) primitive.ObjectID) *MemoryCollection[T] {
	return &MemoryCollection[T]{id: id}
}

func (c *MemoryCollection[T]) index(id primitive.ObjectID) int {
	return slices.IndexFunc(c.items, func(item T) bool { return c.id(&item) == id })
}

func (c *MemoryCollection[T]) Insert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

func (c *MemoryCollection[T]) Find(id primitive.ObjectID) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	return c.items[i], nil
}

// FindFirst returns the first document match accepts.
func (c *MemoryCollection[T]) FindFirst(match func(*T) bool) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if match(&c.items[i]) {
			return c.items[i], nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// Filter returns the matching documents sorted stably with cmp. A nil
// match keeps everything, a nil cmp keeps insertion order.
func (c *MemoryCollection[T]) Filter(match func(*T) bool, cmp func(a, b T) int) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, 0, len(c.items))
	for i := range c.items {
		if match == nil || match(&c.items[i]) {
			out = append(out, c.items[i])
		}
	}
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// Update applies fn to the stored document under the lock.
func (c *MemoryCollection[T]) Update(id primitive.ObjectID, fn func(*T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	fn(&c.items[i])
	return c.items[i], nil
}

// Upsert updates the first match with fn or inserts the result of fn on
// a zero document.
func (c *MemoryCollection[T]) Upsert(match func(*T) bool, fn func(*T)) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if match(&c.items[i]) {
			fn(&c.items[i])
			return c.items[i]
		}
	}
	var item T
	fn(&item)
	c.items = append(c.items, item)
	return item
}

func (c *MemoryCollection[T]) Delete(id primitive.ObjectID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return ErrNotFound
	}
	c.items = slices.Delete(c.items, i, i+1)
	return nil
}

func (c *MemoryCollection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// ApplyUpdate applies $set and $unset style changes to doc by round
// tripping it through bson.
func ApplyUpdate[T any](doc *T, set, unset bson.M) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return err
	}
	for k, v := range set {
		m[k] = v
	}
	for k := range unset {
		delete(m, k)
	}
	if raw, err = bson.Marshal(m); err != nil {
		return err
	}
	var next T
	if err := bson.Unmarshal(raw, &next); err != nil {
		return err
	}
	*doc = next
	return nil
}
