package fleet

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/nhle/fleet-maintenance/internal/store"
)

// ErrPublish marks a mutation that was persisted but whose event could not
// be delivered. The store state already reflects the change.
var ErrPublish = errors.New("change saved, event not delivered")

// Options configures the collaborators shared by every store. Zero values
// fall back to the wall clock, random UUIDs and a discarding logger.
type Options struct {
	Clock  Clock
	IDs    IDGenerator
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = SystemClock
	}
	if o.IDs == nil {
		o.IDs = UUIDs
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// collection is an ordered list of entities persisted as one blob. All
// access goes through mu; callers hold it across read-modify-write.
type collection[T any] struct {
	mu    sync.Mutex
	items []T
	id    func(T) string
	kv    store.KV
	key   string

	// stored is true once the blob exists in kv, even if it holds an
	// empty list.
	stored bool
}

// load replaces the in-memory list with the persisted blob.
func (c *collection[T]) load(ctx context.Context) (bool, error) {
	items, ok, err := store.LoadList[T](ctx, c.kv, c.key)
	if err != nil {
		return ok, err
	}
	c.items = items
	c.stored = ok
	return ok, nil
}

// index returns the position of id, or -1. Caller holds mu.
func (c *collection[T]) index(id string) int {
	for i, it := range c.items {
		if c.id(it) == id {
			return i
		}
	}
	return -1
}

// has reports whether id is present. Caller holds mu.
func (c *collection[T]) has(id string) bool {
	return c.index(id) >= 0
}

// snapshot returns a copy of the list.
func (c *collection[T]) snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// commit persists next and, only if that succeeds, makes it current.
// Caller holds mu.
func (c *collection[T]) commit(ctx context.Context, next []T) error {
	if err := store.SaveList(ctx, c.kv, c.key, next); err != nil {
		return err
	}
	c.items = next
	c.stored = true
	return nil
}

// prepended returns a new slice with item in front of the current list.
// Caller holds mu.
func (c *collection[T]) prepended(item T) []T {
	next := make([]T, 0, len(c.items)+1)
	next = append(next, item)
	return append(next, c.items...)
}

// replaced returns a copy of the list with position i set to item.
// Caller holds mu.
func (c *collection[T]) replaced(i int, item T) []T {
	next := append([]T(nil), c.items...)
	next[i] = item
	return next
}

// removed returns a copy of the list without position i. Caller holds mu.
func (c *collection[T]) removed(i int) []T {
	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	return append(next, c.items[i+1:]...)
}
