// Package event carries domain events from the entity stores to their
// subscribers without the stores knowing who listens.
package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nhle/fleet-maintenance/internal/model"
)

// Kind identifies what happened to which entity.
type Kind string

const (
	ShipAdded   Kind = "ship.added"
	ShipUpdated Kind = "ship.updated"
	ShipDeleted Kind = "ship.deleted"

	TaskAdded         Kind = "task.added"
	TaskUpdated       Kind = "task.updated"
	TaskDeleted       Kind = "task.deleted"
	TaskRescheduled   Kind = "task.rescheduled"
	TaskStatusChanged Kind = "task.status_changed"
)

// Kinds lists every event kind.
var Kinds = []Kind{
	ShipAdded, ShipUpdated, ShipDeleted,
	TaskAdded, TaskUpdated, TaskDeleted, TaskRescheduled, TaskStatusChanged,
}

// Event describes one successful ship or task mutation.
type Event struct {
	Kind     Kind
	EntityID string

	// Name is the ship name or task title as it was before the mutation.
	Name string

	// DueDate is set for task additions and reschedules.
	DueDate time.Time

	// Status is the new status for TaskStatusChanged.
	Status model.TaskStatus
}

// Publisher accepts events from the stores.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Handler reacts to a published event.
type Handler func(ctx context.Context, e Event) error

// Bus is a synchronous in-process Publisher. Handlers run in subscription
// order on the publishing goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewBus returns a Bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for every subsequent event.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers e to every handler. All handlers run even if one fails;
// their errors are joined.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers...)
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard is a Publisher that drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, Event) error { return nil }
