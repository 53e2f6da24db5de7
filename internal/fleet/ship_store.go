package fleet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nhle/fleet-maintenance/internal/event"
	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/store"
)

// ShipStore owns the fleet's ship list. Every successful mutation persists
// the whole list and publishes one event. A mutation error wrapping
// ErrPublish means the list was saved and only the event was lost.
type ShipStore struct {
	ships collection[model.Ship]
	pub   event.Publisher
	ids   IDGenerator
	log   *slog.Logger
}

// NewShipStore loads the persisted ship list from kv. A malformed blob is
// returned as an error.
func NewShipStore(ctx context.Context, kv store.KV, pub event.Publisher, opts Options) (*ShipStore, error) {
	opts = opts.withDefaults()
	s := &ShipStore{
		ships: collection[model.Ship]{
			id:  func(sh model.Ship) string { return sh.ID },
			kv:  kv,
			key: store.KeyShips,
		},
		pub: pub,
		ids: opts.IDs,
		log: opts.Logger.With("store", "ships"),
	}
	if _, err := s.ships.load(ctx); err != nil {
		return nil, fmt.Errorf("loading ships: %w", err)
	}
	return s, nil
}

// List returns the ships, most recently added first.
func (s *ShipStore) List() []model.Ship {
	return s.ships.snapshot()
}

// Get returns the ship with the given ID.
func (s *ShipStore) Get(id string) (model.Ship, bool) {
	s.ships.mu.Lock()
	defer s.ships.mu.Unlock()
	if i := s.ships.index(id); i >= 0 {
		return s.ships.items[i], true
	}
	return model.Ship{}, false
}

// Seed stores ships, keeping their IDs, when no ship list has ever been
// persisted. A list emptied by deletes counts as stored, so Seed does
// nothing then. It publishes no events.
func (s *ShipStore) Seed(ctx context.Context, ships []model.Ship) (bool, error) {
	s.ships.mu.Lock()
	defer s.ships.mu.Unlock()
	if s.ships.stored {
		return false, nil
	}
	if err := s.ships.commit(ctx, append([]model.Ship(nil), ships...)); err != nil {
		return false, fmt.Errorf("seeding ships: %w", err)
	}
	return true, nil
}

// Add creates a ship with a fresh ID and puts it at the head of the list.
func (s *ShipStore) Add(ctx context.Context, in model.ShipInput) (model.Ship, error) {
	ship, err := s.add(ctx, in)
	if err != nil {
		return model.Ship{}, err
	}
	s.log.Debug("ship added", "id", ship.ID, "name", ship.Name)

	err = s.publish(ctx, event.Event{Kind: event.ShipAdded, EntityID: ship.ID, Name: ship.Name})
	return ship, err
}

func (s *ShipStore) add(ctx context.Context, in model.ShipInput) (model.Ship, error) {
	s.ships.mu.Lock()
	defer s.ships.mu.Unlock()

	id, err := newID(s.ids, s.ships.has)
	if err != nil {
		return model.Ship{}, fmt.Errorf("adding ship %q: %w", in.Name, err)
	}

	ship := model.Ship{
		ID:              id,
		Name:            in.Name,
		Type:            in.Type,
		Year:            in.Year,
		Status:          in.Status,
		LastInspection:  in.LastInspection,
		NextMaintenance: in.NextMaintenance,
		PendingTasks:    in.PendingTasks,
		Captain:         in.Captain,
	}
	if err := s.ships.commit(ctx, s.ships.prepended(ship)); err != nil {
		return model.Ship{}, fmt.Errorf("adding ship %q: %w", in.Name, err)
	}
	return ship, nil
}

// Update merges patch into the ship with the given ID. An unknown ID is a
// no-op. Field values are not validated.
func (s *ShipStore) Update(ctx context.Context, id string, patch model.ShipPatch) error {
	prevName, found, err := s.update(ctx, id, patch)
	if err != nil || !found {
		return err
	}
	s.log.Debug("ship updated", "id", id, "name", prevName)

	return s.publish(ctx, event.Event{Kind: event.ShipUpdated, EntityID: id, Name: prevName})
}

func (s *ShipStore) update(ctx context.Context, id string, patch model.ShipPatch) (string, bool, error) {
	s.ships.mu.Lock()
	defer s.ships.mu.Unlock()

	i := s.ships.index(id)
	if i < 0 {
		return "", false, nil
	}
	ship := s.ships.items[i]
	prevName := ship.Name
	patch.Apply(&ship)
	ship.ID = id

	if err := s.ships.commit(ctx, s.ships.replaced(i, ship)); err != nil {
		return "", false, fmt.Errorf("updating ship %s: %w", id, err)
	}
	return prevName, true, nil
}

// Delete removes the ship with the given ID. Tasks that reference it are
// left in place. An unknown ID is a no-op.
func (s *ShipStore) Delete(ctx context.Context, id string) error {
	name, found, err := s.delete(ctx, id)
	if err != nil || !found {
		return err
	}
	s.log.Debug("ship deleted", "id", id, "name", name)

	return s.publish(ctx, event.Event{Kind: event.ShipDeleted, EntityID: id, Name: name})
}

func (s *ShipStore) delete(ctx context.Context, id string) (string, bool, error) {
	s.ships.mu.Lock()
	defer s.ships.mu.Unlock()

	i := s.ships.index(id)
	if i < 0 {
		return "", false, nil
	}
	name := s.ships.items[i].Name
	if err := s.ships.commit(ctx, s.ships.removed(i)); err != nil {
		return "", false, fmt.Errorf("deleting ship %s: %w", id, err)
	}
	return name, true, nil
}

func (s *ShipStore) publish(ctx context.Context, e event.Event) error {
	if err := s.pub.Publish(ctx, e); err != nil {
		return fmt.Errorf("%w: %s for %s: %w", ErrPublish, e.Kind, e.EntityID, err)
	}
	return nil
}
