package fleet_test

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/fleet-maintenance/internal/event"
	"github.com/nhle/fleet-maintenance/internal/fleet"
	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/store"
	"github.com/nhle/fleet-maintenance/tests/testutil"
)

// harness wires the three stores to one bus the way the app does.
type harness struct {
	kv    store.KV
	clock *testutil.StubClock
	ships *fleet.ShipStore
	tasks *fleet.TaskStore
	notes *fleet.NotificationStore
}

func newHarness(t *testing.T, kv store.KV) *harness {
	t.Helper()
	ctx := context.Background()
	clock := testutil.FixedClock()
	bus := event.NewBus()

	notes, err := fleet.NewNotificationStore(ctx, kv, fleet.Options{
		Clock: clock,
		IDs:   testutil.NewPrefixedIDGenerator("note"),
	})
	if err != nil {
		t.Fatalf("NewNotificationStore() error = %v", err)
	}
	bus.Subscribe(fleet.NewNotifier(notes).Handle)

	ships, err := fleet.NewShipStore(ctx, kv, bus, fleet.Options{IDs: testutil.NewPrefixedIDGenerator("ship")})
	if err != nil {
		t.Fatalf("NewShipStore() error = %v", err)
	}
	tasks, err := fleet.NewTaskStore(ctx, kv, bus, fleet.Options{IDs: testutil.NewPrefixedIDGenerator("task")})
	if err != nil {
		t.Fatalf("NewTaskStore() error = %v", err)
	}

	return &harness{kv: kv, clock: clock, ships: ships, tasks: tasks, notes: notes}
}

func shipInput(name string) model.ShipInput {
	return model.ShipInput{
		Name:            name,
		Type:            "Cargo Ship",
		Year:            2018,
		Status:          model.ShipStatusOperational,
		LastInspection:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		NextMaintenance: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		PendingTasks:    3,
		Captain:         "Capt. Sarah Chen",
	}
}

func taskInput(ship model.Ship, title string, due time.Time) model.TaskInput {
	return model.TaskInput{
		Title:          title,
		Description:    "Routine work on " + ship.Name,
		ShipID:         ship.ID,
		ShipName:       ship.Name,
		Status:         model.TaskStatusScheduled,
		Priority:       model.PriorityMedium,
		AssignedTo:     "John Smith",
		DueDate:        due,
		EstimatedHours: 4,
	}
}

// failingPublisher rejects every event.
type failingPublisher struct{ err error }

func (p failingPublisher) Publish(context.Context, event.Event) error { return p.err }
