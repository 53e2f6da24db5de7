package fleet_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nhle/fleet-maintenance/internal/event"
	"github.com/nhle/fleet-maintenance/internal/fleet"
	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/store"
)

func TestTaskStore_AddAndForShip(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, store.NewMemoryKV())
	a, _ := h.ships.Add(ctx, shipInput("Oceanic Voyager"))
	b, _ := h.ships.Add(ctx, shipInput("Northern Star"))
	due := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)

	t1, err := h.tasks.Add(ctx, taskInput(a, "Engine Inspection", due))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	_, _ = h.tasks.Add(ctx, taskInput(b, "Hull Cleaning", due))
	t3, _ := h.tasks.Add(ctx, taskInput(a, "Radar Calibration", due))

	got := h.tasks.ForShip(a.ID)
	if len(got) != 2 || got[0].ID != t3.ID || got[1].ID != t1.ID {
		t.Errorf("ForShip() = %v, want [%s %s]", got, t3.ID, t1.ID)
	}

	n := h.notes.List()[0]
	if n.Title != "Task Created" || n.Message != `"Radar Calibration" has been scheduled for Apr 20, 2024.` {
		t.Errorf("notification = %+v", n)
	}
}

func TestTaskStore_ShipNameIsSnapshot(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, store.NewMemoryKV())
	ship, _ := h.ships.Add(ctx, shipInput("Sea Falcon"))
	task, _ := h.tasks.Add(ctx, taskInput(ship, "Propeller Check", h.clock.Now()))

	renamed := "Sea Hawk"
	if err := h.ships.Update(ctx, ship.ID, model.ShipPatch{Name: &renamed}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := h.tasks.Get(task.ID)
	if got.ShipName != "Sea Falcon" {
		t.Errorf("ShipName = %q, want snapshot %q", got.ShipName, "Sea Falcon")
	}
}

func TestTaskStore_Reschedule(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, store.NewMemoryKV())
	ship, _ := h.ships.Add(ctx, shipInput("Atlantic Trader"))
	task, _ := h.tasks.Add(ctx, taskInput(ship, "Ballast Pump", h.clock.Now()))

	// Past dates are accepted.
	due := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	if err := h.tasks.Reschedule(ctx, task.ID, due); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}

	got, _ := h.tasks.Get(task.ID)
	if !got.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", got.DueDate, due)
	}
	got.DueDate = task.DueDate
	if got != task {
		t.Error("Reschedule() changed fields other than the due date")
	}

	n := h.notes.List()[0]
	if n.Type != model.NotificationInfo || n.Message != `"Ballast Pump" has been rescheduled to Dec 01, 2023.` {
		t.Errorf("notification = %+v", n)
	}
}

func TestTaskStore_UpdateStatusNotificationType(t *testing.T) {
	tests := []struct {
		status model.TaskStatus
		want   model.NotificationType
	}{
		{model.TaskStatusCompleted, model.NotificationSuccess},
		{model.TaskStatusOverdue, model.NotificationUrgent},
		{model.TaskStatusScheduled, model.NotificationInfo},
		{model.TaskStatusInProgress, model.NotificationInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			ctx := context.Background()
			h := newHarness(t, store.NewMemoryKV())
			ship, _ := h.ships.Add(ctx, shipInput("Eastern Wind"))
			task, _ := h.tasks.Add(ctx, taskInput(ship, "Generator Service", h.clock.Now()))
			before := len(h.notes.List())

			if err := h.tasks.UpdateStatus(ctx, task.ID, tt.status); err != nil {
				t.Fatalf("UpdateStatus() error = %v", err)
			}

			notes := h.notes.List()
			if len(notes) != before+1 {
				t.Fatalf("notifications = %d, want %d", len(notes), before+1)
			}
			if notes[0].Type != tt.want {
				t.Errorf("type = %q, want %q", notes[0].Type, tt.want)
			}
			got, _ := h.tasks.Get(task.ID)
			if got.Status != tt.status {
				t.Errorf("status = %q, want %q", got.Status, tt.status)
			}
		})
	}
}

func TestTaskStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, store.NewMemoryKV())
	ship, _ := h.ships.Add(ctx, shipInput("Northern Star"))
	task, _ := h.tasks.Add(ctx, taskInput(ship, "Fire Suppression Test", h.clock.Now()))

	title := "Fire Suppression Retest"
	hours := 6.5
	if err := h.tasks.Update(ctx, task.ID, model.TaskPatch{Title: &title, EstimatedHours: &hours}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := h.tasks.Get(task.ID)
	if got.Title != title || got.EstimatedHours != hours || got.AssignedTo != task.AssignedTo {
		t.Errorf("task = %+v", got)
	}
	if m := h.notes.List()[0].Message; m != `"Fire Suppression Test" has been updated.` {
		t.Errorf("update message = %q", m)
	}

	if err := h.tasks.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(h.tasks.List()) != 0 {
		t.Error("task still listed after delete")
	}
	if n := h.notes.List()[0]; n.Type != model.NotificationUrgent {
		t.Errorf("delete notification type = %q, want urgent", n.Type)
	}
}

func TestTaskStore_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, store.NewMemoryKV())
	ship, _ := h.ships.Add(ctx, shipInput("Sea Falcon"))
	_, _ = h.tasks.Add(ctx, taskInput(ship, "Anchor Winch", h.clock.Now()))
	before := len(h.notes.List())
	tasksBefore := h.tasks.List()

	title := "x"
	calls := []func() error{
		func() error { return h.tasks.Update(ctx, "nope", model.TaskPatch{Title: &title}) },
		func() error { return h.tasks.Reschedule(ctx, "nope", h.clock.Now()) },
		func() error { return h.tasks.UpdateStatus(ctx, "nope", model.TaskStatusCompleted) },
		func() error { return h.tasks.Delete(ctx, "nope") },
	}
	for i, call := range calls {
		if err := call(); err != nil {
			t.Errorf("call %d error = %v", i, err)
		}
	}

	if got := len(h.notes.List()); got != before {
		t.Errorf("notifications = %d, want %d", got, before)
	}
	if got := h.tasks.List(); len(got) != 1 || got[0] != tasksBefore[0] {
		t.Error("task list changed on unknown id")
	}
}

func TestTaskInput_Validate(t *testing.T) {
	ship := model.Ship{ID: "ship-1", Name: "Oceanic Voyager"}
	valid := taskInput(ship, "Engine Inspection", time.Now())
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid input = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*model.TaskInput)
	}{
		{"blank title", func(in *model.TaskInput) { in.Title = "  " }},
		{"no ship", func(in *model.TaskInput) { in.ShipID = "" }},
		{"bad status", func(in *model.TaskInput) { in.Status = "done" }},
		{"bad priority", func(in *model.TaskInput) { in.Priority = "critical" }},
		{"zero hours", func(in *model.TaskInput) { in.EstimatedHours = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			if err := in.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestTaskStore_PublishFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	s, err := fleet.NewTaskStore(ctx, kv, failingPublisher{err: errors.New("subscriber down")}, fleet.Options{})
	if err != nil {
		t.Fatalf("NewTaskStore() error = %v", err)
	}
	ship := model.Ship{ID: "ship-1", Name: "Oceanic Voyager"}
	due := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)

	task, err := s.Add(ctx, taskInput(ship, "Engine Inspection", due))
	if !errors.Is(err, fleet.ErrPublish) {
		t.Fatalf("Add() error = %v, want ErrPublish", err)
	}
	later := due.AddDate(0, 0, 3)
	if err := s.Reschedule(ctx, task.ID, later); !errors.Is(err, fleet.ErrPublish) {
		t.Fatalf("Reschedule() error = %v, want ErrPublish", err)
	}
	if err := s.UpdateStatus(ctx, task.ID, model.TaskStatusCompleted); !errors.Is(err, fleet.ErrPublish) {
		t.Fatalf("UpdateStatus() error = %v, want ErrPublish", err)
	}

	reopened, err := fleet.NewTaskStore(ctx, kv, event.Discard, fleet.Options{})
	if err != nil {
		t.Fatalf("NewTaskStore() error = %v", err)
	}
	got, ok := reopened.Get(task.ID)
	if !ok || !got.DueDate.Equal(later) || got.Status != model.TaskStatusCompleted {
		t.Errorf("persisted task = %+v, %v; want rescheduled and completed", got, ok)
	}
}

func TestTaskStore_BlobEncoding(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	s, err := fleet.NewTaskStore(ctx, kv, event.Discard, fleet.Options{IDs: constantIDs("task-1")})
	if err != nil {
		t.Fatalf("NewTaskStore() error = %v", err)
	}
	ship := model.Ship{ID: "ship-1", Name: "Oceanic Voyager"}
	if _, err := s.Add(ctx, taskInput(ship, "Engine Inspection", time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	raw, ok, err := kv.Get(ctx, store.KeyTasks)
	if err != nil || !ok {
		t.Fatalf("Get(%s) = %v, %v", store.KeyTasks, ok, err)
	}
	for _, want := range []string{
		`"dueDate":"2024-04-20T00:00:00Z"`,
		`"shipId":"ship-1"`,
		`"shipName":"Oceanic Voyager"`,
		`"estimatedHours":4`,
	} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("blob %s missing %s", raw, want)
		}
	}
}
