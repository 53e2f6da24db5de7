package fleet_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/nhle/fleet-maintenance/internal/event"
	"github.com/nhle/fleet-maintenance/internal/fleet"
	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/store"
	"github.com/nhle/fleet-maintenance/tests/testutil"
)

func newNotes(t *testing.T, kv store.KV, clock fleet.Clock) *fleet.NotificationStore {
	t.Helper()
	s, err := fleet.NewNotificationStore(context.Background(), kv, fleet.Options{
		Clock: clock,
		IDs:   testutil.NewStubIDGenerator(),
	})
	if err != nil {
		t.Fatalf("NewNotificationStore() error = %v", err)
	}
	return s
}

func TestNotificationStore_AddPrependsUnread(t *testing.T) {
	ctx := context.Background()
	clock := testutil.FixedClock()
	s := newNotes(t, store.NewMemoryKV(), clock)

	first, err := s.Add(ctx, model.NotificationInput{Title: "One", Message: "first", Type: model.NotificationInfo})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	clock.Advance(time.Minute)
	second, _ := s.Add(ctx, model.NotificationInput{Title: "Two", Message: "second", Type: model.NotificationSuccess, RelatedID: "task-1"})

	if first.ID != "id-1" || second.ID != "id-2" {
		t.Errorf("ids = %s, %s", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(clock.Now()) {
		t.Errorf("CreatedAt = %v, want %v", second.CreatedAt, clock.Now())
	}

	list := s.List()
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("List() = %+v, want newest first", list)
	}
	if s.UnreadCount() != 2 {
		t.Errorf("UnreadCount() = %d, want 2", s.UnreadCount())
	}
}

func TestNotificationStore_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	s := newNotes(t, store.NewMemoryKV(), testutil.FixedClock())
	a, _ := s.Add(ctx, model.NotificationInput{Title: "A"})
	_, _ = s.Add(ctx, model.NotificationInput{Title: "B"})

	if err := s.MarkAsRead(ctx, a.ID); err != nil {
		t.Fatalf("MarkAsRead() error = %v", err)
	}
	if err := s.MarkAsRead(ctx, "missing"); err != nil {
		t.Fatalf("MarkAsRead(missing) error = %v", err)
	}
	if got := s.UnreadCount(); got != 1 {
		t.Errorf("UnreadCount() = %d, want 1", got)
	}
	unread := s.Unread()
	if len(unread) != 1 || unread[0].Title != "B" {
		t.Errorf("Unread() = %+v", unread)
	}
}

func TestNotificationStore_MarkAllAsReadIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newNotes(t, store.NewMemoryKV(), testutil.FixedClock())
	for _, title := range []string{"A", "B", "C"} {
		_, _ = s.Add(ctx, model.NotificationInput{Title: title})
	}

	if err := s.MarkAllAsRead(ctx); err != nil {
		t.Fatalf("MarkAllAsRead() error = %v", err)
	}
	once := s.List()
	if err := s.MarkAllAsRead(ctx); err != nil {
		t.Fatalf("MarkAllAsRead() error = %v", err)
	}
	if twice := s.List(); !reflect.DeepEqual(once, twice) {
		t.Errorf("second MarkAllAsRead changed state:\n%+v\n%+v", once, twice)
	}
	if s.UnreadCount() != 0 {
		t.Errorf("UnreadCount() = %d, want 0", s.UnreadCount())
	}
}

func TestNotificationStore_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	s := newNotes(t, kv, testutil.FixedClock())
	a, _ := s.Add(ctx, model.NotificationInput{Title: "A"})
	_, _ = s.Add(ctx, model.NotificationInput{Title: "B"})

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Delete(missing) error = %v", err)
	}
	if got := len(s.List()); got != 1 {
		t.Errorf("len = %d, want 1", got)
	}

	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}
	if got := len(s.List()); got != 0 {
		t.Errorf("len = %d after ClearAll, want 0", got)
	}

	reloaded := newNotes(t, kv, testutil.FixedClock())
	if got := len(reloaded.List()); got != 0 {
		t.Errorf("reloaded len = %d, want 0", got)
	}
}

func TestCompose(t *testing.T) {
	due := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		e         event.Event
		wantTitle string
		wantMsg   string
		wantType  model.NotificationType
	}{
		{event.Event{Kind: event.ShipAdded, EntityID: "s", Name: "Sea Falcon"}, "Ship Added", "Sea Falcon has been added to the fleet.", model.NotificationInfo},
		{event.Event{Kind: event.ShipUpdated, EntityID: "s", Name: "Sea Falcon"}, "Ship Updated", "Sea Falcon details have been updated.", model.NotificationInfo},
		{event.Event{Kind: event.ShipDeleted, EntityID: "s", Name: "Sea Falcon"}, "Ship Removed", "Sea Falcon has been removed from the fleet.", model.NotificationUrgent},
		{event.Event{Kind: event.TaskAdded, EntityID: "t", Name: "Oil Change", DueDate: due}, "Task Created", `"Oil Change" has been scheduled for May 05, 2024.`, model.NotificationInfo},
		{event.Event{Kind: event.TaskUpdated, EntityID: "t", Name: "Oil Change"}, "Task Updated", `"Oil Change" has been updated.`, model.NotificationInfo},
		{event.Event{Kind: event.TaskDeleted, EntityID: "t", Name: "Oil Change"}, "Task Deleted", `"Oil Change" has been deleted.`, model.NotificationUrgent},
		{event.Event{Kind: event.TaskRescheduled, EntityID: "t", Name: "Oil Change", DueDate: due}, "Task Rescheduled", `"Oil Change" has been rescheduled to May 05, 2024.`, model.NotificationInfo},
		{event.Event{Kind: event.TaskStatusChanged, EntityID: "t", Name: "Oil Change", Status: model.TaskStatusCompleted}, "Task Status Updated", `"Oil Change" is now completed.`, model.NotificationSuccess},
	}

	for _, tt := range tests {
		t.Run(string(tt.e.Kind), func(t *testing.T) {
			in, ok := fleet.Compose(tt.e)
			if !ok {
				t.Fatal("Compose() reported no notification")
			}
			if in.Title != tt.wantTitle || in.Message != tt.wantMsg || in.Type != tt.wantType {
				t.Errorf("Compose() = %+v", in)
			}
			if in.RelatedID != tt.e.EntityID {
				t.Errorf("RelatedID = %q, want %q", in.RelatedID, tt.e.EntityID)
			}
		})
	}

	if _, ok := fleet.Compose(event.Event{Kind: "unknown"}); ok {
		t.Error("Compose() produced a notification for an unknown kind")
	}
}

func TestNotifier_OnePerEvent(t *testing.T) {
	ctx := context.Background()
	s := newNotes(t, store.NewMemoryKV(), testutil.FixedClock())
	n := fleet.NewNotifier(s)

	for i, k := range event.Kinds {
		if err := n.Handle(ctx, event.Event{Kind: k, EntityID: "x", Name: "X"}); err != nil {
			t.Fatalf("Handle(%s) error = %v", k, err)
		}
		if got := len(s.List()); got != i+1 {
			t.Fatalf("after %s: notifications = %d, want %d", k, got, i+1)
		}
	}
}
