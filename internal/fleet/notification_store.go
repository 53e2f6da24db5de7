package fleet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/store"
)

// NotificationStore owns the notification feed, newest first. Other stores
// reach it only through the Notifier.
type NotificationStore struct {
	notes collection[model.Notification]
	clock Clock
	ids   IDGenerator
	log   *slog.Logger
}

// NewNotificationStore loads the persisted feed from kv.
func NewNotificationStore(ctx context.Context, kv store.KV, opts Options) (*NotificationStore, error) {
	opts = opts.withDefaults()
	s := &NotificationStore{
		notes: collection[model.Notification]{
			id:  func(n model.Notification) string { return n.ID },
			kv:  kv,
			key: store.KeyNotifications,
		},
		clock: opts.Clock,
		ids:   opts.IDs,
		log:   opts.Logger.With("store", "notifications"),
	}
	if _, err := s.notes.load(ctx); err != nil {
		return nil, fmt.Errorf("loading notifications: %w", err)
	}
	return s, nil
}

// List returns the feed, newest first.
func (s *NotificationStore) List() []model.Notification {
	return s.notes.snapshot()
}

// Unread returns the unread notifications, newest first.
func (s *NotificationStore) Unread() []model.Notification {
	var out []model.Notification
	for _, n := range s.List() {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount counts unread notifications.
func (s *NotificationStore) UnreadCount() int {
	s.notes.mu.Lock()
	defer s.notes.mu.Unlock()
	count := 0
	for _, n := range s.notes.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// Add stamps in with an ID and the current time, marks it unread and puts
// it at the head of the feed.
func (s *NotificationStore) Add(ctx context.Context, in model.NotificationInput) (model.Notification, error) {
	s.notes.mu.Lock()
	defer s.notes.mu.Unlock()

	id, err := newID(s.ids, s.notes.has)
	if err != nil {
		return model.Notification{}, fmt.Errorf("adding notification %q: %w", in.Title, err)
	}

	n := model.Notification{
		ID:        id,
		Title:     in.Title,
		Message:   in.Message,
		CreatedAt: s.clock.Now().UTC(),
		Type:      in.Type,
		RelatedID: in.RelatedID,
	}
	if err := s.notes.commit(ctx, s.notes.prepended(n)); err != nil {
		return model.Notification{}, fmt.Errorf("adding notification %q: %w", in.Title, err)
	}
	s.log.Debug("notification added", "id", n.ID, "type", n.Type, "related", n.RelatedID)
	return n, nil
}

// MarkAsRead flags one notification as read. An unknown ID is a no-op.
func (s *NotificationStore) MarkAsRead(ctx context.Context, id string) error {
	s.notes.mu.Lock()
	defer s.notes.mu.Unlock()

	i := s.notes.index(id)
	if i < 0 {
		return nil
	}
	n := s.notes.items[i]
	n.Read = true
	if err := s.notes.commit(ctx, s.notes.replaced(i, n)); err != nil {
		return fmt.Errorf("marking notification %s as read: %w", id, err)
	}
	return nil
}

// MarkAllAsRead flags every notification as read.
func (s *NotificationStore) MarkAllAsRead(ctx context.Context) error {
	s.notes.mu.Lock()
	defer s.notes.mu.Unlock()

	next := make([]model.Notification, len(s.notes.items))
	for i, n := range s.notes.items {
		n.Read = true
		next[i] = n
	}
	if err := s.notes.commit(ctx, next); err != nil {
		return fmt.Errorf("marking all notifications as read: %w", err)
	}
	return nil
}

// Delete removes one notification. An unknown ID is a no-op.
func (s *NotificationStore) Delete(ctx context.Context, id string) error {
	s.notes.mu.Lock()
	defer s.notes.mu.Unlock()

	i := s.notes.index(id)
	if i < 0 {
		return nil
	}
	if err := s.notes.commit(ctx, s.notes.removed(i)); err != nil {
		return fmt.Errorf("deleting notification %s: %w", id, err)
	}
	return nil
}

// ClearAll empties the feed.
func (s *NotificationStore) ClearAll(ctx context.Context) error {
	s.notes.mu.Lock()
	defer s.notes.mu.Unlock()

	if err := s.notes.commit(ctx, []model.Notification{}); err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}
	return nil
}
