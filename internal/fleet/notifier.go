package fleet

import (
	"context"
	"fmt"

	"github.com/nhle/fleet-maintenance/internal/event"
	"github.com/nhle/fleet-maintenance/internal/model"
)

// Notifier turns ship and task events into notifications, one per event.
type Notifier struct {
	notes *NotificationStore
}

// NewNotifier returns a Notifier writing to notes.
func NewNotifier(notes *NotificationStore) *Notifier {
	return &Notifier{notes: notes}
}

// Handle implements event.Handler.
func (n *Notifier) Handle(ctx context.Context, e event.Event) error {
	in, ok := Compose(e)
	if !ok {
		return nil
	}
	if _, err := n.notes.Add(ctx, in); err != nil {
		return fmt.Errorf("notifying %s: %w", e.Kind, err)
	}
	return nil
}

// Compose builds the notification for e. It reports false for kinds that
// produce no notification.
func Compose(e event.Event) (model.NotificationInput, bool) {
	in := model.NotificationInput{RelatedID: e.EntityID, Type: model.NotificationInfo}

	switch e.Kind {
	case event.ShipAdded:
		in.Title = "Ship Added"
		in.Message = fmt.Sprintf("%s has been added to the fleet.", e.Name)
	case event.ShipUpdated:
		in.Title = "Ship Updated"
		in.Message = fmt.Sprintf("%s details have been updated.", e.Name)
	case event.ShipDeleted:
		in.Title = "Ship Removed"
		in.Message = fmt.Sprintf("%s has been removed from the fleet.", e.Name)
		in.Type = model.NotificationUrgent
	case event.TaskAdded:
		in.Title = "Task Created"
		in.Message = fmt.Sprintf("%q has been scheduled for %s.", e.Name, model.FormatDate(e.DueDate))
	case event.TaskUpdated:
		in.Title = "Task Updated"
		in.Message = fmt.Sprintf("%q has been updated.", e.Name)
	case event.TaskDeleted:
		in.Title = "Task Deleted"
		in.Message = fmt.Sprintf("%q has been deleted.", e.Name)
		in.Type = model.NotificationUrgent
	case event.TaskRescheduled:
		in.Title = "Task Rescheduled"
		in.Message = fmt.Sprintf("%q has been rescheduled to %s.", e.Name, model.FormatDate(e.DueDate))
	case event.TaskStatusChanged:
		in.Title = "Task Status Updated"
		in.Message = fmt.Sprintf("%q is now %s.", e.Name, e.Status)
		in.Type = StatusNotificationType(e.Status)
	default:
		return model.NotificationInput{}, false
	}
	return in, true
}

// StatusNotificationType maps a task's new status to the notification type
// announcing it.
func StatusNotificationType(s model.TaskStatus) model.NotificationType {
	switch s {
	case model.TaskStatusCompleted:
		return model.NotificationSuccess
	case model.TaskStatusOverdue:
		return model.NotificationUrgent
	default:
		return model.NotificationInfo
	}
}
