package fleet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nhle/fleet-maintenance/internal/event"
	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/store"
)

// TaskStore owns the maintenance task list. Every successful mutation
// persists the whole list and publishes one event. A mutation error
// wrapping ErrPublish means the list was saved and only the event was
// lost. Concurrent writers to the same task are not detected; the last
// write wins.
type TaskStore struct {
	tasks collection[model.Task]
	pub   event.Publisher
	ids   IDGenerator
	log   *slog.Logger
}

// NewTaskStore loads the persisted task list from kv. A malformed blob is
// returned as an error.
func NewTaskStore(ctx context.Context, kv store.KV, pub event.Publisher, opts Options) (*TaskStore, error) {
	opts = opts.withDefaults()
	s := &TaskStore{
		tasks: collection[model.Task]{
			id:  func(t model.Task) string { return t.ID },
			kv:  kv,
			key: store.KeyTasks,
		},
		pub: pub,
		ids: opts.IDs,
		log: opts.Logger.With("store", "tasks"),
	}
	if _, err := s.tasks.load(ctx); err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return s, nil
}

// List returns the tasks, most recently added first.
func (s *TaskStore) List() []model.Task {
	return s.tasks.snapshot()
}

// Get returns the task with the given ID.
func (s *TaskStore) Get(id string) (model.Task, bool) {
	s.tasks.mu.Lock()
	defer s.tasks.mu.Unlock()
	if i := s.tasks.index(id); i >= 0 {
		return s.tasks.items[i], true
	}
	return model.Task{}, false
}

// ForShip returns the tasks scheduled against shipID in list order.
func (s *TaskStore) ForShip(shipID string) []model.Task {
	var out []model.Task
	for _, t := range s.List() {
		if t.ShipID == shipID {
			out = append(out, t)
		}
	}
	return out
}

// Seed stores tasks, keeping their IDs, when no task list has ever been
// persisted. A list emptied by deletes counts as stored, so Seed does
// nothing then. It publishes no events.
func (s *TaskStore) Seed(ctx context.Context, tasks []model.Task) (bool, error) {
	s.tasks.mu.Lock()
	defer s.tasks.mu.Unlock()
	if s.tasks.stored {
		return false, nil
	}
	if err := s.tasks.commit(ctx, append([]model.Task(nil), tasks...)); err != nil {
		return false, fmt.Errorf("seeding tasks: %w", err)
	}
	return true, nil
}

// Add creates a task with a fresh ID and puts it at the head of the list.
// in.ShipName is stored as given.
func (s *TaskStore) Add(ctx context.Context, in model.TaskInput) (model.Task, error) {
	task, err := s.add(ctx, in)
	if err != nil {
		return model.Task{}, err
	}
	s.log.Debug("task added", "id", task.ID, "title", task.Title, "ship", task.ShipID)

	err = s.publish(ctx, event.Event{
		Kind:     event.TaskAdded,
		EntityID: task.ID,
		Name:     task.Title,
		DueDate:  task.DueDate,
	})
	return task, err
}

func (s *TaskStore) add(ctx context.Context, in model.TaskInput) (model.Task, error) {
	s.tasks.mu.Lock()
	defer s.tasks.mu.Unlock()

	id, err := newID(s.ids, s.tasks.has)
	if err != nil {
		return model.Task{}, fmt.Errorf("adding task %q: %w", in.Title, err)
	}

	task := model.Task{
		ID:             id,
		Title:          in.Title,
		Description:    in.Description,
		ShipID:         in.ShipID,
		ShipName:       in.ShipName,
		Status:         in.Status,
		Priority:       in.Priority,
		AssignedTo:     in.AssignedTo,
		DueDate:        in.DueDate,
		EstimatedHours: in.EstimatedHours,
	}
	if err := s.tasks.commit(ctx, s.tasks.prepended(task)); err != nil {
		return model.Task{}, fmt.Errorf("adding task %q: %w", in.Title, err)
	}
	return task, nil
}

// Update merges patch into the task with the given ID. An unknown ID is a
// no-op.
func (s *TaskStore) Update(ctx context.Context, id string, patch model.TaskPatch) error {
	prev, found, err := s.modify(ctx, id, patch.Apply)
	if err != nil || !found {
		return err
	}
	s.log.Debug("task updated", "id", id, "title", prev.Title)

	return s.publish(ctx, event.Event{Kind: event.TaskUpdated, EntityID: id, Name: prev.Title})
}

// Reschedule moves the task's due date. The date is not required to be in
// the future. An unknown ID is a no-op.
func (s *TaskStore) Reschedule(ctx context.Context, id string, due time.Time) error {
	prev, found, err := s.modify(ctx, id, func(t *model.Task) { t.DueDate = due })
	if err != nil || !found {
		return err
	}
	s.log.Debug("task rescheduled", "id", id, "due", due.Format(time.DateOnly))

	return s.publish(ctx, event.Event{
		Kind:     event.TaskRescheduled,
		EntityID: id,
		Name:     prev.Title,
		DueDate:  due,
	})
}

// UpdateStatus sets the task's status. Any status may follow any other.
// An unknown ID is a no-op.
func (s *TaskStore) UpdateStatus(ctx context.Context, id string, status model.TaskStatus) error {
	prev, found, err := s.modify(ctx, id, func(t *model.Task) { t.Status = status })
	if err != nil || !found {
		return err
	}
	s.log.Debug("task status changed", "id", id, "from", prev.Status, "to", status)

	return s.publish(ctx, event.Event{
		Kind:     event.TaskStatusChanged,
		EntityID: id,
		Name:     prev.Title,
		Status:   status,
	})
}

// modify applies fn to a copy of the task and persists it. It returns the
// task as it was before fn ran.
func (s *TaskStore) modify(ctx context.Context, id string, fn func(*model.Task)) (model.Task, bool, error) {
	s.tasks.mu.Lock()
	defer s.tasks.mu.Unlock()

	i := s.tasks.index(id)
	if i < 0 {
		return model.Task{}, false, nil
	}
	prev := s.tasks.items[i]
	task := prev
	fn(&task)
	task.ID = id

	if err := s.tasks.commit(ctx, s.tasks.replaced(i, task)); err != nil {
		return model.Task{}, false, fmt.Errorf("updating task %s: %w", id, err)
	}
	return prev, true, nil
}

// Delete removes the task with the given ID. An unknown ID is a no-op.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	title, found, err := s.delete(ctx, id)
	if err != nil || !found {
		return err
	}
	s.log.Debug("task deleted", "id", id, "title", title)

	return s.publish(ctx, event.Event{Kind: event.TaskDeleted, EntityID: id, Name: title})
}

func (s *TaskStore) delete(ctx context.Context, id string) (string, bool, error) {
	s.tasks.mu.Lock()
	defer s.tasks.mu.Unlock()

	i := s.tasks.index(id)
	if i < 0 {
		return "", false, nil
	}
	title := s.tasks.items[i].Title
	if err := s.tasks.commit(ctx, s.tasks.removed(i)); err != nil {
		return "", false, fmt.Errorf("deleting task %s: %w", id, err)
	}
	return title, true, nil
}

func (s *TaskStore) publish(ctx context.Context, e event.Event) error {
	if err := s.pub.Publish(ctx, e); err != nil {
		return fmt.Errorf("%w: %s for %s: %w", ErrPublish, e.Kind, e.EntityID, err)
	}
	return nil
}
