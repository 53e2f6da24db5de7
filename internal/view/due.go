package view

import (
	"slices"
	"time"

	"github.com/nhle/fleet-maintenance/internal/model"
)

// DashboardPreview is how many upcoming and overdue tasks the dashboard
// shows.
const DashboardPreview = 5

// Partition splits the unfinished tasks around now. Upcoming tasks are due
// at or after now, soonest first. Overdue tasks are due before now, sorted
// by due date descending. Completed tasks appear in neither. The stored status is
// not consulted beyond completion, so a task marked overdue but due later
// is upcoming. limit caps each list; limit <= 0 means no cap.
func Partition(tasks []model.Task, now time.Time, limit int) (upcoming, overdue []model.Task) {
	for _, t := range tasks {
		if t.Status == model.TaskStatusCompleted {
			continue
		}
		if t.DueDate.Before(now) {
			overdue = append(overdue, t)
		} else {
			upcoming = append(upcoming, t)
		}
	}

	slices.SortStableFunc(upcoming, func(a, b model.Task) int {
		return a.DueDate.Compare(b.DueDate)
	})
	slices.SortStableFunc(overdue, func(a, b model.Task) int {
		return b.DueDate.Compare(a.DueDate)
	})

	return capped(upcoming, limit), capped(overdue, limit)
}

// IsPastDue reports whether t is unfinished and due before now.
func IsPastDue(t model.Task, now time.Time) bool {
	return t.Status != model.TaskStatusCompleted && t.DueDate.Before(now)
}

func capped(tasks []model.Task, limit int) []model.Task {
	if limit > 0 && len(tasks) > limit {
		return tasks[:limit]
	}
	return tasks
}
