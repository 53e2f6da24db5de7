package model

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the stored status of a maintenance task. Transitions are
// unrestricted and the system never moves a task to overdue on its own.
type TaskStatus string

const (
	TaskStatusScheduled  TaskStatus = "scheduled"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOverdue    TaskStatus = "overdue"
)

// TaskStatuses lists every task status in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusScheduled,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusOverdue,
}

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Priority is the urgency of a maintenance task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Task is a unit of maintenance work scheduled against a ship.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// ShipID references the ship the work is scheduled on.
	ShipID string `json:"shipId"`

	// ShipName is copied from the ship when the task is created. Renaming
	// the ship later does not change it.
	ShipName string `json:"shipName"`

	Status         TaskStatus `json:"status"`
	Priority       Priority   `json:"priority"`
	AssignedTo     string     `json:"assignedTo"`
	DueDate        time.Time  `json:"dueDate"`
	EstimatedHours float64    `json:"estimatedHours"`
}

// TaskInput carries every task field except the generated ID.
type TaskInput struct {
	Title          string
	Description    string
	ShipID         string
	ShipName       string
	Status         TaskStatus
	Priority       Priority
	AssignedTo     string
	DueDate        time.Time
	EstimatedHours float64
}

// Validate checks the fields a task form requires before it is submitted.
func (in TaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}
	if in.ShipID == "" {
		return fmt.Errorf("task must reference a ship")
	}
	if !in.Status.Valid() {
		return fmt.Errorf("unknown task status %q", in.Status)
	}
	if !in.Priority.Valid() {
		return fmt.Errorf("unknown task priority %q", in.Priority)
	}
	if in.EstimatedHours <= 0 {
		return fmt.Errorf("estimated hours must be positive, got %v", in.EstimatedHours)
	}
	return nil
}

// TaskPatch is a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title          *string
	Description    *string
	ShipID         *string
	ShipName       *string
	Status         *TaskStatus
	Priority       *Priority
	AssignedTo     *string
	DueDate        *time.Time
	EstimatedHours *float64
}

// Apply merges the non-nil fields of p into t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ShipID != nil {
		t.ShipID = *p.ShipID
	}
	if p.ShipName != nil {
		t.ShipName = *p.ShipName
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.AssignedTo != nil {
		t.AssignedTo = *p.AssignedTo
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.EstimatedHours != nil {
		t.EstimatedHours = *p.EstimatedHours
	}
}

// DateLayout is the human-readable date format used in messages and views.
const DateLayout = "Jan 02, 2006"

// FormatDate renders t with DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
