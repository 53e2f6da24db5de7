// Package view holds pure projections over snapshots of the ship and task
// lists. Nothing here mutates its input.
package view

import (
	"strings"

	"github.com/nhle/fleet-maintenance/internal/model"
)

// All is the filter value that matches every status or priority.
const All = "all"

func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

// SearchShips keeps ships whose name or type contains q, ignoring case.
// An empty q keeps everything.
func SearchShips(ships []model.Ship, q string) []model.Ship {
	q = strings.ToLower(q)
	out := make([]model.Ship, 0, len(ships))
	for _, s := range ships {
		if containsFold(s.Name, q) || containsFold(s.Type, q) {
			out = append(out, s)
		}
	}
	return out
}

// SearchTasks keeps tasks whose title, description or ship name contains q,
// ignoring case. An empty q keeps everything.
func SearchTasks(tasks []model.Task, q string) []model.Task {
	q = strings.ToLower(q)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if containsFold(t.Title, q) || containsFold(t.Description, q) || containsFold(t.ShipName, q) {
			out = append(out, t)
		}
	}
	return out
}

// FilterShipsByStatus keeps ships whose status equals status, or every ship
// when status is All.
func FilterShipsByStatus(ships []model.Ship, status string) []model.Ship {
	out := make([]model.Ship, 0, len(ships))
	for _, s := range ships {
		if status == All || string(s.Status) == status {
			out = append(out, s)
		}
	}
	return out
}

// FilterTasksByStatus keeps tasks whose status equals status, or every task
// when status is All.
func FilterTasksByStatus(tasks []model.Task, status string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if status == All || string(t.Status) == status {
			out = append(out, t)
		}
	}
	return out
}

// FilterTasksByPriority keeps tasks whose priority equals priority, or every
// task when priority is All.
func FilterTasksByPriority(tasks []model.Task, priority string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if priority == All || string(t.Priority) == priority {
			out = append(out, t)
		}
	}
	return out
}

// ShipQuery is the ship inventory's search box and status dropdown.
type ShipQuery struct {
	Search string
	Status string
}

// Apply runs the search and status filter together.
func (q ShipQuery) Apply(ships []model.Ship) []model.Ship {
	return FilterShipsByStatus(SearchShips(ships, q.Search), orAll(q.Status))
}

// TaskQuery is the task list's search box and status/priority dropdowns.
type TaskQuery struct {
	Search   string
	Status   string
	Priority string
}

// Apply runs the search, status and priority filters together.
func (q TaskQuery) Apply(tasks []model.Task) []model.Task {
	out := SearchTasks(tasks, q.Search)
	out = FilterTasksByStatus(out, orAll(q.Status))
	return FilterTasksByPriority(out, orAll(q.Priority))
}

func orAll(v string) string {
	if v == "" {
		return All
	}
	return v
}
