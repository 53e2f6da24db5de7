package view

import (
	"time"

	"github.com/nhle/fleet-maintenance/internal/model"
)

// Stats are the dashboard's headline counters.
type Stats struct {
	TotalShips     int
	ActiveTasks    int
	OverdueTasks   int
	CompletedTasks int
	ShipsByStatus  map[model.ShipStatus]int
	TasksByStatus  map[model.TaskStatus]int
}

// Summarize counts ships and tasks as of now. OverdueTasks uses the due
// date check from Partition, not the stored status.
func Summarize(ships []model.Ship, tasks []model.Task, now time.Time) Stats {
	st := Stats{
		TotalShips:    len(ships),
		ShipsByStatus: make(map[model.ShipStatus]int),
		TasksByStatus: make(map[model.TaskStatus]int),
	}
	for _, s := range ships {
		st.ShipsByStatus[s.Status]++
	}
	for _, t := range tasks {
		st.TasksByStatus[t.Status]++
		if t.Status == model.TaskStatusCompleted {
			st.CompletedTasks++
			continue
		}
		st.ActiveTasks++
		if t.DueDate.Before(now) {
			st.OverdueTasks++
		}
	}
	return st
}
