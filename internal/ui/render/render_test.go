package render_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/theme"
	"github.com/nhle/fleet-maintenance/internal/ui/render"
	"github.com/nhle/fleet-maintenance/internal/view"
)

func TestMain(m *testing.M) {
	theme.Plain()
	os.Exit(m.Run())
}

func day(d int) time.Time {
	return time.Date(2024, 4, d, 0, 0, 0, 0, time.UTC)
}

var (
	voyager = model.Ship{
		ID:              "ship-001",
		Name:            "Oceanic Voyager",
		Type:            "Cargo Ship",
		Year:            2018,
		Status:          model.ShipStatusOperational,
		NextMaintenance: day(30),
		PendingTasks:    3,
		Captain:         "Capt. Sarah Chen",
	}
	engine = model.Task{
		ID:             "task-001",
		Title:          "Engine Inspection",
		ShipID:         "ship-001",
		ShipName:       "Oceanic Voyager",
		Status:         model.TaskStatusScheduled,
		Priority:       model.PriorityHigh,
		AssignedTo:     "John Smith",
		DueDate:        day(20),
		EstimatedHours: 8,
	}
)

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestShips(t *testing.T) {
	assertContains(t, render.Ships([]model.Ship{voyager}),
		"ship-001", "Oceanic Voyager", "operational", "Apr 30, 2024", "Capt. Sarah Chen")
	assertContains(t, render.Ships(nil), "No ships found.")
}

func TestTasks(t *testing.T) {
	assertContains(t, render.Tasks([]model.Task{engine}),
		"task-001", "Engine Inspection", "high", "Apr 20, 2024", "8")
	assertContains(t, render.Tasks(nil), "No tasks found.")
}

func TestShip_Detail(t *testing.T) {
	out := render.Ship(voyager, []model.Task{engine})
	assertContains(t, out, "Oceanic Voyager", "Cargo Ship", "2018", "Apr 30, 2024", "Engine Inspection")
}

func TestNotifications(t *testing.T) {
	out := render.Notifications([]model.Notification{{
		ID:        "n1",
		Title:     "Task Created",
		Message:   `"Engine Inspection" has been scheduled for Apr 20, 2024.`,
		CreatedAt: day(15),
		Type:      model.NotificationInfo,
	}})
	assertContains(t, out, "•", "Task Created", "Engine Inspection", "n1")
	assertContains(t, render.Notifications(nil), "No notifications.")
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, 4, 15, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{engine}
	st := view.Summarize([]model.Ship{voyager}, tasks, now)
	up, over := view.Partition(tasks, now, view.DashboardPreview)

	out := render.Dashboard(st, up, over, 2)
	assertContains(t, out, "Total ships:", "Unread notifications:", "Upcoming maintenance", "Engine Inspection", "No tasks found.")
}

func TestCalendar(t *testing.T) {
	m := view.BuildMonth(2024, time.April, day(15), []model.Task{engine})
	out := render.Calendar(m, -1)
	assertContains(t, out, "April 2024", "Sun", "Sat", "20 (1)")

	lines := strings.Split(out, "\n")
	if got := len(lines); got != 2+view.GridWeeks {
		t.Errorf("calendar has %d lines, want %d", got, 2+view.GridWeeks)
	}
}

func TestAgenda(t *testing.T) {
	m := view.BuildMonth(2024, time.April, day(15), []model.Task{engine})
	assertContains(t, render.MonthAgenda(m), "Saturday, Apr 20, 2024", "Engine Inspection", "Oceanic Voyager")

	empty := view.BuildMonth(2024, time.June, day(15), []model.Task{engine})
	assertContains(t, render.MonthAgenda(empty), "No maintenance scheduled this month.")
}
