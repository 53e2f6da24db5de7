// Package render turns fleet data into terminal text for the CLI.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/theme"
	"github.com/nhle/fleet-maintenance/internal/view"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(theme.ColorGray)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return model.FormatDate(t)
}

// Ships renders ships as a table, one row per ship in list order.
func Ships(ships []model.Ship) string {
	if len(ships) == 0 {
		return labelStyle.Render("No ships found.")
	}
	t := newTable("ID", "NAME", "TYPE", "YEAR", "STATUS", "NEXT MAINTENANCE", "PENDING", "CAPTAIN")
	for _, s := range ships {
		t.Row(
			s.ID,
			s.Name,
			s.Type,
			strconv.Itoa(s.Year),
			theme.ShipStatusStyle(string(s.Status)).Render(string(s.Status)),
			date(s.NextMaintenance),
			strconv.Itoa(s.PendingTasks),
			s.Captain,
		)
	}
	return t.Render()
}

// Tasks renders tasks as a table, one row per task in list order.
func Tasks(tasks []model.Task) string {
	if len(tasks) == 0 {
		return labelStyle.Render("No tasks found.")
	}
	t := newTable("ID", "TITLE", "SHIP", "STATUS", "PRIORITY", "ASSIGNED TO", "DUE", "HOURS")
	for _, task := range tasks {
		t.Row(
			task.ID,
			task.Title,
			task.ShipName,
			theme.TaskStatusStyle(string(task.Status)).Render(string(task.Status)),
			theme.PriorityStyle(string(task.Priority)).Render(string(task.Priority)),
			task.AssignedTo,
			date(task.DueDate),
			strconv.FormatFloat(task.EstimatedHours, 'f', -1, 64),
		)
	}
	return t.Render()
}

// Ship renders the detail view of one ship followed by its tasks.
func Ship(s model.Ship, tasks []model.Task) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Name))
	b.WriteString("  ")
	b.WriteString(theme.ShipStatusStyle(string(s.Status)).Render(string(s.Status)))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-18s", label+":")), value)
	}
	field("ID", s.ID)
	field("Type", s.Type)
	field("Year", strconv.Itoa(s.Year))
	field("Captain", s.Captain)
	field("Last inspection", date(s.LastInspection))
	field("Next maintenance", date(s.NextMaintenance))
	field("Pending tasks", strconv.Itoa(s.PendingTasks))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Maintenance tasks"))
	b.WriteString("\n")
	b.WriteString(Tasks(tasks))
	return b.String()
}

// Notifications renders the feed newest first, marking unread entries.
func Notifications(notes []model.Notification) string {
	if len(notes) == 0 {
		return labelStyle.Render("No notifications.")
	}
	var b strings.Builder
	for i, n := range notes {
		if i > 0 {
			b.WriteString("\n")
		}
		marker := " "
		if !n.Read {
			marker = "•"
		}
		fmt.Fprintf(&b, "%s %s %s  %s\n",
			marker,
			theme.NotificationStyle(string(n.Type)).Render(fmt.Sprintf("%-7s", n.Type)),
			titleStyle.Render(n.Title),
			labelStyle.Render(n.CreatedAt.Local().Format("Jan 02, 2006 15:04")),
		)
		fmt.Fprintf(&b, "          %s\n", n.Message)
		fmt.Fprintf(&b, "          %s\n", labelStyle.Render(n.ID))
	}
	return b.String()
}

// Dashboard renders the summary counters, the unread count and the upcoming
// and overdue previews.
func Dashboard(st view.Stats, upcoming, overdue []model.Task, unread int) string {
	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("Fleet dashboard"))
	b.WriteString("\n\n")

	counters := []struct {
		label string
		value int
	}{
		{"Total ships", st.TotalShips},
		{"Active tasks", st.ActiveTasks},
		{"Overdue tasks", st.OverdueTasks},
		{"Completed tasks", st.CompletedTasks},
		{"Unread notifications", unread},
	}
	for _, c := range counters {
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render(fmt.Sprintf("%-22s", c.label+":")), c.value)
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Ships by status"))
	b.WriteString("\n")
	for _, s := range model.ShipStatuses {
		fmt.Fprintf(&b, "  %s %d\n",
			theme.ShipStatusStyle(string(s)).Render(fmt.Sprintf("%-12s", s)),
			st.ShipsByStatus[s])
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Upcoming maintenance"))
	b.WriteString("\n")
	b.WriteString(Tasks(upcoming))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Overdue maintenance"))
	b.WriteString("\n")
	b.WriteString(Tasks(overdue))
	return b.String()
}
