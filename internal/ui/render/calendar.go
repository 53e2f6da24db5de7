package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/theme"
	"github.com/nhle/fleet-maintenance/internal/view"
)

// cellWidth fits a two-digit day and a task count such as "12 (3)".
const cellWidth = 8

var weekdays = [view.GridDays]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Calendar renders the month grid. Each cell shows the day of month and,
// when tasks are due, their count. cursor is the grid index to highlight,
// or -1 for none.
func Calendar(m view.Month, cursor int) string {
	var b strings.Builder
	title := fmt.Sprintf("%s %d", m.Month, m.Year)
	b.WriteString(lipgloss.PlaceHorizontal(cellWidth*view.GridDays, lipgloss.Center, titleStyle.Render(title)))
	b.WriteString("\n")

	for _, wd := range weekdays {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", cellWidth, wd)))
	}
	b.WriteString("\n")

	for w, week := range m.Weeks() {
		for d, day := range week {
			b.WriteString(cell(day, w*view.GridDays+d == cursor))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func cell(day view.Day, selected bool) string {
	text := fmt.Sprintf("%2d", day.Date.Day())
	if n := len(day.Tasks); n > 0 {
		text += fmt.Sprintf(" (%d)", n)
	}
	text = fmt.Sprintf("%-*s", cellWidth, text)

	switch {
	case selected:
		return theme.SelectedDayStyle.Render(text)
	case !day.InMonth:
		return theme.MutedStyle.Render(text)
	case day.IsToday:
		return theme.TodayStyle.Render(text)
	default:
		return text
	}
}

// Agenda lists the tasks due on day, or a placeholder when there are none.
func Agenda(day view.Day) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(day.Date.Format("Monday, " + model.DateLayout)))
	b.WriteString("\n")
	if len(day.Tasks) == 0 {
		b.WriteString(labelStyle.Render("No maintenance scheduled."))
		return b.String()
	}
	for _, t := range day.Tasks {
		fmt.Fprintf(&b, "  %s %s  %s  %s\n",
			theme.PriorityStyle(string(t.Priority)).Render("●"),
			t.Title,
			labelStyle.Render(t.ShipName),
			theme.TaskStatusStyle(string(t.Status)).Render(string(t.Status)),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// MonthAgenda lists every in-month day that has tasks, in date order.
func MonthAgenda(m view.Month) string {
	var parts []string
	for _, day := range m.Days {
		if day.InMonth && len(day.Tasks) > 0 {
			parts = append(parts, Agenda(day))
		}
	}
	if len(parts) == 0 {
		return labelStyle.Render("No maintenance scheduled this month.")
	}
	return strings.Join(parts, "\n\n")
}
