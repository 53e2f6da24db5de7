package calendar

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fleet-maintenance/internal/keys"
	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/ui"
	"github.com/nhle/fleet-maintenance/internal/ui/render"
	"github.com/nhle/fleet-maintenance/internal/view"
)

// Model is the month browser. The cursor is a day; moving it out of the
// shown month switches to that month.
type Model struct {
	tasks  []model.Task
	today  time.Time
	cursor time.Time
	month  view.Month

	keys   *keys.KeyMap
	help   help.Model
	layout ui.Layout
}

// New creates a browser opened on the month containing start.
func New(tasks []model.Task, today, start time.Time, k *keys.KeyMap) Model {
	m := Model{
		tasks:  tasks,
		today:  today,
		keys:   k,
		help:   help.New(),
		layout: ui.NewLayout(80, 24),
	}
	m.moveTo(start)
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Left):
			m.moveTo(m.cursor.AddDate(0, 0, -1))
		case key.Matches(msg, m.keys.Right):
			m.moveTo(m.cursor.AddDate(0, 0, 1))
		case key.Matches(msg, m.keys.Up):
			m.moveTo(m.cursor.AddDate(0, 0, -view.GridDays))
		case key.Matches(msg, m.keys.Down):
			m.moveTo(m.cursor.AddDate(0, 0, view.GridDays))
		case key.Matches(msg, m.keys.PrevMonth):
			y, mo := m.month.Prev()
			m.moveTo(time.Date(y, mo, 1, 0, 0, 0, 0, m.today.Location()))
		case key.Matches(msg, m.keys.NextMonth):
			y, mo := m.month.Next()
			m.moveTo(time.Date(y, mo, 1, 0, 0, 0, 0, m.today.Location()))
		case key.Matches(msg, m.keys.Today):
			m.moveTo(m.today)
		}
	}
	return m, nil
}

// moveTo puts the cursor on d and rebuilds the grid if d is in another
// month.
func (m *Model) moveTo(d time.Time) {
	y, mo, day := d.Date()
	m.cursor = time.Date(y, mo, day, 0, 0, 0, 0, m.today.Location())
	if m.month.Year != y || m.month.Month != mo {
		m.month = view.BuildMonth(y, mo, m.today, m.tasks)
	}
}

// Month returns the grid currently shown.
func (m Model) Month() view.Month {
	return m.month
}

// Cursor returns the selected day.
func (m Model) Cursor() time.Time {
	return m.cursor
}

// Selected returns the grid cell under the cursor.
func (m Model) Selected() view.Day {
	return m.month.Days[m.cursorIndex()]
}

func (m Model) cursorIndex() int {
	for i, d := range m.month.Days {
		if d.Date.Equal(m.cursor) {
			return i
		}
	}
	return 0
}

// View renders the grid beside the agenda of the selected day.
func (m Model) View() string {
	header := m.layout.RenderHeader("Maintenance calendar",
		fmt.Sprintf("%d tasks this month", m.monthTaskCount()))

	grid := render.Calendar(m.month, m.cursorIndex())
	agenda := render.Agenda(m.Selected())
	content := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(4).Render(grid),
		agenda,
	)
	content = lipgloss.NewStyle().
		Height(m.layout.ContentHeight()).
		Padding(1, 2).
		Render(content)

	return m.layout.RenderWithFrame(header, content, m.layout.RenderStatusBar(m.help.View(m.keys)))
}

func (m Model) monthTaskCount() int {
	n := 0
	for _, d := range m.month.Days {
		if d.InMonth {
			n += len(d.Tasks)
		}
	}
	return n
}
