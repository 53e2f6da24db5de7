package view

import (
	"time"

	"github.com/nhle/fleet-maintenance/internal/model"
)

// Grid dimensions of a month view. Weeks start on Sunday.
const (
	GridWeeks = 6
	GridDays  = 7
	GridCells = GridWeeks * GridDays
)

// Day is one cell of the month grid.
type Day struct {
	// Date is midnight of the cell's day in the location of today.
	Date time.Time

	// InMonth is false for the leading and trailing days borrowed from the
	// neighbouring months.
	InMonth bool

	IsToday bool

	// Tasks are the tasks due on Date, in list order.
	Tasks []model.Task
}

// Month is a 6x7 calendar grid for one month.
type Month struct {
	Year  int
	Month time.Month
	Days  [GridCells]Day
}

// BuildMonth lays out the grid for month of year. Leading cells come from
// the previous month so the 1st lands on its weekday, and trailing cells
// from the next month fill the grid. A task belongs to a cell when its due
// date has the same year, month and day, read in the due date's own
// location, ignoring time of day. The result depends only on its inputs.
func BuildMonth(year int, month time.Month, today time.Time, tasks []model.Task) Month {
	loc := today.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	// Normalise year/month overflow such as month 13.
	m := Month{Year: first.Year(), Month: first.Month()}

	byDay := bucketByDate(tasks)
	for i := range GridCells {
		d := start.AddDate(0, 0, i)
		m.Days[i] = Day{
			Date:    d,
			InMonth: d.Month() == m.Month && d.Year() == m.Year,
			IsToday: sameDate(d, today),
			Tasks:   byDay[dateKey(d)],
		}
	}
	return m
}

// Prev returns the year and month before m.
func (m Month) Prev() (int, time.Month) {
	if m.Month == time.January {
		return m.Year - 1, time.December
	}
	return m.Year, m.Month - 1
}

// Next returns the year and month after m.
func (m Month) Next() (int, time.Month) {
	if m.Month == time.December {
		return m.Year + 1, time.January
	}
	return m.Year, m.Month + 1
}

// Weeks returns the grid as rows of seven days.
func (m Month) Weeks() [][]Day {
	weeks := make([][]Day, GridWeeks)
	for w := range GridWeeks {
		weeks[w] = m.Days[w*GridDays : (w+1)*GridDays]
	}
	return weeks
}

// TasksOn returns the tasks due on the same calendar date as day.
func TasksOn(tasks []model.Task, day time.Time) []model.Task {
	return bucketByDate(tasks)[dateKey(day)]
}

type date struct {
	y int
	m time.Month
	d int
}

func dateKey(t time.Time) date {
	y, m, d := t.Date()
	return date{y, m, d}
}

func sameDate(a, b time.Time) bool {
	return dateKey(a) == dateKey(b)
}

func bucketByDate(tasks []model.Task) map[date][]model.Task {
	out := make(map[date][]model.Task)
	for _, t := range tasks {
		k := dateKey(t.DueDate)
		out[k] = append(out[k], t)
	}
	return out
}
