// Package seed loads ships and tasks from TOML fixtures, including the
// built-in demo fleet.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nhle/fleet-maintenance/internal/fleet"
	"github.com/nhle/fleet-maintenance/internal/model"
)

//go:embed demo.toml
var demoTOML string

// dateLayout is the format of date fields in fixtures.
const dateLayout = time.DateOnly

// ShipFixture is one [[ship]] table.
type ShipFixture struct {
	ID              string `toml:"id"`
	Name            string `toml:"name"`
	Type            string `toml:"type"`
	Year            int    `toml:"year"`
	Status          string `toml:"status"`
	LastInspection  string `toml:"last_inspection"`
	NextMaintenance string `toml:"next_maintenance"`
	PendingTasks    int    `toml:"pending_tasks"`
	Captain         string `toml:"captain"`
}

// TaskFixture is one [[task]] table. Ship names the fixture ship ID the
// task belongs to.
type TaskFixture struct {
	ID             string  `toml:"id"`
	Title          string  `toml:"title"`
	Description    string  `toml:"description"`
	Ship           string  `toml:"ship"`
	Status         string  `toml:"status"`
	Priority       string  `toml:"priority"`
	AssignedTo     string  `toml:"assigned_to"`
	Due            string  `toml:"due"`
	EstimatedHours float64 `toml:"estimated_hours"`
}

// Fixture is a decoded TOML fixture file.
type Fixture struct {
	Ships []ShipFixture `toml:"ship"`
	Tasks []TaskFixture `toml:"task"`
}

// Parse decodes a fixture from r.
func Parse(r io.Reader) (*Fixture, error) {
	var fx Fixture
	md, err := toml.NewDecoder(r).Decode(&fx)
	if err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown fixture keys: %v", undecoded)
	}
	return &fx, nil
}

// LoadFile parses the fixture at path.
func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fixture: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Demo returns the built-in demo fleet.
func Demo() (*Fixture, error) {
	var fx Fixture
	if _, err := toml.Decode(demoTOML, &fx); err != nil {
		return nil, fmt.Errorf("decoding demo fixture: %w", err)
	}
	return &fx, nil
}

// Build converts the fixture to entities, keeping fixture IDs. Each task's
// ship name is taken from its fixture ship.
func (fx *Fixture) Build() ([]model.Ship, []model.Task, error) {
	shipIns, taskIns, err := fx.inputs()
	if err != nil {
		return nil, nil, err
	}
	ships := make([]model.Ship, len(shipIns))
	for i, in := range shipIns {
		ships[i] = model.Ship{
			ID:              fx.Ships[i].ID,
			Name:            in.Name,
			Type:            in.Type,
			Year:            in.Year,
			Status:          in.Status,
			LastInspection:  in.LastInspection,
			NextMaintenance: in.NextMaintenance,
			PendingTasks:    in.PendingTasks,
			Captain:         in.Captain,
		}
	}
	tasks := make([]model.Task, len(taskIns))
	for i, in := range taskIns {
		tasks[i] = model.Task{
			ID:             fx.Tasks[i].ID,
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
	}
	return ships, tasks, nil
}

// inputs validates every fixture entry and returns one input per ship and
// task, in fixture order. Task inputs reference fixture ship IDs.
func (fx *Fixture) inputs() ([]model.ShipInput, []model.TaskInput, error) {
	ships := make([]model.ShipInput, 0, len(fx.Ships))
	byID := make(map[string]model.Ship, len(fx.Ships))
	for i, sf := range fx.Ships {
		in, err := sf.input()
		if err != nil {
			return nil, nil, fmt.Errorf("ship %d (%s): %w", i, sf.Name, err)
		}
		ships = append(ships, in)
		byID[sf.ID] = model.Ship{ID: sf.ID, Name: in.Name}
	}

	tasks := make([]model.TaskInput, 0, len(fx.Tasks))
	for i, tf := range fx.Tasks {
		ship, ok := byID[tf.Ship]
		if !ok {
			return nil, nil, fmt.Errorf("task %d (%s): unknown ship %q", i, tf.Title, tf.Ship)
		}
		in, err := tf.input(ship)
		if err != nil {
			return nil, nil, fmt.Errorf("task %d (%s): %w", i, tf.Title, err)
		}
		tasks = append(tasks, in)
	}
	return ships, tasks, nil
}

func (sf ShipFixture) input() (model.ShipInput, error) {
	status := model.ShipStatus(sf.Status)
	if !status.Valid() {
		return model.ShipInput{}, fmt.Errorf("unknown status %q", sf.Status)
	}
	last, err := parseDate(sf.LastInspection)
	if err != nil {
		return model.ShipInput{}, fmt.Errorf("last_inspection: %w", err)
	}
	next, err := parseDate(sf.NextMaintenance)
	if err != nil {
		return model.ShipInput{}, fmt.Errorf("next_maintenance: %w", err)
	}
	return model.ShipInput{
		Name:            sf.Name,
		Type:            sf.Type,
		Year:            sf.Year,
		Status:          status,
		LastInspection:  last,
		NextMaintenance: next,
		PendingTasks:    sf.PendingTasks,
		Captain:         sf.Captain,
	}, nil
}

func (tf TaskFixture) input(ship model.Ship) (model.TaskInput, error) {
	due, err := parseDate(tf.Due)
	if err != nil {
		return model.TaskInput{}, fmt.Errorf("due: %w", err)
	}
	in := model.TaskInput{
		Title:          tf.Title,
		Description:    tf.Description,
		ShipID:         ship.ID,
		ShipName:       ship.Name,
		Status:         model.TaskStatus(tf.Status),
		Priority:       model.Priority(tf.Priority),
		AssignedTo:     tf.AssignedTo,
		DueDate:        due,
		EstimatedHours: tf.EstimatedHours,
	}
	if err := in.Validate(); err != nil {
		return model.TaskInput{}, err
	}
	return in, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// SeedDemo stores the demo fleet on first run, when no ship list has been
// persisted yet. A fleet emptied by deletes is left empty. Fixture IDs
// are kept and no notifications are produced.
func SeedDemo(ctx context.Context, ships *fleet.ShipStore, tasks *fleet.TaskStore) (bool, error) {
	fx, err := Demo()
	if err != nil {
		return false, err
	}
	s, t, err := fx.Build()
	if err != nil {
		return false, fmt.Errorf("building demo fleet: %w", err)
	}
	seeded, err := ships.Seed(ctx, s)
	if err != nil || !seeded {
		return false, err
	}
	if _, err := tasks.Seed(ctx, t); err != nil {
		return true, err
	}
	return true, nil
}

// Result counts what Import added.
type Result struct {
	Ships int
	Tasks int
}

// Import adds every fixture ship and task through the stores, so each gets
// a fresh ID and a notification. Tasks are linked to the new IDs of their
// fixture ships. Ships are added in reverse so the list ends up in fixture
// order.
func Import(ctx context.Context, fx *Fixture, ships *fleet.ShipStore, tasks *fleet.TaskStore) (Result, error) {
	var res Result

	// Validate the whole fixture before writing anything.
	shipIns, taskIns, err := fx.inputs()
	if err != nil {
		return res, err
	}

	newIDs := make(map[string]model.Ship, len(shipIns))
	for i := len(shipIns) - 1; i >= 0; i-- {
		sf := fx.Ships[i]
		ship, err := ships.Add(ctx, shipIns[i])
		if err != nil {
			return res, fmt.Errorf("importing ship %s: %w", sf.Name, err)
		}
		newIDs[sf.ID] = ship
		res.Ships++
	}

	for i := len(taskIns) - 1; i >= 0; i-- {
		in := taskIns[i]
		ship := newIDs[in.ShipID]
		in.ShipID, in.ShipName = ship.ID, ship.Name
		if _, err := tasks.Add(ctx, in); err != nil {
			return res, fmt.Errorf("importing task %s: %w", in.Title, err)
		}
		res.Tasks++
	}
	return res, nil
}
