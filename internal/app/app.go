package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nhle/fleet-maintenance/internal/digest"
	"github.com/nhle/fleet-maintenance/internal/event"
	"github.com/nhle/fleet-maintenance/internal/fleet"
	"github.com/nhle/fleet-maintenance/internal/metrics"
	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/seed"
	"github.com/nhle/fleet-maintenance/internal/store"
	"github.com/nhle/fleet-maintenance/internal/view"
)

// Deps overrides the clock, ID source and logger. Zero fields use the
// production defaults.
type Deps struct {
	Clock  fleet.Clock
	IDs    fleet.IDGenerator
	Logger *slog.Logger
}

// App wires the stores, the event bus and its subscribers over one KV.
// The CLI talks to the stores through it.
type App struct {
	cfg    *model.AppConfig
	kv     store.KV
	closer io.Closer
	clock  fleet.Clock
	log    *slog.Logger

	Bus      *event.Bus
	Ships    *fleet.ShipStore
	Tasks    *fleet.TaskStore
	Notes    *fleet.NotificationStore
	Auth     *fleet.Auth
	Recorder *metrics.Recorder

	logFile *os.File
}

// Open creates the data directory, opens the SQLite store and the log file
// named by cfg, and wires an App over them. The caller must call Close.
func Open(ctx context.Context, cfg *model.AppConfig) (*App, error) {
	logger, logFile, err := newLogger(cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("opening store: %w", err)
	}

	a, err := New(ctx, cfg, db, Deps{Logger: logger})
	if err != nil {
		db.Close()
		logFile.Close()
		return nil, err
	}
	a.closer = db
	a.logFile = logFile
	return a, nil
}

// New wires an App over kv. It loads every collection, refusing to start
// if a stored blob is malformed, and seeds the demo fleet when cfg asks
// for it and no ships are stored.
func New(ctx context.Context, cfg *model.AppConfig, kv store.KV, deps Deps) (*App, error) {
	if deps.Clock == nil {
		deps.Clock = fleet.SystemClock
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	opts := fleet.Options{Clock: deps.Clock, IDs: deps.IDs, Logger: deps.Logger}

	a := &App{
		cfg:      cfg,
		kv:       kv,
		clock:    deps.Clock,
		log:      deps.Logger,
		Bus:      event.NewBus(),
		Recorder: metrics.NewRecorder(),
	}

	var err error
	if a.Notes, err = fleet.NewNotificationStore(ctx, kv, opts); err != nil {
		return nil, fmt.Errorf("opening notifications: %w", err)
	}
	a.Bus.Subscribe(fleet.NewNotifier(a.Notes).Handle)
	a.Bus.Subscribe(a.Recorder.Handle)

	if a.Ships, err = fleet.NewShipStore(ctx, kv, a.Bus, opts); err != nil {
		return nil, fmt.Errorf("opening ships: %w", err)
	}
	if a.Tasks, err = fleet.NewTaskStore(ctx, kv, a.Bus, opts); err != nil {
		return nil, fmt.Errorf("opening tasks: %w", err)
	}
	if a.Auth, err = fleet.NewAuth(ctx, kv); err != nil {
		return nil, fmt.Errorf("opening users: %w", err)
	}

	if cfg.Seed.Demo {
		seeded, err := seed.SeedDemo(ctx, a.Ships, a.Tasks)
		if err != nil {
			return nil, fmt.Errorf("seeding demo fleet: %w", err)
		}
		if seeded {
			a.log.Info("demo fleet seeded", "ships", len(a.Ships.List()), "tasks", len(a.Tasks.List()))
		}
	}

	return a, nil
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var errs []error
	if a.closer != nil {
		errs = append(errs, a.closer.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}

// Config returns the configuration the App was built with.
func (a *App) Config() *model.AppConfig {
	return a.cfg
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.log
}

// Now returns the current time from the App's clock.
func (a *App) Now() time.Time {
	return a.clock.Now()
}

// Dashboard is everything the dashboard command shows.
type Dashboard struct {
	Stats    view.Stats
	Upcoming []model.Task
	Overdue  []model.Task
	Unread   int
}

// Dashboard summarizes the fleet as of now, capping the previews at the
// configured limit.
func (a *App) Dashboard() Dashboard {
	now := a.Now()
	ships, tasks := a.Ships.List(), a.Tasks.List()
	up, over := view.Partition(tasks, now, a.cfg.Dashboard.PreviewLimit)
	return Dashboard{
		Stats:    view.Summarize(ships, tasks, now),
		Upcoming: up,
		Overdue:  over,
		Unread:   a.Notes.UnreadCount(),
	}
}

// Calendar builds the month grid for year and month with today's date
// highlighted. A zero year or month means the current one.
func (a *App) Calendar(year int, month time.Month) view.Month {
	now := a.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	return view.BuildMonth(year, month, now, a.Tasks.List())
}

// ShipDetail returns a ship and the tasks that reference it.
func (a *App) ShipDetail(id string) (model.Ship, []model.Task, bool) {
	ship, ok := a.Ships.Get(id)
	if !ok {
		return model.Ship{}, nil, false
	}
	return ship, a.Tasks.ForShip(id), true
}

// Metrics returns a registry holding the fleet gauges and the mutation
// counters of this App.
func (a *App) Metrics() (*prometheus.Registry, error) {
	return metrics.Register(metrics.NewCollector(source{a}, a.Now), a.Recorder)
}

// Digest writes the unread notifications as an email message to w. It
// returns how many notifications were included.
func (a *App) Digest(w io.Writer, opts digest.Options) (int, error) {
	unread := a.Notes.Unread()
	if opts.Date.IsZero() {
		opts.Date = a.Now()
	}
	if err := digest.Write(w, unread, opts); err != nil {
		return 0, fmt.Errorf("writing digest: %w", err)
	}
	return len(unread), nil
}

// source adapts App to metrics.Source.
type source struct{ a *App }

func (s source) Ships() []model.Ship      { return s.a.Ships.List() }
func (s source) Tasks() []model.Task      { return s.a.Tasks.List() }
func (s source) UnreadNotifications() int { return s.a.Notes.UnreadCount() }
