// Package metrics exposes fleet state and mutation counts as Prometheus
// metrics.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nhle/fleet-maintenance/internal/event"
	"github.com/nhle/fleet-maintenance/internal/model"
	"github.com/nhle/fleet-maintenance/internal/view"
)

const namespace = "fleet"

// Source is the read side of the stores the collector samples.
type Source interface {
	Ships() []model.Ship
	Tasks() []model.Task
	UnreadNotifications() int
}

// Collector reports gauges computed from a Source on every scrape.
type Collector struct {
	src Source
	now func() time.Time

	ships   *prometheus.Desc
	tasks   *prometheus.Desc
	overdue *prometheus.Desc
	unread  *prometheus.Desc
}

// NewCollector samples src, using now as the reference time for the
// overdue gauge.
func NewCollector(src Source, now func() time.Time) *Collector {
	return &Collector{
		src: src,
		now: now,
		ships: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "ships"),
			"Number of ships by operational status.",
			[]string{"status"}, nil,
		),
		tasks: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "tasks"),
			"Number of maintenance tasks by stored status.",
			[]string{"status"}, nil,
		),
		overdue: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "tasks_past_due"),
			"Unfinished tasks whose due date has passed.",
			nil, nil,
		),
		unread: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "notifications_unread"),
			"Unread notifications.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.ships
	ch <- c.tasks
	ch <- c.overdue
	ch <- c.unread
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := view.Summarize(c.src.Ships(), c.src.Tasks(), c.now())

	for _, s := range model.ShipStatuses {
		ch <- prometheus.MustNewConstMetric(c.ships, prometheus.GaugeValue, float64(st.ShipsByStatus[s]), string(s))
	}
	for _, s := range model.TaskStatuses {
		ch <- prometheus.MustNewConstMetric(c.tasks, prometheus.GaugeValue, float64(st.TasksByStatus[s]), string(s))
	}
	ch <- prometheus.MustNewConstMetric(c.overdue, prometheus.GaugeValue, float64(st.OverdueTasks))
	ch <- prometheus.MustNewConstMetric(c.unread, prometheus.GaugeValue, float64(c.src.UnreadNotifications()))
}

// Recorder counts published mutations by event kind.
type Recorder struct {
	mutations *prometheus.CounterVec
}

// NewRecorder creates the mutation counter. Register it with Register.
func NewRecorder() *Recorder {
	return &Recorder{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Successful ship and task mutations by event kind.",
		}, []string{"kind"}),
	}
}

// Handle implements event.Handler.
func (r *Recorder) Handle(_ context.Context, e event.Event) error {
	r.mutations.WithLabelValues(string(e.Kind)).Inc()
	return nil
}

// Counter returns the counter for mutations of kind.
func (r *Recorder) Counter(kind event.Kind) prometheus.Counter {
	return r.mutations.WithLabelValues(string(kind))
}

// Register adds the collector and recorder to a fresh registry.
func Register(c *Collector, r *Recorder) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	if err := reg.Register(r.mutations); err != nil {
		return nil, err
	}
	return reg, nil
}
