// Package metrics counts reconciler activity with prometheus.
package metrics

import (
	"time"

	"github.com/signadot/tony-format/go-reconcile/engine"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rc_decisions_total",
		Help: "Replacement policy decisions by tracked kind, snapshot kind and action",
	}, []string{"tracked", "snapshot", "action"})

	assignments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rc_assignments_total",
		Help: "Values stored without recursion",
	})

	removals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rc_removals_total",
		Help: "Stale members removed",
	})

	truncations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rc_truncations_total",
		Help: "Array truncations",
	})

	truncatedItems = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rc_truncated_items_total",
		Help: "Array items dropped by truncations",
	})

	runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rc_runs_total",
		Help: "Top level reconcile calls by result",
	}, []string{"result"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rc_run_duration_seconds",
		Help:    "Duration of top level reconcile calls",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
	})
)

// Hooks feeds the counters of this package. Pass it to engine.WithHooks.
type Hooks struct{}

var _ engine.Hooks = Hooks{}

func (Hooks) Decided(old engine.Tracked, snap engine.Snapshot, d engine.Decision) {
	decisions.WithLabelValues(old.Kind.String(), snap.Kind.String(), d.Action.String()).Inc()
}

func (Hooks) Assigned(any) {
	assignments.Inc()
}

func (Hooks) Removed(any, any) {
	removals.Inc()
}

func (Hooks) Truncated(_ any, from, to int) {
	truncations.Inc()
	truncatedItems.Add(float64(from - to))
}

// ObserveRun records one top level call started at start.
func ObserveRun(start time.Time, err error) {
	runDuration.Observe(time.Since(start).Seconds())
	result := "ok"
	if err != nil {
		result = "error"
	}
	runs.WithLabelValues(result).Inc()
}
