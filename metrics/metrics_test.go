package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/signadot/tony-format/go-reconcile/engine"
	"github.com/signadot/tony-format/go-reconcile/observable"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func value(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatal(err)
	}
	return m.GetCounter().GetValue()
}

func TestHooks(t *testing.T) {
	reuse := decisions.WithLabelValues("Array", "Array", "reuse")
	before := map[string]float64{
		"reuse":     value(t, reuse),
		"removed":   value(t, removals),
		"truncated": value(t, truncatedItems),
		"assigned":  value(t, assignments),
	}
	r := engine.New(observable.System{}, engine.WithHooks(Hooks{}))
	state := observable.NewObject(map[string]any{"xs": []any{1, 2, 3}, "gone": 1})
	if _, err := r.Reconcile(state, map[string]any{"xs": []any{4}}); err != nil {
		t.Fatal(err)
	}
	after := map[string]float64{
		"reuse":     value(t, reuse),
		"removed":   value(t, removals),
		"truncated": value(t, truncatedItems),
		"assigned":  value(t, assignments),
	}
	for k, want := range map[string]float64{"reuse": 1, "removed": 1, "truncated": 2, "assigned": 1} {
		if got := after[k] - before[k]; got != want {
			t.Errorf("%s: got %v want %v", k, got, want)
		}
	}
}

func TestObserveRun(t *testing.T) {
	failed := runs.WithLabelValues("error")
	before := value(t, failed)
	ObserveRun(time.Now(), errors.New("x"))
	if got := value(t, failed) - before; got != 1 {
		t.Errorf("got %v", got)
	}
}
