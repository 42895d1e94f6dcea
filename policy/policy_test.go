package policy

import (
	"errors"
	"testing"

	"github.com/signadot/tony-format/go-reconcile/engine"
	"github.com/signadot/tony-format/go-reconcile/observable"
	"github.com/signadot/tony-format/go-reconcile/plain"
)

func decide(t *testing.T, src string, old engine.Tracked, snap engine.Snapshot) engine.Decision {
	t.Helper()
	c, err := Compile(src)
	if err != nil {
		t.Fatal(err)
	}
	return c(old, snap, engine.DefaultPolicy)
}

func TestCompile(t *testing.T) {
	obj := engine.Tracked{Kind: engine.TrackedObject}
	keep := engine.Snapshot{Kind: engine.SnapshotPlainObject, Value: map[string]any{"keep": 1}}
	other := engine.Snapshot{Kind: engine.SnapshotPlainObject, Value: map[string]any{"x": 1}}
	arr := engine.Snapshot{Kind: engine.SnapshotArray, Value: []any{1, 2, 3}}
	tests := []struct {
		src  string
		old  engine.Tracked
		snap engine.Snapshot
		want string
	}{
		{`Has("keep") ? "reuse" : "install"`, obj, keep, "reuse"},
		{`Has("keep") ? "reuse" : "install"`, obj, other, "install PlainObject"},
		{`compatible ? "default" : "pass-through"`, obj, arr, "pass-through"},
		{`snapshotLen > 2 ? "map" : "array"`, obj, arr, "install Map"},
		{`tracked == "Object" && snapshot == "Array" ? "object" : "default"`, obj, arr, "install PlainObject"},
		{`"default"`, obj, arr, "install Array"},
		{`"nope"`, obj, keep, "reuse"},
	}
	for i, tc := range tests {
		if got := decide(t, tc.src, tc.old, tc.snap).String(); got != tc.want {
			t.Errorf("%d: %s decided %s want %s", i, tc.src, got, tc.want)
		}
	}
}

func TestCompileError(t *testing.T) {
	if _, err := Compile(`tracked ==`); err == nil {
		t.Error("bad expression compiled")
	}
	if _, err := Compile(`nosuchvar == 1`); err == nil {
		t.Error("unknown variable compiled")
	}
}

func TestParseDecision(t *testing.T) {
	e := plain.NewExtender(nil)
	snap := engine.Snapshot{Kind: engine.SnapshotExtendedObject, Extender: e}
	d, err := ParseDecision("install", engine.Tracked{}, snap, engine.DefaultPolicy)
	if err != nil || d.Action != engine.InstallAction || d.Seed != e {
		t.Errorf("got %s %v", d, err)
	}
	if _, err := ParseDecision("replace", engine.Tracked{}, snap, engine.DefaultPolicy); !errors.Is(err, ErrBadDecision) {
		t.Errorf("got %v want %v", err, ErrBadDecision)
	}
}

func TestEnv(t *testing.T) {
	e := plain.NewExtender(nil)
	obj := observable.NewObjectFromTemplate(e, nil)
	sys := observable.System{}
	env := NewEnv(engine.ClassifyTracked(sys, obj), engine.ClassifySnapshot(sys, plain.Extend(e, map[string]any{"a": 1})))
	if !env.Compatible || !env.Extended || env.SnapshotLen != 1 || !env.Has("a") || env.Has("b") {
		t.Errorf("got %+v", env)
	}
	env = NewEnv(engine.Tracked{}, engine.ClassifySnapshot(sys, plain.MapOf(plain.Entry{Key: "k", Value: 1})))
	if env.Snapshot != "Map" || !env.Has("k") || env.SnapshotLen != 1 {
		t.Errorf("got %+v", env)
	}
}

func TestReconcileWithPolicy(t *testing.T) {
	r := engine.New(observable.System{})
	state := observable.NewObject(map[string]any{"m": plain.MapOf(plain.Entry{Key: 1, Value: "x"})})
	m := state.Get("m")
	c := MustCompile(`tracked == "Map" && snapshot == "PlainObject" ? "reuse" : "default"`)
	if _, err := r.Reconcile(state, map[string]any{"m": map[string]any{"a": 1}}, engine.WithPolicy(c)); err != nil {
		t.Fatal(err)
	}
	if state.Get("m") != m {
		t.Error("map replaced")
	}
	if keys := m.(*observable.Map).Keys(); len(keys) != 1 || keys[0] != "a" {
		t.Errorf("keys %v", keys)
	}
}
