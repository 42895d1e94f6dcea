package reconcile

import (
	"errors"
	"testing"

	"github.com/signadot/tony-format/go-reconcile/engine"
	"github.com/signadot/tony-format/go-reconcile/observable"
	"github.com/signadot/tony-format/go-reconcile/plain"

	"github.com/google/go-cmp/cmp"
)

func TestReconcile(t *testing.T) {
	state := observable.NewObject(map[string]any{
		"user": map[string]any{"name": "ann"},
		"list": []any{1, 2, 3},
	})
	user := state.Get("user")
	got, err := Reconcile(state, map[string]any{
		"user": map[string]any{"name": "bob"},
		"list": []any{1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != any(state) || state.Get("user") != user {
		t.Error("identity lost")
	}
	want := map[string]any{
		"user": map[string]any{"name": "bob"},
		"list": []any{1},
	}
	if diff := cmp.Diff(want, observable.ToPlain(state)); diff != "" {
		t.Errorf("state (-want +got):\n%s", diff)
	}

	_, err = Reconcile(state, []any{})
	if !errors.Is(err, ErrIncompatibleType) {
		t.Errorf("got %v want %v", err, ErrIncompatibleType)
	}
}

func TestWithPolicy(t *testing.T) {
	state := observable.NewObject(map[string]any{"a": map[string]any{}})
	a := state.Get("a")
	install := engine.Custom(func(_ engine.Tracked, snap engine.Snapshot, _ engine.Policy) engine.Decision {
		return engine.Install(snap.Kind, snap.Extender)
	})
	if _, err := Reconcile(state, map[string]any{"a": map[string]any{}}, WithPolicy(install)); err != nil {
		t.Fatal(err)
	}
	if state.Get("a") == a {
		t.Error("install policy kept the object")
	}
}

func TestAsMapFunctions(t *testing.T) {
	state := observable.NewObject(nil)
	if _, err := ReconcileAsMap(state, map[string]any{"m": map[string]any{"k": 1}}); err != nil {
		t.Fatal(err)
	}
	if _, ok := state.Get("m").(*observable.Map); !ok {
		t.Errorf("m is %T", state.Get("m"))
	}
	PropertyAsMap(state, "p", map[string]any{})
	if _, ok := state.Get("p").(*observable.Map); !ok {
		t.Errorf("p is %T", state.Get("p"))
	}
	Property(state, "p", map[string]any{})
	if _, ok := state.Get("p").(*observable.Object); !ok {
		t.Errorf("p is %T", state.Get("p"))
	}
	box := observable.NewBox(nil)
	if BoxedAsMap(box, map[string]any{"x": 1}) != box {
		t.Error("box not returned")
	}
	if _, ok := box.Get().(*observable.Map); !ok {
		t.Errorf("box holds %T", box.Get())
	}
	Boxed(box, map[string]any{"x": 1})
	if _, ok := box.Get().(*observable.Object); !ok {
		t.Errorf("box holds %T", box.Get())
	}
}

func TestExtender(t *testing.T) {
	e := MakeExtender(map[string]any{"n": 0})
	o := observable.NewObjectFromTemplate(e, nil)
	if !IsExtenderOf(e, o) {
		t.Error("object not built from its extender")
	}
	if IsExtenderOf(MakeExtender(nil), o) || IsExtenderOf(e, observable.NewObject(nil)) || IsExtenderOf(e, 1) {
		t.Error("IsExtenderOf too loose")
	}
}

func TestExtenderRejectsTracked(t *testing.T) {
	for name, tmpl := range map[string]map[string]any{
		"member": {"m": observable.NewObject(nil)},
		"nested": {"xs": []any{map[string]any{"b": observable.NewBox(1)}}},
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				err, _ := recover().(error)
				if !errors.Is(err, plain.ErrBadExtender) {
					t.Errorf("got %v want %v", err, plain.ErrBadExtender)
				}
			}()
			MakeExtender(tmpl)
		})
	}
}
