package plain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtenderFrozen(t *testing.T) {
	tmpl := map[string]any{
		"tags": []any{"a"},
		"n":    1,
	}
	e := NewExtender(tmpl)
	tmpl["n"] = 2
	tmpl["tags"].([]any)[0] = "changed"

	d := e.Defaults()
	want := map[string]any{"tags": []any{"a"}, "n": 1}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}
	d["tags"].([]any)[0] = "mutated"
	if diff := cmp.Diff(want, e.Defaults()); diff != "" {
		t.Errorf("defaults shared (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"n", "tags"}, e.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}

func TestExtenderComputed(t *testing.T) {
	e := NewExtender(map[string]any{
		"first": "",
		"upper": Computed{Get: func(s Self) any { return s.Get("first") }},
	})
	if _, ok := e.Defaults()["upper"]; ok {
		t.Error("computed member among defaults")
	}
	c, ok := e.Computed("upper")
	if !ok || c.Get == nil || c.Set != nil {
		t.Errorf("computed %v %t", c, ok)
	}
	if _, ok := e.Computed("first"); ok {
		t.Error("data member is computed")
	}
	v, ok := e.Member("upper")
	if _, isComputed := v.(Computed); !ok || !isComputed {
		t.Errorf("member %v %t", v, ok)
	}
}

func TestBadExtender(t *testing.T) {
	inner := NewExtender(nil)
	tests := map[string]map[string]any{
		"no getter":     {"c": Computed{}},
		"nil computed":  {"c": (*Computed)(nil)},
		"nested extend": {"x": []any{Extend(inner, nil)}},
	}
	for name, tmpl := range tests {
		func() {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrBadExtender) {
					t.Errorf("%s: recovered %v", name, r)
				}
			}()
			NewExtender(tmpl)
		}()
	}
}

func TestClone(t *testing.T) {
	p := &point{}
	src := map[string]any{
		"a": []any{map[string]any{"b": 1}},
		"m": MapOf(Entry{Key: 1, Value: []any{2}}),
		"p": p,
	}
	c := Clone(src).(map[string]any)
	c["a"].([]any)[0].(map[string]any)["b"] = 2
	if src["a"].([]any)[0].(map[string]any)["b"] != 1 {
		t.Error("clone shares objects")
	}
	if c["m"] == src["m"] {
		t.Error("clone shares maps")
	}
	if c["p"] != p {
		t.Error("clone copied an opaque value")
	}
}
