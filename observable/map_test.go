package observable

import (
	"testing"

	"github.com/signadot/tony-format/go-reconcile/plain"

	"github.com/google/go-cmp/cmp"
)

func TestMap(t *testing.T) {
	m := NewMap(plain.MapOf(
		plain.Entry{Key: 2, Value: "b"},
		plain.Entry{Key: 1, Value: []any{"x"}}))
	got := record(m)
	if _, ok := m.Get(1).(*Array); !ok {
		t.Errorf("1 is %T", m.Get(1))
	}
	m.Set(2, "b")
	m.Set(2, "c")
	m.Set(3, nil)
	m.Remove(1)
	want := []string{
		"update *observable.Map[2] = c",
		"add *observable.Map[3] = <nil>",
		"remove *observable.Map[1]",
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("changes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{2, 3}, m.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestBox(t *testing.T) {
	b := NewBox(map[string]any{"a": 1})
	o, ok := b.Get().(*Object)
	if !ok {
		t.Fatalf("box holds %T", b.Get())
	}
	if p := Path(o); len(p) != 0 {
		t.Errorf("path through box %v", p)
	}
	got := record(b)
	o.Set("a", 2)
	b.Set(o)
	b.Set(3)
	if len(*got) != 2 {
		t.Errorf("changes %v", *got)
	}

	ref := NewBox(nil, Ref())
	ref.Set(map[string]any{})
	if _, ok := ref.Get().(map[string]any); !ok {
		t.Errorf("ref box enhanced to %T", ref.Get())
	}
}

func TestToPlain(t *testing.T) {
	in := map[string]any{
		"a": []any{1, map[string]any{"b": nil}},
		"m": plain.MapOf(plain.Entry{Key: 1, Value: "x"}),
	}
	got := ToPlain(NewBox(in))
	m := got.(map[string]any)
	pm, ok := m["m"].(*plain.Map)
	if !ok {
		t.Fatalf("m is %T", m["m"])
	}
	if diff := cmp.Diff([]plain.Entry{{Key: 1, Value: "x"}}, pm.Entries()); diff != "" {
		t.Errorf("map (-want +got):\n%s", diff)
	}
	delete(m, "m")
	delete(in, "m")
	if diff := cmp.Diff(in, m); diff != "" {
		t.Errorf("plain (-want +got):\n%s", diff)
	}
}
