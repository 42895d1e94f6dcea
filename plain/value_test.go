package plain

import (
	"testing"
)

type point struct{ X, Y int }

func TestShapes(t *testing.T) {
	ext := NewExtender(map[string]any{"a": 1})
	tests := []struct {
		name                 string
		v                    any
		object, array, isMap bool
	}{
		{"object", map[string]any{}, true, false, false},
		{"extended", Extend(ext, nil), true, false, false},
		{"extended pointer", &Extended{Extender: ext}, true, false, false},
		{"array", []any{1}, false, true, false},
		{"map", NewMap(), false, false, true},
		{"builtin map", map[any]any{}, false, false, true},
		{"nil map", (*Map)(nil), false, false, false},
		{"typed map", map[string]int{}, false, false, false},
		{"typed slice", []int{}, false, false, false},
		{"struct", point{}, false, false, false},
		{"struct pointer", &point{}, false, false, false},
		{"nil", nil, false, false, false},
	}
	for _, tc := range tests {
		if got := IsObject(tc.v); got != tc.object {
			t.Errorf("%s: IsObject = %t", tc.name, got)
		}
		if got := IsArray(tc.v); got != tc.array {
			t.Errorf("%s: IsArray = %t", tc.name, got)
		}
		if got := IsMap(tc.v); got != tc.isMap {
			t.Errorf("%s: IsMap = %t", tc.name, got)
		}
	}
}

func TestIsScalar(t *testing.T) {
	for _, v := range []any{true, 1, int64(-2), uint8(3), 1.5, "s", func() {}} {
		if !IsScalar(v) {
			t.Errorf("%T is not a scalar", v)
		}
	}
	for _, v := range []any{nil, []any{}, map[string]any{}, point{}, &point{}, NewMap()} {
		if IsScalar(v) {
			t.Errorf("%T is a scalar", v)
		}
	}
}

func TestSame(t *testing.T) {
	p := &point{}
	m := map[string]any{}
	tests := []struct {
		a, b any
		want bool
	}{
		{nil, nil, true},
		{nil, 0, false},
		{1, 1, true},
		{1, int64(1), false},
		{"a", "a", true},
		{p, p, true},
		{p, &point{}, false},
		{point{1, 2}, point{1, 2}, true},
		{m, m, false},
		{[]any{}, []any{}, false},
	}
	for i, tc := range tests {
		if got := Same(tc.a, tc.b); got != tc.want {
			t.Errorf("%d: Same(%v, %v) = %t want %t", i, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestAsExtended(t *testing.T) {
	ext := NewExtender(nil)
	if _, ok := AsExtended(Extended{}); ok {
		t.Error("extended without extender")
	}
	if _, ok := AsExtended((*Extended)(nil)); ok {
		t.Error("nil extended")
	}
	x, ok := AsExtended(&Extended{Extender: ext, Fields: map[string]any{"a": 1}})
	if !ok || x.Extender != ext || x.Fields["a"] != 1 {
		t.Errorf("got %v %t", x, ok)
	}
	if ExtenderOf(map[string]any{}) != nil {
		t.Error("plain object has an extender")
	}
}
