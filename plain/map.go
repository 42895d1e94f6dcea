package plain

import (
	"fmt"
	"slices"
	"strings"
)

type Entry struct {
	Key   any
	Value any
}

// Map is an insertion ordered map with comparable keys.
type Map struct {
	keys []any
	vals map[any]any
}

func NewMap() *Map {
	return &Map{vals: map[any]any{}}
}

func MapOf(entries ...Entry) *Map {
	m := NewMap()
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

func (m *Map) Set(k, v any) *Map {
	if m.vals == nil {
		m.vals = map[any]any{}
	}
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
	return m
}

func (m *Map) Get(k any) (any, bool) {
	if m == nil || !isComparable(k) {
		return nil, false
	}
	v, ok := m.vals[k]
	return v, ok
}

func (m *Map) Has(k any) bool {
	_, ok := m.Get(k)
	return ok
}

func (m *Map) Delete(k any) {
	if !m.Has(k) {
		return
	}
	delete(m.vals, k)
	i := slices.Index(m.keys, k)
	m.keys = slices.Delete(m.keys, i, i+1)
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *Map) Keys() []any {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	res := make([]Entry, len(m.keys))
	for i, k := range m.keys {
		res[i] = Entry{Key: k, Value: m.vals[k]}
	}
	return res
}

func (m *Map) String() string {
	parts := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		parts = append(parts, fmt.Sprintf("%v: %v", e.Key, e.Value))
	}
	return "Map{" + strings.Join(parts, ", ") + "}"
}

// Entries returns the members of a map shaped snapshot in iteration order.
// map[any]any has no order of its own so its keys are sorted by their
// printed form.
func Entries(v any) []Entry {
	switch x := v.(type) {
	case *Map:
		return x.Entries()
	case map[any]any:
		keys := make([]any, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, func(a, b any) int {
			return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
		})
		res := make([]Entry, len(keys))
		for i, k := range keys {
			res[i] = Entry{Key: k, Value: x[k]}
		}
		return res
	}
	return nil
}

// HasKey reports membership of k in a map shaped snapshot.
func HasKey(v any, k any) bool {
	switch x := v.(type) {
	case *Map:
		return x.Has(k)
	case map[any]any:
		if !isComparable(k) {
			return false
		}
		_, ok := x[k]
		return ok
	}
	return false
}
