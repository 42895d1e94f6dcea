package observable

import (
	"fmt"

	"github.com/signadot/tony-format/go-reconcile/plain"
)

// Map is a tracked insertion ordered map.
type Map struct {
	node
	entries *plain.Map
}

func NewMap(m *plain.Map) *Map {
	return newMapFromEntries(m.Entries())
}

func newMapFromEntries(entries []plain.Entry) *Map {
	res := &Map{entries: plain.NewMap()}
	for _, e := range entries {
		v := enhance(e.Value)
		res.entries.Set(e.Key, v)
		adopt(res, e.Key, v)
	}
	return res
}

func (m *Map) Get(k any) any {
	v, _ := m.entries.Get(k)
	return v
}

func (m *Map) Has(k any) bool {
	return m.entries.Has(k)
}

func (m *Map) Set(k, v any) {
	old, exists := m.entries.Get(k)
	v = enhance(v)
	if exists && plain.Same(old, v) {
		return
	}
	if exists {
		orphan(m, old)
	}
	m.entries.Set(k, v)
	adopt(m, k, v)
	ct := AddChange
	if exists {
		ct = UpdateChange
	}
	notify(m, Change{Type: ct, Container: m, Key: k, Old: old, New: v})
}

func (m *Map) Remove(k any) {
	old, ok := m.entries.Get(k)
	if !ok {
		return
	}
	m.entries.Delete(k)
	orphan(m, old)
	notify(m, Change{Type: RemoveChange, Container: m, Key: k, Old: old})
}

func (m *Map) Keys() []any {
	return m.entries.Keys()
}

func (m *Map) Len() int {
	return m.entries.Len()
}

func (m *Map) Entries() []plain.Entry {
	return m.entries.Entries()
}

func (m *Map) String() string {
	return fmt.Sprintf("Map%v", m.entries.Keys())
}
