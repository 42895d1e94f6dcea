package observable

import (
	"fmt"
	"slices"

	"github.com/signadot/tony-format/go-reconcile/plain"
)

// Array is a tracked list.
type Array struct {
	node
	items []any
}

func NewArray(items []any) *Array {
	a := &Array{items: make([]any, 0, len(items))}
	for _, v := range items {
		v = enhance(v)
		adopt(a, len(a.items), v)
		a.items = append(a.items, v)
	}
	return a
}

func (a *Array) Len() int {
	return len(a.items)
}

// Get returns the element at i, or nil when i is out of range.
func (a *Array) Get(i int) any {
	if i < 0 || i >= len(a.items) {
		return nil
	}
	return a.items[i]
}

// Set replaces the element at i. Setting at Len() appends.
func (a *Array) Set(i int, v any) {
	if i < 0 || i > len(a.items) {
		panic(fmt.Sprintf("observable: index %d out of range [0:%d]", i, len(a.items)))
	}
	v = enhance(v)
	if i == len(a.items) {
		a.items = append(a.items, v)
		adopt(a, i, v)
		notify(a, Change{Type: AddChange, Container: a, Key: i, New: v})
		return
	}
	old := a.items[i]
	if plain.Same(old, v) {
		return
	}
	orphan(a, old)
	a.items[i] = v
	adopt(a, i, v)
	notify(a, Change{Type: UpdateChange, Container: a, Key: i, Old: old, New: v})
}

func (a *Array) Push(vs ...any) {
	for _, v := range vs {
		a.Set(len(a.items), v)
	}
}

// Remove cuts the element at i, shifting the following ones down.
func (a *Array) Remove(i int) {
	if i < 0 || i >= len(a.items) {
		return
	}
	old := a.items[i]
	a.items = slices.Delete(a.items, i, i+1)
	orphan(a, old)
	a.reindex(i)
	notify(a, Change{Type: RemoveChange, Container: a, Key: i, Old: old})
}

// Truncate shortens the array to n elements with a single splice. It does
// nothing if the array is not longer than n.
func (a *Array) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if len(a.items) <= n {
		return
	}
	removed := slices.Clone(a.items[n:])
	clear(a.items[n:])
	a.items = a.items[:n]
	for _, v := range removed {
		orphan(a, v)
	}
	notify(a, Change{Type: SpliceChange, Container: a, Key: n, Removed: removed})
}

func (a *Array) Items() []any {
	return slices.Clone(a.items)
}

func (a *Array) reindex(from int) {
	for i := from; i < len(a.items); i++ {
		t, ok := asTracked(a.items[i])
		if !ok {
			continue
		}
		if n := t.base(); n.parent == tracked(a) {
			n.parentKey = i
		}
	}
}

func (a *Array) String() string {
	return fmt.Sprintf("Array(%d)", len(a.items))
}
