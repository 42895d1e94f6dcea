package plain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var ErrBadExtender = errors.New("bad extender")

// Self is the view a Computed member has of the object it belongs to.
type Self interface {
	Get(key string) any
	Set(key string, v any)
}

// Computed is a derived member. Computed members are not enumerable: they
// never appear among an object's keys and are never removed by
// reconciliation.
type Computed struct {
	Get func(self Self) any
	// Set is optional; without it the member is read only.
	Set func(self Self, v any)
}

// Extender is a frozen template of default members.
type Extender struct {
	names   []string
	members map[string]any
}

// NewExtender freezes template into an Extender. The template is deep
// copied so later changes to it have no effect. It panics with
// ErrBadExtender on templates that nest Extended values or hold Computed
// members without a getter.
func NewExtender(template map[string]any) *Extender {
	e := &Extender{members: make(map[string]any, len(template))}
	for _, name := range slices.Sorted(maps.Keys(template)) {
		v := template[name]
		switch x := v.(type) {
		case Computed:
			if x.Get == nil {
				panic(fmt.Errorf("%w: computed member %q has no getter", ErrBadExtender, name))
			}
		case *Computed:
			if x == nil || x.Get == nil {
				panic(fmt.Errorf("%w: computed member %q has no getter", ErrBadExtender, name))
			}
			v = *x
		default:
			if containsExtended(v) {
				panic(fmt.Errorf("%w: member %q nests an extended object", ErrBadExtender, name))
			}
			v = Clone(v)
		}
		e.names = append(e.names, name)
		e.members[name] = v
	}
	return e
}

func (e *Extender) Names() []string {
	return slices.Clone(e.names)
}

func (e *Extender) Member(name string) (any, bool) {
	v, ok := e.members[name]
	if !ok {
		return nil, false
	}
	if _, isComputed := v.(Computed); isComputed {
		return v, true
	}
	return Clone(v), true
}

func (e *Extender) Computed(name string) (Computed, bool) {
	c, ok := e.members[name].(Computed)
	return c, ok
}

// Defaults returns a fresh copy of the template's data members.
func (e *Extender) Defaults() map[string]any {
	res := make(map[string]any, len(e.members))
	for _, name := range e.names {
		v := e.members[name]
		if _, ok := v.(Computed); ok {
			continue
		}
		res[name] = Clone(v)
	}
	return res
}

func (e *Extender) String() string {
	return fmt.Sprintf("Extender%v", e.names)
}

// Clone deep copies the container shapes of a snapshot value. Opaque values
// are shared.
func Clone(v any) any {
	switch x := v.(type) {
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, xv := range x {
			res[k] = Clone(xv)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i, xv := range x {
			res[i] = Clone(xv)
		}
		return res
	case *Map:
		res := NewMap()
		for _, en := range x.Entries() {
			res.Set(en.Key, Clone(en.Value))
		}
		return res
	case map[any]any:
		res := make(map[any]any, len(x))
		for k, xv := range x {
			res[k] = Clone(xv)
		}
		return res
	case Extended:
		return Extended{Extender: x.Extender, Fields: Clone(x.Fields).(map[string]any)}
	}
	return v
}

func containsExtended(v any) bool {
	if _, ok := AsExtended(v); ok {
		return true
	}
	switch x := v.(type) {
	case map[string]any:
		for _, xv := range x {
			if containsExtended(xv) {
				return true
			}
		}
	case []any:
		for _, xv := range x {
			if containsExtended(xv) {
				return true
			}
		}
	case *Map:
		for _, en := range x.Entries() {
			if containsExtended(en.Value) {
				return true
			}
		}
	case map[any]any:
		for _, xv := range x {
			if containsExtended(xv) {
				return true
			}
		}
	}
	return false
}
