package observable

import (
	"fmt"
	"slices"

	"github.com/signadot/tony-format/go-reconcile/debug"
)

type ChangeType int

const (
	AddChange ChangeType = iota
	UpdateChange
	RemoveChange
	SpliceChange
)

func (t ChangeType) String() string {
	s, ok := map[ChangeType]string{
		AddChange:    "add",
		UpdateChange: "update",
		RemoveChange: "remove",
		SpliceChange: "splice",
	}[t]
	if ok {
		return s
	}
	return "<unknown change>"
}

// Change describes one mutation of a tracked container.
//
// For SpliceChange, Key is the index at which Removed elements were cut
// from the end of an array.
type Change struct {
	Type      ChangeType
	Container any
	Key       any
	Old, New  any
	Removed   []any
}

func (c Change) String() string {
	switch c.Type {
	case SpliceChange:
		return fmt.Sprintf("%s %T at %v removed %d", c.Type, c.Container, c.Key, len(c.Removed))
	case RemoveChange:
		return fmt.Sprintf("%s %T[%v]", c.Type, c.Container, c.Key)
	default:
		return fmt.Sprintf("%s %T[%v] = %v", c.Type, c.Container, c.Key, c.New)
	}
}

type Listener func(Change)

type listener struct {
	f Listener
}

type tracked interface {
	base() *node
}

type node struct {
	parent    tracked
	parentKey any
	listeners []*listener
}

func (n *node) base() *node { return n }

// Observe registers l for changes of v and everything below it. v must be a
// tracked container or box.
func Observe(v any, l Listener) (cancel func()) {
	t, ok := asTracked(v)
	if !ok {
		panic(fmt.Sprintf("observable: cannot observe %T", v))
	}
	n := t.base()
	ln := &listener{f: l}
	n.listeners = append(n.listeners, ln)
	return func() {
		i := slices.Index(n.listeners, ln)
		if i >= 0 {
			n.listeners = slices.Delete(n.listeners, i, i+1)
		}
	}
}

func notify(t tracked, c Change) {
	if debug.Observe() {
		debug.Logf("observe %s\n", c)
	}
	for cur := t; cur != nil; cur = cur.base().parent {
		// listeners may cancel themselves
		for _, ln := range slices.Clone(cur.base().listeners) {
			ln.f(c)
		}
	}
}

func asTracked(v any) (tracked, bool) {
	switch x := v.(type) {
	case *Object:
		return x, x != nil
	case *Array:
		return x, x != nil
	case *Map:
		return x, x != nil
	case *Box:
		return x, x != nil
	}
	return nil, false
}

func adopt(parent tracked, key any, v any) {
	t, ok := asTracked(v)
	if !ok {
		return
	}
	n := t.base()
	n.parent = parent
	n.parentKey = key
}

func orphan(parent tracked, v any) {
	t, ok := asTracked(v)
	if !ok {
		return
	}
	n := t.base()
	if n.parent == parent {
		n.parent = nil
		n.parentKey = nil
	}
}

// Parent returns the container v was last assigned into and the key it was
// assigned at.
func Parent(v any) (any, any) {
	t, ok := asTracked(v)
	if !ok {
		return nil, nil
	}
	n := t.base()
	if n.parent == nil {
		return nil, nil
	}
	return n.parent, n.parentKey
}

// Path returns the keys leading from the root container (or the nearest
// enclosing box) to v.
func Path(v any) []any {
	t, ok := asTracked(v)
	if !ok {
		return nil
	}
	var rev []any
	for cur := t; ; {
		n := cur.base()
		if n.parent == nil {
			break
		}
		if _, isBox := n.parent.(*Box); isBox {
			break
		}
		rev = append(rev, n.parentKey)
		cur = n.parent
	}
	slices.Reverse(rev)
	return rev
}
