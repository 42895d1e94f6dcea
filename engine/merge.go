package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/tony-format/go-reconcile/debug"
	"github.com/signadot/tony-format/go-reconcile/plain"
)

type pass struct {
	sys    System
	hooks  Hooks
	policy Policy
}

// slot is a place holding one value: a member of a container or a box.
type slot interface {
	// get reports false when the slot holds nothing yet.
	get() (any, bool)
	set(v any)
}

type keySlot struct {
	sys    System
	c, key any
}

func (s keySlot) get() (any, bool) {
	if !s.sys.Has(s.c, s.key) {
		return nil, false
	}
	return s.sys.Get(s.c, s.key), true
}

func (s keySlot) set(v any) { s.sys.Set(s.c, s.key, v) }

type boxSlot struct {
	box Box
}

func (s boxSlot) get() (any, bool) { return s.box.Get(), true }
func (s boxSlot) set(v any)        { s.box.Set(v) }

func (p *pass) container(target, snap any) error {
	old := ClassifyTracked(p.sys, target)
	nw := ClassifySnapshot(p.sys, snap)

	// the container itself is kept whatever happens, so objects and maps
	// may populate each other here
	relOld, relNew := old, nw
	if relOld.Kind == TrackedMap {
		relOld.Kind = TrackedObject
	}
	if relNew.Kind == SnapshotMap {
		relNew.Kind = SnapshotPlainObject
	}
	if !Compatible(relOld, relNew) {
		return &IncompatibleTypeError{Tracked: old.Kind, Snapshot: nw.Kind}
	}
	if debug.Reconcile() {
		debug.Logf("reconcile %s with %s\n", old.Kind, nw.Kind)
	}
	p.members(old, nw)
	return nil
}

func (p *pass) value(s slot, v any) {
	cur, ok := s.get()
	if ok && plain.Same(cur, v) {
		return
	}
	if plain.IsScalar(v) {
		s.set(v)
		p.hooks.Assigned(v)
		return
	}
	old := ClassifyTracked(p.sys, cur)
	nw := ClassifySnapshot(p.sys, v)
	d := p.policy(old, nw)
	p.hooks.Decided(old, nw, d)
	if debug.Policy() {
		debug.Logf("policy %s <- %s: %s\n", old.Kind, nw.Kind, d)
	}

	switch d.Action {
	case PassThroughAction:
		s.set(v)
		p.hooks.Assigned(v)
		return
	case InstallAction:
		s.set(seed(d))
		// the container system decides what lands
		landed, _ := s.get()
		old = ClassifyTracked(p.sys, landed)
	}
	if old.Kind == TrackedOther {
		if debug.Reconcile() {
			debug.Logf("reconcile: %s left no tracked container, assigning %s\n", d, nw.Kind)
		}
		s.set(v)
		p.hooks.Assigned(v)
		return
	}
	p.members(old, nw)
}

// members merges the members of snap into the tracked container old: stale
// keys are removed first, then every snapshot member is reconciled.
func (p *pass) members(old Tracked, snap Snapshot) {
	c := old.Value
	if old.Kind == TrackedArray && snap.Kind == SnapshotArray {
		n := len(snap.Value.([]any))
		if have := p.sys.Len(c); have > n {
			p.sys.Truncate(c, n)
			p.hooks.Truncated(c, have, n)
		}
	} else {
		keys := p.sys.Keys(c)
		if old.Kind == TrackedArray {
			// removing shifts later indices
			slices.Reverse(keys)
		}
		for _, k := range keys {
			if snapshotHas(old.Kind, snap, k) {
				continue
			}
			p.sys.Remove(c, k)
			p.hooks.Removed(c, k)
		}
	}

	switch snap.Kind {
	case SnapshotPlainObject, SnapshotExtendedObject:
		fields := plain.Fields(snap.Value)
		for _, k := range slices.Sorted(maps.Keys(fields)) {
			p.value(keySlot{sys: p.sys, c: c, key: k}, fields[k])
		}
	case SnapshotArray:
		for i, v := range snap.Value.([]any) {
			p.value(keySlot{sys: p.sys, c: c, key: i}, v)
		}
	case SnapshotMap:
		for _, e := range plain.Entries(snap.Value) {
			p.value(keySlot{sys: p.sys, c: c, key: e.Key}, e.Value)
		}
	}
}

// snapshotHas reports whether snap holds the member k of a container of kind
// tk. Object members match map entries by printed key.
func snapshotHas(tk TrackedKind, snap Snapshot, k any) bool {
	switch snap.Kind {
	case SnapshotPlainObject, SnapshotExtendedObject:
		ks, ok := k.(string)
		if !ok {
			return false
		}
		_, ok = plain.Fields(snap.Value)[ks]
		return ok
	case SnapshotArray:
		i, ok := k.(int)
		return ok && i >= 0 && i < len(snap.Value.([]any))
	case SnapshotMap:
		if plain.HasKey(snap.Value, k) {
			return true
		}
		ks, ok := k.(string)
		if !ok || (tk != TrackedObject && tk != TrackedExtendedObject) {
			return false
		}
		for _, e := range plain.Entries(snap.Value) {
			if fmt.Sprint(e.Key) == ks {
				return true
			}
		}
	}
	return false
}
