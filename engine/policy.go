package engine

import (
	"fmt"

	"github.com/signadot/tony-format/go-reconcile/plain"
)

type Action int

const (
	ReuseAction Action = iota
	PassThroughAction
	InstallAction
)

func (a Action) String() string {
	s, ok := map[Action]string{
		ReuseAction:       "reuse",
		PassThroughAction: "pass-through",
		InstallAction:     "install",
	}[a]
	if ok {
		return s
	}
	return "<unknown action>"
}

// Decision is the outcome of a Policy for one node.
type Decision struct {
	Action Action
	// Kind and Seed describe the container to install.
	Kind SnapshotKind
	Seed *plain.Extender
}

func Reuse() Decision {
	return Decision{Action: ReuseAction}
}

func PassThrough() Decision {
	return Decision{Action: PassThroughAction}
}

// Install asks for an empty container of the given kind. For
// SnapshotExtendedObject, seed is the Extender to build it from.
func Install(kind SnapshotKind, seed *plain.Extender) Decision {
	return Decision{Action: InstallAction, Kind: kind, Seed: seed}
}

func (d Decision) String() string {
	if d.Action != InstallAction {
		return d.Action.String()
	}
	if d.Seed != nil {
		return fmt.Sprintf("install %s from %s", d.Kind, d.Seed)
	}
	return fmt.Sprintf("install %s", d.Kind)
}

type Policy func(old Tracked, snap Snapshot) Decision

// Custom is a policy that may defer to the default policy selected by the
// caller, passed as def.
type Custom func(old Tracked, snap Snapshot, def Policy) Decision

// Wrap binds c to def. A nil Custom yields def.
func (c Custom) Wrap(def Policy) Policy {
	if c == nil {
		return def
	}
	return func(old Tracked, snap Snapshot) Decision {
		return c(old, snap, def)
	}
}

// DefaultPolicy reuses compatible containers, installs an empty container
// matching a container shaped snapshot, and passes everything else through.
func DefaultPolicy(old Tracked, snap Snapshot) Decision {
	if Compatible(old, snap) {
		return Reuse()
	}
	switch snap.Kind {
	case SnapshotPlainObject, SnapshotArray, SnapshotMap:
		return Install(snap.Kind, nil)
	case SnapshotExtendedObject:
		return Install(snap.Kind, snap.Extender)
	}
	return PassThrough()
}

// ObjectToMapPolicy is DefaultPolicy with plain objects treated as maps.
func ObjectToMapPolicy(old Tracked, snap Snapshot) Decision {
	if snap.Kind == SnapshotPlainObject {
		snap.Kind = SnapshotMap
	}
	return DefaultPolicy(old, snap)
}

// seed is the plain value assigned to install a container for d.
func seed(d Decision) any {
	switch d.Kind {
	case SnapshotPlainObject:
		return map[string]any{}
	case SnapshotArray:
		return []any{}
	case SnapshotMap:
		return plain.NewMap()
	case SnapshotExtendedObject:
		if d.Seed == nil {
			return map[string]any{}
		}
		return plain.Extend(d.Seed, nil)
	}
	return nil
}
