package engine

import (
	"fmt"

	"github.com/signadot/tony-format/go-reconcile/plain"
)

// TrackedKind classifies an existing, tracked value.
type TrackedKind int

const (
	TrackedOther TrackedKind = iota
	TrackedObject
	TrackedArray
	TrackedMap
	// TrackedExtendedObject is a tracked object built from an Extender.
	TrackedExtendedObject
)

func (k TrackedKind) String() string {
	s, ok := map[TrackedKind]string{
		TrackedOther:          "Other",
		TrackedObject:         "Object",
		TrackedArray:          "Array",
		TrackedMap:            "Map",
		TrackedExtendedObject: "ExtendedObject",
	}[k]
	if ok {
		return s
	}
	return "<unknown tracked kind>"
}

func (k TrackedKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// SnapshotKind classifies an incoming, plain value.
type SnapshotKind int

const (
	SnapshotOther SnapshotKind = iota
	SnapshotPlainObject
	SnapshotArray
	SnapshotMap
	// SnapshotExtendedObject is a plain object carrying an Extender.
	SnapshotExtendedObject
)

func (k SnapshotKind) String() string {
	s, ok := map[SnapshotKind]string{
		SnapshotOther:          "Other",
		SnapshotPlainObject:    "PlainObject",
		SnapshotArray:          "Array",
		SnapshotMap:            "Map",
		SnapshotExtendedObject: "ExtendedPlainObject",
	}[k]
	if ok {
		return s
	}
	return "<unknown snapshot kind>"
}

func (k SnapshotKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *SnapshotKind) UnmarshalText(d []byte) error {
	for _, sk := range SnapshotKinds() {
		if sk.String() == string(d) {
			*k = sk
			return nil
		}
	}
	return fmt.Errorf("unrecognized snapshot kind %q", d)
}

func SnapshotKinds() []SnapshotKind {
	return []SnapshotKind{
		SnapshotOther,
		SnapshotPlainObject,
		SnapshotArray,
		SnapshotMap,
		SnapshotExtendedObject,
	}
}

// Tracked is a classified existing value.
type Tracked struct {
	Kind     TrackedKind
	Value    any
	Extender *plain.Extender
}

// Snapshot is a classified incoming value.
type Snapshot struct {
	Kind     SnapshotKind
	Value    any
	Extender *plain.Extender
}

func ClassifyTracked(sys System, v any) Tracked {
	res := Tracked{Value: v}
	switch {
	case sys.IsObject(v):
		res.Kind = TrackedObject
		if e := sys.ExtenderOf(v); e != nil {
			res.Kind = TrackedExtendedObject
			res.Extender = e
		}
	case sys.IsArray(v):
		res.Kind = TrackedArray
	case sys.IsMap(v):
		res.Kind = TrackedMap
	}
	return res
}

// ClassifySnapshot classifies v. Tracked values are always SnapshotOther: they
// are assigned, not merged.
func ClassifySnapshot(sys System, v any) Snapshot {
	res := Snapshot{Value: v}
	if v == nil || sys.IsTracked(v) {
		return res
	}
	if ext, ok := plain.AsExtended(v); ok {
		res.Kind = SnapshotExtendedObject
		res.Extender = ext.Extender
		return res
	}
	switch {
	case plain.IsObject(v):
		res.Kind = SnapshotPlainObject
	case plain.IsArray(v):
		res.Kind = SnapshotArray
	case plain.IsMap(v):
		res.Kind = SnapshotMap
	}
	return res
}
