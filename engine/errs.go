package engine

import (
	"errors"
	"fmt"
)

var ErrIncompatibleType = errors.New("incompatible type")

// IncompatibleTypeError means a snapshot cannot populate a container at the
// top level, e.g. an array snapshot for a tracked object.
type IncompatibleTypeError struct {
	Tracked  TrackedKind
	Snapshot SnapshotKind
}

func (e *IncompatibleTypeError) Error() string {
	return fmt.Sprintf("%s: cannot reconcile %s snapshot into tracked %s", ErrIncompatibleType, e.Snapshot, e.Tracked)
}

func (e *IncompatibleTypeError) Is(target error) bool {
	return target == ErrIncompatibleType
}
