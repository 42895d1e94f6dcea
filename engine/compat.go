package engine

// Compatible reports whether the tracked container old can be kept to hold
// snap.
func Compatible(old Tracked, snap Snapshot) bool {
	if snap.Kind == SnapshotOther {
		return false
	}
	if !sameShape(old.Kind, snap.Kind) {
		return false
	}
	if snap.Kind == SnapshotExtendedObject {
		return old.Extender == snap.Extender
	}
	return true
}

func sameShape(tk TrackedKind, sk SnapshotKind) bool {
	switch tk {
	case TrackedObject:
		return sk == SnapshotPlainObject
	case TrackedArray:
		return sk == SnapshotArray
	case TrackedMap:
		return sk == SnapshotMap
	case TrackedExtendedObject:
		return sk == SnapshotExtendedObject
	}
	return false
}
