// Package engine reconciles tracked containers with plain snapshots.
//
// # Overview
//
// Reconciliation mutates a tracked container in place until its content
// equals a snapshot, keeping every tracked sub-container whose shape is
// compatible with the data that replaces it. Keeping containers keeps their
// identity, so observers of a kept container see member updates instead of
// a replacement.
//
// The engine does not know any concrete container type. It drives a System,
// which supplies type predicates and member access for tracked containers,
// and Box for single value containers. Package observable provides one.
//
// # Classification
//
// Every value is classified once into a TrackedKind (the existing value) or
// a SnapshotKind (the incoming value):
//
//	old := engine.ClassifyTracked(sys, cur)
//	snap := engine.ClassifySnapshot(sys, v)
//
// Object and PlainObject, Array and Array, Map and Map are compatible.
// ExtendedObject and ExtendedPlainObject are compatible when both refer to
// the same *plain.Extender. Other is compatible with nothing.
//
// # Policies
//
// At each node a Policy turns the two classifications into a Decision:
//
//   - Reuse: keep the tracked container and reconcile its members
//   - PassThrough: assign the incoming value as is, without recursion
//   - Install: assign a fresh empty container (or one built from an
//     Extender) and reconcile its members
//
// DefaultPolicy reuses compatible containers and installs a container of
// the snapshot's kind otherwise. ObjectToMapPolicy does the same but treats
// plain objects as maps, so record shaped data can populate tracked maps.
// A Custom policy is handed the default policy as its last argument:
//
//	keepArrays := engine.Custom(func(old engine.Tracked, snap engine.Snapshot, def engine.Policy) engine.Decision {
//	    if old.Kind == engine.TrackedArray && snap.Kind == engine.SnapshotArray {
//	        return engine.Reuse()
//	    }
//	    return def(old, snap)
//	})
//	r.Reconcile(target, snap, engine.WithPolicy(keepArrays))
//
// After an installation the engine reads back the value that landed and
// classifies it again; the container system may have transformed it.
//
// # Member Merge
//
// Members are merged in two passes. First every key of the tracked container
// that the snapshot lacks is removed; an array reconciled with an array is
// instead truncated once to the snapshot's length. Then every member of the
// snapshot is reconciled into the container. Plain object members are
// visited in sorted key order, maps in entry order and arrays by index.
//
// Keys of a tracked object match the entries of a map snapshot by their
// printed form. Computed members of an extended object are never
// enumerated, so they are never removed.
//
// # Errors
//
// Only Reconcile fails, with *IncompatibleTypeError, when the top level
// shapes cannot match. At the top level maps and objects are interchangeable.
// Lower level mismatches are resolved by the policy.
//
// # Thread Safety
//
// A Reconciler serializes its calls, so one Reconcile call is a single
// critical section for the containers it touches through that Reconciler.
// Calling a Reconciler from a change listener while it runs deadlocks.
package engine
