// Package reconcile deep patches observable containers with plain snapshots.
//
// The functions of this package bind package engine to the tracked
// containers of package observable:
//
//	state := observable.NewObject(map[string]any{"user": map[string]any{"name": "ann"}})
//	user := state.Get("user")
//	_, err := reconcile.Reconcile(state, map[string]any{
//	    "user": map[string]any{"name": "bob"},
//	})
//	// state.Get("user") == user, with name "bob"
//
// Use engine.New directly to reconcile containers of another System.
package reconcile

import (
	"github.com/signadot/tony-format/go-reconcile/engine"
	"github.com/signadot/tony-format/go-reconcile/observable"
	"github.com/signadot/tony-format/go-reconcile/plain"
)

var (
	ErrIncompatibleType = engine.ErrIncompatibleType

	_ engine.System = observable.System{}
	_ engine.Box    = (*observable.Box)(nil)
)

type Option = engine.CallOption

// WithPolicy overrides the replacement policy of one call.
func WithPolicy(c engine.Custom) Option {
	return engine.WithPolicy(c)
}

var std = engine.New(observable.System{})

// Default returns the Reconciler used by the functions of this package.
func Default() *engine.Reconciler {
	return std
}

// Reconcile makes target, a tracked object, array or map, equal to snap.
func Reconcile(target, snap any, opts ...Option) (any, error) {
	return std.Reconcile(target, snap, opts...)
}

// ReconcileAsMap is Reconcile with plain objects in snap treated as maps.
func ReconcileAsMap(target, snap any, opts ...Option) (any, error) {
	return std.ReconcileAsMap(target, snap, opts...)
}

// Property reconciles one member of a tracked container.
func Property(target, key, value any, opts ...Option) any {
	return std.Property(target, key, value, opts...)
}

func PropertyAsMap(target, key, value any, opts ...Option) any {
	return std.PropertyAsMap(target, key, value, opts...)
}

// Boxed reconciles the value of a box.
func Boxed(box *observable.Box, value any, opts ...Option) *observable.Box {
	std.Boxed(box, value, opts...)
	return box
}

func BoxedAsMap(box *observable.Box, value any, opts ...Option) *observable.Box {
	std.BoxedAsMap(box, value, opts...)
	return box
}

// MakeExtender freezes template into an Extender. It panics with
// plain.ErrBadExtender if a template member holds a tracked container.
func MakeExtender(template map[string]any) *plain.Extender {
	e := plain.NewExtender(template)
	if err := observable.CheckExtender(e); err != nil {
		panic(err)
	}
	return e
}

// IsExtenderOf reports whether v is a tracked object built from e.
func IsExtenderOf(e *plain.Extender, v any) bool {
	return engine.IsExtenderOf(observable.System{}, e, v)
}
