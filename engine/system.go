package engine

import "github.com/signadot/tony-format/go-reconcile/plain"

// System is the reactive container system a Reconciler mutates.
//
// Keys must be stable for the duration of one call. Set is expected to turn
// plain container values into tracked ones; the engine never assumes it
// did and classifies what Get returns afterwards.
//
// A custom policy may reuse a container for a snapshot of another shape, so
// Set must accept any key: a container that cannot hold a key drops it.
type System interface {
	IsTracked(v any) bool
	IsObject(v any) bool
	IsArray(v any) bool
	IsMap(v any) bool
	// ExtenderOf returns the Extender a tracked object was built from.
	ExtenderOf(v any) *plain.Extender

	Get(c, key any) any
	Has(c, key any) bool
	Set(c, key, v any)
	Remove(c, key any)
	Keys(c any) []any
	Len(c any) int
	// Truncate shortens a tracked array to n elements.
	Truncate(c any, n int)
}

// Box is a tracked single value.
type Box interface {
	Get() any
	Set(v any)
}

// IsExtenderOf reports whether v is a tracked object built from e.
func IsExtenderOf(sys System, e *plain.Extender, v any) bool {
	if e == nil || !sys.IsObject(v) {
		return false
	}
	return sys.ExtenderOf(v) == e
}
