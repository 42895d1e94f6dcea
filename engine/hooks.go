package engine

// Hooks observe a Reconciler at work.
type Hooks interface {
	Decided(old Tracked, snap Snapshot, d Decision)
	// Assigned is called when a value is stored without recursion, either a
	// scalar or a pass-through.
	Assigned(v any)
	Removed(c, key any)
	Truncated(c any, from, to int)
}

// NopHooks does nothing. Embed it to implement a subset of Hooks.
type NopHooks struct{}

func (NopHooks) Decided(Tracked, Snapshot, Decision) {}
func (NopHooks) Assigned(any)                        {}
func (NopHooks) Removed(any, any)                    {}
func (NopHooks) Truncated(any, int, int)             {}
