package engine

import (
	"sync"
)

// Reconciler reconciles tracked containers of one System.
type Reconciler struct {
	sys   System
	hooks Hooks

	mu sync.Mutex
}

type Option func(*Reconciler)

// WithHooks reports every decision and removal to h.
func WithHooks(h Hooks) Option {
	return func(r *Reconciler) {
		if h == nil {
			h = NopHooks{}
		}
		r.hooks = h
	}
}

func New(sys System, opts ...Option) *Reconciler {
	r := &Reconciler{sys: sys, hooks: NopHooks{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type callConfig struct {
	custom Custom
}

type CallOption func(*callConfig)

// WithPolicy overrides the replacement policy of one call. c receives the
// call's default policy.
func WithPolicy(c Custom) CallOption {
	return func(cc *callConfig) { cc.custom = c }
}

func (r *Reconciler) pass(def Policy, opts []CallOption) *pass {
	cc := &callConfig{}
	for _, opt := range opts {
		opt(cc)
	}
	return &pass{
		sys:    r.sys,
		hooks:  r.hooks,
		policy: cc.custom.Wrap(def),
	}
}

// Reconcile makes the content of target equal to snap. target must be a
// tracked object, array or map; at this level maps and objects accept each
// other's data. It returns target, or an *IncompatibleTypeError.
func (r *Reconciler) Reconcile(target, snap any, opts ...CallOption) (any, error) {
	return r.reconcile(target, snap, DefaultPolicy, opts)
}

// ReconcileAsMap is Reconcile with ObjectToMapPolicy.
func (r *Reconciler) ReconcileAsMap(target, snap any, opts ...CallOption) (any, error) {
	return r.reconcile(target, snap, ObjectToMapPolicy, opts)
}

func (r *Reconciler) reconcile(target, snap any, def Policy, opts []CallOption) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.pass(def, opts).container(target, snap); err != nil {
		return nil, err
	}
	return target, nil
}

// Property reconciles the member key of target with value. It never fails on
// type mismatches: they are resolved by the policy. It returns target.
func (r *Reconciler) Property(target, key, value any, opts ...CallOption) any {
	return r.property(target, key, value, DefaultPolicy, opts)
}

// PropertyAsMap is Property with ObjectToMapPolicy.
func (r *Reconciler) PropertyAsMap(target, key, value any, opts ...CallOption) any {
	return r.property(target, key, value, ObjectToMapPolicy, opts)
}

func (r *Reconciler) property(target, key, value any, def Policy, opts []CallOption) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.pass(def, opts)
	p.value(keySlot{sys: r.sys, c: target, key: key}, value)
	return target
}

// Boxed reconciles the content of box with value and returns box.
func (r *Reconciler) Boxed(box Box, value any, opts ...CallOption) Box {
	return r.boxed(box, value, DefaultPolicy, opts)
}

// BoxedAsMap is Boxed with ObjectToMapPolicy.
func (r *Reconciler) BoxedAsMap(box Box, value any, opts ...CallOption) Box {
	return r.boxed(box, value, ObjectToMapPolicy, opts)
}

func (r *Reconciler) boxed(box Box, value any, def Policy, opts []CallOption) Box {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pass(def, opts).value(boxSlot{box: box}, value)
	return box
}
