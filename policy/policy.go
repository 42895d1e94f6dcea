// Package policy builds replacement policies from expr-lang expressions.
//
// An expression sees the classification of the existing and incoming values
// and evaluates to the name of a decision:
//
//	p, err := policy.Compile(`tracked == "Map" && snapshot == "PlainObject" ? "reuse" : "default"`)
//	reconcile.Reconcile(target, snap, reconcile.WithPolicy(p))
//
// Decision names are reuse, pass-through, install (a container of the
// snapshot's kind), object, array, map (a container of that kind) and
// default (whatever the default policy decides).
//
// The environment holds tracked and snapshot (kind names), compatible,
// extended (both sides built from the same Extender), snapshotLen, and the
// method Has(key) reporting whether the snapshot has a member.
package policy

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/signadot/tony-format/go-reconcile/debug"
	"github.com/signadot/tony-format/go-reconcile/engine"
	"github.com/signadot/tony-format/go-reconcile/plain"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrBadDecision = errors.New("bad decision")

type Env struct {
	Tracked     string `expr:"tracked"`
	Snapshot    string `expr:"snapshot"`
	Compatible  bool   `expr:"compatible"`
	Extended    bool   `expr:"extended"`
	SnapshotLen int    `expr:"snapshotLen"`

	value any
}

// Has reports whether the incoming value has the member key.
func (e Env) Has(key string) bool {
	if m, ok := e.value.(map[string]any); ok {
		_, ok = m[key]
		return ok
	}
	if f := plain.Fields(e.value); f != nil {
		_, ok := f[key]
		return ok
	}
	return plain.HasKey(e.value, key)
}

func NewEnv(old engine.Tracked, snap engine.Snapshot) Env {
	return Env{
		Tracked:     old.Kind.String(),
		Snapshot:    snap.Kind.String(),
		Compatible:  engine.Compatible(old, snap),
		Extended:    old.Extender != nil && old.Extender == snap.Extender,
		SnapshotLen: snapshotLen(snap),
		value:       snap.Value,
	}
}

func snapshotLen(snap engine.Snapshot) int {
	switch snap.Kind {
	case engine.SnapshotPlainObject, engine.SnapshotExtendedObject:
		return len(plain.Fields(snap.Value))
	case engine.SnapshotArray:
		return len(snap.Value.([]any))
	case engine.SnapshotMap:
		return len(plain.Entries(snap.Value))
	}
	return 0
}

// Compile turns src into a custom policy. An expression that fails at run
// time, or evaluates to an unknown decision, defers to the default policy.
func Compile(src string) (engine.Custom, error) {
	prg, err := expr.Compile(src, expr.Env(Env{}), expr.AsKind(reflect.String))
	if err != nil {
		return nil, err
	}
	return func(old engine.Tracked, snap engine.Snapshot, def engine.Policy) engine.Decision {
		d, err := run(prg, old, snap, def)
		if err != nil {
			if debug.Policy() {
				debug.Logf("policy %q: %v\n", src, err)
			}
			return def(old, snap)
		}
		return d
	}, nil
}

func MustCompile(src string) engine.Custom {
	c, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return c
}

func run(prg *vm.Program, old engine.Tracked, snap engine.Snapshot, def engine.Policy) (engine.Decision, error) {
	res, err := expr.Run(prg, NewEnv(old, snap))
	if err != nil {
		return engine.Decision{}, err
	}
	name, ok := res.(string)
	if !ok {
		return engine.Decision{}, fmt.Errorf("%w: %T", ErrBadDecision, res)
	}
	return ParseDecision(name, old, snap, def)
}

// ParseDecision resolves a decision name against the values at hand.
func ParseDecision(name string, old engine.Tracked, snap engine.Snapshot, def engine.Policy) (engine.Decision, error) {
	switch name {
	case "default":
		return def(old, snap), nil
	case "reuse":
		return engine.Reuse(), nil
	case "pass-through", "passthrough":
		return engine.PassThrough(), nil
	case "install":
		return engine.Install(snap.Kind, snap.Extender), nil
	case "object":
		return engine.Install(engine.SnapshotPlainObject, nil), nil
	case "array":
		return engine.Install(engine.SnapshotArray, nil), nil
	case "map":
		return engine.Install(engine.SnapshotMap, nil), nil
	}
	return engine.Decision{}, fmt.Errorf("%w: %q", ErrBadDecision, name)
}
