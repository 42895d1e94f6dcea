package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/tony-format/go-reconcile/engine"
	"github.com/signadot/tony-format/go-reconcile/observable"
	"github.com/signadot/tony-format/go-reconcile/plain"

	"github.com/scott-cotton/cli"
)

func kinds(cfg *KindsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Kinds.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: expected <file>", cli.ErrUsage)
	}
	dec, err := cfg.decoder()
	if err != nil {
		return err
	}
	v, err := cfg.readDoc(dec, args[0])
	if err != nil {
		return err
	}
	sys := observable.System{}
	top := engine.ClassifySnapshot(sys, v)
	if top.Extender != nil {
		fmt.Fprintf(cc.Out, "%s %s\n", top.Kind, top.Extender)
	} else {
		fmt.Fprintf(cc.Out, "%s\n", top.Kind)
	}
	kind := func(v any) engine.SnapshotKind {
		return engine.ClassifySnapshot(sys, v).Kind
	}
	switch top.Kind {
	case engine.SnapshotPlainObject, engine.SnapshotExtendedObject:
		fields := plain.Fields(v)
		for _, k := range slices.Sorted(maps.Keys(fields)) {
			fmt.Fprintf(cc.Out, "  %s: %s\n", k, kind(fields[k]))
		}
	case engine.SnapshotArray:
		for i, item := range v.([]any) {
			fmt.Fprintf(cc.Out, "  %d: %s\n", i, kind(item))
		}
	case engine.SnapshotMap:
		for _, e := range plain.Entries(v) {
			fmt.Fprintf(cc.Out, "  %v: %s\n", e.Key, kind(e.Value))
		}
	}
	return nil
}
