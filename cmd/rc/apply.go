package main

import (
	"encoding/json"
	"fmt"

	"github.com/signadot/tony-format/go-reconcile/encode"
	"github.com/signadot/tony-format/go-reconcile/journal"
	"github.com/signadot/tony-format/go-reconcile/libdiff"
	"github.com/signadot/tony-format/go-reconcile/observable"

	"github.com/scott-cotton/cli"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: expected <state> <snapshot>", cli.ErrUsage)
	}
	if cfg.Journal && cfg.Diff {
		return fmt.Errorf("%w: -journal and -diff are exclusive", cli.ErrUsage)
	}
	dec, err := cfg.decoder()
	if err != nil {
		return err
	}
	state, err := cfg.loadState(dec, args[0])
	if err != nil {
		return err
	}
	snap, err := cfg.readDoc(dec, args[1])
	if err != nil {
		return err
	}
	run, err := reconcileFunc(cfg.AsMap, cfg.Policy)
	if err != nil {
		return err
	}
	before := observable.ToPlain(state)
	var rec *journal.Recorder
	if cfg.Journal {
		rec = journal.Record(state)
	}
	if err := run(state, snap); err != nil {
		return fmt.Errorf("error reconciling %s with %s: %w", args[0], args[1], err)
	}
	encOpts := cfg.encOpts(cc.Out, args[0])
	switch {
	case cfg.Journal:
		rec.Stop()
		d, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		_, err = cc.Out.Write(append(d, '\n'))
		return err
	case cfg.Diff:
		f := encode.FormatFromOpts(encOpts...)
		lines, err := libdiff.Values(before, observable.ToPlain(state), encode.EncodeFormat(f))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cc.Out, libdiff.Pretty(lines, cfg.colors(cc.Out)))
		return err
	}
	if err := encode.Encode(state, cc.Out, encOpts...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
