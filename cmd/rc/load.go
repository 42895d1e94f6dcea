package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/signadot/tony-format/go-reconcile/engine"
	"github.com/signadot/tony-format/go-reconcile/format"
	"github.com/signadot/tony-format/go-reconcile/metrics"
	"github.com/signadot/tony-format/go-reconcile/observable"
	"github.com/signadot/tony-format/go-reconcile/plain"
	"github.com/signadot/tony-format/go-reconcile/policy"

	"github.com/scott-cotton/cli"
)

// decoder returns a decoder knowing the extenders of the -x file.
func (cfg *MainConfig) decoder() (*plain.Decoder, error) {
	dec := plain.NewDecoder()
	if cfg.Extenders == "" {
		return dec, nil
	}
	d, err := os.ReadFile(cfg.Extenders)
	if err != nil {
		return nil, fmt.Errorf("could not read extenders: %w", err)
	}
	v, err := plain.Decode(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", cfg.Extenders, err)
	}
	tmpls, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: expected templates by name", plain.ErrBadExtender, cfg.Extenders)
	}
	for _, name := range slices.Sorted(maps.Keys(tmpls)) {
		tmpl, ok := tmpls[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s: template %q is not an object", plain.ErrBadExtender, cfg.Extenders, name)
		}
		dec.Register(name, plain.NewExtender(tmpl))
	}
	return dec, nil
}

func (cfg *MainConfig) readDoc(dec *plain.Decoder, file string) (any, error) {
	var (
		d   []byte
		err error
	)
	if file == "-" {
		d, err = io.ReadAll(os.Stdin)
	} else {
		d, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	if cfg.inFormat(file).IsJSON() && !json.Valid(d) {
		return nil, fmt.Errorf("%w: %s is not json", format.ErrBadFormat, file)
	}
	v, err := dec.Decode(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return v, nil
}

// loadState reads file as the tracked container to reconcile.
func (cfg *MainConfig) loadState(dec *plain.Decoder, file string) (any, error) {
	v, err := cfg.readDoc(dec, file)
	if err != nil {
		return nil, err
	}
	state := observable.From(v)
	sys := observable.System{}
	if !sys.IsObject(state) && !sys.IsArray(state) && !sys.IsMap(state) {
		return nil, fmt.Errorf("%w: state %s must be an object, array or map", cli.ErrUsage, file)
	}
	return state, nil
}

type runFunc func(state, snap any) error

func reconcileFunc(asMap bool, src string) (runFunc, error) {
	r := engine.New(observable.System{}, engine.WithHooks(metrics.Hooks{}))
	var opts []engine.CallOption
	if src != "" {
		c, err := policy.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("%w: policy: %w", cli.ErrUsage, err)
		}
		opts = append(opts, engine.WithPolicy(c))
	}
	return func(state, snap any) error {
		start := time.Now()
		var err error
		if asMap {
			_, err = r.ReconcileAsMap(state, snap, opts...)
		} else {
			_, err = r.Reconcile(state, snap, opts...)
		}
		metrics.ObserveRun(start, err)
		return err
	}, nil
}
