package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/signadot/tony-format/go-reconcile/encode"
	"github.com/signadot/tony-format/go-reconcile/libdiff"
	"github.com/signadot/tony-format/go-reconcile/observable"
	"github.com/signadot/tony-format/go-reconcile/plain"

	"github.com/fsnotify/fsnotify"
	"github.com/google/gops/agent"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"
)

func watch(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 || args[1] == "-" {
		return fmt.Errorf("%w: expected <state> <snapshot-file>", cli.ErrUsage)
	}

	if err := agent.Listen(agent.Options{}); err != nil {
		fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
	}
	defer agent.Close()

	dec, err := cfg.decoder()
	if err != nil {
		return err
	}
	state, err := cfg.loadState(dec, args[0])
	if err != nil {
		return err
	}
	run, err := reconcileFunc(cfg.AsMap, cfg.Policy)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	// editors often replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(args[1])); err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[1], err)
	}

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Metrics != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: cfg.Metrics, Handler: mux}
		g.Go(func() error {
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return srv.Shutdown(context.Background())
		})
		fmt.Fprintf(cc.Out, "metrics on http://%s/metrics\n", cfg.Metrics)
	}
	w := &watchLoop{
		cfg:     cfg,
		cc:      cc,
		dec:     dec,
		state:   state,
		run:     run,
		file:    filepath.Clean(args[1]),
		encOpts: cfg.encOpts(cc.Out, args[0]),
	}
	g.Go(func() error {
		return w.loop(ctx, watcher)
	})
	return g.Wait()
}

type watchLoop struct {
	cfg     *WatchConfig
	cc      *cli.Context
	dec     *plain.Decoder
	state   any
	run     runFunc
	file    string
	encOpts []encode.EncodeOption
}

func (w *watchLoop) loop(ctx context.Context, watcher *fsnotify.Watcher) error {
	w.apply()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.cc.Out, "watch error: %v\n", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.file {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.apply()
		}
	}
}

// apply reconciles the state with the current snapshot. Errors are reported
// and the state is kept: the file may be half written.
func (w *watchLoop) apply() {
	out := w.cc.Out
	snap, err := w.cfg.readDoc(w.dec, w.file)
	if err != nil {
		fmt.Fprintf(out, "%v\n", err)
		return
	}
	before := observable.ToPlain(w.state)
	if err := w.run(w.state, snap); err != nil {
		fmt.Fprintf(out, "error reconciling with %s: %v\n", w.file, err)
		return
	}
	if w.cfg.Diff {
		f := encode.FormatFromOpts(w.encOpts...)
		lines, err := libdiff.Values(before, observable.ToPlain(w.state), encode.EncodeFormat(f))
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
			return
		}
		if libdiff.Changed(lines) {
			fmt.Fprint(out, libdiff.Pretty(lines, w.cfg.colors(out)))
			fmt.Fprint(out, "---\n")
		}
		return
	}
	if err := encode.Encode(w.state, out, w.encOpts...); err != nil {
		fmt.Fprintf(out, "error encoding result: %v\n", err)
		return
	}
	fmt.Fprint(out, "---\n")
}
