package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/signadot/tony-format/go-reconcile/engine"
	"github.com/signadot/tony-format/go-reconcile/format"
	"github.com/signadot/tony-format/go-reconcile/observable"
	"github.com/signadot/tony-format/go-reconcile/plain"

	"github.com/scott-cotton/cli"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDecoderExtenders(t *testing.T) {
	dir := t.TempDir()
	cfg := &MainConfig{Extenders: writeFile(t, dir, "ext.yaml", "counter:\n  n: 0\n")}
	dec, err := cfg.decoder()
	if err != nil {
		t.Fatal(err)
	}
	snap, err := cfg.readDoc(dec, writeFile(t, dir, "snap.yaml", "c:\n  $extend: counter\n  n: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	c := snap.(map[string]any)["c"]
	if engine.ClassifySnapshot(observable.System{}, c).Kind != engine.SnapshotExtendedObject {
		t.Errorf("c is %T", c)
	}

	cfg.Extenders = writeFile(t, dir, "bad.yaml", "- 1\n")
	if _, err := cfg.decoder(); !errors.Is(err, plain.ErrBadExtender) {
		t.Errorf("got %v want %v", err, plain.ErrBadExtender)
	}
}

func TestReadDocFormat(t *testing.T) {
	dir := t.TempDir()
	cfg := &MainConfig{}
	dec := plain.NewDecoder()
	if _, err := cfg.readDoc(dec, writeFile(t, dir, "a.json", "a: 1\n")); !errors.Is(err, format.ErrBadFormat) {
		t.Errorf("got %v want %v", err, format.ErrBadFormat)
	}
	f := format.YAMLFormat
	cfg.InFormat = &f
	if _, err := cfg.readDoc(dec, filepath.Join(dir, "a.json")); err != nil {
		t.Error(err)
	}
}

func TestLoadState(t *testing.T) {
	dir := t.TempDir()
	cfg := &MainConfig{}
	dec := plain.NewDecoder()
	state, err := cfg.loadState(dec, writeFile(t, dir, "s.yaml", "a: [1]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := state.(*observable.Object); !ok {
		t.Errorf("state is %T", state)
	}
	if _, err := cfg.loadState(dec, writeFile(t, dir, "s2.yaml", "1\n")); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("got %v want %v", err, cli.ErrUsage)
	}
}

func TestReconcileFunc(t *testing.T) {
	if _, err := reconcileFunc(false, "tracked =="); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("got %v want %v", err, cli.ErrUsage)
	}
	run, err := reconcileFunc(true, `snapshot == "Array" ? "pass-through" : "default"`)
	if err != nil {
		t.Fatal(err)
	}
	state := observable.NewObject(map[string]any{"o": map[string]any{}})
	if err := run(state, map[string]any{"o": map[string]any{"k": 1}, "xs": []any{1}}); err != nil {
		t.Fatal(err)
	}
	if _, ok := state.Get("o").(*observable.Map); !ok {
		t.Errorf("o is %T", state.Get("o"))
	}
	if err := run(state, []any{}); !errors.Is(err, engine.ErrIncompatibleType) {
		t.Errorf("got %v want %v", err, engine.ErrIncompatibleType)
	}
}
