package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "rc").
		WithSynopsis("rc [opts] command [opts]").
		WithDescription("rc reconciles documents with snapshots in place.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return rcMain(cfg, cc, args)
		}).
		WithSubs(
			ApplyCommand(cfg),
			WatchCommand(cfg),
			KindsCommand(cfg))
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Apply, "apply").
		WithAliases("a", "ap").
		WithSynopsis("apply [-map] [-policy expr] [-journal] [-diff] <state> <snapshot>").
		WithDescription("reconcile state with snapshot and show the result").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
}

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{MainConfig: mainCfg, Metrics: "localhost:9125"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Watch, "watch").
		WithAliases("w").
		WithSynopsis("watch [-map] [-policy expr] [-metrics addr] <state> <snapshot>").
		WithDescription("reconcile state each time snapshot changes").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return watch(cfg, cc, args)
		})
}

func KindsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &KindsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Kinds, "kinds").
		WithAliases("k").
		WithSynopsis("kinds <file>").
		WithDescription("show how the members of a snapshot are classified").
		WithRun(func(cc *cli.Context, args []string) error {
			return kinds(cfg, cc, args)
		})
}
