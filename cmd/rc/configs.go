package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/tony-format/go-reconcile/encode"
	"github.com/signadot/tony-format/go-reconcile/format"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color     bool   `cli:"name=color desc='encode with color'"`
	Extenders string `cli:"name=x desc='file of named extender templates'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) flagFormat() (format.Format, bool) {
	switch {
	case cfg.Y:
		return format.YAMLFormat, true
	case cfg.J:
		return format.JSONFormat, true
	}
	return format.YAMLFormat, false
}

// inFormat is the format documents read from path must have.
func (cfg *MainConfig) inFormat(path string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if f, ok := cfg.flagFormat(); ok {
		return f
	}
	return format.FromPath(path)
}

// encOpts encodes in the output format, or the format of the document at
// path.
func (cfg *MainConfig) encOpts(w io.Writer, path string) []encode.EncodeOption {
	fmt, ok := cfg.flagFormat()
	if !ok {
		fmt = format.FromPath(path)
	}
	if cfg.OutFormat != nil {
		fmt = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmt),
	}
	if colors := cfg.colors(w); colors != nil {
		res = append(res, encode.EncodeColors(colors))
	}
	return res
}

func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if cfg.Color {
		return encode.NewColors()
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return encode.NewColors()
	}
	return nil
}

type ApplyConfig struct {
	*MainConfig

	AsMap   bool   `cli:"name=map desc='treat snapshot objects as maps'"`
	Policy  string `cli:"name=policy desc='replacement policy expression'"`
	Journal bool   `cli:"name=journal desc='output the changes as a json patch'"`
	Diff    bool   `cli:"name=diff desc='output a line diff of the state'"`

	Apply *cli.Command
}

type WatchConfig struct {
	*MainConfig

	AsMap   bool   `cli:"name=map desc='treat snapshot objects as maps'"`
	Policy  string `cli:"name=policy desc='replacement policy expression'"`
	Diff    bool   `cli:"name=diff desc='output a line diff of each change'"`
	Metrics string `cli:"name=metrics desc='prometheus listen address' default=localhost:9125"`

	Watch *cli.Command
}

type KindsConfig struct {
	*MainConfig

	Kinds *cli.Command
}
