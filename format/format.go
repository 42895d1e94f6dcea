// Package format names the document formats snapshots and states are read
// and written in.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	YAMLFormat Format = iota
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"y":    YAMLFormat,
		"yaml": YAMLFormat,
		"yml":  YAMLFormat,
		"j":    JSONFormat,
		"json": JSONFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromPath guesses the format of a file from its extension, defaulting to
// YAML which also accepts JSON input.
func FromPath(p string) Format {
	ext := strings.TrimPrefix(filepath.Ext(p), ".")
	f, err := ParseFormat(strings.ToLower(ext))
	if err != nil {
		return YAMLFormat
	}
	return f
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case YAMLFormat:
		return []byte("yaml"), nil
	case JSONFormat:
		return []byte("json"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
