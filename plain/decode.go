package plain

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
)

const (
	ExtendKey = "$extend"
	MapKey    = "$map"
)

var ErrUnknownExtender = errors.New("unknown extender")

// Decoder reads snapshots from YAML or JSON documents.
type Decoder struct {
	extenders map[string]*Extender
}

func NewDecoder() *Decoder {
	return &Decoder{extenders: map[string]*Extender{}}
}

// Register makes e available to documents as `$extend: name`.
func (d *Decoder) Register(name string, e *Extender) *Decoder {
	d.extenders[name] = e
	return d
}

func Decode(data []byte) (any, error) {
	return NewDecoder().Decode(data)
}

func (d *Decoder) Decode(data []byte) (any, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return d.convert(v)
}

func (d *Decoder) convert(v any) (any, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		return d.convertMapping(x)
	case map[string]any:
		// unordered input, e.g. from a caller that decoded without
		// UseOrderedMap
		ms := make(yaml.MapSlice, 0, len(x))
		for k, xv := range x {
			ms = append(ms, yaml.MapItem{Key: k, Value: xv})
		}
		return d.convertMapping(ms)
	case []any:
		res := make([]any, len(x))
		for i, xv := range x {
			cv, err := d.convert(xv)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res[i] = cv
		}
		return res, nil
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x), nil
		}
		return x, nil
	case int:
		return int64(x), nil
	case float32:
		return float64(x), nil
	}
	return v, nil
}

func (d *Decoder) convertMapping(ms yaml.MapSlice) (any, error) {
	var (
		extName  string
		asMap    bool
		allStr   = true
		entries  = make([]Entry, 0, len(ms))
		hasExt   bool
		fieldMap map[string]any
	)
	for _, item := range ms {
		k, err := d.convert(item.Key)
		if err != nil {
			return nil, err
		}
		ks, isStr := k.(string)
		switch {
		case isStr && ks == ExtendKey:
			name, ok := item.Value.(string)
			if !ok {
				return nil, fmt.Errorf("%s: expected a name, got %T", ExtendKey, item.Value)
			}
			extName, hasExt = name, true
			continue
		case isStr && ks == MapKey:
			b, ok := item.Value.(bool)
			if !ok {
				return nil, fmt.Errorf("%s: expected a bool, got %T", MapKey, item.Value)
			}
			asMap = b
			continue
		}
		if !isStr {
			allStr = false
		}
		if !isComparable(k) {
			return nil, fmt.Errorf("unhashable mapping key %v", k)
		}
		v, err := d.convert(item.Value)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", k, err)
		}
		entries = append(entries, Entry{Key: k, Value: v})
	}
	if asMap || !allStr {
		if hasExt {
			return nil, fmt.Errorf("%s cannot be combined with a map", ExtendKey)
		}
		return MapOf(entries...), nil
	}
	fieldMap = make(map[string]any, len(entries))
	for _, e := range entries {
		fieldMap[e.Key.(string)] = e.Value
	}
	if !hasExt {
		return fieldMap, nil
	}
	ext, ok := d.extenders[extName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtender, extName)
	}
	return Extend(ext, fieldMap), nil
}
