package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/signadot/tony-format/go-reconcile/format"
	"github.com/signadot/tony-format/go-reconcile/observable"
	"github.com/signadot/tony-format/go-reconcile/plain"

	"github.com/goccy/go-yaml"
)

type EncState struct {
	indent int
	format format.Format
	colors *Colors
}

// Encode writes v, a tracked or plain value, to w. Tracked objects and maps
// keep their member order, plain objects are sorted by key.
func Encode(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	var (
		d   []byte
		err error
	)
	if es.format.IsJSON() {
		d, err = json.MarshalIndent(JSONValue(v), "", strings.Repeat(" ", es.indent))
		d = append(d, '\n')
	} else {
		d, err = yaml.MarshalWithOptions(YAMLValue(v), yaml.Indent(es.indent))
	}
	if err != nil {
		return err
	}
	if es.colors != nil {
		_, err = io.WriteString(w, es.colors.Print(d))
		return err
	}
	_, err = w.Write(d)
	return err
}

// YAMLValue converts a tracked or plain value to an ordered tree for
// go-yaml.
func YAMLValue(v any) any {
	switch x := v.(type) {
	case *observable.Box:
		return YAMLValue(x.Get())
	case *observable.Object:
		res := make(yaml.MapSlice, 0, x.Len())
		for _, k := range x.Keys() {
			res = append(res, yaml.MapItem{Key: k, Value: YAMLValue(x.Get(k))})
		}
		return res
	case *observable.Array:
		return yamlSlice(x.Items())
	case *observable.Map:
		return yamlEntries(x.Entries())
	case map[string]any:
		return yamlFields(x)
	case plain.Extended:
		return yamlFields(x.Fields)
	case *plain.Extended:
		return yamlFields(x.Fields)
	case []any:
		return yamlSlice(x)
	case *plain.Map, map[any]any:
		return yamlEntries(plain.Entries(x))
	}
	return v
}

func yamlFields(m map[string]any) yaml.MapSlice {
	res := make(yaml.MapSlice, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		res = append(res, yaml.MapItem{Key: k, Value: YAMLValue(m[k])})
	}
	return res
}

func yamlSlice(items []any) []any {
	res := make([]any, len(items))
	for i, item := range items {
		res[i] = YAMLValue(item)
	}
	return res
}

func yamlEntries(entries []plain.Entry) yaml.MapSlice {
	res := make(yaml.MapSlice, len(entries))
	for i, e := range entries {
		res[i] = yaml.MapItem{Key: e.Key, Value: YAMLValue(e.Value)}
	}
	return res
}

// JSONValue converts a tracked or plain value to values encoding/json
// handles. Map keys use their printed form.
func JSONValue(v any) any {
	switch x := observable.ToPlain(v).(type) {
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, xv := range x {
			res[k] = JSONValue(xv)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i, xv := range x {
			res[i] = JSONValue(xv)
		}
		return res
	case *plain.Map, map[any]any:
		entries := plain.Entries(x)
		res := make(map[string]any, len(entries))
		for _, e := range entries {
			res[fmt.Sprint(e.Key)] = JSONValue(e.Value)
		}
		return res
	case plain.Extended:
		return JSONValue(x.Fields)
	case *plain.Extended:
		return JSONValue(x.Fields)
	default:
		return x
	}
}
