package observable

import (
	"github.com/signadot/tony-format/go-reconcile/plain"
)

func enhance(v any) any {
	switch x := v.(type) {
	case *Object, *Array, *Map, *Box:
		return v
	case map[string]any:
		return NewObject(x)
	case []any:
		return NewArray(x)
	case *plain.Map:
		if x == nil {
			return v
		}
		return NewMap(x)
	case map[any]any:
		return newMapFromEntries(plain.Entries(x))
	}
	if ext, ok := plain.AsExtended(v); ok {
		return NewObjectFromTemplate(ext.Extender, ext.Fields)
	}
	return v
}

// From returns the tracked form of a plain value, as it would be stored by
// assigning it into a container.
func From(v any) any {
	return enhance(v)
}

// ToPlain converts tracked values back to snapshot values. Computed members
// are not included.
func ToPlain(v any) any {
	switch x := v.(type) {
	case *Object:
		res := make(map[string]any, len(x.keys))
		for _, k := range x.keys {
			res[k] = ToPlain(x.fields[k])
		}
		return res
	case *Array:
		res := make([]any, len(x.items))
		for i, xv := range x.items {
			res[i] = ToPlain(xv)
		}
		return res
	case *Map:
		res := plain.NewMap()
		for _, e := range x.entries.Entries() {
			res.Set(e.Key, ToPlain(e.Value))
		}
		return res
	case *Box:
		return ToPlain(x.value)
	}
	return v
}
