package plain

import (
	"reflect"
)

// Extended is a plain object whose tracked counterpart is built from an
// Extender template.
type Extended struct {
	Extender *Extender
	Fields   map[string]any
}

func Extend(e *Extender, fields map[string]any) Extended {
	return Extended{Extender: e, Fields: fields}
}

// IsObject reports whether v is a plain object, an Extended included.
func IsObject(v any) bool {
	switch v.(type) {
	case map[string]any, Extended, *Extended:
		return true
	}
	return false
}

func IsArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

func IsMap(v any) bool {
	switch x := v.(type) {
	case *Map:
		return x != nil
	case map[any]any:
		return true
	}
	return false
}

// AsExtended returns the Extended held by v if any.
func AsExtended(v any) (Extended, bool) {
	switch x := v.(type) {
	case Extended:
		return x, x.Extender != nil
	case *Extended:
		if x == nil || x.Extender == nil {
			return Extended{}, false
		}
		return *x, true
	}
	return Extended{}, false
}

// ExtenderOf returns the Extender carried by an Extended snapshot, or nil.
func ExtenderOf(v any) *Extender {
	x, ok := AsExtended(v)
	if !ok {
		return nil
	}
	return x.Extender
}

// Fields returns the own members of a plain object or Extended.
func Fields(v any) map[string]any {
	switch x := v.(type) {
	case map[string]any:
		return x
	case Extended:
		return x.Fields
	case *Extended:
		if x == nil {
			return nil
		}
		return x.Fields
	}
	return nil
}

// IsScalar reports whether v can never be a container: booleans, numbers,
// strings and functions. nil is not a scalar.
func IsScalar(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String, reflect.Func:
		return true
	}
	return false
}

// Same reports identity of two values: equal comparable values, or the same
// pointer. Maps and slices are never the same as anything, including
// themselves, since they have no identity a tracked value could share.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}

func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}
