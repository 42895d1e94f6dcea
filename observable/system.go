package observable

import (
	"fmt"
	"reflect"

	"github.com/signadot/tony-format/go-reconcile/debug"
	"github.com/signadot/tony-format/go-reconcile/plain"
)

// System exposes the tracked containers of this package through untyped
// accessors, the form a reconciler consumes.
type System struct{}

func (System) IsTracked(v any) bool {
	_, ok := asTracked(v)
	return ok
}

func (System) IsObject(v any) bool {
	x, ok := v.(*Object)
	return ok && x != nil
}

func (System) IsArray(v any) bool {
	x, ok := v.(*Array)
	return ok && x != nil
}

func (System) IsMap(v any) bool {
	x, ok := v.(*Map)
	return ok && x != nil
}

func (System) ExtenderOf(v any) *plain.Extender {
	x, ok := v.(*Object)
	if !ok || x == nil {
		return nil
	}
	return x.extender
}

func (System) Get(c, key any) any {
	switch x := c.(type) {
	case *Object:
		return x.Get(objectKey(key))
	case *Array:
		i, ok := index(key)
		if !ok {
			return nil
		}
		return x.Get(i)
	case *Map:
		return x.Get(key)
	}
	panic(fmt.Sprintf("observable: get on %T", c))
}

func (System) Has(c, key any) bool {
	switch x := c.(type) {
	case *Object:
		return x.Has(objectKey(key))
	case *Array:
		i, ok := index(key)
		return ok && i < x.Len()
	case *Map:
		return x.Has(key)
	}
	panic(fmt.Sprintf("observable: has on %T", c))
}

func (System) Set(c, key, v any) {
	switch x := c.(type) {
	case *Object:
		x.Set(objectKey(key), v)
		return
	case *Array:
		i, ok := index(key)
		if !ok {
			if debug.Observe() {
				debug.Logf("observe: dropping array key %v (%T)\n", key, key)
			}
			return
		}
		// indices past the end grow the array with nils
		for x.Len() < i {
			x.Push(nil)
		}
		x.Set(i, v)
		return
	case *Map:
		x.Set(key, v)
		return
	}
	panic(fmt.Sprintf("observable: set on %T", c))
}

func (System) Remove(c, key any) {
	switch x := c.(type) {
	case *Object:
		x.Remove(objectKey(key))
		return
	case *Array:
		if i, ok := index(key); ok {
			x.Remove(i)
		}
		return
	case *Map:
		x.Remove(key)
		return
	}
	panic(fmt.Sprintf("observable: remove on %T", c))
}

func (System) Keys(c any) []any {
	switch x := c.(type) {
	case *Object:
		res := make([]any, len(x.keys))
		for i, k := range x.keys {
			res[i] = k
		}
		return res
	case *Array:
		res := make([]any, len(x.items))
		for i := range x.items {
			res[i] = i
		}
		return res
	case *Map:
		return x.Keys()
	}
	panic(fmt.Sprintf("observable: keys of %T", c))
}

func (System) Len(c any) int {
	switch x := c.(type) {
	case *Object:
		return x.Len()
	case *Array:
		return x.Len()
	case *Map:
		return x.Len()
	}
	return 0
}

func (System) Truncate(c any, n int) {
	x, ok := c.(*Array)
	if !ok {
		panic(fmt.Sprintf("observable: truncate of %T", c))
	}
	x.Truncate(n)
}

// objectKey names a member of an object. Keys that are not strings use
// their printed form.
func objectKey(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}

func index(key any) (int, bool) {
	if key == nil {
		return 0, false
	}
	v := reflect.ValueOf(key)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), v.Int() >= 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(v.Uint()), true
	}
	return 0, false
}
