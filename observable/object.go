package observable

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/tony-format/go-reconcile/plain"
)

var ErrReadOnly = errors.New("read only member")

// Object is a tracked string keyed container.
type Object struct {
	node
	keys     []string
	fields   map[string]any
	extender *plain.Extender
}

// NewObject builds a tracked object from a plain object, enhancing its
// members. Members are added in sorted key order.
func NewObject(fields map[string]any) *Object {
	o := &Object{fields: make(map[string]any, len(fields))}
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		o.put(k, fields[k])
	}
	return o
}

// NewObjectFromTemplate builds a tracked object from an extender: the
// template's data members first, then overrides on top. The result is tagged
// with e, so it is compatible with Extended snapshots of the same e.
// It panics with plain.ErrBadExtender if e fails CheckExtender.
func NewObjectFromTemplate(e *plain.Extender, overrides map[string]any) *Object {
	if err := CheckExtender(e); err != nil {
		panic(err)
	}
	o := &Object{fields: map[string]any{}, extender: e}
	defaults := e.Defaults()
	for _, k := range slices.Sorted(maps.Keys(defaults)) {
		o.put(k, defaults[k])
	}
	for _, k := range slices.Sorted(maps.Keys(overrides)) {
		if c, ok := e.Computed(k); ok {
			if c.Set != nil {
				c.Set(o, overrides[k])
			}
			continue
		}
		o.put(k, overrides[k])
	}
	return o
}

// CheckExtender rejects templates whose data members hold tracked values.
// A tracked value has one parent, so it cannot be shared by every object
// built from the template.
func CheckExtender(e *plain.Extender) error {
	defaults := e.Defaults()
	for _, k := range slices.Sorted(maps.Keys(defaults)) {
		if holdsTracked(defaults[k]) {
			return fmt.Errorf("%w: member %q holds a tracked value", plain.ErrBadExtender, k)
		}
	}
	return nil
}

func holdsTracked(v any) bool {
	if _, ok := asTracked(v); ok {
		return true
	}
	switch x := v.(type) {
	case map[string]any:
		for _, xv := range x {
			if holdsTracked(xv) {
				return true
			}
		}
	case []any:
		for _, xv := range x {
			if holdsTracked(xv) {
				return true
			}
		}
	case *plain.Map, map[any]any:
		for _, en := range plain.Entries(x) {
			if holdsTracked(en.Value) {
				return true
			}
		}
	}
	return false
}

// put stores without notifying, for construction.
func (o *Object) put(k string, v any) {
	v = enhance(v)
	if _, ok := o.fields[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.fields[k] = v
	adopt(o, k, v)
}

func (o *Object) Extender() *plain.Extender {
	return o.extender
}

// Get returns the member at key, computing it if key names a computed
// member of the object's extender.
func (o *Object) Get(key string) any {
	v, _ := o.Lookup(key)
	return v
}

func (o *Object) Lookup(key string) (any, bool) {
	if v, ok := o.fields[key]; ok {
		return v, true
	}
	if o.extender != nil {
		if c, ok := o.extender.Computed(key); ok {
			return c.Get(o), true
		}
	}
	return nil, false
}

// Has reports whether key is a data member.
func (o *Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Set assigns a member. Assigning to a computed member calls its setter
// and panics with ErrReadOnly if it has none.
func (o *Object) Set(key string, v any) {
	if _, isData := o.fields[key]; !isData && o.extender != nil {
		if c, ok := o.extender.Computed(key); ok {
			if c.Set == nil {
				panic(fmt.Errorf("%w: %q", ErrReadOnly, key))
			}
			c.Set(o, v)
			return
		}
	}
	old, exists := o.fields[key]
	v = enhance(v)
	if exists && plain.Same(old, v) {
		return
	}
	if !exists {
		o.keys = append(o.keys, key)
	} else {
		orphan(o, old)
	}
	o.fields[key] = v
	adopt(o, key, v)
	ct := AddChange
	if exists {
		ct = UpdateChange
	}
	notify(o, Change{Type: ct, Container: o, Key: key, Old: old, New: v})
}

func (o *Object) Remove(key string) {
	old, ok := o.fields[key]
	if !ok {
		return
	}
	delete(o.fields, key)
	i := slices.Index(o.keys, key)
	o.keys = slices.Delete(o.keys, i, i+1)
	orphan(o, old)
	notify(o, Change{Type: RemoveChange, Container: o, Key: key, Old: old})
}

// Keys returns the data member keys in insertion order. Computed members are
// not listed.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

func (o *Object) Len() int {
	return len(o.keys)
}

func (o *Object) String() string {
	return fmt.Sprintf("Object%v", o.keys)
}
