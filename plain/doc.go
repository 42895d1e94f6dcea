// Package plain defines the untracked snapshot values that describe the
// desired state of a tracked tree.
//
// # Snapshot Values
//
// A snapshot is an ordinary Go value. Four shapes are recognized as
// containers; everything else is opaque and is assigned as is:
//
//   - map[string]any: a plain object
//   - []any: an array
//   - *Map (or map[any]any): a map with arbitrary comparable keys
//   - Extended: a plain object carrying a reference to an Extender
//
// The plain object test is an exact dynamic type match. Structs, pointers and
// typed maps such as map[string]int are not plain data, the same way class
// instances are not plain objects in a prototype based system.
//
// # Extenders
//
// An Extender is a frozen template of default members used when a fresh
// tracked object is built for an Extended snapshot:
//
//	greeter := plain.NewExtender(map[string]any{
//	    "greeting": plain.Computed{Get: func(s plain.Self) any {
//	        return "hello " + s.Get("name").(string)
//	    }},
//	})
//	snap := plain.Extend(greeter, map[string]any{"name": "ann"})
//
// Extender identity matters: two tracked objects are interchangeable only if
// they were built from the same *Extender.
//
// # Decoding
//
// Decoder reads YAML or JSON documents into snapshot values, preserving
// mapping order. A mapping holding `$map: true` decodes as a *Map and a
// mapping holding `$extend: name` decodes as an Extended built with the
// Extender registered under name.
package plain
