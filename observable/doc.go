// Package observable implements tracked containers: objects, arrays, maps
// and boxes whose mutations are reported to listeners.
//
// # Containers
//
// Four tracked types exist:
//
//   - *Object: string keyed members, optionally built from a plain.Extender
//   - *Array: an indexed list
//   - *Map: an insertion ordered map with comparable keys
//   - *Box: a single value
//
// Assigning a plain value to a container enhances it: map[string]any becomes
// an *Object, []any an *Array, *plain.Map or map[any]any a *Map and a
// plain.Extended an *Object built with NewObjectFromTemplate. Tracked values
// and all other values are stored as is. A box created with Ref() stores
// values without enhancement.
//
// # Changes
//
// Every effective mutation produces a Change. Listeners registered with
// Observe receive the changes of the observed container and of every
// container below it:
//
//	cancel := observable.Observe(root, func(c observable.Change) {
//	    fmt.Println(c)
//	})
//	defer cancel()
//
// Assigning a value identical to the current one produces no change.
//
// # Parents
//
// Containers record the container they were last assigned into, so Path can
// compute the key path of a container from the root. The containers are
// meant to hold trees; a container placed in two parents reports the last
// one.
//
// # Thread Safety
//
// Containers are not thread-safe. Synchronize access or confine a tree to one
// goroutine.
package observable
