// Package journal records the changes made to a tracked tree as an RFC 6902
// JSON Patch.
//
// A Recorder observes a root container. Replaying its patch on the JSON
// form of the tree taken before recording yields the JSON form after:
//
//	before, _ := journal.Marshal(state)
//	rec := journal.Record(state)
//	reconcile.Reconcile(state, snap)
//	rec.Stop()
//	after, _ := rec.Apply(before)
package journal

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/signadot/tony-format/go-reconcile/debug"
	"github.com/signadot/tony-format/go-reconcile/encode"
	"github.com/signadot/tony-format/go-reconcile/observable"

	jsonpatch "github.com/evanphx/json-patch"
)

type Op struct {
	Op    string
	Path  string
	Value any
}

func (o Op) MarshalJSON() ([]byte, error) {
	m := map[string]any{"op": o.Op, "path": o.Path}
	if o.Op != "remove" {
		m["value"] = o.Value
	}
	return json.Marshal(m)
}

func (o Op) String() string {
	if o.Op == "remove" {
		return o.Op + " " + o.Path
	}
	return fmt.Sprintf("%s %s %v", o.Op, o.Path, o.Value)
}

type Recorder struct {
	root   any
	ops    []Op
	cancel func()
}

// Record starts recording the changes below root.
func Record(root any) *Recorder {
	r := &Recorder{root: root}
	r.cancel = observable.Observe(root, r.change)
	return r
}

func (r *Recorder) Stop() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Recorder) Ops() []Op {
	return append([]Op(nil), r.ops...)
}

func (r *Recorder) Reset() {
	r.ops = nil
}

func (r *Recorder) change(c observable.Change) {
	base := r.pointer(c.Container)
	switch c.Type {
	case observable.AddChange:
		r.add(Op{Op: "add", Path: join(base, c.Key), Value: encode.JSONValue(c.New)})
	case observable.UpdateChange:
		p := base
		if _, isBox := c.Container.(*observable.Box); !isBox {
			p = join(base, c.Key)
		}
		r.add(Op{Op: "replace", Path: p, Value: encode.JSONValue(c.New)})
	case observable.RemoveChange:
		r.add(Op{Op: "remove", Path: join(base, c.Key)})
	case observable.SpliceChange:
		from := c.Key.(int)
		for i := from + len(c.Removed) - 1; i >= from; i-- {
			r.add(Op{Op: "remove", Path: join(base, i)})
		}
	}
}

func (r *Recorder) add(op Op) {
	if debug.Journal() {
		debug.Logf("journal %s\n", op)
	}
	r.ops = append(r.ops, op)
}

// pointer is the JSON pointer of c relative to the recorded root.
func (r *Recorder) pointer(c any) string {
	full := observable.Path(c)
	base := observable.Path(r.root)
	if len(full) < len(base) {
		return ""
	}
	var sb strings.Builder
	for _, k := range full[len(base):] {
		sb.WriteString(join("", k))
	}
	return sb.String()
}

func join(p string, key any) string {
	s := fmt.Sprint(key)
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return p + "/" + s
}

func (r *Recorder) MarshalJSON() ([]byte, error) {
	if r.ops == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.ops)
}

// Patch returns the recorded operations as a JSON Patch.
func (r *Recorder) Patch() (jsonpatch.Patch, error) {
	d, err := r.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return jsonpatch.DecodePatch(d)
}

// Apply applies the recorded operations to a JSON document.
func (r *Recorder) Apply(doc []byte) ([]byte, error) {
	p, err := r.Patch()
	if err != nil {
		return nil, err
	}
	return p.Apply(doc)
}

// Marshal returns the JSON form of a tracked or plain value.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(encode.JSONValue(v))
}

// Equal reports whether two JSON documents are equivalent.
func Equal(a, b []byte) bool {
	return jsonpatch.Equal(a, b)
}
