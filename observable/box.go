package observable

import (
	"fmt"

	"github.com/signadot/tony-format/go-reconcile/plain"
)

// Box is a tracked single value.
type Box struct {
	node
	value any
	ref   bool
}

type BoxOption func(*Box)

// Ref makes a box store assigned values as is, without enhancement.
func Ref() BoxOption {
	return func(b *Box) { b.ref = true }
}

func NewBox(v any, opts ...BoxOption) *Box {
	b := &Box{}
	for _, opt := range opts {
		opt(b)
	}
	b.value = b.enhance(v)
	adopt(b, nil, b.value)
	return b
}

func (b *Box) enhance(v any) any {
	if b.ref {
		return v
	}
	return enhance(v)
}

func (b *Box) Get() any {
	return b.value
}

func (b *Box) Set(v any) {
	v = b.enhance(v)
	old := b.value
	if plain.Same(old, v) {
		return
	}
	orphan(b, old)
	b.value = v
	adopt(b, nil, v)
	notify(b, Change{Type: UpdateChange, Container: b, Old: old, New: v})
}

func (b *Box) String() string {
	return fmt.Sprintf("Box(%v)", b.value)
}
