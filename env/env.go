// Package env implements Lea's lexical environment (§3.4, §4.4): a parent
// chain of frames, each owning a map of bindings. Grounded directly on the
// teacher's scope.Scope (LookUp/Bind/Assign/Copy), adapted so Bind enforces
// §3.6's immutability rule for `let` bindings instead of the teacher's
// type-checking role for LetVars/LetTypes.
package env

import (
	"fmt"

	"github.com/leadotlang/lea/value"
)

type binding struct {
	value   value.Value
	mutable bool
}

// Frame is one lexical scope: a binding map plus an optional parent,
// forming the singly-linked chain §4.4 describes. It satisfies
// value.Frame structurally so closures can hold a *Frame without package
// value importing package env.
type Frame struct {
	vars   map[string]binding
	parent *Frame
}

// New creates a frame with the given parent (nil for the root/global
// frame).
func New(parent *Frame) *Frame {
	return &Frame{vars: make(map[string]binding), parent: parent}
}

// LookUp walks the parent chain for name, exactly scope.Scope.LookUp.
func (f *Frame) LookUp(name string) (value.Value, bool) {
	if b, ok := f.vars[name]; ok {
		return b.value, true
	}
	if f.parent != nil {
		return f.parent.LookUp(name)
	}
	return nil, false
}

// Bind introduces name in the current frame only. Rebinding a name already
// bound immutably (`let`) in this frame is a Runtime error per §3.6;
// rebinding a mutable (`maybe`) name in the same frame is also rejected —
// §3.6 only grants mutation via Assign, not redeclaration.
func (f *Frame) Bind(name string, v value.Value, mutable bool) error {
	if _, exists := f.vars[name]; exists {
		return fmt.Errorf("cannot redeclare %q in the same scope", name)
	}
	f.vars[name] = binding{value: v, mutable: mutable}
	return nil
}

// Assign mutates name in the frame that owns it, walking the parent chain
// the way scope.Scope.Assign does. It fails if the name is unknown or was
// bound immutably.
func (f *Frame) Assign(name string, v value.Value) error {
	if b, ok := f.vars[name]; ok {
		if !b.mutable {
			return fmt.Errorf("cannot assign to immutable binding %q", name)
		}
		f.vars[name] = binding{value: v, mutable: true}
		return nil
	}
	if f.parent != nil {
		return f.parent.Assign(name, v)
	}
	return fmt.Errorf("undefined name %q", name)
}

// IsMutable reports whether name is bound (anywhere in the chain) as a
// `maybe` binding.
func (f *Frame) IsMutable(name string) (bool, bool) {
	if b, ok := f.vars[name]; ok {
		return b.mutable, true
	}
	if f.parent != nil {
		return f.parent.IsMutable(name)
	}
	return false, false
}

// Copy returns a shallow copy sharing the same parent, grounded on
// scope.Scope.Copy. Closures do not use it: they hold the defining frame
// itself, so they see later changes to that frame.
func (f *Frame) Copy() *Frame {
	nf := &Frame{vars: make(map[string]binding, len(f.vars)), parent: f.parent}
	for k, v := range f.vars {
		nf.vars[k] = v
	}
	return nf
}

// Child pushes a new frame on top of f, as happens on function entry,
// match-arm entry and block entry (§4.4).
func (f *Frame) Child() *Frame { return New(f) }
