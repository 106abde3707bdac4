// Package value defines Lea's runtime value representation: a closed
// tagged sum (§3.3), grounded on the teacher's GoMixObject/GoMixType
// pattern (objects/objects.go) — a string-constant Kind plus a small
// interface every concrete value implements.
package value

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/leadotlang/lea/ast"
)

// Kind identifies the runtime type of a Value, mirroring the teacher's
// GoMixType string-constant idiom.
type Kind string

const (
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindString   Kind = "string"
	KindBool     Kind = "bool"
	KindNull     Kind = "null"
	KindList     Kind = "list"
	KindRecord   Kind = "record"
	KindFunction Kind = "function"
	KindBuiltin  Kind = "builtin"
	KindPromise  Kind = "promise"
	KindChannel  Kind = "channel"
	KindPipeline Kind = "pipeline"
)

// Value is implemented by every concrete Lea runtime value.
type Value interface {
	Kind() Kind
	String() string
}

// Truthy reports whether v is considered true in a boolean context: false,
// null, numeric zero and the empty string are falsy; every other value,
// including an empty list or record, is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case *Bool:
		return t.Value
	case *Null:
		return false
	case *Int:
		return t.Value != 0
	case *Float:
		return t.Value != 0
	case *String:
		return t.Value != ""
	default:
		return true
	}
}

// ---- Primitives ----

type Int struct{ Value int64 }

func (i *Int) Kind() Kind     { return KindInt }
func (i *Int) String() string { return strconv.FormatInt(i.Value, 10) }

type Float struct{ Value float64 }

func (f *Float) Kind() Kind     { return KindFloat }
func (f *Float) String() string { return strconv.FormatFloat(f.Value, 'f', -1, 64) }

type String struct{ Value string }

func (s *String) Kind() Kind     { return KindString }
func (s *String) String() string { return s.Value }

type Bool struct{ Value bool }

func (b *Bool) Kind() Kind     { return KindBool }
func (b *Bool) String() string { return strconv.FormatBool(b.Value) }

type Null struct{}

func (n *Null) Kind() Kind     { return KindNull }
func (n *Null) String() string { return "null" }

var TheNull = &Null{}

// ---- List ----

type List struct{ Elements []Value }

func (l *List) Kind() Kind { return KindList }
func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ---- Record ----

// Record is an insertion-ordered mapping from string to Value (§3.3, §3.6).
type Record struct {
	Keys   []string
	Values map[string]Value
}

func NewRecord() *Record {
	return &Record{Values: make(map[string]Value)}
}

func (r *Record) Kind() Kind { return KindRecord }

func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.Values[key]
	return v, ok
}

// Set inserts or updates key, appending to Keys only on first insertion so
// insertion order is preserved across reassignment.
func (r *Record) Set(key string, v Value) {
	if _, exists := r.Values[key]; !exists {
		r.Keys = append(r.Keys, key)
	}
	r.Values[key] = v
}

func (r *Record) String() string {
	parts := make([]string, len(r.Keys))
	for i, k := range r.Keys {
		parts[i] = k + ": " + r.Values[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ---- Function / Builtin ----

// Callable is implemented by both Function and Builtin so the evaluator's
// call site doesn't need to distinguish them beyond arity/decorator
// handling.
type Callable interface {
	Value
	CallableName() string
}

// Frame is the narrow view of an environment frame that a closure needs:
// just enough to resolve free variables at call time. Defined here (rather
// than importing package env, which itself imports package value) so
// *env.Frame can satisfy it structurally with no import cycle.
type Frame interface {
	LookUp(name string) (Value, bool)
}

// Function is a user-defined closure: parameters, body and decorators from
// its ast.FunctionLit, plus the frame captured at definition time (§3.4).
// Decorator wrapping happens in package eval at definition time and is
// represented here as a post-decoration Call hook so Function itself stays
// a plain data carrier, matching the teacher's function.Function shape
// (Name, Params, Body, Scp).
type Function struct {
	Name        string
	Params      []ast.Param
	Body        ast.Node // *ast.BlockBody or an ast.Expr
	Decorators  []ast.Decorator
	Attachments []string
	Closure     Frame
	// Call, if set, is the fully decorator-wrapped invocation entry point;
	// the evaluator installs it once at definition time so that repeated
	// invocations skip re-applying decorators. Call is unexported-by-
	// convention (set via SetCall) to keep construction order explicit.
	call func(args []Value) (Value, error)
}

func (f *Function) Kind() Kind     { return KindFunction }
func (f *Function) String() string { return fmt.Sprintf("<function %s>", f.nameOrAnon()) }
func (f *Function) CallableName() string {
	return f.nameOrAnon()
}
func (f *Function) nameOrAnon() string {
	if f.Name == "" {
		return "anonymous"
	}
	return f.Name
}

// SetCall installs the decorator-wrapped invocation closure.
func (f *Function) SetCall(call func(args []Value) (Value, error)) { f.call = call }

// Call invokes the function's decorator-wrapped entry point.
func (f *Function) Call(args []Value) (Value, error) { return f.call(args) }

// BuiltinFunc is the Go implementation signature for a built-in, grounded
// on the teacher's std.CallbackFunc(rt, writer, args...) shape; Lea's
// version returns an error instead of an in-band *Error value so built-ins
// compose with ordinary Go error handling.
type BuiltinFunc func(args []Value) (Value, error)

// Builtin wraps a registered built-in function with a declared arity, the
// piece the teacher's std.Builtin{Name, Callback} lacks and Lea's
// `min..max` variadic arity rule (§4.5) requires.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 means unbounded
	Fn      BuiltinFunc
}

func (b *Builtin) Kind() Kind           { return KindBuiltin }
func (b *Builtin) String() string       { return fmt.Sprintf("<builtin %s>", b.Name) }
func (b *Builtin) CallableName() string { return b.Name }

// ---- Promise ----

type PromiseState int

const (
	Pending PromiseState = iota
	Resolved
	Rejected
)

// Promise is single-assignment (§3.6): once Resolved or Rejected it stays
// terminal. Guarded by a mutex plus a close-once channel so concurrent
// producers (parallel/race/#async) and an awaiting consumer never race.
type Promise struct {
	mu       sync.Mutex
	state    PromiseState
	value    Value
	err      error
	done     chan struct{}
	doneOnce sync.Once
}

func NewPromise() *Promise {
	return &Promise{state: Pending, done: make(chan struct{})}
}

func (p *Promise) Kind() Kind { return KindPromise }
func (p *Promise) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case Resolved:
		return fmt.Sprintf("<promise resolved(%s)>", p.value.String())
	case Rejected:
		return fmt.Sprintf("<promise rejected(%v)>", p.err)
	default:
		return "<promise pending>"
	}
}

// Resolve transitions a pending promise to Resolved. No-op if already
// settled, preserving single-assignment.
func (p *Promise) Resolve(v Value) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Pending {
		return
	}
	p.state = Resolved
	p.value = v
	p.doneOnce.Do(func() { close(p.done) })
}

// Reject transitions a pending promise to Rejected.
func (p *Promise) Reject(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Pending {
		return
	}
	p.state = Rejected
	p.err = err
	p.doneOnce.Do(func() { close(p.done) })
}

// Await blocks the calling goroutine until the promise settles and reports
// its terminal value or error.
func (p *Promise) Await() (Value, error) {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, p.err
}

func (p *Promise) State() PromiseState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// ---- Channel ----

// Channel is a bounded FIFO of Values with open/closed state (§5).
type Channel struct {
	ch     chan Value
	mu     sync.Mutex
	closed bool
}

func NewChannel(capacity int) *Channel {
	if capacity < 0 {
		capacity = 0
	}
	return &Channel{ch: make(chan Value, capacity)}
}

func (c *Channel) Kind() Kind     { return KindChannel }
func (c *Channel) String() string { return "<channel>" }

// Send suspends the caller if the channel is full; it reports an error if
// the channel is already closed.
func (c *Channel) Send(v Value) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("send on closed channel")
	}
	c.mu.Unlock()
	c.ch <- v
	return nil
}

// Receive suspends the caller if the channel is empty; once closed and
// drained it yields (Null, false).
func (c *Channel) Receive() (Value, bool) {
	v, ok := <-c.ch
	if !ok {
		return TheNull, false
	}
	return v, true
}

// Close marks the channel closed; further Send calls fail, and Receive
// drains whatever remains before yielding Null.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}

// ---- Pipeline ----

// Pipeline is an opaque composition object produced by `</>` (compose): it
// captures a sequence of transforms without invoking any of them (§3.3).
type Pipeline struct {
	Name   string
	Stages []Value // each a Callable
}

func (p *Pipeline) Kind() Kind     { return KindPipeline }
func (p *Pipeline) String() string { return fmt.Sprintf("<pipeline of %d stages>", len(p.Stages)) }

// CallableName lets a composed Pipeline satisfy Callable so `</>`'s result
// can be called or piped into just like a Function or Builtin.
func (p *Pipeline) CallableName() string {
	if p.Name != "" {
		return p.Name
	}
	return "pipeline"
}

// Apply invokes any Callable (Function or Builtin) uniformly, and runs a
// Pipeline by threading a single value through each stage in order. Kept
// here rather than in package eval so built-ins (map, filter, reduce, the
// async helpers) can invoke arbitrary Lea-level callables passed to them
// without importing eval and creating a cycle.
func Apply(callee Value, args []Value) (Value, error) {
	switch fn := callee.(type) {
	case *Function:
		return fn.Call(args)
	case *Builtin:
		if len(args) < fn.MinArgs || (fn.MaxArgs >= 0 && len(args) > fn.MaxArgs) {
			return nil, fmt.Errorf("%s: expected %s arguments, got %d", fn.Name, arityString(fn.MinArgs, fn.MaxArgs), len(args))
		}
		return fn.Fn(args)
	case *Pipeline:
		if len(args) != 1 {
			return nil, fmt.Errorf("pipeline: expected exactly 1 argument, got %d", len(args))
		}
		cur := args[0]
		for _, stage := range fn.Stages {
			next, err := Apply(stage, []Value{cur})
			if err != nil {
				return nil, err
			}
			cur = next
		}
		return cur, nil
	default:
		return nil, fmt.Errorf("value of kind %s is not callable", callee.Kind())
	}
}

func arityString(min, max int) string {
	if max < 0 {
		return fmt.Sprintf("at least %d", min)
	}
	if min == max {
		return strconv.Itoa(min)
	}
	return fmt.Sprintf("%d..%d", min, max)
}
