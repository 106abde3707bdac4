package env

import "github.com/leadotlang/lea/value"

// Registry is the process-scoped context registry of §3.5: a mapping from
// context name to a stack of provided values plus a declared default.
// Access is confined to the single evaluator task (§5, §9 Design Notes),
// so — unlike the teacher's decorator Registry in the pack, which guards
// its maps with sync.RWMutex for concurrent registration from multiple
// goroutines — no locking is needed here.
type Registry struct {
	contexts map[string]*contextEntry
}

type contextEntry struct {
	def   value.Value
	stack []value.Value
}

func NewRegistry() *Registry {
	return &Registry{contexts: make(map[string]*contextEntry)}
}

// Define registers a context with its declared default. Redefining an
// existing context replaces its default but leaves any active provide
// stack untouched.
func (r *Registry) Define(name string, def value.Value) {
	if e, ok := r.contexts[name]; ok {
		e.def = def
		return
	}
	r.contexts[name] = &contextEntry{def: def}
}

// Push provides a new value for name, scoped to the caller's dynamic
// extent. The caller must call the returned pop function on every exit
// path (normal return, error, or after an await resumes) to keep the
// stack balanced per §3.6.
func (r *Registry) Push(name string, v value.Value) (pop func(), err error) {
	e, ok := r.contexts[name]
	if !ok {
		return nil, undefinedContextError(name)
	}
	e.stack = append(e.stack, v)
	popped := false
	return func() {
		if popped {
			return
		}
		popped = true
		e.stack = e.stack[:len(e.stack)-1]
	}, nil
}

// Resolve reads the current value for name: top-of-stack if any value has
// been provided, else the declared default (§3.5 resolution order step
// 2/3 — step 1, function-local attachment, is handled by the evaluator
// before it ever calls Resolve).
func (r *Registry) Resolve(name string) (value.Value, error) {
	e, ok := r.contexts[name]
	if !ok {
		return nil, undefinedContextError(name)
	}
	if n := len(e.stack); n > 0 {
		return e.stack[n-1], nil
	}
	if e.def != nil {
		return e.def, nil
	}
	return value.TheNull, nil
}

// Defined reports whether name has been registered with `context`.
func (r *Registry) Defined(name string) bool {
	_, ok := r.contexts[name]
	return ok
}

func undefinedContextError(name string) error {
	return &contextError{name}
}

type contextError struct{ name string }

func (e *contextError) Error() string { return "unknown context " + e.name }
