// Package builtin implements Lea's standard built-in library (spec.md
// §4.5): arithmetic, list, string, record, JSON, filesystem, time, async,
// IO, and channel groups, each registered as a *value.Builtin with a declared
// min..max arity exactly as the teacher's std package registers its
// Builtin{Name, Callback} list, adapted from a package-init slice to an
// explicit registry constructor so map and flatMap can close over the
// shared *env.Registry for #parallel(n) (spec.md §4.3).
package builtin

import (
	"fmt"

	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

// NewRegistry builds the full set of built-ins bound to reg, the shared
// context registry that #parallel(n) and the parallel-aware list
// combinators communicate through.
func NewRegistry(reg *env.Registry) map[string]*value.Builtin {
	m := make(map[string]*value.Builtin)
	add := func(bs ...*value.Builtin) {
		for _, b := range bs {
			m[b.Name] = b
		}
	}
	add(arithBuiltins()...)
	add(listBuiltins(reg)...)
	add(stringBuiltins()...)
	add(recordBuiltins()...)
	add(jsonBuiltins()...)
	add(fsBuiltins()...)
	add(timeBuiltins()...)
	add(asyncBuiltins()...)
	add(ioBuiltins()...)
	add(channelBuiltins()...)
	return m
}

func bi(name string, min, max int, fn value.BuiltinFunc) *value.Builtin {
	return &value.Builtin{Name: name, MinArgs: min, MaxArgs: max, Fn: fn}
}

func typeErr(name, want string, got value.Value) error {
	return diagnostic.New(diagnostic.Runtime, 0, 0, "%s: expected %s, got %s", name, want, got.Kind()).WithCode(diagnostic.CodeTypeMismatch)
}

func asFloat(name string, v value.Value) (float64, error) {
	switch t := v.(type) {
	case *value.Int:
		return float64(t.Value), nil
	case *value.Float:
		return t.Value, nil
	}
	return 0, typeErr(name, "a number", v)
}

func asInt(name string, v value.Value) (int64, error) {
	switch t := v.(type) {
	case *value.Int:
		return t.Value, nil
	case *value.Float:
		return int64(t.Value), nil
	}
	return 0, typeErr(name, "an int", v)
}

func asString(name string, v value.Value) (string, error) {
	s, ok := v.(*value.String)
	if !ok {
		return "", typeErr(name, "a string", v)
	}
	return s.Value, nil
}

func asList(name string, v value.Value) (*value.List, error) {
	l, ok := v.(*value.List)
	if !ok {
		return nil, typeErr(name, "a list", v)
	}
	return l, nil
}

func asRecord(name string, v value.Value) (*value.Record, error) {
	r, ok := v.(*value.Record)
	if !ok {
		return nil, typeErr(name, "a record", v)
	}
	return r, nil
}

func numberValue(f float64) value.Value {
	if f == float64(int64(f)) {
		return &value.Int{Value: int64(f)}
	}
	return &value.Float{Value: f}
}

func wrongArgs(name string, n int) error {
	return fmt.Errorf("%s: unexpected argument count %d", name, n)
}
