package builtin

import (
	"sort"

	"github.com/leadotlang/lea/concurrent"
	"github.com/leadotlang/lea/decorator"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

// parallelLimit reads the concurrency limit #parallel(n) pushed onto reg,
// defaulting to sequential (0) when no #parallel scope is active or the
// pushed value isn't a number. Grounded on opal-lang-opal's
// context-carried worker count, adapted from that pack's decorator state
// to this module's *env.Registry.
func parallelLimit(reg *env.Registry) int {
	if reg == nil || !reg.Defined(decorator.ParallelLimitContext) {
		return 0
	}
	v, err := reg.Resolve(decorator.ParallelLimitContext)
	if err != nil {
		return 0
	}
	if i, ok := v.(*value.Int); ok {
		return int(i.Value)
	}
	return 0
}

func listBuiltins(reg *env.Registry) []*value.Builtin {
	return []*value.Builtin{
		bi("map", 2, 2, func(args []value.Value) (value.Value, error) {
			list, err := asList("map", args[0])
			if err != nil {
				return nil, err
			}
			limit := parallelLimit(reg)
			if limit != 0 || len(list.Elements) == 0 {
				results, err := concurrent.Parallel(args[1], list.Elements, limit)
				if err != nil {
					return nil, err
				}
				return &value.List{Elements: results}, nil
			}
			results := make([]value.Value, len(list.Elements))
			for i, el := range list.Elements {
				v, err := value.Apply(args[1], []value.Value{el})
				if err != nil {
					return nil, err
				}
				results[i] = v
			}
			return &value.List{Elements: results}, nil
		}),

		bi("filter", 2, 2, func(args []value.Value) (value.Value, error) {
			list, err := asList("filter", args[0])
			if err != nil {
				return nil, err
			}
			var kept []value.Value
			for _, el := range list.Elements {
				v, err := value.Apply(args[1], []value.Value{el})
				if err != nil {
					return nil, err
				}
				if value.Truthy(v) {
					kept = append(kept, el)
				}
			}
			return &value.List{Elements: kept}, nil
		}),

		bi("reduce", 3, 3, func(args []value.Value) (value.Value, error) {
			list, err := asList("reduce", args[0])
			if err != nil {
				return nil, err
			}
			acc := args[1]
			for _, el := range list.Elements {
				v, err := value.Apply(args[2], []value.Value{acc, el})
				if err != nil {
					return nil, err
				}
				acc = v
			}
			return acc, nil
		}),

		bi("flatMap", 2, 2, func(args []value.Value) (value.Value, error) {
			list, err := asList("flatMap", args[0])
			if err != nil {
				return nil, err
			}
			limit := parallelLimit(reg)
			var mapped []value.Value
			if limit != 0 {
				results, err := concurrent.Parallel(args[1], list.Elements, limit)
				if err != nil {
					return nil, err
				}
				mapped = results
			} else {
				for _, el := range list.Elements {
					v, err := value.Apply(args[1], []value.Value{el})
					if err != nil {
						return nil, err
					}
					mapped = append(mapped, v)
				}
			}
			var flat []value.Value
			for _, m := range mapped {
				if sub, ok := m.(*value.List); ok {
					flat = append(flat, sub.Elements...)
				} else {
					flat = append(flat, m)
				}
			}
			return &value.List{Elements: flat}, nil
		}),

		bi("range", 1, 2, func(args []value.Value) (value.Value, error) {
			var start, end int64
			if len(args) == 1 {
				n, err := asInt("range", args[0])
				if err != nil {
					return nil, err
				}
				start, end = 0, n
			} else {
				s, err := asInt("range", args[0])
				if err != nil {
					return nil, err
				}
				e, err := asInt("range", args[1])
				if err != nil {
					return nil, err
				}
				start, end = s, e
			}
			var elems []value.Value
			for i := start; i < end; i++ {
				elems = append(elems, &value.Int{Value: i})
			}
			return &value.List{Elements: elems}, nil
		}),

		bi("head", 1, 1, func(args []value.Value) (value.Value, error) {
			list, err := asList("head", args[0])
			if err != nil {
				return nil, err
			}
			if len(list.Elements) == 0 {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0, "head: empty list").WithCode(diagnostic.CodeBadIndex)
			}
			return list.Elements[0], nil
		}),

		bi("tail", 1, 1, func(args []value.Value) (value.Value, error) {
			list, err := asList("tail", args[0])
			if err != nil {
				return nil, err
			}
			if len(list.Elements) == 0 {
				return &value.List{}, nil
			}
			return &value.List{Elements: append([]value.Value{}, list.Elements[1:]...)}, nil
		}),

		bi("length", 1, 1, func(args []value.Value) (value.Value, error) {
			switch t := args[0].(type) {
			case *value.List:
				return &value.Int{Value: int64(len(t.Elements))}, nil
			case *value.String:
				return &value.Int{Value: int64(len([]rune(t.Value)))}, nil
			case *value.Record:
				return &value.Int{Value: int64(len(t.Keys))}, nil
			}
			return nil, typeErr("length", "a list, string or record", args[0])
		}),

		bi("concat", 0, -1, func(args []value.Value) (value.Value, error) {
			var elems []value.Value
			for _, a := range args {
				list, err := asList("concat", a)
				if err != nil {
					return nil, err
				}
				elems = append(elems, list.Elements...)
			}
			return &value.List{Elements: elems}, nil
		}),

		bi("push", 2, 2, func(args []value.Value) (value.Value, error) {
			list, err := asList("push", args[0])
			if err != nil {
				return nil, err
			}
			elems := append(append([]value.Value{}, list.Elements...), args[1])
			return &value.List{Elements: elems}, nil
		}),

		bi("take", 2, 2, func(args []value.Value) (value.Value, error) {
			list, err := asList("take", args[0])
			if err != nil {
				return nil, err
			}
			n, err := asInt("take", args[1])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				n = 0
			}
			if int(n) > len(list.Elements) {
				n = int64(len(list.Elements))
			}
			return &value.List{Elements: append([]value.Value{}, list.Elements[:n]...)}, nil
		}),

		bi("drop", 2, 2, func(args []value.Value) (value.Value, error) {
			list, err := asList("drop", args[0])
			if err != nil {
				return nil, err
			}
			n, err := asInt("drop", args[1])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				n = 0
			}
			if int(n) > len(list.Elements) {
				n = int64(len(list.Elements))
			}
			return &value.List{Elements: append([]value.Value{}, list.Elements[n:]...)}, nil
		}),

		bi("slice", 3, 3, func(args []value.Value) (value.Value, error) {
			list, err := asList("slice", args[0])
			if err != nil {
				return nil, err
			}
			start, err := asInt("slice", args[1])
			if err != nil {
				return nil, err
			}
			end, err := asInt("slice", args[2])
			if err != nil {
				return nil, err
			}
			n := int64(len(list.Elements))
			if start < 0 {
				start = 0
			}
			if end > n {
				end = n
			}
			if start > end {
				start = end
			}
			return &value.List{Elements: append([]value.Value{}, list.Elements[start:end]...)}, nil
		}),

		bi("zip", 2, 2, func(args []value.Value) (value.Value, error) {
			a, err := asList("zip", args[0])
			if err != nil {
				return nil, err
			}
			b, err := asList("zip", args[1])
			if err != nil {
				return nil, err
			}
			n := len(a.Elements)
			if len(b.Elements) < n {
				n = len(b.Elements)
			}
			pairs := make([]value.Value, n)
			for i := 0; i < n; i++ {
				pairs[i] = &value.List{Elements: []value.Value{a.Elements[i], b.Elements[i]}}
			}
			return &value.List{Elements: pairs}, nil
		}),

		bi("partition", 2, 2, func(args []value.Value) (value.Value, error) {
			list, err := asList("partition", args[0])
			if err != nil {
				return nil, err
			}
			var matched, rest []value.Value
			for _, el := range list.Elements {
				v, err := value.Apply(args[1], []value.Value{el})
				if err != nil {
					return nil, err
				}
				if value.Truthy(v) {
					matched = append(matched, el)
				} else {
					rest = append(rest, el)
				}
			}
			return &value.List{Elements: []value.Value{&value.List{Elements: matched}, &value.List{Elements: rest}}}, nil
		}),

		bi("sort", 1, 1, func(args []value.Value) (value.Value, error) {
			list, err := asList("sort", args[0])
			if err != nil {
				return nil, err
			}
			elems := append([]value.Value{}, list.Elements...)
			var sortErr error
			sort.SliceStable(elems, func(i, j int) bool {
				less, err := lessValues(elems[i], elems[j])
				if err != nil {
					sortErr = err
				}
				return less
			})
			if sortErr != nil {
				return nil, sortErr
			}
			return &value.List{Elements: elems}, nil
		}),

		bi("sortBy", 2, 2, func(args []value.Value) (value.Value, error) {
			list, err := asList("sortBy", args[0])
			if err != nil {
				return nil, err
			}
			elems := append([]value.Value{}, list.Elements...)
			keys := make([]value.Value, len(elems))
			for i, el := range elems {
				k, err := value.Apply(args[1], []value.Value{el})
				if err != nil {
					return nil, err
				}
				keys[i] = k
			}
			var sortErr error
			idx := make([]int, len(elems))
			for i := range idx {
				idx[i] = i
			}
			sort.SliceStable(idx, func(i, j int) bool {
				less, err := lessValues(keys[idx[i]], keys[idx[j]])
				if err != nil {
					sortErr = err
				}
				return less
			})
			if sortErr != nil {
				return nil, sortErr
			}
			sorted := make([]value.Value, len(elems))
			for i, j := range idx {
				sorted[i] = elems[j]
			}
			return &value.List{Elements: sorted}, nil
		}),

		bi("unique", 1, 1, func(args []value.Value) (value.Value, error) {
			list, err := asList("unique", args[0])
			if err != nil {
				return nil, err
			}
			seen := make(map[string]bool)
			var out []value.Value
			for _, el := range list.Elements {
				k := canonicalValueKey(el)
				if seen[k] {
					continue
				}
				seen[k] = true
				out = append(out, el)
			}
			return &value.List{Elements: out}, nil
		}),

		bi("groupBy", 2, 2, func(args []value.Value) (value.Value, error) {
			list, err := asList("groupBy", args[0])
			if err != nil {
				return nil, err
			}
			rec := value.NewRecord()
			for _, el := range list.Elements {
				k, err := value.Apply(args[1], []value.Value{el})
				if err != nil {
					return nil, err
				}
				key, ok := k.(*value.String)
				if !ok {
					return nil, typeErr("groupBy", "a key function returning a string", k)
				}
				existing, ok := rec.Get(key.Value)
				if !ok {
					rec.Set(key.Value, &value.List{Elements: []value.Value{el}})
					continue
				}
				group := existing.(*value.List)
				group.Elements = append(group.Elements, el)
			}
			return rec, nil
		}),

		bi("flatten", 1, 1, func(args []value.Value) (value.Value, error) {
			list, err := asList("flatten", args[0])
			if err != nil {
				return nil, err
			}
			var flat []value.Value
			for _, el := range list.Elements {
				if sub, ok := el.(*value.List); ok {
					flat = append(flat, sub.Elements...)
				} else {
					flat = append(flat, el)
				}
			}
			return &value.List{Elements: flat}, nil
		}),
	}
}

func lessValues(a, b value.Value) (bool, error) {
	if as, ok := a.(*value.String); ok {
		bs, ok2 := b.(*value.String)
		if !ok2 {
			return false, typeErr("sort", "comparable values of the same kind", b)
		}
		return as.Value < bs.Value, nil
	}
	af, err := asFloat("sort", a)
	if err != nil {
		return false, err
	}
	bf, err := asFloat("sort", b)
	if err != nil {
		return false, err
	}
	return af < bf, nil
}

func canonicalValueKey(v value.Value) string {
	return string(v.Kind()) + ":" + v.String()
}
