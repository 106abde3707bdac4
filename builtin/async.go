package builtin

import (
	"time"

	"github.com/leadotlang/lea/concurrent"
	"github.com/leadotlang/lea/value"
)

// asyncBuiltins grounds on package concurrent, itself grounded on
// opal-lang-opal's parallel decorator and golang.org/x/sync/errgroup
// (spec.md §4.5's async group: delay, parallel, race, then).
func asyncBuiltins() []*value.Builtin {
	return []*value.Builtin{
		bi("delay", 1, 1, func(args []value.Value) (value.Value, error) {
			ms, err := asInt("delay", args[0])
			if err != nil {
				return nil, err
			}
			p := value.NewPromise()
			go func() {
				time.Sleep(time.Duration(ms) * time.Millisecond)
				p.Resolve(value.TheNull)
			}()
			return p, nil
		}),

		// parallel(items, fn, opts?): items first so that the pipe-prepend
		// rule (eval/eval_call.go's evalCallExpr) applied to
		// `items /> parallel(fn, {limit: k})` — which has no placeholder
		// among `fn, {limit: k}` and so prepends the piped list as arg
		// 0 — produces exactly this 3-arg shape, matching §4.2/§4.5/§8.
		bi("parallel", 2, 3, func(args []value.Value) (value.Value, error) {
			items, err := asList("parallel", args[0])
			if err != nil {
				return nil, err
			}
			fn := args[1]
			limit := 0
			if len(args) == 3 {
				opts, err := asRecord("parallel", args[2])
				if err != nil {
					return nil, err
				}
				if l, ok := opts.Get("limit"); ok {
					n, err := asInt("parallel", l)
					if err != nil {
						return nil, err
					}
					limit = int(n)
				}
			}
			p := value.NewPromise()
			go func() {
				results, err := concurrent.Parallel(fn, items.Elements, limit)
				if err != nil {
					p.Reject(err)
					return
				}
				p.Resolve(&value.List{Elements: results})
			}()
			return p, nil
		}),

		bi("race", 1, 1, func(args []value.Value) (value.Value, error) {
			list, err := asList("race", args[0])
			if err != nil {
				return nil, err
			}
			p := value.NewPromise()
			go func() {
				v, err := concurrent.Race(list.Elements)
				if err != nil {
					p.Reject(err)
					return
				}
				p.Resolve(v)
			}()
			return p, nil
		}),

		bi("then", 2, 2, func(args []value.Value) (value.Value, error) {
			promise, ok := args[0].(*value.Promise)
			if !ok {
				return nil, typeErr("then", "a promise", args[0])
			}
			next := value.NewPromise()
			go func() {
				v, err := promise.Await()
				if err != nil {
					next.Reject(err)
					return
				}
				result, err := value.Apply(args[1], []value.Value{v})
				if err != nil {
					next.Reject(err)
					return
				}
				next.Resolve(result)
			}()
			return next, nil
		}),
	}
}
