// Package concurrent implements the one place Lea's otherwise
// single-threaded, cooperative evaluation model (spec.md §5) drops into
// real OS concurrency: `\>` fan-out, `parallel(fn, opts?)`, and `race`.
// Grounded on `opal-lang-opal/pkgs/decorators/parallel.go`'s
// semaphore-bounded sync.WaitGroup pattern, realized here with
// golang.org/x/sync/errgroup the way Tangerg-lynx's worker-pool code uses
// it: an errgroup.Group with SetLimit gives bounded concurrency, ordered
// results, and first-error propagation in a few lines instead of hand
// rolled semaphore channels.
package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/leadotlang/lea/value"
)

// FanOut runs each stage against the same input value concurrently and
// returns their results in declaration order (§4.2 `\>`). The group is
// unbounded: fan-out stage counts are small and syntactic (one per `\>` in
// source), unlike `parallel`'s caller-supplied, possibly large list.
func FanOut(input value.Value, stages []value.Value) ([]value.Value, error) {
	results := make([]value.Value, len(stages))
	g, _ := errgroup.WithContext(context.Background())
	for i, stage := range stages {
		i, stage := i, stage
		g.Go(func() error {
			v, err := value.Apply(stage, []value.Value{input})
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Parallel applies fn to each item, honoring limit (<=0 means unbounded),
// and returns the ordered list of results (spec.md §4.5 `parallel(fn,
// opts?)`).
func Parallel(fn value.Value, items []value.Value, limit int) ([]value.Value, error) {
	results := make([]value.Value, len(items))
	g, _ := errgroup.WithContext(context.Background())
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			v, err := value.Apply(fn, []value.Value{item})
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Race evaluates every item concurrently (each already a Promise or a
// thunked Callable taking no arguments) and returns the first to settle,
// successfully or not (spec.md §4.5 `race`).
func Race(items []value.Value) (value.Value, error) {
	type outcome struct {
		v   value.Value
		err error
	}
	ch := make(chan outcome, len(items))
	for _, item := range items {
		item := item
		go func() {
			v, err := settle(item)
			ch <- outcome{v, err}
		}()
	}
	first := <-ch
	return first.v, first.err
}

func settle(v value.Value) (value.Value, error) {
	if p, ok := v.(*value.Promise); ok {
		return p.Await()
	}
	return value.Apply(v, nil)
}
