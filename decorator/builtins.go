package decorator

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/effect"
	"github.com/leadotlang/lea/value"
)

func joinValues(vs []value.Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

// applyLog implements #log: logs arguments on entry, result (or error) on
// exit.
func applyLog(args []value.Value, next value.BuiltinFunc, info Info) (value.BuiltinFunc, error) {
	return func(callArgs []value.Value) (value.Value, error) {
		logf(info, "-> %s(%s)\n", info.Name, joinValues(callArgs))
		result, err := next(callArgs)
		if err != nil {
			logf(info, "<- %s raised %v\n", info.Name, err)
			return nil, err
		}
		logf(info, "<- %s = %s\n", info.Name, result.String())
		return result, nil
	}, nil
}

// applyTrace implements #trace: like #log but indented by shared call
// depth, grounded on the same idea but for nested calls.
func applyTrace(args []value.Value, next value.BuiltinFunc, info Info) (value.BuiltinFunc, error) {
	return func(callArgs []value.Value) (value.Value, error) {
		depth := 0
		if info.Depth != nil {
			depth = *info.Depth
			*info.Depth++
		}
		indent := strings.Repeat("  ", depth)
		logf(info, "%s%s(%s)\n", indent, info.Name, joinValues(callArgs))
		result, err := next(callArgs)
		if info.Depth != nil {
			*info.Depth--
		}
		if err != nil {
			logf(info, "%s%s raised %v\n", indent, info.Name, err)
			return nil, err
		}
		logf(info, "%s%s = %s\n", indent, info.Name, result.String())
		return result, nil
	}, nil
}

// applyTime implements #time: measures and logs wall-clock duration.
func applyTime(args []value.Value, next value.BuiltinFunc, info Info) (value.BuiltinFunc, error) {
	return func(callArgs []value.Value) (value.Value, error) {
		start := time.Now()
		result, err := next(callArgs)
		logf(info, "%s took %s\n", info.Name, time.Since(start))
		return result, err
	}, nil
}

// applyMemo implements #memo: caches by a canonical serialization of the
// argument list, shared across every call to this one wrapped function.
func applyMemo(args []value.Value, next value.BuiltinFunc, info Info) (value.BuiltinFunc, error) {
	cache := make(map[string]value.Value)
	var mu sync.Mutex
	return func(callArgs []value.Value) (value.Value, error) {
		key := canonicalKey(callArgs)
		mu.Lock()
		if cached, ok := cache[key]; ok {
			mu.Unlock()
			return cached, nil
		}
		mu.Unlock()
		result, err := next(callArgs)
		if err != nil {
			return nil, err
		}
		mu.Lock()
		cache[key] = result
		mu.Unlock()
		return result, nil
	}, nil
}

func canonicalKey(vs []value.Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = canonicalValue(v)
	}
	return strings.Join(parts, "\x1f")
}

func canonicalValue(v value.Value) string {
	switch t := v.(type) {
	case *value.List:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = canonicalValue(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case *value.Record:
		parts := make([]string, len(t.Keys))
		for i, k := range t.Keys {
			parts[i] = k + ":" + canonicalValue(t.Values[k])
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return string(v.Kind()) + ":" + v.String()
	}
}

// applyRetry implements #retry(n): up to n retries (n+1 total attempts)
// before surfacing the last error.
func applyRetry(args []value.Value, next value.BuiltinFunc, info Info) (value.BuiltinFunc, error) {
	n := 0
	if len(args) > 0 {
		if i, ok := args[0].(*value.Int); ok {
			n = int(i.Value)
		}
	}
	return func(callArgs []value.Value) (value.Value, error) {
		var lastErr error
		for attempt := 0; attempt <= n; attempt++ {
			result, err := next(callArgs)
			if err == nil {
				return result, nil
			}
			lastErr = err
		}
		return nil, lastErr
	}, nil
}

// applyTimeout implements #timeout(ms): races the call against a timer,
// grounded on the errgroup/semaphore-style bounded-concurrency idiom used
// throughout the concurrent package, here reduced to a single race.
func applyTimeout(args []value.Value, next value.BuiltinFunc, info Info) (value.BuiltinFunc, error) {
	var ms int64
	if len(args) > 0 {
		switch t := args[0].(type) {
		case *value.Int:
			ms = t.Value
		case *value.Float:
			ms = int64(t.Value)
		}
	}
	return func(callArgs []value.Value) (value.Value, error) {
		type outcome struct {
			v   value.Value
			err error
		}
		ch := make(chan outcome, 1)
		go func() {
			v, err := next(callArgs)
			ch <- outcome{v, err}
		}()
		select {
		case r := <-ch:
			return r.v, r.err
		case <-time.After(time.Duration(ms) * time.Millisecond):
			return nil, diagnostic.New(diagnostic.Runtime, 0, 0,
				"%s timed out after %dms", info.Name, ms).WithCode(diagnostic.CodeTimeout)
		}
	}, nil
}

// applyValidate implements #validate: Null-rejection and declared-type
// checks on parameters and the function's own return annotation.
func applyValidate(args []value.Value, next value.BuiltinFunc, info Info) (value.BuiltinFunc, error) {
	return func(callArgs []value.Value) (value.Value, error) {
		for i, v := range callArgs {
			if i >= len(info.TypeAnns) {
				break
			}
			ann := info.TypeAnns[i]
			if ann == "" {
				continue
			}
			name := "#" + fmt.Sprint(i)
			if i < len(info.Params) {
				name = info.Params[i]
			}
			if _, isNull := v.(*value.Null); isNull {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0,
					"%s: parameter %q declared %s rejects null", info.Name, name, ann).WithCode(diagnostic.CodeValidationFailed)
			}
			if !kindMatches(ann, v.Kind()) {
				return nil, diagnostic.New(diagnostic.Runtime, 0, 0,
					"%s: parameter %q expected %s, got %s", info.Name, name, ann, v.Kind()).WithCode(diagnostic.CodeValidationFailed)
			}
		}
		result, err := next(callArgs)
		if err != nil {
			return nil, err
		}
		if info.ReturnType != "" && !kindMatches(info.ReturnType, result.Kind()) {
			return nil, diagnostic.New(diagnostic.Runtime, 0, 0,
				"%s: return value expected %s, got %s", info.Name, info.ReturnType, result.Kind()).WithCode(diagnostic.CodeValidationFailed)
		}
		return result, nil
	}, nil
}

func kindMatches(ann string, k value.Kind) bool {
	return strings.EqualFold(ann, string(k))
}

// applyPure implements #pure: a marker that warns (does not fail) if the
// wrapped body performs any observable side effect, tracked via package
// effect's process-wide counter.
func applyPure(args []value.Value, next value.BuiltinFunc, info Info) (value.BuiltinFunc, error) {
	return func(callArgs []value.Value) (value.Value, error) {
		before := effect.Snapshot()
		result, err := next(callArgs)
		if effect.Snapshot() != before {
			logf(info, "warning: %s declared #pure but performed a side effect\n", info.Name)
		}
		return result, err
	}, nil
}

// applyAsync implements #async: the call runs on its own goroutine and
// returns a pending Promise immediately, settled when the body finishes.
func applyAsync(args []value.Value, next value.BuiltinFunc, info Info) (value.BuiltinFunc, error) {
	return func(callArgs []value.Value) (value.Value, error) {
		p := value.NewPromise()
		go func() {
			v, err := next(callArgs)
			if err != nil {
				p.Reject(err)
				return
			}
			p.Resolve(v)
		}()
		return p, nil
	}, nil
}

// applySpawn implements #spawn: fire-and-forget, discarding the outcome
// beyond a best-effort log of any error.
func applySpawn(args []value.Value, next value.BuiltinFunc, info Info) (value.BuiltinFunc, error) {
	return func(callArgs []value.Value) (value.Value, error) {
		go func() {
			if _, err := next(callArgs); err != nil {
				logf(info, "spawned %s failed: %v\n", info.Name, err)
			}
		}()
		return value.TheNull, nil
	}, nil
}

// applyParallel implements #parallel(n?): pushes a concurrency limit onto
// the shared context registry under ParallelLimitContext for the duration
// of the call, read by the builtin map and flatMap (filter always runs
// sequentially).
func applyParallel(args []value.Value, next value.BuiltinFunc, info Info) (value.BuiltinFunc, error) {
	var limit value.Value = value.TheNull
	if len(args) > 0 {
		limit = args[0]
	}
	return func(callArgs []value.Value) (value.Value, error) {
		if info.Registry == nil || !info.Registry.Defined(ParallelLimitContext) {
			return next(callArgs)
		}
		pop, err := info.Registry.Push(ParallelLimitContext, limit)
		if err != nil {
			return next(callArgs)
		}
		defer pop()
		return next(callArgs)
	}, nil
}
