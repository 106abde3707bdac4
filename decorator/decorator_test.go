package decorator

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/effect"
	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

func TestGetKnownAndUnknown(t *testing.T) {
	_, ok := Get("memo")
	assert.True(t, ok)
	_, ok = Get("nope")
	assert.False(t, ok)
}

func TestApplyMemoCachesByArguments(t *testing.T) {
	calls := 0
	next := func(args []value.Value) (value.Value, error) {
		calls++
		return args[0], nil
	}
	apply, _ := Get("memo")
	wrapped, err := apply(nil, next, Info{Name: "f"})
	require.NoError(t, err)

	_, _ = wrapped([]value.Value{&value.Int{Value: 3}})
	_, _ = wrapped([]value.Value{&value.Int{Value: 3}})
	_, _ = wrapped([]value.Value{&value.Int{Value: 4}})
	assert.Equal(t, 2, calls)
}

func TestApplyRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	next := func(args []value.Value) (value.Value, error) {
		attempts++
		return nil, fmt.Errorf("fail")
	}
	apply, _ := Get("retry")
	wrapped, err := apply([]value.Value{&value.Int{Value: 2}}, next, Info{Name: "f"})
	require.NoError(t, err)

	_, err = wrapped(nil)
	assert.Error(t, err)
	assert.Equal(t, 3, attempts) // initial + 2 retries
}

func TestApplyTimeoutExceeded(t *testing.T) {
	next := func(args []value.Value) (value.Value, error) {
		select {}
	}
	apply, _ := Get("timeout")
	wrapped, err := apply([]value.Value{&value.Int{Value: 5}}, next, Info{Name: "f"})
	require.NoError(t, err)

	_, err = wrapped(nil)
	require.Error(t, err)
	d, ok := err.(*diagnostic.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, diagnostic.CodeTimeout, d.Code)
}

func TestApplyValidateRejectsNull(t *testing.T) {
	next := func(args []value.Value) (value.Value, error) { return args[0], nil }
	apply, _ := Get("validate")
	wrapped, err := apply(nil, next, Info{Name: "f", Params: []string{"x"}, TypeAnns: []string{"int"}})
	require.NoError(t, err)

	_, err = wrapped([]value.Value{value.TheNull})
	require.Error(t, err)
	d := err.(*diagnostic.Diagnostic)
	assert.Equal(t, diagnostic.CodeValidationFailed, d.Code)
}

func TestApplyPureWarnsOnSideEffect(t *testing.T) {
	var out bytes.Buffer
	next := func(args []value.Value) (value.Value, error) {
		effect.Mark()
		return value.TheNull, nil
	}
	apply, _ := Get("pure")
	wrapped, err := apply(nil, next, Info{Name: "f", Out: &out})
	require.NoError(t, err)
	_, err = wrapped(nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "declared #pure but performed a side effect")
}

func TestApplyParallelPushesLimitOntoRegistry(t *testing.T) {
	reg := env.NewRegistry()
	reg.Define(ParallelLimitContext, value.TheNull)

	var seen value.Value
	next := func(args []value.Value) (value.Value, error) {
		v, _ := reg.Resolve(ParallelLimitContext)
		seen = v
		return value.TheNull, nil
	}
	apply, _ := Get("parallel")
	wrapped, err := apply([]value.Value{&value.Int{Value: 4}}, next, Info{Name: "f", Registry: reg})
	require.NoError(t, err)

	_, err = wrapped(nil)
	require.NoError(t, err)
	assert.Equal(t, "4", seen.String())
}
