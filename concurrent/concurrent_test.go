package concurrent

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadotlang/lea/value"
)

func double(args []value.Value) (value.Value, error) {
	n := args[0].(*value.Int)
	return &value.Int{Value: n.Value * 2}, nil
}

func TestParallelPreservesOrder(t *testing.T) {
	fn := &value.Builtin{Name: "double", MinArgs: 1, MaxArgs: 1, Fn: double}
	items := []value.Value{&value.Int{Value: 1}, &value.Int{Value: 2}, &value.Int{Value: 3}}
	results, err := Parallel(fn, items, 0)
	require.NoError(t, err)
	got := make([]string, len(results))
	for i, r := range results {
		got[i] = r.String()
	}
	assert.Equal(t, []string{"2", "4", "6"}, got)
}

func TestParallelPropagatesFirstError(t *testing.T) {
	failing := &value.Builtin{Name: "fail", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value) (value.Value, error) {
		return nil, fmt.Errorf("boom")
	}}
	_, err := Parallel(failing, []value.Value{&value.Int{Value: 1}}, 0)
	assert.Error(t, err)
}

func TestFanOutRunsEachStageAgainstSameInput(t *testing.T) {
	addOne := &value.Builtin{Name: "addOne", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value) (value.Value, error) {
		n := args[0].(*value.Int)
		return &value.Int{Value: n.Value + 1}, nil
	}}
	double := &value.Builtin{Name: "double", MinArgs: 1, MaxArgs: 1, Fn: double}
	results, err := FanOut(&value.Int{Value: 5}, []value.Value{addOne, double})
	require.NoError(t, err)
	assert.Equal(t, "6", results[0].String())
	assert.Equal(t, "10", results[1].String())
}

func TestRaceReturnsFirstSettled(t *testing.T) {
	slow := value.NewPromise()
	fast := value.NewPromise()
	fast.Resolve(&value.String{Value: "fast"})
	v, err := Race([]value.Value{slow, fast})
	require.NoError(t, err)
	assert.Equal(t, "fast", v.String())
}
