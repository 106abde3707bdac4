package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadotlang/lea/env"
	"github.com/leadotlang/lea/value"
)

func registry(t *testing.T) map[string]*value.Builtin {
	t.Helper()
	return NewRegistry(env.NewRegistry())
}

func call(t *testing.T, reg map[string]*value.Builtin, name string, args ...value.Value) value.Value {
	t.Helper()
	b, ok := reg[name]
	require.True(t, ok, "builtin %q not registered", name)
	v, err := b.Fn(args)
	require.NoError(t, err)
	return v
}

func ints(vals ...int64) []value.Value {
	out := make([]value.Value, len(vals))
	for i, n := range vals {
		out[i] = &value.Int{Value: n}
	}
	return out
}

func TestArithBuiltins(t *testing.T) {
	reg := registry(t)
	assert.Equal(t, "5", call(t, reg, "abs", &value.Int{Value: -5}).String())
	assert.Equal(t, "2", call(t, reg, "min", ints(5, 2, 8)...).String())
	assert.Equal(t, "8", call(t, reg, "max", ints(5, 2, 8)...).String())
	assert.Equal(t, "4", call(t, reg, "clamp", &value.Int{Value: 10}, &value.Int{Value: 0}, &value.Int{Value: 4}).String())
}

func TestListMapFilterReduce(t *testing.T) {
	reg := registry(t)
	list := &value.List{Elements: ints(1, 2, 3, 4, 5)}
	double := &value.Builtin{Name: "double", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value) (value.Value, error) {
		n, _ := asInt("double", args[0])
		return &value.Int{Value: n * 2}, nil
	}}
	doubled := call(t, reg, "map", list, double)
	assert.Equal(t, "[2, 4, 6, 8, 10]", doubled.String())

	isEven := &value.Builtin{Name: "isEven", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value) (value.Value, error) {
		n, _ := asInt("isEven", args[0])
		return &value.Bool{Value: n%2 == 0}, nil
	}}
	evens := call(t, reg, "filter", list, isEven)
	assert.Equal(t, "[2, 4]", evens.String())

	add := &value.Builtin{Name: "add", MinArgs: 2, MaxArgs: 2, Fn: func(args []value.Value) (value.Value, error) {
		a, _ := asInt("add", args[0])
		b, _ := asInt("add", args[1])
		return &value.Int{Value: a + b}, nil
	}}
	sum := call(t, reg, "reduce", list, &value.Int{Value: 0}, add)
	assert.Equal(t, "15", sum.String())
}

func TestListSortAndUnique(t *testing.T) {
	reg := registry(t)
	list := &value.List{Elements: ints(3, 1, 2, 1, 3)}
	assert.Equal(t, "[1, 2, 3]", call(t, reg, "unique", call(t, reg, "sort", list)).String())
}

func TestStringBuiltins(t *testing.T) {
	reg := registry(t)
	assert.Equal(t, "[a, b, c]", call(t, reg, "split", &value.String{Value: "a,b,c"}, &value.String{Value: ","}).String())
	assert.Equal(t, "a-b-c", call(t, reg, "join", &value.List{Elements: []value.Value{
		&value.String{Value: "a"}, &value.String{Value: "b"}, &value.String{Value: "c"},
	}}, &value.String{Value: "-"}).String())
	assert.Equal(t, "HELLO", call(t, reg, "toUpperCase", &value.String{Value: "hello"}).String())
	assert.Equal(t, "aGVsbG8=", call(t, reg, "base64Encode", &value.String{Value: "hello"}).String())
	assert.Equal(t, "hello", call(t, reg, "base64Decode", &value.String{Value: "aGVsbG8="}).String())
}

func TestRecordBuiltins(t *testing.T) {
	reg := registry(t)
	rec := value.NewRecord()
	rec.Set("a", &value.Int{Value: 1})
	rec.Set("b", &value.Int{Value: 2})
	assert.Equal(t, "[a, b]", call(t, reg, "keys", rec).String())
	assert.Equal(t, "[1, 2]", call(t, reg, "values", rec).String())
}

func TestJSONRoundTrip(t *testing.T) {
	reg := registry(t)
	rec := value.NewRecord()
	rec.Set("x", &value.Int{Value: 1})
	encoded := call(t, reg, "toJson", rec)
	decoded := call(t, reg, "parseJson", encoded)
	got, ok := decoded.(*value.Record)
	require.True(t, ok)
	v, ok := got.Get("x")
	require.True(t, ok)
	assert.Equal(t, "1", v.String())
}

func TestPrintReturnsFirstArg(t *testing.T) {
	reg := registry(t)
	v := call(t, reg, "print", &value.Int{Value: 42})
	assert.Equal(t, "42", v.String())
}

func TestParallelTakesItemsThenFnThenOpts(t *testing.T) {
	reg := registry(t)
	double := &value.Builtin{Name: "double", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value) (value.Value, error) {
		n, _ := asInt("double", args[0])
		return &value.Int{Value: n * 2}, nil
	}}
	opts := value.NewRecord()
	opts.Set("limit", &value.Int{Value: 1})

	promise := call(t, reg, "parallel", &value.List{Elements: ints(1, 2, 3)}, double, opts)
	p, ok := promise.(*value.Promise)
	require.True(t, ok)
	v, err := p.Await()
	require.NoError(t, err)
	assert.Equal(t, "[2, 4, 6]", v.String())
}

func TestParallelWithoutOptsArgument(t *testing.T) {
	reg := registry(t)
	inc := &value.Builtin{Name: "inc", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value) (value.Value, error) {
		n, _ := asInt("inc", args[0])
		return &value.Int{Value: n + 1}, nil
	}}
	promise := call(t, reg, "parallel", &value.List{Elements: ints(1, 2)}, inc)
	p := promise.(*value.Promise)
	v, err := p.Await()
	require.NoError(t, err)
	assert.Equal(t, "[2, 3]", v.String())
}

func TestRaceAndThen(t *testing.T) {
	reg := registry(t)
	settled := value.NewPromise()
	settled.Resolve(&value.Int{Value: 9})

	racePromise := call(t, reg, "race", &value.List{Elements: []value.Value{settled}})
	rp := racePromise.(*value.Promise)
	v, err := rp.Await()
	require.NoError(t, err)
	assert.Equal(t, "9", v.String())

	triple := &value.Builtin{Name: "triple", MinArgs: 1, MaxArgs: 1, Fn: func(args []value.Value) (value.Value, error) {
		n, _ := asInt("triple", args[0])
		return &value.Int{Value: n * 3}, nil
	}}
	thenPromise := call(t, reg, "then", settled, triple)
	tp := thenPromise.(*value.Promise)
	v, err = tp.Await()
	require.NoError(t, err)
	assert.Equal(t, "27", v.String())
}

func TestChannelBuiltins(t *testing.T) {
	reg := registry(t)
	ch := call(t, reg, "channel", &value.Int{Value: 1})
	require.IsType(t, &value.Channel{}, ch)

	sent := call(t, reg, "send", ch, &value.Int{Value: 5})
	assert.Equal(t, "5", sent.String())

	received := call(t, reg, "receive", ch)
	assert.Equal(t, "5", received.String())

	closedVal := call(t, reg, "close", ch)
	assert.Equal(t, "null", closedVal.String())

	drained := call(t, reg, "receive", ch)
	assert.Equal(t, "null", drained.String())
}
