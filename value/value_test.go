package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(&Bool{Value: false}))
	assert.False(t, Truthy(TheNull))
	assert.False(t, Truthy(&Int{Value: 0}))
	assert.False(t, Truthy(&String{Value: ""}))
	assert.True(t, Truthy(&Int{Value: 1}))
	assert.True(t, Truthy(&List{}))
}

func TestRecordPreservesInsertionOrderAcrossReassignment(t *testing.T) {
	rec := NewRecord()
	rec.Set("b", &Int{Value: 1})
	rec.Set("a", &Int{Value: 2})
	rec.Set("b", &Int{Value: 3}) // reassignment must not move "b" to the end
	assert.Equal(t, []string{"b", "a"}, rec.Keys)
	assert.Equal(t, "{b: 3, a: 2}", rec.String())
}

func TestPromiseSingleAssignment(t *testing.T) {
	p := NewPromise()
	p.Resolve(&Int{Value: 1})
	p.Resolve(&Int{Value: 2}) // no-op, already settled
	v, err := p.Await()
	require.NoError(t, err)
	assert.Equal(t, "1", v.String())
	assert.Equal(t, Resolved, p.State())
}

func TestPromiseReject(t *testing.T) {
	p := NewPromise()
	p.Reject(assert.AnError)
	_, err := p.Await()
	assert.Equal(t, assert.AnError, err)
	assert.Equal(t, Rejected, p.State())
}

func TestChannelSendReceiveClose(t *testing.T) {
	ch := NewChannel(1)
	require.NoError(t, ch.Send(&Int{Value: 42}))
	v, ok := ch.Receive()
	require.True(t, ok)
	assert.Equal(t, "42", v.String())
	ch.Close()
	_, ok = ch.Receive()
	assert.False(t, ok)
	assert.Error(t, ch.Send(&Int{Value: 1}))
}

func TestApplyBuiltinArity(t *testing.T) {
	b := &Builtin{Name: "f", MinArgs: 1, MaxArgs: 1, Fn: func(args []Value) (Value, error) {
		return args[0], nil
	}}
	_, err := Apply(b, nil)
	assert.Error(t, err)
	v, err := Apply(b, []Value{&Int{Value: 7}})
	require.NoError(t, err)
	assert.Equal(t, "7", v.String())
}

func TestPipelineComposesStagesInOrder(t *testing.T) {
	addOne := &Builtin{Name: "addOne", MinArgs: 1, MaxArgs: 1, Fn: func(args []Value) (Value, error) {
		n := args[0].(*Int)
		return &Int{Value: n.Value + 1}, nil
	}}
	double := &Builtin{Name: "double", MinArgs: 1, MaxArgs: 1, Fn: func(args []Value) (Value, error) {
		n := args[0].(*Int)
		return &Int{Value: n.Value * 2}, nil
	}}
	p := &Pipeline{Stages: []Value{addOne, double}}
	v, err := Apply(p, []Value{&Int{Value: 3}})
	require.NoError(t, err)
	assert.Equal(t, "8", v.String())
	assert.Equal(t, "pipeline", p.CallableName())
}
