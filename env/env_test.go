package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadotlang/lea/value"
)

func TestFrameBindLookupChild(t *testing.T) {
	parent := New(nil)
	require.NoError(t, parent.Bind("x", &value.Int{Value: 1}, false))

	child := parent.Child()
	v, ok := child.LookUp("x")
	require.True(t, ok)
	assert.Equal(t, "1", v.String())

	require.NoError(t, child.Bind("y", &value.Int{Value: 2}, true))
	_, ok = parent.LookUp("y")
	assert.False(t, ok, "child bindings must not leak into parent")
}

func TestFrameBindRejectsRedeclaration(t *testing.T) {
	fr := New(nil)
	require.NoError(t, fr.Bind("x", &value.Int{Value: 1}, true))
	assert.Error(t, fr.Bind("x", &value.Int{Value: 2}, true))
}

func TestFrameAssignWalksParentChain(t *testing.T) {
	parent := New(nil)
	require.NoError(t, parent.Bind("counter", &value.Int{Value: 0}, true))
	child := parent.Child()

	require.NoError(t, child.Assign("counter", &value.Int{Value: 1}))
	v, _ := parent.LookUp("counter")
	assert.Equal(t, "1", v.String())
}

func TestFrameAssignRejectsImmutable(t *testing.T) {
	fr := New(nil)
	require.NoError(t, fr.Bind("x", &value.Int{Value: 1}, false))
	assert.Error(t, fr.Assign("x", &value.Int{Value: 2}))
}

func TestFrameAssignUndefinedName(t *testing.T) {
	fr := New(nil)
	err := fr.Assign("missing", &value.Int{Value: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined name")
}

func TestRegistryDefaultAndProvideOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Define("Logger", &value.String{Value: "default"})

	v, err := reg.Resolve("Logger")
	require.NoError(t, err)
	assert.Equal(t, "default", v.String())

	pop, err := reg.Push("Logger", &value.String{Value: "override"})
	require.NoError(t, err)
	v, _ = reg.Resolve("Logger")
	assert.Equal(t, "override", v.String())

	pop()
	v, _ = reg.Resolve("Logger")
	assert.Equal(t, "default", v.String())
}

func TestRegistryResolveUndefinedContext(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Resolve("Missing")
	assert.Error(t, err)
	assert.False(t, reg.Defined("Missing"))
}
