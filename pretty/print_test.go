package pretty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadotlang/lea/parser"
)

func roundTrip(t *testing.T, src string) string {
	t.Helper()
	prog, diags := parser.Parse(src)
	require.Empty(t, diags)
	return Print(prog)
}

func TestPrintReparsesToEquivalentTree(t *testing.T) {
	src := `let add = (a, b) -> a + b
add(1, 2)`
	first := roundTrip(t, src)
	prog2, diags := parser.Parse(first)
	require.Empty(t, diags)
	second := Print(prog2)
	assert.Equal(t, first, second, "printing the printed output must be a fixed point")
}

func TestPrintPipeExpression(t *testing.T) {
	out := roundTrip(t, `5 /> (x) -> x + 1`)
	assert.Contains(t, out, "/>")
}

func TestPrintFunctionWithDecorator(t *testing.T) {
	out := roundTrip(t, `let f = (x) -> x #memo`)
	assert.Contains(t, out, "#memo")
}
