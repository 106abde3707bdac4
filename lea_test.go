package lea

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsFinalExpressionValue(t *testing.T) {
	v, diags := Run("1 + 2 * 3")
	require.Empty(t, diags)
	assert.Equal(t, "7", v.String())
}

func TestRunStopsAtParseDiagnostics(t *testing.T) {
	_, diags := Run("let = ")
	require.NotEmpty(t, diags)
}

func TestRunCapturesPrintOutput(t *testing.T) {
	var out strings.Builder
	v, diags := Run(`print("hi")`, WithOutput(&out))
	require.Empty(t, diags)
	assert.Equal(t, "hi", v.String())
	assert.Contains(t, out.String(), "hi")
}

func TestRunFileReadsAndEvaluates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lea")
	require.NoError(t, os.WriteFile(path, []byte("21 * 2"), 0o644))

	v, diags := RunFile(path)
	require.Empty(t, diags)
	assert.Equal(t, "42", v.String())
}

func TestRunFileMissingFile(t *testing.T) {
	_, diags := RunFile("/nonexistent/path/prog.lea")
	require.NotEmpty(t, diags)
}

func TestLexAndParseEntryPoints(t *testing.T) {
	tokens, diags := Lex("1 + 2")
	require.Empty(t, diags)
	assert.NotEmpty(t, tokens)

	prog, diags := Parse("1 + 2")
	require.Empty(t, diags)
	assert.Len(t, prog.Statements, 1)
}

func TestNewEvaluatorPersistsStateAcrossCalls(t *testing.T) {
	e := NewEvaluator()
	prog, diags := Parse("maybe total = 0")
	require.Empty(t, diags)
	_, err := e.Run(prog)
	require.Nil(t, err)

	prog2, diags := Parse("total = total + 5; total")
	require.Empty(t, diags)
	v, err := e.Run(prog2)
	require.Nil(t, err)
	assert.Equal(t, "5", v.String())
}
