package eval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/parser"
	"github.com/leadotlang/lea/value"
)

// runSrc parses and evaluates src against a fresh Evaluator, failing the
// test on any diagnostic rather than returning it, matching §8's
// "concrete scenarios" which all expect a clean run.
func runSrc(t *testing.T, src string) value.Value {
	t.Helper()
	prog, diags := parser.Parse(src)
	require.Empty(t, diags, "parse diagnostics: %v", diags)
	e := New()
	val, err := e.Run(prog)
	require.Nil(t, err, "eval diagnostic: %v", err)
	return val
}

// runSrcErr parses and evaluates src, returning the terminal diagnostic
// instead of asserting its absence.
func runSrcErr(t *testing.T, src string) *diagnostic.Diagnostic {
	t.Helper()
	prog, diags := parser.Parse(src)
	require.Empty(t, diags, "parse diagnostics: %v", diags)
	e := New()
	_, err := e.Run(prog)
	require.NotNil(t, err, "expected a runtime diagnostic")
	return err
}

func TestArithmeticPrecedence(t *testing.T) {
	v := runSrc(t, "1 + 2 * 3")
	assert.Equal(t, "7", v.String())
}

func TestFilterMapReduceChain(t *testing.T) {
	src := `
let nums = [1, 2, 3, 4, 5]
nums /> filter((x) -> x > 2) /> map((x) -> x * x) /> reduce(0, (acc, x) -> acc + x)
`
	v := runSrc(t, src)
	assert.Equal(t, "50", v.String())
}

func TestPlaceholderPipe(t *testing.T) {
	src := `let add = (a, b) -> a + b
5 /> add(_, 3)`
	v := runSrc(t, src)
	assert.Equal(t, "8", v.String())
}

func TestMemoDecoratorCachesCallCount(t *testing.T) {
	src := `
maybe calls = 0
let f = (x) -> { calls = calls + 1; x * 2 } #memo
f(3); f(3); calls
`
	v := runSrc(t, src)
	assert.Equal(t, "1", v.String())
}

func TestRetryDecoratorExhaustsAttempts(t *testing.T) {
	d := runSrcErr(t, "let e = () -> 1/0 #retry(2); e()")
	assert.Equal(t, diagnostic.Runtime, d.Kind)
	assert.Equal(t, diagnostic.CodeDivisionByZero, d.Code)
}

func TestContextProvideOverride(t *testing.T) {
	src := `
context Logger = { log: (m) -> m }
provide Logger { log: (m) -> "X:" ++ m }
Logger.log("hi")
`
	v := runSrc(t, src)
	assert.Equal(t, "X:hi", v.String())
}

func TestFanOutFanIn(t *testing.T) {
	src := `5 \> (x) -> x + 1 \> (x) -> x * 2 /> (a, b) -> a + b`
	v := runSrc(t, src)
	assert.Equal(t, "16", v.String())
}

func TestAsyncAwaitPropagation(t *testing.T) {
	src := `
let f = () -> delay(10) #async
await f(); "done"
`
	v := runSrc(t, src)
	assert.Equal(t, "done", v.String())
}

func TestProvideScopeRestoresPriorTop(t *testing.T) {
	src := `
context Logger = { log: (m) -> m }
let before = Logger.log("a")
provide Logger { log: (m) -> "Y:" ++ m } {
  Logger.log("b")
}
let after = Logger.log("c")
before ++ "," ++ after
`
	v := runSrc(t, src)
	assert.Equal(t, "a,c", v.String())
}

func TestPipeForwardEquivalentToCall(t *testing.T) {
	src1 := `let double = (x) -> x * 2
5 /> double`
	src2 := `let double = (x) -> x * 2
double(5)`
	v1 := runSrc(t, src1)
	v2 := runSrc(t, src2)
	assert.Equal(t, v2.String(), v1.String())
}

func TestPrintReturnsItsArgument(t *testing.T) {
	var out strings.Builder
	prog, diags := parser.Parse(`print(42)`)
	require.Empty(t, diags)
	e := New(WithOutput(&out))
	v, err := e.Run(prog)
	require.Nil(t, err)
	assert.Equal(t, "42", v.String())
	assert.Contains(t, out.String(), "42")
}

func TestComposePipelineIsCallable(t *testing.T) {
	src := `
let addOne = (x) -> x + 1
let double = (x) -> x * 2
let combo = addOne </> double
combo(3)
`
	v := runSrc(t, src)
	assert.Equal(t, "8", v.String())
}

func TestReversePipe(t *testing.T) {
	src := `let inc = (x) -> x + 1
inc </ 5`
	v := runSrc(t, src)
	assert.Equal(t, "6", v.String())
}

func TestSpreadPipeAppliesToEachElement(t *testing.T) {
	src := `[1, 2, 3] />>> (x) -> x * 10`
	v := runSrc(t, src)
	assert.Equal(t, "[10, 20, 30]", v.String())
}

func TestParallelAppliesFnToEachItemPreservingOrder(t *testing.T) {
	src := `
let nums = [1, 2, 3, 4]
await (nums /> parallel((x) -> x * x, { limit: 2 }))
`
	v := runSrc(t, src)
	assert.Equal(t, "[1, 4, 9, 16]", v.String())
}

func TestParallelWithoutLimitOption(t *testing.T) {
	src := `await ([1, 2, 3] /> parallel((x) -> x + 1))`
	v := runSrc(t, src)
	assert.Equal(t, "[2, 3, 4]", v.String())
}

func TestRaceSettlesOnFirstPromise(t *testing.T) {
	src := `await race([delay(1)])`
	v := runSrc(t, src)
	assert.Equal(t, "null", v.String())
}

func TestThenChainsOffAPromise(t *testing.T) {
	src := `await then(delay(1), (_) -> "done")`
	v := runSrc(t, src)
	assert.Equal(t, "done", v.String())
}

func TestChannelSendReceiveRoundTrip(t *testing.T) {
	src := `
let ch = channel(1)
send(ch, 42)
receive(ch)
`
	v := runSrc(t, src)
	assert.Equal(t, "42", v.String())
}

func TestChannelDrainsThenYieldsNullAfterClose(t *testing.T) {
	src := `
let ch = channel(1)
send(ch, 7)
close(ch)
let first = receive(ch)
receive(ch)
`
	v := runSrc(t, src)
	assert.Equal(t, "null", v.String())
}

func TestTapPipeReturnsOriginalInput(t *testing.T) {
	src := `
maybe seen = 0
let record = (x) -> { seen = x }
5 @> record
`
	v := runSrc(t, src)
	assert.Equal(t, "5", v.String())
}
