package engine

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/enforce/internal/testutil"
	"github.com/leapstack-labs/enforce/pkg/ast"
	"github.com/leapstack-labs/enforce/pkg/eval"
	"github.com/leapstack-labs/enforce/pkg/lower"
	"github.com/leapstack-labs/enforce/pkg/parser"
)

func newTestEngine(t *testing.T) (*Engine, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return New(Config{Output: &out, Logger: testutil.NewTestLogger(t)}), &out
}

func TestNewDefaults(t *testing.T) {
	e := New(Config{})
	assert.NotNil(t, e.out)
	assert.NotNil(t, e.logger)
	assert.NotNil(t, e.lowerer)
}

func TestRunSource(t *testing.T) {
	e, out := newTestEngine(t)

	res, err := e.RunSource(context.Background(), "main.enf", `int x = 5; x += 3; Print(x)`)
	require.NoError(t, err)
	assert.Equal(t, "8\n", out.String())
	assert.Equal(t, 4, res.Executed) // three statements plus end of input
	assert.NotEmpty(t, res.ID)

	v, ok := res.Store.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, &ast.Int{Value: 8}, v)
}

func TestRunsDoNotShareStores(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	first, err := e.RunSource(ctx, "a", `int x = 1`)
	require.NoError(t, err)
	second, err := e.RunSource(ctx, "b", `x = 2`)
	require.Error(t, err)
	assert.ErrorIs(t, err, eval.ErrUndeclaredAssignment)

	assert.NotEqual(t, first.ID, second.ID)
	v, _ := first.Store.Lookup("x")
	assert.Equal(t, &ast.Int{Value: 1}, v)
}

func TestRunReturnsPartialResult(t *testing.T) {
	e, out := newTestEngine(t)

	res, err := e.RunSource(context.Background(), "main", `Print("a"); int y = 2; Foo(); Print("b")`)
	require.Error(t, err)
	assert.ErrorIs(t, err, eval.ErrUndefinedFunction)
	assert.Equal(t, "a\n", out.String())
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Executed)

	_, ok := res.Store.Lookup("y")
	assert.True(t, ok)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	e, out := newTestEngine(t)
	prog, err := e.Parse("main", `Print(1); Print(2)`)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := e.Run(ctx, prog)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Executed)
	assert.Empty(t, out.String())
}

func TestParseErrorsCarryName(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Parse("broken.enf", "int = 5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.enf: ")
	var perr *parser.ParseError
	assert.ErrorAs(t, err, &perr)

	_, err = e.Parse("big.enf", "int x = 99999999999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "big.enf: ")
	assert.ErrorIs(t, err, lower.ErrInvalidLiteral)
}

func TestParseTree(t *testing.T) {
	e, _ := newTestEngine(t)
	root, err := e.ParseTree("main", `Print(1)`)
	require.NoError(t, err)
	assert.Equal(t, parser.RuleEnforce, root.Rule)
	assert.Equal(t, parser.RuleCall, root.Child(0).Rule)
	assert.Equal(t, parser.RuleEOI, root.Last().Rule)
}

func TestSession(t *testing.T) {
	e, out := newTestEngine(t)
	s := e.Session()
	ctx := context.Background()

	require.NoError(t, s.Eval(ctx, "repl", `int x = 1`))
	require.NoError(t, s.Eval(ctx, "repl", `x += 41`))
	require.NoError(t, s.Eval(ctx, "repl", `Print(x)`))
	assert.Equal(t, "42\n", out.String())

	// bindings made before a failing statement survive
	err := s.Eval(ctx, "repl", `int y = 2; Nope()`)
	require.ErrorIs(t, err, eval.ErrUndefinedFunction)
	_, ok := s.Store().Lookup("y")
	assert.True(t, ok)

	err = s.Eval(ctx, "repl", `int = `)
	require.Error(t, err)

	s.Reset()
	assert.Empty(t, s.Store().Bindings())
}

func TestCheckKeepsInputOrder(t *testing.T) {
	e, out := newTestEngine(t)
	dir := t.TempDir()

	paths := []string{
		testutil.WriteSource(t, dir, "ok.enf", `int x = 1; Print(x)`),
		testutil.WriteSource(t, dir, "bad.enf", `int x = `),
		filepath.Join(dir, "missing.enf"),
		testutil.WriteSource(t, dir, "nested/also_ok.enf", `if (1 == 1) { Print(2) }`),
	}

	results, err := e.Check(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
	}
	assert.True(t, results[0].OK())
	assert.Equal(t, 3, results[0].Statements)
	assert.False(t, results[1].OK())
	assert.Contains(t, results[1].Err.Error(), "bad.enf")
	assert.False(t, results[2].OK())
	assert.Contains(t, results[2].Err.Error(), "failed to read file")
	assert.True(t, results[3].OK())

	// checking never runs programs
	assert.Empty(t, out.String())
}

func TestCheckCancelled(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Check(ctx, []string{testutil.WriteSource(t, "", "a.enf", `Print(1)`)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogsCarryRunAndSessionIDs(t *testing.T) {
	logger, logs := testutil.NewLogCapture()
	var out bytes.Buffer
	e := New(Config{Output: &out, Logger: logger})

	res, err := e.RunSource(context.Background(), "main", `int x = 1`)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "run_id="+res.ID)
	assert.Contains(t, logs.String(), "msg=\"run completed\"")

	s := e.Session()
	s.Reset()
	assert.Contains(t, logs.String(), "session_id=")
	assert.Contains(t, logs.String(), "msg=\"session reset\"")
}
