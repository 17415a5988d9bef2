package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/enforce/pkg/ast"
	"github.com/leapstack-labs/enforce/pkg/eval"
	"github.com/leapstack-labs/enforce/pkg/scope"
)

// Result describes a finished (or aborted) run.
type Result struct {
	ID       string
	Store    *scope.Store
	Executed int // top-level statements completed
	Duration time.Duration
}

// Run evaluates prog against a fresh store. On error the partial result is
// still returned so callers can inspect the bindings made so far.
func (e *Engine) Run(ctx context.Context, prog *ast.Enforce) (*Result, error) {
	res := &Result{ID: uuid.New().String(), Store: scope.New()}
	logger := e.logger.With("run_id", res.ID)

	logger.Debug("starting run", "statements", len(prog.Statements))
	start := time.Now()
	n, err := execute(ctx, e.evaluator(logger), prog.Statements, res.Store)
	res.Executed = n
	res.Duration = time.Since(start)

	if err != nil {
		logger.Debug("run failed", "executed", n, "error", err.Error())
		return res, err
	}
	logger.Debug("run completed", "executed", n, "duration", res.Duration)
	return res, nil
}

// RunSource parses and runs source in one step.
func (e *Engine) RunSource(ctx context.Context, name, source string) (*Result, error) {
	prog, err := e.Parse(name, source)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, prog)
}

// execute runs statements one at a time, checking ctx between them.
func execute(ctx context.Context, ev *eval.Evaluator, stmts []ast.Node, store *scope.Store) (int, error) {
	for i, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := ev.Exec(stmt, store); err != nil {
			return i, err
		}
	}
	return len(stmts), nil
}
