// Package eval executes lowered Enforce programs against a scope store.
//
// Evaluation is single-threaded and stops at the first error. Values are
// the AST literal nodes themselves (*ast.Int, *ast.Str, *ast.Bool); the
// store owns whatever is bound into it.
package eval

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/enforce/pkg/ast"
	"github.com/leapstack-labs/enforce/pkg/scope"
)

// Evaluator runs statements. It keeps no program state of its own; all
// bindings live in the *scope.Store passed to Run or Exec.
type Evaluator struct {
	out    io.Writer
	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithOutput sets where Print writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Evaluator) {
		if w != nil {
			e.out = w
		}
	}
}

// WithLogger sets the logger for statement tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		out:    os.Stdout,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes stmts in order against store.
func (e *Evaluator) Run(stmts []ast.Node, store *scope.Store) error {
	for _, stmt := range stmts {
		if err := e.Exec(stmt, store); err != nil {
			return err
		}
	}
	return nil
}

// Exec executes a single statement.
func (e *Evaluator) Exec(node ast.Node, store *scope.Store) error {
	e.logger.Debug("exec", "statement", ast.KindOf(node))

	switch n := node.(type) {
	case *ast.Assignment:
		return e.execAssignment(n, store)
	case *ast.Call:
		return e.execCall(n, store)
	case *ast.If:
		return e.execIf(n, store)
	case *ast.Empty:
		return nil
	default:
		return newError(ErrUnsupportedStatement, "%s", ast.KindOf(node))
	}
}

func (e *Evaluator) execAssignment(a *ast.Assignment, store *scope.Store) error {
	var old ast.Node
	if a.Operator == ast.AddEqual {
		var ok bool
		if old, ok = store.Lookup(a.Ident); !ok {
			return newError(ErrUndeclaredCompoundAssignment, "%s", a.Ident)
		}
	}

	value, err := e.resolve(a.Value, store)
	if err != nil {
		return err
	}
	if old != nil {
		if value, err = add(old, value); err != nil {
			return err
		}
	}

	if err := store.Bind(a.Ident, value, a.IsDeclaration()); err != nil {
		if errors.Is(err, scope.ErrUndeclaredAssignment) {
			return &Error{Kind: ErrUndeclaredAssignment, Detail: a.Ident, Err: err}
		}
		return err
	}
	return nil
}

func (e *Evaluator) execCall(c *ast.Call, store *scope.Store) error {
	if _, ok := store.Lookup(c.Ident); ok {
		return newError(ErrUnsupportedCall, "%s", c.Ident)
	}
	fn, ok := builtins[c.Ident]
	if !ok {
		return newError(ErrUndefinedFunction, "%s", c.Ident)
	}
	return fn(e, c.Args, store)
}

// execIf runs the body in the enclosing scope when the condition holds.
func (e *Evaluator) execIf(n *ast.If, store *scope.Store) error {
	ok, err := e.condition(n.Condition, store)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return e.Run(n.Body, store)
}

// resolve reduces an expression to a value: identifiers are looked up and
// additions computed. Literals resolve to themselves.
func (e *Evaluator) resolve(n ast.Node, store *scope.Store) (ast.Node, error) {
	switch v := n.(type) {
	case *ast.Ident:
		val, ok := store.Lookup(v.Name)
		if !ok {
			return nil, newError(ErrUndefinedVariable, "%s", v.Name)
		}
		return val, nil
	case *ast.Addition:
		lhs, err := e.resolve(v.LHS, store)
		if err != nil {
			return nil, err
		}
		rhs, err := e.resolve(v.RHS, store)
		if err != nil {
			return nil, err
		}
		return add(lhs, rhs)
	default:
		return n, nil
	}
}
