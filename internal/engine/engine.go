// Package engine runs Enforce programs: it parses source text, lowers the
// parse tree to an AST and evaluates it against a scope store.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/enforce/pkg/ast"
	"github.com/leapstack-labs/enforce/pkg/eval"
	"github.com/leapstack-labs/enforce/pkg/lower"
	"github.com/leapstack-labs/enforce/pkg/parser"
)

// Engine parses and runs programs. It is safe for concurrent use; each run
// gets its own store.
type Engine struct {
	out     io.Writer
	logger  *slog.Logger
	lowerer *lower.Lowerer
}

// Config holds engine configuration.
type Config struct {
	// Output receives Print lines (defaults to os.Stdout)
	Output io.Writer
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	return &Engine{
		out:     out,
		logger:  logger,
		lowerer: lower.New(lower.WithLogger(logger)),
	}
}

// ParseTree parses source into the generic parse tree. name is used only
// in error messages.
func (e *Engine) ParseTree(name, source string) (*parser.Pair, error) {
	root, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return root, nil
}

// Parse parses and lowers source into a program.
func (e *Engine) Parse(name, source string) (*ast.Enforce, error) {
	root, err := e.ParseTree(name, source)
	if err != nil {
		return nil, err
	}
	prog, err := e.lowerer.Program(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	e.logger.Debug("parsed program", "name", name, "statements", len(prog.Statements))
	return prog, nil
}

func (e *Engine) evaluator(logger *slog.Logger) *eval.Evaluator {
	return eval.New(eval.WithOutput(e.out), eval.WithLogger(logger))
}
