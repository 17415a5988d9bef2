package lower

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/enforce/pkg/parser"
	"github.com/leapstack-labs/enforce/pkg/token"
)

// ErrUnsupportedRule is wrapped by errors for rule tags lowering does not
// handle.
var ErrUnsupportedRule = errors.New("unsupported grammar rule")

// ErrMalformedTree is wrapped by errors for pairs missing expected children.
var ErrMalformedTree = errors.New("malformed parse tree")

// Error is a failure to build the AST from a parse tree.
type Error struct {
	Rule parser.Rule
	Pos  token.Position
	Text string
	Err  error
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("lowering error at line %d, column %d (%s %q): %v", e.Pos.Line, e.Pos.Column, e.Rule, e.Text, e.Err)
	}
	return fmt.Sprintf("lowering error (%s %q): %v", e.Rule, e.Text, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errorAt(p *parser.Pair, err error) *Error {
	return &Error{Rule: p.Rule, Pos: p.Span.Start, Text: p.Text, Err: err}
}
