// Package lower converts the generic parse tree produced by package parser
// into the typed AST of package ast.
//
// Lowering is a single dispatch on the pair's rule tag; each rule reads its
// children positionally and recurses. Unknown or token-level rules reaching
// the dispatcher are errors, never skipped.
package lower

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/leapstack-labs/enforce/pkg/ast"
	"github.com/leapstack-labs/enforce/pkg/parser"
)

// ErrInvalidLiteral is wrapped by errors for literals that cannot be
// represented, such as integers outside the 32-bit range.
var ErrInvalidLiteral = errors.New("invalid literal")

// Lowerer converts parse trees into AST nodes. It holds no per-tree state
// and may be reused.
type Lowerer struct {
	logger *slog.Logger
}

// Option configures a Lowerer.
type Option func(*Lowerer)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lowerer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Lowerer.
func New(opts ...Option) *Lowerer {
	l := &Lowerer{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lower converts p with a default Lowerer.
func Lower(p *parser.Pair) (ast.Node, error) {
	return New().Lower(p)
}

// Program lowers a root pair and requires the result to be an Enforce node.
func Program(p *parser.Pair) (*ast.Enforce, error) {
	return New().Program(p)
}

// Program lowers a root pair and requires the result to be an Enforce node.
func (l *Lowerer) Program(p *parser.Pair) (*ast.Enforce, error) {
	if p == nil {
		return nil, &Error{Err: fmt.Errorf("%w: nil root", ErrMalformedTree)}
	}
	n, err := l.Lower(p)
	if err != nil {
		return nil, err
	}
	prog, ok := n.(*ast.Enforce)
	if !ok {
		return nil, errorAt(p, fmt.Errorf("%w: root is %s, want enforce", ErrMalformedTree, p.Rule))
	}
	l.logger.Debug("lowered program", "statements", len(prog.Statements))
	return prog, nil
}

// Lower converts one pair and its descendants.
func (l *Lowerer) Lower(p *parser.Pair) (ast.Node, error) {
	if p == nil {
		return nil, &Error{Err: fmt.Errorf("%w: nil pair", ErrMalformedTree)}
	}

	switch p.Rule {
	case parser.RuleEnforce:
		stmts, err := l.lowerAll(p.Children)
		if err != nil {
			return nil, err
		}
		return &ast.Enforce{Statements: stmts}, nil
	case parser.RuleAssignment:
		return l.lowerAssignment(p)
	case parser.RuleCall:
		return l.lowerCall(p)
	case parser.RuleInt:
		v, err := strconv.ParseInt(p.Text, 10, 32)
		if err != nil {
			return nil, errorAt(p, fmt.Errorf("%w: %w", ErrInvalidLiteral, err))
		}
		return &ast.Int{Value: int32(v)}, nil
	case parser.RuleString:
		inner := p.Child(0)
		if inner == nil {
			return nil, errorAt(p, fmt.Errorf("%w: string without inner text", ErrMalformedTree))
		}
		return &ast.Str{Value: unescape(inner.Text)}, nil
	case parser.RuleIdent:
		return &ast.Ident{Name: p.Text}, nil
	case parser.RuleBool:
		switch p.Text {
		case "true":
			return &ast.Bool{Value: true}, nil
		case "false":
			return &ast.Bool{Value: false}, nil
		}
		return nil, errorAt(p, fmt.Errorf("%w: boolean %q", ErrInvalidLiteral, p.Text))
	case parser.RuleIf:
		return l.lowerIf(p)
	case parser.RuleComparisonExpr:
		return l.lowerComparison(p)
	case parser.RuleLogicExpr:
		return l.lowerLogicExpr(p)
	case parser.RuleLogicVal:
		return l.lowerLogicVal(p)
	case parser.RuleSum:
		return l.lowerSum(p)
	case parser.RuleEOI:
		return &ast.Empty{}, nil
	default:
		return nil, errorAt(p, ErrUnsupportedRule)
	}
}

func (l *Lowerer) lowerAll(pairs []*parser.Pair) ([]ast.Node, error) {
	nodes := make([]ast.Node, 0, len(pairs))
	for _, c := range pairs {
		n, err := l.Lower(c)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// lowerAssignment reads `[etype] ident op value`. Four children mean the
// declaration form.
func (l *Lowerer) lowerAssignment(p *parser.Pair) (ast.Node, error) {
	parts := p.Children
	if len(parts) != 3 && len(parts) != 4 {
		return nil, errorAt(p, fmt.Errorf("%w: assignment has %d children", ErrMalformedTree, len(parts)))
	}

	a := &ast.Assignment{}
	if len(parts) == 4 {
		et, err := ast.ParseEType(parts[0].Text)
		if err != nil {
			return nil, errorAt(parts[0], err)
		}
		a.EType = &et
		parts = parts[1:]
	}

	a.Ident = parts[0].Text
	op, err := ast.ParseAssignmentOperator(parts[1].Text)
	if err != nil {
		return nil, errorAt(parts[1], err)
	}
	a.Operator = op

	if a.Value, err = l.Lower(parts[2]); err != nil {
		return nil, err
	}
	return a, nil
}

func (l *Lowerer) lowerCall(p *parser.Pair) (ast.Node, error) {
	ident, args := p.Child(0), p.Child(1)
	if ident == nil || args == nil || args.Rule != parser.RuleArgs {
		return nil, errorAt(p, fmt.Errorf("%w: call needs ident and args", ErrMalformedTree))
	}
	nodes, err := l.lowerAll(args.Children)
	if err != nil {
		return nil, err
	}
	return &ast.Call{Ident: ident.Text, Args: nodes}, nil
}

func (l *Lowerer) lowerIf(p *parser.Pair) (ast.Node, error) {
	if p.Len() == 0 {
		return nil, errorAt(p, fmt.Errorf("%w: if without condition", ErrMalformedTree))
	}
	cond, err := l.Lower(p.Child(0))
	if err != nil {
		return nil, err
	}
	body, err := l.lowerAll(p.Children[1:])
	if err != nil {
		return nil, err
	}
	return &ast.If{Condition: cond, Body: body}, nil
}

// lowerComparison reads `lhs [op rhs]`; a missing operator leaves RHS nil.
func (l *Lowerer) lowerComparison(p *parser.Pair) (ast.Node, error) {
	if p.Len() != 1 && p.Len() != 3 {
		return nil, errorAt(p, fmt.Errorf("%w: comparison has %d children", ErrMalformedTree, p.Len()))
	}
	lhs, err := l.Lower(p.Child(0))
	if err != nil {
		return nil, err
	}
	cmp := &ast.ComparisonExpression{LHS: lhs}
	if p.Len() == 3 {
		op, err := ast.ParseComparisonOperator(p.Child(1).Text)
		if err != nil {
			return nil, errorAt(p.Child(1), err)
		}
		rhs, err := l.Lower(p.Child(2))
		if err != nil {
			return nil, err
		}
		cmp.RHS = &ast.Comparison{Operator: op, Value: rhs}
	}
	return cmp, nil
}

// lowerLogicExpr builds the chain: the first term is paired with an
// implicit AND, the rest alternate operator and term.
func (l *Lowerer) lowerLogicExpr(p *parser.Pair) (ast.Node, error) {
	if p.Len()%2 == 0 {
		return nil, errorAt(p, fmt.Errorf("%w: logical chain has %d children", ErrMalformedTree, p.Len()))
	}
	first, err := l.Lower(p.Child(0))
	if err != nil {
		return nil, err
	}
	expr := &ast.LogicalExpression{Terms: []ast.LogicalTerm{{Operator: ast.And, Value: first}}}

	for i := 1; i < p.Len(); i += 2 {
		op, err := ast.ParseLogicalOperator(p.Child(i).Text)
		if err != nil {
			return nil, errorAt(p.Child(i), err)
		}
		val, err := l.Lower(p.Child(i + 1))
		if err != nil {
			return nil, err
		}
		expr.Terms = append(expr.Terms, ast.LogicalTerm{Operator: op, Value: val})
	}
	return expr, nil
}

// lowerLogicVal marks the term inverted when a negation precedes it.
func (l *Lowerer) lowerLogicVal(p *parser.Pair) (ast.Node, error) {
	if p.Len() == 0 {
		return nil, errorAt(p, fmt.Errorf("%w: empty logical value", ErrMalformedTree))
	}
	expr, err := l.Lower(p.Last())
	if err != nil {
		return nil, err
	}
	return &ast.LogicVal{Inverted: p.Len() == 2, Expr: expr}, nil
}

// lowerSum folds operands to the left: a + b + c is (a + b) + c.
func (l *Lowerer) lowerSum(p *parser.Pair) (ast.Node, error) {
	if p.Len() < 2 {
		return nil, errorAt(p, fmt.Errorf("%w: sum has %d operands", ErrMalformedTree, p.Len()))
	}
	acc, err := l.Lower(p.Child(0))
	if err != nil {
		return nil, err
	}
	for _, c := range p.Children[1:] {
		rhs, err := l.Lower(c)
		if err != nil {
			return nil, err
		}
		acc = &ast.Addition{LHS: acc, RHS: rhs}
	}
	return acc, nil
}

// unescape drops one backslash before any escaped character.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
