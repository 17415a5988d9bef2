package eval

import (
	"github.com/leapstack-labs/enforce/pkg/ast"
	"github.com/leapstack-labs/enforce/pkg/scope"
)

// condition evaluates a logical chain strictly left to right, without
// precedence: a && b || c is (a && b) || c. A term is only evaluated when
// it can change the running result.
func (e *Evaluator) condition(n ast.Node, store *scope.Store) (bool, error) {
	chain, ok := n.(*ast.LogicalExpression)
	if !ok {
		return false, newError(ErrMalformedCondition, "got %s", ast.KindOf(n))
	}

	current := true
	for _, term := range chain.Terms {
		if current != (term.Operator == ast.And) {
			continue
		}
		v, err := e.term(term.Value, store)
		if err != nil {
			return false, err
		}
		current = v
	}
	return current, nil
}

func (e *Evaluator) term(n ast.Node, store *scope.Store) (bool, error) {
	lv, ok := n.(*ast.LogicVal)
	if !ok {
		return false, newError(ErrMalformedLogicalTerm, "got %s", ast.KindOf(n))
	}
	cmp, ok := lv.Expr.(*ast.ComparisonExpression)
	if !ok {
		return false, newError(ErrMalformedLogicalTerm, "LogicVal wraps %s", ast.KindOf(lv.Expr))
	}
	if lv.Inverted {
		return false, newError(ErrUnsupportedOperator, "!")
	}

	lhs, err := e.resolve(cmp.LHS, store)
	if err != nil {
		return false, err
	}
	if cmp.RHS == nil {
		return eq(lhs, &ast.Bool{Value: true})
	}
	rhs, err := e.resolve(cmp.RHS.Value, store)
	if err != nil {
		return false, err
	}

	switch cmp.RHS.Operator {
	case ast.EqualEqual:
		return eq(lhs, rhs)
	case ast.GreaterThan:
		return gt(lhs, rhs)
	case ast.LessThan:
		return lt(lhs, rhs)
	default:
		return false, newError(ErrUnsupportedOperator, "%s", cmp.RHS.Operator)
	}
}
