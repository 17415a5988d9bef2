package eval

import (
	"strconv"

	"github.com/leapstack-labs/enforce/pkg/ast"
)

// add implements `+`. Int+Int wraps on overflow; any pairing with a Str
// concatenates the decimal rendering of the Int side.
func add(lhs, rhs ast.Node) (ast.Node, error) {
	switch a := lhs.(type) {
	case *ast.Int:
		switch b := rhs.(type) {
		case *ast.Int:
			return &ast.Int{Value: a.Value + b.Value}, nil
		case *ast.Str:
			return &ast.Str{Value: formatInt(a.Value) + b.Value}, nil
		}
	case *ast.Str:
		switch b := rhs.(type) {
		case *ast.Int:
			return &ast.Str{Value: a.Value + formatInt(b.Value)}, nil
		case *ast.Str:
			return &ast.Str{Value: a.Value + b.Value}, nil
		}
	}
	return nil, mismatch("+", lhs, rhs)
}

// ordinal maps the operands of eq, gt and lt onto integers. Only Int with
// Int or Int with Bool (false=0, true=1) are comparable.
func ordinal(op string, lhs, rhs ast.Node) (int32, int32, error) {
	a, aInt := asInt(lhs)
	b, bInt := asInt(rhs)
	_, aBool := lhs.(*ast.Bool)
	_, bBool := rhs.(*ast.Bool)

	if aInt && (bInt || bBool) || aBool && bInt {
		return a, b, nil
	}
	return 0, 0, mismatch(op, lhs, rhs)
}

func asInt(n ast.Node) (int32, bool) {
	switch v := n.(type) {
	case *ast.Int:
		return v.Value, true
	case *ast.Bool:
		if v.Value {
			return 1, false
		}
		return 0, false
	}
	return 0, false
}

func eq(lhs, rhs ast.Node) (bool, error) {
	a, b, err := ordinal("==", lhs, rhs)
	return a == b, err
}

func gt(lhs, rhs ast.Node) (bool, error) {
	a, b, err := ordinal(">", lhs, rhs)
	return a > b, err
}

func lt(lhs, rhs ast.Node) (bool, error) {
	a, b, err := ordinal("<", lhs, rhs)
	return a < b, err
}

// Stringify renders a scalar value the way Print does.
func Stringify(n ast.Node) (string, error) {
	switch v := n.(type) {
	case *ast.Str:
		return v.Value, nil
	case *ast.Int:
		return formatInt(v.Value), nil
	case *ast.Bool:
		return strconv.FormatBool(v.Value), nil
	}
	return "", newError(ErrNotPrintable, "%s", ast.KindOf(n))
}

func formatInt(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

func mismatch(op string, lhs, rhs ast.Node) *Error {
	return newError(ErrTypeMismatch, "%s %s %s", ast.KindOf(lhs), op, ast.KindOf(rhs))
}
