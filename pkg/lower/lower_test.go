package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/enforce/pkg/ast"
	"github.com/leapstack-labs/enforce/pkg/parser"
)

func lowerSource(t *testing.T, src string) *ast.Enforce {
	t.Helper()
	root, err := parser.Parse(src)
	require.NoError(t, err)
	prog, err := Program(root)
	require.NoError(t, err)
	return prog
}

func TestProgramEndsWithEmpty(t *testing.T) {
	prog := lowerSource(t, "")
	require.Len(t, prog.Statements, 1)
	assert.IsType(t, &ast.Empty{}, prog.Statements[0])

	prog = lowerSource(t, "int x = 1; x = 2")
	require.Len(t, prog.Statements, 3)
	assert.IsType(t, &ast.Empty{}, prog.Statements[2])
}

func TestLowerAssignment(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *ast.Assignment
	}{
		{
			name: "declaration",
			src:  "int x = 5",
			want: &ast.Assignment{EType: etype(ast.ETypeInt), Ident: "x", Operator: ast.Equal, Value: &ast.Int{Value: 5}},
		},
		{
			name: "plain",
			src:  `y = "hi"`,
			want: &ast.Assignment{Ident: "y", Operator: ast.Equal, Value: &ast.Str{Value: "hi"}},
		},
		{
			name: "compound",
			src:  "x += 3",
			want: &ast.Assignment{Ident: "x", Operator: ast.AddEqual, Value: &ast.Int{Value: 3}},
		},
		{
			name: "bool declaration",
			src:  "bool b = false",
			want: &ast.Assignment{EType: etype(ast.ETypeBool), Ident: "b", Operator: ast.Equal, Value: &ast.Bool{Value: false}},
		},
		{
			name: "negative",
			src:  "int n = -42",
			want: &ast.Assignment{EType: etype(ast.ETypeInt), Ident: "n", Operator: ast.Equal, Value: &ast.Int{Value: -42}},
		},
		{
			name: "identifier value",
			src:  "string s = t",
			want: &ast.Assignment{EType: etype(ast.ETypeString), Ident: "s", Operator: ast.Equal, Value: &ast.Ident{Name: "t"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := lowerSource(t, tt.src)
			require.Len(t, prog.Statements, 2)
			assert.Equal(t, tt.want, prog.Statements[0])
		})
	}
}

func TestLowerCall(t *testing.T) {
	prog := lowerSource(t, `Print("a" + 1, x)`)
	assert.Equal(t, &ast.Call{
		Ident: "Print",
		Args: []ast.Node{
			&ast.Addition{LHS: &ast.Str{Value: "a"}, RHS: &ast.Int{Value: 1}},
			&ast.Ident{Name: "x"},
		},
	}, prog.Statements[0])

	prog = lowerSource(t, "Noop()")
	assert.Equal(t, &ast.Call{Ident: "Noop", Args: []ast.Node{}}, prog.Statements[0])
}

func TestLowerSumFoldsLeft(t *testing.T) {
	prog := lowerSource(t, "x = 1 + 2 + 3")
	a := prog.Statements[0].(*ast.Assignment)
	assert.Equal(t, &ast.Addition{
		LHS: &ast.Addition{LHS: &ast.Int{Value: 1}, RHS: &ast.Int{Value: 2}},
		RHS: &ast.Int{Value: 3},
	}, a.Value)
}

func TestLowerStringUnescapes(t *testing.T) {
	prog := lowerSource(t, `s = "say \"hi\" \\ bye"`)
	a := prog.Statements[0].(*ast.Assignment)
	assert.Equal(t, &ast.Str{Value: `say "hi" \ bye`}, a.Value)
}

func TestLowerIf(t *testing.T) {
	prog := lowerSource(t, `if (!x == 1 || y > 2 && z) { Print(x); x += 1 }`)
	require.Len(t, prog.Statements, 2)

	stmt, ok := prog.Statements[0].(*ast.If)
	require.True(t, ok)

	assert.Equal(t, &ast.LogicalExpression{Terms: []ast.LogicalTerm{
		{Operator: ast.And, Value: &ast.LogicVal{Inverted: true, Expr: &ast.ComparisonExpression{
			LHS: &ast.Ident{Name: "x"},
			RHS: &ast.Comparison{Operator: ast.EqualEqual, Value: &ast.Int{Value: 1}},
		}}},
		{Operator: ast.Or, Value: &ast.LogicVal{Expr: &ast.ComparisonExpression{
			LHS: &ast.Ident{Name: "y"},
			RHS: &ast.Comparison{Operator: ast.GreaterThan, Value: &ast.Int{Value: 2}},
		}}},
		{Operator: ast.And, Value: &ast.LogicVal{Expr: &ast.ComparisonExpression{
			LHS: &ast.Ident{Name: "z"},
		}}},
	}}, stmt.Condition)

	require.Len(t, stmt.Body, 2)
	assert.IsType(t, &ast.Call{}, stmt.Body[0])
	assert.IsType(t, &ast.Assignment{}, stmt.Body[1])
}

func TestLowerComparisonOperators(t *testing.T) {
	for text, want := range map[string]ast.ComparisonOperator{
		"==": ast.EqualEqual, "!=": ast.NotEqual, ">": ast.GreaterThan,
		"<": ast.LessThan, ">=": ast.GreaterThanEqualTo, "<=": ast.LessThanEqualTo,
	} {
		prog := lowerSource(t, "if (a "+text+" b) {}")
		cond := prog.Statements[0].(*ast.If).Condition.(*ast.LogicalExpression)
		cmp := cond.Terms[0].Value.(*ast.LogicVal).Expr.(*ast.ComparisonExpression)
		require.NotNil(t, cmp.RHS, text)
		assert.Equal(t, want, cmp.RHS.Operator, text)
	}
}

func TestLowerIntOutOfRange(t *testing.T) {
	root, err := parser.Parse("int x = 2147483648")
	require.NoError(t, err)

	_, err = Program(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLiteral)

	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, parser.RuleInt, lerr.Rule)
	assert.Equal(t, "2147483648", lerr.Text)
	assert.Equal(t, 1, lerr.Pos.Line)
	assert.Equal(t, 9, lerr.Pos.Column)
}

func TestLowerRejectsUnsupportedRules(t *testing.T) {
	for _, rule := range []parser.Rule{
		parser.RuleEType, parser.RuleAssignOp, parser.RuleArgs, parser.RuleInner,
		parser.RuleLogicOp, parser.RuleNot, parser.RuleComparisonOp, parser.Rule(99),
	} {
		t.Run(rule.String(), func(t *testing.T) {
			_, err := Lower(&parser.Pair{Rule: rule, Text: "x"})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedRule)
		})
	}
}

func TestLowerMalformedTrees(t *testing.T) {
	leaf := func(r parser.Rule, text string) *parser.Pair { return &parser.Pair{Rule: r, Text: text} }

	tests := []struct {
		name string
		pair *parser.Pair
		want error
	}{
		{"nil pair", nil, ErrMalformedTree},
		{"short assignment", &parser.Pair{Rule: parser.RuleAssignment, Children: []*parser.Pair{
			leaf(parser.RuleIdent, "x"), leaf(parser.RuleAssignOp, "="),
		}}, ErrMalformedTree},
		{"call without args", &parser.Pair{Rule: parser.RuleCall, Children: []*parser.Pair{
			leaf(parser.RuleIdent, "Print"),
		}}, ErrMalformedTree},
		{"string without inner", leaf(parser.RuleString, `"x"`), ErrMalformedTree},
		{"even logic chain", &parser.Pair{Rule: parser.RuleLogicExpr, Children: []*parser.Pair{
			leaf(parser.RuleBool, "true"), leaf(parser.RuleLogicOp, "&&"),
		}}, ErrMalformedTree},
		{"bad assignment operator", &parser.Pair{Rule: parser.RuleAssignment, Children: []*parser.Pair{
			leaf(parser.RuleIdent, "x"), leaf(parser.RuleAssignOp, "-="), leaf(parser.RuleInt, "1"),
		}}, ast.ErrUnrecognizedOperator},
		{"bad etype", &parser.Pair{Rule: parser.RuleAssignment, Children: []*parser.Pair{
			leaf(parser.RuleEType, "float"), leaf(parser.RuleIdent, "x"),
			leaf(parser.RuleAssignOp, "="), leaf(parser.RuleInt, "1"),
		}}, ast.ErrUnrecognizedOperator},
		{"bad bool", leaf(parser.RuleBool, "yes"), ErrInvalidLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lower(tt.pair)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProgramRequiresEnforceRoot(t *testing.T) {
	_, err := Program(&parser.Pair{Rule: parser.RuleIdent, Text: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedTree)
	assert.Contains(t, err.Error(), "want enforce")
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "plain", unescape("plain"))
	assert.Equal(t, `a"b`, unescape(`a\"b`))
	assert.Equal(t, `\`, unescape(`\\`))
	assert.Equal(t, `trailing\`, unescape(`trailing\`))
}

func etype(t ast.EType) *ast.EType { return &t }
