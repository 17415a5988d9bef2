package ast

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseOperators(t *testing.T) {
	et, err := ParseEType("string")
	require.NoError(t, err)
	assert.Equal(t, ETypeString, et)

	ao, err := ParseAssignmentOperator("+=")
	require.NoError(t, err)
	assert.Equal(t, AddEqual, ao)

	lo, err := ParseLogicalOperator("&&")
	require.NoError(t, err)
	assert.Equal(t, And, lo)

	for text, want := range map[string]ComparisonOperator{
		">": GreaterThan, "<": LessThan, ">=": GreaterThanEqualTo,
		"<=": LessThanEqualTo, "==": EqualEqual, "!=": NotEqual,
	} {
		got, err := ParseComparisonOperator(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
		assert.Equal(t, text, got.String())
	}
}

func TestOperatorStringsRoundTrip(t *testing.T) {
	for op := GreaterThan; op <= NotEqual; op++ {
		got, err := ParseComparisonOperator(op.String())
		require.NoError(t, err, op.String())
		assert.Equal(t, op, got)
	}
	assert.Equal(t, "ComparisonOperator(42)", ComparisonOperator(42).String())
	assert.Equal(t, "EType(9)", EType(9).String())
}

func TestParseOperatorsRejectUnknownText(t *testing.T) {
	tests := []struct {
		name  string
		parse func() error
	}{
		{"etype", func() error { _, err := ParseEType("float"); return err }},
		{"assignment", func() error { _, err := ParseAssignmentOperator("-="); return err }},
		{"comparison", func() error { _, err := ParseComparisonOperator("=<"); return err }},
		{"logical", func() error { _, err := ParseLogicalOperator("and"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnrecognizedOperator)
			assert.Contains(t, err.Error(), "unrecognized operator token")
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "Assignment", KindOf(&Assignment{}))
	assert.Equal(t, "Empty", KindOf(&Empty{}))
	assert.Equal(t, "nil", KindOf(nil))
}

func TestAssignmentIsDeclaration(t *testing.T) {
	et := ETypeInt
	assert.True(t, (&Assignment{EType: &et}).IsDeclaration())
	assert.False(t, (&Assignment{}).IsDeclaration())
}

func sampleProgram() *Enforce {
	et := ETypeInt
	return &Enforce{Statements: []Node{
		&Assignment{EType: &et, Ident: "x", Operator: Equal, Value: &Int{Value: 5}},
		&If{
			Condition: &LogicalExpression{Terms: []LogicalTerm{{
				Operator: And,
				Value: &LogicVal{Expr: &ComparisonExpression{
					LHS: &Ident{Name: "x"},
					RHS: &Comparison{Operator: GreaterThan, Value: &Int{Value: 3}},
				}},
			}}},
			Body: []Node{&Call{Ident: "Print", Args: []Node{
				&Addition{LHS: &Str{Value: "x="}, RHS: &Ident{Name: "x"}},
			}}},
		},
		&Empty{},
	}}
}

func TestDescribeText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Describe(sampleProgram()).WriteText(&buf))

	assert.Equal(t, `Enforce
  Assignment etype="int" ident="x" operator="="
    Int value="5"
  If
    LogicalExpression
      Term operator="&&"
        LogicVal inverted="false"
          ComparisonExpression operator=">"
            Ident name="x"
            Int value="3"
    Call ident="Print"
      Addition
        Str value="x="
        Ident name="x"
  Empty
`, buf.String())
}

func TestDescribeSerialises(t *testing.T) {
	d := Describe(&Assignment{Ident: "b", Operator: AddEqual, Value: &Bool{Value: false}})

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "Assignment",
		"attrs": {"ident": "b", "operator": "+="},
		"children": [{"kind": "Bool", "attrs": {"value": "false"}}]
	}`, string(raw))

	out, err := yaml.Marshal(d)
	require.NoError(t, err)
	var back Description
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, d, &back)
}
