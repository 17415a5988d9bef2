// Package ast defines the typed syntax tree of an Enforce program.
//
// Node is a sealed interface: only the variants declared in this package
// implement it, so every consumer switches over a fixed set of types.
// Child nodes are exclusively owned by their parent; trees are never shared
// or cyclic.
package ast

// Node is the base interface for all AST nodes.
type Node interface {
	node() // Marker method to seal the variant set
}

// Enforce is the program root. Statements run in order.
type Enforce struct {
	Statements []Node
}

// Bool is a boolean literal.
type Bool struct {
	Value bool
}

// Int is a 32-bit signed integer literal.
type Int struct {
	Value int32
}

// Str is a string literal with quoting already removed.
type Str struct {
	Value string
}

// Ident is a reference to a variable or function by name.
type Ident struct {
	Name string
}

// Call invokes a function by name with positional arguments.
type Call struct {
	Ident string
	Args  []Node
}

// Assignment declares (EType set) or updates (EType nil) a variable.
type Assignment struct {
	EType    *EType
	Ident    string
	Operator AssignmentOperator
	Value    Node
}

// IsDeclaration reports whether the assignment introduces a new binding.
func (a *Assignment) IsDeclaration() bool {
	return a.EType != nil
}

// If runs Body when Condition holds. There is no else branch.
type If struct {
	Condition Node
	Body      []Node
}

// Comparison is the operator and right operand of a ComparisonExpression.
type Comparison struct {
	Operator ComparisonOperator
	Value    Node
}

// ComparisonExpression compares LHS against RHS. A nil RHS is a truthiness
// check of LHS.
type ComparisonExpression struct {
	LHS Node
	RHS *Comparison
}

// LogicalTerm is one link of a LogicalExpression chain.
type LogicalTerm struct {
	Operator LogicalOperator
	Value    Node
}

// LogicalExpression is a left-to-right chain of LogicVal terms. The first
// term carries AND by convention.
type LogicalExpression struct {
	Terms []LogicalTerm
}

// LogicVal wraps a ComparisonExpression, optionally negated.
type LogicVal struct {
	Inverted bool
	Expr     Node
}

// Addition is `LHS + RHS`. Chains nest to the left.
type Addition struct {
	LHS Node
	RHS Node
}

// Empty marks end of input.
type Empty struct{}

func (*Enforce) node()              {}
func (*Bool) node()                 {}
func (*Int) node()                  {}
func (*Str) node()                  {}
func (*Ident) node()                {}
func (*Call) node()                 {}
func (*Assignment) node()           {}
func (*If) node()                   {}
func (*ComparisonExpression) node() {}
func (*LogicalExpression) node()    {}
func (*LogicVal) node()             {}
func (*Addition) node()             {}
func (*Empty) node()                {}

// KindOf returns the variant name of n, as used in diagnostics.
func KindOf(n Node) string {
	switch n.(type) {
	case *Enforce:
		return "Enforce"
	case *Bool:
		return "Bool"
	case *Int:
		return "Int"
	case *Str:
		return "Str"
	case *Ident:
		return "Ident"
	case *Call:
		return "Call"
	case *Assignment:
		return "Assignment"
	case *If:
		return "If"
	case *ComparisonExpression:
		return "ComparisonExpression"
	case *LogicalExpression:
		return "LogicalExpression"
	case *LogicVal:
		return "LogicVal"
	case *Addition:
		return "Addition"
	case *Empty:
		return "Empty"
	case nil:
		return "nil"
	default:
		return "unknown"
	}
}
