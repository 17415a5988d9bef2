package ast

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedOperator is returned when operator or type-tag text is not
// part of the language.
var ErrUnrecognizedOperator = errors.New("unrecognized operator token")

// EType is a declared variable type. It is recorded but not enforced.
type EType int

// Declaration types.
const (
	ETypeInt EType = iota
	ETypeString
	ETypeBool
)

var etypes = map[string]EType{
	"int":    ETypeInt,
	"string": ETypeString,
	"bool":   ETypeBool,
}

// ParseEType maps a type keyword to its EType.
func ParseEType(s string) (EType, error) {
	if t, ok := etypes[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: type %q", ErrUnrecognizedOperator, s)
}

func (t EType) String() string {
	switch t {
	case ETypeInt:
		return "int"
	case ETypeString:
		return "string"
	case ETypeBool:
		return "bool"
	}
	return fmt.Sprintf("EType(%d)", int(t))
}

// AssignmentOperator is `=` or `+=`.
type AssignmentOperator int

// Assignment operators.
const (
	Equal AssignmentOperator = iota
	AddEqual
)

// ParseAssignmentOperator maps operator text to its AssignmentOperator.
func ParseAssignmentOperator(s string) (AssignmentOperator, error) {
	switch s {
	case "=":
		return Equal, nil
	case "+=":
		return AddEqual, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedOperator, s)
}

func (o AssignmentOperator) String() string {
	if o == AddEqual {
		return "+="
	}
	return "="
}

// ComparisonOperator is one of the six comparison operators. Only ==, >
// and < are evaluated.
type ComparisonOperator int

// Comparison operators.
const (
	GreaterThan ComparisonOperator = iota
	LessThan
	GreaterThanEqualTo
	LessThanEqualTo
	EqualEqual
	NotEqual
)

var comparisonOperators = map[string]ComparisonOperator{
	">":  GreaterThan,
	"<":  LessThan,
	">=": GreaterThanEqualTo,
	"<=": LessThanEqualTo,
	"==": EqualEqual,
	"!=": NotEqual,
}

// ParseComparisonOperator maps operator text to its ComparisonOperator.
func ParseComparisonOperator(s string) (ComparisonOperator, error) {
	if op, ok := comparisonOperators[s]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedOperator, s)
}

func (o ComparisonOperator) String() string {
	switch o {
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case GreaterThanEqualTo:
		return ">="
	case LessThanEqualTo:
		return "<="
	case EqualEqual:
		return "=="
	case NotEqual:
		return "!="
	}
	return fmt.Sprintf("ComparisonOperator(%d)", int(o))
}

// LogicalOperator joins logical terms.
type LogicalOperator int

// Logical operators.
const (
	Or LogicalOperator = iota
	And
)

// ParseLogicalOperator maps operator text to its LogicalOperator.
func ParseLogicalOperator(s string) (LogicalOperator, error) {
	switch s {
	case "||":
		return Or, nil
	case "&&":
		return And, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedOperator, s)
}

func (o LogicalOperator) String() string {
	if o == And {
		return "&&"
	}
	return "||"
}
