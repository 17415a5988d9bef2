package eval

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error matches exactly one of these with errors.Is.
var (
	ErrUndeclaredAssignment         = errors.New("assignment to undeclared variable")
	ErrUndeclaredCompoundAssignment = errors.New("compound assignment to undeclared variable")
	ErrArity                        = errors.New("wrong number of arguments")
	ErrUndefinedVariable            = errors.New("undefined variable")
	ErrUndefinedFunction            = errors.New("undefined function")
	ErrUnsupportedCall              = errors.New("calling a variable is not supported")
	ErrMalformedCondition           = errors.New("malformed condition")
	ErrMalformedLogicalTerm         = errors.New("malformed logical term")
	ErrUnsupportedOperator          = errors.New("unsupported operator")
	ErrTypeMismatch                 = errors.New("type mismatch")
	ErrNotPrintable                 = errors.New("value is not printable")
	ErrUnsupportedStatement         = errors.New("unsupported statement")
)

// Error is a fatal evaluation failure. Kind is one of the Err* sentinels,
// Detail names the identifier, operator or operands involved and Err, when
// set, is the underlying cause.
type Error struct {
	Kind   error
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
}

// Is reports whether target is the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
