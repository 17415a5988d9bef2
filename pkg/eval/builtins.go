package eval

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/enforce/pkg/ast"
	"github.com/leapstack-labs/enforce/pkg/scope"
)

type builtinFunc func(e *Evaluator, args []ast.Node, store *scope.Store) error

var builtins = map[string]builtinFunc{
	"Print": builtinPrint,
}

// Builtins returns the names of the built-in functions, sorted.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// builtinPrint writes its single argument followed by a newline.
func builtinPrint(e *Evaluator, args []ast.Node, store *scope.Store) error {
	if len(args) != 1 {
		return newError(ErrArity, "Print expects 1 argument, got %d", len(args))
	}
	value, err := e.resolve(args[0], store)
	if err != nil {
		return err
	}
	text, err := Stringify(value)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(e.out, text); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}
