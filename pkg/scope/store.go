// Package scope holds variable bindings as a stack of lexical scopes.
package scope

import (
	"errors"
	"fmt"
	"sort"

	"github.com/leapstack-labs/enforce/pkg/ast"
)

// ErrUndeclaredAssignment is returned by Bind when an update names a
// variable no scope holds.
var ErrUndeclaredAssignment = errors.New("assignment to undeclared variable")

// Store is an ordered stack of scopes, innermost last. The root scope is
// created by New and lives as long as the Store.
type Store struct {
	scopes []map[string]ast.Node
}

// Binding is one visible name in a Bindings snapshot.
type Binding struct {
	Name  string
	Value ast.Node
	Depth int // index of the scope holding the binding, 0 is the root
}

// New creates a Store with a single root scope.
func New() *Store {
	return &Store{scopes: []map[string]ast.Node{{}}}
}

// Depth returns the number of scopes, including the root.
func (s *Store) Depth() int {
	return len(s.scopes)
}

// PushScope opens an empty innermost scope.
func (s *Store) PushScope() {
	s.scopes = append(s.scopes, map[string]ast.Node{})
}

// PopScope discards the innermost scope. Popping the root is a programming
// error and panics.
func (s *Store) PopScope() {
	if len(s.scopes) == 1 {
		panic("scope: pop of root scope")
	}
	s.scopes[len(s.scopes)-1] = nil
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// Lookup returns the innermost binding of name.
func (s *Store) Lookup(name string) (ast.Node, bool) {
	if i := s.find(name); i >= 0 {
		return s.scopes[i][name], true
	}
	return nil, false
}

// Bind stores value under name. A declaration writes the innermost scope,
// shadowing outer bindings. An update rewrites the nearest scope that
// already holds name.
func (s *Store) Bind(name string, value ast.Node, declare bool) error {
	if declare {
		s.scopes[len(s.scopes)-1][name] = value
		return nil
	}
	i := s.find(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUndeclaredAssignment, name)
	}
	s.scopes[i][name] = value
	return nil
}

// Bindings returns every visible binding sorted by name. Shadowed outer
// bindings are omitted.
func (s *Store) Bindings() []Binding {
	seen := make(map[string]bool)
	var out []Binding
	for i := len(s.scopes) - 1; i >= 0; i-- {
		for name, v := range s.scopes[i] {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, Binding{Name: name, Value: v, Depth: i})
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

func (s *Store) find(name string) int {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if _, ok := s.scopes[i][name]; ok {
			return i
		}
	}
	return -1
}
