package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/enforce/pkg/token"
)

// Rule tags a node of the generic parse tree with the grammar rule that
// matched it.
type Rule int

// Grammar rules. The set is closed; consumers must reject tags they do not
// recognise.
const (
	RuleEnforce Rule = iota
	RuleAssignment
	RuleEType
	RuleAssignOp
	RuleCall
	RuleArgs
	RuleInt
	RuleString
	RuleInner
	RuleIdent
	RuleBool
	RuleIf
	RuleLogicExpr
	RuleLogicOp
	RuleLogicVal
	RuleNot
	RuleComparisonExpr
	RuleComparisonOp
	RuleSum
	RuleEOI
)

var ruleNames = map[Rule]string{
	RuleEnforce:        "enforce",
	RuleAssignment:     "assignment",
	RuleEType:          "etype",
	RuleAssignOp:       "assign_op",
	RuleCall:           "call",
	RuleArgs:           "args",
	RuleInt:            "int",
	RuleString:         "string",
	RuleInner:          "inner",
	RuleIdent:          "ident",
	RuleBool:           "bool",
	RuleIf:             "if",
	RuleLogicExpr:      "logic_expr",
	RuleLogicOp:        "logic_op",
	RuleLogicVal:       "logic_val",
	RuleNot:            "not",
	RuleComparisonExpr: "comparison_expr",
	RuleComparisonOp:   "comparison_op",
	RuleSum:            "sum",
	RuleEOI:            "EOI",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// Pair is one node of the generic parse tree: the rule that matched, the
// matched source text and the ordered child pairs.
type Pair struct {
	Rule     Rule
	Text     string
	Span     token.Span
	Children []*Pair
}

// Len returns the number of children.
func (p *Pair) Len() int {
	return len(p.Children)
}

// Child returns the i-th child, or nil when out of range.
func (p *Pair) Child(i int) *Pair {
	if i < 0 || i >= len(p.Children) {
		return nil
	}
	return p.Children[i]
}

// Last returns the final child, or nil for a leaf.
func (p *Pair) Last() *Pair {
	return p.Child(len(p.Children) - 1)
}

// Dump writes an indented rendering of the tree, one pair per line.
func (p *Pair) Dump(w io.Writer) error {
	return p.dump(w, 0)
}

func (p *Pair) dump(w io.Writer, depth int) error {
	indent := strings.Repeat("  ", depth)
	var err error
	if len(p.Children) == 0 {
		_, err = fmt.Fprintf(w, "%s%s %q @%s\n", indent, p.Rule, p.Text, p.Span.Start)
	} else {
		_, err = fmt.Fprintf(w, "%s%s @%s\n", indent, p.Rule, p.Span.Start)
	}
	if err != nil {
		return err
	}
	for _, c := range p.Children {
		if err := c.dump(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}
