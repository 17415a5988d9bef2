package ast

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Description is a serialisable view of an AST, used to print trees as
// text, JSON or YAML.
type Description struct {
	Kind     string            `json:"kind" yaml:"kind"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []*Description    `json:"children,omitempty" yaml:"children,omitempty"`
}

// Describe builds the Description of n and its descendants.
func Describe(n Node) *Description {
	d := &Description{Kind: KindOf(n)}
	switch v := n.(type) {
	case *Enforce:
		d.Children = describeAll(v.Statements)
	case *Bool:
		d.attr("value", strconv.FormatBool(v.Value))
	case *Int:
		d.attr("value", strconv.FormatInt(int64(v.Value), 10))
	case *Str:
		d.attr("value", v.Value)
	case *Ident:
		d.attr("name", v.Name)
	case *Call:
		d.attr("ident", v.Ident)
		d.Children = describeAll(v.Args)
	case *Assignment:
		if v.EType != nil {
			d.attr("etype", v.EType.String())
		}
		d.attr("ident", v.Ident)
		d.attr("operator", v.Operator.String())
		d.Children = []*Description{Describe(v.Value)}
	case *If:
		d.Children = append([]*Description{Describe(v.Condition)}, describeAll(v.Body)...)
	case *ComparisonExpression:
		d.Children = []*Description{Describe(v.LHS)}
		if v.RHS != nil {
			d.attr("operator", v.RHS.Operator.String())
			d.Children = append(d.Children, Describe(v.RHS.Value))
		}
	case *LogicalExpression:
		for _, term := range v.Terms {
			t := &Description{Kind: "Term", Children: []*Description{Describe(term.Value)}}
			t.attr("operator", term.Operator.String())
			d.Children = append(d.Children, t)
		}
	case *LogicVal:
		d.attr("inverted", strconv.FormatBool(v.Inverted))
		d.Children = []*Description{Describe(v.Expr)}
	case *Addition:
		d.Children = []*Description{Describe(v.LHS), Describe(v.RHS)}
	case *Empty:
	}
	return d
}

func describeAll(nodes []Node) []*Description {
	out := make([]*Description, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Describe(n))
	}
	return out
}

func (d *Description) attr(key, value string) {
	if d.Attrs == nil {
		d.Attrs = make(map[string]string)
	}
	d.Attrs[key] = value
}

// WriteText writes an indented, one-node-per-line rendering.
func (d *Description) WriteText(w io.Writer) error {
	return d.writeText(w, 0)
}

func (d *Description) writeText(w io.Writer, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(d.Kind)

	keys := make([]string, 0, len(d.Attrs))
	for k := range d.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, strconv.Quote(d.Attrs[k]))
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range d.Children {
		if err := c.writeText(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}
