package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/enforce/pkg/ast"
	"github.com/leapstack-labs/enforce/pkg/parser"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Tree bool
}

// TreeView is a parse-tree pair in json and yaml output.
type TreeView struct {
	Rule     string      `json:"rule" yaml:"rule"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty"`
	Line     int         `json:"line" yaml:"line"`
	Column   int         `json:"column" yaml:"column"`
	Children []*TreeView `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the syntax tree of a program",
		Long: `Parse a program and print its abstract syntax tree without running it.

With --tree the raw rule-tagged parse tree is printed instead, before any
lowering takes place.`,
		Example: `  # Show the AST
  enforce parse main.enf

  # Show the parse tree as JSON
  enforce parse main.enf --tree -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Tree, "tree", false, "Print the parse tree instead of the AST")

	return cmd
}

func runParse(cmd *cobra.Command, path string, opts *ParseOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	src, err := readSource(path)
	if err != nil {
		return err
	}

	if opts.Tree {
		root, err := cc.Engine.ParseTree(path, src)
		if err != nil {
			return err
		}
		if r.Structured() {
			return r.Encode(treeView(root))
		}
		return root.Dump(r.Writer())
	}

	prog, err := cc.Engine.Parse(path, src)
	if err != nil {
		return err
	}
	d := ast.Describe(prog)
	if r.Structured() {
		return r.Encode(d)
	}
	return d.WriteText(r.Writer())
}

func treeView(p *parser.Pair) *TreeView {
	v := &TreeView{
		Rule:   p.Rule.String(),
		Line:   p.Span.Start.Line,
		Column: p.Span.Start.Column,
	}
	if p.Len() == 0 {
		v.Text = p.Text
	}
	for _, c := range p.Children {
		v.Children = append(v.Children, treeView(c))
	}
	return v
}
