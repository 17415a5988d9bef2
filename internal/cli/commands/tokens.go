package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/enforce/pkg/parser"
	"github.com/leapstack-labs/enforce/pkg/token"
)

// commentType labels `//` comments in the token listing.
const commentType = "COMMENT"

// TokenView is one token in the tokens listing.
type TokenView struct {
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal" yaml:"literal"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "List the tokens of a program",
		Long:  `Run only the lexer over a file and list every token and comment with its position.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0])
		},
	}
}

func runTokens(cmd *cobra.Command, path string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	src, err := readSource(path)
	if err != nil {
		return err
	}

	lexer := parser.NewLexer(src)
	seen := 0
	var views []TokenView
	for {
		tok := lexer.NextToken()
		// Comments skipped before this token come first
		for ; seen < len(lexer.Comments); seen++ {
			c := lexer.Comments[seen]
			views = append(views, TokenView{
				Line:    c.Span.Start.Line,
				Column:  c.Span.Start.Column,
				Type:    commentType,
				Literal: c.Body(),
			})
		}
		views = append(views, TokenView{
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
			Type:    tok.Type.String(),
			Literal: tok.Literal,
		})
		if tok.Type == token.EOF {
			break
		}
	}

	if r.Structured() {
		if err := r.Encode(views); err != nil {
			return err
		}
	} else {
		rows := make([][]string, 0, len(views))
		for _, v := range views {
			rows = append(rows, []string{token.Position{Line: v.Line, Column: v.Column}.String(), v.Type, v.Literal})
		}
		r.Table([]string{"Pos", "Type", "Literal"}, rows)
	}

	if len(lexer.Errors) > 0 {
		return lexer.Errors[0]
	}
	return nil
}
