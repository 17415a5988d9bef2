package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/enforce/internal/engine"
	"github.com/leapstack-labs/enforce/pkg/eval"
	"github.com/leapstack-labs/enforce/pkg/parser"
	"github.com/leapstack-labs/enforce/pkg/token"
)

const continuationPrompt = "   ...> "

// lineReader is the part of *readline.Instance the REPL loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive Enforce session.

Variables persist between inputs. A line with an unclosed "{" continues on
the next line. Type .help for the list of dot-commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)

	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".vars"),
		readline.PcItem(".reset"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	for _, name := range eval.Builtins() {
		items = append(items, readline.PcItem(name+"("))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cc.Cfg.REPL.Prompt,
		HistoryFile:     cc.Cfg.REPL.HistoryFile,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Enforce REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")

	return replLoop(cmd.Context(), rl, cc)
}

// replLoop reads inputs until EOF or .quit, evaluating each against one
// session. Evaluation errors are reported and the loop continues.
func replLoop(ctx context.Context, rl lineReader, cc *CommandContext) error {
	r := cc.Renderer
	session := cc.Engine.Session()
	prompt := cc.Cfg.REPL.Prompt

	var buf strings.Builder
	depth := 0
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			depth = 0
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			if buf.Len() > 0 {
				r.Warning("incomplete input discarded (unclosed \"{\")")
			}
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if buf.Len() == 0 {
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ".") {
				if quit := handleDotCommand(r.Writer(), cc, session, trimmed); quit {
					return nil
				}
				continue
			}
		}

		// Accumulate until braces balance
		buf.WriteString(line)
		buf.WriteByte('\n')
		depth += braceDelta(line)
		if depth > 0 {
			rl.SetPrompt(continuationPrompt)
			continue
		}
		rl.SetPrompt(prompt)

		input := buf.String()
		buf.Reset()
		depth = 0

		if err := session.Eval(ctx, "<repl>", input); err != nil {
			r.Error(err.Error())
		}
	}
}

// braceDelta returns the number of "{" minus "}" tokens on line. Braces
// inside string literals and comments do not count.
func braceDelta(line string) int {
	lexer := parser.NewLexer(line)
	delta := 0
	for tok := lexer.NextToken(); tok.Type != token.EOF; tok = lexer.NextToken() {
		switch tok.Type {
		case token.LBRACE:
			delta++
		case token.RBRACE:
			delta--
		}
	}
	return delta
}

// handleDotCommand runs a dot-command and reports whether the REPL should exit.
func handleDotCommand(w io.Writer, cc *CommandContext, session *engine.Session, line string) bool {
	command := strings.ToLower(strings.Fields(line)[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(w)

	case ".vars":
		renderBindings(cc.Renderer, bindingViews(session.Store()))

	case ".reset":
		session.Reset()
		cc.Renderer.Muted("all variables cleared")

	default:
		cc.Renderer.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", command))
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `Commands:
  .help           Show this help message
  .vars           List the variables in scope
  .reset          Clear all variables
  .quit / .exit   Exit the REPL

Built-ins: ` + strings.Join(eval.Builtins(), ", ") + `
`
	_, _ = fmt.Fprint(w, help)
}
