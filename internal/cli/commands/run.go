package commands

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/enforce/internal/engine"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Watch     bool
	DumpScope bool
}

// RunReport is the structured result of `run` in json and yaml modes.
type RunReport struct {
	File     string        `json:"file" yaml:"file"`
	RunID    string        `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Output   []string      `json:"output" yaml:"output"`
	Executed int           `json:"executed" yaml:"executed"`
	Scope    []BindingView `json:"scope,omitempty" yaml:"scope,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:     "run <file>",
		Aliases: []string{"execute"},
		Short:   "Run an Enforce program",
		Long: `Parse, lower and evaluate an Enforce program.

Print output goes to stdout. In json or yaml output mode the printed lines
are collected into a single report instead.`,
		Example: `  # Run a program
  enforce run main.enf

  # Show the variables left at the end of the run
  enforce run main.enf --dump-scope

  # Re-run whenever the file is saved
  enforce run main.enf --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run the program when the file changes")
	cmd.Flags().BoolVar(&opts.DumpScope, "dump-scope", false, "Print the final variable bindings")

	return cmd
}

func runRun(cmd *cobra.Command, path string, opts *RunOptions) error {
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()

	if !opts.Watch {
		return runOnce(ctx, cc, path, opts)
	}

	r := cc.Renderer
	rerun := func() {
		if err := runOnce(ctx, cc, path, opts); err != nil {
			r.Error(err.Error())
		}
		r.Muted(fmt.Sprintf("watching %s (ctrl-c to stop)", path))
	}
	rerun()
	return watchFile(ctx, path, cc.Cfg.Watch.Debounce, cc.Logger, rerun)
}

func runOnce(ctx context.Context, cc *CommandContext, path string, opts *RunOptions) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.Structured() {
		return runStructured(ctx, cc, path, src, opts)
	}

	res, err := cc.Engine.RunSource(ctx, path, src)
	if opts.DumpScope && res != nil {
		r.Header("Scope")
		renderBindings(r, bindingViews(res.Store))
	}
	return err
}

func runStructured(ctx context.Context, cc *CommandContext, path, src string, opts *RunOptions) error {
	var out bytes.Buffer
	eng := engine.New(engine.Config{Output: &out, Logger: cc.Logger})

	report := RunReport{File: path, Output: []string{}}
	res, runErr := eng.RunSource(ctx, path, src)
	if res != nil {
		report.RunID = res.ID
		report.Executed = res.Executed
		if opts.DumpScope {
			report.Scope = bindingViews(res.Store)
		}
	}
	if text := strings.TrimSuffix(out.String(), "\n"); text != "" {
		report.Output = strings.Split(text, "\n")
	}
	if runErr != nil {
		report.Error = runErr.Error()
	}

	if err := cc.Renderer.Encode(report); err != nil {
		return err
	}
	return runErr
}
