package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CheckFile is one file in the check report.
type CheckFile struct {
	Path       string `json:"path" yaml:"path"`
	OK         bool   `json:"ok" yaml:"ok"`
	Statements int    `json:"statements" yaml:"statements"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// CheckReport is the structured result of `check`.
type CheckReport struct {
	Files  []CheckFile `json:"files" yaml:"files"`
	Failed int         `json:"failed" yaml:"failed"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse programs without running them",
		Long: `Parse and lower each file, reporting syntax and construction errors.

Files are checked concurrently; results are listed in argument order. The
command fails when any file has an error.`,
		Example: `  enforce check *.enf`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args)
		},
	}
}

func runCheck(cmd *cobra.Command, paths []string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	results, err := cc.Engine.Check(cmd.Context(), paths)
	if err != nil {
		return err
	}

	report := CheckReport{Files: make([]CheckFile, 0, len(results))}
	for _, res := range results {
		f := CheckFile{Path: res.Path, OK: res.OK(), Statements: res.Statements}
		if !res.OK() {
			f.Error = res.Err.Error()
			report.Failed++
		}
		report.Files = append(report.Files, f)
	}

	if r.Structured() {
		if err := r.Encode(report); err != nil {
			return err
		}
	} else {
		for _, f := range report.Files {
			if f.OK {
				r.Success(fmt.Sprintf("%s (%d statements)", f.Path, f.Statements))
			} else {
				r.Error(f.Error)
			}
		}
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", report.Failed, len(report.Files))
	}
	return nil
}
