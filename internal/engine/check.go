package engine

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CheckResult is the outcome of parsing and lowering one file.
type CheckResult struct {
	Path       string `json:"path" yaml:"path"`
	Statements int    `json:"statements" yaml:"statements"`
	Err        error  `json:"-" yaml:"-"`
}

// OK reports whether the file parsed and lowered cleanly.
func (r CheckResult) OK() bool {
	return r.Err == nil
}

// Check parses and lowers every file concurrently without running them.
// Results are in the order of paths. The returned error is only set when
// ctx is cancelled; per-file failures are reported in the results.
func (e *Engine) Check(ctx context.Context, paths []string) ([]CheckResult, error) {
	results := make([]CheckResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.checkFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("checked files", "count", len(paths))
	return results, nil
}

func (e *Engine) checkFile(path string) CheckResult {
	res := CheckResult{Path: path}
	src, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		res.Err = fmt.Errorf("failed to read file: %w", err)
		return res
	}
	prog, err := e.Parse(path, string(src))
	if err != nil {
		res.Err = err
		return res
	}
	res.Statements = len(prog.Statements)
	return res
}
