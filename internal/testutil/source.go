package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteSource writes an Enforce program into dir and returns its path.
// An empty dir means a fresh t.TempDir().
func WriteSource(t testing.TB, dir, name, source string) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))
	return path
}
