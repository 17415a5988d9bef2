package commands

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/enforce/internal/testutil"
)

func TestWatchFileRunsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSource(t, dir, "main.enf", `Print(1)`)
	other := testutil.WriteSource(t, dir, "other.enf", `Print(2)`)

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 20*time.Millisecond, testutil.NewTestLogger(t), func() {
			calls.Add(1)
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte(`Print(3)`), 0o600))
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, calls.Load(), "changes to other files are ignored")

	require.NoError(t, os.WriteFile(path, []byte(`Print(4)`), 0o600))
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watchFile did not return after cancel")
	}
}

func TestWatchFileMissingDirectory(t *testing.T) {
	err := watchFile(context.Background(), t.TempDir()+"/missing/main.enf", time.Millisecond, testutil.NewTestLogger(t), func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
