package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/enforce/internal/cli/output"
	clitestutil "github.com/leapstack-labs/enforce/internal/cli/testutil"
	"github.com/leapstack-labs/enforce/internal/testutil"
)

func TestCheckAllValid(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteSource(t, dir, "a.enf", `int x = 1`)
	b := testutil.WriteSource(t, dir, "b.enf", `Print("b"); Print("c")`)

	res := clitestutil.ExecuteCommand(t, NewCheckCommand(), a, b)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, a+" (2 statements)")
	assert.Contains(t, res.Stdout, b+" (3 statements)")
	assert.Empty(t, res.Stderr)
}

func TestCheckDoesNotRun(t *testing.T) {
	path := testutil.WriteSource(t, "", "main.enf", `Print("should not appear"); undeclared = 1`)

	res := clitestutil.ExecuteCommand(t, NewCheckCommand(), path)
	require.NoError(t, res.Err)
	assert.NotContains(t, res.Stdout, "should not appear")
}

func TestCheckReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteSource(t, dir, "good.enf", `int x = 1`)
	bad := testutil.WriteSource(t, dir, "bad.enf", `int x =`)

	res := clitestutil.ExecuteCommand(t, NewCheckCommand(), good, bad, dir+"/missing.enf")
	require.Error(t, res.Err)
	assert.Equal(t, "2 of 3 files failed", res.Err.Error())
	assert.Contains(t, res.Stdout, good)
	assert.Contains(t, res.Stderr, "bad.enf")
	assert.Contains(t, res.Stderr, "failed to read file")
}

func TestCheckJSONKeepsArgumentOrder(t *testing.T) {
	clitestutil.UseOutputMode(t, output.ModeJSON)
	dir := t.TempDir()

	var paths []string
	for _, name := range []string{"c.enf", "a.enf", "b.enf"} {
		paths = append(paths, testutil.WriteSource(t, dir, name, `x = 1`))
	}
	paths = append(paths, testutil.WriteSource(t, dir, "z.enf", `x = "open`))

	res := clitestutil.ExecuteCommand(t, NewCheckCommand(), paths...)
	require.Error(t, res.Err)

	var report CheckReport
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &report))
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Files, 4)
	for i, f := range report.Files {
		assert.Equal(t, paths[i], f.Path)
	}
	assert.True(t, report.Files[0].OK)
	assert.False(t, report.Files[3].OK)
	assert.NotEmpty(t, report.Files[3].Error)
}

func TestCheckRequiresArguments(t *testing.T) {
	res := clitestutil.ExecuteCommand(t, NewCheckCommand())
	require.Error(t, res.Err)
}
