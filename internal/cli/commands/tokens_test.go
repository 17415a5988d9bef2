package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/enforce/internal/cli/output"
	clitestutil "github.com/leapstack-labs/enforce/internal/cli/testutil"
	"github.com/leapstack-labs/enforce/internal/testutil"
	"github.com/leapstack-labs/enforce/pkg/parser"
)

func TestTokensTable(t *testing.T) {
	path := testutil.WriteSource(t, "", "main.enf", `x += 1`)

	res := clitestutil.ExecuteCommand(t, NewTokensCommand(), path)
	require.NoError(t, res.Err)
	clitestutil.AssertNoANSI(t, res.Stdout)
	for _, want := range []string{"POS", "TYPE", "LITERAL", "IDENT", "+=", "INT", "EOF", "1:3"} {
		assert.Contains(t, res.Stdout, want)
	}
}

func TestTokensJSON(t *testing.T) {
	clitestutil.UseOutputMode(t, output.ModeJSON)
	path := testutil.WriteSource(t, "", "main.enf", "if (a)\n{}")

	res := clitestutil.ExecuteCommand(t, NewTokensCommand(), path)
	require.NoError(t, res.Err)

	var views []TokenView
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &views))
	require.Len(t, views, 7)
	assert.Equal(t, TokenView{Line: 1, Column: 1, Type: "if", Literal: "if"}, views[0])
	assert.Equal(t, TokenView{Line: 1, Column: 5, Type: "IDENT", Literal: "a"}, views[2])
	assert.Equal(t, TokenView{Line: 2, Column: 1, Type: "{", Literal: "{"}, views[4])
	assert.Equal(t, "EOF", views[6].Type)
}

func TestTokensReportsLexError(t *testing.T) {
	path := testutil.WriteSource(t, "", "main.enf", `s = "open`)

	res := clitestutil.ExecuteCommand(t, NewTokensCommand(), path)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), parser.ErrUnterminatedString)
	assert.Contains(t, res.Stdout, "EOF")
}

func TestTokensListsComments(t *testing.T) {
	clitestutil.UseOutputMode(t, output.ModeJSON)
	path := testutil.WriteSource(t, "", "main.enf", "// counter\nx += 1 // bump\n")

	res := clitestutil.ExecuteCommand(t, NewTokensCommand(), path)
	require.NoError(t, res.Err)

	var views []TokenView
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &views))
	require.Len(t, views, 6)
	assert.Equal(t, TokenView{Line: 1, Column: 1, Type: "COMMENT", Literal: "counter"}, views[0])
	assert.Equal(t, TokenView{Line: 2, Column: 1, Type: "IDENT", Literal: "x"}, views[1])
	assert.Equal(t, TokenView{Line: 2, Column: 8, Type: "COMMENT", Literal: "bump"}, views[4])
	assert.Equal(t, "EOF", views[5].Type)
}
