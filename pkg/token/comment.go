package token

import "strings"

// Comment is a `//` line comment collected by the lexer.
type Comment struct {
	Text string // includes the leading //
	Span Span
}

// Body returns the comment text without the leading slashes and padding.
func (c *Comment) Body() string {
	return strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
}
