// Package token defines the lexical tokens of the Enforce language.
//
// Keywords are case-sensitive: `if`, `int`, `string`, `bool`, `true` and
// `false` are reserved, while built-in names such as `Print` lex as IDENT.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier
	INT    // 123, -7
	STRING // "hello"

	// Operators
	ASSIGN     // =
	ADD_ASSIGN // +=
	PLUS       // +
	EQ         // ==
	NE         // !=
	LT         // <
	GT         // >
	LE         // <=
	GE         // >=
	AND        // &&
	OR         // ||
	BANG       // !
	COMMA      // ,
	SEMICOLON  // ;
	LPAREN     // (
	RPAREN     // )
	LBRACE     // {
	RBRACE     // }

	// Keywords
	IF
	TYPE_INT
	TYPE_STRING
	TYPE_BOOL
	TRUE
	FALSE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	INT:    "INT",
	STRING: "STRING",

	ASSIGN:     "=",
	ADD_ASSIGN: "+=",
	PLUS:       "+",
	EQ:         "==",
	NE:         "!=",
	LT:         "<",
	GT:         ">",
	LE:         "<=",
	GE:         ">=",
	AND:        "&&",
	OR:         "||",
	BANG:       "!",
	COMMA:      ",",
	SEMICOLON:  ";",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",

	IF:          "if",
	TYPE_INT:    "int",
	TYPE_STRING: "string",
	TYPE_BOOL:   "bool",
	TRUE:        "true",
	FALSE:       "false",
}

var keywords = map[string]TokenType{
	"if":     IF,
	"int":    TYPE_INT,
	"string": TYPE_STRING,
	"bool":   TYPE_BOOL,
	"true":   TRUE,
	"false":  FALSE,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= IF && t <= FALSE
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t >= ASSIGN && t <= RBRACE
}

// IsTypeName returns true for the declaration type keywords.
func IsTypeName(t TokenType) bool {
	return t == TYPE_INT || t == TYPE_STRING || t == TYPE_BOOL
}

// IsComparison returns true for the comparison operators.
func IsComparison(t TokenType) bool {
	switch t {
	case EQ, NE, LT, GT, LE, GE:
		return true
	}
	return false
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	End     Position // position immediately after the token
}

// String renders the token for diagnostics.
func (t Token) String() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Type, t.Literal)
}
