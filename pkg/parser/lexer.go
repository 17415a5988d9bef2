package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/enforce/pkg/token"
)

// Lexer tokenizes Enforce source.
type Lexer struct {
	input   string
	pos     int  // byte offset of the current char
	readPos int  // byte offset after the current char
	ch      rune // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based, in runes)

	// Comments collected during lexing
	Comments []*token.Comment

	// Errors holds lexical errors in the order they were found.
	Errors []error
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next UTF-8 character. Invalid bytes decode to
// utf8.RuneError one byte at a time.
func (l *Lexer) readChar() {
	l.pos = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		r, width := utf8.DecodeRuneInString(l.input[l.readPos:])
		l.ch = r
		l.readPos += width
	}

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	tok := token.Token{Pos: l.currentPos()}

	switch l.ch {
	case 0:
		tok.Type = token.EOF
		tok.End = tok.Pos
		return tok
	case '=':
		tok.Type, tok.Literal = l.either('=', token.EQ, "==", token.ASSIGN, "=")
	case '+':
		tok.Type, tok.Literal = l.either('=', token.ADD_ASSIGN, "+=", token.PLUS, "+")
	case '!':
		tok.Type, tok.Literal = l.either('=', token.NE, "!=", token.BANG, "!")
	case '<':
		tok.Type, tok.Literal = l.either('=', token.LE, "<=", token.LT, "<")
	case '>':
		tok.Type, tok.Literal = l.either('=', token.GE, ">=", token.GT, ">")
	case '&':
		tok.Type, tok.Literal = l.either('&', token.AND, "&&", token.ILLEGAL, "&")
	case '|':
		tok.Type, tok.Literal = l.either('|', token.OR, "||", token.ILLEGAL, "|")
	case ',':
		tok.Type, tok.Literal = token.COMMA, ","
	case ';':
		tok.Type, tok.Literal = token.SEMICOLON, ";"
	case '(':
		tok.Type, tok.Literal = token.LPAREN, "("
	case ')':
		tok.Type, tok.Literal = token.RPAREN, ")"
	case '{':
		tok.Type, tok.Literal = token.LBRACE, "{"
	case '}':
		tok.Type, tok.Literal = token.RBRACE, "}"
	case '"':
		tok.Type = token.STRING
		tok.Literal = l.readString(tok.Pos)
		tok.End = l.currentPos()
		return tok
	case '-':
		if isDigit(l.peekChar()) {
			tok.Type = token.INT
			tok.Literal = l.readNumber()
			tok.End = l.currentPos()
			return tok
		}
		tok.Type, tok.Literal = token.ILLEGAL, "-"
	default:
		switch {
		case isLetter(l.ch) || l.ch == '_':
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			tok.End = l.currentPos()
			return tok
		case isDigit(l.ch):
			tok.Type = token.INT
			tok.Literal = l.readNumber()
			tok.End = l.currentPos()
			return tok
		default:
			tok.Type, tok.Literal = token.ILLEGAL, string(l.ch)
		}
	}

	l.readChar()
	tok.End = l.currentPos()
	return tok
}

// either consumes a two-character operator when the next char is second,
// otherwise the single-character form. The current char is left on the
// last consumed character.
func (l *Lexer) either(second rune, long token.TokenType, longLit string, short token.TokenType, shortLit string) (token.TokenType, string) {
	if l.peekChar() == second {
		l.readChar()
		return long, longLit
	}
	return short, shortLit
}

// skipWhitespaceAndComments skips whitespace and collects // comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '/' && l.peekChar() == '/' {
			l.collectLineComment()
			continue
		}

		break
	}
}

func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// readString reads a double-quoted string and returns its raw inner text.
// A backslash escapes the following character; escapes are kept verbatim
// and resolved during lowering.
func (l *Lexer) readString(start token.Position) string {
	l.readChar() // skip opening quote
	begin := l.pos

	for l.ch != '"' {
		if l.ch == 0 {
			l.Errors = append(l.Errors, &LexError{Pos: start, Message: ErrUnterminatedString})
			return l.input[begin:l.pos]
		}
		if l.ch == '\\' && l.peekChar() != 0 {
			l.readChar()
		}
		l.readChar()
	}

	inner := l.input[begin:l.pos]
	l.readChar() // skip closing quote
	return inner
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads an optionally signed decimal integer.
func (l *Lexer) readNumber() string {
	start := l.pos
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input, ending with EOF.
func Tokenize(input string) []token.Token {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens
}
