// Package parser turns Enforce source text into a generic, rule-tagged
// parse tree.
//
// # Usage
//
//	root, err := parser.Parse(`int x = 5; x += 3; Print(x)`)
//	if err != nil {
//	    // handle error
//	}
//
// The tree deliberately carries no typed structure: every node is a *Pair
// holding a Rule tag, the matched source text and its children. Package
// lower converts it into the typed AST.
//
// # Grammar Overview
//
//	enforce         → stmt* EOI
//	stmt            → (assignment | call) [";"] | if
//	assignment      → [etype] ident assign_op sum
//	call            → ident "(" [sum ("," sum)*] ")"
//	if              → "if" "(" logic_expr ")" "{" stmt* "}"
//	logic_expr      → logic_val (("&&" | "||") logic_val)*
//	logic_val       → ["!"] comparison_expr
//	comparison_expr → operand [("==" | "!=" | ">=" | "<=" | ">" | "<") operand]
//	sum             → operand ("+" operand)*
//	operand         → int | string | bool | ident
package parser

import (
	"fmt"

	"github.com/leapstack-labs/enforce/pkg/token"
)

// Parser is a recursive-descent parser producing a Pair tree.
type Parser struct {
	lexer  *Lexer
	source string
	token  token.Token // current token
	peek   token.Token // lookahead token
	errors []error
}

// NewParser creates a new parser for the given source.
func NewParser(source string) *Parser {
	p := &Parser{
		lexer:  NewLexer(source),
		source: source,
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a whole program and returns its root pair (rule enforce).
func Parse(source string) (*Pair, error) {
	p := NewParser(source)
	root := p.ParseProgram()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return root, nil
}

// Err returns the first lexical or syntax error, if any.
func (p *Parser) Err() error {
	if len(p.lexer.Errors) > 0 {
		return p.lexer.Errors[0]
	}
	if len(p.errors) > 0 {
		return p.errors[0]
	}
	return nil
}

// ParseProgram parses statements until end of input. On error it returns
// nil and records the error (see Err).
func (p *Parser) ParseProgram() *Pair {
	var children []*Pair
	start := p.token.Pos
	for !p.check(token.EOF) {
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		children = append(children, stmt)
	}
	eoi := &Pair{Rule: RuleEOI, Span: token.Span{Start: p.token.Pos, End: p.token.Pos}}
	children = append(children, eoi)

	root := &Pair{Rule: RuleEnforce, Children: children}
	p.finish(root, start, p.token.Pos)
	return root
}

// ---------- Token Helpers ----------

func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.unexpected(fmt.Sprintf("%q", t.String()))
	return false
}

func (p *Parser) unexpected(expected string) {
	if p.check(token.ILLEGAL) {
		p.addError(fmt.Sprintf(ErrIllegalCharacter, p.token.Literal))
		return
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token, expected))
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// leaf consumes the current token as a childless pair.
func (p *Parser) leaf(rule Rule) *Pair {
	tok := p.token
	p.nextToken()
	return &Pair{
		Rule: rule,
		Text: p.source[tok.Pos.Offset:tok.End.Offset],
		Span: token.Span{Start: tok.Pos, End: tok.End},
	}
}

// finish sets the span and matched text of an interior pair.
func (p *Parser) finish(pair *Pair, start, end token.Position) *Pair {
	pair.Span = token.Span{Start: start, End: end}
	pair.Text = p.source[start.Offset:end.Offset]
	return pair
}

// ---------- Statements ----------

func (p *Parser) parseStatement() *Pair {
	var stmt *Pair
	switch {
	case p.check(token.IF):
		return p.parseIf()
	case token.IsTypeName(p.token.Type):
		stmt = p.parseAssignment()
	case p.check(token.IDENT) && p.checkPeek(token.LPAREN):
		stmt = p.parseCall()
	case p.check(token.IDENT):
		stmt = p.parseAssignment()
	default:
		p.unexpected("statement")
		return nil
	}
	if stmt == nil {
		return nil
	}
	p.match(token.SEMICOLON)
	return stmt
}

// parseAssignment parses `[etype] ident (= | +=) sum`.
func (p *Parser) parseAssignment() *Pair {
	start := p.token.Pos
	pair := &Pair{Rule: RuleAssignment}

	if token.IsTypeName(p.token.Type) {
		pair.Children = append(pair.Children, p.leaf(RuleEType))
	}
	if !p.check(token.IDENT) {
		p.unexpected("identifier")
		return nil
	}
	pair.Children = append(pair.Children, p.leaf(RuleIdent))

	if !p.check(token.ASSIGN) && !p.check(token.ADD_ASSIGN) {
		p.unexpected(`"=" or "+="`)
		return nil
	}
	pair.Children = append(pair.Children, p.leaf(RuleAssignOp))

	value := p.parseSum()
	if value == nil {
		return nil
	}
	pair.Children = append(pair.Children, value)
	return p.finish(pair, start, value.Span.End)
}

// parseCall parses `ident "(" args ")"`.
func (p *Parser) parseCall() *Pair {
	start := p.token.Pos
	ident := p.leaf(RuleIdent)

	argsStart := p.token.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}
	args := &Pair{Rule: RuleArgs}
	if !p.check(token.RPAREN) {
		for {
			arg := p.parseSum()
			if arg == nil {
				return nil
			}
			args.Children = append(args.Children, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	end := p.token.End
	if !p.expect(token.RPAREN) {
		return nil
	}
	p.finish(args, argsStart, end)

	return p.finish(&Pair{Rule: RuleCall, Children: []*Pair{ident, args}}, start, end)
}

// parseIf parses `"if" "(" logic_expr ")" "{" stmt* "}"`.
func (p *Parser) parseIf() *Pair {
	start := p.token.Pos
	p.nextToken() // skip 'if'

	if !p.expect(token.LPAREN) {
		return nil
	}
	cond := p.parseLogicExpr()
	if cond == nil {
		return nil
	}
	if !p.expect(token.RPAREN) || !p.expect(token.LBRACE) {
		return nil
	}

	pair := &Pair{Rule: RuleIf, Children: []*Pair{cond}}
	for !p.check(token.RBRACE) {
		if p.check(token.EOF) {
			p.unexpected(`"}"`)
			return nil
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		pair.Children = append(pair.Children, stmt)
	}
	end := p.token.End
	p.nextToken() // skip '}'
	return p.finish(pair, start, end)
}

// ---------- Expressions ----------

func (p *Parser) parseLogicExpr() *Pair {
	start := p.token.Pos
	first := p.parseLogicVal()
	if first == nil {
		return nil
	}
	pair := &Pair{Rule: RuleLogicExpr, Children: []*Pair{first}}
	end := first.Span.End
	for p.check(token.AND) || p.check(token.OR) {
		op := p.leaf(RuleLogicOp)
		val := p.parseLogicVal()
		if val == nil {
			return nil
		}
		pair.Children = append(pair.Children, op, val)
		end = val.Span.End
	}
	return p.finish(pair, start, end)
}

func (p *Parser) parseLogicVal() *Pair {
	start := p.token.Pos
	pair := &Pair{Rule: RuleLogicVal}
	if p.check(token.BANG) {
		pair.Children = append(pair.Children, p.leaf(RuleNot))
	}
	cmp := p.parseComparison()
	if cmp == nil {
		return nil
	}
	pair.Children = append(pair.Children, cmp)
	return p.finish(pair, start, cmp.Span.End)
}

func (p *Parser) parseComparison() *Pair {
	start := p.token.Pos
	lhs := p.parseOperand()
	if lhs == nil {
		return nil
	}
	pair := &Pair{Rule: RuleComparisonExpr, Children: []*Pair{lhs}}
	end := lhs.Span.End
	if token.IsComparison(p.token.Type) {
		op := p.leaf(RuleComparisonOp)
		rhs := p.parseOperand()
		if rhs == nil {
			return nil
		}
		pair.Children = append(pair.Children, op, rhs)
		end = rhs.Span.End
	}
	return p.finish(pair, start, end)
}

// parseSum parses `operand ("+" operand)*`. A single operand is returned
// as-is rather than wrapped in a sum pair.
func (p *Parser) parseSum() *Pair {
	start := p.token.Pos
	first := p.parseOperand()
	if first == nil {
		return nil
	}
	if !p.check(token.PLUS) {
		return first
	}
	pair := &Pair{Rule: RuleSum, Children: []*Pair{first}}
	end := first.Span.End
	for p.match(token.PLUS) {
		next := p.parseOperand()
		if next == nil {
			return nil
		}
		pair.Children = append(pair.Children, next)
		end = next.Span.End
	}
	return p.finish(pair, start, end)
}

func (p *Parser) parseOperand() *Pair {
	switch p.token.Type {
	case token.INT:
		return p.leaf(RuleInt)
	case token.TRUE, token.FALSE:
		return p.leaf(RuleBool)
	case token.IDENT:
		return p.leaf(RuleIdent)
	case token.STRING:
		tok := p.token
		str := p.leaf(RuleString)
		// inner excludes the surrounding quotes
		innerStart := tok.Pos
		innerStart.Column++
		innerStart.Offset++
		innerEnd := innerStart
		innerEnd.Column += len(tok.Literal)
		innerEnd.Offset += len(tok.Literal)
		str.Children = []*Pair{{
			Rule: RuleInner,
			Text: tok.Literal,
			Span: token.Span{Start: innerStart, End: innerEnd},
		}}
		return str
	default:
		p.unexpected("value")
		return nil
	}
}
