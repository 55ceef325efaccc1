// Package parser implements MiniDyn's recursive-descent, precedence-climbing
// parser.
//
// The lexer is drained into a token slice up front so that the several
// speculative constructs in the grammar — arrow-parameter-list lookahead,
// the `{`-starts-a-destructuring-assignment-or-a-block disambiguation, and
// post-hoc string-interpolation rescanning — can snapshot and restore a
// plain integer cursor instead of threading lexer state through
// save/restore plumbing.
package parser

import (
	"fmt"

	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/lexer"
	"github.com/minidyn/minidyn/internal/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN   // = += -= *= /= %= ??=
	TERNARY  // ?:
	NULLISH  // ??
	OR       // ||
	AND      // &&
	EQUALS   // == !=
	RELATION // < > <= >=
	SUM      // + -
	PRODUCT  // * / %
	PREFIX   // -x !x
	CALL     // f(...)
	MEMBER   // a.b a[b] a?.b
)

var precedences = map[token.Type]int{
	token.NULLISH_ASSIGN: ASSIGN,
	token.ASSIGN:         ASSIGN,
	token.PLUS_ASSIGN:    ASSIGN,
	token.MINUS_ASSIGN:   ASSIGN,
	token.STAR_ASSIGN:    ASSIGN,
	token.SLASH_ASSIGN:   ASSIGN,
	token.PERCENT_ASSIGN: ASSIGN,
	token.QUESTION:       TERNARY,
	token.NULLISH:        NULLISH,
	token.OR:             OR,
	token.AND:            AND,
	token.EQ:             EQUALS,
	token.NOT_EQ:         EQUALS,
	token.LT:             RELATION,
	token.GT:             RELATION,
	token.LE:             RELATION,
	token.GE:             RELATION,
	token.PLUS:           SUM,
	token.MINUS:          SUM,
	token.STAR:           PRODUCT,
	token.SLASH:          PRODUCT,
	token.PERCENT:        PRODUCT,
	token.LPAREN:         CALL,
	token.LBRACKET:       MEMBER,
	token.DOT:            MEMBER,
	token.QUESTION_DOT:   MEMBER,
}

// rightAssoc marks operators whose right operand is parsed one level
// below their own precedence instead of at it, so `a = b = c` associates
// right-to-left. parseTernary parses its branches itself and does not
// consult this table for QUESTION.
var rightAssoc = map[token.Type]bool{
	token.ASSIGN: true, token.PLUS_ASSIGN: true, token.MINUS_ASSIGN: true,
	token.STAR_ASSIGN: true, token.SLASH_ASSIGN: true, token.PERCENT_ASSIGN: true,
	token.NULLISH_ASSIGN: true, token.QUESTION: true,
}

type prefixFn func() ast.Expression
type infixFn func(ast.Expression) ast.Expression

// Parser turns a token stream into an ast.Program.
type Parser struct {
	tokens []token.Token
	pos    int
	source string
	file   string

	errors []ParseError

	prefixFns map[token.Type]prefixFn
	infixFns  map[token.Type]infixFn
}

// ParseError is a single parser diagnostic.
type ParseError struct {
	Message string
	Pos     token.Position
}

func (e ParseError) Error() string { return e.Message }

// New creates a Parser over source, scanning it fully up front.
func New(source, file string) *Parser {
	l := lexer.New(source, lexer.WithFile(file))
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == token.EOF {
			break
		}
	}

	p := &Parser{tokens: toks, source: source, file: file}
	// Lexical errors surface through the same ParseError channel so
	// callers only need to check one error list.
	for _, e := range l.Errors() {
		p.errors = append(p.errors, ParseError{Message: e.Message, Pos: e.Pos})
	}

	p.prefixFns = make(map[token.Type]prefixFn)
	p.infixFns = make(map[token.Type]infixFn)
	p.registerExpressionParsers()

	return p
}

// Errors returns accumulated lexer + parser diagnostics.
func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Message: fmt.Sprintf(format, args...), Pos: pos})
}

// --- token cursor -----------------------------------------------------

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	return p.peekN(1)
}

func (p *Parser) peekN(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur().Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek().Type == t }

// mark/reset implement the cursor snapshot/restore used by every
// speculative parse in the grammar.
func (p *Parser) mark() int { return p.pos }
func (p *Parser) reset(m int) { p.pos = m }

func (p *Parser) expect(t token.Type) (token.Token, bool) {
	if p.curIs(t) {
		return p.advance(), true
	}
	p.errorf(p.cur().Pos, "expected %s, got %s (%q)", t, p.cur().Type, p.cur().Lexeme)
	return token.Token{}, false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.cur().Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the whole token stream.
func ParseProgram(source, file string) (*ast.Program, []ParseError) {
	p := New(source, file)
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			p.synchronize()
		}
	}
	return prog, p.errors
}

// synchronize skips tokens after a parse error up to the next statement
// boundary, so one bad statement doesn't cascade into spurious errors for
// the rest of the file.
func (p *Parser) synchronize() {
	for !p.curIs(token.EOF) {
		if p.curIs(token.SEMICOLON) {
			p.advance()
			return
		}
		if p.curIs(token.RBRACE) {
			return
		}
		p.advance()
	}
}
