package parser

import (
	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/token"
)

// parsePattern parses a destructuring pattern unconditionally, recording
// errors on malformed input.
func (p *Parser) parsePattern() ast.Pattern {
	pat, ok := p.tryParsePattern()
	if !ok {
		p.errorf(p.cur().Pos, "expected a pattern, got %s (%q)", p.cur().Type, p.cur().Lexeme)
		p.advance()
		return &ast.IdentifierPattern{Token: p.cur(), Name: "<error>"}
	}
	return pat
}

// tryParsePattern parses Id | "[" ArrayPattern "]" | "{" ObjectPattern "}".
// It reports ok=false for tokens that cannot start a pattern, so the
// speculative arrow-parameter-list parser can rewind cleanly.
func (p *Parser) tryParsePattern() (ast.Pattern, bool) {
	switch p.cur().Type {
	case token.IDENT:
		t := p.advance()
		return &ast.IdentifierPattern{Token: t, Name: t.Lexeme}, true
	case token.LBRACKET:
		return p.parseArrayPattern(), true
	case token.LBRACE:
		return p.parseObjectPattern(), true
	default:
		return nil, false
	}
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	t := p.advance() // '['
	pat := &ast.ArrayPattern{Token: t}
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		if p.curIs(token.COMMA) {
			pat.Elements = append(pat.Elements, ast.ArrayPatternElement{})
			p.advance()
			continue
		}
		if p.curIs(token.ELLIPSIS) {
			p.advance()
			sub := p.parsePattern()
			pat.Elements = append(pat.Elements, ast.ArrayPatternElement{Pattern: sub, Rest: true})
			break
		}
		sub := p.parseDestructuringTarget()
		elem := ast.ArrayPatternElement{Pattern: sub}
		if p.curIs(token.ASSIGN) {
			p.advance()
			elem.Default = p.parseTernaryExpr()
		}
		pat.Elements = append(pat.Elements, elem)
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACKET)
	return pat
}

func (p *Parser) parseObjectPattern() ast.Pattern {
	t := p.advance() // '{'
	pat := &ast.ObjectPattern{Token: t}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.ELLIPSIS) {
			p.advance()
			sub := p.parseDestructuringTarget()
			pat.Properties = append(pat.Properties, ast.ObjectPatternProperty{Alias: sub, Rest: true})
			break
		}
		keyTok, _ := p.expect(token.IDENT)
		prop := ast.ObjectPatternProperty{Key: keyTok.Lexeme}
		if p.curIs(token.COLON) {
			p.advance()
			prop.Alias = p.parseDestructuringTarget()
		} else {
			prop.Alias = &ast.IdentifierPattern{Token: keyTok, Name: keyTok.Lexeme}
		}
		if p.curIs(token.ASSIGN) {
			p.advance()
			prop.Default = p.parseTernaryExpr()
		}
		pat.Properties = append(pat.Properties, prop)
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return pat
}

// parseDestructuringTarget parses one alias target: a nested pattern, or
// (when the next tokens don't form a bare identifier/pattern but do form
// an lvalue chain like `a.b` or `a[0]`) an LValuePattern wrapping the
// parsed member expression.
func (p *Parser) parseDestructuringTarget() ast.Pattern {
	if p.curIs(token.LBRACKET) {
		return p.parseArrayPattern()
	}
	if p.curIs(token.LBRACE) {
		return p.parseObjectPattern()
	}
	tok := p.cur()
	expr := p.parseExpression(MEMBER - 1)
	if id, ok := expr.(*ast.Identifier); ok {
		return &ast.IdentifierPattern{Token: id.Token, Name: id.Name}
	}
	if _, ok := expr.(*ast.MemberExpression); ok {
		return &ast.LValuePattern{Token: tok, Target: expr}
	}
	p.errorf(tok.Pos, "invalid destructuring target")
	return &ast.IdentifierPattern{Token: tok, Name: "<error>"}
}
