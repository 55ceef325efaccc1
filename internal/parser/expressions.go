package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/token"
)

func (p *Parser) registerExpressionParsers() {
	p.prefixFns[token.IDENT] = p.parseIdentifierOrArrow
	p.prefixFns[token.INT] = p.parseIntLiteral
	p.prefixFns[token.BIGINT] = p.parseBigIntLiteral
	p.prefixFns[token.FLOAT] = p.parseFloatLiteral
	p.prefixFns[token.STRING] = p.parseStringLiteral
	p.prefixFns[token.RAWSTRING] = p.parseRawStringLiteral
	p.prefixFns[token.TRUE] = p.parseBoolLiteral
	p.prefixFns[token.FALSE] = p.parseBoolLiteral
	p.prefixFns[token.NIL] = p.parseNilLiteral
	p.prefixFns[token.MINUS] = p.parseUnary
	p.prefixFns[token.NOT] = p.parseUnary
	p.prefixFns[token.LPAREN] = p.parseParenOrArrow
	p.prefixFns[token.LBRACKET] = p.parseArrayLiteral
	p.prefixFns[token.LBRACE] = p.parseObjectLiteral
	p.prefixFns[token.FN] = p.parseFunctionLiteral

	for _, t := range []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.GT, token.LE, token.GE,
		token.AND, token.OR, token.NULLISH,
		token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.NULLISH_ASSIGN,
	} {
		p.infixFns[t] = p.parseBinaryOrAssign
	}
	p.infixFns[token.QUESTION] = p.parseTernary
	p.infixFns[token.LPAREN] = p.parseCallExpression
	p.infixFns[token.DOT] = p.parseMemberDot
	p.infixFns[token.QUESTION_DOT] = p.parseMemberDot
	p.infixFns[token.LBRACKET] = p.parseMemberIndex
}

// parseExpression is the Pratt-parse entry point: a prefix parse followed
// by a loop of infix parses as long as the next operator binds tighter
// than precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixFns[p.cur().Type]
	if prefix == nil {
		p.errorf(p.cur().Pos, "unexpected token %s (%q) in expression", p.cur().Type, p.cur().Lexeme)
		p.advance()
		return nil
	}
	left := prefix()

	for !p.curIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.cur().Type]
		if infix == nil {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseTernaryExpr() ast.Expression {
	return p.parseExpression(TERNARY - 1)
}

// --- literals -----------------------------------------------------

func (p *Parser) parseIdentifierOrArrow() ast.Expression {
	if p.peekIs(token.ARROW) {
		return p.parseArrowSingleParam()
	}
	t := p.advance()
	return &ast.Identifier{Token: t, Name: t.Lexeme}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	t := p.advance()
	n, err := strconv.ParseInt(strings.ReplaceAll(t.Literal, "_", ""), 0, 64)
	if err != nil {
		// Overflowed int64: the lexer emits INT for every integer
		// literal, so this bigint parse is how large literals are built.
		bi := new(big.Int)
		bi.SetString(strings.ReplaceAll(t.Literal, "_", ""), 0)
		return &ast.BigIntLiteral{Token: t, Value: bi}
	}
	return &ast.IntLiteral{Token: t, Value: n}
}

func (p *Parser) parseBigIntLiteral() ast.Expression {
	t := p.advance()
	bi := new(big.Int)
	if _, ok := bi.SetString(strings.ReplaceAll(t.Literal, "_", ""), 0); !ok {
		p.errorf(t.Pos, "invalid integer literal %q", t.Lexeme)
	}
	return &ast.BigIntLiteral{Token: t, Value: bi}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	t := p.advance()
	f, err := strconv.ParseFloat(t.Literal, 64)
	if err != nil {
		p.errorf(t.Pos, "invalid float literal %q", t.Lexeme)
	}
	return &ast.FloatLiteral{Token: t, Value: f}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	t := p.advance()
	return p.buildInterpolatedString(t)
}

func (p *Parser) parseRawStringLiteral() ast.Expression {
	t := p.advance()
	return &ast.StringLiteral{Token: t, Value: t.Literal}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	t := p.advance()
	return &ast.BoolLiteral{Token: t, Value: t.Type == token.TRUE}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	t := p.advance()
	return &ast.NilLiteral{Token: t}
}

func (p *Parser) parseUnary() ast.Expression {
	t := p.advance()
	operand := p.parseExpression(PREFIX)
	return &ast.UnaryExpression{Token: t, Operator: t.Lexeme, Right: operand}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	t := p.advance() // '['
	lit := &ast.ArrayLiteral{Token: t}
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		if p.curIs(token.COMMA) {
			// Elided element: `[1, , 3]`.
			lit.Elements = append(lit.Elements, &ast.Hole{Token: p.cur()})
			p.advance()
			continue
		}
		lit.Elements = append(lit.Elements, p.parseTernaryExpr())
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACKET)
	return lit
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	t := p.advance() // '{'
	lit := &ast.ObjectLiteral{Token: t}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		prop := ast.ObjectProperty{}
		if p.curIs(token.LBRACKET) {
			p.advance()
			prop.Computed = true
			prop.KeyExpr = p.parseExpression(LOWEST)
			p.expect(token.RBRACKET)
			p.expect(token.COLON)
			prop.Value = p.parseTernaryExpr()
		} else {
			keyTok := p.cur()
			key := keyTok.Lexeme
			if keyTok.Type == token.STRING {
				key = keyTok.Literal
			}
			p.advance()
			if p.curIs(token.COLON) {
				p.advance()
				prop.Key = key
				prop.Value = p.parseTernaryExpr()
			} else {
				// Shorthand `{ x }` means `{ x: x }`.
				prop.Key = key
				prop.Value = &ast.Identifier{Token: keyTok, Name: key}
			}
		}
		lit.Properties = append(lit.Properties, prop)
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return lit
}

// --- grouping / arrow disambiguation --------------------------------

// parseParenOrArrow handles `(` in prefix position: either a grouped
// expression or the start of `(params) => body`. It attempts the
// speculative parameter-list parse first and rewinds on failure.
func (p *Parser) parseParenOrArrow() ast.Expression {
	mark := p.mark()
	if params, ok := p.tryParseArrowParams(); ok && p.curIs(token.ARROW) {
		p.advance() // '=>'
		return p.finishArrowFunction(params)
	}
	p.reset(mark)

	p.advance() // '('
	if p.curIs(token.RPAREN) {
		// Only valid as an empty arrow param list; if we get here the
		// speculative parse above already failed, so this is an error.
		p.errorf(p.cur().Pos, "unexpected empty parentheses")
		p.advance()
		return nil
	}
	expr := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return expr
}

// tryParseArrowParams speculatively parses `(` Params? `)` as an arrow
// parameter list, returning ok=false (and leaving the cursor wherever it
// stopped — callers must reset) if the token stream doesn't fit that
// shape.
func (p *Parser) tryParseArrowParams() (params []*ast.Param, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	if !p.curIs(token.LPAREN) {
		return nil, false
	}
	p.advance()
	for !p.curIs(token.RPAREN) {
		if p.curIs(token.ELLIPSIS) {
			p.advance()
			if !p.curIs(token.IDENT) {
				return nil, false
			}
			name := p.advance()
			params = append(params, &ast.Param{Pattern: &ast.IdentifierPattern{Token: name, Name: name.Lexeme}, Rest: true})
		} else {
			pat, patOK := p.tryParsePattern()
			if !patOK {
				return nil, false
			}
			param := &ast.Param{Pattern: pat}
			if p.curIs(token.ASSIGN) {
				p.advance()
				param.Default = p.parseTernaryExpr()
			}
			params = append(params, param)
		}
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.curIs(token.RPAREN) {
		return nil, false
	}
	p.advance()
	return params, true
}

func (p *Parser) parseArrowSingleParam() ast.Expression {
	name := p.advance()
	p.expect(token.ARROW)
	params := []*ast.Param{{Pattern: &ast.IdentifierPattern{Token: name, Name: name.Lexeme}}}
	return p.finishArrowFunction(params)
}

func (p *Parser) finishArrowFunction(params []*ast.Param) ast.Expression {
	fn := &ast.FunctionLiteral{IsArrow: true, Params: derefParams(params)}
	if p.curIs(token.LBRACE) {
		fn.Body = p.parseBlockStatement()
	} else {
		tok := p.cur()
		fn.Body = &ast.ExpressionStatement{Token: tok, Expr: p.parseTernaryExpr()}
		fn.ExprBody = true
	}
	return fn
}

// derefParams adapts the []*ast.Param used by speculative parsing to the
// []ast.Param value-slice FunctionLiteral stores.
func derefParams(params []*ast.Param) []ast.Param {
	out := make([]ast.Param, len(params))
	for i, p := range params {
		out[i] = *p
	}
	return out
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	t := p.advance() // 'fn'
	fn := &ast.FunctionLiteral{Token: t}
	if p.curIs(token.IDENT) {
		name := p.advance()
		fn.Name = name.Lexeme
	}
	p.expect(token.LPAREN)
	fn.Params = derefParams(p.parseParamList())
	p.expect(token.RPAREN)
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	seen := map[string]bool{}
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		if p.curIs(token.ELLIPSIS) {
			p.advance()
			name, ok := p.expect(token.IDENT)
			if ok && seen[name.Lexeme] {
				p.errorf(name.Pos, "duplicate parameter name %q", name.Lexeme)
			}
			seen[name.Lexeme] = true
			params = append(params, &ast.Param{Pattern: &ast.IdentifierPattern{Token: name, Name: name.Lexeme}, Rest: true})
			if !p.curIs(token.RPAREN) {
				p.errorf(p.cur().Pos, "rest parameter must be last")
			}
			break
		}
		pat := p.parsePattern()
		if id, ok := pat.(*ast.IdentifierPattern); ok {
			if seen[id.Name] {
				p.errorf(id.Token.Pos, "duplicate parameter name %q", id.Name)
			}
			seen[id.Name] = true
		}
		param := &ast.Param{Pattern: pat}
		if p.curIs(token.ASSIGN) {
			p.advance()
			param.Default = p.parseTernaryExpr()
		}
		params = append(params, param)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return params
}

// --- binary / assignment / ternary ----------------------------------

func (p *Parser) parseBinaryOrAssign(left ast.Expression) ast.Expression {
	opTok := p.advance()
	nextPrec := precedences[opTok.Type]
	if rightAssoc[opTok.Type] {
		nextPrec--
	}

	switch opTok.Type {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.NULLISH_ASSIGN:
		value := p.parseExpression(nextPrec)
		return &ast.AssignmentExpression{Token: opTok, Target: left, Operator: opTok.Lexeme, Value: value}
	default:
		right := p.parseExpression(nextPrec)
		return &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Lexeme, Right: right}
	}
}

func (p *Parser) parseTernary(cond ast.Expression) ast.Expression {
	qTok := p.advance() // '?'
	then := p.parseExpression(TERNARY - 1)
	p.expect(token.COLON)
	els := p.parseExpression(TERNARY - 1)
	return &ast.TernaryExpression{Token: qTok, Cond: cond, Then: then, Else: els}
}

// --- member / call ----------------------------------------------------

func (p *Parser) parseMemberDot(obj ast.Expression) ast.Expression {
	dot := p.advance()
	optional := dot.Type == token.QUESTION_DOT
	if p.curIs(token.LBRACKET) {
		p.advance()
		idx := p.parseExpression(LOWEST)
		p.expect(token.RBRACKET)
		return &ast.MemberExpression{Token: dot, Object: obj, Property: idx, Computed: true, Optional: optional}
	}
	name, _ := p.expect(token.IDENT)
	prop := &ast.Identifier{Token: name, Name: name.Lexeme}
	return &ast.MemberExpression{Token: dot, Object: obj, Property: prop, Computed: false, Optional: optional}
}

func (p *Parser) parseMemberIndex(obj ast.Expression) ast.Expression {
	lb := p.advance()
	idx := p.parseExpression(LOWEST)
	p.expect(token.RBRACKET)
	return &ast.MemberExpression{Token: lb, Object: obj, Property: idx, Computed: true}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	lp := p.advance()
	call := &ast.CallExpression{Token: lp, Callee: callee}
	call.Args = p.parseArgList()
	p.expect(token.RPAREN)
	return call
}

func (p *Parser) parseArgList() []ast.Argument {
	var args []ast.Argument
	seenNames := map[string]bool{}
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		arg := ast.Argument{}
		if p.curIs(token.IDENT) && p.peekIs(token.COLON) {
			name := p.advance()
			p.advance() // ':'
			if seenNames[name.Lexeme] {
				p.errorf(name.Pos, "duplicate named argument %q", name.Lexeme)
			}
			seenNames[name.Lexeme] = true
			arg.Name = name.Lexeme
			arg.Value = p.parseTernaryExpr()
		} else {
			arg.Value = p.parseTernaryExpr()
		}
		args = append(args, arg)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return args
}

// --- string interpolation ---------------------------------------------

// buildInterpolatedString re-scans t.Literal for `${...}` markers,
// bracket-matching (respecting nested double-quoted strings with
// backslash escapes) to find each embedded expression's extent, parses
// each as a full expression, and collects the literal/embedded pieces in
// source order as the Parts of an InterpolatedString. A string with no
// markers collapses to a plain StringLiteral.
func (p *Parser) buildInterpolatedString(t token.Token) ast.Expression {
	raw := t.Literal
	parts, hasInterp := splitInterpolation(raw)
	if !hasInterp {
		return &ast.StringLiteral{Token: t, Value: raw}
	}

	is := &ast.InterpolatedString{Token: t}
	for _, part := range parts {
		if part.isExpr {
			sub := New(part.text, p.file)
			expr := sub.parseExpression(LOWEST)
			for _, e := range sub.Errors() {
				p.errors = append(p.errors, e)
			}
			is.Parts = append(is.Parts, expr)
		} else {
			is.Parts = append(is.Parts, &ast.StringLiteral{Token: t, Value: part.text})
		}
	}
	return is
}

type interpPart struct {
	text   string
	isExpr bool
}

// splitInterpolation scans s for `${...}` markers at bracket depth zero,
// respecting nested double-quoted strings with backslash escapes inside
// the embedded expression text.
func splitInterpolation(s string) ([]interpPart, bool) {
	var parts []interpPart
	var lit strings.Builder
	found := false

	i := 0
	for i < len(s) {
		if s[i] == '$' && i+1 < len(s) && s[i+1] == '{' {
			found = true
			if lit.Len() > 0 {
				parts = append(parts, interpPart{text: lit.String()})
				lit.Reset()
			}
			depth := 1
			j := i + 2
			inStr := false
			for j < len(s) && depth > 0 {
				c := s[j]
				switch {
				case inStr:
					if c == '\\' && j+1 < len(s) {
						j++
					} else if c == '"' {
						inStr = false
					}
				case c == '"':
					inStr = true
				case c == '{':
					depth++
				case c == '}':
					depth--
					if depth == 0 {
						continue // don't consume the closing brace into the body
					}
				}
				j++
			}
			body := s[i+2 : j]
			parts = append(parts, interpPart{text: body, isExpr: true})
			i = j + 1
			continue
		}
		lit.WriteByte(s[i])
		i++
	}
	if lit.Len() > 0 || len(parts) == 0 {
		parts = append(parts, interpPart{text: lit.String()})
	}
	return parts, found
}
