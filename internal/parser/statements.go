package parser

import (
	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/token"
)

// parseStatement dispatches on the current token to one of the statement
// productions in the grammar.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.LBRACE:
		return p.parseBraceStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.BREAK:
		t := p.advance()
		p.consumeSemicolon()
		return &ast.BreakStatement{Token: t}
	case token.CONTINUE:
		t := p.advance()
		p.consumeSemicolon()
		return &ast.ContinueStatement{Token: t}
	case token.RETURN:
		return p.parseReturnStatement()
	case token.THROW:
		t := p.advance()
		val := p.parseExpression(LOWEST)
		p.consumeSemicolon()
		return &ast.ThrowStatement{Token: t, Value: val}
	case token.TRY:
		return p.parseTryStatement()
	case token.VAR, token.LET, token.CONST:
		return p.parseDeclarationStatement()
	case token.FN:
		return p.parseFunctionDeclaration()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) consumeSemicolon() {
	if p.curIs(token.SEMICOLON) {
		p.advance()
	}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	t, _ := p.expect(token.LBRACE)
	block := &ast.BlockStatement{Token: t}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.synchronize()
		}
	}
	p.expect(token.RBRACE)
	return block
}

// parseBraceStatement implements the grammar's `{`-disambiguation: scan
// ahead at brace-depth zero for a matching `}` immediately followed by
// `=`. If found, this is a destructuring-assignment statement; otherwise
// it's an ordinary block.
func (p *Parser) parseBraceStatement() ast.Statement {
	if p.looksLikeDestructuringAssign() {
		return p.parseDestructuringAssignStatement()
	}
	return p.parseBlockStatement()
}

func (p *Parser) looksLikeDestructuringAssign() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case token.LBRACE, token.LBRACKET:
			depth++
		case token.RBRACE, token.RBRACKET:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Type == token.ASSIGN
			}
		case token.SEMICOLON, token.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseDestructuringAssignStatement() ast.Statement {
	t := p.cur()
	pat := p.parsePattern()
	p.expect(token.ASSIGN)
	value := p.parseExpression(LOWEST)
	p.consumeSemicolon()
	return &ast.DestructuringAssignStatement{Token: t, Pattern: pat, Value: value}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	t := p.cur()
	expr := p.parseExpression(LOWEST)
	p.consumeSemicolon()
	return &ast.ExpressionStatement{Token: t, Expr: expr}
}

func (p *Parser) parseIfStatement() ast.Statement {
	t := p.advance() // 'if'
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	then := p.parseStatement()
	stmt := &ast.IfStatement{Token: t, Cond: cond, Then: then}
	if p.curIs(token.ELSE) {
		p.advance()
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	t := p.advance() // 'while'
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.WhileStatement{Token: t, Cond: cond, Body: body}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	t := p.advance() // 'return'
	stmt := &ast.ReturnStatement{Token: t}
	if !p.curIs(token.SEMICOLON) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt.Value = p.parseExpression(LOWEST)
	}
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseTryStatement() ast.Statement {
	t := p.advance() // 'try'
	stmt := &ast.TryStatement{Token: t, Block: p.parseBlockStatement()}
	if p.curIs(token.CATCH) {
		p.advance()
		stmt.HasCatch = true
		if p.curIs(token.LPAREN) {
			p.advance()
			if p.curIs(token.IDENT) {
				name := p.advance()
				stmt.CatchParam = name.Lexeme
			}
			p.expect(token.RPAREN)
		}
		stmt.CatchBlock = p.parseBlockStatement()
	}
	if p.curIs(token.FINALLY) {
		p.advance()
		stmt.FinallyBlock = p.parseBlockStatement()
	}
	return stmt
}

// parseForStatement disambiguates classic vs each-style `for` by
// scanning ahead for a `;` at paren-depth zero.
func (p *Parser) parseForStatement() ast.Statement {
	t := p.advance() // 'for'
	p.expect(token.LPAREN)

	if p.headHasSemicolonAtDepthZero() {
		return p.parseForClassic(t)
	}
	return p.parseForEach(t)
}

func (p *Parser) headHasSemicolonAtDepthZero() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN:
			if depth == 0 {
				return false
			}
			depth--
		case token.RBRACKET, token.RBRACE:
			depth--
		case token.SEMICOLON:
			if depth == 0 {
				return true
			}
		case token.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseForClassic(t token.Token) ast.Statement {
	stmt := &ast.ForStatement{Token: t}

	// Each branch below consumes the clause's own trailing ';' (the
	// declaration/expression-statement parsers already do); the no-init
	// case has no statement to do that, so it consumes the ';' itself.
	switch p.cur().Type {
	case token.SEMICOLON:
		p.advance()
	case token.VAR, token.LET, token.CONST:
		stmt.Init = p.parseDeclarationStatement()
	default:
		stmt.Init = p.parseExpressionStatement()
	}

	if !p.curIs(token.SEMICOLON) {
		stmt.Cond = p.parseExpression(LOWEST)
	}
	p.expect(token.SEMICOLON)

	if !p.curIs(token.RPAREN) {
		tok := p.cur()
		postExpr := p.parseExpression(LOWEST)
		stmt.Post = &ast.ExpressionStatement{Token: tok, Expr: postExpr}
	}
	p.expect(token.RPAREN)
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseForEach(t token.Token) ast.Statement {
	stmt := &ast.ForEachStatement{Token: t}

	switch p.cur().Type {
	case token.VAR, token.LET, token.CONST:
		kindTok := p.advance()
		stmt.Kind = kindTok.Type
		stmt.Pattern = p.parsePattern()
	default:
		stmt.Kind = token.ILLEGAL
		stmt.Pattern = p.parseDestructuringTarget()
	}

	switch p.cur().Type {
	case token.OF:
		p.advance()
		stmt.IsOf = true
	case token.IN:
		p.advance()
		stmt.IsOf = false
	default:
		p.errorf(p.cur().Pos, "expected 'of' or 'in' in for-each head, got %s", p.cur().Type)
	}

	stmt.Iterable = p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	t := p.cur()
	fn := p.parseFunctionLiteral().(*ast.FunctionLiteral)
	return &ast.FunctionDeclaration{Token: t, Function: fn}
}

// parseDeclarationStatement implements:
//
//	("var"|"let"|"const") (Pattern "=" Expr | DeclList) ";"
//
// A leading `[` or `{` commits to the single-declarator destructuring
// form, which always requires an initializer. Otherwise it's a
// comma-separated list of `name [= expr]` declarators; `const` requires
// every declarator to carry an initializer.
func (p *Parser) parseDeclarationStatement() ast.Statement {
	t := p.advance() // var/let/const
	stmt := &ast.DeclarationStatement{Token: t, Kind: t.Type}

	if p.curIs(token.LBRACKET) || p.curIs(token.LBRACE) {
		pat := p.parsePattern()
		if _, ok := p.expect(token.ASSIGN); !ok {
			p.errorf(pat.Pos(), "initializer required for destructuring declaration")
		}
		value := p.parseExpression(LOWEST)
		stmt.Declarators = append(stmt.Declarators, ast.Declarator{Pattern: pat, Value: value})
		p.consumeSemicolon()
		return stmt
	}

	for {
		nameTok, _ := p.expect(token.IDENT)
		decl := ast.Declarator{Pattern: &ast.IdentifierPattern{Token: nameTok, Name: nameTok.Lexeme}}
		if p.curIs(token.ASSIGN) {
			p.advance()
			decl.Value = p.parseExpression(LOWEST)
		} else if t.Type == token.CONST {
			p.errorf(nameTok.Pos, "missing initializer in const declaration of %q", nameTok.Lexeme)
		}
		stmt.Declarators = append(stmt.Declarators, decl)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.consumeSemicolon()
	return stmt
}
