package ast

import (
	"bytes"
	"strings"

	"github.com/minidyn/minidyn/internal/token"
)

// ExpressionStatement wraps a bare expression used in statement position.
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *ExpressionStatement) statementNode()       {}
func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ExpressionStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ExpressionStatement) String() string {
	if s.Expr == nil {
		return ""
	}
	return s.Expr.String() + ";"
}

// BlockStatement is a `{ ... }` statement sequence introducing a new
// lexical scope.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (s *BlockStatement) statementNode()       {}
func (s *BlockStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *BlockStatement) Pos() token.Position  { return s.Token.Pos }
func (s *BlockStatement) String() string {
	var buf bytes.Buffer
	buf.WriteString("{ ")
	for _, st := range s.Statements {
		buf.WriteString(st.String())
		buf.WriteString(" ")
	}
	buf.WriteString("}")
	return buf.String()
}

// Declarator is one `pattern = value` entry of a var/let/const
// declaration list; Value is nil for a bare `let x;` with no initializer
// (legal only for `let`, which then starts in the TDZ).
type Declarator struct {
	Pattern Pattern
	Value   Expression
}

// DeclarationStatement is a `var`/`let`/`const` declaration. Kind is one
// of token.VAR, token.LET, token.CONST.
type DeclarationStatement struct {
	Token       token.Token
	Kind        token.Type
	Declarators []Declarator
}

func (s *DeclarationStatement) statementNode()       {}
func (s *DeclarationStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *DeclarationStatement) Pos() token.Position  { return s.Token.Pos }
func (s *DeclarationStatement) String() string {
	parts := make([]string, len(s.Declarators))
	for i, d := range s.Declarators {
		if d.Value != nil {
			parts[i] = d.Pattern.String() + " = " + d.Value.String()
		} else {
			parts[i] = d.Pattern.String()
		}
	}
	return s.Kind.String() + " " + strings.Join(parts, ", ") + ";"
}

// FunctionDeclaration is a statement-level named function: `fn name(...) {...}`.
type FunctionDeclaration struct {
	Token    token.Token
	Function *FunctionLiteral
}

func (s *FunctionDeclaration) statementNode()       {}
func (s *FunctionDeclaration) TokenLiteral() string { return s.Token.Lexeme }
func (s *FunctionDeclaration) Pos() token.Position  { return s.Token.Pos }
func (s *FunctionDeclaration) String() string       { return s.Function.String() }

// DestructuringAssignStatement is a statement beginning with `{` or `[`
// that the parser speculatively identified as a destructuring-assign
// statement (as opposed to a block statement or array literal).
type DestructuringAssignStatement struct {
	Token   token.Token
	Pattern Pattern
	Value   Expression
}

func (s *DestructuringAssignStatement) statementNode()       {}
func (s *DestructuringAssignStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *DestructuringAssignStatement) Pos() token.Position  { return s.Token.Pos }
func (s *DestructuringAssignStatement) String() string {
	return s.Pattern.String() + " = " + s.Value.String() + ";"
}

// IfStatement is `if (cond) then [else alt]`.
type IfStatement struct {
	Token token.Token
	Cond  Expression
	Then  Statement
	Else  Statement
}

func (s *IfStatement) statementNode()       {}
func (s *IfStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *IfStatement) Pos() token.Position  { return s.Token.Pos }
func (s *IfStatement) String() string {
	out := "if (" + s.Cond.String() + ") " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Token token.Token
	Cond  Expression
	Body  Statement
}

func (s *WhileStatement) statementNode()       {}
func (s *WhileStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *WhileStatement) Pos() token.Position  { return s.Token.Pos }
func (s *WhileStatement) String() string {
	return "while (" + s.Cond.String() + ") " + s.Body.String()
}

// ForStatement is the classic three-clause `for (init; cond; post) body`.
// Each clause may be nil.
type ForStatement struct {
	Token token.Token
	Init  Statement
	Cond  Expression
	Post  Statement
	Body  Statement
}

func (s *ForStatement) statementNode()       {}
func (s *ForStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ForStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ForStatement) String() string {
	return "for (...) " + s.Body.String()
}

// ForEachStatement is `for (kind pattern of|in iterable) body`. Kind is
// token.VAR/LET/CONST when the head declares a fresh binding, or
// token.ILLEGAL when it assigns into an already-declared target.
type ForEachStatement struct {
	Token    token.Token
	Kind     token.Type
	Pattern  Pattern
	IsOf     bool // true for `for-of` (values), false for `for-in` (keys)
	Iterable Expression
	Body     Statement
}

func (s *ForEachStatement) statementNode()       {}
func (s *ForEachStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ForEachStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ForEachStatement) String() string {
	kw := "of"
	if !s.IsOf {
		kw = "in"
	}
	return "for (" + s.Pattern.String() + " " + kw + " " + s.Iterable.String() + ") " + s.Body.String()
}

// BreakStatement is `break;`.
type BreakStatement struct{ Token token.Token }

func (s *BreakStatement) statementNode()       {}
func (s *BreakStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *BreakStatement) Pos() token.Position  { return s.Token.Pos }
func (s *BreakStatement) String() string       { return "break;" }

// ContinueStatement is `continue;`.
type ContinueStatement struct{ Token token.Token }

func (s *ContinueStatement) statementNode()       {}
func (s *ContinueStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ContinueStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ContinueStatement) String() string       { return "continue;" }

// ReturnStatement is `return [expr];`.
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ReturnStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ReturnStatement) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// ThrowStatement is `throw expr;`.
type ThrowStatement struct {
	Token token.Token
	Value Expression
}

func (s *ThrowStatement) statementNode()       {}
func (s *ThrowStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ThrowStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ThrowStatement) String() string       { return "throw " + s.Value.String() + ";" }

// TryStatement is `try block [catch (name) block] [finally block]`.
type TryStatement struct {
	Token        token.Token
	Block        *BlockStatement
	CatchParam   string // empty when catch omits the binding or there is no catch
	HasCatch     bool
	CatchBlock   *BlockStatement
	FinallyBlock *BlockStatement
}

func (s *TryStatement) statementNode()       {}
func (s *TryStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *TryStatement) Pos() token.Position  { return s.Token.Pos }
func (s *TryStatement) String() string {
	out := "try " + s.Block.String()
	if s.HasCatch {
		out += " catch (" + s.CatchParam + ") " + s.CatchBlock.String()
	}
	if s.FinallyBlock != nil {
		out += " finally " + s.FinallyBlock.String()
	}
	return out
}
