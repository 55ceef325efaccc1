// Package ast defines the Abstract Syntax Tree node types for MiniDyn.
package ast

import (
	"bytes"

	"github.com/minidyn/minidyn/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// TokenLiteral returns the lexeme of the token the node was built from.
	TokenLiteral() string
	// String renders the node for debugging, tracing, and the fmt subcommand.
	String() string
	// Pos returns the node's source position for diagnostics.
	Pos() token.Position
}

// Expression is a node that evaluates to a Value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node with effects but no result value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node produced by parsing a full source unit.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}
