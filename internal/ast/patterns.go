package ast

import (
	"strings"

	"github.com/minidyn/minidyn/internal/token"
)

// Pattern is the closed family of destructuring targets, shared by
// declarations, assignment statements, function parameters, and
// `for`-heads. A single Bind-style evaluator visitor dispatches over this
// family; there is no class hierarchy to walk.
type Pattern interface {
	Node
	patternNode()
}

// IdentifierPattern binds a plain name.
type IdentifierPattern struct {
	Token token.Token
	Name  string
}

func (p *IdentifierPattern) patternNode()        {}
func (p *IdentifierPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *IdentifierPattern) Pos() token.Position  { return p.Token.Pos }
func (p *IdentifierPattern) String() string        { return p.Name }

// LValuePattern is an alias target that is itself an assignable
// expression chain (`a.b`, `a[x]`) rather than a bare name. Binding it
// emits a normal assignment into the lvalue.
type LValuePattern struct {
	Token  token.Token
	Target Expression
}

func (p *LValuePattern) patternNode()        {}
func (p *LValuePattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *LValuePattern) Pos() token.Position  { return p.Token.Pos }
func (p *LValuePattern) String() string        { return p.Target.String() }

// ArrayPatternElement is one element of an ArrayPattern: a nested
// pattern with an optional default, or (if Rest) the trailing `...name`
// collector.
type ArrayPatternElement struct {
	Pattern Pattern // nil for an elided hole
	Default Expression
	Rest    bool
}

// ArrayPattern destructures array-like sources positionally.
type ArrayPattern struct {
	Token    token.Token
	Elements []ArrayPatternElement
}

func (p *ArrayPattern) patternNode()        {}
func (p *ArrayPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *ArrayPattern) Pos() token.Position  { return p.Token.Pos }
func (p *ArrayPattern) String() string {
	parts := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		if e.Pattern == nil {
			parts[i] = ""
			continue
		}
		if e.Rest {
			parts[i] = "..." + e.Pattern.String()
			continue
		}
		s := e.Pattern.String()
		if e.Default != nil {
			s += " = " + e.Default.String()
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectPatternProperty is one `key: alias = default` entry of an
// ObjectPattern, or (if Rest) the trailing `...name` collector.
type ObjectPatternProperty struct {
	Key     string
	Alias   Pattern
	Default Expression
	Rest    bool
}

// ObjectPattern destructures object-like sources by key.
type ObjectPattern struct {
	Token      token.Token
	Properties []ObjectPatternProperty
}

func (p *ObjectPattern) patternNode()        {}
func (p *ObjectPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *ObjectPattern) Pos() token.Position  { return p.Token.Pos }
func (p *ObjectPattern) String() string {
	parts := make([]string, len(p.Properties))
	for i, e := range p.Properties {
		if e.Rest {
			parts[i] = "..." + e.Alias.String()
			continue
		}
		s := e.Key + ": " + e.Alias.String()
		if e.Default != nil {
			s += " = " + e.Default.String()
		}
		parts[i] = s
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
