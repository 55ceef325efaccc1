package ast

import "testing"

func TestProgramStringConcatenatesStatementStrings(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&ExpressionStatement{Expr: &Identifier{Name: "a"}},
			&ExpressionStatement{Expr: &Identifier{Name: "b"}},
		},
	}
	if got := prog.String(); got != "a;b;" {
		t.Errorf("got %q, want %q", got, "a;b;")
	}
}

func TestProgramPosUsesFirstStatementOrFallsBackToOne(t *testing.T) {
	empty := &Program{}
	pos := empty.Pos()
	if pos.Line != 1 || pos.Column != 1 {
		t.Errorf("empty program pos = %+v, want line 1 column 1", pos)
	}
}

func TestExpressionStatementString(t *testing.T) {
	s := &ExpressionStatement{Expr: &Identifier{Name: "x"}}
	if s.String() == "" {
		t.Error("expected a non-empty rendering")
	}
}
