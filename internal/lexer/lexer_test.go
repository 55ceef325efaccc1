package lexer

import (
	"testing"

	"github.com/minidyn/minidyn/internal/token"
)

func collectTypes(t *testing.T, l *Lexer) []token.Type {
	t.Helper()
	var types []token.Type
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			return types
		}
	}
}

func TestNextTokenBasicProgram(t *testing.T) {
	l := New(`let x = 1 + 2 * 3;`)
	got := collectTypes(t, l)
	want := []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.PLUS,
		token.INT, token.STAR, token.INT, token.SEMICOLON, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNextTokenKeywordsAndLiterals(t *testing.T) {
	l := New(`fn true false nil const var`)
	got := collectTypes(t, l)
	want := []token.Type{token.FN, token.TRUE, token.FALSE, token.NIL, token.CONST, token.VAR, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNextTokenCompoundAssignOperators(t *testing.T) {
	l := New(`+= -= *= /= %= ??=`)
	got := collectTypes(t, l)
	want := []token.Type{
		token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.NULLISH_ASSIGN, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerTracksLineAndColumn(t *testing.T) {
	l := New("let x\n= 1;")
	_ = l.NextToken() // let
	xTok := l.NextToken()
	if xTok.Pos.Line != 1 {
		t.Errorf("x line = %d, want 1", xTok.Pos.Line)
	}
	assignTok := l.NextToken()
	if assignTok.Pos.Line != 2 {
		t.Errorf("= line = %d, want 2", assignTok.Pos.Line)
	}
}

func TestLexerStripsLeadingBOM(t *testing.T) {
	l := New("\xEF\xBB\xBFlet x = 1;")
	tok := l.NextToken()
	if tok.Type != token.LET {
		t.Errorf("first token = %v, want LET", tok.Type)
	}
}

func TestLexerReportsInvalidUTF8(t *testing.T) {
	l := New("let x = \xff;")
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
	}
	if len(l.Errors()) == 0 {
		t.Error("expected at least one lexer error for invalid UTF-8")
	}
}

func TestWithFileSetsTokenPositionFile(t *testing.T) {
	l := New("x", WithFile("script.mdl"))
	tok := l.NextToken()
	if tok.Pos.File != "script.mdl" {
		t.Errorf("token file = %q, want %q", tok.Pos.File, "script.mdl")
	}
}
