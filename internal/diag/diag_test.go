package diag

import (
	"strings"
	"testing"

	"github.com/minidyn/minidyn/internal/token"
)

func TestFormatWithFileAndSourceLine(t *testing.T) {
	source := "let x = ;\n"
	e := New("ParseError", "unexpected ;", token.Position{File: "a.mdl", Line: 1, Column: 9}, source)
	got := e.Format(false)

	if !strings.Contains(got, "ParseError in a.mdl:1:9") {
		t.Errorf("missing header: %s", got)
	}
	if !strings.Contains(got, "let x = ;") {
		t.Errorf("missing source line: %s", got)
	}
	if !strings.Contains(got, "^") {
		t.Errorf("missing caret: %s", got)
	}
	if !strings.Contains(got, "unexpected ;") {
		t.Errorf("missing message: %s", got)
	}
}

func TestFormatWithoutFileUsesLineHeader(t *testing.T) {
	e := New("RuntimeError", "boom", token.Position{Line: 2, Column: 1}, "a\nb")
	got := e.Format(false)
	if !strings.Contains(got, "RuntimeError at line 2:1") {
		t.Errorf("missing header: %s", got)
	}
}

func TestFormatOutOfRangeLineOmitsSourceLine(t *testing.T) {
	e := New("RuntimeError", "boom", token.Position{Line: 99, Column: 1}, "a\nb")
	got := e.Format(false)
	if strings.Count(got, "\n") > 1 {
		t.Errorf("expected no source-line block for an out-of-range line: %q", got)
	}
}

func TestFormatAllSingleError(t *testing.T) {
	e := New("ParseError", "boom", token.Position{Line: 1, Column: 1}, "x")
	got := FormatAll([]*SourceError{e}, false)
	if strings.Contains(got, "error(s)") {
		t.Errorf("a single error should not get the multi-error banner: %s", got)
	}
}

func TestFormatAllMultipleErrorsAreNumbered(t *testing.T) {
	e1 := New("ParseError", "first", token.Position{Line: 1, Column: 1}, "x")
	e2 := New("ParseError", "second", token.Position{Line: 2, Column: 1}, "x\ny")
	got := FormatAll([]*SourceError{e1, e2}, false)
	if !strings.Contains(got, "2 error(s)") {
		t.Errorf("missing error count banner: %s", got)
	}
	if !strings.Contains(got, "[1 of 2]") || !strings.Contains(got, "[2 of 2]") {
		t.Errorf("missing numbering: %s", got)
	}
}

func TestFormatColorAddsANSICodes(t *testing.T) {
	e := New("ParseError", "boom", token.Position{Line: 1, Column: 1}, "x")
	got := e.Format(true)
	if !strings.Contains(got, "\033[") {
		t.Errorf("expected ANSI escape codes when color is true: %q", got)
	}
}
