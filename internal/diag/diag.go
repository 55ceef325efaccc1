// Package diag formats lex/parse/runtime errors with source context —
// a line/column header and a caret pointing at the offending column.
package diag

import (
	"fmt"
	"strings"

	"github.com/minidyn/minidyn/internal/token"
)

// SourceError is a single diagnostic anchored to a source position.
type SourceError struct {
	Kind    string // "LexError", "ParseError", "RuntimeError"
	Message string
	Pos     token.Position
	Source  string
}

// New constructs a SourceError.
func New(kind, message string, pos token.Position, source string) *SourceError {
	return &SourceError{Kind: kind, Message: message, Pos: pos, Source: source}
}

func (e *SourceError) Error() string { return e.Format(false) }

// Format renders the error with a line/caret pointer. When color is true,
// ANSI codes highlight the caret and message for terminal output.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	if e.Pos.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", e.Kind, e.Pos.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column)
	}

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders multiple errors, numbering them when there is more
// than one.
func FormatAll(errs []*SourceError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
