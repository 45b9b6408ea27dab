package vuecc

import (
	"errors"
	"strings"

	"github.com/vuecc/vuecc/sfc"
)

// SourceLine is a single numbered line of source code in a diagnostic
// context window.
type SourceLine struct {
	Number  int
	Text    string
	IsError bool
}

// SourceContext is a window of source lines around a compile error,
// suitable for rendering as a diagnostic range.
type SourceContext struct {
	Lines       []SourceLine
	ErrorLine   int
	ErrorColumn int
}

// Diagnose resolves the offset span of a compile error against the original
// source, returning a context window with contextLines lines on each side.
// It returns nil when err carries no *sfc.Error.
func Diagnose(source string, err error, contextLines int) *SourceContext {
	var perr *sfc.Error
	if !errors.As(err, &perr) {
		return nil
	}

	line, col := 1, 1
	for i, r := range []rune(source) {
		if i >= perr.At.Lo {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	lines := strings.Split(source, "\n")
	start := max(1, line-contextLines)
	end := min(len(lines), line+contextLines)

	ctx := &SourceContext{ErrorLine: line, ErrorColumn: col}
	for i := start; i <= end; i++ {
		ctx.Lines = append(ctx.Lines, SourceLine{
			Number:  i,
			Text:    lines[i-1],
			IsError: i == line,
		})
	}
	return ctx
}
