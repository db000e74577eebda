package position

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SpanHighlighter renders source excerpts with the given span underlined.
type SpanHighlighter struct {
	file    *SourceFile
	context int // lines shown before and after the span
}

// NewSpanHighlighter creates a new span highlighter over file.
func NewSpanHighlighter(file *SourceFile, contextLines int) *SpanHighlighter {
	if contextLines < 0 {
		contextLines = 0
	}
	return &SpanHighlighter{file: file, context: contextLines}
}

// HighlightSpan returns a string representation of the source code
// with the specified span highlighted using ASCII art.
func (sh *SpanHighlighter) HighlightSpan(span Span) string {
	if sh.file == nil || span.Start.Line < 1 {
		return ""
	}
	if span.End.Line < span.Start.Line {
		span.End = span.Start
	}

	var result strings.Builder

	startLine := max(1, span.Start.Line-sh.context)
	endLine := min(len(sh.file.Lines), span.End.Line+sh.context)

	for lineNum := startLine; lineNum <= endLine; lineNum++ {
		line := sh.file.GetLine(lineNum)
		result.WriteString(fmt.Sprintf("%4d | %s\n", lineNum, line))

		if lineNum >= span.Start.Line && lineNum <= span.End.Line {
			sh.addHighlighting(&result, lineNum, line, span)
		}
	}

	return result.String()
}

// addHighlighting adds ASCII highlighting under the relevant part of the line.
func (sh *SpanHighlighter) addHighlighting(result *strings.Builder, lineNum int, line string, span Span) {
	result.WriteString("     | ")

	lineEnd := utf8.RuneCountInString(line) + 1
	switch {
	case lineNum == span.Start.Line && lineNum == span.End.Line:
		sh.addSingleLineHighlight(result, line, span.Start.Column, span.End.Column)
	case lineNum == span.Start.Line:
		sh.addSingleLineHighlight(result, line, span.Start.Column, lineEnd)
	case lineNum == span.End.Line:
		sh.addSingleLineHighlight(result, line, 1, span.End.Column)
	default:
		sh.addSingleLineHighlight(result, line, 1, lineEnd)
	}

	result.WriteString("\n")
}

// addSingleLineHighlight adds highlighting for a single line between given columns.
// Empty ranges still get one caret so zero-width spans stay visible.
func (sh *SpanHighlighter) addSingleLineHighlight(result *strings.Builder, line string, startCol, endCol int) {
	runes := []rune(line)

	for i := 1; i < startCol; i++ {
		if i <= len(runes) && runes[i-1] == '\t' {
			result.WriteString("\t")
		} else {
			result.WriteString(" ")
		}
	}

	highlightLen := endCol - startCol
	if highlightLen < 1 {
		highlightLen = 1
	}
	result.WriteString(strings.Repeat("^", highlightLen))
}
