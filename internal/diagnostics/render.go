package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/orizon-lang/csfront/internal/position"
)

var (
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#6B7280")
	colorAccent  = lipgloss.Color("#06B6D4")

	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	codeStyle    = lipgloss.NewStyle().Foreground(colorAccent)
	locStyle     = lipgloss.NewStyle().Bold(true)
	snippetStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// Renderer formats diagnostics for terminals.
type Renderer struct {
	Color   bool                 // use ANSI styling
	Source  *position.SourceFile // when set, an excerpt is printed under each diagnostic
	Context int                  // lines of context around the excerpt
}

// Render writes every diagnostic followed by a summary line.
func (r *Renderer) Render(w io.Writer, diags []Diagnostic) error {
	var sb strings.Builder
	errors, warnings := 0, 0
	for _, d := range diags {
		sb.WriteString(r.format(d))
		sb.WriteByte('\n')
		if r.Source != nil && d.Line > 0 {
			excerpt := position.NewSpanHighlighter(r.Source, r.Context).HighlightSpan(pointSpan(d))
			if r.Color {
				excerpt = snippetStyle.Render(strings.TrimRight(excerpt, "\n")) + "\n"
			}
			sb.WriteString(excerpt)
		}
		if d.Level == DiagnosticError {
			errors++
		} else {
			warnings++
		}
	}
	if len(diags) > 0 {
		sb.WriteString(fmt.Sprintf("%d error(s), %d warning(s)\n", errors, warnings))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *Renderer) format(d Diagnostic) string {
	if !r.Color {
		return d.String()
	}
	loc := fmt.Sprintf("%d:%d", d.Line, d.Column)
	if d.Filename != "" {
		loc = d.Filename + ":" + loc
	}
	level := errorStyle.Render(d.Level.String())
	if d.Level == DiagnosticWarning {
		level = warningStyle.Render(d.Level.String())
	}
	return fmt.Sprintf("%s: %s %s: %s", locStyle.Render(loc), level, codeStyle.Render(string(d.Code)), d.Message)
}

// pointSpan narrows a diagnostic to its span, or to its start point when
// the span crosses lines.
func pointSpan(d Diagnostic) position.Span {
	span := d.Span
	if span.IsZero() {
		p := position.Position{Line: d.Line, Column: d.Column}
		return position.Span{Start: p, End: p}
	}
	if span.End.Line != span.Start.Line {
		span.End = span.Start
	}
	return span
}
