// Package diagnostics defines the diagnostics reported by the csfront
// parser and the manager that collects them for one parse.
package diagnostics

import (
	"fmt"

	"github.com/orizon-lang/csfront/internal/position"
)

// DiagnosticLevel represents the severity level of a diagnostic
type DiagnosticLevel int

const (
	DiagnosticError DiagnosticLevel = iota
	DiagnosticWarning
)

func (dl DiagnosticLevel) String() string {
	switch dl {
	case DiagnosticError:
		return "error"
	case DiagnosticWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText renders the level by name in JSON and YAML output.
func (dl DiagnosticLevel) MarshalText() ([]byte, error) {
	return []byte(dl.String()), nil
}

// Kind is the taxonomy of syntax diagnostics.
type Kind int

const (
	// KindExpectedToken: a specific terminal was required and absent.
	KindExpectedToken Kind = iota
	// KindInvalidAlternative: no grammar alternative matched at a nonterminal.
	KindInvalidAlternative
	// KindAdvisory: the construct parsed but breaks a secondary rule.
	KindAdvisory
)

func (k Kind) String() string {
	switch k {
	case KindExpectedToken:
		return "expected-token"
	case KindInvalidAlternative:
		return "invalid-alternative"
	case KindAdvisory:
		return "advisory"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic is one reported problem. Line and Column duplicate the span
// start for consumers that only want the point location.
type Diagnostic struct {
	Line     int             `json:"line" yaml:"line"`
	Column   int             `json:"column" yaml:"column"`
	Code     Code            `json:"code" yaml:"code"`
	Kind     Kind            `json:"kind" yaml:"kind"`
	Level    DiagnosticLevel `json:"level" yaml:"level"`
	Message  string          `json:"message" yaml:"message"`
	Span     position.Span   `json:"-" yaml:"-"`
	Filename string          `json:"file,omitempty" yaml:"file,omitempty"`
}

// New creates a diagnostic for code at span, formatting the code's
// message template with args.
func New(code Code, span position.Span, args ...any) Diagnostic {
	info := Lookup(code)
	return Diagnostic{
		Line:     span.Start.Line,
		Column:   span.Start.Column,
		Code:     code,
		Kind:     info.Kind,
		Level:    info.Level,
		Message:  fmt.Sprintf(info.Format, args...),
		Span:     span,
		Filename: span.Start.Filename,
	}
}

// String formats the diagnostic as "file:line:col: level CODE: message".
func (d Diagnostic) String() string {
	loc := fmt.Sprintf("%d:%d", d.Line, d.Column)
	if d.Filename != "" {
		loc = d.Filename + ":" + loc
	}
	return fmt.Sprintf("%s: %s %s: %s", loc, d.Level, d.Code, d.Message)
}

// Sink receives diagnostics as they are reported.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

// DiagnosticManager collects the diagnostics of one parse, enforcing an
// error limit and forwarding accepted diagnostics to an optional sink.
type DiagnosticManager struct {
	diagnostics  []Diagnostic
	errorCount   int
	warningCount int
	dropped      int
	maxErrors    int
	forward      Sink
}

// DefaultMaxErrors is the error limit used when none is configured.
const DefaultMaxErrors = 100

// NewDiagnosticManager creates a manager. maxErrors <= 0 disables the limit.
// forward may be nil.
func NewDiagnosticManager(maxErrors int, forward Sink) *DiagnosticManager {
	return &DiagnosticManager{
		diagnostics: make([]Diagnostic, 0),
		maxErrors:   maxErrors,
		forward:     forward,
	}
}

// Report adds a diagnostic unless the error limit has been reached. The
// first diagnostic over the limit is replaced by a single TooManyErrors
// advisory; later ones are only counted.
func (dm *DiagnosticManager) Report(d Diagnostic) {
	if dm.maxErrors > 0 && dm.errorCount >= dm.maxErrors {
		if dm.dropped == 0 {
			over := New(CodeTooManyErrors, d.Span, dm.maxErrors)
			dm.append(over)
		}
		dm.dropped++
		return
	}

	switch d.Level {
	case DiagnosticError:
		dm.errorCount++
	case DiagnosticWarning:
		dm.warningCount++
	}
	dm.append(d)
}

func (dm *DiagnosticManager) append(d Diagnostic) {
	dm.diagnostics = append(dm.diagnostics, d)
	if dm.forward != nil {
		dm.forward.Report(d)
	}
}

// Diagnostics returns the accepted diagnostics in report order.
func (dm *DiagnosticManager) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(dm.diagnostics))
	copy(out, dm.diagnostics)
	return out
}

// ErrorCount returns the number of accepted errors.
func (dm *DiagnosticManager) ErrorCount() int { return dm.errorCount }

// WarningCount returns the number of accepted warnings.
func (dm *DiagnosticManager) WarningCount() int { return dm.warningCount }

// Dropped returns how many diagnostics were discarded by the error limit.
func (dm *DiagnosticManager) Dropped() int { return dm.dropped }

// HasErrors reports whether any error was accepted.
func (dm *DiagnosticManager) HasErrors() bool { return dm.errorCount > 0 }
