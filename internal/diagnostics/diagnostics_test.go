package diagnostics

import (
	"strings"
	"testing"

	"github.com/orizon-lang/csfront/internal/position"
)

func spanAt(line, col int) position.Span {
	p := position.Position{Filename: "a.cs", Line: line, Column: col, Offset: col - 1}
	return position.Span{Start: p, End: p}
}

func TestNewFormatsMessage(t *testing.T) {
	d := New(CodeExpectedToken, spanAt(3, 7), `";"`)
	if d.Message != `";" expected` {
		t.Fatalf("message got=%q", d.Message)
	}
	if d.Kind != KindExpectedToken || d.Level != DiagnosticError {
		t.Fatalf("kind/level got=%s/%s", d.Kind, d.Level)
	}
	if d.Line != 3 || d.Column != 7 || d.Filename != "a.cs" {
		t.Fatalf("location got=%s:%d:%d", d.Filename, d.Line, d.Column)
	}
	if got := d.String(); got != `a.cs:3:7: error P0001: ";" expected` {
		t.Fatalf("String got=%q", got)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		code  Code
		kind  Kind
		level DiagnosticLevel
	}{
		{CodeExpectedToken, KindExpectedToken, DiagnosticError},
		{CodeInvalidAlternative, KindInvalidAlternative, DiagnosticError},
		{CodeParamsNotLast, KindAdvisory, DiagnosticError},
		{CodeFeatureNotAvailable, KindAdvisory, DiagnosticWarning},
		{CodeTooManyErrors, KindAdvisory, DiagnosticWarning},
		{"P9999", KindInvalidAlternative, DiagnosticError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			info := Lookup(tt.code)
			if info.Kind != tt.kind || info.Level != tt.level {
				t.Fatalf("got=%s/%s want=%s/%s", info.Kind, info.Level, tt.kind, tt.level)
			}
		})
	}
	if got := New("P9999", spanAt(1, 1), "raw text").Message; got != "raw text" {
		t.Fatalf("unknown code message got=%q", got)
	}
}

func TestManagerCountsAndForwards(t *testing.T) {
	var forwarded []Code
	dm := NewDiagnosticManager(0, SinkFunc(func(d Diagnostic) { forwarded = append(forwarded, d.Code) }))
	dm.Report(New(CodeExpectedToken, spanAt(1, 1), `"x"`))
	dm.Report(New(CodeFeatureNotAvailable, spanAt(1, 2), "generics", "2.0", "1.2"))
	dm.Report(New(CodeDuplicateModifier, spanAt(1, 3), "public"))

	if dm.ErrorCount() != 2 || dm.WarningCount() != 1 || !dm.HasErrors() {
		t.Fatalf("counts got errors=%d warnings=%d", dm.ErrorCount(), dm.WarningCount())
	}
	if len(forwarded) != 3 || forwarded[1] != CodeFeatureNotAvailable {
		t.Fatalf("forwarded got=%v", forwarded)
	}

	diags := dm.Diagnostics()
	diags[0].Message = "changed"
	if dm.Diagnostics()[0].Message == "changed" {
		t.Fatalf("Diagnostics returned the internal slice")
	}
}

func TestManagerErrorLimit(t *testing.T) {
	dm := NewDiagnosticManager(2, nil)
	for i := 1; i <= 5; i++ {
		dm.Report(New(CodeExpectedToken, spanAt(1, i), `";"`))
	}
	diags := dm.Diagnostics()
	if len(diags) != 3 {
		t.Fatalf("accepted got=%d want=3", len(diags))
	}
	if diags[2].Code != CodeTooManyErrors || diags[2].Message != "too many errors (limit 2), further diagnostics suppressed" {
		t.Fatalf("limit diagnostic got=%s", diags[2])
	}
	if dm.ErrorCount() != 2 || dm.Dropped() != 3 {
		t.Fatalf("errors=%d dropped=%d want 2/3", dm.ErrorCount(), dm.Dropped())
	}
}

func TestLevelAndKindText(t *testing.T) {
	if b, _ := DiagnosticWarning.MarshalText(); string(b) != "warning" {
		t.Fatalf("level text got=%q", b)
	}
	if b, _ := KindAdvisory.MarshalText(); string(b) != "advisory" {
		t.Fatalf("kind text got=%q", b)
	}
	if got := DiagnosticLevel(9).String(); got != "unknown" {
		t.Fatalf("unknown level got=%q", got)
	}
}

func TestRenderPlain(t *testing.T) {
	src := position.NewSourceFile("a.cs", "class C {\n  int x\n}\n")
	diags := []Diagnostic{
		New(CodeExpectedToken, spanAt(2, 8), `";"`),
		New(CodeFeatureNotAvailable, spanAt(1, 1), "generics", "2.0", "1.2"),
	}
	var sb strings.Builder
	r := &Renderer{Source: src}
	if err := r.Render(&sb, diags); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		`a.cs:2:8: error P0001: ";" expected`,
		"a.cs:1:1: warning P0110: generics requires language version 2.0 (current 1.2)",
		"int x",
		"1 error(s), 1 warning(s)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("plain output contains escape sequences")
	}
}

func TestRenderEmpty(t *testing.T) {
	var sb strings.Builder
	if err := (&Renderer{Color: true}).Render(&sb, nil); err != nil {
		t.Fatal(err)
	}
	if sb.Len() != 0 {
		t.Fatalf("empty render wrote %q", sb.String())
	}
}
