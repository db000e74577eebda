package position

import (
	"strings"
	"testing"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		pos      Position
		isValid  bool
	}{
		{
			name:     "Valid position with filename",
			pos:      Position{Filename: "src/Program.cs", Line: 10, Column: 5, Offset: 100},
			expected: "Program.cs:10:5",
			isValid:  true,
		},
		{
			name:     "Valid position without filename",
			pos:      Position{Line: 1, Column: 1, Offset: 0},
			expected: "1:1",
			isValid:  true,
		},
		{
			name:     "Zero position",
			pos:      Position{},
			expected: "0:0",
			isValid:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.expected {
				t.Fatalf("String() got=%q want=%q", got, tt.expected)
			}
			if got := tt.pos.IsValid(); got != tt.isValid {
				t.Fatalf("IsValid() got=%v want=%v", got, tt.isValid)
			}
		})
	}
}

func TestSpanRelations(t *testing.T) {
	outer := Span{Start: Position{Line: 1, Column: 1, Offset: 0}, End: Position{Line: 1, Column: 21, Offset: 20}}
	inner := Span{Start: Position{Line: 1, Column: 5, Offset: 4}, End: Position{Line: 1, Column: 9, Offset: 8}}
	after := Span{Start: Position{Line: 1, Column: 21, Offset: 20}, End: Position{Line: 1, Column: 25, Offset: 24}}

	if !outer.Encloses(inner) {
		t.Fatalf("outer should enclose inner")
	}
	if inner.Encloses(outer) {
		t.Fatalf("inner must not enclose outer")
	}
	if outer.Overlaps(after) {
		t.Fatalf("adjacent spans must not overlap")
	}
	if u := inner.Union(after); u.Start.Offset != 4 || u.End.Offset != 24 {
		t.Fatalf("Union got=%s", u)
	}
	if got := inner.Length(); got != 4 {
		t.Fatalf("Length got=%d want=4", got)
	}
	if got := outer.String(); got != "1:1-21" {
		t.Fatalf("String got=%q", got)
	}
}

func TestSourceFileOffsets(t *testing.T) {
	src := "class A\n{\n  int x;\n}\n"
	sf := NewSourceFile("a.cs", src)

	pos := sf.PositionFromOffset(strings.Index(src, "int"))
	if pos.Line != 3 || pos.Column != 3 {
		t.Fatalf("PositionFromOffset got=%d:%d want=3:3", pos.Line, pos.Column)
	}
	if off := sf.OffsetFromPosition(pos); off != pos.Offset {
		t.Fatalf("OffsetFromPosition got=%d want=%d", off, pos.Offset)
	}
	if got := sf.GetLine(2); got != "{" {
		t.Fatalf("GetLine got=%q", got)
	}
	if got := sf.GetLine(99); got != "" {
		t.Fatalf("GetLine out of range got=%q", got)
	}

	span := Span{Start: pos, End: sf.PositionFromOffset(pos.Offset + 3)}
	if got := sf.GetSpanText(span); got != "int" {
		t.Fatalf("GetSpanText got=%q want=%q", got, "int")
	}
}

func TestHighlightSpan(t *testing.T) {
	sf := NewSourceFile("a.cs", "class A {\n  void M( {\n}\n")
	start := Position{Filename: "a.cs", Line: 2, Column: 10, Offset: 19}
	h := NewSpanHighlighter(sf, 1)

	out := h.HighlightSpan(Span{Start: start, End: start})
	want := "   1 | class A {\n   2 |   void M( {\n     |          ^\n   3 | }\n"
	if out != want {
		t.Fatalf("HighlightSpan got=%q want=%q", out, want)
	}
}

func TestSpanBetweenAndIsZero(t *testing.T) {
	a := Span{Start: Position{Line: 1, Column: 1, Offset: 0}, End: Position{Line: 1, Column: 4, Offset: 3}}
	b := Span{Start: Position{Line: 2, Column: 3, Offset: 10}, End: Position{Line: 2, Column: 6, Offset: 13}}

	got := SpanBetween(a, b)
	if got.Start != a.Start || got.End != b.End {
		t.Fatalf("SpanBetween got=%s", got)
	}
	if got.IsZero() || a.IsZero() {
		t.Fatalf("stamped span reported as zero")
	}
	if !(Span{}).IsZero() {
		t.Fatalf("zero span not reported as zero")
	}
}
