package parser

import (
	stderrors "errors"
	"testing"

	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/errors"
	"github.com/orizon-lang/csfront/internal/lexer"
	"github.com/orizon-lang/csfront/internal/position"
)

func TestTokenSet(t *testing.T) {
	a := NewTokenSet(lexer.TokenSemicolon, lexer.TokenRBrace)
	b := NewTokenSet(lexer.TokenEOF)
	u := a.Union(b)

	if !a.Has(lexer.TokenSemicolon) || a.Has(lexer.TokenEOF) {
		t.Fatalf("set membership wrong: %s", a)
	}
	if !u.Has(lexer.TokenEOF) || !u.Has(lexer.TokenRBrace) {
		t.Fatalf("union got=%s", u)
	}
	if a.Has(lexer.TokenEOF) {
		t.Fatalf("Union mutated its receiver")
	}
	if a.Has(lexer.TokenType(-1)) || a.Has(lexer.TokenCount) {
		t.Fatalf("out of range token reported as member")
	}
	if got := NewTokenSet(lexer.TokenSemicolon).String(); got != "{;}" {
		t.Fatalf("String got=%q want=%q", got, "{;}")
	}
}

func TestFollowTable(t *testing.T) {
	if DefaultFollowTable() != DefaultFollowTable() {
		t.Fatalf("default table rebuilt on every call")
	}
	ft := DefaultFollowTable()
	if !ft.Follow(ProdCompilationUnit).Has(lexer.TokenEOF) {
		t.Fatalf("compilation unit must be followed by EOF")
	}
	if !ft.Follow(ProdStatement).Has(lexer.TokenRBrace) {
		t.Fatalf("statement follow set lacks '}'")
	}

	custom := ft.WithRow(ProdExpression, NewTokenSet(lexer.TokenSemicolon))
	if custom.Follow(ProdExpression).Has(lexer.TokenComma) {
		t.Fatalf("WithRow did not replace the row")
	}
	if !ft.Follow(ProdExpression).Has(lexer.TokenComma) {
		t.Fatalf("WithRow mutated the original table")
	}
	if got := ProdClassMember.String(); got != "class member declaration" {
		t.Fatalf("production name got=%q", got)
	}
	if got := Production(-1).String(); got != "production" {
		t.Fatalf("unknown production name got=%q", got)
	}
}

func TestCustomFollowTable(t *testing.T) {
	if _, err := New(lexer.New(""), WithFollowTable(nil)); !stderrors.Is(err, errors.ErrInvalidOption) {
		t.Fatalf("nil follow table err got=%v", err)
	}
	ft := NewFollowTable()
	res, err := ParseFile("t.cs", "class C { int x = ; }", WithFollowTable(ft))
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasErrors() || !res.Balanced() {
		t.Fatalf("errors=%d balanced=%v", res.ErrorCount, res.Balanced())
	}
}

func TestParseLanguageVersion(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2.0", false},
		{"2", false},
		{"1.2", false},
		{"1.0", false},
		{"3.0", true},
		{"0.9", true},
		{"abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lv, err := ParseLanguageVersion(tt.in)
			if tt.wantErr {
				if !stderrors.Is(err, errors.ErrInvalidOption) {
					t.Fatalf("err got=%v want invalid option", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lv.String() != tt.in {
				t.Fatalf("String got=%q want=%q", lv.String(), tt.in)
			}
		})
	}
}

func TestLanguageSupports(t *testing.T) {
	v1, _ := ParseLanguageVersion("1.2")
	v2, _ := ParseLanguageVersion("2.0")
	for f := FeatureGenerics; f <= FeatureFixedSizeBuffers; f++ {
		if v1.Supports(f) {
			t.Fatalf("1.2 supports %s", f)
		}
		if !v2.Supports(f) {
			t.Fatalf("2.0 lacks %s", f)
		}
	}
	if got := FeatureNullCoalescing.String(); got != "null coalescing operator" {
		t.Fatalf("feature name got=%q", got)
	}
}

func pos(line, col, off int) position.Position {
	return position.Position{Line: line, Column: col, Offset: off}
}

func TestAssembler(t *testing.T) {
	a := NewAssembler()
	if a.Attach(&ast.ReturnStatement{}) {
		t.Fatalf("attach without an open container succeeded")
	}
	if a.Close(pos(1, 1, 0)) != nil {
		t.Fatalf("close of an empty stack returned a node")
	}

	outer := &ast.BlockStatement{}
	inner := &ast.BlockStatement{}
	a.Open(outer, pos(1, 1, 0))
	a.Open(inner, pos(1, 3, 2))
	if a.Depth() != 2 || a.Top() != ast.Container(inner) {
		t.Fatalf("depth got=%d", a.Depth())
	}
	if !a.Attach(&ast.ReturnStatement{}) {
		t.Fatalf("block rejected a statement")
	}
	if a.Attach(&ast.UsingDeclaration{}) {
		t.Fatalf("block accepted a using directive")
	}
	if got := a.Close(pos(1, 10, 9)); got != ast.Container(inner) {
		t.Fatalf("closed the wrong container")
	}
	a.Attach(inner)
	a.Close(pos(1, 12, 11))

	if len(inner.Statements) != 1 || len(outer.Statements) != 1 {
		t.Fatalf("children got inner=%d outer=%d", len(inner.Statements), len(outer.Statements))
	}
	if inner.Span.Start.Column != 3 || inner.Span.End.Column != 10 {
		t.Fatalf("inner span got=%s", inner.Span)
	}
	stats := a.Stats()
	if stats.Opens != 2 || stats.Closes != 2 || stats.MaxDepth != 2 {
		t.Fatalf("stats got=%+v", stats)
	}
}

func TestSpanOfCollapsesBackwardEnd(t *testing.T) {
	start := pos(2, 5, 20)
	if got := spanOf(start, pos(1, 1, 0)); got.End != start {
		t.Fatalf("backward span got=%s", got)
	}
	if got := spanOf(start, position.Position{}); got.End != start {
		t.Fatalf("zero end got=%s", got)
	}
	if got := spanOf(start, pos(2, 9, 24)); got.End.Column != 9 {
		t.Fatalf("forward span got=%s", got)
	}
}
