package parser

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/orizon-lang/csfront/internal/errors"
	"github.com/orizon-lang/csfront/internal/lexer"
)

// failingSource yields the tokens of its lexer until limit tokens have
// been read and then fails.
type failingSource struct {
	l     *lexer.Lexer
	limit int
	n     int
	calls int
}

func (f *failingSource) Next() (lexer.Token, error) {
	f.calls++
	if f.n >= f.limit {
		return lexer.Token{}, fmt.Errorf("connection reset")
	}
	f.n++
	return f.l.NextToken(), nil
}

func TestStreamLookaheadAndPeek(t *testing.T) {
	s := NewStream(lexer.New("a . b ( )"))
	if got := s.Lookahead().Literal; got != "a" {
		t.Fatalf("lookahead got=%q want=%q", got, "a")
	}
	if got := s.PeekAt(2).Literal; got != "b" {
		t.Fatalf("PeekAt(2) got=%q want=%q", got, "b")
	}

	ps := s.StartPeekSession()
	var seen []string
	for i := 0; i < 4; i++ {
		seen = append(seen, ps.PeekNext().Type.String())
	}
	if got := strings.Join(seen, " "); got != ". ident ( )" {
		t.Fatalf("peek session got=%q", got)
	}
	if got := ps.Cursor().Distance(s.Cursor()); got != 4 {
		t.Fatalf("distance got=%d want=4", got)
	}
	// Peeking never moves the committed position.
	if s.Pos() != 0 || s.Lookahead().Literal != "a" {
		t.Fatalf("peek moved the stream to %d", s.Pos())
	}

	s.Advance()
	if got := s.Current().Literal; got != "a" {
		t.Fatalf("current got=%q want=%q", got, "a")
	}
	if s.Pos() != 1 {
		t.Fatalf("pos got=%d want=1", s.Pos())
	}
}

func TestStreamEOFRepeats(t *testing.T) {
	s := NewStream(lexer.New("x"))
	s.Advance()
	for i := 0; i < 3; i++ {
		if !s.Lookahead().Is(lexer.TokenEOF) {
			t.Fatalf("lookahead %d got=%s want EOF", i, s.Lookahead().Type)
		}
		s.Advance()
	}
	if got := s.PeekAt(10).Type; got != lexer.TokenEOF {
		t.Fatalf("PeekAt past end got=%s", got)
	}
	if s.Err() != nil {
		t.Fatalf("unexpected error: %v", s.Err())
	}
}

func TestStreamCompactsConsumedTokens(t *testing.T) {
	src := strings.Repeat("a ", 2000)
	s := NewStream(lexer.New(src))
	for i := 0; i < 1500; i++ {
		if got := s.Lookahead().Literal; got != "a" {
			t.Fatalf("token %d got=%q", i, got)
		}
		s.Advance()
	}
	if len(s.buf) > compactThreshold+2 {
		t.Fatalf("buffer not compacted: len=%d", len(s.buf))
	}
	if got := s.PeekAt(499).Literal; got != "a" {
		t.Fatalf("PeekAt after compaction got=%q", got)
	}
	if got := s.PeekAt(500).Type; got != lexer.TokenEOF {
		t.Fatalf("end after compaction got=%s", got)
	}
}

func TestStreamLatchesSourceFailure(t *testing.T) {
	src := &failingSource{l: lexer.New("a b c d"), limit: 2}
	s := NewStream(src)
	if got := s.PeekAt(1).Literal; got != "b" {
		t.Fatalf("second token got=%q", got)
	}
	if got := s.PeekAt(2).Type; got != lexer.TokenEOF {
		t.Fatalf("failure not turned into EOF: %s", got)
	}
	if !stderrors.Is(s.Err(), errors.ErrTokenSource) {
		t.Fatalf("err got=%v want token source failure", s.Err())
	}
	calls := src.calls
	s.PeekAt(5)
	if src.calls != calls {
		t.Fatalf("source called again after failure")
	}
}

func TestParseReportsSourceFailure(t *testing.T) {
	src := &failingSource{l: lexer.New("class C { int x; }"), limit: 3}
	res, err := ParseCompilationUnit(src)
	if !stderrors.Is(err, errors.ErrTokenSource) {
		t.Fatalf("err got=%v want token source failure", err)
	}
	if res == nil || res.Unit == nil {
		t.Fatalf("no partial tree returned")
	}
	if len(res.Unit.Types()) != 1 || res.Unit.Types()[0].Name != "C" {
		t.Fatalf("partial tree lost the class")
	}
}
