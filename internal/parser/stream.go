package parser

import (
	"github.com/orizon-lang/csfront/internal/errors"
	"github.com/orizon-lang/csfront/internal/lexer"
	"github.com/orizon-lang/csfront/internal/position"
)

// TokenSource supplies tokens one at a time. After the first TokenEOF
// the source is not called again. A non-nil error means the source cannot
// continue; the stream treats it as end of input and the parse reports it.
type TokenSource interface {
	Next() (lexer.Token, error)
}

// compactThreshold is the number of consumed tokens kept in the buffer
// before the consumed prefix is dropped.
const compactThreshold = 256

// Stream is the committed token position of a parse plus the buffer of
// tokens read ahead of it. The buffer grows on demand for arbitrary
// lookahead; tokens behind the lookahead are discarded on Advance.
type Stream struct {
	src TokenSource

	buf  []lexer.Token // buf[0] holds the token with absolute index base
	base int
	pos  int // absolute index of the lookahead token

	current lexer.Token
	eof     lexer.Token
	atEOF   bool
	read    int
	err     error
}

// NewStream creates a stream reading from src.
func NewStream(src TokenSource) *Stream {
	return &Stream{src: src}
}

// Current returns the most recently consumed token. Before the first
// Advance it is the zero token.
func (s *Stream) Current() lexer.Token { return s.current }

// Lookahead returns the next unconsumed token.
func (s *Stream) Lookahead() lexer.Token { return s.at(s.pos) }

// Advance consumes the lookahead token.
func (s *Stream) Advance() {
	s.current = s.at(s.pos)
	s.pos++
	if s.pos-s.base > compactThreshold {
		n := s.pos - s.base
		if n > len(s.buf) {
			n = len(s.buf)
		}
		copy(s.buf, s.buf[n:])
		s.buf = s.buf[:len(s.buf)-n]
		s.base += n
	}
}

// Pos returns the absolute index of the lookahead token. It increases by
// one on every Advance and is used to detect progress.
func (s *Stream) Pos() int { return s.pos }

// Cursor returns a cursor positioned at the lookahead token.
func (s *Stream) Cursor() Cursor { return Cursor{s: s, i: s.pos} }

// StartPeekSession begins a peek session positioned at the lookahead.
func (s *Stream) StartPeekSession() *PeekSession {
	return &PeekSession{c: s.Cursor()}
}

// PeekAt returns the token n positions past the lookahead; PeekAt(0) is
// the lookahead itself.
func (s *Stream) PeekAt(n int) lexer.Token { return s.at(s.pos + n) }

// Err returns the latched token source failure, if any.
func (s *Stream) Err() error { return s.err }

// at returns the token with absolute index i, reading from the source as
// needed. Indexes past the end of input yield the EOF token.
func (s *Stream) at(i int) lexer.Token {
	for i >= s.base+len(s.buf) {
		if s.atEOF {
			return s.eof
		}
		s.fill()
	}
	if i < s.base {
		// Cursor outlived an Advance that compacted its token away.
		return s.eof
	}
	return s.buf[i-s.base]
}

func (s *Stream) fill() {
	tok, err := s.src.Next()
	if err != nil {
		s.err = errors.TokenSourceFailure(s.read, err)
		tok = lexer.Token{Type: lexer.TokenEOF, Span: s.lastSpan()}
		tok.Line, tok.Column = tok.Span.Start.Line, tok.Span.Start.Column
	}
	s.read++
	s.buf = append(s.buf, tok)
	if tok.Type == lexer.TokenEOF {
		s.atEOF = true
		s.eof = tok
	}
}

// lastSpan returns an empty span at the end of the last token read.
func (s *Stream) lastSpan() position.Span {
	if len(s.buf) == 0 {
		return position.Span{}
	}
	end := s.buf[len(s.buf)-1].Span.End
	return position.Span{Start: end, End: end}
}

// Cursor is a read-only position in a stream. Moving a cursor never
// changes what the parser has committed to. A cursor is valid until the
// next Advance of its stream.
type Cursor struct {
	s *Stream
	i int
}

// Token returns the token under the cursor.
func (c Cursor) Token() lexer.Token { return c.s.at(c.i) }

// Kind returns the type of the token under the cursor.
func (c Cursor) Kind() lexer.TokenType { return c.s.at(c.i).Type }

// Is reports whether the token under the cursor has type tt.
func (c Cursor) Is(tt lexer.TokenType) bool { return c.Kind() == tt }

// IsIdent reports whether the cursor is on the identifier text.
func (c Cursor) IsIdent(text string) bool { return c.Token().IsIdent(text) }

// Next returns the cursor one token further on.
func (c Cursor) Next() Cursor { return Cursor{s: c.s, i: c.i + 1} }

// Distance returns the number of tokens between from and c.
func (c Cursor) Distance(from Cursor) int { return c.i - from.i }

// PeekSession walks forward from the lookahead without consuming.
type PeekSession struct {
	c Cursor
}

// PeekNext advances the session by one token and returns it. The first
// call returns the token after the lookahead.
func (ps *PeekSession) PeekNext() lexer.Token {
	ps.c = ps.c.Next()
	return ps.c.Token()
}

// Cursor returns the session's current position.
func (ps *PeekSession) Cursor() Cursor { return ps.c }
