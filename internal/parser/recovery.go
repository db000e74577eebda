package parser

import (
	"strconv"

	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/lexer"
	"github.com/orizon-lang/csfront/internal/position"
)

// minErrDist is the number of tokens that must be consumed after a syntax
// error before the next one is reported.
const minErrDist = 2

// enter pushes prod onto the active production stack.
func (p *Parser) enter(prod Production) { p.prods = append(p.prods, prod) }

// leave pops the innermost active production.
func (p *Parser) leave() { p.prods = p.prods[:len(p.prods)-1] }

// nextToken consumes the lookahead.
func (p *Parser) nextToken() {
	p.s.Advance()
	p.errDist++
}

// la returns the lookahead token.
func (p *Parser) la() lexer.Token { return p.s.Lookahead() }

// lookaheadIs reports whether the lookahead has type tt.
func (p *Parser) lookaheadIs(tt lexer.TokenType) bool { return p.s.Lookahead().Type == tt }

// lookaheadIsIdent reports whether the lookahead is the identifier text.
func (p *Parser) lookaheadIsIdent(text string) bool { return p.s.Lookahead().IsIdent(text) }

// expect consumes a token of type tt. When the lookahead is something
// else, an expected-token error is reported and the parser resynchronizes.
// If resynchronization lands on tt it is consumed; otherwise parsing
// continues as though tt had been present.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.lookaheadIs(tt) {
		p.nextToken()
		return true
	}
	p.expectedError(tt)
	p.resync(NewTokenSet(tt))
	if p.lookaheadIs(tt) {
		p.nextToken()
		return true
	}
	return false
}

// expectIdent consumes an identifier and returns its text. A missing
// identifier yields "".
func (p *Parser) expectIdent() string {
	if p.lookaheadIs(lexer.TokenIdentifier) {
		name := p.la().Literal
		p.nextToken()
		return name
	}
	p.expectedError(lexer.TokenIdentifier)
	p.resync(NewTokenSet(lexer.TokenIdentifier))
	if p.lookaheadIs(lexer.TokenIdentifier) {
		name := p.la().Literal
		p.nextToken()
		return name
	}
	return ""
}

// expectWeak consumes tt if present. Otherwise it reports the missing
// token and skips to a token in follow without consuming it.
func (p *Parser) expectWeak(tt lexer.TokenType, follow TokenSet) {
	if p.lookaheadIs(tt) {
		p.nextToken()
		return
	}
	p.expectedError(tt)
	stop := p.syncSet(follow)
	for !stop.Has(p.la().Type) {
		p.nextToken()
	}
}

// weakSeparator handles the separator of a repetition. A present separator
// is consumed and the repetition continues. A token from follow ends the
// repetition silently. Anything else is reported as a missing separator;
// tokens are skipped until an element start, a follower or a token that
// an enclosing production can continue with, and the repetition continues
// only if an element start was found.
func (p *Parser) weakSeparator(sep lexer.TokenType, elemStart, follow TokenSet) bool {
	if p.lookaheadIs(sep) {
		p.nextToken()
		return true
	}
	if follow.Has(p.la().Type) || p.lookaheadIs(lexer.TokenEOF) {
		return false
	}
	p.expectedError(sep)
	stop := p.syncSet(follow)
	for !elemStart.Has(p.la().Type) && !stop.Has(p.la().Type) {
		p.nextToken()
	}
	return elemStart.Has(p.la().Type)
}

// optional consumes tt if it is the lookahead.
func (p *Parser) optional(tt lexer.TokenType) bool {
	if p.lookaheadIs(tt) {
		p.nextToken()
		return true
	}
	return false
}

// expectedError reports that tt was expected at the lookahead.
func (p *Parser) expectedError(tt lexer.TokenType) {
	p.syntaxError(diagnostics.CodeExpectedToken, strconv.Quote(tt.String()))
}

// invalidAlternative reports that the lookahead starts no alternative of
// prod and resynchronizes.
func (p *Parser) invalidAlternative(prod Production) {
	p.syntaxError(diagnostics.CodeInvalidAlternative, prod.String())
	p.resync(TokenSet{})
}

// syntaxError reports a syntax error at the lookahead unless another one
// was reported fewer than minErrDist tokens ago.
func (p *Parser) syntaxError(code diagnostics.Code, args ...any) {
	if p.errDist >= minErrDist {
		p.diags.Report(p.withFile(diagnostics.New(code, p.la().Span, args...)))
	}
	p.errDist = 0
}

// advisory reports a diagnostic that needs no recovery.
func (p *Parser) advisory(code diagnostics.Code, span position.Span, args ...any) {
	p.diags.Report(p.withFile(diagnostics.New(code, span, args...)))
}

func (p *Parser) withFile(d diagnostics.Diagnostic) diagnostics.Diagnostic {
	if d.Filename == "" {
		d.Filename = p.filename
	}
	return d
}

// syncSet returns the union of the follow sets of all active productions
// plus extra and EOF.
func (p *Parser) syncSet(extra TokenSet) TokenSet {
	stop := extra
	for _, prod := range p.prods {
		stop = stop.Union(p.follow.Follow(prod))
	}
	stop.Add(lexer.TokenEOF)
	return stop
}

// resync skips tokens until the lookahead is in the sync set and returns
// the number of tokens skipped.
func (p *Parser) resync(extra TokenSet) int {
	stop := p.syncSet(extra)
	n := 0
	for !stop.Has(p.la().Type) {
		p.nextToken()
		n++
	}
	return n
}

// ensureProgress consumes one token if a repetition starting at position
// start consumed nothing, so that a loop over a failing production always
// terminates.
func (p *Parser) ensureProgress(start int) {
	if p.s.Pos() == start && !p.lookaheadIs(lexer.TokenEOF) {
		p.nextToken()
	}
}
