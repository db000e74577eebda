// Package lexer implements the C# 2.0 lexical analyzer used as the token
// source of the csfront parser.
//
// The lexer never combines two '>' characters: ">>" is emitted as two
// TokenGt tokens and ">>=" as TokenGt followed by TokenGe. The parser forms
// shift operators itself so that a single '>' can close a nested generic
// argument list.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/orizon-lang/csfront/internal/position"
)

// LexicalError describes a malformed token. Lexical errors do not stop
// scanning; the offending text is returned as a TokenIllegal token.
type LexicalError struct {
	Span    position.Span
	Message string
}

func (e LexicalError) Error() string {
	return e.Span.Start.String() + ": " + e.Message
}

// Lexer represents the lexical analyzer
type Lexer struct {
	input        string
	filename     string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number
	atLineStart  bool // only whitespace seen since the last newline

	comments int // comments and preprocessor lines skipped
	errors   []LexicalError
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a new lexer instance with filename for positions
func NewWithFilename(input, filename string) *Lexer {
	l := &Lexer{
		input:       input,
		filename:    filename,
		line:        1,
		column:      0,
		atLineStart: true,
	}
	// Skip a UTF-8 byte order mark.
	if strings.HasPrefix(input, "\uFEFF") {
		l.position = len("\uFEFF")
		l.readPosition = l.position
	}
	l.readChar()
	return l
}

// Errors returns the lexical errors found so far.
func (l *Lexer) Errors() []LexicalError {
	return l.errors
}

// Comments returns how many comments and preprocessor lines were skipped
// so far.
func (l *Lexer) Comments() int {
	return l.comments
}

// readChar reads the next character and advances position. Once the end
// of input is reached further calls are no-ops.
func (l *Lexer) readChar() {
	if l.position >= len(l.input) && l.readPosition > l.position {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
		l.atLineStart = true
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL character represents "EOF"
		l.readPosition = len(l.input)
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) currentPosition() position.Position {
	return position.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.position,
	}
}

// skipTrivia skips whitespace, comments and preprocessor lines.
func (l *Lexer) skipTrivia() {
	for !l.atEOF() {
		switch {
		case l.ch == '\n':
			l.readChar()
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v':
			l.readChar()
		case l.ch == '#' && l.atLineStart:
			l.comments++
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '/':
			l.comments++
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.comments++
			start := l.currentPosition()
			l.readChar()
			l.readChar()
			for {
				if l.atEOF() {
					l.addError(start, "unterminated block comment")
					return
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					break
				}
				l.readChar()
			}
		default:
			return
		}
	}
}

// Next implements the parser's token source contract.
func (l *Lexer) Next() (Token, error) {
	return l.NextToken(), nil
}

// NextToken scans the input and returns the next token with full position information
func (l *Lexer) NextToken() Token {
	l.skipTrivia()
	l.atLineStart = false

	start := l.currentPosition()
	if l.atEOF() {
		return l.finish(TokenEOF, start, nil)
	}

	switch l.ch {
	case '=':
		return l.operator(start, TokenAssign, '=', TokenEq)
	case '+':
		if l.peekChar() == '+' {
			return l.fixed(start, TokenIncrement, 2)
		}
		return l.operator(start, TokenPlus, '=', TokenPlusAssign)
	case '-':
		switch l.peekChar() {
		case '-':
			return l.fixed(start, TokenDecrement, 2)
		case '>':
			return l.fixed(start, TokenArrow, 2)
		}
		return l.operator(start, TokenMinus, '=', TokenMinusAssign)
	case '*':
		return l.operator(start, TokenMul, '=', TokenMulAssign)
	case '/':
		return l.operator(start, TokenDiv, '=', TokenDivAssign)
	case '%':
		return l.operator(start, TokenMod, '=', TokenModAssign)
	case '^':
		return l.operator(start, TokenCaret, '=', TokenXorAssign)
	case '!':
		return l.operator(start, TokenNot, '=', TokenNe)
	case '&':
		if l.peekChar() == '&' {
			return l.fixed(start, TokenAndAnd, 2)
		}
		return l.operator(start, TokenAmp, '=', TokenAndAssign)
	case '|':
		if l.peekChar() == '|' {
			return l.fixed(start, TokenOrOr, 2)
		}
		return l.operator(start, TokenPipe, '=', TokenOrAssign)
	case '<':
		if l.peekChar() == '<' {
			if l.readPosition+1 < len(l.input) && l.input[l.readPosition+1] == '=' {
				return l.fixed(start, TokenShlAssign, 3)
			}
			return l.fixed(start, TokenShl, 2)
		}
		return l.operator(start, TokenLt, '=', TokenLe)
	case '>':
		return l.operator(start, TokenGt, '=', TokenGe)
	case ':':
		return l.operator(start, TokenColon, ':', TokenDoubleColon)
	case '?':
		return l.operator(start, TokenQuestion, '?', TokenDoubleQuest)
	case ';':
		return l.fixed(start, TokenSemicolon, 1)
	case ',':
		return l.fixed(start, TokenComma, 1)
	case '{':
		return l.fixed(start, TokenLBrace, 1)
	case '}':
		return l.fixed(start, TokenRBrace, 1)
	case '[':
		return l.fixed(start, TokenLBracket, 1)
	case ']':
		return l.fixed(start, TokenRBracket, 1)
	case '(':
		return l.fixed(start, TokenLParen, 1)
	case ')':
		return l.fixed(start, TokenRParen, 1)
	case '~':
		return l.fixed(start, TokenTilde, 1)
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber(start)
		}
		return l.fixed(start, TokenDot, 1)
	case '"':
		return l.readString(start, false)
	case '\'':
		return l.readCharLiteral(start)
	case '@':
		switch next := l.peekChar(); {
		case next == '"':
			l.readChar()
			return l.readString(start, true)
		case isIdentStart(next) || next >= utf8.RuneSelf:
			l.readChar()
			ident := l.readIdentifier()
			tok := l.finish(TokenIdentifier, start, nil)
			tok.Literal = ident
			return tok
		}
	}

	if isDigit(l.ch) {
		return l.readNumber(start)
	}
	if isIdentStart(l.ch) || l.ch >= utf8.RuneSelf {
		if ident := l.readIdentifier(); ident != "" {
			return l.finish(LookupIdent(ident), start, nil)
		}
	}

	// Unknown character: consume one rune and report it.
	_, size := utf8.DecodeRuneInString(l.input[l.position:])
	for i := 0; i < size; i++ {
		l.readChar()
	}
	tok := l.finish(TokenIllegal, start, nil)
	l.addError(start, "invalid character "+strconv.Quote(tok.Literal))
	return tok
}

// operator emits single or, when the next char is second, the compound token.
func (l *Lexer) operator(start position.Position, single TokenType, second byte, compound TokenType) Token {
	if l.peekChar() == second {
		return l.fixed(start, compound, 2)
	}
	return l.fixed(start, single, 1)
}

func (l *Lexer) fixed(start position.Position, tt TokenType, width int) Token {
	for i := 0; i < width; i++ {
		l.readChar()
	}
	return l.finish(tt, start, nil)
}

// finish builds a token covering input[start:current].
func (l *Lexer) finish(tt TokenType, start position.Position, value any) Token {
	end := l.currentPosition()
	if l.atEOF() {
		end.Offset = len(l.input)
	}
	return Token{
		Type:    tt,
		Literal: l.input[start.Offset:end.Offset],
		Value:   value,
		Span:    position.Span{Start: start, End: end},
		Line:    start.Line,
		Column:  start.Column,
	}
}

func (l *Lexer) addError(at position.Position, msg string) {
	end := l.currentPosition()
	if end.Offset < at.Offset {
		end = at
	}
	l.errors = append(l.errors, LexicalError{Span: position.Span{Start: at, End: end}, Message: msg})
}

// readIdentifier reads an ASCII or Unicode identifier.
func (l *Lexer) readIdentifier() string {
	begin := l.position
	for !l.atEOF() {
		if l.ch < utf8.RuneSelf {
			if !isIdentPart(l.ch) {
				break
			}
			l.readChar()
			continue
		}
		r, size := utf8.DecodeRuneInString(l.input[l.position:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.Is(unicode.Mn, r) && !unicode.Is(unicode.Pc, r) {
			break
		}
		for i := 0; i < size; i++ {
			l.readChar()
		}
	}
	return l.input[begin:l.position]
}

// readNumber reads integer and real literals including suffixes.
func (l *Lexer) readNumber(start position.Position) Token {
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		digits := l.position
		for isHexDigit(l.ch) {
			l.readChar()
		}
		text := l.input[digits:l.position]
		suffix := l.readIntegerSuffix()
		v, err := strconv.ParseUint(text, 16, 64)
		if err != nil || text == "" {
			l.addError(start, "malformed hexadecimal literal")
			return l.finish(TokenInteger, start, int64(0))
		}
		return l.finish(TokenInteger, start, integerValue(v, suffix))
	}

	real := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		real = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			real = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	text := l.input[start.Offset:l.position]

	switch l.ch {
	case 'f', 'F':
		l.readChar()
		v, _ := strconv.ParseFloat(text, 32)
		return l.finish(TokenReal, start, float32(v))
	case 'd', 'D':
		l.readChar()
		v, _ := strconv.ParseFloat(text, 64)
		return l.finish(TokenReal, start, v)
	case 'm', 'M':
		l.readChar()
		v, _ := strconv.ParseFloat(text, 64)
		return l.finish(TokenReal, start, v)
	}
	if real {
		v, _ := strconv.ParseFloat(text, 64)
		return l.finish(TokenReal, start, v)
	}

	suffix := l.readIntegerSuffix()
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		l.addError(start, "integer literal out of range")
		return l.finish(TokenInteger, start, int64(0))
	}
	return l.finish(TokenInteger, start, integerValue(v, suffix))
}

func (l *Lexer) readIntegerSuffix() string {
	begin := l.position
	for i := 0; i < 2 && (l.ch == 'u' || l.ch == 'U' || l.ch == 'l' || l.ch == 'L'); i++ {
		l.readChar()
	}
	return strings.ToLower(l.input[begin:l.position])
}

// integerValue picks the smallest of int32, uint32, int64, uint64 that
// holds v, honoring the literal's suffix.
func integerValue(v uint64, suffix string) any {
	unsigned := strings.Contains(suffix, "u")
	long := strings.Contains(suffix, "l")
	switch {
	case !unsigned && !long && v <= 1<<31-1:
		return int32(v)
	case !long && v <= 1<<32-1:
		return uint32(v)
	case !unsigned && v <= 1<<63-1:
		return int64(v)
	default:
		return v
	}
}

// readString reads a regular or verbatim string literal; l.ch is the
// opening quote.
func (l *Lexer) readString(start position.Position, verbatim bool) Token {
	var sb strings.Builder
	l.readChar() // opening quote
	for {
		if l.atEOF() || (!verbatim && l.ch == '\n') {
			l.addError(start, "unterminated string literal")
			return l.finish(TokenString, start, sb.String())
		}
		if l.ch == '"' {
			if verbatim && l.peekChar() == '"' {
				sb.WriteByte('"')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			return l.finish(TokenString, start, sb.String())
		}
		if !verbatim && l.ch == '\\' {
			sb.WriteString(l.readEscape(start))
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
}

// readCharLiteral reads a character literal; l.ch is the opening quote.
func (l *Lexer) readCharLiteral(start position.Position) Token {
	l.readChar()
	var text string
	switch {
	case l.ch == '\\':
		text = l.readEscape(start)
	case l.ch == '\'' || l.ch == '\n' || l.atEOF():
		l.addError(start, "empty character literal")
	default:
		_, size := utf8.DecodeRuneInString(l.input[l.position:])
		text = l.input[l.position : l.position+size]
		for i := 0; i < size; i++ {
			l.readChar()
		}
	}
	if l.ch != '\'' {
		l.addError(start, "unterminated character literal")
		for !l.atEOF() && l.ch != '\'' && l.ch != '\n' {
			l.readChar()
		}
	}
	if l.ch == '\'' {
		l.readChar()
	}
	r, _ := utf8.DecodeRuneInString(text)
	return l.finish(TokenChar, start, r)
}

// readEscape decodes one escape sequence; l.ch is the backslash.
func (l *Lexer) readEscape(start position.Position) string {
	l.readChar()
	c := l.ch
	l.readChar()
	switch c {
	case '\'', '"', '\\':
		return string(c)
	case '0':
		return "\x00"
	case 'a':
		return "\a"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'n':
		return "\n"
	case 'r':
		return "\r"
	case 't':
		return "\t"
	case 'v':
		return "\v"
	case 'x', 'u', 'U':
		limit := 4
		if c == 'U' {
			limit = 8
		}
		begin := l.position
		for i := 0; i < limit && isHexDigit(l.ch); i++ {
			l.readChar()
		}
		v, err := strconv.ParseUint(l.input[begin:l.position], 16, 32)
		if err != nil {
			l.addError(start, "malformed unicode escape")
			return ""
		}
		return string(rune(v))
	}
	l.addError(start, "unknown escape sequence \\"+string(c))
	return string(c)
}

func isIdentStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// isDigit checks if character is ASCII digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
