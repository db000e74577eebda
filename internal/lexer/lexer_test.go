package lexer

import (
	"testing"
)

func collect(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input)
	var toks []Token
	for i := 0; i < 10000; i++ {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks
		}
	}
	t.Fatalf("lexer did not reach EOF")
	return nil
}

func types(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestNextTokenOperators(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{"a >> b", []TokenType{TokenIdentifier, TokenGt, TokenGt, TokenIdentifier, TokenEOF}},
		{"a >>= b", []TokenType{TokenIdentifier, TokenGt, TokenGe, TokenIdentifier, TokenEOF}},
		{"a << b <<= c", []TokenType{TokenIdentifier, TokenShl, TokenIdentifier, TokenShlAssign, TokenIdentifier, TokenEOF}},
		{"List<List<int>>", []TokenType{TokenIdentifier, TokenLt, TokenIdentifier, TokenLt, TokenInt, TokenGt, TokenGt, TokenEOF}},
		{"x ?? y ? : ::", []TokenType{TokenIdentifier, TokenDoubleQuest, TokenIdentifier, TokenQuestion, TokenColon, TokenDoubleColon, TokenEOF}},
		{"p->q ++ -- && || != ==", []TokenType{TokenIdentifier, TokenArrow, TokenIdentifier, TokenIncrement, TokenDecrement, TokenAndAnd, TokenOrOr, TokenNe, TokenEq, TokenEOF}},
		{"+= -= *= /= %= &= |= ^=", []TokenType{TokenPlusAssign, TokenMinusAssign, TokenMulAssign, TokenDivAssign, TokenModAssign, TokenAndAssign, TokenOrAssign, TokenXorAssign, TokenEOF}},
	}

	for _, tt := range tests {
		got := types(collect(t, tt.input))
		if len(got) != len(tt.want) {
			t.Fatalf("%q: got=%v want=%v", tt.input, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%q: token %d got=%s want=%s", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestKeywordsAndContextualWords(t *testing.T) {
	toks := collect(t, "class where yield get @class partial")
	want := []TokenType{TokenClass, TokenIdentifier, TokenIdentifier, TokenIdentifier, TokenIdentifier, TokenIdentifier, TokenEOF}
	for i, tok := range toks {
		if tok.Type != want[i] {
			t.Fatalf("token %d got=%s want=%s", i, tok.Type, want[i])
		}
	}
	if !toks[1].IsIdent("where") {
		t.Fatalf("IsIdent(where) failed for %v", toks[1])
	}
	if toks[4].Literal != "class" {
		t.Fatalf("verbatim identifier literal got=%q want=%q", toks[4].Literal, "class")
	}
}

func TestLiteralValues(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
		value any
	}{
		{"42", TokenInteger, int32(42)},
		{"42u", TokenInteger, uint32(42)},
		{"42L", TokenInteger, int64(42)},
		{"0xFFUL", TokenInteger, uint64(255)},
		{"4294967296", TokenInteger, int64(4294967296)},
		{"1.5", TokenReal, 1.5},
		{".5", TokenReal, 0.5},
		{"2f", TokenReal, float32(2)},
		{"1e3", TokenReal, 1000.0},
		{`"a\tb"`, TokenString, "a\tb"},
		{`@"c:\dir ""q"""`, TokenString, `c:\dir "q"`},
		{`'x'`, TokenChar, 'x'},
		{`'\n'`, TokenChar, '\n'},
		{`'\u0041'`, TokenChar, 'A'},
	}

	for _, tt := range tests {
		toks := collect(t, tt.input)
		if toks[0].Type != tt.typ {
			t.Fatalf("%s: type got=%s want=%s", tt.input, toks[0].Type, tt.typ)
		}
		if toks[0].Value != tt.value {
			t.Fatalf("%s: value got=%#v want=%#v", tt.input, toks[0].Value, tt.value)
		}
		if toks[0].Literal != tt.input {
			t.Fatalf("%s: literal got=%q", tt.input, toks[0].Literal)
		}
	}
}

func TestTriviaAndPositions(t *testing.T) {
	src := "#region x\n// line\nint /* block */ a;\n  #endregion\n"
	toks := collect(t, src)
	want := []TokenType{TokenInt, TokenIdentifier, TokenSemicolon, TokenEOF}
	if len(toks) != len(want) {
		t.Fatalf("got=%v want=%v", types(toks), want)
	}
	if toks[0].Line != 3 || toks[0].Column != 1 {
		t.Fatalf("int position got=%d:%d want=3:1", toks[0].Line, toks[0].Column)
	}
	if toks[1].Column != 17 {
		t.Fatalf("a column got=%d want=17", toks[1].Column)
	}
	if toks[1].Span.End.Offset-toks[1].Span.Start.Offset != 1 {
		t.Fatalf("a span got=%s", toks[1].Span)
	}
}

func TestCommentsAreCounted(t *testing.T) {
	l := New("#region x\n// line\nint /* block */ a; // tail\n  #endregion\nstring s = \"// not a comment\";")
	for l.NextToken().Type != TokenEOF {
	}
	if got := l.Comments(); got != 5 {
		t.Fatalf("comments got=%d want=5", got)
	}
}

func TestEOFRepeatsAndErrors(t *testing.T) {
	l := New("a $")
	if tok := l.NextToken(); tok.Type != TokenIdentifier {
		t.Fatalf("got=%s", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != TokenIllegal || tok.Literal != "$" {
		t.Fatalf("illegal got=%v", tok)
	}
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != TokenEOF {
			t.Fatalf("EOF repeat %d got=%s", i, tok.Type)
		}
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("errors got=%d want=1", len(l.Errors()))
	}
}

func TestTokenTypeString(t *testing.T) {
	if got := TokenRBrace.String(); got != "}" {
		t.Fatalf("got=%q", got)
	}
	if got := TokenNamespace.String(); got != "namespace" {
		t.Fatalf("got=%q", got)
	}
	if !TokenVoid.IsKeyword() || TokenIdentifier.IsKeyword() {
		t.Fatalf("IsKeyword mismatch")
	}
	if LookupIdent("foreach") != TokenForeach || LookupIdent("yield") != TokenIdentifier {
		t.Fatalf("LookupIdent mismatch")
	}
}
