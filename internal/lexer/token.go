package lexer

import (
	"fmt"

	"github.com/orizon-lang/csfront/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) && tokenNames[tt] != "" {
		return tokenNames[tt]
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types. The order is significant: keyword tokens form one
// contiguous block so that set membership stays a range check.
const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Identifiers and literals
	TokenIdentifier
	TokenInteger
	TokenReal
	TokenChar
	TokenString

	// Operators and punctuation
	TokenAssign       // =
	TokenPlus         // +
	TokenMinus        // -
	TokenMul          // *
	TokenDiv          // /
	TokenMod          // %
	TokenColon        // :
	TokenDoubleColon  // ::
	TokenSemicolon    // ;
	TokenQuestion     // ?
	TokenDoubleQuest  // ??
	TokenComma        // ,
	TokenDot          // .
	TokenLBrace       // {
	TokenRBrace       // }
	TokenLBracket     // [
	TokenRBracket     // ]
	TokenLParen       // (
	TokenRParen       // )
	TokenGt           // >
	TokenLt           // <
	TokenNot          // !
	TokenAndAnd       // &&
	TokenOrOr         // ||
	TokenTilde        // ~
	TokenAmp          // &
	TokenPipe         // |
	TokenCaret        // ^
	TokenIncrement    // ++
	TokenDecrement    // --
	TokenEq           // ==
	TokenNe           // !=
	TokenGe           // >=
	TokenLe           // <=
	TokenShl          // <<
	TokenPlusAssign   // +=
	TokenMinusAssign  // -=
	TokenMulAssign    // *=
	TokenDivAssign    // /=
	TokenModAssign    // %=
	TokenAndAssign    // &=
	TokenOrAssign     // |=
	TokenXorAssign    // ^=
	TokenShlAssign    // <<=
	TokenArrow        // ->

	// Keywords
	keywordBegin
	TokenAbstract
	TokenAs
	TokenBase
	TokenBool
	TokenBreak
	TokenByte
	TokenCase
	TokenCatch
	TokenCharKw
	TokenChecked
	TokenClass
	TokenConst
	TokenContinue
	TokenDecimal
	TokenDefault
	TokenDelegate
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenEvent
	TokenExplicit
	TokenExtern
	TokenFalse
	TokenFinally
	TokenFixed
	TokenFloat
	TokenFor
	TokenForeach
	TokenGoto
	TokenIf
	TokenImplicit
	TokenIn
	TokenInt
	TokenInterface
	TokenInternal
	TokenIs
	TokenLock
	TokenLong
	TokenNamespace
	TokenNew
	TokenNull
	TokenObject
	TokenOperator
	TokenOut
	TokenOverride
	TokenParams
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReadonly
	TokenRef
	TokenReturn
	TokenSbyte
	TokenSealed
	TokenShort
	TokenSizeof
	TokenStackalloc
	TokenStatic
	TokenStringKw
	TokenStruct
	TokenSwitch
	TokenThis
	TokenThrow
	TokenTrue
	TokenTry
	TokenTypeof
	TokenUint
	TokenUlong
	TokenUnchecked
	TokenUnsafe
	TokenUshort
	TokenUsing
	TokenVirtual
	TokenVoid
	TokenVolatile
	TokenWhile
	keywordEnd

	// TokenCount is the number of token types; sets over TokenType use it as their size.
	TokenCount
)

// tokenNames provides string representations for token types. Punctuation
// and keywords render as their source spelling so that diagnostics read
// naturally ("\"}\" expected").
var tokenNames = [...]string{
	TokenEOF:        "EOF",
	TokenIllegal:    "ILLEGAL",
	TokenIdentifier: "ident",
	TokenInteger:    "integer literal",
	TokenReal:       "real literal",
	TokenChar:       "char literal",
	TokenString:     "string literal",

	TokenAssign:      "=",
	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenMul:         "*",
	TokenDiv:         "/",
	TokenMod:         "%",
	TokenColon:       ":",
	TokenDoubleColon: "::",
	TokenSemicolon:   ";",
	TokenQuestion:    "?",
	TokenDoubleQuest: "??",
	TokenComma:       ",",
	TokenDot:         ".",
	TokenLBrace:      "{",
	TokenRBrace:      "}",
	TokenLBracket:    "[",
	TokenRBracket:    "]",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenGt:          ">",
	TokenLt:          "<",
	TokenNot:         "!",
	TokenAndAnd:      "&&",
	TokenOrOr:        "||",
	TokenTilde:       "~",
	TokenAmp:         "&",
	TokenPipe:        "|",
	TokenCaret:       "^",
	TokenIncrement:   "++",
	TokenDecrement:   "--",
	TokenEq:          "==",
	TokenNe:          "!=",
	TokenGe:          ">=",
	TokenLe:          "<=",
	TokenShl:         "<<",
	TokenPlusAssign:  "+=",
	TokenMinusAssign: "-=",
	TokenMulAssign:   "*=",
	TokenDivAssign:   "/=",
	TokenModAssign:   "%=",
	TokenAndAssign:   "&=",
	TokenOrAssign:    "|=",
	TokenXorAssign:   "^=",
	TokenShlAssign:   "<<=",
	TokenArrow:       "->",

	TokenAbstract:   "abstract",
	TokenAs:         "as",
	TokenBase:       "base",
	TokenBool:       "bool",
	TokenBreak:      "break",
	TokenByte:       "byte",
	TokenCase:       "case",
	TokenCatch:      "catch",
	TokenCharKw:     "char",
	TokenChecked:    "checked",
	TokenClass:      "class",
	TokenConst:      "const",
	TokenContinue:   "continue",
	TokenDecimal:    "decimal",
	TokenDefault:    "default",
	TokenDelegate:   "delegate",
	TokenDo:         "do",
	TokenDouble:     "double",
	TokenElse:       "else",
	TokenEnum:       "enum",
	TokenEvent:      "event",
	TokenExplicit:   "explicit",
	TokenExtern:     "extern",
	TokenFalse:      "false",
	TokenFinally:    "finally",
	TokenFixed:      "fixed",
	TokenFloat:      "float",
	TokenFor:        "for",
	TokenForeach:    "foreach",
	TokenGoto:       "goto",
	TokenIf:         "if",
	TokenImplicit:   "implicit",
	TokenIn:         "in",
	TokenInt:        "int",
	TokenInterface:  "interface",
	TokenInternal:   "internal",
	TokenIs:         "is",
	TokenLock:       "lock",
	TokenLong:       "long",
	TokenNamespace:  "namespace",
	TokenNew:        "new",
	TokenNull:       "null",
	TokenObject:     "object",
	TokenOperator:   "operator",
	TokenOut:        "out",
	TokenOverride:   "override",
	TokenParams:     "params",
	TokenPrivate:    "private",
	TokenProtected:  "protected",
	TokenPublic:     "public",
	TokenReadonly:   "readonly",
	TokenRef:        "ref",
	TokenReturn:     "return",
	TokenSbyte:      "sbyte",
	TokenSealed:     "sealed",
	TokenShort:      "short",
	TokenSizeof:     "sizeof",
	TokenStackalloc: "stackalloc",
	TokenStatic:     "static",
	TokenStringKw:   "string",
	TokenStruct:     "struct",
	TokenSwitch:     "switch",
	TokenThis:       "this",
	TokenThrow:      "throw",
	TokenTrue:       "true",
	TokenTry:        "try",
	TokenTypeof:     "typeof",
	TokenUint:       "uint",
	TokenUlong:      "ulong",
	TokenUnchecked:  "unchecked",
	TokenUnsafe:     "unsafe",
	TokenUshort:     "ushort",
	TokenUsing:      "using",
	TokenVirtual:    "virtual",
	TokenVoid:       "void",
	TokenVolatile:   "volatile",
	TokenWhile:      "while",
	TokenCount:      "",
}

// keywords maps reserved words to their token types
var keywords = func() map[string]TokenType {
	m := make(map[string]TokenType, int(keywordEnd-keywordBegin))
	for tt := keywordBegin + 1; tt < keywordEnd; tt++ {
		m[tokenNames[tt]] = tt
	}
	return m
}()

// LookupIdent returns the keyword token for ident, or TokenIdentifier.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return TokenIdentifier
}

// IsKeyword reports whether tt is a reserved word.
func (tt TokenType) IsKeyword() bool {
	return tt > keywordBegin && tt < keywordEnd
}

// IsLiteral reports whether tt carries a literal value. The keyword
// literals true, false and null count.
func (tt TokenType) IsLiteral() bool {
	switch tt {
	case TokenInteger, TokenReal, TokenChar, TokenString, TokenTrue, TokenFalse, TokenNull:
		return true
	}
	return false
}

// Token represents a lexical token with position information
type Token struct {
	Type    TokenType
	Literal string // source text as written
	Value   any    // decoded literal value; nil for non-literals
	Span    position.Span

	Line   int
	Column int
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}",
		t.Type, t.Literal, t.Line, t.Column)
}

// Is reports whether t has type tt.
func (t Token) Is(tt TokenType) bool { return t.Type == tt }

// IsIdent reports whether t is an identifier spelled text. Contextual
// keywords are matched this way.
func (t Token) IsIdent(text string) bool {
	return t.Type == TokenIdentifier && t.Literal == text
}
