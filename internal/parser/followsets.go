package parser

import (
	"strings"
	"sync"

	"github.com/orizon-lang/csfront/internal/lexer"
)

// TokenSet is a set of token types.
type TokenSet [(lexer.TokenCount + 63) / 64]uint64

// NewTokenSet returns the set holding types.
func NewTokenSet(types ...lexer.TokenType) TokenSet {
	var s TokenSet
	for _, tt := range types {
		s.Add(tt)
	}
	return s
}

// Add inserts tt.
func (s *TokenSet) Add(tt lexer.TokenType) { s[tt/64] |= 1 << (tt % 64) }

// Has reports whether tt is in the set.
func (s TokenSet) Has(tt lexer.TokenType) bool {
	if tt < 0 || tt >= lexer.TokenCount {
		return false
	}
	return s[tt/64]&(1<<(tt%64)) != 0
}

// Union returns the union of s and others.
func (s TokenSet) Union(others ...TokenSet) TokenSet {
	for _, o := range others {
		for i := range s {
			s[i] |= o[i]
		}
	}
	return s
}

// String lists the members in token order.
func (s TokenSet) String() string {
	var names []string
	for tt := lexer.TokenType(0); tt < lexer.TokenCount; tt++ {
		if s.Has(tt) {
			names = append(names, tt.String())
		}
	}
	return "{" + strings.Join(names, " ") + "}"
}

// Production names a nonterminal for error recovery. The parser keeps a
// stack of the active productions; resynchronization skips to a token in
// the follow set of any of them.
type Production int

const (
	ProdCompilationUnit Production = iota
	ProdUsingDirective
	ProdNamespaceMember
	ProdAttributeSection
	ProdTypeDeclaration
	ProdTypeParameters
	ProdConstraints
	ProdClassMember
	ProdEnumBody
	ProdFormalParameters
	ProdAccessors
	ProdBlock
	ProdStatement
	ProdSwitchSection
	ProdExpression
	ProdArguments
	ProdType

	productionCount
)

var productionNames = [...]string{
	ProdCompilationUnit:  "compilation unit",
	ProdUsingDirective:   "using directive",
	ProdNamespaceMember:  "namespace member declaration",
	ProdAttributeSection: "attribute section",
	ProdTypeDeclaration:  "type declaration",
	ProdTypeParameters:   "type parameter list",
	ProdConstraints:      "type parameter constraint",
	ProdClassMember:      "class member declaration",
	ProdEnumBody:         "enum member declaration",
	ProdFormalParameters: "formal parameter",
	ProdAccessors:        "accessor declaration",
	ProdBlock:            "block",
	ProdStatement:        "statement",
	ProdSwitchSection:    "switch section",
	ProdExpression:       "expression",
	ProdArguments:        "argument",
	ProdType:             "type",
}

func (p Production) String() string {
	if p >= 0 && p < productionCount {
		return productionNames[p]
	}
	return "production"
}

// FollowTable maps each production to the tokens that may follow it.
// A table is immutable once built and safe to share between parsers.
type FollowTable struct {
	rows [productionCount]TokenSet
}

// Follow returns the follow set of prod.
func (ft *FollowTable) Follow(prod Production) TokenSet { return ft.rows[prod] }

// WithRow returns a copy of ft with the follow set of prod replaced.
func (ft *FollowTable) WithRow(prod Production, set TokenSet) *FollowTable {
	out := *ft
	out.rows[prod] = set
	return &out
}

var (
	modifierTokens = NewTokenSet(
		lexer.TokenNew, lexer.TokenPublic, lexer.TokenProtected, lexer.TokenInternal,
		lexer.TokenPrivate, lexer.TokenAbstract, lexer.TokenVirtual, lexer.TokenSealed,
		lexer.TokenStatic, lexer.TokenOverride, lexer.TokenReadonly, lexer.TokenExtern,
		lexer.TokenVolatile, lexer.TokenUnsafe,
	)
	typeDeclStart = NewTokenSet(
		lexer.TokenClass, lexer.TokenStruct, lexer.TokenInterface, lexer.TokenEnum,
		lexer.TokenDelegate, lexer.TokenLBracket, lexer.TokenIdentifier,
	).Union(modifierTokens)
	namespaceMemberStart = NewTokenSet(lexer.TokenNamespace, lexer.TokenUsing).Union(typeDeclStart)
	memberStart          = NewTokenSet(
		lexer.TokenConst, lexer.TokenEvent, lexer.TokenImplicit, lexer.TokenExplicit,
		lexer.TokenTilde, lexer.TokenFixed,
	).Union(typeDeclStart, builtinTypes)
	expressionStart = NewTokenSet(
		lexer.TokenIdentifier, lexer.TokenInteger, lexer.TokenReal, lexer.TokenChar,
		lexer.TokenString, lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNull,
		lexer.TokenLParen, lexer.TokenPlus, lexer.TokenMinus, lexer.TokenNot,
		lexer.TokenTilde, lexer.TokenMul, lexer.TokenAmp, lexer.TokenIncrement,
		lexer.TokenDecrement, lexer.TokenNew, lexer.TokenThis, lexer.TokenBase,
		lexer.TokenTypeof, lexer.TokenSizeof, lexer.TokenDefault, lexer.TokenChecked,
		lexer.TokenUnchecked, lexer.TokenDelegate, lexer.TokenStackalloc,
	).Union(builtinTypes)
	statementStart = NewTokenSet(
		lexer.TokenLBrace, lexer.TokenSemicolon, lexer.TokenConst, lexer.TokenIf,
		lexer.TokenSwitch, lexer.TokenWhile, lexer.TokenDo, lexer.TokenFor,
		lexer.TokenForeach, lexer.TokenBreak, lexer.TokenContinue, lexer.TokenGoto,
		lexer.TokenReturn, lexer.TokenThrow, lexer.TokenTry, lexer.TokenLock,
		lexer.TokenUsing, lexer.TokenFixed, lexer.TokenUnsafe,
	).Union(expressionStart)
	expressionEnd = NewTokenSet(
		lexer.TokenSemicolon, lexer.TokenComma, lexer.TokenRParen, lexer.TokenRBracket,
		lexer.TokenRBrace, lexer.TokenColon,
	)
)

// NewFollowTable builds the follow sets of the C# 2.0 grammar.
func NewFollowTable() *FollowTable {
	ft := &FollowTable{}
	eof := NewTokenSet(lexer.TokenEOF)
	closeBrace := NewTokenSet(lexer.TokenRBrace)

	ft.rows[ProdCompilationUnit] = eof
	ft.rows[ProdUsingDirective] = namespaceMemberStart.Union(eof, closeBrace)
	ft.rows[ProdNamespaceMember] = namespaceMemberStart.Union(eof, closeBrace)
	ft.rows[ProdAttributeSection] = memberStart.Union(
		NewTokenSet(lexer.TokenRBracket, lexer.TokenRef, lexer.TokenOut, lexer.TokenParams),
		namespaceMemberStart, eof)
	ft.rows[ProdTypeDeclaration] = memberStart.Union(namespaceMemberStart, eof, closeBrace,
		NewTokenSet(lexer.TokenSemicolon))
	ft.rows[ProdTypeParameters] = NewTokenSet(
		lexer.TokenGt, lexer.TokenLParen, lexer.TokenLBrace, lexer.TokenColon,
		lexer.TokenSemicolon, lexer.TokenIdentifier,
	)
	ft.rows[ProdConstraints] = NewTokenSet(
		lexer.TokenLBrace, lexer.TokenSemicolon, lexer.TokenIdentifier,
	)
	ft.rows[ProdClassMember] = memberStart.Union(closeBrace, eof)
	ft.rows[ProdEnumBody] = NewTokenSet(
		lexer.TokenIdentifier, lexer.TokenLBracket, lexer.TokenComma, lexer.TokenRBrace,
	)
	ft.rows[ProdFormalParameters] = NewTokenSet(
		lexer.TokenComma, lexer.TokenRParen, lexer.TokenRBracket,
		lexer.TokenLBrace, lexer.TokenSemicolon, lexer.TokenColon,
	)
	ft.rows[ProdAccessors] = NewTokenSet(
		lexer.TokenIdentifier, lexer.TokenLBracket, lexer.TokenRBrace,
		lexer.TokenPrivate, lexer.TokenProtected, lexer.TokenInternal,
	)
	ft.rows[ProdBlock] = statementStart.Union(memberStart, closeBrace, eof, NewTokenSet(
		lexer.TokenElse, lexer.TokenCase, lexer.TokenDefault, lexer.TokenCatch,
		lexer.TokenFinally, lexer.TokenWhile, lexer.TokenRParen,
	))
	ft.rows[ProdStatement] = statementStart.Union(closeBrace, eof, NewTokenSet(
		lexer.TokenElse, lexer.TokenCase, lexer.TokenDefault,
	))
	ft.rows[ProdSwitchSection] = statementStart.Union(closeBrace, NewTokenSet(
		lexer.TokenCase, lexer.TokenDefault,
	))
	ft.rows[ProdExpression] = expressionEnd
	ft.rows[ProdArguments] = NewTokenSet(lexer.TokenComma, lexer.TokenRParen, lexer.TokenRBracket)
	ft.rows[ProdType] = NewTokenSet(
		lexer.TokenIdentifier, lexer.TokenComma, lexer.TokenGt, lexer.TokenRParen,
		lexer.TokenRBracket, lexer.TokenLBrace, lexer.TokenSemicolon,
		lexer.TokenLParen, lexer.TokenAssign, lexer.TokenThis, lexer.TokenOperator,
	)
	return ft
}

// DefaultFollowTable returns the shared table built by NewFollowTable.
var DefaultFollowTable = sync.OnceValue(NewFollowTable)
