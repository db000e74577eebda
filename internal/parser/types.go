package parser

import (
	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/lexer"
)

// typeMode adjusts how parseTypeWith treats suffixes.
type typeMode uint8

const (
	typeAllowUnbound typeMode = 1 << iota // "<,>" argument lists, inside typeof
	typeNoArrays                          // rank specifiers belong to the caller (new T[n])
	typeNoPointers                        // '*' is multiplication (is/as)
	typeNullableTest                      // '?' is nullable only if isNullableTypeTest agrees
)

// parseType parses a type with all its suffixes.
func (p *Parser) parseType() *ast.TypeReference { return p.parseTypeWith(0) }

// parseTypeWith parses a built-in or named type followed by its nullable,
// pointer and array suffixes in source order.
func (p *Parser) parseTypeWith(mode typeMode) *ast.TypeReference {
	p.enter(ProdType)
	defer p.leave()

	start := p.startPos()
	var t *ast.TypeReference
	switch {
	case isBuiltinType(p.la().Type):
		t = &ast.TypeReference{Type: p.la().Literal, IsKeyword: true}
		p.nextToken()
	case p.lookaheadIs(lexer.TokenIdentifier):
		t = p.parseTypeName(mode)
	default:
		t = &ast.TypeReference{}
		p.invalidAlternative(ProdType)
		p.finish(t, start)
		return t
	}
	p.parseTypeSuffixes(t, mode)
	p.finish(t, start)
	return t
}

// parseTypeName parses "alias::A<..>.B.C<..>" without suffixes. A generic
// segment followed by more segments becomes the Outer of the rest.
func (p *Parser) parseTypeName(mode typeMode) *ast.TypeReference {
	start := p.startPos()
	t := &ast.TypeReference{}
	if p.s.PeekAt(1).Type == lexer.TokenDoubleColon {
		p.requireFeature(FeatureNamespaceAliasQualifier, p.la().Span)
		t.Alias = p.la().Literal
		p.nextToken()
		p.nextToken()
	}
	name := p.expectIdent()
	for {
		if p.lookaheadIs(lexer.TokenLt) {
			t.Type = name
			t.GenericArguments = p.parseTypeArguments(mode & typeAllowUnbound)
			if p.lookaheadIs(lexer.TokenDot) && p.s.PeekAt(1).Type == lexer.TokenIdentifier {
				p.finish(t, start)
				t = &ast.TypeReference{Outer: t}
				p.nextToken()
				name = p.la().Literal
				p.nextToken()
				continue
			}
			return t
		}
		if p.lookaheadIs(lexer.TokenDot) && p.s.PeekAt(1).Type == lexer.TokenIdentifier {
			p.nextToken()
			name += "." + p.la().Literal
			p.nextToken()
			continue
		}
		t.Type = name
		return t
	}
}

// parseTypeArguments parses "<T1, T2>" or, with typeAllowUnbound, "<,>".
// Unbound arguments are nil entries.
func (p *Parser) parseTypeArguments(mode typeMode) []*ast.TypeReference {
	p.requireFeature(FeatureGenerics, p.la().Span)
	p.expect(lexer.TokenLt)
	if mode&typeAllowUnbound != 0 && (p.lookaheadIs(lexer.TokenComma) || p.lookaheadIs(lexer.TokenGt)) {
		args := []*ast.TypeReference{nil}
		for p.optional(lexer.TokenComma) {
			args = append(args, nil)
		}
		p.expect(lexer.TokenGt)
		return args
	}
	var args []*ast.TypeReference
	typeStart := builtinTypes.Union(NewTokenSet(lexer.TokenIdentifier))
	for {
		args = append(args, p.parseTypeWith(mode&typeAllowUnbound))
		if !p.weakSeparator(lexer.TokenComma, typeStart, NewTokenSet(lexer.TokenGt)) {
			break
		}
	}
	p.expect(lexer.TokenGt)
	return args
}

// parseTypeSuffixes appends the nullable, pointer and rank suffixes that
// follow a type name.
func (p *Parser) parseTypeSuffixes(t *ast.TypeReference, mode typeMode) {
	if p.lookaheadIs(lexer.TokenQuestion) &&
		(mode&typeNullableTest == 0 || isNullableTypeTest(p.s.Cursor())) {
		p.requireFeature(FeatureNullableTypes, p.la().Span)
		p.nextToken()
		t.Suffixes = append(t.Suffixes, ast.TypeSuffix{Kind: ast.SuffixNullable})
	}
	for {
		switch {
		case p.lookaheadIs(lexer.TokenMul) && mode&typeNoPointers == 0:
			p.nextToken()
			t.Suffixes = append(t.Suffixes, ast.TypeSuffix{Kind: ast.SuffixPointer})
		case mode&typeNoArrays == 0 && isDims(p.s.Cursor()):
			t.Suffixes = append(t.Suffixes, ast.TypeSuffix{Kind: ast.SuffixArray, Rank: p.parseRank()})
		default:
			return
		}
	}
}

// parseRank consumes "[,,]" and returns the comma count.
func (p *Parser) parseRank() int {
	p.expect(lexer.TokenLBracket)
	rank := 0
	for p.optional(lexer.TokenComma) {
		rank++
	}
	p.expect(lexer.TokenRBracket)
	return rank
}

// parseTypeList parses "T1, T2, ..." as used in base lists.
func (p *Parser) parseTypeList(follow TokenSet) []*ast.TypeReference {
	var list []*ast.TypeReference
	typeStart := builtinTypes.Union(NewTokenSet(lexer.TokenIdentifier))
	for {
		list = append(list, p.parseType())
		if !p.weakSeparator(lexer.TokenComma, typeStart, follow) {
			return list
		}
	}
}

// parseQualifiedIdent parses "A.B.C" as a plain dotted name.
func (p *Parser) parseQualifiedIdent() string {
	name := p.expectIdent()
	for p.lookaheadIs(lexer.TokenDot) && p.s.PeekAt(1).Type == lexer.TokenIdentifier {
		p.nextToken()
		name += "." + p.la().Literal
		p.nextToken()
	}
	return name
}
