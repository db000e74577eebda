package parser

import (
	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/lexer"
)

// parseAttributeSections parses consecutive member attribute sections.
func (p *Parser) parseAttributeSections() []*ast.AttributeSection {
	var sections []*ast.AttributeSection
	for p.lookaheadIs(lexer.TokenLBracket) {
		sections = append(sections, p.parseAttributeSection(false))
	}
	return sections
}

// parseAttributeSection parses "[target: A, B(1, X = 2)]". Global sections
// only accept assembly and module targets; member sections accept the
// local targets and report anything else.
func (p *Parser) parseAttributeSection(global bool) *ast.AttributeSection {
	p.enter(ProdAttributeSection)
	defer p.leave()

	start := p.startPos()
	section := &ast.AttributeSection{}
	c := p.s.Cursor()
	valid := isLocalAttrTarget(c)
	if global {
		valid = isGlobalAttrTarget(c)
	}
	p.expect(lexer.TokenLBracket)

	if p.s.PeekAt(1).Type == lexer.TokenColon &&
		(p.lookaheadIs(lexer.TokenIdentifier) || p.la().Type.IsKeyword()) {
		target := p.la()
		section.Target = target.Literal
		if !valid {
			p.advisory(diagnostics.CodeAttributeTarget, target.Span, target.Literal)
		}
		p.nextToken()
		p.nextToken()
	}

	for {
		section.Attributes = append(section.Attributes, p.parseAttribute())
		if !notFinalBracketComma(p.s.Cursor()) {
			break
		}
		p.nextToken()
	}
	p.optional(lexer.TokenComma)
	p.expect(lexer.TokenRBracket)
	p.finish(section, start)
	return section
}

// notFinalBracketComma reports whether the ',' at c separates two
// attributes rather than trailing the last one.
func notFinalBracketComma(c Cursor) bool {
	return c.Is(lexer.TokenComma) && !c.Next().Is(lexer.TokenRBracket)
}

// parseAttribute parses one attribute with its positional and named
// arguments.
func (p *Parser) parseAttribute() *ast.Attribute {
	start := p.startPos()
	a := &ast.Attribute{}
	if !p.lookaheadIs(lexer.TokenIdentifier) {
		p.invalidAlternative(ProdAttributeSection)
		a.Name = &ast.TypeReference{}
		p.finish(a.Name, start)
		p.finish(a, start)
		return a
	}
	name := p.parseTypeName(0)
	p.finish(name, start)
	a.Name = name

	if p.lookaheadIs(lexer.TokenLParen) {
		p.enter(ProdArguments)
		p.nextToken()
		if !p.lookaheadIs(lexer.TokenRParen) {
			for {
				p.attributeArgument(a)
				if !p.weakSeparator(lexer.TokenComma, expressionStart, NewTokenSet(lexer.TokenRParen)) {
					break
				}
			}
		}
		p.expect(lexer.TokenRParen)
		p.leave()
	}
	p.finish(a, start)
	return a
}

// attributeArgument parses a positional argument or "Name = value" and
// appends it to a.
func (p *Parser) attributeArgument(a *ast.Attribute) {
	start := p.startPos()
	if p.lookaheadIs(lexer.TokenIdentifier) && p.s.PeekAt(1).Type == lexer.TokenAssign {
		na := &ast.NamedArgumentExpression{Name: p.la().Literal}
		p.nextToken()
		p.nextToken()
		na.Value = p.parseExpression()
		p.finish(na, start)
		a.Named = append(a.Named, na)
		return
	}
	e := p.parseExpression()
	if len(a.Named) > 0 {
		p.advisory(diagnostics.CodePositionalAfterNamed, e.GetSpan())
	}
	a.Positional = append(a.Positional, e)
}
