package parser

import (
	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/lexer"
	"github.com/orizon-lang/csfront/internal/position"
)

// parseCompilationUnit parses using directives, global attribute sections
// and namespace members up to EOF.
func (p *Parser) parseCompilationUnit() *ast.CompilationUnit {
	p.enter(ProdCompilationUnit)
	defer p.leave()

	unit := &ast.CompilationUnit{Filename: p.filename}
	p.open(unit, p.startPos())
	for !p.lookaheadIs(lexer.TokenEOF) {
		before := p.s.Pos()
		switch {
		case p.lookaheadIs(lexer.TokenUsing):
			p.attach(p.parseUsingDirective())
		case p.lookaheadIs(lexer.TokenLBracket) && isGlobalAttrTarget(p.s.Cursor()):
			p.attach(p.parseAttributeSection(true))
		default:
			p.parseNamespaceMember()
		}
		p.ensureProgress(before)
	}
	return p.close().(*ast.CompilationUnit)
}

// parseUsingDirective parses "using A.B;" or "using X = A.B<T>;".
func (p *Parser) parseUsingDirective() *ast.UsingDeclaration {
	p.enter(ProdUsingDirective)
	defer p.leave()

	start := p.startPos()
	p.expect(lexer.TokenUsing)
	u := &ast.UsingDeclaration{}
	if p.lookaheadIs(lexer.TokenIdentifier) && p.s.PeekAt(1).Type == lexer.TokenAssign {
		u.Alias = p.la().Literal
		p.nextToken()
		p.nextToken()
		u.Target = p.parseType()
	} else {
		if p.lookaheadIs(lexer.TokenIdentifier) && p.s.PeekAt(1).Type == lexer.TokenDoubleColon {
			p.requireFeature(FeatureNamespaceAliasQualifier, p.la().Span)
			u.Namespace = p.la().Literal + "::"
			p.nextToken()
			p.nextToken()
		}
		u.Namespace += p.parseQualifiedIdent()
	}
	p.expect(lexer.TokenSemicolon)
	p.finish(u, start)
	return u
}

// parseNamespaceMember parses a namespace or a type declaration and
// attaches it to the innermost container.
func (p *Parser) parseNamespaceMember() {
	p.enter(ProdNamespaceMember)
	defer p.leave()

	if p.lookaheadIs(lexer.TokenNamespace) {
		p.attach(p.parseNamespace())
		return
	}
	start := p.startPos()
	attrs := p.parseAttributeSections()
	mods := p.parseModifiers()
	if td := p.parseTypeDeclaration(start, attrs, mods); td != nil {
		p.attach(td)
		return
	}
	p.invalidAlternative(ProdNamespaceMember)
}

// parseNamespace parses "namespace A.B { ... }" with an optional ';'.
func (p *Parser) parseNamespace() *ast.NamespaceDeclaration {
	ns := &ast.NamespaceDeclaration{}
	p.open(ns, p.startPos())
	p.expect(lexer.TokenNamespace)
	ns.Name = p.parseQualifiedIdent()
	p.expect(lexer.TokenLBrace)
	for !p.lookaheadIs(lexer.TokenRBrace) && !p.lookaheadIs(lexer.TokenEOF) {
		before := p.s.Pos()
		if p.lookaheadIs(lexer.TokenUsing) {
			p.attach(p.parseUsingDirective())
		} else {
			p.parseNamespaceMember()
		}
		p.ensureProgress(before)
	}
	p.expect(lexer.TokenRBrace)
	p.optional(lexer.TokenSemicolon)
	return p.close().(*ast.NamespaceDeclaration)
}

// startsTypeDeclaration reports whether the lookahead is a type
// declaration keyword.
func (p *Parser) startsTypeDeclaration() bool {
	switch p.la().Type {
	case lexer.TokenClass, lexer.TokenStruct, lexer.TokenInterface, lexer.TokenEnum, lexer.TokenDelegate:
		return true
	}
	return false
}

// parseTypeDeclaration parses a class, struct, interface, enum or delegate
// after its attributes and modifiers. It returns nil, consuming nothing,
// when the lookahead starts none of them.
func (p *Parser) parseTypeDeclaration(start position.Position, attrs []*ast.AttributeSection, mods modifierList) ast.Node {
	if !p.startsTypeDeclaration() {
		return nil
	}
	p.enter(ProdTypeDeclaration)
	defer p.leave()

	td := &ast.TypeDeclaration{Attributes: attrs, Modifiers: mods.mods}
	p.open(td, start)

	if mods.mods.Has(ast.ModPartial) {
		p.requireFeature(FeaturePartialTypes, mods.spans[ast.ModPartial])
	}

	switch p.la().Type {
	case lexer.TokenClass:
		td.Kind = ast.KindClass
		p.checkModifiers(mods, ast.Classes, "class")
		if mods.mods.Has(ast.ModStatic) {
			p.requireFeature(FeatureStaticClasses, mods.spans[ast.ModStatic])
		}
		p.nextToken()
		p.classLikeDeclaration(td)
	case lexer.TokenStruct, lexer.TokenInterface:
		td.Kind = ast.KindStruct
		if p.lookaheadIs(lexer.TokenInterface) {
			td.Kind = ast.KindInterface
		}
		p.checkModifiers(mods, ast.StructsInterfacesEnumsDelegates, td.Kind.String())
		p.nextToken()
		p.classLikeDeclaration(td)
	case lexer.TokenEnum:
		td.Kind = ast.KindEnum
		p.checkModifiers(mods, ast.StructsInterfacesEnumsDelegates&^ast.ModPartial, "enum")
		p.nextToken()
		p.enumDeclaration(td)
	case lexer.TokenDelegate:
		td.Kind = ast.KindDelegate
		p.checkModifiers(mods, ast.StructsInterfacesEnumsDelegates&^ast.ModPartial, "delegate")
		p.nextToken()
		p.delegateDeclaration(td)
	}
	return p.close()
}

// classLikeDeclaration parses the name, type parameters, base list,
// constraints and body of a class, struct or interface.
func (p *Parser) classLikeDeclaration(td *ast.TypeDeclaration) {
	td.Name = p.expectIdent()
	if p.lookaheadIs(lexer.TokenLt) {
		td.Templates = p.parseTypeParameters()
	}
	if p.optional(lexer.TokenColon) {
		td.BaseTypes = p.parseTypeList(NewTokenSet(lexer.TokenLBrace, lexer.TokenIdentifier))
	}
	td.Constraints = p.parseConstraintClauses(td.Templates)

	p.expect(lexer.TokenLBrace)
	for !p.lookaheadIs(lexer.TokenRBrace) && !p.lookaheadIs(lexer.TokenEOF) {
		before := p.s.Pos()
		p.parseClassMember(td)
		p.ensureProgress(before)
	}
	p.expect(lexer.TokenRBrace)
	p.optional(lexer.TokenSemicolon)
}

// enumDeclaration parses "enum E : byte { A, B = 2, }".
func (p *Parser) enumDeclaration(td *ast.TypeDeclaration) {
	td.Name = p.expectIdent()
	if p.optional(lexer.TokenColon) {
		base := p.parseType()
		if !base.IsKeyword || !integralTypes.Has(lexer.LookupIdent(base.Type)) || len(base.Suffixes) > 0 {
			p.advisory(diagnostics.CodeEnumBaseNotIntegral, base.Span, base.String())
		}
		td.BaseTypes = []*ast.TypeReference{base}
	}

	p.enter(ProdEnumBody)
	p.expect(lexer.TokenLBrace)
	for !p.lookaheadIs(lexer.TokenRBrace) && !p.lookaheadIs(lexer.TokenEOF) {
		before := p.s.Pos()
		start := p.startPos()
		f := &ast.FieldDeclaration{Attributes: p.parseAttributeSections()}
		vstart := p.startPos()
		v := &ast.VariableDeclaration{Name: p.expectIdent()}
		if p.optional(lexer.TokenAssign) {
			v.Initializer = p.parseExpression()
		}
		p.finish(v, vstart)
		f.Variables = []*ast.VariableDeclaration{v}
		p.finish(f, start)
		p.attach(f)
		if notFinalComma(p.s.Cursor()) {
			p.nextToken()
		} else {
			p.optional(lexer.TokenComma)
			if !p.lookaheadIs(lexer.TokenRBrace) {
				p.expectWeak(lexer.TokenComma, NewTokenSet(lexer.TokenIdentifier, lexer.TokenLBracket, lexer.TokenRBrace))
			}
		}
		p.ensureProgress(before)
	}
	p.expect(lexer.TokenRBrace)
	p.leave()
	p.optional(lexer.TokenSemicolon)
}

// delegateDeclaration parses "delegate R Name<T>(params) where ...;".
func (p *Parser) delegateDeclaration(td *ast.TypeDeclaration) {
	td.ReturnType = p.parseType()
	td.Name = p.expectIdent()
	if p.lookaheadIs(lexer.TokenLt) {
		td.Templates = p.parseTypeParameters()
	}
	td.Parameters = p.parseFormalParameters(lexer.TokenLParen, lexer.TokenRParen)
	td.Constraints = p.parseConstraintClauses(td.Templates)
	p.expect(lexer.TokenSemicolon)
}

// parseTypeParameters parses "<[attrs] T, U>".
func (p *Parser) parseTypeParameters() []*ast.TemplateDefinition {
	p.enter(ProdTypeParameters)
	defer p.leave()

	p.requireFeature(FeatureGenerics, p.la().Span)
	p.expect(lexer.TokenLt)
	var list []*ast.TemplateDefinition
	for {
		start := p.startPos()
		td := &ast.TemplateDefinition{Attributes: p.parseAttributeSections()}
		td.Name = p.expectIdent()
		p.finish(td, start)
		list = append(list, td)
		if !p.weakSeparator(lexer.TokenComma,
			NewTokenSet(lexer.TokenIdentifier, lexer.TokenLBracket), NewTokenSet(lexer.TokenGt)) {
			break
		}
	}
	p.expect(lexer.TokenGt)
	return list
}

// parseConstraintClauses parses any number of "where T : ..." clauses and
// copies them onto templates. Clauses naming no type parameter are
// reported.
func (p *Parser) parseConstraintClauses(templates []*ast.TemplateDefinition) []*ast.ConstraintClause {
	var clauses []*ast.ConstraintClause
	for p.lookaheadIsIdent("where") {
		clauses = append(clauses, p.parseConstraintClause())
	}
	for _, c := range ast.ApplyConstraints(templates, clauses) {
		p.advisory(diagnostics.CodeUnknownTypeParameter, c.Span, c.TypeParameter)
	}
	return clauses
}

// parseConstraintClause parses "where T : class, IFoo, new()". class and
// struct must come first and new() last.
func (p *Parser) parseConstraintClause() *ast.ConstraintClause {
	p.enter(ProdConstraints)
	defer p.leave()

	start := p.startPos()
	p.nextToken()
	cc := &ast.ConstraintClause{TypeParameter: p.expectIdent()}
	p.expect(lexer.TokenColon)
	constraintStart := builtinTypes.Union(NewTokenSet(
		lexer.TokenIdentifier, lexer.TokenClass, lexer.TokenStruct, lexer.TokenNew))
	for i := 0; ; i++ {
		tok := p.la()
		switch tok.Type {
		case lexer.TokenClass, lexer.TokenStruct:
			if i > 0 {
				p.advisory(diagnostics.CodeConstraintOrder, tok.Span, tok.Literal, "first")
			}
			cc.ClassConstraint = cc.ClassConstraint || tok.Type == lexer.TokenClass
			cc.StructConstraint = cc.StructConstraint || tok.Type == lexer.TokenStruct
			p.nextToken()
		case lexer.TokenNew:
			p.nextToken()
			p.expect(lexer.TokenLParen)
			p.expect(lexer.TokenRParen)
			cc.ConstructorConstraint = true
			if p.lookaheadIs(lexer.TokenComma) {
				p.advisory(diagnostics.CodeConstraintOrder, p.spanFrom(tok.Span.Start), "new()", "last")
			}
		default:
			cc.Bases = append(cc.Bases, p.parseType())
		}
		if !p.weakSeparator(lexer.TokenComma, constraintStart,
			NewTokenSet(lexer.TokenLBrace, lexer.TokenSemicolon, lexer.TokenIdentifier)) {
			break
		}
	}
	p.finish(cc, start)
	return cc
}
