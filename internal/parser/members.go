package parser

import (
	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/lexer"
	"github.com/orizon-lang/csfront/internal/position"
)

// unaryOverloadable and binaryOverloadable list the operator tokens that
// may follow the operator keyword. '+' and '-' are in both; ">>" is two
// adjacent '>' tokens.
var (
	unaryOverloadable = NewTokenSet(
		lexer.TokenPlus, lexer.TokenMinus, lexer.TokenNot, lexer.TokenTilde,
		lexer.TokenIncrement, lexer.TokenDecrement, lexer.TokenTrue, lexer.TokenFalse,
	)
	binaryOverloadable = NewTokenSet(
		lexer.TokenPlus, lexer.TokenMinus, lexer.TokenMul, lexer.TokenDiv,
		lexer.TokenMod, lexer.TokenAmp, lexer.TokenPipe, lexer.TokenCaret,
		lexer.TokenShl, lexer.TokenEq, lexer.TokenNe, lexer.TokenGt,
		lexer.TokenLt, lexer.TokenGe, lexer.TokenLe,
	)
	parameterStart = builtinTypes.Union(NewTokenSet(
		lexer.TokenIdentifier, lexer.TokenRef, lexer.TokenOut, lexer.TokenParams,
		lexer.TokenLBracket,
	))
)

// memberHead carries what every member declaration starts with.
type memberHead struct {
	start position.Position
	attrs []*ast.AttributeSection
	mods  modifierList
}

// parseClassMember parses one member of a class, struct or interface body
// and attaches it to the open type declaration.
func (p *Parser) parseClassMember(owner *ast.TypeDeclaration) {
	p.enter(ProdClassMember)
	defer p.leave()

	h := memberHead{start: p.startPos()}
	h.attrs = p.parseAttributeSections()
	h.mods = p.parseModifiers()
	inInterface := owner.Kind == ast.KindInterface

	if td := p.parseTypeDeclaration(h.start, h.attrs, h.mods); td != nil {
		p.attach(td)
		return
	}

	c := p.s.Cursor()
	switch {
	case p.lookaheadIs(lexer.TokenConst):
		p.constantDeclaration(h)
		return
	case p.lookaheadIs(lexer.TokenEvent):
		p.eventDeclaration(h, inInterface)
		return
	case p.lookaheadIs(lexer.TokenTilde):
		p.destructorDeclaration(h)
		return
	case p.lookaheadIs(lexer.TokenImplicit) || p.lookaheadIs(lexer.TokenExplicit):
		p.conversionOperator(h)
		return
	case identAndLParen(c):
		p.constructorDeclaration(h)
		return
	case notVoidPointer(c), isBuiltinType(c.Kind()), c.Is(lexer.TokenIdentifier):
	default:
		p.invalidAlternative(ProdClassMember)
		return
	}

	t := p.parseType()
	c = p.s.Cursor()
	switch {
	case p.lookaheadIs(lexer.TokenOperator):
		p.operatorDeclaration(h, t)
	case p.lookaheadIs(lexer.TokenThis):
		p.indexerDeclaration(h, t, nil, inInterface)
	case isVarDecl(c):
		p.fieldDeclaration(h, t)
	case c.Is(lexer.TokenIdentifier):
		iface, name := p.memberName()
		switch {
		case name == "this":
			p.indexerDeclaration(h, t, iface, inInterface)
		case p.lookaheadIs(lexer.TokenLBrace):
			p.propertyDeclaration(h, t, iface, name, inInterface)
		default:
			p.methodDeclaration(h, t, iface, name, inInterface)
		}
	default:
		p.invalidAlternative(ProdClassMember)
	}
}

// memberName parses a member name that may be qualified by the interface
// it implements. For "IList<T>.this" the name is "this" and the indexer
// keyword is left as the lookahead.
func (p *Parser) memberName() (iface *ast.TypeReference, name string) {
	if !isExplicitInterfaceImpl(p.s.Cursor()) {
		return nil, p.expectIdent()
	}
	start := p.startPos()
	ref := p.parseTypeName(0)
	p.finish(ref, start)
	if p.lookaheadIs(lexer.TokenDot) && p.s.PeekAt(1).Type == lexer.TokenThis {
		p.nextToken()
		return ref, "this"
	}
	if rest, last, ok := ref.StripLastIdentifier(); ok {
		return rest, last
	}
	// "IFoo.Bar<T>": the generic arguments belong to the method.
	if len(ref.GenericArguments) > 0 && len(ref.Suffixes) == 0 {
		bare := *ref
		bare.GenericArguments = nil
		if rest, last, ok := bare.StripLastIdentifier(); ok {
			p.pendingTemplates = templatesFromArguments(ref.GenericArguments)
			return rest, last
		}
	}
	p.invalidAlternative(ProdClassMember)
	return ref, ""
}

// templatesFromArguments turns type arguments parsed as part of a
// qualified member name back into type parameters.
func templatesFromArguments(args []*ast.TypeReference) []*ast.TemplateDefinition {
	out := make([]*ast.TemplateDefinition, 0, len(args))
	for _, a := range args {
		if a == nil {
			continue
		}
		td := &ast.TemplateDefinition{Name: a.Type}
		td.SetSpan(a.Span)
		out = append(out, td)
	}
	return out
}

func (p *Parser) constantDeclaration(h memberHead) {
	p.expect(lexer.TokenConst)
	p.checkModifiers(h.mods, ast.Constants, "constant")
	f := &ast.FieldDeclaration{Attributes: h.attrs, Modifiers: h.mods.mods | ast.ModConst}
	f.Type = p.parseType()
	f.Variables = p.parseVariableDeclarators(true)
	p.expect(lexer.TokenSemicolon)
	p.finish(f, h.start)
	p.attach(f)
}

// fieldDeclaration parses field declarators, including fixed size
// buffers "fixed int buf[16];".
func (p *Parser) fieldDeclaration(h memberHead, t *ast.TypeReference) {
	p.checkModifiers(h.mods, ast.Fields, "field")
	f := &ast.FieldDeclaration{Attributes: h.attrs, Modifiers: h.mods.mods, Type: t}
	if h.mods.mods.Has(ast.ModFixed) {
		p.requireFeature(FeatureFixedSizeBuffers, h.mods.spans[ast.ModFixed])
	}
	for {
		start := p.startPos()
		v := &ast.VariableDeclaration{Name: p.expectIdent()}
		if p.lookaheadIs(lexer.TokenLBracket) {
			p.nextToken()
			v.FixedSize = p.parseExpression()
			p.expect(lexer.TokenRBracket)
		}
		if p.optional(lexer.TokenAssign) {
			v.Initializer = p.variableInitializer()
		}
		p.finish(v, start)
		f.Variables = append(f.Variables, v)
		if !p.weakSeparator(lexer.TokenComma, NewTokenSet(lexer.TokenIdentifier), NewTokenSet(lexer.TokenSemicolon)) {
			break
		}
	}
	p.expect(lexer.TokenSemicolon)
	p.finish(f, h.start)
	p.attach(f)
}

// methodDeclaration parses the rest of a method after its name.
func (p *Parser) methodDeclaration(h memberHead, t, iface *ast.TypeReference, name string, inInterface bool) {
	allowed := ast.PropertysEventsMethods
	if inInterface {
		allowed = ast.InterfaceMembers
	}
	p.checkModifiers(h.mods, allowed, "method")

	m := &ast.MethodDeclaration{
		Attributes: h.attrs,
		Modifiers:  h.mods.mods,
		ReturnType: t,
		Interface:  iface,
		Name:       name,
		Templates:  p.pendingTemplates,
	}
	p.pendingTemplates = nil
	if p.lookaheadIs(lexer.TokenLt) {
		m.Templates = p.parseTypeParameters()
	}
	m.Parameters = p.parseFormalParameters(lexer.TokenLParen, lexer.TokenRParen)
	m.Constraints = p.parseConstraintClauses(m.Templates)
	m.Body = p.optionalBody()
	p.finish(m, h.start)
	p.attach(m)
}

// optionalBody parses a block or the ';' of a body-less member.
func (p *Parser) optionalBody() *ast.BlockStatement {
	if p.optional(lexer.TokenSemicolon) {
		return nil
	}
	return p.parseBlock()
}

// propertyDeclaration parses "T Name { get {...} set {...} }".
func (p *Parser) propertyDeclaration(h memberHead, t, iface *ast.TypeReference, name string, inInterface bool) {
	allowed := ast.PropertysEventsMethods
	if inInterface {
		allowed = ast.InterfaceMembers
	}
	p.checkModifiers(h.mods, allowed, "property")
	prop := &ast.PropertyDeclaration{
		Attributes: h.attrs,
		Modifiers:  h.mods.mods,
		Type:       t,
		Interface:  iface,
		Name:       name,
	}
	prop.Get, prop.Set = p.accessorDeclarations()
	p.finish(prop, h.start)
	p.attach(prop)
}

// indexerDeclaration parses "T this[params] { get; set; }". The lookahead
// is the this keyword.
func (p *Parser) indexerDeclaration(h memberHead, t, iface *ast.TypeReference, inInterface bool) {
	allowed := ast.Indexers
	if inInterface {
		allowed = ast.InterfaceMembers
	}
	p.checkModifiers(h.mods, allowed, "indexer")
	p.expect(lexer.TokenThis)
	idx := &ast.IndexerDeclaration{
		Attributes: h.attrs,
		Modifiers:  h.mods.mods,
		Type:       t,
		Interface:  iface,
	}
	idx.Parameters = p.parseFormalParameters(lexer.TokenLBracket, lexer.TokenRBracket)
	idx.Get, idx.Set = p.accessorDeclarations()
	p.finish(idx, h.start)
	p.attach(idx)
}

// accessorDeclarations parses "{ get ...; set ...; }" in either order.
func (p *Parser) accessorDeclarations() (get, set *ast.Accessor) {
	p.enter(ProdAccessors)
	defer p.leave()

	p.expect(lexer.TokenLBrace)
	reported := false
	for !p.lookaheadIs(lexer.TokenRBrace) && !p.lookaheadIs(lexer.TokenEOF) {
		if !isAccessor(p.s.Cursor(), "get", "set") {
			p.syntaxError(diagnostics.CodeAccessorExpected)
			reported = true
			for !p.lookaheadIs(lexer.TokenRBrace) && !p.lookaheadIs(lexer.TokenEOF) &&
				!isAccessor(p.s.Cursor(), "get", "set") {
				p.nextToken()
			}
			continue
		}
		a := p.accessor(map[string]ast.AccessorKind{"get": ast.AccessorGet, "set": ast.AccessorSet}, true)
		switch a.Kind {
		case ast.AccessorGet:
			if get != nil {
				p.advisory(diagnostics.CodeDuplicateAccessor, a.Span, "get")
				continue
			}
			get = a
		case ast.AccessorSet:
			if set != nil {
				p.advisory(diagnostics.CodeDuplicateAccessor, a.Span, "set")
				continue
			}
			set = a
		}
	}
	if get == nil && set == nil && !reported {
		p.advisory(diagnostics.CodeAccessorExpected, p.la().Span)
	}
	p.expect(lexer.TokenRBrace)
	return get, set
}

// eventAccessorDeclarations parses "{ add {...} remove {...} }".
func (p *Parser) eventAccessorDeclarations() (add, remove *ast.Accessor) {
	p.enter(ProdAccessors)
	defer p.leave()

	p.expect(lexer.TokenLBrace)
	reported := false
	for !p.lookaheadIs(lexer.TokenRBrace) && !p.lookaheadIs(lexer.TokenEOF) {
		if !isAccessor(p.s.Cursor(), "add", "remove") {
			p.syntaxError(diagnostics.CodeEventAccessorExpected)
			reported = true
			for !p.lookaheadIs(lexer.TokenRBrace) && !p.lookaheadIs(lexer.TokenEOF) &&
				!isAccessor(p.s.Cursor(), "add", "remove") {
				p.nextToken()
			}
			continue
		}
		a := p.accessor(map[string]ast.AccessorKind{"add": ast.AccessorAdd, "remove": ast.AccessorRemove}, false)
		switch a.Kind {
		case ast.AccessorAdd:
			if add != nil {
				p.advisory(diagnostics.CodeDuplicateAccessor, a.Span, "add")
				continue
			}
			add = a
		case ast.AccessorRemove:
			if remove != nil {
				p.advisory(diagnostics.CodeDuplicateAccessor, a.Span, "remove")
				continue
			}
			remove = a
		}
	}
	if (add == nil || remove == nil) && !reported {
		p.advisory(diagnostics.CodeEventAccessorExpected, p.la().Span)
	}
	p.expect(lexer.TokenRBrace)
	return add, remove
}

// accessor parses one accessor. The lookahead is known to satisfy
// isAccessor for the names in kinds. Event accessors always have a body.
func (p *Parser) accessor(kinds map[string]ast.AccessorKind, bodyOptional bool) *ast.Accessor {
	start := p.startPos()
	a := &ast.Accessor{Attributes: p.parseAttributeSections()}
	mods := p.parseModifiers()
	switch {
	case mods.mods == ast.ModNone:
	case bodyOptional:
		p.requireFeature(FeatureAccessorModifiers, mods.spans[mods.mods&-mods.mods])
		p.checkModifiers(mods, ast.Accessors, "accessor")
	default:
		p.checkModifiers(mods, ast.ModNone, "event accessor")
	}
	a.Modifiers = mods.mods
	a.Kind = kinds[p.la().Literal]
	p.nextToken()
	if bodyOptional {
		a.Body = p.optionalBody()
	} else {
		a.Body = p.parseBlock()
	}
	p.finish(a, start)
	return a
}

// eventDeclaration parses a field-like event or an event with accessors.
func (p *Parser) eventDeclaration(h memberHead, inInterface bool) {
	allowed := ast.PropertysEventsMethods
	if inInterface {
		allowed = ast.InterfaceMembers
	}
	p.checkModifiers(h.mods, allowed, "event")
	p.expect(lexer.TokenEvent)
	ev := &ast.EventDeclaration{Attributes: h.attrs, Modifiers: h.mods.mods}
	ev.Type = p.parseType()

	if isVarDecl(p.s.Cursor()) {
		ev.Variables = p.parseVariableDeclarators(false)
		p.expect(lexer.TokenSemicolon)
	} else {
		nstart := p.startPos()
		iface, name := p.memberName()
		v := &ast.VariableDeclaration{Name: name}
		p.finish(v, nstart)
		ev.Interface = iface
		ev.Variables = []*ast.VariableDeclaration{v}
		ev.Add, ev.Remove = p.eventAccessorDeclarations()
	}
	p.finish(ev, h.start)
	p.attach(ev)
}

// constructorDeclaration parses "Name(params) : base(args) { ... }".
// A static constructor takes no initializer.
func (p *Parser) constructorDeclaration(h memberHead) {
	if h.mods.mods.Has(ast.ModStatic) {
		p.checkModifiers(h.mods, ast.StaticConstructors, "static constructor")
	} else {
		p.checkModifiers(h.mods, ast.Constructors, "constructor")
	}
	ctor := &ast.ConstructorDeclaration{Attributes: h.attrs, Modifiers: h.mods.mods}
	ctor.Name = p.expectIdent()
	ctor.Parameters = p.parseFormalParameters(lexer.TokenLParen, lexer.TokenRParen)
	if p.lookaheadIs(lexer.TokenColon) {
		start := p.startPos()
		p.nextToken()
		init := &ast.ConstructorInitializer{}
		switch p.la().Type {
		case lexer.TokenBase:
			init.Kind = ast.InitializerBase
			p.nextToken()
		case lexer.TokenThis:
			init.Kind = ast.InitializerThis
			p.nextToken()
		default:
			p.expectedError(lexer.TokenBase)
		}
		init.Arguments = p.parseArguments(lexer.TokenLParen, lexer.TokenRParen)
		p.finish(init, start)
		ctor.Initializer = init
	}
	ctor.Body = p.optionalBody()
	p.finish(ctor, h.start)
	p.attach(ctor)
}

// destructorDeclaration parses "~Name() { ... }".
func (p *Parser) destructorDeclaration(h memberHead) {
	p.checkModifiers(h.mods, ast.Destructors, "destructor")
	p.expect(lexer.TokenTilde)
	d := &ast.DestructorDeclaration{Attributes: h.attrs, Modifiers: h.mods.mods}
	d.Name = p.expectIdent()
	p.expect(lexer.TokenLParen)
	p.expect(lexer.TokenRParen)
	d.Body = p.optionalBody()
	p.finish(d, h.start)
	p.attach(d)
}

// conversionOperator parses "implicit operator T(S s) { ... }".
func (p *Parser) conversionOperator(h memberHead) {
	p.checkModifiers(h.mods, ast.Operators, "operator")
	op := &ast.OperatorDeclaration{Attributes: h.attrs, Modifiers: h.mods.mods}
	op.Conversion = ast.ConversionImplicit
	if p.lookaheadIs(lexer.TokenExplicit) {
		op.Conversion = ast.ConversionExplicit
	}
	p.nextToken()
	p.expect(lexer.TokenOperator)
	op.ReturnType = p.parseType()
	p.operatorRest(op, 1, 1)
	p.finish(op, h.start)
	p.attach(op)
}

// operatorDeclaration parses "T operator op(params) { ... }" after the
// return type.
func (p *Parser) operatorDeclaration(h memberHead, t *ast.TypeReference) {
	p.checkModifiers(h.mods, ast.Operators, "operator")
	op := &ast.OperatorDeclaration{Attributes: h.attrs, Modifiers: h.mods.mods, ReturnType: t}
	p.expect(lexer.TokenOperator)

	tok := p.la()
	minArgs, maxArgs := 0, 0
	switch {
	case isShiftRight(p.s.Cursor()):
		op.Operator = ">>"
		p.nextToken()
		p.nextToken()
		minArgs, maxArgs = 2, 2
	case unaryOverloadable.Has(tok.Type) || binaryOverloadable.Has(tok.Type):
		op.Operator = tok.Literal
		p.nextToken()
		minArgs, maxArgs = 2, 2
		if unaryOverloadable.Has(tok.Type) {
			minArgs = 1
			if !binaryOverloadable.Has(tok.Type) {
				maxArgs = 1
			}
		}
	default:
		p.invalidAlternative(ProdClassMember)
	}
	p.operatorRest(op, minArgs, maxArgs)
	p.finish(op, h.start)
	p.attach(op)
}

// operatorRest parses the parameters and body of an operator and checks
// the parameter count.
func (p *Parser) operatorRest(op *ast.OperatorDeclaration, minArgs, maxArgs int) {
	op.Parameters = p.parseFormalParameters(lexer.TokenLParen, lexer.TokenRParen)
	if n := len(op.Parameters); maxArgs > 0 && (n < minArgs || n > maxArgs) {
		name := op.Operator
		if name == "" {
			name = op.ReturnType.String()
		}
		p.advisory(diagnostics.CodeOperatorArity, p.spanFrom(op.ReturnType.Span.Start), name, n)
	}
	op.Body = p.optionalBody()
}

// parseFormalParameters parses "(ref int a, params object[] rest)" or the
// bracketed list of an indexer. A params parameter must be last.
func (p *Parser) parseFormalParameters(open, close lexer.TokenType) []*ast.ParameterDeclaration {
	p.enter(ProdFormalParameters)
	defer p.leave()

	p.expect(open)
	var params []*ast.ParameterDeclaration
	if !p.lookaheadIs(close) {
		for {
			params = append(params, p.formalParameter())
			if !p.weakSeparator(lexer.TokenComma, parameterStart, NewTokenSet(close)) {
				break
			}
		}
	}
	p.expect(close)
	for _, prm := range params[:max(len(params)-1, 0)] {
		if prm.Modifier == ast.ParamArray {
			p.advisory(diagnostics.CodeParamsNotLast, prm.Span)
		}
	}
	return params
}

func (p *Parser) formalParameter() *ast.ParameterDeclaration {
	start := p.startPos()
	prm := &ast.ParameterDeclaration{Attributes: p.parseAttributeSections()}
	switch p.la().Type {
	case lexer.TokenRef:
		prm.Modifier = ast.ParamRef
		p.nextToken()
	case lexer.TokenOut:
		prm.Modifier = ast.ParamOut
		p.nextToken()
	case lexer.TokenParams:
		prm.Modifier = ast.ParamArray
		p.nextToken()
	}
	prm.Type = p.parseType()
	prm.Name = p.expectIdent()
	p.finish(prm, start)
	return prm
}
