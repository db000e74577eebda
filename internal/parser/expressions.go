package parser

import (
	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/lexer"
	"github.com/orizon-lang/csfront/internal/position"
)

// The expression ladder. Every binary level receives its already parsed
// left operand so that the unary expression read before an assignment
// operator is known to be absent can flow into the conditional chain.

var assignmentOperators = map[lexer.TokenType]ast.AssignmentOperator{
	lexer.TokenAssign:      ast.AssignPlain,
	lexer.TokenPlusAssign:  ast.AssignAdd,
	lexer.TokenMinusAssign: ast.AssignSub,
	lexer.TokenMulAssign:   ast.AssignMul,
	lexer.TokenDivAssign:   ast.AssignDiv,
	lexer.TokenModAssign:   ast.AssignMod,
	lexer.TokenAndAssign:   ast.AssignBitAnd,
	lexer.TokenOrAssign:    ast.AssignBitOr,
	lexer.TokenXorAssign:   ast.AssignBitXor,
	lexer.TokenShlAssign:   ast.AssignShiftLeft,
}

var unaryOperators = map[lexer.TokenType]ast.UnaryOperator{
	lexer.TokenPlus:      ast.OpPlus,
	lexer.TokenMinus:     ast.OpMinus,
	lexer.TokenNot:       ast.OpNot,
	lexer.TokenTilde:     ast.OpBitNot,
	lexer.TokenMul:       ast.OpDereference,
	lexer.TokenAmp:       ast.OpAddressOf,
	lexer.TokenIncrement: ast.OpPreIncrement,
	lexer.TokenDecrement: ast.OpPreDecrement,
}

// argumentStart is the first set of a call argument.
var argumentStart = expressionStart.Union(NewTokenSet(lexer.TokenRef, lexer.TokenOut))

// parseExpression parses a full expression, assignment included.
func (p *Parser) parseExpression() ast.Expression {
	p.enter(ProdExpression)
	defer p.leave()
	return p.expr()
}

func (p *Parser) expr() ast.Expression {
	left := p.unary()
	if op, ok := p.assignmentOperator(); ok {
		right := p.expr()
		a := &ast.AssignmentExpression{Left: left, Operator: op, Right: right}
		p.finish(a, left.GetSpan().Start)
		return a
	}
	return p.conditional(left)
}

// assignmentOperator consumes an assignment operator if one is next.
// ">>=" arrives as '>' followed by ">=".
func (p *Parser) assignmentOperator() (ast.AssignmentOperator, bool) {
	c := p.s.Cursor()
	if !isAssignmentOperator(c) {
		return 0, false
	}
	if isShiftRightAssign(c) {
		p.nextToken()
		p.nextToken()
		return ast.AssignShiftRight, true
	}
	op := assignmentOperators[p.la().Type]
	p.nextToken()
	return op, true
}

func (p *Parser) binary(left ast.Expression, op ast.BinaryOperator, right ast.Expression) ast.Expression {
	b := &ast.BinaryOperatorExpression{Left: left, Operator: op, Right: right}
	p.finish(b, left.GetSpan().Start)
	return b
}

// conditional parses "c ? a : b"; both branches are full expressions.
func (p *Parser) conditional(left ast.Expression) ast.Expression {
	cond := p.nullCoalescing(left)
	if !p.lookaheadIs(lexer.TokenQuestion) {
		return cond
	}
	p.nextToken()
	whenTrue := p.expr()
	p.expect(lexer.TokenColon)
	whenFalse := p.expr()
	c := &ast.ConditionalExpression{Condition: cond, True: whenTrue, False: whenFalse}
	p.finish(c, cond.GetSpan().Start)
	return c
}

// nullCoalescing parses "a ?? b", which associates to the right.
func (p *Parser) nullCoalescing(left ast.Expression) ast.Expression {
	left = p.conditionalOr(left)
	if !p.lookaheadIs(lexer.TokenDoubleQuest) {
		return left
	}
	p.requireFeature(FeatureNullCoalescing, p.la().Span)
	p.nextToken()
	right := p.nullCoalescing(p.unary())
	return p.binary(left, ast.OpNullCoalescing, right)
}

func (p *Parser) conditionalOr(left ast.Expression) ast.Expression {
	left = p.conditionalAnd(left)
	for p.optional(lexer.TokenOrOr) {
		left = p.binary(left, ast.OpLogicalOr, p.conditionalAnd(p.unary()))
	}
	return left
}

func (p *Parser) conditionalAnd(left ast.Expression) ast.Expression {
	left = p.inclusiveOr(left)
	for p.optional(lexer.TokenAndAnd) {
		left = p.binary(left, ast.OpLogicalAnd, p.inclusiveOr(p.unary()))
	}
	return left
}

func (p *Parser) inclusiveOr(left ast.Expression) ast.Expression {
	left = p.exclusiveOr(left)
	for p.optional(lexer.TokenPipe) {
		left = p.binary(left, ast.OpBitOr, p.exclusiveOr(p.unary()))
	}
	return left
}

func (p *Parser) exclusiveOr(left ast.Expression) ast.Expression {
	left = p.and(left)
	for p.optional(lexer.TokenCaret) {
		left = p.binary(left, ast.OpBitXor, p.and(p.unary()))
	}
	return left
}

func (p *Parser) and(left ast.Expression) ast.Expression {
	left = p.equality(left)
	for p.optional(lexer.TokenAmp) {
		left = p.binary(left, ast.OpBitAnd, p.equality(p.unary()))
	}
	return left
}

func (p *Parser) equality(left ast.Expression) ast.Expression {
	left = p.relational(left)
	for {
		var op ast.BinaryOperator
		switch p.la().Type {
		case lexer.TokenEq:
			op = ast.OpEqual
		case lexer.TokenNe:
			op = ast.OpNotEqual
		default:
			return left
		}
		p.nextToken()
		left = p.binary(left, op, p.relational(p.unary()))
	}
}

// relational parses comparisons and the is and as type tests.
func (p *Parser) relational(left ast.Expression) ast.Expression {
	left = p.shift(left)
	for {
		var op ast.BinaryOperator
		switch p.la().Type {
		case lexer.TokenLt:
			op = ast.OpLess
		case lexer.TokenGt:
			if isShiftRightAssign(p.s.Cursor()) {
				return left
			}
			op = ast.OpGreater
		case lexer.TokenLe:
			op = ast.OpLessEqual
		case lexer.TokenGe:
			op = ast.OpGreaterEqual
		case lexer.TokenIs:
			p.nextToken()
			t := p.parseTypeWith(typeNoPointers | typeNullableTest)
			is := &ast.TypeOfIsExpression{Expression: left, Type: t}
			p.finish(is, left.GetSpan().Start)
			left = is
			continue
		case lexer.TokenAs:
			p.nextToken()
			t := p.parseTypeWith(typeNoPointers | typeNullableTest)
			as := &ast.CastExpression{Kind: ast.CastTry, Type: t, Expression: left}
			p.finish(as, left.GetSpan().Start)
			left = as
			continue
		default:
			return left
		}
		p.nextToken()
		left = p.binary(left, op, p.shift(p.unary()))
	}
}

// shift parses "<<" and the ">>" formed by two adjacent '>' tokens.
func (p *Parser) shift(left ast.Expression) ast.Expression {
	left = p.additive(left)
	for {
		switch {
		case p.lookaheadIs(lexer.TokenShl):
			p.nextToken()
			left = p.binary(left, ast.OpShiftLeft, p.additive(p.unary()))
		case isShiftRight(p.s.Cursor()):
			p.nextToken()
			p.nextToken()
			left = p.binary(left, ast.OpShiftRight, p.additive(p.unary()))
		default:
			return left
		}
	}
}

func (p *Parser) additive(left ast.Expression) ast.Expression {
	left = p.multiplicative(left)
	for {
		var op ast.BinaryOperator
		switch p.la().Type {
		case lexer.TokenPlus:
			op = ast.OpAdd
		case lexer.TokenMinus:
			op = ast.OpSub
		default:
			return left
		}
		p.nextToken()
		left = p.binary(left, op, p.multiplicative(p.unary()))
	}
}

func (p *Parser) multiplicative(left ast.Expression) ast.Expression {
	for {
		var op ast.BinaryOperator
		switch p.la().Type {
		case lexer.TokenMul:
			op = ast.OpMul
		case lexer.TokenDiv:
			op = ast.OpDiv
		case lexer.TokenMod:
			op = ast.OpMod
		default:
			return left
		}
		p.nextToken()
		left = p.binary(left, op, p.unary())
	}
}

// unary parses prefix operators, casts and primary expressions.
func (p *Parser) unary() ast.Expression {
	start := p.startPos()
	if op, ok := unaryOperators[p.la().Type]; ok {
		p.nextToken()
		operand := p.unary()
		u := &ast.UnaryOperatorExpression{Operator: op, Expression: operand}
		p.finish(u, start)
		return u
	}
	if p.lookaheadIs(lexer.TokenLParen) && isTypeCast(p.s.Cursor()) {
		p.nextToken()
		t := p.parseType()
		p.expect(lexer.TokenRParen)
		operand := p.unary()
		c := &ast.CastExpression{Kind: ast.CastPrimitive, Type: t, Expression: operand}
		p.finish(c, start)
		return c
	}
	return p.primary()
}

// primary parses a primary expression and its postfix chain.
func (p *Parser) primary() ast.Expression {
	start := p.startPos()
	expr := p.primaryAtom()
	for {
		switch p.la().Type {
		case lexer.TokenDot:
			p.nextToken()
			m := &ast.MemberReferenceExpression{Target: expr, Member: p.expectIdent()}
			if p.lookaheadIs(lexer.TokenLt) && isGenericFollowedBy(p.s.Cursor(), lexer.TokenLParen, lexer.TokenDot) {
				m.TypeArguments = p.parseTypeArguments(0)
			}
			p.finish(m, start)
			expr = m
		case lexer.TokenArrow:
			p.nextToken()
			pr := &ast.PointerReferenceExpression{Target: expr, Member: p.expectIdent()}
			p.finish(pr, start)
			expr = pr
		case lexer.TokenLParen:
			call := &ast.InvocationExpression{Target: expr}
			call.Arguments = p.parseArguments(lexer.TokenLParen, lexer.TokenRParen)
			p.finish(call, start)
			expr = call
		case lexer.TokenLBracket:
			if ac, ok := expr.(*ast.ArrayCreateExpression); ok && ac.Initializer != nil {
				p.advisory(diagnostics.CodeArrayCreationIndexed, position.SpanBetween(ac.GetSpan(), p.la().Span))
			}
			idx := &ast.IndexerExpression{Target: expr}
			idx.Indexes = p.parseArguments(lexer.TokenLBracket, lexer.TokenRBracket)
			p.finish(idx, start)
			expr = idx
		case lexer.TokenIncrement, lexer.TokenDecrement:
			op := ast.OpPostIncrement
			if p.lookaheadIs(lexer.TokenDecrement) {
				op = ast.OpPostDecrement
			}
			p.nextToken()
			u := &ast.UnaryOperatorExpression{Operator: op, Expression: expr}
			p.finish(u, start)
			expr = u
		default:
			return expr
		}
	}
}

// primaryAtom parses the operand that starts a primary expression.
func (p *Parser) primaryAtom() ast.Expression {
	start := p.startPos()
	tok := p.la()
	switch tok.Type {
	case lexer.TokenInteger, lexer.TokenReal, lexer.TokenChar, lexer.TokenString,
		lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNull:
		p.nextToken()
		lit := &ast.PrimitiveExpression{Value: literalValue(tok), Literal: tok.Literal}
		p.finish(lit, start)
		return lit

	case lexer.TokenIdentifier:
		if p.s.PeekAt(1).Type == lexer.TokenDoubleColon {
			return p.aliasQualifiedName()
		}
		p.nextToken()
		id := &ast.IdentifierExpression{Name: tok.Literal}
		if p.lookaheadIs(lexer.TokenLt) && isGenericFollowedBy(p.s.Cursor(), lexer.TokenLParen, lexer.TokenDot) {
			id.TypeArguments = p.parseTypeArguments(0)
		}
		p.finish(id, start)
		return id

	case lexer.TokenThis:
		p.nextToken()
		e := &ast.ThisReferenceExpression{}
		p.finish(e, start)
		return e

	case lexer.TokenBase:
		p.nextToken()
		e := &ast.BaseReferenceExpression{}
		p.finish(e, start)
		return e

	case lexer.TokenLParen:
		p.nextToken()
		e := &ast.ParenthesizedExpression{Expression: p.expr()}
		p.expect(lexer.TokenRParen)
		p.finish(e, start)
		return e

	case lexer.TokenNew:
		return p.creationExpression()

	case lexer.TokenTypeof:
		p.nextToken()
		p.expect(lexer.TokenLParen)
		e := &ast.TypeOfExpression{Type: p.parseTypeWith(typeAllowUnbound)}
		p.expect(lexer.TokenRParen)
		p.finish(e, start)
		return e

	case lexer.TokenSizeof:
		p.nextToken()
		p.expect(lexer.TokenLParen)
		e := &ast.SizeOfExpression{Type: p.parseType()}
		p.expect(lexer.TokenRParen)
		p.finish(e, start)
		return e

	case lexer.TokenDefault:
		p.nextToken()
		p.expect(lexer.TokenLParen)
		e := &ast.DefaultValueExpression{Type: p.parseType()}
		p.expect(lexer.TokenRParen)
		p.finish(e, start)
		return e

	case lexer.TokenChecked, lexer.TokenUnchecked:
		p.nextToken()
		p.expect(lexer.TokenLParen)
		inner := p.expr()
		p.expect(lexer.TokenRParen)
		var e ast.Expression
		if tok.Type == lexer.TokenChecked {
			e = &ast.CheckedExpression{Expression: inner}
		} else {
			e = &ast.UncheckedExpression{Expression: inner}
		}
		p.finish(e, start)
		return e

	case lexer.TokenDelegate:
		return p.anonymousMethod()

	case lexer.TokenStackalloc:
		return p.stackalloc()
	}

	if isBuiltinType(tok.Type) {
		p.nextToken()
		t := &ast.TypeReference{Type: tok.Literal, IsKeyword: true}
		p.finish(t, start)
		e := &ast.TypeReferenceExpression{Type: t}
		p.finish(e, start)
		return e
	}

	p.invalidAlternative(ProdExpression)
	bad := &ast.IdentifierExpression{}
	bad.SetSpan(position.Span{Start: start, End: start})
	return bad
}

// literalValue returns the decoded value of a literal token.
func literalValue(tok lexer.Token) any {
	switch tok.Type {
	case lexer.TokenTrue:
		return true
	case lexer.TokenFalse:
		return false
	case lexer.TokenNull:
		return nil
	}
	return tok.Value
}

// aliasQualifiedName parses "alias::Name" in expression position.
func (p *Parser) aliasQualifiedName() ast.Expression {
	start := p.startPos()
	p.requireFeature(FeatureNamespaceAliasQualifier, p.la().Span)
	t := &ast.TypeReference{Alias: p.la().Literal}
	p.nextToken()
	p.nextToken()
	t.Type = p.expectIdent()
	if p.lookaheadIs(lexer.TokenLt) && isGenericFollowedBy(p.s.Cursor(), lexer.TokenLParen, lexer.TokenDot) {
		t.GenericArguments = p.parseTypeArguments(0)
	}
	p.finish(t, start)
	e := &ast.TypeReferenceExpression{Type: t}
	p.finish(e, start)
	return e
}

// parseArguments parses a delimited argument list, open and close
// included.
func (p *Parser) parseArguments(open, close lexer.TokenType) []ast.Expression {
	p.enter(ProdArguments)
	defer p.leave()

	p.expect(open)
	var args []ast.Expression
	if !p.lookaheadIs(close) {
		for {
			args = append(args, p.argument())
			if !p.weakSeparator(lexer.TokenComma, argumentStart, NewTokenSet(close)) {
				break
			}
		}
	}
	p.expect(close)
	return args
}

// argument parses an expression, optionally passed by ref or out.
func (p *Parser) argument() ast.Expression {
	start := p.startPos()
	var dir ast.FieldDirection
	switch p.la().Type {
	case lexer.TokenRef:
		dir = ast.DirectionRef
	case lexer.TokenOut:
		dir = ast.DirectionOut
	default:
		return p.expr()
	}
	p.nextToken()
	d := &ast.DirectionExpression{Direction: dir, Expression: p.expr()}
	p.finish(d, start)
	return d
}

// creationExpression parses object and array creation.
func (p *Parser) creationExpression() ast.Expression {
	start := p.startPos()
	p.expect(lexer.TokenNew)
	t := p.parseTypeWith(typeNoArrays)

	switch p.la().Type {
	case lexer.TokenLParen:
		oc := &ast.ObjectCreateExpression{Type: t}
		oc.Arguments = p.parseArguments(lexer.TokenLParen, lexer.TokenRParen)
		p.finish(oc, start)
		return oc

	case lexer.TokenLBracket:
		ac := &ast.ArrayCreateExpression{ElementType: t}
		if !isDims(p.s.Cursor()) {
			ac.Sizes = p.parseArguments(lexer.TokenLBracket, lexer.TokenRBracket)
		}
		for isDims(p.s.Cursor()) {
			ac.Ranks = append(ac.Ranks, p.parseRank())
		}
		if p.lookaheadIs(lexer.TokenLBrace) {
			ac.Initializer = p.arrayInitializer()
		} else if ac.Sizes == nil {
			p.expectedError(lexer.TokenLBrace)
		}
		p.finish(ac, start)
		return ac
	}

	p.expectedError(lexer.TokenLParen)
	oc := &ast.ObjectCreateExpression{Type: t}
	p.finish(oc, start)
	return oc
}

// arrayInitializer parses "{ a, b, }"; a trailing comma is allowed.
func (p *Parser) arrayInitializer() *ast.ArrayInitializerExpression {
	start := p.startPos()
	init := &ast.ArrayInitializerExpression{}
	p.expect(lexer.TokenLBrace)
	for !p.lookaheadIs(lexer.TokenRBrace) && !p.lookaheadIs(lexer.TokenEOF) {
		before := p.s.Pos()
		init.Elements = append(init.Elements, p.variableInitializer())
		if notFinalComma(p.s.Cursor()) {
			p.nextToken()
			continue
		}
		p.optional(lexer.TokenComma)
		if !p.lookaheadIs(lexer.TokenRBrace) {
			p.ensureProgress(before)
			break
		}
	}
	p.expect(lexer.TokenRBrace)
	p.finish(init, start)
	return init
}

// variableInitializer parses an expression, array initializer or
// stackalloc.
func (p *Parser) variableInitializer() ast.Expression {
	switch p.la().Type {
	case lexer.TokenLBrace:
		return p.arrayInitializer()
	case lexer.TokenStackalloc:
		return p.stackalloc()
	}
	return p.parseExpression()
}

// stackalloc parses "stackalloc T[size]".
func (p *Parser) stackalloc() ast.Expression {
	start := p.startPos()
	p.expect(lexer.TokenStackalloc)
	s := &ast.StackAllocExpression{Type: p.parseTypeWith(typeNoArrays)}
	p.expect(lexer.TokenLBracket)
	s.Size = p.expr()
	p.expect(lexer.TokenRBracket)
	p.finish(s, start)
	return s
}

// anonymousMethod parses "delegate (params) { ... }". The parameter list
// may be omitted.
func (p *Parser) anonymousMethod() ast.Expression {
	start := p.startPos()
	p.requireFeature(FeatureAnonymousMethods, p.la().Span)
	p.expect(lexer.TokenDelegate)
	am := &ast.AnonymousMethodExpression{}
	if p.lookaheadIs(lexer.TokenLParen) {
		am.HasParameterList = true
		am.Parameters = p.parseFormalParameters(lexer.TokenLParen, lexer.TokenRParen)
	}
	am.Body = p.parseBlock()
	p.finish(am, start)
	return am
}
