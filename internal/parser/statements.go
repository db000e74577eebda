package parser

import (
	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/lexer"
)

// parseBlock parses "{ statements }".
func (p *Parser) parseBlock() *ast.BlockStatement {
	p.enter(ProdBlock)
	defer p.leave()

	block := &ast.BlockStatement{}
	p.open(block, p.startPos())
	p.expect(lexer.TokenLBrace)
	for !p.endsStatementList() {
		before := p.s.Pos()
		p.attach(p.parseStatement())
		p.ensureProgress(before)
	}
	p.expect(lexer.TokenRBrace)
	return p.close().(*ast.BlockStatement)
}

// endsStatementList reports whether the lookahead cannot continue a
// statement list: '}', EOF, or a bare void, which only starts a member.
func (p *Parser) endsStatementList() bool {
	return p.lookaheadIs(lexer.TokenRBrace) || p.lookaheadIs(lexer.TokenEOF) ||
		notVoidPointer(p.s.Cursor())
}

// parseStatement parses a labeled statement, a declaration statement or
// an embedded statement.
func (p *Parser) parseStatement() ast.Statement {
	p.enter(ProdStatement)
	defer p.leave()

	start := p.startPos()
	c := p.s.Cursor()
	switch {
	case isLabel(c):
		label := p.la().Literal
		p.nextToken()
		p.nextToken()
		ls := &ast.LabeledStatement{Label: label, Statement: p.parseStatement()}
		p.finish(ls, start)
		return ls

	case p.lookaheadIs(lexer.TokenConst):
		p.nextToken()
		decl := &ast.LocalVariableDeclaration{Modifiers: ast.ModConst, Type: p.parseType()}
		decl.Variables = p.parseVariableDeclarators(true)
		p.expect(lexer.TokenSemicolon)
		p.finish(decl, start)
		return decl

	case isLocalVarDecl(c):
		decl := p.localVariableDeclaration()
		p.expect(lexer.TokenSemicolon)
		p.finish(decl, start)
		return decl
	}
	return p.embeddedStatement()
}

// localVariableDeclaration parses "T a = x, b" without the terminator.
func (p *Parser) localVariableDeclaration() *ast.LocalVariableDeclaration {
	start := p.startPos()
	decl := &ast.LocalVariableDeclaration{Type: p.parseType()}
	decl.Variables = p.parseVariableDeclarators(false)
	p.finish(decl, start)
	return decl
}

// parseVariableDeclarators parses "a = x, b". When needInit is set every
// declarator must have an initializer (constants).
func (p *Parser) parseVariableDeclarators(needInit bool) []*ast.VariableDeclaration {
	var vars []*ast.VariableDeclaration
	for {
		start := p.startPos()
		v := &ast.VariableDeclaration{Name: p.expectIdent()}
		if needInit {
			p.expect(lexer.TokenAssign)
			v.Initializer = p.variableInitializer()
		} else if p.optional(lexer.TokenAssign) {
			v.Initializer = p.variableInitializer()
		}
		p.finish(v, start)
		vars = append(vars, v)
		if !p.weakSeparator(lexer.TokenComma, NewTokenSet(lexer.TokenIdentifier),
			NewTokenSet(lexer.TokenSemicolon, lexer.TokenRParen)) {
			return vars
		}
	}
}

// embeddedStatement parses every statement that is not a declaration or
// label.
func (p *Parser) embeddedStatement() ast.Statement {
	start := p.startPos()
	c := p.s.Cursor()

	switch p.la().Type {
	case lexer.TokenLBrace:
		return p.parseBlock()

	case lexer.TokenSemicolon:
		p.nextToken()
		s := &ast.EmptyStatement{}
		p.finish(s, start)
		return s

	case lexer.TokenChecked, lexer.TokenUnchecked:
		if uncheckedAndBrace(c) {
			checked := p.lookaheadIs(lexer.TokenChecked)
			p.nextToken()
			block := p.parseBlock()
			var s ast.Statement
			if checked {
				s = &ast.CheckedStatement{Block: block}
			} else {
				s = &ast.UncheckedStatement{Block: block}
			}
			p.finish(s, start)
			return s
		}

	case lexer.TokenUnsafe:
		p.nextToken()
		s := &ast.UnsafeStatement{Block: p.parseBlock()}
		p.finish(s, start)
		return s

	case lexer.TokenIf:
		return p.ifStatement()
	case lexer.TokenSwitch:
		return p.switchStatement()
	case lexer.TokenWhile:
		p.nextToken()
		w := &ast.WhileStatement{Condition: p.parenthesizedCondition()}
		w.Body = p.embeddedStatement()
		p.finish(w, start)
		return w
	case lexer.TokenDo:
		p.nextToken()
		d := &ast.DoWhileStatement{Body: p.embeddedStatement()}
		p.expect(lexer.TokenWhile)
		d.Condition = p.parenthesizedCondition()
		p.expect(lexer.TokenSemicolon)
		p.finish(d, start)
		return d
	case lexer.TokenFor:
		return p.forStatement()
	case lexer.TokenForeach:
		return p.foreachStatement()

	case lexer.TokenBreak:
		p.nextToken()
		p.expect(lexer.TokenSemicolon)
		s := &ast.BreakStatement{}
		p.finish(s, start)
		return s
	case lexer.TokenContinue:
		p.nextToken()
		p.expect(lexer.TokenSemicolon)
		s := &ast.ContinueStatement{}
		p.finish(s, start)
		return s
	case lexer.TokenGoto:
		return p.gotoStatement()
	case lexer.TokenReturn:
		p.nextToken()
		r := &ast.ReturnStatement{}
		if !p.lookaheadIs(lexer.TokenSemicolon) {
			r.Expression = p.parseExpression()
		}
		p.expect(lexer.TokenSemicolon)
		p.finish(r, start)
		return r
	case lexer.TokenThrow:
		p.nextToken()
		t := &ast.ThrowStatement{}
		if !p.lookaheadIs(lexer.TokenSemicolon) {
			t.Expression = p.parseExpression()
		}
		p.expect(lexer.TokenSemicolon)
		p.finish(t, start)
		return t

	case lexer.TokenTry:
		return p.tryStatement()
	case lexer.TokenLock:
		p.nextToken()
		l := &ast.LockStatement{Expression: p.parenthesizedCondition()}
		l.Body = p.embeddedStatement()
		p.finish(l, start)
		return l
	case lexer.TokenUsing:
		return p.usingStatement()
	case lexer.TokenFixed:
		return p.fixedStatement()

	case lexer.TokenIdentifier:
		if isYieldStatement(c) {
			return p.yieldStatement()
		}
	}

	if !expressionStart.Has(p.la().Type) {
		p.invalidAlternative(ProdStatement)
		s := &ast.EmptyStatement{}
		p.finish(s, start)
		return s
	}
	es := &ast.ExpressionStatement{Expression: p.parseExpression()}
	p.expect(lexer.TokenSemicolon)
	p.finish(es, start)
	return es
}

// parenthesizedCondition parses "( expr )".
func (p *Parser) parenthesizedCondition() ast.Expression {
	p.expect(lexer.TokenLParen)
	e := p.parseExpression()
	p.expect(lexer.TokenRParen)
	return e
}

func (p *Parser) ifStatement() ast.Statement {
	start := p.startPos()
	p.expect(lexer.TokenIf)
	s := &ast.IfElseStatement{Condition: p.parenthesizedCondition()}
	s.Then = p.embeddedStatement()
	if p.optional(lexer.TokenElse) {
		s.Else = p.embeddedStatement()
	}
	p.finish(s, start)
	return s
}

// isSwitchLabel reports whether the lookahead starts "case" or "default:".
func (p *Parser) isSwitchLabel() bool {
	return p.lookaheadIs(lexer.TokenCase) ||
		(p.lookaheadIs(lexer.TokenDefault) && p.s.PeekAt(1).Type == lexer.TokenColon)
}

func (p *Parser) switchStatement() ast.Statement {
	start := p.startPos()
	p.expect(lexer.TokenSwitch)
	s := &ast.SwitchStatement{Expression: p.parenthesizedCondition()}
	p.expect(lexer.TokenLBrace)
	for !p.endsStatementList() {
		if !p.isSwitchLabel() {
			before := p.s.Pos()
			p.enter(ProdSwitchSection)
			p.invalidAlternative(ProdSwitchSection)
			p.leave()
			p.ensureProgress(before)
			continue
		}
		s.Sections = append(s.Sections, p.switchSection())
	}
	p.expect(lexer.TokenRBrace)
	p.finish(s, start)
	return s
}

// switchSection parses the labels of one section and the statements up
// to the next label.
func (p *Parser) switchSection() *ast.SwitchSection {
	p.enter(ProdSwitchSection)
	defer p.leave()

	section := &ast.SwitchSection{}
	p.open(section, p.startPos())
	for p.isSwitchLabel() {
		start := p.startPos()
		label := &ast.CaseLabel{}
		if p.optional(lexer.TokenCase) {
			label.Expression = p.parseExpression()
		} else {
			p.nextToken()
		}
		p.expect(lexer.TokenColon)
		p.finish(label, start)
		p.attach(label)
	}
	for !p.isSwitchLabel() && !p.endsStatementList() {
		before := p.s.Pos()
		p.attach(p.parseStatement())
		p.ensureProgress(before)
	}
	return p.close().(*ast.SwitchSection)
}

func (p *Parser) forStatement() ast.Statement {
	start := p.startPos()
	p.expect(lexer.TokenFor)
	p.expect(lexer.TokenLParen)
	f := &ast.ForStatement{}
	if !p.lookaheadIs(lexer.TokenSemicolon) {
		if isLocalVarDecl(p.s.Cursor()) {
			f.Initializers = []ast.Statement{p.localVariableDeclaration()}
		} else {
			f.Initializers = p.statementExpressionList()
		}
	}
	p.expect(lexer.TokenSemicolon)
	if !p.lookaheadIs(lexer.TokenSemicolon) {
		f.Condition = p.parseExpression()
	}
	p.expect(lexer.TokenSemicolon)
	if !p.lookaheadIs(lexer.TokenRParen) {
		f.Iterators = p.statementExpressionList()
	}
	p.expect(lexer.TokenRParen)
	f.Body = p.embeddedStatement()
	p.finish(f, start)
	return f
}

// statementExpressionList parses "a++, b = c" as expression statements.
func (p *Parser) statementExpressionList() []ast.Statement {
	var list []ast.Statement
	for {
		start := p.startPos()
		es := &ast.ExpressionStatement{Expression: p.parseExpression()}
		p.finish(es, start)
		list = append(list, es)
		if !p.weakSeparator(lexer.TokenComma, expressionStart,
			NewTokenSet(lexer.TokenSemicolon, lexer.TokenRParen)) {
			return list
		}
	}
}

func (p *Parser) foreachStatement() ast.Statement {
	start := p.startPos()
	p.expect(lexer.TokenForeach)
	p.expect(lexer.TokenLParen)
	f := &ast.ForeachStatement{Type: p.parseType()}
	f.Variable = p.expectIdent()
	p.expect(lexer.TokenIn)
	f.Expression = p.parseExpression()
	p.expect(lexer.TokenRParen)
	f.Body = p.embeddedStatement()
	p.finish(f, start)
	return f
}

func (p *Parser) gotoStatement() ast.Statement {
	start := p.startPos()
	p.expect(lexer.TokenGoto)
	var s ast.Statement
	switch p.la().Type {
	case lexer.TokenCase:
		p.nextToken()
		s = &ast.GotoCaseStatement{Expression: p.parseExpression()}
	case lexer.TokenDefault:
		p.nextToken()
		s = &ast.GotoCaseStatement{}
	default:
		s = &ast.GotoStatement{Label: p.expectIdent()}
	}
	p.expect(lexer.TokenSemicolon)
	p.finish(s, start)
	return s
}

// yieldStatement parses "yield return e;" and "yield break;".
func (p *Parser) yieldStatement() ast.Statement {
	start := p.startPos()
	p.requireFeature(FeatureIterators, p.la().Span)
	p.nextToken()
	y := &ast.YieldStatement{}
	if p.optional(lexer.TokenBreak) {
		y.IsBreak = true
	} else {
		p.expect(lexer.TokenReturn)
		y.Expression = p.parseExpression()
	}
	p.expect(lexer.TokenSemicolon)
	p.finish(y, start)
	return y
}

func (p *Parser) tryStatement() ast.Statement {
	start := p.startPos()
	p.expect(lexer.TokenTry)
	t := &ast.TryCatchStatement{Block: p.parseBlock()}
	for p.lookaheadIs(lexer.TokenCatch) {
		cstart := p.startPos()
		cc := &ast.CatchClause{}
		typed := isTypedCatch(p.s.Cursor())
		p.nextToken()
		if typed {
			p.expect(lexer.TokenLParen)
			cc.Type = p.parseType()
			if p.lookaheadIs(lexer.TokenIdentifier) {
				cc.Variable = p.la().Literal
				p.nextToken()
			}
			p.expect(lexer.TokenRParen)
		}
		cc.Body = p.parseBlock()
		p.finish(cc, cstart)
		t.Catches = append(t.Catches, cc)
	}
	if p.optional(lexer.TokenFinally) {
		t.Finally = p.parseBlock()
	}
	if len(t.Catches) == 0 && t.Finally == nil {
		p.expectedError(lexer.TokenCatch)
	}
	p.finish(t, start)
	return t
}

// usingStatement parses "using (resource) body"; the resource is either
// a local declaration or an expression.
func (p *Parser) usingStatement() ast.Statement {
	start := p.startPos()
	p.expect(lexer.TokenUsing)
	p.expect(lexer.TokenLParen)
	u := &ast.UsingStatement{}
	if isLocalVarDecl(p.s.Cursor()) {
		u.Resource = p.localVariableDeclaration()
	} else {
		rstart := p.startPos()
		es := &ast.ExpressionStatement{Expression: p.parseExpression()}
		p.finish(es, rstart)
		u.Resource = es
	}
	p.expect(lexer.TokenRParen)
	u.Body = p.embeddedStatement()
	p.finish(u, start)
	return u
}

// fixedStatement parses "fixed (T* p = &x, q = ...) body".
func (p *Parser) fixedStatement() ast.Statement {
	start := p.startPos()
	p.expect(lexer.TokenFixed)
	p.expect(lexer.TokenLParen)
	f := &ast.FixedStatement{Type: p.parseType()}
	if f.Type.PointerNestingLevel() == 0 {
		p.advisory(diagnostics.CodeFixedNeedsPointer, f.Type.Span, f.Type.String())
	}
	f.Variables = p.parseVariableDeclarators(true)
	p.expect(lexer.TokenRParen)
	f.Body = p.embeddedStatement()
	p.finish(f, start)
	return f
}
