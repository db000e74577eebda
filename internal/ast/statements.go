package ast

// BlockStatement is a braced statement list.
type BlockStatement struct {
	NodeBase
	Statements []Statement
}

func (b *BlockStatement) AddChild(n Node) bool {
	s, ok := n.(Statement)
	if ok {
		b.Statements = append(b.Statements, s)
	}
	return ok
}

func (b *BlockStatement) statementNode() {}

// EmptyStatement is a lone ";".
type EmptyStatement struct{ NodeBase }

func (e *EmptyStatement) statementNode() {}

// LocalVariableDeclaration declares locals, or local constants when
// Modifiers has ModConst.
type LocalVariableDeclaration struct {
	NodeBase
	Modifiers Modifiers
	Type      *TypeReference
	Variables []*VariableDeclaration
}

func (l *LocalVariableDeclaration) statementNode() {}

// LabeledStatement is "label: statement".
type LabeledStatement struct {
	NodeBase
	Label     string
	Statement Statement
}

func (l *LabeledStatement) statementNode() {}

// ExpressionStatement evaluates an expression for its side effects.
type ExpressionStatement struct {
	NodeBase
	Expression Expression
}

func (e *ExpressionStatement) statementNode() {}

// IfElseStatement is "if (c) a else b"; Else is nil when absent.
type IfElseStatement struct {
	NodeBase
	Condition Expression
	Then      Statement
	Else      Statement
}

func (i *IfElseStatement) statementNode() {}

// SwitchStatement is a switch with its sections.
type SwitchStatement struct {
	NodeBase
	Expression Expression
	Sections   []*SwitchSection
}

func (s *SwitchStatement) statementNode() {}

// SwitchSection groups consecutive case labels with the statements that
// follow them.
type SwitchSection struct {
	NodeBase
	Labels     []*CaseLabel
	Statements []Statement
}

func (s *SwitchSection) AddChild(n Node) bool {
	switch c := n.(type) {
	case *CaseLabel:
		s.Labels = append(s.Labels, c)
		return true
	case Statement:
		s.Statements = append(s.Statements, c)
		return true
	}
	return false
}

// CaseLabel is "case expr:" or, when Expression is nil, "default:".
type CaseLabel struct {
	NodeBase
	Expression Expression
}

// IsDefault reports whether the label is "default:".
func (c *CaseLabel) IsDefault() bool { return c.Expression == nil }

// WhileStatement is "while (c) body".
type WhileStatement struct {
	NodeBase
	Condition Expression
	Body      Statement
}

func (w *WhileStatement) statementNode() {}

// DoWhileStatement is "do body while (c);".
type DoWhileStatement struct {
	NodeBase
	Body      Statement
	Condition Expression
}

func (d *DoWhileStatement) statementNode() {}

// ForStatement is "for (init; cond; iter) body". Initializers hold either
// one local declaration or expression statements.
type ForStatement struct {
	NodeBase
	Initializers []Statement
	Condition    Expression
	Iterators    []Statement
	Body         Statement
}

func (f *ForStatement) statementNode() {}

// ForeachStatement is "foreach (T v in expr) body".
type ForeachStatement struct {
	NodeBase
	Type       *TypeReference
	Variable   string
	Expression Expression
	Body       Statement
}

func (f *ForeachStatement) statementNode() {}

// BreakStatement is "break;".
type BreakStatement struct{ NodeBase }

func (b *BreakStatement) statementNode() {}

// ContinueStatement is "continue;".
type ContinueStatement struct{ NodeBase }

func (c *ContinueStatement) statementNode() {}

// GotoStatement is "goto label;".
type GotoStatement struct {
	NodeBase
	Label string
}

func (g *GotoStatement) statementNode() {}

// GotoCaseStatement is "goto case expr;" or, with nil Expression, "goto default;".
type GotoCaseStatement struct {
	NodeBase
	Expression Expression
}

// IsDefault reports whether the statement is "goto default;".
func (g *GotoCaseStatement) IsDefault() bool { return g.Expression == nil }

func (g *GotoCaseStatement) statementNode() {}

// ReturnStatement is "return expr;"; Expression may be nil.
type ReturnStatement struct {
	NodeBase
	Expression Expression
}

func (r *ReturnStatement) statementNode() {}

// ThrowStatement is "throw expr;"; Expression is nil for a rethrow.
type ThrowStatement struct {
	NodeBase
	Expression Expression
}

func (t *ThrowStatement) statementNode() {}

// YieldStatement is "yield return expr;" or "yield break;".
type YieldStatement struct {
	NodeBase
	IsBreak    bool
	Expression Expression
}

func (y *YieldStatement) statementNode() {}

// TryCatchStatement is try with its catch clauses and optional finally.
type TryCatchStatement struct {
	NodeBase
	Block   *BlockStatement
	Catches []*CatchClause
	Finally *BlockStatement
}

func (t *TryCatchStatement) statementNode() {}

// CatchClause is a general ("catch { }") or typed catch clause.
type CatchClause struct {
	NodeBase
	Type     *TypeReference
	Variable string
	Body     *BlockStatement
}

// UsingStatement is "using (resource) body". Resource is a local
// declaration or an expression statement.
type UsingStatement struct {
	NodeBase
	Resource Statement
	Body     Statement
}

func (u *UsingStatement) statementNode() {}

// LockStatement is "lock (expr) body".
type LockStatement struct {
	NodeBase
	Expression Expression
	Body       Statement
}

func (l *LockStatement) statementNode() {}

// FixedStatement is "fixed (T* p = expr, ...) body".
type FixedStatement struct {
	NodeBase
	Type      *TypeReference
	Variables []*VariableDeclaration
	Body      Statement
}

func (f *FixedStatement) statementNode() {}

// CheckedStatement is "checked { }".
type CheckedStatement struct {
	NodeBase
	Block *BlockStatement
}

func (c *CheckedStatement) statementNode() {}

// UncheckedStatement is "unchecked { }".
type UncheckedStatement struct {
	NodeBase
	Block *BlockStatement
}

func (u *UncheckedStatement) statementNode() {}

// UnsafeStatement is "unsafe { }".
type UnsafeStatement struct {
	NodeBase
	Block *BlockStatement
}

func (u *UnsafeStatement) statementNode() {}
