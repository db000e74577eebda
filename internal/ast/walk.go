package ast

// Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children of
// node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first, source order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		Walk(v, child)
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order: It starts by calling
// f(node); node must not be nil. If f returns true, Inspect invokes f
// recursively for each of the non-nil children of node, followed by a
// call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// children accumulates non-nil child nodes.
type children []Node

func (c *children) add(nodes ...Node) {
	for _, n := range nodes {
		if n == nil || isNilNode(n) {
			continue
		}
		*c = append(*c, n)
	}
}

func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *TypeReference:
		return v == nil
	case *BlockStatement:
		return v == nil
	case *Accessor:
		return v == nil
	case *ArrayInitializerExpression:
		return v == nil
	case *ConstructorInitializer:
		return v == nil
	}
	return false
}

func (c *children) attrs(sections []*AttributeSection) {
	for _, s := range sections {
		c.add(s)
	}
}

func (c *children) types(refs []*TypeReference) {
	for _, r := range refs {
		if r != nil {
			c.add(r)
		}
	}
}

func (c *children) exprs(list []Expression) {
	for _, e := range list {
		c.add(e)
	}
}

func (c *children) stmts(list []Statement) {
	for _, s := range list {
		c.add(s)
	}
}

func (c *children) params(list []*ParameterDeclaration) {
	for _, p := range list {
		c.add(p)
	}
}

func (c *children) vars(list []*VariableDeclaration) {
	for _, v := range list {
		c.add(v)
	}
}

func (c *children) templates(list []*TemplateDefinition) {
	for _, t := range list {
		c.add(t)
	}
}

func (c *children) constraints(list []*ConstraintClause) {
	for _, cc := range list {
		c.add(cc)
	}
}

// accessors adds a pair of accessors in source order.
func (c *children) accessors(a, b *Accessor) {
	if a != nil && b != nil && b.Span.Start.Offset < a.Span.Start.Offset {
		a, b = b, a
	}
	c.add(a, b)
}

// Children returns the direct children of node in source order.
// TemplateDefinition.Bases are reached through the owning ConstraintClause.
func Children(node Node) []Node {
	var c children
	switch n := node.(type) {
	case *CompilationUnit:
		c.add(n.Children...)
	case *UsingDeclaration:
		c.add(n.Target)
	case *NamespaceDeclaration:
		c.add(n.Children...)
	case *AttributeSection:
		for _, a := range n.Attributes {
			c.add(a)
		}
	case *Attribute:
		c.add(n.Name)
		c.exprs(n.Positional)
		for _, na := range n.Named {
			c.add(na)
		}

	case *TypeReference:
		c.add(n.Outer)
		c.types(n.GenericArguments)
	case *TemplateDefinition:
		c.attrs(n.Attributes)
	case *ConstraintClause:
		c.types(n.Bases)

	case *TypeDeclaration:
		c.attrs(n.Attributes)
		if n.Kind == KindDelegate {
			c.add(n.ReturnType)
		}
		c.templates(n.Templates)
		c.params(n.Parameters)
		c.types(n.BaseTypes)
		c.constraints(n.Constraints)
		c.add(n.Members...)
	case *ParameterDeclaration:
		c.attrs(n.Attributes)
		c.add(n.Type)
	case *VariableDeclaration:
		c.add(n.FixedSize, n.Initializer)
	case *FieldDeclaration:
		c.attrs(n.Attributes)
		c.add(n.Type)
		c.vars(n.Variables)
	case *MethodDeclaration:
		c.attrs(n.Attributes)
		c.add(n.ReturnType, n.Interface)
		c.templates(n.Templates)
		c.params(n.Parameters)
		c.constraints(n.Constraints)
		c.add(n.Body)
	case *Accessor:
		c.attrs(n.Attributes)
		c.add(n.Body)
	case *PropertyDeclaration:
		c.attrs(n.Attributes)
		c.add(n.Type, n.Interface)
		c.accessors(n.Get, n.Set)
	case *EventDeclaration:
		c.attrs(n.Attributes)
		c.add(n.Type, n.Interface)
		c.vars(n.Variables)
		c.accessors(n.Add, n.Remove)
	case *IndexerDeclaration:
		c.attrs(n.Attributes)
		c.add(n.Type, n.Interface)
		c.params(n.Parameters)
		c.accessors(n.Get, n.Set)
	case *ConstructorInitializer:
		c.exprs(n.Arguments)
	case *ConstructorDeclaration:
		c.attrs(n.Attributes)
		c.params(n.Parameters)
		c.add(n.Initializer, n.Body)
	case *DestructorDeclaration:
		c.attrs(n.Attributes)
		c.add(n.Body)
	case *OperatorDeclaration:
		c.attrs(n.Attributes)
		c.add(n.ReturnType)
		c.params(n.Parameters)
		c.add(n.Body)

	case *BlockStatement:
		c.stmts(n.Statements)
	case *LocalVariableDeclaration:
		c.add(n.Type)
		c.vars(n.Variables)
	case *LabeledStatement:
		c.add(n.Statement)
	case *ExpressionStatement:
		c.add(n.Expression)
	case *IfElseStatement:
		c.add(n.Condition, n.Then, n.Else)
	case *SwitchStatement:
		c.add(n.Expression)
		for _, s := range n.Sections {
			c.add(s)
		}
	case *SwitchSection:
		for _, l := range n.Labels {
			c.add(l)
		}
		c.stmts(n.Statements)
	case *CaseLabel:
		c.add(n.Expression)
	case *WhileStatement:
		c.add(n.Condition, n.Body)
	case *DoWhileStatement:
		c.add(n.Body, n.Condition)
	case *ForStatement:
		c.stmts(n.Initializers)
		c.add(n.Condition)
		c.stmts(n.Iterators)
		c.add(n.Body)
	case *ForeachStatement:
		c.add(n.Type, n.Expression, n.Body)
	case *GotoCaseStatement:
		c.add(n.Expression)
	case *ReturnStatement:
		c.add(n.Expression)
	case *ThrowStatement:
		c.add(n.Expression)
	case *YieldStatement:
		c.add(n.Expression)
	case *TryCatchStatement:
		c.add(n.Block)
		for _, cc := range n.Catches {
			c.add(cc)
		}
		c.add(n.Finally)
	case *CatchClause:
		c.add(n.Type, n.Body)
	case *UsingStatement:
		c.add(n.Resource, n.Body)
	case *LockStatement:
		c.add(n.Expression, n.Body)
	case *FixedStatement:
		c.add(n.Type)
		c.vars(n.Variables)
		c.add(n.Body)
	case *CheckedStatement:
		c.add(n.Block)
	case *UncheckedStatement:
		c.add(n.Block)
	case *UnsafeStatement:
		c.add(n.Block)

	case *IdentifierExpression:
		c.types(n.TypeArguments)
	case *TypeReferenceExpression:
		c.add(n.Type)
	case *ParenthesizedExpression:
		c.add(n.Expression)
	case *AssignmentExpression:
		c.add(n.Left, n.Right)
	case *ConditionalExpression:
		c.add(n.Condition, n.True, n.False)
	case *BinaryOperatorExpression:
		c.add(n.Left, n.Right)
	case *UnaryOperatorExpression:
		c.add(n.Expression)
	case *CastExpression:
		if n.Kind == CastTry {
			c.add(n.Expression, n.Type)
		} else {
			c.add(n.Type, n.Expression)
		}
	case *TypeOfIsExpression:
		c.add(n.Expression, n.Type)
	case *InvocationExpression:
		c.add(n.Target)
		c.exprs(n.Arguments)
	case *IndexerExpression:
		c.add(n.Target)
		c.exprs(n.Indexes)
	case *MemberReferenceExpression:
		c.add(n.Target)
		c.types(n.TypeArguments)
	case *PointerReferenceExpression:
		c.add(n.Target)
	case *ObjectCreateExpression:
		c.add(n.Type)
		c.exprs(n.Arguments)
	case *ArrayCreateExpression:
		c.add(n.ElementType)
		c.exprs(n.Sizes)
		c.add(n.Initializer)
	case *ArrayInitializerExpression:
		c.exprs(n.Elements)
	case *StackAllocExpression:
		c.add(n.Type, n.Size)
	case *TypeOfExpression:
		c.add(n.Type)
	case *SizeOfExpression:
		c.add(n.Type)
	case *DefaultValueExpression:
		c.add(n.Type)
	case *CheckedExpression:
		c.add(n.Expression)
	case *UncheckedExpression:
		c.add(n.Expression)
	case *AnonymousMethodExpression:
		c.params(n.Parameters)
		c.add(n.Body)
	case *DirectionExpression:
		c.add(n.Expression)
	case *NamedArgumentExpression:
		c.add(n.Value)
	}
	return c
}
