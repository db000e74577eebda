package ast

// ====== Operators ======

// BinaryOperator enumerates the binary operators of the expression ladder.
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShiftLeft
	OpShiftRight
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpEqual
	OpNotEqual
	OpBitAnd
	OpBitXor
	OpBitOr
	OpLogicalAnd
	OpLogicalOr
	OpNullCoalescing
)

var binaryOperatorText = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpShiftLeft: "<<", OpShiftRight: ">>",
	OpLess: "<", OpGreater: ">", OpLessEqual: "<=", OpGreaterEqual: ">=",
	OpEqual: "==", OpNotEqual: "!=",
	OpBitAnd: "&", OpBitXor: "^", OpBitOr: "|",
	OpLogicalAnd: "&&", OpLogicalOr: "||", OpNullCoalescing: "??",
}

func (op BinaryOperator) String() string { return binaryOperatorText[op] }

// UnaryOperator enumerates prefix and postfix operators.
type UnaryOperator int

const (
	OpPlus UnaryOperator = iota
	OpMinus
	OpNot
	OpBitNot
	OpDereference // *p
	OpAddressOf   // &x
	OpPreIncrement
	OpPreDecrement
	OpPostIncrement
	OpPostDecrement
)

var unaryOperatorText = [...]string{
	OpPlus: "+", OpMinus: "-", OpNot: "!", OpBitNot: "~",
	OpDereference: "*", OpAddressOf: "&",
	OpPreIncrement: "++", OpPreDecrement: "--",
	OpPostIncrement: "++", OpPostDecrement: "--",
}

func (op UnaryOperator) String() string { return unaryOperatorText[op] }

// IsPostfix reports whether the operator follows its operand.
func (op UnaryOperator) IsPostfix() bool {
	return op == OpPostIncrement || op == OpPostDecrement
}

// AssignmentOperator enumerates "=" and the compound assignments.
type AssignmentOperator int

const (
	AssignPlain AssignmentOperator = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignBitAnd
	AssignBitOr
	AssignBitXor
	AssignShiftLeft
	AssignShiftRight
)

var assignmentOperatorText = [...]string{
	AssignPlain: "=", AssignAdd: "+=", AssignSub: "-=", AssignMul: "*=",
	AssignDiv: "/=", AssignMod: "%=", AssignBitAnd: "&=", AssignBitOr: "|=",
	AssignBitXor: "^=", AssignShiftLeft: "<<=", AssignShiftRight: ">>=",
}

func (op AssignmentOperator) String() string { return assignmentOperatorText[op] }

// ====== Expressions ======

// PrimitiveExpression is a literal. Value holds the decoded value (nil for
// null); Literal keeps the source spelling.
type PrimitiveExpression struct {
	NodeBase
	Value   any
	Literal string
}

func (p *PrimitiveExpression) expressionNode() {}

// IdentifierExpression is a simple name, possibly with type arguments
// ("Foo<Bar>" in "Foo<Bar>(1)").
type IdentifierExpression struct {
	NodeBase
	Name          string
	TypeArguments []*TypeReference
}

func (i *IdentifierExpression) expressionNode() {}

// TypeReferenceExpression wraps a type used in expression position
// ("int.Parse", "global::System", "List<int>.Empty").
type TypeReferenceExpression struct {
	NodeBase
	Type *TypeReference
}

func (t *TypeReferenceExpression) expressionNode() {}

// ThisReferenceExpression is "this".
type ThisReferenceExpression struct{ NodeBase }

func (t *ThisReferenceExpression) expressionNode() {}

// BaseReferenceExpression is "base".
type BaseReferenceExpression struct{ NodeBase }

func (b *BaseReferenceExpression) expressionNode() {}

// ParenthesizedExpression is "(expr)".
type ParenthesizedExpression struct {
	NodeBase
	Expression Expression
}

func (p *ParenthesizedExpression) expressionNode() {}

// AssignmentExpression is "left op right".
type AssignmentExpression struct {
	NodeBase
	Left     Expression
	Operator AssignmentOperator
	Right    Expression
}

func (a *AssignmentExpression) expressionNode() {}

// ConditionalExpression is "c ? a : b".
type ConditionalExpression struct {
	NodeBase
	Condition Expression
	True      Expression
	False     Expression
}

func (c *ConditionalExpression) expressionNode() {}

// BinaryOperatorExpression is "left op right".
type BinaryOperatorExpression struct {
	NodeBase
	Left     Expression
	Operator BinaryOperator
	Right    Expression
}

func (b *BinaryOperatorExpression) expressionNode() {}

// UnaryOperatorExpression is a prefix or postfix operator application.
type UnaryOperatorExpression struct {
	NodeBase
	Operator   UnaryOperator
	Expression Expression
}

func (u *UnaryOperatorExpression) expressionNode() {}

// CastKind distinguishes "(T)x" from "x as T".
type CastKind int

const (
	CastPrimitive CastKind = iota // (T)x
	CastTry                       // x as T
)

// CastExpression is a cast or an "as" conversion.
type CastExpression struct {
	NodeBase
	Kind       CastKind
	Type       *TypeReference
	Expression Expression
}

func (c *CastExpression) expressionNode() {}

// TypeOfIsExpression is "x is T".
type TypeOfIsExpression struct {
	NodeBase
	Expression Expression
	Type       *TypeReference
}

func (t *TypeOfIsExpression) expressionNode() {}

// InvocationExpression is "target(args)".
type InvocationExpression struct {
	NodeBase
	Target    Expression
	Arguments []Expression
}

func (i *InvocationExpression) expressionNode() {}

// IndexerExpression is "target[indexes]".
type IndexerExpression struct {
	NodeBase
	Target  Expression
	Indexes []Expression
}

func (i *IndexerExpression) expressionNode() {}

// MemberReferenceExpression is "target.Member", optionally with type
// arguments ("x.Get<int>").
type MemberReferenceExpression struct {
	NodeBase
	Target        Expression
	Member        string
	TypeArguments []*TypeReference
}

func (m *MemberReferenceExpression) expressionNode() {}

// PointerReferenceExpression is "target->Member".
type PointerReferenceExpression struct {
	NodeBase
	Target Expression
	Member string
}

func (p *PointerReferenceExpression) expressionNode() {}

// ObjectCreateExpression is "new T(args)".
type ObjectCreateExpression struct {
	NodeBase
	Type      *TypeReference
	Arguments []Expression
}

func (o *ObjectCreateExpression) expressionNode() {}

// ArrayCreateExpression is "new T[sizes][ranks] { init }". Sizes is nil
// when the first bracket group is a bare rank specifier ("new int[] {1}");
// Ranks lists the comma counts of the remaining bracket groups.
type ArrayCreateExpression struct {
	NodeBase
	ElementType *TypeReference
	Sizes       []Expression
	Ranks       []int
	Initializer *ArrayInitializerExpression
}

// CreateType returns the full array type that the expression creates.
func (a *ArrayCreateExpression) CreateType() *TypeReference {
	t := a.ElementType
	if a.Sizes != nil {
		t = t.WithSuffix(TypeSuffix{Kind: SuffixArray, Rank: len(a.Sizes) - 1})
	}
	for _, r := range a.Ranks {
		t = t.WithSuffix(TypeSuffix{Kind: SuffixArray, Rank: r})
	}
	return t
}

func (a *ArrayCreateExpression) expressionNode() {}

// ArrayInitializerExpression is "{ a, b, c }".
type ArrayInitializerExpression struct {
	NodeBase
	Elements []Expression
}

func (a *ArrayInitializerExpression) expressionNode() {}

// StackAllocExpression is "stackalloc T[size]".
type StackAllocExpression struct {
	NodeBase
	Type *TypeReference
	Size Expression
}

func (s *StackAllocExpression) expressionNode() {}

// TypeOfExpression is "typeof(T)".
type TypeOfExpression struct {
	NodeBase
	Type *TypeReference
}

func (t *TypeOfExpression) expressionNode() {}

// SizeOfExpression is "sizeof(T)".
type SizeOfExpression struct {
	NodeBase
	Type *TypeReference
}

func (s *SizeOfExpression) expressionNode() {}

// DefaultValueExpression is "default(T)".
type DefaultValueExpression struct {
	NodeBase
	Type *TypeReference
}

func (d *DefaultValueExpression) expressionNode() {}

// CheckedExpression is "checked(expr)".
type CheckedExpression struct {
	NodeBase
	Expression Expression
}

func (c *CheckedExpression) expressionNode() {}

// UncheckedExpression is "unchecked(expr)".
type UncheckedExpression struct {
	NodeBase
	Expression Expression
}

func (u *UncheckedExpression) expressionNode() {}

// AnonymousMethodExpression is "delegate (params) { body }". HasParameterList
// is false for "delegate { }", which converts to any delegate signature.
type AnonymousMethodExpression struct {
	NodeBase
	HasParameterList bool
	Parameters       []*ParameterDeclaration
	Body             *BlockStatement
}

func (a *AnonymousMethodExpression) expressionNode() {}

// FieldDirection is the passing mode of an argument.
type FieldDirection int

const (
	DirectionRef FieldDirection = iota
	DirectionOut
)

func (d FieldDirection) String() string {
	if d == DirectionOut {
		return "out"
	}
	return "ref"
}

// DirectionExpression is a "ref x" or "out x" argument.
type DirectionExpression struct {
	NodeBase
	Direction  FieldDirection
	Expression Expression
}

func (d *DirectionExpression) expressionNode() {}

// NamedArgumentExpression is a named attribute argument "Name = value".
type NamedArgumentExpression struct {
	NodeBase
	Name  string
	Value Expression
}

func (n *NamedArgumentExpression) expressionNode() {}
