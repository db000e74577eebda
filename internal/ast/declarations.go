package ast

// ====== Type declarations ======

// TypeKind distinguishes the flavours of TypeDeclaration.
type TypeKind int

const (
	KindClass TypeKind = iota
	KindStruct
	KindInterface
	KindEnum
	KindDelegate
)

func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindDelegate:
		return "delegate"
	}
	return "unknown"
}

// TypeDeclaration is a class, struct, interface, enum or delegate.
// For enums BaseTypes holds the optional underlying integral type and
// Members holds one FieldDeclaration per enum member. Delegates use
// ReturnType and Parameters and have no members.
type TypeDeclaration struct {
	NodeBase
	Kind        TypeKind
	Name        string
	Attributes  []*AttributeSection
	Modifiers   Modifiers
	Templates   []*TemplateDefinition
	BaseTypes   []*TypeReference
	Constraints []*ConstraintClause
	Members     []Node

	ReturnType *TypeReference
	Parameters []*ParameterDeclaration
}

func (t *TypeDeclaration) AddChild(n Node) bool {
	if _, ok := n.(Member); !ok {
		return false
	}
	t.Members = append(t.Members, n)
	return true
}

func (t *TypeDeclaration) memberNode() {}

// ====== Members ======

// ParamModifier is the passing mode of a formal parameter.
type ParamModifier int

const (
	ParamIn ParamModifier = iota
	ParamRef
	ParamOut
	ParamArray // params T[] x
)

func (m ParamModifier) String() string {
	switch m {
	case ParamRef:
		return "ref"
	case ParamOut:
		return "out"
	case ParamArray:
		return "params"
	}
	return ""
}

// ParameterDeclaration is one formal parameter.
type ParameterDeclaration struct {
	NodeBase
	Attributes []*AttributeSection
	Modifier   ParamModifier
	Type       *TypeReference
	Name       string
}

// VariableDeclaration is one declarator of a field, constant, event or
// local variable, or one enum member. FixedSize is the length of a fixed
// size buffer ("fixed int buf[16];").
type VariableDeclaration struct {
	NodeBase
	Name        string
	FixedSize   Expression
	Initializer Expression
}

// FieldDeclaration declares fields, constants (ModConst) or, when Type is
// nil, one enum member.
type FieldDeclaration struct {
	NodeBase
	Attributes []*AttributeSection
	Modifiers  Modifiers
	Type       *TypeReference
	Variables  []*VariableDeclaration
}

func (f *FieldDeclaration) memberNode() {}

// MethodDeclaration is a method, optionally an explicit interface
// implementation (Interface != nil). Body is nil for abstract, extern and
// interface methods.
type MethodDeclaration struct {
	NodeBase
	Attributes  []*AttributeSection
	Modifiers   Modifiers
	ReturnType  *TypeReference
	Interface   *TypeReference
	Name        string
	Templates   []*TemplateDefinition
	Parameters  []*ParameterDeclaration
	Constraints []*ConstraintClause
	Body        *BlockStatement
}

func (m *MethodDeclaration) memberNode() {}

// AccessorKind names a property, indexer or event accessor.
type AccessorKind int

const (
	AccessorGet AccessorKind = iota
	AccessorSet
	AccessorAdd
	AccessorRemove
)

func (k AccessorKind) String() string {
	return [...]string{"get", "set", "add", "remove"}[k]
}

// Accessor is a get/set/add/remove region. Body is nil for "get;".
type Accessor struct {
	NodeBase
	Kind       AccessorKind
	Attributes []*AttributeSection
	Modifiers  Modifiers
	Body       *BlockStatement
}

// PropertyDeclaration is a property with its get and set regions.
type PropertyDeclaration struct {
	NodeBase
	Attributes []*AttributeSection
	Modifiers  Modifiers
	Type       *TypeReference
	Interface  *TypeReference
	Name       string
	Get        *Accessor
	Set        *Accessor
}

func (p *PropertyDeclaration) memberNode() {}

// EventDeclaration is either a field-like event with one or more
// declarators or an event with add and remove regions.
type EventDeclaration struct {
	NodeBase
	Attributes []*AttributeSection
	Modifiers  Modifiers
	Type       *TypeReference
	Interface  *TypeReference
	Variables  []*VariableDeclaration
	Add        *Accessor
	Remove     *Accessor
}

// Name returns the name of the first declarator.
func (e *EventDeclaration) Name() string {
	if len(e.Variables) == 0 {
		return ""
	}
	return e.Variables[0].Name
}

func (e *EventDeclaration) memberNode() {}

// IndexerDeclaration is "T this[params] { get; set; }".
type IndexerDeclaration struct {
	NodeBase
	Attributes []*AttributeSection
	Modifiers  Modifiers
	Type       *TypeReference
	Interface  *TypeReference
	Parameters []*ParameterDeclaration
	Get        *Accessor
	Set        *Accessor
}

func (i *IndexerDeclaration) memberNode() {}

// ConstructorInitializerKind selects base(...) or this(...).
type ConstructorInitializerKind int

const (
	InitializerBase ConstructorInitializerKind = iota
	InitializerThis
)

// ConstructorInitializer is the ": base(...)" or ": this(...)" call.
type ConstructorInitializer struct {
	NodeBase
	Kind      ConstructorInitializerKind
	Arguments []Expression
}

// ConstructorDeclaration is an instance or static constructor.
type ConstructorDeclaration struct {
	NodeBase
	Attributes  []*AttributeSection
	Modifiers   Modifiers
	Name        string
	Parameters  []*ParameterDeclaration
	Initializer *ConstructorInitializer
	Body        *BlockStatement
}

func (c *ConstructorDeclaration) memberNode() {}

// DestructorDeclaration is "~Name() { ... }".
type DestructorDeclaration struct {
	NodeBase
	Attributes []*AttributeSection
	Modifiers  Modifiers
	Name       string
	Body       *BlockStatement
}

func (d *DestructorDeclaration) memberNode() {}

// ConversionKind marks user-defined conversion operators.
type ConversionKind int

const (
	ConversionNone ConversionKind = iota
	ConversionImplicit
	ConversionExplicit
)

// OperatorDeclaration is an overloaded operator ("operator +") or a
// conversion ("implicit operator int"). For conversions ReturnType is the
// target type and Operator is empty.
type OperatorDeclaration struct {
	NodeBase
	Attributes []*AttributeSection
	Modifiers  Modifiers
	Conversion ConversionKind
	ReturnType *TypeReference
	Operator   string
	Parameters []*ParameterDeclaration
	Body       *BlockStatement
}

func (o *OperatorDeclaration) memberNode() {}
