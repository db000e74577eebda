package ast

import (
	"strings"
)

// SuffixKind identifies one type wrapping written after a type name.
type SuffixKind int

const (
	SuffixNullable SuffixKind = iota // T?
	SuffixPointer                    // T*
	SuffixArray                      // T[] / T[,]
)

// TypeSuffix is one wrapping applied to a type. Rank is the number of
// commas inside the brackets of an array suffix.
type TypeSuffix struct {
	Kind SuffixKind
	Rank int
}

// TypeReference names a type as written in source. Suffixes keeps the
// nullable, pointer and array wrappings in the order they were parsed;
// PointerNestingLevel, RankSpecifier and IsNullable are derived from it.
type TypeReference struct {
	NodeBase
	Type             string           // qualified name or keyword spelling
	Alias            string           // "alias" of alias::Name
	GenericArguments []*TypeReference // nil entries for unbound arguments (typeof(Dictionary<,>))
	Outer            *TypeReference   // enclosing generic type for A<T>.B
	IsKeyword        bool             // built-in type keyword such as int or void
	Suffixes         []TypeSuffix
}

// NewTypeReference creates a reference to a named type.
func NewTypeReference(name string) *TypeReference {
	return &TypeReference{Type: name}
}

// IsGlobal reports whether the name was qualified with "global::".
func (t *TypeReference) IsGlobal() bool { return t.Alias == "global" }

// IsVoid reports whether t is the plain void keyword.
func (t *TypeReference) IsVoid() bool {
	return t.IsKeyword && t.Type == "void" && len(t.Suffixes) == 0
}

// PointerNestingLevel counts the pointer suffixes.
func (t *TypeReference) PointerNestingLevel() int {
	n := 0
	for _, s := range t.Suffixes {
		if s.Kind == SuffixPointer {
			n++
		}
	}
	return n
}

// RankSpecifier returns the comma count of every array suffix, outermost first.
func (t *TypeReference) RankSpecifier() []int {
	var ranks []int
	for _, s := range t.Suffixes {
		if s.Kind == SuffixArray {
			ranks = append(ranks, s.Rank)
		}
	}
	return ranks
}

// IsArray reports whether any array suffix is present.
func (t *TypeReference) IsArray() bool { return len(t.RankSpecifier()) > 0 }

// IsNullable reports whether a nullable suffix is present.
func (t *TypeReference) IsNullable() bool {
	for _, s := range t.Suffixes {
		if s.Kind == SuffixNullable {
			return true
		}
	}
	return false
}

// IsUnbound reports whether t is a generic type written without arguments
// ("Dictionary<,>").
func (t *TypeReference) IsUnbound() bool {
	for _, arg := range t.GenericArguments {
		if arg != nil {
			return false
		}
	}
	return len(t.GenericArguments) > 0
}

// WithSuffix returns a copy of t with s appended. The copy shares the
// generic arguments of t.
func (t *TypeReference) WithSuffix(s TypeSuffix) *TypeReference {
	c := *t
	c.Suffixes = append(append([]TypeSuffix(nil), t.Suffixes...), s)
	return &c
}

// StripLastIdentifier splits the final dotted component off a qualified
// name. It is used to turn "IList<T>.Count" into the interface IList<T>
// and the member name Count. ok is false when nothing can be split.
func (t *TypeReference) StripLastIdentifier() (rest *TypeReference, last string, ok bool) {
	if len(t.GenericArguments) > 0 || len(t.Suffixes) > 0 {
		return nil, "", false
	}
	i := strings.LastIndexByte(t.Type, '.')
	if i < 0 {
		if t.Outer != nil {
			return t.Outer, t.Type, true
		}
		return nil, "", false
	}
	c := *t
	c.Type = t.Type[:i]
	return &c, t.Type[i+1:], true
}

// String renders t in source form.
func (t *TypeReference) String() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *TypeReference) write(sb *strings.Builder) {
	if t.Outer != nil {
		t.Outer.write(sb)
		sb.WriteByte('.')
	} else if t.Alias != "" {
		sb.WriteString(t.Alias)
		sb.WriteString("::")
	}
	sb.WriteString(t.Type)
	if len(t.GenericArguments) > 0 {
		sb.WriteByte('<')
		for i, arg := range t.GenericArguments {
			if i > 0 {
				sb.WriteByte(',')
				if arg != nil {
					sb.WriteByte(' ')
				}
			}
			if arg != nil {
				arg.write(sb)
			}
		}
		sb.WriteByte('>')
	}
	for _, s := range t.Suffixes {
		switch s.Kind {
		case SuffixNullable:
			sb.WriteByte('?')
		case SuffixPointer:
			sb.WriteByte('*')
		case SuffixArray:
			sb.WriteByte('[')
			sb.WriteString(strings.Repeat(",", s.Rank))
			sb.WriteByte(']')
		}
	}
}

// TemplateDefinition is a type parameter of a generic type, method or
// delegate. Bases and the constraint flags are filled from the matching
// where clause; the same TypeReference values are owned by that
// ConstraintClause in the tree.
type TemplateDefinition struct {
	NodeBase
	Name       string
	Attributes []*AttributeSection
	Bases      []*TypeReference

	ClassConstraint       bool
	StructConstraint      bool
	ConstructorConstraint bool
}

// ConstraintClause is one "where T : ..." clause.
type ConstraintClause struct {
	NodeBase
	TypeParameter string
	Bases         []*TypeReference

	ClassConstraint       bool
	StructConstraint      bool
	ConstructorConstraint bool
}

// ApplyConstraints copies the constraint clauses onto the matching
// template definitions. Clauses naming unknown parameters are returned.
func ApplyConstraints(templates []*TemplateDefinition, clauses []*ConstraintClause) []*ConstraintClause {
	var unknown []*ConstraintClause
	for _, c := range clauses {
		found := false
		for _, td := range templates {
			if td.Name != c.TypeParameter {
				continue
			}
			td.Bases = append(td.Bases, c.Bases...)
			td.ClassConstraint = td.ClassConstraint || c.ClassConstraint
			td.StructConstraint = td.StructConstraint || c.StructConstraint
			td.ConstructorConstraint = td.ConstructorConstraint || c.ConstructorConstraint
			found = true
			break
		}
		if !found {
			unknown = append(unknown, c)
		}
	}
	return unknown
}
