package ast

import (
	"reflect"
	"testing"
)

func TestTypeReferenceSuffixOrder(t *testing.T) {
	tr := &TypeReference{Type: "int", IsKeyword: true}
	tr = tr.WithSuffix(TypeSuffix{Kind: SuffixNullable})
	tr = tr.WithSuffix(TypeSuffix{Kind: SuffixPointer})
	tr = tr.WithSuffix(TypeSuffix{Kind: SuffixArray, Rank: 1})
	tr = tr.WithSuffix(TypeSuffix{Kind: SuffixPointer})
	tr = tr.WithSuffix(TypeSuffix{Kind: SuffixArray})

	if got, want := tr.String(), "int?*[,]*[]"; got != want {
		t.Fatalf("String got=%q want=%q", got, want)
	}
	if got := tr.PointerNestingLevel(); got != 2 {
		t.Fatalf("PointerNestingLevel got=%d want=2", got)
	}
	if got := tr.RankSpecifier(); !reflect.DeepEqual(got, []int{1, 0}) {
		t.Fatalf("RankSpecifier got=%v", got)
	}
	if !tr.IsNullable() || !tr.IsArray() {
		t.Fatalf("IsNullable/IsArray mismatch")
	}
}

func TestTypeReferenceString(t *testing.T) {
	list := &TypeReference{
		Type:             "System.Collections.Generic.List",
		Alias:            "global",
		GenericArguments: []*TypeReference{{Type: "List", GenericArguments: []*TypeReference{{Type: "int", IsKeyword: true}}}},
	}
	if got, want := list.String(), "global::System.Collections.Generic.List<List<int>>"; got != want {
		t.Fatalf("got=%q want=%q", got, want)
	}
	if !list.IsGlobal() {
		t.Fatalf("IsGlobal should be true")
	}

	unbound := &TypeReference{Type: "Dictionary", GenericArguments: []*TypeReference{nil, nil}}
	if got := unbound.String(); got != "Dictionary<,>" {
		t.Fatalf("unbound got=%q", got)
	}
	if !unbound.IsUnbound() {
		t.Fatalf("IsUnbound should be true")
	}

	inner := &TypeReference{Type: "Enumerator", Outer: &TypeReference{Type: "List", GenericArguments: []*TypeReference{{Type: "T"}}}}
	if got := inner.String(); got != "List<T>.Enumerator" {
		t.Fatalf("inner got=%q", got)
	}
}

func TestStripLastIdentifier(t *testing.T) {
	rest, last, ok := NewTypeReference("System.IDisposable.Dispose").StripLastIdentifier()
	if !ok || last != "Dispose" || rest.Type != "System.IDisposable" {
		t.Fatalf("got rest=%v last=%q ok=%v", rest, last, ok)
	}

	outer := &TypeReference{Type: "IList", GenericArguments: []*TypeReference{{Type: "T"}}}
	rest, last, ok = (&TypeReference{Type: "Count", Outer: outer}).StripLastIdentifier()
	if !ok || last != "Count" || rest != outer {
		t.Fatalf("generic outer got rest=%v last=%q ok=%v", rest, last, ok)
	}

	if _, _, ok := NewTypeReference("Foo").StripLastIdentifier(); ok {
		t.Fatalf("simple name must not strip")
	}
}

func TestModifiers(t *testing.T) {
	m := ModPublic | ModStatic | ModConst
	if got := m.String(); got != "public static const" {
		t.Fatalf("String got=%q", got)
	}
	if bad := m.Disallowed(Indexers); bad != ModStatic|ModConst {
		t.Fatalf("Disallowed got=%v", bad.Names())
	}
	if !m.Has(ModPublic) || m.Has(ModPrivate) || !m.Any(Visibility) {
		t.Fatalf("Has/Any mismatch")
	}
	if m.Count() != 3 {
		t.Fatalf("Count got=%d", m.Count())
	}
}

func TestApplyConstraints(t *testing.T) {
	tps := []*TemplateDefinition{{Name: "K"}, {Name: "V"}}
	clauses := []*ConstraintClause{
		{TypeParameter: "V", ClassConstraint: true, ConstructorConstraint: true},
		{TypeParameter: "X", Bases: []*TypeReference{NewTypeReference("IComparable")}},
	}
	unknown := ApplyConstraints(tps, clauses)
	if len(unknown) != 1 || unknown[0].TypeParameter != "X" {
		t.Fatalf("unknown got=%v", unknown)
	}
	if !tps[1].ClassConstraint || !tps[1].ConstructorConstraint || tps[0].ClassConstraint {
		t.Fatalf("constraints not applied: %+v", tps)
	}
}

func TestInspectOrder(t *testing.T) {
	call := &InvocationExpression{
		Target: &IdentifierExpression{Name: "f"},
		Arguments: []Expression{
			&PrimitiveExpression{Value: int32(1), Literal: "1"},
			&BinaryOperatorExpression{
				Left:     &IdentifierExpression{Name: "a"},
				Operator: OpAdd,
				Right:    &IdentifierExpression{Name: "b"},
			},
		},
	}
	var names []string
	Inspect(call, func(n Node) bool {
		switch v := n.(type) {
		case *IdentifierExpression:
			names = append(names, v.Name)
		case *PrimitiveExpression:
			names = append(names, v.Literal)
		case *BinaryOperatorExpression:
			names = append(names, v.Operator.String())
		}
		return true
	})
	if want := []string{"f", "1", "+", "a", "b"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("got=%v want=%v", names, want)
	}

	stmt := &IfElseStatement{Condition: &IdentifierExpression{Name: "c"}, Then: &EmptyStatement{}}
	if got := len(Children(stmt)); got != 2 {
		t.Fatalf("Children with nil else got=%d want=2", got)
	}
}
