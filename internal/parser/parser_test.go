package parser

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/errors"
)

const sampleProgram = `using System;
using Map = System.Collections.Generic.Dictionary<string, int>;
[assembly: CLSCompliant(true)]

namespace Demo.Core
{
    public delegate T Factory<T>(int n) where T : class;

    [Serializable]
    public sealed partial class Box<T> : Base, IEnumerable<T> where T : IComparable<T>, new()
    {
        private const int Max = 10, Min = 0;
        private T[] items = new T[Max];
        public static readonly Box<T> Empty;
        public event EventHandler Changed;
        public event EventHandler Saved { add { } remove { } }

        static Box() { }
        public Box(int n) : base(n) { }
        ~Box() { }

        public int Count { get { return items.Length; } protected set { } }
        public T this[int i] { get { return items[i]; } }
        T IList<T>.this[int i] { get { return default(T); } set { } }
        int ICollection.Count { get { return 0; } }

        public static Box<T> operator +(Box<T> a, Box<T> b) { return a; }
        public static Box<T> operator >>(Box<T> a, int n) { return a; }
        public static implicit operator T(Box<T> b) { return b[0]; }

        public IEnumerator<T> GetEnumerator() { yield return items[0]; yield break; }
        void IDisposable.Dispose() { }
        public U Convert<U>(Converter<T, U> f) where U : struct { return f(items[0]); }

        public enum Color : byte { Red, Green = 2, }
        interface INested { void M(ref int a, out int b, params object[] rest); int P { get; set; } }
        struct Point { public int X, Y; }
    }
}
`

func mustParse(t *testing.T, src string, opts ...Option) *Result {
	t.Helper()
	res, err := ParseFile("test.cs", src, opts...)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	return res
}

func codes(diags []diagnostics.Diagnostic) []diagnostics.Code {
	out := make([]diagnostics.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

// checkSpans verifies that every node has a valid span lying inside the
// span of its parent.
func checkSpans(t *testing.T, root ast.Node) {
	t.Helper()
	var visit func(parent, n ast.Node)
	visit = func(parent, n ast.Node) {
		span := n.GetSpan()
		if !span.IsValid() {
			t.Errorf("%T has invalid span %s", n, span)
			return
		}
		if parent != nil && !parent.GetSpan().Encloses(span) {
			t.Errorf("%T %s escapes parent %T %s", n, span, parent, parent.GetSpan())
		}
		for _, child := range ast.Children(n) {
			visit(n, child)
		}
	}
	visit(nil, root)
}

// checkSiblingOrder verifies that the children of every node appear in
// source order and do not overlap.
func checkSiblingOrder(t *testing.T, root ast.Node) {
	t.Helper()
	ast.Inspect(root, func(n ast.Node) bool {
		var prev ast.Node
		for _, child := range ast.Children(n) {
			if prev != nil && prev.GetSpan().End.Offset > child.GetSpan().Start.Offset {
				t.Errorf("in %T: %T %s overlaps or follows %T %s",
					n, prev, prev.GetSpan(), child, child.GetSpan())
			}
			prev = child
		}
		return true
	})
}

func findType(unit *ast.CompilationUnit, name string) *ast.TypeDeclaration {
	var found *ast.TypeDeclaration
	ast.Inspect(unit, func(n ast.Node) bool {
		if td, ok := n.(*ast.TypeDeclaration); ok && td.Name == name && found == nil {
			found = td
		}
		return found == nil
	})
	return found
}

func TestParseSampleProgram(t *testing.T) {
	res := mustParse(t, sampleProgram)
	if len(res.Diagnostics) != 0 {
		for _, d := range res.Diagnostics {
			t.Errorf("unexpected diagnostic: %s", d)
		}
		t.FailNow()
	}
	if !res.Balanced() {
		t.Fatalf("assembler unbalanced: %+v", res.Stats)
	}
	unit := res.Unit
	if unit.Filename != "test.cs" {
		t.Fatalf("filename got=%q want=%q", unit.Filename, "test.cs")
	}
	if len(unit.Children) != 4 {
		t.Fatalf("top-level children got=%d want=4", len(unit.Children))
	}
	alias := unit.Children[1].(*ast.UsingDeclaration)
	if !alias.IsAlias() || alias.Target.String() != "System.Collections.Generic.Dictionary<string, int>" {
		t.Fatalf("alias got=%q target=%q", alias.Alias, alias.Target)
	}
	if sec := unit.Children[2].(*ast.AttributeSection); sec.Target != "assembly" {
		t.Fatalf("global attribute target got=%q", sec.Target)
	}

	types := unit.Types()
	if len(types) != 2 || types[0].Kind != ast.KindDelegate || types[1].Name != "Box" {
		t.Fatalf("top-level types got=%d", len(types))
	}
	factory := types[0]
	if len(factory.Templates) != 1 || !factory.Templates[0].ClassConstraint {
		t.Fatalf("delegate constraint not applied")
	}

	box := types[1]
	if want := ast.ModPublic | ast.ModSealed | ast.ModPartial; box.Modifiers != want {
		t.Fatalf("modifiers got=%q want=%q", box.Modifiers, want)
	}
	if len(box.BaseTypes) != 2 || box.BaseTypes[1].String() != "IEnumerable<T>" {
		t.Fatalf("base types got=%v", box.BaseTypes)
	}
	tp := box.Templates[0]
	if !tp.ConstructorConstraint || len(tp.Bases) != 1 || tp.Bases[0].String() != "IComparable<T>" {
		t.Fatalf("class constraint not applied: %+v", tp)
	}
	if len(box.Members) != 21 {
		t.Fatalf("members got=%d want=21", len(box.Members))
	}

	checkSpans(t, unit)
	checkSiblingOrder(t, unit)
}

func TestParseMemberShapes(t *testing.T) {
	res := mustParse(t, sampleProgram)
	box := findType(res.Unit, "Box")
	if box == nil {
		t.Fatalf("Box not found")
	}
	m := box.Members

	if f := m[0].(*ast.FieldDeclaration); !f.Modifiers.Has(ast.ModConst) || len(f.Variables) != 2 {
		t.Fatalf("constant got=%+v", f)
	}
	if ev := m[4].(*ast.EventDeclaration); ev.Name() != "Saved" || ev.Add == nil || ev.Remove == nil {
		t.Fatalf("event accessors missing")
	}
	if c := m[5].(*ast.ConstructorDeclaration); !c.Modifiers.Has(ast.ModStatic) || c.Initializer != nil {
		t.Fatalf("static constructor got=%+v", c)
	}
	if c := m[6].(*ast.ConstructorDeclaration); c.Initializer == nil || c.Initializer.Kind != ast.InitializerBase {
		t.Fatalf("constructor initializer missing")
	}
	if d := m[7].(*ast.DestructorDeclaration); d.Name != "Box" {
		t.Fatalf("destructor name got=%q", d.Name)
	}

	count := m[8].(*ast.PropertyDeclaration)
	if count.Get == nil || count.Set == nil || count.Set.Modifiers != ast.ModProtected {
		t.Fatalf("property accessors got=%+v", count)
	}
	explicitIdx := m[10].(*ast.IndexerDeclaration)
	if explicitIdx.Interface.String() != "IList<T>" || explicitIdx.Set == nil {
		t.Fatalf("explicit indexer interface got=%q", explicitIdx.Interface)
	}
	explicitProp := m[11].(*ast.PropertyDeclaration)
	if explicitProp.Interface.String() != "ICollection" || explicitProp.Name != "Count" {
		t.Fatalf("explicit property got=%q.%s", explicitProp.Interface, explicitProp.Name)
	}

	plus := m[12].(*ast.OperatorDeclaration)
	if plus.Operator != "+" || len(plus.Parameters) != 2 {
		t.Fatalf("operator + got=%q/%d", plus.Operator, len(plus.Parameters))
	}
	if shr := m[13].(*ast.OperatorDeclaration); shr.Operator != ">>" {
		t.Fatalf("operator >> got=%q", shr.Operator)
	}
	if conv := m[14].(*ast.OperatorDeclaration); conv.Conversion != ast.ConversionImplicit || conv.ReturnType.String() != "T" {
		t.Fatalf("conversion got=%+v", conv)
	}

	iter := m[15].(*ast.MethodDeclaration)
	if len(iter.Body.Statements) != 2 {
		t.Fatalf("iterator statements got=%d", len(iter.Body.Statements))
	}
	if y := iter.Body.Statements[1].(*ast.YieldStatement); !y.IsBreak {
		t.Fatalf("yield break not recognized")
	}
	dispose := m[16].(*ast.MethodDeclaration)
	if dispose.Interface.String() != "IDisposable" || dispose.Name != "Dispose" || !dispose.ReturnType.IsVoid() {
		t.Fatalf("explicit method got=%q.%s", dispose.Interface, dispose.Name)
	}
	convert := m[17].(*ast.MethodDeclaration)
	if len(convert.Templates) != 1 || !convert.Templates[0].StructConstraint {
		t.Fatalf("method type parameter constraint not applied")
	}

	color := m[18].(*ast.TypeDeclaration)
	if color.Kind != ast.KindEnum || len(color.Members) != 2 || color.BaseTypes[0].String() != "byte" {
		t.Fatalf("enum got kind=%s members=%d", color.Kind, len(color.Members))
	}
	nested := m[19].(*ast.TypeDeclaration)
	method := nested.Members[0].(*ast.MethodDeclaration)
	if method.Body != nil || len(method.Parameters) != 3 || method.Parameters[2].Modifier != ast.ParamArray {
		t.Fatalf("interface method got=%+v", method)
	}
	if prop := nested.Members[1].(*ast.PropertyDeclaration); prop.Get.Body != nil || prop.Set.Body != nil {
		t.Fatalf("interface accessors should have no body")
	}
}

func TestParseStatements(t *testing.T) {
	src := `class C {
    void M(int[] xs) {
        int i = 0, j;
        const int K = 3;
        List<List<int>> nested = null;
        done: ;
        if (i < K) i++; else i--;
        while (true) break;
        do { continue; } while (false);
        for (int k = 0; k < 10; k++, j--) { }
        foreach (int x in xs) { }
        switch (i) { case 1: case 2: goto default; default: goto case 1; }
        try { throw; } catch (Exception e) { } catch { } finally { }
        lock (this) { }
        using (Stream s = Open()) { }
        unsafe { fixed (int* p = &xs[0]) { } }
        checked { i = checked(i + 1); }
        goto done;
        Foo<Bar>(1);
        a.b = c >> 2;
        x >>= 1;
        return;
    }
}`
	res := mustParse(t, src)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	method := findType(res.Unit, "C").Members[0].(*ast.MethodDeclaration)
	stmts := method.Body.Statements
	wantTypes := []string{
		"*ast.LocalVariableDeclaration", "*ast.LocalVariableDeclaration",
		"*ast.LocalVariableDeclaration", "*ast.LabeledStatement",
		"*ast.IfElseStatement", "*ast.WhileStatement", "*ast.DoWhileStatement",
		"*ast.ForStatement", "*ast.ForeachStatement", "*ast.SwitchStatement",
		"*ast.TryCatchStatement", "*ast.LockStatement", "*ast.UsingStatement",
		"*ast.UnsafeStatement", "*ast.CheckedStatement", "*ast.GotoStatement",
		"*ast.ExpressionStatement", "*ast.ExpressionStatement",
		"*ast.ExpressionStatement", "*ast.ReturnStatement",
	}
	if len(stmts) != len(wantTypes) {
		t.Fatalf("statement count got=%d want=%d", len(stmts), len(wantTypes))
	}
	for i, s := range stmts {
		if got := fmt.Sprintf("%T", s); got != wantTypes[i] {
			t.Fatalf("statement %d got=%s want=%s", i, got, wantTypes[i])
		}
	}

	nested := stmts[2].(*ast.LocalVariableDeclaration)
	if nested.Type.String() != "List<List<int>>" {
		t.Fatalf("nested generic got=%q", nested.Type)
	}
	sw := stmts[9].(*ast.SwitchStatement)
	if len(sw.Sections) != 2 || len(sw.Sections[0].Labels) != 2 {
		t.Fatalf("switch sections got=%d", len(sw.Sections))
	}
	try := stmts[10].(*ast.TryCatchStatement)
	if len(try.Catches) != 2 || try.Catches[0].Variable != "e" || try.Catches[1].Type != nil || try.Finally == nil {
		t.Fatalf("try got=%+v", try)
	}
	if _, ok := stmts[12].(*ast.UsingStatement).Resource.(*ast.LocalVariableDeclaration); !ok {
		t.Fatalf("using resource not a declaration")
	}
	call := stmts[16].(*ast.ExpressionStatement).Expression
	if got := sexpr(call); got != "(call Foo<Bar> 1)" {
		t.Fatalf("generic call got=%q", got)
	}
	if got := sexpr(stmts[17].(*ast.ExpressionStatement).Expression); got != "(= (. a b) (>> c 2))" {
		t.Fatalf("shift assignment got=%q", got)
	}
	if got := sexpr(stmts[18].(*ast.ExpressionStatement).Expression); got != "(>>= x 1)" {
		t.Fatalf("shift right assign got=%q", got)
	}
	checkSpans(t, res.Unit)
	checkSiblingOrder(t, res.Unit)
}

func TestContextualKeywordsAsIdentifiers(t *testing.T) {
	src := `class partial {
    int get, set, add, remove, where, yield, value, assembly;
    void M() { yield = where + get; partial p = new partial(); }
}`
	res := mustParse(t, src)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	c := findType(res.Unit, "partial")
	if c == nil || len(c.Members) != 2 {
		t.Fatalf("class partial not parsed")
	}
	if f := c.Members[0].(*ast.FieldDeclaration); len(f.Variables) != 8 {
		t.Fatalf("fields got=%d want=8", len(f.Variables))
	}
}

func TestMissingCloseBraceReportsOnce(t *testing.T) {
	res := mustParse(t, "class C { void M() { int x = 1; }")
	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics got=%v want exactly one", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Code != diagnostics.CodeExpectedToken || d.Message != `"}" expected` {
		t.Fatalf("diagnostic got=%s", d)
	}
	if d.Filename != "test.cs" {
		t.Fatalf("diagnostic file got=%q", d.Filename)
	}
	if !res.Balanced() {
		t.Fatalf("assembler unbalanced after recovery")
	}
	if len(findType(res.Unit, "C").Members) != 1 {
		t.Fatalf("method lost during recovery")
	}
}

func TestRecoverySkipsToNextMember(t *testing.T) {
	res := mustParse(t, "class C { int x; 123 int y; }")
	if got := codes(res.Diagnostics); len(got) != 1 || got[0] != diagnostics.CodeInvalidAlternative {
		t.Fatalf("codes got=%v", got)
	}
	c := findType(res.Unit, "C")
	if len(c.Members) != 2 {
		t.Fatalf("members got=%d want=2", len(c.Members))
	}
	if f := c.Members[1].(*ast.FieldDeclaration); f.Variables[0].Name != "y" {
		t.Fatalf("second member got=%q", f.Variables[0].Name)
	}
}

func TestRecoveryInsideStatements(t *testing.T) {
	res := mustParse(t, "class C { void M() { x = ; y = 2; } }")
	if res.ErrorCount != 1 {
		t.Fatalf("errors got=%d want=1 (%v)", res.ErrorCount, res.Diagnostics)
	}
	m := findType(res.Unit, "C").Members[0].(*ast.MethodDeclaration)
	if len(m.Body.Statements) != 2 {
		t.Fatalf("statements got=%d want=2", len(m.Body.Statements))
	}
	if got := sexpr(m.Body.Statements[1].(*ast.ExpressionStatement).Expression); got != "(= y 2)" {
		t.Fatalf("second statement got=%q", got)
	}
}

func TestMemberAfterUnclosedMethodBody(t *testing.T) {
	res := mustParse(t, "class C { void M() { if (x) { y(); } void N() { } }")
	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics got=%v want one", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Message != `"}" expected` || d.Line != 1 || d.Column != 38 {
		t.Fatalf("diagnostic got=%s", d)
	}
	c := findType(res.Unit, "C")
	if len(c.Members) != 2 {
		t.Fatalf("members got=%d want=2", len(c.Members))
	}
	if n := c.Members[1].(*ast.MethodDeclaration); n.Name != "N" {
		t.Fatalf("second member got=%q", n.Name)
	}
	if !res.Balanced() {
		t.Fatalf("assembler unbalanced: %+v", res.Stats)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	inputs := map[string]string{
		"valid":     sampleProgram,
		"recovered": sampleProgram + "class X { void M() { x = ; } int }",
	}
	for name, src := range inputs {
		t.Run(name, func(t *testing.T) {
			first := mustParse(t, src)
			second := mustParse(t, src)
			if !reflect.DeepEqual(first.Unit, second.Unit) {
				t.Fatalf("trees differ between parses")
			}
			if !reflect.DeepEqual(first.Diagnostics, second.Diagnostics) {
				t.Fatalf("diagnostics got=%v then %v", first.Diagnostics, second.Diagnostics)
			}
			if first.Stats != second.Stats {
				t.Fatalf("stats got=%+v then %+v", first.Stats, second.Stats)
			}
			if name == "recovered" && !first.HasErrors() {
				t.Fatalf("recovery input parsed without errors")
			}
		})
	}
}

func TestRecoveryAlwaysTerminates(t *testing.T) {
	inputs := []string{
		"}}}}",
		"class",
		"class C { void M( { } }",
		"namespace { class { int } }",
		"class C { int this[ { get; } }",
		"class C { void M() { for (;;) if ( } }",
		"[ [ [",
		"class C : { }",
		"enum E { A B C }",
		"class C { void M() { switch (x) { foo; case 1: } } }",
		strings.Repeat("(", 300),
	}
	for _, src := range inputs {
		res := mustParse(t, src)
		if !res.HasErrors() {
			t.Fatalf("%q parsed without errors", src)
		}
		if !res.Balanced() {
			t.Fatalf("%q left the assembler unbalanced", src)
		}
		if res.Unit == nil {
			t.Fatalf("%q returned no tree", src)
		}
	}
}

func TestAdvisories(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want diagnostics.Code
	}{
		{"attribute target", "[foo: A] class C { }", diagnostics.CodeAttributeTarget},
		{"modifier not allowed", "class C { abstract C() { } }", diagnostics.CodeModifierNotAllowed},
		{"duplicate modifier", "public public class C { }", diagnostics.CodeDuplicateModifier},
		{"params not last", "class C { void M(params int[] a, int b) { } }", diagnostics.CodeParamsNotLast},
		{"positional after named", "[A(X = 1, 2)] class C { }", diagnostics.CodePositionalAfterNamed},
		{"fixed needs pointer", "class C { void M() { fixed (int p = x) { } } }", diagnostics.CodeFixedNeedsPointer},
		{"duplicate accessor", "class C { int P { get { } get { } } }", diagnostics.CodeDuplicateAccessor},
		{"enum base", "enum E : string { A }", diagnostics.CodeEnumBaseNotIntegral},
		{"unknown type parameter", "class C<T> where U : class { }", diagnostics.CodeUnknownTypeParameter},
		{"accessor expected", "class C { int P { foo; } }", diagnostics.CodeAccessorExpected},
		{"event accessor expected", "class C { event E X { add { } } }", diagnostics.CodeEventAccessorExpected},
		{"operator arity", "class C { public static C operator !(C a, C b) { } }", diagnostics.CodeOperatorArity},
		{"constraint order", "class C<T> where T : IFoo, class { }", diagnostics.CodeConstraintOrder},
		{"new constraint last", "class C<T> where T : new(), IFoo { }", diagnostics.CodeConstraintOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustParse(t, tt.src)
			got := codes(res.Diagnostics)
			if len(got) != 1 || got[0] != tt.want {
				t.Fatalf("codes got=%v want=[%s]", got, tt.want)
			}
		})
	}
}

func TestLanguageVersionAdvisories(t *testing.T) {
	src := `static partial class C<T> {
    int? n = a ?? b;
    int P { get { return 0; } private set { } }
    IEnumerable<int> M() { yield break; }
    void N() { D d = delegate { }; }
}`
	res := mustParse(t, src, WithLanguageVersion("1.2"))
	if res.ErrorCount != 0 {
		t.Fatalf("errors got=%v", res.Diagnostics)
	}
	seen := map[string]bool{}
	for _, d := range res.Diagnostics {
		if d.Code != diagnostics.CodeFeatureNotAvailable {
			t.Fatalf("unexpected code %s", d.Code)
		}
		seen[strings.SplitN(d.Message, " requires", 2)[0]] = true
	}
	for _, f := range []string{
		"static classes", "partial types", "generics", "nullable types",
		"null coalescing operator", "accessor modifiers", "iterators", "anonymous methods",
	} {
		if !seen[f] {
			t.Errorf("no advisory for %s", f)
		}
	}

	res = mustParse(t, src)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("2.0 reported %v", res.Diagnostics)
	}
}

func TestOptions(t *testing.T) {
	if _, err := ParseFile("x.cs", "", WithLanguageVersion("3.0")); !stderrors.Is(err, errors.ErrInvalidOption) {
		t.Fatalf("version 3.0 err got=%v", err)
	}
	if _, err := ParseFile("x.cs", "", WithMaxErrors(-1)); !stderrors.Is(err, errors.ErrInvalidOption) {
		t.Fatalf("negative max errors err got=%v", err)
	}
	if _, err := ParseFile("x.cs", "", WithFollowTable(nil)); !stderrors.Is(err, errors.ErrInvalidOption) {
		t.Fatalf("nil follow table err got=%v", err)
	}

	var streamed []diagnostics.Diagnostic
	sink := diagnostics.SinkFunc(func(d diagnostics.Diagnostic) { streamed = append(streamed, d) })
	res := mustParse(t, "class A { 1 } class B { 2 } class C { 3 }", WithSink(sink), WithMaxErrors(2))
	if res.ErrorCount != 2 {
		t.Fatalf("errors got=%d want=2", res.ErrorCount)
	}
	last := res.Diagnostics[len(res.Diagnostics)-1]
	if last.Code != diagnostics.CodeTooManyErrors {
		t.Fatalf("last code got=%s want=%s", last.Code, diagnostics.CodeTooManyErrors)
	}
	if len(streamed) != len(res.Diagnostics) {
		t.Fatalf("sink saw %d of %d diagnostics", len(streamed), len(res.Diagnostics))
	}
}

func TestEmptyInput(t *testing.T) {
	res := mustParse(t, "")
	if res.HasErrors() || len(res.Unit.Children) != 0 {
		t.Fatalf("empty input got=%v", res.Diagnostics)
	}
	if res.Stats.Opens != 1 || res.Stats.MaxDepth != 1 {
		t.Fatalf("stats got=%+v", res.Stats)
	}
}
