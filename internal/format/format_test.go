package format

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/orizon-lang/csfront/internal/errors"
	"github.com/orizon-lang/csfront/internal/parser"
)

func TestFormatText_TrailingSpaceAndNewline_LF(t *testing.T) {
	in := "a  \n b\t\t  \n"
	got := FormatText(in, Options{PreserveNewlineStyle: false})
	want := "a\n b\n"
	if got != want {
		t.Fatalf("LF trim failed: got=%q want=%q", got, want)
	}
}

func TestFormatText_EnsureTrailingNewline_WhenMissing(t *testing.T) {
	in := "no-newline"
	got := FormatText(in, Options{PreserveNewlineStyle: false})
	want := "no-newline\n"
	if got != want {
		t.Fatalf("ensure trailing newline failed: got=%q want=%q", got, want)
	}
}

func TestFormatText_PreserveCRLF_OnFiles(t *testing.T) {
	in := "x  \r\ny\t \r\n"
	got := FormatText(in, Options{PreserveNewlineStyle: true})
	want := "x\r\ny\r\n"
	if got != want {
		t.Fatalf("CRLF preservation failed: got=%q want=%q", got, want)
	}
}

func TestFormatText_EmptyInput_ProducesSingleNewline(t *testing.T) {
	got := FormatText("", Options{PreserveNewlineStyle: false})
	want := "\n"
	if got != want {
		t.Fatalf("empty input formatting failed: got=%q want=%q", got, want)
	}
}

func TestSourceLayout(t *testing.T) {
	in := "namespace N { class C<T> : B where T : new() { int x=1,y; void M(ref int a){ if(a>0) a--; else { return; } } } }"
	want := `namespace N
{
    class C<T> : B where T : new()
    {
        int x = 1, y;

        void M(ref int a)
        {
            if (a > 0)
                a--;
            else
            {
                return;
            }
        }
    }
}
`
	got, err := Source("n.cs", []byte(in), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != want {
		t.Fatalf("got=\n%s\nwant=\n%s", got, want)
	}
}

const roundTripProgram = `using System;
using Map = System.Collections.Generic.Dictionary<string, int>;
[assembly: CLSCompliant(true)]
namespace Demo.Core {
  public delegate T Factory<T>(int n) where T : class;
  [Serializable, Obsolete("old", Error = false)]
  public sealed partial class Box<T> : Base, IEnumerable<T> where T : IComparable<T>, new() {
    private const int Max = 10, Min = 0;
    private T[] items = new T[Max];
    public event EventHandler Changed;
    public event EventHandler Saved { add { } remove { } }
    static Box() { }
    public Box(int n) : base(n) { }
    ~Box() { }
    public int Count { get { return items.Length; } protected set { } }
    public T this[int i] { get { return items[i]; } }
    T IList<T>.this[int i] { get { return default(T); } set { } }
    public static Box<T> operator +(Box<T> a, Box<T> b) { return a; }
    public static Box<T> operator >>(Box<T> a, int n) { return a; }
    public static implicit operator T(Box<T> b) { return b[0]; }
    public IEnumerator<T> GetEnumerator() { yield return items[0]; yield break; }
    void IDisposable.Dispose() { }
    public U Convert<U>(Converter<T, U> f) where U : struct { return f(items[0]); }
    public enum Color : byte { Red, Green = 2, }
    interface INested { void M(ref int a, out int b, params object[] rest); int P { get; set; } }
    unsafe struct Point { public int X, Y; public fixed byte Raw[4]; }
    void Statements(object o) {
      int i = 0, j;
      const string s = "x";
      label: i++;
      if (i > 0) j = 1; else if (i < 0) j = -1; else { j = - -i; }
      switch (i) { case 1: case 2: break; default: goto case 1; }
      while (i < 10) i += 2;
      do { i--; } while (i > 0);
      for (int k = 0, m = 1; k < m; k++, m--) { continue; }
      for (;;) { break; }
      foreach (string x in new string[] { "a", "b", }) { }
      try { throw new Exception(); } catch (ArgumentException e) { throw; } catch { } finally { }
      using (Stream st = Open()) { }
      lock (this) { }
      unsafe { int* p = stackalloc int[4]; fixed (int* q = &items2[0]) { *q = p->x; } }
      checked { i = checked(i + 1); }
      Func<int, int> f = delegate(int a) { return a * 2; };
      bool b = o is int? ? true : o as string == null;
      object t = typeof(Dictionary<,>);
      long v = (long)(int)-i << 2 >> 1;
      j = F(a < b, c > d) ?? global::System.Int32.MaxValue;
      int[][] jag = new int[3][];
      int[] init = { 1, 2 };
    }
  }
}
`

func TestSourceRoundTrip(t *testing.T) {
	first, err := Source("box.cs", []byte(roundTripProgram), DefaultOptions())
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	res, err := parser.ParseFile("box.cs", string(first))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("formatted output does not parse cleanly: %v\n%s", res.Diagnostics, first)
	}
	second, err := Source("box.cs", first, DefaultOptions())
	if err != nil {
		t.Fatalf("reformat: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("formatting is not idempotent:\n%s", Diff("box.cs", string(first), string(second), 2))
	}
	for _, want := range []string{
		"    public sealed partial class Box<T> : Base, IEnumerable<T> where T : IComparable<T>, new()\n",
		"        public event EventHandler Saved\n",
		"        T IList<T>.this[int i]\n",
		"            protected set\n",
		"        public static implicit operator T(Box<T> b)\n",
		"            j = - -i;\n",
		"            for (;;)\n",
		"            Func<int, int> f = delegate(int a) {\n                return a * 2;\n            };\n",
		"            public fixed byte Raw[4];\n",
		"    [Serializable, Obsolete(\"old\", Error = false)]\n",
	} {
		if !strings.Contains(string(first), want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestSourceRefuses(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", "class C { int x = ; }"},
		{"line comment", "// header\nclass C { }"},
		{"directive", "#region x\nclass C { }\n#endregion\n"},
		{"lexical error", "class C { char c = 'ab'; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Source("c.cs", []byte(tt.src), DefaultOptions())
			if !stderrors.Is(err, errors.ErrUnformattable) {
				t.Fatalf("err got=%v want unformattable", err)
			}
		})
	}

	opts := DefaultOptions()
	opts.DropComments = true
	got, err := Source("c.cs", []byte("// header\nclass C { }"), opts)
	if err != nil {
		t.Fatalf("DropComments: %v", err)
	}
	if string(got) != "class C\n{\n}\n" {
		t.Fatalf("got=%q", got)
	}
}

func TestSourceOptions(t *testing.T) {
	got, err := Source("c.cs", []byte("class C {\r\n int x;\r\n}\r\n"), Options{UseTabs: true, PreserveNewlineStyle: true})
	if err != nil {
		t.Fatal(err)
	}
	if want := "class C\r\n{\r\n\tint x;\r\n}\r\n"; string(got) != want {
		t.Fatalf("got=%q want=%q", got, want)
	}

	_, err = Source("c.cs", []byte("class C<T> { }"), Options{IndentSize: 2, LanguageVersion: "9.0"})
	if !stderrors.Is(err, errors.ErrInvalidOption) {
		t.Fatalf("bad language version err got=%v", err)
	}
}

func TestNodeExpressions(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a+b*c", "a + b * c"},
		{"-(-x)", "-(-x)"},
		{"- -x", "- -x"},
		{"a - -b", "a - -b"},
		{"+ +x", "+ +x"},
		{"x++ + ++y", "x++ + ++y"},
		{"new int[]{1,2,}", "new int[] { 1, 2 }"},
		{"new int[]{}", "new int[] { }"},
		{"(Foo)x", "(Foo)x"},
		{"Foo<Bar>(1)", "Foo<Bar>(1)"},
		{"x is int ? a : b", "x is int ? a : b"},
		{"F(ref a,out b)", "F(ref a, out b)"},
		{"p->next", "p->next"},
		{"delegate { }", "delegate {\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res, err := parser.ParseExpressionString(tt.in)
			if err != nil || res.HasErrors() {
				t.Fatalf("parse failed: %v %v", err, res.Diagnostics)
			}
			if got := Node(res.Expression, DefaultOptions()); got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	a := "1\n2\n3\n4\n5\n6\n7\n8\n9\n"
	b := "1\n2\nthree\n4\n5\n6\n7\n8\n9\nten\n"
	hunks := Hunks(a, b, 1)
	if len(hunks) != 2 {
		t.Fatalf("hunks got=%d want=2", len(hunks))
	}
	if got := hunks[0].Header(); got != "@@ -2,3 +2,3 @@" {
		t.Fatalf("first header got=%q", got)
	}
	if got := hunks[1].Header(); got != "@@ -9,1 +9,2 @@" {
		t.Fatalf("second header got=%q", got)
	}
	if s := Stat(hunks); s.Added != 2 || s.Removed != 1 {
		t.Fatalf("stat got=%+v", s)
	}

	out := Diff("f.cs", a, b, 1)
	if !strings.HasPrefix(out, "--- f.cs\t(original)\n+++ f.cs\t(formatted)\n@@ -2,3 +2,3 @@\n 2\n-3\n+three\n 4\n") {
		t.Fatalf("diff got=\n%s", out)
	}
	if Diff("f.cs", a, a, 3) != "" {
		t.Fatalf("equal inputs produced a diff")
	}
}
