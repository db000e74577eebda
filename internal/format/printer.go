package format

import (
	"strings"

	"github.com/orizon-lang/csfront/internal/ast"
)

// printer renders a syntax tree as C# source. Braces go on their own line
// except for anonymous method bodies, which open on the line of the
// delegate keyword.
type printer struct {
	sb     strings.Builder
	indent int
	step   string // one level of indentation
}

func newPrinter(opts Options) *printer {
	step := "\t"
	if !opts.UseTabs {
		step = strings.Repeat(" ", opts.IndentSize)
	}
	return &printer{step: step}
}

func (p *printer) write(s string) { p.sb.WriteString(s) }

func (p *printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.sb.WriteString(p.step)
	}
}

// line writes one indented line.
func (p *printer) line(parts ...string) {
	p.writeIndent()
	for _, s := range parts {
		p.sb.WriteString(s)
	}
	p.sb.WriteByte('\n')
}

func (p *printer) open() {
	p.line("{")
	p.indent++
}

func (p *printer) close() {
	p.indent--
	p.line("}")
}

func modifiers(m ast.Modifiers) string {
	if m == ast.ModNone {
		return ""
	}
	return m.String() + " "
}

// ====== Compilation unit, namespaces and types ======

func (p *printer) unit(u *ast.CompilationUnit) {
	p.namespaceMembers(u.Children)
}

func (p *printer) namespaceMembers(children []ast.Node) {
	var prev ast.Node
	for _, child := range children {
		if prev != nil && !(isDirective(prev) && isDirective(child)) {
			p.write("\n")
		}
		switch n := child.(type) {
		case *ast.UsingDeclaration:
			p.using(n)
		case *ast.AttributeSection:
			p.line(p.attributeSection(n))
		case *ast.NamespaceDeclaration:
			p.line("namespace ", n.Name)
			p.open()
			p.namespaceMembers(n.Children)
			p.close()
		case *ast.TypeDeclaration:
			p.typeDeclaration(n)
		}
		prev = child
	}
}

func isDirective(n ast.Node) bool {
	switch n.(type) {
	case *ast.UsingDeclaration, *ast.AttributeSection:
		return true
	}
	return false
}

func (p *printer) using(u *ast.UsingDeclaration) {
	if u.IsAlias() {
		p.line("using ", u.Alias, " = ", u.Target.String(), ";")
		return
	}
	p.line("using ", u.Namespace, ";")
}

func (p *printer) attributeLines(sections []*ast.AttributeSection) {
	for _, s := range sections {
		p.line(p.attributeSection(s))
	}
}

func (p *printer) inlineAttributes(sections []*ast.AttributeSection) string {
	var sb strings.Builder
	for _, s := range sections {
		sb.WriteString(p.attributeSection(s))
		sb.WriteByte(' ')
	}
	return sb.String()
}

func (p *printer) attributeSection(s *ast.AttributeSection) string {
	var sb strings.Builder
	sb.WriteByte('[')
	if s.Target != "" {
		sb.WriteString(s.Target)
		sb.WriteString(": ")
	}
	for i, a := range s.Attributes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.Name.String())
		if len(a.Positional)+len(a.Named) == 0 {
			continue
		}
		args := make([]ast.Expression, 0, len(a.Positional)+len(a.Named))
		args = append(args, a.Positional...)
		for _, na := range a.Named {
			args = append(args, na)
		}
		sb.WriteByte('(')
		sb.WriteString(p.exprList(args))
		sb.WriteByte(')')
	}
	sb.WriteByte(']')
	return sb.String()
}

func (p *printer) typeDeclaration(td *ast.TypeDeclaration) {
	p.attributeLines(td.Attributes)
	head := modifiers(td.Modifiers) + td.Kind.String() + " "
	if td.Kind == ast.KindDelegate {
		p.line(head, td.ReturnType.String(), " ", td.Name, p.templates(td.Templates),
			"(", p.parameters(td.Parameters), ")", constraints(td.Constraints), ";")
		return
	}

	head += td.Name + p.templates(td.Templates)
	if len(td.BaseTypes) > 0 {
		head += " : " + typeList(td.BaseTypes)
	}
	p.line(head, constraints(td.Constraints))
	p.open()
	if td.Kind == ast.KindEnum {
		p.enumMembers(td.Members)
	} else {
		p.members(td.Members)
	}
	p.close()
}

func (p *printer) enumMembers(members []ast.Node) {
	for i, m := range members {
		f, ok := m.(*ast.FieldDeclaration)
		if !ok || len(f.Variables) == 0 {
			continue
		}
		p.attributeLines(f.Attributes)
		text := p.declarator(f.Variables[0])
		if i < len(members)-1 {
			text += ","
		}
		p.line(text)
	}
}

func (p *printer) templates(list []*ast.TemplateDefinition) string {
	if len(list) == 0 {
		return ""
	}
	parts := make([]string, len(list))
	for i, td := range list {
		parts[i] = p.inlineAttributes(td.Attributes) + td.Name
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func constraints(list []*ast.ConstraintClause) string {
	var sb strings.Builder
	for _, c := range list {
		var parts []string
		if c.ClassConstraint {
			parts = append(parts, "class")
		}
		if c.StructConstraint {
			parts = append(parts, "struct")
		}
		for _, b := range c.Bases {
			parts = append(parts, b.String())
		}
		if c.ConstructorConstraint {
			parts = append(parts, "new()")
		}
		sb.WriteString(" where ")
		sb.WriteString(c.TypeParameter)
		sb.WriteString(" : ")
		sb.WriteString(strings.Join(parts, ", "))
	}
	return sb.String()
}

func typeList(list []*ast.TypeReference) string {
	parts := make([]string, len(list))
	for i, t := range list {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// ====== Members ======

// compact members are printed without a blank line between them.
func compact(m ast.Node) bool {
	switch n := m.(type) {
	case *ast.FieldDeclaration:
		return true
	case *ast.EventDeclaration:
		return n.Add == nil && n.Remove == nil
	case *ast.MethodDeclaration:
		return n.Body == nil
	}
	return false
}

func (p *printer) members(members []ast.Node) {
	for i, m := range members {
		if i > 0 && !(compact(members[i-1]) && compact(m)) {
			p.write("\n")
		}
		p.member(m)
	}
}

func (p *printer) member(m ast.Node) {
	switch n := m.(type) {
	case *ast.TypeDeclaration:
		p.typeDeclaration(n)
	case *ast.FieldDeclaration:
		p.attributeLines(n.Attributes)
		p.line(modifiers(n.Modifiers), n.Type.String(), " ", p.declarators(n.Variables), ";")
	case *ast.MethodDeclaration:
		p.attributeLines(n.Attributes)
		p.writeIndent()
		p.write(modifiers(n.Modifiers) + n.ReturnType.String() + " " + qualified(n.Interface, n.Name) +
			p.templates(n.Templates) + "(" + p.parameters(n.Parameters) + ")" + constraints(n.Constraints))
		p.body(n.Body)
	case *ast.PropertyDeclaration:
		p.attributeLines(n.Attributes)
		p.line(modifiers(n.Modifiers), n.Type.String(), " ", qualified(n.Interface, n.Name))
		p.accessors(n.Get, n.Set)
	case *ast.IndexerDeclaration:
		p.attributeLines(n.Attributes)
		p.line(modifiers(n.Modifiers), n.Type.String(), " ", qualified(n.Interface, "this"),
			"[", p.parameters(n.Parameters), "]")
		p.accessors(n.Get, n.Set)
	case *ast.EventDeclaration:
		p.attributeLines(n.Attributes)
		head := modifiers(n.Modifiers) + "event " + n.Type.String() + " "
		if n.Add == nil && n.Remove == nil {
			p.line(head, p.declarators(n.Variables), ";")
			return
		}
		p.line(head, qualified(n.Interface, n.Name()))
		p.accessors(n.Add, n.Remove)
	case *ast.ConstructorDeclaration:
		p.attributeLines(n.Attributes)
		p.writeIndent()
		p.write(modifiers(n.Modifiers) + n.Name + "(" + p.parameters(n.Parameters) + ")")
		if init := n.Initializer; init != nil {
			kw := "base"
			if init.Kind == ast.InitializerThis {
				kw = "this"
			}
			p.write(" : " + kw + "(" + p.exprList(init.Arguments) + ")")
		}
		p.body(n.Body)
	case *ast.DestructorDeclaration:
		p.attributeLines(n.Attributes)
		p.writeIndent()
		p.write(modifiers(n.Modifiers) + "~" + n.Name + "()")
		p.body(n.Body)
	case *ast.OperatorDeclaration:
		p.attributeLines(n.Attributes)
		p.writeIndent()
		switch n.Conversion {
		case ast.ConversionImplicit:
			p.write(modifiers(n.Modifiers) + "implicit operator " + n.ReturnType.String())
		case ast.ConversionExplicit:
			p.write(modifiers(n.Modifiers) + "explicit operator " + n.ReturnType.String())
		default:
			p.write(modifiers(n.Modifiers) + n.ReturnType.String() + " operator " + n.Operator)
		}
		p.write("(" + p.parameters(n.Parameters) + ")")
		p.body(n.Body)
	}
}

func qualified(iface *ast.TypeReference, name string) string {
	if iface == nil {
		return name
	}
	return iface.String() + "." + name
}

// body finishes a member header: a block on the following lines or ";".
func (p *printer) body(b *ast.BlockStatement) {
	if b == nil {
		p.write(";\n")
		return
	}
	p.write("\n")
	p.block(b)
}

func (p *printer) accessors(list ...*ast.Accessor) {
	p.open()
	for _, a := range list {
		if a == nil {
			continue
		}
		p.attributeLines(a.Attributes)
		p.writeIndent()
		p.write(modifiers(a.Modifiers) + a.Kind.String())
		p.body(a.Body)
	}
	p.close()
}

func (p *printer) parameters(list []*ast.ParameterDeclaration) string {
	parts := make([]string, len(list))
	for i, prm := range list {
		s := p.inlineAttributes(prm.Attributes)
		if prm.Modifier != ast.ParamIn {
			s += prm.Modifier.String() + " "
		}
		parts[i] = s + prm.Type.String() + " " + prm.Name
	}
	return strings.Join(parts, ", ")
}

func (p *printer) declarators(list []*ast.VariableDeclaration) string {
	parts := make([]string, len(list))
	for i, v := range list {
		parts[i] = p.declarator(v)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) declarator(v *ast.VariableDeclaration) string {
	s := v.Name
	if v.FixedSize != nil {
		s += "[" + p.exprString(v.FixedSize) + "]"
	}
	if v.Initializer != nil {
		s += " = " + p.exprString(v.Initializer)
	}
	return s
}

// ====== Statements ======

func (p *printer) block(b *ast.BlockStatement) {
	p.open()
	for _, s := range b.Statements {
		p.statement(s)
	}
	p.close()
}

// embedded prints the body of a compound statement: blocks at the current
// level, anything else one level deeper.
func (p *printer) embedded(s ast.Statement) {
	if b, ok := s.(*ast.BlockStatement); ok {
		p.block(b)
		return
	}
	p.indent++
	p.statement(s)
	p.indent--
}

func (p *printer) statement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.BlockStatement:
		p.block(n)
	case *ast.EmptyStatement:
		p.line(";")
	case *ast.LocalVariableDeclaration, *ast.ExpressionStatement:
		p.line(p.inlineStatement(n), ";")
	case *ast.LabeledStatement:
		p.line(n.Label, ":")
		p.statement(n.Statement)
	case *ast.IfElseStatement:
		p.ifElse(n, false)
	case *ast.SwitchStatement:
		p.line("switch (", p.exprString(n.Expression), ")")
		p.open()
		for _, sec := range n.Sections {
			for _, l := range sec.Labels {
				if l.IsDefault() {
					p.line("default:")
				} else {
					p.line("case ", p.exprString(l.Expression), ":")
				}
			}
			p.indent++
			for _, st := range sec.Statements {
				p.statement(st)
			}
			p.indent--
		}
		p.close()
	case *ast.WhileStatement:
		p.line("while (", p.exprString(n.Condition), ")")
		p.embedded(n.Body)
	case *ast.DoWhileStatement:
		p.line("do")
		p.embedded(n.Body)
		p.line("while (", p.exprString(n.Condition), ");")
	case *ast.ForStatement:
		cond := ""
		if n.Condition != nil {
			cond = " " + p.exprString(n.Condition)
		}
		iter := p.inlineStatements(n.Iterators)
		if iter != "" {
			iter = " " + iter
		}
		p.line("for (", p.inlineStatements(n.Initializers), ";", cond, ";", iter, ")")
		p.embedded(n.Body)
	case *ast.ForeachStatement:
		p.line("foreach (", n.Type.String(), " ", n.Variable, " in ", p.exprString(n.Expression), ")")
		p.embedded(n.Body)
	case *ast.BreakStatement:
		p.line("break;")
	case *ast.ContinueStatement:
		p.line("continue;")
	case *ast.GotoStatement:
		p.line("goto ", n.Label, ";")
	case *ast.GotoCaseStatement:
		if n.IsDefault() {
			p.line("goto default;")
		} else {
			p.line("goto case ", p.exprString(n.Expression), ";")
		}
	case *ast.ReturnStatement:
		p.line(keywordWithOperand("return", p.exprString(n.Expression)), ";")
	case *ast.ThrowStatement:
		p.line(keywordWithOperand("throw", p.exprString(n.Expression)), ";")
	case *ast.YieldStatement:
		if n.IsBreak {
			p.line("yield break;")
		} else {
			p.line("yield return ", p.exprString(n.Expression), ";")
		}
	case *ast.TryCatchStatement:
		p.line("try")
		p.block(n.Block)
		for _, c := range n.Catches {
			switch {
			case c.Type == nil:
				p.line("catch")
			case c.Variable == "":
				p.line("catch (", c.Type.String(), ")")
			default:
				p.line("catch (", c.Type.String(), " ", c.Variable, ")")
			}
			p.block(c.Body)
		}
		if n.Finally != nil {
			p.line("finally")
			p.block(n.Finally)
		}
	case *ast.UsingStatement:
		p.line("using (", p.inlineStatement(n.Resource), ")")
		p.embedded(n.Body)
	case *ast.LockStatement:
		p.line("lock (", p.exprString(n.Expression), ")")
		p.embedded(n.Body)
	case *ast.FixedStatement:
		p.line("fixed (", n.Type.String(), " ", p.declarators(n.Variables), ")")
		p.embedded(n.Body)
	case *ast.CheckedStatement:
		p.line("checked")
		p.block(n.Block)
	case *ast.UncheckedStatement:
		p.line("unchecked")
		p.block(n.Block)
	case *ast.UnsafeStatement:
		p.line("unsafe")
		p.block(n.Block)
	}
}

func keywordWithOperand(kw, operand string) string {
	if operand == "" {
		return kw
	}
	return kw + " " + operand
}

// ifElse prints an if statement; chained is set for the "else if" tail
// of an enclosing statement, whose keyword is already written.
func (p *printer) ifElse(n *ast.IfElseStatement, chained bool) {
	head := "if (" + p.exprString(n.Condition) + ")"
	if chained {
		p.write(head + "\n")
	} else {
		p.line(head)
	}
	p.embedded(n.Then)
	if n.Else == nil {
		return
	}
	if elif, ok := n.Else.(*ast.IfElseStatement); ok {
		p.writeIndent()
		p.write("else ")
		p.ifElse(elif, true)
		return
	}
	p.line("else")
	p.embedded(n.Else)
}

// inlineStatement renders a declaration or expression statement without
// its semicolon, as used in for headers and using resources.
func (p *printer) inlineStatement(s ast.Statement) string {
	switch n := s.(type) {
	case *ast.LocalVariableDeclaration:
		return modifiers(n.Modifiers) + n.Type.String() + " " + p.declarators(n.Variables)
	case *ast.ExpressionStatement:
		return p.exprString(n.Expression)
	}
	return ""
}

func (p *printer) inlineStatements(list []ast.Statement) string {
	parts := make([]string, len(list))
	for i, s := range list {
		parts[i] = p.inlineStatement(s)
	}
	return strings.Join(parts, ", ")
}

// ====== Expressions ======

// exprString renders e at the current indentation. Anonymous method
// bodies inside e span several lines.
func (p *printer) exprString(e ast.Expression) string {
	if e == nil {
		return ""
	}
	sub := &printer{indent: p.indent, step: p.step}
	sub.expr(e)
	return sub.sb.String()
}

func (p *printer) exprList(list []ast.Expression) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = p.exprString(e)
	}
	return strings.Join(parts, ", ")
}

func typeArguments(args []*ast.TypeReference) string {
	if len(args) == 0 {
		return ""
	}
	return "<" + typeList(args) + ">"
}

func (p *printer) expr(e ast.Expression) {
	switch n := e.(type) {
	case *ast.PrimitiveExpression:
		p.write(n.Literal)
	case *ast.IdentifierExpression:
		p.write(n.Name + typeArguments(n.TypeArguments))
	case *ast.TypeReferenceExpression:
		p.write(n.Type.String())
	case *ast.ThisReferenceExpression:
		p.write("this")
	case *ast.BaseReferenceExpression:
		p.write("base")
	case *ast.ParenthesizedExpression:
		p.write("(")
		p.expr(n.Expression)
		p.write(")")
	case *ast.AssignmentExpression:
		p.expr(n.Left)
		p.write(" " + n.Operator.String() + " ")
		p.expr(n.Right)
	case *ast.ConditionalExpression:
		p.expr(n.Condition)
		p.write(" ? ")
		p.expr(n.True)
		p.write(" : ")
		p.expr(n.False)
	case *ast.BinaryOperatorExpression:
		p.expr(n.Left)
		p.write(" " + n.Operator.String() + " ")
		p.expr(n.Right)
	case *ast.UnaryOperatorExpression:
		if n.Operator.IsPostfix() {
			p.expr(n.Expression)
			p.write(n.Operator.String())
			return
		}
		p.write(n.Operator.String())
		if inner, ok := n.Expression.(*ast.UnaryOperatorExpression); ok && !inner.Operator.IsPostfix() &&
			inner.Operator.String()[0] == n.Operator.String()[0] {
			p.write(" ")
		}
		p.expr(n.Expression)
	case *ast.CastExpression:
		if n.Kind == ast.CastTry {
			p.expr(n.Expression)
			p.write(" as " + n.Type.String())
			return
		}
		p.write("(" + n.Type.String() + ")")
		p.expr(n.Expression)
	case *ast.TypeOfIsExpression:
		p.expr(n.Expression)
		p.write(" is " + n.Type.String())
	case *ast.InvocationExpression:
		p.expr(n.Target)
		p.write("(" + p.exprList(n.Arguments) + ")")
	case *ast.IndexerExpression:
		p.expr(n.Target)
		p.write("[" + p.exprList(n.Indexes) + "]")
	case *ast.MemberReferenceExpression:
		p.expr(n.Target)
		p.write("." + n.Member + typeArguments(n.TypeArguments))
	case *ast.PointerReferenceExpression:
		p.expr(n.Target)
		p.write("->" + n.Member)
	case *ast.ObjectCreateExpression:
		p.write("new " + n.Type.String() + "(" + p.exprList(n.Arguments) + ")")
	case *ast.ArrayCreateExpression:
		p.write("new " + n.ElementType.String())
		if n.Sizes != nil {
			p.write("[" + p.exprList(n.Sizes) + "]")
		}
		for _, r := range n.Ranks {
			p.write("[" + strings.Repeat(",", r) + "]")
		}
		if n.Initializer != nil {
			p.write(" ")
			p.expr(n.Initializer)
		}
	case *ast.ArrayInitializerExpression:
		if len(n.Elements) == 0 {
			p.write("{ }")
			return
		}
		p.write("{ " + p.exprList(n.Elements) + " }")
	case *ast.StackAllocExpression:
		p.write("stackalloc " + n.Type.String() + "[" + p.exprString(n.Size) + "]")
	case *ast.TypeOfExpression:
		p.write("typeof(" + n.Type.String() + ")")
	case *ast.SizeOfExpression:
		p.write("sizeof(" + n.Type.String() + ")")
	case *ast.DefaultValueExpression:
		p.write("default(" + n.Type.String() + ")")
	case *ast.CheckedExpression:
		p.write("checked(" + p.exprString(n.Expression) + ")")
	case *ast.UncheckedExpression:
		p.write("unchecked(" + p.exprString(n.Expression) + ")")
	case *ast.DirectionExpression:
		p.write(n.Direction.String() + " ")
		p.expr(n.Expression)
	case *ast.NamedArgumentExpression:
		p.write(n.Name + " = ")
		p.expr(n.Value)
	case *ast.AnonymousMethodExpression:
		p.write("delegate")
		if n.HasParameterList {
			p.write("(" + p.parameters(n.Parameters) + ")")
		}
		p.write(" {\n")
		p.indent++
		if n.Body != nil {
			for _, s := range n.Body.Statements {
				p.statement(s)
			}
		}
		p.indent--
		p.writeIndent()
		p.write("}")
	}
}
