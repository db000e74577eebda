// Package ast defines the syntax tree produced by the csfront parser.
//
// Every node carries the source span of the tokens it was built from.
// Composite nodes own their children; the tree contains no parent links.
// Nodes are fully populated by the production that builds them before they
// are attached to a parent, and are not modified afterwards.
package ast

import (
	"github.com/orizon-lang/csfront/internal/position"
)

// Node is the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span covered by this node
	GetSpan() position.Span
	// SetSpan stamps the node's span. Only the parser calls it.
	SetSpan(position.Span)
}

// Statement represents all statement nodes
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes
type Expression interface {
	Node
	expressionNode()
}

// Member represents declarations that may appear in a type body.
type Member interface {
	Node
	memberNode()
}

// Container is a composite node that receives children while it is open
// on the parser's assembler stack.
type Container interface {
	Node
	// AddChild appends n and reports whether n is a legal child kind.
	AddChild(n Node) bool
}

// NodeBase carries the span shared by every node.
type NodeBase struct {
	Span position.Span
}

func (b *NodeBase) GetSpan() position.Span  { return b.Span }
func (b *NodeBase) SetSpan(s position.Span) { b.Span = s }

// ====== Compilation unit and namespaces ======

// CompilationUnit is the root node for one parsed source file. Children
// holds using directives, global attribute sections, namespaces and type
// declarations in source order.
type CompilationUnit struct {
	NodeBase
	Filename string
	Children []Node
}

func (c *CompilationUnit) AddChild(n Node) bool {
	switch n.(type) {
	case *UsingDeclaration, *AttributeSection, *NamespaceDeclaration, *TypeDeclaration:
		c.Children = append(c.Children, n)
		return true
	}
	return false
}

// Types returns the top-level type declarations, including those nested
// in namespaces.
func (c *CompilationUnit) Types() []*TypeDeclaration {
	var out []*TypeDeclaration
	var collect func(children []Node)
	collect = func(children []Node) {
		for _, child := range children {
			switch n := child.(type) {
			case *TypeDeclaration:
				out = append(out, n)
			case *NamespaceDeclaration:
				collect(n.Children)
			}
		}
	}
	collect(c.Children)
	return out
}

// UsingDeclaration is a using directive: either a namespace import
// ("using System.Text;") or an alias ("using Map = System.Collections.Hashtable;").
type UsingDeclaration struct {
	NodeBase
	Namespace string         // imported namespace; empty for aliases
	Alias     string         // alias name; empty for imports
	Target    *TypeReference // aliased type
}

// IsAlias reports whether the directive declares an alias.
func (u *UsingDeclaration) IsAlias() bool { return u.Alias != "" }

// NamespaceDeclaration is a namespace block.
type NamespaceDeclaration struct {
	NodeBase
	Name     string
	Children []Node
}

func (n *NamespaceDeclaration) AddChild(child Node) bool {
	switch child.(type) {
	case *UsingDeclaration, *NamespaceDeclaration, *TypeDeclaration:
		n.Children = append(n.Children, child)
		return true
	}
	return false
}

// ====== Attributes ======

// AttributeSection is one bracketed attribute list, optionally prefixed by
// a target ("[assembly: CLSCompliant(true)]").
type AttributeSection struct {
	NodeBase
	Target     string
	Attributes []*Attribute
}

// Attribute is a single attribute application.
type Attribute struct {
	NodeBase
	Name       *TypeReference
	Positional []Expression
	Named      []*NamedArgumentExpression
}
