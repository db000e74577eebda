package parser

import (
	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/position"
)

// AssemblerStats counts container operations of one parse.
type AssemblerStats struct {
	Opens    int
	Closes   int
	MaxDepth int
}

// Assembler builds the tree incrementally. Containers are opened when the
// production that builds them starts, receive their children while open,
// and are closed when the production ends. A node is attached to its
// parent only after it is complete.
type Assembler struct {
	stack []openContainer
	stats AssemblerStats
}

type openContainer struct {
	node  ast.Container
	start position.Position
}

// NewAssembler creates an empty assembler.
func NewAssembler() *Assembler {
	return &Assembler{stack: make([]openContainer, 0, 16)}
}

// Open pushes n; its span will start at start.
func (a *Assembler) Open(n ast.Container, start position.Position) {
	a.stack = append(a.stack, openContainer{node: n, start: start})
	a.stats.Opens++
	if len(a.stack) > a.stats.MaxDepth {
		a.stats.MaxDepth = len(a.stack)
	}
}

// Attach appends n to the innermost open container. It reports false when
// nothing is open or the container does not accept n.
func (a *Assembler) Attach(n ast.Node) bool {
	if len(a.stack) == 0 || n == nil {
		return false
	}
	return a.stack[len(a.stack)-1].node.AddChild(n)
}

// Close pops the innermost container, stamps its span ending at end and
// returns it. A container that consumed nothing gets an empty span.
func (a *Assembler) Close(end position.Position) ast.Container {
	if len(a.stack) == 0 {
		return nil
	}
	top := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	a.stats.Closes++
	top.node.SetSpan(spanOf(top.start, end))
	return top.node
}

// Top returns the innermost open container, or nil.
func (a *Assembler) Top() ast.Container {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1].node
}

// Depth returns the number of open containers.
func (a *Assembler) Depth() int { return len(a.stack) }

// Stats returns the operation counts so far.
func (a *Assembler) Stats() AssemblerStats { return a.stats }

// spanOf builds the span [start, end), collapsing it to start when end
// lies before it.
func spanOf(start, end position.Position) position.Span {
	if end.Offset < start.Offset || end.Line == 0 {
		end = start
	}
	return position.Span{Start: start, End: end}
}
