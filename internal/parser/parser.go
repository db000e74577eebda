// Package parser implements the csfront recursive descent parser for C# 2.0.
//
// The parser reads from a TokenSource through a Stream that supports
// arbitrary lookahead. Productions that one token cannot decide consult
// the predicates in predicates.go. The tree is built by an Assembler and
// syntax errors are reported as diagnostics; the parser resynchronizes on
// the follow sets of the active productions and always returns a tree.
package parser

import (
	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/errors"
	"github.com/orizon-lang/csfront/internal/lexer"
	"github.com/orizon-lang/csfront/internal/position"
)

// Parser holds the state of one parse. A Parser is not safe for
// concurrent use; create one per input.
type Parser struct {
	s        *Stream
	filename string
	diags    *diagnostics.DiagnosticManager
	follow   *FollowTable
	lang     *LanguageVersion
	asm      *Assembler

	prods   []Production
	errDist int

	// type parameters split off an explicit interface method name
	pendingTemplates []*ast.TemplateDefinition
}

// Option configures a parse.
type Option func(*options)

type options struct {
	filename    string
	sink        diagnostics.Sink
	follow      *FollowTable
	langVersion string
	maxErrors   int
	err         error
}

// WithFilename sets the file name recorded in diagnostics and in the
// compilation unit.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithSink forwards every accepted diagnostic to sink as it is reported.
func WithSink(sink diagnostics.Sink) Option {
	return func(o *options) { o.sink = sink }
}

// WithFollowTable replaces the default follow table.
func WithFollowTable(ft *FollowTable) Option {
	return func(o *options) {
		if ft == nil {
			o.err = errors.InvalidOption("follow table", nil, nil)
			return
		}
		o.follow = ft
	}
}

// WithLanguageVersion selects the language version, for example "1.2".
func WithLanguageVersion(v string) Option {
	return func(o *options) { o.langVersion = v }
}

// WithMaxErrors sets the error limit; 0 disables it.
func WithMaxErrors(n int) Option {
	return func(o *options) {
		if n < 0 {
			o.err = errors.InvalidOption("max errors", n, nil)
			return
		}
		o.maxErrors = n
	}
}

// New creates a parser reading from src.
func New(src TokenSource, opts ...Option) (*Parser, error) {
	o := options{
		langVersion: DefaultLanguageVersion,
		maxErrors:   diagnostics.DefaultMaxErrors,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	lang, err := ParseLanguageVersion(o.langVersion)
	if err != nil {
		return nil, err
	}
	if o.follow == nil {
		o.follow = DefaultFollowTable()
	}
	return &Parser{
		s:        NewStream(src),
		filename: o.filename,
		diags:    diagnostics.NewDiagnosticManager(o.maxErrors, o.sink),
		follow:   o.follow,
		lang:     lang,
		asm:      NewAssembler(),
		errDist:  minErrDist,
	}, nil
}

// Result is the outcome of parsing a compilation unit.
type Result struct {
	Unit         *ast.CompilationUnit
	Diagnostics  []diagnostics.Diagnostic
	ErrorCount   int
	WarningCount int
	Stats        AssemblerStats
}

// HasErrors reports whether any error diagnostic was produced.
func (r *Result) HasErrors() bool { return r.ErrorCount > 0 }

// Balanced reports whether every opened container was closed.
func (r *Result) Balanced() bool { return r.Stats.Opens == r.Stats.Closes }

// ExprResult is the outcome of parsing a standalone expression.
type ExprResult struct {
	Expression   ast.Expression
	Diagnostics  []diagnostics.Diagnostic
	ErrorCount   int
	WarningCount int
}

// HasErrors reports whether any error diagnostic was produced.
func (r *ExprResult) HasErrors() bool { return r.ErrorCount > 0 }

// ParseCompilationUnit parses a whole source file. Syntax errors never
// fail the call; they are returned as diagnostics next to a best-effort
// tree. The error is non-nil only for invalid options or a failing token
// source, in which case the partial result is still returned when one
// exists.
func ParseCompilationUnit(src TokenSource, opts ...Option) (*Result, error) {
	p, err := New(src, opts...)
	if err != nil {
		return nil, err
	}
	unit := p.parseCompilationUnit()
	res := &Result{
		Unit:         unit,
		Diagnostics:  p.diags.Diagnostics(),
		ErrorCount:   p.diags.ErrorCount(),
		WarningCount: p.diags.WarningCount(),
		Stats:        p.asm.Stats(),
	}
	return res, p.s.Err()
}

// ParseExpression parses a single expression that must make up the whole
// input.
func ParseExpression(src TokenSource, opts ...Option) (*ExprResult, error) {
	p, err := New(src, opts...)
	if err != nil {
		return nil, err
	}
	expr := p.parseExpression()
	p.expect(lexer.TokenEOF)
	res := &ExprResult{
		Expression:   expr,
		Diagnostics:  p.diags.Diagnostics(),
		ErrorCount:   p.diags.ErrorCount(),
		WarningCount: p.diags.WarningCount(),
	}
	return res, p.s.Err()
}

// ParseFile lexes and parses content with the bundled lexer.
func ParseFile(filename, content string, opts ...Option) (*Result, error) {
	opts = append([]Option{WithFilename(filename)}, opts...)
	return ParseCompilationUnit(lexer.NewWithFilename(content, filename), opts...)
}

// ParseExpressionString lexes and parses a standalone expression.
func ParseExpressionString(text string, opts ...Option) (*ExprResult, error) {
	return ParseExpression(lexer.New(text), opts...)
}

// ====== Span and assembly helpers ======

// startPos returns the start of the lookahead, the first token a
// production is about to consume.
func (p *Parser) startPos() position.Position { return p.la().Span.Start }

// spanFrom returns the span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start position.Position) position.Span {
	return spanOf(start, p.s.Current().Span.End)
}

// finish stamps n with the span from start to the last consumed token.
func (p *Parser) finish(n ast.Node, start position.Position) {
	n.SetSpan(p.spanFrom(start))
}

// open pushes a container whose span starts at start.
func (p *Parser) open(n ast.Container, start position.Position) {
	p.asm.Open(n, start)
}

// close pops the innermost container, ending its span at the last
// consumed token.
func (p *Parser) close() ast.Container {
	return p.asm.Close(p.s.Current().Span.End)
}

// attach adds a completed node to the innermost open container.
func (p *Parser) attach(n ast.Node) {
	if n == nil {
		return
	}
	p.asm.Attach(n)
}
