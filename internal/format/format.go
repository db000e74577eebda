// Package format re-renders C# source from the syntax tree built by the
// csfront parser. Output is canonical: parsing formatted output and
// formatting it again yields the same text.
package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/errors"
	"github.com/orizon-lang/csfront/internal/lexer"
	"github.com/orizon-lang/csfront/internal/parser"
)

// Options controls formatting style.
type Options struct {
	// IndentSize is the number of spaces per level when UseTabs is false.
	IndentSize int
	UseTabs    bool
	// PreserveNewlineStyle: when true, CRLF in input keeps CRLF in output; else LF.
	PreserveNewlineStyle bool
	// DropComments allows formatting files with comments or preprocessor
	// lines, which the syntax tree does not keep.
	DropComments bool
	// LanguageVersion is passed to the parser; empty means the default.
	LanguageVersion string
}

// DefaultOptions returns sane defaults.
func DefaultOptions() Options {
	return Options{IndentSize: 4, PreserveNewlineStyle: true}
}

// Node renders a single node: a compilation unit, a type declaration, a
// member, a statement or an expression.
func Node(n ast.Node, opts Options) string {
	p := newPrinter(opts)
	switch v := n.(type) {
	case *ast.CompilationUnit:
		p.unit(v)
	case *ast.TypeDeclaration:
		p.typeDeclaration(v)
	case ast.Statement:
		p.statement(v)
	case ast.Expression:
		p.expr(v)
	case ast.Member:
		p.member(v)
	}
	return p.sb.String()
}

// Source parses src and returns it formatted. Files with syntax errors,
// lexical errors or, unless opts.DropComments is set, comments are
// refused with an error wrapping errors.ErrUnformattable.
func Source(filename string, src []byte, opts Options) ([]byte, error) {
	if opts.IndentSize <= 0 && !opts.UseTabs {
		opts.IndentSize = 4
	}
	text := string(src)
	l := lexer.NewWithFilename(text, filename)

	var popts []parser.Option
	popts = append(popts, parser.WithFilename(filename))
	if opts.LanguageVersion != "" {
		popts = append(popts, parser.WithLanguageVersion(opts.LanguageVersion))
	}
	res, err := parser.ParseCompilationUnit(l, popts...)
	if err != nil {
		return nil, err
	}
	if res.HasErrors() {
		return nil, errors.Unformattable(filename,
			fmt.Sprintf("%d syntax error(s), first: %s", res.ErrorCount, firstError(res)))
	}
	if n := len(l.Errors()); n > 0 {
		return nil, errors.Unformattable(filename, fmt.Sprintf("%d lexical error(s), first: %v", n, l.Errors()[0]))
	}
	if l.Comments() > 0 && !opts.DropComments {
		return nil, errors.Unformattable(filename,
			fmt.Sprintf("%d comment(s) or directive(s) would be lost", l.Comments()))
	}

	out := FormatText(Node(res.Unit, opts), Options{})
	if opts.PreserveNewlineStyle && strings.Contains(text, "\r\n") {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	return []byte(out), nil
}

func firstError(res *parser.Result) string {
	for _, d := range res.Diagnostics {
		if d.Level == diagnostics.DiagnosticError {
			return d.String()
		}
	}
	return ""
}

// FormatBytes normalizes whitespace without parsing.
func FormatBytes(in []byte, opts Options) []byte {
	return []byte(FormatText(string(in), opts))
}

// FormatText applies minimal, safe formatting:
// - trims trailing spaces/tabs on each line
// - ensures exactly one trailing newline.
// - preserves CRLF vs LF depending on options and input.
func FormatText(text string, opts Options) string {
	useCRLF := opts.PreserveNewlineStyle && strings.Contains(text, "\r\n")

	norm := strings.ReplaceAll(text, "\r\n", "\n")
	norm = strings.ReplaceAll(norm, "\r", "\n")

	sep := "\n"
	if useCRLF {
		sep = "\r\n"
	}
	if norm == "" {
		return sep
	}

	lines := strings.Split(norm, "\n")
	// Drop final empty due to trailing newline; we'll re-add exactly one later.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var buf bytes.Buffer
	for i, ln := range lines {
		if i > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(strings.TrimRight(ln, " \t"))
	}
	buf.WriteString(sep)
	return buf.String()
}
