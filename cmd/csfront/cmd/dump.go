package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/astdump"
	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/errors"
	"github.com/orizon-lang/csfront/internal/parser"
	"github.com/orizon-lang/csfront/internal/position"
)

func newDumpCmd(a *app) *cobra.Command {
	var (
		format string
		spans  bool
	)
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the syntax tree of a file",
		Long: `Parses a file and prints its syntax tree as YAML or JSON. The tree is
printed even when the file has syntax errors; the diagnostics go to
standard error.

Examples:
  csfront dump Program.cs
  csfront dump --format json --spans Program.cs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "yaml" && format != "json" {
				return errors.InvalidOption("format", format, nil)
			}
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			res, err := parser.ParseFile(args[0], src, a.parseOptions()...)
			if err != nil {
				return err
			}
			if err := writeTree(cmd.OutOrStdout(), res.Unit, format, spans); err != nil {
				return err
			}
			if len(res.Diagnostics) > 0 {
				r := &diagnostics.Renderer{
					Color:  a.useColor(cmd.ErrOrStderr()),
					Source: position.NewSourceFile(args[0], src),
				}
				if err := r.Render(cmd.ErrOrStderr(), res.Diagnostics); err != nil {
					return err
				}
			}
			if res.HasErrors() {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	cmd.Flags().BoolVar(&spans, "spans", false, "include source spans")
	return cmd
}

func writeTree(w io.Writer, n ast.Node, format string, spans bool) error {
	entry := astdump.Build(n, astdump.Options{Spans: spans})
	switch format {
	case "json":
		return astdump.WriteJSON(w, entry)
	case "yaml":
		return astdump.WriteYAML(w, entry)
	}
	return fmt.Errorf("unknown format %q", format)
}
