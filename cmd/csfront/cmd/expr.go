package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/errors"
	"github.com/orizon-lang/csfront/internal/format"
	"github.com/orizon-lang/csfront/internal/parser"
	"github.com/orizon-lang/csfront/internal/position"
)

func newExprCmd(a *app) *cobra.Command {
	var tree string
	cmd := &cobra.Command{
		Use:   "expr <expression>",
		Short: "Parse a single expression",
		Long: `Parses the arguments, joined by spaces, as one C# expression and
prints it back in canonical form, or as a tree with --tree. Nothing is
printed when the expression has syntax errors.

Examples:
  csfront expr "a + b * c"
  csfront expr --tree yaml "(int)x.Length"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tree != "" && tree != "yaml" && tree != "json" {
				return errors.InvalidOption("tree", tree, nil)
			}
			text := strings.Join(args, " ")
			res, err := parser.ParseExpressionString(text, a.parseOptions()...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(res.Diagnostics) > 0 {
				r := &diagnostics.Renderer{
					Color:  a.useColor(cmd.ErrOrStderr()),
					Source: position.NewSourceFile("", text),
				}
				if err := r.Render(cmd.ErrOrStderr(), res.Diagnostics); err != nil {
					return err
				}
			}
			if res.Expression != nil && !res.HasErrors() {
				if tree != "" {
					err = writeTree(out, res.Expression, tree, false)
				} else {
					_, err = fmt.Fprintln(out, format.Node(res.Expression, format.DefaultOptions()))
				}
				if err != nil {
					return err
				}
			}
			if res.HasErrors() {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tree, "tree", "", "print the tree as yaml or json")
	return cmd
}
