package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/csfront/internal/errors"
	"github.com/orizon-lang/csfront/internal/format"
)

func newFmtCmd(a *app) *cobra.Command {
	var (
		write        bool
		list         bool
		showDiff     bool
		dropComments bool
		useTabs      bool
		indent       int
	)
	cmd := &cobra.Command{
		Use:   "fmt <file|dir>...",
		Short: "Reformat files from their syntax tree",
		Long: `Reprints files from their syntax tree. Files with syntax errors are
left alone. The tree keeps no comments, so files with comments or
preprocessor lines are refused unless --drop-comments is given.

Examples:
  csfront fmt Program.cs
  csfront fmt -l src/
  csfront fmt -d Program.cs
  csfront fmt -w --tabs src/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if indent <= 0 {
				return errors.InvalidOption("indent", indent, nil)
			}
			files, err := a.expandPaths(args)
			if err != nil {
				return err
			}
			opts := format.DefaultOptions()
			opts.IndentSize = indent
			opts.UseTabs = useTabs
			opts.DropComments = dropComments
			opts.LanguageVersion = a.cfg.LanguageVersion

			out := cmd.OutOrStdout()
			failed := false
			for _, path := range files {
				data, err := os.ReadFile(path)
				if err != nil {
					a.log.Error("%v", errors.ReadFailure(path, err))
					failed = true
					continue
				}
				formatted, err := format.Source(path, data, opts)
				if err != nil {
					a.log.Error("%v", err)
					failed = true
					continue
				}
				changed := !bytes.Equal(formatted, data)

				switch {
				case list:
					if changed {
						fmt.Fprintln(out, path)
					}
				case showDiff:
					if changed {
						fmt.Fprint(out, format.Diff(path, string(data), string(formatted), 3))
					}
				case write:
					if !changed {
						continue
					}
					if err := os.WriteFile(path, formatted, 0o644); err != nil {
						a.log.Error("cannot write %s: %v", path, err)
						failed = true
						continue
					}
					a.log.Info("formatted %s", path)
				default:
					if _, err := out.Write(formatted); err != nil {
						return err
					}
				}
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&write, "write", "w", false, "write the result back to the file")
	f.BoolVarP(&list, "list", "l", false, "list files whose formatting differs")
	f.BoolVarP(&showDiff, "diff", "d", false, "print a unified diff instead of the result")
	f.BoolVar(&dropComments, "drop-comments", false, "format files even if comments would be lost")
	f.BoolVar(&useTabs, "tabs", false, "indent with tabs")
	f.IntVar(&indent, "indent", 4, "spaces per indentation level")
	return cmd
}
