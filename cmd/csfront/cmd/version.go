package cmd

import (
	"github.com/spf13/cobra"

	"github.com/orizon-lang/csfront/internal/cli"
)

func newVersionCmd(a *app) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.PrintVersion(cmd.OutOrStdout(), "csfront", cli.GetVersionInfo(a.cfg.LanguageVersion), jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}
