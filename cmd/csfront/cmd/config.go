package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/csfront/internal/cli"
	"github.com/orizon-lang/csfront/internal/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective configuration to a file",
		Long: `Writes the configuration in effect, defaults merged with the loaded
file and flags, to path (default: ./` + cli.DefaultConfigFile + `).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cli.DefaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.InvalidConfig(path, "file exists (use --force)", nil)
			}
			if err := a.cfg.SaveConfig(path); err != nil {
				return err
			}
			a.log.Info("wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
