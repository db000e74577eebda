// Package cmd implements the csfront command line.
package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/csfront/internal/cli"
	"github.com/orizon-lang/csfront/internal/errors"
	"github.com/orizon-lang/csfront/internal/parser"
)

// errFailed is returned by commands that already reported their own
// failure, so Execute only sets the exit status.
var errFailed = stderrors.New("csfront: failed")

// app holds the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	debug   bool
	lang    string
	maxErrs int
	color   string
	cfg     *cli.Config
	log     *cli.Logger
}

// Execute runs the csfront command line with os.Args.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil && !stderrors.Is(err, errFailed) {
		fmt.Fprintf(os.Stderr, "csfront: %v\n", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "csfront",
		Short: "C# 2.0 parser front end",
		Long: `csfront parses C# 2.0 source files into a syntax tree and reports
syntax errors with positions.

Commands:
  parse    - check files and report diagnostics
  dump     - print the syntax tree of a file
  expr     - parse a single expression
  fmt      - reformat files from their syntax tree
  watch    - re-parse files as they change
  config   - write a default configuration file
  version  - print version information`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./"+cli.DefaultConfigFile+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&a.debug, "debug", false, "debug output")
	flags.StringVar(&a.lang, "lang", parser.DefaultLanguageVersion, "C# language version")
	flags.IntVar(&a.maxErrs, "max-errors", 100, "stop reporting after this many errors (0 = no limit)")
	flags.StringVar(&a.color, "color", "auto", "colorize diagnostics: auto, always or never")

	root.AddCommand(
		newParseCmd(a),
		newDumpCmd(a),
		newExprCmd(a),
		newFmtCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads the configuration and applies flag overrides.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.LanguageVersion = a.lang
	}
	if flags.Changed("max-errors") {
		cfg.MaxErrors = a.maxErrs
	}
	if flags.Changed("color") {
		cfg.Color = a.color
	}
	cfg.Verbose = cfg.Verbose || a.verbose
	cfg.Debug = cfg.Debug || a.debug
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := parser.ParseLanguageVersion(cfg.LanguageVersion); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = cli.NewLoggerTo(cmd.ErrOrStderr(), cfg.Verbose, cfg.Debug)
	a.log.Debug("configuration: lang=%s max_errors=%d color=%s", cfg.LanguageVersion, cfg.MaxErrors, cfg.Color)
	return nil
}

func (a *app) parseOptions() []parser.Option {
	return []parser.Option{
		parser.WithLanguageVersion(a.cfg.LanguageVersion),
		parser.WithMaxErrors(a.cfg.MaxErrors),
	}
}

// useColor resolves the color setting for w; writers that are not files
// never get color unless it is forced.
func (a *app) useColor(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return a.cfg.UseColor(f)
	}
	return a.cfg.Color == "always"
}

// expandPaths replaces directories in args by the matching files below
// them. Plain files are kept whatever their extension.
func (a *app) expandPaths(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.ReadFailure(arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return errors.ReadFailure(path, err)
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if a.cfg.Matches(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.ReadFailure(path, err)
	}
	return string(data), nil
}
