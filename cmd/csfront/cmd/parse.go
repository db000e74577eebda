package cmd

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/parser"
	"github.com/orizon-lang/csfront/internal/position"
)

// fileReport is the outcome of parsing one file.
type fileReport struct {
	File        string                   `json:"file"`
	Types       int                      `json:"types"`
	Errors      int                      `json:"errors"`
	Warnings    int                      `json:"warnings"`
	Balanced    bool                     `json:"balanced"`
	Diagnostics []diagnostics.Diagnostic `json:"diagnostics"`

	source string
}

// runReport is the JSON document written by parse --json.
type runReport struct {
	RunID           string        `json:"run_id"`
	LanguageVersion string        `json:"language_version"`
	Files           []*fileReport `json:"files"`
	Errors          int           `json:"errors"`
	Warnings        int           `json:"warnings"`
}

func newParseCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		jobs       int
	)
	cmd := &cobra.Command{
		Use:   "parse <file|dir>...",
		Short: "Parse files and report diagnostics",
		Long: `Parses every given file, and every matching file below given
directories, and prints the diagnostics. The exit status is non-zero
when any file has syntax errors.

Examples:
  csfront parse Program.cs
  csfront parse --json src/
  csfront parse --lang 1.2 Legacy.cs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := a.expandPaths(args)
			if err != nil {
				return err
			}
			report, err := a.parseAll(cmd, files, jobs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				color := a.useColor(out)
				for _, fr := range report.Files {
					r := &diagnostics.Renderer{
						Color:   color,
						Source:  position.NewSourceFile(fr.File, fr.source),
						Context: 1,
					}
					if err := r.Render(out, fr.Diagnostics); err != nil {
						return err
					}
				}
			}
			if report.Errors > 0 {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "write a JSON report")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of files parsed in parallel")
	return cmd
}

// parseAll parses files concurrently. Reports keep the order of files.
func (a *app) parseAll(cmd *cobra.Command, files []string, jobs int) (*runReport, error) {
	report := &runReport{
		RunID:           uuid.New().String()[:8],
		LanguageVersion: a.cfg.LanguageVersion,
		Files:           make([]*fileReport, len(files)),
	}
	started := time.Now()
	a.log.Debug("run %s: parsing %d file(s) with %d job(s)", report.RunID, len(files), jobs)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(jobs, 1))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := readSource(path)
			if err != nil {
				return err
			}
			res, err := parser.ParseFile(path, src, a.parseOptions()...)
			if err != nil {
				return err
			}
			report.Files[i] = &fileReport{
				File:        path,
				Types:       len(res.Unit.Types()),
				Errors:      res.ErrorCount,
				Warnings:    res.WarningCount,
				Balanced:    res.Balanced(),
				Diagnostics: res.Diagnostics,
				source:      src,
			}
			a.log.Debug("run %s: %s: %d error(s), %d warning(s)", report.RunID, path, res.ErrorCount, res.WarningCount)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, fr := range report.Files {
		report.Errors += fr.Errors
		report.Warnings += fr.Warnings
	}
	a.log.Info("run %s: parsed %d file(s) in %s: %d error(s), %d warning(s)",
		report.RunID, len(files), time.Since(started).Round(time.Millisecond), report.Errors, report.Warnings)
	return report, nil
}
