package cmd

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]...",
		Short: "Re-parse files as they change",
		Long: `Watches directories, the current one by default, and re-parses
every matching file when it changes. The extensions and the quiet
period come from the [watch] section of the configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			w, err := watch.New(args, watch.Options{
				Debounce:     a.cfg.Watch.Debounce.Duration,
				Match:        a.cfg.Matches,
				ParseOptions: a.parseOptions(),
				Logger:       a.log,
			})
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			r := &diagnostics.Renderer{Color: a.useColor(out)}
			a.log.Info("watching %v", args)
			err = w.Run(ctx, func(ev watch.Event) {
				switch {
				case ev.Err != nil:
					a.log.Error("%s: %v", ev.Path, ev.Err)
				case ev.Result == nil:
					a.log.Info("%s: removed", ev.Path)
				case len(ev.Result.Diagnostics) == 0:
					a.log.Info("%s: ok (%s)", ev.Path, ev.Op)
				default:
					if err := r.Render(out, ev.Result.Diagnostics); err != nil {
						a.log.Error("%v", err)
					}
				}
			})
			if stderrors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
