package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gittemplate/internal/fsops"
	"github.com/alexisbeaulieu97/gittemplate/internal/iteration"
	"github.com/alexisbeaulieu97/gittemplate/internal/report"
)

type iterateOptions struct {
	force              bool
	detailedComparison bool
}

func newIterateCmd(root *rootFlags) *cobra.Command {
	opts := &iterateOptions{}

	cmd := &cobra.Command{
		Use:   "iterate [PATH]",
		Short: "Run the next iteration step for a template folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("force") {
				app.settings.Force = opts.force
			}
			if cmd.Flags().Changed("detailed-comparison") {
				app.settings.DetailedComparison = opts.detailedComparison
			}
			return runIterate(cmd.Context(), cmd, app, pathArg(args))
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "Dispatch even when the strategy cannot proceed")
	cmd.Flags().BoolVar(&opts.detailedComparison, "detailed-comparison", false, "Include the comparison and per-file diffs in the report")

	return cmd
}

func runIterate(ctx context.Context, cmd *cobra.Command, app *appContext, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format := app.settings.Format

	rep, err := app.analyzer.AnalyzeDevelopmentStatus(path)
	if err != nil {
		return emit(cmd, report.NewError(err), format)
	}

	lock, err := fsops.AcquireLock(os.TempDir(), rep.Analysis.Path)
	if err != nil {
		return emit(cmd, report.NewError(err), format)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			app.log.Error(err, "failed to release iteration lock")
		}
	}()

	result := app.service.Dispatch(ctx, rep, app.determine(rep), iteration.Options{
		DetailedComparison: app.settings.DetailedComparison,
		Force:              app.settings.Force,
	})
	return emit(cmd, result, format)
}
