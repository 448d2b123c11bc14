package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gittemplate/internal/compare"
	"github.com/alexisbeaulieu97/gittemplate/internal/report"
)

func newCompareCmd(root *rootFlags) *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "compare SOURCE TARGET",
		Short: "Compare two folders by content and print the cleanup script that reconciles them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, root)
			if err != nil {
				return err
			}

			result, err := app.engine.Compare(app.resolve(args[0]), app.resolve(args[1]))
			if err != nil {
				return emit(cmd, report.NewError(err), app.settings.Format)
			}

			out := &report.ComparisonReport{
				Comparison: result,
				Script:     compare.GenerateDiffScript(result),
			}
			if detailed {
				out.Diffs = app.service.FileDiffs(result)
			}
			return emit(cmd, out, app.settings.Format)
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "Include unified diffs of modified files")

	return cmd
}
