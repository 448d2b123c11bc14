package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gittemplate/internal/model"
	"github.com/alexisbeaulieu97/gittemplate/internal/report"
	"github.com/alexisbeaulieu97/gittemplate/internal/strategy"
)

func newStrategyCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "strategy [PATH]",
		Short: "Show the iteration strategy and its prerequisites for a folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, root)
			if err != nil {
				return err
			}

			rep, err := app.analyzer.AnalyzeDevelopmentStatus(pathArg(args))
			if err != nil {
				return emit(cmd, report.NewError(err), app.settings.Format)
			}

			return emit(cmd, &report.StrategyReport{
				Strategy:   app.determine(rep),
				Validation: strategy.ValidatePrerequisites(rep),
			}, app.settings.Format)
		},
	}
}

func (a *appContext) determine(rep *model.DevelopmentReport) model.StrategyResult {
	return strategy.Determine(rep.Status, strategy.Options{
		FolderPath:  rep.Analysis.Path,
		ConfigDir:   a.settings.Layout.ConfigDir,
		EntryScript: a.settings.Layout.EntryScript,
	})
}
