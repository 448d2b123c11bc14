package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gittemplate/internal/report"
)

func newStatusCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status [PATH]",
		Short: "Report where a folder is in the template development lifecycle",
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
			return emit(cmd, &report.StatusReport{Report: rep}, app.settings.Format)
		},
	}
}
