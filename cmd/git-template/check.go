package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gittemplate/internal/report"
)

func newCheckCmd(root *rootFlags) *cobra.Command {
	var templatePath string

	cmd := &cobra.Command{
		Use:   "check [PATH]",
		Short: "Apply the template into a scratch folder and check it reproduces PATH",
		Long: "Apply the template into a scratch folder and check it reproduces PATH.\n\n" +
			"The template is the generated folder's configuration when one exists, otherwise PATH's own.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, root)
			if err != nil {
				return err
			}

			rep, err := app.analyzer.AnalyzeDevelopmentStatus(pathArg(args))
			if err != nil {
				return emit(cmd, report.NewError(err), app.settings.Format)
			}

			configPath := filepath.Join(rep.Analysis.Path, app.settings.Layout.ConfigDir)
			switch {
			case templatePath != "":
				configPath = app.resolve(templatePath)
			case rep.Analysis.GeneratedCounterpartHasConfiguration:
				configPath = filepath.Join(rep.Analysis.GeneratedCounterpartPath, app.settings.Layout.ConfigDir)
			}

			result, err := app.service.ValidateCompleteness(cmd.Context(), configPath, rep.Analysis.Path)
			if err != nil {
				return emit(cmd, report.NewError(err), app.settings.Format)
			}
			return emit(cmd, &report.CompletenessReport{Result: result}, app.settings.Format)
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "", "Template configuration directory to apply instead of the detected one")

	return cmd
}
