package iteration

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/gittemplate/internal/compare"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
	"github.com/alexisbeaulieu97/gittemplate/internal/templateconfig"
	gterrors "github.com/alexisbeaulieu97/gittemplate/pkg/errors"
)

// ExecuteRepoIteration regenerates the generated folder from its configuration, compares it
// to the application folder and appends corrective rules to the cleanup phase. It never
// returns an error: failures are reported on the result. Template output from a failed apply
// or compare is left in the generated folder.
func (s *Service) ExecuteRepoIteration(ctx context.Context, rep *model.DevelopmentReport, opts Options) *model.IterationResult {
	result := &model.IterationResult{
		RunID:     s.newID(),
		Timestamp: s.now(),
	}
	if rep != nil {
		result.ApplicationFolder = rep.Analysis.Path
		result.GeneratedFolder = rep.Analysis.GeneratedCounterpartPath
	}

	log := s.log.WithFields(map[string]any{
		"run_id":      result.RunID,
		"application": result.ApplicationFolder,
		"generated":   result.GeneratedFolder,
	})

	fail := func(err error) *model.IterationResult {
		result.Success = false
		result.ErrorMessage = err.Error()
		result.ErrorKind = string(gterrors.KindOf(err))
		log.Error(err, "template iteration failed")
		return result
	}

	if err := s.checkPreconditions(rep); err != nil {
		return fail(err)
	}

	generated := result.GeneratedFolder
	configPath := filepath.Join(generated, s.layout.ConfigDir)

	log.Info("cleaning generated folder")
	if err := s.Clean(generated); err != nil {
		return fail(gterrors.NewTemplateProcessingError("clean_generated_folder", err))
	}

	log.Info("applying template")
	out, err := s.applier.Apply(ctx, configPath, generated)
	result.ApplyOutput = out.Output
	if err == nil && !out.Success {
		err = errors.New("template application reported failure")
	}
	if err != nil {
		return fail(gterrors.NewTemplateProcessingError("apply_template", err))
	}
	result.TemplateApplied = true

	log.Info("comparing application and generated folders")
	comparison, err := s.engine.With(compare.WithIgnore(s.layout.ConfigDir)).Compare(result.ApplicationFolder, generated)
	if err != nil {
		return fail(gterrors.NewTemplateProcessingError("compare_folders", err))
	}

	result.DifferencesCount = comparison.TotalDifferences()
	result.DifferencesFound = comparison.HasDifferences()
	if opts.DetailedComparison {
		result.Comparison = comparison
	}

	if comparison.HasDifferences() {
		script := CleanupScript(comparison, s.now())
		if err := templateconfig.AppendCleanup(configPath, s.layout, script); err != nil {
			return fail(gterrors.NewTemplateProcessingError("update_cleanup_phase", err))
		}
		result.CleanupUpdated = true
	}

	result.Success = true
	log.WithFields(map[string]any{"differences": result.DifferencesCount}).Info("template iteration finished")
	return result
}

// CleanupScript is the block appended to the cleanup phase for one comparison.
func CleanupScript(comparison *model.ComparisonResult, at time.Time) string {
	lines := []string{
		"# Cleanup phase - generated by template iteration",
		"# Generated at: " + at.Format(time.RFC3339),
		fmt.Sprintf("# Differences found: %d", comparison.TotalDifferences()),
		"",
		compare.GenerateDiffScript(comparison),
	}
	return strings.Join(lines, "\n") + "\n"
}

func (s *Service) checkPreconditions(rep *model.DevelopmentReport) error {
	if rep == nil {
		return gterrors.NewFolderAnalysisError("", "no analysis available", nil)
	}
	a := rep.Analysis

	if !a.Exists {
		return gterrors.NewFolderAnalysisError(a.Path, "Folder does not exist", nil)
	}
	if !a.HasTemplateConfiguration {
		return gterrors.NewTemplateValidationError(a.Path, []string{"No template configuration found"})
	}
	if !a.GeneratedCounterpartExists || a.GeneratedCounterpartPath == "" {
		return gterrors.NewFolderAnalysisError(rep.ProposedCounterpartPath, "Generated folder does not exist", nil)
	}
	if !a.GeneratedCounterpartHasConfiguration {
		return gterrors.NewTemplateValidationError(a.GeneratedCounterpartPath,
			[]string{"Generated folder lacks template configuration"})
	}

	appConfig := rep.TemplateConfiguration
	if appConfig == nil {
		appConfig = templateconfig.Load(filepath.Join(a.Path, s.layout.ConfigDir), s.layout)
	}
	if !appConfig.Valid() {
		return gterrors.NewTemplateValidationError(a.Path, appConfig.ValidationErrors)
	}

	generatedConfig := rep.CounterpartConfiguration
	if generatedConfig == nil {
		generatedConfig = templateconfig.Load(filepath.Join(a.GeneratedCounterpartPath, s.layout.ConfigDir), s.layout)
	}
	if !generatedConfig.Valid() {
		return gterrors.NewTemplateValidationError(a.GeneratedCounterpartPath, generatedConfig.ValidationErrors)
	}

	return nil
}
