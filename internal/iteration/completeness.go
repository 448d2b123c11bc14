package iteration

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/alexisbeaulieu97/gittemplate/internal/compare"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
	gterrors "github.com/alexisbeaulieu97/gittemplate/pkg/errors"
)

// ValidateCompleteness applies the configuration at configPath into a scratch folder and
// compares the output with reference. No generated folder is touched and the scratch folder
// is removed afterwards. A failed application is reported on the result, not as an error.
func (s *Service) ValidateCompleteness(ctx context.Context, configPath, reference string) (*model.CompletenessResult, error) {
	if info, err := s.fs.Stat(configPath); err != nil || !info.IsDir() {
		return nil, gterrors.NewInvalidPathError(configPath, "template configuration directory does not exist")
	}

	fail := func(err error) (*model.CompletenessResult, error) {
		return nil, gterrors.NewTemplateProcessingError("validate_template_completeness", err)
	}

	scratch, err := s.fs.MkdirTemp("", "template-completeness-*")
	if err != nil {
		return fail(err)
	}
	log := s.log.WithFields(map[string]any{"config": configPath, "reference": reference, "scratch": scratch})
	defer func() {
		if err := s.fs.RemoveAll(scratch); err != nil {
			log.Error(err, "could not remove scratch folder")
		}
	}()

	target := filepath.Join(scratch, "test_application")
	if err := s.fs.MkdirAll(target, 0o755); err != nil {
		return fail(err)
	}

	result := &model.CompletenessResult{ConfigPath: configPath, Reference: reference}

	out, err := s.applier.Apply(ctx, configPath, target)
	result.ApplyOutput = out.Output
	if err == nil && !out.Success {
		err = errors.New("template application reported failure")
	}
	if err != nil {
		log.Error(err, "template application failed")
		result.Error = "Template application failed: " + err.Error()
		return result, nil
	}

	comparison, err := s.engine.With(compare.WithIgnore(s.layout.ConfigDir)).Compare(reference, target)
	if err != nil {
		return fail(err)
	}

	summary := comparison.Summary()
	result.Complete = !comparison.HasDifferences()
	result.DifferencesCount = comparison.TotalDifferences()
	result.Summary = &summary
	result.Differences = comparison.Differences

	log.WithFields(map[string]any{"differences": result.DifferencesCount}).Info("template completeness checked")
	return result, nil
}
