package iteration

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alexisbeaulieu97/gittemplate/internal/model"
	gterrors "github.com/alexisbeaulieu97/gittemplate/pkg/errors"
)

// CreateGeneratedFolder creates the generated folder at the proposed location and copies the
// application's template configuration into it. It returns the generated folder path.
func (s *Service) CreateGeneratedFolder(ctx context.Context, rep *model.DevelopmentReport) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if rep == nil || !rep.Analysis.Exists {
		return "", gterrors.NewFolderAnalysisError(reportPath(rep), "Folder does not exist", nil)
	}
	if !rep.Analysis.HasTemplateConfiguration {
		return "", gterrors.NewTemplateValidationError(rep.Analysis.Path, []string{"No template configuration found"})
	}

	target := rep.ProposedCounterpartPath
	if target == "" {
		return "", gterrors.NewInvalidPathError(rep.Analysis.Path, "no location for the generated folder")
	}
	if info, err := s.fs.Stat(target); err == nil && !info.IsDir() {
		return "", gterrors.NewInvalidPathError(target, "exists and is not a directory")
	}

	if err := s.fs.MkdirAll(target, 0o755); err != nil {
		return "", gterrors.NewTemplateProcessingError("create_generated_folder", err)
	}
	if err := s.copyConfiguration(rep.Analysis.Path, target); err != nil {
		return "", gterrors.NewTemplateProcessingError("create_generated_folder", err)
	}

	s.log.WithFields(map[string]any{"application": rep.Analysis.Path, "generated": target}).Info("generated folder created")
	return target, nil
}

// SyncConfiguration copies the application's template configuration into an existing
// generated folder that lacks one. It returns the generated folder path.
func (s *Service) SyncConfiguration(ctx context.Context, rep *model.DevelopmentReport) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if rep == nil || !rep.Analysis.Exists {
		return "", gterrors.NewFolderAnalysisError(reportPath(rep), "Folder does not exist", nil)
	}
	if !rep.Analysis.HasTemplateConfiguration {
		return "", gterrors.NewTemplateValidationError(rep.Analysis.Path, []string{"No template configuration found"})
	}

	target := rep.Analysis.GeneratedCounterpartPath
	if target == "" || !rep.Analysis.GeneratedCounterpartExists {
		return "", gterrors.NewFolderAnalysisError(rep.ProposedCounterpartPath, "Generated folder does not exist", nil)
	}
	if _, err := s.fs.Stat(filepath.Join(target, s.layout.ConfigDir)); err == nil {
		return "", gterrors.NewTemplateValidationError(target, []string{"Generated folder already has template configuration"})
	}

	if err := s.copyConfiguration(rep.Analysis.Path, target); err != nil {
		return "", gterrors.NewTemplateProcessingError("sync_configuration", err)
	}

	s.log.WithFields(map[string]any{"application": rep.Analysis.Path, "generated": target}).Info("template configuration copied")
	return target, nil
}

func (s *Service) copyConfiguration(application, generated string) error {
	src := filepath.Join(application, s.layout.ConfigDir)
	dst := filepath.Join(generated, s.layout.ConfigDir)
	if err := s.fs.CopyTree(src, dst); err != nil {
		return fmt.Errorf("copy %s: %w", s.layout.ConfigDir, err)
	}
	return nil
}

func reportPath(rep *model.DevelopmentReport) string {
	if rep == nil {
		return ""
	}
	return rep.Analysis.Path
}
