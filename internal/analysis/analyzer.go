// Package analysis inspects folders and classifies them in the template development lifecycle.
package analysis

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/fsops"
	"github.com/alexisbeaulieu97/gittemplate/internal/logger"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
	"github.com/alexisbeaulieu97/gittemplate/internal/templateconfig"
	gterrors "github.com/alexisbeaulieu97/gittemplate/pkg/errors"
)

const vcsDir = ".git"

// Analyzer snapshots folders. WorkDir anchors the primary counterpart convention and is
// never read from the process during analysis.
type Analyzer struct {
	Layout  config.Layout
	WorkDir string
	FS      fsops.FS
	Log     *logger.Logger
	Now     func() time.Time
}

// New returns an Analyzer backed by the real filesystem.
func New(layout config.Layout, workDir string, log *logger.Logger) *Analyzer {
	return &Analyzer{
		Layout:  layout,
		WorkDir: workDir,
		FS:      fsops.NewRealFS(),
		Log:     log.WithFields(map[string]any{"component": "analysis"}),
		Now:     time.Now,
	}
}

// Analyze returns the facts about path. A missing folder is a valid, all-false analysis;
// any other stat failure is returned as a FolderAnalysisError.
func (a *Analyzer) Analyze(path string) (model.FolderAnalysis, error) {
	abs, err := a.absolute(path)
	if err != nil {
		return model.FolderAnalysis{}, gterrors.NewFolderAnalysisError(path, "", err)
	}

	result := model.FolderAnalysis{Path: abs, AnalyzedAt: a.now()}

	exists, err := a.isDir(abs)
	if err != nil {
		return model.FolderAnalysis{}, gterrors.NewFolderAnalysisError(abs, "", err)
	}
	if !exists {
		a.Log.Debug(fmt.Sprintf("folder %s does not exist", abs))
		return result, nil
	}
	result.Exists = true

	// .git may be a directory or a gitlink file in worktrees and submodules.
	if result.IsVersionControlled, err = a.exists(filepath.Join(abs, vcsDir)); err != nil {
		return model.FolderAnalysis{}, gterrors.NewFolderAnalysisError(abs, "", err)
	}
	if result.HasTemplateConfiguration, err = a.isDir(filepath.Join(abs, a.Layout.ConfigDir)); err != nil {
		return model.FolderAnalysis{}, gterrors.NewFolderAnalysisError(abs, "", err)
	}

	counterpart, err := a.resolveCounterpart(abs)
	if err != nil {
		return model.FolderAnalysis{}, gterrors.NewFolderAnalysisError(abs, "", err)
	}
	if counterpart != "" {
		result.GeneratedCounterpartPath = counterpart
		result.GeneratedCounterpartExists = true
		if result.GeneratedCounterpartHasConfiguration, err = a.isDir(filepath.Join(counterpart, a.Layout.ConfigDir)); err != nil {
			return model.FolderAnalysis{}, gterrors.NewFolderAnalysisError(counterpart, "", err)
		}
	}

	a.Log.WithFields(map[string]any{
		"path":        abs,
		"vcs":         result.IsVersionControlled,
		"config":      result.HasTemplateConfiguration,
		"counterpart": counterpart,
	}).Debug("folder analyzed")

	return result, nil
}

// CounterpartCandidates lists the generated-folder locations for path in resolution order.
func (a *Analyzer) CounterpartCandidates(path string) []string {
	abs, err := a.absolute(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	candidates := []string{a.ProposedCounterpartPath(abs)}
	parent, name := filepath.Dir(abs), filepath.Base(abs)
	for _, suffix := range a.Layout.LegacySuffixes {
		candidates = append(candidates, filepath.Join(parent, name+suffix))
	}
	return candidates
}

// ProposedCounterpartPath is the primary-convention location of the generated folder:
// <workdir>/<generated root>/<path relative to workdir>. Paths outside the working
// directory are used with their leading separator stripped.
func (a *Analyzer) ProposedCounterpartPath(path string) string {
	abs, err := a.absolute(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	workDir := filepath.Clean(a.WorkDir)

	rel, err := filepath.Rel(workDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = strings.TrimLeft(filepath.ToSlash(abs), "/")
		rel = strings.TrimPrefix(rel, filepath.VolumeName(abs))
		rel = filepath.FromSlash(strings.TrimLeft(rel, "/"))
	}
	return filepath.Join(workDir, a.Layout.GeneratedRoot, rel)
}

func (a *Analyzer) resolveCounterpart(abs string) (string, error) {
	for _, candidate := range a.CounterpartCandidates(abs) {
		if candidate == abs {
			continue
		}
		ok, err := a.isDir(candidate)
		if err != nil {
			return "", err
		}
		if ok {
			return candidate, nil
		}
	}
	return "", nil
}

// Classify maps an analysis onto exactly one development status.
func Classify(a model.FolderAnalysis) model.DevelopmentStatus {
	switch {
	case !a.Exists:
		return model.StatusFolderNotFound
	case !a.IsVersionControlled && !a.HasTemplateConfiguration:
		return model.StatusNotTemplateProject
	case !a.HasTemplateConfiguration:
		return model.StatusApplicationFolderReadyForTemplating
	case !a.GeneratedCounterpartExists:
		return model.StatusTemplateFolderWithoutGeneratedVersion
	case !a.GeneratedCounterpartHasConfiguration:
		return model.StatusGeneratedFolderMissingConfiguration
	default:
		return model.StatusReadyForTemplateIteration
	}
}

// AnalyzeDevelopmentStatus analyzes path, classifies it and loads both template configurations.
func (a *Analyzer) AnalyzeDevelopmentStatus(path string) (*model.DevelopmentReport, error) {
	analysis, err := a.Analyze(path)
	if err != nil {
		return nil, err
	}

	status := Classify(analysis)
	report := &model.DevelopmentReport{
		Analysis:                analysis,
		Status:                  status,
		Description:             status.Description(),
		Recommendations:         a.recommendations(status, analysis),
		ProposedCounterpartPath: a.ProposedCounterpartPath(analysis.Path),
	}

	if analysis.HasTemplateConfiguration {
		report.TemplateConfiguration = templateconfig.Load(filepath.Join(analysis.Path, a.Layout.ConfigDir), a.Layout)
	}
	if analysis.GeneratedCounterpartHasConfiguration {
		report.CounterpartConfiguration = templateconfig.Load(
			filepath.Join(analysis.GeneratedCounterpartPath, a.Layout.ConfigDir), a.Layout)
	}

	return report, nil
}

func (a *Analyzer) recommendations(status model.DevelopmentStatus, analysis model.FolderAnalysis) []string {
	configDir := a.Layout.ConfigDir
	switch status {
	case model.StatusFolderNotFound:
		return []string{
			fmt.Sprintf("Create the folder first: mkdir -p %s", analysis.Path),
			"Verify the path is spelled correctly",
		}
	case model.StatusNotTemplateProject:
		return []string{
			"Initialize a git repository: git init",
			fmt.Sprintf("Add template configuration: mkdir -p %s && touch %s/%s", configDir, configDir, a.Layout.EntryScript),
		}
	case model.StatusApplicationFolderReadyForTemplating:
		return []string{
			fmt.Sprintf("Create template configuration: mkdir -p %s && touch %s/%s", configDir, configDir, a.Layout.EntryScript),
			fmt.Sprintf("Add lifecycle phases under %s/%s", configDir, a.Layout.ModulesDir),
		}
	case model.StatusTemplateFolderWithoutGeneratedVersion:
		return []string{
			fmt.Sprintf("Create the generated folder: %s", a.ProposedCounterpartPath(analysis.Path)),
			"Then run: git-template iterate " + analysis.Path,
		}
	case model.StatusGeneratedFolderMissingConfiguration:
		return []string{
			fmt.Sprintf("Copy %s into %s", configDir, analysis.GeneratedCounterpartPath),
			"Then run: git-template iterate " + analysis.Path,
		}
	case model.StatusReadyForTemplateIteration:
		return []string{
			"Run: git-template iterate " + analysis.Path,
			fmt.Sprintf("Review the cleanup phase in %s/%s/%s", analysis.GeneratedCounterpartPath, configDir, a.Layout.CleanupScript),
		}
	default:
		return []string{"Review folder structure and template configuration"}
	}
}

func (a *Analyzer) absolute(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if a.WorkDir == "" {
		return filepath.Abs(path)
	}
	return filepath.Join(a.WorkDir, path), nil
}

func (a *Analyzer) isDir(path string) (bool, error) {
	info, err := a.fs().Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, notDirErr) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (a *Analyzer) exists(path string) (bool, error) {
	_, err := a.fs().Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, notDirErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a *Analyzer) fs() fsops.FS {
	if a.FS == nil {
		return fsops.NewRealFS()
	}
	return a.FS
}

func (a *Analyzer) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
