package analysis

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/fsops"
	"github.com/alexisbeaulieu97/gittemplate/internal/logger"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
	gterrors "github.com/alexisbeaulieu97/gittemplate/pkg/errors"
)

func newTestAnalyzer(workDir string) *Analyzer {
	a := New(config.DefaultLayout(), workDir, logger.Nop())
	a.Now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return a
}

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	p := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(p, 0o755))
	return p
}

func TestAnalyzeMissingFolder(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t.TempDir())
	result, err := a.Analyze("/does/not/exist")
	require.NoError(t, err)
	require.Equal(t, "/does/not/exist", result.Path)
	require.False(t, result.Exists)
	require.False(t, result.IsVersionControlled)
	require.False(t, result.HasTemplateConfiguration)
	require.Empty(t, result.GeneratedCounterpartPath)
	require.False(t, result.GeneratedCounterpartExists)
	require.False(t, result.GeneratedCounterpartHasConfiguration)
	require.Equal(t, model.StatusFolderNotFound, Classify(result))

	report, err := a.AnalyzeDevelopmentStatus("/does/not/exist")
	require.NoError(t, err)
	require.Equal(t, model.StatusFolderNotFound, report.Status)
	require.Equal(t, "The specified folder does not exist", report.Description)
	require.Nil(t, report.TemplateConfiguration)
}

func TestAnalyzeDetectsVersionControlAndConfiguration(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	app := mkdir(t, work, "apps", "shop")
	mkdir(t, app, ".git_template")
	require.NoError(t, os.WriteFile(filepath.Join(app, ".git"), []byte("gitdir: ../.git/worktrees/shop"), 0o644))

	result, err := newTestAnalyzer(work).Analyze(filepath.Join("apps", "shop"))
	require.NoError(t, err)
	require.Equal(t, app, result.Path)
	require.True(t, result.Exists)
	require.True(t, result.IsVersionControlled)
	require.True(t, result.HasTemplateConfiguration)
	require.False(t, result.HasCounterpart())
	require.Equal(t, model.StatusTemplateFolderWithoutGeneratedVersion, Classify(result))
}

func TestCounterpartResolutionOrder(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	app := mkdir(t, work, "foo")
	mkdir(t, app, ".git_template")
	primary := mkdir(t, work, "templated", "foo")
	legacy := mkdir(t, work, "foo-templated")
	mkdir(t, work, "foo-templatd")

	a := newTestAnalyzer(work)
	result, err := a.Analyze(app)
	require.NoError(t, err)
	require.Equal(t, primary, result.GeneratedCounterpartPath)

	require.NoError(t, os.RemoveAll(primary))
	result, err = a.Analyze(app)
	require.NoError(t, err)
	require.Equal(t, legacy, result.GeneratedCounterpartPath)

	require.NoError(t, os.RemoveAll(legacy))
	result, err = a.Analyze(app)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(work, "foo-templatd"), result.GeneratedCounterpartPath)

	require.Equal(t, []string{
		filepath.Join(work, "templated", "foo"),
		filepath.Join(work, "foo-templated"),
		filepath.Join(work, "foo-templatd"),
	}, a.CounterpartCandidates(app))
}

func TestCounterpartIgnoresRegularFiles(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	app := mkdir(t, work, "foo")
	mkdir(t, app, ".git")
	require.NoError(t, os.WriteFile(filepath.Join(work, "foo-templated"), nil, 0o644))

	result, err := newTestAnalyzer(work).Analyze(app)
	require.NoError(t, err)
	require.False(t, result.GeneratedCounterpartExists)
	require.Equal(t, model.StatusApplicationFolderReadyForTemplating, Classify(result))
}

func TestProposedCounterpartPathOutsideWorkDir(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer("/work")
	require.Equal(t, filepath.Join("/work", "templated", "apps", "shop"), a.ProposedCounterpartPath("/work/apps/shop"))
	require.Equal(t, filepath.Join("/work", "templated", "srv", "shop"), a.ProposedCounterpartPath("/srv/shop"))
}

type deniedFS struct {
	fsops.RealFS
	denied string
}

func (d *deniedFS) Stat(path string) (os.FileInfo, error) {
	if path == d.denied {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrPermission}
	}
	return d.RealFS.Stat(path)
}

func TestAnalyzeReportsNonMissingStatFailures(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	app := mkdir(t, work, "locked")

	a := newTestAnalyzer(work)
	a.FS = &deniedFS{denied: app}

	_, err := a.Analyze(app)
	require.Error(t, err)

	var analysisErr *gterrors.FolderAnalysisError
	require.True(t, errors.As(err, &analysisErr))
	require.Equal(t, app, analysisErr.Path)
	require.True(t, errors.Is(err, fs.ErrPermission))
	require.Equal(t, gterrors.KindFolderAnalysis, gterrors.KindOf(err))
}

func TestClassifyIsTotalOverReachableCombinations(t *testing.T) {
	t.Parallel()

	seen := map[model.DevelopmentStatus]bool{}
	for mask := 0; mask < 32; mask++ {
		a := model.FolderAnalysis{
			Exists:                               mask&1 != 0,
			IsVersionControlled:                  mask&2 != 0,
			HasTemplateConfiguration:             mask&4 != 0,
			GeneratedCounterpartExists:           mask&8 != 0,
			GeneratedCounterpartHasConfiguration: mask&16 != 0,
		}
		if !a.Exists && mask != 0 {
			continue
		}
		if a.GeneratedCounterpartHasConfiguration && !a.GeneratedCounterpartExists {
			continue
		}

		status := Classify(a)
		require.Contains(t, model.AllDevelopmentStatuses, status)
		require.Equal(t, a.ReadyForIteration(), status == model.StatusReadyForTemplateIteration)
		seen[status] = true
	}

	for _, status := range model.AllDevelopmentStatuses {
		require.True(t, seen[status], "status %s is unreachable", status)
	}
}

func TestAnalyzeDevelopmentStatusLoadsBothConfigurations(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	app := mkdir(t, work, "shop")
	mkdir(t, app, ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(app, ".git_template"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(app, ".git_template", "template.rb"), nil, 0o644))
	generated := mkdir(t, work, "templated", "shop", ".git_template")

	report, err := newTestAnalyzer(work).AnalyzeDevelopmentStatus(app)
	require.NoError(t, err)
	require.Equal(t, model.StatusReadyForTemplateIteration, report.Status)
	require.NotNil(t, report.TemplateConfiguration)
	require.True(t, report.TemplateConfiguration.Valid())
	require.NotNil(t, report.CounterpartConfiguration)
	require.Equal(t, generated, report.CounterpartConfiguration.Path)
	require.False(t, report.CounterpartConfiguration.Valid())
	require.Len(t, report.Recommendations, 2)
	require.Equal(t, filepath.Join(work, "templated", "shop"), report.ProposedCounterpartPath)
}

func TestRecommendationsPerStatus(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer("/work")
	for _, status := range model.AllDevelopmentStatuses {
		recs := a.recommendations(status, model.FolderAnalysis{Path: "/work/app"})
		require.NotEmpty(t, recs, "status %s", status)
	}
}
