package iteration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/gittemplate/internal/analysis"
	"github.com/alexisbeaulieu97/gittemplate/internal/apply"
	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/fsops"
	"github.com/alexisbeaulieu97/gittemplate/internal/logger"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
	"github.com/alexisbeaulieu97/gittemplate/internal/report"
	"github.com/alexisbeaulieu97/gittemplate/internal/strategy"
	gterrors "github.com/alexisbeaulieu97/gittemplate/pkg/errors"
)

var fixedTime = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type workspace struct {
	work      string
	app       string
	generated string
}

// newWorkspace lays out an application folder A{x:"1", y:"2"} and a configured generated folder.
func newWorkspace(t *testing.T) workspace {
	t.Helper()
	work := t.TempDir()
	ws := workspace{
		work:      work,
		app:       filepath.Join(work, "app"),
		generated: filepath.Join(work, "templated", "app"),
	}
	require.NoError(t, os.MkdirAll(filepath.Join(ws.app, ".git"), 0o755))
	writeFile(t, filepath.Join(ws.app, ".git_template", "template.rb"), "# entry")
	writeFile(t, filepath.Join(ws.app, "x"), "1")
	writeFile(t, filepath.Join(ws.app, "y"), "2")
	writeFile(t, filepath.Join(ws.generated, ".git_template", "template.rb"), "# entry")
	return ws
}

func (ws workspace) report(t *testing.T) *model.DevelopmentReport {
	t.Helper()
	rep, err := analysis.New(config.DefaultLayout(), ws.work, logger.Nop()).AnalyzeDevelopmentStatus(ws.app)
	require.NoError(t, err)
	return rep
}

// produce returns an applier that writes files into the target.
func produce(files map[string]string) apply.Applier {
	return apply.Func(func(_ context.Context, _ string, target string) (apply.Output, error) {
		for rel, content := range files {
			path := filepath.Join(target, rel)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return apply.Output{}, err
			}
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return apply.Output{}, err
			}
		}
		return apply.Output{Success: true, Output: "applied"}, nil
	})
}

func newService(applier apply.Applier, opts ...Option) *Service {
	opts = append([]Option{
		WithClock(func() time.Time { return fixedTime }),
		WithRunID(func() string { return "run-1" }),
	}, opts...)
	return New(config.DefaultLayout(), applier, nil, logger.Nop(), opts...)
}

func TestCleanPreservesConfiguration(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	writeFile(t, filepath.Join(ws.generated, "stale.txt"), "old")
	writeFile(t, filepath.Join(ws.generated, ".hidden"), "old")
	writeFile(t, filepath.Join(ws.generated, ".git", "HEAD"), "ref")
	writeFile(t, filepath.Join(ws.generated, "nested", "deep.txt"), "old")

	require.NoError(t, newService(nil).Clean(ws.generated))

	entries, err := os.ReadDir(ws.generated)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, ".git_template", entries[0].Name())
	require.Equal(t, "# entry", readFile(t, filepath.Join(ws.generated, ".git_template", "template.rb")))

	siblings, err := os.ReadDir(filepath.Dir(ws.generated))
	require.NoError(t, err)
	require.Len(t, siblings, 1, "backup directory is removed")
}

func TestCleanMissingFolderIsNoop(t *testing.T) {
	t.Parallel()

	require.NoError(t, newService(nil).Clean(filepath.Join(t.TempDir(), "absent")))
}

type failingFS struct {
	fsops.RealFS
	failRemove  string
	failReadDir bool
}

func (f *failingFS) RemoveAll(path string) error {
	if f.failRemove != "" && filepath.Base(path) == f.failRemove {
		return errors.New("device busy")
	}
	return f.RealFS.RemoveAll(path)
}

func (f *failingFS) ReadDir(path string) ([]os.DirEntry, error) {
	if f.failReadDir {
		return nil, errors.New("input/output error")
	}
	return f.RealFS.ReadDir(path)
}

func TestCleanRestoresConfigurationOnFailure(t *testing.T) {
	t.Parallel()

	cases := map[string]*failingFS{
		"remove fails":  {failRemove: "stale.txt"},
		"listing fails": {failReadDir: true},
	}

	for name, fs := range cases {
		name, fs := name, fs
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ws := newWorkspace(t)
			writeFile(t, filepath.Join(ws.generated, "stale.txt"), "old")
			writeFile(t, filepath.Join(ws.generated, ".git_template", "cleanup.rb"), "remove_file 'a'")

			err := newService(nil, WithFS(fs)).Clean(ws.generated)
			require.Error(t, err)

			require.Equal(t, "# entry", readFile(t, filepath.Join(ws.generated, ".git_template", "template.rb")))
			require.Equal(t, "remove_file 'a'", readFile(t, filepath.Join(ws.generated, ".git_template", "cleanup.rb")))
		})
	}
}

func TestConvergenceWithFilesApplier(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	writeFile(t, filepath.Join(ws.generated, ".git_template", "files", "x"), "1")
	ctx := context.Background()
	svc := newService(apply.NewFilesApplier(config.DefaultLayout(), logger.Nop()))

	first := svc.ExecuteRepoIteration(ctx, ws.report(t), Options{})
	require.True(t, first.Success, first.ErrorMessage)
	require.Equal(t, 1, first.DifferencesCount)
	require.True(t, first.CleanupUpdated)

	for i := 0; i < 2; i++ {
		next := svc.ExecuteRepoIteration(ctx, ws.report(t), Options{})
		require.True(t, next.Success, next.ErrorMessage)
		require.Zero(t, next.DifferencesCount)
		require.False(t, next.CleanupUpdated)
	}

	require.Equal(t, "2", readFile(t, filepath.Join(ws.generated, "y")))
	cleanup := readFile(t, filepath.Join(ws.generated, ".git_template", "cleanup.rb"))
	require.Equal(t, 1, strings.Count(cleanup, "# Added by template iteration"))
}

func TestConvergenceScenario(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	ctx := context.Background()

	first := newService(produce(map[string]string{"x": "1", "y": "3"})).
		ExecuteRepoIteration(ctx, ws.report(t), Options{DetailedComparison: true})

	require.True(t, first.Success, first.ErrorMessage)
	require.Equal(t, "run-1", first.RunID)
	require.True(t, first.TemplateApplied)
	require.True(t, first.DifferencesFound)
	require.Equal(t, 1, first.DifferencesCount)
	require.True(t, first.CleanupUpdated)
	require.True(t, first.NeedsRefinement())
	require.NotNil(t, first.Comparison)
	require.Equal(t, []string{"y"}, first.Comparison.ModifiedFiles)

	cleanup := readFile(t, filepath.Join(ws.generated, ".git_template", "cleanup.rb"))
	require.Contains(t, cleanup, "# Added by template iteration\n")
	require.Contains(t, cleanup, "# Cleanup phase - generated by template iteration")
	require.Contains(t, cleanup, "# Differences found: 1")
	require.Contains(t, cleanup, "# Modify file: y")
	require.Contains(t, cleanup, "copy_file '"+filepath.Join(ws.app, "y")+"', 'y', force: true")

	second := newService(produce(map[string]string{"x": "1", "y": "2"})).
		ExecuteRepoIteration(ctx, ws.report(t), Options{})

	require.True(t, second.Success, second.ErrorMessage)
	require.False(t, second.DifferencesFound)
	require.Zero(t, second.DifferencesCount)
	require.False(t, second.CleanupUpdated)
	require.True(t, second.Complete())
	require.Nil(t, second.Comparison)
	require.Equal(t, cleanup, readFile(t, filepath.Join(ws.generated, ".git_template", "cleanup.rb")))
}

func TestPreconditionFailuresBecomeFailedResults(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	require.NoError(t, os.Remove(filepath.Join(ws.generated, ".git_template", "template.rb")))

	called := false
	applier := apply.Func(func(context.Context, string, string) (apply.Output, error) {
		called = true
		return apply.Output{Success: true}, nil
	})

	result := newService(applier).ExecuteRepoIteration(context.Background(), ws.report(t), Options{})
	require.False(t, result.Success)
	require.False(t, called)
	require.Equal(t, string(gterrors.KindTemplateValidation), result.ErrorKind)
	require.Contains(t, result.ErrorMessage, "Missing required template.rb file")

	missing := newService(applier).ExecuteRepoIteration(context.Background(),
		&model.DevelopmentReport{Analysis: model.FolderAnalysis{Path: "/does/not/exist"}}, Options{})
	require.False(t, missing.Success)
	require.Equal(t, string(gterrors.KindFolderAnalysis), missing.ErrorKind)

	none := newService(applier).ExecuteRepoIteration(context.Background(), nil, Options{})
	require.False(t, none.Success)
}

func TestApplyFailureLeavesPartialOutput(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	writeFile(t, filepath.Join(ws.generated, "stale.txt"), "old")

	applier := apply.Func(func(_ context.Context, _ string, target string) (apply.Output, error) {
		if err := os.WriteFile(filepath.Join(target, "half.txt"), []byte("partial"), 0o644); err != nil {
			return apply.Output{}, err
		}
		return apply.Output{Success: false, Output: "generator crashed"}, errors.New("exit status 1")
	})

	result := newService(applier).ExecuteRepoIteration(context.Background(), ws.report(t), Options{})
	require.False(t, result.Success)
	require.False(t, result.TemplateApplied)
	require.Equal(t, "generator crashed", result.ApplyOutput)
	require.Equal(t, string(gterrors.KindTemplateProcessing), result.ErrorKind)
	require.Contains(t, result.ErrorMessage, "apply_template")

	require.Equal(t, "partial", readFile(t, filepath.Join(ws.generated, "half.txt")))
	_, err := os.Stat(filepath.Join(ws.generated, "stale.txt"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(ws.generated, ".git_template", "cleanup.rb"))
	require.True(t, os.IsNotExist(err), "cleanup phase untouched")
}

func TestApplierReportingFailureWithoutError(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	applier := apply.Func(func(context.Context, string, string) (apply.Output, error) {
		return apply.Output{Success: false}, nil
	})

	result := newService(applier).ExecuteRepoIteration(context.Background(), ws.report(t), Options{})
	require.False(t, result.Success)
	require.Contains(t, result.ErrorMessage, "template application reported failure")
}

func TestCleanupScriptFormat(t *testing.T) {
	t.Parallel()

	script := CleanupScript(&model.ComparisonResult{
		SourcePath:   "/app",
		DeletedFiles: []string{"tmp.log"},
	}, fixedTime)

	require.Equal(t, strings.Join([]string{
		"# Cleanup phase - generated by template iteration",
		"# Generated at: 2026-03-04T05:06:07Z",
		"# Differences found: 1",
		"",
		"# Remove file: tmp.log",
		"remove_file 'tmp.log'",
	}, "\n")+"\n", script)
}

func TestDispatchForceGate(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	app := filepath.Join(work, "plain")
	require.NoError(t, os.MkdirAll(filepath.Join(app, ".git"), 0o755))

	rep, err := analysis.New(config.DefaultLayout(), work, logger.Nop()).AnalyzeDevelopmentStatus(app)
	require.NoError(t, err)
	strat := strategy.Determine(rep.Status, strategy.Options{FolderPath: app})
	require.False(t, strat.CanProceed)

	svc := newService(nil)

	refused := svc.Dispatch(context.Background(), rep, strat, Options{})
	require.False(t, refused.Succeeded())
	errResult, ok := refused.(*report.ErrorResult)
	require.True(t, ok)
	require.Equal(t, "Application folder needs template configuration first", errResult.Message)

	forced := svc.Dispatch(context.Background(), rep, strat, Options{Force: true})
	require.False(t, forced.Succeeded())
	require.Contains(t, forced.(*report.ErrorResult).Message, "Cannot iterate:")
}

func TestDispatchCreatesGeneratedFolderThenSyncs(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	require.NoError(t, os.RemoveAll(filepath.Join(ws.work, "templated")))

	svc := newService(produce(map[string]string{"x": "1", "y": "2"}))
	ctx := context.Background()

	rep := ws.report(t)
	require.Equal(t, model.StatusTemplateFolderWithoutGeneratedVersion, rep.Status)
	created := svc.Dispatch(ctx, rep, strategy.Determine(rep.Status, strategy.Options{FolderPath: ws.app}), Options{})
	require.True(t, created.Succeeded())
	require.Equal(t, "# entry", readFile(t, filepath.Join(ws.generated, ".git_template", "template.rb")))

	rep = ws.report(t)
	require.Equal(t, model.StatusReadyForTemplateIteration, rep.Status)

	require.NoError(t, os.RemoveAll(filepath.Join(ws.generated, ".git_template")))
	rep = ws.report(t)
	require.Equal(t, model.StatusGeneratedFolderMissingConfiguration, rep.Status)
	synced := svc.Dispatch(ctx, rep, strategy.Determine(rep.Status, strategy.Options{FolderPath: ws.app}), Options{})
	require.True(t, synced.Succeeded())

	rep = ws.report(t)
	iterated := svc.Dispatch(ctx, rep, strategy.Determine(rep.Status, strategy.Options{FolderPath: ws.app}), Options{DetailedComparison: true})
	require.True(t, iterated.Succeeded())
	iterReport, ok := iterated.(*report.IterationReport)
	require.True(t, ok)
	assert.True(t, iterReport.Result.Complete())
}

func TestSyncConfigurationRefusesExistingConfiguration(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	_, err := newService(nil).SyncConfiguration(context.Background(), ws.report(t))
	require.Error(t, err)
	require.Equal(t, gterrors.KindTemplateValidation, gterrors.KindOf(err))
}

func TestDispatchDetailedComparisonAddsFileDiffs(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	svc := newService(produce(map[string]string{"x": "1", "y": "3"}))
	rep := ws.report(t)

	out := svc.Dispatch(context.Background(), rep, strategy.Determine(rep.Status, strategy.Options{FolderPath: ws.app}), Options{DetailedComparison: true})
	iterReport, ok := out.(*report.IterationReport)
	require.True(t, ok)
	require.Len(t, iterReport.Diffs, 1)
	require.Equal(t, "y", iterReport.Diffs[0].File)
	require.Contains(t, iterReport.Diffs[0].Diff, "+2")
}

type scratchFS struct {
	fsops.RealFS
	created []string
}

func (f *scratchFS) MkdirTemp(dir, pattern string) (string, error) {
	path, err := f.RealFS.MkdirTemp(dir, pattern)
	f.created = append(f.created, path)
	return path, err
}

func TestValidateCompleteness(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	configPath := filepath.Join(ws.generated, ".git_template")
	before := readFile(t, filepath.Join(configPath, "template.rb"))

	fs := &scratchFS{}
	partial, err := newService(produce(map[string]string{"x": "1"}), WithFS(fs)).
		ValidateCompleteness(context.Background(), configPath, ws.app)
	require.NoError(t, err)
	require.False(t, partial.Complete)
	require.Equal(t, 1, partial.DifferencesCount)
	require.NotNil(t, partial.Summary)
	require.Equal(t, 1, partial.Summary.AddedFiles)
	require.Equal(t, "y", partial.Differences[0].File)
	require.Equal(t, "applied", partial.ApplyOutput)

	require.Len(t, fs.created, 1)
	_, err = os.Stat(fs.created[0])
	require.True(t, os.IsNotExist(err), "scratch folder is removed")

	full, err := newService(produce(map[string]string{"x": "1", "y": "2"})).
		ValidateCompleteness(context.Background(), configPath, ws.app)
	require.NoError(t, err)
	require.True(t, full.Complete)
	require.Zero(t, full.DifferencesCount)

	entries, err := os.ReadDir(ws.generated)
	require.NoError(t, err)
	require.Len(t, entries, 1, "generated folder is untouched")
	require.Equal(t, before, readFile(t, filepath.Join(configPath, "template.rb")))
}

func TestValidateCompletenessApplyFailure(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	failing := apply.Func(func(context.Context, string, string) (apply.Output, error) {
		return apply.Output{Output: "boom"}, errors.New("exit status 1")
	})

	result, err := newService(failing).ValidateCompleteness(context.Background(),
		filepath.Join(ws.generated, ".git_template"), ws.app)
	require.NoError(t, err)
	require.False(t, result.Complete)
	require.Contains(t, result.Error, "Template application failed")
	require.Equal(t, "boom", result.ApplyOutput)
	require.Nil(t, result.Summary)
}

func TestValidateCompletenessMissingConfiguration(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t)
	_, err := newService(produce(nil)).ValidateCompleteness(context.Background(),
		filepath.Join(ws.work, "nowhere"), ws.app)
	require.Error(t, err)
	require.Equal(t, gterrors.KindInvalidPath, gterrors.KindOf(err))
}
