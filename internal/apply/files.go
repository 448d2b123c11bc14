package apply

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/alexisbeaulieu97/gittemplate/internal/compare"
	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/fsops"
	"github.com/alexisbeaulieu97/gittemplate/internal/logger"
	"github.com/alexisbeaulieu97/gittemplate/internal/templateconfig"
)

const templateSuffix = ".tmpl"

// FileData is the value *.tmpl files are rendered against.
type FileData struct {
	ProjectName string
	Target      string
	ConfigPath  string
	Phase       string
}

// FilesApplier copies the bundle's files directory and then every lifecycle phase of the
// modules directory into the target, in lexical phase order, and finally replays the cleanup
// phase. Files ending in .tmpl are rendered with text/template and written without the suffix.
type FilesApplier struct {
	layout config.Layout
	fs     fsops.FS
	log    *logger.Logger
}

// NewFilesApplier constructs a FilesApplier on the real filesystem.
func NewFilesApplier(layout config.Layout, log *logger.Logger) *FilesApplier {
	return &FilesApplier{
		layout: layout,
		fs:     fsops.NewRealFS(),
		log:    log.WithFields(map[string]any{"component": "apply", "mode": config.ApplyModeFiles}),
	}
}

// Apply copies the bundle into targetPath.
func (f *FilesApplier) Apply(ctx context.Context, configPath, targetPath string) (Output, error) {
	cfg := templateconfig.Load(configPath, f.layout)
	if !cfg.Valid() {
		return Output{Success: false, Output: strings.Join(cfg.ValidationErrors, "\n")},
			fmt.Errorf("invalid template configuration: %s", strings.Join(cfg.ValidationErrors, ", "))
	}

	var written []string
	data := FileData{
		ProjectName: filepath.Base(targetPath),
		Target:      targetPath,
		ConfigPath:  cfg.Path,
	}

	if cfg.HasFilesDirectory {
		files, err := f.copyTree(ctx, filepath.Join(cfg.Path, f.layout.FilesDir), targetPath, data)
		written = append(written, files...)
		if err != nil {
			return Output{Success: false, Output: strings.Join(written, "\n")}, err
		}
	}

	for _, phase := range cfg.LifecyclePhases {
		data.Phase = phase
		files, err := f.copyTree(ctx, filepath.Join(cfg.Path, f.layout.ModulesDir, phase), targetPath, data)
		written = append(written, files...)
		if err != nil {
			return Output{Success: false, Output: strings.Join(written, "\n")}, fmt.Errorf("phase %s: %w", phase, err)
		}
	}

	if cfg.CleanupContent != nil {
		files, err := f.runCleanup(ctx, *cfg.CleanupContent, cfg.Path, targetPath)
		written = append(written, files...)
		if err != nil {
			return Output{Success: false, Output: strings.Join(written, "\n")}, fmt.Errorf("%s: %w", f.layout.CleanupScript, err)
		}
	}

	f.log.WithFields(map[string]any{"target": targetPath, "files": len(written)}).Debug("template files applied")

	return Output{Success: true, Output: strings.Join(written, "\n")}, nil
}

// runCleanup replays the copy_file and remove_file instructions of the cleanup phase against
// targetPath. Relative copy sources resolve against the bundle's files directory. Rules whose
// source no longer exists are skipped.
func (f *FilesApplier) runCleanup(ctx context.Context, script, configPath, targetPath string) ([]string, error) {
	var written []string

	for _, in := range compare.ParseDiffScript(script) {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		rel := filepath.FromSlash(in.Target)
		if !filepath.IsLocal(rel) {
			return written, fmt.Errorf("line %d: %s target %q leaves the generated folder", in.Line, in.Op, in.Target)
		}
		dst := filepath.Join(targetPath, rel)

		switch in.Op {
		case compare.OpRemoveFile:
			if err := f.fs.RemoveAll(dst); err != nil {
				return written, fmt.Errorf("line %d: %w", in.Line, err)
			}
			written = append(written, "remove "+in.Target)

		case compare.OpCopyFile:
			src := in.Source
			if !filepath.IsAbs(src) {
				src = filepath.Join(configPath, f.layout.FilesDir, filepath.FromSlash(src))
			}
			if _, err := f.fs.Stat(src); errors.Is(err, fs.ErrNotExist) {
				f.log.WithFields(map[string]any{"source": src, "line": in.Line}).Warn("cleanup source missing, rule skipped")
				continue
			}
			if _, err := f.fs.Stat(dst); err == nil {
				if !in.Force {
					written = append(written, "skip "+in.Target)
					continue
				}
				if err := f.fs.RemoveAll(dst); err != nil {
					return written, fmt.Errorf("line %d: %w", in.Line, err)
				}
			}
			if err := f.fs.CopyTree(src, dst); err != nil {
				return written, fmt.Errorf("line %d: %w", in.Line, err)
			}
			written = append(written, "copy "+in.Target)
		}
	}

	return written, nil
}

func (f *FilesApplier) copyTree(ctx context.Context, src, dst string, data FileData) ([]string, error) {
	var written []string

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		out := filepath.Join(dst, rel)
		if d.IsDir() {
			return f.fs.MkdirAll(out, 0o755)
		}

		if !strings.HasSuffix(path, templateSuffix) {
			if err := f.fs.CopyTree(path, out); err != nil {
				return err
			}
			written = append(written, "create "+filepath.ToSlash(rel))
			return nil
		}

		out = strings.TrimSuffix(out, templateSuffix)
		if err := renderFile(path, out, data); err != nil {
			return err
		}
		written = append(written, "render "+filepath.ToSlash(strings.TrimSuffix(rel, templateSuffix)))
		return nil
	})

	return written, err
}

func renderFile(src, dst string, data FileData) error {
	raw, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	tmpl, err := template.New(filepath.Base(src)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse template %q: %w", src, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render template %q: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, buf.Bytes(), info.Mode().Perm())
}
