// Package compare performs content-addressed comparison of two folder trees.
package compare

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/alexisbeaulieu97/gittemplate/internal/hash"
	"github.com/alexisbeaulieu97/gittemplate/internal/logger"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
	gterrors "github.com/alexisbeaulieu97/gittemplate/pkg/errors"
)

// DefaultIgnore is always excluded from comparisons.
var DefaultIgnore = []string{".git"}

// SymlinkPrefix marks the fingerprint of a dangling symlink, followed by its link text.
const SymlinkPrefix = "symlink:"

// Engine compares trees by relative path and content fingerprint.
type Engine struct {
	hasher   hash.Hasher
	patterns []string
	matcher  gitignore.Matcher
	log      *logger.Logger
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithIgnore adds gitignore-style patterns on top of DefaultIgnore.
func WithIgnore(patterns ...string) Option {
	return func(e *Engine) {
		e.patterns = append(e.patterns, patterns...)
	}
}

// WithHasher replaces the SHA-256 hasher.
func WithHasher(h hash.Hasher) Option {
	return func(e *Engine) {
		e.hasher = h
	}
}

// WithLogger sets the engine logger; entries are tagged with the compare component.
func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) {
		e.log = log.WithFields(map[string]any{"component": "compare"})
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine builds an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		hasher:   hash.NewSHA256Hasher(),
		patterns: append([]string(nil), DefaultIgnore...),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	compiled := make([]gitignore.Pattern, 0, len(e.patterns))
	for _, p := range e.patterns {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		compiled = append(compiled, gitignore.ParsePattern(p, nil))
	}
	e.matcher = gitignore.NewMatcher(compiled)
	return e
}

// With returns a copy of e with additional options applied.
func (e *Engine) With(opts ...Option) *Engine {
	base := []Option{
		WithHasher(e.hasher),
		func(n *Engine) { n.log = e.log },
		WithClock(e.now),
		WithIgnore(e.patterns[len(DefaultIgnore):]...),
	}
	return NewEngine(append(base, opts...)...)
}

// Compare fingerprints every file under source and target. Files only under source are
// "added", files only under target are "deleted", files under both with different
// fingerprints are "modified".
func (e *Engine) Compare(source, target string) (*model.ComparisonResult, error) {
	srcAbs, err := filepath.Abs(source)
	if err != nil {
		return nil, gterrors.NewFolderAnalysisError(source, "", err)
	}
	dstAbs, err := filepath.Abs(target)
	if err != nil {
		return nil, gterrors.NewFolderAnalysisError(target, "", err)
	}

	if !isDir(srcAbs) || !isDir(dstAbs) {
		return nil, gterrors.NewFolderAnalysisError(
			fmt.Sprintf("%s or %s", srcAbs, dstAbs), "One or both paths are not directories", nil)
	}

	sourceFiles, err := e.fingerprints(srcAbs)
	if err != nil {
		return nil, gterrors.NewFolderAnalysisError(srcAbs, "", err)
	}
	targetFiles, err := e.fingerprints(dstAbs)
	if err != nil {
		return nil, gterrors.NewFolderAnalysisError(dstAbs, "", err)
	}

	result := &model.ComparisonResult{
		SourcePath:    srcAbs,
		TargetPath:    dstAbs,
		AddedFiles:    []string{},
		ModifiedFiles: []string{},
		DeletedFiles:  []string{},
		Differences:   []model.Difference{},
		ComparedAt:    e.now(),
	}

	for rel, sum := range sourceFiles {
		other, ok := targetFiles[rel]
		switch {
		case !ok:
			result.AddedFiles = append(result.AddedFiles, rel)
		case other != sum:
			result.ModifiedFiles = append(result.ModifiedFiles, rel)
		}
	}
	for rel := range targetFiles {
		if _, ok := sourceFiles[rel]; !ok {
			result.DeletedFiles = append(result.DeletedFiles, rel)
		}
	}

	sort.Strings(result.AddedFiles)
	sort.Strings(result.ModifiedFiles)
	sort.Strings(result.DeletedFiles)

	for _, rel := range result.AddedFiles {
		result.Differences = append(result.Differences, model.Difference{
			Type:        model.DifferenceAdded,
			File:        rel,
			Description: "File added in source: " + rel,
		})
	}
	for _, rel := range result.DeletedFiles {
		result.Differences = append(result.Differences, model.Difference{
			Type:        model.DifferenceDeleted,
			File:        rel,
			Description: "File deleted from source: " + rel,
		})
	}
	for _, rel := range result.ModifiedFiles {
		result.Differences = append(result.Differences, model.Difference{
			Type:        model.DifferenceModified,
			File:        rel,
			Description: "File modified: " + rel,
			SourceHash:  sourceFiles[rel],
			TargetHash:  targetFiles[rel],
		})
	}

	e.log.WithFields(map[string]any{
		"source":   srcAbs,
		"target":   dstAbs,
		"added":    len(result.AddedFiles),
		"modified": len(result.ModifiedFiles),
		"deleted":  len(result.DeletedFiles),
	}).Debug("folders compared")

	return result, nil
}

// fingerprints maps slash-separated relative paths of every non-directory entry to its
// fingerprint. Dotfiles are included; ignored paths are skipped.
func (e *Engine) fingerprints(root string) (map[string]string, error) {
	files := map[string]string{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if path == root {
			return walkErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		parts := strings.Split(rel, "/")

		if walkErr != nil {
			// Unlistable directories get an unreadable fingerprint like unreadable files.
			files[rel] = hash.Unreadable(walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if e.matcher.Match(parts, true) {
				return fs.SkipDir
			}
			return nil
		}
		if e.matcher.Match(parts, false) {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err == nil && info.IsDir() {
				return nil
			}
			if err != nil {
				files[rel] = danglingFingerprint(path)
				return nil
			}
		}

		files[rel] = hash.Fingerprint(e.hasher, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// danglingFingerprint identifies a symlink whose target cannot be resolved by the link text.
func danglingFingerprint(path string) string {
	target, err := os.Readlink(path)
	if err != nil {
		return hash.Unreadable(err)
	}
	return SymlinkPrefix + filepath.ToSlash(target)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
