// Package templateconfig loads template configuration directories and maintains their cleanup phase.
package templateconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/model"
)

// CleanupBanner separates each appended block from the existing cleanup phase.
const CleanupBanner = "\n\n# Added by template iteration\n"

// Load inspects the configuration directory at path. Problems are recorded as validation
// errors on the returned value rather than returned.
func Load(path string, layout config.Layout) *model.TemplateConfiguration {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	cfg := &model.TemplateConfiguration{
		Path:             abs,
		LifecyclePhases:  []string{},
		ValidationErrors: []string{},
	}

	if !isDir(abs) {
		cfg.ValidationErrors = append(cfg.ValidationErrors,
			fmt.Sprintf("Template configuration directory does not exist: %s", abs))
		return cfg
	}

	entry := filepath.Join(abs, layout.EntryScript)
	if info, err := os.Stat(entry); err != nil || info.IsDir() {
		cfg.ValidationErrors = append(cfg.ValidationErrors,
			fmt.Sprintf("Missing required %s file", layout.EntryScript))
	} else {
		cfg.HasEntryScript = true
		if f, err := os.Open(entry); err != nil {
			cfg.ValidationErrors = append(cfg.ValidationErrors,
				fmt.Sprintf("Template file is not readable: %v", err))
		} else {
			_ = f.Close()
		}
	}

	modules := filepath.Join(abs, layout.ModulesDir)
	cfg.HasModuleDirectory = isDir(modules)
	cfg.HasFilesDirectory = isDir(filepath.Join(abs, layout.FilesDir))

	if cfg.HasModuleDirectory {
		phases, err := lifecyclePhases(modules)
		if err != nil {
			cfg.ValidationErrors = append(cfg.ValidationErrors,
				fmt.Sprintf("Modules directory is not readable: %v", err))
		}
		cfg.LifecyclePhases = phases
	}

	content, err := os.ReadFile(filepath.Join(abs, layout.CleanupScript))
	switch {
	case err == nil:
		s := string(content)
		cfg.CleanupContent = &s
	case !errors.Is(err, fs.ErrNotExist):
		cfg.ValidationErrors = append(cfg.ValidationErrors,
			fmt.Sprintf("Cleanup file is not readable: %v", err))
	}

	return cfg
}

// AppendCleanup adds content to the cleanup phase at configPath, creating the file when absent.
// Existing content is never overwritten.
func AppendCleanup(configPath string, layout config.Layout, content string) error {
	path := filepath.Join(configPath, layout.CleanupScript)

	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read cleanup phase: %w", err)
	}

	perm := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	updated := string(existing) + CleanupBanner + content
	if err := os.WriteFile(path, []byte(updated), perm); err != nil {
		return fmt.Errorf("write cleanup phase: %w", err)
	}
	return nil
}

func lifecyclePhases(modules string) ([]string, error) {
	entries, err := os.ReadDir(modules)
	if err != nil {
		return []string{}, err
	}

	phases := []string{}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if isDir(filepath.Join(modules, entry.Name())) {
			phases = append(phases, entry.Name())
		}
	}
	sort.Strings(phases)
	return phases, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
