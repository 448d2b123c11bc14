package iteration

import (
	"fmt"
	"path/filepath"
)

// Clean removes every entry of generated except the template configuration directory.
// The configuration is moved to a sibling backup directory for the duration and is
// restored on every failure path. A missing generated folder is not an error.
func (s *Service) Clean(generated string) error {
	info, statErr := s.fs.Stat(generated)
	if statErr != nil || !info.IsDir() {
		return nil
	}

	log := s.log.WithFields(map[string]any{"folder": generated, "step": "clean"})
	configPath := filepath.Join(generated, s.layout.ConfigDir)

	var backupRoot, backup string
	if info, statErr := s.fs.Stat(configPath); statErr == nil && info.IsDir() {
		var err error
		backupRoot, err = s.fs.MkdirTemp(filepath.Dir(generated), ".git-template-backup-*")
		if err != nil {
			return fmt.Errorf("create configuration backup: %w", err)
		}
		backup = filepath.Join(backupRoot, s.layout.ConfigDir)
		if err := s.fs.Rename(configPath, backup); err != nil {
			_ = s.fs.RemoveAll(backupRoot)
			return fmt.Errorf("move configuration aside: %w", err)
		}
		log.Debug("configuration moved to " + backup)
	}

	restore := func() error {
		if backup == "" {
			return nil
		}
		if err := s.fs.Rename(backup, configPath); err != nil {
			return err
		}
		_ = s.fs.RemoveAll(backupRoot)
		return nil
	}

	entries, err := s.fs.ReadDir(generated)
	if err != nil {
		if rerr := restore(); rerr != nil {
			log.Error(rerr, "failed to restore configuration after read failure")
		}
		return fmt.Errorf("list generated folder: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(generated, entry.Name())
		if err := s.fs.RemoveAll(path); err != nil {
			if rerr := restore(); rerr != nil {
				log.Error(rerr, "failed to restore configuration after remove failure")
			}
			return fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
	}

	if err := restore(); err != nil {
		return fmt.Errorf("restore configuration from %s: %w", backup, err)
	}

	log.Debug(fmt.Sprintf("removed %d entries", len(entries)))
	return nil
}
