package fsops

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRealFS_CopyTreePreservesStructure(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "modules", "setup"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "template.rb"), []byte("say 'hi'"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "modules", "setup", "run.sh"), []byte("#!/bin/sh"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, ".hidden"), []byte("dot"), 0o600))
	require.NoError(t, os.Symlink("template.rb", filepath.Join(src, "link.rb")))

	dst := filepath.Join(t.TempDir(), "dst")
	fs := NewRealFS()
	require.NoError(t, fs.CopyTree(src, dst))

	content, err := os.ReadFile(filepath.Join(dst, "template.rb"))
	require.NoError(t, err)
	require.Equal(t, "say 'hi'", string(content))

	info, err := os.Stat(filepath.Join(dst, "modules", "setup", "run.sh"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	_, err = os.Stat(filepath.Join(dst, ".hidden"))
	require.NoError(t, err)

	target, err := os.Readlink(filepath.Join(dst, "link.rb"))
	require.NoError(t, err)
	require.Equal(t, "template.rb", target)
}

func TestRealFS_CopyTreeMissingSource(t *testing.T) {
	t.Parallel()

	err := NewRealFS().CopyTree(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to stat source")
}

func TestLockIsExclusivePerTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lock, err := AcquireLock(dir, "/work/templated/app")
	require.NoError(t, err)

	_, err = AcquireLock(dir, "/work/templated/app")
	require.True(t, errors.Is(err, ErrLocked))

	other, err := AcquireLock(dir, "/work/templated/other")
	require.NoError(t, err)
	require.NoError(t, other.Release())

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())

	again, err := AcquireLock(dir, "/work/templated/app")
	require.NoError(t, err)
	require.NoError(t, again.Release())
}
