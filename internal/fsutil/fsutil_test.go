package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, WriteFileAtomic(path, []byte("one"), 0o640))
	require.NoError(t, WriteFileAtomic(path, []byte("two"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "file.txt"), []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestCopyTreeDirectory(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "scripts", "run.sh"), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "config.ini"), []byte("a=1"), 0o644))
	require.NoError(t, os.Symlink("scripts/run.sh", filepath.Join(src, "run")))

	dst := filepath.Join(t.TempDir(), "target")
	require.NoError(t, os.MkdirAll(dst, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "existing.txt"), []byte("keep"), 0o644))

	require.NoError(t, CopyTree(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "config.ini"))
	require.NoError(t, err)
	assert.Equal(t, "a=1", string(data))

	info, err := os.Stat(filepath.Join(dst, "scripts", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	link, err := os.Readlink(filepath.Join(dst, "run"))
	require.NoError(t, err)
	assert.Equal(t, "scripts/run.sh", link)

	_, err = os.Stat(filepath.Join(dst, "existing.txt"))
	assert.NoError(t, err, "copy merges into an existing directory")
}

func TestCopyTreeFileIntoDir(t *testing.T) {
	src := filepath.Join(t.TempDir(), "uninstall.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o750))
	dst := filepath.Join(t.TempDir(), "uninstaller")

	require.NoError(t, CopyTree(src, dst))

	info, err := os.Stat(filepath.Join(dst, "uninstall.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())
}

func TestCopyTreeMissingSource(t *testing.T) {
	err := CopyTree(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestChmod(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "log")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o700))
	file := filepath.Join(dir, "nested", "app.log")
	require.NoError(t, os.WriteFile(file, []byte(""), 0o600))

	require.NoError(t, Chmod(dir, 0o755, false))
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "non-recursive leaves children")

	require.NoError(t, Chmod(dir, 0o775, true))
	info, err = os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o775), info.Mode().Perm())

	assert.Error(t, Chmod(filepath.Join(root, "missing"), 0o755, true))
}
