//go:build unix

package osfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirCreateDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sub")
	require.NoError(t, DirCreate(dir, 0o755))
	assert.DirExists(t, dir)

	err := DirCreate(dir, 0o755)
	assert.True(t, errors.Is(err, fs.ErrExist))

	require.NoError(t, DirDelete(dir))
	assert.NoDirExists(t, dir)
	assert.True(t, errors.Is(DirDelete(dir), fs.ErrNotExist))
}

func TestDirDeleteRequiresEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), nil, 0o644))
	assert.Error(t, DirDelete(dir))
}

func TestFileCreateRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	h, err := FileCreate(path, 0o644)
	require.NoError(t, err)
	require.NoError(t, FileWrite(h, "original"))
	require.NoError(t, FileSave(h))

	_, err = FileCreate(path, 0o644)
	assert.True(t, errors.Is(err, fs.ErrExist))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestFileGetDataRewinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

	h, err := FileOpen(path, os.O_RDONLY, 0)
	require.NoError(t, err)
	defer func() { require.NoError(t, FileSave(h)) }()

	data, err := FileGetData(h)
	require.NoError(t, err)
	assert.Equal(t, "payload", data)

	// the handle was rewound, so a second read sees the same bytes
	data, err = FileGetData(h)
	require.NoError(t, err)
	assert.Equal(t, "payload", data)
}

func TestMoves(t *testing.T) {
	root := t.TempDir()
	oldDir := filepath.Join(root, "old")
	require.NoError(t, DirCreate(oldDir, 0o755))
	require.NoError(t, DirMove(oldDir, filepath.Join(root, "new")))
	assert.DirExists(t, filepath.Join(root, "new"))

	oldFile := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(oldFile, []byte("x"), 0o644))
	require.NoError(t, FileMove(oldFile, filepath.Join(root, "b.txt")))
	assert.FileExists(t, filepath.Join(root, "b.txt"))
	assert.NoFileExists(t, oldFile)

	err := FileMove(oldFile, filepath.Join(root, "c.txt"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
