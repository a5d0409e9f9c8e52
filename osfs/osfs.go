//go:build unix

// Package osfs is the thin adapter over the primitive calls the engine
// uses to mutate on-disk state: create/delete/rename for directories
// and files, plus open/read/write/close for file content. Every
// function reports the raw OS error wrapped in an *os.PathError (or
// *os.LinkError for renames) so callers can classify it with errors.Is
// against io/fs.ErrExist, ErrNotExist and ErrPermission.
package osfs

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// DirCreate makes a single directory at abs with the given permission
// bits.
func DirCreate(abs string, perm os.FileMode) error {
	if err := unix.Mkdir(abs, uint32(perm.Perm())); err != nil {
		return &os.PathError{Op: "mkdir", Path: abs, Err: err}
	}
	return nil
}

// DirDelete removes an empty directory. The OS rejects non-empty ones.
func DirDelete(abs string) error {
	if err := unix.Rmdir(abs); err != nil {
		return &os.PathError{Op: "rmdir", Path: abs, Err: err}
	}
	return nil
}

// DirMove renames a directory with the atomic rename semantics of the
// underlying OS.
func DirMove(oldAbs, newAbs string) error {
	if err := unix.Rename(oldAbs, newAbs); err != nil {
		return &os.LinkError{Op: "rename", Old: oldAbs, New: newAbs, Err: err}
	}
	return nil
}

// FileCreate creates a new file at abs, refusing to overwrite an
// existing one. The returned handle is open for writing.
func FileCreate(abs string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}

// FileDelete removes a regular file.
func FileDelete(abs string) error {
	if err := unix.Unlink(abs); err != nil {
		return &os.PathError{Op: "unlink", Path: abs, Err: err}
	}
	return nil
}

// FileOpen opens abs with the given os.O_* flags.
func FileOpen(abs string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(abs, flag, perm)
}

// FileMove renames a file.
func FileMove(oldAbs, newAbs string) error {
	if err := unix.Rename(oldAbs, newAbs); err != nil {
		return &os.LinkError{Op: "rename", Old: oldAbs, New: newAbs, Err: err}
	}
	return nil
}

// FileWrite writes data to the handle, failing unless all bytes were
// written.
func FileWrite(f *os.File, data string) error {
	_, err := io.WriteString(f, data)
	return err
}

// FileSave flushes and closes the handle.
func FileSave(f *os.File) error {
	return f.Close()
}

// FileGetData reads from the handle's current position to the end,
// returns the content, and rewinds the handle.
func FileGetData(f *os.File) (string, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return string(data), nil
}
