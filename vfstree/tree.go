package vfstree

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/Theo-Muyard/Seed-core/corelog"
	"github.com/Theo-Muyard/Seed-core/errcode"
	"github.com/Theo-Muyard/Seed-core/osfs"
	"github.com/Theo-Muyard/Seed-core/pathutil"
)

const (
	defaultDirPerm  = os.FileMode(0o755)
	defaultFilePerm = os.FileMode(0o644)
)

// Options tunes a Tree's interaction with the OS.
type Options struct {
	// DirPerm is the mode for created directories. Zero means 0755.
	DirPerm os.FileMode
	// FilePerm is the mode for created files. Zero means 0644.
	FilePerm os.FileMode
}

// Tree owns the mounted root directory node and the absolute on-disk
// path it mirrors. Every mutation goes to the OS first; the in-memory
// mirror is reconciled afterwards, with a rollback of the OS step for
// creations when reconciliation cannot find a parent.
type Tree struct {
	root     *Dir
	rootPath string

	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewTree returns an unmounted tree. Mutations fail until OpenRoot
// succeeds.
func NewTree(opts Options) *Tree {
	t := &Tree{dirPerm: opts.DirPerm, filePerm: opts.FilePerm}
	if t.dirPerm == 0 {
		t.dirPerm = defaultDirPerm
	}
	if t.filePerm == 0 {
		t.filePerm = defaultFilePerm
	}
	return t
}

func (t *Tree) String() string {
	if t == nil || t.rootPath == "" {
		return "vfstree (unmounted)"
	}
	return "vfstree " + t.rootPath
}

// Mounted reports whether a root is currently mounted.
func (t *Tree) Mounted() bool { return t != nil && t.root != nil }

// Root returns the mounted root directory node, or nil.
func (t *Tree) Root() *Dir { return t.root }

// RootPath returns the absolute path of the mounted root, or "".
func (t *Tree) RootPath() string { return t.rootPath }

// dirError classifies a failed directory operation by the OS error
// underneath it.
func dirError(err error) error {
	switch {
	case errors.Is(err, fs.ErrExist):
		return errcode.DirExist
	case errors.Is(err, fs.ErrPermission):
		return errcode.DirAccess
	case errors.Is(err, fs.ErrNotExist):
		return errcode.DirNotFound
	default:
		return errcode.OperationFailed
	}
}

// fileError classifies a failed file operation by the OS error
// underneath it.
func fileError(err error) error {
	switch {
	case errors.Is(err, fs.ErrExist):
		return errcode.FileExist
	case errors.Is(err, fs.ErrPermission):
		return errcode.FileAccess
	case errors.Is(err, fs.ErrNotExist):
		return errcode.FileNotFound
	default:
		return errcode.OperationFailed
	}
}

// populate mirrors the on-disk tree under abs into dir, one child node
// per directory entry. Non-directory, non-regular entries are skipped.
func populate(dir *Dir, abs string) error {
	entries, err := os.ReadDir(abs)
	if err != nil {
		return dirError(err)
	}
	for _, entry := range entries {
		childAbs := pathutil.Join(abs, entry.Name())
		switch {
		case entry.IsDir():
			sub := NewDir(dir, entry.Name())
			if err := populate(sub, childAbs); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			NewFile(dir, entry.Name())
		}
	}
	return nil
}

// OpenRoot mounts absPath: stats it, requires a directory, mirrors the
// whole subtree into memory, and only then swaps out any previously
// mounted root. A failed mirror leaves the old mount untouched.
func (t *Tree) OpenRoot(absPath string) error {
	if absPath == "" {
		return errcode.InvalidPayload
	}
	absPath = strings.TrimSuffix(absPath, "/")
	info, err := os.Stat(absPath)
	if err != nil {
		return errcode.OperationFailed
	}
	if !info.IsDir() {
		return errcode.DirNotFound
	}
	slash := strings.LastIndex(absPath, "/")
	if slash < 0 {
		return errcode.InvalidPayload
	}
	newRoot := NewDir(nil, absPath[slash+1:])
	if err := populate(newRoot, absPath); err != nil {
		corelog.Errorf(t, "mirror of %q failed: %v", absPath, err)
		return err
	}
	if t.root != nil {
		corelog.Debugf(t, "replacing mounted root %q", t.rootPath)
	}
	t.root = newRoot
	t.rootPath = absPath
	return nil
}

// CloseRoot unmounts the current root. Fails when nothing is mounted.
func (t *Tree) CloseRoot() error {
	if t.root == nil {
		return errcode.FSContextNotInitialized
	}
	t.root = nil
	t.rootPath = ""
	return nil
}

func (t *Tree) requireRoot() error {
	if t == nil || t.root == nil {
		return errcode.FSContextNotInitialized
	}
	return nil
}

// parentDir resolves the directory that should contain rel's leaf.
func (t *Tree) parentDir(rel string) *Dir {
	dirPart, _ := pathutil.SplitParentLeaf(rel)
	if dirPart == "" {
		return t.root
	}
	return ResolveDir(t.root, dirPart)
}

// ResolveDir resolves a root-relative directory path in the mirror.
func (t *Tree) ResolveDir(rel string) *Dir {
	if t.root == nil {
		return nil
	}
	return ResolveDir(t.root, rel)
}

// ResolveFile resolves a root-relative file path in the mirror.
func (t *Tree) ResolveFile(rel string) *File {
	if t.root == nil {
		return nil
	}
	return ResolveFile(t.root, rel)
}

// CreateDir makes the directory on disk, then mirrors it. When the
// mirror has no parent for it, the on-disk directory is removed again
// so disk and mirror stay coherent.
func (t *Tree) CreateDir(rel string) error {
	if err := t.requireRoot(); err != nil {
		return err
	}
	if rel == "" {
		return errcode.InvalidPayload
	}
	abs := pathutil.Join(t.rootPath, rel)
	if err := osfs.DirCreate(abs, t.dirPerm); err != nil {
		corelog.Debugf(t, "mkdir %q: %v", rel, err)
		return dirError(err)
	}
	parent := t.parentDir(rel)
	if parent == nil {
		if err := osfs.DirDelete(abs); err != nil {
			return dirError(err)
		}
		return errcode.DirNotFound
	}
	_, leaf := pathutil.SplitParentLeaf(rel)
	NewDir(parent, leaf)
	return nil
}

// DeleteDir removes the directory on disk (the OS requires it empty),
// then drops it from the mirror. A mirror miss after a successful OS
// delete is not an error: the observable state already matches.
func (t *Tree) DeleteDir(rel string) error {
	if err := t.requireRoot(); err != nil {
		return err
	}
	if rel == "" {
		return errcode.InvalidPayload
	}
	abs := pathutil.Join(t.rootPath, rel)
	if err := osfs.DirDelete(abs); err != nil {
		corelog.Debugf(t, "rmdir %q: %v", rel, err)
		return dirError(err)
	}
	d := ResolveDir(t.root, rel)
	if d == nil {
		return nil
	}
	if d.Parent() == nil || !d.Parent().RemoveDir(d) {
		return errcode.OperationFailed
	}
	return nil
}

// MoveDir renames on disk, then renames the node and splices it from
// its old parent into the new one. A reconciliation failure after the
// OS rename succeeded is surfaced without rolling the rename back.
func (t *Tree) MoveDir(oldRel, newRel string) error {
	if err := t.requireRoot(); err != nil {
		return err
	}
	if oldRel == "" || newRel == "" {
		return errcode.InvalidPayload
	}
	oldAbs := pathutil.Join(t.rootPath, oldRel)
	newAbs := pathutil.Join(t.rootPath, newRel)
	if err := osfs.DirMove(oldAbs, newAbs); err != nil {
		corelog.Debugf(t, "rename %q -> %q: %v", oldRel, newRel, err)
		return dirError(err)
	}
	d := ResolveDir(t.root, oldRel)
	newParent := t.parentDir(newRel)
	if d == nil || newParent == nil {
		return errcode.DirNotFound
	}
	_, leaf := pathutil.SplitParentLeaf(newRel)
	d.Rename(leaf)
	if !MoveDir(newParent, d.Parent(), d) {
		return errcode.OperationFailed
	}
	return nil
}

// CreateFile creates an empty file on disk, refusing to overwrite,
// then mirrors it. When the mirror has no parent for it, the file is
// removed from disk again.
func (t *Tree) CreateFile(rel string) error {
	if err := t.requireRoot(); err != nil {
		return err
	}
	if rel == "" {
		return errcode.InvalidPayload
	}
	abs := pathutil.Join(t.rootPath, rel)
	handle, err := osfs.FileCreate(abs, t.filePerm)
	if err != nil {
		corelog.Debugf(t, "create %q: %v", rel, err)
		return fileError(err)
	}
	if err := osfs.FileSave(handle); err != nil {
		return errcode.OperationFailed
	}
	parent := t.parentDir(rel)
	if parent == nil {
		if err := osfs.FileDelete(abs); err != nil {
			return fileError(err)
		}
		return errcode.DirNotFound
	}
	_, leaf := pathutil.SplitParentLeaf(rel)
	NewFile(parent, leaf)
	return nil
}

// DeleteFile removes the file on disk, then drops it from the mirror.
func (t *Tree) DeleteFile(rel string) error {
	if err := t.requireRoot(); err != nil {
		return err
	}
	if rel == "" {
		return errcode.InvalidPayload
	}
	abs := pathutil.Join(t.rootPath, rel)
	if err := osfs.FileDelete(abs); err != nil {
		corelog.Debugf(t, "unlink %q: %v", rel, err)
		return fileError(err)
	}
	f := ResolveFile(t.root, rel)
	if f == nil {
		return nil
	}
	if f.Parent() == nil || !f.Parent().RemoveFile(f) {
		return errcode.OperationFailed
	}
	return nil
}

// MoveFile renames on disk, then renames the node and splices it from
// its old parent into the new one. Same rollback caveat as MoveDir.
func (t *Tree) MoveFile(oldRel, newRel string) error {
	if err := t.requireRoot(); err != nil {
		return err
	}
	if oldRel == "" || newRel == "" {
		return errcode.InvalidPayload
	}
	oldAbs := pathutil.Join(t.rootPath, oldRel)
	newAbs := pathutil.Join(t.rootPath, newRel)
	if err := osfs.FileMove(oldAbs, newAbs); err != nil {
		corelog.Debugf(t, "rename %q -> %q: %v", oldRel, newRel, err)
		return fileError(err)
	}
	f := ResolveFile(t.root, oldRel)
	if f == nil {
		return errcode.FileNotFound
	}
	newParent := t.parentDir(newRel)
	if newParent == nil {
		return errcode.DirNotFound
	}
	_, leaf := pathutil.SplitParentLeaf(newRel)
	f.Rename(leaf)
	if !MoveFile(newParent, f.Parent(), f) {
		return errcode.OperationFailed
	}
	return nil
}

// ReadFile returns the file's entire content.
func (t *Tree) ReadFile(rel string) (string, error) {
	if err := t.requireRoot(); err != nil {
		return "", err
	}
	if rel == "" {
		return "", errcode.InvalidPayload
	}
	abs := pathutil.Join(t.rootPath, rel)
	handle, err := osfs.FileOpen(abs, os.O_RDONLY, 0)
	if err != nil {
		return "", fileError(err)
	}
	data, err := osfs.FileGetData(handle)
	if err != nil {
		_ = osfs.FileSave(handle)
		return "", errcode.OperationFailed
	}
	if err := osfs.FileSave(handle); err != nil {
		return "", errcode.OperationFailed
	}
	return data, nil
}

// WriteFile truncates the file and writes data.
func (t *Tree) WriteFile(rel, data string) error {
	if err := t.requireRoot(); err != nil {
		return err
	}
	if rel == "" {
		return errcode.InvalidPayload
	}
	abs := pathutil.Join(t.rootPath, rel)
	handle, err := osfs.FileOpen(abs, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, t.filePerm)
	if err != nil {
		return fileError(err)
	}
	if err := osfs.FileWrite(handle, data); err != nil {
		_ = osfs.FileSave(handle)
		return errcode.OperationFailed
	}
	if err := osfs.FileSave(handle); err != nil {
		return errcode.OperationFailed
	}
	return nil
}
