// Package vfstree holds the in-memory mirror of an on-disk subtree:
// directory and file nodes with parent back-references, and the Tree
// that orchestrates OS mutations against the mirror. Nodes are owned by
// their parent directory; the parent pointer is a plain back-reference,
// never an owner.
package vfstree

import (
	"golang.org/x/text/unicode/norm"

	"github.com/Theo-Muyard/Seed-core/pathutil"
)

// sameName compares two entry names after NFC normalization, so a name
// composed with combining marks matches its precomposed form the way
// the underlying filesystem usually treats them.
func sameName(a, b string) bool {
	if a == b {
		return true
	}
	return norm.NFC.String(a) == norm.NFC.String(b)
}

// File is a leaf node: an owned filename and a back-reference to the
// directory that owns it.
type File struct {
	name   string
	parent *Dir
}

// NewFile creates a file node named name and appends it to parent's
// children.
func NewFile(parent *Dir, name string) *File {
	f := &File{name: name, parent: parent}
	if parent != nil {
		parent.files = append(parent.files, f)
	}
	return f
}

// Name returns the file's leaf name.
func (f *File) Name() string { return f.name }

// Parent returns the directory owning this file.
func (f *File) Parent() *Dir { return f.parent }

// Rename replaces the file's leaf name in place.
func (f *File) Rename(name string) { f.name = name }

// RelativePath composes "/root/.../name" by walking the parent chain.
func (f *File) RelativePath() string {
	return pathutil.RelativePath(f.name, wrapDir(f.parent))
}

// Dir is a directory node: an owned name, a back-reference to its
// parent (nil at the root), and owned ordered child files and subdirs.
type Dir struct {
	name    string
	parent  *Dir
	files   []*File
	subdirs []*Dir
}

// NewDir creates a directory node named name. A non-nil parent adopts
// it as a child.
func NewDir(parent *Dir, name string) *Dir {
	d := &Dir{name: name, parent: parent}
	if parent != nil {
		parent.subdirs = append(parent.subdirs, d)
	}
	return d
}

// Name returns the directory's leaf name.
func (d *Dir) Name() string { return d.name }

// Parent returns the owning directory, nil at the root.
func (d *Dir) Parent() *Dir { return d.parent }

// Files returns the ordered child files. The slice is a borrow.
func (d *Dir) Files() []*File { return d.files }

// Subdirs returns the ordered child directories. The slice is a borrow.
func (d *Dir) Subdirs() []*Dir { return d.subdirs }

// Rename replaces the directory's leaf name in place.
func (d *Dir) Rename(name string) { d.name = name }

// RelativePath composes "/root/.../name" by walking the parent chain.
func (d *Dir) RelativePath() string {
	return pathutil.RelativePath(d.name, wrapDir(d.parent))
}

// FindFile returns the child file with the given name, or nil.
func (d *Dir) FindFile(name string) *File {
	for _, f := range d.files {
		if sameName(f.name, name) {
			return f
		}
	}
	return nil
}

// FindDir returns the child directory with the given name, or nil.
func (d *Dir) FindDir(name string) *Dir {
	for _, sub := range d.subdirs {
		if sameName(sub.name, name) {
			return sub
		}
	}
	return nil
}

// ContainsFile reports whether f is physically present in d's child
// list, by identity rather than by name.
func (d *Dir) ContainsFile(f *File) bool {
	for _, have := range d.files {
		if have == f {
			return true
		}
	}
	return false
}

// ContainsDir reports whether sub is physically present in d's child
// list, by identity rather than by name.
func (d *Dir) ContainsDir(sub *Dir) bool {
	for _, have := range d.subdirs {
		if have == sub {
			return true
		}
	}
	return false
}

// RemoveFile detaches f from d, closing the hole with an
// order-preserving shift. Returns false when f is not a child of d.
func (d *Dir) RemoveFile(f *File) bool {
	for i, have := range d.files {
		if have == f {
			d.files = append(d.files[:i], d.files[i+1:]...)
			f.parent = nil
			return true
		}
	}
	return false
}

// RemoveDir detaches sub from d, closing the hole with an
// order-preserving shift. Returns false when sub is not a child of d.
func (d *Dir) RemoveDir(sub *Dir) bool {
	for i, have := range d.subdirs {
		if have == sub {
			d.subdirs = append(d.subdirs[:i], d.subdirs[i+1:]...)
			sub.parent = nil
			return true
		}
	}
	return false
}

// MoveFile splices f out of src and into dst, as a remove-then-add
// pair. Returns false when f is not a child of src.
func MoveFile(dst, src *Dir, f *File) bool {
	if dst == nil || src == nil || f == nil {
		return false
	}
	if !src.RemoveFile(f) {
		return false
	}
	f.parent = dst
	dst.files = append(dst.files, f)
	return true
}

// MoveDir splices sub out of src and into dst, as a remove-then-add
// pair. Returns false when sub is not a child of src.
func MoveDir(dst, src *Dir, sub *Dir) bool {
	if dst == nil || src == nil || sub == nil {
		return false
	}
	if !src.RemoveDir(sub) {
		return false
	}
	sub.parent = dst
	dst.subdirs = append(dst.subdirs, sub)
	return true
}

// dirNode adapts *Dir to pathutil.Dir. The adapter exists so a nil
// *Dir never leaks into the interface as a non-nil value.
type dirNode struct{ d *Dir }

func wrapDir(d *Dir) pathutil.Dir {
	if d == nil {
		return nil
	}
	return dirNode{d}
}

func (n dirNode) Name() string { return n.d.name }

func (n dirNode) ParentDir() pathutil.Dir { return wrapDir(n.d.parent) }

func (n dirNode) FindSubdir(name string) pathutil.Dir {
	return wrapDir(n.d.FindDir(name))
}

// ResolveDir walks relpath from root, honoring "." and "..", and
// returns the matched directory or nil on any miss.
func ResolveDir(root *Dir, relpath string) *Dir {
	got := pathutil.ResolveDir(wrapDir(root), relpath)
	if got == nil {
		return nil
	}
	return got.(dirNode).d
}

// ResolveFile resolves relpath's directory portion from root, then
// looks the leaf up among that directory's files. Returns nil on any
// miss.
func ResolveFile(root *Dir, relpath string) *File {
	got := pathutil.ResolveFile(wrapDir(root), relpath, func(dir pathutil.Dir, filename string) pathutil.File {
		f := dir.(dirNode).d.FindFile(filename)
		if f == nil {
			return nil
		}
		return f
	})
	if got == nil {
		return nil
	}
	return got.(*File)
}
