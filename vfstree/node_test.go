package vfstree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeParentContainment(t *testing.T) {
	root := NewDir(nil, "root")
	sub := NewDir(root, "sub")
	f := NewFile(sub, "a.txt")

	assert.Nil(t, root.Parent())
	assert.Same(t, root, sub.Parent())
	assert.Same(t, sub, f.Parent())
	assert.True(t, root.ContainsDir(sub))
	assert.True(t, sub.ContainsFile(f))

	// containment is by identity, not name
	stranger := &File{name: "a.txt"}
	assert.False(t, sub.ContainsFile(stranger))
}

func TestDirRemoveKeepsOrder(t *testing.T) {
	root := NewDir(nil, "root")
	a := NewDir(root, "a")
	b := NewDir(root, "b")
	c := NewDir(root, "c")

	require.True(t, root.RemoveDir(b))
	require.Equal(t, []*Dir{a, c}, root.Subdirs())
	assert.Nil(t, b.Parent())

	// removing a non-child fails
	assert.False(t, root.RemoveDir(b))
}

func TestMoveFileBetweenDirs(t *testing.T) {
	root := NewDir(nil, "root")
	src := NewDir(root, "src")
	dst := NewDir(root, "dst")
	f := NewFile(src, "f.txt")

	require.True(t, MoveFile(dst, src, f))
	assert.Same(t, dst, f.Parent())
	assert.False(t, src.ContainsFile(f))
	assert.True(t, dst.ContainsFile(f))

	// moving a file that is not in src fails
	assert.False(t, MoveFile(dst, src, f))
}

func TestMoveDirReparents(t *testing.T) {
	root := NewDir(nil, "root")
	src := NewDir(root, "src")
	dst := NewDir(root, "dst")
	sub := NewDir(src, "sub")

	require.True(t, MoveDir(dst, src, sub))
	assert.Same(t, dst, sub.Parent())
	assert.True(t, dst.ContainsDir(sub))
	assert.False(t, src.ContainsDir(sub))
}

func TestResolveDir(t *testing.T) {
	root := NewDir(nil, "root")
	a := NewDir(root, "a")
	b := NewDir(a, "b")

	assert.Same(t, b, ResolveDir(root, "a/b"))
	assert.Same(t, a, ResolveDir(root, "a/b/.."))
	assert.Same(t, a, ResolveDir(root, "./a/."))
	assert.Nil(t, ResolveDir(root, "a/missing"))

	// stepping above the root resolves to nothing rather than crashing
	assert.Nil(t, ResolveDir(root, ".."))
	assert.Nil(t, ResolveDir(root, "../a"))
}

func TestResolveFile(t *testing.T) {
	root := NewDir(nil, "root")
	a := NewDir(root, "a")
	f := NewFile(a, "f.txt")
	top := NewFile(root, "top.txt")

	assert.Same(t, f, ResolveFile(root, "a/f.txt"))
	assert.Same(t, top, ResolveFile(root, "top.txt"))
	assert.Nil(t, ResolveFile(root, "a/missing.txt"))
	assert.Nil(t, ResolveFile(root, "missing/f.txt"))
}

func TestFindNormalizesNames(t *testing.T) {
	root := NewDir(nil, "root")
	// stored decomposed ("e" + combining acute), looked up precomposed
	NewDir(root, "cafe\u0301")
	NewFile(root, "re\u0301sume\u0301.txt")

	assert.NotNil(t, root.FindDir("caf\u00e9"))
	assert.NotNil(t, root.FindFile("r\u00e9sum\u00e9.txt"))
	assert.Nil(t, root.FindDir("cafe"))
}

func TestRelativePath(t *testing.T) {
	root := NewDir(nil, "root")
	a := NewDir(root, "a")
	b := NewDir(a, "b")
	f := NewFile(b, "f.txt")

	assert.Equal(t, "/root/a/b", b.RelativePath())
	assert.Equal(t, "/root/a/b/f.txt", f.RelativePath())
	assert.Equal(t, "/root", root.RelativePath())
}

func TestRenameInPlace(t *testing.T) {
	root := NewDir(nil, "root")
	sub := NewDir(root, "old")
	f := NewFile(sub, "old.txt")

	sub.Rename("new")
	f.Rename("new.txt")
	assert.Same(t, sub, ResolveDir(root, "new"))
	assert.Same(t, f, ResolveFile(root, "new/new.txt"))
}
