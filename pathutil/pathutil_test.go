package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "/root/a", Join("/root", "a"))
	assert.Equal(t, "/root/a", Join("/root/", "a"))
	assert.Equal(t, "a", Join("", "a"))
	assert.Equal(t, "/root/a/b", Join("/root", "a/b"))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Tokenize("a/b/c"))
	assert.Equal(t, []string{"a", "b"}, Tokenize("/a//b/"))
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("/"))
}

func TestSplitParentLeaf(t *testing.T) {
	dir, leaf := SplitParentLeaf("a/b/c.txt")
	assert.Equal(t, "a/b", dir)
	assert.Equal(t, "c.txt", leaf)

	dir, leaf = SplitParentLeaf("c.txt")
	assert.Equal(t, "", dir)
	assert.Equal(t, "c.txt", leaf)
}

// fakeDir is a minimal Dir for exercising the walkers without pulling
// in the real node types.
type fakeDir struct {
	name     string
	parent   *fakeDir
	children map[string]*fakeDir
}

func newFakeDir(parent *fakeDir, name string) *fakeDir {
	d := &fakeDir{name: name, parent: parent, children: map[string]*fakeDir{}}
	if parent != nil {
		parent.children[name] = d
	}
	return d
}

func (d *fakeDir) Name() string { return d.name }

func (d *fakeDir) ParentDir() Dir {
	if d.parent == nil {
		return nil
	}
	return d.parent
}

func (d *fakeDir) FindSubdir(name string) Dir {
	if sub, ok := d.children[name]; ok {
		return sub
	}
	return nil
}

func TestResolveDir(t *testing.T) {
	root := newFakeDir(nil, "root")
	a := newFakeDir(root, "a")
	b := newFakeDir(a, "b")

	assert.Equal(t, Dir(b), ResolveDir(root, "a/b"))
	assert.Equal(t, Dir(a), ResolveDir(root, "a/b/.."))
	assert.Equal(t, Dir(root), ResolveDir(root, "."))
	assert.Nil(t, ResolveDir(root, "missing"))
	assert.Nil(t, ResolveDir(root, ".."))
	assert.Nil(t, ResolveDir(root, "../a"))
}

func TestRelativePath(t *testing.T) {
	root := newFakeDir(nil, "root")
	a := newFakeDir(root, "a")

	assert.Equal(t, "/root/a/leaf", RelativePath("leaf", a))
	assert.Equal(t, "/root/leaf", RelativePath("leaf", root))
	assert.Equal(t, "/leaf", RelativePath("leaf", nil))
}
