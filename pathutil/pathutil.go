// Package pathutil implements the path joining, tokenizing and
// tree-walking helpers shared by the filesystem mirror and the watcher.
// It is deliberately independent of vfstree: the resolve functions walk
// any node satisfying the small Dir interface, so vfstree supplies its
// nodes without either package importing the other's concrete types.
package pathutil

import "strings"

// Join concatenates base and rel, inserting exactly one "/" separator
// when base is non-empty and does not already end in one.
func Join(base, rel string) string {
	if base == "" {
		return rel
	}
	if strings.HasSuffix(base, "/") {
		return base + rel
	}
	return base + "/" + rel
}

// Tokenize splits a relative path on "/", dropping empty segments
// produced by leading/trailing/doubled slashes.
func Tokenize(relpath string) []string {
	parts := strings.Split(relpath, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SplitParentLeaf splits relpath at the last "/" into a directory
// portion and a leaf name. A path with no "/" resolves to an empty
// directory portion and the whole string as leaf.
func SplitParentLeaf(relpath string) (dirPart, leaf string) {
	idx := strings.LastIndex(relpath, "/")
	if idx < 0 {
		return "", relpath
	}
	return relpath[:idx], relpath[idx+1:]
}

// Dir is the minimal shape ResolveDir needs to walk a tree: a name, a
// parent link (nil at the root), and the ability to find a named
// subdirectory. vfstree.Dir implements this directly.
type Dir interface {
	Name() string
	ParentDir() Dir
	FindSubdir(name string) Dir
}

// ResolveDir walks root according to relpath's tokens: "." stays in
// place, ".." steps to the parent (a ".." from the root resolves to
// nil, the walk never panics), anything else looks up a same-named
// subdirectory. Returns nil on any miss.
func ResolveDir(root Dir, relpath string) Dir {
	cur := root
	for _, tok := range Tokenize(relpath) {
		if cur == nil {
			return nil
		}
		switch tok {
		case ".":
			continue
		case "..":
			cur = cur.ParentDir()
		default:
			cur = cur.FindSubdir(tok)
		}
	}
	return cur
}

// File is the minimal shape ResolveFile needs once the containing
// directory has been found.
type File interface {
	Name() string
}

// ResolveFile splits relpath at its last "/", resolves the directory
// portion with ResolveDir, then looks up filename among find's results.
// find is supplied by the caller (vfstree.Dir.FindFile) so this package
// never needs to know the concrete File/Dir representation.
func ResolveFile(root Dir, relpath string, find func(dir Dir, filename string) File) File {
	dirPart, leaf := SplitParentLeaf(relpath)
	dir := root
	if dirPart != "" {
		dir = ResolveDir(root, dirPart)
	}
	if dir == nil {
		return nil
	}
	return find(dir, leaf)
}

// RelativePath walks parent links from a leaf up to the root and
// composes "/segment/segment/...". The root itself contributes its own
// name as the first segment.
func RelativePath(name string, parent Dir) string {
	segments := []string{name}
	for d := parent; d != nil; d = d.ParentDir() {
		segments = append(segments, d.Name())
	}
	// segments was built leaf-to-root; reverse it.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return "/" + strings.Join(segments, "/")
}
