package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Abdulbasit24075/omnifs/internal/volume"
)

func newRoot() *Node {
	return &Node{Entry: volume.DirEntry{Type: volume.EntryDirectory, Inode: 1}}
}

func TestAddChildAndResolve(t *testing.T) {
	root := newRoot()
	tr := New(root)
	tr.SeedInode(1)

	home := &Node{Entry: volume.DirEntry{Name: "home", Type: volume.EntryDirectory, Inode: tr.NextInode(), StartBlock: 3}}
	AddChild(root, home)

	resolved := tr.Resolve("/home")
	require.Same(t, home, resolved)
	require.Same(t, root, tr.Resolve("/"))
	require.Same(t, root, tr.Resolve(""))
}

func TestResolveMissingSegmentReturnsNil(t *testing.T) {
	root := newRoot()
	tr := New(root)
	require.Nil(t, tr.Resolve("/nope"))
}

func TestFindChildAndRemoveChild(t *testing.T) {
	root := newRoot()
	child := &Node{Entry: volume.DirEntry{Name: "docs", Type: volume.EntryDirectory}}
	AddChild(root, child)

	require.Same(t, child, FindChild(root, "docs"))

	removed, ok := RemoveChild(root, "docs")
	require.True(t, ok)
	require.Same(t, child, removed)
	require.Nil(t, removed.Parent)
	require.Nil(t, FindChild(root, "docs"))
}

func TestRemoveChildMissingReturnsFalse(t *testing.T) {
	root := newRoot()
	_, ok := RemoveChild(root, "nope")
	require.False(t, ok)
}

func TestNextInodeIsMonotonic(t *testing.T) {
	tr := New(newRoot())
	first := tr.NextInode()
	second := tr.NextInode()
	require.Less(t, first, second)
}

func TestSeedInodeNeverGoesBackward(t *testing.T) {
	tr := New(newRoot())
	tr.SeedInode(100)
	require.Equal(t, uint32(101), tr.NextInode())
	tr.SeedInode(5)
	require.Equal(t, uint32(102), tr.NextInode())
}

func TestFullPath(t *testing.T) {
	root := newRoot()
	home := &Node{Entry: volume.DirEntry{Name: "home", Type: volume.EntryDirectory}}
	AddChild(root, home)
	alice := &Node{Entry: volume.DirEntry{Name: "alice", Type: volume.EntryDirectory}}
	AddChild(home, alice)

	require.Equal(t, "/", FullPath(root))
	require.Equal(t, "/home/alice", FullPath(alice))
}

func TestListDirectoryReturnsChildren(t *testing.T) {
	root := newRoot()
	a := &Node{Entry: volume.DirEntry{Name: "a"}}
	b := &Node{Entry: volume.DirEntry{Name: "b"}}
	AddChild(root, a)
	AddChild(root, b)
	require.ElementsMatch(t, []*Node{a, b}, ListDirectory(root))
}
