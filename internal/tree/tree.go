// Package tree maintains the in-memory n-ary directory hierarchy that
// mirrors the on-disk directory blocks: one Node per file or
// directory, with non-owning parent back-references for path
// resolution and deletion.
package tree

import (
	"strings"
	"sync/atomic"

	"github.com/Abdulbasit24075/omnifs/internal/volume"
)

// Node is one file-system entry: a file or a directory. Directories
// carry Children; files do not.
type Node struct {
	Entry    volume.DirEntry
	Block    uint32 // directory block holding this node's own child listing, 0 for files
	Slot     int    // slot index of this node's entry within its parent's Block
	Parent   *Node
	Children []*Node
}

// IsDir reports whether n is a directory.
func (n *Node) IsDir() bool {
	return n.Entry.Type == volume.EntryDirectory
}

// Tree is the whole in-memory hierarchy, rooted at a single node
// representing "/".
type Tree struct {
	root     *Node
	nextNode uint32
}

// New builds a tree whose root node is root.
func New(root *Node) *Tree {
	return &Tree{root: root}
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node {
	return t.root
}

// NextInode returns a fresh, monotonically increasing inode number.
// Call SeedInode first when loading an existing volume so newly
// created entries never collide with inodes already on disk.
func (t *Tree) NextInode() uint32 {
	return atomic.AddUint32(&t.nextNode, 1)
}

// SeedInode ensures NextInode never returns a value <= highest.
func (t *Tree) SeedInode(highest uint32) {
	for {
		cur := atomic.LoadUint32(&t.nextNode)
		if cur >= highest {
			return
		}
		if atomic.CompareAndSwapUint32(&t.nextNode, cur, highest) {
			return
		}
	}
}

// FindChild returns the direct child of dir named name, or nil.
func FindChild(dir *Node, name string) *Node {
	for _, c := range dir.Children {
		if c.Entry.Name == name {
			return c
		}
	}
	return nil
}

// AddChild appends child to dir's children list and sets its parent
// pointer. It does not check for name collisions; callers must do
// that via FindChild first.
func AddChild(dir *Node, child *Node) {
	child.Parent = dir
	dir.Children = append(dir.Children, child)
}

// RemoveChild detaches the child named name from dir. It returns the
// removed node and true, or nil and false if no such child exists.
func RemoveChild(dir *Node, name string) (*Node, bool) {
	for i, c := range dir.Children {
		if c.Entry.Name == name {
			dir.Children = append(dir.Children[:i], dir.Children[i+1:]...)
			c.Parent = nil
			return c, true
		}
	}
	return nil, false
}

// ListDirectory returns dir's immediate children.
func ListDirectory(dir *Node) []*Node {
	return dir.Children
}

// Resolve walks path (slash separated, relative to t's root) and
// returns the node found there, or nil if any component is missing.
// An empty path, "/", or "." resolves to the root.
func (t *Tree) Resolve(path string) *Node {
	path = strings.Trim(path, "/")
	if path == "" || path == "." {
		return t.root
	}
	cur := t.root
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		next := FindChild(cur, part)
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// FullPath reconstructs the slash-separated absolute path of n by
// walking parent pointers back to the root.
func FullPath(n *Node) string {
	if n.Parent == nil {
		return "/"
	}
	var parts []string
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		parts = append([]string{cur.Entry.Name}, parts...)
	}
	return "/" + strings.Join(parts, "/")
}
