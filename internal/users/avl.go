// Package users maintains the in-memory, ordered index of users by
// username, backed by an AVL tree for O(log n) lookup and insertion.
// It holds no persistence logic of its own; callers load it from and
// flush it to the user table via internal/volume.
package users

import "github.com/Abdulbasit24075/omnifs/internal/volume"

type node struct {
	username string
	record   volume.UserRecord
	slot     uint32
	height   int
	left     *node
	right    *node
}

// Tree is an AVL tree keyed by username.
type Tree struct {
	root *node
	size int
}

// New returns an empty user index.
func New() *Tree {
	return &Tree{}
}

// Len returns the number of users currently indexed.
func (t *Tree) Len() int {
	return t.size
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func balanceFactor(n *node) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func updateHeight(n *node) {
	l, r := height(n.left), height(n.right)
	if l > r {
		n.height = l + 1
	} else {
		n.height = r + 1
	}
}

func rightRotate(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	updateHeight(y)
	updateHeight(x)
	return x
}

func leftRotate(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	updateHeight(x)
	updateHeight(y)
	return y
}

func rebalance(n *node) *node {
	updateHeight(n)
	bf := balanceFactor(n)
	if bf > 1 {
		if balanceFactor(n.left) < 0 {
			n.left = leftRotate(n.left)
		}
		return rightRotate(n)
	}
	if bf < -1 {
		if balanceFactor(n.right) > 0 {
			n.right = rightRotate(n.right)
		}
		return leftRotate(n)
	}
	return n
}

// Insert adds a user at the given slot. If the username already
// exists, Insert is a no-op and returns false.
func (t *Tree) Insert(username string, slot uint32, rec volume.UserRecord) bool {
	inserted := false
	t.root = insertRec(t.root, username, slot, rec, &inserted)
	if inserted {
		t.size++
	}
	return inserted
}

func insertRec(n *node, username string, slot uint32, rec volume.UserRecord, inserted *bool) *node {
	if n == nil {
		*inserted = true
		return &node{username: username, record: rec, slot: slot, height: 1}
	}
	switch {
	case username < n.username:
		n.left = insertRec(n.left, username, slot, rec, inserted)
	case username > n.username:
		n.right = insertRec(n.right, username, slot, rec, inserted)
	default:
		return n
	}
	return rebalance(n)
}

// Lookup returns the record and slot for username, and whether it was found.
func (t *Tree) Lookup(username string) (volume.UserRecord, uint32, bool) {
	n := t.root
	for n != nil {
		switch {
		case username < n.username:
			n = n.left
		case username > n.username:
			n = n.right
		default:
			return n.record, n.slot, true
		}
	}
	return volume.UserRecord{}, 0, false
}

// Update overwrites the record stored for username in place, leaving
// the tree's shape untouched. Returns false if username is not present.
func (t *Tree) Update(username string, rec volume.UserRecord) bool {
	n := t.root
	for n != nil {
		switch {
		case username < n.username:
			n = n.left
		case username > n.username:
			n = n.right
		default:
			n.record = rec
			return true
		}
	}
	return false
}

// Remove deletes username from the index. It does not free the user
// table slot on disk; callers must do that separately.
func (t *Tree) Remove(username string) bool {
	removed := false
	t.root = removeRec(t.root, username, &removed)
	if removed {
		t.size--
	}
	return removed
}

func removeRec(n *node, username string, removed *bool) *node {
	if n == nil {
		return nil
	}
	switch {
	case username < n.username:
		n.left = removeRec(n.left, username, removed)
	case username > n.username:
		n.right = removeRec(n.right, username, removed)
	default:
		*removed = true
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		n.username, n.record, n.slot = succ.username, succ.record, succ.slot
		dummy := false
		n.right = removeRec(n.right, succ.username, &dummy)
	}
	return rebalance(n)
}

// Entry pairs a username with its record and table slot, for Enumerate.
type Entry struct {
	Username string
	Record   volume.UserRecord
	Slot     uint32
}

// Enumerate returns every indexed user in ascending username order.
func (t *Tree) Enumerate() []Entry {
	out := make([]Entry, 0, t.size)
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, Entry{Username: n.username, Record: n.record, Slot: n.slot})
		walk(n.right)
	}
	walk(t.root)
	return out
}
