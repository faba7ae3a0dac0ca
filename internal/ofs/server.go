// Package ofs implements the operation dispatcher: the sole mutator of
// the directory tree, user index, block allocator, and volume file,
// running entirely on the request pipeline's worker goroutine.
// Grounded on the reference server's init/loadFileSystem/processRequest
// trio, reworked into idiomatic Go with typed sentinel errors in place
// of raw string matching.
package ofs

import (
	"sync"
	"time"

	"github.com/Abdulbasit24075/omnifs/internal/authhash"
	"github.com/Abdulbasit24075/omnifs/internal/logger"
	"github.com/Abdulbasit24075/omnifs/internal/session"
	"github.com/Abdulbasit24075/omnifs/internal/tree"
	"github.com/Abdulbasit24075/omnifs/internal/users"
	"github.com/Abdulbasit24075/omnifs/internal/volume"
)

// DefaultAdminUsername and DefaultAdminPassword seed the single admin
// account created when a volume is formatted fresh.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// Server owns every piece of in-memory state the dispatcher mutates,
// plus the open volume file backing it. Every method that touches
// vol, bitmap, userIdx, dirTree, or slots must only ever be called
// from the pipeline's single worker goroutine; the one exception is
// Snapshot, which reads them from other goroutines under snapshotMu.
type Server struct {
	vol      *volume.Volume
	header   volume.Header
	bitmap   *volume.Bitmap
	slots    []volume.UserRecord
	userIdx  *users.Tree
	dirTree  *tree.Tree
	sessions *session.Table

	// snapshotMu guards Dispatch against concurrent Snapshot reads from
	// the admin HTTP server's own goroutine. The request pipeline's
	// single-writer discipline still means Dispatch never contends with
	// itself; this lock exists only at that one ambient boundary.
	snapshotMu sync.RWMutex
}

// Format creates a brand new volume at path, bootstraps the admin
// user, root, and /home directories, and marks blocks 0-3 used.
func Format(path string, totalSize uint64, blockSize uint32, maxUsers uint32) (*Server, error) {
	vol, err := volume.Format(path, totalSize, blockSize, maxUsers)
	if err != nil {
		return nil, err
	}
	header := volume.Header{
		Version:         volume.Version,
		TotalSize:       totalSize,
		MaxUsers:        maxUsers,
		BlockSize:       blockSize,
		UserTableOffset: uint64(blockSize),
	}

	totalBlocks := uint32(totalSize / uint64(blockSize))
	bitmap := volume.NewBitmap(totalBlocks)
	if err := bitmap.MarkUsed(0, volume.ReservedBlocks); err != nil {
		vol.Close()
		return nil, err
	}

	s := &Server{
		vol:      vol,
		header:   header,
		bitmap:   bitmap,
		slots:    make([]volume.UserRecord, maxUsers),
		userIdx:  users.New(),
		sessions: session.New(),
	}

	adminRecord := volume.UserRecord{
		Username:     DefaultAdminUsername,
		PasswordHash: authhash.Hash(DefaultAdminUsername, DefaultAdminPassword),
		Role:         volume.RoleAdmin,
		CreatedAt:    time.Now(),
		Active:       true,
	}
	if err := s.vol.WriteUserSlot(0, maxUsers, adminRecord); err != nil {
		vol.Close()
		return nil, err
	}
	s.slots[0] = adminRecord
	s.userIdx.Insert(DefaultAdminUsername, 0, adminRecord)

	rootNode := &tree.Node{
		Entry: volume.DirEntry{Type: volume.EntryDirectory, Inode: 1, StartBlock: volume.RootBlock},
		Block: volume.RootBlock,
	}
	s.dirTree = tree.New(rootNode)
	s.dirTree.SeedInode(1)

	homeEntry := volume.DirEntry{
		Name:        "home",
		Type:        volume.EntryDirectory,
		Inode:       s.dirTree.NextInode(),
		ParentInode: rootNode.Entry.Inode,
		StartBlock:  volume.HomeBlock,
	}
	if err := s.vol.WriteDirSlot(volume.RootBlock, 0, homeEntry); err != nil {
		vol.Close()
		return nil, err
	}
	homeNode := &tree.Node{Entry: homeEntry, Block: volume.HomeBlock, Slot: 0}
	tree.AddChild(rootNode, homeNode)

	logger.Info("formatted new volume at %s: %d bytes, block size %d, max users %d", path, totalSize, blockSize, maxUsers)
	return s, nil
}

// Load opens an existing volume, validates its header, and rebuilds
// the in-memory user index and the two fixed levels of the directory
// tree (root and /home) from disk. Deeper directories created at
// runtime in a prior process are not reconstructed; generalizing this
// to a recursive walk driven by each entry's start block is a
// documented, optional extension.
func Load(path string) (*Server, error) {
	vol, header, err := volume.Open(path)
	if err != nil {
		return nil, err
	}

	totalBlocks := uint32(header.TotalSize / uint64(header.BlockSize))
	bitmap := volume.NewBitmap(totalBlocks)
	if err := bitmap.MarkUsed(0, volume.ReservedBlocks); err != nil {
		vol.Close()
		return nil, err
	}

	s := &Server{
		vol:      vol,
		header:   *header,
		bitmap:   bitmap,
		slots:    make([]volume.UserRecord, header.MaxUsers),
		userIdx:  users.New(),
		sessions: session.New(),
	}

	for i := uint32(0); i < header.MaxUsers; i++ {
		rec, err := vol.ReadUserSlot(i, header.MaxUsers)
		if err != nil {
			vol.Close()
			return nil, err
		}
		s.slots[i] = rec
		if rec.Username != "" {
			s.userIdx.Insert(rec.Username, i, rec)
		}
	}

	rootNode := &tree.Node{
		Entry: volume.DirEntry{Type: volume.EntryDirectory, Inode: 1, StartBlock: volume.RootBlock},
		Block: volume.RootBlock,
	}
	s.dirTree = tree.New(rootNode)

	rootEntries, err := vol.ReadDirBlock(volume.RootBlock)
	if err != nil {
		vol.Close()
		return nil, err
	}
	highestInode := uint32(1)
	for i, e := range rootEntries {
		node := &tree.Node{Entry: e, Block: e.StartBlock, Slot: i}
		tree.AddChild(rootNode, node)
		if e.Inode > highestInode {
			highestInode = e.Inode
		}
		if e.Name == "home" && e.Type == volume.EntryDirectory {
			homeEntries, err := vol.ReadDirBlock(e.StartBlock)
			if err != nil {
				vol.Close()
				return nil, err
			}
			for j, he := range homeEntries {
				homeChild := &tree.Node{Entry: he, Block: he.StartBlock, Slot: j}
				tree.AddChild(node, homeChild)
				if he.Inode > highestInode {
					highestInode = he.Inode
				}
				bitmap.MarkUsed(he.StartBlock, 1)
			}
		}
	}
	s.dirTree.SeedInode(highestInode)

	logger.Info("loaded volume from %s: %d users, %d/%d blocks free", path, s.userIdx.Len(), bitmap.FreeBlocks(), bitmap.TotalBlocks())
	return s, nil
}

// Close flushes and releases the underlying volume file.
func (s *Server) Close() error {
	return s.vol.Close()
}
