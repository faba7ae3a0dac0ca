// Package volume implements the on-disk layout of an OMNI volume file:
// the header, the user table, directory blocks, and file byte ranges.
// All multi-byte fields are little-endian; string fields are fixed
// width, zero padded, and not necessarily NUL terminated.
package volume

import "errors"

const (
	// Magic is the literal byte sequence every valid volume starts with.
	Magic = "OMNIFS01"

	// Version is the format version written by Format.
	Version uint32 = 0x00010000

	// BlockSize is the design-default block size in bytes.
	BlockSize = 4096

	// MaxUsers is the design-default maximum number of user slots.
	MaxUsers = 50

	// DefaultTotalSize is the design-default volume size (100 MiB).
	DefaultTotalSize = 100 * 1024 * 1024

	// HeaderSize is the byte width of the encoded header record.
	HeaderSize = 64

	// UserRecordSize is the byte width of one user table slot.
	// MaxUsers * UserRecordSize must fit within a single block, since
	// the user table occupies exactly block 1.
	UserRecordSize = 72

	// MaxUsernameLen bounds the username field of a user record.
	MaxUsernameLen = 24

	// PasswordHashSize is the fixed width of the stored password digest.
	PasswordHashSize = 32

	// DirEntrySize is the byte width of one directory entry.
	DirEntrySize = 80

	// MaxDirNameLen bounds the name field of a directory entry.
	MaxDirNameLen = 28

	// MaxOwnerLen bounds the owner-username field of a directory entry.
	MaxOwnerLen = 24

	// EntriesPerDirBlock is the number of directory entries that pack
	// into one directory block.
	EntriesPerDirBlock = BlockSize / DirEntrySize

	// Reserved block numbers, fixed for the life of a volume.
	HeaderBlock    = 0
	UserTableBlock = 1
	RootBlock      = 2
	HomeBlock      = 3
	ReservedBlocks = 4
)

// Role is a user's privilege level.
type Role uint8

const (
	RoleNormal Role = 0
	RoleAdmin  Role = 1
)

// EntryType distinguishes a file from a directory in a directory entry.
type EntryType uint8

const (
	EntryFile      EntryType = 0
	EntryDirectory EntryType = 1
)

var (
	ErrBadMagic    = errors.New("volume: bad magic")
	ErrBadLayout   = errors.New("volume: layout invariant violated")
	ErrSlotRange   = errors.New("volume: user slot out of range")
	ErrNameTooLong = errors.New("volume: name too long")
)
