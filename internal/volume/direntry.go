package volume

import "encoding/binary"

// DirEntry is one fixed-size record within a directory block.
type DirEntry struct {
	Name        string
	Type        EntryType
	Size        uint64
	Perm        uint16
	Owner       string
	Inode       uint32
	ParentInode uint32
	StartBlock  uint32
}

// IsEmpty reports whether a directory-block slot holding this entry is
// actually unoccupied (first name byte zero).
func (e DirEntry) IsEmpty() bool {
	return e.Name == ""
}

// Layout (little-endian, DirEntrySize = 80 bytes):
//
//	[0:28)  Name, zero padded
//	[28:29) Type (0=FILE, 1=DIRECTORY)
//	[29:37) Size
//	[37:39) Perm
//	[39:63) Owner, zero padded
//	[63:67) Inode
//	[67:71) ParentInode
//	[71:75) StartBlock (first 4 bytes of the reserved region)
//	[75:80) reserved, zero
func encodeDirEntry(e DirEntry) ([DirEntrySize]byte, error) {
	var buf [DirEntrySize]byte
	if len(e.Name) > MaxDirNameLen {
		return buf, ErrNameTooLong
	}
	if len(e.Owner) > MaxOwnerLen {
		return buf, ErrNameTooLong
	}
	copy(buf[0:28], e.Name)
	buf[28] = byte(e.Type)
	binary.LittleEndian.PutUint64(buf[29:37], e.Size)
	binary.LittleEndian.PutUint16(buf[37:39], e.Perm)
	copy(buf[39:63], e.Owner)
	binary.LittleEndian.PutUint32(buf[63:67], e.Inode)
	binary.LittleEndian.PutUint32(buf[67:71], e.ParentInode)
	binary.LittleEndian.PutUint32(buf[71:75], e.StartBlock)
	return buf, nil
}

func decodeDirEntry(buf []byte) DirEntry {
	return DirEntry{
		Name:        readCString(buf[0:28]),
		Type:        EntryType(buf[28]),
		Size:        binary.LittleEndian.Uint64(buf[29:37]),
		Perm:        binary.LittleEndian.Uint16(buf[37:39]),
		Owner:       readCString(buf[39:63]),
		Inode:       binary.LittleEndian.Uint32(buf[63:67]),
		ParentInode: binary.LittleEndian.Uint32(buf[67:71]),
		StartBlock:  binary.LittleEndian.Uint32(buf[71:75]),
	}
}
