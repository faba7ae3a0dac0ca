package volume

import "encoding/binary"

// Header is the fixed-size record stored at absolute offset 0 (block 0).
type Header struct {
	Version         uint32
	TotalSize       uint64
	MaxUsers        uint32
	BlockSize       uint32
	UserTableOffset uint64
}

// Layout (little-endian, HeaderSize = 64 bytes):
//
//	[0:8)   Magic "OMNIFS01"
//	[8:12)  Version
//	[12:20) TotalSize
//	[20:24) MaxUsers
//	[24:28) BlockSize
//	[28:36) UserTableOffset
//	[36:64) reserved, zero
func encodeHeader(h Header) [HeaderSize]byte {
	var buf [HeaderSize]byte
	copy(buf[0:8], Magic)
	binary.LittleEndian.PutUint32(buf[8:12], h.Version)
	binary.LittleEndian.PutUint64(buf[12:20], h.TotalSize)
	binary.LittleEndian.PutUint32(buf[20:24], h.MaxUsers)
	binary.LittleEndian.PutUint32(buf[24:28], h.BlockSize)
	binary.LittleEndian.PutUint64(buf[28:36], h.UserTableOffset)
	return buf
}

func decodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrBadLayout
	}
	if string(buf[0:8]) != Magic {
		return Header{}, ErrBadMagic
	}
	h := Header{
		Version:         binary.LittleEndian.Uint32(buf[8:12]),
		TotalSize:       binary.LittleEndian.Uint64(buf[12:20]),
		MaxUsers:        binary.LittleEndian.Uint32(buf[20:24]),
		BlockSize:       binary.LittleEndian.Uint32(buf[24:28]),
		UserTableOffset: binary.LittleEndian.Uint64(buf[28:36]),
	}
	return h, nil
}
