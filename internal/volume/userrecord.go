package volume

import (
	"encoding/binary"
	"time"
)

// UserRecord is one fixed-size slot of the user table.
type UserRecord struct {
	Username     string
	PasswordHash [PasswordHashSize]byte
	Role         Role
	CreatedAt    time.Time
	Active       bool
}

// IsFree reports whether a slot is reusable: its first name byte is
// zero, or its active flag is zero. Preserved exactly per the reference
// behavior even though a stale username may still occupy the slot.
func (u UserRecord) IsFree() bool {
	return u.Username == "" || !u.Active
}

// Layout (little-endian, UserRecordSize = 72 bytes):
//
//	[0:24)  Username, zero padded
//	[24:56) PasswordHash
//	[56:57) Role (0=NORMAL, 1=ADMIN)
//	[57:65) CreatedAt, unix seconds
//	[65:66) Active (0 or 1)
//	[66:72) reserved, zero
func encodeUserRecord(u UserRecord) ([UserRecordSize]byte, error) {
	var buf [UserRecordSize]byte
	if len(u.Username) > MaxUsernameLen {
		return buf, ErrNameTooLong
	}
	copy(buf[0:24], u.Username)
	copy(buf[24:56], u.PasswordHash[:])
	buf[56] = byte(u.Role)
	binary.LittleEndian.PutUint64(buf[57:65], uint64(u.CreatedAt.Unix()))
	if u.Active {
		buf[65] = 1
	}
	return buf, nil
}

func decodeUserRecord(buf []byte) UserRecord {
	name := readCString(buf[0:24])
	var hash [PasswordHashSize]byte
	copy(hash[:], buf[24:56])
	return UserRecord{
		Username:     name,
		PasswordHash: hash,
		Role:         Role(buf[56]),
		CreatedAt:    time.Unix(int64(binary.LittleEndian.Uint64(buf[57:65])), 0),
		Active:       buf[65] != 0,
	}
}

// readCString returns the field up to the first zero byte, or the
// entire field if no zero byte is present.
func readCString(field []byte) string {
	for i, b := range field {
		if b == 0 {
			return string(field[:i])
		}
	}
	return string(field)
}
