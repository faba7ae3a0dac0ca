package ofs

import (
	"time"

	"github.com/Abdulbasit24075/omnifs/internal/authhash"
	"github.com/Abdulbasit24075/omnifs/internal/volume"
)

func hashPassword(username, password string) [volume.PasswordHashSize]byte {
	return authhash.Hash(username, password)
}

func passwordMatches(username, password string, rec volume.UserRecord) bool {
	return authhash.Verify(username, password, rec.PasswordHash)
}

func nowRecorded() time.Time {
	return time.Now()
}
