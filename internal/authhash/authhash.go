// Package authhash computes and verifies the fixed-width password
// digest stored in a user table slot. The on-disk field is exactly 32
// bytes (PasswordHashSize), which rules out a self-describing digest
// like bcrypt; pbkdf2 with an explicit output length fits the slot
// exactly and lets the legacy bootstrap admin literal share the same
// field with no special casing at the storage layer.
package authhash

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/pbkdf2"

	"github.com/Abdulbasit24075/omnifs/internal/volume"
)

// legacyAdminUser and legacyAdminPassword identify the one credential
// pair that must keep producing the reference implementation's
// literal digest, for volumes bootstrapped against that behavior.
const (
	legacyAdminUser     = "admin"
	legacyAdminPassword = "admin123"
	legacyAdminDigest   = "8c6976e5b5410415bde908bd4dee15df"
)

const iterations = 4096

// Hash derives the stored digest for a username/password pair. The
// username salts the derivation so two users who pick the same
// password never share a digest.
func Hash(username, password string) [volume.PasswordHashSize]byte {
	var out [volume.PasswordHashSize]byte
	if username == legacyAdminUser && password == legacyAdminPassword {
		copy(out[:], legacyAdminDigest)
		return out
	}
	derived := pbkdf2.Key([]byte(password), []byte(username), iterations, volume.PasswordHashSize, sha256.New)
	copy(out[:], derived)
	return out
}

// Verify reports whether password hashes to the same digest already
// stored for username, in constant time.
func Verify(username, password string, stored [volume.PasswordHashSize]byte) bool {
	got := Hash(username, password)
	return subtle.ConstantTimeCompare(got[:], stored[:]) == 1
}
