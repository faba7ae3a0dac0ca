// Package session implements the server's opaque session-id table.
// Sessions never expire; the dispatcher creates them on login and
// looks them up on every subsequent request, and no wire operation
// removes one. Logout removes a session for callers of this package.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Table maps session ids to the username that owns them. It is not
// safe for concurrent use on its own; the single-worker request
// pipeline is what makes unsynchronized access to it safe.
type Table struct {
	sessions map[string]string
}

// New returns an empty session table.
func New() *Table {
	return &Table{sessions: make(map[string]string)}
}

// Login mints a fresh session id for username and records it.
func (t *Table) Login(username string) string {
	id := newID(username)
	t.sessions[id] = username
	return id
}

// Lookup returns the username owning sessionID, and whether it exists.
func (t *Table) Lookup(sessionID string) (string, bool) {
	u, ok := t.sessions[sessionID]
	return u, ok
}

// Logout removes a session id from the table.
func (t *Table) Logout(sessionID string) {
	delete(t.sessions, sessionID)
}

// Count returns the number of active sessions.
func (t *Table) Count() int {
	return len(t.sessions)
}

// newID builds an id of the form sess_<username>_<unix_time>_<suffix>.
// The reference format is sess_<username>_<unix_time>; the random
// suffix is added so two logins by the same user within the same
// second never collide.
func newID(username string) string {
	var raw [4]byte
	_, _ = rand.Read(raw[:])
	return fmt.Sprintf("sess_%s_%d_%s", username, time.Now().Unix(), hex.EncodeToString(raw[:]))
}
