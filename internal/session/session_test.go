package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginMintsLookupableSession(t *testing.T) {
	tbl := New()
	sid := tbl.Login("alice")
	require.NotEmpty(t, sid)
	require.True(t, strings.HasPrefix(sid, "sess_alice_"))

	username, ok := tbl.Lookup(sid)
	require.True(t, ok)
	require.Equal(t, "alice", username)
}

func TestLookupUnknownSessionFails(t *testing.T) {
	tbl := New()
	_, ok := tbl.Lookup("sess_nobody_0_0000")
	require.False(t, ok)
}

func TestLogoutRemovesSession(t *testing.T) {
	tbl := New()
	sid := tbl.Login("alice")
	tbl.Logout(sid)
	_, ok := tbl.Lookup(sid)
	require.False(t, ok)
}

func TestConsecutiveLoginsBySameUserDoNotCollide(t *testing.T) {
	tbl := New()
	a := tbl.Login("alice")
	b := tbl.Login("alice")
	require.NotEqual(t, a, b)
	require.Equal(t, 2, tbl.Count())
}
