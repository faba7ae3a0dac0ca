package jail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdminSeesRawNamespace(t *testing.T) {
	got, err := Translate("admin", true, "/etc/anything")
	require.NoError(t, err)
	require.Equal(t, "/etc/anything", got)
}

func TestNonAdminIsConfinedToHome(t *testing.T) {
	got, err := Translate("alice", false, "/notes.txt")
	require.NoError(t, err)
	require.Equal(t, "/home/alice/notes.txt", got)
}

func TestNonAdminRelativePathIsAlsoConfined(t *testing.T) {
	got, err := Translate("alice", false, "notes.txt")
	require.NoError(t, err)
	require.Equal(t, "/home/alice/notes.txt", got)
}

func TestEmptyOrRootPathResolvesToOwnHome(t *testing.T) {
	got, err := Translate("alice", false, "")
	require.NoError(t, err)
	require.Equal(t, "/home/alice", got)

	got, err = Translate("alice", false, "/")
	require.NoError(t, err)
	require.Equal(t, "/home/alice", got)
}

func TestTraversalIsRejectedForNonAdmin(t *testing.T) {
	_, err := Translate("alice", false, "../etc/passwd")
	require.ErrorIs(t, err, ErrTraversal)
}

func TestTraversalSubstringIsRejectedForNonAdmin(t *testing.T) {
	_, err := Translate("alice", false, "a..b/file.txt")
	require.ErrorIs(t, err, ErrTraversal)
}

func TestAdminBypassesTraversalCheck(t *testing.T) {
	got, err := Translate("admin", true, "/home/../etc")
	require.NoError(t, err)
	require.Equal(t, "/etc", got)
}
