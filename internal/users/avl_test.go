package users

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Abdulbasit24075/omnifs/internal/volume"
)

func TestInsertAndLookup(t *testing.T) {
	tr := New()
	require.True(t, tr.Insert("bob", 2, volume.UserRecord{Username: "bob", Active: true}))
	require.True(t, tr.Insert("alice", 1, volume.UserRecord{Username: "alice", Active: true}))
	require.Equal(t, 2, tr.Len())

	rec, slot, ok := tr.Lookup("alice")
	require.True(t, ok)
	require.Equal(t, uint32(1), slot)
	require.Equal(t, "alice", rec.Username)

	_, _, ok = tr.Lookup("carol")
	require.False(t, ok)
}

func TestInsertDuplicateIsNoop(t *testing.T) {
	tr := New()
	require.True(t, tr.Insert("alice", 1, volume.UserRecord{Username: "alice"}))
	require.False(t, tr.Insert("alice", 2, volume.UserRecord{Username: "alice"}))
	require.Equal(t, 1, tr.Len())
	_, slot, _ := tr.Lookup("alice")
	require.Equal(t, uint32(1), slot)
}

func TestEnumerateIsSortedByUsername(t *testing.T) {
	tr := New()
	names := []string{"zed", "amy", "mike", "bob", "carol"}
	for i, n := range names {
		tr.Insert(n, uint32(i), volume.UserRecord{Username: n})
	}
	entries := tr.Enumerate()
	require.Len(t, entries, len(names))
	for i := 1; i < len(entries); i++ {
		require.Less(t, entries[i-1].Username, entries[i].Username)
	}
}

func TestUpdateOverwritesRecordInPlace(t *testing.T) {
	tr := New()
	tr.Insert("alice", 1, volume.UserRecord{Username: "alice", Active: true})
	require.True(t, tr.Update("alice", volume.UserRecord{Username: "alice", Active: false}))
	rec, _, _ := tr.Lookup("alice")
	require.False(t, rec.Active)
}

func TestRemoveDeletesFromIndex(t *testing.T) {
	tr := New()
	tr.Insert("alice", 1, volume.UserRecord{Username: "alice"})
	require.True(t, tr.Remove("alice"))
	require.Equal(t, 0, tr.Len())
	_, _, ok := tr.Lookup("alice")
	require.False(t, ok)
}

func TestTreeStaysBalancedUnderSequentialInserts(t *testing.T) {
	tr := New()
	for i := 0; i < 1000; i++ {
		tr.Insert(string(rune('a'))+itoa(i), uint32(i), volume.UserRecord{})
	}
	require.Equal(t, 1000, tr.Len())
	// A correct AVL tree keeps height within ~1.44*log2(n); this is a
	// coarse smoke check that insertion didn't degenerate into a list.
	require.LessOrEqual(t, height(tr.root), 30)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
