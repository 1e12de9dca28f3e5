package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"), "journal")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Minute)
	for i, op := range []string{"leave_team", "leave_participation", "delete_invitation"} {
		require.NoError(t, store.Append(Entry{
			ContactID: "c1",
			Operation: op,
			Targets:   i + 1,
			Updated:   i,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, "delete_invitation", entries[0].Operation)
	assert.Equal(t, "leave_team", entries[2].Operation)
	assert.NotEmpty(t, entries[0].ID)
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(Entry{Operation: "leave_team"}))
	}

	entries, err := store.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSize(t *testing.T) {
	store := openTestStore(t)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)

	require.NoError(t, store.Append(Entry{Operation: "leave_team"}))
	size, err = store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestCleanupDropsOldEntries(t *testing.T) {
	store := openTestStore(t)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, store.Append(Entry{Operation: "leave_team", Timestamp: old}))
	require.NoError(t, store.Append(Entry{Operation: "leave_participation"}))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "leave_participation", entries[0].Operation)
}

func TestClosedStoreErrors(t *testing.T) {
	var store *Store
	assert.Error(t, store.Append(Entry{}))
	_, err := store.Recent(1)
	assert.Error(t, err)
	_, err = store.Size()
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}
