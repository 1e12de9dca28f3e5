package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoreSetGetInvalidate(t *testing.T) {
	store := New(0)

	_, ok := store.Get(KeyProfile)
	assert.False(t, ok)

	store.Set(KeyProfile, "value")
	got, ok := store.Get(KeyProfile)
	assert.True(t, ok)
	assert.Equal(t, "value", got)

	store.Invalidate(KeyProfile)
	_, ok = store.Get(KeyProfile)
	assert.False(t, ok)
}

func TestStoreTTLExpiry(t *testing.T) {
	store := New(5 * time.Millisecond)
	store.Set(KeyMilestones, 42)

	_, ok := store.Get(KeyMilestones)
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = store.Get(KeyMilestones)
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestInvalidateSubmissionsLeavesOtherKeys(t *testing.T) {
	store := New(0)
	store.Set(SubmissionsKey("ms1"), 1)
	store.Set(SubmissionsKey("ms2"), 2)
	store.Set(KeyMilestones, 3)

	store.InvalidateSubmissions()

	_, ok := store.Get(SubmissionsKey("ms1"))
	assert.False(t, ok)
	_, ok = store.Get(SubmissionsKey("ms2"))
	assert.False(t, ok)
	_, ok = store.Get(KeyMilestones)
	assert.True(t, ok)
}

func TestFlush(t *testing.T) {
	store := New(0)
	for _, key := range DerivedKeys() {
		store.Set(key, key)
	}
	assert.Equal(t, len(DerivedKeys()), store.Len())

	store.Flush()
	assert.Zero(t, store.Len())
}
