package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore_GetReturnsNilForUnknown(t *testing.T) {
	store := NewMemorySessionStore()
	session, err := store.Get("nobody")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestMemorySessionStore_PutThenGetIsACopy(t *testing.T) {
	store := NewMemorySessionStore()
	session := NewSession("234")
	session.LeadFormStep = 3
	require.NoError(t, store.Put(session))

	got, err := store.Get("234")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.LeadFormStep)

	// Mutating the returned session must not leak into the store.
	got.LeadFormStep = 5
	again, err := store.Get("234")
	require.NoError(t, err)
	assert.Equal(t, 3, again.LeadFormStep)
}

func TestMemorySessionStore_PruneIdle(t *testing.T) {
	store := NewMemorySessionStore()

	stale := NewSession("old")
	stale.LastActivity = time.Now().Add(-time.Hour)
	require.NoError(t, store.Put(stale))

	fresh := NewSession("new")
	fresh.LastActivity = time.Now()
	require.NoError(t, store.Put(fresh))

	pruned, err := store.PruneIdle(30 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, pruned)

	gone, err := store.Get("old")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := store.Get("new")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
