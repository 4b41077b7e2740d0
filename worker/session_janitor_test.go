package worker

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotabot/bot"
	"quotabot/repository"
)

func TestSessionJanitor_PruneDeactivatesRows(t *testing.T) {
	store := bot.NewMemorySessionStore()
	sessionRepo := repository.NewMemorySessionRepo()
	logger := log.New(io.Discard, "", 0)

	stale := bot.NewSession("234stale")
	stale.LastActivity = time.Now().Add(-time.Hour)
	require.NoError(t, store.Put(stale))
	require.NoError(t, sessionRepo.UpdateSession("234stale", bot.MenuLeadForm, 2))

	fresh := bot.NewSession("234fresh")
	fresh.LastActivity = time.Now()
	require.NoError(t, store.Put(fresh))
	require.NoError(t, sessionRepo.UpdateSession("234fresh", bot.MenuMain, 0))

	janitor := NewSessionJanitor(store, sessionRepo, 30*time.Minute, logger)
	janitor.prune()

	gone, err := store.Get("234stale")
	require.NoError(t, err)
	assert.Nil(t, gone, "stale session must be dropped from the store")

	row, err := sessionRepo.GetSession("234stale")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.False(t, row.IsActive)

	kept, err := sessionRepo.GetSession("234fresh")
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.True(t, kept.IsActive)
}
