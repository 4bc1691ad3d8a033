package memory

import (
	"testing"

	"ergo-assist-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositorySaveAndGet(t *testing.T) {
	repo := NewSessionRepository()

	sess := &store.Session{ID: "sess-1", UserID: "user-1", HasScan: true}
	repo.Save(sess)

	got, found := repo.Get("sess-1")
	require.True(t, found, "saved session not found")
	require.Same(t, sess, got, "live state must be shared, not copied")

	// Mutations through the returned pointer are visible on the next Get.
	got.HasTask = true
	again, _ := repo.Get("sess-1")
	assert.True(t, again.HasTask)
}

func TestSessionRepositoryGetMissing(t *testing.T) {
	repo := NewSessionRepository()

	got, found := repo.Get("nope")
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := NewSessionRepository()

	repo.Save(&store.Session{ID: "sess-1"})
	repo.Delete("sess-1")

	_, found := repo.Get("sess-1")
	assert.False(t, found, "session still present after Delete")

	// Deleting an unknown id is a no-op.
	repo.Delete("sess-2")
}

func TestSessionRepositorySaveOverwrites(t *testing.T) {
	repo := NewSessionRepository()

	repo.Save(&store.Session{ID: "sess-1", LastQuery: "first"})
	repo.Save(&store.Session{ID: "sess-1", LastQuery: "second"})

	got, found := repo.Get("sess-1")
	require.True(t, found)
	assert.Equal(t, "second", got.LastQuery)
}
