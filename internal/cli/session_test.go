package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewSessionStore(path)

	session := &Session{Token: "sess_abc", UserID: "alice", Score: 42}
	require.NoError(t, store.Save(session))

	restored := store.Restore()
	require.NotNil(t, restored)
	assert.Equal(t, "sess_abc", restored.Token)
	assert.Equal(t, "alice", restored.UserID)
	assert.Equal(t, 42, restored.Score)
}

func TestSessionStore_MissingFile(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "absent.json"))
	assert.Nil(t, store.Restore())
}

func TestSessionStore_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json{"), 0600))

	// Malformed state is indistinguishable from no session
	store := NewSessionStore(path)
	assert.Nil(t, store.Restore())
}

func TestSessionStore_EmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"user_id":"alice"}`), 0600))

	store := NewSessionStore(path)
	assert.Nil(t, store.Restore())
}

func TestSessionStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewSessionStore(path)

	require.NoError(t, store.Save(&Session{Token: "sess_abc", UserID: "alice"}))
	require.NoError(t, store.Clear())
	assert.Nil(t, store.Restore())

	// Clearing again is not an error
	require.NoError(t, store.Clear())
}

func TestSessionStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewSessionStore(path)

	require.NoError(t, store.Save(&Session{Token: "sess_1", UserID: "alice", Score: 0}))
	require.NoError(t, store.Save(&Session{Token: "sess_2", UserID: "alice", Score: 15}))

	restored := store.Restore()
	require.NotNil(t, restored)
	assert.Equal(t, "sess_2", restored.Token)
	assert.Equal(t, 15, restored.Score)
}
