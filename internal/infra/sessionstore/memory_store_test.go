package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edudigital/portal/internal/domain/assistant"
)

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, assistant.Session{ID: "s1"}))
	_, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreIsolatesCopies(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()
	session := assistant.Session{
		ID:       "s1",
		Messages: []assistant.Message{{Role: assistant.RoleAssistant, Content: "hola"}},
		Document: &assistant.Document{FileName: "a.txt", Text: "uno"},
	}
	require.NoError(t, store.Save(ctx, session))

	session.Messages[0].Content = "mutated"
	session.Document.Text = "mutated"

	got, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hola", got.Messages[0].Content)
	require.Equal(t, "uno", got.Document.Text)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, ok, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	require.False(t, ok)
}
