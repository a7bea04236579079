package memory

import (
	"context"
	"testing"
	"time"

	"eduease-be/pkg/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	session := chat.NewSession("s-1", NewIdentityRepository())

	repo.Save(session)
	assert.Equal(t, 1, repo.Count())

	got, ok := repo.Get("s-1")
	require.True(t, ok)
	assert.Same(t, session, got)

	repo.Delete("s-1")
	_, ok = repo.Get("s-1")
	assert.False(t, ok)
}

func TestSessionRepositoryAddKeepsLiveSession(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	first := chat.NewSession("s-1", NewIdentityRepository())
	second := chat.NewSession("s-1", NewIdentityRepository())

	assert.Same(t, first, repo.Add(first))
	assert.Same(t, first, repo.Add(second))
	assert.Equal(t, 1, repo.Count())
}

func TestSessionRepositoryExpiry(t *testing.T) {
	repo := NewSessionRepository(20 * time.Millisecond)
	repo.Save(chat.NewSession("s-1", NewIdentityRepository()))

	time.Sleep(40 * time.Millisecond)
	_, ok := repo.Get("s-1")
	assert.False(t, ok)
}

func TestIdentityRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository()

	name, err := repo.GetName(ctx, "s-1")
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, repo.SetName(ctx, "s-1", "Ada"))
	name, _ = repo.GetName(ctx, "s-1")
	assert.Equal(t, "Ada", name)

	require.NoError(t, repo.DeleteName(ctx, "s-1"))
	name, _ = repo.GetName(ctx, "s-1")
	assert.Empty(t, name)
}
