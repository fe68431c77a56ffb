package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeevlv/TSP-WizardService/internal/domain"
)

func newSession(id string, expiresAt time.Time) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:        id,
		State:     domain.WizardState{VisibleDialog: domain.DialogNone},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: expiresAt,
	}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	session := newSession("s1", time.Now().Add(time.Hour))
	session.State.ActiveStepIndex = 3
	require.NoError(t, store.Create(ctx, session))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, 3, got.State.ActiveStepIndex)
}

func TestMemoryStore_GetReturnsIndependentCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newSession("s1", time.Now().Add(time.Hour))))

	first, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	first.State.ActiveStepIndex = 5

	second, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, second.State.ActiveStepIndex, "mutation outside Update must not leak into the store")
}

func TestMemoryStore_GetUnknownSession(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_ExpiredSessionIsGone(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newSession("s1", time.Now().Add(-time.Minute))))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Update(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	session := newSession("s1", time.Now().Add(time.Hour))
	require.NoError(t, store.Create(ctx, session))

	session.State.Done = true
	require.NoError(t, store.Update(ctx, session))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.State.Done)
}

func TestMemoryStore_UpdateUnknownSession(t *testing.T) {
	store := NewMemoryStore()

	err := store.Update(context.Background(), newSession("missing", time.Now().Add(time.Hour)))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newSession("s1", time.Now().Add(time.Hour))))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "s1"), ErrSessionNotFound)
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Create(ctx, newSession("alive", now.Add(time.Hour))))
	require.NoError(t, store.Create(ctx, newSession("dead1", now.Add(-time.Minute))))
	require.NoError(t, store.Create(ctx, newSession("dead2", now.Add(-time.Hour))))

	removed, err := store.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = store.Get(ctx, "alive")
	assert.NoError(t, err)
}
