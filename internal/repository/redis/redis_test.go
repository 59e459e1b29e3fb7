package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gdugdh24/cofound-backend/internal/domain"
	"github.com/gdugdh24/cofound-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionRepository(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewSessionRepository(client)
	ctx := context.Background()

	userID := uuid.New()
	err := repo.Create(ctx, "hash", &domain.Session{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "hash")
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.True(t, mr.TTL("session:hash") > 0)

	require.NoError(t, repo.Delete(ctx, "hash"))
	_, err = repo.Get(ctx, "hash")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	err = repo.Create(ctx, "old", &domain.Session{UserID: userID, ExpiresAt: time.Now().Add(-time.Minute)})
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestOnboardingStateRepository(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewOnboardingStateRepository(client, time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	_, err := repo.Get(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)

	draft := domain.NewOnboardingDraft()
	draft.FullName = "Ada"
	draft.Education = []domain.EducationDraft{{School: "MIT"}}
	require.NoError(t, repo.Put(ctx, userID, &repository.OnboardingState{Step: 3, Draft: draft}))

	got, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Step)
	assert.Equal(t, "Ada", got.Draft.FullName)
	assert.Equal(t, "MIT", got.Draft.Education[0].School)
	assert.Equal(t, 50, got.Draft.LocationDistance)

	mr.FastForward(2 * time.Hour)
	_, err = repo.Get(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)

	require.NoError(t, repo.Put(ctx, userID, &repository.OnboardingState{Step: 2, Draft: draft}))
	require.NoError(t, repo.Delete(ctx, userID))
	_, err = repo.Get(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
	require.NoError(t, repo.Delete(ctx, userID))
}

func TestSaveLock(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewOnboardingStateRepository(client, time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	ok, err := repo.AcquireSaveLock(ctx, userID, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.AcquireSaveLock(ctx, userID, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.ReleaseSaveLock(ctx, userID))
	ok, err = repo.AcquireSaveLock(ctx, userID, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMessageEventBus(t *testing.T) {
	_, client := newTestClient(t)
	bus := NewMessageEventBus(client)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	me, other := uuid.New(), uuid.New()
	events, closeFn, err := bus.Subscribe(ctx, me)
	require.NoError(t, err)
	defer closeFn()

	msgID := uuid.New()
	require.NoError(t, bus.Publish(ctx, domain.MessageEvent{Type: domain.MessageInserted, MessageID: uuid.New(), RecipientID: other}))
	require.NoError(t, bus.Publish(ctx, domain.MessageEvent{Type: domain.MessageInserted, MessageID: msgID, RecipientID: me}))

	select {
	case evt := <-events:
		assert.Equal(t, domain.MessageInserted, evt.Type)
		assert.Equal(t, msgID, evt.MessageID)
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
