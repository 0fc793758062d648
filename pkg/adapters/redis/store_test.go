package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/vista/pkg/adapters/redis"
	"github.com/aretw0/vista/pkg/domain"
	contract "github.com/aretw0/vista/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	contract.RunStateStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	sessionID := "session-ttl"
	state := domain.NewState(sessionID)
	state.History.Entries = []domain.SceneID{1, 2}

	require.NoError(t, store.Save(ctx, sessionID, state))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, sessions, sessionID)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// The index is cleaned lazily against the wall clock, not miniredis time.
	time.Sleep(1200 * time.Millisecond)

	sessions, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRedisStore_DefaultTTL(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, store.Save(context.Background(), "s", domain.NewState("s")))
	assert.Equal(t, redis.DefaultTTL, mr.TTL("vista:state:s"))
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()
	sessionID := "my-session"

	require.NoError(t, store.Save(ctx, sessionID, domain.NewState(sessionID)))

	assert.True(t, mr.Exists("custom:app:state:my-session"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:sessions"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, sessionID)
}

func TestRedisStore_LoadSlidesExpiry(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(10*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "visitor", domain.NewState("visitor")))
	mr.FastForward(6 * time.Second)
	assert.Equal(t, 4*time.Second, mr.TTL("vista:state:visitor"))

	_, err := store.Load(ctx, "visitor")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, mr.TTL("vista:state:visitor"), "reading keeps a viewed session alive")

	// Past the original deadline, the session is still there.
	mr.FastForward(6 * time.Second)
	_, err = store.Load(ctx, "visitor")
	require.NoError(t, err)
}

func TestRedisStore_LoadMissingDoesNotIndex(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	_, err := store.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.False(t, mr.Exists("vista:sessions"))
}

func TestRedisStore_NoExpiration(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(0))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "kiosk", domain.NewState("kiosk")))
	_, err := store.Load(ctx, "kiosk")
	require.NoError(t, err)
	assert.Zero(t, mr.TTL("vista:state:kiosk"))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kiosk"}, ids)
}
