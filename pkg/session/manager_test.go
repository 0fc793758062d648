package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/vista/pkg/adapters/memory"
	"github.com/aretw0/vista/pkg/adapters/redis"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/aretw0/vista/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStore simulates latency to provoke races if locking is missing.
type slowStore struct {
	*memory.Store
}

func (s slowStore) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Load(ctx, sessionID)
}

func (s slowStore) Save(ctx context.Context, sessionID string, state *domain.State) error {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Save(ctx, sessionID, state)
}

func TestManager_UpdateIsSerialized(t *testing.T) {
	manager := session.NewManager(slowStore{memory.NewStore()})
	ctx := context.Background()
	id := "race-test"

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.Update(ctx, id, func(s *domain.State) (*domain.State, error) {
				next := s.Snapshot()
				next.History.Entries = append(next.History.Entries, domain.SceneID(len(next.History.Entries)))
				return next, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Len(t, state.History.Entries, 10, "no update may be lost")
	assert.Equal(t, id, state.SessionID)
}

func TestManager_UpdateErrorDoesNotSave(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := manager.Update(ctx, "s", func(s *domain.State) (*domain.State, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = manager.Load(ctx, "s")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_LoadOrStart(t *testing.T) {
	manager := session.NewManager(slowStore{memory.NewStore()})
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state, err := manager.LoadOrStart(ctx, id)
			assert.NoError(t, err)
			assert.NotNil(t, state)
		}()
	}
	wg.Wait()

	state, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, state.SessionID)
	assert.Equal(t, domain.PhaseIdle, state.Phase)
	assert.Empty(t, state.History.Entries)

	ids, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)
}

func TestManager_DistributedLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	locker := redis.NewLocker(client, "vista:")
	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(time.Second))
	ctx := context.Background()

	err := manager.WithLock(ctx, "s", func(ctx context.Context) error {
		assert.True(t, mr.Exists("vista:lock:s"), "distributed lock held during the cycle")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("vista:lock:s"))
}
