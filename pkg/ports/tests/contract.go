package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/vista/pkg/domain"
	"github.com/aretw0/vista/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store ports.StateStore) {
	t.Helper()
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState(sessionID)
		state.Phase = domain.PhaseViewing
		state.CurrentScene = 3
		state.History.Entries = []domain.SceneID{1, 2}
		state.History.SkipNext = true
		state.Overlay.ShowInteractionDialog(3, 1)

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.CurrentScene, loaded.CurrentScene)
		assert.Equal(t, state.Phase, loaded.Phase)
		assert.Equal(t, []domain.SceneID{1, 2}, loaded.History.Entries)
		assert.True(t, loaded.History.SkipNext, "skip flag must survive a round trip")
		assert.Equal(t, domain.OverlayInteractionDialog, loaded.Overlay.Kind)
		assert.Equal(t, 1, loaded.Overlay.InteractionIndex)
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		state := domain.NewState(sessionID)
		state.History.Entries = []domain.SceneID{1}
		require.NoError(t, store.Save(ctx, sessionID, state))

		state.History.Entries[0] = 42

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.SceneID(1), loaded.History.Entries[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewState(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState(id1))
		_ = store.Save(ctx, id2, domain.NewState(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunTourLoaderContract verifies that a TourLoader returns the expected registry.
// expected must list scenes in the order the loader is supposed to return them.
func RunTourLoaderContract(t *testing.T, loader ports.TourLoader, expected []domain.SceneID) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load", func(t *testing.T) {
		tour, err := loader.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, tour)

		ids := make([]domain.SceneID, 0, len(tour.Scenes))
		for _, s := range tour.Scenes {
			ids = append(ids, s.ID)
		}
		assert.Equal(t, expected, ids)
	})

	t.Run("Load Twice", func(t *testing.T) {
		first, err := loader.Load(ctx)
		require.NoError(t, err)
		second, err := loader.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(first.Scenes), len(second.Scenes))
	})
}
