package vista_test

import (
	"context"
	"testing"

	"github.com/aretw0/vista"
	"github.com/aretw0/vista/pkg/adapters/memory"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tourScenes() []domain.Scene {
	goTo := func(label string, target any) domain.InteractionParams {
		return domain.InteractionParams{
			Label:  label,
			Action: domain.Action{Library: "H5P.GoToScene 1.0", Params: map[string]any{"nextSceneId": target}},
		}
	}
	return []domain.Scene{
		{ID: 1, Name: "Entrance", Description: "Welcome", Interactions: []domain.InteractionParams{goTo("Gallery", "2")}},
		{ID: 2, Name: "Gallery", Interactions: []domain.InteractionParams{
			goTo("Garden", 3),
			goTo("Back", -1),
			{Label: "Info", Action: domain.Action{Library: "H5P.Text 1.2"}},
		}},
		{ID: 3, Name: "Garden"},
	}
}

func newViewer(t *testing.T) (*vista.Viewer, *memory.Loader) {
	t.Helper()
	loader := memory.NewLoader("Museum", tourScenes()...)
	v, err := vista.New("", vista.WithLoader(loader))
	require.NoError(t, err)
	return v, loader
}

func TestViewer_Navigation(t *testing.T) {
	ctx := context.Background()
	v, _ := newViewer(t)

	state, err := v.Start(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseViewing, state.Phase)
	assert.Equal(t, domain.SceneID(1), state.CurrentScene)

	state, err = v.SelectInteraction(ctx, state, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.SceneID(2), state.CurrentScene)

	state, err = v.GoTo(ctx, state, 3)
	require.NoError(t, err)
	assert.Equal(t, []domain.SceneID{1, 2}, state.History.Entries)

	state, err = v.Back(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, domain.SceneID(2), state.CurrentScene)
	assert.Equal(t, []domain.SceneID{1}, state.History.Entries)

	// The "Back" hotspot uses the previous-scene target.
	state, err = v.SelectInteraction(ctx, state, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.SceneID(1), state.CurrentScene)
	assert.Empty(t, state.History.Entries)

	view, err := v.Render(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, "Entrance", view.Scene.Name)
	assert.False(t, view.CanGoBack)
	assert.True(t, view.ShowDescription)
}

func TestViewer_RemoveScenePrunesHistory(t *testing.T) {
	ctx := context.Background()
	v, _ := newViewer(t)

	state, err := v.Start(ctx, "s1")
	require.NoError(t, err)
	state, _ = v.GoTo(ctx, state, 2)
	state, _ = v.GoTo(ctx, state, 3)
	require.Equal(t, []domain.SceneID{1, 2}, state.History.Entries)

	state, err = v.RemoveScene(ctx, state, 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.SceneID{1}, state.History.Entries)

	state, err = v.Back(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, domain.SceneID(1), state.CurrentScene)
}

func TestViewer_RemovedCurrentSceneFallsBackToEntry(t *testing.T) {
	ctx := context.Background()
	v, loader := newViewer(t)

	state, _ := v.Start(ctx, "s1")
	state, _ = v.GoTo(ctx, state, 3)

	require.NoError(t, loader.RemoveScene(ctx, 3))

	view, err := v.Render(ctx, state)
	require.NoError(t, err)
	assert.True(t, view.Empty(), "a scene missing from the tour renders nothing")

	state, err = v.Observe(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, domain.SceneID(1), state.CurrentScene)
	assert.Equal(t, []domain.SceneID{1}, state.History.Entries, "valid entries survive the fallback")
}

func TestViewer_AddScene(t *testing.T) {
	ctx := context.Background()
	v, loader := newViewer(t)

	state, _ := v.Start(ctx, "s1")
	state, err := v.AddScene(ctx, state, domain.Scene{ID: 4, Name: "Attic"})
	require.NoError(t, err)
	assert.Equal(t, domain.SceneID(1), state.CurrentScene, "adding a scene does not navigate")

	tour, err := loader.Load(ctx)
	require.NoError(t, err)
	_, ok := tour.Scene(4)
	assert.True(t, ok)

	state, err = v.GoTo(ctx, state, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.SceneID(4), state.CurrentScene)
}

func TestViewer_Overlays(t *testing.T) {
	ctx := context.Background()
	v, _ := newViewer(t)

	state, _ := v.Start(ctx, "s1")
	state, _ = v.GoTo(ctx, state, 2)
	state, err := v.SelectInteraction(ctx, state, 2)
	require.NoError(t, err)

	view, err := v.Render(ctx, state)
	require.NoError(t, err)
	require.NotNil(t, view.Interaction)
	assert.Equal(t, "Info", view.Interaction.Label)

	state = v.ShowTextDialog(ctx, state, "About")
	assert.Equal(t, domain.OverlayTextDialog, state.Overlay.Kind)

	state = v.HideTextDialog(ctx, state)
	state = v.HideDescription(ctx, state)
	assert.True(t, state.Overlay.DescriptionHidden)
	state = v.ShowDescription(ctx, state)
	assert.False(t, state.Overlay.DescriptionHidden)
	assert.Equal(t, domain.OverlayNone, v.HideInteractionDialog(ctx, state).Overlay.Kind)
}

func TestViewer_EmptyTour(t *testing.T) {
	v, err := vista.New("", vista.WithLoader(memory.NewLoader("Empty")))
	require.NoError(t, err)

	_, err = v.Start(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrEmptyTour)
}

func TestViewer_PathLoaders(t *testing.T) {
	ctx := context.Background()

	for _, path := range []string{"testdata/museum", "testdata/museum.yaml"} {
		t.Run(path, func(t *testing.T) {
			v, err := vista.New(path, vista.WithAssetBase("https://cdn.example/tour"))
			require.NoError(t, err)

			state, err := v.Start(ctx, "s1")
			require.NoError(t, err)
			state, err = v.SelectInteraction(ctx, state, 0)
			require.NoError(t, err)
			assert.Equal(t, domain.SceneID(2), state.CurrentScene)

			view, err := v.Render(ctx, state)
			require.NoError(t, err)
			assert.Equal(t, "https://cdn.example/tour/images/gallery.jpg", view.ImageSrc)
			assert.Equal(t, []domain.SceneID{1}, view.History)
		})
	}
}

func TestViewer_ReadOnlyTour(t *testing.T) {
	ctx := context.Background()
	v, err := vista.New("testdata/museum.yaml")
	require.NoError(t, err)

	state, err := v.Start(ctx, "s1")
	require.NoError(t, err)

	_, err = v.AddScene(ctx, state, domain.Scene{ID: 9})
	assert.ErrorIs(t, err, domain.ErrReadOnlyTour)

	_, err = v.RemoveScene(ctx, state, 1)
	assert.ErrorIs(t, err, domain.ErrReadOnlyTour)

	_, err = v.Watch(ctx)
	assert.Error(t, err)
}

func TestNew_RequiresPathOrLoader(t *testing.T) {
	_, err := vista.New("")
	assert.Error(t, err)

	_, err = vista.New("testdata/does-not-exist")
	assert.Error(t, err)
}
