package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/vista/internal/runtime"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/aretw0/vista/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lobby  domain.SceneID = 1
	hall   domain.SceneID = 2
	garden domain.SceneID = 3
	roof   domain.SceneID = 4
)

func fixtureScenes() []domain.Scene {
	return []domain.Scene{
		{
			ID: lobby, Name: "Lobby", ImagePath: "images/lobby.jpg", Description: "Welcome to the lobby",
			Interactions: []domain.InteractionParams{
				{Label: "To hall", Action: domain.Action{Library: "H5P.GoToScene 1.0", Params: map[string]any{"nextSceneId": "2"}}},
				{Label: "Guide", Action: domain.Action{Library: "H5P.Text 1.2", Params: map[string]any{"text": "Hi"}}},
				{Label: "Music", Action: domain.Action{Library: "H5P.Audio 1.4"}},
				{Label: "Broken", Action: domain.Action{Library: "not-a-library"}},
				{Label: "Back", Action: domain.Action{Library: "H5P.GoToScene 1.0", Params: map[string]any{"nextSceneId": -1}}},
				{Label: "Nowhere", Action: domain.Action{Library: "H5P.GoToScene 1.0", Params: map[string]any{"nextSceneId": "99"}}},
			},
		},
		{ID: hall, Name: "Hall", ImagePath: "images/hall.jpg"},
		{ID: garden, Name: "Garden"},
		{ID: roof, Name: "Roof"},
	}
}

// host plays the role of the embedding application: it owns the current
// scene and the scene list, applies commands and re-runs observation.
type host struct {
	t       *testing.T
	engine  *runtime.Engine
	scenes  []domain.Scene
	current domain.SceneID
	state   *domain.State
}

func newHost(t *testing.T, opts ...runtime.EngineOption) *host {
	h := &host{
		t:       t,
		engine:  runtime.NewEngine(opts...),
		scenes:  fixtureScenes(),
		current: lobby,
		state:   domain.NewState("test"),
	}
	h.observe()
	return h
}

func (h *host) cycle() domain.Cycle {
	return domain.Cycle{CurrentScene: h.current, Scenes: h.scenes}
}

func (h *host) observe() {
	h.state = h.engine.Observe(context.Background(), h.state, h.cycle())
}

func (h *host) apply(state *domain.State, cmds []domain.Command) {
	h.state = state
	for _, cmd := range cmds {
		if cmd.Type == domain.CommandSetCurrentScene {
			h.current = cmd.SceneID
		}
	}
	h.observe()
}

func (h *host) goTo(id domain.SceneID) {
	h.apply(h.engine.GoTo(context.Background(), h.state, h.cycle(), id))
}

func (h *host) back() {
	h.apply(h.engine.Back(context.Background(), h.state, h.cycle()))
}

func (h *host) remove(id domain.SceneID) {
	kept := h.scenes[:0:0]
	for _, s := range h.scenes {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	h.scenes = kept
}

func TestEngine_StartsIdle(t *testing.T) {
	e := runtime.NewEngine()
	state := domain.NewState("s")

	view := e.Render(context.Background(), state, domain.Cycle{CurrentScene: lobby, Scenes: fixtureScenes()})
	assert.True(t, view.Empty(), "idle renders nothing")

	next := e.Observe(context.Background(), state, domain.Cycle{CurrentScene: 42, Scenes: fixtureScenes()})
	assert.Equal(t, domain.PhaseIdle, next.Phase, "unknown scene keeps the viewer idle")

	next = e.Observe(context.Background(), state, domain.Cycle{CurrentScene: lobby, Scenes: fixtureScenes()})
	assert.Equal(t, domain.PhaseViewing, next.Phase)
	assert.Equal(t, lobby, next.CurrentScene)
	assert.Empty(t, next.History.Entries, "the first scene is not a transition")
}

func TestEngine_BackForwardRoundTrip(t *testing.T) {
	h := newHost(t)

	h.goTo(hall)
	assert.Equal(t, []domain.SceneID{lobby}, h.state.History.Entries)

	h.goTo(garden)
	assert.Equal(t, []domain.SceneID{lobby, hall}, h.state.History.Entries)

	next, cmds := h.engine.Back(context.Background(), h.state, h.cycle())
	require.Equal(t, []domain.Command{domain.SetCurrentScene(hall)}, cmds)
	assert.Equal(t, []domain.SceneID{lobby}, next.History.Entries)
	assert.True(t, next.History.SkipNext)

	h.apply(next, cmds)
	assert.Equal(t, hall, h.current)
	assert.Equal(t, []domain.SceneID{lobby}, h.state.History.Entries, "going back must not re-push")
	assert.False(t, h.state.History.SkipNext)

	// Branching after going back truncates the forward path.
	h.goTo(roof)
	assert.Equal(t, []domain.SceneID{lobby, hall}, h.state.History.Entries)

	h.back()
	h.back()
	assert.Equal(t, lobby, h.current)
	assert.Empty(t, h.state.History.Entries)
}

func TestEngine_BackWithEmptyHistory(t *testing.T) {
	h := newHost(t)
	before := h.state.Snapshot()

	next, cmds := h.engine.Back(context.Background(), h.state, h.cycle())
	assert.Empty(t, cmds)
	assert.Equal(t, before, next)
	assert.False(t, next.History.SkipNext)
	assert.Equal(t, lobby, h.current)
}

func TestEngine_GoToUnknownScene(t *testing.T) {
	h := newHost(t)
	before := h.state.Snapshot()

	next, cmds := h.engine.GoTo(context.Background(), h.state, h.cycle(), 99)
	assert.Empty(t, cmds)
	assert.Equal(t, before, next)
}

func TestEngine_DeletionPruning(t *testing.T) {
	h := newHost(t)
	h.goTo(hall)
	h.goTo(garden)
	h.goTo(roof)
	require.Equal(t, []domain.SceneID{lobby, hall, garden}, h.state.History.Entries)

	h.remove(hall)
	h.observe()
	assert.Equal(t, []domain.SceneID{lobby, garden}, h.state.History.Entries)

	// Observing again with the same registry changes nothing.
	once := h.state.Snapshot()
	h.observe()
	assert.Equal(t, once, h.state)

	// Going back never lands on a deleted scene.
	h.back()
	assert.Equal(t, garden, h.current)
	assert.Equal(t, []domain.SceneID{lobby}, h.state.History.Entries)
}

func TestEngine_PruneStripsTrailingCurrent(t *testing.T) {
	e := runtime.NewEngine()
	state := domain.NewState("s")
	state.Phase = domain.PhaseViewing
	state.CurrentScene = hall
	state.History.Entries = []domain.SceneID{lobby, hall, hall, roof}

	scenes := fixtureScenes()[:3]
	next := e.Observe(context.Background(), state, domain.Cycle{CurrentScene: hall, Scenes: scenes})
	assert.Equal(t, []domain.SceneID{lobby}, next.History.Entries)
	assert.Equal(t, []domain.SceneID{lobby, hall, hall, roof}, state.History.Entries, "input state must not be mutated")
}

func TestEngine_ForwardRevisitKeepsHistory(t *testing.T) {
	h := newHost(t)
	h.goTo(hall)
	assert.Equal(t, []domain.SceneID{lobby}, h.state.History.Entries)

	// Returning to the lobby through a hotspot is a forward move.
	h.goTo(lobby)
	assert.Equal(t, []domain.SceneID{lobby, hall}, h.state.History.Entries)

	h.back()
	assert.Equal(t, hall, h.current)
	h.back()
	assert.Equal(t, lobby, h.current)
	assert.Empty(t, h.state.History.Entries)
}

func TestEngine_PruneBeforeBack(t *testing.T) {
	h := newHost(t)
	h.goTo(hall)
	h.goTo(garden)

	// The registry changes and the user presses back in the same cycle.
	h.remove(hall)
	next, cmds := h.engine.Back(context.Background(), h.state, h.cycle())
	require.Equal(t, []domain.Command{domain.SetCurrentScene(lobby)}, cmds)
	assert.Empty(t, next.History.Entries)
}

func TestEngine_SelectInteraction(t *testing.T) {
	ctx := context.Background()

	t.Run("go to scene", func(t *testing.T) {
		h := newHost(t)
		next, cmds := h.engine.SelectInteraction(ctx, h.state, h.cycle(), 0)
		assert.Equal(t, []domain.Command{domain.SetCurrentScene(hall)}, cmds)

		h.apply(next, cmds)
		assert.Equal(t, []domain.SceneID{lobby}, h.state.History.Entries)
	})

	t.Run("generic opens dialog", func(t *testing.T) {
		h := newHost(t)
		next, cmds := h.engine.SelectInteraction(ctx, h.state, h.cycle(), 1)
		assert.Empty(t, cmds)
		assert.Equal(t, domain.OverlayInteractionDialog, next.Overlay.Kind)
		assert.Equal(t, lobby, next.Overlay.SceneID)
		assert.Equal(t, 1, next.Overlay.InteractionIndex)
	})

	t.Run("audio is a silent no-op", func(t *testing.T) {
		h := newHost(t)
		next, cmds := h.engine.SelectInteraction(ctx, h.state, h.cycle(), 2)
		assert.Empty(t, cmds)
		assert.Equal(t, h.state, next)
	})

	t.Run("malformed action is a no-op", func(t *testing.T) {
		h := newHost(t)
		next, cmds := h.engine.SelectInteraction(ctx, h.state, h.cycle(), 3)
		assert.Empty(t, cmds)
		assert.Equal(t, h.state, next)
	})

	t.Run("previous scene target goes back", func(t *testing.T) {
		h := newHost(t)
		h.goTo(hall)
		h.goTo(lobby)
		require.Equal(t, []domain.SceneID{lobby, hall}, h.state.History.Entries)

		next, cmds := h.engine.SelectInteraction(ctx, h.state, h.cycle(), 4)
		assert.Equal(t, []domain.Command{domain.SetCurrentScene(hall)}, cmds)
		assert.True(t, next.History.SkipNext)

		h.apply(next, cmds)
		assert.Equal(t, []domain.SceneID{lobby}, h.state.History.Entries)
	})

	t.Run("target outside registry is a no-op", func(t *testing.T) {
		h := newHost(t)
		_, cmds := h.engine.SelectInteraction(ctx, h.state, h.cycle(), 5)
		assert.Empty(t, cmds)
	})

	t.Run("index out of range is a no-op", func(t *testing.T) {
		h := newHost(t)
		next, cmds := h.engine.SelectInteraction(ctx, h.state, h.cycle(), 42)
		assert.Empty(t, cmds)
		assert.Equal(t, h.state, next)
	})
}

func TestEngine_OverlayExclusivity(t *testing.T) {
	ctx := context.Background()
	h := newHost(t)

	state, _ := h.engine.SelectInteraction(ctx, h.state, h.cycle(), 1)
	require.Equal(t, domain.OverlayInteractionDialog, state.Overlay.Kind)

	state = h.engine.ShowTextDialog(ctx, state, "Welcome to the lobby")
	assert.Equal(t, domain.OverlayTextDialog, state.Overlay.Kind)

	view := h.engine.Render(ctx, state, h.cycle())
	assert.False(t, view.ShowDescription, "description is suppressed while a text dialog is open")
	assert.Nil(t, view.Interaction)

	state, _ = h.engine.SelectInteraction(ctx, state, h.cycle(), 1)
	assert.Equal(t, domain.OverlayInteractionDialog, state.Overlay.Kind)
	assert.Empty(t, state.Overlay.Text)

	state = h.engine.HideInteractionDialog(ctx, state)
	state = h.engine.ShowTextDialog(ctx, state, "")
	assert.Equal(t, domain.OverlayTextDialog, state.Overlay.Kind)
	assert.Empty(t, state.Overlay.Text, "reopening shows empty, not stale, content")

	state = h.engine.HideTextDialog(ctx, state)
	view = h.engine.Render(ctx, state, h.cycle())
	assert.True(t, view.ShowDescription)
	assert.Equal(t, domain.OverlayDescription, view.Overlay.Kind)
}

func TestEngine_DialogPrunedWithItsScene(t *testing.T) {
	ctx := context.Background()
	h := newHost(t)

	h.state, _ = h.engine.SelectInteraction(ctx, h.state, h.cycle(), 1)
	h.goTo(hall)
	require.Equal(t, domain.OverlayInteractionDialog, h.state.Overlay.Kind)

	h.remove(lobby)
	h.observe()
	assert.Equal(t, domain.OverlayNone, h.state.Overlay.Kind)
	assert.Empty(t, h.state.History.Entries)
}

func TestEngine_Render(t *testing.T) {
	ctx := context.Background()
	resolver := ports.AssetResolverFunc(func(p string) string { return "https://cdn.example/" + p })
	h := newHost(t, runtime.WithAssetResolver(resolver))

	cycle := h.cycle()
	cycle.Audio = []domain.AudioTrack{{Path: "audio/ambient.mp3"}}

	view := h.engine.Render(ctx, h.state, cycle)
	require.False(t, view.Empty())
	assert.Equal(t, lobby, view.Scene.ID)
	assert.Equal(t, "https://cdn.example/images/lobby.jpg", view.ImageSrc)
	assert.Equal(t, "https://cdn.example/audio/ambient.mp3", view.AudioSrc)
	assert.True(t, view.ShowDescription)
	assert.False(t, view.CanGoBack)
	assert.Len(t, view.Interactions, 6)
	require.Len(t, view.Scenes, 4)
	assert.True(t, view.Scenes[0].Active)
	assert.False(t, view.Scenes[1].Active)
	assert.Equal(t, "", view.Scenes[2].ImageSrc, "missing assets stay empty")

	h.goTo(hall)
	view = h.engine.Render(ctx, h.state, h.cycle())
	assert.True(t, view.CanGoBack)
	assert.Equal(t, []domain.SceneID{lobby}, view.History)
	assert.False(t, view.ShowDescription, "hall has no description")
	assert.Empty(t, view.AudioSrc)

	unknown := h.cycle()
	unknown.CurrentScene = 99
	assert.True(t, h.engine.Render(ctx, h.state, unknown).Empty())
}

func TestEngine_RenderOpenInteraction(t *testing.T) {
	ctx := context.Background()
	h := newHost(t)

	state, _ := h.engine.SelectInteraction(ctx, h.state, h.cycle(), 1)
	view := h.engine.Render(ctx, state, h.cycle())

	require.NotNil(t, view.Interaction)
	assert.Equal(t, "Guide", view.Interaction.Label)
	assert.Equal(t, domain.KindGeneric, view.Interaction.Kind)
	assert.True(t, view.ShowDescription, "description may coexist with an interaction dialog")
}

func TestEngine_AddSceneIsPassThrough(t *testing.T) {
	h := newHost(t)
	scene := domain.Scene{ID: 10, Name: "Attic"}

	next, cmds := h.engine.AddScene(context.Background(), h.state, scene)
	require.Len(t, cmds, 1)
	assert.Equal(t, domain.CommandAddScene, cmds[0].Type)
	assert.Equal(t, domain.SceneID(10), cmds[0].SceneID)
	assert.Equal(t, h.state, next)
}

func TestEngine_Hooks(t *testing.T) {
	var (
		entered []domain.SceneID
		backs   int
		left    int
		pruned  int
		dialogs []domain.OverlayKind
		routed  []string
	)
	hooks := domain.LifecycleHooks{
		OnSceneEnter: func(ctx context.Context, e *domain.SceneEvent) {
			entered = append(entered, e.SceneID)
			if e.Back {
				backs++
			}
		},
		OnSceneLeave:    func(ctx context.Context, e *domain.SceneEvent) { left++ },
		OnHistoryPruned: func(ctx context.Context, e *domain.HistoryEvent) { pruned += e.Removed },
		OnOverlayChange: func(ctx context.Context, e *domain.OverlayEvent) { dialogs = append(dialogs, e.Kind) },
		OnInteraction:   func(ctx context.Context, e *domain.InteractionEvent) { routed = append(routed, e.Decision) },
	}

	ctx := context.Background()
	h := newHost(t, runtime.WithLifecycleHooks(hooks))
	h.apply(h.engine.SelectInteraction(ctx, h.state, h.cycle(), 0))
	h.back()
	h.state, _ = h.engine.SelectInteraction(ctx, h.state, h.cycle(), 1)
	h.state = h.engine.HideInteractionDialog(ctx, h.state)
	h.goTo(garden)
	h.remove(lobby)
	h.observe()

	assert.Equal(t, []domain.SceneID{lobby, hall, lobby, garden}, entered)
	assert.Equal(t, 1, backs)
	assert.Equal(t, 3, left)
	assert.Equal(t, 1, pruned)
	assert.Equal(t, []domain.OverlayKind{domain.OverlayInteractionDialog, domain.OverlayNone}, dialogs)
	assert.Equal(t, []string{"navigate", "open_dialog"}, routed)
}
