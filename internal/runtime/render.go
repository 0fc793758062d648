package runtime

import (
	"context"

	"github.com/aretw0/vista/pkg/domain"
)

// Render calculates the view for a state without advancing it.
// It returns an empty view while idle or when the current scene is not in the registry.
func (e *Engine) Render(ctx context.Context, state *domain.State, cycle domain.Cycle) domain.View {
	reg := NewRegistry(e.router, cycle.Scenes)
	scene, err := reg.Lookup(cycle.CurrentScene)
	if err != nil || state == nil || !state.Viewing() {
		return domain.View{}
	}

	history := make([]domain.SceneID, len(state.History.Entries))
	copy(history, state.History.Entries)

	view := domain.View{
		Scene:        scene,
		ImageSrc:     e.resolve(scene.ImagePath),
		Description:  scene.Description,
		Interactions: reg.Interactions(scene.ID),
		CanGoBack:    len(history) > 0,
		History:      history,
		Overlay:      state.Overlay,
	}

	if audio := cycle.AmbientAudio(); audio != "" {
		view.AudioSrc = e.resolve(audio)
	} else if scene.HasAudio() {
		view.AudioSrc = e.resolve(scene.Audio.Path)
	}

	view.ShowDescription = state.Overlay.DescriptionVisible(scene.Description)
	if view.Overlay.Kind == domain.OverlayNone && view.ShowDescription {
		view.Overlay.Kind = domain.OverlayDescription
		view.Overlay.Text = scene.Description
	}

	if state.Overlay.Kind == domain.OverlayInteractionDialog {
		interactions := reg.Interactions(state.Overlay.SceneID)
		if i := state.Overlay.InteractionIndex; i >= 0 && i < len(interactions) {
			in := interactions[i]
			view.Interaction = &in
		}
	}

	view.Scenes = make([]domain.SceneView, 0, len(reg.Scenes()))
	for _, s := range reg.Scenes() {
		view.Scenes = append(view.Scenes, domain.SceneView{
			ID:       s.ID,
			Name:     s.Name,
			ImageSrc: e.resolve(s.ImagePath),
			Active:   s.ID == scene.ID,
		})
	}

	return view
}

func (e *Engine) resolve(path string) string {
	if path == "" {
		return ""
	}
	return e.resolver.Resolve(path)
}
