package runtime

import (
	"fmt"

	"github.com/aretw0/vista/pkg/domain"
)

// Registry is a per-cycle, read-only snapshot of the host's scene list.
// Interactions are classified once when the snapshot is built.
type Registry struct {
	scenes       []domain.Scene
	index        map[domain.SceneID]int
	interactions map[domain.SceneID][]domain.Interaction
}

// NewRegistry indexes scenes and classifies their interactions.
// On duplicate IDs the first scene wins.
func NewRegistry(router *Router, scenes []domain.Scene) *Registry {
	r := &Registry{
		scenes:       scenes,
		index:        make(map[domain.SceneID]int, len(scenes)),
		interactions: make(map[domain.SceneID][]domain.Interaction, len(scenes)),
	}
	for i, s := range scenes {
		if _, dup := r.index[s.ID]; dup {
			continue
		}
		r.index[s.ID] = i

		classified := make([]domain.Interaction, 0, len(s.Interactions))
		for idx, params := range s.Interactions {
			classified = append(classified, router.Classify(idx, params))
		}
		r.interactions[s.ID] = classified
	}
	return r
}

// Contains reports whether id is part of the registry.
func (r *Registry) Contains(id domain.SceneID) bool {
	_, ok := r.index[id]
	return ok
}

// Lookup returns the scene with the given ID or ErrUnknownScene.
func (r *Registry) Lookup(id domain.SceneID) (*domain.Scene, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownScene, id)
	}
	return &r.scenes[i], nil
}

// Interactions returns the classified interactions of a scene.
func (r *Registry) Interactions(id domain.SceneID) []domain.Interaction {
	return r.interactions[id]
}

// Scenes returns the scenes in host order.
func (r *Registry) Scenes() []domain.Scene {
	return r.scenes
}
