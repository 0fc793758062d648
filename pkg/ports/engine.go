package ports

import (
	"context"

	"github.com/aretw0/vista/pkg/domain"
)

// StatelessEngine defines the navigation core as seen by hosts.
// Every method takes the previous state and returns a new one; the input is never mutated.
// Failures are recovered inside the core and surface only as "nothing changed".
type StatelessEngine interface {
	// Observe runs one observation cycle: prune history against the registry,
	// then record the change of the current scene, if any.
	Observe(ctx context.Context, state *domain.State, cycle domain.Cycle) *domain.State

	// SelectInteraction routes an interaction of the current scene.
	SelectInteraction(ctx context.Context, state *domain.State, cycle domain.Cycle, index int) (*domain.State, []domain.Command)

	// Back requests navigation to the last scene in history.
	Back(ctx context.Context, state *domain.State, cycle domain.Cycle) (*domain.State, []domain.Command)

	// GoTo requests navigation to a scene of the registry.
	GoTo(ctx context.Context, state *domain.State, cycle domain.Cycle, id domain.SceneID) (*domain.State, []domain.Command)

	// Render calculates the view for a state without advancing it.
	Render(ctx context.Context, state *domain.State, cycle domain.Cycle) domain.View
}
