package ports

import (
	"context"

	"github.com/aretw0/vista/pkg/domain"
)

// TourLoader defines how the host retrieves the scene registry.
// It is called once per cycle, so implementations should be cheap or cache.
type TourLoader interface {
	Load(ctx context.Context) (*domain.Tour, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
type Watchable interface {
	// Watch returns a channel that is signaled with the changed document ID
	// whenever the underlying tour is edited.
	Watch(ctx context.Context) (<-chan string, error)
}

// TourEditor is implemented by loaders that accept authoring edits.
type TourEditor interface {
	PutScene(ctx context.Context, scene domain.Scene) error
	RemoveScene(ctx context.Context, id domain.SceneID) error
}
