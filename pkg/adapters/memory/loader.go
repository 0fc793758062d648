package memory

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/aretw0/vista/pkg/domain"
)

// Loader implements ports.TourLoader, ports.TourEditor and ports.Watchable
// over a tour held in memory. It is the authoring backend used by tests and
// by hosts that build scenes programmatically.
type Loader struct {
	mu       sync.RWMutex
	tour     domain.Tour
	watchers []chan string
}

// NewLoader creates a loader for the given scenes.
func NewLoader(title string, scenes ...domain.Scene) *Loader {
	return &Loader{
		tour: domain.Tour{Title: title, Scenes: slices.Clone(scenes)},
	}
}

// NewFromTour creates a loader seeded with a copy of tour.
func NewFromTour(tour domain.Tour) *Loader {
	tour.Scenes = slices.Clone(tour.Scenes)
	tour.Audio = slices.Clone(tour.Audio)
	return &Loader{tour: tour}
}

// Load returns a copy of the current tour.
func (l *Loader) Load(ctx context.Context) (*domain.Tour, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tour := l.tour
	tour.Scenes = slices.Clone(l.tour.Scenes)
	tour.Audio = slices.Clone(l.tour.Audio)
	return &tour, nil
}

// PutScene adds scene or replaces the scene with the same ID in place.
func (l *Loader) PutScene(ctx context.Context, scene domain.Scene) error {
	l.mu.Lock()
	i := slices.IndexFunc(l.tour.Scenes, func(s domain.Scene) bool { return s.ID == scene.ID })
	if i >= 0 {
		l.tour.Scenes[i] = scene
	} else {
		l.tour.Scenes = append(l.tour.Scenes, scene)
	}
	l.mu.Unlock()

	l.notify(strconv.Itoa(int(scene.ID)))
	return nil
}

// RemoveScene deletes a scene. Removing an unknown scene returns ErrUnknownScene.
func (l *Loader) RemoveScene(ctx context.Context, id domain.SceneID) error {
	l.mu.Lock()
	before := len(l.tour.Scenes)
	l.tour.Scenes = slices.DeleteFunc(l.tour.Scenes, func(s domain.Scene) bool { return s.ID == id })
	removed := len(l.tour.Scenes) != before
	l.mu.Unlock()

	if !removed {
		return fmt.Errorf("%w: %d", domain.ErrUnknownScene, id)
	}
	l.notify(strconv.Itoa(int(id)))
	return nil
}

// Watch returns a channel signaled with the scene ID of every edit.
// The channel is closed when ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, 16)

	l.mu.Lock()
	l.watchers = append(l.watchers, ch)
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		l.mu.Lock()
		defer l.mu.Unlock()
		l.watchers = slices.DeleteFunc(l.watchers, func(w chan string) bool { return w == ch })
		close(ch)
	}()
	return ch, nil
}

func (l *Loader) notify(id string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, w := range l.watchers {
		select {
		case w <- id:
		default:
			// Slow watcher, drop the signal. The next Load sees the edit anyway.
		}
	}
}
