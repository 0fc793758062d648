package vista

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/loam"
	"github.com/aretw0/vista/internal/logging"
	"github.com/aretw0/vista/internal/runtime"
	"github.com/aretw0/vista/pkg/adapters/assets"
	"github.com/aretw0/vista/pkg/adapters/file"
	loamAdapter "github.com/aretw0/vista/pkg/adapters/loam"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/aretw0/vista/pkg/ports"
)

// Viewer is the high-level entry point for the vista library.
// It plays the host role: it owns the tour through a TourLoader, applies the
// commands returned by the core and runs an observation cycle after each one.
type Viewer struct {
	runtime   *runtime.Engine
	loader    ports.TourLoader
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	resolver  ports.AssetResolver
	assetBase string
	Name      string
}

// Option defines a functional option for configuring the Viewer.
type Option func(*Viewer)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(v *Viewer) {
		v.hooks = hooks
	}
}

// WithLoader injects a custom TourLoader, bypassing path-based loading.
func WithLoader(l ports.TourLoader) Option {
	return func(v *Viewer) {
		v.loader = l
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Viewer) {
		v.logger = logger
	}
}

// WithAssetResolver sets how image and audio paths are turned into sources.
func WithAssetResolver(r ports.AssetResolver) Option {
	return func(v *Viewer) {
		v.resolver = r
	}
}

// WithAssetBase resolves relative asset paths against base (a URL or directory).
// It is ignored when WithAssetResolver is given.
func WithAssetBase(base string) Option {
	return func(v *Viewer) {
		v.assetBase = base
	}
}

// New initializes a Viewer.
// A directory tourPath is read as a Loam repository of scene documents, a file
// as a single tour document. If WithLoader is given, tourPath is only a label.
func New(tourPath string, opts ...Option) (*Viewer, error) {
	v := &Viewer{}
	for _, opt := range opts {
		opt(v)
	}

	if v.loader == nil {
		if tourPath == "" {
			return nil, fmt.Errorf("tourPath is required when no custom loader is provided")
		}
		loader, err := loaderFor(tourPath)
		if err != nil {
			return nil, err
		}
		v.loader = loader
	}
	if tourPath != "" {
		v.Name = filepath.Base(tourPath)
	}

	if v.resolver == nil && v.assetBase != "" {
		r, err := assets.NewResolver(v.assetBase)
		if err != nil {
			return nil, fmt.Errorf("invalid asset base: %w", err)
		}
		v.resolver = r
	}

	if v.logger == nil {
		v.logger = logging.NewNop()
	}
	if v.Name != "" {
		v.logger = v.logger.With("tour", v.Name)
	}

	v.runtime = runtime.NewEngine(
		runtime.WithLogger(v.logger),
		runtime.WithLifecycleHooks(v.hooks),
		runtime.WithAssetResolver(v.resolver),
	)
	return v, nil
}

func loaderFor(tourPath string) (ports.TourLoader, error) {
	absPath, err := filepath.Abs(tourPath)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open tour: %w", err)
	}
	if !info.IsDir() {
		return file.NewLoader(absPath), nil
	}

	// Strict mode hands numbers over as json.Number; the viewer never edits
	// the scene documents, so the repository is opened read-only.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return loamAdapter.New(loam.NewTypedRepository[loamAdapter.SceneMetadata](repo)), nil
}

// Start creates the state of a new session positioned on the tour's entry scene.
func (v *Viewer) Start(ctx context.Context, sessionID string) (*domain.State, error) {
	tour, err := v.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := tour.EntryScene()
	if !ok {
		return nil, domain.ErrEmptyTour
	}
	return v.runtime.Observe(ctx, domain.NewState(sessionID), tour.Cycle(entry)), nil
}

// Observe runs an observation cycle against the current tour, e.g. after the
// tour was edited. If the current scene was removed the viewer moves to the
// entry scene.
func (v *Viewer) Observe(ctx context.Context, state *domain.State) (*domain.State, error) {
	tour, err := v.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return v.observe(ctx, tour, state, v.current(tour, state)), nil
}

// Back returns to the previous scene, if any.
func (v *Viewer) Back(ctx context.Context, state *domain.State) (*domain.State, error) {
	tour, err := v.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, cmds := v.runtime.Back(ctx, state, tour.Cycle(v.current(tour, state)))
	return v.apply(ctx, tour, next, cmds)
}

// GoTo moves to scene id. Unknown scenes are ignored.
func (v *Viewer) GoTo(ctx context.Context, state *domain.State, id domain.SceneID) (*domain.State, error) {
	tour, err := v.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, cmds := v.runtime.GoTo(ctx, state, tour.Cycle(v.current(tour, state)), id)
	return v.apply(ctx, tour, next, cmds)
}

// SelectInteraction activates interaction index of the current scene.
func (v *Viewer) SelectInteraction(ctx context.Context, state *domain.State, index int) (*domain.State, error) {
	tour, err := v.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, cmds := v.runtime.SelectInteraction(ctx, state, tour.Cycle(v.current(tour, state)), index)
	return v.apply(ctx, tour, next, cmds)
}

// ShowDescription re-enables the description callout.
func (v *Viewer) ShowDescription(ctx context.Context, state *domain.State) *domain.State {
	return v.runtime.ShowDescription(ctx, state)
}

// HideDescription collapses the description callout.
func (v *Viewer) HideDescription(ctx context.Context, state *domain.State) *domain.State {
	return v.runtime.HideDescription(ctx, state)
}

// ShowTextDialog opens a text dialog with the given content.
func (v *Viewer) ShowTextDialog(ctx context.Context, state *domain.State, text string) *domain.State {
	return v.runtime.ShowTextDialog(ctx, state, text)
}

// HideTextDialog closes the text dialog.
func (v *Viewer) HideTextDialog(ctx context.Context, state *domain.State) *domain.State {
	return v.runtime.HideTextDialog(ctx, state)
}

// HideInteractionDialog closes the interaction dialog.
func (v *Viewer) HideInteractionDialog(ctx context.Context, state *domain.State) *domain.State {
	return v.runtime.HideInteractionDialog(ctx, state)
}

// AddScene adds a scene to the tour. The loader must implement ports.TourEditor.
func (v *Viewer) AddScene(ctx context.Context, state *domain.State, scene domain.Scene) (*domain.State, error) {
	tour, err := v.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, cmds := v.runtime.AddScene(ctx, state, scene)
	return v.apply(ctx, tour, next, cmds)
}

// RemoveScene deletes a scene from the tour and re-observes state, pruning
// the scene from its history.
func (v *Viewer) RemoveScene(ctx context.Context, state *domain.State, id domain.SceneID) (*domain.State, error) {
	editor, ok := v.loader.(ports.TourEditor)
	if !ok {
		return nil, domain.ErrReadOnlyTour
	}
	if err := editor.RemoveScene(ctx, id); err != nil {
		return nil, err
	}
	return v.Observe(ctx, state)
}

// Render computes the view for state without changing it.
func (v *Viewer) Render(ctx context.Context, state *domain.State) (domain.View, error) {
	tour, err := v.loader.Load(ctx)
	if err != nil {
		return domain.View{}, err
	}
	return v.runtime.Render(ctx, state, tour.Cycle(state.CurrentScene)), nil
}

// Inspect returns the full tour for visualization or introspection tools.
func (v *Viewer) Inspect(ctx context.Context) (*domain.Tour, error) {
	return v.loader.Load(ctx)
}

// Watch returns a channel that signals when the underlying tour changes.
// Returns error if the loader does not support watching.
func (v *Viewer) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := v.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying TourLoader.
func (v *Viewer) Loader() ports.TourLoader {
	return v.loader
}

// Engine returns the stateless core, for adapters that drive it directly.
func (v *Viewer) Engine() ports.StatelessEngine {
	return v.runtime
}

// current is the host-owned current scene: the last observed scene while it
// is still part of the tour, the entry scene otherwise.
func (v *Viewer) current(tour *domain.Tour, state *domain.State) domain.SceneID {
	if state != nil && state.Viewing() {
		if _, ok := tour.Scene(state.CurrentScene); ok {
			return state.CurrentScene
		}
	}
	entry, _ := tour.EntryScene()
	return entry
}

func (v *Viewer) observe(ctx context.Context, tour *domain.Tour, state *domain.State, current domain.SceneID) *domain.State {
	return v.runtime.Observe(ctx, state, tour.Cycle(current))
}

// apply executes the commands returned by the core, then observes the result.
func (v *Viewer) apply(ctx context.Context, tour *domain.Tour, state *domain.State, cmds []domain.Command) (*domain.State, error) {
	current := v.current(tour, state)
	for _, cmd := range cmds {
		switch cmd.Type {
		case domain.CommandSetCurrentScene:
			if _, ok := tour.Scene(cmd.SceneID); !ok {
				v.logger.Debug("rejected current scene", "scene", cmd.SceneID)
				continue
			}
			current = cmd.SceneID
		case domain.CommandAddScene:
			editor, ok := v.loader.(ports.TourEditor)
			if !ok {
				return nil, domain.ErrReadOnlyTour
			}
			if err := editor.PutScene(ctx, *cmd.Scene); err != nil {
				return nil, fmt.Errorf("failed to add scene: %w", err)
			}
			reloaded, err := v.loader.Load(ctx)
			if err != nil {
				return nil, err
			}
			tour = reloaded
		}
	}
	return v.observe(ctx, tour, state, current), nil
}
