package runtime

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/vista/internal/logging"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/aretw0/vista/pkg/ports"
)

// Engine is the viewer controller. It is stateless: every call takes the
// previous State plus the host's Cycle and returns a new State and the
// commands the host should apply.
type Engine struct {
	router   *Router
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	resolver ports.AssetResolver
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithAssetResolver sets the resolver used for image and audio sources.
func WithAssetResolver(resolver ports.AssetResolver) EngineOption {
	return func(e *Engine) {
		if resolver != nil {
			e.resolver = resolver
		}
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		router:   NewRouter(),
		logger:   logging.NewNop(),
		resolver: ports.AssetResolverFunc(func(path string) string { return path }),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ ports.StatelessEngine = (*Engine)(nil)

// Observe runs one observation cycle. Pruning against the registry always
// happens before the scene change is considered, so a deleted scene can
// never be recorded or gone back to.
func (e *Engine) Observe(ctx context.Context, state *domain.State, cycle domain.Cycle) *domain.State {
	next := state.Snapshot()
	reg := NewRegistry(e.router, cycle.Scenes)
	log := logging.WithSession(e.logger, next.SessionID)

	e.prune(ctx, next, reg, cycle.CurrentScene)

	if !next.Viewing() {
		if !reg.Contains(cycle.CurrentScene) {
			return next
		}
		next.Phase = domain.PhaseViewing
		next.CurrentScene = cycle.CurrentScene
		e.emitSceneEnter(ctx, next.SessionID, cycle.CurrentScene, false)
		log.Debug("viewer started", "scene", cycle.CurrentScene)
		return next
	}

	previous := next.CurrentScene
	if previous == cycle.CurrentScene {
		return next
	}

	back := next.History.SkipNext
	switch {
	case back:
		next.History.Record(previous)
	case reg.Contains(previous):
		next.History.Record(previous)
	default:
		log.Debug("previous scene left the registry, not recorded", "scene", previous)
	}

	next.CurrentScene = cycle.CurrentScene
	e.emitSceneLeave(ctx, next.SessionID, previous)
	e.emitSceneEnter(ctx, next.SessionID, cycle.CurrentScene, back)
	log.Debug("scene changed", "from", previous, "to", cycle.CurrentScene, "back", back, "history", len(next.History.Entries))
	return next
}

// SelectInteraction routes interaction index of the current scene.
func (e *Engine) SelectInteraction(ctx context.Context, state *domain.State, cycle domain.Cycle, index int) (*domain.State, []domain.Command) {
	next := state.Snapshot()
	reg := NewRegistry(e.router, cycle.Scenes)
	log := logging.WithSession(e.logger, next.SessionID)
	e.prune(ctx, next, reg, cycle.CurrentScene)

	if _, err := reg.Lookup(cycle.CurrentScene); err != nil {
		log.Debug("interaction ignored", "index", index, "err", err)
		return next, nil
	}

	interactions := reg.Interactions(cycle.CurrentScene)
	decision, err := e.router.Resolve(interactions, index)
	if err != nil {
		log.Debug("interaction ignored", "scene", cycle.CurrentScene, "index", index, "err", err)
		return next, nil
	}
	e.emitInteraction(ctx, next.SessionID, cycle.CurrentScene, interactions[index], decision)

	switch decision.Kind {
	case DecisionNavigate:
		return e.navigate(ctx, next, reg, decision.Target)
	case DecisionOpenDialog:
		next.Overlay.ShowInteractionDialog(cycle.CurrentScene, decision.Index)
		e.emitOverlayChange(ctx, next.SessionID, next.Overlay.Kind)
		return next, nil
	default:
		// TODO: give audio hotspots playback semantics once the audio collaborator exposes a control API.
		log.Debug("audio interaction has no handler", "scene", cycle.CurrentScene, "index", index)
		return next, nil
	}
}

// Back requests navigation to the last scene in history and arms the skip
// flag, so the resulting scene change is not pushed again.
func (e *Engine) Back(ctx context.Context, state *domain.State, cycle domain.Cycle) (*domain.State, []domain.Command) {
	next := state.Snapshot()
	reg := NewRegistry(e.router, cycle.Scenes)
	e.prune(ctx, next, reg, cycle.CurrentScene)
	return e.back(next)
}

// GoTo requests navigation to id. Unknown scenes are ignored.
func (e *Engine) GoTo(ctx context.Context, state *domain.State, cycle domain.Cycle, id domain.SceneID) (*domain.State, []domain.Command) {
	next := state.Snapshot()
	reg := NewRegistry(e.router, cycle.Scenes)
	e.prune(ctx, next, reg, cycle.CurrentScene)
	return e.navigate(ctx, next, reg, id)
}

// ShowDescription re-enables the description callout.
func (e *Engine) ShowDescription(ctx context.Context, state *domain.State) *domain.State {
	next := state.Snapshot()
	next.Overlay.ShowDescription()
	return next
}

// HideDescription collapses the description callout.
func (e *Engine) HideDescription(ctx context.Context, state *domain.State) *domain.State {
	next := state.Snapshot()
	next.Overlay.HideDescription()
	return next
}

// ShowTextDialog opens a text dialog, replacing any interaction dialog.
func (e *Engine) ShowTextDialog(ctx context.Context, state *domain.State, text string) *domain.State {
	next := state.Snapshot()
	next.Overlay.ShowTextDialog(text)
	e.emitOverlayChange(ctx, next.SessionID, next.Overlay.Kind)
	return next
}

// HideTextDialog closes the text dialog, if open.
func (e *Engine) HideTextDialog(ctx context.Context, state *domain.State) *domain.State {
	next := state.Snapshot()
	if next.Overlay.HideTextDialog() {
		e.emitOverlayChange(ctx, next.SessionID, next.Overlay.Kind)
	}
	return next
}

// HideInteractionDialog closes the interaction dialog, if open.
func (e *Engine) HideInteractionDialog(ctx context.Context, state *domain.State) *domain.State {
	next := state.Snapshot()
	if next.Overlay.HideInteractionDialog() {
		e.emitOverlayChange(ctx, next.SessionID, next.Overlay.Kind)
	}
	return next
}

// AddScene forwards an authoring request to the host unchanged.
func (e *Engine) AddScene(ctx context.Context, state *domain.State, scene domain.Scene) (*domain.State, []domain.Command) {
	return state.Snapshot(), []domain.Command{domain.AddScene(scene)}
}

func (e *Engine) navigate(ctx context.Context, next *domain.State, reg *Registry, target domain.SceneID) (*domain.State, []domain.Command) {
	if target == domain.PreviousScene {
		return e.back(next)
	}
	if _, err := reg.Lookup(target); err != nil {
		logging.WithSession(e.logger, next.SessionID).Debug("navigation ignored", "target", target, "err", err)
		return next, nil
	}
	return next, []domain.Command{domain.SetCurrentScene(target)}
}

func (e *Engine) back(next *domain.State) (*domain.State, []domain.Command) {
	target, err := next.History.Back()
	if err != nil {
		if errors.Is(err, domain.ErrEmptyHistory) {
			logging.WithSession(e.logger, next.SessionID).Debug("back ignored", "err", err)
		}
		return next, nil
	}
	return next, []domain.Command{domain.SetCurrentScene(target)}
}

// prune re-establishes the history invariants against the registry and
// drops an interaction dialog whose hotspot no longer exists.
func (e *Engine) prune(ctx context.Context, next *domain.State, reg *Registry, current domain.SceneID) {
	removed := next.History.Prune(reg.Contains, current)
	if removed > 0 {
		logging.WithSession(e.logger, next.SessionID).Debug("history pruned", "removed", removed, "remaining", next.History.Len())
		e.emitHistoryPruned(ctx, next.SessionID, removed, next.History.Len())
	}

	if next.Overlay.Kind == domain.OverlayInteractionDialog {
		interactions := reg.Interactions(next.Overlay.SceneID)
		if !reg.Contains(next.Overlay.SceneID) || next.Overlay.InteractionIndex >= len(interactions) {
			next.Overlay.HideInteractionDialog()
			e.emitOverlayChange(ctx, next.SessionID, next.Overlay.Kind)
		}
	}
}
