package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/vista/pkg/domain"
)

// LogHooks returns hooks that log every lifecycle event at info level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSceneEnter: func(ctx context.Context, e *domain.SceneEvent) {
			logger.InfoContext(ctx, "scene_enter", "session_id", e.SessionID, "scene_id", e.SceneID, "back", e.Back)
		},
		OnSceneLeave: func(ctx context.Context, e *domain.SceneEvent) {
			logger.InfoContext(ctx, "scene_leave", "session_id", e.SessionID, "scene_id", e.SceneID)
		},
		OnHistoryPruned: func(ctx context.Context, e *domain.HistoryEvent) {
			logger.InfoContext(ctx, "history_pruned", "session_id", e.SessionID, "removed", e.Removed, "remaining", e.Remaining)
		},
		OnOverlayChange: func(ctx context.Context, e *domain.OverlayEvent) {
			logger.InfoContext(ctx, "overlay_change", "session_id", e.SessionID, "overlay", e.Kind)
		},
		OnInteraction: func(ctx context.Context, e *domain.InteractionEvent) {
			logger.InfoContext(ctx, "interaction", "session_id", e.SessionID, "scene_id", e.SceneID, "index", e.Index, "kind", e.Kind, "decision", e.Decision)
		},
	}
}

// Combine fans every event out to all non-nil callbacks of hooks, in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range hooks {
		out.OnSceneEnter = chain(out.OnSceneEnter, h.OnSceneEnter)
		out.OnSceneLeave = chain(out.OnSceneLeave, h.OnSceneLeave)
		out.OnHistoryPruned = chain(out.OnHistoryPruned, h.OnHistoryPruned)
		out.OnOverlayChange = chain(out.OnOverlayChange, h.OnOverlayChange)
		out.OnInteraction = chain(out.OnInteraction, h.OnInteraction)
	}
	return out
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
