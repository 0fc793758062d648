package runtime

import (
	"context"
	"time"

	"github.com/aretw0/vista/pkg/domain"
)

func base(t domain.EventType, sessionID string) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, SessionID: sessionID}
}

func (e *Engine) emitSceneEnter(ctx context.Context, sessionID string, id domain.SceneID, back bool) {
	if e.hooks.OnSceneEnter == nil {
		return
	}
	e.hooks.OnSceneEnter(ctx, &domain.SceneEvent{
		EventBase: base(domain.EventSceneEnter, sessionID),
		SceneID:   id,
		Back:      back,
	})
}

func (e *Engine) emitSceneLeave(ctx context.Context, sessionID string, id domain.SceneID) {
	if e.hooks.OnSceneLeave == nil {
		return
	}
	e.hooks.OnSceneLeave(ctx, &domain.SceneEvent{
		EventBase: base(domain.EventSceneLeave, sessionID),
		SceneID:   id,
	})
}

func (e *Engine) emitHistoryPruned(ctx context.Context, sessionID string, removed, remaining int) {
	if e.hooks.OnHistoryPruned == nil {
		return
	}
	e.hooks.OnHistoryPruned(ctx, &domain.HistoryEvent{
		EventBase: base(domain.EventHistoryPruned, sessionID),
		Removed:   removed,
		Remaining: remaining,
	})
}

func (e *Engine) emitOverlayChange(ctx context.Context, sessionID string, kind domain.OverlayKind) {
	if e.hooks.OnOverlayChange == nil {
		return
	}
	e.hooks.OnOverlayChange(ctx, &domain.OverlayEvent{
		EventBase: base(domain.EventOverlayChange, sessionID),
		Kind:      kind,
	})
}

func (e *Engine) emitInteraction(ctx context.Context, sessionID string, scene domain.SceneID, in domain.Interaction, d Decision) {
	if e.hooks.OnInteraction == nil {
		return
	}
	e.hooks.OnInteraction(ctx, &domain.InteractionEvent{
		EventBase: base(domain.EventInteraction, sessionID),
		SceneID:   scene,
		Index:     in.Index,
		Kind:      in.Kind,
		Decision:  string(d.Kind),
	})
}
