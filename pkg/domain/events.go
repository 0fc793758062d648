package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSceneEnter    EventType = "scene_enter"
	EventSceneLeave    EventType = "scene_leave"
	EventHistoryPruned EventType = "history_pruned"
	EventOverlayChange EventType = "overlay_change"
	EventInteraction   EventType = "interaction"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// SceneEvent represents entry into or exit from a scene.
type SceneEvent struct {
	EventBase
	SceneID SceneID `json:"scene_id"`
	// Back is true when the change was caused by back-navigation.
	Back bool `json:"back,omitempty"`
}

// HistoryEvent reports entries dropped by pruning.
type HistoryEvent struct {
	EventBase
	Removed   int `json:"removed"`
	Remaining int `json:"remaining"`
}

// OverlayEvent reports a change of the dialog slot.
type OverlayEvent struct {
	EventBase
	Kind OverlayKind `json:"kind"`
}

// InteractionEvent reports a routed interaction.
type InteractionEvent struct {
	EventBase
	SceneID  SceneID         `json:"scene_id"`
	Index    int             `json:"index"`
	Kind     InteractionKind `json:"kind"`
	Decision string          `json:"decision"`
}

// LifecycleHooks defines callbacks for viewer observability.
type LifecycleHooks struct {
	OnSceneEnter    func(context.Context, *SceneEvent)
	OnSceneLeave    func(context.Context, *SceneEvent)
	OnHistoryPruned func(context.Context, *HistoryEvent)
	OnOverlayChange func(context.Context, *OverlayEvent)
	OnInteraction   func(context.Context, *InteractionEvent)
}
