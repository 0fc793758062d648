package domain

// Phase is the coarse state of a viewer session.
type Phase string

const (
	PhaseIdle    Phase = "idle"    // No scene observed yet, renders nothing
	PhaseViewing Phase = "viewing" // A scene is active
)

// State represents the per-session snapshot owned by the core.
type State struct {
	SessionID string `json:"session_id,omitempty"`

	Phase Phase `json:"phase"`

	// CurrentScene is the host-owned current scene as seen by the last
	// observation. The host keeps the authoritative value; the core only
	// compares against it to detect changes.
	CurrentScene SceneID `json:"current_scene"`

	History History `json:"history"`
	Overlay Overlay `json:"overlay"`
}

// NewState creates an idle state for a session.
func NewState(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		Phase:     PhaseIdle,
		History:   History{Entries: []SceneID{}},
		Overlay:   Overlay{Kind: OverlayNone},
	}
}

// Snapshot returns a deep copy safe for mutation.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.History = s.History.Clone()
	if next.Overlay.Kind == "" {
		next.Overlay.Kind = OverlayNone
	}
	if next.Phase == "" {
		next.Phase = PhaseIdle
	}
	return &next
}

// Viewing reports whether a scene has been observed.
func (s *State) Viewing() bool {
	return s.Phase == PhaseViewing
}
