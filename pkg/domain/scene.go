package domain

// SceneID identifies a scene inside a tour.
type SceneID int

// PreviousScene is the go-to-scene target that means "return to the last scene".
const PreviousScene SceneID = -1

// SceneType controls how the renderer projects the scene image.
type SceneType string

const (
	SceneType360    SceneType = "360"
	SceneTypeStatic SceneType = "static"
)

// AudioTrack points to an audio asset.
type AudioTrack struct {
	Path string `json:"path" yaml:"path" mapstructure:"path"`
	Mime string `json:"mime,omitempty" yaml:"mime,omitempty" mapstructure:"mime"`
}

// Action is the raw authoring payload of an interaction.
// Library holds the content type identifier, e.g. "H5P.GoToScene 1.0".
type Action struct {
	Library string         `json:"library" yaml:"library" mapstructure:"library"`
	Params  map[string]any `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`
	Title   string         `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
}

// InteractionParams is an interaction as authored, before classification.
type InteractionParams struct {
	// Position is the "yaw,pitch" placement of the hotspot.
	Position string `json:"position,omitempty" yaml:"position,omitempty" mapstructure:"position"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	Action   Action `json:"action" yaml:"action" mapstructure:"action"`
}

// Scene represents a single panoramic viewpoint.
type Scene struct {
	ID          SceneID   `json:"id" yaml:"id" mapstructure:"id"`
	Name        string    `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Type        SceneType `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	ImagePath   string    `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	// CameraStart is the initial "yaw,pitch" of the camera.
	CameraStart string      `json:"camera_start,omitempty" yaml:"camera_start,omitempty" mapstructure:"camera_start"`
	Audio       *AudioTrack `json:"audio,omitempty" yaml:"audio,omitempty" mapstructure:"audio"`

	Interactions []InteractionParams `json:"interactions,omitempty" yaml:"interactions,omitempty" mapstructure:"interactions"`
}

// HasAudio reports whether the scene carries its own audio track.
func (s Scene) HasAudio() bool {
	return s.Audio != nil && s.Audio.Path != ""
}

// Tour is the full scene registry as authored.
type Tour struct {
	Title      string       `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	StartScene SceneID      `json:"start_scene" yaml:"start_scene" mapstructure:"start_scene"`
	Scenes     []Scene      `json:"scenes" yaml:"scenes" mapstructure:"scenes"`
	Audio      []AudioTrack `json:"audio,omitempty" yaml:"audio,omitempty" mapstructure:"audio"`
}

// Scene returns the scene with the given ID.
func (t *Tour) Scene(id SceneID) (Scene, bool) {
	for _, s := range t.Scenes {
		if s.ID == id {
			return s, true
		}
	}
	return Scene{}, false
}

// EntryScene returns the configured start scene, falling back to the first scene.
func (t *Tour) EntryScene() (SceneID, bool) {
	if _, ok := t.Scene(t.StartScene); ok {
		return t.StartScene, true
	}
	if len(t.Scenes) > 0 {
		return t.Scenes[0].ID, true
	}
	return 0, false
}

// Cycle builds the per-cycle input for the given host-owned current scene.
func (t *Tour) Cycle(current SceneID) Cycle {
	return Cycle{
		CurrentScene: current,
		Scenes:       t.Scenes,
		Audio:        t.Audio,
	}
}

// Cycle is everything the host hands the core for one observation cycle.
// It is read-only to the core.
type Cycle struct {
	CurrentScene SceneID
	Scenes       []Scene
	Audio        []AudioTrack
}

// AmbientAudio returns the tour-wide audio path, if any.
func (c Cycle) AmbientAudio() string {
	if len(c.Audio) == 0 {
		return ""
	}
	return c.Audio[0].Path
}
