package domain

// View is what renderers consume after a cycle.
// A zero View (Scene == nil) means there is nothing to render.
type View struct {
	Scene *Scene `json:"scene,omitempty"`

	ImageSrc string `json:"image_src,omitempty"`
	AudioSrc string `json:"audio_src,omitempty"`

	Description     string `json:"description,omitempty"`
	ShowDescription bool   `json:"show_description"`

	// Overlay is the effective overlay, including the derived description callout.
	Overlay Overlay `json:"overlay"`

	// Interaction is set while an interaction dialog is open.
	Interaction *Interaction `json:"interaction,omitempty"`

	// Interactions lists the classified hotspots of the active scene.
	Interactions []Interaction `json:"interactions,omitempty"`

	CanGoBack bool      `json:"can_go_back"`
	History   []SceneID `json:"history"`

	// Scenes lists every scene so renderers can keep inactive panoramas loaded.
	Scenes []SceneView `json:"scenes,omitempty"`
}

// SceneView is the render data for one scene of the registry.
type SceneView struct {
	ID       SceneID `json:"id"`
	Name     string  `json:"name,omitempty"`
	ImageSrc string  `json:"image_src,omitempty"`
	Active   bool    `json:"active"`
}

// Empty reports whether nothing should be rendered.
func (v View) Empty() bool {
	return v.Scene == nil
}
