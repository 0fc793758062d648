package domain

// OverlayKind identifies which overlay occupies the screen.
type OverlayKind string

const (
	OverlayNone              OverlayKind = "none"
	OverlayDescription       OverlayKind = "description"
	OverlayTextDialog        OverlayKind = "text_dialog"
	OverlayInteractionDialog OverlayKind = "interaction_dialog"
)

// Overlay holds the single dialog slot plus the description callout switch.
//
// Kind is never OverlayDescription in stored state: the description text
// belongs to the scene, so the callout is derived at render time and only
// suppressed (not cleared) while a text dialog is open.
type Overlay struct {
	Kind             OverlayKind `json:"kind"`
	Text             string      `json:"text,omitempty"`
	SceneID          SceneID     `json:"scene_id,omitempty"`
	InteractionIndex int         `json:"interaction_index,omitempty"`

	DescriptionHidden bool `json:"description_hidden,omitempty"`
}

// ShowDescription re-enables the description callout.
func (o *Overlay) ShowDescription() {
	o.DescriptionHidden = false
}

// HideDescription collapses the description callout.
func (o *Overlay) HideDescription() {
	o.DescriptionHidden = true
}

// ShowTextDialog opens a text dialog, closing any interaction dialog.
func (o *Overlay) ShowTextDialog(text string) {
	o.clearDialog()
	o.Kind = OverlayTextDialog
	o.Text = text
}

// ShowInteractionDialog opens the dialog for an interaction, closing any text dialog.
func (o *Overlay) ShowInteractionDialog(scene SceneID, index int) {
	o.clearDialog()
	o.Kind = OverlayInteractionDialog
	o.SceneID = scene
	o.InteractionIndex = index
}

// HideTextDialog closes the text dialog and drops its payload.
// It returns false when no text dialog was open.
func (o *Overlay) HideTextDialog() bool {
	if o.Kind != OverlayTextDialog {
		return false
	}
	o.clearDialog()
	return true
}

// HideInteractionDialog closes the interaction dialog and drops its payload.
// It returns false when no interaction dialog was open.
func (o *Overlay) HideInteractionDialog() bool {
	if o.Kind != OverlayInteractionDialog {
		return false
	}
	o.clearDialog()
	return true
}

// DescriptionVisible reports whether a scene description should be rendered.
func (o Overlay) DescriptionVisible(description string) bool {
	return description != "" && !o.DescriptionHidden && o.Kind != OverlayTextDialog
}

func (o *Overlay) clearDialog() {
	o.Kind = OverlayNone
	o.Text = ""
	o.SceneID = 0
	o.InteractionIndex = 0
}
