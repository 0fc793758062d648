package loam

import (
	"github.com/aretw0/vista/pkg/domain"
)

// TourDocument is the ID of the optional document holding tour-wide settings.
const TourDocument = "tour"

// SceneMetadata is the frontmatter of a scene document. The markdown body
// of the document becomes the scene description.
//
// Numeric fields are typed as any: strict Loam repositories hand numbers
// over as json.Number, and authors may also write IDs as strings.
type SceneMetadata struct {
	ID           any                        `json:"id" mapstructure:"id"`
	Name         string                     `json:"name" mapstructure:"name"`
	Type         string                     `json:"type" mapstructure:"type"`
	Image        string                     `json:"image" mapstructure:"image"`
	Description  string                     `json:"description" mapstructure:"description"`
	CameraStart  string                     `json:"camera_start" mapstructure:"camera_start"`
	Audio        *domain.AudioTrack         `json:"audio" mapstructure:"audio"`
	Interactions []domain.InteractionParams `json:"interactions" mapstructure:"interactions"`

	// Tour settings, read from the tour document only.
	Title      string              `json:"title" mapstructure:"title"`
	StartScene any                 `json:"start_scene" mapstructure:"start_scene"`
	Ambient    []domain.AudioTrack `json:"ambient" mapstructure:"ambient"`
}
