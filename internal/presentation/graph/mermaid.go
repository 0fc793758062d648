package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/vista/internal/runtime"
	"github.com/aretw0/vista/pkg/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const previousNode = "previous"

// Overlay contains session data to visualize on the graph.
type Overlay struct {
	Visited []domain.SceneID
	Current domain.SceneID
	// HasCurrent distinguishes scene 0 from "no current scene".
	HasCurrent bool
}

// OverlayFromState builds an overlay from a session state.
// Idle sessions only contribute their history.
func OverlayFromState(state *domain.State) *Overlay {
	if state == nil {
		return nil
	}
	return &Overlay{
		Visited:    state.History.Entries,
		Current:    state.CurrentScene,
		HasCurrent: state.Viewing(),
	}
}

// GenerateMermaid produces a Mermaid flowchart of the go-to-scene links of a tour.
// It applies semantic styling:
// - Entry scene: ((Circle))
// - 360 scene: ([Stadium])
// - Static scene: [Rectangle]
// Links to the previous scene point to a shared dashed node, links to scenes
// missing from the tour are flagged. Overlay styles are applied if provided.
func GenerateMermaid(tour *domain.Tour, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if tour == nil {
		return sb.String()
	}

	reg := runtime.NewRegistry(runtime.NewRouter(), tour.Scenes)
	entry, hasEntry := tour.EntryScene()
	title := cases.Title(language.Und)

	var usesPrevious bool
	missing := make(map[domain.SceneID]bool)

	for _, scene := range reg.Scenes() {
		id := nodeID(scene.ID)

		opener, closer := "[", "]"
		switch {
		case hasEntry && scene.ID == entry:
			opener, closer = "((", "))"
		case scene.Type == domain.SceneType360:
			opener, closer = "([", "])"
		}

		label := sceneLabel(scene)
		if scene.Type != "" {
			label = fmt.Sprintf("%s <br/> %s", label, title.String(string(scene.Type)))
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escape(label), closer))

		for _, in := range reg.Interactions(scene.ID) {
			if in.Kind != domain.KindGoToScene {
				continue
			}

			to := nodeID(in.Target)
			arrow := "-->"
			switch {
			case in.Target == domain.PreviousScene:
				to = previousNode
				arrow = "-.->"
				usesPrevious = true
			case !reg.Contains(in.Target):
				missing[in.Target] = true
			}

			if in.Label != "" {
				if arrow == "-->" {
					arrow = fmt.Sprintf("-- \"%s\" -->", escape(in.Label))
				} else {
					arrow = fmt.Sprintf("-. \"%s\" .->", escape(in.Label))
				}
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", id, arrow, to))
		}
	}

	if usesPrevious {
		sb.WriteString(fmt.Sprintf("    %s{{\"previous scene\"}}\n", previousNode))
	}

	if len(missing) > 0 {
		sb.WriteString("    classDef missing fill:#ffebee,stroke:#c62828,stroke-dasharray:5 5,color:#000;\n")
		for _, s := range reg.Scenes() {
			for _, in := range reg.Interactions(s.ID) {
				if in.Kind == domain.KindGoToScene && missing[in.Target] {
					sb.WriteString(fmt.Sprintf("    %s[\"missing %d\"]\n", nodeID(in.Target), in.Target))
					sb.WriteString(fmt.Sprintf("    class %s missing;\n", nodeID(in.Target)))
					delete(missing, in.Target)
				}
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.SceneID]bool)
		for _, id := range overlay.Visited {
			// History may still mention scenes removed since it was saved
			if seen[id] || !reg.Contains(id) {
				continue
			}
			seen[id] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(id)))
		}

		if overlay.HasCurrent && reg.Contains(overlay.Current) {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(overlay.Current)))
		}
	}

	return sb.String()
}

func nodeID(id domain.SceneID) string {
	if id < 0 {
		return fmt.Sprintf("s_%d", -id)
	}
	return fmt.Sprintf("s%d", id)
}

func sceneLabel(s domain.Scene) string {
	if s.Name == "" {
		return fmt.Sprintf("%d", s.ID)
	}
	return fmt.Sprintf("%d: %s", s.ID, s.Name)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
