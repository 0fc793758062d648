package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/vista/internal/presentation/graph"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func goTo(label string, target any) domain.InteractionParams {
	return domain.InteractionParams{
		Label: label,
		Action: domain.Action{
			Library: "H5P.GoToScene 1.0",
			Params:  map[string]any{"nextSceneId": target},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		tour        *domain.Tour
		overlay     *graph.Overlay
		contains    []string
		notContains []string
	}{
		{
			name: "Scene Shapes",
			tour: &domain.Tour{
				StartScene: 1,
				Scenes: []domain.Scene{
					{ID: 1, Name: "Lobby", Type: domain.SceneType360},
					{ID: 2, Name: "Hall", Type: domain.SceneType360},
					{ID: 3, Name: "Map", Type: domain.SceneTypeStatic},
				},
			},
			contains: []string{
				`s1(("1: Lobby <br/> 360"))`,
				`s2(["2: Hall <br/> 360"])`,
				`s3["3: Map <br/> Static"]`,
			},
		},
		{
			name: "Entry Falls Back To First Scene",
			tour: &domain.Tour{
				StartScene: 42,
				Scenes:     []domain.Scene{{ID: 7}},
			},
			contains: []string{`s7(("7"))`},
		},
		{
			name: "Go To Scene Links",
			tour: &domain.Tour{
				StartScene: 1,
				Scenes: []domain.Scene{
					{ID: 1, Interactions: []domain.InteractionParams{
						goTo("To the \"hall\"", "2"),
						goTo("", 3),
						{Action: domain.Action{Library: "H5P.Text 1.2"}},
					}},
					{ID: 2},
					{ID: 3},
				},
			},
			contains: []string{
				`s1 -- "To the 'hall'" --> s2`,
				"s1 --> s3",
			},
			notContains: []string{"previous"},
		},
		{
			name: "Previous Scene Link",
			tour: &domain.Tour{
				Scenes: []domain.Scene{
					{ID: 1, Interactions: []domain.InteractionParams{goTo("Back", -1)}},
				},
			},
			contains: []string{
				`s1 -. "Back" .-> previous`,
				`previous{{"previous scene"}}`,
			},
		},
		{
			name: "Missing Target",
			tour: &domain.Tour{
				Scenes: []domain.Scene{
					{ID: 1, Interactions: []domain.InteractionParams{goTo("", 99), goTo("", 99)}},
				},
			},
			contains: []string{
				"s1 --> s99",
				`s99["missing 99"]`,
				"class s99 missing;",
			},
		},
		{
			name: "Overlay",
			tour: &domain.Tour{
				Scenes: []domain.Scene{{ID: 1}, {ID: 2}, {ID: 3}},
			},
			overlay: &graph.Overlay{
				Visited:    []domain.SceneID{1, 2, 1, 5},
				Current:    3,
				HasCurrent: true,
			},
			contains: []string{
				"classDef visited",
				"class s1 visited;",
				"class s2 visited;",
				"class s3 current;",
			},
			notContains: []string{"class s5"},
		},
		{
			name: "Idle Overlay",
			tour: &domain.Tour{
				Scenes: []domain.Scene{{ID: 1}},
			},
			overlay:     graph.OverlayFromState(domain.NewState("s")),
			notContains: []string{"current;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.tour, tt.overlay)
			assert.Contains(t, got, "graph TD\n")
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestGenerateMermaid_DeduplicatesVisited(t *testing.T) {
	tour := &domain.Tour{Scenes: []domain.Scene{{ID: 1}, {ID: 2}}}
	got := graph.GenerateMermaid(tour, &graph.Overlay{Visited: []domain.SceneID{1, 1, 1}})
	assert.Equal(t, 1, strings.Count(got, "class s1 visited;"))
}

func TestGenerateMermaid_NilTour(t *testing.T) {
	assert.Equal(t, "graph TD\n", graph.GenerateMermaid(nil, nil))
}
