package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/vista/internal/presentation/graph"
	"github.com/aretw0/vista/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the scene graph visualization",
	Long: `Inspects the tour and outputs a Mermaid diagram (graph TD) of its go-to-scene hotspots.
With --session the scenes in the session's history and its current scene are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		viewer, err := newViewer(cfg, logger, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		tour, err := viewer.Inspect(cmd.Context())
		if err != nil {
			return fmt.Errorf("error inspecting tour: %w", err)
		}

		var overlay *graph.Overlay
		if sessionID, _ := cmd.Flags().GetString("session"); sessionID != "" {
			sessions, closeStore, err := newSessions(cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			state, err := sessions.Load(cmd.Context(), sessionID)
			if err != nil {
				return fmt.Errorf("error loading session '%s': %w", sessionID, err)
			}
			overlay = graph.OverlayFromState(state)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(tour, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("session", "s", "", "Highlight the history of this session")
}
