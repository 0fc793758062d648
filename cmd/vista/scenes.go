package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/vista/internal/runtime"
	"github.com/aretw0/vista/pkg/domain"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the scenes of the tour",
	RunE: func(cmd *cobra.Command, args []string) error {
		viewer, err := newViewer(cfg, logger, domain.LifecycleHooks{})
		if err != nil {
			return err
		}
		tour, err := viewer.Inspect(cmd.Context())
		if err != nil {
			return fmt.Errorf("error inspecting tour: %w", err)
		}

		out := cmd.OutOrStdout()
		if tour.Title != "" {
			fmt.Fprintf(out, "%s\n\n", tour.Title)
		}
		if len(tour.Scenes) == 0 {
			fmt.Fprintln(out, "No scenes found.")
			return nil
		}

		entry, _ := tour.EntryScene()
		reg := runtime.NewRegistry(runtime.NewRouter(), tour.Scenes)

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tHOTSPOTS\tLINKS TO")
		for _, s := range reg.Scenes() {
			marker := ""
			if s.ID == entry {
				marker = " *"
			}
			var hotspots int
			links := ""
			for _, in := range reg.Interactions(s.ID) {
				hotspots++
				if in.Kind != domain.KindGoToScene {
					continue
				}
				if links != "" {
					links += ", "
				}
				if in.Target == domain.PreviousScene {
					links += "back"
				} else {
					links += fmt.Sprintf("%d", in.Target)
				}
			}
			fmt.Fprintf(w, "%d%s\t%s\t%s\t%d\t%s\n", s.ID, marker, s.Name, s.Type, hotspots, links)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(scenesCmd)
}
