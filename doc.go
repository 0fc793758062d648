/*
Package vista is the navigation core of a 360° virtual tour viewer.

A tour is a set of panoramic scenes linked by interactive hotspots. Vista keeps
track of where the viewer has been (a back-stack that survives scene deletion),
which overlay is on screen (a description callout plus one dialog slot) and what
a selected hotspot does (go to another scene, open a dialog, or nothing).

# Concept

The core is stateless. Each call takes the previous session State and the
host's current scene and scene list, and returns a new State plus commands for
the host to apply. The host owns the tour: it decides whether a requested scene
change happens, and only changes it actually observes are recorded in history.

Viewer is a ready-made host. It reads the tour through a ports.TourLoader (a
Loam directory of markdown scenes, a single JSON/YAML/TOML document, or an
in-memory tour), applies commands and runs the observation cycle for you.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/vista"
	)

	func main() {
		viewer, err := vista.New("./my-tour")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		state, err := viewer.Start(ctx, "session-123")
		if err != nil {
			log.Fatal(err)
		}

		// Select the first hotspot of the entry scene, then go back.
		state, _ = viewer.SelectInteraction(ctx, state, 0)
		state, _ = viewer.Back(ctx, state)

		view, _ := viewer.Render(ctx, state)
		fmt.Println(view.Scene.Name, view.CanGoBack)
	}
*/
package vista
