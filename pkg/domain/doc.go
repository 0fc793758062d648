/*
Package domain contains the core domain models of the Vista tour viewer.

It defines the scenes of a 360° tour, the interactions (hotspots) placed in
them, the navigation history state machine, the overlay slot, and the
commands the core hands back to the host. The package is kept pure and free
of I/O so every transition can be tested in isolation.

# Key Entities

  - Scene: One navigable panoramic viewpoint with its interactions and optional description.
  - Interaction: A hotspot, classified once into GoToScene, Audio, Generic or Malformed.
  - History: The back-stack of previously current scenes plus the single-shot skip flag.
  - Overlay: The dialog slot (text or interaction dialog) and the description callout switch.
  - State: The per-session snapshot (last observed scene, history, overlay).
  - Command: A mutation the core requests from the host (set current scene, add scene).
*/
package domain
