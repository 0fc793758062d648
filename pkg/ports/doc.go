/*
Package ports defines the driven ports (interfaces) for the Vista viewer.

These interfaces decouple the navigation core from external implementations,
allowing the viewer to work with various tour sources, session stores and
asset hosts.

# Key Interfaces

  - TourLoader: Loads the scene registry (e.g., from a tour file, a Loam directory or memory).
  - Watchable: Notifies about authoring edits so histories can be pruned.
  - TourEditor: Accepts authoring requests such as adding or removing scenes.
  - StateStore: Persists session State for the lifetime of a session.
  - DistributedLocker: Serializes access to a session across replicas.
  - AssetResolver: Turns authored asset paths into renderable sources.
*/
package ports
