package domain

// CommandType identifies a mutation the core requests from the host.
type CommandType string

const (
	// CommandSetCurrentScene asks the host to change its current scene.
	// The host may reject it; only an observed change is recorded in history.
	CommandSetCurrentScene CommandType = "set_current_scene"

	// CommandAddScene forwards an authoring request to add a scene.
	CommandAddScene CommandType = "add_scene"
)

// Command is a request handed back to the host.
type Command struct {
	Type    CommandType `json:"type"`
	SceneID SceneID     `json:"scene_id"`
	Scene   *Scene      `json:"scene,omitempty"`
}

// SetCurrentScene builds a CommandSetCurrentScene.
func SetCurrentScene(id SceneID) Command {
	return Command{Type: CommandSetCurrentScene, SceneID: id}
}

// AddScene builds a CommandAddScene.
func AddScene(scene Scene) Command {
	return Command{Type: CommandAddScene, SceneID: scene.ID, Scene: &scene}
}
