package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/vista/internal/testutils"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/aretw0/vista/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func newLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	dir, repo := testutils.SetupTestRepo(t)
	seed(t, dir, files)
	return New(loam.NewTypedRepository[SceneMetadata](repo))
}

var museum = map[string]string{
	"tour.md": `---
title: Museum
start_scene: 2
ambient:
  - path: audio/hall.mp3
---`,
	"1.md": `---
name: Entrance
image: images/entrance.jpg
interactions:
  - label: Gallery
    action:
      library: H5P.GoToScene 1.0
      params:
        nextSceneId: 2
---
Welcome to the **museum**.`,
	"gallery.md": `---
id: 2
name: Gallery
type: "360"
image: images/gallery.jpg
description: Paintings.
---`,
}

func TestLoader_Contract(t *testing.T) {
	tests.RunTourLoaderContract(t, newLoader(t, museum), []domain.SceneID{1, 2})
}

func TestLoader_BuildsTour(t *testing.T) {
	tour, err := newLoader(t, museum).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Museum", tour.Title)
	assert.Equal(t, domain.SceneID(2), tour.StartScene)
	assert.Equal(t, "audio/hall.mp3", tour.Cycle(1).AmbientAudio())
	require.Len(t, tour.Scenes, 2)

	entrance := tour.Scenes[0]
	assert.Equal(t, domain.SceneID(1), entrance.ID, "ID falls back to the file name")
	assert.Equal(t, "Welcome to the **museum**.", entrance.Description, "body is the description")
	require.Len(t, entrance.Interactions, 1)
	assert.Equal(t, "H5P.GoToScene 1.0", entrance.Interactions[0].Action.Library)

	gallery := tour.Scenes[1]
	assert.Equal(t, domain.SceneType360, gallery.Type)
	assert.Equal(t, "Paintings.", gallery.Description, "frontmatter description when the body is empty")
}

func TestLoader_DetectsCollisions(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"a.md": "---\nid: 1\n---",
		"b.md": "---\nid: 1\n---",
	})

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestLoader_RejectsNonNumericID(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"lobby.md": "---\nname: Lobby\n---",
	})

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scene id")
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "tour", trimExtension("tour.md"))
	assert.Equal(t, "wing/3", trimExtension("wing/3.yaml"))
	assert.Equal(t, "3", trimExtension("3"))
}
