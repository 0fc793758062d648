package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Loader adapts a Loam repository of scene documents to ports.TourLoader.
// Every markdown/json/yaml document is a scene, except the tour document.
type Loader struct {
	Repo *loam.TypedRepository[SceneMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[SceneMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Load lists the repository and builds the tour. Scenes are ordered by ID.
func (l *Loader) Load(ctx context.Context) (*domain.Tour, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	tour := &domain.Tour{Scenes: make([]domain.Scene, 0, len(docs))}
	seen := make(map[domain.SceneID]string, len(docs))

	for _, doc := range docs {
		docID := trimExtension(doc.ID)
		meta := doc.Data

		if docID == TourDocument {
			if err := applyTour(tour, meta); err != nil {
				return nil, fmt.Errorf("%s: %w", doc.ID, err)
			}
			continue
		}

		scene, err := buildScene(docID, meta, doc.Content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.ID, err)
		}
		if existing, ok := seen[scene.ID]; ok {
			return nil, fmt.Errorf("collision detected: scene %d is defined in both '%s' and '%s'", scene.ID, existing, doc.ID)
		}
		seen[scene.ID] = doc.ID
		tour.Scenes = append(tour.Scenes, scene)
	}

	sort.SliceStable(tour.Scenes, func(i, j int) bool {
		return tour.Scenes[i].ID < tour.Scenes[j].ID
	})
	return tour, nil
}

func buildScene(docID string, meta SceneMetadata, content string) (domain.Scene, error) {
	rawID := meta.ID
	if rawID == nil {
		rawID = filepath.Base(docID)
	}
	id, err := toSceneID(rawID)
	if err != nil {
		return domain.Scene{}, fmt.Errorf("invalid scene id: %w", err)
	}

	description := strings.TrimSpace(content)
	if description == "" {
		description = meta.Description
	}

	return domain.Scene{
		ID:           id,
		Name:         meta.Name,
		Type:         domain.SceneType(meta.Type),
		ImagePath:    meta.Image,
		Description:  description,
		CameraStart:  meta.CameraStart,
		Audio:        meta.Audio,
		Interactions: meta.Interactions,
	}, nil
}

func applyTour(tour *domain.Tour, meta SceneMetadata) error {
	tour.Title = meta.Title
	tour.Audio = meta.Ambient
	if meta.StartScene == nil {
		return nil
	}
	start, err := toSceneID(meta.StartScene)
	if err != nil {
		return fmt.Errorf("invalid start_scene: %w", err)
	}
	tour.StartScene = start
	return nil
}

// toSceneID accepts ints, json.Number and numeric strings.
func toSceneID(raw any) (domain.SceneID, error) {
	var id int
	if err := mapstructure.WeakDecode(raw, &id); err != nil {
		return 0, err
	}
	return domain.SceneID(id), nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
