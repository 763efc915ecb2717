package scene

import (
	"fmt"
	"slices"
	"strings"
)

// SceneInfo describes a built-in scene preset
type SceneInfo struct {
	ID          string // Name accepted by Load and the -scene flag
	DisplayName string
	Description string
}

// Factory builds a preset for the given image aspect ratio
type Factory func(aspectRatio float64, seed int64, opts Options) (*Scene, error)

type preset struct {
	info    SceneInfo
	factory Factory
}

var presets = []preset{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default",
			Description: "Three balls bound as a tree, including a hollow glass shell",
		},
		factory: func(aspectRatio float64, seed int64, opts Options) (*Scene, error) {
			return NewDefaultScene(aspectRatio, opts)
		},
	},
	{
		info: SceneInfo{
			ID:          "test",
			DisplayName: "Test",
			Description: "A single glass ball on a ground sphere",
		},
		factory: func(aspectRatio float64, seed int64, opts Options) (*Scene, error) {
			return NewTestScene(aspectRatio, opts)
		},
	},
	{
		info: SceneInfo{
			ID:          "random",
			DisplayName: "Random Balls",
			Description: "A seeded field of diffuse, metal and glass balls with depth of field",
		},
		factory: NewRandomBallsScene,
	},
}

// ListScenes returns every built-in preset sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(presets))
	for _, p := range presets {
		scenes = append(scenes, p.info)
	}
	slices.SortFunc(scenes, func(a, b SceneInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return scenes
}

// Load builds the preset named id (case-insensitive)
func Load(id string, aspectRatio float64, seed int64, opts Options) (*Scene, error) {
	for _, p := range presets {
		if strings.EqualFold(p.info.ID, id) {
			return p.factory(aspectRatio, seed, opts)
		}
	}

	ids := make([]string, 0, len(presets))
	for _, info := range ListScenes() {
		ids = append(ids, info.ID)
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(ids, ", "))
}
