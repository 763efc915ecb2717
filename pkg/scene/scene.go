package scene

import (
	"fmt"

	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
)

// Options selects how the scene graph is turned into an intersection strategy
type Options struct {
	Policy geometry.HitPolicy // Defaults to nearest hit
	Order  geometry.Order     // Flatten order for the list policies
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	Camera     *geometry.Camera
	Graph      *geometry.Graph        // Shape tree; edit only before Build
	Background integrator.SkyGradient // Color of rays that escape the scene
	Options    Options

	world geometry.World
}

// New creates a scene with the default sky and builds its world from graph
func New(name string, camera *geometry.Camera, graph *geometry.Graph, opts Options) (*Scene, error) {
	s := &Scene{
		Name:       name,
		Camera:     camera,
		Graph:      graph,
		Background: integrator.DefaultSky(),
		Options:    opts,
	}
	if err := s.Build(); err != nil {
		return nil, err
	}
	return s, nil
}

// Build flattens the graph into the world used for rendering. Call it again
// after editing Graph or Options; edits are not visible to the renderer until then.
func (s *Scene) Build() error {
	if s.Camera == nil {
		return fmt.Errorf("scene %q has no camera", s.Name)
	}
	if s.Graph == nil {
		s.Graph = geometry.NewGraph()
	}
	world, err := geometry.NewWorld(s.Graph, s.Options.Policy, s.Options.Order)
	if err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	s.world = world
	return nil
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetWorld returns the world built by the last call to Build
func (s *Scene) GetWorld() geometry.World {
	return s.world
}

// GetBackground returns the sky gradient
func (s *Scene) GetBackground() integrator.SkyGradient {
	return s.Background
}

// GetShapeCount returns the number of live shapes in the scene graph
func (s *Scene) GetShapeCount() int {
	return s.Graph.Len()
}
