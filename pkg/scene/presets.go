package scene

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// NewTestScene creates a glass ball resting on a large ground sphere, seen by
// a 90 degree pinhole camera at the origin.
func NewTestScene(aspectRatio float64, opts Options) (*Scene, error) {
	camera := geometry.NewCamera(geometry.CameraConfig{
		AspectRatio:   aspectRatio,
		Aperture:      0.0,
		FocusDistance: 1.0,
		VFov:          90.0,
		Position:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
	})

	groundMaterial := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	ballMaterial := material.NewDielectric(core.NewVec3(0.8, 0.8, 0.9), 1.5)

	graph := geometry.NewGraph()
	graph.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, groundMaterial), "scene", 0)
	graph.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, ballMaterial), "ball", 0)

	return New("test", camera, graph, opts)
}

// NewDefaultScene creates three balls on a ground sphere bound as a tree:
// ground -> center -> {left -> left_inner, right}. The left ball is a hollow
// glass shell made from a negative-radius inner sphere.
func NewDefaultScene(aspectRatio float64, opts Options) (*Scene, error) {
	camera := geometry.NewSimpleCamera(aspectRatio, 2.0)

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	materialLeft := material.NewClearDielectric(1.5)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	graph := geometry.NewGraph()
	ground := graph.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, materialGround), "scene", 0)
	center := graph.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, materialCenter), "center_ball", 0)
	left := graph.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialLeft), "left_ball", 0)
	leftInner := graph.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.4, materialLeft), "left_inner_ball", 0)
	right := graph.Add(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, materialRight), "right_ball", 0)

	binds := [][2]geometry.NodeID{
		{ground, center},
		{center, left},
		{left, leftInner},
		{center, right},
	}
	for _, b := range binds {
		if err := graph.Bind(b[0], b[1]); err != nil {
			return nil, err
		}
	}

	return New("default", camera, graph, opts)
}

// NewRandomBallsScene creates a field of small random balls around three large
// ones, viewed through a depth-of-field camera. The layout depends only on seed.
func NewRandomBallsScene(aspectRatio float64, seed int64, opts Options) (*Scene, error) {
	camera := geometry.NewCamera(geometry.CameraConfig{
		AspectRatio:   aspectRatio,
		Aperture:      0.1,
		FocusDistance: 10.0,
		VFov:          20.0,
		Position:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
	})

	random := rand.New(rand.NewSource(seed))
	graph := geometry.NewGraph()

	groundMaterial := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	graph.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, groundMaterial), "scene", 0)

	keepClear := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			choose := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			switch {
			case choose < 0.8:
				albedo := core.RandomVec3(0, 1, random).MultiplyVec(core.RandomVec3(0, 1, random))
				graph.Add(geometry.NewSphere(center, 0.2, material.NewLambertian(albedo)), "diffuse_ball", 0)
			case choose < 0.95:
				albedo := core.RandomVec3(0.5, 1, random)
				fuzz := core.RandomFloat(0, 0.5, random)
				graph.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)), "metal_ball", 0)
			default:
				glass := material.NewDielectric(core.NewVec3(0.9, 0.9, 0.95), 1.5)
				graph.Add(geometry.NewSphere(center, 0.2, glass), "glass_ball", 0)
			}
		}
	}

	graph.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0,
		material.NewDielectric(core.NewVec3(0.95, 0.95, 1.0), 1.5)), "ball1", 0)
	graph.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0,
		material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))), "ball2", 0)
	graph.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0,
		material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)), "ball3", 0)

	return New("random", camera, graph, opts)
}
