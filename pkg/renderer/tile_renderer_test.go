package renderer

import (
	"context"
	"errors"
	"image"
	"math/rand"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
)

// constantIntegrator returns the same radiance for every ray
type constantIntegrator struct {
	color core.Vec3
}

func (c constantIntegrator) RayColor(ray core.Ray, world geometry.World, random *rand.Rand, depth int) core.Vec3 {
	return c.color
}

// upIntegrator is white for rays pointing up and black otherwise
type upIntegrator struct{}

func (upIntegrator) RayColor(ray core.Ray, world geometry.World, random *rand.Rand, depth int) core.Vec3 {
	if ray.Direction.Y > 0 {
		return core.NewVec3(1, 1, 1)
	}
	return core.Vec3{}
}

func testTileRenderer(width, height int, integratorInst Integrator) *TileRenderer {
	config := DefaultConfig()
	config.Width = width
	config.Height = height
	config.SamplesPerPixel = 4
	camera := geometry.NewSimpleCamera(float64(width)/float64(height), 2.0)
	return NewTileRenderer(camera, geometry.NearestHit{}, integratorInst, config)
}

func TestTileRenderer_FillsTileBuffer(t *testing.T) {
	tr := testTileRenderer(20, 10, constantIntegrator{color: core.NewVec3(0.25, 0.25, 0.25)})
	tile := Tile{ID: 0, Bounds: image.Rect(4, 2, 12, 7)}

	buffer, stats, err := tr.RenderTile(context.Background(), tile, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if buffer.Width != 8 || buffer.Height != 5 {
		t.Fatalf("Expected 8x5 tile buffer, got %dx%d", buffer.Width, buffer.Height)
	}
	for y := 0; y < buffer.Height; y++ {
		for x := 0; x < buffer.Width; x++ {
			if got := buffer.Get(x, y); got != (RGB{127, 127, 127}) {
				t.Fatalf("Pixel (%d,%d): expected gray 127, got %v", x, y, got)
			}
		}
	}

	if stats.TotalPixels != 40 || stats.TotalSamples != 160 || stats.TotalTiles != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestTileRenderer_TopRowIsTopOfViewport(t *testing.T) {
	tr := testTileRenderer(4, 10, upIntegrator{})
	tile := Tile{ID: 0, Bounds: image.Rect(0, 0, 4, 10)}

	buffer, _, err := tr.RenderTile(context.Background(), tile, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := buffer.Get(0, 0); got != (RGB{254, 254, 254}) {
		t.Errorf("Expected top row to see upward rays, got %v", got)
	}
	if got := buffer.Get(0, 9); got != (RGB{}) {
		t.Errorf("Expected bottom row to see downward rays, got %v", got)
	}
}

func TestTileRenderer_StopsWhenCancelled(t *testing.T) {
	tr := testTileRenderer(10, 10, constantIntegrator{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buffer, _, err := tr.RenderTile(ctx, Tile{Bounds: image.Rect(0, 0, 10, 10)}, rand.New(rand.NewSource(1)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if buffer != nil {
		t.Error("Expected no buffer for a cancelled tile")
	}
}
