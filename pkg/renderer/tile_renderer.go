package renderer

import (
	"context"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
)

// Integrator computes the radiance carried along a ray
type Integrator interface {
	RayColor(ray core.Ray, world geometry.World, random *rand.Rand, depth int) core.Vec3
}

// TileRenderer renders individual tiles. It holds only read-only scene state,
// so one instance can serve every tile concurrently.
type TileRenderer struct {
	camera     *geometry.Camera
	world      geometry.World
	integrator Integrator
	config     Config
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(camera *geometry.Camera, world geometry.World, integratorInst Integrator, config Config) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		config:     config,
	}
}

// RenderTile renders the pixels of tile into a private buffer sized to the tile.
// ctx is checked once per row.
func (tr *TileRenderer) RenderTile(ctx context.Context, tile Tile, random *rand.Rand) (*ImageBuffer, RenderStats, error) {
	bounds := tile.Bounds
	buffer := NewImageBuffer(bounds.Dx(), bounds.Dy())
	stats := RenderStats{TotalTiles: 1}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			color := tr.samplePixel(i, j, random)
			buffer.Set(i-bounds.Min.X, j-bounds.Min.Y, Quantize(color))
		}
		stats.TotalPixels += bounds.Dx()
	}

	stats.TotalSamples = stats.TotalPixels * tr.config.SamplesPerPixel
	return buffer, stats, nil
}

// samplePixel averages SamplesPerPixel jittered rays through pixel (i, j).
// Image row 0 maps to the top of the viewport.
func (tr *TileRenderer) samplePixel(i, j int, random *rand.Rand) core.Vec3 {
	width, height := tr.config.Width, tr.config.Height
	spanX := float64(max(1, width-1))
	spanY := float64(max(1, height-1))

	var colorAccum core.Vec3
	for sample := 0; sample < tr.config.SamplesPerPixel; sample++ {
		s := (float64(i) + random.Float64()) / spanX
		t := (float64(height-1-j) + random.Float64()) / spanY

		ray := tr.camera.GetRay(s, t, random)
		colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, tr.world, random, tr.config.MaxDepth))
	}

	return colorAccum.Multiply(1.0 / float64(tr.config.SamplesPerPixel))
}
