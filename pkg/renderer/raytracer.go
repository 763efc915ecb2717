package renderer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *geometry.Camera
	GetWorld() geometry.World
	GetBackground() integrator.SkyGradient
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	Tile       Tile
	TileImage  *ImageBuffer // Pixels of just this tile
	TileNumber int          // Completion order within the render (1-based)
	TotalTiles int          // Total number of tiles in the image
}

// Raytracer partitions an image into tiles, renders them in parallel and
// composites the tile buffers into the final image.
type Raytracer struct {
	scene        Scene
	config       Config
	tiles        []Tile
	tileRenderer *TileRenderer
	workerPool   *WorkerPool
}

// NewRaytracer creates a new raytracer. The scene must not be modified while
// a render is running.
func NewRaytracer(scene Scene, config Config) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if scene == nil || scene.GetCamera() == nil || scene.GetWorld() == nil {
		return nil, errors.New("scene must provide a camera and a world")
	}

	pathTracer := integrator.NewPathTracingIntegrator(scene.GetBackground())

	return &Raytracer{
		scene:        scene,
		config:       config,
		tiles:        NewTileGrid(config.Width, config.Height, config.DispatchX, config.DispatchY),
		tileRenderer: NewTileRenderer(scene.GetCamera(), scene.GetWorld(), pathTracer, config),
		workerPool:   NewWorkerPool(config.workers()),
	}, nil
}

// Tiles returns the tile partition used by Render
func (rt *Raytracer) Tiles() []Tile {
	return rt.tiles
}

// Render renders every tile and composites them into a full image.
//
// tileCallback, if not nil, is called once per completed tile from the
// calling goroutine, never concurrently. If any tile fails the returned error
// joins one *TileError per failed tile and no image is returned.
func (rt *Raytracer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*ImageBuffer, RenderStats, error) {
	logger := core.Logger()
	startTime := time.Now()

	logger.Info("render started",
		"width", rt.config.Width,
		"height", rt.config.Height,
		"tiles", len(rt.tiles),
		"workers", rt.workerPool.GetNumWorkers(),
		"samples", rt.config.SamplesPerPixel,
		"depth", rt.config.MaxDepth)

	tasks := make([]TileTask, len(rt.tiles))
	for i, tile := range rt.tiles {
		tasks[i] = TileTask{
			Tile:   tile,
			Random: rand.New(rand.NewSource(rt.config.Seed + int64(tile.ID))),
		}
	}

	var stats RenderStats
	var tileErrs []error
	completed := make([]TileResult, 0, len(tasks))

	// Blocking join: the channel closes after the last task finishes
	for result := range rt.workerPool.Run(ctx, tasks, rt.tileRenderer.RenderTile) {
		stats.Merge(result.Stats)
		if result.Err != nil {
			logger.Error("tile failed", "tile", result.TileID, "error", result.Err)
			tileErrs = append(tileErrs, result.Err)
			continue
		}

		completed = append(completed, result)
		logger.Debug("tile completed",
			"tile", result.TileID,
			"bounds", result.Tile.Bounds.String(),
			"done", len(completed),
			"total", len(tasks))

		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				Tile:       result.Tile,
				TileImage:  result.Buffer,
				TileNumber: len(completed),
				TotalTiles: len(tasks),
			})
		}
	}
	stats.Duration = time.Since(startTime)

	if len(tileErrs) > 0 {
		err := fmt.Errorf("%d of %d tiles failed: %w", len(tileErrs), len(tasks), errors.Join(tileErrs...))
		return nil, stats, err
	}

	img := rt.composite(completed)

	logger.Info("render completed",
		"duration", stats.Duration,
		"pixels", stats.TotalPixels,
		"samples", stats.TotalSamples)

	return img, stats, nil
}

// composite copies each tile buffer into its region of the full image.
// Runs single-threaded after every tile task has finished.
func (rt *Raytracer) composite(results []TileResult) *ImageBuffer {
	img := NewImageBuffer(rt.config.Width, rt.config.Height)
	for _, result := range results {
		result.Buffer.CopyInto(img, result.Tile.Bounds.Min)
	}
	return img
}
