package renderer

import (
	"context"
	"math/rand"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   Tile
	Random *rand.Rand // Owned by the task for its whole lifetime
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID int
	Tile   Tile
	Buffer *ImageBuffer // Nil when Err is set
	Stats  RenderStats
	Err    error // *TileError on failure
}

// TileFunc renders one tile into a private buffer
type TileFunc func(ctx context.Context, tile Tile, random *rand.Rand) (*ImageBuffer, RenderStats, error)

// WorkerPool runs tile tasks concurrently with a bounded number of workers
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	return &WorkerPool{numWorkers: max(1, numWorkers)}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run dispatches every task and returns a channel that yields exactly one
// result per task in completion order. The channel is closed once every task
// has finished, so ranging over it is a blocking join.
//
// A failing or panicking task only affects its own result. Once ctx is
// cancelled, tasks not yet started report ctx.Err() without running.
func (wp *WorkerPool) Run(ctx context.Context, tasks []TileTask, render TileFunc) <-chan TileResult {
	results := make(chan TileResult, len(tasks))

	go func() {
		defer close(results)

		var g errgroup.Group
		g.SetLimit(wp.numWorkers)

		for _, task := range tasks {
			if err := ctx.Err(); err != nil {
				results <- failedResult(task.Tile, err)
				continue
			}
			g.Go(func() error {
				results <- runTask(ctx, task, render)
				return nil
			})
		}

		// Tasks report failures through their results, never through the group
		_ = g.Wait()
	}()

	return results
}

func runTask(ctx context.Context, task TileTask, render TileFunc) (result TileResult) {
	defer func() {
		if r := recover(); r != nil {
			result = failedResult(task.Tile, &PanicError{Value: r, Stack: debug.Stack()})
		}
	}()

	buffer, stats, err := render(ctx, task.Tile, task.Random)
	if err != nil {
		return failedResult(task.Tile, err)
	}
	return TileResult{
		TileID: task.Tile.ID,
		Tile:   task.Tile,
		Buffer: buffer,
		Stats:  stats,
	}
}

func failedResult(tile Tile, err error) TileResult {
	return TileResult{
		TileID: tile.ID,
		Tile:   tile,
		Stats:  RenderStats{FailedTiles: 1},
		Err:    &TileError{TileID: tile.ID, Err: err},
	}
}
