package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile          *Tile
	PassNumber    int
	TargetSamples int
	TaskID        int // Index of the tile, used to match results
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// TileFunc renders a single task
type TileFunc func(task TileTask) RenderStats

// WorkerPool renders tiles on a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Process renders every task and delivers results in completion order. The
// channel is closed once all workers have returned. If ctx is cancelled the
// remaining tasks are skipped and a final result carries the error.
func (wp *WorkerPool) Process(ctx context.Context, tasks []TileTask, render TileFunc) <-chan TileResult {
	results := make(chan TileResult, len(tasks)+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	go func() {
		defer close(results)

		skipped := false
		for _, task := range tasks {
			if gctx.Err() != nil {
				skipped = true
				break
			}
			task := task
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results <- TileResult{TaskID: task.TaskID, Stats: render(task)}
				return nil
			})
		}

		err := g.Wait()
		if err == nil && skipped {
			err = ctx.Err()
		}
		if err != nil {
			results <- TileResult{TaskID: -1, Error: err}
		}
	}()

	return results
}
