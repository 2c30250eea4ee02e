package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int // Index into the tile list, for deterministic merging
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Batch  *Batch
}

// WorkerPool renders tiles in parallel. Each task produces its own batch, so
// workers share nothing but the read-only scene.
type WorkerPool struct {
	renderer    *TileRenderer
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	group       *errgroup.Group
}

// NewWorkerPool creates a worker pool able to hold maxTasks queued tasks and results
func NewWorkerPool(renderer *TileRenderer, maxTasks, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		renderer:    renderer,
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
		numWorkers:  numWorkers,
	}
}

// Start launches the workers. Cancelling ctx stops them before their next tile;
// a tile already in progress always finishes.
func (wp *WorkerPool) Start(ctx context.Context) {
	group, ctx := errgroup.WithContext(ctx)
	wp.group = group

	for i := 0; i < wp.numWorkers; i++ {
		group.Go(func() error {
			return wp.run(ctx)
		})
	}
}

// SubmitTask queues a tile task. It must not be called after Wait.
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// Wait signals that no more tasks are coming, waits for the workers and
// closes the result channel. It returns the first worker error, if any.
func (wp *WorkerPool) Wait() error {
	close(wp.taskQueue)
	err := wp.group.Wait()
	close(wp.resultQueue)
	return err
}

// Results returns the channel completed tiles are delivered on
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task, ok := <-wp.taskQueue:
			if !ok {
				return nil
			}
			// Both cases may be ready at once; prefer stopping
			if err := ctx.Err(); err != nil {
				return err
			}

			batch := wp.renderer.RenderTile(task.Tile)
			wp.resultQueue <- TileResult{TaskID: task.TaskID, Batch: batch}
		}
	}
}
