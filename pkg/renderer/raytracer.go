package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Scene interface to avoid circular imports
type Scene interface {
	integrator.Scene
	GetCamera() *Camera
}

// RenderConfig contains configuration for tiled rendering
type RenderConfig struct {
	TileSize   int // Edge length of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   DefaultTileSize,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	Batch *Batch

	// Progress information
	TileNumber int // Completion order (1-based), not the tile ID
	TotalTiles int
}

// Raytracer renders a scene by splitting the image into tiles and shading
// them in parallel
type Raytracer struct {
	scene      Scene
	width      int
	height     int
	config     RenderConfig
	integrator integrator.Integrator
	tiles      []*Tile
	logger     core.Logger
}

// NewRaytracer creates a raytracer. The image size comes from the scene's camera.
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	camera := scene.GetCamera()
	width, height := camera.Width(), camera.Height()

	return &Raytracer{
		scene:      scene,
		width:      width,
		height:     height,
		config:     config,
		integrator: integrator.NewPhongIntegrator(),
		tiles:      NewTileGrid(width, height, config.TileSize),
		logger:     logger,
	}
}

// SetIntegrator replaces the integrator used to shade primary rays
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Tiles returns the tile grid in submission order
func (rt *Raytracer) Tiles() []*Tile {
	return rt.tiles
}

// Render shades every tile and merges the batches into a canvas. onTile, if
// not nil, is called from the calling goroutine as each tile completes.
// Cancelling ctx stops workers between tiles and Render returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context, onTile func(TileCompletionResult)) (*Canvas, RenderStats, error) {
	startTime := time.Now()

	skipped := rt.logSkippedObjects()

	tileRenderer := NewTileRenderer(rt.scene, rt.integrator, rt.config.TileSize)
	pool := NewWorkerPool(tileRenderer, len(rt.tiles), rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d in %d tiles of %dpx (using %d workers)...\n",
		rt.width, rt.height, len(rt.tiles), rt.config.TileSize, pool.NumWorkers())

	pool.Start(ctx)
	for i, tile := range rt.tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- pool.Wait()
	}()

	stats := RenderStats{
		Width:          rt.width,
		Height:         rt.height,
		Workers:        pool.NumWorkers(),
		SkippedObjects: skipped,
	}

	// Single-threaded collection; results arrive in completion order
	batches := make([]*Batch, len(rt.tiles))
	for result := range pool.Results() {
		batches[result.TaskID] = result.Batch
		stats.add(result.Batch.Stats)

		if onTile != nil {
			onTile(TileCompletionResult{
				Batch:      result.Batch,
				TileNumber: stats.Tiles,
				TotalTiles: len(rt.tiles),
			})
		}
	}

	if err := <-waitErr; err != nil {
		rt.logger.Printf("Rendering stopped after %d of %d tiles: %v\n", stats.Tiles, len(rt.tiles), err)
		return nil, RenderStats{}, err
	}
	if stats.Tiles != len(rt.tiles) {
		return nil, RenderStats{}, fmt.Errorf("worker pool closed after %d of %d tiles", stats.Tiles, len(rt.tiles))
	}

	canvas := NewCanvasFromBatches(rt.width, rt.height, batches)
	stats.Duration = time.Since(startTime)

	rt.logger.Printf("Render completed in %v (%d/%d pixels hit)\n",
		stats.Duration, stats.Hits, stats.TotalPixels)

	return canvas, stats, nil
}

// logSkippedObjects reports objects that will never be hit because their
// transform is singular, and returns how many there are
func (rt *Raytracer) logSkippedObjects() int {
	skipped := 0
	for i, obj := range rt.scene.GetObjects() {
		if err := obj.Err(); err != nil {
			rt.logger.Printf("Skipping object %d: %v\n", i, err)
			skipped++
		}
	}
	return skipped
}
