package renderer

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// MockScene for renderer testing
type MockScene struct {
	objects []*geometry.Object
	lights  []material.PointLight
	camera  *Camera
}

func (m *MockScene) GetObjects() []*geometry.Object   { return m.objects }
func (m *MockScene) GetLights() []material.PointLight { return m.lights }
func (m *MockScene) GetCamera() *Camera               { return m.camera }

// createMockScene creates a magenta unit sphere in front of the camera
func createMockScene(t *testing.T, width, height int) *MockScene {
	t.Helper()

	view, err := core.ViewTransform(core.NewPoint(0, 0, -5), core.NewPoint(0, 0, 0), core.NewVector(0, 1, 0))
	if err != nil {
		t.Fatalf("Failed to build view transform: %v", err)
	}
	camera, err := NewCamera(CameraConfig{Width: width, Height: height, FieldOfView: math.Pi / 4, Transform: view})
	if err != nil {
		t.Fatalf("Failed to create camera: %v", err)
	}

	magenta := material.DefaultPhong().WithColor(core.NewColor(1, 0.2, 1))
	return &MockScene{
		objects: []*geometry.Object{geometry.NewSphereObject(core.Identity4(), magenta)},
		lights:  []material.PointLight{material.NewPointLight(core.NewPoint(-10, 10, -10), core.White)},
		camera:  camera,
	}
}

// testLogger discards output but counts calls
type testLogger struct {
	calls atomic.Int32
}

func (l *testLogger) Printf(format string, args ...interface{}) {
	l.calls.Add(1)
}

// MockIntegrator returns a fixed color and counts calls. When onCall is set
// it runs after every call with the running count.
type MockIntegrator struct {
	returnColor core.Color
	callCount   atomic.Int64
	onCall      func(count int64)
}

func (m *MockIntegrator) RayColor(ray core.Ray, scene integrator.Scene) (core.Color, bool) {
	count := m.callCount.Add(1)
	if m.onCall != nil {
		m.onCall(count)
	}
	return m.returnColor, true
}

func TestRaytracer_RenderMatchesSerialShading(t *testing.T) {
	scene := createMockScene(t, 39, 19)
	rt := NewRaytracer(scene, RenderConfig{TileSize: 16, NumWorkers: 4}, &testLogger{})

	canvas, stats, err := rt.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if canvas.Width() != 39 || canvas.Height() != 19 {
		t.Fatalf("Expected 39x19 canvas, got %dx%d", canvas.Width(), canvas.Height())
	}
	if stats.TotalPixels != 39*19 || stats.Tiles != 6 {
		t.Errorf("Expected %d pixels in 6 tiles, got %d in %d", 39*19, stats.TotalPixels, stats.Tiles)
	}

	// Every pixel must equal a direct, single-threaded evaluation
	tileRenderer := NewTileRenderer(scene, rt.integrator, 16)
	for _, tile := range rt.Tiles() {
		batch := tileRenderer.RenderTile(tile)
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if canvas.At(x, y) != batch.At(x, y) {
					t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, batch.At(x, y), canvas.At(x, y))
				}
			}
		}
	}
}

func TestRaytracer_RenderIsDeterministic(t *testing.T) {
	scene := createMockScene(t, 64, 48)

	var canvases []*Canvas
	for _, workers := range []int{1, 3, 8} {
		rt := NewRaytracer(scene, RenderConfig{TileSize: 16, NumWorkers: workers}, &testLogger{})
		canvas, _, err := rt.Render(context.Background(), nil)
		if err != nil {
			t.Fatalf("Unexpected error with %d workers: %v", workers, err)
		}
		canvases = append(canvases, canvas)
	}

	for i := 1; i < len(canvases); i++ {
		for y := 0; y < 48; y++ {
			for x := 0; x < 64; x++ {
				if canvases[i].At(x, y) != canvases[0].At(x, y) {
					t.Fatalf("Render %d differs at (%d,%d)", i, x, y)
				}
			}
		}
	}
}

func TestRaytracer_RenderShadesSphere(t *testing.T) {
	scene := createMockScene(t, 100, 100)
	rt := NewRaytracer(scene, DefaultRenderConfig(), &testLogger{})

	canvas, stats, err := rt.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if canvas.At(0, 0) != core.Black {
		t.Errorf("Expected black background at the corner, got %v", canvas.At(0, 0))
	}
	center := canvas.At(50, 50)
	if center.R <= 0 || center.G <= 0 || center.R <= center.G {
		t.Errorf("Expected magenta-tinted center pixel, got %v", center)
	}
	if stats.Hits == 0 || stats.Hits == stats.TotalPixels {
		t.Errorf("Expected partial coverage, got %d/%d", stats.Hits, stats.TotalPixels)
	}
	if c := stats.Coverage(); c <= 0 || c >= 1 {
		t.Errorf("Expected coverage in (0,1), got %f", c)
	}
}

func TestRaytracer_TileCallback(t *testing.T) {
	scene := createMockScene(t, 40, 40)
	rt := NewRaytracer(scene, RenderConfig{TileSize: 16, NumWorkers: 2}, &testLogger{})

	seen := make(map[int]bool)
	lastNumber := 0
	_, _, err := rt.Render(context.Background(), func(result TileCompletionResult) {
		if result.TotalTiles != 9 {
			t.Errorf("Expected 9 total tiles, got %d", result.TotalTiles)
		}
		if result.TileNumber != lastNumber+1 {
			t.Errorf("Expected tile number %d, got %d", lastNumber+1, result.TileNumber)
		}
		lastNumber = result.TileNumber
		if seen[result.Batch.Tile.ID] {
			t.Errorf("Tile %d reported twice", result.Batch.Tile.ID)
		}
		seen[result.Batch.Tile.ID] = true
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(seen) != 9 {
		t.Errorf("Expected callbacks for 9 tiles, got %d", len(seen))
	}
}

func TestRaytracer_CustomIntegrator(t *testing.T) {
	scene := createMockScene(t, 20, 10)
	rt := NewRaytracer(scene, RenderConfig{TileSize: 8, NumWorkers: 2}, &testLogger{})
	mock := &MockIntegrator{returnColor: core.NewColor(0.25, 0.5, 0.75)}
	rt.SetIntegrator(mock)

	canvas, stats, err := rt.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mock.callCount.Load() != 200 {
		t.Errorf("Expected one ray per pixel (200), got %d", mock.callCount.Load())
	}
	if canvas.At(19, 9) != mock.returnColor {
		t.Errorf("Expected %v, got %v", mock.returnColor, canvas.At(19, 9))
	}
	if stats.Hits != 200 {
		t.Errorf("Expected 200 hits, got %d", stats.Hits)
	}
}

func TestRaytracer_Cancelled(t *testing.T) {
	scene := createMockScene(t, 64, 64)
	rt := NewRaytracer(scene, RenderConfig{TileSize: 16, NumWorkers: 2}, &testLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	canvas, _, err := rt.Render(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if canvas != nil {
		t.Error("Expected no canvas from a cancelled render")
	}
}

func TestRaytracer_CancelledMidRender(t *testing.T) {
	scene := createMockScene(t, 64, 64)
	rt := NewRaytracer(scene, RenderConfig{TileSize: 8, NumWorkers: 1}, &testLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel while the second tile is being shaded; it still finishes
	rt.SetIntegrator(&MockIntegrator{
		returnColor: core.White,
		onCall: func(count int64) {
			if count == 8*8+1 {
				cancel()
			}
		},
	})

	completed := 0
	canvas, _, err := rt.Render(ctx, func(result TileCompletionResult) {
		completed++
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if canvas != nil {
		t.Error("Expected no canvas from a cancelled render")
	}
	if completed != 2 {
		t.Errorf("Expected exactly 2 tiles before stopping, got %d", completed)
	}
}

func TestRaytracer_SkipsSingularObjects(t *testing.T) {
	scene := createMockScene(t, 16, 16)
	scene.objects = append(scene.objects, geometry.NewSphereObject(core.Scaling(0, 0, 0), material.DefaultPhong()))
	logger := &testLogger{}
	rt := NewRaytracer(scene, DefaultRenderConfig(), logger)

	_, stats, err := rt.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.SkippedObjects != 1 {
		t.Errorf("Expected 1 skipped object, got %d", stats.SkippedObjects)
	}
	if logger.calls.Load() < 3 {
		t.Errorf("Expected start, skip and completion log lines, got %d calls", logger.calls.Load())
	}
}
