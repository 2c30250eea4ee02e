package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// workersEnv overrides the worker count when -workers is not given
const workersEnv = "RAYTRACER_WORKERS"

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene: a built-in name, file:<name> from -scenes, or a path to a .json file")
	scenesDir := flag.String("scenes", "scenes", "Directory searched for file:<name> scenes")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	height := flag.Int("height", 0, "Image height in pixels (0 = scene default)")
	tileSize := flag.Int("tile", renderer.DefaultTileSize, "Tile edge length in pixels")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = $"+workersEnv+" or CPU count)")
	output := flag.String("out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	format := flag.String("format", "png", "Output format when -out is not given: 'png' or 'ppm'")
	compare := flag.String("compare", "", "Reference PNG to compare the render against")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp(*scenesDir)
		return
	}

	fmt.Println("Starting Phong Raytracer...")

	selectedScene, err := createScene(*sceneType, *scenesDir, *width, *height)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}

	filename, outFormat, err := outputPath(*output, *format, *sceneType, time.Now())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	config := renderer.RenderConfig{
		TileSize:   *tileSize,
		NumWorkers: resolveWorkers(*workers, os.Getenv(workersEnv)),
	}
	raytracer := renderer.NewRaytracer(selectedScene, config, renderer.NewDefaultLogger())

	// Stop between tiles on Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	canvas, stats, err := raytracer.Render(ctx, nil)
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Pixels hit: %d of %d (%.1f%%)\n", stats.Hits, stats.TotalPixels, 100*stats.Coverage())

	if err := loaders.SaveCanvas(filename, canvas, outFormat); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)

	if *compare != "" {
		diff, err := compareWithReference(canvas, *compare)
		if err != nil {
			fmt.Printf("Error comparing with %s: %v\n", *compare, err)
			os.Exit(1)
		}
		fmt.Printf("Max channel difference vs %s: %.4f\n", *compare, diff)
	}
}

func printHelp(scenesDir string) {
	fmt.Println("Phong Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	response, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
		return
	}
	for _, group := range response.Groups {
		fmt.Printf("  %s:\n", group.Name)
		for _, s := range group.Scenes {
			fmt.Printf("    %-20s %s\n", s.ID, s.Description)
		}
	}
}

// createScene resolves a scene name to a scene sized for rendering
func createScene(sceneType, scenesDir string, width, height int) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	return scene.Open(sceneType, scenesDir, width, height)
}

// outputPath picks the file to write and its format. An explicit path decides
// the format by extension; otherwise a timestamped file under output/<scene> is used.
func outputPath(output, format, sceneType string, now time.Time) (string, string, error) {
	if output != "" {
		f, err := loaders.FormatFromPath(output)
		if err != nil {
			return "", "", err
		}
		return output, f, nil
	}

	if format != "png" && format != "ppm" {
		return "", "", fmt.Errorf("unknown format %q (want 'png' or 'ppm')", format)
	}

	// Scene paths and file: IDs still make a tidy directory name
	name := filepath.Base(strings.TrimPrefix(sceneType, "file:"))
	name = strings.TrimSuffix(name, filepath.Ext(name))

	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", name, fmt.Sprintf("render_%s.%s", timestamp, format)), format, nil
}

// compareWithReference loads a reference image and returns its largest
// channel difference from the canvas
func compareWithReference(canvas *renderer.Canvas, referencePath string) (float64, error) {
	reference, err := loaders.LoadImage(referencePath)
	if err != nil {
		return 0, err
	}
	return reference.MaxDifference(canvas)
}

// resolveWorkers returns the flag value if set, then a valid environment
// override, and 0 (CPU count) otherwise
func resolveWorkers(flagValue int, envValue string) int {
	if flagValue > 0 {
		return flagValue
	}
	if envValue != "" {
		if n, err := strconv.Atoi(envValue); err == nil && n > 0 && n <= 128 {
			return n
		}
	}
	return 0
}
