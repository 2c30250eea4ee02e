package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned when an output format is neither PNG nor PPM
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ImageData contains loaded image data as a color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Color
}

// At returns the color at (x, y) in row-major order
func (d *ImageData) At(x, y int) core.Color {
	return d.Pixels[y*d.Width+x]
}

// LoadImage loads a PNG or JPEG image and converts it to a color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewColor(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// MaxDifference returns the largest per-channel difference between the image
// and the canvas clamped to [0,1]. The sizes must match.
func (d *ImageData) MaxDifference(canvas *renderer.Canvas) (float64, error) {
	if canvas.Width() != d.Width || canvas.Height() != d.Height {
		return 0, fmt.Errorf("size mismatch: image is %dx%d, canvas is %dx%d",
			d.Width, d.Height, canvas.Width(), canvas.Height())
	}

	maxDiff := 0.0
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			want := d.At(x, y)
			got := canvas.At(x, y).Clamp(0, 1)
			maxDiff = max(maxDiff, math.Abs(got.R-want.R), math.Abs(got.G-want.G), math.Abs(got.B-want.B))
		}
	}
	return maxDiff, nil
}

// FormatFromPath infers "png" or "ppm" from a file extension
func FormatFromPath(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "png", "ppm":
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// SaveCanvas writes the canvas in the given format ("png" or "ppm"),
// creating parent directories as needed
func SaveCanvas(filename string, canvas *renderer.Canvas, format string) error {
	switch format {
	case "png":
		return SavePNG(filename, canvas.ToRGBA())
	case "ppm":
		return SavePPM(filename, canvas)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SavePNG encodes img as a PNG file
func SavePNG(filename string, img image.Image) error {
	file, err := create(filename)
	if err != nil {
		return err
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return file.Close()
}

// SavePPM writes the canvas as a plain PPM file
func SavePPM(filename string, canvas *renderer.Canvas) error {
	file, err := create(filename)
	if err != nil {
		return err
	}

	if err := canvas.WritePPM(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return file.Close()
}

func create(filename string) (*os.File, error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create image file: %w", err)
	}
	return file, nil
}
