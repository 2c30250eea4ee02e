package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// maxPPMLineLength is the longest line a PPM writer may emit
const maxPPMLineLength = 70

// Canvas is a grid of linear, unclamped colors. New canvases are black.
type Canvas struct {
	width  int
	height int
	pixels []core.Color
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
	}
}

// NewCanvasFromBatches assembles tile batches into a canvas. Each pixel is
// written by exactly one batch, so the result does not depend on batch order.
func NewCanvasFromBatches(width, height int, batches []*Batch) *Canvas {
	canvas := NewCanvas(width, height)
	for _, batch := range batches {
		if batch == nil {
			continue
		}
		bounds := batch.Tile.Bounds.Intersect(image.Rect(0, 0, width, height))
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				canvas.pixels[y*width+x] = batch.At(x, y)
			}
		}
	}
	return canvas
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// At returns the color at (x, y). Out of range coordinates return black.
func (c *Canvas) At(x, y int) core.Color {
	if !c.inBounds(x, y) {
		return core.Black
	}
	return c.pixels[y*c.width+x]
}

// Set writes the color at (x, y). Out of range writes are ignored.
func (c *Canvas) Set(x, y int, color core.Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.pixels[y*c.width+x] = color
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// colorToByte clamps a channel to [0,1] and scales it to 0..255
func colorToByte(v float64) uint8 {
	return uint8(math.Round(255 * math.Max(0, math.Min(1, v))))
}

// ToRGBA converts the canvas to an 8-bit image
func (c *Canvas) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			p := c.pixels[y*c.width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: colorToByte(p.R),
				G: colorToByte(p.G),
				B: colorToByte(p.B),
				A: 255,
			})
		}
	}
	return img
}

// WritePPM encodes the canvas as a plain (P3) PPM. Pixel data lines are
// wrapped before they exceed 70 characters and the output ends with a newline.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.width, c.height); err != nil {
		return err
	}

	for y := 0; y < c.height; y++ {
		lineLength := 0
		for x := 0; x < c.width; x++ {
			p := c.pixels[y*c.width+x]
			for _, channel := range [3]float64{p.R, p.G, p.B} {
				value := strconv.Itoa(int(colorToByte(channel)))

				switch {
				case lineLength == 0:
				case lineLength+1+len(value) > maxPPMLineLength:
					bw.WriteByte('\n')
					lineLength = 0
				default:
					bw.WriteByte(' ')
					lineLength++
				}
				bw.WriteString(value)
				lineLength += len(value)
			}
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
