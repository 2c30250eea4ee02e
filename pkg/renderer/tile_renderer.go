package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
)

// Batch holds the colors produced for one tile. Colors is sized for a full
// tile and indexed by local coordinates, so boundary tiles leave the tail unused.
type Batch struct {
	Tile     *Tile
	TileSize int
	Colors   []core.Color
	Stats    TileStats
}

// NewBatch allocates a batch buffer for a tile of the given edge length
func NewBatch(tile *Tile, tileSize int) *Batch {
	return &Batch{
		Tile:     tile,
		TileSize: tileSize,
		Colors:   make([]core.Color, tileSize*tileSize),
	}
}

// index maps image coordinates inside the tile to a buffer offset
func (b *Batch) index(x, y int) int {
	return (y-b.Tile.Bounds.Min.Y)*b.TileSize + (x - b.Tile.Bounds.Min.X)
}

// At returns the color at image coordinates (x, y), which must lie inside the tile
func (b *Batch) At(x, y int) core.Color {
	return b.Colors[b.index(x, y)]
}

// ToRGBA converts the tile to an 8-bit image whose origin is the tile's top-left corner
func (b *Batch) ToRGBA() *image.RGBA {
	bounds := b.Tile.Bounds
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			p := b.At(x, y)
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{
				R: colorToByte(p.R),
				G: colorToByte(p.G),
				B: colorToByte(p.B),
				A: 255,
			})
		}
	}
	return img
}

// TileRenderer renders individual tiles using an integrator
type TileRenderer struct {
	scene      Scene
	camera     *Camera
	integrator integrator.Integrator
	tileSize   int
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene Scene, integratorInst integrator.Integrator, tileSize int) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		camera:     scene.GetCamera(),
		integrator: integratorInst,
		tileSize:   tileSize,
	}
}

// RenderTile traces one primary ray through the center of every pixel in the tile.
// The returned batch is owned by the caller; nothing else is written.
func (tr *TileRenderer) RenderTile(tile *Tile) *Batch {
	batch := NewBatch(tile, tr.tileSize)
	bounds := tile.Bounds

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := tr.camera.RayForPixel(x, y)
			pixelColor, hit := tr.integrator.RayColor(ray, tr.scene)

			batch.Colors[batch.index(x, y)] = pixelColor
			batch.Stats.Pixels++
			if hit {
				batch.Stats.Hits++
			}
		}
	}

	return batch
}
