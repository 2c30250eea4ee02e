package renderer

import "image"

// DefaultTileSize is the edge length of a square tile in pixels
const DefaultTileSize = 16

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Row-major tile index
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1), max exclusive
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
	}
}

// NewTileGrid creates a grid of tiles covering the entire image.
// Tiles on the right and bottom edges are clipped to the image.
func NewTileGrid(width, height, tileSize int) []*Tile {
	if width <= 0 || height <= 0 || tileSize <= 0 {
		return nil
	}

	// Ceiling division
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	tileID := 0
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}
