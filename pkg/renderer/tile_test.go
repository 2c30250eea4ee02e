package renderer

import (
	"image"
	"testing"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expected      []image.Rectangle
	}{
		{
			name:     "exact multiple",
			width:    32,
			height:   32,
			tileSize: 16,
			expected: []image.Rectangle{
				image.Rect(0, 0, 16, 16),
				image.Rect(16, 0, 32, 16),
				image.Rect(0, 16, 16, 32),
				image.Rect(16, 16, 32, 32),
			},
		},
		{
			name:     "boundary tiles shrink",
			width:    39,
			height:   19,
			tileSize: 16,
			expected: []image.Rectangle{
				image.Rect(0, 0, 16, 16),
				image.Rect(16, 0, 32, 16),
				image.Rect(32, 0, 39, 16),
				image.Rect(0, 16, 16, 19),
				image.Rect(16, 16, 32, 19),
				image.Rect(32, 16, 39, 19),
			},
		},
		{
			name:     "image smaller than a tile",
			width:    5,
			height:   3,
			tileSize: 16,
			expected: []image.Rectangle{image.Rect(0, 0, 5, 3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != len(tt.expected) {
				t.Fatalf("Expected %d tiles, got %d", len(tt.expected), len(tiles))
			}
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Tile %d has ID %d", i, tile.ID)
				}
				if tile.Bounds != tt.expected[i] {
					t.Errorf("Tile %d: expected bounds %v, got %v", i, tt.expected[i], tile.Bounds)
				}
			}
		})
	}
}

func TestNewTileGrid_CoversImageExactlyOnce(t *testing.T) {
	sizes := []struct{ width, height, tileSize int }{
		{32, 32, 16},
		{39, 19, 16},
		{200, 200, 16},
		{17, 33, 8},
		{1, 1, 16},
	}

	for _, s := range sizes {
		coverage := make([]int, s.width*s.height)
		for _, tile := range NewTileGrid(s.width, s.height, s.tileSize) {
			if tile.Bounds.Dx() > s.tileSize || tile.Bounds.Dy() > s.tileSize {
				t.Errorf("%dx%d: tile %v larger than %d", s.width, s.height, tile.Bounds, s.tileSize)
			}
			for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
				for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
					coverage[y*s.width+x]++
				}
			}
		}

		for i, count := range coverage {
			if count != 1 {
				t.Errorf("%dx%d: pixel (%d,%d) covered %d times", s.width, s.height, i%s.width, i/s.width, count)
			}
		}
	}
}

func TestNewTileGrid_InvalidInput(t *testing.T) {
	if tiles := NewTileGrid(0, 10, 16); len(tiles) != 0 {
		t.Errorf("Expected no tiles for empty image, got %d", len(tiles))
	}
	if tiles := NewTileGrid(10, 10, 0); len(tiles) != 0 {
		t.Errorf("Expected no tiles for zero tile size, got %d", len(tiles))
	}
}
