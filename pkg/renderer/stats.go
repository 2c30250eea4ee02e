package renderer

import "time"

// TileStats counts what happened while rendering one tile
type TileStats struct {
	Pixels int // Pixels rendered
	Hits   int // Pixels whose primary ray hit an object
}

// RenderStats contains statistics about a complete render
type RenderStats struct {
	Width          int
	Height         int
	TotalPixels    int           // Total number of pixels rendered
	Hits           int           // Pixels whose primary ray hit an object
	Tiles          int           // Number of tiles rendered
	Workers        int           // Number of parallel workers used
	SkippedObjects int           // Objects left out because their transform is singular
	Duration       time.Duration // Wall time from submission to merged canvas
}

// add accumulates a tile's counts into the render totals
func (s *RenderStats) add(tile TileStats) {
	s.TotalPixels += tile.Pixels
	s.Hits += tile.Hits
	s.Tiles++
}

// Coverage returns the fraction of pixels that hit an object
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalPixels)
}
