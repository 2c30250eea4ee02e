package material

import "github.com/df07/go-phong-raytracer/pkg/core"

// PointLight is a light source with no size emitting equally in all directions
type PointLight struct {
	Position  core.Tuple4 // Must be a point
	Intensity core.Color
}

// NewPointLight creates a point light
func NewPointLight(position core.Tuple4, intensity core.Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}
