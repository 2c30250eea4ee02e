package material

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Phong holds the parameters of the Phong reflection model
type Phong struct {
	Color     core.Color // Base surface color
	Ambient   float64    // Ambient coefficient, typically 0..1
	Diffuse   float64    // Diffuse coefficient, typically 0..1
	Specular  float64    // Specular coefficient, typically 0..1
	Shininess float64    // Specular exponent, typically 10..200
}

// NewPhong creates a Phong material
func NewPhong(color core.Color, ambient, diffuse, specular, shininess float64) Phong {
	return Phong{
		Color:     color,
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
	}
}

// DefaultPhong returns a white material with ambient 0.1, diffuse 0.9, specular 0.9, shininess 200
func DefaultPhong() Phong {
	return NewPhong(core.White, 0.1, 0.9, 0.9, 200.0)
}

// WithColor returns a copy of the material with a different base color
func (m Phong) WithColor(color core.Color) Phong {
	m.Color = color
	return m
}

// Lighting evaluates the Phong model for a single light at a surface point.
// eye and normal must be unit vectors. The result is not clamped.
func (m Phong) Lighting(light PointLight, point, eye, normal core.Tuple4) core.Color {
	effectiveColor := m.Color.Hadamard(light.Intensity)
	ambient := effectiveColor.Multiply(m.Ambient)

	lightV := light.Position.Subtract(point).Normalize()
	lightDotNormal := lightV.Dot(normal)
	if lightDotNormal < 0 {
		// Light is on the other side of the surface
		return ambient
	}

	diffuse := effectiveColor.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Black
	reflectV := lightV.Negate().Reflect(normal)
	reflectDotEye := reflectV.Dot(eye)
	if reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular)
}

// LightingAll sums the contribution of every light. With no lights the result is black.
func (m Phong) LightingAll(lights []PointLight, point, eye, normal core.Tuple4) core.Color {
	color := core.Black
	for _, light := range lights {
		color = color.Add(m.Lighting(light, point, eye, normal))
	}
	return color
}
