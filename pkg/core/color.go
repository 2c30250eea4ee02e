package core

import "fmt"

// Color is an unclamped linear RGB triple
type Color struct {
	R, G, B float64
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the component-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the component-wise difference
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Hadamard returns the component-wise product of two colors
func (c Color) Hadamard(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Clamp returns a color with components clamped to [min, max]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// ApproxEqual reports whether every channel is within Epsilon
func (c Color) ApproxEqual(other Color) bool {
	return ApproxEqual(c.R, other.R) && ApproxEqual(c.G, other.G) && ApproxEqual(c.B, other.B)
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c.R, c.G, c.B)
}
