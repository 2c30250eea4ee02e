package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Width       int          // Image width in pixels
	Height      int          // Image height in pixels
	FieldOfView float64      // Horizontal or vertical field of view in radians, whichever side is longer
	Transform   core.Matrix4 // World-to-camera transform; the zero matrix means identity
}

// Camera maps pixels to world-space rays. The camera sits at the origin of
// its own space looking toward -z, with the view plane at z = -1.
type Camera struct {
	width       int
	height      int
	fieldOfView float64
	transform   core.Matrix4
	inverse     core.Matrix4
	origin      core.Tuple4 // Eye position in world space

	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera. It fails when the image has no pixels or the
// transform cannot be inverted.
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("camera: invalid image size %dx%d", config.Width, config.Height)
	}

	transform := config.Transform
	if transform == (core.Matrix4{}) {
		transform = core.Identity4()
	}
	inverse, err := transform.Inverse()
	if err != nil {
		return nil, fmt.Errorf("camera transform: %w", err)
	}

	c := &Camera{
		width:       config.Width,
		height:      config.Height,
		fieldOfView: config.FieldOfView,
		transform:   transform,
		inverse:     inverse,
		origin:      inverse.MultiplyTuple(core.NewPoint(0, 0, 0)),
	}

	// The longer side of the image spans the full field of view
	halfView := math.Tan(config.FieldOfView / 2)
	aspect := float64(config.Width) / float64(config.Height)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(config.Width)

	return c, nil
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

func (c *Camera) FieldOfView() float64    { return c.fieldOfView }
func (c *Camera) Transform() core.Matrix4 { return c.transform }
func (c *Camera) HalfWidth() float64      { return c.halfWidth }
func (c *Camera) HalfHeight() float64     { return c.halfHeight }
func (c *Camera) PixelSize() float64      { return c.pixelSize }

// RayForPixel returns the ray from the eye through the center of pixel (x, y).
// (0, 0) is the top-left pixel.
func (c *Camera) RayForPixel(x, y int) core.Ray {
	// Offset from the edge of the canvas to the pixel's center
	xOffset := (float64(x) + 0.5) * c.pixelSize
	yOffset := (float64(y) + 0.5) * c.pixelSize

	// The camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MultiplyTuple(core.NewPoint(worldX, worldY, -1))
	direction := pixel.Subtract(c.origin).Normalize()

	return core.NewRay(c.origin, direction)
}
