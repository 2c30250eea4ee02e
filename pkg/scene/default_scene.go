package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene ID matches no built-in or file scene
var ErrUnknownScene = errors.New("unknown scene")

// builtinScene pairs a scene's metadata with its constructor
type builtinScene struct {
	info   SceneInfo
	create func(width, height int) (*Scene, error)
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Magenta unit sphere lit from the upper left",
		},
		create: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "spheres",
			Name:        "Spheres",
			Description: "Three spheres resting on a flattened sphere floor",
		},
		create: NewSpheresScene,
	},
	{
		info: SceneInfo{
			ID:          "solar",
			Name:        "Solar System",
			Description: "A row of planets beside a bright sun, lit by two lights",
		},
		create: NewSolarScene,
	},
}

// NewBuiltinScene creates the built-in scene with the given ID
func NewBuiltinScene(id string, width, height int) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.create(width, height)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// lookAtCamera builds a camera config looking from one point toward another
func lookAtCamera(width, height int, fov float64, from, to, up core.Tuple4) (renderer.CameraConfig, error) {
	view, err := core.ViewTransform(from, to, up)
	if err != nil {
		return renderer.CameraConfig{}, err
	}
	return renderer.CameraConfig{
		Width:       width,
		Height:      height,
		FieldOfView: fov,
		Transform:   view,
	}, nil
}

// NewDefaultScene creates a magenta unit sphere at the origin with a single white light
func NewDefaultScene(width, height int) (*Scene, error) {
	cameraConfig, err := lookAtCamera(width, height, math.Pi/4,
		core.NewPoint(0, 0, -5), core.NewPoint(0, 0, 0), core.NewVector(0, 1, 0))
	if err != nil {
		return nil, err
	}
	s, err := NewScene(cameraConfig)
	if err != nil {
		return nil, err
	}

	magenta := material.DefaultPhong().WithColor(core.NewColor(1, 0.2, 1))
	s.AddSphere(core.Identity4(), magenta)
	s.AddLight(core.NewPoint(-10, 10, -10), core.White)

	return s, nil
}

// NewSpheresScene creates three spheres of different sizes on a floor
func NewSpheresScene(width, height int) (*Scene, error) {
	cameraConfig, err := lookAtCamera(width, height, math.Pi/3,
		core.NewPoint(0, 1.5, -5), core.NewPoint(0, 1, 0), core.NewVector(0, 1, 0))
	if err != nil {
		return nil, err
	}
	s, err := NewScene(cameraConfig)
	if err != nil {
		return nil, err
	}

	// Floor: a sphere squashed flat
	floor := material.DefaultPhong().WithColor(core.NewColor(1, 0.9, 0.9))
	floor.Specular = 0
	s.AddSphere(core.Scaling(10, 0.01, 10), floor)

	middle := material.NewPhong(core.NewColor(0.1, 1, 0.5), 0.1, 0.7, 0.3, 200)
	s.AddSphere(core.Translation(-0.5, 1, 0.5), middle)

	right := material.NewPhong(core.NewColor(0.5, 1, 0.1), 0.1, 0.7, 0.3, 200)
	s.AddSphere(core.Compose(core.Scaling(0.5, 0.5, 0.5), core.Translation(1.5, 0.5, -0.5)), right)

	left := material.NewPhong(core.NewColor(1, 0.8, 0.1), 0.1, 0.7, 0.3, 200)
	s.AddSphere(core.Compose(core.Scaling(0.33, 0.33, 0.33), core.Translation(-1.5, 0.33, -0.75)), left)

	s.AddLight(core.NewPoint(-10, 10, -10), core.White)

	return s, nil
}

// NewSolarScene creates a sun with planets in a line along +x
func NewSolarScene(width, height int) (*Scene, error) {
	cameraConfig, err := lookAtCamera(width, height, math.Pi/3,
		core.NewPoint(4, 6, -12), core.NewPoint(4, 0, 0), core.NewVector(0, 1, 0))
	if err != nil {
		return nil, err
	}
	s, err := NewScene(cameraConfig)
	if err != nil {
		return nil, err
	}

	// High ambient makes the sun look self-lit
	sun := material.NewPhong(core.NewColor(1, 0.8, 0.2), 1.0, 0.2, 0, 10)
	s.AddSphere(core.Scaling(2, 2, 2), sun)

	planets := []struct {
		distance float64
		radius   float64
		color    core.Color
		tilt     float64
	}{
		{3.2, 0.3, core.NewColor(0.6, 0.6, 0.6), 0},
		{4.6, 0.5, core.NewColor(0.9, 0.7, 0.4), 0},
		{6.4, 0.55, core.NewColor(0.2, 0.4, 1.0), math.Pi / 8},
		{8.6, 0.9, core.NewColor(0.8, 0.5, 0.3), 0},
		{11.0, 0.4, core.NewColor(0.4, 0.9, 0.9), math.Pi / 6},
	}
	for _, p := range planets {
		// Squash slightly at the poles, then tilt and place
		transform := core.Compose(
			core.Scaling(p.radius, p.radius*0.95, p.radius),
			core.RotationZ(p.tilt),
			core.Translation(p.distance, 0, 0),
		)
		s.AddSphere(transform, material.DefaultPhong().WithColor(p.color))
	}

	s.AddLight(core.NewPoint(0, 3, -3), core.NewColor(0.8, 0.8, 0.7))
	s.AddLight(core.NewPoint(20, 20, -20), core.NewColor(0.2, 0.2, 0.3))

	return s, nil
}
