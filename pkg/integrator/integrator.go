package integrator

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Scene is the read-only view of a scene an integrator needs.
// Defined here to avoid importing the scene package.
type Scene interface {
	GetObjects() []*geometry.Object
	GetLights() []material.PointLight
}

// Integrator defines the interface for computing the color seen along a ray
type Integrator interface {
	// RayColor returns the color for the ray and whether it hit anything.
	// Misses return the background color.
	RayColor(ray core.Ray, scene Scene) (core.Color, bool)
}
