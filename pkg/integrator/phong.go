package integrator

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
)

// PhongIntegrator shades the nearest hit with local Phong lighting.
// There are no shadows or secondary rays.
type PhongIntegrator struct {
	Background core.Color
}

// NewPhongIntegrator creates a Phong integrator with a black background
func NewPhongIntegrator() *PhongIntegrator {
	return &PhongIntegrator{Background: core.Black}
}

// RayColor intersects the ray with every object and shades the closest visible hit
func (p *PhongIntegrator) RayColor(ray core.Ray, scene Scene) (core.Color, bool) {
	info, ok := p.Trace(ray, scene)
	if !ok {
		return p.Background, false
	}

	mat := info.Object.Material()
	return mat.LightingAll(scene.GetLights(), info.Point, info.Eye, info.Normal), true
}

// Trace finds the closest hit along ray and prepares it for shading
func (p *PhongIntegrator) Trace(ray core.Ray, scene Scene) (geometry.HitInfo, bool) {
	var xs []geometry.Intersection
	for _, obj := range scene.GetObjects() {
		xs = obj.AppendIntersections(xs, ray)
	}

	hit, ok := geometry.Hit(xs)
	if !ok {
		return geometry.HitInfo{}, false
	}
	return geometry.PrepareHit(hit, ray), true
}
