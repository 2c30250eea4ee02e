package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// testScene is a minimal Scene implementation for integrator tests
type testScene struct {
	objects []*geometry.Object
	lights  []material.PointLight
}

func (s *testScene) GetObjects() []*geometry.Object   { return s.objects }
func (s *testScene) GetLights() []material.PointLight { return s.lights }

func newTestScene() *testScene {
	outer := material.NewPhong(core.NewColor(0.8, 1.0, 0.6), 0.1, 0.7, 0.2, 200)
	return &testScene{
		objects: []*geometry.Object{
			geometry.NewSphereObject(core.Identity4(), outer),
			geometry.NewSphereObject(core.Scaling(0.5, 0.5, 0.5), material.DefaultPhong()),
		},
		lights: []material.PointLight{
			material.NewPointLight(core.NewPoint(-10, 10, -10), core.White),
		},
	}
}

func colorsClose(a, b core.Color, tolerance float64) bool {
	return math.Abs(a.R-b.R) <= tolerance &&
		math.Abs(a.G-b.G) <= tolerance &&
		math.Abs(a.B-b.B) <= tolerance
}

func TestPhongIntegrator_Miss(t *testing.T) {
	integrator := NewPhongIntegrator()
	ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 1, 0))

	color, hit := integrator.RayColor(ray, newTestScene())
	if hit {
		t.Error("Expected miss")
	}
	if color != core.Black {
		t.Errorf("Expected black background, got %v", color)
	}
}

func TestPhongIntegrator_Background(t *testing.T) {
	integrator := &PhongIntegrator{Background: core.NewColor(0.2, 0.3, 0.4)}
	ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 1, 0))

	if color, _ := integrator.RayColor(ray, newTestScene()); color != integrator.Background {
		t.Errorf("Expected background %v, got %v", integrator.Background, color)
	}
}

func TestPhongIntegrator_ShadesNearestHit(t *testing.T) {
	integrator := NewPhongIntegrator()
	ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))

	color, hit := integrator.RayColor(ray, newTestScene())
	if !hit {
		t.Fatal("Expected hit")
	}

	expected := core.NewColor(0.38066, 0.47583, 0.2855)
	if !colorsClose(color, expected, 1e-4) {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestPhongIntegrator_ShadesFromInside(t *testing.T) {
	scene := newTestScene()
	scene.lights = []material.PointLight{
		material.NewPointLight(core.NewPoint(0, 0.25, 0), core.White),
	}
	integrator := NewPhongIntegrator()
	ray := core.NewRay(core.NewPoint(0, 0, 0), core.NewVector(0, 0, 1))

	info, ok := integrator.Trace(ray, scene)
	if !ok {
		t.Fatal("Expected hit")
	}
	if info.Object != scene.objects[1] || math.Abs(info.T-0.5) > 1e-9 || !info.Inside {
		t.Errorf("Expected inside hit on inner sphere at t=0.5, got t=%f inside=%v", info.T, info.Inside)
	}

	color, _ := integrator.RayColor(ray, scene)
	expected := core.NewColor(0.90498, 0.90498, 0.90498)
	if !colorsClose(color, expected, 1e-4) {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestPhongIntegrator_IgnoresSingularObjects(t *testing.T) {
	scene := newTestScene()
	scene.objects = append([]*geometry.Object{
		geometry.NewSphereObject(core.Scaling(0, 0, 0), material.DefaultPhong()),
	}, scene.objects...)

	integrator := NewPhongIntegrator()
	ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))

	info, ok := integrator.Trace(ray, scene)
	if !ok || info.Object != scene.objects[1] {
		t.Errorf("Expected hit on the outer sphere, got ok=%v", ok)
	}
}
