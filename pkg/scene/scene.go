package scene

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// ObjectID is a stable index into a scene's object arena
type ObjectID int

// Scene contains all the elements needed for rendering. Objects are stored
// in insertion order and never removed, so an ObjectID stays valid for the
// life of the scene. A scene must not be modified while it is being rendered.
type Scene struct {
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	Lights       []material.PointLight

	objects []*geometry.Object
}

// NewScene creates an empty scene viewed through the configured camera
func NewScene(cameraConfig renderer.CameraConfig) (*Scene, error) {
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, err
	}
	return &Scene{
		Camera:       camera,
		CameraConfig: cameraConfig,
	}, nil
}

// AddObject stores an object and returns its ID
func (s *Scene) AddObject(obj *geometry.Object) ObjectID {
	s.objects = append(s.objects, obj)
	return ObjectID(len(s.objects) - 1)
}

// AddSphere adds a unit sphere placed by transform
func (s *Scene) AddSphere(transform core.Matrix4, mat material.Phong) ObjectID {
	return s.AddObject(geometry.NewSphereObject(transform, mat))
}

// AddLight adds a point light to the scene
func (s *Scene) AddLight(position core.Tuple4, intensity core.Color) {
	s.Lights = append(s.Lights, material.NewPointLight(position, intensity))
}

// Object returns the object with the given ID
func (s *Scene) Object(id ObjectID) (*geometry.Object, bool) {
	if id < 0 || int(id) >= len(s.objects) {
		return nil, false
	}
	return s.objects[id], true
}

// Resize rebuilds the camera for a new image size, keeping its field of view and transform
func (s *Scene) Resize(width, height int) error {
	config := s.CameraConfig
	config.Width = width
	config.Height = height

	camera, err := renderer.NewCamera(config)
	if err != nil {
		return fmt.Errorf("resize scene: %w", err)
	}
	s.Camera = camera
	s.CameraConfig = config
	return nil
}

// GetObjects returns all objects in ID order. The slice must not be modified.
func (s *Scene) GetObjects() []*geometry.Object { return s.objects }

// GetLights returns the scene's point lights
func (s *Scene) GetLights() []material.PointLight { return s.Lights }

// GetCamera returns the camera
func (s *Scene) GetCamera() *renderer.Camera { return s.Camera }
