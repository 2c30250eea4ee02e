package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// File is the JSON representation of a scene
type File struct {
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Group       string       `json:"group,omitempty"`
	Camera      CameraFile   `json:"camera"`
	Lights      []LightFile  `json:"lights"`
	Objects     []ObjectFile `json:"objects"`
}

// CameraFile places the camera with a look-at triple. Angles are in degrees.
type CameraFile struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	FieldOfView float64    `json:"fov"`
	From        [3]float64 `json:"from"`
	To          [3]float64 `json:"to"`
	Up          [3]float64 `json:"up"`
}

// LightFile is a point light
type LightFile struct {
	Position  [3]float64 `json:"position"`
	Intensity [3]float64 `json:"intensity"`
}

// ObjectFile describes one shape. Transforms are applied in list order.
type ObjectFile struct {
	Type       string          `json:"type"`
	Radius     *float64        `json:"radius,omitempty"`
	Position   [3]float64      `json:"position"`
	Transforms []TransformFile `json:"transforms,omitempty"`
	Material   *MaterialFile   `json:"material,omitempty"`
}

// TransformFile is a single transform step. Rotation angles are in degrees.
//
//	translate: [x, y, z]
//	scale:     [x, y, z]
//	rotate_x, rotate_y, rotate_z: [degrees]
//	shear:     [xy, xz, yx, yz, zx, zy]
type TransformFile struct {
	Type   string    `json:"type"`
	Values []float64 `json:"values"`
}

// MaterialFile overrides fields of the default Phong material
type MaterialFile struct {
	Color     *[3]float64 `json:"color,omitempty"`
	Ambient   *float64    `json:"ambient,omitempty"`
	Diffuse   *float64    `json:"diffuse,omitempty"`
	Specular  *float64    `json:"specular,omitempty"`
	Shininess *float64    `json:"shininess,omitempty"`
}

// Load reads a scene from a JSON file
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a JSON scene and builds it
func Decode(r io.Reader) (*Scene, error) {
	sf, err := decodeFile(r)
	if err != nil {
		return nil, err
	}
	return sf.Build()
}

func decodeFile(r io.Reader) (*File, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var sf File
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &sf, nil
}

// Build converts the file description into a renderable scene. Objects keep
// their file order as IDs. An object with a singular transform is still added
// and is skipped at render time.
func (sf *File) Build() (*Scene, error) {
	cameraConfig, err := sf.Camera.config()
	if err != nil {
		return nil, err
	}
	s, err := NewScene(cameraConfig)
	if err != nil {
		return nil, err
	}

	for _, l := range sf.Lights {
		s.AddLight(point(l.Position), color(l.Intensity))
	}

	for i, of := range sf.Objects {
		obj, err := of.build()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.AddObject(obj)
	}

	return s, nil
}

func (cf CameraFile) config() (renderer.CameraConfig, error) {
	up := cf.Up
	if up == ([3]float64{}) {
		up = [3]float64{0, 1, 0}
	}
	fov := cf.FieldOfView
	if fov == 0 {
		fov = 45
	}

	view, err := core.ViewTransform(point(cf.From), point(cf.To), vector(up))
	if err != nil {
		return renderer.CameraConfig{}, fmt.Errorf("camera: %w", err)
	}
	return renderer.CameraConfig{
		Width:       cf.Width,
		Height:      cf.Height,
		FieldOfView: degreesToRadians(fov),
		Transform:   view,
	}, nil
}

func (of ObjectFile) build() (*geometry.Object, error) {
	var shape geometry.Shape
	switch of.Type {
	case "sphere", "":
		radius := 1.0
		if of.Radius != nil {
			radius = *of.Radius
		}
		if radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %g", radius)
		}
		shape = geometry.NewSphere(radius)
	default:
		return nil, fmt.Errorf("unsupported shape type %q", of.Type)
	}

	ops := make([]core.Matrix4, 0, len(of.Transforms))
	for j, tf := range of.Transforms {
		m, err := tf.matrix()
		if err != nil {
			return nil, fmt.Errorf("transform %d: %w", j, err)
		}
		ops = append(ops, m)
	}

	return geometry.NewObject(point(of.Position), shape, core.Compose(ops...), of.Material.phong()), nil
}

func (tf TransformFile) matrix() (core.Matrix4, error) {
	want := map[string]int{
		"translate": 3, "scale": 3, "shear": 6,
		"rotate_x": 1, "rotate_y": 1, "rotate_z": 1,
	}
	n, ok := want[tf.Type]
	if !ok {
		return core.Matrix4{}, fmt.Errorf("unknown transform type %q", tf.Type)
	}
	if len(tf.Values) != n {
		return core.Matrix4{}, fmt.Errorf("%s takes %d values, got %d", tf.Type, n, len(tf.Values))
	}

	v := tf.Values
	switch tf.Type {
	case "translate":
		return core.Translation(v[0], v[1], v[2]), nil
	case "scale":
		return core.Scaling(v[0], v[1], v[2]), nil
	case "shear":
		return core.Shearing(v[0], v[1], v[2], v[3], v[4], v[5]), nil
	case "rotate_x":
		return core.RotationX(degreesToRadians(v[0])), nil
	case "rotate_y":
		return core.RotationY(degreesToRadians(v[0])), nil
	default:
		return core.RotationZ(degreesToRadians(v[0])), nil
	}
}

// phong applies the overrides to the default material. A nil receiver yields the default.
func (mf *MaterialFile) phong() material.Phong {
	m := material.DefaultPhong()
	if mf == nil {
		return m
	}
	if mf.Color != nil {
		m.Color = color(*mf.Color)
	}
	if mf.Ambient != nil {
		m.Ambient = *mf.Ambient
	}
	if mf.Diffuse != nil {
		m.Diffuse = *mf.Diffuse
	}
	if mf.Specular != nil {
		m.Specular = *mf.Specular
	}
	if mf.Shininess != nil {
		m.Shininess = *mf.Shininess
	}
	return m
}

func point(v [3]float64) core.Tuple4  { return core.NewPoint(v[0], v[1], v[2]) }
func vector(v [3]float64) core.Tuple4 { return core.NewVector(v[0], v[1], v[2]) }
func color(v [3]float64) core.Color   { return core.NewColor(v[0], v[1], v[2]) }

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
