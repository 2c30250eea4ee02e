package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ShapeKind tags which primitive a Shape holds
type ShapeKind int

const (
	// KindSphere is a sphere centred on the object's position
	KindSphere ShapeKind = iota
)

func (k ShapeKind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape is a closed variant over the supported primitives.
// Only the parameters belonging to Kind are meaningful.
type Shape struct {
	Kind   ShapeKind
	Radius float64 // KindSphere
}

// NewSphere creates a sphere shape with the given object-space radius
func NewSphere(radius float64) Shape {
	return Shape{Kind: KindSphere, Radius: radius}
}

// NewUnitSphere creates a sphere of radius 1
func NewUnitSphere() Shape {
	return NewSphere(1.0)
}

// intersect returns the ray parameters where an object-space ray crosses the shape
func (s Shape) intersect(ray core.Ray, center core.Tuple4) (t1, t2 float64, ok bool) {
	switch s.Kind {
	case KindSphere:
		return intersectSphere(ray, center, s.Radius)
	default:
		return 0, 0, false
	}
}

// normalAt returns the unnormalized object-space normal at an object-space point
func (s Shape) normalAt(objectPoint, center core.Tuple4) core.Tuple4 {
	switch s.Kind {
	case KindSphere:
		return objectPoint.Subtract(center)
	default:
		return core.NewVector(0, 0, 0)
	}
}

// intersectSphere solves |o + t*d - center|^2 = r^2 for t.
// A tangent ray yields t1 == t2.
func intersectSphere(ray core.Ray, center core.Tuple4, radius float64) (float64, float64, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(center)

	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	invDenominator := 1.0 / (2.0 * a)
	return (-b - sqrtD) * invDenominator, (-b + sqrtD) * invDenominator, true
}
