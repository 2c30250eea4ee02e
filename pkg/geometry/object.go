package geometry

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Object places a shape in the world with a transform and a material.
// The inverse transform is computed once at construction and reused for every ray.
type Object struct {
	position  core.Tuple4 // Shape center in object space
	shape     Shape
	transform core.Matrix4
	material  material.Phong

	inverse         core.Matrix4
	normalTransform core.Matrix4 // Transpose of inverse
	err             error        // Set when transform is not invertible
}

// NewObject creates an object. A singular transform does not fail construction;
// the object is kept but never produces intersections (see Err).
func NewObject(position core.Tuple4, shape Shape, transform core.Matrix4, mat material.Phong) *Object {
	o := &Object{
		position:  position,
		shape:     shape,
		transform: transform,
		material:  mat,
	}

	inverse, err := transform.Inverse()
	if err != nil {
		o.err = fmt.Errorf("%s object: %w", shape.Kind, err)
		return o
	}
	o.inverse = inverse
	o.normalTransform = inverse.Transpose()
	return o
}

// NewSphereObject creates a unit sphere at the origin with the given transform and material
func NewSphereObject(transform core.Matrix4, mat material.Phong) *Object {
	return NewObject(core.NewPoint(0, 0, 0), NewUnitSphere(), transform, mat)
}

// Position returns the shape center in object space
func (o *Object) Position() core.Tuple4 { return o.position }

// Shape returns the object's primitive
func (o *Object) Shape() Shape { return o.shape }

// Transform returns the object-to-world transform
func (o *Object) Transform() core.Matrix4 { return o.transform }

// Material returns the object's surface material
func (o *Object) Material() material.Phong { return o.material }

// Intersectable reports whether the transform could be inverted
func (o *Object) Intersectable() bool { return o.err == nil }

// Err reports why the object cannot be intersected, or nil
func (o *Object) Err() error { return o.err }

// Intersect returns every crossing of the world-space ray with the object,
// in ascending t. Tangent rays produce two equal records.
func (o *Object) Intersect(ray core.Ray) []Intersection {
	return o.AppendIntersections(nil, ray)
}

// AppendIntersections appends the object's intersections to xs and returns the extended slice
func (o *Object) AppendIntersections(xs []Intersection, ray core.Ray) []Intersection {
	if o.err != nil {
		return xs
	}

	local := ray.Transform(o.inverse)
	t1, t2, ok := o.shape.intersect(local, o.position)
	if !ok {
		return xs
	}
	return append(xs, Intersection{T: t1, Object: o}, Intersection{T: t2, Object: o})
}

// NormalAt returns the unit world-space surface normal at a world-space point on the object
func (o *Object) NormalAt(worldPoint core.Tuple4) core.Tuple4 {
	objectPoint := o.inverse.MultiplyTuple(worldPoint)
	objectNormal := o.shape.normalAt(objectPoint, o.position)

	worldNormal := o.normalTransform.MultiplyTuple(objectNormal)
	worldNormal.W = 0
	return worldNormal.Normalize()
}
