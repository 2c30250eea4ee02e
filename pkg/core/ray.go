package core

// Ray represents a ray with an origin point and a direction vector
type Ray struct {
	Origin    Tuple4
	Direction Tuple4
}

// NewRay creates a new ray
func NewRay(origin, direction Tuple4) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Tuple4 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Transform applies m to both the origin and the direction
func (r Ray) Transform(m Matrix4) Ray {
	return Ray{
		Origin:    m.MultiplyTuple(r.Origin),
		Direction: m.MultiplyTuple(r.Direction),
	}
}
