package core

import "math"

// Epsilon is the tolerance used for approximate float comparisons
const Epsilon = 1e-5

// ApproxEqual reports whether a and b differ by less than Epsilon
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Tuple2 is a two component tuple, used as a column of Matrix2
type Tuple2 struct {
	X, Y float64
}

// NewTuple2 creates a new Tuple2
func NewTuple2(x, y float64) Tuple2 {
	return Tuple2{X: x, Y: y}
}

// Add returns the component-wise sum
func (t Tuple2) Add(other Tuple2) Tuple2 {
	return Tuple2{t.X + other.X, t.Y + other.Y}
}

// Subtract returns the component-wise difference
func (t Tuple2) Subtract(other Tuple2) Tuple2 {
	return Tuple2{t.X - other.X, t.Y - other.Y}
}

// Multiply returns the tuple scaled by a scalar
func (t Tuple2) Multiply(scalar float64) Tuple2 {
	return Tuple2{t.X * scalar, t.Y * scalar}
}

// Dot returns the dot product
func (t Tuple2) Dot(other Tuple2) float64 {
	return t.X*other.X + t.Y*other.Y
}

// Length returns the magnitude of the tuple
func (t Tuple2) Length() float64 {
	return math.Sqrt(t.Dot(t))
}

// Normalize returns a unit tuple in the same direction
func (t Tuple2) Normalize() Tuple2 {
	length := t.Length()
	if length == 0 {
		return Tuple2{}
	}
	return t.Multiply(1.0 / length)
}

// At returns the i-th component (0=X, 1=Y)
func (t Tuple2) At(i int) float64 {
	if i == 0 {
		return t.X
	}
	return t.Y
}

// Tuple3 is a three component tuple, used as a column of Matrix3
type Tuple3 struct {
	X, Y, Z float64
}

// NewTuple3 creates a new Tuple3
func NewTuple3(x, y, z float64) Tuple3 {
	return Tuple3{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum
func (t Tuple3) Add(other Tuple3) Tuple3 {
	return Tuple3{t.X + other.X, t.Y + other.Y, t.Z + other.Z}
}

// Subtract returns the component-wise difference
func (t Tuple3) Subtract(other Tuple3) Tuple3 {
	return Tuple3{t.X - other.X, t.Y - other.Y, t.Z - other.Z}
}

// Multiply returns the tuple scaled by a scalar
func (t Tuple3) Multiply(scalar float64) Tuple3 {
	return Tuple3{t.X * scalar, t.Y * scalar, t.Z * scalar}
}

// Dot returns the dot product
func (t Tuple3) Dot(other Tuple3) float64 {
	return t.X*other.X + t.Y*other.Y + t.Z*other.Z
}

// Cross returns the cross product. Tuple3 has no w component, so it is always defined.
func (t Tuple3) Cross(other Tuple3) Tuple3 {
	return Tuple3{
		X: t.Y*other.Z - t.Z*other.Y,
		Y: t.Z*other.X - t.X*other.Z,
		Z: t.X*other.Y - t.Y*other.X,
	}
}

// Length returns the magnitude of the tuple
func (t Tuple3) Length() float64 {
	return math.Sqrt(t.Dot(t))
}

// Normalize returns a unit tuple in the same direction
func (t Tuple3) Normalize() Tuple3 {
	length := t.Length()
	if length == 0 {
		return Tuple3{}
	}
	return t.Multiply(1.0 / length)
}

// At returns the i-th component (0=X, 1=Y, 2=Z)
func (t Tuple3) At(i int) float64 {
	switch i {
	case 0:
		return t.X
	case 1:
		return t.Y
	default:
		return t.Z
	}
}

// drop returns the tuple with the i-th component removed
func (t Tuple3) drop(i int) Tuple2 {
	switch i {
	case 0:
		return Tuple2{t.Y, t.Z}
	case 1:
		return Tuple2{t.X, t.Z}
	default:
		return Tuple2{t.X, t.Y}
	}
}

// Tuple4 is a homogeneous coordinate. W == 1 marks a point, W == 0 a vector.
type Tuple4 struct {
	X, Y, Z, W float64
}

// NewTuple4 creates a new Tuple4
func NewTuple4(x, y, z, w float64) Tuple4 {
	return Tuple4{X: x, Y: y, Z: z, W: w}
}

// NewPoint creates a point (w = 1)
func NewPoint(x, y, z float64) Tuple4 {
	return Tuple4{X: x, Y: y, Z: z, W: 1}
}

// NewVector creates a vector (w = 0)
func NewVector(x, y, z float64) Tuple4 {
	return Tuple4{X: x, Y: y, Z: z, W: 0}
}

// IsPoint reports whether the tuple is a point
func (t Tuple4) IsPoint() bool {
	return t.W == 1
}

// IsVector reports whether the tuple is a vector
func (t Tuple4) IsVector() bool {
	return t.W == 0
}

// Add returns the component-wise sum
func (t Tuple4) Add(other Tuple4) Tuple4 {
	return Tuple4{t.X + other.X, t.Y + other.Y, t.Z + other.Z, t.W + other.W}
}

// Subtract returns the component-wise difference. point - point yields a vector.
func (t Tuple4) Subtract(other Tuple4) Tuple4 {
	return Tuple4{t.X - other.X, t.Y - other.Y, t.Z - other.Z, t.W - other.W}
}

// Negate returns the tuple with every component negated
func (t Tuple4) Negate() Tuple4 {
	return Tuple4{-t.X, -t.Y, -t.Z, -t.W}
}

// Multiply returns the tuple scaled by a scalar
func (t Tuple4) Multiply(scalar float64) Tuple4 {
	return Tuple4{t.X * scalar, t.Y * scalar, t.Z * scalar, t.W * scalar}
}

// Divide returns the tuple divided by a scalar
func (t Tuple4) Divide(scalar float64) Tuple4 {
	return t.Multiply(1.0 / scalar)
}

// Dot returns the dot product over all four components
func (t Tuple4) Dot(other Tuple4) float64 {
	return t.X*other.X + t.Y*other.Y + t.Z*other.Z + t.W*other.W
}

// Cross returns the cross product of two vectors.
// Either operand being a point yields ErrNotAVector.
func (t Tuple4) Cross(other Tuple4) (Tuple4, error) {
	if !t.IsVector() || !other.IsVector() {
		return Tuple4{}, ErrNotAVector
	}
	return NewVector(
		t.Y*other.Z-t.Z*other.Y,
		t.Z*other.X-t.X*other.Z,
		t.X*other.Y-t.Y*other.X,
	), nil
}

// LengthSquared returns the squared magnitude
func (t Tuple4) LengthSquared() float64 {
	return t.Dot(t)
}

// Length returns the magnitude
func (t Tuple4) Length() float64 {
	return math.Sqrt(t.LengthSquared())
}

// Normalize scales the tuple by 1/length. A zero length tuple is returned unchanged;
// callers are expected to pass non-degenerate vectors.
func (t Tuple4) Normalize() Tuple4 {
	length := t.Length()
	if length == 0 {
		return t
	}
	return t.Multiply(1.0 / length)
}

// Reflect reflects the vector around the given normal
func (t Tuple4) Reflect(normal Tuple4) Tuple4 {
	return t.Subtract(normal.Multiply(2 * t.Dot(normal)))
}

// At returns the i-th component (0=X, 1=Y, 2=Z, 3=W)
func (t Tuple4) At(i int) float64 {
	switch i {
	case 0:
		return t.X
	case 1:
		return t.Y
	case 2:
		return t.Z
	default:
		return t.W
	}
}

// ApproxEqual reports whether every component is within Epsilon
func (t Tuple4) ApproxEqual(other Tuple4) bool {
	return ApproxEqual(t.X, other.X) &&
		ApproxEqual(t.Y, other.Y) &&
		ApproxEqual(t.Z, other.Z) &&
		ApproxEqual(t.W, other.W)
}

// drop returns the tuple with the i-th component removed
func (t Tuple4) drop(i int) Tuple3 {
	switch i {
	case 0:
		return Tuple3{t.Y, t.Z, t.W}
	case 1:
		return Tuple3{t.X, t.Z, t.W}
	case 2:
		return Tuple3{t.X, t.Y, t.W}
	default:
		return Tuple3{t.X, t.Y, t.Z}
	}
}
