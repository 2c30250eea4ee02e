package core

import (
	"fmt"
	"math"
)

// Translation returns a transform that moves points by (x, y, z). Vectors are unaffected.
func Translation(x, y, z float64) Matrix4 {
	return NewMatrix4FromRows(
		Tuple4{1, 0, 0, x},
		Tuple4{0, 1, 0, y},
		Tuple4{0, 0, 1, z},
		Tuple4{0, 0, 0, 1},
	)
}

// Scaling returns an axis-aligned scale transform
func Scaling(x, y, z float64) Matrix4 {
	return NewMatrix4FromRows(
		Tuple4{x, 0, 0, 0},
		Tuple4{0, y, 0, 0},
		Tuple4{0, 0, z, 0},
		Tuple4{0, 0, 0, 1},
	)
}

// RotationX returns a rotation around the X axis by the given angle in radians
func RotationX(radians float64) Matrix4 {
	sin, cos := math.Sincos(radians)
	return NewMatrix4FromRows(
		Tuple4{1, 0, 0, 0},
		Tuple4{0, cos, -sin, 0},
		Tuple4{0, sin, cos, 0},
		Tuple4{0, 0, 0, 1},
	)
}

// RotationY returns a rotation around the Y axis by the given angle in radians
func RotationY(radians float64) Matrix4 {
	sin, cos := math.Sincos(radians)
	return NewMatrix4FromRows(
		Tuple4{cos, 0, sin, 0},
		Tuple4{0, 1, 0, 0},
		Tuple4{-sin, 0, cos, 0},
		Tuple4{0, 0, 0, 1},
	)
}

// RotationZ returns a rotation around the Z axis by the given angle in radians
func RotationZ(radians float64) Matrix4 {
	sin, cos := math.Sincos(radians)
	return NewMatrix4FromRows(
		Tuple4{cos, -sin, 0, 0},
		Tuple4{sin, cos, 0, 0},
		Tuple4{0, 0, 1, 0},
		Tuple4{0, 0, 0, 1},
	)
}

// Shearing returns a transform that moves each component in proportion to the others.
// xy is "x moved in proportion to y", and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix4 {
	return NewMatrix4FromRows(
		Tuple4{1, xy, xz, 0},
		Tuple4{yx, 1, yz, 0},
		Tuple4{zx, zy, 1, 0},
		Tuple4{0, 0, 0, 1},
	)
}

// Compose chains transforms in the order they should be applied.
// Compose(scale, rotate, translate) == translate * rotate * scale.
func Compose(ops ...Matrix4) Matrix4 {
	result := Identity4()
	for _, op := range ops {
		result = op.Multiply(result)
	}
	return result
}

// ViewTransform orients the world relative to an eye at from looking at to.
// up must be a vector; it only needs to point roughly upward.
func ViewTransform(from, to, up Tuple4) (Matrix4, error) {
	forward := to.Subtract(from).Normalize()
	left, err := forward.Cross(up.Normalize())
	if err != nil {
		return Matrix4{}, fmt.Errorf("view transform: %w", err)
	}
	trueUp, err := left.Cross(forward)
	if err != nil {
		return Matrix4{}, fmt.Errorf("view transform: %w", err)
	}

	orientation := NewMatrix4FromRows(
		Tuple4{left.X, left.Y, left.Z, 0},
		Tuple4{trueUp.X, trueUp.Y, trueUp.Z, 0},
		Tuple4{-forward.X, -forward.Y, -forward.Z, 0},
		Tuple4{0, 0, 0, 1},
	)
	return orientation.Multiply(Translation(-from.X, -from.Y, -from.Z)), nil
}
