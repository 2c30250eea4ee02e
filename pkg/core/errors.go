package core

import (
	"errors"
	"fmt"
)

// ErrSingularMatrix is returned when inverting a matrix whose determinant is zero
var ErrSingularMatrix = errors.New("matrix is not invertible")

// ErrNotAVector is returned when a vector-only operation receives a point
var ErrNotAVector = errors.New("operation requires vectors, got a point")

// SubmatrixIndexError reports a row or column outside the matrix dimension.
// It signals a caller bug rather than a runtime condition.
type SubmatrixIndexError struct {
	Row, Column int
	Size        int
}

func (e *SubmatrixIndexError) Error() string {
	return fmt.Sprintf("submatrix index (%d, %d) out of range for %dx%d matrix", e.Row, e.Column, e.Size, e.Size)
}
