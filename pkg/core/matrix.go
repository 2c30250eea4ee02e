package core

// Matrices are stored column-major: m[c] is the c-th column.

// Matrix2 is a 2x2 matrix
type Matrix2 [2]Tuple2

// Matrix3 is a 3x3 matrix
type Matrix3 [3]Tuple3

// Matrix4 is a 4x4 matrix used for affine transforms in homogeneous coordinates
type Matrix4 [4]Tuple4

// NewMatrix2 creates a Matrix2 from its columns
func NewMatrix2(c0, c1 Tuple2) Matrix2 {
	return Matrix2{c0, c1}
}

// At returns the element at row, col
func (m Matrix2) At(row, col int) float64 {
	return m[col].At(row)
}

// Transpose returns the matrix with rows and columns swapped
func (m Matrix2) Transpose() Matrix2 {
	return Matrix2{
		{m[0].X, m[1].X},
		{m[0].Y, m[1].Y},
	}
}

// Determinant returns ad - bc
func (m Matrix2) Determinant() float64 {
	return m[0].X*m[1].Y - m[1].X*m[0].Y
}

// NewMatrix3 creates a Matrix3 from its columns
func NewMatrix3(c0, c1, c2 Tuple3) Matrix3 {
	return Matrix3{c0, c1, c2}
}

// Identity3 returns the 3x3 identity matrix
func Identity3() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// At returns the element at row, col
func (m Matrix3) At(row, col int) float64 {
	return m[col].At(row)
}

// Transpose returns the matrix with rows and columns swapped
func (m Matrix3) Transpose() Matrix3 {
	return Matrix3{
		{m[0].X, m[1].X, m[2].X},
		{m[0].Y, m[1].Y, m[2].Y},
		{m[0].Z, m[1].Z, m[2].Z},
	}
}

// Submatrix removes the given row and column
func (m Matrix3) Submatrix(row, col int) (Matrix2, error) {
	if row < 0 || row >= 3 || col < 0 || col >= 3 {
		return Matrix2{}, &SubmatrixIndexError{Row: row, Column: col, Size: 3}
	}
	return m.submatrix(row, col), nil
}

func (m Matrix3) submatrix(row, col int) Matrix2 {
	var sub Matrix2
	i := 0
	for c := 0; c < 3; c++ {
		if c == col {
			continue
		}
		sub[i] = m[c].drop(row)
		i++
	}
	return sub
}

// Minor returns the determinant of the submatrix at row, col
func (m Matrix3) Minor(row, col int) (float64, error) {
	sub, err := m.Submatrix(row, col)
	if err != nil {
		return 0, err
	}
	return sub.Determinant(), nil
}

// Cofactor returns the minor at row, col negated when row+col is odd
func (m Matrix3) Cofactor(row, col int) (float64, error) {
	if _, err := m.Submatrix(row, col); err != nil {
		return 0, err
	}
	return m.cofactor(row, col), nil
}

func (m Matrix3) cofactor(row, col int) float64 {
	minor := m.submatrix(row, col).Determinant()
	if (row+col)%2 != 0 {
		return -minor
	}
	return minor
}

// Determinant expands along the first column
func (m Matrix3) Determinant() float64 {
	det := 0.0
	for r := 0; r < 3; r++ {
		det += m[0].At(r) * m.cofactor(r, 0)
	}
	return det
}

// NewMatrix4 creates a Matrix4 from its columns
func NewMatrix4(c0, c1, c2, c3 Tuple4) Matrix4 {
	return Matrix4{c0, c1, c2, c3}
}

// NewMatrix4FromRows creates a Matrix4 from its rows, which reads naturally in source
func NewMatrix4FromRows(r0, r1, r2, r3 Tuple4) Matrix4 {
	return Matrix4{r0, r1, r2, r3}.Transpose()
}

// Identity4 returns the 4x4 identity matrix
func Identity4() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// At returns the element at row, col
func (m Matrix4) At(row, col int) float64 {
	return m[col].At(row)
}

// Row returns the given row as a tuple
func (m Matrix4) Row(row int) Tuple4 {
	return Tuple4{m[0].At(row), m[1].At(row), m[2].At(row), m[3].At(row)}
}

// Multiply returns m * other
func (m Matrix4) Multiply(other Matrix4) Matrix4 {
	return Matrix4{
		m.MultiplyTuple(other[0]),
		m.MultiplyTuple(other[1]),
		m.MultiplyTuple(other[2]),
		m.MultiplyTuple(other[3]),
	}
}

// MultiplyTuple returns m * t
func (m Matrix4) MultiplyTuple(t Tuple4) Tuple4 {
	return m[0].Multiply(t.X).
		Add(m[1].Multiply(t.Y)).
		Add(m[2].Multiply(t.Z)).
		Add(m[3].Multiply(t.W))
}

// Scale multiplies every element by a scalar
func (m Matrix4) Scale(scalar float64) Matrix4 {
	return Matrix4{
		m[0].Multiply(scalar),
		m[1].Multiply(scalar),
		m[2].Multiply(scalar),
		m[3].Multiply(scalar),
	}
}

// Transpose returns the matrix with rows and columns swapped
func (m Matrix4) Transpose() Matrix4 {
	return Matrix4{m.Row(0), m.Row(1), m.Row(2), m.Row(3)}
}

// Submatrix removes the given row and column
func (m Matrix4) Submatrix(row, col int) (Matrix3, error) {
	if row < 0 || row >= 4 || col < 0 || col >= 4 {
		return Matrix3{}, &SubmatrixIndexError{Row: row, Column: col, Size: 4}
	}
	return m.submatrix(row, col), nil
}

func (m Matrix4) submatrix(row, col int) Matrix3 {
	var sub Matrix3
	i := 0
	for c := 0; c < 4; c++ {
		if c == col {
			continue
		}
		sub[i] = m[c].drop(row)
		i++
	}
	return sub
}

// Minor returns the determinant of the submatrix at row, col
func (m Matrix4) Minor(row, col int) (float64, error) {
	sub, err := m.Submatrix(row, col)
	if err != nil {
		return 0, err
	}
	return sub.Determinant(), nil
}

// Cofactor returns the minor at row, col negated when row+col is odd
func (m Matrix4) Cofactor(row, col int) (float64, error) {
	if _, err := m.Submatrix(row, col); err != nil {
		return 0, err
	}
	return m.cofactor(row, col), nil
}

func (m Matrix4) cofactor(row, col int) float64 {
	minor := m.submatrix(row, col).Determinant()
	if (row+col)%2 != 0 {
		return -minor
	}
	return minor
}

// Determinant expands along the first column
func (m Matrix4) Determinant() float64 {
	det := 0.0
	for r := 0; r < 4; r++ {
		det += m[0].At(r) * m.cofactor(r, 0)
	}
	return det
}

// Inverse returns the adjugate scaled by 1/determinant,
// or ErrSingularMatrix when the determinant is zero.
func (m Matrix4) Inverse() (Matrix4, error) {
	det := m.Determinant()
	if det == 0 {
		return Matrix4{}, ErrSingularMatrix
	}

	// Column c of the adjugate is row c of the cofactor matrix
	var adjugate Matrix4
	for c := 0; c < 4; c++ {
		adjugate[c] = Tuple4{
			m.cofactor(c, 0),
			m.cofactor(c, 1),
			m.cofactor(c, 2),
			m.cofactor(c, 3),
		}
	}
	return adjugate.Scale(1.0 / det), nil
}

// IsInvertible reports whether the determinant is non-zero
func (m Matrix4) IsInvertible() bool {
	return m.Determinant() != 0
}

// ApproxEqual reports whether every element is within Epsilon
func (m Matrix4) ApproxEqual(other Matrix4) bool {
	for c := 0; c < 4; c++ {
		if !m[c].ApproxEqual(other[c]) {
			return false
		}
	}
	return true
}
