package math3d

import "math"

// Mat3 is a 3x3 linear transform stored in column-major order, the same
// layout as Mat4.
//
// Memory layout (indices):
// | 0  3  6 |
// | 1  4  7 |
// | 2  5  8 |
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromSlice builds a matrix from values given in row-major order.
// Missing values are zero and extra values are ignored.
func Mat3FromSlice(values []float64) Mat3 {
	var m Mat3
	for i, v := range values {
		if i >= 9 {
			break
		}
		m.Set(i/3, i%3, v)
	}
	return m
}

// Scale3 creates a scaling matrix.
func Scale3(v Vec3) Mat3 {
	return Mat3{
		v.X, 0, 0,
		0, v.Y, 0,
		0, 0, v.Z,
	}
}

// Rotation3X creates a rotation around the X axis.
func Rotation3X(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		1, 0, 0,
		0, c, s,
		0, -s, c,
	}
}

// Rotation3Y creates a rotation around the Y axis.
func Rotation3Y(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		c, 0, -s,
		0, 1, 0,
		s, 0, c,
	}
}

// Rotation3Z creates a rotation around the Z axis.
func Rotation3Z(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	}
}

// Get returns the element at (row, col).
func (m Mat3) Get(row, col int) float64 {
	return m[row+col*3]
}

// Set sets the element at (row, col).
func (m *Mat3) Set(row, col int, val float64) {
	m[row+col*3] = val
}

// Row returns row i as a vector.
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[i], m[i+3], m[i+6]}
}

// Col returns column j as a vector.
func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[j*3], m[j*3+1], m[j*3+2]}
}

// Add returns the elementwise sum a + b.
//
//nolint:st1016 // a+b naming convention is clearer for matrix operations
func (a Mat3) Add(b Mat3) Mat3 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// AddAssign adds b to m in place.
func (m *Mat3) AddAssign(b Mat3) {
	*m = m.Add(b)
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for col := range 3 {
		for row := range 3 {
			var sum float64
			for k := range 3 {
				sum += a[row+k*3] * b[k+col*3]
			}
			m[row+col*3] = sum
		}
	}
	return m
}

// MulAssign replaces m with m * b.
func (m *Mat3) MulAssign(b Mat3) {
	*m = m.Mul(b)
}

// VecMul returns the row vector v multiplied by m (v × m), so component j of
// the result is the dot product of v with column j.
func (m Mat3) VecMul(v Vec3) Vec3 {
	return Vec3{
		v.X*m[0] + v.Y*m[1] + v.Z*m[2],
		v.X*m[3] + v.Y*m[4] + v.Z*m[5],
		v.X*m[6] + v.Y*m[7] + v.Z*m[8],
	}
}

// MulVec3 returns m × v treating v as a column vector.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Inverse returns the inverse of m. ok is false when m is singular, in
// which case the identity is returned.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	det := m.Determinant()
	if math.Abs(det) <= Epsilon {
		return Identity3(), false
	}
	invDet := 1 / det

	inv[0] = (m[4]*m[8] - m[7]*m[5]) * invDet
	inv[1] = -(m[1]*m[8] - m[7]*m[2]) * invDet
	inv[2] = (m[1]*m[5] - m[4]*m[2]) * invDet

	inv[3] = -(m[3]*m[8] - m[6]*m[5]) * invDet
	inv[4] = (m[0]*m[8] - m[6]*m[2]) * invDet
	inv[5] = -(m[0]*m[5] - m[3]*m[2]) * invDet

	inv[6] = (m[3]*m[7] - m[6]*m[4]) * invDet
	inv[7] = -(m[0]*m[7] - m[6]*m[1]) * invDet
	inv[8] = (m[0]*m[4] - m[3]*m[1]) * invDet

	return inv, true
}
