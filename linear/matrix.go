// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package linear

// M3 is a column-major 3x3 matrix of float32.
type M3 [3]V3

// I makes m an identity matrix.
func (m *M3) I() { *m = M3{{1}, {0, 1}, {0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M3) Mul(l, r *M3) {
	var n M3
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M3) Transpose(n *M3) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Invert sets m to contain the inverse of n.
func (m *M3) Invert(n *M3) {
	s0 := n[1][1]*n[2][2] - n[1][2]*n[2][1]
	s1 := n[1][0]*n[2][2] - n[1][2]*n[2][0]
	s2 := n[1][0]*n[2][1] - n[1][1]*n[2][0]
	idet := 1 / (n[0][0]*s0 - n[0][1]*s1 + n[0][2]*s2)
	var k M3
	k[0][0] = s0 * idet
	k[0][1] = -(n[0][1]*n[2][2] - n[0][2]*n[2][1]) * idet
	k[0][2] = (n[0][1]*n[1][2] - n[0][2]*n[1][1]) * idet
	k[1][0] = -s1 * idet
	k[1][1] = (n[0][0]*n[2][2] - n[0][2]*n[2][0]) * idet
	k[1][2] = -(n[0][0]*n[1][2] - n[0][2]*n[1][0]) * idet
	k[2][0] = s2 * idet
	k[2][1] = -(n[0][0]*n[2][1] - n[0][1]*n[2][0]) * idet
	k[2][2] = (n[0][0]*n[1][1] - n[0][1]*n[1][0]) * idet
	*m = k
}

// RotateQ sets m to contain the rotation described by q.
// q must be a unit quaternion.
func (m *M3) RotateQ(q *Q) {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.R
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	*m = M3{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy)},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx)},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy)},
	}
}

// Scale sets m to contain a scale matrix.
func (m *M3) Scale(sx, sy, sz float32) { *m = M3{{sx}, {1: sy}, {2: sz}} }

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M4) Mul(l, r *M4) {
	var n M4
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M4) Transpose(n *M4) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Translate sets m to contain a translation matrix.
func (m *M4) Translate(x, y, z float32) { *m = M4{{1}, {1: 1}, {2: 1}, {x, y, z, 1}} }

// Scale sets m to contain a scale matrix.
func (m *M4) Scale(x, y, z float32) { *m = M4{{x}, {1: y}, {2: z}, {3: 1}} }

// RotateQ sets m to contain the rotation described by q.
// q must be a unit quaternion.
func (m *M4) RotateQ(q *Q) {
	var r M3
	r.RotateQ(q)
	*m = M4{
		{r[0][0], r[0][1], r[0][2]},
		{r[1][0], r[1][1], r[1][2]},
		{r[2][0], r[2][1], r[2][2]},
		{3: 1},
	}
}
