// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package linear

// Transform is an affine 3D transform made of a
// linear part (Basis) and a translation (Origin).
// The zero value is not the identity; use I or
// Identity.
type Transform struct {
	Basis  M3
	Origin V3
}

// Identity returns the identity transform.
func Identity() (t Transform) {
	t.I()
	return
}

// I makes t an identity transform.
func (t *Transform) I() {
	t.Basis.I()
	t.Origin = V3{}
}

// Mul sets t to contain l ⋅ r, that is, r is
// applied first.
func (t *Transform) Mul(l, r *Transform) {
	var o V3
	o.Mul(&l.Basis, &r.Origin)
	o.Add(&o, &l.Origin)
	t.Basis.Mul(&l.Basis, &r.Basis)
	t.Origin = o
}

// Xform returns the point v transformed by t.
func (t *Transform) Xform(v V3) V3 {
	v.Mul(&t.Basis, &v)
	v.Add(&v, &t.Origin)
	return v
}

// XformAABB returns b transformed by t.
// The result is the smallest AABB that encloses
// the transformed box.
func (t *Transform) XformAABB(b AABB) (r AABB) {
	for i := range 3 {
		pos := t.Origin[i]
		size := float32(0)
		for j := range 3 {
			e := t.Basis[j][i]
			pos += e * b.Pos[j]
			d := e * b.Size[j]
			if d < 0 {
				pos += d
				size -= d
			} else {
				size += d
			}
		}
		r.Pos[i] = pos
		r.Size[i] = size
	}
	return
}

// M4 returns t as a 4x4 matrix.
func (t *Transform) M4() M4 {
	b := &t.Basis
	return M4{
		{b[0][0], b[0][1], b[0][2]},
		{b[1][0], b[1][1], b[1][2]},
		{b[2][0], b[2][1], b[2][2]},
		{t.Origin[0], t.Origin[1], t.Origin[2], 1},
	}
}
