// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// AABB is an axis-aligned bounding box described by
// its minimum corner (Pos) and its extent (Size).
type AABB struct {
	Pos  V3
	Size V3
}

// End returns the maximum corner of b.
func (b *AABB) End() (e V3) {
	e.Add(&b.Pos, &b.Size)
	return
}

// HasNoVolume returns whether any extent of b is zero
// or less.
func (b *AABB) HasNoVolume() bool {
	return b.Size[0] <= 0 || b.Size[1] <= 0 || b.Size[2] <= 0
}

// Merge returns the smallest AABB that encloses
// both b and c.
func (b *AABB) Merge(c *AABB) (r AABB) {
	be, ce := b.End(), c.End()
	var e V3
	r.Pos.Min(&b.Pos, &c.Pos)
	e.Max(&be, &ce)
	r.Size.Sub(&e, &r.Pos)
	return
}

// FromPoints returns the smallest AABB that encloses
// every point in pts.
// It returns the zero AABB if pts is empty.
func FromPoints(pts ...V3) (r AABB) {
	if len(pts) == 0 {
		return
	}
	lo := V3{math32.Inf(1), math32.Inf(1), math32.Inf(1)}
	hi := V3{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)}
	for i := range pts {
		lo.Min(&lo, &pts[i])
		hi.Max(&hi, &pts[i])
	}
	r.Pos = lo
	r.Size.Sub(&hi, &lo)
	return
}
