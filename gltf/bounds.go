// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"encoding/base64"
	"encoding/binary"
	"math"
	"strings"

	"github.com/gviegas/visual/linear"
)

const position = "POSITION"

// MeshBounds returns the AABB that encloses every
// primitive of f.Meshes[mesh].
// The POSITION accessor's min/max are used when
// present. Otherwise the positions are read from the
// accessor's data, which must be embedded (either in
// the GLB BIN chunk or as a base64 data URI).
func (f *GLTF) MeshBounds(mesh int) (linear.AABB, error) {
	if badIndex(int64(mesh), len(f.Meshes)) {
		return linear.AABB{}, newErr("invalid mesh index")
	}
	var (
		box   linear.AABB
		found bool
	)
	for _, p := range f.Meshes[mesh].Primitives {
		i, ok := p.Attributes[position]
		if !ok {
			continue
		}
		b, err := f.accessorBounds(&f.Accessors[i])
		if err != nil {
			return linear.AABB{}, err
		}
		if found {
			box = box.Merge(&b)
		} else {
			box, found = b, true
		}
	}
	if !found {
		return linear.AABB{}, newErr("mesh has no POSITION attribute")
	}
	return box, nil
}

func (f *GLTF) accessorBounds(a *Accessor) (linear.AABB, error) {
	if a.Type != VEC3 || a.ComponentType != FLOAT {
		return linear.AABB{}, newErr("POSITION accessor must be FLOAT VEC3")
	}
	if len(a.Min) == 3 && len(a.Max) == 3 {
		lo := linear.V3{a.Min[0], a.Min[1], a.Min[2]}
		hi := linear.V3{a.Max[0], a.Max[1], a.Max[2]}
		return linear.FromPoints(lo, hi), nil
	}
	if a.BufferView == nil {
		// Zero-initialized.
		return linear.AABB{}, nil
	}
	view := &f.BufferViews[*a.BufferView]
	data, err := f.bufferData(view.Buffer)
	if err != nil {
		return linear.AABB{}, err
	}
	stride := view.ByteStride
	if stride == 0 {
		stride = 12
	}
	if a.ByteOffset > view.ByteLength || a.Count > (view.ByteLength-12)/stride+1 {
		return linear.AABB{}, newErr("POSITION accessor out of bounds")
	}
	off := view.ByteOffset + a.ByteOffset
	end := off + (a.Count-1)*stride + 12
	if end > view.ByteOffset+view.ByteLength || end > int64(len(data)) {
		return linear.AABB{}, newErr("POSITION accessor out of bounds")
	}
	pts := make([]linear.V3, a.Count)
	for i := range pts {
		p := data[off+int64(i)*stride:]
		for j := range 3 {
			pts[i][j] = math.Float32frombits(binary.LittleEndian.Uint32(p[j*4:]))
		}
	}
	return linear.FromPoints(pts...), nil
}

// bufferData returns the contents of f.Buffers[i].
// External URIs are not resolved.
func (f *GLTF) bufferData(i int64) ([]byte, error) {
	buf := &f.Buffers[i]
	switch {
	case buf.URI == "" && i == 0 && f.bin != nil:
		return f.bin, nil
	case strings.HasPrefix(buf.URI, "data:"):
		_, enc, ok := strings.Cut(buf.URI, ";base64,")
		if !ok {
			return nil, newErr("data URI is not base64")
		}
		b, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, newErr("invalid base64 data URI")
		}
		return b, nil
	}
	return nil, newErr("buffer data is not embedded")
}
