// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"errors"
)

func newErr(reason string) error {
	return errors.New("gltf: " + reason)
}

func badIndex(i int64, n int) bool { return i < 0 || i >= int64(n) }

// Check checks that f is valid glTF.
// Only the properties that GLTF decodes are checked.
func (f *GLTF) Check() error {
	if f.Asset.Version == "" {
		return newErr("missing GLTF.Asset.Version")
	}
	if s := f.Scene; s != nil && badIndex(*s, len(f.Scenes)) {
		return newErr("invalid GLTF.Scene index")
	}
	for i := range f.Accessors {
		if err := f.Accessors[i].Check(f); err != nil {
			return err
		}
	}
	for i := range f.BufferViews {
		if err := f.BufferViews[i].Check(f); err != nil {
			return err
		}
	}
	for i := range f.Meshes {
		if err := f.Meshes[i].Check(f); err != nil {
			return err
		}
	}
	for _, n := range f.Nodes {
		if n.Mesh != nil && badIndex(*n.Mesh, len(f.Meshes)) {
			return newErr("invalid Node.Mesh index")
		}
		for _, c := range n.Children {
			if badIndex(c, len(f.Nodes)) {
				return newErr("invalid Node.Children index")
			}
		}
	}
	if err := f.checkHierarchy(); err != nil {
		return err
	}
	for _, s := range f.Scenes {
		for _, n := range s.Nodes {
			if badIndex(n, len(f.Nodes)) {
				return newErr("invalid Scene.Nodes index")
			}
		}
	}
	return nil
}

// Check checks that a is valid glTF.accessors' element.
func (a *Accessor) Check(gltf *GLTF) error {
	if a.BufferView != nil && badIndex(*a.BufferView, len(gltf.BufferViews)) {
		return newErr("invalid Accessor.BufferView index")
	}
	if a.ByteOffset < 0 {
		return newErr("invalid Accessor.ByteOffset value")
	}
	switch a.ComponentType {
	case BYTE, UNSIGNED_BYTE, SHORT, UNSIGNED_SHORT, UNSIGNED_INT, FLOAT:
	default:
		return newErr("invalid Accessor.ComponentType value")
	}
	if a.Count < 1 {
		return newErr("invalid Accessor.Count value")
	}
	n := components(a.Type)
	if n == 0 {
		return newErr("invalid Accessor.Type value")
	}
	if (a.Max != nil && len(a.Max) != n) || (a.Min != nil && len(a.Min) != n) {
		return newErr("invalid Accessor.Max/Min length")
	}
	return nil
}

// Check checks that v is valid glTF.bufferViews' element.
func (v *BufferView) Check(gltf *GLTF) error {
	if badIndex(v.Buffer, len(gltf.Buffers)) {
		return newErr("invalid BufferView.Buffer index")
	}
	if v.ByteOffset < 0 || v.ByteLength < 1 {
		return newErr("invalid BufferView.ByteOffset/ByteLength value")
	}
	if v.ByteOffset+v.ByteLength > gltf.Buffers[v.Buffer].ByteLength {
		return newErr("BufferView out of Buffer bounds")
	}
	if v.ByteStride != 0 && (v.ByteStride < 4 || v.ByteStride > 252 || v.ByteStride%4 != 0) {
		return newErr("invalid BufferView.ByteStride value")
	}
	return nil
}

// Check checks that m is valid glTF.meshes' element.
func (m *Mesh) Check(gltf *GLTF) error {
	if len(m.Primitives) == 0 {
		return newErr("Mesh has no primitives")
	}
	for _, p := range m.Primitives {
		if len(p.Attributes) == 0 {
			return newErr("Primitive has no attributes")
		}
		for _, a := range p.Attributes {
			if badIndex(a, len(gltf.Accessors)) {
				return newErr("invalid Primitive.Attributes index")
			}
		}
		if p.Indices != nil && badIndex(*p.Indices, len(gltf.Accessors)) {
			return newErr("invalid Primitive.Indices index")
		}
		if p.Mode != nil && (*p.Mode < 0 || *p.Mode > 6) {
			return newErr("invalid Primitive.Mode value")
		}
	}
	return nil
}

// components returns the number of components of
// accessor type t, or 0 if t is not valid.
func components(t string) int {
	switch t {
	case SCALAR:
		return 1
	case VEC2:
		return 2
	case VEC3:
		return 3
	case VEC4, MAT2:
		return 4
	case MAT3:
		return 9
	case MAT4:
		return 16
	}
	return 0
}

// checkHierarchy checks that the nodes form a forest.
func (f *GLTF) checkHierarchy() error {
	parent := make([]int64, len(f.Nodes))
	for i := range parent {
		parent[i] = -1
	}
	for i, n := range f.Nodes {
		for _, c := range n.Children {
			if parent[c] >= 0 {
				return newErr("Node has more than one parent")
			}
			parent[c] = int64(i)
		}
	}
	for i := range f.Nodes {
		p := parent[i]
		for range f.Nodes {
			if p < 0 {
				break
			}
			p = parent[p]
		}
		if p >= 0 {
			return newErr("Node hierarchy has a cycle")
		}
	}
	return nil
}
