// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package gltf implements decoding of the glTF 2.0
// subset needed to extract mesh geometry bounds.
package gltf

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gviegas/visual/linear"
)

// Root glTF object.
// Only the properties that describe mesh geometry are
// decoded.
type GLTF struct {
	ExtensionsUsed     []string   `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string   `json:"extensionsRequired,omitempty"`
	Accessors          []Accessor `json:"accessors,omitempty"`
	Asset              struct {
		Generator  string `json:"generator,omitempty"`
		Version    string `json:"version"`
		MinVersion string `json:"minVersion,omitempty"`
	} `json:"asset"`
	Buffers     []Buffer     `json:"buffers,omitempty"`
	BufferViews []BufferView `json:"bufferViews,omitempty"`
	Meshes      []Mesh       `json:"meshes,omitempty"`
	Nodes       []Node       `json:"nodes,omitempty"`
	Scene       *int64       `json:"scene,omitempty"`
	Scenes      []Scene      `json:"scenes,omitempty"`

	// Contents of the BIN chunk of a GLB blob.
	// It is the data of the first buffer when that
	// buffer has no URI.
	bin []byte
}

// glTF.accessors' element.
type Accessor struct {
	BufferView    *int64    `json:"bufferView,omitempty"`
	ByteOffset    int64     `json:"byteOffset,omitempty"` // Default is 0.
	ComponentType int64     `json:"componentType"`
	Normalized    bool      `json:"normalized,omitempty"`
	Count         int64     `json:"count"`
	Type          string    `json:"type"`
	Max           []float32 `json:"max,omitempty"`
	Min           []float32 `json:"min,omitempty"`
	Name          string    `json:"name,omitempty"`
}

// accessor.componentType values.
const (
	BYTE           = 5120
	UNSIGNED_BYTE  = 5121
	SHORT          = 5122
	UNSIGNED_SHORT = 5123
	UNSIGNED_INT   = 5125
	FLOAT          = 5126
)

// accessor.type values.
const (
	SCALAR = "SCALAR"
	VEC2   = "VEC2"
	VEC3   = "VEC3"
	VEC4   = "VEC4"
	MAT2   = "MAT2"
	MAT3   = "MAT3"
	MAT4   = "MAT4"
)

// glTF.buffers' element.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int64  `json:"byteLength"`
	Name       string `json:"name,omitempty"`
}

// glTF.bufferViews' element.
type BufferView struct {
	Buffer     int64  `json:"buffer"`
	ByteOffset int64  `json:"byteOffset,omitempty"` // Default is 0.
	ByteLength int64  `json:"byteLength"`
	ByteStride int64  `json:"byteStride,omitempty"` // 0 for tightly packed.
	Name       string `json:"name,omitempty"`
}

// glTF.meshes' element.
type Mesh struct {
	Primitives []Primitive `json:"primitives"`
	Name       string      `json:"name,omitempty"`
}

// mesh.primitives' element.
type Primitive struct {
	Attributes map[string]int64 `json:"attributes"`
	Indices    *int64           `json:"indices,omitempty"`
	Material   *int64           `json:"material,omitempty"`
	Mode       *int64           `json:"mode,omitempty"` // Default is 4.
}

// glTF.nodes' element.
type Node struct {
	Children    []int64      `json:"children,omitempty"`
	Matrix      *[16]float32 `json:"matrix,omitempty"` // Default is identity.
	Mesh        *int64       `json:"mesh,omitempty"`
	Rotation    *[4]float32  `json:"rotation,omitempty"`    // Default is [0, 0, 0, 1].
	Scale       *[3]float32  `json:"scale,omitempty"`       // Default is [1, 1, 1].
	Translation *[3]float32  `json:"translation,omitempty"` // Default is [0, 0, 0].
	Name        string       `json:"name,omitempty"`
}

// glTF.scenes' element.
type Scene struct {
	Nodes []int64 `json:"nodes,omitempty"`
	Name  string  `json:"name,omitempty"`
}

// Decode decodes a glTF document from r.
// r may contain either JSON or a GLB blob.
// The document is checked before being returned.
func Decode(r io.Reader) (*GLTF, error) {
	br := bufio.NewReader(r)
	var (
		js  io.Reader = br
		bin []byte
	)
	if b, err := br.Peek(4); err == nil && isMagic(b) {
		jsb, binb, err := readGLB(br)
		if err != nil {
			return nil, err
		}
		js, bin = bytes.NewReader(jsb), binb
	}
	var f GLTF
	if err := json.NewDecoder(js).Decode(&f); err != nil {
		return nil, fmt.Errorf("gltf: %w", err)
	}
	f.bin = bin
	if err := f.Check(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Transform returns the local transform of n.
// It is either n.Matrix or the composition of
// n.Translation, n.Rotation and n.Scale (scale is
// applied first).
func (n *Node) Transform() linear.Transform {
	var t linear.Transform
	if m := n.Matrix; m != nil {
		for i := range 3 {
			copy(t.Basis[i][:], m[i*4:i*4+3])
		}
		copy(t.Origin[:], m[12:15])
		return t
	}
	t.I()
	if r := n.Rotation; r != nil {
		q := linear.Q{V: linear.V3{r[0], r[1], r[2]}, R: r[3]}
		t.Basis.RotateQ(&q)
	}
	if s := n.Scale; s != nil {
		var m linear.M3
		m.Scale(s[0], s[1], s[2])
		t.Basis.Mul(&t.Basis, &m)
	}
	if p := n.Translation; p != nil {
		t.Origin = linear.V3(*p)
	}
	return t
}
