// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package visual

import (
	"fmt"
	"io"
	"os"

	"github.com/gviegas/visual/gltf"
	"github.com/gviegas/visual/linear"
	"github.com/gviegas/visual/object"
	"github.com/gviegas/visual/server"
)

// Changed is the signal that StaticMesh emits when
// its bounds change.
const Changed = "changed"

// StaticMesh is a mesh resource.
// Only its bounds are tracked; vertex data is owned
// by the rendering server.
type StaticMesh struct {
	object.Object

	srv  server.ResourceServer
	rid  server.RID
	aabb linear.AABB

	Name string
}

// NewStaticMesh creates a new mesh resource bounded
// by aabb.
func NewStaticMesh(srv server.ResourceServer, aabb linear.AABB) *StaticMesh {
	m := &StaticMesh{srv: srv, rid: srv.MeshCreate(), aabb: aabb}
	srv.MeshSetAABB(m.rid, aabb)
	return m
}

// DecodeStaticMesh creates a new mesh resource from
// a glTF document (JSON or GLB) read from r.
// mesh is the index of the glTF mesh to use.
func DecodeStaticMesh(srv server.ResourceServer, r io.Reader, mesh int) (*StaticMesh, error) {
	doc, err := gltf.Decode(r)
	if err != nil {
		return nil, err
	}
	aabb, err := doc.MeshBounds(mesh)
	if err != nil {
		return nil, err
	}
	m := NewStaticMesh(srv, aabb)
	m.Name = doc.Meshes[mesh].Name
	return m, nil
}

// LoadStaticMesh is like DecodeStaticMesh but reads
// from the named file.
func LoadStaticMesh(srv server.ResourceServer, name string, mesh int) (*StaticMesh, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("visual: %w", err)
	}
	defer f.Close()
	return DecodeStaticMesh(srv, f, mesh)
}

// RID returns the server mesh of m.
func (m *StaticMesh) RID() server.RID { return m.rid }

// AABB returns the bounds of m.
func (m *StaticMesh) AABB() linear.AABB { return m.aabb }

// SetAABB sets the bounds of m.
func (m *StaticMesh) SetAABB(aabb linear.AABB) {
	m.aabb = aabb
	m.srv.MeshSetAABB(m.rid, aabb)
	m.Emit(Changed)
}

// Free releases the server mesh.
// Calling Free more than once has no effect.
func (m *StaticMesh) Free() {
	if !m.rid.IsValid() {
		return
	}
	m.srv.Free(m.rid)
	m.rid = server.Nil
}

// MeshInstance is a Geometry that renders a
// StaticMesh.
type MeshInstance struct {
	Geometry

	mesh *StaticMesh
}

// NewMeshInstance creates a new MeshInstance with no
// mesh.
func NewMeshInstance(srv server.Server) *MeshInstance {
	mi := new(MeshInstance)
	mi.Geometry.Init(srv, mi)
	return mi
}

// SetMesh sets the mesh to render.
// m may be nil.
func (mi *MeshInstance) SetMesh(m *StaticMesh) {
	mi.mesh = m
	base := server.Nil
	if m != nil {
		base = m.RID()
	}
	mi.SetBase(base)
}

// Mesh returns the mesh of mi, or nil.
func (mi *MeshInstance) Mesh() *StaticMesh { return mi.mesh }

// AABB returns the bounds of mi's mesh.
// It returns the zero AABB if mi has no mesh.
func (mi *MeshInstance) AABB() linear.AABB {
	if mi.mesh == nil {
		return linear.AABB{}
	}
	return mi.mesh.AABB()
}

var _ RenderableNode = (*MeshInstance)(nil)
