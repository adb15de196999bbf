// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package visual

import (
	"io"

	"github.com/gviegas/visual/gltf"
	"github.com/gviegas/visual/node"
	"github.com/gviegas/visual/server"
)

// Scene is a node graph imported from a glTF
// document.
type Scene struct {
	// Root has the scene's top-level nodes as
	// children. It is not part of the document.
	Root *node.Node

	// Meshes has one element per glTF mesh.
	Meshes []*StaticMesh

	// Instances has one element per glTF node that
	// references a mesh.
	Instances []*MeshInstance
}

// DecodeScene decodes a glTF document from r and
// builds its default scene. glTF nodes that reference
// a mesh become MeshInstances; the others become
// plain nodes. If the document has no scenes, every
// node that has no parent is a top-level node.
func DecodeScene(srv server.Server, r io.Reader) (*Scene, error) {
	doc, err := gltf.Decode(r)
	if err != nil {
		return nil, err
	}
	s := &Scene{Root: node.New()}
	s.Root.Name = "scene"
	for i := range doc.Meshes {
		aabb, err := doc.MeshBounds(i)
		if err != nil {
			s.Free()
			return nil, err
		}
		m := NewStaticMesh(srv, aabb)
		m.Name = doc.Meshes[i].Name
		s.Meshes = append(s.Meshes, m)
	}
	nodes := make([]*node.Node, len(doc.Nodes))
	for i := range doc.Nodes {
		gn := &doc.Nodes[i]
		var n *node.Node
		if gn.Mesh != nil {
			mi := NewMeshInstance(srv)
			mi.SetMesh(s.Meshes[*gn.Mesh])
			s.Instances = append(s.Instances, mi)
			n = mi.SceneNode()
		} else {
			n = node.New()
		}
		n.Name = gn.Name
		n.SetTransform(gn.Transform())
		nodes[i] = n
	}
	hasParent := make([]bool, len(nodes))
	for i, gn := range doc.Nodes {
		// Insert prepends, so children are inserted in
		// reverse to keep their order.
		for j := len(gn.Children) - 1; j >= 0; j-- {
			c := gn.Children[j]
			nodes[i].Insert(nodes[c])
			hasParent[c] = true
		}
	}
	var top []int64
	switch {
	case doc.Scene != nil:
		top = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		top = doc.Scenes[0].Nodes
	default:
		for i, p := range hasParent {
			if !p {
				top = append(top, int64(i))
			}
		}
	}
	for i := len(top) - 1; i >= 0; i-- {
		s.Root.Insert(nodes[top[i]])
	}
	return s, nil
}

// Free releases the server resources of s.
func (s *Scene) Free() {
	for _, mi := range s.Instances {
		mi.Free()
	}
	for _, m := range s.Meshes {
		m.Free()
	}
	s.Root.Remove()
}
