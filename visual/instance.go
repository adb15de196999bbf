// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package visual implements scene nodes that are
// mirrored by instances in a rendering server.
//
// Every visual node owns exactly one server instance,
// created when the node is initialized and released
// by Free. Node state is forwarded to the server as
// soon as it changes, and the node's world membership
// and global transform follow the lifecycle
// notifications of the scene tree.
package visual

import (
	"github.com/gviegas/visual/linear"
	"github.com/gviegas/visual/node"
	"github.com/gviegas/visual/server"
)

// Bounded is implemented by values that have a local
// bounding box.
type Bounded interface {
	AABB() linear.AABB
}

// RenderableNode is the interface that every concrete
// visual node implements.
type RenderableNode interface {
	node.Receiver
	Bounded

	// SceneNode returns the scene node that is
	// inserted into a scene tree.
	SceneNode() *node.Node

	RID() server.RID
	SetBase(base server.RID)
	LayerMask() uint32
	SetLayerMask(mask uint32)
	TransformedAABB() linear.AABB

	// Free releases the server instance.
	Free()
}

const dflLayers = 1

// Instance is the base of every visual node.
// It is meant to be embedded; see Init.
type Instance struct {
	node.Node

	srv    server.Server
	rid    server.RID
	self   RenderableNode
	layers uint32
}

// Init initializes v.
// self is the value in which v is embedded, and is
// what the scene tree notifies. A server instance is
// created and tagged with v's object ID.
func (v *Instance) Init(srv server.Server, self RenderableNode) *Instance {
	v.Node.Init(self)
	v.srv = srv
	v.self = self
	v.rid = srv.InstanceCreate()
	srv.InstanceAttachObject(v.rid, uint64(v.ID()))
	v.layers = dflLayers
	return v
}

// Server returns the rendering server of v.
func (v *Instance) Server() server.Server { return v.srv }

// SceneNode returns &v.Node.
func (v *Instance) SceneNode() *node.Node { return &v.Node }

// RID returns the server instance of v.
// It returns server.Nil after v.Free is called.
func (v *Instance) RID() server.RID { return v.rid }

// SetBase sets the resource (a mesh, usually) that
// the server instance renders.
func (v *Instance) SetBase(base server.RID) {
	v.srv.InstanceSetBase(v.rid, base)
}

// LayerMask returns the layers v is visible in.
func (v *Instance) LayerMask() uint32 { return v.layers }

// SetLayerMask sets the layers v is visible in.
func (v *Instance) SetLayerMask(mask uint32) {
	v.layers = mask
	v.srv.InstanceSetLayerMask(v.rid, mask)
}

// TransformedAABB returns the bounding box of v in
// global space.
func (v *Instance) TransformedAABB() linear.AABB {
	gt := v.GlobalTransform()
	return gt.XformAABB(v.self.AABB())
}

// Room returns the nearest ancestor of v that is a
// Room, or nil.
func (v *Instance) Room() *Room {
	anc := v.Ancestor(func(n *node.Node) bool {
		_, ok := n.Self().(*Room)
		return ok
	})
	if anc == nil {
		return nil
	}
	return anc.Self().(*Room)
}

// Notify implements node.Receiver.
func (v *Instance) Notify(what node.Notification) {
	switch what {
	case node.EnterWorld:
		if r := v.Room(); r != nil {
			v.srv.InstanceSetRoom(v.rid, r.RID())
		}
		v.srv.InstanceSetScenario(v.rid, v.World().Scenario())
	case node.TransformChanged:
		v.srv.InstanceSetTransform(v.rid, v.GlobalTransform())
	case node.ExitWorld:
		v.srv.InstanceSetScenario(v.rid, server.Nil)
		v.srv.InstanceSetRoom(v.rid, server.Nil)
		v.srv.InstanceAttachSkeleton(v.rid, server.Nil)
	}
}

// Free removes v from its scene graph and releases
// the server instance.
// Calling Free more than once has no effect.
func (v *Instance) Free() {
	if !v.rid.IsValid() {
		return
	}
	v.Remove()
	v.srv.Free(v.rid)
	v.rid = server.Nil
}
