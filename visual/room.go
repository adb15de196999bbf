// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package visual

import (
	"github.com/gviegas/visual/linear"
	"github.com/gviegas/visual/server"
)

// Room is a visual node that groups its descendants
// for room-based culling.
// Visual nodes that enter a world below a Room are
// assigned to it in the server.
type Room struct {
	Instance

	bounds linear.AABB
}

// NewRoom creates a new Room with empty bounds.
func NewRoom(srv server.Server) *Room {
	r := new(Room)
	r.Instance.Init(srv, r)
	return r
}

// SetBounds sets the local bounds of r.
func (r *Room) SetBounds(aabb linear.AABB) {
	r.bounds = aabb
	r.NotifyChange("room/bounds")
}

// AABB returns the local bounds of r.
func (r *Room) AABB() linear.AABB { return r.bounds }

var _ RenderableNode = (*Room)(nil)
