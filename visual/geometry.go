// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package visual

import (
	"errors"
	"fmt"

	"github.com/gviegas/visual/material"
	"github.com/gviegas/visual/server"
)

// Flag is a geometry flag.
type Flag int

// Geometry flags.
const (
	FlagVisible           = Flag(server.InstanceFlagVisible)
	FlagCastShadow        = Flag(server.InstanceFlagCastShadow)
	FlagReceiveShadows    = Flag(server.InstanceFlagReceiveShadows)
	FlagBillboard         = Flag(server.InstanceFlagBillboard)
	FlagBillboardFixY     = Flag(server.InstanceFlagBillboardFixY)
	FlagDepthScale        = Flag(server.InstanceFlagDepthScale)
	FlagVisibleInAllRooms = Flag(server.InstanceFlagVisibleInAllRooms)
	FlagMax               = Flag(server.InstanceFlagMax)
)

// ErrFlagRange means that a Flag is not in the
// range [0, FlagMax).
var ErrFlagRange = errors.New("visual: geometry flag out of range")

// VisibilityChanged is the signal that Geometry
// emits when FlagVisible changes.
const VisibilityChanged = "visibility_changed"

// Geometry is the base of visual nodes that have
// drawable geometry.
// It is meant to be embedded; see Init.
type Geometry struct {
	Instance

	override  *material.Material
	drawBegin float32
	drawEnd   float32
	flags     [FlagMax]bool
}

// Init initializes g.
// See Instance.Init.
func (g *Geometry) Init(srv server.Server, self RenderableNode) *Geometry {
	g.Instance.Init(srv, self)
	g.override = nil
	g.drawBegin, g.drawEnd = 0, 0
	g.flags = [FlagMax]bool{
		FlagVisible:        true,
		FlagCastShadow:     true,
		FlagReceiveShadows: true,
	}
	return g
}

// SetMaterialOverride sets the material used in
// place of the materials of g's base.
// m may be nil, which removes the override.
func (g *Geometry) SetMaterialOverride(m *material.Material) {
	g.override = m
	rid := server.Nil
	if m != nil {
		rid = m.RID()
	}
	g.srv.InstanceGeometrySetMaterialOverride(g.rid, rid)
}

// MaterialOverride returns the material override,
// or nil.
func (g *Geometry) MaterialOverride() *material.Material { return g.override }

// SetDrawRangeBegin sets the distance from which g
// is drawn.
func (g *Geometry) SetDrawRangeBegin(begin float32) {
	g.drawBegin = begin
	g.srv.InstanceGeometrySetDrawRange(g.rid, g.drawBegin, g.drawEnd)
}

// DrawRangeBegin returns the distance from which g
// is drawn.
func (g *Geometry) DrawRangeBegin() float32 { return g.drawBegin }

// SetDrawRangeEnd sets the distance up to which g
// is drawn.
// 0 means no limit.
func (g *Geometry) SetDrawRangeEnd(end float32) {
	g.drawEnd = end
	g.srv.InstanceGeometrySetDrawRange(g.rid, g.drawBegin, g.drawEnd)
}

// DrawRangeEnd returns the distance up to which g
// is drawn.
func (g *Geometry) DrawRangeEnd() float32 { return g.drawEnd }

// SetFlag enables or disables a geometry flag.
// Setting a flag to its current value does nothing.
// Changing FlagVisible notifies the
// "geometry/visible" property and emits
// VisibilityChanged.
func (g *Geometry) SetFlag(f Flag, enabled bool) error {
	if f < 0 || f >= FlagMax {
		return fmt.Errorf("%w: %d", ErrFlagRange, f)
	}
	if g.flags[f] == enabled {
		return nil
	}
	g.flags[f] = enabled
	g.srv.InstanceGeometrySetFlag(g.rid, server.InstanceFlag(f), enabled)
	if f == FlagVisible {
		g.NotifyChange("geometry/visible")
		g.Emit(VisibilityChanged)
	}
	return nil
}

// Flag returns whether a geometry flag is enabled.
// It returns false if f is out of range.
func (g *Geometry) Flag(f Flag) bool {
	if f < 0 || f >= FlagMax {
		return false
	}
	return g.flags[f]
}

// IsVisible is a shorthand for g.Flag(FlagVisible).
func (g *Geometry) IsVisible() bool { return g.flags[FlagVisible] }
