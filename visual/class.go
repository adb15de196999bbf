// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package visual

import (
	"fmt"
	"math"

	"github.com/gviegas/visual/material"
	"github.com/gviegas/visual/prop"
	"github.com/gviegas/visual/variant"
)

// InstanceClass is the property table of Instance.
var InstanceClass = prop.NewClass[*Instance]("VisualInstance").
	Add(prop.Property[*Instance]{
		Info: prop.Info{Name: "layers", Type: variant.Int, Hint: prop.HintAllFlags},
		Get:  func(v *Instance) any { return int64(v.LayerMask()) },
		Set: func(v *Instance, x any) error {
			mask := x.(int64)
			if mask < 0 || mask > math.MaxUint32 {
				return fmt.Errorf("%w: layer mask %d out of range", variant.ErrType, mask)
			}
			v.SetLayerMask(uint32(mask))
			return nil
		},
	})

var flagProps = [FlagMax]struct{ prop, konst string }{
	FlagVisible:           {"geometry/visible", "FLAG_VISIBLE"},
	FlagCastShadow:        {"geometry/cast_shadow", "FLAG_CAST_SHADOW"},
	FlagReceiveShadows:    {"geometry/receive_shadows", "FLAG_RECEIVE_SHADOWS"},
	FlagBillboard:         {"geometry/billboard", "FLAG_BILLBOARD"},
	FlagBillboardFixY:     {"geometry/billboard_y", "FLAG_BILLBOARD_FIX_Y"},
	FlagDepthScale:        {"geometry/depth_scale", "FLAG_DEPTH_SCALE"},
	FlagVisibleInAllRooms: {"geometry/visible_in_all_rooms", "FLAG_VISIBLE_IN_ALL_ROOMS"},
}

func geometryUp(g *Geometry) *Instance { return &g.Instance }

// GeometryClass is the property table of Geometry.
var GeometryClass = func() *prop.Class[*Geometry] {
	c := prop.Inherit("GeometryInstance", InstanceClass, geometryUp)
	c.Add(
		prop.Property[*Geometry]{
			Info: prop.Info{Name: "geometry/material_override", Type: variant.Object, Hint: prop.HintResourceType, HintString: "Material"},
			Get: func(g *Geometry) any {
				if m := g.MaterialOverride(); m != nil {
					return m
				}
				return nil
			},
			Set: func(g *Geometry, x any) error {
				if x == nil {
					g.SetMaterialOverride(nil)
					return nil
				}
				m, ok := x.(*material.Material)
				if !ok {
					return variant.ErrType
				}
				g.SetMaterialOverride(m)
				return nil
			},
		},
		prop.Property[*Geometry]{
			Info: prop.Info{Name: "geometry/range_begin", Type: variant.Float, Hint: prop.HintRange, HintString: "0,32768,0.01"},
			Get:  func(g *Geometry) any { return g.DrawRangeBegin() },
			Set:  func(g *Geometry, x any) error { g.SetDrawRangeBegin(x.(float32)); return nil },
		},
		prop.Property[*Geometry]{
			Info: prop.Info{Name: "geometry/range_end", Type: variant.Float, Hint: prop.HintRange, HintString: "0,32768,0.01"},
			Get:  func(g *Geometry) any { return g.DrawRangeEnd() },
			Set:  func(g *Geometry, x any) error { g.SetDrawRangeEnd(x.(float32)); return nil },
		},
	)
	for i, fp := range flagProps {
		f := Flag(i)
		c.Add(prop.Property[*Geometry]{
			Info: prop.Info{Name: fp.prop, Type: variant.Bool},
			Get:  func(g *Geometry) any { return g.Flag(f) },
			Set:  func(g *Geometry, x any) error { return g.SetFlag(f, x.(bool)) },
		})
	}
	for i, fp := range flagProps {
		c.Const(fp.konst, int64(i))
	}
	c.Const("FLAG_MAX", int64(FlagMax))
	return c.Signal(VisibilityChanged)
}()

// MeshInstanceClass is the property table of
// MeshInstance.
var MeshInstanceClass = prop.Inherit("MeshInstance", GeometryClass, func(mi *MeshInstance) *Geometry { return &mi.Geometry }).
	Add(prop.Property[*MeshInstance]{
		Info: prop.Info{Name: "mesh/mesh", Type: variant.Object, Hint: prop.HintResourceType, HintString: "Mesh"},
		Get: func(mi *MeshInstance) any {
			if m := mi.Mesh(); m != nil {
				return m
			}
			return nil
		},
		Set: func(mi *MeshInstance, x any) error {
			if x == nil {
				mi.SetMesh(nil)
				return nil
			}
			m, ok := x.(*StaticMesh)
			if !ok {
				return variant.ErrType
			}
			mi.SetMesh(m)
			return nil
		},
	})

// RoomClass is the property table of Room.
// Room bounds are not exposed as a property.
var RoomClass = prop.Inherit("Room", InstanceClass, func(r *Room) *Instance { return &r.Instance })
