// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package server defines the rendering server façade
// through which scene nodes and resources mirror their
// state, and provides Mem, an in-process implementation.
//
// Server methods do not report errors. Implementations
// must tolerate Nil where a method documents it as a
// way to clear an assignment.
package server

import (
	"image"

	"github.com/gviegas/visual/linear"
)

// ResourceServer creates and releases server resources.
type ResourceServer interface {
	// Free releases a resource created by any of the
	// *Create methods.
	Free(rid RID)

	// ScenarioCreate creates a scenario, which groups
	// instances that are visible together.
	ScenarioCreate() RID

	ShaderCreate() RID
	ShaderSetCode(shader RID, code string)

	MeshCreate() RID
	MeshSetAABB(mesh RID, aabb linear.AABB)

	TextureCreate() RID
	TextureAllocate(tex RID, width, height int)
	TextureSetData(tex RID, img *image.RGBA)
}

// InstanceServer manages instances, the server-side
// counterparts of visual nodes.
type InstanceServer interface {
	InstanceCreate() RID

	// InstanceAttachObject records the ID of the object
	// that owns inst.
	InstanceAttachObject(inst RID, id uint64)

	InstanceSetBase(inst, base RID)
	InstanceSetTransform(inst RID, xform linear.Transform)

	// The following accept Nil to clear the assignment.
	InstanceSetScenario(inst, scenario RID)
	InstanceSetRoom(inst, room RID)
	InstanceAttachSkeleton(inst, skeleton RID)

	InstanceSetLayerMask(inst RID, mask uint32)

	// InstanceGeometrySetMaterialOverride accepts Nil
	// to remove the override.
	InstanceGeometrySetMaterialOverride(inst, mat RID)
	InstanceGeometrySetDrawRange(inst RID, begin, end float32)
	InstanceGeometrySetFlag(inst RID, flag InstanceFlag, enabled bool)
}

// MaterialServer manages materials.
type MaterialServer interface {
	MaterialCreate() RID
	MaterialSetShader(mat, shader RID)
	MaterialSetParam(mat RID, name string, value any)
	MaterialSetFlag(mat RID, flag MaterialFlag, enabled bool)
	MaterialSetHint(mat RID, hint MaterialHint, enabled bool)
	MaterialSetBlendMode(mat RID, mode BlendMode)
	MaterialSetShadeModel(mat RID, model ShadeModel)
	MaterialSetLineWidth(mat RID, width float32)

	FixedMaterialCreate() RID
	FixedMaterialSetParam(mat RID, param FixedParam, value any)
	FixedMaterialSetTexture(mat RID, param FixedParam, tex RID)
	FixedMaterialSetTexcoordMode(mat RID, param FixedParam, mode TexCoordMode)
	FixedMaterialSetFlag(mat RID, flag FixedFlag, enabled bool)
	FixedMaterialSetPointSize(mat RID, size float32)
	FixedMaterialSetUVTransform(mat RID, xform linear.Transform)
	FixedMaterialSetDetailBlendMode(mat RID, mode BlendMode)
}

// Server is the rendering server façade.
type Server interface {
	ResourceServer
	InstanceServer
	MaterialServer
}
