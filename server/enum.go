// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package server

// InstanceFlag is a per-instance geometry flag.
type InstanceFlag int

// Instance flags.
const (
	InstanceFlagVisible InstanceFlag = iota
	InstanceFlagCastShadow
	InstanceFlagReceiveShadows
	InstanceFlagBillboard
	InstanceFlagBillboardFixY
	InstanceFlagDepthScale
	InstanceFlagVisibleInAllRooms
	InstanceFlagMax
)

// MaterialFlag is a material rendering flag.
type MaterialFlag int

// Material flags.
const (
	MaterialFlagVisible MaterialFlag = iota
	MaterialFlagDoubleSided
	MaterialFlagInvertFaces
	MaterialFlagUnshaded
	MaterialFlagOnTop
	MaterialFlagWireframe
	MaterialFlagBillboard
	MaterialFlagMax
)

// MaterialHint is a material rendering hint.
type MaterialHint int

// Material hints.
const (
	MaterialHintDecal MaterialHint = iota
	MaterialHintOpaquePrePass
	MaterialHintNoShadow
	MaterialHintNoDepthDraw
	MaterialHintMax
)

// BlendMode is a material blend mode.
type BlendMode int

// Blend modes.
const (
	BlendModeMix BlendMode = iota
	BlendModeMul
	BlendModeAdd
	BlendModeSub
	BlendModePremultAlpha
	BlendModeMax
)

// ShadeModel is a material shading model.
type ShadeModel int

// Shade models.
const (
	ShadeModelLambert ShadeModel = iota
	ShadeModelLambertWrap
	ShadeModelFresnel
	ShadeModelToon
	ShadeModelCustom0
	ShadeModelCustom1
	ShadeModelCustom2
	ShadeModelCustom3
	ShadeModelMax
)

// FixedParam selects a fixed-material parameter slot.
type FixedParam int

// Fixed-material parameters.
const (
	FixedParamDiffuse FixedParam = iota
	FixedParamDetail
	FixedParamSpecular
	FixedParamEmission
	FixedParamSpecularExp
	FixedParamGlow
	FixedParamNormal
	FixedParamShadeParam
	FixedParamMax
)

// TexCoordMode is the source of texture coordinates
// for a fixed-material parameter.
type TexCoordMode int

// Texture coordinate modes.
const (
	TexCoordUV TexCoordMode = iota
	TexCoordUVTransform
	TexCoordUV2
	TexCoordSphere
	TexCoordMax
)

// FixedFlag is a fixed-material flag.
type FixedFlag int

// Fixed-material flags.
const (
	FixedFlagUseAlpha FixedFlag = iota
	FixedFlagUseColorArray
	FixedFlagUsePointSize
	FixedFlagMax
)
