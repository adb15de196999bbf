// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package material

import (
	"github.com/gviegas/visual/linear"
	"github.com/gviegas/visual/server"
	"github.com/gviegas/visual/variant"
)

// Fixed-material parameters.
const (
	ParamDiffuse     = server.FixedParamDiffuse
	ParamDetail      = server.FixedParamDetail
	ParamSpecular    = server.FixedParamSpecular
	ParamEmission    = server.FixedParamEmission
	ParamSpecularExp = server.FixedParamSpecularExp
	ParamGlow        = server.FixedParamGlow
	ParamNormal      = server.FixedParamNormal
	ParamShadeParam  = server.FixedParamShadeParam
	ParamMax         = server.FixedParamMax
)

// Texture coordinate modes.
const (
	TexCoordUV          = server.TexCoordUV
	TexCoordUVTransform = server.TexCoordUVTransform
	TexCoordUV2         = server.TexCoordUV2
	TexCoordSphere      = server.TexCoordSphere
	TexCoordMax         = server.TexCoordMax
)

// Fixed-material flags.
const (
	FixedFlagUseAlpha      = server.FixedFlagUseAlpha
	FixedFlagUseColorArray = server.FixedFlagUseColorArray
	FixedFlagUsePointSize  = server.FixedFlagUsePointSize
	FixedFlagMax           = server.FixedFlagMax
)

// paramTypes are the value types of fixed-material
// parameters.
var paramTypes = [ParamMax]variant.Type{
	ParamDiffuse:     variant.Color4,
	ParamDetail:      variant.Float,
	ParamSpecular:    variant.Color4,
	ParamEmission:    variant.Color4,
	ParamSpecularExp: variant.Float,
	ParamGlow:        variant.Float,
	ParamNormal:      variant.Float,
	ParamShadeParam:  variant.Float,
}

// ParamType returns the value type of a fixed-material
// parameter, or variant.Nil if p is out of range.
func ParamType(p Param) variant.Type {
	if p < 0 || p >= ParamMax {
		return variant.Nil
	}
	return paramTypes[p]
}

func dflParams() [ParamMax]any {
	return [ParamMax]any{
		ParamDiffuse:     variant.RGB(1, 1, 1),
		ParamDetail:      float32(1),
		ParamSpecular:    variant.RGB(0, 0, 0),
		ParamEmission:    variant.RGB(0, 0, 0),
		ParamSpecularExp: float32(40),
		ParamGlow:        float32(0),
		ParamNormal:      float32(1),
		ParamShadeParam:  float32(0.5),
	}
}

const dflPointSize = 1

// Fixed is the payload of fixed materials.
// It is also used by particle system and unshaded
// materials, which are fixed materials on the
// server.
type Fixed struct {
	m           *Material
	params      [ParamMax]any
	textures    [ParamMax]Texture
	texcoords   [ParamMax]TexCoordMode
	flags       [FixedFlagMax]bool
	pointSize   float32
	uvTransform linear.Transform
	detailBlend BlendMode
}

// NewFixed creates a new fixed material.
// Parameters are set to their default values.
func NewFixed(srv server.Server) *Material {
	m := newMaterial(srv, srv.FixedMaterialCreate())
	f := &Fixed{m: m, pointSize: dflPointSize}
	f.uvTransform.I()
	for i, v := range dflParams() {
		f.SetParam(Param(i), v)
	}
	m.payload = f
	return m
}

// Kind returns KindFixed.
func (f *Fixed) Kind() Kind { return KindFixed }

// SetParam sets the value of a parameter.
// value is converted to ParamType(p).
func (f *Fixed) SetParam(p Param, value any) error {
	if p < 0 || p >= ParamMax {
		return rangeErr(ErrParamRange, int(p))
	}
	v, err := variant.Convert(value, paramTypes[p])
	if err != nil {
		return err
	}
	f.params[p] = v
	f.m.srv.FixedMaterialSetParam(f.m.rid, p, v)
	return nil
}

// Param returns the value of a parameter.
// It returns nil if p is out of range.
func (f *Fixed) Param(p Param) any {
	if p < 0 || p >= ParamMax {
		return nil
	}
	return f.params[p]
}

// SetTexture sets the texture of a parameter.
// tex may be nil.
func (f *Fixed) SetTexture(p Param, tex Texture) error {
	if p < 0 || p >= ParamMax {
		return rangeErr(ErrParamRange, int(p))
	}
	f.textures[p] = tex
	f.m.srv.FixedMaterialSetTexture(f.m.rid, p, textureRID(tex))
	return nil
}

// Texture returns the texture of a parameter, or nil.
func (f *Fixed) Texture(p Param) Texture {
	if p < 0 || p >= ParamMax {
		return nil
	}
	return f.textures[p]
}

// SetTexCoordMode sets the source of texture
// coordinates for a parameter.
func (f *Fixed) SetTexCoordMode(p Param, mode TexCoordMode) error {
	if p < 0 || p >= ParamMax {
		return rangeErr(ErrParamRange, int(p))
	}
	if mode < 0 || mode >= TexCoordMax {
		return rangeErr(ErrModeRange, int(mode))
	}
	f.texcoords[p] = mode
	f.m.srv.FixedMaterialSetTexcoordMode(f.m.rid, p, mode)
	return nil
}

// TexCoordMode returns the source of texture
// coordinates for a parameter.
func (f *Fixed) TexCoordMode(p Param) TexCoordMode {
	if p < 0 || p >= ParamMax {
		return TexCoordUV
	}
	return f.texcoords[p]
}

// SetFlag enables or disables a fixed-material flag.
func (f *Fixed) SetFlag(flag FixedFlag, enabled bool) error {
	if flag < 0 || flag >= FixedFlagMax {
		return rangeErr(ErrFlagRange, int(flag))
	}
	f.flags[flag] = enabled
	f.m.srv.FixedMaterialSetFlag(f.m.rid, flag, enabled)
	return nil
}

// Flag returns whether a fixed-material flag is
// enabled.
func (f *Fixed) Flag(flag FixedFlag) bool {
	if flag < 0 || flag >= FixedFlagMax {
		return false
	}
	return f.flags[flag]
}

// SetPointSize sets the size of points.
func (f *Fixed) SetPointSize(size float32) {
	f.pointSize = size
	f.m.srv.FixedMaterialSetPointSize(f.m.rid, size)
}

// PointSize returns the size of points.
func (f *Fixed) PointSize() float32 { return f.pointSize }

// SetUVTransform sets the transform applied to
// texture coordinates in TexCoordUVTransform mode.
func (f *Fixed) SetUVTransform(xform linear.Transform) {
	f.uvTransform = xform
	f.m.srv.FixedMaterialSetUVTransform(f.m.rid, xform)
}

// UVTransform returns the UV transform.
func (f *Fixed) UVTransform() linear.Transform { return f.uvTransform }

// SetDetailBlendMode sets how the detail parameter is
// blended.
func (f *Fixed) SetDetailBlendMode(mode BlendMode) error {
	if mode < 0 || mode >= BlendMax {
		return rangeErr(ErrModeRange, int(mode))
	}
	f.detailBlend = mode
	f.m.srv.FixedMaterialSetDetailBlendMode(f.m.rid, mode)
	return nil
}

// DetailBlendMode returns how the detail parameter is
// blended.
func (f *Fixed) DetailBlendMode() BlendMode { return f.detailBlend }

func (f *Fixed) copyTo(dst *Material) error {
	g := dst.Fixed()
	for i := range ParamMax {
		if f.params[i] != g.params[i] {
			g.SetParam(i, f.params[i])
		}
		if f.textures[i] != nil {
			g.SetTexture(i, f.textures[i])
		}
		if f.texcoords[i] != g.texcoords[i] {
			g.SetTexCoordMode(i, f.texcoords[i])
		}
	}
	for i := range FixedFlagMax {
		if f.flags[i] != g.flags[i] {
			g.SetFlag(i, f.flags[i])
		}
	}
	if f.pointSize != g.pointSize {
		g.SetPointSize(f.pointSize)
	}
	if f.uvTransform != g.uvTransform {
		g.SetUVTransform(f.uvTransform)
	}
	if f.detailBlend != g.detailBlend {
		g.SetDetailBlendMode(f.detailBlend)
	}
	return nil
}
