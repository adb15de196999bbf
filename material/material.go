// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package material implements material resources.
//
// A Material mirrors its state onto a material in a
// rendering server. State common to every material is
// held by Material itself, while kind-specific state is
// held by one of the Payload types: Fixed,
// ShaderParams, Particle or Unshaded.
package material

import (
	"errors"
	"fmt"

	"github.com/gviegas/visual/object"
	"github.com/gviegas/visual/server"
)

// Kind identifies the payload of a Material.
type Kind int

// Kinds.
const (
	KindFixed Kind = iota
	KindShader
	KindParticle
	KindUnshaded
	KindMax
)

var kindNames = [KindMax]string{"FixedMaterial", "ShaderMaterial", "ParticleSystemMaterial", "UnshadedMaterial"}

// String returns the class name of k.
func (k Kind) String() string {
	if k < 0 || k >= KindMax {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind whose String is s.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Enumerations shared with the rendering server.
type (
	Flag         = server.MaterialFlag
	Hint         = server.MaterialHint
	BlendMode    = server.BlendMode
	ShadeModel   = server.ShadeModel
	Param        = server.FixedParam
	TexCoordMode = server.TexCoordMode
	FixedFlag    = server.FixedFlag
)

// Material flags.
const (
	FlagVisible         = server.MaterialFlagVisible
	FlagDoubleSided     = server.MaterialFlagDoubleSided
	FlagInvertFaces     = server.MaterialFlagInvertFaces
	FlagUnshaded        = server.MaterialFlagUnshaded
	FlagOnTop           = server.MaterialFlagOnTop
	FlagWireframe       = server.MaterialFlagWireframe
	FlagBillboardToggle = server.MaterialFlagBillboard
	FlagMax             = server.MaterialFlagMax
)

// Material hints.
const (
	HintDecal         = server.MaterialHintDecal
	HintOpaquePrePass = server.MaterialHintOpaquePrePass
	HintNoShadow      = server.MaterialHintNoShadow
	HintNoDepthDraw   = server.MaterialHintNoDepthDraw
	HintMax           = server.MaterialHintMax
)

// Blend modes.
const (
	BlendMix          = server.BlendModeMix
	BlendMul          = server.BlendModeMul
	BlendAdd          = server.BlendModeAdd
	BlendSub          = server.BlendModeSub
	BlendPremultAlpha = server.BlendModePremultAlpha
	BlendMax          = server.BlendModeMax
)

// Shade models.
const (
	ShadeLambert     = server.ShadeModelLambert
	ShadeLambertWrap = server.ShadeModelLambertWrap
	ShadeFresnel     = server.ShadeModelFresnel
	ShadeToon        = server.ShadeModelToon
	ShadeCustom0     = server.ShadeModelCustom0
	ShadeCustom1     = server.ShadeModelCustom1
	ShadeCustom2     = server.ShadeModelCustom2
	ShadeCustom3     = server.ShadeModelCustom3
	ShadeMax         = server.ShadeModelMax
)

var (
	ErrFlagRange  = errors.New("material: flag out of range")
	ErrHintRange  = errors.New("material: hint out of range")
	ErrParamRange = errors.New("material: parameter out of range")
	ErrModeRange  = errors.New("material: mode out of range")
	// ErrUnknownParam means that the shader of a
	// material does not declare a parameter.
	ErrUnknownParam = errors.New("material: unknown shader parameter")
)

func rangeErr(err error, i int) error { return fmt.Errorf("%w: %d", err, i) }

// Texture is the interface that textures usable by
// materials implement.
type Texture interface {
	RID() server.RID
}

func textureRID(t Texture) server.RID {
	if t == nil {
		return server.Nil
	}
	return t.RID()
}

// Payload is the kind-specific state of a Material.
// It is implemented by *Fixed, *ShaderParams,
// *Particle and *Unshaded only.
type Payload interface {
	Kind() Kind
	// copyTo forwards the state of the payload to
	// dst, whose payload has the same kind.
	copyTo(dst *Material) error
}

const dflLineWidth = 1

// Material is a material resource.
type Material struct {
	object.Object

	srv       server.Server
	rid       server.RID
	blend     BlendMode
	flags     [FlagMax]bool
	hints     [HintMax]bool
	shade     ShadeModel
	lineWidth float32
	payload   Payload

	// Name for the material.
	// It is not used by material code.
	Name string
}

func newMaterial(srv server.Server, rid server.RID) *Material {
	m := &Material{srv: srv, rid: rid, lineWidth: dflLineWidth}
	m.flags[FlagVisible] = true
	return m
}

// New creates a new material of the given kind.
func New(srv server.Server, kind Kind) (*Material, error) {
	switch kind {
	case KindFixed:
		return NewFixed(srv), nil
	case KindShader:
		return NewShader(srv), nil
	case KindParticle:
		return NewParticle(srv), nil
	case KindUnshaded:
		return NewUnshaded(srv), nil
	}
	return nil, fmt.Errorf("material: invalid kind %d", int(kind))
}

// RID returns the server material of m.
// It returns server.Nil after m.Free is called.
func (m *Material) RID() server.RID { return m.rid }

// Kind returns the kind of m.
func (m *Material) Kind() Kind { return m.payload.Kind() }

// Payload returns the kind-specific state of m.
func (m *Material) Payload() Payload { return m.payload }

// Fixed returns the payload of m if it is a fixed
// material, or nil.
func (m *Material) Fixed() *Fixed {
	p, _ := m.payload.(*Fixed)
	return p
}

// Shader returns the payload of m if it is a shader
// material, or nil.
func (m *Material) Shader() *ShaderParams {
	p, _ := m.payload.(*ShaderParams)
	return p
}

// Particle returns the payload of m if it is a
// particle system material, or nil.
func (m *Material) Particle() *Particle {
	p, _ := m.payload.(*Particle)
	return p
}

// Unshaded returns the payload of m if it is an
// unshaded material, or nil.
func (m *Material) Unshaded() *Unshaded {
	p, _ := m.payload.(*Unshaded)
	return p
}

// SetFlag enables or disables a material flag.
func (m *Material) SetFlag(flag Flag, enabled bool) error {
	if flag < 0 || flag >= FlagMax {
		return rangeErr(ErrFlagRange, int(flag))
	}
	m.flags[flag] = enabled
	m.srv.MaterialSetFlag(m.rid, flag, enabled)
	return nil
}

// Flag returns whether a material flag is enabled.
// It returns false if flag is out of range.
func (m *Material) Flag(flag Flag) bool {
	if flag < 0 || flag >= FlagMax {
		return false
	}
	return m.flags[flag]
}

// SetHint enables or disables a material hint.
func (m *Material) SetHint(hint Hint, enabled bool) error {
	if hint < 0 || hint >= HintMax {
		return rangeErr(ErrHintRange, int(hint))
	}
	m.hints[hint] = enabled
	m.srv.MaterialSetHint(m.rid, hint, enabled)
	return nil
}

// Hint returns whether a material hint is enabled.
// It returns false if hint is out of range.
func (m *Material) Hint(hint Hint) bool {
	if hint < 0 || hint >= HintMax {
		return false
	}
	return m.hints[hint]
}

// SetBlendMode sets the blend mode.
func (m *Material) SetBlendMode(mode BlendMode) error {
	if mode < 0 || mode >= BlendMax {
		return rangeErr(ErrModeRange, int(mode))
	}
	m.blend = mode
	m.srv.MaterialSetBlendMode(m.rid, mode)
	return nil
}

// BlendMode returns the blend mode.
func (m *Material) BlendMode() BlendMode { return m.blend }

// SetShadeModel sets the shade model.
func (m *Material) SetShadeModel(model ShadeModel) error {
	if model < 0 || model >= ShadeMax {
		return rangeErr(ErrModeRange, int(model))
	}
	m.shade = model
	m.srv.MaterialSetShadeModel(m.rid, model)
	return nil
}

// ShadeModel returns the shade model.
func (m *Material) ShadeModel() ShadeModel { return m.shade }

// SetLineWidth sets the width of lines drawn with m.
func (m *Material) SetLineWidth(width float32) {
	m.lineWidth = width
	m.srv.MaterialSetLineWidth(m.rid, width)
}

// LineWidth returns the width of lines drawn with m.
func (m *Material) LineWidth() float32 { return m.lineWidth }

// Duplicate creates a new material of the same kind
// as m, with a copy of m's state.
// Textures and shaders are shared, not copied.
func (m *Material) Duplicate() (*Material, error) {
	dup, err := New(m.srv, m.Kind())
	if err != nil {
		return nil, err
	}
	for i := range FlagMax {
		if m.flags[i] != dup.flags[i] {
			dup.SetFlag(i, m.flags[i])
		}
	}
	for i := range HintMax {
		if m.hints[i] != dup.hints[i] {
			dup.SetHint(i, m.hints[i])
		}
	}
	if m.blend != dup.blend {
		dup.SetBlendMode(m.blend)
	}
	if m.shade != dup.shade {
		dup.SetShadeModel(m.shade)
	}
	if m.lineWidth != dup.lineWidth {
		dup.SetLineWidth(m.lineWidth)
	}
	if err := m.payload.copyTo(dup); err != nil {
		dup.Free()
		return nil, err
	}
	dup.Name = m.Name
	return dup, nil
}

// Free releases the server material.
// Calling Free more than once has no effect.
func (m *Material) Free() {
	if !m.rid.IsValid() {
		return
	}
	if p, ok := m.payload.(*ShaderParams); ok {
		p.disconnect()
	}
	m.srv.Free(m.rid)
	m.rid = server.Nil
}
