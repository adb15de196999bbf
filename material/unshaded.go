// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package material

import (
	"github.com/gviegas/visual/server"
)

// Particle is the payload of particle system
// materials.
type Particle struct {
	m       *Material
	texture Texture
}

// NewParticle creates a new particle system material.
// It is double sided, unshaded and additive, and
// does not write to the depth buffer.
func NewParticle(srv server.Server) *Material {
	m := newMaterial(srv, srv.FixedMaterialCreate())
	m.payload = &Particle{m: m}
	m.SetFlag(FlagDoubleSided, true)
	m.SetHint(HintNoDepthDraw, true)
	m.SetFlag(FlagUnshaded, true)
	m.SetBlendMode(BlendAdd)
	srv.FixedMaterialSetFlag(m.rid, FixedFlagUseAlpha, true)
	srv.FixedMaterialSetFlag(m.rid, FixedFlagUseColorArray, true)
	return m
}

// Kind returns KindParticle.
func (p *Particle) Kind() Kind { return KindParticle }

// SetTexture sets the texture of particles.
// tex may be nil.
func (p *Particle) SetTexture(tex Texture) {
	p.texture = tex
	p.m.srv.FixedMaterialSetTexture(p.m.rid, ParamDiffuse, textureRID(tex))
}

// Texture returns the texture of particles, or nil.
func (p *Particle) Texture() Texture { return p.texture }

func (p *Particle) copyTo(dst *Material) error {
	if p.texture != nil {
		dst.Particle().SetTexture(p.texture)
	}
	return nil
}

const (
	dflUseAlpha      = true
	dflUseColorArray = false
)

// Unshaded is the payload of unshaded materials.
type Unshaded struct {
	m          *Material
	texture    Texture
	alpha      bool
	colorArray bool
}

// NewUnshaded creates a new unshaded material.
// It uses alpha and ignores vertex colors.
func NewUnshaded(srv server.Server) *Material {
	m := newMaterial(srv, srv.FixedMaterialCreate())
	u := &Unshaded{m: m, colorArray: dflUseColorArray}
	m.payload = u
	m.SetFlag(FlagUnshaded, true)
	u.SetUseAlpha(dflUseAlpha)
	return m
}

// Kind returns KindUnshaded.
func (u *Unshaded) Kind() Kind { return KindUnshaded }

// SetTexture sets the texture of u.
// tex may be nil.
func (u *Unshaded) SetTexture(tex Texture) {
	u.texture = tex
	u.m.srv.FixedMaterialSetTexture(u.m.rid, ParamDiffuse, textureRID(tex))
}

// Texture returns the texture of u, or nil.
func (u *Unshaded) Texture() Texture { return u.texture }

// SetUseAlpha sets whether the alpha channel is used.
func (u *Unshaded) SetUseAlpha(enabled bool) {
	u.alpha = enabled
	u.m.srv.FixedMaterialSetFlag(u.m.rid, FixedFlagUseAlpha, enabled)
}

// UseAlpha returns whether the alpha channel is used.
func (u *Unshaded) UseAlpha() bool { return u.alpha }

// SetUseColorArray sets whether vertex colors are
// used.
func (u *Unshaded) SetUseColorArray(enabled bool) {
	u.colorArray = enabled
	u.m.srv.FixedMaterialSetFlag(u.m.rid, FixedFlagUseColorArray, enabled)
}

// UseColorArray returns whether vertex colors are
// used.
func (u *Unshaded) UseColorArray() bool { return u.colorArray }

func (u *Unshaded) copyTo(dst *Material) error {
	v := dst.Unshaded()
	if u.texture != nil {
		v.SetTexture(u.texture)
	}
	if u.alpha != v.alpha {
		v.SetUseAlpha(u.alpha)
	}
	if u.colorArray != v.colorArray {
		v.SetUseColorArray(u.colorArray)
	}
	return nil
}
