// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/visual/linear"
	"github.com/gviegas/visual/prop"
	"github.com/gviegas/visual/server"
	"github.com/gviegas/visual/shader"
	"github.com/gviegas/visual/variant"
)

func newMem() *server.Mem {
	cfg := server.DefaultConfig()
	cfg.Trace = true
	return server.NewMem(&cfg)
}

type tex server.RID

func (t tex) RID() server.RID { return server.RID(t) }

func TestMaterial(t *testing.T) {
	srv := newMem()
	m := NewShader(srv)
	require.True(t, m.RID().IsValid())
	assert.Equal(t, KindShader, m.Kind())
	assert.True(t, m.Flag(FlagVisible))
	assert.False(t, m.Flag(FlagWireframe))
	assert.Equal(t, float32(1), m.LineWidth())
	assert.Equal(t, BlendMix, m.BlendMode())
	assert.Equal(t, ShadeLambert, m.ShadeModel())
	assert.Nil(t, m.Fixed())
	assert.Nil(t, m.Particle())
	assert.Nil(t, m.Unshaded())
	assert.NotNil(t, m.Shader())

	srv.ResetCalls()
	require.NoError(t, m.SetFlag(FlagWireframe, true))
	require.NoError(t, m.SetHint(HintNoShadow, true))
	require.NoError(t, m.SetBlendMode(BlendSub))
	require.NoError(t, m.SetShadeModel(ShadeToon))
	m.SetLineWidth(3)
	assert.Len(t, srv.Calls(), 5, "each setter forwards exactly one call")

	st, ok := srv.Material(m.RID())
	require.True(t, ok)
	assert.True(t, st.Flags[FlagWireframe])
	assert.True(t, st.Hints[HintNoShadow])
	assert.Equal(t, BlendSub, st.Blend)
	assert.Equal(t, ShadeToon, st.Shade)
	assert.Equal(t, float32(3), st.LineWidth)
	assert.True(t, m.Hint(HintNoShadow))

	srv.ResetCalls()
	assert.ErrorIs(t, m.SetFlag(FlagMax, true), ErrFlagRange)
	assert.ErrorIs(t, m.SetFlag(-1, true), ErrFlagRange)
	assert.ErrorIs(t, m.SetHint(HintMax, true), ErrHintRange)
	assert.ErrorIs(t, m.SetBlendMode(BlendMax), ErrModeRange)
	assert.ErrorIs(t, m.SetShadeModel(-1), ErrModeRange)
	assert.Empty(t, srv.Calls(), "rejected calls must not forward")
	assert.False(t, m.Flag(FlagMax))
	assert.False(t, m.Hint(-1))
	assert.Equal(t, BlendSub, m.BlendMode())

	m.Free()
	m.Free()
	assert.Equal(t, server.Nil, m.RID())
	assert.Equal(t, 0, srv.Live())
	assert.Equal(t, 0, srv.Misuse())
}

func TestNew(t *testing.T) {
	srv := newMem()
	for k := range KindMax {
		m, err := New(srv, k)
		require.NoError(t, err)
		assert.Equal(t, k, m.Kind())
		assert.Equal(t, k, m.Payload().Kind())
		kk, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, kk)
	}
	_, err := New(srv, KindMax)
	assert.Error(t, err)
	_, ok := ParseKind("Material")
	assert.False(t, ok)
}

func TestFixed(t *testing.T) {
	srv := newMem()
	m := NewFixed(srv)
	f := m.Fixed()
	require.NotNil(t, f)

	st, _ := srv.Material(m.RID())
	require.True(t, st.Fixed)
	assert.Equal(t, variant.RGB(1, 1, 1), st.FixedParams[ParamDiffuse], "defaults are forwarded")
	assert.Equal(t, float32(40), st.FixedParams[ParamSpecularExp])
	assert.Equal(t, float32(40), f.Param(ParamSpecularExp))
	assert.Equal(t, float32(1), f.PointSize())
	assert.Equal(t, linear.Identity(), f.UVTransform())
	assert.Nil(t, f.Texture(ParamDiffuse), "unset textures are nil")
	assert.Equal(t, TexCoordUV, f.TexCoordMode(ParamNormal))

	tx := tex(srv.TextureCreate())
	srv.ResetCalls()
	require.NoError(t, f.SetParam(ParamGlow, 0.25))
	require.NoError(t, f.SetParam(ParamEmission, []float32{1, 0, 0}))
	require.NoError(t, f.SetTexture(ParamNormal, tx))
	require.NoError(t, f.SetTexCoordMode(ParamNormal, TexCoordSphere))
	require.NoError(t, f.SetFlag(FixedFlagUsePointSize, true))
	f.SetPointSize(4)
	var uv linear.Transform
	uv.I()
	uv.Origin = linear.V3{0.5, 0.5, 0}
	f.SetUVTransform(uv)
	require.NoError(t, f.SetDetailBlendMode(BlendMul))
	assert.Len(t, srv.Calls(), 8)

	assert.Equal(t, float32(0.25), f.Param(ParamGlow))
	assert.Equal(t, variant.RGB(1, 0, 0), f.Param(ParamEmission))
	assert.Equal(t, tx, f.Texture(ParamNormal))
	assert.Equal(t, TexCoordSphere, f.TexCoordMode(ParamNormal))
	assert.True(t, f.Flag(FixedFlagUsePointSize))
	assert.Equal(t, float32(4), f.PointSize())
	assert.Equal(t, uv, f.UVTransform())
	assert.Equal(t, BlendMul, f.DetailBlendMode())
	st, _ = srv.Material(m.RID())
	assert.Equal(t, float32(0.25), st.FixedParams[ParamGlow])
	assert.Equal(t, tx.RID(), st.Textures[ParamNormal])
	assert.Equal(t, TexCoordSphere, st.TexCoords[ParamNormal])
	assert.Equal(t, float32(4), st.PointSize)
	assert.Equal(t, uv, st.UVTransform)
	assert.Equal(t, BlendMul, st.DetailBlend)

	srv.ResetCalls()
	assert.ErrorIs(t, f.SetParam(ParamMax, 1), ErrParamRange)
	assert.ErrorIs(t, f.SetParam(ParamGlow, "bright"), variant.ErrType)
	assert.ErrorIs(t, f.SetTexture(-1, nil), ErrParamRange)
	assert.ErrorIs(t, f.SetTexCoordMode(ParamMax, TexCoordUV), ErrParamRange)
	assert.ErrorIs(t, f.SetTexCoordMode(ParamDiffuse, TexCoordMax), ErrModeRange)
	assert.ErrorIs(t, f.SetFlag(FixedFlagMax, true), ErrFlagRange)
	assert.ErrorIs(t, f.SetDetailBlendMode(-1), ErrModeRange)
	assert.Empty(t, srv.Calls())
	assert.Nil(t, f.Param(ParamMax))
	assert.Nil(t, f.Texture(ParamMax))
	assert.False(t, f.Flag(-1))
	assert.Equal(t, float32(0.25), f.Param(ParamGlow))

	require.NoError(t, f.SetTexture(ParamNormal, nil))
	assert.Nil(t, f.Texture(ParamNormal))
	st, _ = srv.Material(m.RID())
	assert.Equal(t, server.Nil, st.Textures[ParamNormal])
}

func TestParticle(t *testing.T) {
	srv := newMem()
	m := NewParticle(srv)
	assert.Equal(t, KindParticle, m.Kind())
	assert.True(t, m.Flag(FlagDoubleSided))
	assert.True(t, m.Flag(FlagUnshaded))
	assert.True(t, m.Hint(HintNoDepthDraw))
	assert.Equal(t, BlendAdd, m.BlendMode())
	st, _ := srv.Material(m.RID())
	assert.True(t, st.Fixed)
	assert.True(t, st.FixedFlags[FixedFlagUseAlpha])
	assert.True(t, st.FixedFlags[FixedFlagUseColorArray])
	assert.Equal(t, BlendAdd, st.Blend)

	p := m.Particle()
	assert.Nil(t, p.Texture())
	tx := tex(srv.TextureCreate())
	srv.ResetCalls()
	p.SetTexture(tx)
	assert.Equal(t, tx, p.Texture())
	assert.Len(t, srv.CallsTo("FixedMaterialSetTexture", m.RID()), 1)
	st, _ = srv.Material(m.RID())
	assert.Equal(t, tx.RID(), st.Textures[ParamDiffuse])
	assert.Equal(t, 0, srv.Misuse())
}

func TestUnshaded(t *testing.T) {
	srv := newMem()
	m := NewUnshaded(srv)
	u := m.Unshaded()
	require.NotNil(t, u)
	assert.True(t, m.Flag(FlagUnshaded))
	assert.True(t, u.UseAlpha())
	assert.False(t, u.UseColorArray())
	assert.Nil(t, u.Texture())
	st, _ := srv.Material(m.RID())
	assert.True(t, st.FixedFlags[FixedFlagUseAlpha])
	assert.True(t, st.Flags[FlagUnshaded])

	u.SetUseColorArray(true)
	u.SetUseAlpha(false)
	st, _ = srv.Material(m.RID())
	assert.True(t, st.FixedFlags[FixedFlagUseColorArray])
	assert.False(t, st.FixedFlags[FixedFlagUseAlpha])
}

func paramParser(code string) ([]shader.Param, error) {
	switch code {
	case "v1":
		return []shader.Param{
			{Name: "gain", Type: variant.Float, Default: 1},
			{Name: "tint", Type: variant.Color4, Default: variant.RGB(1, 1, 1)},
			{Name: "mode", Type: variant.Int},
		}, nil
	case "v2":
		return []shader.Param{
			{Name: "mode", Type: variant.Bool},
			{Name: "gain", Type: variant.Float, Default: 5},
		}, nil
	}
	return nil, nil
}

func names(params []shader.Param) (s []string) {
	for _, p := range params {
		s = append(s, p.Name)
	}
	return
}

func TestShaderParams(t *testing.T) {
	srv := newMem()
	sh := shader.New(srv, shader.ParserFunc(paramParser))
	require.NoError(t, sh.SetCode("v1"))

	m := NewShader(srv)
	p := m.Shader()
	var changed int
	m.OnChange(func(name string) {
		if name == "" {
			changed++
		}
	})
	p.SetShader(sh)
	assert.Same(t, sh, p.Shader())
	assert.Equal(t, 1, changed)
	assert.Equal(t, []string{"gain", "tint", "mode"}, names(p.Params()))
	v, ok := p.Param("gain")
	require.True(t, ok)
	assert.Equal(t, float32(1), v)
	st, _ := srv.Material(m.RID())
	assert.Equal(t, sh.RID(), st.Shader)
	assert.Equal(t, map[string]any{
		"gain": float32(1),
		"tint": variant.RGB(1, 1, 1),
		"mode": int64(0),
	}, st.Params)

	require.NoError(t, p.SetParam("gain", 3))
	require.NoError(t, p.SetParam("mode", int64(2)))
	assert.ErrorIs(t, p.SetParam("missing", 1), ErrUnknownParam)
	assert.ErrorIs(t, p.SetParam("gain", true), variant.ErrType)
	v, _ = p.Param("gain")
	assert.Equal(t, float32(3), v)

	// Changing the code re-syncs: gain keeps its value,
	// mode changes type and tint is dropped.
	require.NoError(t, sh.SetCode("v2"))
	assert.Equal(t, 2, changed)
	assert.Equal(t, []string{"mode", "gain"}, names(p.Params()))
	assert.Equal(t, map[string]any{"mode": false, "gain": float32(3)}, p.Values())
	st, _ = srv.Material(m.RID())
	assert.Equal(t, map[string]any{"mode": false, "gain": float32(3)}, st.Params)

	p.SetShader(nil)
	assert.Nil(t, p.Shader())
	assert.Empty(t, p.Params())
	st, _ = srv.Material(m.RID())
	assert.Equal(t, server.Nil, st.Shader)
	assert.Empty(t, st.Params)

	// Detached shaders no longer drive the material.
	require.NoError(t, sh.SetCode("v1"))
	assert.Empty(t, p.Params())
	assert.Equal(t, 0, sh.Connections(shader.Changed))

	p.SetShader(sh)
	assert.Equal(t, 1, sh.Connections(shader.Changed))
	m.Free()
	assert.Equal(t, 0, sh.Connections(shader.Changed))
}

func TestDuplicate(t *testing.T) {
	srv := newMem()

	m := NewFixed(srv)
	m.Name = "fixed"
	require.NoError(t, m.SetFlag(FlagOnTop, true))
	require.NoError(t, m.SetBlendMode(BlendPremultAlpha))
	m.SetLineWidth(2)
	f := m.Fixed()
	tx := tex(srv.TextureCreate())
	require.NoError(t, f.SetParam(ParamDiffuse, variant.RGB(0, 1, 0)))
	require.NoError(t, f.SetTexture(ParamDetail, tx))
	f.SetPointSize(8)

	d, err := m.Duplicate()
	require.NoError(t, err)
	assert.NotEqual(t, m.RID(), d.RID())
	assert.Equal(t, "fixed", d.Name)
	assert.True(t, d.Flag(FlagOnTop))
	assert.Equal(t, BlendPremultAlpha, d.BlendMode())
	assert.Equal(t, float32(2), d.LineWidth())
	assert.Equal(t, variant.RGB(0, 1, 0), d.Fixed().Param(ParamDiffuse))
	assert.Equal(t, tx, d.Fixed().Texture(ParamDetail))
	assert.Equal(t, float32(8), d.Fixed().PointSize())
	sm, _ := srv.Material(m.RID())
	sd, _ := srv.Material(d.RID())
	assert.Equal(t, sm, sd, "server state must match")

	sh := shader.New(srv, shader.ParserFunc(paramParser))
	require.NoError(t, sh.SetCode("v2"))
	s := NewShader(srv)
	s.Shader().SetShader(sh)
	require.NoError(t, s.Shader().SetParam("gain", 9))
	require.NoError(t, s.Shader().SetParam("mode", true))
	ds, err := s.Duplicate()
	require.NoError(t, err)
	assert.Same(t, sh, ds.Shader().Shader())
	assert.Equal(t, s.Shader().Values(), ds.Shader().Values())
	sm, _ = srv.Material(s.RID())
	sd, _ = srv.Material(ds.RID())
	assert.Equal(t, sm, sd)

	require.NoError(t, ds.Shader().SetParam("gain", 1))
	v, _ := s.Shader().Param("gain")
	assert.Equal(t, float32(9), v, "duplicates do not share values")

	for _, k := range []Kind{KindParticle, KindUnshaded} {
		m, _ := New(srv, k)
		d, err := m.Duplicate()
		require.NoError(t, err)
		sm, _ := srv.Material(m.RID())
		sd, _ := srv.Material(d.RID())
		assert.Equal(t, sm, sd, "%v", k)
	}
}

func TestClass(t *testing.T) {
	srv := newMem()
	names := func(l []prop.Info) (s []string) {
		for _, i := range l {
			s = append(s, i.Name)
		}
		return
	}

	for _, c := range []*prop.Class[*Material]{FixedClass, ParticleClass, UnshadedClass} {
		assert.True(t, c.IsReversed(), c.Name())
		assert.Equal(t, "Material", c.Parent())
	}
	assert.False(t, ShaderClass.IsReversed())

	u := NewUnshaded(srv)
	c := ClassOf(u)
	assert.Same(t, UnshadedClass, c)
	l := names(c.List(u))
	require.NotEmpty(t, l)
	assert.Equal(t, "texture/texture", l[0], "kind-specific properties come first")
	assert.Equal(t, "flags/visible", l[3])

	f := NewFixed(srv)
	tx := tex(srv.TextureCreate())
	require.NoError(t, ClassOf(f).Set(f, "params/glow", 0.5))
	require.NoError(t, ClassOf(f).Set(f, "textures/glow_tc", 2))
	require.NoError(t, ClassOf(f).Set(f, "flags/wireframe", true))
	require.NoError(t, ClassOf(f).Set(f, "textures/diffuse", tx))
	assert.Equal(t, float32(0.5), f.Fixed().Param(ParamGlow))
	assert.Equal(t, TexCoordUV2, f.Fixed().TexCoordMode(ParamGlow))
	assert.True(t, f.Flag(FlagWireframe))
	assert.Equal(t, tx, f.Fixed().Texture(ParamDiffuse))
	assert.ErrorIs(t, ClassOf(f).Set(f, "textures/diffuse", 3), variant.ErrType)
	require.NoError(t, ClassOf(f).Set(f, "textures/diffuse", nil))
	v, err := ClassOf(f).Get(f, "textures/diffuse")
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.ErrorIs(t, ClassOf(f).Set(f, "params/blend_mode", 99), ErrModeRange)

	sh := shader.New(srv, shader.ParserFunc(paramParser))
	require.NoError(t, sh.SetCode("v1"))
	s := NewShader(srv)
	v, err = ClassOf(s).Get(s, "shader/shader")
	require.NoError(t, err)
	assert.Nil(t, v)
	require.NoError(t, ClassOf(s).Set(s, "shader/shader", sh))
	assert.Equal(t, []string{
		"flags/visible", "flags/double_sided", "flags/invert_faces", "flags/unshaded",
		"flags/on_top", "flags/wireframe", "flags/billboard",
		"hints/decal", "hints/opaque_pre_pass", "hints/no_shadow", "hints/no_depth_draw",
		"params/blend_mode", "params/shade_model", "params/line_width",
		"shader/shader",
		"shader_param/gain", "shader_param/tint", "shader_param/mode",
	}, names(ClassOf(s).List(s)))
	require.NoError(t, ClassOf(s).Set(s, "shader_param/gain", 2))
	v, err = ClassOf(s).Get(s, "shader_param/gain")
	require.NoError(t, err)
	assert.Equal(t, float32(2), v)
	assert.ErrorIs(t, ClassOf(s).Set(s, "shader_param/none", 2), prop.ErrUnknown)

	consts := map[string]int64{}
	for _, k := range FixedClass.Constants() {
		consts[k.Name] = k.Value
	}
	assert.Equal(t, int64(ParamShadeParam), consts["PARAM_SHADE_PARAM"])
	assert.Equal(t, int64(BlendPremultAlpha), consts["BLEND_MODE_PMALPHA"])
	assert.Equal(t, int64(TexCoordUVTransform), consts["TEXCOORD_UV_XFORM"])
	assert.Equal(t, int64(ShadeCustom3), consts["SHADE_MODEL_CUSTOM_3"])
}
