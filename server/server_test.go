// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package server

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/visual/linear"
)

func newTestMem() (*Mem, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Trace = true
	cfg.InitialCapacity = 4
	cfg.LogOutput = &buf
	return NewMem(&cfg), &buf
}

func TestRID(t *testing.T) {
	assert.False(t, Nil.IsValid())
	r := makeRID(kindMaterial, 7, 41)
	assert.True(t, r.IsValid())
	assert.Equal(t, kindMaterial, r.kind())
	assert.Equal(t, uint32(7), r.gen())
	assert.Equal(t, 41, r.slot())
	assert.Equal(t, "RID(material:41#7)", r.String())
	assert.Equal(t, "RID(nil)", Nil.String())
}

func TestHandleMap(t *testing.T) {
	m := handleMap[int]{kind: kindMesh}
	var rids []RID
	for i := range 100 {
		rid := m.insert(i)
		require.True(t, rid.IsValid())
		rids = append(rids, rid)
	}
	require.Equal(t, 100, m.len())
	for i, rid := range rids {
		require.Equal(t, i, *m.get(rid))
	}

	require.True(t, m.remove(rids[10]))
	require.False(t, m.remove(rids[10]), "second remove must fail")
	assert.Nil(t, m.get(rids[10]))
	assert.Equal(t, 99, m.len())
	// Swapped entry must still be reachable.
	assert.Equal(t, 99, *m.get(rids[99]))

	// Slot reuse must not revive the stale handle.
	rid := m.insert(1000)
	assert.Equal(t, rids[10].slot(), rid.slot())
	assert.NotEqual(t, rids[10], rid)
	assert.Nil(t, m.get(rids[10]))
	assert.Equal(t, 1000, *m.get(rid))

	other := handleMap[int]{kind: kindTexture}
	assert.Nil(t, other.get(rid), "kind mismatch")
	assert.Nil(t, m.get(Nil))
}

func TestMemInstance(t *testing.T) {
	s, _ := newTestMem()
	inst := s.InstanceCreate()
	require.True(t, s.IsLive(inst))

	st, ok := s.Instance(inst)
	require.True(t, ok)
	assert.Equal(t, uint32(1), st.LayerMask)
	assert.Equal(t, linear.Identity(), st.Transform)
	assert.Equal(t, [InstanceFlagMax]bool{true, true, true}, st.Flags)

	scen := s.ScenarioCreate()
	room := s.InstanceCreate()
	mat := s.MaterialCreate()
	mesh := s.MeshCreate()
	s.InstanceAttachObject(inst, 42)
	s.InstanceSetBase(inst, mesh)
	s.InstanceSetScenario(inst, scen)
	s.InstanceSetRoom(inst, room)
	s.InstanceAttachSkeleton(inst, RID(99))
	s.InstanceSetLayerMask(inst, 6)
	s.InstanceGeometrySetMaterialOverride(inst, mat)
	s.InstanceGeometrySetDrawRange(inst, 1, 10)
	s.InstanceGeometrySetFlag(inst, InstanceFlagBillboard, true)
	xf := linear.Identity()
	xf.Origin = linear.V3{1, 2, 3}
	s.InstanceSetTransform(inst, xf)

	st, _ = s.Instance(inst)
	assert.Equal(t, InstanceState{
		Object:           42,
		Base:             mesh,
		Scenario:         scen,
		Room:             room,
		Skeleton:         RID(99),
		Transform:        xf,
		LayerMask:        6,
		MaterialOverride: mat,
		DrawBegin:        1,
		DrawEnd:          10,
		Flags:            [InstanceFlagMax]bool{true, true, true, true},
	}, st)
	assert.Zero(t, s.Misuse())

	s.InstanceSetScenario(inst, Nil)
	s.InstanceSetRoom(inst, Nil)
	s.InstanceGeometrySetMaterialOverride(inst, Nil)
	st, _ = s.Instance(inst)
	assert.Equal(t, Nil, st.Scenario)
	assert.Equal(t, Nil, st.Room)
	assert.Equal(t, Nil, st.MaterialOverride)
	assert.Zero(t, s.Misuse())
}

func TestMemMisuse(t *testing.T) {
	s, log := newTestMem()
	inst := s.InstanceCreate()
	mat := s.MaterialCreate()

	s.InstanceSetScenario(inst, mat)
	assert.Equal(t, 1, s.Misuse(), "wrong kind")
	s.FixedMaterialSetPointSize(mat, 2)
	assert.Equal(t, 2, s.Misuse(), "not a fixed material")
	s.InstanceGeometrySetFlag(inst, InstanceFlagMax, true)
	assert.Equal(t, 3, s.Misuse(), "flag out of range")

	s.Free(inst)
	s.Free(inst)
	assert.Equal(t, 4, s.Misuse(), "double free")
	s.InstanceSetLayerMask(inst, 2)
	assert.Equal(t, 5, s.Misuse(), "stale handle")
	assert.True(t, strings.Contains(log.String(), "invalid handle"))
}

func TestMemMaterial(t *testing.T) {
	s, _ := newTestMem()
	mat := s.MaterialCreate()
	st, ok := s.Material(mat)
	require.True(t, ok)
	assert.False(t, st.Fixed)
	assert.Equal(t, float32(1), st.LineWidth)
	assert.True(t, st.Flags[MaterialFlagVisible])

	sh := s.ShaderCreate()
	s.ShaderSetCode(sh, "code")
	s.MaterialSetShader(mat, sh)
	s.MaterialSetParam(mat, "a", 1.5)
	s.MaterialSetFlag(mat, MaterialFlagWireframe, true)
	s.MaterialSetHint(mat, MaterialHintNoShadow, true)
	s.MaterialSetBlendMode(mat, BlendModeAdd)
	s.MaterialSetShadeModel(mat, ShadeModelToon)
	s.MaterialSetLineWidth(mat, 3)
	st, _ = s.Material(mat)
	assert.Equal(t, sh, st.Shader)
	assert.Equal(t, map[string]any{"a": 1.5}, st.Params)
	assert.True(t, st.Flags[MaterialFlagWireframe])
	assert.True(t, st.Hints[MaterialHintNoShadow])
	assert.Equal(t, BlendModeAdd, st.Blend)
	assert.Equal(t, ShadeModelToon, st.Shade)
	assert.Equal(t, float32(3), st.LineWidth)
	code, _ := s.ShaderCode(sh)
	assert.Equal(t, "code", code)

	s.MaterialSetParam(mat, "a", nil)
	st, _ = s.Material(mat)
	assert.Empty(t, st.Params)

	fix := s.FixedMaterialCreate()
	tex := s.TextureCreate()
	s.FixedMaterialSetParam(fix, FixedParamGlow, float32(0.5))
	s.FixedMaterialSetTexture(fix, FixedParamDiffuse, tex)
	s.FixedMaterialSetTexcoordMode(fix, FixedParamDiffuse, TexCoordSphere)
	s.FixedMaterialSetFlag(fix, FixedFlagUseAlpha, true)
	s.FixedMaterialSetPointSize(fix, 4)
	s.FixedMaterialSetDetailBlendMode(fix, BlendModeSub)
	st, _ = s.Material(fix)
	assert.True(t, st.Fixed)
	assert.Equal(t, float32(0.5), st.FixedParams[FixedParamGlow])
	assert.Equal(t, tex, st.Textures[FixedParamDiffuse])
	assert.Equal(t, TexCoordSphere, st.TexCoords[FixedParamDiffuse])
	assert.True(t, st.FixedFlags[FixedFlagUseAlpha])
	assert.Equal(t, float32(4), st.PointSize)
	assert.Equal(t, BlendModeSub, st.DetailBlend)
	assert.Equal(t, linear.Identity(), st.UVTransform)
	assert.Zero(t, s.Misuse())
}

func TestMemTexture(t *testing.T) {
	s, _ := newTestMem()
	tex := s.TextureCreate()
	s.TextureAllocate(tex, 2, 2)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Pix[0] = 255
	s.TextureSetData(tex, img)
	st, ok := s.Texture(tex)
	require.True(t, ok)
	assert.Equal(t, 2, st.Width)
	require.NotNil(t, st.Data)
	assert.Equal(t, uint8(255), st.Data.Pix[0])
	img.Pix[0] = 0
	assert.Equal(t, uint8(255), st.Data.Pix[0], "data must be copied")

	s.TextureSetData(tex, image.NewRGBA(image.Rect(0, 0, 3, 1)))
	assert.Equal(t, 1, s.Misuse())
}

func TestMemCalls(t *testing.T) {
	s, _ := newTestMem()
	inst := s.InstanceCreate()
	s.InstanceSetLayerMask(inst, 2)
	s.InstanceSetLayerMask(inst, 3)
	calls := s.CallsTo("InstanceSetLayerMask", inst)
	require.Len(t, calls, 2)
	assert.Equal(t, []any{uint32(3)}, calls[1].Args)
	assert.Len(t, s.Calls(), 3)
	s.ResetCalls()
	assert.Empty(t, s.Calls())

	quiet := NewMem(nil)
	quiet.InstanceCreate()
	assert.Empty(t, quiet.Calls())
	assert.Equal(t, 1, quiet.Live())
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
initial_capacity = 64
trace = true
log_level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.InitialCapacity)
	assert.True(t, cfg.Trace)
	assert.Equal(t, "debug", cfg.LogLevel)

	cfg, err = LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().InitialCapacity, cfg.InitialCapacity)

	_, err = LoadConfig(strings.NewReader(`unknown = 1`))
	assert.Error(t, err)
	_, err = LoadConfig(strings.NewReader(`log_level = "loud"`))
	assert.Error(t, err)
	_, err = LoadConfig(strings.NewReader(`initial_capacity = -1`))
	assert.Error(t, err)
}
