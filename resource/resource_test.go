// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package resource

import (
	"bytes"
	"errors"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/visual/linear"
	"github.com/gviegas/visual/material"
	"github.com/gviegas/visual/server"
	"github.com/gviegas/visual/shader"
	"github.com/gviegas/visual/texture"
	"github.com/gviegas/visual/variant"
)

type refs map[string]any

func (r refs) Ref(obj any) (string, bool) {
	for k, v := range r {
		if v == obj {
			return k, true
		}
	}
	return "", false
}

func (r refs) Resolve(ref, class string) (any, error) {
	if v, ok := r[ref]; ok {
		return v, nil
	}
	return nil, errors.New("no such resource: " + ref)
}

func newTexture(t *testing.T, srv server.ResourceServer) *texture.Texture {
	tx, err := texture.New(srv, image.NewRGBA(image.Rect(0, 0, 2, 2)), 0)
	require.NoError(t, err)
	return tx
}

func fixedMaterial(t *testing.T, srv server.Server, tx *texture.Texture) *material.Material {
	m := material.NewFixed(srv)
	m.Name = "Stone"
	require.NoError(t, m.SetFlag(material.FlagWireframe, true))
	require.NoError(t, m.SetBlendMode(material.BlendAdd))
	m.SetLineWidth(2.5)
	f := m.Fixed()
	require.NoError(t, f.SetParam(material.ParamDiffuse, variant.RGB(0.5, 0.25, 1)))
	require.NoError(t, f.SetParam(material.ParamSpecularExp, 12))
	require.NoError(t, f.SetTexture(material.ParamDiffuse, tx))
	require.NoError(t, f.SetTexCoordMode(material.ParamDiffuse, material.TexCoordUV2))
	require.NoError(t, f.SetFlag(material.FixedFlagUseAlpha, true))
	xf := linear.Identity()
	xf.Origin = linear.V3{1, 2, 3}
	f.SetUVTransform(xf)
	return m
}

func TestRoundTrip(t *testing.T) {
	for _, format := range [...]Format{TOML, YAML} {
		t.Run(format.String(), func(t *testing.T) {
			srv := server.NewMem(nil)
			tx := newTexture(t, srv)
			res := refs{"res://stone.png": tx}
			m := fixedMaterial(t, srv, tx)

			var buf bytes.Buffer
			require.NoError(t, Save(&buf, m, format, res))
			assert.Contains(t, buf.String(), "FixedMaterial")
			assert.Contains(t, buf.String(), "res://stone.png")

			m2, err := Load(srv, &buf, format, res)
			require.NoError(t, err)
			assert.Equal(t, material.KindFixed, m2.Kind())
			assert.Equal(t, "Stone", m2.Name)
			assert.Equal(t, m.Fixed().Param(material.ParamDiffuse), m2.Fixed().Param(material.ParamDiffuse))
			assert.Equal(t, tx, m2.Fixed().Texture(material.ParamDiffuse))

			want, _ := srv.Material(m.RID())
			have, ok := srv.Material(m2.RID())
			require.True(t, ok)
			assert.Equal(t, want, have)
			assert.Equal(t, 0, srv.Misuse())
		})
	}
}

func TestShaderMaterial(t *testing.T) {
	srv := server.NewMem(nil)
	tx := newTexture(t, srv)
	sh := shader.New(srv, shader.ParserFunc(func(string) ([]shader.Param, error) {
		return []shader.Param{
			{Name: "speed", Type: variant.Float, Default: float32(1)},
			{Name: "albedo", Type: variant.Object},
		}, nil
	}))
	require.NoError(t, sh.SetCode("// speed, albedo"))
	res := refs{"res://water.wgsl": sh, "res://water.png": tx}

	m := material.NewShader(srv)
	m.Shader().SetShader(sh)
	require.NoError(t, m.Shader().SetParam("speed", 3))
	require.NoError(t, m.Shader().SetParam("albedo", tx))

	doc := Encode(m, res)
	assert.Equal(t, "ShaderMaterial", doc.Class)
	assert.Equal(t, "res://water.wgsl", doc.Properties["shader/shader"])
	assert.Equal(t, "res://water.png", doc.Properties["shader_param/albedo"])

	for _, format := range [...]Format{TOML, YAML} {
		var buf bytes.Buffer
		require.NoError(t, Save(&buf, m, format, res))
		m2, err := Load(srv, &buf, format, res)
		require.NoError(t, err, format)
		assert.Same(t, sh, m2.Shader().Shader())
		v, ok := m2.Shader().Param("speed")
		require.True(t, ok)
		assert.Equal(t, float32(3), v)
		v, _ = m2.Shader().Param("albedo")
		assert.Equal(t, tx, v)
	}
}

func TestEncode(t *testing.T) {
	srv := server.NewMem(nil)
	m := fixedMaterial(t, srv, newTexture(t, srv))
	doc := Encode(m, nil)
	assert.NotContains(t, doc.Properties, "textures/diffuse", "objects without a reference are left out")
	assert.Equal(t, []float32{0.5, 0.25, 1, 1}, doc.Properties["params/diffuse"])
	assert.Equal(t, true, doc.Properties["flags/wireframe"])
	assert.Equal(t, int64(material.BlendAdd), doc.Properties["params/blend_mode"])

	_, err := Decode(srv, doc, nil)
	require.NoError(t, err)
	doc.Properties["textures/diffuse"] = "res://missing.png"
	_, err = Decode(srv, doc, nil)
	assert.Error(t, err)
	_, err = Decode(srv, doc, refs{})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	srv := server.NewMem(nil)
	const doc = `
class: UnshadedMaterial
properties:
  texture/use_alpha: false
  params/line_width: 4
  no/such_property: 1
`
	m, err := Load(srv, strings.NewReader(doc), YAML, nil)
	require.NoError(t, err, "unknown properties are skipped")
	assert.Equal(t, material.KindUnshaded, m.Kind())
	assert.False(t, m.Unshaded().UseAlpha())
	assert.Equal(t, float32(4), m.LineWidth())

	_, err = Load(srv, strings.NewReader("class = \"Spatial\"\n"), TOML, nil)
	assert.ErrorIs(t, err, ErrClass)
	_, err = Load(srv, strings.NewReader("class = \"FixedMaterial\"\n[properties]\n\"params/blend_mode\" = 99\n"), TOML, nil)
	assert.ErrorIs(t, err, material.ErrModeRange)
	_, err = Load(srv, strings.NewReader("class: ["), YAML, nil)
	assert.Error(t, err)
	_, err = Load(srv, strings.NewReader(""), Format(7), nil)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestFile(t *testing.T) {
	srv := server.NewMem(nil)
	m := material.NewParticle(srv)
	m.Name = "Sparks"
	dir := t.TempDir()
	for _, name := range [...]string{"sparks.toml", "sparks.yml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveFile(path, m, nil))
		m2, err := LoadFile(srv, path, nil)
		require.NoError(t, err)
		assert.Equal(t, material.KindParticle, m2.Kind())
		assert.Equal(t, "Sparks", m2.Name)
		assert.Equal(t, m.BlendMode(), m2.BlendMode())
	}
	_, err := FormatOf("sparks.json")
	assert.ErrorIs(t, err, ErrFormat)
	f, err := FormatOf("SPARKS.YAML")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)
}
