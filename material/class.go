// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package material

import (
	"strings"

	"github.com/gviegas/visual/linear"
	"github.com/gviegas/visual/prop"
	"github.com/gviegas/visual/shader"
	"github.com/gviegas/visual/variant"
)

var (
	flagNames     = [FlagMax]string{"visible", "double_sided", "invert_faces", "unshaded", "on_top", "wireframe", "billboard"}
	hintNames     = [HintMax]string{"decal", "opaque_pre_pass", "no_shadow", "no_depth_draw"}
	paramNames    = [ParamMax]string{"diffuse", "detail", "specular", "emission", "specular_exp", "glow", "normal", "shade_param"}
	fixedFlagName = [FixedFlagMax]string{"use_alpha", "use_color_array", "use_point_size"}
)

const (
	blendEnum    = "Mix,Mul,Add,Sub,PMAlpha"
	shadeEnum    = "Lambert,Lambert Wrap,Fresnel,Toon,Custom 0,Custom 1,Custom 2,Custom 3"
	texCoordEnum = "UV,UV Xform,UV2,Sphere"
	paramPrefix  = "shader_param/"
)

func setObject[T any](v any, set func(T)) error {
	if v == nil {
		var zero T
		set(zero)
		return nil
	}
	t, ok := v.(T)
	if !ok {
		return variant.ErrType
	}
	set(t)
	return nil
}

// Class is the property table of the Material base.
var Class = func() *prop.Class[*Material] {
	c := prop.NewClass[*Material]("Material")
	for i, name := range flagNames {
		f := Flag(i)
		c.Add(prop.Property[*Material]{
			Info: prop.Info{Name: "flags/" + name, Type: variant.Bool},
			Get:  func(m *Material) any { return m.Flag(f) },
			Set:  func(m *Material, v any) error { return m.SetFlag(f, v.(bool)) },
		})
	}
	for i, name := range hintNames {
		h := Hint(i)
		c.Add(prop.Property[*Material]{
			Info: prop.Info{Name: "hints/" + name, Type: variant.Bool},
			Get:  func(m *Material) any { return m.Hint(h) },
			Set:  func(m *Material, v any) error { return m.SetHint(h, v.(bool)) },
		})
	}
	c.Add(
		prop.Property[*Material]{
			Info: prop.Info{Name: "params/blend_mode", Type: variant.Int, Hint: prop.HintEnum, HintString: blendEnum},
			Get:  func(m *Material) any { return int64(m.BlendMode()) },
			Set:  func(m *Material, v any) error { return m.SetBlendMode(BlendMode(v.(int64))) },
		},
		prop.Property[*Material]{
			Info: prop.Info{Name: "params/shade_model", Type: variant.Int, Hint: prop.HintEnum, HintString: shadeEnum},
			Get:  func(m *Material) any { return int64(m.ShadeModel()) },
			Set:  func(m *Material, v any) error { return m.SetShadeModel(ShadeModel(v.(int64))) },
		},
		prop.Property[*Material]{
			Info: prop.Info{Name: "params/line_width", Type: variant.Float, Hint: prop.HintRange, HintString: "0.1,32.0,0.1"},
			Get:  func(m *Material) any { return m.LineWidth() },
			Set:  func(m *Material, v any) error { m.SetLineWidth(v.(float32)); return nil },
		},
	)
	for i, name := range flagNames {
		c.Const("FLAG_"+strings.ToUpper(name), int64(i))
	}
	c.Const("FLAG_MAX", int64(FlagMax))
	for i, name := range strings.Split(blendEnum, ",") {
		c.Const("BLEND_MODE_"+strings.ToUpper(name), int64(i))
	}
	for i, name := range hintNames {
		c.Const("HINT_"+strings.ToUpper(name), int64(i))
	}
	c.Const("HINT_MAX", int64(HintMax))
	for i, name := range strings.Split(shadeEnum, ",") {
		c.Const("SHADE_MODEL_"+strings.ToUpper(strings.ReplaceAll(name, " ", "_")), int64(i))
	}
	return c
}()

func self(m *Material) *Material { return m }

// FixedClass is the property table of fixed
// materials.
var FixedClass = func() *prop.Class[*Material] {
	c := prop.Inherit("FixedMaterial", Class, self)
	for i, name := range paramNames {
		p := Param(i)
		info := prop.Info{Name: "params/" + name, Type: paramTypes[p]}
		switch p {
		case ParamDetail, ParamGlow, ParamShadeParam:
			info.Hint, info.HintString = prop.HintRange, "0,1,0.01"
		case ParamSpecularExp:
			info.Hint, info.HintString = prop.HintRange, "1,64,0.01"
		case ParamNormal:
			info.Hint, info.HintString = prop.HintRange, "-4,4,0.01"
		}
		c.Add(prop.Property[*Material]{
			Info: info,
			Get:  func(m *Material) any { return m.Fixed().Param(p) },
			Set:  func(m *Material, v any) error { return m.Fixed().SetParam(p, v) },
		})
	}
	for i, name := range paramNames {
		p := Param(i)
		c.Add(
			prop.Property[*Material]{
				Info: prop.Info{Name: "textures/" + name, Type: variant.Object, Hint: prop.HintResourceType, HintString: "Texture"},
				Get:  func(m *Material) any { return m.Fixed().Texture(p) },
				Set: func(m *Material, v any) error {
					return setObject(v, func(t Texture) { m.Fixed().SetTexture(p, t) })
				},
			},
			prop.Property[*Material]{
				Info: prop.Info{Name: "textures/" + name + "_tc", Type: variant.Int, Hint: prop.HintEnum, HintString: texCoordEnum},
				Get:  func(m *Material) any { return int64(m.Fixed().TexCoordMode(p)) },
				Set: func(m *Material, v any) error {
					return m.Fixed().SetTexCoordMode(p, TexCoordMode(v.(int64)))
				},
			},
		)
	}
	for i, name := range fixedFlagName {
		f := FixedFlag(i)
		c.Add(prop.Property[*Material]{
			Info: prop.Info{Name: "fixed_flags/" + name, Type: variant.Bool},
			Get:  func(m *Material) any { return m.Fixed().Flag(f) },
			Set:  func(m *Material, v any) error { return m.Fixed().SetFlag(f, v.(bool)) },
		})
	}
	c.Add(
		prop.Property[*Material]{
			Info: prop.Info{Name: "params/point_size", Type: variant.Float, Hint: prop.HintRange, HintString: "0,1024,1"},
			Get:  func(m *Material) any { return m.Fixed().PointSize() },
			Set:  func(m *Material, v any) error { m.Fixed().SetPointSize(v.(float32)); return nil },
		},
		prop.Property[*Material]{
			Info: prop.Info{Name: "params/detail_blend_mode", Type: variant.Int, Hint: prop.HintEnum, HintString: blendEnum},
			Get:  func(m *Material) any { return int64(m.Fixed().DetailBlendMode()) },
			Set:  func(m *Material, v any) error { return m.Fixed().SetDetailBlendMode(BlendMode(v.(int64))) },
		},
		prop.Property[*Material]{
			Info: prop.Info{Name: "uv_xform", Type: variant.Xform},
			Get:  func(m *Material) any { return m.Fixed().UVTransform() },
			Set:  func(m *Material, v any) error { m.Fixed().SetUVTransform(v.(linear.Transform)); return nil },
		},
	)
	for i, name := range paramNames {
		c.Const("PARAM_"+strings.ToUpper(name), int64(i))
	}
	c.Const("PARAM_MAX", int64(ParamMax))
	for i, name := range strings.Split(texCoordEnum, ",") {
		c.Const("TEXCOORD_"+strings.ToUpper(strings.ReplaceAll(name, " ", "_")), int64(i))
	}
	for i, name := range fixedFlagName {
		c.Const("FLAG_"+strings.ToUpper(name), int64(i))
	}
	return c.ReverseList()
}()

// ShaderClass is the property table of shader
// materials. Shader parameters are listed as
// "shader_param/<name>".
var ShaderClass = prop.Inherit("ShaderMaterial", Class, self).
	Add(prop.Property[*Material]{
		Info: prop.Info{Name: "shader/shader", Type: variant.Object, Hint: prop.HintResourceType, HintString: "Shader"},
		Get: func(m *Material) any {
			if s := m.Shader().Shader(); s != nil {
				return s
			}
			return nil // Not a typed nil.
		},
		Set: func(m *Material, v any) error {
			return setObject(v, func(s *shader.Shader) { m.Shader().SetShader(s) })
		},
	}).
	SetDynamic(prop.Dynamic[*Material]{
		List: func(m *Material) (l []prop.Info) {
			for _, sp := range m.Shader().Params() {
				l = append(l, prop.Info{Name: paramPrefix + sp.Name, Type: sp.Type})
			}
			return
		},
		Get: func(m *Material, name string) (any, bool) {
			n, ok := strings.CutPrefix(name, paramPrefix)
			if !ok {
				return nil, false
			}
			return m.Shader().Param(n)
		},
		Set: func(m *Material, name string, v any) (bool, error) {
			n, ok := strings.CutPrefix(name, paramPrefix)
			if !ok {
				return false, nil
			}
			if _, ok := m.Shader().lookup(n); !ok {
				return false, nil
			}
			return true, m.Shader().SetParam(n, v)
		},
	})

// ParticleClass is the property table of particle
// system materials.
var ParticleClass = prop.Inherit("ParticleSystemMaterial", Class, self).
	Add(prop.Property[*Material]{
		Info: prop.Info{Name: "texture/texture", Type: variant.Object, Hint: prop.HintResourceType, HintString: "Texture"},
		Get:  func(m *Material) any { return m.Particle().Texture() },
		Set: func(m *Material, v any) error {
			return setObject(v, func(t Texture) { m.Particle().SetTexture(t) })
		},
	}).
	ReverseList()

// UnshadedClass is the property table of unshaded
// materials.
var UnshadedClass = prop.Inherit("UnshadedMaterial", Class, self).
	Add(
		prop.Property[*Material]{
			Info: prop.Info{Name: "texture/texture", Type: variant.Object, Hint: prop.HintResourceType, HintString: "Texture"},
			Get:  func(m *Material) any { return m.Unshaded().Texture() },
			Set: func(m *Material, v any) error {
				return setObject(v, func(t Texture) { m.Unshaded().SetTexture(t) })
			},
		},
		prop.Property[*Material]{
			Info: prop.Info{Name: "texture/use_alpha", Type: variant.Bool},
			Get:  func(m *Material) any { return m.Unshaded().UseAlpha() },
			Set:  func(m *Material, v any) error { m.Unshaded().SetUseAlpha(v.(bool)); return nil },
		},
		prop.Property[*Material]{
			Info: prop.Info{Name: "texture/use_color_array", Type: variant.Bool},
			Get:  func(m *Material) any { return m.Unshaded().UseColorArray() },
			Set:  func(m *Material, v any) error { m.Unshaded().SetUseColorArray(v.(bool)); return nil },
		},
	).
	ReverseList()

// ClassOf returns the property table for the kind of m.
func ClassOf(m *Material) *prop.Class[*Material] {
	switch m.Kind() {
	case KindFixed:
		return FixedClass
	case KindShader:
		return ShaderClass
	case KindParticle:
		return ParticleClass
	}
	return UnshadedClass
}
