// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package material

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jinzhu/copier"

	"github.com/gviegas/visual/object"
	"github.com/gviegas/visual/server"
	"github.com/gviegas/visual/shader"
	"github.com/gviegas/visual/variant"
)

// ShaderParams is the payload of shader materials.
// It holds the values of the parameters declared by
// the material's shader, in declaration order.
type ShaderParams struct {
	m      *Material
	shader *shader.Shader
	conn   object.Conn
	params []shader.Param
	values map[string]any
}

// NewShader creates a new shader material with no
// shader.
func NewShader(srv server.Server) *Material {
	m := newMaterial(srv, srv.MaterialCreate())
	m.payload = &ShaderParams{m: m, values: make(map[string]any)}
	return m
}

// Kind returns KindShader.
func (p *ShaderParams) Kind() Kind { return KindShader }

// SetShader sets the shader of the material.
// s may be nil.
// The parameter list is rebuilt from the parameters
// that s declares; values of parameters that keep
// their name and type are preserved. The list is
// rebuilt again whenever the code of s changes.
func (p *ShaderParams) SetShader(s *shader.Shader) {
	p.disconnect()
	p.shader = s
	rid := server.Nil
	if s != nil {
		rid = s.RID()
		p.conn = s.Connect(shader.Changed, func(...any) { p.sync() })
	}
	p.m.srv.MaterialSetShader(p.m.rid, rid)
	p.sync()
}

// Shader returns the shader of the material, or nil.
func (p *ShaderParams) Shader() *shader.Shader { return p.shader }

func (p *ShaderParams) disconnect() {
	if p.shader != nil {
		p.shader.Disconnect(shader.Changed, p.conn)
		p.conn = 0
	}
}

// sync rebuilds the parameter list from the shader
// and forwards every value. Parameters that are no
// longer declared are cleared by forwarding nil.
func (p *ShaderParams) sync() {
	var params []shader.Param
	if p.shader != nil {
		params = p.shader.Params()
	}
	values := make(map[string]any, len(params))
	for _, sp := range params {
		v, ok := p.values[sp.Name]
		if !ok || variant.TypeOf(v) != sp.Type {
			v = sp.Default
		}
		values[sp.Name] = v
		p.m.srv.MaterialSetParam(p.m.rid, sp.Name, v)
	}
	for _, sp := range p.params {
		if _, ok := values[sp.Name]; !ok {
			p.m.srv.MaterialSetParam(p.m.rid, sp.Name, nil)
		}
	}
	p.params = params
	p.values = values
	p.m.NotifyChange("")
}

// Params returns the parameters declared by the
// shader, in declaration order.
func (p *ShaderParams) Params() []shader.Param { return slices.Clone(p.params) }

func (p *ShaderParams) lookup(name string) (shader.Param, bool) {
	i := slices.IndexFunc(p.params, func(sp shader.Param) bool { return sp.Name == name })
	if i < 0 {
		return shader.Param{}, false
	}
	return p.params[i], true
}

// SetParam sets the value of a shader parameter.
// value is converted to the parameter's type.
func (p *ShaderParams) SetParam(name string, value any) error {
	sp, ok := p.lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	v := value
	if sp.Type != variant.Object {
		var err error
		if v, err = variant.Convert(value, sp.Type); err != nil {
			return fmt.Errorf("material: shader parameter %q: %w", name, err)
		}
	}
	p.values[name] = v
	p.m.srv.MaterialSetParam(p.m.rid, name, v)
	return nil
}

// Param returns the value of a shader parameter.
func (p *ShaderParams) Param(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Values returns a copy of the parameter values.
func (p *ShaderParams) Values() map[string]any { return maps.Clone(p.values) }

func (p *ShaderParams) copyTo(dst *Material) error {
	q := dst.Shader()
	q.SetShader(p.shader)
	values := make(map[string]any, len(p.values))
	if err := copier.CopyWithOption(&values, &p.values, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("material: duplicate: %w", err)
	}
	for _, sp := range p.params {
		v, ok := values[sp.Name]
		if !ok {
			continue
		}
		if err := q.SetParam(sp.Name, v); err != nil {
			return err
		}
	}
	return nil
}
