// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package shader implements shader resources.
//
// A Shader holds source code that is forwarded to a
// rendering server, along with the parameters that the
// code declares. Parameters are extracted by a Parser
// whenever the code changes.
package shader

import (
	"fmt"
	"slices"

	"github.com/gviegas/visual/object"
	"github.com/gviegas/visual/server"
	"github.com/gviegas/visual/variant"
)

// Param is a parameter declared by shader code.
type Param struct {
	Name string
	Type variant.Type
	// Default is the value of the parameter when
	// the code does not initialize it, converted
	// to Type.
	Default any
}

// Parser extracts the parameters declared by shader
// code, in declaration order.
type Parser interface {
	Parse(code string) ([]Param, error)
}

// ParserFunc is an adapter to allow the use of
// ordinary functions as parsers.
type ParserFunc func(code string) ([]Param, error)

// Parse calls f(code).
func (f ParserFunc) Parse(code string) ([]Param, error) { return f(code) }

// Changed is the signal that a Shader emits when its
// code changes.
const Changed = "changed"

// Shader is a shader resource.
type Shader struct {
	object.Object

	srv    server.ResourceServer
	rid    server.RID
	parser Parser
	code   string
	params []Param

	// Name for the shader.
	// It is not used by shader code.
	Name string
}

// New creates a new shader with no code.
// If p is nil, WGSL is used.
func New(srv server.ResourceServer, p Parser) *Shader {
	if p == nil {
		p = WGSL
	}
	return &Shader{srv: srv, rid: srv.ShaderCreate(), parser: p}
}

// RID returns the server shader of s.
func (s *Shader) RID() server.RID { return s.rid }

// Parser returns the parser of s.
func (s *Shader) Parser() Parser { return s.parser }

// Code returns the code of s.
func (s *Shader) Code() string { return s.code }

// SetCode parses code and, if successful, replaces
// the code of s and emits Changed.
// s is not modified if code cannot be parsed.
func (s *Shader) SetCode(code string) error {
	params, err := s.parser.Parse(code)
	if err != nil {
		return fmt.Errorf("shader: %w", err)
	}
	for i := range params {
		p := &params[i]
		if p.Default == nil {
			p.Default = variant.Zero(p.Type)
			continue
		}
		v, err := variant.Convert(p.Default, p.Type)
		if err != nil {
			return fmt.Errorf("shader: default of %s: %w", p.Name, err)
		}
		p.Default = v
	}
	s.code = code
	s.params = params
	s.srv.ShaderSetCode(s.rid, code)
	s.Emit(Changed)
	return nil
}

// Params returns the parameters declared by the
// code of s.
func (s *Shader) Params() []Param { return slices.Clone(s.params) }

// Param returns the parameter named name.
func (s *Shader) Param(name string) (Param, bool) {
	i := slices.IndexFunc(s.params, func(p Param) bool { return p.Name == name })
	if i < 0 {
		return Param{}, false
	}
	return s.params[i], true
}

// Free releases the server shader.
// Calling Free more than once has no effect.
func (s *Shader) Free() {
	if s.rid.IsValid() {
		s.srv.Free(s.rid)
		s.rid = server.Nil
	}
}
