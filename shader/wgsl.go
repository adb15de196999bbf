// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gviegas/visual/variant"
)

// WGSL is a Parser for WGSL code.
// The code is validated by compiling it with naga.
// Its parameters are the pipeline-overridable
// constants (override declarations) of scalar type.
var WGSL Parser = wgsl{}

type wgsl struct{}

func (wgsl) Parse(code string) ([]Param, error) {
	if _, err := naga.Compile(code); err != nil {
		return nil, fmt.Errorf("wgsl: %w", err)
	}
	return overrides(code)
}

var (
	overrideRE = regexp.MustCompile(`(?m)^\s*(?:@id\(\s*\d+\s*\)\s*)?override\s+([A-Za-z_]\w*)\s*(?::\s*([^=;]+?)\s*)?(?:=\s*([^;]+?)\s*)?;`)
	tokenRE    = regexp.MustCompile(`[A-Za-z_]\w*|[0-9][0-9A-Za-z.]*`)
)

// overrides extracts override declarations from code.
// Comments are not recognized.
// Initializers that are not plain literals give no
// default value.
func overrides(code string) ([]Param, error) {
	var params []Param
	for _, m := range overrideRE.FindAllStringSubmatch(code, -1) {
		name, typ, init := m[1], m[2], m[3]
		p := Param{Name: name}
		if typ == "" {
			typ = exprType(init, params)
		}
		switch typ {
		case "bool":
			p.Type = variant.Bool
		case "i32", "u32":
			p.Type = variant.Int
		case "f32", "f16":
			p.Type = variant.Float
		default:
			return nil, fmt.Errorf("wgsl: override %s: unsupported type %q", name, typ)
		}
		if init != "" {
			if v, err := literal(init, p.Type); err == nil {
				p.Default = v
			}
		}
		params = append(params, p)
	}
	return params, nil
}

// exprType infers the type of an untyped declaration
// from its initializer. Overrides declared earlier
// take precedence over literals; abstract floats take
// precedence over abstract integers.
func exprType(expr string, prev []Param) string {
	if t := literalType(expr); t != "" && isLiteral(expr, t) {
		return t
	}
	var hasFloat, hasBool, hasInt bool
	for _, tok := range tokenRE.FindAllString(expr, -1) {
		for _, p := range prev {
			if p.Name == tok {
				return wgslType(p.Type)
			}
		}
		switch t := literalType(tok); {
		case tok[0] >= '0' && tok[0] <= '9' && t == "f32":
			hasFloat = true
		case tok[0] >= '0' && tok[0] <= '9':
			hasInt = true
		case t == "bool":
			hasBool = true
		}
	}
	switch {
	case hasFloat:
		return "f32"
	case hasInt:
		return "i32"
	case hasBool:
		return "bool"
	}
	return "f32"
}

func wgslType(t variant.Type) string {
	switch t {
	case variant.Bool:
		return "bool"
	case variant.Int:
		return "i32"
	}
	return "f32"
}

func isHex(lit string) bool {
	lit = strings.TrimLeft(lit, "+-")
	return strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X")
}

// literalType infers the type of a literal.
func literalType(lit string) string {
	switch {
	case lit == "true" || lit == "false":
		return "bool"
	case strings.HasSuffix(lit, "u"):
		return "u32"
	case strings.HasSuffix(lit, "i"):
		return "i32"
	case isHex(lit):
		if strings.ContainsAny(lit, ".pP") {
			return "f32"
		}
		return "i32"
	case strings.ContainsAny(lit, ".eEfh"):
		return "f32"
	case lit != "":
		return "i32"
	}
	return ""
}

func isLiteral(lit string, typ string) bool {
	var t variant.Type
	switch typ {
	case "bool":
		t = variant.Bool
	case "i32", "u32":
		t = variant.Int
	default:
		t = variant.Float
	}
	_, err := literal(lit, t)
	return err == nil
}

func literal(lit string, t variant.Type) (any, error) {
	switch t {
	case variant.Bool:
		return strconv.ParseBool(lit)
	case variant.Int:
		return strconv.ParseInt(strings.TrimRight(lit, "iu"), 0, 64)
	default:
		if isHex(lit) {
			// Hex digits include 'f', and Go requires the
			// binary exponent.
			if strings.ContainsAny(lit, "pP") {
				lit = strings.TrimRight(lit, "fh")
			} else {
				lit = strings.TrimRight(lit, "iu") + "p0"
			}
			f, err := strconv.ParseFloat(lit, 32)
			return float32(f), err
		}
		f, err := strconv.ParseFloat(strings.TrimRight(lit, "fh"), 32)
		return float32(f), err
	}
}
