// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package variant defines the generic values exchanged
// through property tables and material parameters.
//
// A value is held in an any. The canonical Go types
// are bool, int64, float32, string, Color,
// linear.V3 and linear.Transform; the conversion
// functions accept the looser types produced by
// decoders (int, float64, []any and so on).
package variant

import (
	"errors"
	"fmt"

	"github.com/gviegas/visual/linear"
)

// Type is the type of a value.
type Type int

// Value types.
const (
	Nil Type = iota
	Bool
	Int
	Float
	String
	Color4
	Vector3
	Xform
	Object
)

var typeNames = [...]string{"nil", "bool", "int", "float", "string", "color", "vector3", "transform", "object"}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType returns the Type whose name is s.
func ParseType(s string) (Type, bool) {
	for i, n := range typeNames {
		if n == s {
			return Type(i), true
		}
	}
	return Nil, false
}

// Color is a RGBA color.
type Color struct{ R, G, B, A float32 }

// RGB returns an opaque color.
func RGB(r, g, b float32) Color { return Color{r, g, b, 1} }

// ErrType is returned when a value cannot be converted
// to the requested type.
var ErrType = errors.New("variant: type mismatch")

func mismatch(v any, t Type) error {
	return fmt.Errorf("%w: cannot use %T as %v", ErrType, v, t)
}

// TypeOf returns the Type of the canonical value v.
// Values of non-canonical types report Object.
func TypeOf(v any) Type {
	switch v.(type) {
	case nil:
		return Nil
	case bool:
		return Bool
	case int, int32, int64, uint32:
		return Int
	case float32, float64:
		return Float
	case string:
		return String
	case Color:
		return Color4
	case linear.V3:
		return Vector3
	case linear.Transform:
		return Xform
	}
	return Object
}

// Zero returns the zero value of type t.
func Zero(t Type) any {
	switch t {
	case Bool:
		return false
	case Int:
		return int64(0)
	case Float:
		return float32(0)
	case String:
		return ""
	case Color4:
		return Color{}
	case Vector3:
		return linear.V3{}
	case Xform:
		return linear.Identity()
	}
	return nil
}

// Convert converts v to the canonical type for t.
func Convert(v any, t Type) (any, error) {
	switch t {
	case Nil:
		if v != nil {
			return nil, mismatch(v, t)
		}
		return nil, nil
	case Bool:
		return ToBool(v)
	case Int:
		return ToInt(v)
	case Float:
		return ToFloat(v)
	case String:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch(v, t)
		}
		return s, nil
	case Color4:
		return ToColor(v)
	case Vector3:
		return ToV3(v)
	case Xform:
		return ToTransform(v)
	}
	return v, nil
}

// ToBool converts v to bool.
func ToBool(v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, mismatch(v, Bool)
}

// ToInt converts v to int64.
// Floating-point values must be integral.
func ToInt(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint32:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case float32:
		if float32(int64(x)) == x {
			return int64(x), nil
		}
	case float64:
		if float64(int64(x)) == x {
			return int64(x), nil
		}
	}
	return 0, mismatch(v, Int)
}

// ToFloat converts v to float32.
func ToFloat(v any) (float32, error) {
	switch x := v.(type) {
	case float32:
		return x, nil
	case float64:
		return float32(x), nil
	case int:
		return float32(x), nil
	case int64:
		return float32(x), nil
	}
	return 0, mismatch(v, Float)
}

// floats converts a list of numbers to float32.
func floats(v any, n int) ([]float32, bool) {
	var out []float32
	switch x := v.(type) {
	case []float32:
		out = x
	case []float64:
		for _, f := range x {
			out = append(out, float32(f))
		}
	case []any:
		for _, e := range x {
			f, err := ToFloat(e)
			if err != nil {
				return nil, false
			}
			out = append(out, f)
		}
	default:
		return nil, false
	}
	return out, len(out) == n
}

// ToColor converts v to Color.
// Lists of 3 or 4 numbers are accepted.
func ToColor(v any) (Color, error) {
	if c, ok := v.(Color); ok {
		return c, nil
	}
	if f, ok := floats(v, 4); ok {
		return Color{f[0], f[1], f[2], f[3]}, nil
	}
	if f, ok := floats(v, 3); ok {
		return RGB(f[0], f[1], f[2]), nil
	}
	return Color{}, mismatch(v, Color4)
}

// ToV3 converts v to linear.V3.
func ToV3(v any) (linear.V3, error) {
	if u, ok := v.(linear.V3); ok {
		return u, nil
	}
	if f, ok := floats(v, 3); ok {
		return linear.V3{f[0], f[1], f[2]}, nil
	}
	return linear.V3{}, mismatch(v, Vector3)
}

// ToTransform converts v to linear.Transform.
// Lists of 12 numbers are accepted: three basis
// columns followed by the origin.
func ToTransform(v any) (linear.Transform, error) {
	if t, ok := v.(linear.Transform); ok {
		return t, nil
	}
	f, ok := floats(v, 12)
	if !ok {
		return linear.Transform{}, mismatch(v, Xform)
	}
	var t linear.Transform
	for i := range 3 {
		copy(t.Basis[i][:], f[i*3:i*3+3])
	}
	copy(t.Origin[:], f[9:])
	return t, nil
}

// Flatten returns v in a form suitable for encoding
// (lists of numbers in place of Color, V3 and
// Transform).
func Flatten(v any) any {
	switch x := v.(type) {
	case Color:
		return []float32{x.R, x.G, x.B, x.A}
	case linear.V3:
		return x[:]
	case linear.Transform:
		f := make([]float32, 0, 12)
		for i := range 3 {
			f = append(f, x.Basis[i][:]...)
		}
		return append(f, x.Origin[:]...)
	}
	return v
}
