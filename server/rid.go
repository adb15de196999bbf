// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package server

import (
	"fmt"
)

// RID identifies a resource owned by a Server.
// RIDs are opaque: callers must only compare them
// and pass them back to the Server that created them.
type RID uint64

// Nil represents an invalid RID.
const Nil RID = 0

// IsValid returns whether r is not Nil.
// It does not check that r refers to a live resource.
func (r RID) IsValid() bool { return r != Nil }

// kind of resource identified by a RID.
type kind uint8

const (
	kindNone kind = iota
	kindScenario
	kindInstance
	kindMaterial
	kindShader
	kindMesh
	kindTexture
)

var kindNames = [...]string{"none", "scenario", "instance", "material", "shader", "mesh", "texture"}

func (k kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// RID layout:
//
//	[63:56] kind
//	[55:32] generation
//	[31:0]  slot index plus one
const (
	genBits  = 24
	genMask  = 1<<genBits - 1
	genShift = 32
	kndShift = 56
)

func makeRID(k kind, gen uint32, slot int) RID {
	return RID(uint64(k)<<kndShift | uint64(gen&genMask)<<genShift | uint64(uint32(slot+1)))
}

func (r RID) kind() kind  { return kind(r >> kndShift) }
func (r RID) gen() uint32 { return uint32(r>>genShift) & genMask }
func (r RID) slot() int   { return int(uint32(r)) - 1 }

// String implements fmt.Stringer.
func (r RID) String() string {
	if r == Nil {
		return "RID(nil)"
	}
	return fmt.Sprintf("RID(%v:%d#%d)", r.kind(), r.slot(), r.gen())
}
