// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package server

import (
	"image"
	"log/slog"
	"maps"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gviegas/visual/linear"
)

// InstanceState is the state of an instance as seen
// by a Mem server.
type InstanceState struct {
	Object           uint64
	Base             RID
	Scenario         RID
	Room             RID
	Skeleton         RID
	Transform        linear.Transform
	LayerMask        uint32
	MaterialOverride RID
	DrawBegin        float32
	DrawEnd          float32
	Flags            [InstanceFlagMax]bool
}

// MaterialState is the state of a material as seen
// by a Mem server.
// The Fixed* fields are only meaningful when Fixed
// is true.
type MaterialState struct {
	Fixed     bool
	Shader    RID
	Params    map[string]any
	Flags     [MaterialFlagMax]bool
	Hints     [MaterialHintMax]bool
	Blend     BlendMode
	Shade     ShadeModel
	LineWidth float32

	FixedParams [FixedParamMax]any
	Textures    [FixedParamMax]RID
	TexCoords   [FixedParamMax]TexCoordMode
	FixedFlags  [FixedFlagMax]bool
	PointSize   float32
	UVTransform linear.Transform
	DetailBlend BlendMode
}

// TextureState is the state of a texture as seen by
// a Mem server.
type TextureState struct {
	Width  int
	Height int
	Data   *image.RGBA
}

type meshState struct{ aabb linear.AABB }

// Call records a call made to a Mem server.
type Call struct {
	Op   string
	RID  RID
	Args []any
}

// Mem is a Server that keeps all state in memory.
// It performs no rendering; it is useful as a
// reference implementation and as a test double.
// Mem is safe for concurrent use.
type Mem struct {
	mu        sync.Mutex
	cfg       Config
	log       *slog.Logger
	scenarios handleMap[struct{}]
	instances handleMap[InstanceState]
	materials handleMap[MaterialState]
	shaders   handleMap[string]
	meshes    handleMap[meshState]
	textures  handleMap[TextureState]
	calls     []Call
	misuse    int
}

// NewMem creates a new Mem server.
// If cfg is nil, DefaultConfig is used.
func NewMem(cfg *Config) *Mem {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	s := &Mem{cfg: c, log: c.logger()}
	s.scenarios.kind = kindScenario
	s.instances.kind = kindInstance
	s.materials.kind = kindMaterial
	s.shaders.kind = kindShader
	s.meshes.kind = kindMesh
	s.textures.kind = kindTexture
	if n := c.InitialCapacity; n > 0 {
		s.scenarios.reserve(n)
		s.instances.reserve(n)
		s.materials.reserve(n)
		s.shaders.reserve(n)
		s.meshes.reserve(n)
		s.textures.reserve(n)
	}
	return s
}

func (s *Mem) trace(op string, rid RID, args ...any) {
	if s.cfg.Trace {
		s.calls = append(s.calls, Call{op, rid, args})
	}
}

func (s *Mem) bad(op string, rid RID, what string) {
	s.misuse++
	s.log.Warn("invalid handle", "op", op, "rid", rid, "want", what)
}

// live returns whether rid identifies any live resource.
func (s *Mem) live(rid RID) bool {
	switch rid.kind() {
	case kindScenario:
		return s.scenarios.get(rid) != nil
	case kindInstance:
		return s.instances.get(rid) != nil
	case kindMaterial:
		return s.materials.get(rid) != nil
	case kindShader:
		return s.shaders.get(rid) != nil
	case kindMesh:
		return s.meshes.get(rid) != nil
	case kindTexture:
		return s.textures.get(rid) != nil
	}
	return false
}

// optional checks that ref is either Nil or a live
// resource of kind k.
func (s *Mem) optional(op string, ref RID, k kind) bool {
	if ref == Nil || (ref.kind() == k && s.live(ref)) {
		return true
	}
	s.bad(op, ref, k.String()+" or nil")
	return false
}

func (s *Mem) instance(op string, rid RID) *InstanceState {
	st := s.instances.get(rid)
	if st == nil {
		s.bad(op, rid, "instance")
	}
	return st
}

func (s *Mem) material(op string, rid RID, fixed bool) *MaterialState {
	st := s.materials.get(rid)
	if st == nil || (fixed && !st.Fixed) {
		if fixed {
			s.bad(op, rid, "fixed material")
		} else {
			s.bad(op, rid, "material")
		}
		return nil
	}
	return st
}

// Free implements ResourceServer.
// Freeing a handle that is not live is logged and
// otherwise ignored.
func (s *Mem) Free(rid RID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("Free", rid)
	var ok bool
	switch rid.kind() {
	case kindScenario:
		ok = s.scenarios.remove(rid)
	case kindInstance:
		ok = s.instances.remove(rid)
	case kindMaterial:
		ok = s.materials.remove(rid)
	case kindShader:
		ok = s.shaders.remove(rid)
	case kindMesh:
		ok = s.meshes.remove(rid)
	case kindTexture:
		ok = s.textures.remove(rid)
	}
	if !ok {
		s.bad("Free", rid, "live resource")
	}
}

// ScenarioCreate implements ResourceServer.
func (s *Mem) ScenarioCreate() RID {
	s.mu.Lock()
	defer s.mu.Unlock()
	rid := s.scenarios.insert(struct{}{})
	s.trace("ScenarioCreate", rid)
	return rid
}

// ShaderCreate implements ResourceServer.
func (s *Mem) ShaderCreate() RID {
	s.mu.Lock()
	defer s.mu.Unlock()
	rid := s.shaders.insert("")
	s.trace("ShaderCreate", rid)
	return rid
}

// ShaderSetCode implements ResourceServer.
func (s *Mem) ShaderSetCode(shader RID, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("ShaderSetCode", shader, code)
	if st := s.shaders.get(shader); st != nil {
		*st = code
	} else {
		s.bad("ShaderSetCode", shader, "shader")
	}
}

// MeshCreate implements ResourceServer.
func (s *Mem) MeshCreate() RID {
	s.mu.Lock()
	defer s.mu.Unlock()
	rid := s.meshes.insert(meshState{})
	s.trace("MeshCreate", rid)
	return rid
}

// MeshSetAABB implements ResourceServer.
func (s *Mem) MeshSetAABB(mesh RID, aabb linear.AABB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("MeshSetAABB", mesh, aabb)
	if st := s.meshes.get(mesh); st != nil {
		st.aabb = aabb
	} else {
		s.bad("MeshSetAABB", mesh, "mesh")
	}
}

// TextureCreate implements ResourceServer.
func (s *Mem) TextureCreate() RID {
	s.mu.Lock()
	defer s.mu.Unlock()
	rid := s.textures.insert(TextureState{})
	s.trace("TextureCreate", rid)
	return rid
}

// TextureAllocate implements ResourceServer.
func (s *Mem) TextureAllocate(tex RID, width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("TextureAllocate", tex, width, height)
	if st := s.textures.get(tex); st != nil {
		*st = TextureState{Width: width, Height: height}
	} else {
		s.bad("TextureAllocate", tex, "texture")
	}
}

// TextureSetData implements ResourceServer.
// img's bounds must match the allocated size.
func (s *Mem) TextureSetData(tex RID, img *image.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("TextureSetData", tex)
	st := s.textures.get(tex)
	if st == nil {
		s.bad("TextureSetData", tex, "texture")
		return
	}
	if b := img.Bounds(); b.Dx() != st.Width || b.Dy() != st.Height {
		s.misuse++
		s.log.Warn("texture data size mismatch", "rid", tex,
			"have", b.Size(), "want", image.Pt(st.Width, st.Height))
		return
	}
	cpy := image.NewRGBA(image.Rect(0, 0, st.Width, st.Height))
	draw.Draw(cpy, cpy.Bounds(), img, img.Bounds().Min, draw.Src)
	st.Data = cpy
}

// InstanceCreate implements InstanceServer.
func (s *Mem) InstanceCreate() RID {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := InstanceState{LayerMask: 1}
	st.Transform.I()
	st.Flags[InstanceFlagVisible] = true
	st.Flags[InstanceFlagCastShadow] = true
	st.Flags[InstanceFlagReceiveShadows] = true
	rid := s.instances.insert(st)
	s.trace("InstanceCreate", rid)
	return rid
}

// InstanceAttachObject implements InstanceServer.
func (s *Mem) InstanceAttachObject(inst RID, id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("InstanceAttachObject", inst, id)
	if st := s.instance("InstanceAttachObject", inst); st != nil {
		st.Object = id
	}
}

// InstanceSetBase implements InstanceServer.
func (s *Mem) InstanceSetBase(inst, base RID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("InstanceSetBase", inst, base)
	st := s.instance("InstanceSetBase", inst)
	if st == nil {
		return
	}
	if base != Nil && !s.live(base) {
		s.bad("InstanceSetBase", base, "live resource or nil")
		return
	}
	st.Base = base
}

// InstanceSetTransform implements InstanceServer.
func (s *Mem) InstanceSetTransform(inst RID, xform linear.Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("InstanceSetTransform", inst, xform)
	if st := s.instance("InstanceSetTransform", inst); st != nil {
		st.Transform = xform
	}
}

// InstanceSetScenario implements InstanceServer.
func (s *Mem) InstanceSetScenario(inst, scenario RID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("InstanceSetScenario", inst, scenario)
	st := s.instance("InstanceSetScenario", inst)
	if st != nil && s.optional("InstanceSetScenario", scenario, kindScenario) {
		st.Scenario = scenario
	}
}

// InstanceSetRoom implements InstanceServer.
func (s *Mem) InstanceSetRoom(inst, room RID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("InstanceSetRoom", inst, room)
	st := s.instance("InstanceSetRoom", inst)
	if st != nil && s.optional("InstanceSetRoom", room, kindInstance) {
		st.Room = room
	}
}

// InstanceAttachSkeleton implements InstanceServer.
// Mem does not manage skeletons, so any handle is
// recorded as is.
func (s *Mem) InstanceAttachSkeleton(inst, skeleton RID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("InstanceAttachSkeleton", inst, skeleton)
	if st := s.instance("InstanceAttachSkeleton", inst); st != nil {
		st.Skeleton = skeleton
	}
}

// InstanceSetLayerMask implements InstanceServer.
func (s *Mem) InstanceSetLayerMask(inst RID, mask uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("InstanceSetLayerMask", inst, mask)
	if st := s.instance("InstanceSetLayerMask", inst); st != nil {
		st.LayerMask = mask
	}
}

// InstanceGeometrySetMaterialOverride implements
// InstanceServer.
func (s *Mem) InstanceGeometrySetMaterialOverride(inst, mat RID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("InstanceGeometrySetMaterialOverride", inst, mat)
	st := s.instance("InstanceGeometrySetMaterialOverride", inst)
	if st != nil && s.optional("InstanceGeometrySetMaterialOverride", mat, kindMaterial) {
		st.MaterialOverride = mat
	}
}

// InstanceGeometrySetDrawRange implements InstanceServer.
func (s *Mem) InstanceGeometrySetDrawRange(inst RID, begin, end float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("InstanceGeometrySetDrawRange", inst, begin, end)
	if st := s.instance("InstanceGeometrySetDrawRange", inst); st != nil {
		st.DrawBegin = begin
		st.DrawEnd = end
	}
}

// InstanceGeometrySetFlag implements InstanceServer.
func (s *Mem) InstanceGeometrySetFlag(inst RID, flag InstanceFlag, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("InstanceGeometrySetFlag", inst, flag, enabled)
	st := s.instance("InstanceGeometrySetFlag", inst)
	if st == nil {
		return
	}
	if flag < 0 || flag >= InstanceFlagMax {
		s.misuse++
		s.log.Error("instance flag out of range", "rid", inst, "flag", flag)
		return
	}
	st.Flags[flag] = enabled
}

func newMaterialState(fixed bool) MaterialState {
	st := MaterialState{
		Fixed:     fixed,
		Params:    make(map[string]any),
		LineWidth: 1,
	}
	st.Flags[MaterialFlagVisible] = true
	if fixed {
		st.PointSize = 1
		st.UVTransform.I()
	}
	return st
}

// MaterialCreate implements MaterialServer.
func (s *Mem) MaterialCreate() RID {
	s.mu.Lock()
	defer s.mu.Unlock()
	rid := s.materials.insert(newMaterialState(false))
	s.trace("MaterialCreate", rid)
	return rid
}

// MaterialSetShader implements MaterialServer.
func (s *Mem) MaterialSetShader(mat, shader RID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("MaterialSetShader", mat, shader)
	st := s.material("MaterialSetShader", mat, false)
	if st != nil && s.optional("MaterialSetShader", shader, kindShader) {
		st.Shader = shader
	}
}

// MaterialSetParam implements MaterialServer.
// A nil value removes the parameter.
func (s *Mem) MaterialSetParam(mat RID, name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("MaterialSetParam", mat, name, value)
	st := s.material("MaterialSetParam", mat, false)
	if st == nil {
		return
	}
	if value == nil {
		delete(st.Params, name)
	} else {
		st.Params[name] = value
	}
}

// MaterialSetFlag implements MaterialServer.
func (s *Mem) MaterialSetFlag(mat RID, flag MaterialFlag, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("MaterialSetFlag", mat, flag, enabled)
	if st := s.material("MaterialSetFlag", mat, false); st != nil && flag >= 0 && flag < MaterialFlagMax {
		st.Flags[flag] = enabled
	}
}

// MaterialSetHint implements MaterialServer.
func (s *Mem) MaterialSetHint(mat RID, hint MaterialHint, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("MaterialSetHint", mat, hint, enabled)
	if st := s.material("MaterialSetHint", mat, false); st != nil && hint >= 0 && hint < MaterialHintMax {
		st.Hints[hint] = enabled
	}
}

// MaterialSetBlendMode implements MaterialServer.
func (s *Mem) MaterialSetBlendMode(mat RID, mode BlendMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("MaterialSetBlendMode", mat, mode)
	if st := s.material("MaterialSetBlendMode", mat, false); st != nil {
		st.Blend = mode
	}
}

// MaterialSetShadeModel implements MaterialServer.
func (s *Mem) MaterialSetShadeModel(mat RID, model ShadeModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("MaterialSetShadeModel", mat, model)
	if st := s.material("MaterialSetShadeModel", mat, false); st != nil {
		st.Shade = model
	}
}

// MaterialSetLineWidth implements MaterialServer.
func (s *Mem) MaterialSetLineWidth(mat RID, width float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("MaterialSetLineWidth", mat, width)
	if st := s.material("MaterialSetLineWidth", mat, false); st != nil {
		st.LineWidth = width
	}
}

// FixedMaterialCreate implements MaterialServer.
func (s *Mem) FixedMaterialCreate() RID {
	s.mu.Lock()
	defer s.mu.Unlock()
	rid := s.materials.insert(newMaterialState(true))
	s.trace("FixedMaterialCreate", rid)
	return rid
}

func validParam(p FixedParam) bool { return p >= 0 && p < FixedParamMax }

// FixedMaterialSetParam implements MaterialServer.
func (s *Mem) FixedMaterialSetParam(mat RID, param FixedParam, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("FixedMaterialSetParam", mat, param, value)
	if st := s.material("FixedMaterialSetParam", mat, true); st != nil && validParam(param) {
		st.FixedParams[param] = value
	}
}

// FixedMaterialSetTexture implements MaterialServer.
func (s *Mem) FixedMaterialSetTexture(mat RID, param FixedParam, tex RID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("FixedMaterialSetTexture", mat, param, tex)
	st := s.material("FixedMaterialSetTexture", mat, true)
	if st != nil && validParam(param) && s.optional("FixedMaterialSetTexture", tex, kindTexture) {
		st.Textures[param] = tex
	}
}

// FixedMaterialSetTexcoordMode implements MaterialServer.
func (s *Mem) FixedMaterialSetTexcoordMode(mat RID, param FixedParam, mode TexCoordMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("FixedMaterialSetTexcoordMode", mat, param, mode)
	if st := s.material("FixedMaterialSetTexcoordMode", mat, true); st != nil && validParam(param) {
		st.TexCoords[param] = mode
	}
}

// FixedMaterialSetFlag implements MaterialServer.
func (s *Mem) FixedMaterialSetFlag(mat RID, flag FixedFlag, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("FixedMaterialSetFlag", mat, flag, enabled)
	if st := s.material("FixedMaterialSetFlag", mat, true); st != nil && flag >= 0 && flag < FixedFlagMax {
		st.FixedFlags[flag] = enabled
	}
}

// FixedMaterialSetPointSize implements MaterialServer.
func (s *Mem) FixedMaterialSetPointSize(mat RID, size float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("FixedMaterialSetPointSize", mat, size)
	if st := s.material("FixedMaterialSetPointSize", mat, true); st != nil {
		st.PointSize = size
	}
}

// FixedMaterialSetUVTransform implements MaterialServer.
func (s *Mem) FixedMaterialSetUVTransform(mat RID, xform linear.Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("FixedMaterialSetUVTransform", mat, xform)
	if st := s.material("FixedMaterialSetUVTransform", mat, true); st != nil {
		st.UVTransform = xform
	}
}

// FixedMaterialSetDetailBlendMode implements MaterialServer.
func (s *Mem) FixedMaterialSetDetailBlendMode(mat RID, mode BlendMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace("FixedMaterialSetDetailBlendMode", mat, mode)
	if st := s.material("FixedMaterialSetDetailBlendMode", mat, true); st != nil {
		st.DetailBlend = mode
	}
}

// Instance returns a copy of the state of inst.
func (s *Mem) Instance(inst RID) (InstanceState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.instances.get(inst); st != nil {
		return *st, true
	}
	return InstanceState{}, false
}

// Material returns a copy of the state of mat.
func (s *Mem) Material(mat RID) (MaterialState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.materials.get(mat); st != nil {
		cpy := *st
		cpy.Params = maps.Clone(st.Params)
		return cpy, true
	}
	return MaterialState{}, false
}

// Texture returns a copy of the state of tex.
func (s *Mem) Texture(tex RID) (TextureState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.textures.get(tex); st != nil {
		return *st, true
	}
	return TextureState{}, false
}

// ShaderCode returns the code of shader.
func (s *Mem) ShaderCode(shader RID) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.shaders.get(shader); st != nil {
		return *st, true
	}
	return "", false
}

// MeshAABB returns the bounds of mesh.
func (s *Mem) MeshAABB(mesh RID) (linear.AABB, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.meshes.get(mesh); st != nil {
		return st.aabb, true
	}
	return linear.AABB{}, false
}

// IsLive returns whether rid identifies a live resource.
func (s *Mem) IsLive(rid RID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live(rid)
}

// Live returns the number of live resources.
func (s *Mem) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenarios.len() + s.instances.len() + s.materials.len() +
		s.shaders.len() + s.meshes.len() + s.textures.len()
}

// Misuse returns the number of calls that referred to
// invalid handles or arguments.
func (s *Mem) Misuse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.misuse
}

// Calls returns a copy of the calls recorded so far.
// It is always empty unless Config.Trace is set.
func (s *Mem) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the recorded calls of a given
// operation that target rid.
func (s *Mem) CallsTo(op string, rid RID) (calls []Call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calls {
		if c.Op == op && c.RID == rid {
			calls = append(calls, c)
		}
	}
	return
}

// ResetCalls discards the recorded calls.
func (s *Mem) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = s.calls[:0]
}

var _ Server = (*Mem)(nil)
