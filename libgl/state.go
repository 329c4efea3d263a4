package libgl

import (
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type Capability uint32

const (
	DepthTest   Capability = gl.DEPTH_TEST
	Blend       Capability = gl.BLEND
	ScissorTest Capability = gl.SCISSOR_TEST
	CullFace    Capability = gl.CULL_FACE
)

type BlendFactor uint32

const (
	BlendZero             BlendFactor = gl.ZERO
	BlendOne              BlendFactor = gl.ONE
	BlendSrcAlpha         BlendFactor = gl.SRC_ALPHA
	BlendOneMinusSrcAlpha BlendFactor = gl.ONE_MINUS_SRC_ALPHA
)

type BlendEquation uint32

const (
	BlendFuncAdd BlendEquation = gl.FUNC_ADD
)

type DepthFunc uint32

const (
	DepthFuncLess   DepthFunc = gl.LESS
	DepthFuncLEqual DepthFunc = gl.LEQUAL
	DepthFuncAlways DepthFunc = gl.ALWAYS
)

// StateManager shadows the GL state touched by this program so redundant
// state changes are skipped. Every call must happen on the thread that owns
// the context.
type StateManager struct {
	Caps                           map[Capability]bool
	TextureUnits, SamplerUnits     []uint32
	DrawFramebuffer                uint32
	ReadFramebuffer                uint32
	Renderbuffer                   uint32
	ArrayBuffer, ElementBuffer     uint32
	ProgramPipeline, VertexArray   uint32
	ActiveTextureUnit              int
	ViewportRect, ScissorRect      [4]int
	BlendFactorSrc, BlendFactorDst BlendFactor
	BlendEquationMode              BlendEquation
	DepthFuncFn                    DepthFunc
	DepthWriteMask                 bool
	CullFaceMask                   uint32
	ClearColorRGBA                 [4]float32
}

var State *StateManager

type Environment struct {
	Vendor                     string
	Renderer                   string
	Version                    string
	UseIntelTextureBindingFix  bool
	UseIntelCubemapDsaFix      bool
	IntelTextureBindingTargets map[uint32]uint32
}

var Env *Environment

const (
	VendorIntel   = "intel"
	VendorNvidia  = "nvidia"
	VendorAmd     = "ati"
	VendorUnknown = "unknown"
)

func GetEnvironment() *Environment {
	vendor := strings.ToLower(gl.GoStr(gl.GetString(gl.VENDOR)))
	switch {
	case strings.Contains(vendor, "intel"):
		vendor = VendorIntel
	case strings.Contains(vendor, "nvidia"):
		vendor = VendorNvidia
	case strings.Contains(vendor, "ati ") || strings.Contains(vendor, "amd"):
		vendor = VendorAmd
	default:
		vendor = VendorUnknown
	}

	return &Environment{
		Vendor:                     vendor,
		Renderer:                   gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:                    gl.GoStr(gl.GetString(gl.VERSION)),
		UseIntelTextureBindingFix:  vendor == VendorIntel,
		UseIntelCubemapDsaFix:      vendor == VendorIntel,
		IntelTextureBindingTargets: map[uint32]uint32{},
	}
}

// The default values mirror a freshly created context.
func NewStateManager() *StateManager {
	return &StateManager{
		Caps:           map[Capability]bool{},
		TextureUnits:   make([]uint32, 32),
		SamplerUnits:   make([]uint32, 32),
		DepthFuncFn:    DepthFuncLess,
		DepthWriteMask: true,
		CullFaceMask:   gl.BACK,
		BlendFactorSrc: BlendOne,
		BlendFactorDst: BlendZero,
	}
}

func (s *StateManager) Enable(c Capability) {
	if s.Caps[c] {
		return
	}
	gl.Enable(uint32(c))
	s.Caps[c] = true
}

func (s *StateManager) Disable(c Capability) {
	if !s.Caps[c] {
		return
	}
	gl.Disable(uint32(c))
	s.Caps[c] = false
}

// SetEnabled enables exactly the given capabilities and disables every other one that is tracked.
func (s *StateManager) SetEnabled(caps ...Capability) {
	want := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		want[c] = true
	}
	for c, on := range s.Caps {
		if on && !want[c] {
			s.Disable(c)
		}
	}
	for c := range want {
		s.Enable(c)
	}
}

func (s *StateManager) CullBack() {
	if s.CullFaceMask == gl.BACK {
		return
	}
	gl.CullFace(gl.BACK)
	s.CullFaceMask = gl.BACK
}

func (s *StateManager) BlendFunc(src, dst BlendFactor) {
	if s.BlendFactorSrc == src && s.BlendFactorDst == dst {
		return
	}
	gl.BlendFunc(uint32(src), uint32(dst))
	s.BlendFactorSrc = src
	s.BlendFactorDst = dst
}

func (s *StateManager) BlendEquation(mode BlendEquation) {
	if s.BlendEquationMode == mode {
		return
	}
	gl.BlendEquation(uint32(mode))
	s.BlendEquationMode = mode
}

func (s *StateManager) DepthFunc(fn DepthFunc) {
	if s.DepthFuncFn == fn {
		return
	}
	gl.DepthFunc(uint32(fn))
	s.DepthFuncFn = fn
}

func (s *StateManager) DepthMask(flag bool) {
	if s.DepthWriteMask == flag {
		return
	}
	gl.DepthMask(flag)
	s.DepthWriteMask = flag
}

func (s *StateManager) BindTextureUnit(unit int, texture uint32) {
	if s.TextureUnits[unit] == texture {
		return
	}
	if Env != nil && Env.UseIntelTextureBindingFix {
		s.ActiveTexture(unit)
		if texture != 0 {
			gl.BindTexture(Env.IntelTextureBindingTargets[texture], texture)
		}
		s.TextureUnits[unit] = texture
		return
	}
	gl.BindTextureUnit(uint32(unit), texture)
	s.TextureUnits[unit] = texture
}

// BindTexture binds to the active unit, the way the overlay renderer expects.
func (s *StateManager) BindTexture(target uint32, texture uint32) {
	if s.TextureUnits[s.ActiveTextureUnit] == texture {
		return
	}
	gl.BindTexture(target, texture)
	s.TextureUnits[s.ActiveTextureUnit] = texture
}

func (s *StateManager) ActiveTexture(unit int) {
	if s.ActiveTextureUnit == unit {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	s.ActiveTextureUnit = unit
}

func (s *StateManager) BindSampler(unit int, sampler uint32) {
	if s.SamplerUnits[unit] == sampler {
		return
	}
	gl.BindSampler(uint32(unit), sampler)
	s.SamplerUnits[unit] = sampler
}

func (s *StateManager) BindBuffer(target uint32, buffer uint32) {
	switch target {
	case gl.ARRAY_BUFFER:
		if s.ArrayBuffer == buffer {
			return
		}
		s.ArrayBuffer = buffer
	case gl.ELEMENT_ARRAY_BUFFER:
		if s.ElementBuffer == buffer {
			return
		}
		s.ElementBuffer = buffer
	}
	gl.BindBuffer(target, buffer)
}

func (s *StateManager) BindFramebuffer(target, framebuffer uint32) {
	switch target {
	case gl.DRAW_FRAMEBUFFER:
		s.BindDrawFramebuffer(framebuffer)
	case gl.READ_FRAMEBUFFER:
		s.BindReadFramebuffer(framebuffer)
	default:
		if framebuffer == s.DrawFramebuffer && framebuffer == s.ReadFramebuffer {
			return
		}
		gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
		s.DrawFramebuffer = framebuffer
		s.ReadFramebuffer = framebuffer
	}
}

func (s *StateManager) BindDrawFramebuffer(framebuffer uint32) {
	if s.DrawFramebuffer == framebuffer {
		return
	}
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, framebuffer)
	s.DrawFramebuffer = framebuffer
}

func (s *StateManager) BindReadFramebuffer(framebuffer uint32) {
	if s.ReadFramebuffer == framebuffer {
		return
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, framebuffer)
	s.ReadFramebuffer = framebuffer
}

func (s *StateManager) BindRenderbuffer(renderbuffer uint32) {
	if s.Renderbuffer == renderbuffer {
		return
	}
	gl.BindRenderbuffer(gl.RENDERBUFFER, renderbuffer)
	s.Renderbuffer = renderbuffer
}

func (s *StateManager) BindProgramPipeline(pipeline uint32) {
	if s.ProgramPipeline == pipeline {
		return
	}
	gl.BindProgramPipeline(pipeline)
	s.ProgramPipeline = pipeline
}

func (s *StateManager) BindVertexArray(array uint32) {
	if s.VertexArray == array {
		return
	}
	gl.BindVertexArray(array)
	s.VertexArray = array
}

func (s *StateManager) Viewport(x, y, w, h int) {
	rect := [4]int{x, y, w, h}
	if s.ViewportRect == rect {
		return
	}
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	s.ViewportRect = rect
}

func (s *StateManager) Scissor(x, y, w, h int) {
	rect := [4]int{x, y, w, h}
	if s.ScissorRect == rect {
		return
	}
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
	s.ScissorRect = rect
}

func (s *StateManager) ClearColor(r, g, b, a float32) {
	rgba := [4]float32{r, g, b, a}
	if s.ClearColorRGBA == rgba {
		return
	}
	gl.ClearColor(r, g, b, a)
	s.ClearColorRGBA = rgba
}
