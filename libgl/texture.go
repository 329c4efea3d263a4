package libgl

import (
	"fmt"
	"log"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type texture struct {
	glId       uint32
	dimensions uint32
	width      int32
	height     int32
	depth      int32
}

type UnboundTexture interface {
	LabeledGlObject
	Id() uint32
	Width() int
	Height() int
	Bind(unit int) BoundTexture
	Allocate(levels int, internalFormat uint32, width, height, depth int)
	Load(level int, width, height, depth int, format uint32, data any)
	// LoadLayer writes one layer of an array or one face of a cubemap
	LoadLayer(level int, width, height, layer int, format uint32, data any)
	// Read copies the whole level into dst, which must be large enough
	Read(level int, format uint32, dst any)
	FilterMode(min, mag int32)
	WrapMode(s, t, r int32)
	MipmapLevels(base, max int)
	GenerateMipmap()
	Delete()
}

type BoundTexture interface {
	UnboundTexture
}

func NewTexture(dimensions uint32) UnboundTexture {
	var id uint32
	gl.CreateTextures(dimensions, 1, &id)
	if Env != nil && Env.UseIntelTextureBindingFix {
		Env.IntelTextureBindingTargets[id] = dimensions
	}
	return &texture{
		glId:       id,
		dimensions: dimensions,
	}
}

func (tex *texture) dimensionCount() int {
	switch tex.dimensions {
	case gl.TEXTURE_1D, gl.TEXTURE_BUFFER:
		return 1
	case gl.TEXTURE_3D, gl.TEXTURE_2D_ARRAY, gl.TEXTURE_2D_MULTISAMPLE_ARRAY:
		return 3
	case gl.TEXTURE_2D, gl.TEXTURE_2D_MULTISAMPLE, gl.TEXTURE_1D_ARRAY, gl.TEXTURE_CUBE_MAP:
		return 2
	default:
		gl.DebugMessageInsert(gl.DEBUG_SOURCE_APPLICATION, gl.DEBUG_TYPE_ERROR, 1, gl.DEBUG_SEVERITY_MEDIUM, -1, gl.Str(fmt.Sprintf("invalid texture dimension for texture %d: %04x\x00", tex.glId, tex.dimensions)))
		return 0
	}
}

func (tex *texture) Id() uint32 {
	return tex.glId
}

func (tex *texture) Width() int {
	return int(tex.width)
}

func (tex *texture) Height() int {
	return int(tex.height)
}

func (tex *texture) SetDebugLabel(label string) {
	setObjectLabel(gl.TEXTURE, tex.glId, label)
}

func (tex *texture) Bind(unit int) BoundTexture {
	State.BindTextureUnit(unit, tex.glId)
	return BoundTexture(tex)
}

func (tex *texture) Delete() {
	if Env != nil && Env.UseIntelTextureBindingFix {
		delete(Env.IntelTextureBindingTargets, tex.glId)
	}
	gl.DeleteTextures(1, &tex.glId)
	tex.glId = 0
}

// Allocate creates immutable storage. levels == 0 allocates a full mip chain.
func (tex *texture) Allocate(levels int, internalFormat uint32, width, height, depth int) {
	if levels == 0 {
		max := math32.Max(math32.Max(float32(width), float32(height)), float32(depth))
		levels = int(math32.Log2(max)) + 1
	}
	tex.width = int32(width)
	tex.height = int32(height)
	tex.depth = int32(depth)
	switch tex.dimensionCount() {
	case 1:
		gl.TextureStorage1D(tex.glId, int32(levels), internalFormat, int32(width))
	case 2:
		gl.TextureStorage2D(tex.glId, int32(levels), internalFormat, int32(width), int32(height))
	case 3:
		gl.TextureStorage3D(tex.glId, int32(levels), internalFormat, int32(width), int32(height), int32(depth))
	}
}

func (tex *texture) Load(level int, width, height, depth int, format uint32, data any) {
	dataType, _ := getGlType(data)
	switch tex.dimensionCount() {
	case 1:
		gl.TextureSubImage1D(tex.glId, int32(level), 0, int32(width), format, dataType, Pointer(data))
	case 2:
		gl.TextureSubImage2D(tex.glId, int32(level), 0, 0, int32(width), int32(height), format, dataType, Pointer(data))
	case 3:
		gl.TextureSubImage3D(tex.glId, int32(level), 0, 0, 0, int32(width), int32(height), int32(depth), format, dataType, Pointer(data))
	}
}

func (tex *texture) LoadLayer(level int, width, height, layer int, format uint32, data any) {
	dataType, _ := getGlType(data)
	if tex.dimensions == gl.TEXTURE_CUBE_MAP && Env != nil && Env.UseIntelCubemapDsaFix {
		// some intel drivers ignore the z offset for cubemaps
		State.ActiveTexture(0)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex.glId)
		gl.TexSubImage2D(uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+layer), int32(level), 0, 0, int32(width), int32(height), format, dataType, Pointer(data))
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, State.TextureUnits[0])
		return
	}
	gl.TextureSubImage3D(tex.glId, int32(level), 0, 0, int32(layer), int32(width), int32(height), 1, format, dataType, Pointer(data))
}

func (tex *texture) Read(level int, format uint32, dst any) {
	dataType, _ := getGlType(dst)
	gl.GetTextureImage(tex.glId, int32(level), format, dataType, int32(byteSize(dst)), Pointer(dst))
}

func (tex *texture) FilterMode(min, mag int32) {
	if min != 0 {
		gl.TextureParameteri(tex.glId, gl.TEXTURE_MIN_FILTER, min)
	}
	if mag != 0 {
		gl.TextureParameteri(tex.glId, gl.TEXTURE_MAG_FILTER, mag)
	}
}

func (tex *texture) WrapMode(s, t, r int32) {
	if s != 0 {
		gl.TextureParameteri(tex.glId, gl.TEXTURE_WRAP_S, s)
	}
	if t != 0 {
		gl.TextureParameteri(tex.glId, gl.TEXTURE_WRAP_T, t)
	}
	if r != 0 {
		gl.TextureParameteri(tex.glId, gl.TEXTURE_WRAP_R, r)
	}
}

func (tex *texture) GenerateMipmap() {
	gl.GenerateTextureMipmap(tex.glId)
}

func (tex *texture) MipmapLevels(base, max int) {
	gl.TextureParameteri(tex.glId, gl.TEXTURE_BASE_LEVEL, int32(base))
	gl.TextureParameteri(tex.glId, gl.TEXTURE_MAX_LEVEL, int32(max))
}

func getGlType(data any) (glType uint32, float bool) {
	switch data.(type) {
	case byte, []byte, *byte:
		return gl.UNSIGNED_BYTE, false
	case int8, []int8, *int8:
		return gl.BYTE, false
	case int16, []int16, *int16:
		return gl.SHORT, false
	case uint16, []uint16, *uint16:
		return gl.UNSIGNED_SHORT, false
	case int32, []int32, *int32:
		return gl.INT, false
	case uint32, []uint32, *uint32:
		return gl.UNSIGNED_INT, false
	case float32, []float32, *float32, mgl32.Vec2, []mgl32.Vec2, mgl32.Vec3, []mgl32.Vec3, mgl32.Vec4, []mgl32.Vec4:
		return gl.FLOAT, true
	case float64, []float64, *float64:
		return gl.DOUBLE, true
	}
	log.Panicf("invalid type: %T", data)
	return 0, false
}

func byteSize(data any) int {
	switch d := data.(type) {
	case []byte:
		return len(d)
	case []int8:
		return len(d)
	case []int16:
		return len(d) * 2
	case []uint16:
		return len(d) * 2
	case []int32:
		return len(d) * 4
	case []uint32:
		return len(d) * 4
	case []float32:
		return len(d) * 4
	case []float64:
		return len(d) * 8
	case []mgl32.Vec3:
		return len(d) * 12
	case []mgl32.Vec4:
		return len(d) * 16
	}
	log.Panicf("invalid read destination: %T", data)
	return 0
}

type sampler struct {
	glId uint32
}

type UnboundSampler interface {
	LabeledGlObject
	Id() uint32
	Bind(unit int) BoundSampler
	FilterMode(min, mag int32)
	WrapMode(s, t, r int32)
	BorderColor(color mgl32.Vec4)
	Delete()
}

type BoundSampler interface {
	UnboundSampler
}

func NewSampler() UnboundSampler {
	var id uint32
	gl.CreateSamplers(1, &id)
	return &sampler{
		glId: id,
	}
}

func (s *sampler) Id() uint32 {
	return s.glId
}

func (s *sampler) SetDebugLabel(label string) {
	setObjectLabel(gl.SAMPLER, s.glId, label)
}

func (s *sampler) Bind(unit int) BoundSampler {
	State.BindSampler(unit, s.glId)
	return BoundSampler(s)
}

func (s *sampler) FilterMode(min, mag int32) {
	if min != 0 {
		gl.SamplerParameteri(s.glId, gl.TEXTURE_MIN_FILTER, min)
	}
	if mag != 0 {
		gl.SamplerParameteri(s.glId, gl.TEXTURE_MAG_FILTER, mag)
	}
}

func (sampler *sampler) WrapMode(s, t, r int32) {
	if s != 0 {
		gl.SamplerParameteri(sampler.glId, gl.TEXTURE_WRAP_S, s)
	}
	if t != 0 {
		gl.SamplerParameteri(sampler.glId, gl.TEXTURE_WRAP_T, t)
	}
	if r != 0 {
		gl.SamplerParameteri(sampler.glId, gl.TEXTURE_WRAP_R, r)
	}
}

func (sampler *sampler) BorderColor(color mgl32.Vec4) {
	gl.SamplerParameterfv(sampler.glId, gl.TEXTURE_BORDER_COLOR, &color[0])
}

func (s *sampler) Delete() {
	gl.DeleteSamplers(1, &s.glId)
	s.glId = 0
}
