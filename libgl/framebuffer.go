package libgl

import (
	"fmt"

	"github.com/go-gl/gl/v4.5-core/gl"
)

const MaxAttachments = 8

// Attachment indices above MaxAttachments are passed through as GL enums,
// so gl.DEPTH_ATTACHMENT can be used directly.
type framebuffer struct {
	glId          uint32
	textures      []UnboundTexture
	renderbuffers []UnboundRenderbuffer
}

type UnboundFramebuffer interface {
	LabeledGlObject
	Id() uint32
	// target must be GL_DRAW_FRAMEBUFFER, GL_READ_FRAMEBUFFER or GL_FRAMEBUFFER
	Bind(target uint32) BoundFramebuffer
	// target must be GL_DRAW_FRAMEBUFFER, GL_READ_FRAMEBUFFER or GL_FRAMEBUFFER
	Check(target uint32) error
	GetTexture(index int) UnboundTexture
	GetRenderbuffer(index int) UnboundRenderbuffer
	AttachTexture(index int, texture UnboundTexture)
	AttachTextureLevel(index int, texture UnboundTexture, level int)
	AttachRenderbuffer(index int, renderbuffer UnboundRenderbuffer)
	BindTargets(attachments ...int)
	ClearColor(index int, r, g, b, a float32)
	ClearDepth(depth float32)
	Delete()
}

type BoundFramebuffer interface {
	UnboundFramebuffer
}

func NewFramebuffer() UnboundFramebuffer {
	var id uint32
	gl.CreateFramebuffers(1, &id)

	return &framebuffer{
		glId:          id,
		textures:      make([]UnboundTexture, MaxAttachments+2),
		renderbuffers: make([]UnboundRenderbuffer, MaxAttachments+2),
	}
}

func (fb *framebuffer) Id() uint32 {
	return fb.glId
}

func (fb *framebuffer) SetDebugLabel(label string) {
	setObjectLabel(gl.FRAMEBUFFER, fb.glId, label)
}

func (fb *framebuffer) BindTargets(indices ...int) {
	if len(indices) == 0 {
		gl.NamedFramebufferDrawBuffer(fb.glId, gl.NONE)
		return
	}
	attachments := make([]uint32, len(indices))
	for i, v := range indices {
		attachments[i] = attachmentEnum(v)
	}
	gl.NamedFramebufferDrawBuffers(fb.glId, int32(len(attachments)), &attachments[0])
}

func (fb *framebuffer) Check(target uint32) error {
	status := gl.CheckNamedFramebufferStatus(fb.glId, target)
	switch status {
	case gl.FRAMEBUFFER_COMPLETE:
		return nil
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return fmt.Errorf("an attachment is framebuffer incomplete (GL_FRAMEBUFFER_INCOMPLETE_ATTACHMENT)")
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return fmt.Errorf("the framebuffer has no attachments (GL_FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT)")
	case gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return fmt.Errorf("the object type of a draw attachment is none (GL_FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER)")
	case gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return fmt.Errorf("the object type of the read attachment is none (GL_FRAMEBUFFER_INCOMPLETE_READ_BUFFER)")
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return fmt.Errorf("the combination of internal formats of the attachments is not supported (GL_FRAMEBUFFER_UNSUPPORTED)")
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return fmt.Errorf("the attachments have different sampling (GL_FRAMEBUFFER_INCOMPLETE_MULTISAMPLE)")
	case gl.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:
		return fmt.Errorf("the attachments are not all layered (GL_FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS)")
	}
	return fmt.Errorf("unknown framebuffer status: %X", status)
}

func (fb *framebuffer) Bind(target uint32) BoundFramebuffer {
	State.BindFramebuffer(target, fb.glId)
	return BoundFramebuffer(fb)
}

func (fb *framebuffer) AttachTexture(index int, texture UnboundTexture) {
	fb.AttachTextureLevel(index, texture, 0)
}

func (fb *framebuffer) AttachTextureLevel(index int, texture UnboundTexture, level int) {
	fb.textures[slotIndex(index)] = texture
	gl.NamedFramebufferTexture(fb.glId, attachmentEnum(index), texture.Id(), int32(level))
}

func (fb *framebuffer) AttachRenderbuffer(index int, renderbuffer UnboundRenderbuffer) {
	fb.renderbuffers[slotIndex(index)] = renderbuffer
	gl.NamedFramebufferRenderbuffer(fb.glId, attachmentEnum(index), gl.RENDERBUFFER, renderbuffer.Id())
}

// ClearColor clears a single color output without touching the global clear color.
func (fb *framebuffer) ClearColor(index int, r, g, b, a float32) {
	value := [4]float32{r, g, b, a}
	gl.ClearNamedFramebufferfv(fb.glId, gl.COLOR, int32(index), &value[0])
}

func (fb *framebuffer) ClearDepth(depth float32) {
	gl.ClearNamedFramebufferfv(fb.glId, gl.DEPTH, 0, &depth)
}

func (fb *framebuffer) GetTexture(index int) UnboundTexture {
	return fb.textures[slotIndex(index)]
}

func (fb *framebuffer) GetRenderbuffer(index int) UnboundRenderbuffer {
	return fb.renderbuffers[slotIndex(index)]
}

func (fb *framebuffer) Delete() {
	gl.DeleteFramebuffers(1, &fb.glId)
	fb.glId = 0
}

func attachmentEnum(index int) uint32 {
	if index <= MaxAttachments {
		return uint32(gl.COLOR_ATTACHMENT0 + index)
	}
	return uint32(index)
}

// slot 0 holds depth (or depth-stencil), slot 1 stencil, color outputs follow
func slotIndex(index int) int {
	switch index {
	case gl.DEPTH_ATTACHMENT, gl.DEPTH_STENCIL_ATTACHMENT:
		return 0
	case gl.STENCIL_ATTACHMENT:
		return 1
	}
	return index + 2
}

type renderbuffer struct {
	glId uint32
}

type UnboundRenderbuffer interface {
	LabeledGlObject
	Id() uint32
	Bind() BoundRenderbuffer
	Allocate(internalFormat uint32, width, height int)
	Delete()
}

type BoundRenderbuffer interface {
	UnboundRenderbuffer
}

func NewRenderbuffer() UnboundRenderbuffer {
	var id uint32
	gl.CreateRenderbuffers(1, &id)
	return &renderbuffer{
		glId: id,
	}
}

func (rb *renderbuffer) Id() uint32 {
	return rb.glId
}

func (rb *renderbuffer) SetDebugLabel(label string) {
	setObjectLabel(gl.RENDERBUFFER, rb.glId, label)
}

func (rb *renderbuffer) Bind() BoundRenderbuffer {
	State.BindRenderbuffer(rb.glId)
	return BoundRenderbuffer(rb)
}

func (rb *renderbuffer) Allocate(internalFormat uint32, width, height int) {
	gl.NamedRenderbufferStorage(rb.glId, internalFormat, int32(width), int32(height))
}

func (rb *renderbuffer) Delete() {
	gl.DeleteRenderbuffers(1, &rb.glId)
	rb.glId = 0
}
