package libgl

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type buffer struct {
	glId  uint32
	size  int
	flags uint32
}

type UnboundBuffer interface {
	LabeledGlObject
	Id() uint32
	Allocate(data any, flags int)
	AllocateEmpty(size int, flags int)
	Write(offset int, data any)
	Size() int
	Bind(target uint32) BoundBuffer
	Delete()
}

type BoundBuffer interface {
	UnboundBuffer
}

func NewBuffer() UnboundBuffer {
	var id uint32
	gl.CreateBuffers(1, &id)
	return &buffer{
		glId: id,
	}
}

func (vbo *buffer) Id() uint32 {
	return vbo.glId
}

func (vbo *buffer) SetDebugLabel(label string) {
	setObjectLabel(gl.BUFFER, vbo.glId, label)
}

func (vbo *buffer) Bind(target uint32) BoundBuffer {
	State.BindBuffer(target, vbo.glId)
	return BoundBuffer(vbo)
}

func (vbo *buffer) Size() int {
	return vbo.size
}

// AllocateEmpty creates immutable storage; pass gl.DYNAMIC_STORAGE_BIT to allow Write.
func (vbo *buffer) AllocateEmpty(size int, flags int) {
	if vbo.size != 0 {
		log.Panicf("buffer %d is immutable", vbo.glId)
	}
	if warnAllocationSizeZero(size) {
		return
	}
	gl.NamedBufferStorage(vbo.glId, size, nil, uint32(flags))
	vbo.size = size
	vbo.flags = uint32(flags)
}

func (vbo *buffer) Allocate(data any, flags int) {
	if vbo.size != 0 {
		log.Panicf("buffer %d is immutable", vbo.glId)
	}
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	if warnAllocationSizeZero(size) {
		return
	}
	gl.NamedBufferStorage(vbo.glId, size, Pointer(data), uint32(flags))
	vbo.size = size
	vbo.flags = uint32(flags)
}

func warnAllocationSizeZero(size int) bool {
	if size != 0 {
		return false
	}
	msg := "Zero size buffer allocation\x00"
	gl.DebugMessageInsert(gl.DEBUG_SOURCE_APPLICATION, gl.DEBUG_TYPE_ERROR, 1, gl.DEBUG_SEVERITY_MEDIUM, -1, gl.Str(msg))
	return true
}

func (vbo *buffer) Write(offset int, data any) {
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	if offset+size > vbo.size {
		msg := fmt.Sprintf("Buffer write out of range: %d+%d > %d\x00", offset, size, vbo.size)
		gl.DebugMessageInsert(gl.DEBUG_SOURCE_APPLICATION, gl.DEBUG_TYPE_ERROR, 1, gl.DEBUG_SEVERITY_HIGH, -1, gl.Str(msg))
		return
	}
	gl.NamedBufferSubData(vbo.glId, offset, size, Pointer(data))
}

func (vbo *buffer) Delete() {
	gl.DeleteBuffers(1, &vbo.glId)
	vbo.glId = 0
	vbo.size = 0
}

type vertexArray struct {
	glId uint32
}

type UnboundVertexArray interface {
	LabeledGlObject
	Id() uint32
	Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int)
	BindBuffer(bufferIndex int, vbo UnboundBuffer, offset int, stride int)
	BindElementBuffer(ebo UnboundBuffer)
	Bind() BoundVertexArray
	Delete()
}

type BoundVertexArray interface {
	UnboundVertexArray
}

func NewVertexArray() UnboundVertexArray {
	var id uint32
	gl.CreateVertexArrays(1, &id)
	return &vertexArray{
		glId: id,
	}
}

func (vao *vertexArray) Bind() BoundVertexArray {
	State.BindVertexArray(vao.glId)
	return BoundVertexArray(vao)
}

func (vao *vertexArray) Id() uint32 {
	return vao.glId
}

func (vao *vertexArray) SetDebugLabel(label string) {
	setObjectLabel(gl.VERTEX_ARRAY, vao.glId, label)
}

func (vao *vertexArray) Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int) {
	gl.EnableVertexArrayAttrib(vao.glId, uint32(attributeIndex))
	gl.VertexArrayAttribFormat(vao.glId, uint32(attributeIndex), int32(size), uint32(dataType), normalized, uint32(offset))
	gl.VertexArrayAttribBinding(vao.glId, uint32(attributeIndex), uint32(bufferIndex))
}

func (vao *vertexArray) BindBuffer(bufferIndex int, vbo UnboundBuffer, offset int, stride int) {
	gl.VertexArrayVertexBuffer(vao.glId, uint32(bufferIndex), vbo.Id(), offset, int32(stride))
}

func (vao *vertexArray) BindElementBuffer(ebo UnboundBuffer) {
	gl.VertexArrayElementBuffer(vao.glId, ebo.Id())
}

func (vao *vertexArray) Delete() {
	gl.DeleteVertexArrays(1, &vao.glId)
	vao.glId = 0
}
