package libgl

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/go-gl/gl/v3.3-core/gl"
)

type buffer struct {
	glId   uint32
	target uint32
	size   int
	usage  uint32
}

type UnboundBuffer interface {
	Id() uint32
	Target() uint32
	Allocate(data any, usage int) error
	Size() int
	Bind() BoundBuffer
	Delete()
}

type BoundBuffer interface {
	UnboundBuffer
	Unbind()
}

// NewBuffer generates a buffer name for target. Data is uploaded by binding
// it to that target, as 3.3 core has no direct state access.
func NewBuffer(target uint32) UnboundBuffer {
	var id uint32
	gl.GenBuffers(1, &id)
	return &buffer{
		glId:   id,
		target: target,
	}
}

func (vbo *buffer) Id() uint32 {
	return vbo.glId
}

func (vbo *buffer) Target() uint32 {
	return vbo.target
}

func (vbo *buffer) Bind() BoundBuffer {
	GlState.BindBuffer(vbo.target, vbo.glId)
	return BoundBuffer(vbo)
}

func (vbo *buffer) Unbind() {
	GlState.BindBuffer(vbo.target, 0)
}

func (vbo *buffer) Size() int {
	return vbo.size
}

// Allocate binds the buffer and uploads data, which must have a fixed size.
func (vbo *buffer) Allocate(data any, usage int) error {
	if vbo.glId == 0 {
		return fmt.Errorf("buffer has been deleted")
	}
	size := binary.Size(data)
	if size == -1 {
		return fmt.Errorf("%T does not have a fixed size", data)
	}
	if size == 0 {
		return fmt.Errorf("zero size buffer allocation")
	}
	vbo.Bind()
	gl.BufferData(vbo.target, size, gl.Ptr(data), uint32(usage))
	vbo.size = size
	vbo.usage = uint32(usage)
	return nil
}

func (vbo *buffer) Delete() {
	if vbo.glId == 0 {
		return
	}
	GlState.forgetBuffer(vbo.glId)
	gl.DeleteBuffers(1, &vbo.glId)
	vbo.glId = 0
}

type vertexArray struct {
	glId          uint32
	elementBuffer uint32
}

type UnboundVertexArray interface {
	Id() uint32
	Bind() BoundVertexArray
	Delete()
}

type BoundVertexArray interface {
	UnboundVertexArray
	Layout(vbo UnboundBuffer, attributeIndex int, size int, dataType int, normalized bool, stride int, offset int)
	BindElementBuffer(ebo UnboundBuffer)
	ElementBuffer() uint32
	Unbind()
}

func NewVertexArray() UnboundVertexArray {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return &vertexArray{
		glId: id,
	}
}

func (vao *vertexArray) Bind() BoundVertexArray {
	if vao.glId == 0 {
		log.Panicf("vertex array has been deleted")
	}
	GlState.BindVertexArray(vao.glId)
	return BoundVertexArray(vao)
}

func (vao *vertexArray) Unbind() {
	GlState.BindVertexArray(0)
}

func (vao *vertexArray) Id() uint32 {
	return vao.glId
}

// Layout records attribute attributeIndex as sourced from vbo. The attribute keeps
// referencing vbo after the array buffer binding is cleared.
func (vao *vertexArray) Layout(vbo UnboundBuffer, attributeIndex int, size int, dataType int, normalized bool, stride int, offset int) {
	GlState.BindArrayBuffer(vbo.Id())
	gl.VertexAttribPointer(uint32(attributeIndex), int32(size), uint32(dataType), normalized, int32(stride), gl.PtrOffset(offset))
	gl.EnableVertexAttribArray(uint32(attributeIndex))
}

// BindElementBuffer stores ebo in the vertex array. It must stay bound while
// the vertex array is bound, unbinding it would detach it again.
func (vao *vertexArray) BindElementBuffer(ebo UnboundBuffer) {
	GlState.BindElementArrayBuffer(ebo.Id())
	vao.elementBuffer = ebo.Id()
}

func (vao *vertexArray) ElementBuffer() uint32 {
	return vao.elementBuffer
}

func (vao *vertexArray) Delete() {
	if vao.glId == 0 {
		return
	}
	GlState.forgetVertexArray(vao.glId)
	gl.DeleteVertexArrays(1, &vao.glId)
	vao.glId = 0
}
