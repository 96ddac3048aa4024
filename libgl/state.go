package libgl

import (
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

var GlEnv *GlEnvironment

type GlEnvironment struct {
	Vendor   string
	Renderer string
	Version  string
	Glsl     string
}

func GetGlEnv() *GlEnvironment {
	return &GlEnvironment{
		Vendor:   glString(gl.VENDOR),
		Renderer: glString(gl.RENDERER),
		Version:  glString(gl.VERSION),
		Glsl:     glString(gl.SHADING_LANGUAGE_VERSION),
	}
}

func glString(name uint32) string {
	str := gl.GetString(name)
	if str == nil {
		return "unknown"
	}
	return strings.TrimSuffix(gl.GoStr(str), "\x00")
}

var GlState = NewGlStateManager()

// GlStateManager skips binds and state changes that are already in effect.
// The element array binding is vertex array state, so it is tracked per vertex array.
type GlStateManager struct {
	ArrayBuffer     uint32
	VertexArray     uint32
	Program         uint32
	ElementBuffers  map[uint32]uint32
	ViewportRect    [4]int
	ClearColorRGBA  [4]float32
	clearColorValid bool
}

func NewGlStateManager() *GlStateManager {
	return &GlStateManager{
		ElementBuffers: map[uint32]uint32{},
	}
}

func (s *GlStateManager) BindBuffer(target uint32, buffer uint32) {
	switch target {
	case gl.ARRAY_BUFFER:
		s.BindArrayBuffer(buffer)
	case gl.ELEMENT_ARRAY_BUFFER:
		s.BindElementArrayBuffer(buffer)
	default:
		gl.BindBuffer(target, buffer)
	}
}

func (s *GlStateManager) BindArrayBuffer(buffer uint32) {
	if s.ArrayBuffer == buffer {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	s.ArrayBuffer = buffer
}

func (s *GlStateManager) BindElementArrayBuffer(buffer uint32) {
	if s.ElementBuffers[s.VertexArray] == buffer {
		return
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buffer)
	s.ElementBuffers[s.VertexArray] = buffer
}

func (s *GlStateManager) ElementArrayBuffer() uint32 {
	return s.ElementBuffers[s.VertexArray]
}

func (s *GlStateManager) BindVertexArray(array uint32) {
	if s.VertexArray == array {
		return
	}
	gl.BindVertexArray(array)
	s.VertexArray = array
}

func (s *GlStateManager) UseProgram(program uint32) {
	if s.Program == program {
		return
	}
	gl.UseProgram(program)
	s.Program = program
}

func (s *GlStateManager) Viewport(x, y, w, h int) {
	if s.ViewportRect == [4]int{x, y, w, h} {
		return
	}
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	s.ViewportRect = [4]int{x, y, w, h}
}

func (s *GlStateManager) ClearColor(r, g, b, a float32) {
	if s.clearColorValid && s.ClearColorRGBA == [4]float32{r, g, b, a} {
		return
	}
	gl.ClearColor(r, g, b, a)
	s.ClearColorRGBA = [4]float32{r, g, b, a}
	s.clearColorValid = true
}

// The forget* methods drop cached bindings of deleted objects, GL may recycle their names.
func (s *GlStateManager) forgetBuffer(buffer uint32) {
	if s.ArrayBuffer == buffer {
		s.ArrayBuffer = 0
	}
	for vao, ebo := range s.ElementBuffers {
		if ebo == buffer {
			s.ElementBuffers[vao] = 0
		}
	}
}

func (s *GlStateManager) forgetVertexArray(array uint32) {
	if s.VertexArray == array {
		s.VertexArray = 0
	}
	delete(s.ElementBuffers, array)
}

func (s *GlStateManager) forgetProgram(program uint32) {
	if s.Program == program {
		s.Program = 0
	}
}
