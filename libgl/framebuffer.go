package libgl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Framebuffer is an offscreen color target backed by a single renderbuffer.
type Framebuffer struct {
	glId         uint32
	renderbuffer uint32
	Width        int
	Height       int
}

func NewFramebuffer(width, height int) (*Framebuffer, error) {
	fb := &Framebuffer{Width: width, Height: height}

	gl.GenRenderbuffers(1, &fb.renderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.renderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.GenFramebuffers(1, &fb.glId)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.glId)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, fb.renderbuffer)
	err := fb.check()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if err != nil {
		fb.Delete()
		return nil, err
	}
	return fb, nil
}

func (fb *Framebuffer) Id() uint32 {
	return fb.glId
}

// Bind makes fb the draw and read target.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.glId)
}

// Unbind restores the window's framebuffer.
func (fb *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (fb *Framebuffer) check() error {
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	switch status {
	case gl.FRAMEBUFFER_COMPLETE:
		return nil
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return fmt.Errorf("an attachment is framebuffer incomplete (GL_FRAMEBUFFER_INCOMPLETE_ATTACHMENT)")
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return fmt.Errorf("the framebuffer has no attachments (GL_FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT)")
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return fmt.Errorf("the combination of internal formats of the attachments is not supported (GL_FRAMEBUFFER_UNSUPPORTED)")
	}
	return fmt.Errorf("unknown framebuffer status: %X", status)
}

func (fb *Framebuffer) Delete() {
	if fb.glId != 0 {
		gl.DeleteFramebuffers(1, &fb.glId)
		fb.glId = 0
	}
	if fb.renderbuffer != 0 {
		gl.DeleteRenderbuffers(1, &fb.renderbuffer)
		fb.renderbuffer = 0
	}
}
