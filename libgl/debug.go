package libgl

import (
	"fmt"
	"getting-started-gl/libio"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// GlError lists the codes drained from glGetError, oldest first.
type GlError struct {
	Codes []uint32
}

func (err *GlError) Error() string {
	names := make([]string, len(err.Codes))
	for i, code := range err.Codes {
		names[i] = ErrorName(code)
	}
	return "gl error: " + strings.Join(names, ", ")
}

func ErrorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	}
	return fmt.Sprintf("0x%04x", code)
}

// CheckError drains the error queue. There can be one pending code per
// error flag, so the loop is bounded.
func CheckError() error {
	var codes []uint32
	for i := 0; i < 16; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil
	}
	return &GlError{Codes: codes}
}

// ReadFrame reads the current read buffer, which is the back buffer of the
// window unless a Framebuffer is bound. Call it before the buffers are swapped.
func ReadFrame(x, y, width, height int) *libio.Frame {
	frame := libio.NewFrame(width, height)
	if frame.Count() == 0 {
		return frame
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 4)
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.FLOAT, gl.Ptr(frame.Pix))
	return frame
}
