package libio

import (
	goimg "image"

	"getting-started-gl/libutil"

	"github.com/go-gl/mathgl/mgl32"
)

const MagicNumberFrame = 0x5348504b

type FrameVersion uint32

const (
	FrameVersion1_000_000 = FrameVersion(1_000_000)
)

type FrameCompression uint32

const (
	FrameCompressionNone = FrameCompression(iota)
	FrameCompressionFixedPoint16Lz4
)

const FrameChannels = 4

// MaxFrameSide bounds both sides of a decoded frame. Larger than any
// window the programs open, small enough that the pixel count fits an int.
const MaxFrameSide = 1 << 14

// ValidFrameSize reports whether a frame of width x height can be stored.
func ValidFrameSize(width, height uint64) bool {
	if width == 0 || height == 0 || width > MaxFrameSide || height > MaxFrameSide {
		return false
	}
	values := width * height * FrameChannels
	return values <= uint64(maxInt)
}

const maxInt = int(^uint(0) >> 1)

type FrameHeader struct {
	Check         uint32
	Version       FrameVersion
	Width, Height uint32
	Channels      uint8
	Compression   FrameCompression
	Unused        [15]uint8
}

// Frame is an RGBA float framebuffer readback.
//
// Note that the origin (0,0) is in the bottom left, as opposed to Go's top left origin
type Frame struct {
	Width, Height int
	Pix           []float32
}

func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*FrameChannels),
	}
}

func (frame *Frame) Index(x, y int) int {
	return (x + y*frame.Width) * FrameChannels
}

func (frame *Frame) Count() int {
	return frame.Width * frame.Height
}

func (frame *Frame) At(x, y int) mgl32.Vec4 {
	i := frame.Index(x, y)
	return mgl32.Vec4{frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2], frame.Pix[i+3]}
}

func (frame *Frame) Set(x, y int, color mgl32.Vec4) {
	i := frame.Index(x, y)
	copy(frame.Pix[i:i+FrameChannels], color[:])
}

// Fill sets every pixel to color.
func (frame *Frame) Fill(color mgl32.Vec4) {
	for i := 0; i < frame.Count(); i++ {
		copy(frame.Pix[i*FrameChannels:], color[:])
	}
}

// Coverage counts the pixels equal to color within epsilon on every channel.
func (frame *Frame) Coverage(color mgl32.Vec4, epsilon float32) int {
	n := 0
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			if frame.At(x, y).ApproxEqualThreshold(color, epsilon) {
				n++
			}
		}
	}
	return n
}

func (frame *Frame) ToRGBA() *goimg.RGBA {
	rgba := goimg.NewRGBA(goimg.Rect(0, 0, frame.Width, frame.Height))

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			i := frame.Index(x, y)
			// flipped vertically
			j := (x + (frame.Height-y-1)*frame.Width) * 4
			for c := 0; c < FrameChannels; c++ {
				rgba.Pix[j+c] = uint8(libutil.Clamp(frame.Pix[i+c], 0, 1)*0xff + 0.5)
			}
		}
	}

	return rgba
}
