package libio_test

import (
	"bytes"
	"encoding/binary"
	"getting-started-gl/libio"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func randomFrame(width, height int) *libio.Frame {
	rng := rand.New(rand.NewSource(0))
	frame := libio.NewFrame(width, height)
	for i := range frame.Pix {
		frame.Pix[i] = rng.Float32()
	}
	return frame
}

func TestEncodeDecodeFixedPoint(t *testing.T) {
	frame := randomFrame(17, 9)

	buf := new(bytes.Buffer)
	if err := libio.EncodeFrame(buf, frame, libio.FrameCompressionFixedPoint16Lz4); err != nil {
		t.Fatal(err)
	}

	decoded, err := libio.DecodeFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Width != frame.Width || decoded.Height != frame.Height {
		t.Fatalf("size should be %dx%d but is %dx%d", frame.Width, frame.Height, decoded.Width, decoded.Height)
	}

	var maxErr float32
	for i := range frame.Pix {
		maxErr = math32.Max(maxErr, math32.Abs(frame.Pix[i]-decoded.Pix[i]))
	}
	if maxErr > 1.0/0xffff {
		t.Errorf("fixed point error %v exceeds one step", maxErr)
	}
}

func TestEncodeUncompressedIsExact(t *testing.T) {
	frame := randomFrame(4, 3)

	buf := new(bytes.Buffer)
	if err := libio.EncodeFrame(buf, frame, libio.FrameCompressionNone); err != nil {
		t.Fatal(err)
	}
	decoded, err := libio.DecodeFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	for i := range frame.Pix {
		if frame.Pix[i] != decoded.Pix[i] {
			t.Fatalf("value %d should be %v but is %v", i, frame.Pix[i], decoded.Pix[i])
		}
	}
}

func TestDecodeCorruptHeader(t *testing.T) {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, libio.FrameHeader{Check: 0xdeadbeef})

	if _, err := libio.DecodeFrame(buf); err == nil {
		t.Error("expected an error for a corrupt header")
	}

	if _, err := libio.DecodeFrame(bytes.NewReader([]byte{1, 2})); err == nil {
		t.Error("expected an error for a truncated header")
	}
}

func TestDecodeFrameSizeOutOfRange(t *testing.T) {
	sizes := [][2]uint32{
		{0xffffffff, 0xffffffff},
		{0, 16},
		{16, 0},
		{libio.MaxFrameSide + 1, 1},
	}
	for _, size := range sizes {
		buf := new(bytes.Buffer)
		binary.Write(buf, binary.LittleEndian, libio.FrameHeader{
			Check:    libio.MagicNumberFrame,
			Version:  libio.FrameVersion1_000_000,
			Width:    size[0],
			Height:   size[1],
			Channels: libio.FrameChannels,
		})

		frame, err := decodeNoPanic(t, buf)
		if err == nil || frame != nil {
			t.Errorf("size %dx%d should be rejected", size[0], size[1])
		} else if !strings.Contains(err.Error(), "out of range") {
			t.Errorf("size %dx%d: unexpected error %v", size[0], size[1], err)
		}
	}
}

func decodeNoPanic(t *testing.T, buf *bytes.Buffer) (frame *libio.Frame, err error) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("DecodeFrame panicked: %v", r)
		}
	}()
	return libio.DecodeFrame(buf)
}

func TestEncodeFrameSizeOutOfRange(t *testing.T) {
	if err := libio.EncodeFrame(new(bytes.Buffer), libio.NewFrame(0, 0), libio.FrameCompressionNone); err == nil {
		t.Error("an empty frame should not be encoded")
	}
	if !libio.ValidFrameSize(1280, 720) {
		t.Error("1280x720 should be a valid frame size")
	}
}

func TestToRGBAFlipsVertically(t *testing.T) {
	frame := libio.NewFrame(2, 2)
	frame.Set(0, 0, mgl32.Vec4{1, 0.5, 0.2, 1})

	rgba := frame.ToRGBA()
	// GL row 0 is the last row of the Go image
	c := rgba.RGBAAt(0, 1)
	if c.R != 0xff || c.G != 0x80 || c.B != 0x33 || c.A != 0xff {
		t.Errorf("unexpected color %v", c)
	}
	if c := rgba.RGBAAt(0, 0); c.R != 0 || c.A != 0 {
		t.Errorf("top left should be empty, is %v", c)
	}
}

func TestCoverage(t *testing.T) {
	frame := libio.NewFrame(4, 4)
	background := mgl32.Vec4{0, 0.34, 0.57, 1}
	frame.Fill(background)
	frame.Set(1, 1, mgl32.Vec4{1, 0.5, 0.2, 1})
	frame.Set(2, 1, mgl32.Vec4{1, 0.5, 0.2, 1})

	if n := frame.Coverage(mgl32.Vec4{1, 0.5, 0.2, 1}, 1e-3); n != 2 {
		t.Errorf("expected 2 shape pixels, got %d", n)
	}
	if n := frame.Coverage(background, 1e-3); n != 14 {
		t.Errorf("expected 14 background pixels, got %d", n)
	}
}

func TestSaveFrame(t *testing.T) {
	dir := t.TempDir()
	frame := randomFrame(8, 8)

	for _, name := range []string{"frame.png", "frame.f32"} {
		path := filepath.Join(dir, name)
		if err := libio.SaveFrame(path, frame); err != nil {
			t.Fatalf("%v: %v", name, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("%v was not written: %v", name, err)
		}
	}

	if err := libio.SaveFrame(filepath.Join(dir, "frame.bmp"), frame); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}
