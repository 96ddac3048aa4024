package libio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"getting-started-gl/libutil"

	"github.com/pierrec/lz4/v4"
)

// EncodeFrame writes the header followed by the pixels, either as raw float32
// values or as lz4 compressed 16 bit fixed point values.
func EncodeFrame(w io.Writer, frame *Frame, compression FrameCompression) (err error) {
	if !ValidFrameSize(uint64(frame.Width), uint64(frame.Height)) {
		return fmt.Errorf("frame size %dx%d out of range", frame.Width, frame.Height)
	}
	if len(frame.Pix) != frame.Count()*FrameChannels {
		return fmt.Errorf("frame has %d values, expected %d", len(frame.Pix), frame.Count()*FrameChannels)
	}

	fw := &frameWriter{dst: w}

	header := FrameHeader{
		Check:       MagicNumberFrame,
		Version:     FrameVersion1_000_000,
		Width:       uint32(frame.Width),
		Height:      uint32(frame.Height),
		Channels:    FrameChannels,
		Compression: compression,
	}

	if !fw.put(header) {
		return fmt.Errorf("could not write frame header: %w", fw.err)
	}

	switch compression {
	case FrameCompressionNone:
		if !fw.put(frame.Pix) {
			return fmt.Errorf("could not write frame pixels: %w", fw.err)
		}
		return nil
	case FrameCompressionFixedPoint16Lz4:
	default:
		return fmt.Errorf("unknown frame compression %d", compression)
	}

	buf := bytes.NewBuffer(nil)
	lzw := lz4.NewWriter(buf)
	if err = lzw.Apply(lz4.CompressionLevelOption(lz4.Fast)); err != nil {
		return fmt.Errorf("could not configure lz4: %w", err)
	}
	if err = binary.Write(lzw, frameOrder, toFixedPoint16(frame.Pix)); err != nil {
		return fmt.Errorf("could not compress frame pixels: %w", err)
	}
	if err = lzw.Close(); err != nil {
		return fmt.Errorf("could not compress frame pixels: %w", err)
	}

	if !fw.raw(buf.Bytes()) {
		return fmt.Errorf("could not write compressed frame pixels at byte 0x%08x: %w", fw.n, fw.err)
	}
	return nil
}

// Color buffer values are normalized, so the fixed point range is [0, 1].
func toFixedPoint16(pix []float32) []uint16 {
	fix := make([]uint16, len(pix))
	for i, v := range pix {
		fix[i] = uint16(libutil.Clamp(v, 0, 1)*0xffff + 0.5)
	}
	return fix
}

func EncodePNG(w io.Writer, frame *Frame) error {
	return png.Encode(w, frame.ToRGBA())
}

// SaveFrame picks the encoding from the file extension: .png or .f32.
func SaveFrame(path string, frame *Frame) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".f32" {
		return fmt.Errorf("unsupported capture format %q, use .png or .f32", ext)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	if ext == ".png" {
		return EncodePNG(file, frame)
	}
	return EncodeFrame(file, frame, FrameCompressionFixedPoint16Lz4)
}
