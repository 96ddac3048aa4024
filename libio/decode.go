package libio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

func DecodeFrame(r io.Reader) (frame *Frame, err error) {
	fr := &frameReader{src: r}

	header := FrameHeader{}
	if !fr.get(&header) {
		return nil, fmt.Errorf("expected frame header; byte 0x%08x: %w", fr.at, fr.err)
	}

	if header.Check != MagicNumberFrame {
		return nil, fmt.Errorf("frame header is corrupt; byte 0x%08x", fr.at)
	}

	if header.Version != FrameVersion1_000_000 {
		return nil, fmt.Errorf("frame version %d unsupported; byte 0x%08x", header.Version, fr.at)
	}

	if header.Channels != FrameChannels {
		return nil, fmt.Errorf("frame has %d channels, expected %d; byte 0x%08x", header.Channels, FrameChannels, fr.at)
	}

	if !ValidFrameSize(uint64(header.Width), uint64(header.Height)) {
		return nil, fmt.Errorf("frame size %dx%d out of range; byte 0x%08x", header.Width, header.Height, fr.at)
	}

	frame = NewFrame(int(header.Width), int(header.Height))

	switch header.Compression {
	case FrameCompressionNone:
		if !fr.get(frame.Pix) {
			return nil, fmt.Errorf("expected %d frame values; byte 0x%08x: %w", len(frame.Pix), fr.at, fr.err)
		}
	case FrameCompressionFixedPoint16Lz4:
		fix := make([]uint16, len(frame.Pix))
		lzr := lz4.NewReader(fr.src)
		if err = binary.Read(lzr, frameOrder, fix); err != nil {
			return nil, fmt.Errorf("could not decompress frame pixels: %w", err)
		}
		for i, v := range fix {
			frame.Pix[i] = float32(v) / 0xffff
		}
	default:
		return nil, fmt.Errorf("unknown frame compression %d", header.Compression)
	}

	return frame, nil
}
