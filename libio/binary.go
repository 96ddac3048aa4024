package libio

import (
	"encoding/binary"
	"io"
)

// frameStream byte order
var frameOrder = binary.LittleEndian

// frameReader remembers the first error; once it is set every get fails.
type frameReader struct {
	src io.Reader
	// offset of the value read last, for error messages
	at   int
	next int
	err  error
}

func (fr *frameReader) get(data any) bool {
	if fr.err != nil {
		return false
	}
	fr.at = fr.next
	if fr.err = binary.Read(fr.src, frameOrder, data); fr.err != nil {
		return false
	}
	fr.next += binary.Size(data)
	return true
}

// frameWriter remembers the first error; once it is set every put fails.
type frameWriter struct {
	dst io.Writer
	n   int
	err error
}

func (fw *frameWriter) put(data any) bool {
	if fw.err != nil {
		return false
	}
	if fw.err = binary.Write(fw.dst, frameOrder, data); fw.err != nil {
		return false
	}
	fw.n += binary.Size(data)
	return true
}

func (fw *frameWriter) raw(p []byte) bool {
	if fw.err != nil {
		return false
	}
	n, err := fw.dst.Write(p)
	fw.n += n
	fw.err = err
	return err == nil
}
