package libio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameReaderOffsets(t *testing.T) {
	buf := new(bytes.Buffer)
	fw := &frameWriter{dst: buf}
	fw.put(uint32(1))
	fw.put([]uint16{2, 3})
	if fw.err != nil || fw.n != 8 {
		t.Fatalf("wrote %d bytes, err %v", fw.n, fw.err)
	}

	fr := &frameReader{src: buf}
	var a uint32
	b := make([]uint16, 2)
	if !fr.get(&a) || !fr.get(b) {
		t.Fatal(fr.err)
	}
	if a != 1 || b[0] != 2 || b[1] != 3 {
		t.Errorf("read %v %v", a, b)
	}
	if fr.at != 4 {
		t.Errorf("last value should start at byte 4, starts at %d", fr.at)
	}

	if fr.get(&a) || !errors.Is(fr.err, io.EOF) {
		t.Errorf("expected EOF, got %v", fr.err)
	}
	if fr.at != 8 {
		t.Errorf("failed read should start at byte 8, starts at %d", fr.at)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, io.ErrShortWrite
}

func TestFrameWriterKeepsFirstError(t *testing.T) {
	fw := &frameWriter{dst: failingWriter{}}
	if fw.put(uint32(1)) {
		t.Fatal("put should fail")
	}
	if fw.raw([]byte{1}) {
		t.Error("raw should fail after an error")
	}
	if !errors.Is(fw.err, io.ErrShortWrite) {
		t.Errorf("expected the first error, got %v", fw.err)
	}
}
