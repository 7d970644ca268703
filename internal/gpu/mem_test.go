package gpu

import (
	"bytes"
	"testing"
)

func TestMemBufferCreateAndWrite(t *testing.T) {
	dev := NewMemDevice()
	buf, err := dev.CreateBuffer(8, []byte{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if buf.Size() != 8 {
		t.Fatalf("size %d, want 8", buf.Size())
	}

	buf.Write(4, []byte{9, 9})
	got := buf.(*MemBuffer).Bytes()
	want := []byte{1, 2, 3, 0, 9, 9, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("contents %v, want %v", got, want)
	}
}

func TestMemBufferRejectsBadSizes(t *testing.T) {
	dev := NewMemDevice()
	if _, err := dev.CreateBuffer(-1, nil); err == nil {
		t.Error("negative size accepted")
	}
	if _, err := dev.CreateBuffer(2, []byte{1, 2, 3}); err == nil {
		t.Error("oversized initial contents accepted")
	}
}

func TestMemBufferWriteOutOfBoundsPanics(t *testing.T) {
	dev := NewMemDevice()
	buf, err := dev.CreateBuffer(4, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	buf.Write(2, []byte{0, 0, 0})
}

func TestMemBufferWriteAfterReleasePanics(t *testing.T) {
	dev := NewMemDevice()
	buf, err := dev.CreateBuffer(4, nil)
	if err != nil {
		t.Fatal(err)
	}
	buf.Release()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	buf.Write(0, []byte{1})
}
