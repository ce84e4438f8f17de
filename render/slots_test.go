// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/uirender/recording"
)

func TestFrameSlots_Rotation(t *testing.T) {
	dev := recording.NewDevice()
	fs, err := NewFrameSlots(dev, 3, 64)
	if err != nil {
		t.Fatalf("NewFrameSlots: %v", err)
	}
	if fs.Len() != 3 {
		t.Fatalf("Len = %d, want 3", fs.Len())
	}
	for frame := uint64(0); frame < 7; frame++ {
		if got := fs.Slot(frame).Index(); got != int(frame%3) {
			t.Errorf("Slot(%d).Index() = %d, want %d", frame, got, frame%3)
		}
	}
	if fs.Slot(0) == fs.Slot(1) || fs.Slot(0) != fs.Slot(3) {
		t.Error("slots are not a ring of distinct buffers")
	}
	if buffers, _ := dev.Live(); buffers != 12 {
		t.Errorf("live buffers = %d, want 12", buffers)
	}
}

func TestFrameSlots_Grow(t *testing.T) {
	dev := recording.NewDevice()
	fs, err := NewFrameSlots(dev, 1, 16)
	if err != nil {
		t.Fatal(err)
	}
	s := fs.Slot(0)
	old := s.QuadBuffer()

	data := make([]byte, 100)
	data[99] = 7
	if err := s.quads.write(dev, data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if s.QuadBuffer() == old {
		t.Fatal("buffer not replaced on growth")
	}
	if _, ok := dev.Buffer(old); ok {
		t.Error("old buffer not destroyed")
	}
	b, ok := dev.Buffer(s.QuadBuffer())
	if !ok || len(b.Data) != 128 || b.Data[99] != 7 {
		t.Errorf("grown buffer size %d, want 128 with data", len(b.Data))
	}

	// Fits: no new buffer.
	id := s.QuadBuffer()
	if err := s.quads.write(dev, make([]byte, 128)); err != nil {
		t.Fatal(err)
	}
	if s.QuadBuffer() != id {
		t.Error("buffer replaced although data fit")
	}
}

func TestFrameSlots_CreateFailure(t *testing.T) {
	dev := recording.NewDevice()
	dev.FailBuffers(errors.New("out of memory"))
	if _, err := NewFrameSlots(dev, 2, 64); err == nil {
		t.Fatal("expected error")
	}
	if buffers, _ := dev.Live(); buffers != 0 {
		t.Errorf("leaked %d buffers", buffers)
	}
}

func TestFrameSlots_Dispose(t *testing.T) {
	dev := recording.NewDevice()
	fs, err := NewFrameSlots(dev, 2, 64)
	if err != nil {
		t.Fatal(err)
	}
	fs.Dispose()
	fs.Dispose()
	if buffers, _ := dev.Live(); buffers != 0 {
		t.Errorf("live buffers after Dispose = %d", buffers)
	}
}
