package text

import (
	"image"
	"testing"
)

func TestShelfPacker_Allocate(t *testing.T) {
	p := newShelfPacker(64, 64, 0)

	steps := []struct {
		w, h int
		want image.Rectangle
	}{
		{10, 10, image.Rect(0, 0, 10, 10)},
		{10, 10, image.Rect(10, 0, 20, 10)},
		{10, 20, image.Rect(20, 0, 30, 20)}, // bottom shelf grows
		{40, 5, image.Rect(0, 20, 40, 25)},  // does not fit shelf 0 width
	}
	for i, s := range steps {
		got, ok := p.allocate(s.w, s.h)
		if !ok {
			t.Fatalf("step %d: allocate(%d, %d) failed", i, s.w, s.h)
		}
		if got != s.want {
			t.Errorf("step %d: allocate(%d, %d) = %v, want %v", i, s.w, s.h, got, s.want)
		}
	}
}

func TestShelfPacker_OnlyBottomShelfGrows(t *testing.T) {
	p := newShelfPacker(64, 64, 0)
	p.allocate(10, 10)
	p.allocate(64, 10) // forces a second shelf at y=10

	got, ok := p.allocate(10, 15)
	if !ok {
		t.Fatal("allocate failed")
	}
	if got.Min.Y != 20 {
		t.Errorf("tall rect placed at y=%d, want a new shelf at y=20", got.Min.Y)
	}
}

func TestShelfPacker_Padding(t *testing.T) {
	p := newShelfPacker(64, 64, 1)
	p.allocate(10, 10)
	got, _ := p.allocate(10, 10)
	if got.Min.X != 11 {
		t.Errorf("second rect x = %d, want 11", got.Min.X)
	}
}

func TestShelfPacker_Full(t *testing.T) {
	p := newShelfPacker(32, 32, 0)

	if _, ok := p.allocate(33, 1); ok {
		t.Error("rect wider than packer should not fit")
	}
	if _, ok := p.allocate(0, 5); ok {
		t.Error("empty rect should not allocate")
	}
	if _, ok := p.allocate(32, 32); !ok {
		t.Fatal("full-size rect should fit an empty packer")
	}
	if _, ok := p.allocate(1, 1); ok {
		t.Error("allocation into a full packer should fail")
	}
	if u := p.utilization(); u != 1 {
		t.Errorf("utilization = %v, want 1", u)
	}
}

func TestShelfPacker_Reset(t *testing.T) {
	p := newShelfPacker(16, 16, 0)
	p.allocate(16, 16)
	p.reset(32, 32)

	got, ok := p.allocate(20, 20)
	if !ok || got != image.Rect(0, 0, 20, 20) {
		t.Errorf("after reset allocate = %v, %v", got, ok)
	}
}
