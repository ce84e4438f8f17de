// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/text"
)

func TestQuadBatcher(t *testing.T) {
	var b QuadBatcher
	red := uirender.RGB(1, 0, 0)
	b.Add(uirender.NewRect(0, 0, 50, 50), red)
	b.Add(uirender.NewRect(10, 10, 5, 5), uirender.White)

	if b.Len() != 12 {
		t.Fatalf("Len = %d, want 12", b.Len())
	}
	for i, v := range b.Vertices()[:6] {
		if v.Color != red.Array() {
			t.Errorf("vertex %d color = %v, want red", i, v.Color)
		}
	}
	if n := len(b.AppendBytes(nil)); n != 12*TriangleVertexSize {
		t.Errorf("encoded %d bytes, want %d", n, 12*TriangleVertexSize)
	}

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len after Reset = %d", b.Len())
	}
}

func TestQuadBatcher_Premultiplies(t *testing.T) {
	var b QuadBatcher
	b.Add(uirender.NewRect(0, 0, 1, 1), uirender.RGBA(1, 1, 1, 0.5))
	c := b.Vertices()[0].Color
	if c != [4]float32{0.5, 0.5, 0.5, 0.5} {
		t.Errorf("color = %v, want premultiplied half white", c)
	}
}

func TestImageBatcher_Grouping(t *testing.T) {
	var b ImageBatcher
	r := uirender.NewRect(0, 0, 10, 10)

	b.Accumulate(r, 1)
	b.Accumulate(r, 1)
	b.Accumulate(r, 2)
	b.Split()
	b.Accumulate(r, 2)

	want := []ImageBatch{
		{Texture: 1, First: 0, Count: 2},
		{Texture: 2, First: 2, Count: 1},
		{Texture: 2, First: 3, Count: 1},
	}
	got := b.Batches()
	if len(got) != len(want) {
		t.Fatalf("batches = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("batch %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if n := len(b.AppendBytes(nil)); n != 4*ImageInstanceSize {
		t.Errorf("encoded %d bytes, want %d", n, 4*ImageInstanceSize)
	}

	b.Reset()
	b.Accumulate(r, 2)
	if got := b.Batches(); len(got) != 1 || got[0].First != 0 {
		t.Errorf("after Reset batches = %+v", got)
	}
}

func TestTextBatcher_ScalesToLogical(t *testing.T) {
	var b TextBatcher
	b.Add(text.GlyphQuad{
		Screen: uirender.NewRect(20, 40, 10, 20),
		UV:     [4]float32{0, 0, 0.5, 0.25},
		Color:  uirender.White,
	}, 2)

	v := b.Vertices()
	if len(v) != 6 {
		t.Fatalf("vertices = %d, want 6", len(v))
	}
	if v[0].Position != [2]float32{10, 20} || v[2].Position != [2]float32{15, 30} {
		t.Errorf("positions = %v, %v", v[0].Position, v[2].Position)
	}
	if v[0].UV != [2]float32{0, 0} || v[2].UV != [2]float32{0.5, 0.25} {
		t.Errorf("uvs = %v, %v", v[0].UV, v[2].UV)
	}
}
