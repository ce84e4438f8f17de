// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/gpucore"
	"github.com/gogpu/uirender/text"
)

// QuadBatcher expands filled quads into triangle lists.
type QuadBatcher struct {
	vertices []TriangleVertex
}

// Add appends the six vertices covering bounds.
func (b *QuadBatcher) Add(bounds uirender.Rect, fill uirender.Color) {
	c := fill.Premultiply().Array()
	for _, p := range quadCorners(bounds.X, bounds.Y, bounds.X+bounds.Width, bounds.Y+bounds.Height) {
		b.vertices = append(b.vertices, TriangleVertex{Position: p, Color: c})
	}
}

// Len returns the number of vertices.
func (b *QuadBatcher) Len() int { return len(b.vertices) }

// Vertices returns the batched vertices.
func (b *QuadBatcher) Vertices() []TriangleVertex { return b.vertices }

// Reset clears the batch, keeping its storage.
func (b *QuadBatcher) Reset() { b.vertices = b.vertices[:0] }

// AppendBytes appends the encoded vertices to dst.
func (b *QuadBatcher) AppendBytes(dst []byte) []byte {
	for _, v := range b.vertices {
		dst = v.appendTo(dst)
	}
	return dst
}

// ImageBatch is a run of consecutive instances sharing one texture.
type ImageBatch struct {
	Texture gpucore.TextureID
	First   uint32
	Count   uint32
}

// ImageBatcher accumulates image draws as instances, grouping consecutive
// draws of the same texture into one batch.
type ImageBatcher struct {
	instances []ImageInstance
	batches   []ImageBatch
	split     bool
}

// Accumulate appends one image draw.
func (b *ImageBatcher) Accumulate(bounds uirender.Rect, tex gpucore.TextureID) {
	n := uint32(len(b.instances)) //nolint:gosec // bounded by scene size
	b.instances = append(b.instances, ImageInstance{
		Position: [2]float32{bounds.X, bounds.Y},
		Size:     [2]float32{bounds.Width, bounds.Height},
	})
	if last := len(b.batches) - 1; !b.split && last >= 0 && b.batches[last].Texture == tex {
		b.batches[last].Count++
		return
	}
	b.split = false
	b.batches = append(b.batches, ImageBatch{Texture: tex, First: n, Count: 1})
}

// Split makes the next draw start a new batch, so batches never span layers.
func (b *ImageBatcher) Split() { b.split = true }

// Batches returns the batches in draw order.
func (b *ImageBatcher) Batches() []ImageBatch { return b.batches }

// Len returns the number of instances.
func (b *ImageBatcher) Len() int { return len(b.instances) }

// Reset clears the batch, keeping its storage.
func (b *ImageBatcher) Reset() {
	b.instances = b.instances[:0]
	b.batches = b.batches[:0]
	b.split = false
}

// AppendBytes appends the encoded instances to dst.
func (b *ImageBatcher) AppendBytes(dst []byte) []byte {
	for _, v := range b.instances {
		dst = v.appendTo(dst)
	}
	return dst
}

// TextBatcher converts glyph quads into text vertices.
type TextBatcher struct {
	vertices []TextVertex
}

// Add appends the six vertices of a glyph. Glyph quads are in physical
// pixels; scale converts them to the logical space of the projection.
func (b *TextBatcher) Add(q text.GlyphQuad, scale float32) {
	r := q.Screen.Scale(1 / scale)
	c := q.Color.Premultiply().Array()
	pos := quadCorners(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
	uv := quadCorners(q.UV[0], q.UV[1], q.UV[2], q.UV[3])
	for i := range pos {
		b.vertices = append(b.vertices, TextVertex{Position: pos[i], UV: uv[i], Color: c})
	}
}

// Len returns the number of vertices.
func (b *TextBatcher) Len() int { return len(b.vertices) }

// Vertices returns the batched vertices.
func (b *TextBatcher) Vertices() []TextVertex { return b.vertices }

// Reset clears the batch, keeping its storage.
func (b *TextBatcher) Reset() { b.vertices = b.vertices[:0] }

// AppendBytes appends the encoded vertices to dst.
func (b *TextBatcher) AppendBytes(dst []byte) []byte {
	for _, v := range b.vertices {
		dst = v.appendTo(dst)
	}
	return dst
}
