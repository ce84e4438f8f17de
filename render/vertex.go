// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"math"
)

// Vertex strides in bytes, matching the pipeline vertex layouts.
const (
	TriangleVertexSize = 24
	TextVertexSize     = 32
	ImageInstanceSize  = 16
)

// TriangleVertex is one corner of a filled-shape triangle. Color is
// premultiplied.
type TriangleVertex struct {
	Position [2]float32
	Color    [4]float32
}

// TextVertex is one corner of a glyph quad. Color is premultiplied and
// modulated by atlas coverage.
type TextVertex struct {
	Position [2]float32
	UV       [2]float32
	Color    [4]float32
}

// ImageInstance is one textured quad of the image pipeline.
type ImageInstance struct {
	Position [2]float32
	Size     [2]float32
}

func appendFloats(b []byte, vs ...float32) []byte {
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	return b
}

func (v TriangleVertex) appendTo(b []byte) []byte {
	b = appendFloats(b, v.Position[:]...)
	return appendFloats(b, v.Color[:]...)
}

func (v TextVertex) appendTo(b []byte) []byte {
	b = appendFloats(b, v.Position[:]...)
	b = appendFloats(b, v.UV[:]...)
	return appendFloats(b, v.Color[:]...)
}

func (v ImageInstance) appendTo(b []byte) []byte {
	b = appendFloats(b, v.Position[:]...)
	return appendFloats(b, v.Size[:]...)
}

// quadCorners returns the six corners of two triangles covering the
// rectangle x0,y0 - x1,y1: TL TR BR, then TL BL BR.
func quadCorners(x0, y0, x1, y1 float32) [6][2]float32 {
	return [6][2]float32{
		{x0, y0}, {x1, y0}, {x1, y1},
		{x0, y0}, {x0, y1}, {x1, y1},
	}
}

func projectionBytes(m [16]float32) []byte {
	return appendFloats(make([]byte, 0, 64), m[:]...)
}
