package text

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// glyphMask is the 8-bit coverage of one glyph. OffsetX and OffsetY place
// the mask's top-left corner relative to the pen position on the baseline.
type glyphMask struct {
	Width, Height    int
	OffsetX, OffsetY int
	Pix              []byte
}

// Empty reports whether the glyph has no visible coverage (e.g. a space).
func (m glyphMask) Empty() bool {
	return m.Width <= 0 || m.Height <= 0
}

// rasterizeGlyph renders the outline of gid at size into a coverage mask.
func rasterizeGlyph(f *sfnt.Font, buf *sfnt.Buffer, gid uint16, size fixed.Int26_6) (glyphMask, error) {
	segments, err := f.LoadGlyph(buf, sfnt.GlyphIndex(gid), size, nil)
	if err != nil {
		return glyphMask{}, err
	}
	if len(segments) == 0 {
		return glyphMask{}, nil
	}

	minX, minY := fixed.Int26_6(math.MaxInt32), fixed.Int26_6(math.MaxInt32)
	maxX, maxY := fixed.Int26_6(math.MinInt32), fixed.Int26_6(math.MinInt32)
	for _, seg := range segments {
		for _, p := range seg.Args[:segmentPoints(seg.Op)] {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	x0, y0 := minX.Floor(), minY.Floor()
	x1, y1 := maxX.Ceil(), maxY.Ceil()
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return glyphMask{}, nil
	}

	ox, oy := float32(x0), float32(y0)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 - ox, float32(p.Y)/64 - oy
	}

	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src
	started := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				r.ClosePath()
			}
			started = true
			r.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			dx, dy := pt(seg.Args[2])
			r.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if started {
		r.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	return glyphMask{Width: w, Height: h, OffsetX: x0, OffsetY: y0, Pix: dst.Pix}, nil
}

func segmentPoints(op sfnt.SegmentOp) int {
	switch op {
	case sfnt.SegmentOpQuadTo:
		return 2
	case sfnt.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}
