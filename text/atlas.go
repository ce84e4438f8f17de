package text

import (
	"fmt"
	"image"

	"golang.org/x/image/math/fixed"
)

// GlyphKey identifies one rasterized glyph: the same glyph at a different
// size is a different atlas entry.
type GlyphKey struct {
	Font  FontID
	Glyph uint16
	Size  fixed.Int26_6
}

// Placement locates a glyph in the atlas. OffsetX and OffsetY position
// the bitmap relative to the pen on the baseline. A placement is only
// valid while its Generation matches the atlas generation.
type Placement struct {
	X, Y, Width, Height int
	OffsetX, OffsetY    int
	Generation          uint32
}

// Blank reports whether the glyph has no bitmap (whitespace).
func (p Placement) Blank() bool {
	return p.Width == 0 || p.Height == 0
}

// Rect returns the placement's texel rectangle.
func (p Placement) Rect() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.Width, p.Y+p.Height)
}

// Atlas tracks glyph placements inside one coverage texture. It does not
// own pixel storage; callers upload the rectangles reported by the Brush.
type Atlas struct {
	width, height int
	generation    uint32
	packer        *shelfPacker
	entries       map[GlyphKey]Placement

	hits, misses uint64
}

// NewAtlas creates an empty atlas of the given size.
func NewAtlas(width, height, padding int) *Atlas {
	return &Atlas{
		width:   width,
		height:  height,
		packer:  newShelfPacker(width, height, padding),
		entries: make(map[GlyphKey]Placement),
	}
}

// Size returns the atlas dimensions in texels.
func (a *Atlas) Size() (width, height int) {
	return a.width, a.height
}

// Generation increments on every Rebuild.
func (a *Atlas) Generation() uint32 {
	return a.generation
}

// Lookup returns the placement for key in the current generation.
func (a *Atlas) Lookup(key GlyphKey) (Placement, bool) {
	p, ok := a.entries[key]
	if ok {
		a.hits++
	} else {
		a.misses++
	}
	return p, ok
}

// Valid reports whether p belongs to the current generation.
func (a *Atlas) Valid(p Placement) bool {
	return p.Generation == a.generation
}

// insert allocates space for a mask and records the placement. Blank
// masks take no space. ok is false when the atlas is full.
func (a *Atlas) insert(key GlyphKey, m glyphMask) (Placement, bool) {
	p := Placement{OffsetX: m.OffsetX, OffsetY: m.OffsetY, Generation: a.generation}
	if !m.Empty() {
		r, ok := a.packer.allocate(m.Width, m.Height)
		if !ok {
			return Placement{}, false
		}
		p.X, p.Y = r.Min.X, r.Min.Y
		p.Width, p.Height = m.Width, m.Height
	}
	a.entries[key] = p
	return p, true
}

// Rebuild discards every placement and resizes the atlas. The caller must
// recreate the backing texture at the new size.
func (a *Atlas) Rebuild(width, height int) {
	a.width, a.height = width, height
	a.generation++
	a.packer.reset(width, height)
	clear(a.entries)
}

// Len returns the number of cached glyphs.
func (a *Atlas) Len() int {
	return len(a.entries)
}

// Utilization returns the fraction of the atlas covered by glyphs.
func (a *Atlas) Utilization() float64 {
	return a.packer.utilization()
}

// Stats returns lookup hit and miss counts.
func (a *Atlas) Stats() (hits, misses uint64) {
	return a.hits, a.misses
}

// NextAtlasSize returns the edge length to rebuild a square atlas to: the
// smallest power of two at least twice current that fits a glyph of
// edge need, clamped to limit.
func NextAtlasSize(current, need, limit int) int {
	n := 1
	for n < current*2 || n < need {
		n <<= 1
	}
	if n > limit {
		n = limit
	}
	return n
}

// String describes the atlas state for logs.
func (a *Atlas) String() string {
	return fmt.Sprintf("atlas %dx%d gen=%d glyphs=%d", a.width, a.height, a.generation, len(a.entries))
}
