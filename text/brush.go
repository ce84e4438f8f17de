package text

import (
	"cmp"
	"image"
	"slices"

	"github.com/chewxy/math32"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/cache"
)

// BrushConfig configures a Brush.
type BrushConfig struct {
	// AtlasSize is the initial square atlas edge in texels.
	AtlasSize int
	// MaxAtlasSize bounds atlas growth.
	MaxAtlasSize int
	// Padding is the gap between packed glyphs.
	Padding int
	// LayoutCacheSize is the number of shaped sections kept across frames.
	LayoutCacheSize int
}

// DefaultBrushConfig returns the default brush configuration.
func DefaultBrushConfig() BrushConfig {
	return BrushConfig{
		AtlasSize:       512,
		MaxAtlasSize:    4096,
		Padding:         1,
		LayoutCacheSize: 1024,
	}
}

// GlyphQuad is one textured glyph rectangle ready for vertex generation.
type GlyphQuad struct {
	// Screen is the glyph rectangle in the sections' pixel space.
	Screen uirender.Rect
	// UV holds u0, v0, u1, v1 in normalized atlas coordinates.
	UV    [4]float32
	Color uirender.Color
	Z     float32
	Layer int
}

// Brush turns queued sections into glyph quads, keeping the atlas filled
// with every glyph they use. A Brush is not safe for concurrent use.
type Brush struct {
	fonts  *Registry
	cfg    BrushConfig
	atlas  *Atlas
	layout *layouter
	buf    sfnt.Buffer
	queue  []Section

	// oversized glyphs are warned about once.
	oversized map[GlyphKey]struct{}
	// used holds the glyphs of the frame being processed.
	used map[GlyphKey]struct{}
	// overflow holds glyphs that did not fit a full atlas of the maximum
	// size. They are retried after the next Rebuild.
	overflow map[GlyphKey]struct{}
	skipped  int
}

// NewBrush creates a brush with an empty atlas of cfg.AtlasSize.
func NewBrush(fonts *Registry, cfg BrushConfig) *Brush {
	def := DefaultBrushConfig()
	if cfg.AtlasSize <= 0 {
		cfg.AtlasSize = def.AtlasSize
	}
	if cfg.MaxAtlasSize < cfg.AtlasSize {
		cfg.MaxAtlasSize = max(def.MaxAtlasSize, cfg.AtlasSize)
	}
	if cfg.LayoutCacheSize <= 0 {
		cfg.LayoutCacheSize = def.LayoutCacheSize
	}
	return &Brush{
		fonts:     fonts,
		cfg:       cfg,
		atlas:     NewAtlas(cfg.AtlasSize, cfg.AtlasSize, cfg.Padding),
		layout:    newLayouter(fonts, cfg.LayoutCacheSize),
		oversized: make(map[GlyphKey]struct{}),
		used:      make(map[GlyphKey]struct{}),
		overflow:  make(map[GlyphKey]struct{}),
	}
}

// Queue adds a section to the current frame.
func (b *Brush) Queue(s Section) {
	b.queue = append(b.queue, s)
}

// Queued returns the number of sections waiting for Process.
func (b *Brush) Queued() int {
	return len(b.queue)
}

// Atlas returns the brush's glyph atlas.
func (b *Brush) Atlas() *Atlas {
	return b.atlas
}

// LayoutStats returns the counters of the shaped-layout cache.
func (b *Brush) LayoutStats() cache.Stats {
	return b.layout.cache.Stats()
}

// Rebuild resizes and clears the atlas. Every glyph is re-rasterized on
// the next Process.
func (b *Brush) Rebuild(width, height int) {
	uirender.Logger().Info("rebuilding glyph atlas",
		"from", b.atlas.width, "to", width, "generation", b.atlas.generation+1)
	b.atlas.Rebuild(width, height)
	clear(b.overflow)
}

// Skipped returns the number of glyphs the last Process left out because
// the atlas was full at its maximum size and held nothing the frame could
// give up.
func (b *Brush) Skipped() int {
	return b.skipped
}

// Measure returns the laid out size of s without queueing it.
func (b *Brush) Measure(s Section) uirender.Size {
	if s.Text == "" || s.Size <= 0 {
		return uirender.Size{}
	}
	tl := b.layout.layout(&s)
	return uirender.Size{Width: tl.width, Height: tl.height}
}

// Process lays out every queued section, rasterizes and uploads glyphs
// missing from the atlas, and returns the glyph quads ordered by layer
// and depth. upload receives each new glyph's atlas rectangle and its
// tightly packed 8-bit coverage.
//
// When the atlas cannot hold the frame's glyphs Process returns a
// *TooSmallError and no quads; the caller should Rebuild with the
// suggested size. An atlas already at the maximum size is only reported
// when a rebuild would free glyphs the frame does not use. Otherwise the
// glyphs that fit are drawn and the rest are counted by Skipped. The
// queue is cleared in every case.
func (b *Brush) Process(upload func(r image.Rectangle, pix []byte)) ([]GlyphQuad, error) {
	defer func() { b.queue = b.queue[:0] }()
	clear(b.used)
	b.skipped = 0

	layouts := make([]*textLayout, len(b.queue))
	for i := range b.queue {
		s := &b.queue[i]
		if s.Text == "" || s.Size <= 0 {
			continue
		}
		tl := b.layout.layout(s)
		layouts[i] = tl
		size := floatToFixed(s.Size)
		for _, g := range tl.glyphs {
			b.used[GlyphKey{Font: s.Font, Glyph: g.id, Size: size}] = struct{}{}
		}
	}
	for i, tl := range layouts {
		if tl == nil {
			continue
		}
		if err := b.cacheGlyphs(&b.queue[i], tl, upload); err != nil {
			return nil, err
		}
	}
	if b.skipped > 0 {
		uirender.Logger().Warn("glyph atlas full at maximum size, skipping glyphs",
			"skipped", b.skipped, "atlas", b.atlas.String())
	}

	order := make([]int, len(b.queue))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		sx, sy := &b.queue[x], &b.queue[y]
		if c := cmp.Compare(sx.Layer, sy.Layer); c != 0 {
			return c
		}
		return cmp.Compare(sx.Z, sy.Z)
	})

	var quads []GlyphQuad
	for _, i := range order {
		if layouts[i] != nil {
			quads = b.appendQuads(quads, &b.queue[i], layouts[i])
		}
	}
	return quads, nil
}

func (b *Brush) cacheGlyphs(s *Section, tl *textLayout, upload func(image.Rectangle, []byte)) error {
	size := floatToFixed(s.Size)
	f := b.fonts.Font(s.Font)
	for _, g := range tl.glyphs {
		key := GlyphKey{Font: s.Font, Glyph: g.id, Size: size}
		if _, ok := b.atlas.Lookup(key); ok {
			continue
		}
		if _, ok := b.overflow[key]; ok {
			b.skipped++
			continue
		}

		mask, err := rasterizeGlyph(f.outline, &b.buf, g.id, size)
		if err != nil {
			uirender.Logger().Debug("glyph rasterization failed", "font", f.name, "glyph", g.id, "err", err)
			mask = glyphMask{}
		}
		need := max(mask.Width, mask.Height) + b.cfg.Padding
		if !mask.Empty() && need > b.cfg.MaxAtlasSize {
			if _, seen := b.oversized[key]; !seen {
				b.oversized[key] = struct{}{}
				uirender.Logger().Warn("dropping glyph", "err", ErrGlyphTooLarge,
					"glyph", g.id, "width", mask.Width, "height", mask.Height)
			}
			mask = glyphMask{}
		}

		p, ok := b.atlas.insert(key, mask)
		if !ok {
			w, h := b.atlas.Size()
			if max(w, h) >= b.cfg.MaxAtlasSize && !b.holdsUnused() {
				b.overflow[key] = struct{}{}
				b.skipped++
				continue
			}
			edge := NextAtlasSize(max(w, h), need, b.cfg.MaxAtlasSize)
			return &TooSmallError{CurrentWidth: w, CurrentHeight: h, Width: edge, Height: edge}
		}
		if !p.Blank() && upload != nil {
			upload(p.Rect(), mask.Pix)
		}
	}
	return nil
}

// holdsUnused reports whether the atlas has glyphs the current frame does
// not use, so that rebuilding it would make room.
func (b *Brush) holdsUnused() bool {
	for key := range b.atlas.entries {
		if _, ok := b.used[key]; !ok {
			return true
		}
	}
	return false
}

func (b *Brush) appendQuads(quads []GlyphQuad, s *Section, tl *textLayout) []GlyphQuad {
	aw, ah := b.atlas.Size()
	box := s.box()
	for _, g := range tl.glyphs {
		p, ok := b.atlas.entries[GlyphKey{Font: s.Font, Glyph: g.id, Size: floatToFixed(s.Size)}]
		if !ok || p.Blank() {
			continue
		}
		r := uirender.Rect{
			X:      math32.Round(s.Position.X+g.x) + float32(p.OffsetX),
			Y:      math32.Round(s.Position.Y+g.y) + float32(p.OffsetY),
			Width:  float32(p.Width),
			Height: float32(p.Height),
		}
		if !visible(r, box) {
			continue
		}
		quads = append(quads, GlyphQuad{
			Screen: r,
			UV: [4]float32{
				float32(p.X) / float32(aw),
				float32(p.Y) / float32(ah),
				float32(p.X+p.Width) / float32(aw),
				float32(p.Y+p.Height) / float32(ah),
			},
			Color: s.Color,
			Z:     s.Z,
			Layer: s.Layer,
		})
	}
	return quads
}

// visible reports whether r overlaps box on every bounded axis. A zero
// box dimension means unbounded.
func visible(r, box uirender.Rect) bool {
	if box.Width > 0 && (r.X+r.Width <= box.X || r.X >= box.X+box.Width) {
		return false
	}
	if box.Height > 0 && (r.Y+r.Height <= box.Y || r.Y >= box.Y+box.Height) {
		return false
	}
	return true
}
