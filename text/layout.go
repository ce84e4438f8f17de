package text

import (
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/cache"
)

// positionedGlyph is a glyph pen position relative to the section anchor.
// Y is the baseline.
type positionedGlyph struct {
	id   uint16
	x, y float32
}

// textLayout is the shaped, wrapped and aligned form of a section.
// It is immutable once built and shared through the layout cache.
type textLayout struct {
	glyphs []positionedGlyph
	width  float32
	height float32
	lines  int
}

type layoutKey struct {
	text   string
	font   FontID
	size   fixed.Int26_6
	wrap   float32
	halign uirender.HAlign
	valign uirender.VAlign
}

func hashLayoutKey(k layoutKey) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.text))
	_, _ = h.Write([]byte{byte(k.font), byte(k.size), byte(k.size >> 8), byte(k.halign), byte(k.valign)})
	return h.Sum64()
}

// layouter shapes sections with HarfBuzz. It is not safe for concurrent
// use; the Brush that owns it serializes calls.
type layouter struct {
	fonts  *Registry
	shaper shaping.HarfbuzzShaper
	faces  map[FontID]*font.Face
	buf    sfnt.Buffer
	cache  *cache.ShardedCache[layoutKey, *textLayout]
}

func newLayouter(fonts *Registry, cacheSize int) *layouter {
	perShard := cacheSize / cache.DefaultShardCount
	if perShard < 1 {
		perShard = 1
	}
	return &layouter{
		fonts: fonts,
		faces: make(map[FontID]*font.Face),
		cache: cache.NewSharded[layoutKey, *textLayout](perShard, hashLayoutKey),
	}
}

func (l *layouter) face(id FontID) *font.Face {
	if f, ok := l.faces[id]; ok {
		return f
	}
	f := font.NewFace(l.fonts.Font(id).shaping)
	l.faces[id] = f
	return f
}

// layout returns the cached layout for s, building it on a miss.
func (l *layouter) layout(s *Section) *textLayout {
	key := layoutKey{
		text:   s.Text,
		font:   s.Font,
		size:   floatToFixed(s.Size),
		wrap:   s.Bounds.Width,
		halign: s.HAlign,
		valign: s.VAlign,
	}
	if tl, ok := l.cache.Get(key); ok {
		return tl
	}
	tl := l.build(key)
	l.cache.Set(key, tl)
	return tl
}

func (l *layouter) build(key layoutKey) *textLayout {
	f := l.fonts.Font(key.font)
	ascent, lineHeight := l.metrics(f, key.size)

	var (
		lines  [][]shaping.Glyph
		widths []fixed.Int26_6
	)
	for _, para := range strings.Split(key.text, "\n") {
		runes := []rune(para)
		if len(runes) == 0 {
			lines = append(lines, nil)
			widths = append(widths, 0)
			continue
		}
		dir := paragraphDirection(para)
		out := l.shaper.Shape(shaping.Input{
			Text:      runes,
			RunStart:  0,
			RunEnd:    len(runes),
			Direction: dir,
			Face:      l.face(key.font),
			Size:      key.size,
			Script:    detectScript(runes),
			Language:  language.NewLanguage("en"),
		})
		var wrapped [][]shaping.Glyph
		if dir == di.DirectionLTR && key.wrap > 0 {
			wrapped = wrapGlyphs(out.Glyphs, runes, floatToFixed(key.wrap))
		} else {
			wrapped = [][]shaping.Glyph{out.Glyphs}
		}
		for _, line := range wrapped {
			lines = append(lines, line)
			widths = append(widths, lineWidth(line, runes))
		}
	}

	tl := &textLayout{lines: len(lines)}
	tl.height = float32(len(lines)) * lineHeight
	var dy float32
	switch key.valign {
	case uirender.AlignMiddle:
		dy = -tl.height / 2
	case uirender.AlignBottom:
		dy = -tl.height
	}

	for i, line := range lines {
		w := fixedToFloat(widths[i])
		if w > tl.width {
			tl.width = w
		}
		var dx float32
		switch key.halign {
		case uirender.AlignCenter:
			dx = -w / 2
		case uirender.AlignRight:
			dx = -w
		}
		baseline := dy + ascent + float32(i)*lineHeight
		var pen fixed.Int26_6
		for _, g := range line {
			tl.glyphs = append(tl.glyphs, positionedGlyph{
				id: uint16(g.GlyphID), //nolint:gosec // glyph ids fit in 16 bits
				x:  dx + fixedToFloat(pen+g.XOffset),
				y:  baseline - fixedToFloat(g.YOffset),
			})
			pen += g.Advance
		}
	}
	return tl
}

// metrics returns the ascent and line height for f at size.
func (l *layouter) metrics(f *Font, size fixed.Int26_6) (ascent, lineHeight float32) {
	m, err := f.outline.Metrics(&l.buf, size, xfont.HintingNone)
	if err != nil {
		s := fixedToFloat(size)
		return s * 0.8, s * 1.2
	}
	ascent = fixedToFloat(m.Ascent)
	lineHeight = fixedToFloat(m.Height)
	if lineHeight <= 0 {
		lineHeight = fixedToFloat(m.Ascent + m.Descent)
	}
	return ascent, lineHeight
}

// wrapGlyphs greedily breaks a shaped LTR line at spaces so that no line
// is wider than maxWidth. The run of spaces at a break belongs to neither
// line. A single word wider than maxWidth stays on its own line.
func wrapGlyphs(glyphs []shaping.Glyph, runes []rune, maxWidth fixed.Int26_6) [][]shaping.Glyph {
	var (
		lines     [][]shaping.Glyph
		start     int
		width     fixed.Int26_6
		lastSpace = -1
		runStart  = -1
		inSpace   bool
	)
	for i, g := range glyphs {
		space := isSpaceGlyph(g, runes)
		if space {
			if !inSpace {
				runStart = i
			}
			lastSpace = i
		} else if width+g.Advance > maxWidth && lastSpace > start && runStart > start {
			lines = append(lines, glyphs[start:runStart])
			start = lastSpace + 1
			width = 0
			for _, prev := range glyphs[start:i] {
				width += prev.Advance
			}
			lastSpace, runStart = -1, -1
		}
		inSpace = space
		width += g.Advance
	}
	return append(lines, glyphs[start:])
}

// lineWidth sums advances, ignoring trailing spaces.
func lineWidth(line []shaping.Glyph, runes []rune) fixed.Int26_6 {
	end := len(line)
	for end > 0 && isSpaceGlyph(line[end-1], runes) {
		end--
	}
	var w fixed.Int26_6
	for _, g := range line[:end] {
		w += g.Advance
	}
	return w
}

func isSpaceGlyph(g shaping.Glyph, runes []rune) bool {
	i := g.TextIndex()
	return i >= 0 && i < len(runes) && unicode.IsSpace(runes[i])
}

// paragraphDirection returns RTL when the paragraph's first visual run is
// right-to-left.
func paragraphDirection(s string) di.Direction {
	p := bidi.Paragraph{}
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return di.DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	run := ordering.Run(0)
	if ordering.NumRuns() == 1 && run.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
