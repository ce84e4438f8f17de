// Package text lays out, rasterizes and atlases text for the compositor.
//
// The pipeline per frame:
//
//   - Registry: logical font names to FontID, with a default font at id 0
//   - Section: one queued text run (string, font, size, anchor, bounds, alignment)
//   - Brush: shapes queued sections, rasterizes glyphs that are not yet in
//     the atlas, packs and uploads them, then emits one GlyphQuad per
//     visible glyph
//   - Atlas: a single coverage texture with a shelf packer. When a glyph
//     does not fit, Process returns a *TooSmallError carrying the next size
//     and the caller rebuilds the atlas before the next frame.
//
// # Example usage
//
//	fonts, err := text.NewRegistry("default", goregular.TTF)
//	brush := text.NewBrush(fonts, text.DefaultBrushConfig())
//
//	brush.Queue(text.Section{Text: "Hi", Size: 16, Color: uirender.White})
//	quads, err := brush.Process(func(r image.Rectangle, pix []byte) {
//	    device.WriteTexture(atlasTexture, region(r), pix)
//	})
//	var small *text.TooSmallError
//	if errors.As(err, &small) {
//	    brush.Rebuild(small.Width, small.Height)
//	}
//
// Shaping uses go-text/typesetting (HarfBuzz), bidi direction detection
// uses golang.org/x/text, and glyph coverage is rasterized from
// golang.org/x/image/font/sfnt outlines.
package text
