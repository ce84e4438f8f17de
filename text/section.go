package text

import "github.com/gogpu/uirender"

// Section is one queued text run. Coordinates are in the pixel space the
// glyphs are rasterized in.
type Section struct {
	Text  string
	Font  FontID
	Size  float32
	Color uirender.Color

	// Position is the anchor point. With left/top alignment it is the
	// top-left corner of the text; center and right/bottom alignment
	// place the text around or before it.
	Position uirender.Point

	// Bounds limits the text box. Lines wrap at Bounds.Width and glyphs
	// outside the box are dropped. Zero means unbounded on that axis.
	Bounds uirender.Size

	HAlign uirender.HAlign
	VAlign uirender.VAlign

	// Z orders runs within a layer; lower values draw first.
	Z float32
	// Layer groups runs drawn under one scissor. Output is ordered by
	// Layer, then Z, then queue order.
	Layer int
}

// box returns the rectangle the section's text is aligned and clipped to.
func (s *Section) box() uirender.Rect {
	w, h := s.Bounds.Width, s.Bounds.Height
	r := uirender.Rect{X: s.Position.X, Y: s.Position.Y, Width: w, Height: h}
	switch s.HAlign {
	case uirender.AlignCenter:
		r.X -= w / 2
	case uirender.AlignRight:
		r.X -= w
	}
	switch s.VAlign {
	case uirender.AlignMiddle:
		r.Y -= h / 2
	case uirender.AlignBottom:
		r.Y -= h
	}
	return r
}
