package uirender

// HAlign is the horizontal alignment of a text run within its bounds.
type HAlign uint8

// Horizontal alignments.
const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// String returns a human-readable name for the alignment.
func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// VAlign is the vertical alignment of a text run within its bounds.
type VAlign uint8

// Vertical alignments.
const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// String returns a human-readable name for the alignment.
func (a VAlign) String() string {
	switch a {
	case AlignTop:
		return "top"
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Anchor returns the point a text run with the given alignments is
// positioned from: the matching edge or center of bounds on each axis.
func Anchor(bounds Rect, h HAlign, v VAlign) Point {
	p := Point{X: bounds.X, Y: bounds.Y}
	switch h {
	case AlignCenter:
		p.X = bounds.X + bounds.Width/2
	case AlignRight:
		p.X = bounds.X + bounds.Width
	}
	switch v {
	case AlignMiddle:
		p.Y = bounds.Y + bounds.Height/2
	case AlignBottom:
		p.Y = bounds.Y + bounds.Height
	}
	return p
}
