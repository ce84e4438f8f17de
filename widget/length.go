package widget

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/uirender"
)

// LengthKind selects how a Length is resolved.
type LengthKind uint8

// Length kinds.
const (
	// Shrink uses the intrinsic size, clamped to the limits.
	Shrink LengthKind = iota
	// Fill takes all the space the limits allow.
	Fill
	// Fixed pins the size to a number of logical pixels.
	Fixed
)

// Length is a sizing rule for one axis.
type Length struct {
	Kind  LengthKind
	Value float32
}

// Convenience constructors.
var (
	LengthShrink = Length{Kind: Shrink}
	LengthFill   = Length{Kind: Fill}
)

// Units returns a Fixed length of n logical pixels.
func Units(n float32) Length {
	return Length{Kind: Fixed, Value: n}
}

// Limits bounds the size a widget may take.
type Limits struct {
	Min, Max uirender.Size

	fillWidth, fillHeight bool
}

// NewLimits creates limits between min and max.
func NewLimits(min, max uirender.Size) Limits {
	return Limits{Min: min, Max: max}
}

// Loose returns limits from zero up to max.
func Loose(max uirender.Size) Limits {
	return Limits{Max: max}
}

// Width narrows the limits by a width rule.
func (l Limits) Width(w Length) Limits {
	switch w.Kind {
	case Fill:
		l.fillWidth = true
	case Fixed:
		v := clamp(w.Value, l.Min.Width, l.Max.Width)
		l.Min.Width, l.Max.Width = v, v
		l.fillWidth = false
	}
	return l
}

// Height narrows the limits by a height rule.
func (l Limits) Height(h Length) Limits {
	switch h.Kind {
	case Fill:
		l.fillHeight = true
	case Fixed:
		v := clamp(h.Value, l.Min.Height, l.Max.Height)
		l.Min.Height, l.Max.Height = v, v
		l.fillHeight = false
	}
	return l
}

// Resolve picks a size within the limits for the given intrinsic size.
func (l Limits) Resolve(intrinsic uirender.Size) uirender.Size {
	s := uirender.Size{
		Width:  clamp(intrinsic.Width, l.Min.Width, l.Max.Width),
		Height: clamp(intrinsic.Height, l.Min.Height, l.Max.Height),
	}
	if l.fillWidth {
		s.Width = l.Max.Width
	}
	if l.fillHeight {
		s.Height = l.Max.Height
	}
	return s
}

func clamp(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}
