package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidFont is returned when font data cannot be parsed.
	ErrInvalidFont = errors.New("text: invalid font data")

	// ErrEmptyFontName is returned when registering a font without a name.
	ErrEmptyFontName = errors.New("text: empty font name")

	// ErrFontNotFound is returned when a font name is not registered.
	ErrFontNotFound = errors.New("text: font not found")

	// ErrGlyphTooLarge is logged when a glyph cannot fit even the largest
	// allowed atlas. Such glyphs are dropped.
	ErrGlyphTooLarge = errors.New("text: glyph larger than maximum atlas")
)

// TooSmallError reports that the glyph atlas could not fit this frame's
// glyphs. Width and Height are the size the atlas should be rebuilt to.
// It is recoverable: the frame draws no text and the next frame uses the
// rebuilt atlas.
type TooSmallError struct {
	CurrentWidth, CurrentHeight int
	Width, Height               int
}

func (e *TooSmallError) Error() string {
	return fmt.Sprintf("text: glyph atlas too small (%dx%d), suggested %dx%d",
		e.CurrentWidth, e.CurrentHeight, e.Width, e.Height)
}
