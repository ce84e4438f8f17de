// Package scene defines the per-frame primitive tree a UI toolkit hands to
// the compositor and flattens it into clip-scoped draw layers.
//
// Primitive is a closed set of value types: None, Group, Quad, Text, Image
// and Clip. Trees are immutable once built and are owned by the frame that
// produced them.
package scene

import "github.com/gogpu/uirender"

// Kind identifies a primitive variant.
type Kind uint8

// Primitive kinds.
const (
	KindNone Kind = iota
	KindGroup
	KindQuad
	KindText
	KindImage
	KindClip
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindGroup:
		return "group"
	case KindQuad:
		return "quad"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindClip:
		return "clip"
	default:
		return "unknown"
	}
}

// Primitive is one node of a frame's drawing tree.
// The method set is unexported so only this package's variants satisfy it.
type Primitive interface {
	Kind() Kind
	isPrimitive()
}

// None draws nothing.
type None struct{}

// Group draws its children in order.
type Group struct {
	Children []Primitive
}

// Quad is a filled rectangle.
//
// Border fields are carried for the toolkit's benefit; the filled-shape
// pipeline draws the fill only.
type Quad struct {
	Bounds       uirender.Rect
	Fill         uirender.Color
	BorderWidth  float32
	BorderColor  uirender.Color
	BorderRadius float32
}

// Text is a run of text laid out inside Bounds.
type Text struct {
	Bounds  uirender.Rect
	Content string
	Size    float32
	Color   uirender.Color
	// Font is a logical font name. Empty or unregistered names use the default font.
	Font   string
	HAlign uirender.HAlign
	VAlign uirender.VAlign
}

// Image draws the texture behind Ref stretched to Bounds.
type Image struct {
	Bounds uirender.Rect
	Ref    string
}

// Clip restricts Content to Bounds.
type Clip struct {
	Bounds  uirender.Rect
	Content Primitive
}

func (None) Kind() Kind  { return KindNone }
func (Group) Kind() Kind { return KindGroup }
func (Quad) Kind() Kind  { return KindQuad }
func (Text) Kind() Kind  { return KindText }
func (Image) Kind() Kind { return KindImage }
func (Clip) Kind() Kind  { return KindClip }

func (None) isPrimitive()  {}
func (Group) isPrimitive() {}
func (Quad) isPrimitive()  {}
func (Text) isPrimitive()  {}
func (Image) isPrimitive() {}
func (Clip) isPrimitive()  {}

// NewGroup is shorthand for a Group of the given children.
func NewGroup(children ...Primitive) Group {
	return Group{Children: children}
}
