package scene

import "github.com/gogpu/uirender"

// Layer is one clip-scoped drawing unit. Its buckets keep the order in
// which primitives were met during traversal.
type Layer struct {
	// Bounds is the clip rectangle in logical pixels.
	Bounds uirender.Rect

	Quads  []Quad
	Text   []Text
	Images []Image
}

// Empty reports whether the layer holds no geometry.
func (l *Layer) Empty() bool {
	return len(l.Quads) == 0 && len(l.Text) == 0 && len(l.Images) == 0
}

// Counts summarizes the number of primitives in a set of layers.
type Counts struct {
	Layers int
	Quads  int
	Text   int
	Images int
}

// Count totals the buckets of layers.
func Count(layers []Layer) Counts {
	c := Counts{Layers: len(layers)}
	for i := range layers {
		c.Quads += len(layers[i].Quads)
		c.Text += len(layers[i].Text)
		c.Images += len(layers[i].Images)
	}
	return c
}
