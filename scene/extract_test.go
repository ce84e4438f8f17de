package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/uirender"
)

var testViewport = uirender.NewViewport(800, 600, 1)

func quad(x, y, w, h float32) Quad {
	return Quad{Bounds: uirender.NewRect(x, y, w, h), Fill: uirender.RGB(1, 0, 0)}
}

func TestExtractEmpty(t *testing.T) {
	tests := []struct {
		name string
		tree Primitive
	}{
		{"nil", nil},
		{"none", None{}},
		{"empty group", Group{}},
		{"group of none", NewGroup(None{}, None{})},
		{"clip of none", Clip{Bounds: uirender.NewRect(0, 0, 10, 10), Content: None{}}},
		{"empty text", Text{Bounds: uirender.NewRect(0, 0, 10, 10)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Extract(tt.tree, testViewport))
		})
	}
}

func TestExtractSingleQuad(t *testing.T) {
	layers := Extract(quad(0, 0, 50, 50), testViewport)
	require.Len(t, layers, 1)
	assert.Equal(t, testViewport.Bounds(), layers[0].Bounds)
	assert.Len(t, layers[0].Quads, 1)
}

func TestExtractClipOrdering(t *testing.T) {
	a := quad(0, 0, 10, 10)
	c := quad(20, 20, 10, 10)
	b := uirender.NewRect(15, 15, 100, 100)

	layers := Extract(NewGroup(a, Clip{Bounds: b, Content: c}), testViewport)

	require.Len(t, layers, 2)
	assert.Equal(t, []Quad{a}, layers[0].Quads)
	assert.Equal(t, []Quad{c}, layers[1].Quads)
	assert.Equal(t, b.Intersect(testViewport.Bounds()), layers[1].Bounds)
}

func TestExtractNestedClipsIntersect(t *testing.T) {
	outer := uirender.NewRect(0, 0, 100, 100)
	inner := uirender.NewRect(50, 50, 100, 100)
	tree := Clip{Bounds: outer, Content: Clip{Bounds: inner, Content: quad(60, 60, 5, 5)}}

	layers := Extract(tree, testViewport)

	require.Len(t, layers, 1)
	assert.Equal(t, uirender.NewRect(50, 50, 50, 50), layers[0].Bounds)
}

func TestExtractClipAgainstViewport(t *testing.T) {
	tree := Clip{Bounds: uirender.NewRect(700, 500, 400, 400), Content: quad(750, 550, 10, 10)}
	layers := Extract(tree, testViewport)
	require.Len(t, layers, 1)
	assert.Equal(t, uirender.NewRect(700, 500, 100, 100), layers[0].Bounds)
}

func TestExtractResumesAfterClip(t *testing.T) {
	a, c, d := quad(0, 0, 1, 1), quad(1, 1, 1, 1), quad(2, 2, 1, 1)
	tree := NewGroup(a, Clip{Bounds: uirender.NewRect(0, 0, 10, 10), Content: c}, d)

	layers := Extract(tree, testViewport)

	require.Len(t, layers, 3)
	assert.Equal(t, []Quad{a}, layers[0].Quads)
	assert.Equal(t, []Quad{c}, layers[1].Quads)
	assert.Equal(t, []Quad{d}, layers[2].Quads)
	assert.Equal(t, layers[0].Bounds, layers[2].Bounds, "continuation layer keeps the outer clip")
}

func TestExtractDisjointClipSkipped(t *testing.T) {
	tree := NewGroup(
		quad(0, 0, 1, 1),
		Clip{Bounds: uirender.NewRect(900, 900, 10, 10), Content: quad(900, 900, 5, 5)},
		quad(1, 1, 1, 1),
	)
	layers := Extract(tree, testViewport)
	require.Len(t, layers, 1)
	assert.Len(t, layers[0].Quads, 2)
}

func TestExtractBucketsByKind(t *testing.T) {
	txt := Text{Bounds: uirender.NewRect(0, 0, 100, 20), Content: "Hi", Size: 16}
	img := Image{Bounds: uirender.NewRect(0, 20, 32, 32), Ref: "logo.png"}
	tree := NewGroup(quad(0, 0, 5, 5), txt, img, Image{Bounds: img.Bounds})

	layers := Extract(tree, testViewport)

	require.Len(t, layers, 1)
	assert.Equal(t, Counts{Layers: 1, Quads: 1, Text: 1, Images: 1}, Count(layers))
	assert.Equal(t, txt, layers[0].Text[0])
	assert.Equal(t, img, layers[0].Images[0])
}

func TestExtractScaledViewport(t *testing.T) {
	vp := uirender.NewViewport(1600, 1200, 2)
	tree := Clip{Bounds: uirender.NewRect(700, 500, 400, 400), Content: quad(750, 550, 10, 10)}
	layers := Extract(tree, vp)
	require.Len(t, layers, 1)
	assert.Equal(t, uirender.NewRect(700, 500, 100, 100), layers[0].Bounds)
}

func TestKindString(t *testing.T) {
	prims := []Primitive{None{}, Group{}, Quad{}, Text{}, Image{}, Clip{}}
	want := []string{"none", "group", "quad", "text", "image", "clip"}
	for i, p := range prims {
		assert.Equal(t, want[i], p.Kind().String())
	}
	assert.Equal(t, "unknown", Kind(99).String())
}
