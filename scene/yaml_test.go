package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/uirender"
)

const sampleScene = `
type: group
children:
  - type: quad
    bounds: [0, 0, 50, 50]
    fill: "#ff0000"
  - type: clip
    bounds: [10, 10, 200, 40]
    child:
      type: text
      bounds: [10, 10, 200, 40]
      content: Hello
      size: 20
      color: "#336699"
      font: mono
      halign: center
      valign: middle
  - type: image
    bounds: [0, 60, 32, 32]
    ref: icons/logo.png
  - type: none
`

func TestDecode(t *testing.T) {
	tree, err := Decode([]byte(sampleScene))
	require.NoError(t, err)

	g, ok := tree.(Group)
	require.True(t, ok, "root should be a group, got %T", tree)
	require.Len(t, g.Children, 4)

	assert.Equal(t, Quad{Bounds: uirender.NewRect(0, 0, 50, 50), Fill: uirender.RGB(1, 0, 0)}, g.Children[0])

	clip, ok := g.Children[1].(Clip)
	require.True(t, ok)
	txt, ok := clip.Content.(Text)
	require.True(t, ok)
	assert.Equal(t, "Hello", txt.Content)
	assert.Equal(t, float32(20), txt.Size)
	assert.Equal(t, "mono", txt.Font)
	assert.Equal(t, uirender.AlignCenter, txt.HAlign)
	assert.Equal(t, uirender.AlignMiddle, txt.VAlign)

	assert.Equal(t, Image{Bounds: uirender.NewRect(0, 60, 32, 32), Ref: "icons/logo.png"}, g.Children[2])
	assert.Equal(t, None{}, g.Children[3])
}

func TestDecodeTextDefaults(t *testing.T) {
	tree, err := Decode([]byte("type: text\nbounds: [0, 0, 10, 10]\ncontent: x\n"))
	require.NoError(t, err)
	txt := tree.(Text)
	assert.Equal(t, float32(16), txt.Size)
	assert.Equal(t, uirender.Black, txt.Color)
	assert.Equal(t, uirender.AlignLeft, txt.HAlign)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown type", "type: circle", ErrUnknownPrimitive},
		{"short bounds", "type: quad\nbounds: [1, 2]", ErrInvalidBounds},
		{"bad color", "type: quad\nbounds: [0, 0, 1, 1]\nfill: nope", ErrInvalidColor},
		{"bad align", "type: text\nbounds: [0, 0, 1, 1]\nhalign: justify", ErrInvalidAlign},
		{"nested", "type: group\nchildren:\n  - type: blob", ErrUnknownPrimitive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.src))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeMalformedYAML(t *testing.T) {
	_, err := Decode([]byte("type: [unclosed"))
	assert.Error(t, err)
}
