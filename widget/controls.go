package widget

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/scene"
)

// Default control sizes in logical pixels.
const (
	ProgressBarHeight = 30
	SliderHeight      = 30
	SliderHandleSize  = 20
	RadioSize         = 28
	CheckboxSize      = 20
	TextSize          = 16
)

var (
	surface  = uirender.White
	outline  = uirender.RGBA(0.6, 0.6, 0.6, 0.5)
	accent   = uirender.RGB(0, 1, 0)
	rail     = uirender.RGB(1, 0, 0)
	progress = uirender.RGB(1, 1, 0)
)

func box(bounds uirender.Rect, fill uirender.Color) scene.Quad {
	return scene.Quad{Bounds: bounds, Fill: fill, BorderWidth: 1, BorderColor: outline}
}

// fraction maps value into [0, 1] over [lo, hi]. Spans shorter than one unit
// are treated as one unit wide.
func fraction(lo, hi, value float32) float32 {
	return clamp((value-lo)/math32.Max(hi-lo, 1), 0, 1)
}

// ProgressBar draws a background with a filled portion proportional to value.
func ProgressBar(bounds uirender.Rect, lo, hi, value float32) scene.Primitive {
	background := box(bounds, surface)
	active := bounds.Width * fraction(lo, hi, value)
	if active <= 0 {
		return background
	}
	bar := bounds
	bar.Width = active
	return scene.NewGroup(background, box(bar, progress))
}

// Slider draws a two-line rail with a square handle positioned by value.
func Slider(bounds uirender.Rect, lo, hi, value float32) scene.Primitive {
	railY := bounds.Y + math32.Round(bounds.Height/2)
	top := box(uirender.NewRect(bounds.X, railY, bounds.Width, 2), rail)
	bottom := box(uirender.NewRect(bounds.X, railY+2, bounds.Width, 2), rail)

	offset := (bounds.Width - SliderHandleSize) * fraction(lo, hi, value)
	handle := box(uirender.NewRect(
		bounds.X+math32.Round(offset),
		railY-SliderHandleSize/2,
		SliderHandleSize,
		SliderHandleSize,
	), accent)
	return scene.NewGroup(top, bottom, handle)
}

// Radio draws a radio button with an optional selection mark and a label.
func Radio(bounds uirender.Rect, selected bool, label scene.Primitive) scene.Primitive {
	return toggle(bounds, RadioSize, selected, label)
}

// Checkbox draws a checkbox with an optional check mark and a label.
func Checkbox(bounds uirender.Rect, checked bool, label scene.Primitive) scene.Primitive {
	return toggle(bounds, CheckboxSize, checked, label)
}

func toggle(bounds uirender.Rect, size float32, on bool, label scene.Primitive) scene.Primitive {
	var mark scene.Primitive = scene.None{}
	if on {
		mark = box(uirender.NewRect(
			bounds.X+size/4,
			bounds.Y+size/4,
			bounds.Width-size/2,
			bounds.Height-size/2,
		), accent)
	}
	if label == nil {
		label = scene.None{}
	}
	return scene.NewGroup(box(bounds, surface), mark, label)
}

// Label draws a left-aligned text run in the default font.
func Label(bounds uirender.Rect, content string, color uirender.Color) scene.Text {
	return scene.Text{
		Bounds:  bounds,
		Content: content,
		Size:    TextSize,
		Color:   color,
		VAlign:  uirender.AlignMiddle,
	}
}

// Row lays children out left to right with spacing between them. Each
// child is given its width and the row's full height.
func Row(origin uirender.Point, height, spacing float32, widths []float32, build func(i int, bounds uirender.Rect) scene.Primitive) scene.Group {
	g := scene.Group{Children: make([]scene.Primitive, 0, len(widths))}
	x := origin.X
	for i, w := range widths {
		g.Children = append(g.Children, build(i, uirender.NewRect(x, origin.Y, w, height)))
		x += w + spacing
	}
	return g
}

// Space draws nothing.
func Space() scene.Primitive {
	return scene.None{}
}
