package uirender

import "github.com/chewxy/math32"

// Viewport describes the framebuffer a frame renders into.
type Viewport struct {
	PhysicalWidth  uint32
	PhysicalHeight uint32
	ScaleFactor    float32
}

// NewViewport creates a viewport. A non-positive scale factor is treated as 1.
func NewViewport(width, height uint32, scale float32) Viewport {
	if scale <= 0 {
		scale = 1
	}
	return Viewport{PhysicalWidth: width, PhysicalHeight: height, ScaleFactor: scale}
}

// Scale returns the effective scale factor.
func (v Viewport) Scale() float32 {
	if v.ScaleFactor <= 0 {
		return 1
	}
	return v.ScaleFactor
}

// LogicalSize returns the framebuffer size in logical pixels.
func (v Viewport) LogicalSize() Size {
	s := v.Scale()
	return Size{
		Width:  float32(v.PhysicalWidth) / s,
		Height: float32(v.PhysicalHeight) / s,
	}
}

// Bounds returns the logical rectangle covering the whole framebuffer.
func (v Viewport) Bounds() Rect {
	ls := v.LogicalSize()
	return Rect{Width: ls.Width, Height: ls.Height}
}

// Projection returns a column-major orthographic matrix that maps logical
// coordinates, origin top-left and y down, to clip space.
func (v Viewport) Projection() [16]float32 {
	ls := v.LogicalSize()
	w := math32.Max(ls.Width, 1)
	h := math32.Max(ls.Height, 1)
	return [16]float32{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

// DeviceRect converts a logical rectangle to whole physical pixels, rounded
// outward and clamped to the framebuffer.
func (v Viewport) DeviceRect(r Rect) (x, y, w, h uint32) {
	d := r.Scale(v.Scale()).Snap()
	x0 := clampPixel(d.X, v.PhysicalWidth)
	y0 := clampPixel(d.Y, v.PhysicalHeight)
	x1 := clampPixel(d.X+d.Width, v.PhysicalWidth)
	y1 := clampPixel(d.Y+d.Height, v.PhysicalHeight)
	return x0, y0, x1 - x0, y1 - y0
}

func clampPixel(v float32, limit uint32) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= float32(limit) {
		return limit
	}
	return uint32(v)
}
