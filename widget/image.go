package widget

import (
	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/scene"
)

// SolveImage returns the largest box that fits the resolved constraint box
// while keeping the intrinsic aspect ratio.
//
// A zero intrinsic dimension, or a constraint box that resolves to zero on
// either axis, yields a zero size.
func SolveImage(intrinsic uirender.Size, limits Limits, width, height Length) uirender.Size {
	if intrinsic.Width <= 0 || intrinsic.Height <= 0 {
		return uirender.Size{}
	}
	box := limits.Width(width).Height(height).Resolve(intrinsic)
	if box.Width <= 0 || box.Height <= 0 {
		return uirender.Size{}
	}

	aspect := intrinsic.Width / intrinsic.Height
	boxAspect := box.Width / box.Height
	if boxAspect > aspect {
		box.Width = intrinsic.Width * box.Height / intrinsic.Height
	} else {
		box.Height = intrinsic.Height * box.Width / intrinsic.Width
	}
	return box
}

// Dimensioner reports the pixel size of an image reference, or zeros while
// it is unknown. cache.ImageCache implements it.
type Dimensioner interface {
	Dimensions(ref string) (width, height int)
}

// Image lays out an image reference at origin and returns its primitive.
// Unknown dimensions produce a zero-size image, which draws nothing.
func Image(dims Dimensioner, ref string, origin uirender.Point, limits Limits, width, height Length) scene.Image {
	w, h := dims.Dimensions(ref)
	size := SolveImage(uirender.Size{Width: float32(w), Height: float32(h)}, limits, width, height)
	return scene.Image{
		Bounds: uirender.NewRect(origin.X, origin.Y, size.Width, size.Height),
		Ref:    ref,
	}
}
