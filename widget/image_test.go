package widget

import (
	"math"
	"testing"

	"github.com/gogpu/uirender"
)

func TestSolveImageAspect(t *testing.T) {
	tests := []struct {
		name      string
		intrinsic uirender.Size
		max       uirender.Size
		want      uirender.Size
	}{
		{"fits", uirender.Size{Width: 100, Height: 50}, uirender.Size{Width: 400, Height: 400}, uirender.Size{Width: 100, Height: 50}},
		{"wide image narrow box", uirender.Size{Width: 200, Height: 100}, uirender.Size{Width: 100, Height: 100}, uirender.Size{Width: 100, Height: 50}},
		{"tall image short box", uirender.Size{Width: 100, Height: 200}, uirender.Size{Width: 100, Height: 100}, uirender.Size{Width: 50, Height: 100}},
		{"square", uirender.Size{Width: 64, Height: 64}, uirender.Size{Width: 32, Height: 48}, uirender.Size{Width: 32, Height: 32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SolveImage(tt.intrinsic, Loose(tt.max), LengthShrink, LengthShrink)
			if got != tt.want {
				t.Errorf("SolveImage() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSolveImageFill(t *testing.T) {
	got := SolveImage(uirender.Size{Width: 100, Height: 50}, Loose(uirender.Size{Width: 400, Height: 300}), LengthFill, LengthFill)
	want := uirender.Size{Width: 400, Height: 200}
	if got != want {
		t.Errorf("SolveImage(fill) = %+v, want %+v", got, want)
	}
}

func TestSolveImageFixed(t *testing.T) {
	got := SolveImage(uirender.Size{Width: 100, Height: 50}, Loose(uirender.Size{Width: 400, Height: 300}), Units(60), LengthShrink)
	want := uirender.Size{Width: 60, Height: 30}
	if got != want {
		t.Errorf("SolveImage(units) = %+v, want %+v", got, want)
	}
}

func TestSolveImageDegenerate(t *testing.T) {
	limits := Loose(uirender.Size{Width: 100, Height: 100})
	for _, in := range []uirender.Size{{}, {Width: 10}, {Height: 10}, {Width: -1, Height: 5}} {
		if got := SolveImage(in, limits, LengthFill, LengthFill); got != (uirender.Size{}) {
			t.Errorf("SolveImage(%+v) = %+v, want zero", in, got)
		}
	}
	if got := SolveImage(uirender.Size{Width: 10, Height: 10}, Loose(uirender.Size{Width: 100}), LengthShrink, LengthShrink); got != (uirender.Size{}) {
		t.Errorf("zero-height constraint = %+v, want zero", got)
	}
}

func TestSolveImageProperty(t *testing.T) {
	const eps = 1e-3
	for iw := float32(1); iw <= 512; iw *= 3 {
		for ih := float32(1); ih <= 512; ih *= 5 {
			for _, c := range []uirender.Size{{Width: 7, Height: 13}, {Width: 640, Height: 480}, {Width: 33, Height: 1000}} {
				got := SolveImage(uirender.Size{Width: iw, Height: ih}, Loose(c), LengthFill, LengthFill)
				if got.Width > c.Width+eps || got.Height > c.Height+eps {
					t.Fatalf("intrinsic %vx%v in %+v: %+v exceeds constraint", iw, ih, c, got)
				}
				ratio := float64(got.Width/got.Height) / float64(iw/ih)
				if math.Abs(ratio-1) > eps {
					t.Fatalf("intrinsic %vx%v in %+v: aspect drifted to %+v", iw, ih, c, got)
				}
			}
		}
	}
}

type fixedDims map[string][2]int

func (d fixedDims) Dimensions(ref string) (int, int) {
	v := d[ref]
	return v[0], v[1]
}

func TestImageLayout(t *testing.T) {
	dims := fixedDims{"logo.png": {200, 100}}
	limits := Loose(uirender.Size{Width: 100, Height: 100})

	img := Image(dims, "logo.png", uirender.Pt(5, 5), limits, LengthFill, LengthFill)
	if img.Bounds != uirender.NewRect(5, 5, 100, 50) {
		t.Errorf("bounds = %+v", img.Bounds)
	}

	pending := Image(dims, "pending.png", uirender.Pt(5, 5), limits, LengthFill, LengthFill)
	if !pending.Bounds.Empty() {
		t.Errorf("pending image should be zero-size, got %+v", pending.Bounds)
	}
}
