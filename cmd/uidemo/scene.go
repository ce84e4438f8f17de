package main

import (
	"fmt"
	"os"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/scene"
	"github.com/gogpu/uirender/widget"
)

// loadScene decodes a YAML scene, or builds the built-in one when path is
// empty.
func loadScene(path string, dims widget.Dimensioner, vp uirender.Viewport) (scene.Primitive, error) {
	if path == "" {
		return demoScene(dims, vp), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return scene.Decode(data)
}

// demoScene lays out a panel of controls.
func demoScene(dims widget.Dimensioner, vp uirender.Viewport) scene.Primitive {
	size := vp.LogicalSize()
	white := uirender.RGB(1, 1, 1)

	title := widget.Label(uirender.Rect{X: 20, Y: 16, Width: size.Width - 40, Height: 28}, "uirender demo", white)
	title.Size = 24

	controls := widget.Row(uirender.Point{X: 20, Y: 60}, 24, 16, []float32{200, 200, 120, 120},
		func(i int, bounds uirender.Rect) scene.Primitive {
			switch i {
			case 0:
				return widget.ProgressBar(bounds, 0, 100, 65)
			case 1:
				return widget.Slider(bounds, 0, 1, 0.3)
			case 2:
				return widget.Checkbox(bounds, true, widget.Label(bounds, "Check", uirender.Black))
			default:
				return widget.Radio(bounds, false, widget.Label(bounds, "Radio", uirender.Black))
			}
		})

	logo := widget.Image(dims, "logo.png", uirender.Point{X: 20, Y: 110},
		widget.Loose(uirender.Size{Width: 160, Height: 160}), widget.LengthFill, widget.LengthShrink)

	return scene.NewGroup(
		scene.Quad{Bounds: vp.Bounds(), Fill: uirender.RGB(0.12, 0.13, 0.16)},
		title,
		controls,
		scene.Clip{
			Bounds:  uirender.Rect{X: 20, Y: 110, Width: 160, Height: 160},
			Content: logo,
		},
	)
}
