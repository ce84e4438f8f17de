// Package recording provides an in-memory gpucore backend.
//
// A [Device] keeps buffer and texture contents in CPU memory and a [Pass]
// captures every encoder call as a typed command. Together they let the
// compositor run without a GPU: tests inspect exactly which vertex bytes
// were written and which draws were issued, and headless hosts can dump
// textures such as the glyph atlas to images.
//
// # Basic Usage
//
//	dev := recording.NewDevice()
//	r, err := render.New(dev, fonts, images, render.DefaultConfig())
//	r.Prepare(0, tree, viewport)
//
//	pass := recording.NewPass()
//	r.Draw(0, pass)
//	for _, d := range pass.Draws() {
//	    fmt.Println(d.Pipeline, d.VertexCount, d.Scissor)
//	}
//
// Commands are typed structs rather than a byte stream so they can be
// compared directly in tests.
package recording
