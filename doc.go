// Package uirender turns per-frame UI primitive trees into batched GPU
// vertex data.
//
// # Overview
//
// A host toolkit produces a tree of primitives (quads, text runs, images,
// groups and clips) once per frame. The compositor flattens the tree into
// clip-scoped layers, expands quads into triangles, lays out and rasterizes
// text into a shared glyph atlas, resolves images through a cache, and
// writes everything into one of N in-flight buffer slots.
//
// # Packages
//
//   - scene: the Primitive variant set and the layer extractor
//   - text: fonts, shaping, the glyph atlas and the glyph brush
//   - cache: the image cache and a sharded memoization cache
//   - widget: the image layout solver and primitive builders
//   - render: batchers, frame slots and the Renderer
//   - gpucore: backend-neutral device interfaces
//   - backend/native: the wgpu HAL device
//   - recording: an in-memory device for tests and headless runs
//   - assets: a file-backed image loader for the image cache
//
// # Quick Start
//
//	dev, err := native.NewFromProvider(provider, provider.SurfaceFormat())
//	fonts, err := text.NewRegistry("default", fontBytes)
//	images := cache.NewImageCache(assets.NewFileLoader(dev, "assets"))
//	r, err := render.New(dev, fonts, images, render.DefaultConfig())
//
//	// per frame, inside the host's render pass
//	stats, err := r.Prepare(frameIndex, tree, viewport)
//	r.Draw(frameIndex, dev.WrapPass(halPass))
//
// # Coordinates
//
// Primitive bounds are logical pixels. The Viewport carries the physical
// framebuffer size and the scale factor between the two.
package uirender
