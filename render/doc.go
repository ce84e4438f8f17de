// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns a primitive tree into GPU vertex data and draw calls.
//
// Each frame the Renderer extracts layers from the tree, batches them with
// three batchers (filled shapes, images, text) and writes the result into
// one of N frame slots. The host then records the draws into its own render
// pass:
//
//	r, err := render.New(device, fonts, images, render.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer r.Dispose()
//
//	for frame := uint64(0); ; frame++ {
//	    stats, err := r.Prepare(frame, tree, viewport)
//	    ...
//	    r.Draw(frame, pass)
//	}
//
// # Frame slots
//
// Prepare for frame k writes into slot k mod FramesInFlight. The host must
// not call Prepare for a slot while the GPU still reads it; typically it
// waits on the fence of frame k-FramesInFlight first.
//
// # Atlas exhaustion
//
// When the glyph atlas runs out of room, Prepare draws no text for that
// frame, reports FrameStats.TextDropped, and rebuilds a larger atlas at
// the start of the next Prepare.
package render
