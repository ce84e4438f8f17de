// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/cache"
	"github.com/gogpu/uirender/gpucore"
	"github.com/gogpu/uirender/scene"
	"github.com/gogpu/uirender/text"
)

// FrameStats summarizes one Prepare.
type FrameStats struct {
	Slot   int
	Layers int

	Quads  int
	Glyphs int
	Images int

	// ImagesSkipped counts image draws with a pending, failed or unknown
	// reference.
	ImagesSkipped int
	// TextDropped is set when the glyph atlas was too small; the frame
	// carries no text and the atlas is rebuilt on the next Prepare.
	TextDropped bool
	// GlyphsSkipped counts glyphs left out because the atlas was full at
	// its maximum size.
	GlyphsSkipped int

	AtlasGeneration uint32
	AtlasRebuilt    bool
}

type retiredTexture struct {
	id    gpucore.TextureID
	frame uint64
}

// Renderer prepares and draws frames. It is used from the render thread
// only.
type Renderer struct {
	device gpucore.Device
	fonts  *text.Registry
	images *cache.ImageCache
	cfg    Config

	brush   *text.Brush
	slots   *FrameSlots
	atlas   gpucore.TextureID
	rebuild int
	retired []retiredTexture

	quads  QuadBatcher
	imgs   ImageBatcher
	glyphs TextBatcher
	buf    []byte

	disposed bool
}

// New creates a renderer. images may be nil, in which case image
// primitives are skipped. Failure to allocate the atlas texture or the
// frame slots is returned; nothing can be drawn without them.
func New(device gpucore.Device, fonts *text.Registry, images *cache.ImageCache, cfg Config) (*Renderer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if fonts == nil {
		return nil, ErrNilFonts
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		device: device,
		fonts:  fonts,
		images: images,
		cfg:    cfg,
		brush:  text.NewBrush(fonts, cfg.brushConfig()),
	}

	atlas, err := device.CreateTexture("glyph atlas", cfg.AtlasSize, cfg.AtlasSize, gpucore.TextureFormatR8Unorm)
	if err != nil {
		return nil, fmt.Errorf("render: create glyph atlas: %w", err)
	}
	r.atlas = atlas

	slots, err := NewFrameSlots(device, cfg.FramesInFlight, cfg.InitialVertexCapacity)
	if err != nil {
		device.DestroyTexture(atlas)
		return nil, err
	}
	r.slots = slots

	uirender.Logger().Debug("renderer created",
		"frames_in_flight", cfg.FramesInFlight, "atlas", cfg.AtlasSize)
	return r, nil
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config { return r.cfg }

// AtlasTexture returns the current glyph atlas texture.
func (r *Renderer) AtlasTexture() gpucore.TextureID { return r.atlas }

// Atlas returns the glyph atlas packing state.
func (r *Renderer) Atlas() *text.Atlas { return r.brush.Atlas() }

// TextLayoutStats returns the counters of the shaped text layout cache.
func (r *Renderer) TextLayoutStats() cache.Stats { return r.brush.LayoutStats() }

// Slot returns the frame slot used by frameIndex.
func (r *Renderer) Slot(frameIndex uint64) *FrameSlot { return r.slots.Slot(frameIndex) }

// Prepare extracts, batches and uploads the tree into the slot of
// frameIndex. Per-element problems (missing fonts, pending images, a full
// atlas) degrade the frame and are reported in FrameStats. An error means
// the frame was dropped: the slot draws nothing.
func (r *Renderer) Prepare(frameIndex uint64, tree scene.Primitive, vp uirender.Viewport) (FrameStats, error) {
	if r.disposed {
		return FrameStats{}, ErrDisposed
	}
	slot := r.slots.Slot(frameIndex)
	slot.invalidate()
	stats := FrameStats{Slot: slot.Index()}

	r.releaseRetired(frameIndex)
	if r.rebuild > 0 {
		stats.AtlasRebuilt = r.rebuildAtlas(frameIndex)
	}
	if r.images != nil {
		if n := r.images.Maintain(); n > 0 {
			uirender.Logger().Debug("images resolved", "count", n)
		}
	}

	layers := scene.Extract(tree, vp)
	infos := r.batch(layers, vp, &stats)

	quads, err := r.brush.Process(r.uploadGlyph)
	var small *text.TooSmallError
	switch {
	case errors.As(err, &small):
		uirender.Logger().Warn("glyph atlas too small, dropping text for this frame",
			"current", small.CurrentWidth, "suggested", small.Width)
		r.rebuild = small.Width
		stats.TextDropped = true
	case err != nil:
		uirender.Logger().Warn("text processing failed", "err", err)
		stats.TextDropped = true
	}
	r.batchText(quads, vp.Scale(), infos)

	stats.Layers = len(infos)
	stats.Quads = r.quads.Len() / 6
	stats.Glyphs = r.glyphs.Len() / 6
	stats.GlyphsSkipped = r.brush.Skipped()
	stats.Images = r.imgs.Len()
	stats.AtlasGeneration = r.brush.Atlas().Generation()

	if err := r.upload(slot, vp); err != nil {
		return stats, err
	}
	slot.layers = append(slot.layers, infos...)
	slot.batches = append(slot.batches, r.imgs.Batches()...)
	slot.atlas = r.atlas
	slot.prepared = true
	return stats, nil
}

// batch fills the quad and image batchers and queues text sections,
// returning per-layer ranges with the text range still empty.
func (r *Renderer) batch(layers []scene.Layer, vp uirender.Viewport, stats *FrameStats) []LayerInfo {
	r.quads.Reset()
	r.imgs.Reset()
	r.glyphs.Reset()

	scale := vp.Scale()
	infos := make([]LayerInfo, len(layers))
	for li := range layers {
		layer := &layers[li]
		info := &infos[li]
		info.Bounds = layer.Bounds
		x, y, w, h := vp.DeviceRect(layer.Bounds)
		info.Scissor = gpucore.Region{X: x, Y: y, Width: w, Height: h}

		info.Quads.Start = uint32(r.quads.Len()) //nolint:gosec // vertex counts fit
		for _, q := range layer.Quads {
			r.quads.Add(q.Bounds, q.Fill)
		}
		info.Quads.End = uint32(r.quads.Len()) //nolint:gosec // vertex counts fit

		r.imgs.Split()
		info.Images.Start = uint32(len(r.imgs.Batches())) //nolint:gosec // batch counts fit
		for _, img := range layer.Images {
			tex, ok := r.resolveImage(img.Ref)
			if !ok || img.Bounds.Empty() {
				stats.ImagesSkipped++
				continue
			}
			r.imgs.Accumulate(img.Bounds, tex)
		}
		info.Images.End = uint32(len(r.imgs.Batches())) //nolint:gosec // batch counts fit

		for i, t := range layer.Text {
			anchor := uirender.Anchor(t.Bounds, t.HAlign, t.VAlign)
			r.brush.Queue(text.Section{
				Text:     t.Content,
				Font:     r.fonts.Resolve(t.Font),
				Size:     t.Size * scale,
				Color:    t.Color,
				Position: anchor.Mul(scale),
				Bounds:   uirender.Size{Width: t.Bounds.Width * scale, Height: t.Bounds.Height * scale},
				HAlign:   t.HAlign,
				VAlign:   t.VAlign,
				Z:        float32(i),
				Layer:    li,
			})
		}
	}
	return infos
}

func (r *Renderer) resolveImage(ref string) (gpucore.TextureID, bool) {
	if r.images == nil {
		return gpucore.InvalidID, false
	}
	tex, ok := r.images.Resolve(ref).Texture()
	if !ok {
		return gpucore.InvalidID, false
	}
	return tex.ID, true
}

// batchText converts glyph quads to vertices and fills each layer's text
// range. Quads arrive ordered by layer.
func (r *Renderer) batchText(quads []text.GlyphQuad, scale float32, infos []LayerInfo) {
	for i := range infos {
		infos[i].Text = Range{}
	}
	for _, q := range quads {
		if q.Layer < 0 || q.Layer >= len(infos) {
			continue
		}
		info := &infos[q.Layer]
		if info.Text.Len() == 0 {
			info.Text.Start = uint32(r.glyphs.Len()) //nolint:gosec // vertex counts fit
		}
		r.glyphs.Add(q, scale)
		info.Text.End = uint32(r.glyphs.Len()) //nolint:gosec // vertex counts fit
	}
}

// upload writes the projection and the three vertex streams into slot.
func (r *Renderer) upload(slot *FrameSlot, vp uirender.Viewport) error {
	if err := slot.uniform.write(r.device, projectionBytes(vp.Projection())); err != nil {
		return err
	}
	r.buf = r.quads.AppendBytes(r.buf[:0])
	if err := slot.quads.write(r.device, r.buf); err != nil {
		return err
	}
	r.buf = r.glyphs.AppendBytes(r.buf[:0])
	if err := slot.text.write(r.device, r.buf); err != nil {
		return err
	}
	r.buf = r.imgs.AppendBytes(r.buf[:0])
	return slot.images.write(r.device, r.buf)
}

func (r *Renderer) uploadGlyph(rect image.Rectangle, pix []byte) {
	r.device.WriteTexture(r.atlas, gpucore.Region{
		X:      uint32(rect.Min.X), //nolint:gosec // atlas coordinates are non-negative
		Y:      uint32(rect.Min.Y), //nolint:gosec // atlas coordinates are non-negative
		Width:  uint32(rect.Dx()),  //nolint:gosec // atlas coordinates are non-negative
		Height: uint32(rect.Dy()),  //nolint:gosec // atlas coordinates are non-negative
	}, pix)
}

// rebuildAtlas swaps in a texture of the pending size. The old texture is
// destroyed once no in-flight slot can reference it. On failure the old
// atlas stays and the rebuild is retried next frame.
func (r *Renderer) rebuildAtlas(frameIndex uint64) bool {
	size := r.rebuild
	tex, err := r.device.CreateTexture("glyph atlas", size, size, gpucore.TextureFormatR8Unorm)
	if err != nil {
		uirender.Logger().Warn("glyph atlas rebuild failed", "size", size, "err", err)
		return false
	}
	r.retired = append(r.retired, retiredTexture{id: r.atlas, frame: frameIndex})
	r.atlas = tex
	r.rebuild = 0
	r.brush.Rebuild(size, size)
	return true
}

func (r *Renderer) releaseRetired(frameIndex uint64) {
	n := uint64(r.slots.Len()) //nolint:gosec // slot count is small
	kept := r.retired[:0]
	for _, t := range r.retired {
		if frameIndex >= t.frame+n {
			r.device.DestroyTexture(t.id)
			continue
		}
		kept = append(kept, t)
	}
	r.retired = kept
}

// Draw records the draws of the slot prepared for frameIndex into enc:
// for each layer in order, scissored to the layer, the quads, then the
// images, then the text.
func (r *Renderer) Draw(frameIndex uint64, enc gpucore.PassEncoder) {
	if r.disposed {
		return
	}
	slot := r.slots.Slot(frameIndex)
	if !slot.prepared {
		return
	}
	for _, info := range slot.layers {
		sc := info.Scissor
		if sc.Width == 0 || sc.Height == 0 {
			continue
		}
		if info.Quads.Len() == 0 && info.Images.Len() == 0 && info.Text.Len() == 0 {
			continue
		}
		enc.SetScissorRect(sc.X, sc.Y, sc.Width, sc.Height)

		if n := info.Quads.Len(); n > 0 {
			enc.SetPipeline(gpucore.PipelineTriangle)
			enc.SetBindings(slot.uniform.id, gpucore.InvalidID)
			enc.SetVertexBuffer(0, slot.quads.id, 0)
			enc.Draw(n, 1, info.Quads.Start, 0)
		}
		if info.Images.Len() > 0 {
			enc.SetPipeline(gpucore.PipelineImage)
			enc.SetVertexBuffer(0, slot.images.id, 0)
			for _, b := range slot.batches[info.Images.Start:info.Images.End] {
				enc.SetBindings(slot.uniform.id, b.Texture)
				enc.Draw(6, b.Count, 0, b.First)
			}
		}
		if n := info.Text.Len(); n > 0 {
			enc.SetPipeline(gpucore.PipelineText)
			enc.SetBindings(slot.uniform.id, slot.atlas)
			enc.SetVertexBuffer(0, slot.text.id, 0)
			enc.Draw(n, 1, info.Text.Start, 0)
		}
	}
}

// Dispose releases every GPU resource the renderer owns. Later calls are
// no-ops.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.slots.Dispose()
	r.device.DestroyTexture(r.atlas)
	for _, t := range r.retired {
		r.device.DestroyTexture(t.id)
	}
	r.retired = nil
	r.atlas = gpucore.InvalidID
	uirender.Logger().Debug("renderer disposed")
}
