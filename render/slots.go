// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/gpucore"
)

const uniformSize = 64

// Range is a half-open index range [Start, End).
type Range struct {
	Start, End uint32
}

// Len returns the number of indices in the range.
func (r Range) Len() uint32 { return r.End - r.Start }

// LayerInfo locates one layer's geometry inside the frame buffers.
type LayerInfo struct {
	// Bounds is the layer clip in logical pixels.
	Bounds uirender.Rect
	// Scissor is Bounds in physical pixels, rounded outward and clamped.
	Scissor gpucore.Region

	// Quads and Text are vertex ranges; Images is a range of ImageBatch
	// indices.
	Quads  Range
	Text   Range
	Images Range
}

// buffer is a device buffer that grows to fit what is written to it.
type buffer struct {
	label string
	usage gpucore.BufferUsage
	id    gpucore.BufferID
	size  int
}

func (b *buffer) create(dev gpucore.Device, size int) error {
	id, err := dev.CreateBuffer(b.label, size, b.usage)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", b.label, err)
	}
	b.id, b.size = id, size
	return nil
}

// write uploads data, replacing the buffer with one of the next power of
// two size when data does not fit.
func (b *buffer) write(dev gpucore.Device, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if len(data) > b.size {
		size := max(b.size, 1)
		for size < len(data) {
			size <<= 1
		}
		old := b.id
		if err := b.create(dev, size); err != nil {
			return err
		}
		dev.DestroyBuffer(old)
		uirender.Logger().Debug("grew frame buffer", "buffer", b.label, "size", size)
	}
	dev.WriteBuffer(b.id, 0, data)
	return nil
}

func (b *buffer) destroy(dev gpucore.Device) {
	if b.id != gpucore.InvalidID {
		dev.DestroyBuffer(b.id)
		b.id, b.size = gpucore.InvalidID, 0
	}
}

// FrameSlot holds the buffers and draw ranges of one in-flight frame.
type FrameSlot struct {
	index int

	uniform  buffer
	quads    buffer
	text     buffer
	images   buffer
	atlas    gpucore.TextureID
	layers   []LayerInfo
	batches  []ImageBatch
	prepared bool
}

// Index returns the slot number in [0, N).
func (s *FrameSlot) Index() int { return s.index }

// Layers returns the draw ranges written by the last Prepare into this slot.
func (s *FrameSlot) Layers() []LayerInfo { return s.layers }

// ImageBatches returns the image batches written into this slot.
func (s *FrameSlot) ImageBatches() []ImageBatch { return s.batches }

// Uniform returns the projection uniform buffer.
func (s *FrameSlot) Uniform() gpucore.BufferID { return s.uniform.id }

// QuadBuffer returns the triangle vertex buffer.
func (s *FrameSlot) QuadBuffer() gpucore.BufferID { return s.quads.id }

// TextBuffer returns the text vertex buffer.
func (s *FrameSlot) TextBuffer() gpucore.BufferID { return s.text.id }

// ImageBuffer returns the image instance buffer.
func (s *FrameSlot) ImageBuffer() gpucore.BufferID { return s.images.id }

func (s *FrameSlot) buffers() []*buffer {
	return []*buffer{&s.uniform, &s.quads, &s.text, &s.images}
}

// invalidate drops the slot's draw ranges so Draw issues nothing.
func (s *FrameSlot) invalidate() {
	s.layers = s.layers[:0]
	s.batches = s.batches[:0]
	s.prepared = false
}

// FrameSlots is a ring of N frame slots. Slot selection is by frame index
// modulo N; the host guarantees a slot is not read by the GPU while it is
// being prepared.
type FrameSlots struct {
	device gpucore.Device
	slots  []*FrameSlot
}

// NewFrameSlots allocates n slots, each with a projection uniform and
// three vertex buffers of capacity bytes.
func NewFrameSlots(dev gpucore.Device, n, capacity int) (*FrameSlots, error) {
	fs := &FrameSlots{device: dev}
	vertex := gpucore.BufferUsageVertex | gpucore.BufferUsageCopyDst
	for i := range n {
		s := &FrameSlot{
			index:   i,
			uniform: buffer{label: fmt.Sprintf("frame%d uniform", i), usage: gpucore.BufferUsageUniform | gpucore.BufferUsageCopyDst},
			quads:   buffer{label: fmt.Sprintf("frame%d quads", i), usage: vertex},
			text:    buffer{label: fmt.Sprintf("frame%d text", i), usage: vertex},
			images:  buffer{label: fmt.Sprintf("frame%d images", i), usage: vertex},
		}
		fs.slots = append(fs.slots, s)
		for _, b := range s.buffers() {
			size := capacity
			if b == &s.uniform {
				size = uniformSize
			}
			if err := b.create(dev, size); err != nil {
				fs.Dispose()
				return nil, err
			}
		}
	}
	return fs, nil
}

// Len returns the number of slots.
func (fs *FrameSlots) Len() int { return len(fs.slots) }

// Slot returns the slot used by frameIndex.
func (fs *FrameSlots) Slot(frameIndex uint64) *FrameSlot {
	return fs.slots[frameIndex%uint64(len(fs.slots))]
}

// Dispose destroys every slot buffer. It is safe to call more than once.
func (fs *FrameSlots) Dispose() {
	for _, s := range fs.slots {
		for _, b := range s.buffers() {
			b.destroy(fs.device)
		}
		s.invalidate()
	}
}
