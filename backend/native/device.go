//go:build !nogpu

// Package native provides the gpucore.Device backed by gogpu/wgpu HAL.
//
// Device maps gpucore resource IDs onto hal buffers and textures and owns the
// three fixed pipelines the compositor draws with. The host begins the render
// pass itself and hands the encoder to the compositor through [Device.WrapPass].
package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/gpucore"
)

type nativeBuffer struct {
	buffer hal.Buffer
	size   uint64
}

type nativeTexture struct {
	texture hal.Texture
	view    hal.TextureView
	width   uint32
	height  uint32
	format  gpucore.TextureFormat
}

type bindKey struct {
	uniform gpucore.BufferID
	texture gpucore.TextureID
}

// Device implements gpucore.Device on top of a hal.Device and hal.Queue.
//
// Thread Safety: Device is safe for concurrent use, although the compositor
// only calls it from the render thread.
type Device struct {
	mu sync.RWMutex

	device hal.Device
	queue  hal.Queue

	nextID atomic.Uint64

	buffers  map[gpucore.BufferID]*nativeBuffer
	textures map[gpucore.TextureID]*nativeTexture
	groups   map[bindKey]hal.BindGroup

	pipelines *pipelineSet

	// white backs texture bindings for pipelines drawn without a texture.
	white *nativeTexture

	destroyed bool
}

var _ gpucore.Device = (*Device)(nil)

// New creates a Device and builds its pipelines for the render target format
// and sample count the host will draw into.
func New(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, sampleCount uint32) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	if sampleCount == 0 {
		sampleCount = 1
	}

	d := &Device{
		device:   device,
		queue:    queue,
		buffers:  make(map[gpucore.BufferID]*nativeBuffer),
		textures: make(map[gpucore.TextureID]*nativeTexture),
		groups:   make(map[bindKey]hal.BindGroup),
	}
	d.nextID.Store(1)

	pipelines, err := newPipelineSet(device, format, sampleCount)
	if err != nil {
		return nil, err
	}
	d.pipelines = pipelines

	white, err := d.newTexture("uirender_white", 1, 1, gpucore.TextureFormatRGBA8Unorm)
	if err != nil {
		pipelines.destroy(device)
		return nil, err
	}
	d.writeTexture(white, gpucore.Region{Width: 1, Height: 1}, []byte{0xFF, 0xFF, 0xFF, 0xFF})
	d.white = white

	uirender.Logger().Debug("native: device ready",
		"format", format, "samples", sampleCount)
	return d, nil
}

// NewFromProvider creates a Device from a host device provider. The provider
// must expose its HAL objects through HalDevice and HalQueue.
func NewFromProvider(provider gpucontext.DeviceProvider, format gputypes.TextureFormat) (*Device, error) {
	if provider == nil {
		return nil, ErrNilDevice
	}
	halProvider, ok := provider.(interface {
		HalDevice() any
		HalQueue() any
	})
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := halProvider.HalDevice().(hal.Device)
	if !ok {
		return nil, ErrNoHALProvider
	}
	queue, ok := halProvider.HalQueue().(hal.Queue)
	if !ok {
		return nil, ErrNoHALProvider
	}
	return New(device, queue, format, 1)
}

// HalDevice returns the wrapped hal.Device.
func (d *Device) HalDevice() hal.Device { return d.device }

// CreateBuffer allocates a hal buffer. Sizes are rounded up to a multiple of
// four as WriteBuffer requires.
func (d *Device) CreateBuffer(label string, size int, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	if size <= 0 {
		return gpucore.InvalidID, fmt.Errorf("native: buffer %q: invalid size %d", label, size)
	}
	aligned := (uint64(size) + 3) &^ 3

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return gpucore.InvalidID, ErrDestroyed
	}

	buffer, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  aligned,
		Usage: convertBufferUsage(usage),
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: create buffer %q: %w", label, err)
	}

	id := gpucore.BufferID(d.nextID.Add(1) - 1)
	d.buffers[id] = &nativeBuffer{buffer: buffer, size: aligned}
	return id, nil
}

// WriteBuffer queues a write into the buffer. Writes past the end are dropped.
func (d *Device) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	if len(data) == 0 {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	buf, ok := d.buffers[id]
	if !ok {
		return
	}
	if offset+uint64(len(data)) > buf.size {
		uirender.Logger().Warn("native: buffer write out of range",
			"buffer", id, "offset", offset, "len", len(data), "size", buf.size)
		return
	}
	// Queue writes must be 4-byte multiples.
	if pad := len(data) % 4; pad != 0 && offset+uint64(len(data)+4-pad) <= buf.size {
		padded := make([]byte, len(data)+4-pad)
		copy(padded, data)
		data = padded
	}
	d.queue.WriteBuffer(buf.buffer, offset, data)
}

// DestroyBuffer releases a buffer and any bind groups that reference it.
func (d *Device) DestroyBuffer(id gpucore.BufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	buf, ok := d.buffers[id]
	if !ok {
		return
	}
	for key, group := range d.groups {
		if key.uniform == id {
			d.device.DestroyBindGroup(group)
			delete(d.groups, key)
		}
	}
	d.device.DestroyBuffer(buf.buffer)
	delete(d.buffers, id)
}

// CreateTexture allocates a sampled 2D texture and its view.
func (d *Device) CreateTexture(label string, width, height int, format gpucore.TextureFormat) (gpucore.TextureID, error) {
	if width <= 0 || height <= 0 {
		return gpucore.InvalidID, fmt.Errorf("native: texture %q: invalid size %dx%d", label, width, height)
	}
	if format.BytesPerPixel() == 0 {
		return gpucore.InvalidID, fmt.Errorf("native: texture %q: unsupported format %s", label, format)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return gpucore.InvalidID, ErrDestroyed
	}

	tex, err := d.newTexture(label, uint32(width), uint32(height), format)
	if err != nil {
		return gpucore.InvalidID, err
	}
	id := gpucore.TextureID(d.nextID.Add(1) - 1)
	d.textures[id] = tex
	return id, nil
}

// newTexture does not touch the ID maps.
func (d *Device) newTexture(label string, width, height uint32, format gpucore.TextureFormat) (*nativeTexture, error) {
	halFormat := convertTextureFormat(format)
	texture, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        halFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create texture %q: %w", label, err)
	}

	view, err := d.device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        halFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(texture)
		return nil, fmt.Errorf("native: create texture view %q: %w", label, err)
	}

	return &nativeTexture{
		texture: texture,
		view:    view,
		width:   width,
		height:  height,
		format:  format,
	}, nil
}

// WriteTexture uploads tightly packed rows into region. Regions outside the
// texture and short data are dropped.
func (d *Device) WriteTexture(id gpucore.TextureID, region gpucore.Region, data []byte) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tex, ok := d.textures[id]
	if !ok {
		return
	}
	if region.X+region.Width > tex.width || region.Y+region.Height > tex.height {
		uirender.Logger().Warn("native: texture write out of range",
			"texture", id, "region", region, "width", tex.width, "height", tex.height)
		return
	}
	d.writeTexture(tex, region, data)
}

func (d *Device) writeTexture(tex *nativeTexture, region gpucore.Region, data []byte) {
	if region.Width == 0 || region.Height == 0 {
		return
	}
	bpr := region.Width * uint32(tex.format.BytesPerPixel())
	if uint64(len(data)) < uint64(bpr)*uint64(region.Height) {
		return
	}
	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex.texture,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: region.X, Y: region.Y, Z: 0},
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  bpr,
			RowsPerImage: region.Height,
		},
		&hal.Extent3D{Width: region.Width, Height: region.Height, DepthOrArrayLayers: 1},
	)
}

// DestroyTexture releases a texture and any bind groups that reference it.
func (d *Device) DestroyTexture(id gpucore.TextureID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	tex, ok := d.textures[id]
	if !ok {
		return
	}
	for key, group := range d.groups {
		if key.texture == id {
			d.device.DestroyBindGroup(group)
			delete(d.groups, key)
		}
	}
	d.destroyTexture(tex)
	delete(d.textures, id)
}

func (d *Device) destroyTexture(tex *nativeTexture) {
	if tex.view != nil {
		d.device.DestroyTextureView(tex.view)
	}
	if tex.texture != nil {
		d.device.DestroyTexture(tex.texture)
	}
}

// bindGroup returns the cached bind group for a uniform and texture pair,
// creating it on first use. InvalidID as texture binds a white texel.
func (d *Device) bindGroup(uniform gpucore.BufferID, texture gpucore.TextureID) (hal.BindGroup, error) {
	key := bindKey{uniform: uniform, texture: texture}

	d.mu.RLock()
	group, ok := d.groups[key]
	d.mu.RUnlock()
	if ok {
		return group, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if group, ok := d.groups[key]; ok {
		return group, nil
	}
	if d.destroyed {
		return nil, ErrDestroyed
	}

	buf, ok := d.buffers[uniform]
	if !ok {
		return nil, fmt.Errorf("native: uniform buffer %d: %w", uniform, gpucore.ErrUnknownResource)
	}
	tex := d.white
	if texture != gpucore.InvalidID {
		tex, ok = d.textures[texture]
		if !ok {
			return nil, fmt.Errorf("native: texture %d: %w", texture, gpucore.ErrUnknownResource)
		}
	}

	group, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "uirender_bind_group",
		Layout: d.pipelines.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.buffer.NativeHandle(), Offset: 0, Size: buf.size,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: tex.view.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: d.pipelines.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("native: create bind group: %w", err)
	}
	d.groups[key] = group
	return group, nil
}

// Live returns the number of buffers and textures currently allocated,
// excluding internal ones.
func (d *Device) Live() (buffers, textures int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.buffers), len(d.textures)
}

// Destroy releases every resource the Device owns. It does not destroy the
// wrapped hal.Device. Safe to call multiple times.
func (d *Device) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return
	}
	d.destroyed = true

	for key, group := range d.groups {
		d.device.DestroyBindGroup(group)
		delete(d.groups, key)
	}
	for id, buf := range d.buffers {
		d.device.DestroyBuffer(buf.buffer)
		delete(d.buffers, id)
	}
	for id, tex := range d.textures {
		d.destroyTexture(tex)
		delete(d.textures, id)
	}
	if d.white != nil {
		d.destroyTexture(d.white)
		d.white = nil
	}
	d.pipelines.destroy(d.device)
}

func convertBufferUsage(usage gpucore.BufferUsage) gputypes.BufferUsage {
	var result gputypes.BufferUsage

	if usage&gpucore.BufferUsageCopyDst != 0 {
		result |= gputypes.BufferUsageCopyDst
	}
	if usage&gpucore.BufferUsageVertex != 0 {
		result |= gputypes.BufferUsageVertex
	}
	if usage&gpucore.BufferUsageUniform != 0 {
		result |= gputypes.BufferUsageUniform
	}

	return result
}

func convertTextureFormat(format gpucore.TextureFormat) gputypes.TextureFormat {
	switch format {
	case gpucore.TextureFormatR8Unorm:
		return gputypes.TextureFormatR8Unorm
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}
