package recording

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/uirender/gpucore"
)

// Buffer is the CPU copy of a device buffer.
type Buffer struct {
	Label string
	Usage gpucore.BufferUsage
	Data  []byte
}

// Texture is the CPU copy of a device texture.
type Texture struct {
	Label         string
	Width, Height int
	Format        gpucore.TextureFormat
	Pixels        []byte
	// Uploads counts WriteTexture calls.
	Uploads int
}

// Device is an in-memory gpucore.Device.
//
// IDs start at 1 and are never reused. Device is safe for concurrent use.
type Device struct {
	mu       sync.Mutex
	nextID   uint64
	buffers  map[gpucore.BufferID]*Buffer
	textures map[gpucore.TextureID]*Texture

	bufferErr  error
	textureErr error
}

var _ gpucore.Device = (*Device)(nil)

// NewDevice creates an empty device.
func NewDevice() *Device {
	return &Device{
		buffers:  make(map[gpucore.BufferID]*Buffer),
		textures: make(map[gpucore.TextureID]*Texture),
	}
}

// FailBuffers makes subsequent CreateBuffer calls return err. Pass nil to stop.
func (d *Device) FailBuffers(err error) {
	d.mu.Lock()
	d.bufferErr = err
	d.mu.Unlock()
}

// FailTextures makes subsequent CreateTexture calls return err. Pass nil to stop.
func (d *Device) FailTextures(err error) {
	d.mu.Lock()
	d.textureErr = err
	d.mu.Unlock()
}

// CreateBuffer implements gpucore.Device.
func (d *Device) CreateBuffer(label string, size int, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.bufferErr != nil {
		return gpucore.InvalidID, fmt.Errorf("create buffer %q: %w", label, d.bufferErr)
	}
	if size < 0 {
		return gpucore.InvalidID, fmt.Errorf("create buffer %q: negative size %d", label, size)
	}
	d.nextID++
	id := gpucore.BufferID(d.nextID)
	d.buffers[id] = &Buffer{Label: label, Usage: usage, Data: make([]byte, size)}
	return id, nil
}

// WriteBuffer implements gpucore.Device. Writes past the end are truncated.
func (d *Device) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buffers[id]
	if !ok || offset >= uint64(len(b.Data)) {
		return
	}
	copy(b.Data[offset:], data)
}

// DestroyBuffer implements gpucore.Device.
func (d *Device) DestroyBuffer(id gpucore.BufferID) {
	d.mu.Lock()
	delete(d.buffers, id)
	d.mu.Unlock()
}

// CreateTexture implements gpucore.Device.
func (d *Device) CreateTexture(label string, width, height int, format gpucore.TextureFormat) (gpucore.TextureID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.textureErr != nil {
		return gpucore.InvalidID, fmt.Errorf("create texture %q: %w", label, d.textureErr)
	}
	bpp := format.BytesPerPixel()
	if width <= 0 || height <= 0 || bpp == 0 {
		return gpucore.InvalidID, fmt.Errorf("create texture %q: invalid %dx%d %v", label, width, height, format)
	}
	d.nextID++
	id := gpucore.TextureID(d.nextID)
	d.textures[id] = &Texture{
		Label:  label,
		Width:  width,
		Height: height,
		Format: format,
		Pixels: make([]byte, width*height*bpp),
	}
	return id, nil
}

// WriteTexture implements gpucore.Device. Rows outside the texture are clipped.
func (d *Device) WriteTexture(id gpucore.TextureID, region gpucore.Region, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[id]
	if !ok {
		return
	}
	t.Uploads++

	bpp := t.Format.BytesPerPixel()
	srcStride := int(region.Width) * bpp
	for row := 0; row < int(region.Height); row++ {
		y := int(region.Y) + row
		if y >= t.Height {
			break
		}
		n := srcStride
		if x := int(region.X) + int(region.Width); x > t.Width {
			n -= (x - t.Width) * bpp
		}
		src := row * srcStride
		if n <= 0 || src+n > len(data) {
			break
		}
		dst := (y*t.Width + int(region.X)) * bpp
		copy(t.Pixels[dst:dst+n], data[src:src+n])
	}
}

// DestroyTexture implements gpucore.Device.
func (d *Device) DestroyTexture(id gpucore.TextureID) {
	d.mu.Lock()
	delete(d.textures, id)
	d.mu.Unlock()
}

// Buffer returns a live buffer.
func (d *Device) Buffer(id gpucore.BufferID) (*Buffer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buffers[id]
	return b, ok
}

// Texture returns a live texture.
func (d *Device) Texture(id gpucore.TextureID) (*Texture, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[id]
	return t, ok
}

// Live returns the number of buffers and textures not yet destroyed.
func (d *Device) Live() (buffers, textures int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.buffers), len(d.textures)
}

// TextureImage copies a texture into an image: *image.Gray for R8Unorm and
// *image.RGBA (premultiplied) for RGBA8Unorm.
func (d *Device) TextureImage(id gpucore.TextureID) (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[id]
	if !ok {
		return nil, fmt.Errorf("texture %d: %w", id, gpucore.ErrUnknownResource)
	}
	rect := image.Rect(0, 0, t.Width, t.Height)
	switch t.Format {
	case gpucore.TextureFormatR8Unorm:
		img := image.NewGray(rect)
		copy(img.Pix, t.Pixels)
		return img, nil
	default:
		img := image.NewRGBA(rect)
		copy(img.Pix, t.Pixels)
		return img, nil
	}
}
