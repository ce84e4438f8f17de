//go:build !nogpu

package native

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/uirender/gpucore"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

func newTestDevice(t *testing.T) *Device {
	t.Helper()
	halDevice, queue, cleanup := createNoopDevice(t)
	d, err := New(halDevice, queue, gputypes.TextureFormatBGRA8Unorm, 1)
	if err != nil {
		cleanup()
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() {
		d.Destroy()
		cleanup()
	})
	return d
}

func TestNew(t *testing.T) {
	d := newTestDevice(t)

	if d.HalDevice() == nil {
		t.Fatal("HalDevice() = nil")
	}
	for i, p := range d.pipelines.pipelines {
		if p == nil {
			t.Errorf("pipeline %s not created", gpucore.PipelineKind(i))
		}
	}
	if b, tx := d.Live(); b != 0 || tx != 0 {
		t.Errorf("Live() = %d, %d, want 0, 0", b, tx)
	}
}

func TestNew_NilDevice(t *testing.T) {
	if _, err := New(nil, nil, gputypes.TextureFormatBGRA8Unorm, 1); !errors.Is(err, ErrNilDevice) {
		t.Errorf("New(nil) error = %v, want ErrNilDevice", err)
	}
}

func TestDevice_BufferLifecycle(t *testing.T) {
	d := newTestDevice(t)

	id, err := d.CreateBuffer("vertices", 30, gpucore.BufferUsageVertex|gpucore.BufferUsageCopyDst)
	if err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	if id == gpucore.InvalidID {
		t.Fatal("CreateBuffer returned InvalidID")
	}
	if got := d.buffers[id].size; got != 32 {
		t.Errorf("aligned size = %d, want 32", got)
	}

	// In range, unaligned, and out of range writes must not panic.
	d.WriteBuffer(id, 0, make([]byte, 24))
	d.WriteBuffer(id, 4, make([]byte, 7))
	d.WriteBuffer(id, 16, make([]byte, 64))
	d.WriteBuffer(gpucore.BufferID(999), 0, []byte{1, 2, 3, 4})

	d.DestroyBuffer(id)
	d.DestroyBuffer(id)
	if b, _ := d.Live(); b != 0 {
		t.Errorf("live buffers = %d after destroy", b)
	}
}

func TestDevice_CreateBuffer_InvalidSize(t *testing.T) {
	d := newTestDevice(t)
	if _, err := d.CreateBuffer("empty", 0, gpucore.BufferUsageVertex); err == nil {
		t.Error("CreateBuffer(0) should fail")
	}
}

func TestDevice_TextureLifecycle(t *testing.T) {
	d := newTestDevice(t)

	id, err := d.CreateTexture("atlas", 64, 32, gpucore.TextureFormatR8Unorm)
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	tex := d.textures[id]
	if tex.width != 64 || tex.height != 32 || tex.format != gpucore.TextureFormatR8Unorm {
		t.Errorf("texture = %dx%d %s", tex.width, tex.height, tex.format)
	}

	d.WriteTexture(id, gpucore.Region{X: 8, Y: 8, Width: 4, Height: 4}, make([]byte, 16))
	// Outside the texture: dropped.
	d.WriteTexture(id, gpucore.Region{X: 62, Y: 0, Width: 4, Height: 4}, make([]byte, 16))
	// Short data: dropped.
	d.WriteTexture(id, gpucore.Region{Width: 4, Height: 4}, make([]byte, 3))

	d.DestroyTexture(id)
	d.DestroyTexture(id)
	if _, tx := d.Live(); tx != 0 {
		t.Errorf("live textures = %d after destroy", tx)
	}
}

func TestDevice_CreateTexture_Errors(t *testing.T) {
	d := newTestDevice(t)

	if _, err := d.CreateTexture("zero", 0, 4, gpucore.TextureFormatRGBA8Unorm); err == nil {
		t.Error("zero width should fail")
	}
	if _, err := d.CreateTexture("bad", 4, 4, gpucore.TextureFormat(99)); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestDevice_BindGroupCache(t *testing.T) {
	d := newTestDevice(t)

	uniform, err := d.CreateBuffer("uniform", 64, gpucore.BufferUsageUniform|gpucore.BufferUsageCopyDst)
	if err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	tex, err := d.CreateTexture("image", 2, 2, gpucore.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}

	if _, err := d.bindGroup(uniform, gpucore.InvalidID); err != nil {
		t.Fatalf("bindGroup(uniform, none) failed: %v", err)
	}
	if _, err := d.bindGroup(uniform, tex); err != nil {
		t.Fatalf("bindGroup(uniform, tex) failed: %v", err)
	}
	if _, err := d.bindGroup(uniform, tex); err != nil {
		t.Fatalf("cached bindGroup failed: %v", err)
	}
	if len(d.groups) != 2 {
		t.Errorf("cached groups = %d, want 2", len(d.groups))
	}

	d.DestroyTexture(tex)
	if len(d.groups) != 1 {
		t.Errorf("groups after DestroyTexture = %d, want 1", len(d.groups))
	}
	d.DestroyBuffer(uniform)
	if len(d.groups) != 0 {
		t.Errorf("groups after DestroyBuffer = %d, want 0", len(d.groups))
	}
}

func TestDevice_BindGroupUnknown(t *testing.T) {
	d := newTestDevice(t)

	if _, err := d.bindGroup(gpucore.BufferID(42), gpucore.InvalidID); !errors.Is(err, gpucore.ErrUnknownResource) {
		t.Errorf("unknown uniform error = %v, want ErrUnknownResource", err)
	}

	uniform, err := d.CreateBuffer("uniform", 64, gpucore.BufferUsageUniform)
	if err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	if _, err := d.bindGroup(uniform, gpucore.TextureID(77)); !errors.Is(err, gpucore.ErrUnknownResource) {
		t.Errorf("unknown texture error = %v, want ErrUnknownResource", err)
	}
}

func TestDevice_Destroy(t *testing.T) {
	d := newTestDevice(t)

	if _, err := d.CreateBuffer("b", 16, gpucore.BufferUsageVertex); err != nil {
		t.Fatalf("CreateBuffer failed: %v", err)
	}
	if _, err := d.CreateTexture("t", 4, 4, gpucore.TextureFormatRGBA8Unorm); err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}

	d.Destroy()
	d.Destroy()

	if b, tx := d.Live(); b != 0 || tx != 0 {
		t.Errorf("Live() after Destroy = %d, %d", b, tx)
	}
	if _, err := d.CreateBuffer("late", 16, gpucore.BufferUsageVertex); !errors.Is(err, ErrDestroyed) {
		t.Errorf("CreateBuffer after Destroy error = %v, want ErrDestroyed", err)
	}
}

type stubDevice struct{}

func (stubDevice) Poll(bool) {}
func (stubDevice) Destroy()  {}

type stubQueue struct{}

type stubAdapter struct{}

// plainProvider exposes no HAL objects.
type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device             { return stubDevice{} }
func (plainProvider) Queue() gpucontext.Queue               { return stubQueue{} }
func (plainProvider) Adapter() gpucontext.Adapter           { return stubAdapter{} }
func (plainProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (plainProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// halProvider additionally exposes a hal device and queue.
type halProvider struct {
	plainProvider
	device any
	queue  any
}

func (p halProvider) HalDevice() any { return p.device }
func (p halProvider) HalQueue() any  { return p.queue }

var (
	_ gpucontext.DeviceProvider = plainProvider{}
	_ gpucontext.DeviceProvider = halProvider{}
)

func TestNewFromProvider(t *testing.T) {
	halDevice, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	d, err := NewFromProvider(halProvider{device: halDevice, queue: queue}, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewFromProvider failed: %v", err)
	}
	defer d.Destroy()
	if d.HalDevice() != halDevice {
		t.Error("NewFromProvider did not wrap the provider's hal device")
	}
}

func TestNewFromProvider_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		want     error
	}{
		{"nil", nil, ErrNilDevice},
		{"no hal", plainProvider{}, ErrNoHALProvider},
		{"wrong types", halProvider{device: "device", queue: "queue"}, ErrNoHALProvider},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFromProvider(tt.provider, gputypes.TextureFormatBGRA8Unorm); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConvertTextureFormat(t *testing.T) {
	tests := []struct {
		in   gpucore.TextureFormat
		want gputypes.TextureFormat
	}{
		{gpucore.TextureFormatR8Unorm, gputypes.TextureFormatR8Unorm},
		{gpucore.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8Unorm},
	}
	for _, tt := range tests {
		if got := convertTextureFormat(tt.in); got != tt.want {
			t.Errorf("convertTextureFormat(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConvertBufferUsage(t *testing.T) {
	got := convertBufferUsage(gpucore.BufferUsageVertex | gpucore.BufferUsageCopyDst)
	want := gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
	if got != want {
		t.Errorf("convertBufferUsage = %v, want %v", got, want)
	}
	if convertBufferUsage(gpucore.BufferUsageUniform)&gputypes.BufferUsageUniform == 0 {
		t.Error("uniform usage lost")
	}
}
