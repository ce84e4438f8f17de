package gpucore

import (
	"errors"
	"fmt"
)

// Resource IDs
//
// These opaque IDs represent GPU resources. Each device implementation
// maintains a mapping between IDs and actual backend resources.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// ErrUnknownResource is returned when an ID does not name a live resource.
var ErrUnknownResource = errors.New("gpucore: unknown resource")

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	// BufferUsageCopyDst indicates the buffer can be written from the CPU.
	BufferUsageCopyDst BufferUsage = 1 << 3

	// BufferUsageVertex indicates the buffer can be used as a vertex buffer.
	BufferUsageVertex BufferUsage = 1 << 5

	// BufferUsageUniform indicates the buffer can be used as a uniform buffer.
	BufferUsageUniform BufferUsage = 1 << 6
)

// TextureFormat specifies the format of texture data.
type TextureFormat uint32

// Texture formats.
const (
	// TextureFormatR8Unorm is a single 8-bit coverage channel.
	TextureFormatR8Unorm TextureFormat = iota + 1

	// TextureFormatRGBA8Unorm is 8-bit RGBA, normalized unsigned integer.
	TextureFormatRGBA8Unorm
)

// BytesPerPixel returns the size of one texel.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatR8Unorm:
		return 1
	case TextureFormatRGBA8Unorm:
		return 4
	default:
		return 0
	}
}

// String returns a human-readable name for the format.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatR8Unorm:
		return "R8Unorm"
	case TextureFormatRGBA8Unorm:
		return "RGBA8Unorm"
	default:
		return fmt.Sprintf("TextureFormat(%d)", uint32(f))
	}
}

// PipelineKind selects one of the fixed render pipelines.
type PipelineKind uint8

// Pipelines.
const (
	// PipelineTriangle draws TriangleVertex lists with per-vertex color.
	PipelineTriangle PipelineKind = iota
	// PipelineImage draws one textured quad per instance.
	PipelineImage
	// PipelineText draws TextVertex lists sampling the glyph atlas.
	PipelineText

	pipelineCount
)

// PipelineCount is the number of pipeline kinds.
const PipelineCount = int(pipelineCount)

// String returns a human-readable name for the pipeline.
func (k PipelineKind) String() string {
	switch k {
	case PipelineTriangle:
		return "triangle"
	case PipelineImage:
		return "image"
	case PipelineText:
		return "text"
	default:
		return "unknown"
	}
}

// Region is a rectangle of texels inside a texture.
type Region struct {
	X, Y          uint32
	Width, Height uint32
}
