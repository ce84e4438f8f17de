package gpucore

// Device abstracts the GPU resources the compositor allocates.
//
// Implementations:
//   - backend/native.Device: gogpu/wgpu HAL
//   - recording.Device: CPU memory, for tests and headless runs
//
// A Device is used from the render thread only. Methods that return an
// error are the only ones allowed to fail; writes to unknown IDs are ignored.
type Device interface {
	// CreateBuffer allocates a buffer of size bytes.
	CreateBuffer(label string, size int, usage BufferUsage) (BufferID, error)

	// WriteBuffer copies data into the buffer at offset.
	WriteBuffer(id BufferID, offset uint64, data []byte)

	// DestroyBuffer releases a buffer. Unknown IDs are ignored.
	DestroyBuffer(id BufferID)

	// CreateTexture allocates a sampled 2D texture.
	CreateTexture(label string, width, height int, format TextureFormat) (TextureID, error)

	// WriteTexture uploads tightly packed rows covering region.
	WriteTexture(id TextureID, region Region, data []byte)

	// DestroyTexture releases a texture. Unknown IDs are ignored.
	DestroyTexture(id TextureID)
}

// PassEncoder records draw commands into a render pass the host has begun.
type PassEncoder interface {
	// SetPipeline selects the pipeline for subsequent draws.
	SetPipeline(kind PipelineKind)

	// SetScissorRect restricts drawing to a rectangle in physical pixels.
	SetScissorRect(x, y, width, height uint32)

	// SetBindings binds the projection uniform and, for the image and text
	// pipelines, the sampled texture. Pass InvalidID for no texture.
	SetBindings(uniform BufferID, texture TextureID)

	// SetVertexBuffer binds a vertex buffer to a slot.
	SetVertexBuffer(slot uint32, buffer BufferID, offset uint64)

	// Draw issues a non-indexed draw call.
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
}
