//go:build !nogpu

package native

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/gpucore"
)

// Pass implements gpucore.PassEncoder over a hal render pass the host began.
type Pass struct {
	device *Device
	pass   hal.RenderPassEncoder
}

var _ gpucore.PassEncoder = (*Pass)(nil)

// WrapPass adapts a hal render pass for the compositor's Draw.
func (d *Device) WrapPass(pass hal.RenderPassEncoder) *Pass {
	return &Pass{device: d, pass: pass}
}

// SetPipeline selects one of the fixed pipelines.
func (p *Pass) SetPipeline(kind gpucore.PipelineKind) {
	if p.pass == nil || int(kind) >= gpucore.PipelineCount {
		return
	}
	p.device.mu.RLock()
	pipeline := p.device.pipelines.pipelines[kind]
	p.device.mu.RUnlock()
	if pipeline != nil {
		p.pass.SetPipeline(pipeline)
	}
}

// SetScissorRect restricts drawing to a rectangle in physical pixels.
func (p *Pass) SetScissorRect(x, y, width, height uint32) {
	if p.pass == nil {
		return
	}
	p.pass.SetScissorRect(x, y, width, height)
}

// SetBindings binds group 0 for the uniform and texture pair. Failures are
// logged and leave the previous bindings in place.
func (p *Pass) SetBindings(uniform gpucore.BufferID, texture gpucore.TextureID) {
	if p.pass == nil {
		return
	}
	group, err := p.device.bindGroup(uniform, texture)
	if err != nil {
		uirender.Logger().Warn("native: bind group", "error", err)
		return
	}
	p.pass.SetBindGroup(0, group, nil)
}

// SetVertexBuffer binds a vertex buffer. Unknown IDs are ignored.
func (p *Pass) SetVertexBuffer(slot uint32, buffer gpucore.BufferID, offset uint64) {
	if p.pass == nil {
		return
	}
	p.device.mu.RLock()
	buf, ok := p.device.buffers[buffer]
	p.device.mu.RUnlock()
	if ok {
		p.pass.SetVertexBuffer(slot, buf.buffer, offset)
	}
}

// Draw issues a non-indexed draw.
func (p *Pass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	if p.pass == nil {
		return
	}
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}
