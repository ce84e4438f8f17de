package recording

import "github.com/gogpu/uirender/gpucore"

// Pass records encoder calls. It implements gpucore.PassEncoder.
//
// The Pass is not safe for concurrent use.
type Pass struct {
	commands []Command
}

var _ gpucore.PassEncoder = (*Pass)(nil)

// NewPass creates an empty pass.
func NewPass() *Pass {
	return &Pass{commands: make([]Command, 0, 64)}
}

// SetPipeline implements gpucore.PassEncoder.
func (p *Pass) SetPipeline(kind gpucore.PipelineKind) {
	p.commands = append(p.commands, SetPipelineCommand{Pipeline: kind})
}

// SetScissorRect implements gpucore.PassEncoder.
func (p *Pass) SetScissorRect(x, y, width, height uint32) {
	p.commands = append(p.commands, SetScissorRectCommand{Rect: ScissorRect{X: x, Y: y, Width: width, Height: height}})
}

// SetBindings implements gpucore.PassEncoder.
func (p *Pass) SetBindings(uniform gpucore.BufferID, texture gpucore.TextureID) {
	p.commands = append(p.commands, SetBindingsCommand{Uniform: uniform, Texture: texture})
}

// SetVertexBuffer implements gpucore.PassEncoder.
func (p *Pass) SetVertexBuffer(slot uint32, buffer gpucore.BufferID, offset uint64) {
	p.commands = append(p.commands, SetVertexBufferCommand{Slot: slot, Buffer: buffer, Offset: offset})
}

// Draw implements gpucore.PassEncoder.
func (p *Pass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.commands = append(p.commands, DrawCommand{
		VertexCount:   vertexCount,
		InstanceCount: instanceCount,
		FirstVertex:   firstVertex,
		FirstInstance: firstInstance,
	})
}

// Commands returns the recorded commands in order.
func (p *Pass) Commands() []Command {
	return p.commands
}

// Reset clears the recorded commands, keeping capacity.
func (p *Pass) Reset() {
	p.commands = p.commands[:0]
}

// DrawCall is a draw together with the state bound when it was issued.
type DrawCall struct {
	Pipeline     gpucore.PipelineKind
	Scissor      ScissorRect
	Uniform      gpucore.BufferID
	Texture      gpucore.TextureID
	VertexBuffer gpucore.BufferID
	DrawCommand
}

// Draws folds the command stream into the draws it issued.
func (p *Pass) Draws() []DrawCall {
	var (
		state DrawCall
		out   []DrawCall
	)
	for _, cmd := range p.commands {
		switch c := cmd.(type) {
		case SetPipelineCommand:
			state.Pipeline = c.Pipeline
		case SetScissorRectCommand:
			state.Scissor = c.Rect
		case SetBindingsCommand:
			state.Uniform = c.Uniform
			state.Texture = c.Texture
		case SetVertexBufferCommand:
			if c.Slot == 0 {
				state.VertexBuffer = c.Buffer
			}
		case DrawCommand:
			d := state
			d.DrawCommand = c
			out = append(out, d)
		}
	}
	return out
}
