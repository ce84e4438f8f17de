package recording

import (
	"testing"

	"github.com/gogpu/uirender/gpucore"
)

func TestPassDraws(t *testing.T) {
	p := NewPass()
	p.SetScissorRect(0, 0, 100, 50)
	p.SetPipeline(gpucore.PipelineTriangle)
	p.SetBindings(1, gpucore.InvalidID)
	p.SetVertexBuffer(0, 2, 0)
	p.Draw(6, 1, 0, 0)
	p.SetPipeline(gpucore.PipelineText)
	p.SetBindings(1, 7)
	p.SetVertexBuffer(0, 3, 0)
	p.Draw(12, 1, 6, 0)

	draws := p.Draws()
	if len(draws) != 2 {
		t.Fatalf("Draws() = %d, want 2", len(draws))
	}
	first, second := draws[0], draws[1]
	if first.Pipeline != gpucore.PipelineTriangle || first.VertexBuffer != 2 || first.VertexCount != 6 {
		t.Errorf("first draw = %+v", first)
	}
	if second.Pipeline != gpucore.PipelineText || second.Texture != 7 || second.FirstVertex != 6 {
		t.Errorf("second draw = %+v", second)
	}
	if second.Scissor != (ScissorRect{Width: 100, Height: 50}) {
		t.Errorf("scissor not carried over: %+v", second.Scissor)
	}

	if len(p.Commands()) != 9 {
		t.Errorf("Commands() = %d, want 9", len(p.Commands()))
	}
	p.Reset()
	if len(p.Commands()) != 0 {
		t.Error("Reset() should clear commands")
	}
}
