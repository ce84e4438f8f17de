//go:build !nogpu

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/uirender/gpucore"
	"github.com/gogpu/uirender/render"
)

// pipelineSet holds the objects shared by all compositor draws. Every
// pipeline uses one bind group layout:
//
//	binding 0: projection uniform (vertex)
//	binding 1: texture (fragment)
//	binding 2: linear sampler (fragment)
type pipelineSet struct {
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler
	shaders    [gpucore.PipelineCount]hal.ShaderModule
	pipelines  [gpucore.PipelineCount]hal.RenderPipeline
}

func newPipelineSet(device hal.Device, format gputypes.TextureFormat, sampleCount uint32) (*pipelineSet, error) {
	p := &pipelineSet{}
	if err := p.build(device, format, sampleCount); err != nil {
		p.destroy(device)
		return nil, err
	}
	return p, nil
}

func (p *pipelineSet) build(device hal.Device, format gputypes.TextureFormat, sampleCount uint32) error {
	var err error
	p.bindLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "uirender_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create bind group layout: %w", err)
	}

	p.pipeLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "uirender_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("native: create pipeline layout: %w", err)
	}

	p.sampler, err = device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "uirender_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("native: create sampler: %w", err)
	}

	for i := range gpucore.PipelineCount {
		kind := gpucore.PipelineKind(i)
		p.shaders[i], err = createShaderModule(device, kind)
		if err != nil {
			return err
		}
		p.pipelines[i], err = device.CreateRenderPipeline(p.descriptor(kind, format, sampleCount))
		if err != nil {
			return fmt.Errorf("native: create %s pipeline: %w", kind, err)
		}
	}
	return nil
}

func (p *pipelineSet) descriptor(kind gpucore.PipelineKind, format gputypes.TextureFormat, sampleCount uint32) *hal.RenderPipelineDescriptor {
	premulBlend := gputypes.BlendStatePremultiplied()
	module := p.shaders[kind]

	return &hal.RenderPipelineDescriptor{
		Label:  "uirender_" + kind.String(),
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []gputypes.VertexBufferLayout{vertexLayout(kind)},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
	}
}

// vertexLayout describes the vertex buffer bound at slot 0 for a pipeline.
// The layouts mirror the byte encodings of the render package.
func vertexLayout(kind gpucore.PipelineKind) gputypes.VertexBufferLayout {
	switch kind {
	case gpucore.PipelineImage:
		return gputypes.VertexBufferLayout{
			ArrayStride: render.ImageInstanceSize,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			},
		}
	case gpucore.PipelineText:
		return gputypes.VertexBufferLayout{
			ArrayStride: render.TextVertexSize,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
			},
		}
	default:
		return gputypes.VertexBufferLayout{
			ArrayStride: render.TriangleVertexSize,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1},
			},
		}
	}
}

// destroy releases whatever build managed to create.
func (p *pipelineSet) destroy(device hal.Device) {
	for i := range p.pipelines {
		if p.pipelines[i] != nil {
			device.DestroyRenderPipeline(p.pipelines[i])
			p.pipelines[i] = nil
		}
		if p.shaders[i] != nil {
			device.DestroyShaderModule(p.shaders[i])
			p.shaders[i] = nil
		}
	}
	if p.sampler != nil {
		device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
}
