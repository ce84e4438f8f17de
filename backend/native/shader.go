//go:build !nogpu

package native

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/gpucore"
)

//go:embed shaders/triangle.wgsl
var triangleShaderSource string

//go:embed shaders/image.wgsl
var imageShaderSource string

//go:embed shaders/text.wgsl
var textShaderSource string

// shaderSource returns the WGSL source of a pipeline.
func shaderSource(kind gpucore.PipelineKind) string {
	switch kind {
	case gpucore.PipelineImage:
		return imageShaderSource
	case gpucore.PipelineText:
		return textShaderSource
	default:
		return triangleShaderSource
	}
}

// compileWGSL compiles WGSL source to SPIR-V words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// createShaderModule compiles a pipeline's shader to SPIR-V. When naga cannot
// lower the source the WGSL is handed to the backend as is.
func createShaderModule(device hal.Device, kind gpucore.PipelineKind) (hal.ShaderModule, error) {
	wgsl := shaderSource(kind)
	source := hal.ShaderSource{WGSL: wgsl}
	if code, err := compileWGSL(wgsl); err == nil {
		source = hal.ShaderSource{SPIRV: code}
	} else {
		uirender.Logger().Debug("native: naga compile failed, using WGSL",
			"pipeline", kind, "error", err)
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  kind.String() + "_shader",
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("native: %s shader module: %w", kind, err)
	}
	return module, nil
}
