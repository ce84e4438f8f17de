package recording

import "github.com/gogpu/uirender/gpucore"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdSetPipeline     CommandType = iota // Select a pipeline
	CmdSetScissorRect                     // Restrict drawing to a rectangle
	CmdSetBindings                        // Bind uniform and texture
	CmdSetVertexBuffer                    // Bind a vertex buffer
	CmdDraw                               // Issue a draw
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSetPipeline:     "SetPipeline",
	CmdSetScissorRect:  "SetScissorRect",
	CmdSetBindings:     "SetBindings",
	CmdSetVertexBuffer: "SetVertexBuffer",
	CmdDraw:            "Draw",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// SetPipelineCommand selects a pipeline.
type SetPipelineCommand struct {
	Pipeline gpucore.PipelineKind
}

// Type implements Command.
func (SetPipelineCommand) Type() CommandType { return CmdSetPipeline }

// ScissorRect is a rectangle in physical pixels.
type ScissorRect struct {
	X, Y, Width, Height uint32
}

// SetScissorRectCommand restricts subsequent draws.
type SetScissorRectCommand struct {
	Rect ScissorRect
}

// Type implements Command.
func (SetScissorRectCommand) Type() CommandType { return CmdSetScissorRect }

// SetBindingsCommand binds the projection uniform and a texture.
type SetBindingsCommand struct {
	Uniform gpucore.BufferID
	Texture gpucore.TextureID
}

// Type implements Command.
func (SetBindingsCommand) Type() CommandType { return CmdSetBindings }

// SetVertexBufferCommand binds a vertex buffer to a slot.
type SetVertexBufferCommand struct {
	Slot   uint32
	Buffer gpucore.BufferID
	Offset uint64
}

// Type implements Command.
func (SetVertexBufferCommand) Type() CommandType { return CmdSetVertexBuffer }

// DrawCommand issues a non-indexed draw.
type DrawCommand struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }
