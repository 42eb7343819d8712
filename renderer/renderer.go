// Package renderer is the GPU-side consumer of the frame pipeline: it uploads
// the finalized uniform and palette blocks and draws the active procedural
// pattern over a fullscreen quad. It never mutates a snapshot.
package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/jp206100/motion-hub/frame"
	"github.com/jp206100/motion-hub/uniforms"
)

// Binding points for the two std140 blocks.
const (
	frameStateBinding = 0
	paletteBinding    = 1
)

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// Renderer draws published frames. The layout version is fixed at creation
// and must match the version the producer was configured with.
type Renderer struct {
	version    uniforms.Version
	program    uint32
	quadVAO    uint32
	quadVBO    uint32
	frameUBO   uint32
	paletteUBO uint32
}

// NewRenderer compiles the pattern program for the given layout version and
// allocates the uniform buffers. Requires a current GL context.
func NewRenderer(version uniforms.Version) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL bindings: %w", err)
	}

	r := &Renderer{version: version}

	var err error
	r.program, err = newProgram(vertexShaderSource, fragmentShaderSource(version == uniforms.V1))
	if err != nil {
		return nil, fmt.Errorf("failed to create pattern program: %w", err)
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.frameUBO = newUniformBuffer(r.blockSize())
	var pal uniforms.ColorPalette
	r.paletteUBO = newUniformBuffer(pal.Size())

	if err := r.bindBlock("FrameState", frameStateBinding, r.frameUBO); err != nil {
		return nil, err
	}
	if err := r.bindBlock("Palette", paletteBinding, r.paletteUBO); err != nil {
		return nil, err
	}

	return r, nil
}

// frameBlock narrows the snapshot to the configured layout.
func (r *Renderer) frameBlock(u uniforms.FrameUniforms) uniforms.Block {
	if r.version == uniforms.V1 {
		c := uniforms.Compact(u)
		return &c
	}
	return &u
}

// blockSize returns the byte size of the configured uniform layout.
func (r *Renderer) blockSize() int {
	return r.frameBlock(uniforms.FrameUniforms{}).Size()
}

// Draw uploads one published frame and renders it to the current framebuffer.
func (r *Renderer) Draw(f frame.Frame, width, height int) {
	data := r.frameBlock(f.Uniforms).Marshal()
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.frameUBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))

	palData := f.Palette.Marshal()
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.paletteUBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(palData), gl.Ptr(palData))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(r.program)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// Shutdown releases the GL objects.
func (r *Renderer) Shutdown() {
	gl.DeleteProgram(r.program)
	gl.DeleteBuffers(1, &r.frameUBO)
	gl.DeleteBuffers(1, &r.paletteUBO)
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
}

func newUniformBuffer(size int) uint32 {
	var ubo uint32
	gl.GenBuffers(1, &ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return ubo
}

func (r *Renderer) bindBlock(name string, binding uint32, ubo uint32) error {
	idx := gl.GetUniformBlockIndex(r.program, gl.Str(name+"\x00"))
	if idx == gl.INVALID_INDEX {
		return fmt.Errorf("uniform block %s not found in program", name)
	}
	gl.UniformBlockBinding(r.program, idx, binding)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, ubo)
	return nil
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
