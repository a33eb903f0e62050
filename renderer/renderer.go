package renderer

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glbatch/batch"
	"github.com/richinsley/glbatch/graphics"
	"github.com/richinsley/glbatch/shader"
	"github.com/richinsley/glbatch/vao"
)

// FrameFunc fills the batch for one frame. t is the time in seconds since Run
// started.
type FrameFunc func(b *batch.IndexedVertexBatch, t float64)

// UniformNames names the uniforms the renderer sets every frame.
type UniformNames struct {
	Projection string
	Time       string
}

// Renderer draws one indexed triangle batch per frame into a window.
type Renderer struct {
	context graphics.Context
	gl      graphics.GL
	program *shader.Program
	vao     *vao.Vao
	batch   *batch.IndexedVertexBatch

	uniforms   UniformNames
	clearColor [4]float32
	frameCount int
}

// NewRenderer links the program, binds its attributes and allocates a batch
// of maxQuads quads. The context must already be current.
func NewRenderer(ctx graphics.Context, gl graphics.GL, vertexSource, fragmentSource string, maxQuads int) (*Renderer, error) {
	r := &Renderer{
		context:    ctx,
		gl:         gl,
		uniforms:   UniformNames{Projection: "u_projection", Time: "u_time"},
		clearColor: [4]float32{0.08, 0.08, 0.1, 1},
	}
	log.Printf("OpenGL version: %s", gl.GetString(graphics.VERSION))

	var err error
	r.program, err = shader.NewProgram(gl, vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.vao, err = vao.New(gl, r.program)
	if err != nil {
		r.program.Delete()
		return nil, fmt.Errorf("failed to create vertex array: %w", err)
	}

	// Two triangles per quad.
	r.batch, err = batch.NewIndexedVertexBatch(r.program.Attributes(), 3, 2*maxQuads)
	if err != nil {
		r.vao.Delete()
		r.program.Delete()
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}

	gl.Enable(graphics.BLEND)
	gl.BlendFunc(graphics.SRC_ALPHA, graphics.ONE_MINUS_SRC_ALPHA)
	return r, nil
}

// SetClearColor sets the color each frame starts from.
func (r *Renderer) SetClearColor(red, green, blue, alpha float32) {
	r.clearColor = [4]float32{red, green, blue, alpha}
}

// SetUniformNames overrides the per-frame uniform names, for programs whose
// sources were translated.
func (r *Renderer) SetUniformNames(names UniformNames) {
	r.uniforms = names
}

// Program returns the linked program.
func (r *Renderer) Program() *shader.Program { return r.program }

// Batch returns the frame batch.
func (r *Renderer) Batch() *batch.IndexedVertexBatch { return r.batch }

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() int { return r.frameCount }

// setOptional sets a uniform the program may have optimized away.
func (r *Renderer) setOptional(name string, value any) error {
	err := r.program.SetUniform(name, value)
	var unknown *shader.UnknownUniformError
	if errors.As(err, &unknown) {
		return nil
	}
	return err
}

// RenderFrame clears the framebuffer, lets frame fill a fresh batch and
// draws it with a pixel-space projection (origin top left).
func (r *Renderer) RenderFrame(t float64, frame FrameFunc) error {
	width, height := r.context.GetFramebufferSize()
	r.gl.Viewport(0, 0, int32(width), int32(height))
	r.gl.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	r.gl.Clear(graphics.COLOR_BUFFER_BIT)

	r.batch.Reset()
	if frame != nil {
		frame(r.batch, t)
	}

	projection := mgl32.Ortho2D(0, float32(width), float32(height), 0)
	if err := r.setOptional(r.uniforms.Projection, projection); err != nil {
		return err
	}
	if err := r.setOptional(r.uniforms.Time, float32(t)); err != nil {
		return err
	}
	if err := DrawBatch(r.gl, r.batch.Batch(), r.vao); err != nil {
		return err
	}
	r.frameCount++
	return nil
}

// Run renders frames until the window is asked to close.
func (r *Renderer) Run(frame FrameFunc) error {
	startTime := r.context.Time()
	for !r.context.ShouldClose() {
		if err := r.RenderFrame(r.context.Time()-startTime, frame); err != nil {
			return err
		}
		r.context.EndFrame()
	}
	return nil
}

// Rebuild recreates the vertex array and its buffers.
func (r *Renderer) Rebuild() error {
	return r.vao.Rebuild()
}

// Generation reports how many times the vertex array was rebuilt.
func (r *Renderer) Generation() int { return r.vao.Generation() }

// Shutdown releases the GL objects and the window.
func (r *Renderer) Shutdown() {
	r.vao.Delete()
	r.program.Delete()
	r.context.Shutdown()
}
