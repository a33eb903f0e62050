package graphics

// GL is the subset of OpenGL 4.1 core / OpenGL ES 3.0 entry points used by
// this module. Implementations operate on the context that is current on the
// calling thread; no method is safe for concurrent use.
type GL interface {
	// Shaders
	CreateShader(stage Enum) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname Enum) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	// Programs
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname Enum) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// Reflection. GetActiveAttrib and GetActiveUniform return the name, the
	// array size and the declared type of the resource at index.
	GetActiveAttrib(program, index uint32) (name string, size int32, xtype Enum)
	GetAttribLocation(program uint32, name string) int32
	GetActiveUniform(program, index uint32) (name string, size int32, xtype Enum)
	GetUniformLocation(program uint32, name string) int32

	// Uniforms. The element count is derived from len(v).
	Uniform1fv(location int32, v []float32)
	Uniform2fv(location int32, v []float32)
	Uniform3fv(location int32, v []float32)
	Uniform4fv(location int32, v []float32)
	Uniform1iv(location int32, v []int32)
	Uniform2iv(location int32, v []int32)
	Uniform3iv(location int32, v []int32)
	Uniform4iv(location int32, v []int32)
	Uniform1uiv(location int32, v []uint32)
	Uniform2uiv(location int32, v []uint32)
	Uniform3uiv(location int32, v []uint32)
	Uniform4uiv(location int32, v []uint32)
	UniformMatrix2fv(location int32, transpose bool, v []float32)
	UniformMatrix3fv(location int32, transpose bool, v []float32)
	UniformMatrix4fv(location int32, transpose bool, v []float32)

	// Buffers
	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target Enum, buffer uint32)
	BufferData(target Enum, data []byte, usage Enum)

	// Vertex arrays
	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype Enum, normalized bool, stride int32, offset int)
	VertexAttribIPointer(index uint32, size int32, xtype Enum, stride int32, offset int)

	// Drawing
	DrawArrays(mode Enum, first, count int32)
	DrawElements(mode Enum, count int32, xtype Enum, offset int)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Enable(capability Enum)
	BlendFunc(sfactor, dfactor Enum)

	// GetString returns a string describing the current context, e.g. VERSION.
	GetString(name Enum) string
}
