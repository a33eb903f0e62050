// Package glcore implements graphics.GL on the go-gl OpenGL 4.1 core
// profile bindings.
package glcore

import (
	"fmt"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glbatch/graphics"
)

var glInitOnce sync.Once
var glInitErr error

// Context issues calls on the OpenGL context current on the calling thread.
type Context struct{}

var _ graphics.GL = (*Context)(nil)

// New loads the OpenGL function pointers on first use and returns a Context.
// A context must already be current on the calling thread.
func New() (*Context, error) {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}
	return &Context{}, nil
}

func (c *Context) CreateShader(stage graphics.Enum) uint32 {
	return gl.CreateShader(uint32(stage))
}

func (c *Context) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (c *Context) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (c *Context) GetShaderiv(shader uint32, pname graphics.Enum) int32 {
	var v int32
	gl.GetShaderiv(shader, uint32(pname), &v)
	return v
}

func (c *Context) GetShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (c *Context) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (c *Context) CreateProgram() uint32 { return gl.CreateProgram() }

func (c *Context) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (c *Context) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (c *Context) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (c *Context) GetProgramiv(program uint32, pname graphics.Enum) int32 {
	var v int32
	gl.GetProgramiv(program, uint32(pname), &v)
	return v
}

func (c *Context) GetProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (c *Context) UseProgram(program uint32) { gl.UseProgram(program) }

func (c *Context) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (c *Context) GetActiveAttrib(program, index uint32) (string, int32, graphics.Enum) {
	var maxLength int32
	gl.GetProgramiv(program, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLength)
	name := make([]uint8, maxLength+1)
	var length, size int32
	var xtype uint32
	gl.GetActiveAttrib(program, index, int32(len(name)), &length, &size, &xtype, &name[0])
	return string(name[:length]), size, graphics.Enum(xtype)
}

func (c *Context) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) GetActiveUniform(program, index uint32) (string, int32, graphics.Enum) {
	var maxLength int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLength)
	name := make([]uint8, maxLength+1)
	var length, size int32
	var xtype uint32
	gl.GetActiveUniform(program, index, int32(len(name)), &length, &size, &xtype, &name[0])
	return string(name[:length]), size, graphics.Enum(xtype)
}

func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) Uniform1fv(location int32, v []float32) {
	if len(v) > 0 {
		gl.Uniform1fv(location, int32(len(v)), &v[0])
	}
}

func (c *Context) Uniform2fv(location int32, v []float32) {
	if len(v) > 0 {
		gl.Uniform2fv(location, int32(len(v)/2), &v[0])
	}
}

func (c *Context) Uniform3fv(location int32, v []float32) {
	if len(v) > 0 {
		gl.Uniform3fv(location, int32(len(v)/3), &v[0])
	}
}

func (c *Context) Uniform4fv(location int32, v []float32) {
	if len(v) > 0 {
		gl.Uniform4fv(location, int32(len(v)/4), &v[0])
	}
}

func (c *Context) Uniform1iv(location int32, v []int32) {
	if len(v) > 0 {
		gl.Uniform1iv(location, int32(len(v)), &v[0])
	}
}

func (c *Context) Uniform2iv(location int32, v []int32) {
	if len(v) > 0 {
		gl.Uniform2iv(location, int32(len(v)/2), &v[0])
	}
}

func (c *Context) Uniform3iv(location int32, v []int32) {
	if len(v) > 0 {
		gl.Uniform3iv(location, int32(len(v)/3), &v[0])
	}
}

func (c *Context) Uniform4iv(location int32, v []int32) {
	if len(v) > 0 {
		gl.Uniform4iv(location, int32(len(v)/4), &v[0])
	}
}

func (c *Context) Uniform1uiv(location int32, v []uint32) {
	if len(v) > 0 {
		gl.Uniform1uiv(location, int32(len(v)), &v[0])
	}
}

func (c *Context) Uniform2uiv(location int32, v []uint32) {
	if len(v) > 0 {
		gl.Uniform2uiv(location, int32(len(v)/2), &v[0])
	}
}

func (c *Context) Uniform3uiv(location int32, v []uint32) {
	if len(v) > 0 {
		gl.Uniform3uiv(location, int32(len(v)/3), &v[0])
	}
}

func (c *Context) Uniform4uiv(location int32, v []uint32) {
	if len(v) > 0 {
		gl.Uniform4uiv(location, int32(len(v)/4), &v[0])
	}
}

func (c *Context) UniformMatrix2fv(location int32, transpose bool, v []float32) {
	if len(v) > 0 {
		gl.UniformMatrix2fv(location, int32(len(v)/4), transpose, &v[0])
	}
}

func (c *Context) UniformMatrix3fv(location int32, transpose bool, v []float32) {
	if len(v) > 0 {
		gl.UniformMatrix3fv(location, int32(len(v)/9), transpose, &v[0])
	}
}

func (c *Context) UniformMatrix4fv(location int32, transpose bool, v []float32) {
	if len(v) > 0 {
		gl.UniformMatrix4fv(location, int32(len(v)/16), transpose, &v[0])
	}
}

func (c *Context) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (c *Context) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (c *Context) BindBuffer(target graphics.Enum, buffer uint32) {
	gl.BindBuffer(uint32(target), buffer)
}

// BufferData orphans and refills the bound buffer. An empty slice still
// (re)allocates zero bytes so stale contents are not drawn.
func (c *Context) BufferData(target graphics.Enum, data []byte, usage graphics.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data), gl.Ptr(&data[0]), uint32(usage))
}

func (c *Context) GenVertexArray() uint32 {
	var array uint32
	gl.GenVertexArrays(1, &array)
	return array
}

func (c *Context) DeleteVertexArray(array uint32) { gl.DeleteVertexArrays(1, &array) }

func (c *Context) BindVertexArray(array uint32) { gl.BindVertexArray(array) }

func (c *Context) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (c *Context) VertexAttribPointer(index uint32, size int32, xtype graphics.Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(xtype), normalized, stride, uintptr(offset))
}

func (c *Context) VertexAttribIPointer(index uint32, size int32, xtype graphics.Enum, stride int32, offset int) {
	gl.VertexAttribIPointer(index, size, uint32(xtype), stride, gl.PtrOffset(offset))
}

func (c *Context) DrawArrays(mode graphics.Enum, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (c *Context) DrawElements(mode graphics.Enum, count int32, xtype graphics.Enum, offset int) {
	gl.DrawElements(uint32(mode), count, uint32(xtype), gl.PtrOffset(offset))
}

func (c *Context) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (c *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (c *Context) Clear(mask graphics.Enum) { gl.Clear(uint32(mask)) }

func (c *Context) Enable(capability graphics.Enum) { gl.Enable(uint32(capability)) }

func (c *Context) BlendFunc(sfactor, dfactor graphics.Enum) {
	gl.BlendFunc(uint32(sfactor), uint32(dfactor))
}

func (c *Context) GetString(name graphics.Enum) string {
	return gl.GoStr(gl.GetString(uint32(name)))
}
