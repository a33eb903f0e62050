// Package shader compiles and links GLSL programs and reflects their active
// attributes and uniforms.
package shader

import (
	"log"
	"sort"
	"strings"

	"github.com/richinsley/glbatch/attrib"
	"github.com/richinsley/glbatch/graphics"
)

// UniformLayout describes one active uniform.
type UniformLayout struct {
	Name     string
	Size     int32 // array length, 1 for scalars
	Type     graphics.Enum
	Location int32
}

// Program is a linked program and its reflected resources. The layouts
// mirror the program's active resources at link time and never change.
type Program struct {
	gl         graphics.GL
	handle     uint32
	attributes map[string]attrib.Layout
	uniforms   map[string]UniformLayout
}

// Compile compiles one shader stage from source, trimmed of surrounding
// whitespace.
func Compile(gl graphics.GL, source string, stage graphics.Enum) (uint32, error) {
	shader := gl.CreateShader(stage)
	gl.ShaderSource(shader, strings.TrimSpace(source))
	gl.CompileShader(shader)

	if gl.GetShaderiv(shader, graphics.COMPILE_STATUS) == int32(graphics.FALSE) {
		logText := gl.GetShaderInfoLog(shader)
		gl.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: logText}
	}
	return shader, nil
}

// Link attaches two compiled stages to a new program and links it. The
// shader objects are released once the program no longer needs them.
func Link(gl graphics.GL, vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	if gl.GetProgramiv(program, graphics.LINK_STATUS) == int32(graphics.FALSE) {
		logText := gl.GetProgramInfoLog(program)
		gl.DeleteProgram(program)
		return 0, &LinkError{Log: logText}
	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program, nil
}

// NewProgram compiles, links and reflects a program. On error every GL
// object created so far is released.
func NewProgram(gl graphics.GL, vertexSource, fragmentSource string) (*Program, error) {
	vertexShader, err := Compile(gl, vertexSource, graphics.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	fragmentShader, err := Compile(gl, fragmentSource, graphics.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return nil, err
	}
	handle, err := Link(gl, vertexShader, fragmentShader)
	if err != nil {
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)
		return nil, err
	}

	p := &Program{gl: gl, handle: handle}
	if p.attributes, err = enumerateAttributes(gl, handle); err != nil {
		gl.DeleteProgram(handle)
		return nil, err
	}
	p.uniforms = enumerateUniforms(gl, handle)

	log.Printf("Linked program %d: %d attributes, %d uniforms", handle, len(p.attributes), len(p.uniforms))
	return p, nil
}

func enumerateAttributes(gl graphics.GL, program uint32) (map[string]attrib.Layout, error) {
	count := gl.GetProgramiv(program, graphics.ACTIVE_ATTRIBUTES)
	out := make(map[string]attrib.Layout, count)
	for i := uint32(0); i < uint32(count); i++ {
		name, size, xtype := gl.GetActiveAttrib(program, i)
		location := gl.GetAttribLocation(program, name)
		// Built-in inputs such as gl_VertexID are reported without a slot.
		if location < 0 {
			continue
		}
		layout, err := attrib.NewLayout(name, uint32(location), xtype, size)
		if err != nil {
			return nil, err
		}
		out[name] = layout
	}
	return out, nil
}

func enumerateUniforms(gl graphics.GL, program uint32) map[string]UniformLayout {
	count := gl.GetProgramiv(program, graphics.ACTIVE_UNIFORMS)
	out := make(map[string]UniformLayout, count)
	for i := uint32(0); i < uint32(count); i++ {
		name, size, xtype := gl.GetActiveUniform(program, i)
		name = strings.TrimSuffix(name, "[0]")
		out[name] = UniformLayout{
			Name:     name,
			Size:     size,
			Type:     xtype,
			Location: gl.GetUniformLocation(program, name),
		}
	}
	return out
}

// Handle returns the GL program object.
func (p *Program) Handle() uint32 { return p.handle }

// Use makes p the current program.
func (p *Program) Use() { p.gl.UseProgram(p.handle) }

// Delete releases the program object.
func (p *Program) Delete() {
	if p.handle != 0 {
		p.gl.DeleteProgram(p.handle)
		p.handle = 0
	}
}

// Attribute returns the layout of an active attribute.
func (p *Program) Attribute(name string) (attrib.Layout, bool) {
	l, ok := p.attributes[name]
	return l, ok
}

// Attributes returns every attribute layout ordered by location.
func (p *Program) Attributes() []attrib.Layout {
	out := make([]attrib.Layout, 0, len(p.attributes))
	for _, l := range p.attributes {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}

// Uniform returns the layout of an active uniform.
func (p *Program) Uniform(name string) (UniformLayout, bool) {
	u, ok := p.uniforms[name]
	return u, ok
}

// Uniforms returns every uniform layout ordered by location.
func (p *Program) Uniforms() []UniformLayout {
	out := make([]UniformLayout, 0, len(p.uniforms))
	for _, u := range p.uniforms {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out
}
