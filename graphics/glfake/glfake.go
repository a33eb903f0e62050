// Package glfake is an in-memory graphics.GL for tests. It tracks objects
// and bindings, keeps uploaded buffer contents, records draw and uniform
// calls, and reflects active attributes and uniforms by scanning shader
// declarations.
package glfake

import (
	"encoding/binary"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/richinsley/glbatch/graphics"
)

// Shader is a shader object.
type Shader struct {
	Stage    graphics.Enum
	Source   string
	Compiled bool
	Log      string
}

// Resource is an active attribute or uniform.
type Resource struct {
	Name     string
	Size     int32
	Type     graphics.Enum
	Location int32
}

// Program is a program object.
type Program struct {
	Shaders    []uint32
	Linked     bool
	Log        string
	Attributes []Resource
	Uniforms   []Resource
}

// Buffer is a buffer object and its last upload.
type Buffer struct {
	Data    []byte
	Usage   graphics.Enum
	Uploads int
}

// AttribPointer records one glVertexAttrib*Pointer call.
type AttribPointer struct {
	Buffer     uint32
	Size       int32
	Type       graphics.Enum
	Integer    bool
	Normalized bool
	Stride     int32
	Offset     int
	Enabled    bool
}

// VertexArray is a vertex array object.
type VertexArray struct {
	Attribs       map[uint32]*AttribPointer
	ElementBuffer uint32
}

// Draw records one draw call.
type Draw struct {
	Mode      graphics.Enum
	First     int32
	Count     int32
	Indexed   bool
	IndexType graphics.Enum
	Offset    int
	Program   uint32
	Array     uint32
}

// UniformKey identifies a uniform location within a program.
type UniformKey struct {
	Program  uint32
	Location int32
}

// UniformCall records the last value set at a location.
type UniformCall struct {
	Func      string
	Floats    []float32
	Ints      []int32
	Uints     []uint32
	Transpose bool
}

// GL implements graphics.GL.
type GL struct {
	Shaders      map[uint32]*Shader
	Programs     map[uint32]*Program
	Buffers      map[uint32]*Buffer
	VertexArrays map[uint32]*VertexArray
	Uniforms     map[UniformKey]UniformCall
	Draws        []Draw

	ArrayBuffer    uint32
	CurrentArray   uint32
	CurrentProgram uint32
	ViewportRect   [4]int32
	ClearRGBA      [4]float32
	Clears         int
	Enabled        map[graphics.Enum]bool

	// LinkLog, when set, makes every link fail with this log.
	LinkLog string
	// Builtins are reported as active attributes of every linked program,
	// after the declared ones. Drivers list inputs such as gl_VertexID this
	// way, with location -1.
	Builtins []Resource
	// Version is returned by GetString(VERSION).
	Version string

	nextID uint32
}

var _ graphics.GL = (*GL)(nil)

// New returns an empty context.
func New() *GL {
	return &GL{
		Shaders:      make(map[uint32]*Shader),
		Programs:     make(map[uint32]*Program),
		Buffers:      make(map[uint32]*Buffer),
		VertexArrays: make(map[uint32]*VertexArray),
		Uniforms:     make(map[UniformKey]UniformCall),
		Enabled:      make(map[graphics.Enum]bool),
		Version:      "4.1 glfake",
	}
}

func (g *GL) id() uint32 {
	g.nextID++
	return g.nextID
}

func (g *GL) CreateShader(stage graphics.Enum) uint32 {
	id := g.id()
	g.Shaders[id] = &Shader{Stage: stage}
	return id
}

func (g *GL) ShaderSource(shader uint32, source string) {
	if s, ok := g.Shaders[shader]; ok {
		s.Source = source
	}
}

var errorDirective = regexp.MustCompile(`(?m)^\s*#error\s*(.*)$`)

// CompileShader fails on an #error directive or an unknown declared type.
func (g *GL) CompileShader(shader uint32) {
	s, ok := g.Shaders[shader]
	if !ok {
		return
	}
	s.Compiled, s.Log = true, ""
	if m := errorDirective.FindStringSubmatch(s.Source); m != nil {
		s.Compiled = false
		s.Log = fmt.Sprintf("ERROR: 0:1: '#error' : %s", strings.TrimSpace(m[1]))
		return
	}
	for _, d := range declarations(s) {
		if _, ok := typeNames[d.typeName]; !ok {
			s.Compiled = false
			s.Log = fmt.Sprintf("ERROR: 0:1: '%s' : syntax error: unknown type", d.typeName)
			return
		}
	}
}

func (g *GL) GetShaderiv(shader uint32, pname graphics.Enum) int32 {
	s, ok := g.Shaders[shader]
	if !ok {
		return 0
	}
	switch pname {
	case graphics.COMPILE_STATUS:
		return boolInt(s.Compiled)
	case graphics.INFO_LOG_LENGTH:
		return logLength(s.Log)
	}
	return 0
}

func (g *GL) GetShaderInfoLog(shader uint32) string {
	if s, ok := g.Shaders[shader]; ok {
		return s.Log
	}
	return ""
}

func (g *GL) DeleteShader(shader uint32) { delete(g.Shaders, shader) }

func (g *GL) CreateProgram() uint32 {
	id := g.id()
	g.Programs[id] = &Program{}
	return id
}

func (g *GL) AttachShader(program, shader uint32) {
	if p, ok := g.Programs[program]; ok {
		p.Shaders = append(p.Shaders, shader)
	}
}

func (g *GL) DetachShader(program, shader uint32) {
	p, ok := g.Programs[program]
	if !ok {
		return
	}
	for i, s := range p.Shaders {
		if s == shader {
			p.Shaders = append(p.Shaders[:i], p.Shaders[i+1:]...)
			return
		}
	}
}

// LinkProgram requires one compiled vertex and one compiled fragment shader.
// Attributes come from the vertex stage's inputs; uniforms from both stages.
func (g *GL) LinkProgram(program uint32) {
	p, ok := g.Programs[program]
	if !ok {
		return
	}
	p.Linked, p.Log, p.Attributes, p.Uniforms = false, "", nil, nil
	if g.LinkLog != "" {
		p.Log = g.LinkLog
		return
	}
	var vs, fs *Shader
	for _, id := range p.Shaders {
		s := g.Shaders[id]
		if s == nil || !s.Compiled {
			p.Log = "error: attached shader is not compiled"
			return
		}
		switch s.Stage {
		case graphics.VERTEX_SHADER:
			vs = s
		case graphics.FRAGMENT_SHADER:
			fs = s
		}
	}
	if vs == nil || fs == nil {
		p.Log = "error: program needs a vertex and a fragment shader"
		return
	}

	var next int32
	used := map[int32]bool{}
	for _, d := range declarations(vs) {
		if d.qualifier != "in" || d.location < 0 {
			continue
		}
		used[d.location] = true
	}
	seen := map[string]bool{}
	for _, s := range []*Shader{vs, fs} {
		for _, d := range declarations(s) {
			switch {
			case d.qualifier == "in" && s == vs:
				loc := d.location
				if loc < 0 {
					for used[next] {
						next++
					}
					loc = next
					used[loc] = true
				}
				p.Attributes = append(p.Attributes, Resource{Name: d.name, Size: d.size, Type: typeNames[d.typeName], Location: loc})
			case d.qualifier == "uniform" && !seen[d.name]:
				seen[d.name] = true
				name := d.name
				if d.array {
					name += "[0]"
				}
				p.Uniforms = append(p.Uniforms, Resource{Name: name, Size: d.size, Type: typeNames[d.typeName], Location: int32(len(p.Uniforms))})
			}
		}
	}
	p.Attributes = append(p.Attributes, g.Builtins...)
	p.Linked = true
}

func (g *GL) GetProgramiv(program uint32, pname graphics.Enum) int32 {
	p, ok := g.Programs[program]
	if !ok {
		return 0
	}
	switch pname {
	case graphics.LINK_STATUS:
		return boolInt(p.Linked)
	case graphics.INFO_LOG_LENGTH:
		return logLength(p.Log)
	case graphics.ACTIVE_ATTRIBUTES:
		return int32(len(p.Attributes))
	case graphics.ACTIVE_UNIFORMS:
		return int32(len(p.Uniforms))
	case graphics.ACTIVE_ATTRIBUTE_MAX_LENGTH:
		return maxNameLength(p.Attributes)
	case graphics.ACTIVE_UNIFORM_MAX_LENGTH:
		return maxNameLength(p.Uniforms)
	}
	return 0
}

func (g *GL) GetProgramInfoLog(program uint32) string {
	if p, ok := g.Programs[program]; ok {
		return p.Log
	}
	return ""
}

func (g *GL) UseProgram(program uint32) { g.CurrentProgram = program }

func (g *GL) DeleteProgram(program uint32) {
	delete(g.Programs, program)
	if g.CurrentProgram == program {
		g.CurrentProgram = 0
	}
}

func (g *GL) GetActiveAttrib(program, index uint32) (string, int32, graphics.Enum) {
	p, ok := g.Programs[program]
	if !ok || int(index) >= len(p.Attributes) {
		return "", 0, graphics.NONE
	}
	r := p.Attributes[index]
	return r.Name, r.Size, r.Type
}

func (g *GL) GetAttribLocation(program uint32, name string) int32 {
	if p, ok := g.Programs[program]; ok {
		for _, r := range p.Attributes {
			if r.Name == name {
				return r.Location
			}
		}
	}
	return -1
}

func (g *GL) GetActiveUniform(program, index uint32) (string, int32, graphics.Enum) {
	p, ok := g.Programs[program]
	if !ok || int(index) >= len(p.Uniforms) {
		return "", 0, graphics.NONE
	}
	r := p.Uniforms[index]
	return r.Name, r.Size, r.Type
}

func (g *GL) GetUniformLocation(program uint32, name string) int32 {
	if p, ok := g.Programs[program]; ok {
		for _, r := range p.Uniforms {
			if r.Name == name || strings.TrimSuffix(r.Name, "[0]") == name {
				return r.Location
			}
		}
	}
	return -1
}

func (g *GL) setUniform(fn string, location int32, call UniformCall) {
	if location < 0 {
		return
	}
	call.Func = fn
	g.Uniforms[UniformKey{Program: g.CurrentProgram, Location: location}] = call
}

func (g *GL) Uniform1fv(location int32, v []float32) {
	g.setUniform("Uniform1fv", location, UniformCall{Floats: clone(v)})
}
func (g *GL) Uniform2fv(location int32, v []float32) {
	g.setUniform("Uniform2fv", location, UniformCall{Floats: clone(v)})
}
func (g *GL) Uniform3fv(location int32, v []float32) {
	g.setUniform("Uniform3fv", location, UniformCall{Floats: clone(v)})
}
func (g *GL) Uniform4fv(location int32, v []float32) {
	g.setUniform("Uniform4fv", location, UniformCall{Floats: clone(v)})
}
func (g *GL) Uniform1iv(location int32, v []int32) {
	g.setUniform("Uniform1iv", location, UniformCall{Ints: clone(v)})
}
func (g *GL) Uniform2iv(location int32, v []int32) {
	g.setUniform("Uniform2iv", location, UniformCall{Ints: clone(v)})
}
func (g *GL) Uniform3iv(location int32, v []int32) {
	g.setUniform("Uniform3iv", location, UniformCall{Ints: clone(v)})
}
func (g *GL) Uniform4iv(location int32, v []int32) {
	g.setUniform("Uniform4iv", location, UniformCall{Ints: clone(v)})
}
func (g *GL) Uniform1uiv(location int32, v []uint32) {
	g.setUniform("Uniform1uiv", location, UniformCall{Uints: clone(v)})
}
func (g *GL) Uniform2uiv(location int32, v []uint32) {
	g.setUniform("Uniform2uiv", location, UniformCall{Uints: clone(v)})
}
func (g *GL) Uniform3uiv(location int32, v []uint32) {
	g.setUniform("Uniform3uiv", location, UniformCall{Uints: clone(v)})
}
func (g *GL) Uniform4uiv(location int32, v []uint32) {
	g.setUniform("Uniform4uiv", location, UniformCall{Uints: clone(v)})
}
func (g *GL) UniformMatrix2fv(location int32, transpose bool, v []float32) {
	g.setUniform("UniformMatrix2fv", location, UniformCall{Floats: clone(v), Transpose: transpose})
}
func (g *GL) UniformMatrix3fv(location int32, transpose bool, v []float32) {
	g.setUniform("UniformMatrix3fv", location, UniformCall{Floats: clone(v), Transpose: transpose})
}
func (g *GL) UniformMatrix4fv(location int32, transpose bool, v []float32) {
	g.setUniform("UniformMatrix4fv", location, UniformCall{Floats: clone(v), Transpose: transpose})
}

func (g *GL) GenBuffer() uint32 {
	id := g.id()
	g.Buffers[id] = &Buffer{}
	return id
}

func (g *GL) DeleteBuffer(buffer uint32) {
	delete(g.Buffers, buffer)
	if g.ArrayBuffer == buffer {
		g.ArrayBuffer = 0
	}
}

// BindBuffer tracks ARRAY_BUFFER globally and ELEMENT_ARRAY_BUFFER in the
// bound vertex array, as GL does.
func (g *GL) BindBuffer(target graphics.Enum, buffer uint32) {
	switch target {
	case graphics.ARRAY_BUFFER:
		g.ArrayBuffer = buffer
	case graphics.ELEMENT_ARRAY_BUFFER:
		if va, ok := g.VertexArrays[g.CurrentArray]; ok {
			va.ElementBuffer = buffer
		}
	}
}

func (g *GL) BufferData(target graphics.Enum, data []byte, usage graphics.Enum) {
	var id uint32
	switch target {
	case graphics.ARRAY_BUFFER:
		id = g.ArrayBuffer
	case graphics.ELEMENT_ARRAY_BUFFER:
		if va, ok := g.VertexArrays[g.CurrentArray]; ok {
			id = va.ElementBuffer
		}
	}
	b, ok := g.Buffers[id]
	if !ok {
		return
	}
	b.Data = clone(data)
	b.Usage = usage
	b.Uploads++
}

func (g *GL) GenVertexArray() uint32 {
	id := g.id()
	g.VertexArrays[id] = &VertexArray{Attribs: make(map[uint32]*AttribPointer)}
	return id
}

func (g *GL) DeleteVertexArray(array uint32) {
	delete(g.VertexArrays, array)
	if g.CurrentArray == array {
		g.CurrentArray = 0
	}
}

func (g *GL) BindVertexArray(array uint32) { g.CurrentArray = array }

func (g *GL) attrib(index uint32) *AttribPointer {
	va, ok := g.VertexArrays[g.CurrentArray]
	if !ok {
		return nil
	}
	a, ok := va.Attribs[index]
	if !ok {
		a = &AttribPointer{}
		va.Attribs[index] = a
	}
	return a
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	if a := g.attrib(index); a != nil {
		a.Enabled = true
	}
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype graphics.Enum, normalized bool, stride int32, offset int) {
	if a := g.attrib(index); a != nil {
		a.Buffer, a.Size, a.Type, a.Integer, a.Normalized, a.Stride, a.Offset = g.ArrayBuffer, size, xtype, false, normalized, stride, offset
	}
}

func (g *GL) VertexAttribIPointer(index uint32, size int32, xtype graphics.Enum, stride int32, offset int) {
	if a := g.attrib(index); a != nil {
		a.Buffer, a.Size, a.Type, a.Integer, a.Normalized, a.Stride, a.Offset = g.ArrayBuffer, size, xtype, true, false, stride, offset
	}
}

func (g *GL) DrawArrays(mode graphics.Enum, first, count int32) {
	g.Draws = append(g.Draws, Draw{Mode: mode, First: first, Count: count, Program: g.CurrentProgram, Array: g.CurrentArray})
}

func (g *GL) DrawElements(mode graphics.Enum, count int32, xtype graphics.Enum, offset int) {
	g.Draws = append(g.Draws, Draw{Mode: mode, Count: count, Indexed: true, IndexType: xtype, Offset: offset, Program: g.CurrentProgram, Array: g.CurrentArray})
}

func (g *GL) Viewport(x, y, width, height int32) { g.ViewportRect = [4]int32{x, y, width, height} }

func (g *GL) ClearColor(r, gr, b, a float32) { g.ClearRGBA = [4]float32{r, gr, b, a} }

func (g *GL) Clear(mask graphics.Enum) { g.Clears++ }

func (g *GL) Enable(capability graphics.Enum) { g.Enabled[capability] = true }

func (g *GL) BlendFunc(sfactor, dfactor graphics.Enum) {}

func (g *GL) GetString(name graphics.Enum) string {
	if name == graphics.VERSION {
		return g.Version
	}
	return "glfake"
}

// Float32s decodes a buffer's contents as float32 values.
func (g *GL) Float32s(buffer uint32) []float32 {
	b, ok := g.Buffers[buffer]
	if !ok {
		return nil
	}
	out := make([]float32, len(b.Data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.NativeEndian.Uint32(b.Data[i*4:]))
	}
	return out
}

// Uint32s decodes a buffer's contents as uint32 values.
func (g *GL) Uint32s(buffer uint32) []uint32 {
	b, ok := g.Buffers[buffer]
	if !ok {
		return nil
	}
	out := make([]uint32, len(b.Data)/4)
	for i := range out {
		out[i] = binary.NativeEndian.Uint32(b.Data[i*4:])
	}
	return out
}

// Uint16s decodes a buffer's contents as uint16 values.
func (g *GL) Uint16s(buffer uint32) []uint16 {
	b, ok := g.Buffers[buffer]
	if !ok {
		return nil
	}
	out := make([]uint16, len(b.Data)/2)
	for i := range out {
		out[i] = binary.NativeEndian.Uint16(b.Data[i*2:])
	}
	return out
}

var typeNames = map[string]graphics.Enum{
	"float": graphics.FLOAT, "vec2": graphics.FLOAT_VEC2, "vec3": graphics.FLOAT_VEC3, "vec4": graphics.FLOAT_VEC4,
	"int": graphics.INT, "ivec2": graphics.INT_VEC2, "ivec3": graphics.INT_VEC3, "ivec4": graphics.INT_VEC4,
	"uint": graphics.UNSIGNED_INT, "uvec2": graphics.UNSIGNED_INT_VEC2, "uvec3": graphics.UNSIGNED_INT_VEC3, "uvec4": graphics.UNSIGNED_INT_VEC4,
	"bool": graphics.BOOL, "bvec2": graphics.BOOL_VEC2, "bvec3": graphics.BOOL_VEC3, "bvec4": graphics.BOOL_VEC4,
	"mat2": graphics.FLOAT_MAT2, "mat3": graphics.FLOAT_MAT3, "mat4": graphics.FLOAT_MAT4,
	"sampler2D": graphics.SAMPLER_2D, "sampler3D": graphics.SAMPLER_3D, "samplerCube": graphics.SAMPLER_CUBE,
}

type declaration struct {
	qualifier string
	typeName  string
	name      string
	size      int32
	array     bool
	location  int32
}

var declPattern = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?(in|uniform)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*(\d+)\s*\])?\s*;`)

func declarations(s *Shader) []declaration {
	var out []declaration
	for _, m := range declPattern.FindAllStringSubmatch(s.Source, -1) {
		d := declaration{qualifier: m[2], typeName: m[3], name: m[4], size: 1, location: -1}
		if m[1] != "" {
			loc, _ := strconv.Atoi(m[1])
			d.location = int32(loc)
		}
		if m[5] != "" {
			n, _ := strconv.Atoi(m[5])
			d.size, d.array = int32(n), true
		}
		out = append(out, d)
	}
	return out
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}

func maxNameLength(rs []Resource) int32 {
	var n int32
	for _, r := range rs {
		if l := int32(len(r.Name) + 1); l > n {
			n = l
		}
	}
	return n
}

func clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append([]T(nil), s...)
}
