package shader

import (
	"testing"

	"github.com/richinsley/glbatch/attrib"
	"github.com/richinsley/glbatch/graphics"
	"github.com/richinsley/glbatch/graphics/glfake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertexShader = `
#version 410 core
layout(location = 0) in vec2 position;
in vec4 color;
in uvec2 glyph;

uniform mat4 u_projection;
uniform vec2 u_offsets[4];

out vec4 v_color;

void main() {
    v_color = color;
    gl_Position = u_projection * vec4(position, 0.0, 1.0);
}
`

const testFragmentShader = `
#version 410 core
in vec4 v_color;
out vec4 fragColor;

uniform float u_time;
uniform sampler2D u_texture;
uniform bool u_enabled;
uniform mat4 u_projection;

void main() {
    fragColor = v_color;
}
`

func newTestProgram(t *testing.T, gl *glfake.GL) *Program {
	t.Helper()
	p, err := NewProgram(gl, testVertexShader, testFragmentShader)
	require.NoError(t, err)
	return p
}

func TestNewProgramReflectsAttributes(t *testing.T) {
	gl := glfake.New()
	p := newTestProgram(t, gl)

	pos, ok := p.Attribute("position")
	require.True(t, ok)
	assert.Equal(t, uint32(0), pos.Location)
	assert.Equal(t, graphics.FLOAT_VEC2, pos.Type)
	assert.Equal(t, 2, pos.Components)
	assert.Equal(t, attrib.Float32, pos.Kind)
	assert.Equal(t, attrib.FloatPointer, pos.Binding)

	glyph, ok := p.Attribute("glyph")
	require.True(t, ok)
	assert.Equal(t, attrib.Uint32, glyph.Kind)
	assert.Equal(t, attrib.IntegerPointer, glyph.Binding)

	var names []string
	for _, l := range p.Attributes() {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"position", "color", "glyph"}, names)

	_, ok = p.Attribute("v_color")
	assert.False(t, ok)
}

func TestNewProgramReflectsUniforms(t *testing.T) {
	gl := glfake.New()
	p := newTestProgram(t, gl)

	offsets, ok := p.Uniform("u_offsets")
	require.True(t, ok)
	assert.Equal(t, int32(4), offsets.Size)
	assert.Equal(t, graphics.FLOAT_VEC2, offsets.Type)
	assert.GreaterOrEqual(t, offsets.Location, int32(0))

	proj, ok := p.Uniform("u_projection")
	require.True(t, ok)
	assert.Equal(t, int32(1), proj.Size)
	assert.Equal(t, graphics.FLOAT_MAT4, proj.Type)

	assert.Len(t, p.Uniforms(), 5)
}

func TestNewProgramReleasesShaders(t *testing.T) {
	gl := glfake.New()
	p := newTestProgram(t, gl)

	assert.Empty(t, gl.Shaders)
	require.Contains(t, gl.Programs, p.Handle())
	assert.Empty(t, gl.Programs[p.Handle()].Shaders)

	p.Delete()
	assert.Empty(t, gl.Programs)
	assert.Zero(t, p.Handle())
}

func TestNewProgramSkipsBuiltins(t *testing.T) {
	gl := glfake.New()
	gl.Builtins = []glfake.Resource{{Name: "gl_VertexID", Size: 1, Type: graphics.INT, Location: -1}}
	p := newTestProgram(t, gl)

	_, ok := p.Attribute("gl_VertexID")
	assert.False(t, ok)
	assert.Len(t, p.Attributes(), 3)
}

func TestCompileError(t *testing.T) {
	gl := glfake.New()
	_, err := NewProgram(gl, "#error broken stage", testFragmentShader)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, graphics.VERTEX_SHADER, ce.Stage)
	assert.Contains(t, ce.Log, "broken stage")
	assert.Contains(t, err.Error(), "failed to compile vertex shader")
	assert.Empty(t, gl.Shaders)
}

func TestCompileErrorInFragmentReleasesVertex(t *testing.T) {
	gl := glfake.New()
	_, err := NewProgram(gl, testVertexShader, "uniform vec5 nope;")

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, graphics.FRAGMENT_SHADER, ce.Stage)
	assert.Empty(t, gl.Shaders)
	assert.Empty(t, gl.Programs)
}

func TestLinkError(t *testing.T) {
	gl := glfake.New()
	gl.LinkLog = "error: varying v_color not written"
	_, err := NewProgram(gl, testVertexShader, testFragmentShader)

	var le *LinkError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, gl.LinkLog, le.Log)
	assert.Empty(t, gl.Programs)
	assert.Empty(t, gl.Shaders)
}

func TestMatrixAttributeRejected(t *testing.T) {
	gl := glfake.New()
	_, err := NewProgram(gl, "in mat4 model;", testFragmentShader)

	var ute *attrib.UnsupportedTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, graphics.FLOAT_MAT4, ute.Type)
	assert.Empty(t, gl.Programs)
}

func TestCompileTrimsSource(t *testing.T) {
	gl := glfake.New()
	id, err := Compile(gl, "\n\n  in vec2 position;  \n\t", graphics.VERTEX_SHADER)
	require.NoError(t, err)
	assert.Equal(t, "in vec2 position;", gl.Shaders[id].Source)
}

func TestBuiltinBatchShaders(t *testing.T) {
	for _, gles := range []bool{false, true} {
		gl := glfake.New()
		p, err := NewProgram(gl, BatchVertexShader(gles), BatchFragmentShader(gles))
		require.NoError(t, err)

		for name, components := range map[string]int{"position": 2, "tex_coord": 2, "color": 4} {
			l, ok := p.Attribute(name)
			require.True(t, ok, name)
			assert.Equal(t, components, l.Components, name)
		}
		_, ok := p.Uniform("u_projection")
		assert.True(t, ok)
		_, ok = p.Uniform("u_time")
		assert.True(t, ok)
	}
}
