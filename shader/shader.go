package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const batchVertexShaderSourceGL = `#version 410 core
in vec2 position;
in vec2 tex_coord;
in vec4 color;

uniform mat4 u_projection;

out vec2 v_tex_coord;
out vec4 v_color;

void main() {
    v_tex_coord = tex_coord;
    v_color = color;
    gl_Position = u_projection * vec4(position, 0.0, 1.0);
}
`

// Draws the interpolated vertex color; tex_coord is passed through so a
// textured variant can share the vertex layout.
const batchFragmentShaderSourceGL = `#version 410 core
in vec2 v_tex_coord;
in vec4 v_color;
out vec4 fragColor;

uniform float u_time;

void main() {
    float pulse = 0.85 + 0.15 * sin(u_time + v_tex_coord.x * 6.2831853);
    fragColor = vec4(v_color.rgb * pulse, v_color.a);
}
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const batchVertexShaderSourceGLES = `#version 300 es
in vec2 position;
in vec2 tex_coord;
in vec4 color;

uniform mat4 u_projection;

out vec2 v_tex_coord;
out vec4 v_color;

void main() {
    v_tex_coord = tex_coord;
    v_color = color;
    gl_Position = u_projection * vec4(position, 0.0, 1.0);
}
`

const batchFragmentShaderSourceGLES = `#version 300 es
precision mediump float;
in vec2 v_tex_coord;
in vec4 v_color;
out vec4 fragColor;

uniform float u_time;

void main() {
    float pulse = 0.85 + 0.15 * sin(u_time + v_tex_coord.x * 6.2831853);
    fragColor = vec4(v_color.rgb * pulse, v_color.a);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

// BatchVertexShader returns the vertex stage of the built-in 2D batch
// program: attributes position (vec2), tex_coord (vec2) and color (vec4),
// uniform u_projection (mat4).
func BatchVertexShader(isGLES bool) string {
	if isGLES {
		return batchVertexShaderSourceGLES
	}
	return batchVertexShaderSourceGL
}

// BatchFragmentShader returns the fragment stage of the built-in batch
// program. It reads uniform u_time (float).
func BatchFragmentShader(isGLES bool) string {
	if isGLES {
		return batchFragmentShaderSourceGLES
	}
	return batchFragmentShaderSourceGL
}
