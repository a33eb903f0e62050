package shader

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glbatch/graphics"
)

func isSampler(t graphics.Enum) bool {
	switch t {
	case graphics.SAMPLER_2D, graphics.SAMPLER_3D, graphics.SAMPLER_CUBE,
		graphics.SAMPLER_2D_SHADOW, graphics.SAMPLER_2D_ARRAY,
		graphics.INT_SAMPLER_2D, graphics.UNSIGNED_INT_SAMPLER_2D:
		return true
	}
	return false
}

// fits reports whether n values fill whole elements of a uniform with the
// given per-element width and array length.
func fits(n, width int, size int32) bool {
	return n > 0 && n%width == 0 && n/width <= int(size)
}

// SetUniform makes p current and uploads value to the named uniform. The Go
// type of value must match the reflected uniform type; slices may fill an
// array uniform from its first element.
func (p *Program) SetUniform(name string, value any) error {
	u, ok := p.uniforms[name]
	if !ok {
		return &UnknownUniformError{Name: name}
	}
	p.Use()
	if !p.upload(u, value) {
		return &UniformTypeError{Name: name, Type: u.Type, Value: value}
	}
	return nil
}

func (p *Program) upload(u UniformLayout, value any) bool {
	gl, loc := p.gl, u.Location
	switch v := value.(type) {
	case float32:
		if u.Type != graphics.FLOAT {
			return false
		}
		gl.Uniform1fv(loc, []float32{v})
	case []float32:
		return p.uploadFloats(u, v)
	case mgl32.Vec2:
		if u.Type != graphics.FLOAT_VEC2 {
			return false
		}
		gl.Uniform2fv(loc, v[:])
	case mgl32.Vec3:
		if u.Type != graphics.FLOAT_VEC3 {
			return false
		}
		gl.Uniform3fv(loc, v[:])
	case mgl32.Vec4:
		if u.Type != graphics.FLOAT_VEC4 {
			return false
		}
		gl.Uniform4fv(loc, v[:])
	case mgl32.Mat2:
		if u.Type != graphics.FLOAT_MAT2 {
			return false
		}
		gl.UniformMatrix2fv(loc, false, v[:])
	case mgl32.Mat3:
		if u.Type != graphics.FLOAT_MAT3 {
			return false
		}
		gl.UniformMatrix3fv(loc, false, v[:])
	case mgl32.Mat4:
		if u.Type != graphics.FLOAT_MAT4 {
			return false
		}
		gl.UniformMatrix4fv(loc, false, v[:])
	case int32:
		return p.uploadInts(u, []int32{v})
	case []int32:
		return p.uploadInts(u, v)
	case uint32:
		return p.uploadUints(u, []uint32{v})
	case []uint32:
		return p.uploadUints(u, v)
	case bool:
		if u.Type != graphics.BOOL {
			return false
		}
		var i int32
		if v {
			i = 1
		}
		gl.Uniform1iv(loc, []int32{i})
	default:
		return false
	}
	return true
}

func (p *Program) uploadFloats(u UniformLayout, v []float32) bool {
	var width int
	var set func(int32, []float32)
	switch u.Type {
	case graphics.FLOAT:
		width, set = 1, p.gl.Uniform1fv
	case graphics.FLOAT_VEC2:
		width, set = 2, p.gl.Uniform2fv
	case graphics.FLOAT_VEC3:
		width, set = 3, p.gl.Uniform3fv
	case graphics.FLOAT_VEC4:
		width, set = 4, p.gl.Uniform4fv
	case graphics.FLOAT_MAT2:
		width = 4
		set = func(loc int32, v []float32) { p.gl.UniformMatrix2fv(loc, false, v) }
	case graphics.FLOAT_MAT3:
		width = 9
		set = func(loc int32, v []float32) { p.gl.UniformMatrix3fv(loc, false, v) }
	case graphics.FLOAT_MAT4:
		width = 16
		set = func(loc int32, v []float32) { p.gl.UniformMatrix4fv(loc, false, v) }
	default:
		return false
	}
	if !fits(len(v), width, u.Size) {
		return false
	}
	set(u.Location, v)
	return true
}

// uploadInts covers the int family, samplers and bools, which GL sets
// through the glUniform*iv entry points.
func (p *Program) uploadInts(u UniformLayout, v []int32) bool {
	var width int
	var set func(int32, []int32)
	switch {
	case u.Type == graphics.INT || u.Type == graphics.BOOL || isSampler(u.Type):
		width, set = 1, p.gl.Uniform1iv
	case u.Type == graphics.INT_VEC2 || u.Type == graphics.BOOL_VEC2:
		width, set = 2, p.gl.Uniform2iv
	case u.Type == graphics.INT_VEC3 || u.Type == graphics.BOOL_VEC3:
		width, set = 3, p.gl.Uniform3iv
	case u.Type == graphics.INT_VEC4 || u.Type == graphics.BOOL_VEC4:
		width, set = 4, p.gl.Uniform4iv
	default:
		return false
	}
	if !fits(len(v), width, u.Size) {
		return false
	}
	set(u.Location, v)
	return true
}

func (p *Program) uploadUints(u UniformLayout, v []uint32) bool {
	var width int
	var set func(int32, []uint32)
	switch u.Type {
	case graphics.UNSIGNED_INT:
		width, set = 1, p.gl.Uniform1uiv
	case graphics.UNSIGNED_INT_VEC2:
		width, set = 2, p.gl.Uniform2uiv
	case graphics.UNSIGNED_INT_VEC3:
		width, set = 3, p.gl.Uniform3uiv
	case graphics.UNSIGNED_INT_VEC4:
		width, set = 4, p.gl.Uniform4uiv
	default:
		return false
	}
	if !fits(len(v), width, u.Size) {
		return false
	}
	set(u.Location, v)
	return true
}
