package shader

import (
	"fmt"

	"github.com/richinsley/glbatch/graphics"
)

// CompileError carries the compiler log of a rejected shader stage.
type CompileError struct {
	Stage graphics.Enum
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %v", stageName(e.Stage), e.Log)
}

// LinkError carries the linker log of a rejected program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %v", e.Log)
}

// UnknownUniformError is returned when setting a uniform the program does not
// expose. The compiler drops unused uniforms, so a declared name can still
// be unknown here.
type UnknownUniformError struct {
	Name string
}

func (e *UnknownUniformError) Error() string {
	return fmt.Sprintf("no active uniform named %s in program", e.Name)
}

// UniformTypeError is returned when a Go value does not match the reflected
// uniform type.
type UniformTypeError struct {
	Name  string
	Type  graphics.Enum
	Value any
}

func (e *UniformTypeError) Error() string {
	return fmt.Sprintf("uniform %s of type %s cannot be set from %T", e.Name, e.Type, e.Value)
}

func stageName(stage graphics.Enum) string {
	switch stage {
	case graphics.VERTEX_SHADER:
		return "vertex"
	case graphics.FRAGMENT_SHADER:
		return "fragment"
	}
	return stage.String()
}
