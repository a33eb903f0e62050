// Package attrib maps OpenGL attribute types to their component layout, CPU
// storage and binding entry point.
package attrib

import (
	"fmt"

	"github.com/richinsley/glbatch/graphics"
)

// See: https://www.khronos.org/opengl/wiki/Data_Type_(GLSL)

// ArrayKind is the element type of the CPU-side array backing an attribute
// or index buffer.
type ArrayKind int

const (
	UndefinedKind ArrayKind = iota
	Float32
	Int32
	Uint32
	Int16
	Uint16
	Int8
	Uint8
)

var kindNames = [...]string{"Undefined", "Float32", "Int32", "Uint32", "Int16", "Uint16", "Int8", "Uint8"}

func (k ArrayKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ArrayKind(%d)", int(k))
	}
	return kindNames[k]
}

// Bytes returns the size of one element in bytes.
func (k ArrayKind) Bytes() int {
	switch k {
	case Float32, Int32, Uint32:
		return 4
	case Int16, Uint16:
		return 2
	case Int8, Uint8:
		return 1
	}
	return 0
}

// GLType returns the scalar GL type matching the element type.
func (k ArrayKind) GLType() graphics.Enum {
	switch k {
	case Float32:
		return graphics.FLOAT
	case Int32:
		return graphics.INT
	case Uint32:
		return graphics.UNSIGNED_INT
	case Int16:
		return graphics.SHORT
	case Uint16:
		return graphics.UNSIGNED_SHORT
	case Int8:
		return graphics.BYTE
	case Uint8:
		return graphics.UNSIGNED_BYTE
	}
	return graphics.NONE
}

// Binding selects the glVertexAttrib*Pointer variant used for an attribute.
type Binding int

const (
	// FloatPointer binds through glVertexAttribPointer.
	FloatPointer Binding = iota + 1
	// IntegerPointer binds through glVertexAttribIPointer so integer inputs
	// are not converted to float.
	IntegerPointer
)

func (b Binding) String() string {
	switch b {
	case FloatPointer:
		return "FloatPointer"
	case IntegerPointer:
		return "IntegerPointer"
	}
	return fmt.Sprintf("Binding(%d)", int(b))
}

// UnsupportedTypeError reports a GL type that a mapping table does not cover.
type UnsupportedTypeError struct {
	Op   string
	Type graphics.Enum
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("attrib: %s: unsupported type %s", e.Op, e.Type)
}

// ComponentBaseType returns the scalar type of a scalar, vector or matrix
// type: FLOAT, INT, UNSIGNED_INT or BOOL.
func ComponentBaseType(t graphics.Enum) (graphics.Enum, error) {
	switch t {
	case graphics.FLOAT, graphics.FLOAT_VEC2, graphics.FLOAT_VEC3, graphics.FLOAT_VEC4,
		graphics.FLOAT_MAT2, graphics.FLOAT_MAT3, graphics.FLOAT_MAT4,
		graphics.FLOAT_MAT2x3, graphics.FLOAT_MAT2x4, graphics.FLOAT_MAT3x2,
		graphics.FLOAT_MAT3x4, graphics.FLOAT_MAT4x2, graphics.FLOAT_MAT4x3:
		return graphics.FLOAT, nil
	case graphics.BOOL, graphics.BOOL_VEC2, graphics.BOOL_VEC3, graphics.BOOL_VEC4:
		return graphics.BOOL, nil
	case graphics.INT, graphics.INT_VEC2, graphics.INT_VEC3, graphics.INT_VEC4:
		return graphics.INT, nil
	case graphics.UNSIGNED_INT, graphics.UNSIGNED_INT_VEC2, graphics.UNSIGNED_INT_VEC3, graphics.UNSIGNED_INT_VEC4:
		return graphics.UNSIGNED_INT, nil
	}
	return graphics.NONE, &UnsupportedTypeError{Op: "component base type", Type: t}
}

// ComponentCount returns the number of components of a scalar or vector
// type. Matrices and the bool family have no per-vertex layout and are
// rejected.
func ComponentCount(t graphics.Enum) (int, error) {
	switch t {
	case graphics.FLOAT, graphics.INT, graphics.UNSIGNED_INT, graphics.SHORT, graphics.UNSIGNED_SHORT:
		return 1, nil
	case graphics.FLOAT_VEC2, graphics.INT_VEC2, graphics.UNSIGNED_INT_VEC2:
		return 2, nil
	case graphics.FLOAT_VEC3, graphics.INT_VEC3, graphics.UNSIGNED_INT_VEC3:
		return 3, nil
	case graphics.FLOAT_VEC4, graphics.INT_VEC4, graphics.UNSIGNED_INT_VEC4:
		return 4, nil
	}
	return 0, &UnsupportedTypeError{Op: "component count", Type: t}
}

// CPUArrayKind returns the array kind used to store values of a scalar type.
func CPUArrayKind(base graphics.Enum) (ArrayKind, error) {
	switch base {
	case graphics.FLOAT:
		return Float32, nil
	case graphics.INT:
		return Int32, nil
	case graphics.UNSIGNED_INT:
		return Uint32, nil
	case graphics.SHORT:
		return Int16, nil
	case graphics.UNSIGNED_SHORT:
		return Uint16, nil
	case graphics.BYTE:
		return Int8, nil
	case graphics.UNSIGNED_BYTE:
		return Uint8, nil
	}
	return UndefinedKind, &UnsupportedTypeError{Op: "cpu array kind", Type: base}
}

// BindingMode returns the attribute pointer variant for a scalar type.
func BindingMode(base graphics.Enum) (Binding, error) {
	switch base {
	case graphics.FLOAT, graphics.HALF_FLOAT:
		return FloatPointer, nil
	case graphics.INT, graphics.UNSIGNED_INT, graphics.SHORT, graphics.UNSIGNED_SHORT,
		graphics.BYTE, graphics.UNSIGNED_BYTE:
		return IntegerPointer, nil
	}
	return 0, &UnsupportedTypeError{Op: "binding mode", Type: base}
}
