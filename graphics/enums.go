package graphics

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Enum is an OpenGL enumerant.
type Enum uint32

const (
	FALSE    Enum = 0
	TRUE     Enum = 1
	NONE     Enum = 0
	ZERO     Enum = 0
	ONE      Enum = 1
	NO_ERROR Enum = 0

	// Primitive modes
	POINTS         Enum = 0x0000
	LINES          Enum = 0x0001
	LINE_LOOP      Enum = 0x0002
	LINE_STRIP     Enum = 0x0003
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005
	TRIANGLE_FAN   Enum = 0x0006

	// Scalar component types
	BYTE           Enum = 0x1400
	UNSIGNED_BYTE  Enum = 0x1401
	SHORT          Enum = 0x1402
	UNSIGNED_SHORT Enum = 0x1403
	INT            Enum = 0x1404
	UNSIGNED_INT   Enum = 0x1405
	FLOAT          Enum = 0x1406
	HALF_FLOAT     Enum = 0x140B

	// Vector and matrix types reported by reflection
	FLOAT_VEC2        Enum = 0x8B50
	FLOAT_VEC3        Enum = 0x8B51
	FLOAT_VEC4        Enum = 0x8B52
	INT_VEC2          Enum = 0x8B53
	INT_VEC3          Enum = 0x8B54
	INT_VEC4          Enum = 0x8B55
	BOOL              Enum = 0x8B56
	BOOL_VEC2         Enum = 0x8B57
	BOOL_VEC3         Enum = 0x8B58
	BOOL_VEC4         Enum = 0x8B59
	FLOAT_MAT2        Enum = 0x8B5A
	FLOAT_MAT3        Enum = 0x8B5B
	FLOAT_MAT4        Enum = 0x8B5C
	FLOAT_MAT2x3      Enum = 0x8B65
	FLOAT_MAT2x4      Enum = 0x8B66
	FLOAT_MAT3x2      Enum = 0x8B67
	FLOAT_MAT3x4      Enum = 0x8B68
	FLOAT_MAT4x2      Enum = 0x8B69
	FLOAT_MAT4x3      Enum = 0x8B6A
	UNSIGNED_INT_VEC2 Enum = 0x8DC6
	UNSIGNED_INT_VEC3 Enum = 0x8DC7
	UNSIGNED_INT_VEC4 Enum = 0x8DC8

	// Sampler types
	SAMPLER_2D              Enum = 0x8B5E
	SAMPLER_3D              Enum = 0x8B5F
	SAMPLER_CUBE            Enum = 0x8B60
	SAMPLER_2D_SHADOW       Enum = 0x8B62
	SAMPLER_2D_ARRAY        Enum = 0x8DC1
	INT_SAMPLER_2D          Enum = 0x8DCA
	UNSIGNED_INT_SAMPLER_2D Enum = 0x8DD2

	// Shader and program objects
	FRAGMENT_SHADER             Enum = 0x8B30
	VERTEX_SHADER               Enum = 0x8B31
	COMPILE_STATUS              Enum = 0x8B81
	LINK_STATUS                 Enum = 0x8B82
	INFO_LOG_LENGTH             Enum = 0x8B84
	ACTIVE_UNIFORMS             Enum = 0x8B86
	ACTIVE_UNIFORM_MAX_LENGTH   Enum = 0x8B87
	ACTIVE_ATTRIBUTES           Enum = 0x8B89
	ACTIVE_ATTRIBUTE_MAX_LENGTH Enum = 0x8B8A

	// Buffer objects
	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STREAM_DRAW          Enum = 0x88E0
	STATIC_DRAW          Enum = 0x88E4
	DYNAMIC_DRAW         Enum = 0x88E8

	// Framebuffer state
	DEPTH_BUFFER_BIT    Enum = 0x00000100
	COLOR_BUFFER_BIT    Enum = 0x00004000
	SRC_ALPHA           Enum = 0x0302
	ONE_MINUS_SRC_ALPHA Enum = 0x0303
	BLEND               Enum = 0x0BE2

	// GetString names
	VENDOR   Enum = 0x1F00
	RENDERER Enum = 0x1F01
	VERSION  Enum = 0x1F02
)

var enumNames = []struct {
	name  string
	value Enum
}{
	{"FALSE", FALSE}, {"TRUE", TRUE}, {"NONE", NONE}, {"ZERO", ZERO}, {"ONE", ONE}, {"NO_ERROR", NO_ERROR},
	{"POINTS", POINTS}, {"LINES", LINES}, {"LINE_LOOP", LINE_LOOP}, {"LINE_STRIP", LINE_STRIP},
	{"TRIANGLES", TRIANGLES}, {"TRIANGLE_STRIP", TRIANGLE_STRIP}, {"TRIANGLE_FAN", TRIANGLE_FAN},
	{"BYTE", BYTE}, {"UNSIGNED_BYTE", UNSIGNED_BYTE}, {"SHORT", SHORT}, {"UNSIGNED_SHORT", UNSIGNED_SHORT},
	{"INT", INT}, {"UNSIGNED_INT", UNSIGNED_INT}, {"FLOAT", FLOAT}, {"HALF_FLOAT", HALF_FLOAT},
	{"FLOAT_VEC2", FLOAT_VEC2}, {"FLOAT_VEC3", FLOAT_VEC3}, {"FLOAT_VEC4", FLOAT_VEC4},
	{"INT_VEC2", INT_VEC2}, {"INT_VEC3", INT_VEC3}, {"INT_VEC4", INT_VEC4},
	{"BOOL", BOOL}, {"BOOL_VEC2", BOOL_VEC2}, {"BOOL_VEC3", BOOL_VEC3}, {"BOOL_VEC4", BOOL_VEC4},
	{"FLOAT_MAT2", FLOAT_MAT2}, {"FLOAT_MAT3", FLOAT_MAT3}, {"FLOAT_MAT4", FLOAT_MAT4},
	{"FLOAT_MAT2x3", FLOAT_MAT2x3}, {"FLOAT_MAT2x4", FLOAT_MAT2x4}, {"FLOAT_MAT3x2", FLOAT_MAT3x2},
	{"FLOAT_MAT3x4", FLOAT_MAT3x4}, {"FLOAT_MAT4x2", FLOAT_MAT4x2}, {"FLOAT_MAT4x3", FLOAT_MAT4x3},
	{"UNSIGNED_INT_VEC2", UNSIGNED_INT_VEC2}, {"UNSIGNED_INT_VEC3", UNSIGNED_INT_VEC3}, {"UNSIGNED_INT_VEC4", UNSIGNED_INT_VEC4},
	{"SAMPLER_2D", SAMPLER_2D}, {"SAMPLER_3D", SAMPLER_3D}, {"SAMPLER_CUBE", SAMPLER_CUBE},
	{"SAMPLER_2D_SHADOW", SAMPLER_2D_SHADOW}, {"SAMPLER_2D_ARRAY", SAMPLER_2D_ARRAY},
	{"INT_SAMPLER_2D", INT_SAMPLER_2D}, {"UNSIGNED_INT_SAMPLER_2D", UNSIGNED_INT_SAMPLER_2D},
	{"FRAGMENT_SHADER", FRAGMENT_SHADER}, {"VERTEX_SHADER", VERTEX_SHADER},
	{"COMPILE_STATUS", COMPILE_STATUS}, {"LINK_STATUS", LINK_STATUS}, {"INFO_LOG_LENGTH", INFO_LOG_LENGTH},
	{"ACTIVE_UNIFORMS", ACTIVE_UNIFORMS}, {"ACTIVE_UNIFORM_MAX_LENGTH", ACTIVE_UNIFORM_MAX_LENGTH},
	{"ACTIVE_ATTRIBUTES", ACTIVE_ATTRIBUTES}, {"ACTIVE_ATTRIBUTE_MAX_LENGTH", ACTIVE_ATTRIBUTE_MAX_LENGTH},
	{"ARRAY_BUFFER", ARRAY_BUFFER}, {"ELEMENT_ARRAY_BUFFER", ELEMENT_ARRAY_BUFFER},
	{"STREAM_DRAW", STREAM_DRAW}, {"STATIC_DRAW", STATIC_DRAW}, {"DYNAMIC_DRAW", DYNAMIC_DRAW},
	{"DEPTH_BUFFER_BIT", DEPTH_BUFFER_BIT}, {"COLOR_BUFFER_BIT", COLOR_BUFFER_BIT},
	{"SRC_ALPHA", SRC_ALPHA}, {"ONE_MINUS_SRC_ALPHA", ONE_MINUS_SRC_ALPHA}, {"BLEND", BLEND},
	{"VENDOR", VENDOR}, {"RENDERER", RENDERER}, {"VERSION", VERSION},
}

var (
	nameTableOnce sync.Once
	nameTable     map[Enum][]string
)

// ConstantNames returns every symbolic name that maps to code, in declaration
// order. It is meant for logging only; several names share a value (0 is
// FALSE, NONE, POINTS, ...).
func ConstantNames(code Enum) []string {
	return slices.Clone(lookupNames(code))
}

func lookupNames(code Enum) []string {
	nameTableOnce.Do(func() {
		nameTable = make(map[Enum][]string, len(enumNames))
		for _, e := range enumNames {
			nameTable[e.value] = append(nameTable[e.value], e.name)
		}
	})
	return nameTable[code]
}

func (e Enum) String() string {
	names := lookupNames(e)
	if len(names) == 0 {
		return fmt.Sprintf("0x%04X", uint32(e))
	}
	return strings.Join(names, "|")
}
