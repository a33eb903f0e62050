package batch

import (
	"fmt"
	"unsafe"

	"github.com/richinsley/glbatch/attrib"
)

type number interface {
	~float32 | ~int32 | ~uint32 | ~int16 | ~uint16 | ~int8 | ~uint8
}

// Array is a read-only view over the written prefix of one attribute's
// storage. It aliases the batch and is invalidated by the next write.
type Array struct {
	kind attrib.ArrayKind
	n    int
	data any
	raw  []byte
}

func (a Array) Kind() attrib.ArrayKind { return a.kind }

// Len returns the number of scalar elements in the view.
func (a Array) Len() int { return a.n }

// Bytes returns the view as raw bytes in host order, ready for upload.
func (a Array) Bytes() []byte { return a.raw }

func (a Array) Float32() []float32 { s, _ := a.data.([]float32); return s }
func (a Array) Int32() []int32     { s, _ := a.data.([]int32); return s }
func (a Array) Uint32() []uint32   { s, _ := a.data.([]uint32); return s }
func (a Array) Int16() []int16     { s, _ := a.data.([]int16); return s }
func (a Array) Uint16() []uint16   { s, _ := a.data.([]uint16); return s }
func (a Array) Int8() []int8       { s, _ := a.data.([]int8); return s }
func (a Array) Uint8() []uint8     { s, _ := a.data.([]uint8); return s }

// column is the fixed-capacity storage for one attribute.
type column interface {
	view(n int) Array
}

type typedColumn[T number] struct {
	kind attrib.ArrayKind
	data []T
}

func newColumn(kind attrib.ArrayKind, n int) column {
	switch kind {
	case attrib.Float32:
		return &typedColumn[float32]{kind: kind, data: make([]float32, n)}
	case attrib.Int32:
		return &typedColumn[int32]{kind: kind, data: make([]int32, n)}
	case attrib.Uint32:
		return &typedColumn[uint32]{kind: kind, data: make([]uint32, n)}
	case attrib.Int16:
		return &typedColumn[int16]{kind: kind, data: make([]int16, n)}
	case attrib.Uint16:
		return &typedColumn[uint16]{kind: kind, data: make([]uint16, n)}
	case attrib.Int8:
		return &typedColumn[int8]{kind: kind, data: make([]int8, n)}
	case attrib.Uint8:
		return &typedColumn[uint8]{kind: kind, data: make([]uint8, n)}
	}
	return nil
}

// put writes v through the concrete column type so v does not escape.
func put(c column, offset int, v []float32) {
	switch c := c.(type) {
	case *typedColumn[float32]:
		c.write(offset, v)
	case *typedColumn[int32]:
		c.write(offset, v)
	case *typedColumn[uint32]:
		c.write(offset, v)
	case *typedColumn[int16]:
		c.write(offset, v)
	case *typedColumn[uint16]:
		c.write(offset, v)
	case *typedColumn[int8]:
		c.write(offset, v)
	case *typedColumn[uint8]:
		c.write(offset, v)
	default:
		panic(fmt.Sprintf("batch: unknown column %T", c))
	}
}

func (c *typedColumn[T]) write(offset int, v []float32) {
	dst := c.data[offset : offset+len(v)]
	for i, x := range v {
		dst[i] = T(x)
	}
}

func (c *typedColumn[T]) view(n int) Array {
	s := c.data[:n:n]
	return Array{kind: c.kind, n: n, data: s, raw: asBytes(s)}
}

func asBytes[T number](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// IndexArray wraps an index prefix in an Array for upload.
func IndexArray(indices []uint16) Array {
	s := indices[:len(indices):len(indices)]
	return Array{kind: attrib.Uint16, n: len(s), data: s, raw: asBytes(s)}
}
