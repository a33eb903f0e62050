// Package vao binds a program's attributes to GPU buffers and streams batch
// contents into them.
package vao

import (
	"errors"
	"fmt"
	"log"

	"github.com/richinsley/glbatch/attrib"
	"github.com/richinsley/glbatch/batch"
	"github.com/richinsley/glbatch/graphics"
	"github.com/richinsley/glbatch/shader"
)

// LayoutMismatchError reports a batch attribute whose storage does not match
// the buffer layout recorded for the program.
type LayoutMismatchError struct {
	Attribute      string
	Want, Got      attrib.ArrayKind
	WantComponents int
	GotComponents  int
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("vao: attribute %q: batch holds %d x %s, program expects %d x %s",
		e.Attribute, e.GotComponents, e.Got, e.WantComponents, e.Want)
}

type attribBuffer struct {
	buffer uint32
	layout attrib.Layout
	slot   int // batch slot for the current LoadBatch, -1 when absent
}

// Vao owns one vertex array object, one buffer per program attribute and a
// shared index buffer. The program is borrowed and must outlive the Vao.
type Vao struct {
	gl      graphics.GL
	program *shader.Program

	array       uint32
	indexBuffer uint32
	buffers     []attribBuffer // location order
	byName      map[string]int

	generation int
}

// New creates the vertex array for program and binds every active
// attribute to its own buffer.
func New(gl graphics.GL, program *shader.Program) (*Vao, error) {
	if program == nil {
		return nil, errors.New("vao: nil program")
	}
	v := &Vao{gl: gl, program: program}
	v.build()
	log.Printf("Built vao %d for program %d with %d attribute buffers", v.array, program.Handle(), len(v.buffers))
	return v, nil
}

func (v *Vao) build() {
	gl := v.gl
	v.array = gl.GenVertexArray()
	gl.BindVertexArray(v.array)

	layouts := v.program.Attributes()
	v.buffers = make([]attribBuffer, 0, len(layouts))
	v.byName = make(map[string]int, len(layouts))
	for _, l := range layouts {
		buf := gl.GenBuffer()
		gl.BindBuffer(graphics.ARRAY_BUFFER, buf)
		gl.EnableVertexAttribArray(l.Location)
		if l.Binding == attrib.IntegerPointer {
			gl.VertexAttribIPointer(l.Location, int32(l.Components), l.Kind.GLType(), 0, 0)
		} else {
			gl.VertexAttribPointer(l.Location, int32(l.Components), l.Kind.GLType(), false, 0, 0)
		}
		log.Printf("  attribute %s at location %d: %s, %d x %s", l.Name, l.Location, l.Type, l.Components, l.Kind)
		v.byName[l.Name] = len(v.buffers)
		v.buffers = append(v.buffers, attribBuffer{buffer: buf, layout: l, slot: -1})
	}

	// The element buffer binding is stored in the vertex array.
	v.indexBuffer = gl.GenBuffer()
	gl.BindBuffer(graphics.ELEMENT_ARRAY_BUFFER, v.indexBuffer)

	gl.BindVertexArray(0)
	gl.BindBuffer(graphics.ARRAY_BUFFER, 0)
}

func (v *Vao) release() {
	for _, b := range v.buffers {
		v.gl.DeleteBuffer(b.buffer)
	}
	if v.indexBuffer != 0 {
		v.gl.DeleteBuffer(v.indexBuffer)
	}
	if v.array != 0 {
		v.gl.DeleteVertexArray(v.array)
	}
	v.buffers, v.byName = nil, nil
	v.array, v.indexBuffer = 0, 0
}

// Rebuild deletes every owned object and recreates them from the program.
// Callers holding buffer or array handles can compare Generation to notice.
func (v *Vao) Rebuild() error {
	if v.program.Handle() == 0 {
		return errors.New("vao: program has been deleted")
	}
	v.release()
	v.build()
	v.generation++
	log.Printf("Rebuilt vao %d (generation %d)", v.array, v.generation)
	return nil
}

// Generation counts rebuilds since New.
func (v *Vao) Generation() int { return v.generation }

// Program returns the program the attribute bindings were taken from.
func (v *Vao) Program() *shader.Program { return v.program }

// Handle returns the vertex array object.
func (v *Vao) Handle() uint32 { return v.array }

// Buffer returns the buffer bound to the named attribute.
func (v *Vao) Buffer(name string) (uint32, bool) {
	i, ok := v.byName[name]
	if !ok {
		return 0, false
	}
	return v.buffers[i].buffer, true
}

// IndexBuffer returns the element buffer.
func (v *Vao) IndexBuffer() uint32 { return v.indexBuffer }

// LoadBatch uploads the written prefix of every attribute, and of the index
// array for indexed batches, with STREAM_DRAW. Nothing is uploaded when any
// attribute's layout disagrees with the program.
func (v *Vao) LoadBatch(b batch.Batch) error {
	vb := b.Vertices()
	if vb == nil {
		return fmt.Errorf("vao: %s batch has no storage", b.Kind())
	}

	for i := range v.buffers {
		ab := &v.buffers[i]
		slot, ok := vb.Slot(ab.layout.Name)
		if !ok {
			log.Printf("vao: batch has no data for attribute %s, skipping", ab.layout.Name)
			ab.slot = -1
			continue
		}
		got := vb.Layout(slot)
		if got.Kind != ab.layout.Kind || got.Components != ab.layout.Components {
			return &LayoutMismatchError{
				Attribute:      ab.layout.Name,
				Want:           ab.layout.Kind,
				Got:            got.Kind,
				WantComponents: ab.layout.Components,
				GotComponents:  got.Components,
			}
		}
		ab.slot = slot
	}

	v.gl.BindVertexArray(v.array)
	for _, ab := range v.buffers {
		if ab.slot < 0 {
			continue
		}
		v.gl.BindBuffer(graphics.ARRAY_BUFFER, ab.buffer)
		v.gl.BufferData(graphics.ARRAY_BUFFER, vb.ViewSlot(ab.slot).Bytes(), graphics.STREAM_DRAW)
	}
	if ib, ok := b.Indexed(); ok {
		v.gl.BindBuffer(graphics.ELEMENT_ARRAY_BUFFER, v.indexBuffer)
		v.gl.BufferData(graphics.ELEMENT_ARRAY_BUFFER, batch.IndexArray(ib.Indices()).Bytes(), graphics.STREAM_DRAW)
	}
	v.gl.BindBuffer(graphics.ARRAY_BUFFER, 0)
	return nil
}

// Bind makes the vertex array current.
func (v *Vao) Bind() { v.gl.BindVertexArray(v.array) }

// Unbind clears the current vertex array.
func (v *Vao) Unbind() { v.gl.BindVertexArray(0) }

// Delete releases the vertex array and its buffers. The program is not
// touched.
func (v *Vao) Delete() { v.release() }
