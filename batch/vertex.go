// Package batch accumulates vertex and index data in fixed-capacity CPU
// buffers laid out from a program's reflected attributes.
package batch

import (
	"fmt"

	"github.com/richinsley/glbatch/attrib"
)

// Record supplies the values of one vertex keyed by attribute name. Each
// value must hold exactly the attribute's component count. Integer
// attributes are converted from float32, so values above 2^24 lose precision.
type Record map[string][]float32

// VertexBatch stores up to a fixed number of vertices, one typed array per
// attribute.
//
// AddVertex is a partial update: attributes missing from a record keep
// whatever the slot held before (the previous contents after a Reset, zero
// for a fresh batch).
type VertexBatch struct {
	layouts     []attrib.Layout
	slots       map[string]int
	columns     []column
	maxVertices int
	current     int
}

// NewVertexBatch allocates storage for maxVertices vertices of the given
// layouts. Attribute names must be unique.
func NewVertexBatch(layouts []attrib.Layout, maxVertices int) (*VertexBatch, error) {
	b := &VertexBatch{}
	if err := b.init(layouts, maxVertices); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *VertexBatch) init(layouts []attrib.Layout, maxVertices int) error {
	if maxVertices <= 0 {
		return fmt.Errorf("batch: max vertices must be positive, got %d", maxVertices)
	}
	b.layouts = append([]attrib.Layout(nil), layouts...)
	b.slots = make(map[string]int, len(layouts))
	b.columns = make([]column, len(layouts))
	b.maxVertices = maxVertices
	b.current = 0
	for i, l := range b.layouts {
		if _, dup := b.slots[l.Name]; dup {
			return fmt.Errorf("batch: duplicate attribute %q", l.Name)
		}
		if l.Components < 1 || l.Components > 4 {
			return fmt.Errorf("batch: attribute %q has %d components", l.Name, l.Components)
		}
		c := newColumn(l.Kind, maxVertices*l.Components)
		if c == nil {
			return &attrib.UnsupportedTypeError{Op: "batch storage", Type: l.Type}
		}
		b.slots[l.Name] = i
		b.columns[i] = c
	}
	return nil
}

// Layouts returns the attribute layouts in slot order.
func (b *VertexBatch) Layouts() []attrib.Layout {
	return append([]attrib.Layout(nil), b.layouts...)
}

// Slot resolves an attribute name to its slot for AddVertexSlots.
func (b *VertexBatch) Slot(name string) (int, bool) {
	i, ok := b.slots[name]
	return i, ok
}

// Layout returns the layout stored in slot.
func (b *VertexBatch) Layout(slot int) attrib.Layout { return b.layouts[slot] }

// Len returns the number of vertices written since the last Reset.
func (b *VertexBatch) Len() int { return b.current }

// Cap returns the maximum number of vertices.
func (b *VertexBatch) Cap() int { return b.maxVertices }

// AddVertex writes one vertex and returns its index.
func (b *VertexBatch) AddVertex(rec Record) (int, error) {
	if b.current == b.maxVertices {
		return 0, &BatchFullError{What: "vertices", Capacity: b.maxVertices, Need: b.current + 1}
	}
	if err := b.check(rec); err != nil {
		return 0, err
	}
	b.write(rec)
	return b.advance(), nil
}

// AddVertexSlots is AddVertex with values indexed by slot. Nil entries are
// left untouched.
func (b *VertexBatch) AddVertexSlots(values [][]float32) (int, error) {
	if b.current == b.maxVertices {
		return 0, &BatchFullError{What: "vertices", Capacity: b.maxVertices, Need: b.current + 1}
	}
	if len(values) > len(b.layouts) {
		return 0, fmt.Errorf("batch: %d slot values for %d attributes", len(values), len(b.layouts))
	}
	for i, v := range values {
		if v != nil && len(v) != b.layouts[i].Components {
			return 0, &ComponentCountError{Attribute: b.layouts[i].Name, Want: b.layouts[i].Components, Got: len(v)}
		}
	}
	for i, v := range values {
		if v != nil {
			put(b.columns[i], b.current*b.layouts[i].Components, v)
		}
	}
	return b.advance(), nil
}

// checkSlots validates one vertex given as values for slots. Negative slots
// and nil values are skipped.
func (b *VertexBatch) checkSlots(slots []int, values [][]float32) error {
	if len(values) != len(slots) {
		return fmt.Errorf("batch: %d values for %d slots", len(values), len(slots))
	}
	for j, slot := range slots {
		if slot >= len(b.layouts) {
			return fmt.Errorf("batch: slot %d out of range for %d attributes", slot, len(b.layouts))
		}
		v := values[j]
		if slot < 0 || v == nil {
			continue
		}
		if l := b.layouts[slot]; len(v) != l.Components {
			return &ComponentCountError{Attribute: l.Name, Want: l.Components, Got: len(v)}
		}
	}
	return nil
}

func (b *VertexBatch) writeSlots(slots []int, values [][]float32) {
	for j, slot := range slots {
		if slot >= 0 && values[j] != nil {
			put(b.columns[slot], b.current*b.layouts[slot].Components, values[j])
		}
	}
}

// check validates every recognized key of rec. Unknown keys are ignored.
func (b *VertexBatch) check(rec Record) error {
	for _, l := range b.layouts {
		v, ok := rec[l.Name]
		if ok && len(v) != l.Components {
			return &ComponentCountError{Attribute: l.Name, Want: l.Components, Got: len(v)}
		}
	}
	return nil
}

func (b *VertexBatch) write(rec Record) {
	for i, l := range b.layouts {
		if v, ok := rec[l.Name]; ok {
			put(b.columns[i], b.current*l.Components, v)
		}
	}
}

func (b *VertexBatch) advance() int {
	idx := b.current
	b.current++
	return idx
}

// Vertices returns a view over the written prefix of every attribute.
func (b *VertexBatch) Vertices() map[string]Array {
	out := make(map[string]Array, len(b.layouts))
	for i, l := range b.layouts {
		out[l.Name] = b.columns[i].view(b.current * l.Components)
	}
	return out
}

// View returns the written prefix of one attribute.
func (b *VertexBatch) View(name string) (Array, bool) {
	i, ok := b.slots[name]
	if !ok {
		return Array{}, false
	}
	return b.columns[i].view(b.current * b.layouts[i].Components), true
}

// ViewSlot returns the written prefix of the attribute in slot.
func (b *VertexBatch) ViewSlot(slot int) Array {
	return b.columns[slot].view(b.current * b.layouts[slot].Components)
}

// Reset rewinds the cursor. Stored data is not cleared.
func (b *VertexBatch) Reset() {
	b.current = 0
}

// Batch wraps b in the non-indexed variant.
func (b *VertexBatch) Batch() Batch {
	return Plain(b)
}
