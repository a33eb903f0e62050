package batch

import (
	"fmt"

	"github.com/richinsley/glbatch/attrib"
	"github.com/richinsley/glbatch/graphics"
)

// maxIndexedVertices is the largest vertex capacity addressable by 16-bit
// indices.
const maxIndexedVertices = 1 << 16

// TopologyForPrimitiveSize maps vertices per primitive to a primitive mode.
func TopologyForPrimitiveSize(primitiveSize int) (graphics.Enum, error) {
	switch primitiveSize {
	case 3:
		return graphics.TRIANGLES, nil
	case 2:
		return graphics.LINES, nil
	case 1:
		return graphics.POINTS, nil
	}
	return graphics.NONE, &UnsupportedTopologyError{PrimitiveSize: primitiveSize}
}

// IndexedVertexBatch adds a 16-bit index stream to a VertexBatch. Callers
// describe each group of primitives with its own vertices and indices local
// to that group; the batch rebases the indices onto its global vertex
// stream.
type IndexedVertexBatch struct {
	VertexBatch
	indices      []uint16
	currentIndex int
	topology     graphics.Enum
}

// NewIndexedVertexBatch allocates room for maxPrimitives primitives of
// primitiveSize vertices each (3 triangles, 2 lines, 1 points). Vertex and
// index capacity are both primitiveSize*maxPrimitives.
func NewIndexedVertexBatch(layouts []attrib.Layout, primitiveSize, maxPrimitives int) (*IndexedVertexBatch, error) {
	topology, err := TopologyForPrimitiveSize(primitiveSize)
	if err != nil {
		return nil, err
	}
	if maxPrimitives <= 0 {
		return nil, fmt.Errorf("batch: max primitives must be positive, got %d", maxPrimitives)
	}
	capacity := primitiveSize * maxPrimitives
	if capacity > maxIndexedVertices {
		return nil, fmt.Errorf("batch: %d vertices exceed the 16-bit index range", capacity)
	}
	b := &IndexedVertexBatch{
		indices:  make([]uint16, capacity),
		topology: topology,
	}
	if err := b.VertexBatch.init(layouts, capacity); err != nil {
		return nil, err
	}
	return b, nil
}

// Topology returns TRIANGLES, LINES or POINTS.
func (b *IndexedVertexBatch) Topology() graphics.Enum { return b.topology }

// IndexLen returns the number of indices written since the last Reset.
func (b *IndexedVertexBatch) IndexLen() int { return b.currentIndex }

// IndexCap returns the maximum number of indices.
func (b *IndexedVertexBatch) IndexCap() int { return len(b.indices) }

// AddVertices appends recs and returns the index of the first one. Either
// all records are written or none are.
func (b *IndexedVertexBatch) AddVertices(recs []Record) (int, error) {
	if need := b.current + len(recs); need > b.maxVertices {
		return 0, &BatchFullError{What: "vertices", Capacity: b.maxVertices, Need: need}
	}
	for _, rec := range recs {
		if err := b.check(rec); err != nil {
			return 0, err
		}
	}
	first := b.current
	for _, rec := range recs {
		b.write(rec)
		b.advance()
	}
	return first, nil
}

// AddVerticesSlots is AddVertices with slot-resolved values: vertices[k][j]
// holds the value of vertex k for slots[j]. Negative slots and nil values
// are skipped.
func (b *IndexedVertexBatch) AddVerticesSlots(slots []int, vertices [][][]float32) (int, error) {
	if need := b.current + len(vertices); need > b.maxVertices {
		return 0, &BatchFullError{What: "vertices", Capacity: b.maxVertices, Need: need}
	}
	for _, values := range vertices {
		if err := b.checkSlots(slots, values); err != nil {
			return 0, err
		}
	}
	first := b.current
	for _, values := range vertices {
		b.writeSlots(slots, values)
		b.advance()
	}
	return first, nil
}

// AddPrimitivesSlots is AddPrimitives with slot-resolved values laid out as
// in AddVerticesSlots.
func (b *IndexedVertexBatch) AddPrimitivesSlots(slots []int, vertices [][][]float32, local []uint16) error {
	if err := b.checkIndices(len(vertices), local); err != nil {
		return err
	}
	first, err := b.AddVerticesSlots(slots, vertices)
	if err != nil {
		return err
	}
	b.appendIndices(first, local)
	return nil
}

// AddPrimitives appends recs and the indices in local, each shifted by the
// index of the first appended vertex. A quad is 4 records and the 6 local
// indices of its two triangles.
func (b *IndexedVertexBatch) AddPrimitives(recs []Record, local []uint16) error {
	if err := b.checkIndices(len(recs), local); err != nil {
		return err
	}
	first, err := b.AddVertices(recs)
	if err != nil {
		return err
	}
	b.appendIndices(first, local)
	return nil
}

func (b *IndexedVertexBatch) checkIndices(vertices int, local []uint16) error {
	if need := b.currentIndex + len(local); need > len(b.indices) {
		return &BatchFullError{What: "indices", Capacity: len(b.indices), Need: need}
	}
	for _, idx := range local {
		if int(idx) >= vertices {
			return &IndexRangeError{Index: idx, Vertices: vertices}
		}
	}
	return nil
}

func (b *IndexedVertexBatch) appendIndices(first int, local []uint16) {
	dst := b.indices[b.currentIndex : b.currentIndex+len(local)]
	for i, idx := range local {
		dst[i] = uint16(first) + idx
	}
	b.currentIndex += len(local)
}

// Indices returns the written index prefix. It aliases the batch.
func (b *IndexedVertexBatch) Indices() []uint16 {
	return b.indices[:b.currentIndex:b.currentIndex]
}

// Reset rewinds both cursors.
func (b *IndexedVertexBatch) Reset() {
	b.VertexBatch.Reset()
	b.currentIndex = 0
}

// Batch wraps b in the indexed variant.
func (b *IndexedVertexBatch) Batch() Batch {
	return Indexed(b)
}
