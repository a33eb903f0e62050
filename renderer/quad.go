package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glbatch/batch"
)

// Corners in the order (0,0) (1,1) (1,0) (0,1), split along the diagonal.
var quadIndices = []uint16{0, 1, 2, 0, 3, 1}

// QuadAttributes names the attributes a quad is written to. Translated
// shaders rename their inputs, so the names are not fixed.
type QuadAttributes struct {
	Position string
	TexCoord string
	Color    string
}

// DefaultQuadAttributes matches the built-in batch shaders.
var DefaultQuadAttributes = QuadAttributes{Position: "position", TexCoord: "tex_coord", Color: "color"}

// Add appends an axis-aligned rectangle as two triangles. Texture
// coordinates span the unit square. Attributes the batch does not have are
// skipped.
func (a QuadAttributes) Add(b *batch.IndexedVertexBatch, x, y, w, h float32, color mgl32.Vec4) error {
	slots := [3]int{slotOf(b, a.Position), slotOf(b, a.TexCoord), slotOf(b, a.Color)}
	c := color[:]
	vertices := [4][][]float32{
		{{x, y}, {0, 0}, c},
		{{x + w, y + h}, {1, 1}, c},
		{{x + w, y}, {1, 0}, c},
		{{x, y + h}, {0, 1}, c},
	}
	return b.AddPrimitivesSlots(slots[:], vertices[:], quadIndices)
}

// slotOf returns -1 for attributes b does not store.
func slotOf(b *batch.IndexedVertexBatch, name string) int {
	if i, ok := b.Slot(name); ok {
		return i
	}
	return -1
}

// AddQuad adds a quad using DefaultQuadAttributes.
func AddQuad(b *batch.IndexedVertexBatch, x, y, w, h float32, color mgl32.Vec4) error {
	return DefaultQuadAttributes.Add(b, x, y, w, h, color)
}
