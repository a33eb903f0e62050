package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glbatch/attrib"
	"github.com/richinsley/glbatch/batch"
	"github.com/richinsley/glbatch/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuadBatch(t *testing.T, quads int) *batch.IndexedVertexBatch {
	t.Helper()
	var layouts []attrib.Layout
	for i, a := range []struct {
		name string
		typ  graphics.Enum
	}{
		{"position", graphics.FLOAT_VEC2},
		{"tex_coord", graphics.FLOAT_VEC2},
		{"color", graphics.FLOAT_VEC4},
	} {
		l, err := attrib.NewLayout(a.name, uint32(i), a.typ, 1)
		require.NoError(t, err)
		layouts = append(layouts, l)
	}
	b, err := batch.NewIndexedVertexBatch(layouts, 3, 2*quads)
	require.NoError(t, err)
	return b
}

func TestAddQuad(t *testing.T) {
	b := newQuadBatch(t, 2)
	red := mgl32.Vec4{1, 0, 0, 1}

	require.NoError(t, AddQuad(b, 10, 20, 30, 40, red))
	require.NoError(t, AddQuad(b, 0, 0, 1, 1, red))

	assert.Equal(t, []uint16{0, 1, 2, 0, 3, 1, 4, 5, 6, 4, 7, 5}, b.Indices())
	v := b.Vertices()
	assert.Equal(t, []float32{10, 20, 40, 60, 40, 20, 10, 60}, v["position"].Float32()[:8])
	assert.Equal(t, []float32{0, 0, 1, 1, 1, 0, 0, 1}, v["tex_coord"].Float32()[:8])
	assert.Equal(t, []float32{1, 0, 0, 1}, v["color"].Float32()[12:16])
}

func TestAddQuadSkipsMissingAttributes(t *testing.T) {
	b := newQuadBatch(t, 1)
	attrs := QuadAttributes{Position: "position", TexCoord: "uv", Color: "color"}

	require.NoError(t, attrs.Add(b, 0, 0, 2, 2, mgl32.Vec4{0, 1, 0, 1}))
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, []float32{0, 0, 2, 2, 2, 0, 0, 2}, b.Vertices()["position"].Float32())
	assert.Equal(t, make([]float32, 8), b.Vertices()["tex_coord"].Float32())
}

func TestAddQuadBatchFull(t *testing.T) {
	b := newQuadBatch(t, 1)
	require.NoError(t, AddQuad(b, 0, 0, 1, 1, mgl32.Vec4{}))
	err := AddQuad(b, 0, 0, 1, 1, mgl32.Vec4{})
	assert.ErrorIs(t, err, batch.ErrBatchFull)
	assert.Equal(t, 6, b.IndexLen())
}

func TestAddQuadDoesNotAllocate(t *testing.T) {
	b := newQuadBatch(t, 1)
	color := mgl32.Vec4{1, 1, 1, 1}

	allocs := testing.AllocsPerRun(100, func() {
		b.Reset()
		if err := AddQuad(b, 0, 0, 1, 1, color); err != nil {
			t.Fatal(err)
		}
	})
	assert.Zero(t, allocs)
}
