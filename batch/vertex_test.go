package batch

import (
	"errors"
	"testing"

	"github.com/richinsley/glbatch/attrib"
	"github.com/richinsley/glbatch/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadLayouts(t *testing.T) []attrib.Layout {
	t.Helper()
	pos, err := attrib.NewLayout("position", 0, graphics.FLOAT_VEC2, 1)
	require.NoError(t, err)
	tex, err := attrib.NewLayout("tex_coord", 1, graphics.FLOAT_VEC2, 1)
	require.NoError(t, err)
	return []attrib.Layout{pos, tex}
}

func unitQuad() []Record {
	return []Record{
		{"position": {0, 0}, "tex_coord": {0, 0}},
		{"position": {1, 1}, "tex_coord": {1, 1}},
		{"position": {1, 0}, "tex_coord": {1, 0}},
		{"position": {0, 1}, "tex_coord": {0, 1}},
	}
}

func TestUnitQuadRoundTrip(t *testing.T) {
	b, err := NewVertexBatch(quadLayouts(t), 4)
	require.NoError(t, err)

	for i, rec := range unitQuad() {
		idx, err := b.AddVertex(rec)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}

	v := b.Vertices()
	assert.Equal(t, []float32{0, 0, 1, 1, 1, 0, 0, 1}, v["position"].Float32())
	assert.Equal(t, []float32{0, 0, 1, 1, 1, 0, 0, 1}, v["tex_coord"].Float32())
	assert.Equal(t, attrib.Float32, v["position"].Kind())
	assert.Len(t, v["position"].Bytes(), 8*4)
}

func TestBatchFull(t *testing.T) {
	const n = 5
	b, err := NewVertexBatch(quadLayouts(t), n)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		_, err := b.AddVertex(Record{"position": {float32(i), 0}})
		require.NoError(t, err)
	}
	assert.Equal(t, n, b.Len())

	_, err = b.AddVertex(Record{"position": {9, 9}})
	var full *BatchFullError
	require.ErrorAs(t, err, &full)
	assert.True(t, errors.Is(err, ErrBatchFull))
	assert.Equal(t, n, full.Capacity)
	assert.Equal(t, n, b.Len())
}

func TestResetEmptiesPrefix(t *testing.T) {
	b, err := NewVertexBatch(quadLayouts(t), 4)
	require.NoError(t, err)
	for _, rec := range unitQuad() {
		_, err := b.AddVertex(rec)
		require.NoError(t, err)
	}

	b.Reset()
	assert.Zero(t, b.Len())
	for _, a := range b.Vertices() {
		assert.Zero(t, a.Len())
		assert.Empty(t, a.Float32())
		assert.Nil(t, a.Bytes())
	}

	for i := 0; i < b.Cap(); i++ {
		_, err := b.AddVertex(Record{"position": {1, 2}, "tex_coord": {3, 4}})
		require.NoError(t, err)
	}
}

func TestPartialUpdateKeepsPreviousValues(t *testing.T) {
	b, err := NewVertexBatch(quadLayouts(t), 2)
	require.NoError(t, err)

	_, err = b.AddVertex(Record{"position": {1, 2}, "tex_coord": {3, 4}})
	require.NoError(t, err)
	b.Reset()

	_, err = b.AddVertex(Record{"position": {5, 6}, "unknown": {1}})
	require.NoError(t, err)

	v := b.Vertices()
	assert.Equal(t, []float32{5, 6}, v["position"].Float32())
	assert.Equal(t, []float32{3, 4}, v["tex_coord"].Float32())
}

func TestComponentCountMismatch(t *testing.T) {
	b, err := NewVertexBatch(quadLayouts(t), 2)
	require.NoError(t, err)

	_, err = b.AddVertex(Record{"position": {1, 2, 3}})
	var cce *ComponentCountError
	require.ErrorAs(t, err, &cce)
	assert.Equal(t, "position", cce.Attribute)
	assert.Equal(t, 2, cce.Want)
	assert.Equal(t, 3, cce.Got)
	assert.Zero(t, b.Len())
}

func TestIntegerAttributes(t *testing.T) {
	id, err := attrib.NewLayout("id", 0, graphics.UNSIGNED_INT, 1)
	require.NoError(t, err)
	offset, err := attrib.NewLayout("offset", 1, graphics.INT_VEC3, 1)
	require.NoError(t, err)

	b, err := NewVertexBatch([]attrib.Layout{id, offset}, 2)
	require.NoError(t, err)
	_, err = b.AddVertex(Record{"id": {7}, "offset": {-1, 0, 1}})
	require.NoError(t, err)
	_, err = b.AddVertex(Record{"id": {8}, "offset": {2, -3, 4}})
	require.NoError(t, err)

	v := b.Vertices()
	assert.Equal(t, []uint32{7, 8}, v["id"].Uint32())
	assert.Nil(t, v["id"].Float32())
	assert.Equal(t, []int32{-1, 0, 1, 2, -3, 4}, v["offset"].Int32())
}

func TestAddVertexSlots(t *testing.T) {
	b, err := NewVertexBatch(quadLayouts(t), 2)
	require.NoError(t, err)
	pos, ok := b.Slot("position")
	require.True(t, ok)
	tex, ok := b.Slot("tex_coord")
	require.True(t, ok)

	values := make([][]float32, 2)
	values[pos] = []float32{1, 2}
	values[tex] = []float32{3, 4}
	idx, err := b.AddVertexSlots(values)
	require.NoError(t, err)
	assert.Zero(t, idx)

	values[tex] = nil
	values[pos] = []float32{5}
	_, err = b.AddVertexSlots(values)
	var cce *ComponentCountError
	assert.ErrorAs(t, err, &cce)

	view, ok := b.View("tex_coord")
	require.True(t, ok)
	assert.Equal(t, []float32{3, 4}, view.Float32())

	_, ok = b.Slot("missing")
	assert.False(t, ok)
}

func TestNewVertexBatchValidation(t *testing.T) {
	layouts := quadLayouts(t)

	_, err := NewVertexBatch(layouts, 0)
	assert.Error(t, err)

	_, err = NewVertexBatch(append(layouts, layouts[0]), 4)
	assert.ErrorContains(t, err, "duplicate attribute")
}

func TestViewIsClipped(t *testing.T) {
	b, err := NewVertexBatch(quadLayouts(t), 4)
	require.NoError(t, err)
	_, err = b.AddVertex(Record{"position": {1, 1}})
	require.NoError(t, err)

	pos := b.Vertices()["position"].Float32()
	assert.Len(t, pos, 2)
	assert.Equal(t, 2, cap(pos))
}
