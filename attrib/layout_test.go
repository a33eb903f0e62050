package attrib

import (
	"testing"

	"github.com/richinsley/glbatch/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	l, err := NewLayout("color", 2, graphics.UNSIGNED_INT_VEC4, 1)
	require.NoError(t, err)
	assert.Equal(t, Layout{
		Name:       "color",
		Location:   2,
		Type:       graphics.UNSIGNED_INT_VEC4,
		Size:       1,
		BaseType:   graphics.UNSIGNED_INT,
		Components: 4,
		Kind:       Uint32,
		Binding:    IntegerPointer,
	}, l)
}

func TestNewLayoutRejectsMatrix(t *testing.T) {
	_, err := NewLayout("model", 3, graphics.FLOAT_MAT4, 1)
	var ute *UnsupportedTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "component count", ute.Op)
	assert.Contains(t, err.Error(), `attribute "model"`)
}

func TestNewLayoutRejectsBool(t *testing.T) {
	_, err := NewLayout("flag", 0, graphics.BOOL, 1)
	var ute *UnsupportedTypeError
	require.ErrorAs(t, err, &ute)
}

func TestFloat(t *testing.T) {
	l, err := Float("position", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, graphics.FLOAT_VEC2, l.Type)
	assert.Equal(t, 2, l.Components)
	assert.Equal(t, Float32, l.Kind)

	_, err = Float("bad", 0, 5)
	assert.Error(t, err)
}
