package attrib

import (
	"errors"
	"testing"

	"github.com/richinsley/glbatch/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var supportedTypes = []struct {
	xtype      graphics.Enum
	base       graphics.Enum
	components int
	kind       ArrayKind
	binding    Binding
}{
	{graphics.FLOAT, graphics.FLOAT, 1, Float32, FloatPointer},
	{graphics.FLOAT_VEC2, graphics.FLOAT, 2, Float32, FloatPointer},
	{graphics.FLOAT_VEC3, graphics.FLOAT, 3, Float32, FloatPointer},
	{graphics.FLOAT_VEC4, graphics.FLOAT, 4, Float32, FloatPointer},
	{graphics.INT, graphics.INT, 1, Int32, IntegerPointer},
	{graphics.INT_VEC2, graphics.INT, 2, Int32, IntegerPointer},
	{graphics.INT_VEC3, graphics.INT, 3, Int32, IntegerPointer},
	{graphics.INT_VEC4, graphics.INT, 4, Int32, IntegerPointer},
	{graphics.UNSIGNED_INT, graphics.UNSIGNED_INT, 1, Uint32, IntegerPointer},
	{graphics.UNSIGNED_INT_VEC2, graphics.UNSIGNED_INT, 2, Uint32, IntegerPointer},
	{graphics.UNSIGNED_INT_VEC3, graphics.UNSIGNED_INT, 3, Uint32, IntegerPointer},
	{graphics.UNSIGNED_INT_VEC4, graphics.UNSIGNED_INT, 4, Uint32, IntegerPointer},
}

func TestMappingTables(t *testing.T) {
	for _, tc := range supportedTypes {
		t.Run(tc.xtype.String(), func(t *testing.T) {
			base, err := ComponentBaseType(tc.xtype)
			require.NoError(t, err)
			assert.Equal(t, tc.base, base)

			n, err := ComponentCount(tc.xtype)
			require.NoError(t, err)
			assert.Equal(t, tc.components, n)

			kind, err := CPUArrayKind(base)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, kind)

			binding, err := BindingMode(base)
			require.NoError(t, err)
			assert.Equal(t, tc.binding, binding)
		})
	}
}

func TestMappingTablesArePure(t *testing.T) {
	for _, tc := range supportedTypes {
		b1, _ := ComponentBaseType(tc.xtype)
		b2, _ := ComponentBaseType(tc.xtype)
		assert.Equal(t, b1, b2)
		n1, _ := ComponentCount(tc.xtype)
		n2, _ := ComponentCount(tc.xtype)
		assert.Equal(t, n1, n2)
		k1, _ := CPUArrayKind(b1)
		k2, _ := CPUArrayKind(b2)
		assert.Equal(t, k1, k2)
	}
}

func TestComponentCountRejectsMatrices(t *testing.T) {
	for _, m := range []graphics.Enum{graphics.FLOAT_MAT2, graphics.FLOAT_MAT3, graphics.FLOAT_MAT4, graphics.FLOAT_MAT3x4} {
		n, err := ComponentCount(m)
		assert.Zero(t, n)
		var ute *UnsupportedTypeError
		require.True(t, errors.As(err, &ute), "%s", m)
		assert.Equal(t, m, ute.Type)
	}
}

func TestMatrixBaseTypeIsFloat(t *testing.T) {
	base, err := ComponentBaseType(graphics.FLOAT_MAT4)
	require.NoError(t, err)
	assert.Equal(t, graphics.FLOAT, base)
}

func TestBoolFamily(t *testing.T) {
	base, err := ComponentBaseType(graphics.BOOL_VEC3)
	require.NoError(t, err)
	assert.Equal(t, graphics.BOOL, base)

	_, err = CPUArrayKind(graphics.BOOL)
	var ute *UnsupportedTypeError
	assert.ErrorAs(t, err, &ute)

	_, err = BindingMode(graphics.BOOL)
	assert.ErrorAs(t, err, &ute)

	_, err = ComponentCount(graphics.BOOL_VEC2)
	assert.ErrorAs(t, err, &ute)
}

func TestIndexKinds(t *testing.T) {
	for base, want := range map[graphics.Enum]ArrayKind{
		graphics.SHORT:          Int16,
		graphics.UNSIGNED_SHORT: Uint16,
		graphics.BYTE:           Int8,
		graphics.UNSIGNED_BYTE:  Uint8,
	} {
		kind, err := CPUArrayKind(base)
		require.NoError(t, err)
		assert.Equal(t, want, kind)
		assert.Equal(t, base, kind.GLType())

		binding, err := BindingMode(base)
		require.NoError(t, err)
		assert.Equal(t, IntegerPointer, binding)
	}
	n, err := ComponentCount(graphics.UNSIGNED_SHORT)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHalfFloatBinding(t *testing.T) {
	binding, err := BindingMode(graphics.HALF_FLOAT)
	require.NoError(t, err)
	assert.Equal(t, FloatPointer, binding)
}

func TestUnknownType(t *testing.T) {
	_, err := ComponentBaseType(graphics.SAMPLER_2D)
	assert.EqualError(t, err, "attrib: component base type: unsupported type SAMPLER_2D")
}

func TestArrayKindBytes(t *testing.T) {
	assert.Equal(t, 4, Float32.Bytes())
	assert.Equal(t, 4, Uint32.Bytes())
	assert.Equal(t, 2, Uint16.Bytes())
	assert.Equal(t, 1, Int8.Bytes())
	assert.Equal(t, 0, UndefinedKind.Bytes())
	assert.Equal(t, "Uint16", Uint16.String())
}
