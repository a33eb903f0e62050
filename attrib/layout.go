package attrib

import (
	"fmt"

	"github.com/richinsley/glbatch/graphics"
)

// Layout describes one active vertex attribute of a linked program.
type Layout struct {
	Name       string
	Location   uint32
	Type       graphics.Enum // declared type, e.g. FLOAT_VEC2
	Size       int32         // array length reported by reflection
	BaseType   graphics.Enum // FLOAT, INT or UNSIGNED_INT
	Components int
	Kind       ArrayKind
	Binding    Binding
}

// NewLayout resolves a reflected attribute through the mapping tables. Types
// without a per-vertex representation (matrices, bools) are rejected here so
// that a program using them fails at reflection time.
func NewLayout(name string, location uint32, xtype graphics.Enum, size int32) (Layout, error) {
	base, err := ComponentBaseType(xtype)
	if err != nil {
		return Layout{}, fmt.Errorf("attribute %q: %w", name, err)
	}
	components, err := ComponentCount(xtype)
	if err != nil {
		return Layout{}, fmt.Errorf("attribute %q: %w", name, err)
	}
	kind, err := CPUArrayKind(base)
	if err != nil {
		return Layout{}, fmt.Errorf("attribute %q: %w", name, err)
	}
	binding, err := BindingMode(base)
	if err != nil {
		return Layout{}, fmt.Errorf("attribute %q: %w", name, err)
	}
	return Layout{
		Name:       name,
		Location:   location,
		Type:       xtype,
		Size:       size,
		BaseType:   base,
		Components: components,
		Kind:       kind,
		Binding:    binding,
	}, nil
}

// Float is a convenience for building a FLOAT-family layout by component
// count, for batches that are not created from a reflected program.
func Float(name string, location uint32, components int) (Layout, error) {
	types := [...]graphics.Enum{graphics.FLOAT, graphics.FLOAT_VEC2, graphics.FLOAT_VEC3, graphics.FLOAT_VEC4}
	if components < 1 || components > len(types) {
		return Layout{}, fmt.Errorf("attribute %q: invalid component count %d", name, components)
	}
	return NewLayout(name, location, types[components-1], 1)
}
