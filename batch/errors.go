package batch

import (
	"errors"
	"fmt"
)

// ErrBatchFull is matched by every *BatchFullError.
var ErrBatchFull = errors.New("batch is full")

// BatchFullError is returned when an insertion would exceed a batch's fixed
// capacity. Nothing is written; flush or Reset the batch and retry.
type BatchFullError struct {
	What     string // "vertices" or "indices"
	Capacity int
	Need     int
}

func (e *BatchFullError) Error() string {
	return fmt.Sprintf("batch is full: need %d %s, capacity %d", e.Need, e.What, e.Capacity)
}

func (e *BatchFullError) Is(target error) bool { return target == ErrBatchFull }

// UnsupportedTopologyError is returned for a primitive size other than 1, 2
// or 3.
type UnsupportedTopologyError struct {
	PrimitiveSize int
}

func (e *UnsupportedTopologyError) Error() string {
	return fmt.Sprintf("batch: unsupported topology for primitive size %d", e.PrimitiveSize)
}

// ComponentCountError is returned when a record supplies the wrong number of
// components for an attribute.
type ComponentCountError struct {
	Attribute string
	Want      int
	Got       int
}

func (e *ComponentCountError) Error() string {
	return fmt.Sprintf("batch: attribute %q takes %d components, got %d", e.Attribute, e.Want, e.Got)
}

// IndexRangeError is returned when a local index does not reference one of
// the vertices supplied with it.
type IndexRangeError struct {
	Index    uint16
	Vertices int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("batch: local index %d out of range for %d vertices", e.Index, e.Vertices)
}
