package renderer

import (
	"fmt"

	"github.com/richinsley/glbatch/batch"
	"github.com/richinsley/glbatch/graphics"
	"github.com/richinsley/glbatch/vao"
)

// DrawBatch uploads b into v and draws it with v's program. Indexed batches
// draw their whole index prefix with the batch topology; plain batches draw
// their vertex prefix as triangles. An empty batch draws nothing.
func DrawBatch(gl graphics.GL, b batch.Batch, v *vao.Vao) error {
	vb := b.Vertices()
	if vb == nil || vb.Len() == 0 {
		return nil
	}
	ib, indexed := b.Indexed()
	if indexed && ib.IndexLen() == 0 {
		return nil
	}

	if err := v.LoadBatch(b); err != nil {
		return fmt.Errorf("failed to load batch: %w", err)
	}
	v.Program().Use()
	v.Bind()
	switch b.Kind() {
	case batch.KindIndexed:
		gl.DrawElements(ib.Topology(), int32(ib.IndexLen()), graphics.UNSIGNED_SHORT, 0)
	case batch.KindPlain:
		gl.DrawArrays(graphics.TRIANGLES, 0, int32(vb.Len()))
	}
	v.Unbind()
	return nil
}
