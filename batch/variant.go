package batch

// Kind tells the two Batch variants apart.
type Kind int

const (
	KindPlain Kind = iota
	KindIndexed
)

func (k Kind) String() string {
	if k == KindIndexed {
		return "indexed"
	}
	return "plain"
}

// Batch is either a plain VertexBatch or an IndexedVertexBatch. Upload and
// draw code switch on Kind instead of inspecting concrete types.
type Batch struct {
	kind    Kind
	plain   *VertexBatch
	indexed *IndexedVertexBatch
}

// Plain wraps a non-indexed batch.
func Plain(b *VertexBatch) Batch {
	return Batch{kind: KindPlain, plain: b}
}

// Indexed wraps an indexed batch.
func Indexed(b *IndexedVertexBatch) Batch {
	return Batch{kind: KindIndexed, indexed: b}
}

func (b Batch) Kind() Kind { return b.kind }

// Vertices returns the vertex storage of either variant.
func (b Batch) Vertices() *VertexBatch {
	if b.kind == KindIndexed {
		if b.indexed == nil {
			return nil
		}
		return &b.indexed.VertexBatch
	}
	return b.plain
}

// Indexed returns the indexed batch, or false for a plain one.
func (b Batch) Indexed() (*IndexedVertexBatch, bool) {
	return b.indexed, b.kind == KindIndexed && b.indexed != nil
}
