package document

import (
	"slices"
)

// Document is an ordered sequence of blocks. Order is the only
// structural relation between blocks.
type Document struct {
	blocks []Block
}

func NewDocument(blocks ...Block) *Document {
	return &Document{blocks: slices.Clone(blocks)}
}

func (d *Document) Len() int { return len(d.blocks) }

// Blocks returns a copy of the block sequence. The blocks themselves
// are shared with the document.
func (d *Document) Blocks() []Block {
	return slices.Clone(d.blocks)
}

func (d *Document) At(i int) Block {
	return d.blocks[i]
}

// Index returns the position of the block with the given id or -1.
func (d *Document) Index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(d.blocks, func(b Block) bool { return b.ID() == id })
}

func (d *Document) Get(id string) (Block, bool) {
	idx := d.Index(id)
	if idx < 0 {
		return nil, false
	}
	return d.blocks[idx], true
}

func (d *Document) Contains(id string) bool {
	return d.Index(id) >= 0
}

func (d *Document) Append(b Block) {
	d.blocks = append(d.blocks, b)
}

// Insert puts b at position i. Positions past the end append.
func (d *Document) Insert(i int, b Block) {
	i = min(max(i, 0), len(d.blocks))
	d.blocks = slices.Insert(d.blocks, i, b)
}

func (d *Document) Remove(id string) (Block, bool) {
	idx := d.Index(id)
	if idx < 0 {
		return nil, false
	}
	b := d.blocks[idx]
	d.blocks = slices.Delete(d.blocks, idx, idx+1)
	return b, true
}

// Move removes the block at from and reinserts it at to. Both indexes
// refer to the sequence before the move.
func (d *Document) Move(from, to int) bool {
	if from < 0 || from >= len(d.blocks) || to < 0 || to >= len(d.blocks) {
		return false
	}
	if from == to {
		return true
	}
	b := d.blocks[from]
	d.blocks = slices.Delete(d.blocks, from, from+1)
	d.blocks = slices.Insert(d.blocks, to, b)
	return true
}

func (d *Document) Clone() *Document {
	blocks := make([]Block, 0, len(d.blocks))
	for _, b := range d.blocks {
		blocks = append(blocks, b.Clone())
	}
	return &Document{blocks: blocks}
}

// IDs returns block ids in document order.
func (d *Document) IDs() []string {
	ids := make([]string, 0, len(d.blocks))
	for _, b := range d.blocks {
		ids = append(ids, b.ID())
	}
	return ids
}
