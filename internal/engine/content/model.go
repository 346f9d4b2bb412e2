package content

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Model is an immutable, ordered sequence of blocks plus an opaque entity
// map that is carried through persistence without interpretation.
// A Model always holds at least one block.
type Model struct {
	blocks   []*Block
	index    map[string]int
	entities []byte
}

// NewModel creates a model from blocks in document order.
// The entity map is copied and stored as-is.
func NewModel(blocks []*Block, entityMap []byte) (*Model, error) {
	if len(blocks) == 0 {
		return nil, ErrEmptyModel
	}
	index := make(map[string]int, len(blocks))
	for i, b := range blocks {
		if b == nil {
			return nil, fmt.Errorf("block %d is nil", i)
		}
		if b.key == "" {
			return nil, fmt.Errorf("block %d has an empty key", i)
		}
		if _, dup := index[b.key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, b.key)
		}
		index[b.key] = i
	}
	return &Model{
		blocks:   slices.Clone(blocks),
		index:    index,
		entities: bytes.Clone(entityMap),
	}, nil
}

// Empty returns a document with a single empty unstyled block.
func Empty() *Model {
	b := newBlock(NewKey(), Unstyled, "", nil)
	return &Model{
		blocks: []*Block{b},
		index:  map[string]int{b.key: 0},
	}
}

// Len returns the number of blocks.
func (m *Model) Len() int {
	return len(m.blocks)
}

// BlockAt returns the block at index i, or nil if i is out of range.
func (m *Model) BlockAt(i int) *Block {
	if i < 0 || i >= len(m.blocks) {
		return nil
	}
	return m.blocks[i]
}

// Block returns the block with the given key.
func (m *Model) Block(key string) (*Block, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.blocks[i], true
}

// Index returns the position of the block with the given key, or -1.
func (m *Model) Index(key string) int {
	if i, ok := m.index[key]; ok {
		return i
	}
	return -1
}

// Blocks returns the blocks in document order.
// The slice is a copy; the blocks themselves are immutable.
func (m *Model) Blocks() []*Block {
	return slices.Clone(m.blocks)
}

// First returns the first block.
func (m *Model) First() *Block {
	return m.blocks[0]
}

// Last returns the last block.
func (m *Model) Last() *Block {
	return m.blocks[len(m.blocks)-1]
}

// EntityMap returns a copy of the opaque entity map, or nil if none was set.
func (m *Model) EntityMap() []byte {
	return bytes.Clone(m.entities)
}

// WithEntityMap returns a model sharing all blocks with m but carrying a
// different entity map.
func (m *Model) WithEntityMap(entityMap []byte) *Model {
	nm := *m
	nm.entities = bytes.Clone(entityMap)
	return &nm
}

// HasText returns true if any block contains text.
func (m *Model) HasText() bool {
	for _, b := range m.blocks {
		if b.length > 0 {
			return true
		}
	}
	return false
}

// PlainText returns the text of all blocks joined by newlines.
func (m *Model) PlainText() string {
	parts := make([]string, len(m.blocks))
	for i, b := range m.blocks {
		parts[i] = b.text
	}
	return strings.Join(parts, "\n")
}

// Equal reports whether two models are structurally identical: same block
// order, keys, types, text, normalized styles and entity map bytes.
func (m *Model) Equal(other *Model) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil || len(m.blocks) != len(other.blocks) {
		return false
	}
	for i := range m.blocks {
		if !m.blocks[i].Equal(other.blocks[i]) {
			return false
		}
	}
	return bytes.Equal(m.entities, other.entities)
}

// lookup returns the index and block for key or ErrUnknownBlock.
func (m *Model) lookup(key string) (int, *Block, error) {
	i, ok := m.index[key]
	if !ok {
		return -1, nil, fmt.Errorf("%w: %q", ErrUnknownBlock, key)
	}
	return i, m.blocks[i], nil
}

// replaceBlock returns a copy of m with the block at i swapped for b.
// The key of b must equal the key it replaces.
func (m *Model) replaceBlock(i int, b *Block) *Model {
	blocks := slices.Clone(m.blocks)
	blocks[i] = b
	return &Model{blocks: blocks, index: m.index, entities: m.entities}
}

// spliceBlocks returns a copy of m with blocks[from:to] replaced by repl.
func (m *Model) spliceBlocks(from, to int, repl ...*Block) *Model {
	blocks := make([]*Block, 0, len(m.blocks)-(to-from)+len(repl))
	blocks = append(blocks, m.blocks[:from]...)
	blocks = append(blocks, repl...)
	blocks = append(blocks, m.blocks[to:]...)

	index := make(map[string]int, len(blocks))
	for i, b := range blocks {
		index[b.key] = i
	}
	return &Model{blocks: blocks, index: index, entities: m.entities}
}
