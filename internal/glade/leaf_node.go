package glade

import (
	"fmt"
)

const (
	LeafNodeHeaderSize = CommonHeaderSize + 4
	LeafNodeKeySize    = 4
	LeafNodeValueSize  = RecordSize
	LeafNodeCellSize   = LeafNodeKeySize + LeafNodeValueSize
	LeafNodeMaxCells   = (PageSize - LeafNodeHeaderSize) / LeafNodeCellSize
)

type LeafNodeHeader struct {
	Header
	Cells uint32
}

func (h *LeafNodeHeader) Size() uint64 {
	return h.Header.Size() + 4
}

func (h *LeafNodeHeader) Marshal(buf []byte) ([]byte, error) {
	size := h.Size()
	if uint64(cap(buf)) >= size {
		buf = buf[:size]
	} else {
		buf = make([]byte, size)
	}

	i := uint64(0)

	hbuf, err := h.Header.Marshal(buf[i:])
	if err != nil {
		return nil, err
	}
	i += uint64(len(hbuf))

	marshalUint32(buf, h.Cells, i)

	return buf, nil
}

func (h *LeafNodeHeader) Unmarshal(buf []byte) (uint64, error) {
	if uint64(len(buf)) < h.Size() {
		return 0, fmt.Errorf("%w: leaf header needs %d bytes, got %d", errShortBuffer, h.Size(), len(buf))
	}

	i := uint64(0)

	hi, err := h.Header.Unmarshal(buf[i:])
	if err != nil {
		return 0, err
	}
	i += hi

	h.Cells = unmarshalUint32(buf, i)
	if h.Cells > LeafNodeMaxCells {
		return 0, fmt.Errorf("%w: leaf claims %d cells, at most %d fit", ErrCorruptNode, h.Cells, LeafNodeMaxCells)
	}

	return h.Size(), nil
}

// Cell is a leaf entry: [key 4 bytes][value 72 bytes]
type Cell struct {
	Key   uint32
	Value []byte
}

func (c *Cell) Size() uint64 {
	return LeafNodeCellSize
}

func (c *Cell) Marshal(buf []byte) ([]byte, error) {
	size := c.Size()
	if uint64(cap(buf)) >= size {
		buf = buf[:size]
	} else {
		buf = make([]byte, size)
	}

	if len(c.Value) > LeafNodeValueSize {
		return nil, fmt.Errorf("%w: cell value of %d bytes exceeds %d", ErrInsert, len(c.Value), LeafNodeValueSize)
	}

	marshalUint32(buf, c.Key, 0)
	n := copy(buf[LeafNodeKeySize:], c.Value)
	clear(buf[LeafNodeKeySize+n:])

	return buf, nil
}

func (c *Cell) Unmarshal(buf []byte) (uint64, error) {
	if uint64(len(buf)) < c.Size() {
		return 0, fmt.Errorf("%w: cell needs %d bytes, got %d", errShortBuffer, c.Size(), len(buf))
	}

	c.Key = unmarshalUint32(buf, 0)
	c.Value = make([]byte, LeafNodeValueSize)
	copy(c.Value, buf[LeafNodeKeySize:LeafNodeCellSize])

	return c.Size(), nil
}

// LeafNode is a view over a page formatted as a leaf. Cells are appended in
// insertion order, the key of a cell is its insertion index. All changes are
// written through to the page buffer.
type LeafNode struct {
	Header LeafNodeHeader
	page   *Page
}

// InitLeaf formats the page as an empty leaf node.
func InitLeaf(aPage *Page, isRoot bool) (*LeafNode, error) {
	aNode := &LeafNode{
		Header: LeafNodeHeader{
			Header: Header{
				Type:   NodeLeaf,
				IsRoot: isRoot,
			},
		},
		page: aPage,
	}
	clear(aPage.Data)
	if err := aNode.writeHeader(); err != nil {
		return nil, err
	}
	return aNode, nil
}

func (n *LeafNode) CommonHeader() Header {
	return n.Header.Header
}

func (n *LeafNode) Page() *Page {
	return n.page
}

func (n *LeafNode) isNode() {}

func (n *LeafNode) NumCells() uint32 {
	return n.Header.Cells
}

func cellOffset(cellIdx uint32) uint64 {
	return LeafNodeHeaderSize + uint64(cellIdx)*LeafNodeCellSize
}

// GetCell returns a copy of the cell at idx.
func (n *LeafNode) GetCell(idx uint32) (Cell, error) {
	if idx >= n.Header.Cells {
		return Cell{}, fmt.Errorf("%w: cell %d, leaf has %d cells", ErrCellOutOfBounds, idx, n.Header.Cells)
	}

	offset := cellOffset(idx)

	var aCell Cell
	if _, err := aCell.Unmarshal(n.page.Data[offset : offset+LeafNodeCellSize]); err != nil {
		return Cell{}, err
	}
	return aCell, nil
}

// AddCell appends a cell holding the payload and returns its key.
func (n *LeafNode) AddCell(payload []byte) (uint32, error) {
	if n.Header.Cells >= LeafNodeMaxCells {
		return 0, fmt.Errorf("%w: leaf node is full with %d cells", ErrPageOverflow, n.Header.Cells)
	}

	idx := n.Header.Cells
	aCell := Cell{
		Key:   idx,
		Value: payload,
	}
	offset := cellOffset(idx)
	if _, err := aCell.Marshal(n.page.Data[offset : offset+LeafNodeCellSize]); err != nil {
		return 0, err
	}

	n.Header.Cells += 1
	if err := n.writeHeader(); err != nil {
		return 0, err
	}

	return idx, nil
}

func (n *LeafNode) writeHeader() error {
	_, err := n.Header.Marshal(n.page.Data[:LeafNodeHeaderSize])
	return err
}
