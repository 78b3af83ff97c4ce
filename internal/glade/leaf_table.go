package glade

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
)

const rootPageIdx = PageIndex(0)

// LeafTable stores rows as cells of a single root leaf on page 0, so it
// holds at most LeafNodeMaxCells rows. The row index is the cell key.
type LeafTable struct {
	pager  Pager
	root   *LeafNode
	logger *zap.Logger
}

func OpenLeafTable(ctx context.Context, logger *zap.Logger, aPager Pager) (*LeafTable, error) {
	isNew := aPager.TotalPages() == 0

	aPage, err := aPager.GetPage(ctx, rootPageIdx)
	if err != nil {
		return nil, err
	}

	aTable := &LeafTable{
		pager:  aPager,
		logger: logger,
	}

	if isNew {
		aTable.root, err = InitLeaf(aPage, true)
		if err != nil {
			return nil, err
		}
		logger.Debug("initialized root leaf")
		return aTable, nil
	}

	aNode, err := LoadNode(aPage)
	if err != nil {
		return nil, err
	}
	switch n := aNode.(type) {
	case *LeafNode:
		aTable.root = n
	case *InternalNode:
		return nil, fmt.Errorf("page %d: %w", rootPageIdx, errUnsupportedRoot)
	default:
		return nil, fmt.Errorf("page %d: %w", rootPageIdx, ErrCorruptNode)
	}

	logger.Sugar().With("cells", int(aTable.root.NumCells())).Debug("loaded root leaf")

	return aTable, nil
}

func (t *LeafTable) RowCount() uint64 {
	return uint64(t.root.NumCells())
}

func (t *LeafTable) Insert(ctx context.Context, aRow Row) (RowIndex, error) {
	buf, err := aRow.Marshal(make([]byte, RecordSize))
	if err != nil {
		return 0, err
	}
	key, err := t.root.AddCell(buf)
	if err != nil {
		return 0, err
	}
	return RowIndex(key), nil
}

func (t *LeafTable) Select(ctx context.Context, idx RowIndex) (Row, error) {
	if idx > math.MaxUint32 {
		return Row{}, fmt.Errorf("%w: %w: cell %d", ErrFetch, ErrCellOutOfBounds, idx)
	}

	aCell, err := t.root.GetCell(uint32(idx))
	if err != nil {
		return Row{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	var aRow Row
	if err := UnmarshalRow(aCell.Value, &aRow); err != nil {
		return Row{}, err
	}
	return aRow, nil
}

func (t *LeafTable) Close(ctx context.Context) error {
	return t.pager.Close(ctx)
}
