package glade

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Table is the flat row store: records are packed RowsPerPage to a page
// and addressed by their insertion order.
type Table struct {
	pager   Pager
	numRows uint64
	logger  *zap.Logger
}

// OpenTable recovers the row count from the persisted pages. All pages but
// the last are full, occupied slots of the last page are counted.
func OpenTable(ctx context.Context, logger *zap.Logger, aPager Pager) (*Table, error) {
	aTable := &Table{
		pager:  aPager,
		logger: logger,
	}

	totalPages := aPager.TotalPages()
	if totalPages == 0 {
		return aTable, nil
	}

	lastPageIdx := PageIndex(totalPages - 1)
	aPage, err := aPager.GetPage(ctx, lastPageIdx)
	if err != nil {
		return nil, fmt.Errorf("error recovering row count: %w", err)
	}

	slots := uint64(RowsPerPage)
	for slots > 0 {
		offset := (slots - 1) * RecordSize
		if slotOccupied(aPage.Data[offset : offset+RecordSize]) {
			break
		}
		slots -= 1
	}
	aTable.numRows = uint64(lastPageIdx)*RowsPerPage + slots

	logger.Sugar().With(
		"pages", int(totalPages),
		"rows", int(aTable.numRows),
	).Debug("opened table")

	return aTable, nil
}

func (t *Table) RowCount() uint64 {
	return t.numRows
}

// MaxRows is the capacity of the table given the pager's page limit.
func (t *Table) MaxRows() uint64 {
	return uint64(t.pager.MaxPages()) * RowsPerPage
}

// Insert appends the row and returns its index.
func (t *Table) Insert(ctx context.Context, aRow Row) (RowIndex, error) {
	return t.End().Write(ctx, aRow)
}

// Select reads the row stored at idx.
func (t *Table) Select(ctx context.Context, idx RowIndex) (Row, error) {
	aCursor := &Cursor{Table: t, Row: idx}
	return aCursor.Value(ctx)
}

func (t *Table) Close(ctx context.Context) error {
	return t.pager.Close(ctx)
}
