package glade

import (
	"context"
	"fmt"
	"math"
)

type Cursor struct {
	Table *Table
	Row   RowIndex
}

// Seek positions a cursor. Non negative positions count from the start,
// negative ones from the end: -1 is the position after the last row, -2 the
// last row and so on.
func (t *Table) Seek(pos int64) (*Cursor, error) {
	if pos >= 0 {
		return &Cursor{Table: t, Row: RowIndex(pos)}, nil
	}
	if t.numRows > math.MaxInt64 {
		return nil, fmt.Errorf("%w: table too large to seek from the end", ErrFetch)
	}

	row := int64(t.numRows) + pos + 1
	if row < 0 {
		return nil, fmt.Errorf("%w: position %d is before the first row", ErrFetch, pos)
	}
	return &Cursor{Table: t, Row: RowIndex(row)}, nil
}

// End returns a cursor positioned after the last row.
func (t *Table) End() *Cursor {
	return &Cursor{Table: t, Row: RowIndex(t.numRows)}
}

func (c *Cursor) End() bool {
	return uint64(c.Row) >= c.Table.numRows
}

func (c *Cursor) Advance() {
	c.Row += 1
}

// position resolves the row to its page and byte offset within the page.
func (c *Cursor) position() (PageIndex, uint64, error) {
	pageIdx := uint64(c.Row) / RowsPerPage
	if pageIdx > math.MaxUint32 {
		return 0, 0, ErrPageOverflow
	}
	return PageIndex(pageIdx), (uint64(c.Row) % RowsPerPage) * RecordSize, nil
}

func (c *Cursor) Value(ctx context.Context) (Row, error) {
	if c.End() {
		return Row{}, fmt.Errorf("%w: row %d does not exist, table has %d rows", ErrFetch, c.Row, c.Table.numRows)
	}

	pageIdx, offset, err := c.position()
	if err != nil {
		return Row{}, err
	}
	aPage, err := c.Table.pager.GetPage(ctx, pageIdx)
	if err != nil {
		return Row{}, err
	}

	var aRow Row
	if err := UnmarshalRow(aPage.Data[offset:offset+RecordSize], &aRow); err != nil {
		return Row{}, err
	}
	return aRow, nil
}

// Write stores the row at the cursor, which must point after the last row.
func (c *Cursor) Write(ctx context.Context, aRow Row) (RowIndex, error) {
	if uint64(c.Row) != c.Table.numRows {
		return 0, fmt.Errorf("%w: %w", ErrInsert, errAppendOnly)
	}

	pageIdx, offset, err := c.position()
	if err != nil {
		return 0, err
	}
	aPage, err := c.Table.pager.GetPage(ctx, pageIdx)
	if err != nil {
		return 0, err
	}

	if _, err := aRow.Marshal(aPage.Data[offset : offset+RecordSize]); err != nil {
		return 0, err
	}
	c.Table.numRows += 1

	return c.Row, nil
}
