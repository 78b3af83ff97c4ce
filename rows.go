package glade

import (
	"database/sql/driver"
	"fmt"
	"io"

	"github.com/RichardKnop/glade/internal/glade"
)

var columnNames = []string{"id", "balance", "email"}

type Rows struct {
	first glade.RowIndex
	rows  []glade.Row
	next  int
}

func newRows(result glade.StatementResult) *Rows {
	return &Rows{
		first: result.RowIndex,
		rows:  result.Rows,
	}
}

// Columns returns the names of the columns: the row index followed by the
// stored fields.
func (r *Rows) Columns() []string {
	return columnNames
}

// Close closes the rows iterator.
func (r *Rows) Close() error {
	r.rows = nil
	return nil
}

// Next is called to populate the next row of data into
// the provided slice. The provided slice will be the same
// size as the Columns() are wide.
//
// Next should return io.EOF when there are no more rows.
func (r *Rows) Next(dest []driver.Value) error {
	if r.next >= len(r.rows) {
		return io.EOF
	}
	if len(dest) != len(columnNames) {
		return fmt.Errorf("expected %d values, got %d", len(columnNames), len(dest))
	}

	aRow := r.rows[r.next]
	dest[0] = int64(r.first) + int64(r.next)
	dest[1] = aRow.Balance
	dest[2] = aRow.Email
	r.next += 1

	return nil
}
