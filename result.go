package glade

import (
	"github.com/RichardKnop/glade/internal/glade"
)

type Result struct {
	lastInsertID int64
	rowsAffected int64
}

func newResult(result glade.StatementResult) Result {
	aResult := Result{rowsAffected: int64(result.RowsAffected)}
	if result.Kind == glade.Insert {
		aResult.lastInsertID = int64(result.RowIndex)
	}
	return aResult
}

// LastInsertId returns the row index assigned by the last INSERT.
func (r Result) LastInsertId() (int64, error) {
	return r.lastInsertID, nil
}

// RowsAffected returns the number of rows affected by the
// query.
func (r Result) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}
