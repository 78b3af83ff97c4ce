package glade

import (
	"context"
	"database/sql/driver"

	"github.com/RichardKnop/glade/internal/glade"
)

type Stmt struct {
	conn      *Conn
	statement glade.Statement
}

// Close closes the statement.
func (s Stmt) Close() error {
	return nil
}

// NumInput returns the number of placeholder parameters. Commands carry
// their values inline so there are none.
func (s Stmt) NumInput() int {
	return 0
}

// Exec executes an INSERT.
//
// Deprecated: Drivers should implement StmtExecContext instead (or additionally).
func (s Stmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.ExecContext(context.Background(), nil)
}

func (s Stmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, errArgsNotSupported
	}

	result, err := s.conn.executeStatement(ctx, s.statement)
	if err != nil {
		return nil, err
	}

	return newResult(result), nil
}

// Query executes a SELECT.
//
// Deprecated: Drivers should implement StmtQueryContext instead (or additionally).
func (s Stmt) Query(args []driver.Value) (driver.Rows, error) {
	return s.QueryContext(context.Background(), nil)
}

func (s Stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, errArgsNotSupported
	}

	result, err := s.conn.executeStatement(ctx, s.statement)
	if err != nil {
		return nil, err
	}

	return newRows(result), nil
}

var _ driver.StmtExecContext = Stmt{}
var _ driver.StmtQueryContext = Stmt{}
