package glade

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/RichardKnop/glade/internal/glade"
	"github.com/RichardKnop/glade/internal/parser"
)

const (
	driverName = "glade"
)

var (
	errArgsNotSupported         = errors.New("query arguments not supported")
	errTransactionsNotSupported = errors.New("transactions not supported")
	errConnClosed               = errors.New("connection is closed")
)

func init() {
	sql.Register(driverName, &Driver{})
}

// Driver implements the database/sql/driver.Driver interface.
type Driver struct {
	mu        sync.Mutex
	databases map[string]*sharedDatabase
	parser    glade.Parser
}

// sharedDatabase is one open database file used by every connection to it.
// The storage engine is single threaded so connections take turns.
type sharedDatabase struct {
	db     *glade.Database
	logger *zap.Logger
	refs   int
	mu     sync.Mutex
}

// Open returns a new connection to the database.
// The name is a connection string, see ParseConnectionString.
func (d *Driver) Open(name string) (driver.Conn, error) {
	config, err := ParseConnectionString(name)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.databases == nil {
		d.databases = make(map[string]*sharedDatabase)
	}

	if d.parser == nil {
		d.parser = parser.New()
	}

	// Check if database is already open
	shared, exists := d.databases[config.FilePath]
	if !exists {
		logger, err := config.Logger()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}

		db, err := glade.Open(context.Background(), logger, d.parser, config.Glade())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		shared = &sharedDatabase{
			db:     db,
			logger: logger,
		}
		d.databases[config.FilePath] = shared
	}
	shared.refs += 1

	return &Conn{
		driver:   d,
		filePath: config.FilePath,
		shared:   shared,
	}, nil
}

// release drops a connection's reference, the last one closes the database
// and flushes its pages to disk.
func (d *Driver) release(filePath string, shared *sharedDatabase) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	shared.refs -= 1
	if shared.refs > 0 {
		return nil
	}
	delete(d.databases, filePath)

	shared.mu.Lock()
	defer shared.mu.Unlock()
	return shared.db.Close(context.Background())
}

// Conn implements the database/sql/driver.Conn interface.
type Conn struct {
	driver   *Driver
	filePath string
	shared   *sharedDatabase
	closed   bool
	mu       sync.Mutex
}

func (c *Conn) Ping(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return driver.ErrBadConn
	}
	return nil
}

// Close releases the connection. Closing the last connection to a file
// persists the database.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errConnClosed
	}
	c.closed = true

	return c.driver.release(c.filePath, c.shared)
}

// Prepare returns a prepared statement, bound to this connection.
func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	return c.PrepareContext(context.Background(), query)
}

// PrepareContext parses the command once, it can then be executed any
// number of times.
func (c *Conn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	statement, err := c.shared.db.PrepareStatement(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	return &Stmt{
		conn:      c,
		statement: statement,
	}, nil
}

// Begin is not supported, every statement is applied on its own.
//
// Deprecated: Drivers should implement ConnBeginTx instead (or additionally).
func (c *Conn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *Conn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return nil, errTransactionsNotSupported
}

// ExecContext executes a query that doesn't return rows.
func (c *Conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, errArgsNotSupported
	}

	statement, err := c.shared.db.PrepareStatement(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	result, err := c.executeStatement(ctx, statement)
	if err != nil {
		return nil, err
	}

	return newResult(result), nil
}

// QueryContext executes a query that may return rows.
func (c *Conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, errArgsNotSupported
	}

	statement, err := c.shared.db.PrepareStatement(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	result, err := c.executeStatement(ctx, statement)
	if err != nil {
		return nil, err
	}

	return newRows(result), nil
}

func (c *Conn) executeStatement(ctx context.Context, statement glade.Statement) (glade.StatementResult, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return glade.StatementResult{}, driver.ErrBadConn
	}

	c.shared.mu.Lock()
	defer c.shared.mu.Unlock()

	return c.shared.db.ExecuteStatement(ctx, statement)
}

// Ensure interfaces are implemented
var _ driver.Driver = (*Driver)(nil)
var _ driver.Conn = (*Conn)(nil)
var _ driver.ConnPrepareContext = (*Conn)(nil)
var _ driver.ConnBeginTx = (*Conn)(nil)
var _ driver.ExecerContext = (*Conn)(nil)
var _ driver.QueryerContext = (*Conn)(nil)
var _ driver.Pinger = (*Conn)(nil)
