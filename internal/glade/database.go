package glade

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Database owns a single row store. It is created by the caller and passed
// to the command layer, Close must be called to persist buffered pages.
type Database struct {
	parser Parser
	store  RowStore
	logger *zap.Logger
}

func New(logger *zap.Logger, aParser Parser, store RowStore) *Database {
	return &Database{
		parser: aParser,
		store:  store,
		logger: logger,
	}
}

// Open opens or creates the database file and the row store for the
// configured layout.
func Open(ctx context.Context, logger *zap.Logger, aParser Parser, cfg Config) (*Database, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dbFile, err := os.OpenFile(cfg.FilePath, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("error opening database file: %w", err)
	}

	aPager, err := NewPager(
		dbFile,
		WithMaxPages(cfg.MaxPages),
		WithMaxCachedPages(cfg.MaxCachedPages),
		WithPagerLogger(logger),
	)
	if err != nil {
		dbFile.Close()
		return nil, fmt.Errorf("error creating pager: %w", err)
	}

	var store RowStore
	switch cfg.Layout {
	case LayoutFlat:
		store, err = OpenTable(ctx, logger, aPager)
	case LayoutLeaf:
		store, err = OpenLeafTable(ctx, logger, aPager)
	default:
		err = fmt.Errorf("%w: %q", errUnrecognizedStore, cfg.Layout)
	}
	if err != nil {
		dbFile.Close()
		return nil, err
	}

	logger.Sugar().With(
		"file", cfg.FilePath,
		"layout", string(cfg.Layout),
		"rows", int(store.RowCount()),
	).Info("database opened")

	return New(logger, aParser, store), nil
}

func (d *Database) RowCount() uint64 {
	return d.store.RowCount()
}

func (d *Database) Close(ctx context.Context) error {
	if err := d.store.Close(ctx); err != nil {
		return err
	}
	d.logger.Info("database closed")
	return nil
}

// PrepareStatement parses a command into a Statement.
func (d *Database) PrepareStatement(ctx context.Context, sql string) (Statement, error) {
	return d.parser.Parse(ctx, sql)
}

func (d *Database) ExecuteStatement(ctx context.Context, stmt Statement) (StatementResult, error) {
	switch stmt.Kind {
	case Insert:
		return d.executeInsert(ctx, stmt)
	case Select:
		return d.executeSelect(ctx, stmt)
	}
	return StatementResult{}, fmt.Errorf("%w: %w: %d", ErrSyntax, errUnrecognizedKind, stmt.Kind)
}

// Exec parses and executes a single command.
func (d *Database) Exec(ctx context.Context, sql string) (StatementResult, error) {
	stmt, err := d.PrepareStatement(ctx, sql)
	if err != nil {
		return StatementResult{}, err
	}
	return d.ExecuteStatement(ctx, stmt)
}

func (d *Database) executeInsert(ctx context.Context, stmt Statement) (StatementResult, error) {
	idx, err := d.store.Insert(ctx, stmt.Row)
	if err != nil {
		return StatementResult{}, err
	}

	d.logger.Sugar().With("row_index", int(idx)).Debug("inserted row")

	return StatementResult{
		Kind:         Insert,
		RowIndex:     idx,
		RowsAffected: 1,
	}, nil
}

func (d *Database) executeSelect(ctx context.Context, stmt Statement) (StatementResult, error) {
	aRow, err := d.store.Select(ctx, stmt.RowIndex)
	if err != nil {
		if errors.Is(err, ErrSelect) {
			return StatementResult{}, err
		}
		return StatementResult{}, fmt.Errorf("%w: %w", ErrSelect, err)
	}

	return StatementResult{
		Kind:     Select,
		RowIndex: stmt.RowIndex,
		Rows:     []Row{aRow},
	}, nil
}
